package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/game"
)

// reformThreshold is the fraction of birds that must sit on their home
// cell for the word to count as formed.
const reformThreshold = 0.95

// FitnessEvaluator runs headless simulations and scores how quickly the
// flock re-forms the word once homing starts.
type FitnessEvaluator struct {
	params     *ParamVector
	cycles     int
	seeds      []int64
	baseConfig *config.Config

	mu         sync.Mutex
	lastReform float64 // fraction of homing phases that re-formed, most recent Evaluate
}

// NewFitnessEvaluator creates a new evaluator. Each run covers cycles
// homing phases.
func NewFitnessEvaluator(params *ParamVector, cycles int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		cycles:     max(cycles, 1),
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastReform returns the re-formed fraction from the most recent evaluation.
func (fe *FitnessEvaluator) LastReform() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastReform
}

// runResult holds the outcome of one simulation run.
type runResult struct {
	reformTicks []int // ticks from homing start to formed, per homing phase
	phaseTicks  []int // length of each homing phase in ticks
	finalAtHome []float64
}

// Evaluate computes fitness for a parameter vector (lower = better): the
// mean number of ticks to re-form, averaged over seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]*runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var total, reformed, phases float64
	for _, r := range results {
		total += r.score()
		for i := range r.phaseTicks {
			phases++
			if r.reformTicks[i] >= 0 {
				reformed++
			}
		}
	}

	fe.mu.Lock()
	if phases > 0 {
		fe.lastReform = reformed / phases
	}
	fe.mu.Unlock()

	return total / float64(len(fe.seeds))
}

// runSimulation executes a headless run through cfg.cycles homing phases.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	g, err := game.NewGameWithOptions(game.Options{
		Config:         cfg,
		Seed:           seed,
		Headless:       true,
		StepsPerUpdate: 1,
	})
	if err != nil {
		// Headless games without output cannot fail; treat as worst case.
		return &runResult{reformTicks: []int{-1}, phaseTicks: []int{1}, finalAtHome: []float64{0}}
	}
	defer g.Unload()

	// Hard cap: every phase of every cycle plus slack
	cycleTicks := int(cfg.Derived.Cycle / cfg.Derived.DT)
	maxTicks := (2*fe.cycles + 1) * cycleTicks

	tol := cfg.Telemetry.HomeTolerance
	res := &runResult{}
	homing := false
	start := 0

	for g.Tick() < maxTicks && len(res.phaseTicks) < fe.cycles {
		g.UpdateHeadless()
		tick := g.Tick()
		phase := g.Phase()

		switch {
		case phase.Homing && !homing:
			homing = true
			start = tick
			res.reformTicks = append(res.reformTicks, -1)
		case !phase.Homing && homing:
			homing = false
			res.phaseTicks = append(res.phaseTicks, tick-start)
			res.finalAtHome = append(res.finalAtHome, g.AtHome(tol))
			continue
		}

		if homing {
			last := len(res.reformTicks) - 1
			if res.reformTicks[last] < 0 && g.AtHome(tol) >= reformThreshold {
				res.reformTicks[last] = tick - start
			}
		}
	}

	// A phase still open at the cap counts with its length so far
	if homing {
		res.phaseTicks = append(res.phaseTicks, g.Tick()-start)
		res.finalAtHome = append(res.finalAtHome, g.AtHome(tol))
	}
	return res
}

// score averages re-form ticks over the homing phases. A phase that never
// re-forms costs its full length plus a penalty for the missing fraction.
func (r *runResult) score() float64 {
	if len(r.phaseTicks) == 0 {
		return math.Inf(1)
	}
	var sum float64
	for i, length := range r.phaseTicks {
		if r.reformTicks[i] >= 0 {
			sum += float64(r.reformTicks[i])
			continue
		}
		missing := math.Max(0, reformThreshold-r.finalAtHome[i])
		sum += float64(length) * (1 + missing)
	}
	return sum / float64(len(r.phaseTicks))
}

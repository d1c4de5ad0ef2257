package telemetry

import (
	"github.com/pthm-cable/flock/flock"
	"github.com/pthm-cable/flock/systems"
)

// Collector accumulates per-tick results within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int
	dt                  float64

	// Current window tracking
	windowStartTick int

	// Counters for current window
	attempts     int
	moves        int
	pushes       int
	pushFailures int
	blocked      int
	foodEaten    int
	phaseChanges int
	modes        [systems.NumModes]int

	// Scratch for window-end sampling
	dists  []float64
	speeds []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordStep folds one tick's results into the current window.
func (c *Collector) RecordStep(st flock.StepStats) {
	c.attempts += st.Attempts
	c.moves += st.Moves
	c.pushes += st.Pushes
	c.pushFailures += st.PushFailures
	c.blocked += st.Blocked
	c.foodEaten += st.FoodEaten
	if st.PhaseChanged {
		c.phaseChanges++
	}
	for m, n := range st.Modes {
		c.modes[m] += n
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// birds is sampled for formation and speed distributions; homeTolerance is
// the Manhattan distance still counted as at home.
func (c *Collector) Flush(currentTick int, phase string, birds []flock.BirdView, foodLeft, homeTolerance int) WindowStats {
	c.dists = c.dists[:0]
	c.speeds = c.speeds[:0]
	atHome := 0
	for _, b := range birds {
		c.dists = append(c.dists, float64(b.HomeDist))
		c.speeds = append(c.speeds, b.Speed())
		if b.HomeDist <= homeTolerance {
			atHome++
		}
	}

	distMean, distP50, distP90 := ComputeDistStats(c.dists)
	speedMean, speedStd := ComputeSpeedStats(c.speeds)

	var moveRate, atHomeFrac float64
	if c.attempts > 0 {
		moveRate = float64(c.moves) / float64(c.attempts)
	}
	if len(birds) > 0 {
		atHomeFrac = float64(atHome) / float64(len(birds))
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,
		Phase:           phase,

		Birds:    len(birds),
		FoodLeft: foodLeft,

		Attempts:     c.attempts,
		Moves:        c.moves,
		Pushes:       c.pushes,
		PushFailures: c.pushFailures,
		Blocked:      c.blocked,
		MoveRate:     moveRate,
		FoodEaten:    c.foodEaten,
		PhaseChanges: c.phaseChanges,

		HomingTicks:   c.modes[systems.ModeHoming],
		FleeingTicks:  c.modes[systems.ModeFleeing],
		HuntingTicks:  c.modes[systems.ModeHunting],
		FlockingTicks: c.modes[systems.ModeFlocking],

		HomeDistMean: distMean,
		HomeDistP50:  distP50,
		HomeDistP90:  distP90,
		AtHome:       atHomeFrac,

		SpeedMean: speedMean,
		SpeedStd:  speedStd,
	}

	c.Reset(currentTick)
	return stats
}

// Reset starts a fresh window at tick, discarding accumulated counters.
func (c *Collector) Reset(tick int) {
	c.windowStartTick = tick
	c.attempts = 0
	c.moves = 0
	c.pushes = 0
	c.pushFailures = 0
	c.blocked = 0
	c.foodEaten = 0
	c.phaseChanges = 0
	c.modes = [systems.NumModes]int{}
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int {
	return c.windowDurationTicks
}

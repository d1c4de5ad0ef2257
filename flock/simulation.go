// Package flock owns the bird and food entities and advances them one
// tick at a time.
package flock

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/glyph"
	"github.com/pthm-cable/flock/systems"
)

// Stage names reported to a StageTimer during Step.
const (
	StagePhase     = "phase"
	StageOccupancy = "occupancy"
	StageBirds     = "birds"
	StageFeeding   = "feeding"
)

// StageTimer is notified as Step enters each stage.
type StageTimer interface {
	StartPhase(name string)
}

// MoveEvent describes a bird that completed a move this tick.
type MoveEvent struct {
	X, Y   int
	VX, VY float64
	GridW  int
	Vitals *components.Vitals
}

// StepStats summarises one tick.
type StepStats struct {
	Tick         int
	PhaseChanged bool
	Homing       bool
	Ramp         float64
	Birds        int
	Attempts     int
	Moves        int
	Pushes       int
	PushFailures int
	Blocked      int
	FoodEaten    int
	FoodLeft     int
	Modes        [systems.NumModes]int
}

// Simulation is the flock world: birds and food as ECS entities on a toroidal grid.
type Simulation struct {
	world *ecs.World
	rng   *rand.Rand

	birdMapper *ecs.Map6[
		components.Position,
		components.Velocity,
		components.Heading,
		components.Home,
		components.Vitals,
		components.Offset,
	]
	birdFilter *ecs.Filter6[
		components.Position,
		components.Velocity,
		components.Heading,
		components.Home,
		components.Vitals,
		components.Offset,
	]
	foodMapper *ecs.Map2[components.Position, components.Food]
	foodFilter *ecs.Filter2[components.Position, components.Food]

	grid        systems.Grid
	layout      glyph.Layout
	spawnOffset int
	offsetRange float64

	phase   systems.PhaseState
	occ     *systems.Occupancy
	food    *systems.FoodIndex
	hood    *systems.Neighborhood
	stepper systems.Stepper

	// Per-tick scratch, reused across ticks
	agents       []systems.Agent
	order        []int
	foodEntities []ecs.Entity
	foodItems    []systems.FoodItem
	eaten        []int
	removals     []ecs.Entity

	tick  int
	birds int

	// Timer, when set, receives a call at the start of each stage of Step.
	Timer StageTimer

	// OnMove is called for every completed move. Only the chirp fields of
	// Vitals may be changed from it.
	OnMove func(MoveEvent)
}

// New creates an empty simulation seeded with seed.
func New(seed int64) *Simulation {
	world := ecs.NewWorld()
	s := &Simulation{
		world: world,
		rng:   rand.New(rand.NewSource(seed)),
		birdMapper: ecs.NewMap6[
			components.Position,
			components.Velocity,
			components.Heading,
			components.Home,
			components.Vitals,
			components.Offset,
		](world),
		birdFilter: ecs.NewFilter6[
			components.Position,
			components.Velocity,
			components.Heading,
			components.Home,
			components.Vitals,
			components.Offset,
		](world),
		foodMapper: ecs.NewMap2[components.Position, components.Food](world),
		foodFilter: ecs.NewFilter2[components.Position, components.Food](world),
		grid:       systems.NewGrid(1, 1),
	}
	s.allocate()
	s.stepper.OnMove = s.emitMove
	return s
}

func (s *Simulation) allocate() {
	s.occ = systems.NewOccupancy(s.grid)
	s.food = systems.NewFoodIndex(s.grid, nil)
	s.hood = systems.NewNeighborhood(s.occ)
}

// Grid returns the current grid dimensions.
func (s *Simulation) Grid() systems.Grid {
	return s.grid
}

// Layout returns the glyph layout birds were spawned from.
func (s *Simulation) Layout() glyph.Layout {
	return s.layout
}

// Phase returns the phase controller state.
func (s *Simulation) Phase() systems.PhaseState {
	return s.phase
}

// BirdCount returns the number of birds.
func (s *Simulation) BirdCount() int {
	return s.birds
}

// Tick returns the number of completed ticks since the last reinit.
func (s *Simulation) Tick() int {
	return s.tick
}

// Reinit discards every bird and food item and respawns them from layout on
// a gridW x gridH torus, shifted down by spawnOffset rows. Each bird's home
// is its spawn cell. When the layout has no lit cells a single bird is
// placed at the origin. The phase restarts as roaming at now.
func (s *Simulation) Reinit(layout glyph.Layout, gridW, gridH, spawnOffset int, offsetRange float64, now time.Duration) {
	s.clear()

	s.grid = systems.NewGrid(gridW, gridH)
	s.layout = layout
	s.spawnOffset = spawnOffset
	s.offsetRange = offsetRange
	s.allocate()

	cells := layout.Cells()
	for _, c := range cells {
		x, y := s.grid.Wrap(c[0], c[1]+spawnOffset)
		s.spawnBird(x, y)
	}
	if len(cells) == 0 {
		s.spawnBird(0, 0)
	}
	s.birds = max(len(cells), 1)
	s.spawnFood(cells)

	s.phase.Reset(now)
	s.tick = 0

	slog.Info("reinitialized",
		"word", string(layout.Word),
		"resolution", layout.Resolution,
		"grid_w", s.grid.W,
		"grid_h", s.grid.H,
		"birds", s.birds,
	)
}

// RespawnFood replaces all food with one item per lit layout cell.
func (s *Simulation) RespawnFood() {
	s.removeAll(s.foodEntities[:0], func(dst []ecs.Entity) []ecs.Entity {
		q := s.foodFilter.Query()
		for q.Next() {
			dst = append(dst, q.Entity())
		}
		return dst
	})
	s.spawnFood(s.layout.Cells())
	slog.Info("food respawned", "food", s.FoodCount())
}

// OffsetRange returns the current cosmetic offset range in pixels.
func (s *Simulation) OffsetRange() float64 {
	return s.offsetRange
}

// SetOffsetRange re-rolls every bird's cosmetic draw offset within ±r pixels.
func (s *Simulation) SetOffsetRange(r float64) {
	s.offsetRange = r
	q := s.birdFilter.Query()
	for q.Next() {
		_, _, _, _, _, off := q.Get()
		off.X = (s.rng.Float64()*2 - 1) * r
		off.Y = (s.rng.Float64()*2 - 1) * r
	}
}

func (s *Simulation) spawnBird(x, y int) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	heading := components.Heading{X: 0, Y: -1}
	off := components.Offset{
		X: (s.rng.Float64()*2 - 1) * s.offsetRange,
		Y: (s.rng.Float64()*2 - 1) * s.offsetRange,
	}
	home := components.Home{X: x, Y: y, Bias: 0.9 + s.rng.Float64()*0.2}
	vitals := components.Vitals{Health: 1}
	return s.birdMapper.NewEntity(&pos, &vel, &heading, &home, &vitals, &off)
}

func (s *Simulation) spawnFood(cells [][2]int) {
	for _, c := range cells {
		x, y := s.grid.Wrap(c[0], c[1]+s.spawnOffset)
		pos := components.Position{X: x, Y: y}
		s.foodMapper.NewEntity(&pos, &components.Food{})
	}
}

// clear removes every entity.
func (s *Simulation) clear() {
	s.removeAll(s.removals[:0], func(dst []ecs.Entity) []ecs.Entity {
		q := s.birdFilter.Query()
		for q.Next() {
			dst = append(dst, q.Entity())
		}
		fq := s.foodFilter.Query()
		for fq.Next() {
			dst = append(dst, fq.Entity())
		}
		return dst
	})
}

// removeAll collects entities first and removes them once no query is open.
func (s *Simulation) removeAll(buf []ecs.Entity, collect func([]ecs.Entity) []ecs.Entity) {
	buf = collect(buf)
	for _, e := range buf {
		s.world.RemoveEntity(e)
	}
}

// Step advances the simulation by one tick at simulation time now.
// Birds update one at a time in a fresh random order, each seeing the moves
// of those before it. Food is eaten after every bird has moved.
func (s *Simulation) Step(now time.Duration, params systems.Params, ptr systems.Pointer) StepStats {
	var st StepStats
	s.stage(StagePhase)
	st.PhaseChanged = s.phase.Update(now, params.Homing.Cycle)
	ramp := s.phase.Ramp(now, params.Homing.Ramp)
	if st.PhaseChanged {
		slog.Info("phase changed", "phase", s.phase.Name(), "tick", s.tick)
	}

	s.stage(StageOccupancy)
	s.collect()
	s.shuffle()
	s.occ.Rebuild(s.agents)
	s.food.Reset(s.foodItems)

	s.stage(StageBirds)
	s.stepper.Grid = s.grid
	s.stepper.Params = params
	s.stepper.Homing = s.phase.Homing
	s.stepper.Ramp = ramp
	s.stepper.Pointer = ptr
	s.stepper.EdgeMargin = s.layout.Margin
	s.stepper.Occ = s.occ
	s.stepper.Food = s.food
	s.stepper.Hood = s.hood
	s.stepper.Rng = s.rng

	for _, i := range s.order {
		out := s.stepper.Update(s.agents, i)
		st.Modes[out.Mode]++
		if out.Attempted {
			st.Attempts++
		}
		if out.Moved {
			st.Moves++
		}
		if out.Pushed {
			st.Pushes++
		}
		if out.PushFailed {
			st.PushFailures++
		}
		if out.Blocked {
			st.Blocked++
		}
	}

	s.stage(StageFeeding)
	s.eaten = systems.ConsumeFood(s.agents, s.order, s.food, params.Food.HealthGain, s.eaten)
	for _, f := range s.eaten {
		s.world.RemoveEntity(s.foodEntities[f])
	}

	s.tick++
	st.Tick = s.tick
	st.Homing = s.phase.Homing
	st.Ramp = ramp
	st.Birds = len(s.agents)
	st.FoodEaten = len(s.eaten)
	st.FoodLeft = s.food.Len()
	return st
}

// collect gathers component pointers for every bird and position of every
// food item. The pointers stay valid until entities are added or removed.
func (s *Simulation) collect() {
	s.agents = s.agents[:0]
	q := s.birdFilter.Query()
	for q.Next() {
		pos, vel, heading, home, vitals, _ := q.Get()
		s.agents = append(s.agents, systems.Agent{
			Pos:     pos,
			Vel:     vel,
			Home:    home,
			Heading: heading,
			Vitals:  vitals,
		})
	}

	s.foodEntities = s.foodEntities[:0]
	s.foodItems = s.foodItems[:0]
	fq := s.foodFilter.Query()
	for fq.Next() {
		pos, _ := fq.Get()
		s.foodEntities = append(s.foodEntities, fq.Entity())
		s.foodItems = append(s.foodItems, systems.FoodItem{X: pos.X, Y: pos.Y})
	}
}

func (s *Simulation) stage(name string) {
	if s.Timer != nil {
		s.Timer.StartPhase(name)
	}
}

func (s *Simulation) shuffle() {
	s.order = s.order[:0]
	for i := range s.agents {
		s.order = append(s.order, i)
	}
	s.rng.Shuffle(len(s.order), func(i, j int) {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	})
}

func (s *Simulation) emitMove(i int) {
	if s.OnMove == nil {
		return
	}
	a := s.agents[i]
	s.OnMove(MoveEvent{
		X:      a.Pos.X,
		Y:      a.Pos.Y,
		VX:     a.Vel.X,
		VY:     a.Vel.Y,
		GridW:  s.grid.W,
		Vitals: a.Vitals,
	})
}

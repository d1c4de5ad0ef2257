package systems

import (
	"math"
	"math/rand"
	"testing"
)

func newStepper(g Grid, agents []Agent, p Params, homing bool, seed int64) *Stepper {
	occ := NewOccupancy(g)
	occ.Rebuild(agents)
	ramp := 0.0
	if homing {
		ramp = 1
	}
	return &Stepper{
		Grid:   g,
		Params: p,
		Homing: homing,
		Ramp:   ramp,
		Occ:    occ,
		Food:   NewFoodIndex(g, nil),
		Hood:   NewNeighborhood(occ),
		Rng:    rand.New(rand.NewSource(seed)),
	}
}

func TestHomingPushesOccupant(t *testing.T) {
	// A at (4,4) heads for (4,6) and must go through B at (4,5).
	g := NewGrid(10, 10)
	agents := agentsAt([2]int{4, 4}, [2]int{4, 5})
	agents[0].Home.X, agents[0].Home.Y = 4, 6
	s := newStepper(g, agents, DefaultParams(), true, 1)

	out := s.Update(agents, 0)

	if !out.Moved || !out.Pushed {
		t.Fatalf("outcome = %+v, want a pushed move", out)
	}
	if got := positions(agents); got[0] != [2]int{4, 5} || got[1] != [2]int{4, 6} {
		t.Errorf("positions = %v, want A at [4 5] and B at [4 6]", got)
	}
	if agents[0].Heading.X != 0 || agents[0].Heading.Y != 1 {
		t.Errorf("heading = %+v, want (0,1)", *agents[0].Heading)
	}
	checkIndex(t, s.Occ, agents)
}

func TestRoamingBlockedInOpenSpace(t *testing.T) {
	g := NewGrid(10, 10)
	agents := agentsAt([2]int{4, 4}, [2]int{4, 5})
	agents[0].Vel.Y = 5
	p := DefaultParams()
	p.Motion.IdleMoveChance = 1
	s := newStepper(g, agents, p, false, 1)

	out := s.Update(agents, 0)

	if out.Moved || !out.Blocked {
		t.Fatalf("outcome = %+v, want blocked", out)
	}
	if got := positions(agents); got[0] != [2]int{4, 4} || got[1] != [2]int{4, 5} {
		t.Errorf("positions = %v, want unchanged", got)
	}
	// Heading follows the attempted move even when blocked.
	if agents[0].Heading.X != 0 || agents[0].Heading.Y != 1 {
		t.Errorf("heading = %+v, want (0,1)", *agents[0].Heading)
	}
}

func TestRoamingPushesAtEdge(t *testing.T) {
	g := NewGrid(10, 10)
	agents := agentsAt([2]int{0, 4}, [2]int{0, 5})
	agents[0].Vel.Y = 5
	p := DefaultParams()
	p.Motion.IdleMoveChance = 1
	s := newStepper(g, agents, p, false, 1)
	s.EdgeMargin = 2

	out := s.Update(agents, 0)

	if !out.Pushed {
		t.Fatalf("outcome = %+v, want a pushed move", out)
	}
	if got := positions(agents); got[0] != [2]int{0, 5} || got[1] != [2]int{0, 6} {
		t.Errorf("positions = %v, want [0 5] and [0 6]", got)
	}
}

func TestHomingConvergence(t *testing.T) {
	g := NewGrid(10, 10)
	tests := []struct {
		name       string
		start      [2]int
		home       [2]int
		multiplier float64
	}{
		{"across the seam", [2]int{1, 1}, [2]int{7, 4}, 1},
		{"straight line", [2]int{2, 5}, [2]int{8, 5}, 1},
		{"diagonal snap", [2]int{5, 5}, [2]int{6, 6}, 1},
		{"fast", [2]int{0, 0}, [2]int{5, 3}, 2.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agents := agentsAt(tt.start)
			agents[0].Home.X, agents[0].Home.Y = tt.home[0], tt.home[1]
			p := DefaultParams()
			p.Motion.SpeedMultiplier = tt.multiplier
			s := newStepper(g, agents, p, true, 7)

			dist := g.Manhattan(tt.start[0], tt.start[1], tt.home[0], tt.home[1])
			initial := dist
			for tick := 0; tick < initial; tick++ {
				s.Occ.Rebuild(agents)
				s.Update(agents, 0)
				d := g.Manhattan(agents[0].Pos.X, agents[0].Pos.Y, tt.home[0], tt.home[1])
				if d > dist {
					t.Fatalf("tick %d: distance grew from %d to %d", tick, dist, d)
				}
				dist = d
			}
			if dist != 0 {
				t.Errorf("distance after %d ticks = %d, want 0", initial, dist)
			}
		})
	}
}

func TestNoiseOnlyStaysInBounds(t *testing.T) {
	g := NewGrid(10, 10)
	agents := agentsAt([2]int{5, 5})
	p := DefaultParams()
	p.Flocking.SeparationWeight = 0
	p.Flocking.AlignmentWeight = 0
	p.Flocking.CohesionWeight = 0
	s := newStepper(g, agents, p, false, 42)

	for tick := 0; tick < 100; tick++ {
		s.Occ.Rebuild(agents)
		s.Update(agents, 0)

		a := agents[0]
		if !g.InBounds(a.Pos.X, a.Pos.Y) {
			t.Fatalf("tick %d: position (%d,%d) left the grid", tick, a.Pos.X, a.Pos.Y)
		}
		if math.IsNaN(a.Vel.X) || math.IsNaN(a.Vel.Y) || math.IsInf(a.Vel.X, 0) || math.IsInf(a.Vel.Y, 0) {
			t.Fatalf("tick %d: velocity (%v,%v) not finite", tick, a.Vel.X, a.Vel.Y)
		}
	}
}

func TestPanicDoublesStep(t *testing.T) {
	g := NewGrid(10, 10)
	agents := agentsAt([2]int{5, 5})
	s := newStepper(g, agents, DefaultParams(), false, 3)
	s.Pointer = Pointer{X: 4, Y: 5, Active: true}

	out := s.Update(agents, 0)

	if out.Mode != ModeFleeing || !out.Moved {
		t.Fatalf("outcome = %+v, want a fleeing move", out)
	}
	if got := positions(agents)[0]; got != [2]int{7, 5} {
		t.Errorf("position = %v, want [7 5]", got)
	}
}

func TestHuntingAlwaysMovesNearFood(t *testing.T) {
	g := NewGrid(10, 10)
	for seed := int64(0); seed < 20; seed++ {
		agents := agentsAt([2]int{5, 5})
		s := newStepper(g, agents, DefaultParams(), false, seed)
		s.Food = NewFoodIndex(g, []FoodItem{{X: 7, Y: 5}})

		out := s.Update(agents, 0)
		if out.Mode != ModeHunting || !out.Attempted {
			t.Fatalf("seed %d: outcome = %+v, want an attempted hunting move", seed, out)
		}
	}
}

func TestNonFiniteVelocityIsReset(t *testing.T) {
	g := NewGrid(10, 10)
	agents := agentsAt([2]int{5, 5})
	agents[0].Vel.X = math.Inf(1)
	agents[0].Vel.Y = math.NaN()
	s := newStepper(g, agents, DefaultParams(), false, 5)

	s.Update(agents, 0)

	if math.IsNaN(agents[0].Vel.X) || math.IsNaN(agents[0].Vel.Y) ||
		math.IsInf(agents[0].Vel.X, 0) || math.IsInf(agents[0].Vel.Y, 0) {
		t.Errorf("velocity = %+v, want finite", *agents[0].Vel)
	}
}

func TestOnMoveFiresOnlyOnMove(t *testing.T) {
	g := NewGrid(10, 10)
	agents := agentsAt([2]int{4, 4}, [2]int{4, 5})
	agents[0].Vel.Y = 5
	p := DefaultParams()
	p.Motion.IdleMoveChance = 1
	s := newStepper(g, agents, p, false, 1)

	var calls []int
	s.OnMove = func(i int) { calls = append(calls, i) }

	s.Update(agents, 0) // blocked by agent 1
	if len(calls) != 0 {
		t.Fatalf("OnMove called %v for a blocked move", calls)
	}

	agents[1].Vel.X = 20
	s.Update(agents, 1)
	if len(calls) != 1 || calls[0] != 1 {
		t.Errorf("OnMove calls = %v, want [1]", calls)
	}
}

func TestUpdateIsDeterministicForSeed(t *testing.T) {
	g := NewGrid(16, 12)
	run := func() [][2]int {
		agents := agentsAt([2]int{3, 3}, [2]int{4, 3}, [2]int{5, 3}, [2]int{3, 4}, [2]int{8, 8})
		s := newStepper(g, agents, DefaultParams(), false, 99)
		for tick := 0; tick < 50; tick++ {
			s.Occ.Rebuild(agents)
			for i := range agents {
				s.Update(agents, i)
			}
		}
		return positions(agents)
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("agent %d: run 1 at %v, run 2 at %v", i, a[i], b[i])
		}
	}
}

package flock

import (
	"testing"
	"time"

	"github.com/pthm-cable/flock/glyph"
	"github.com/pthm-cable/flock/systems"
)

const dt = time.Second / 60

func newSim(t *testing.T, word string, seed int64) *Simulation {
	t.Helper()
	l := glyph.ComputeLayout(word, 5)
	s := New(seed)
	s.Reinit(l, l.Width, l.Height+4, 2, 0, 0)
	return s
}

func TestReinitSpawnsBirdsAndFoodOnGlyph(t *testing.T) {
	s := newSim(t, "HI", 1)
	cells := s.Layout().Cells()

	birds := s.Birds(nil)
	if len(birds) != len(cells) || s.BirdCount() != len(cells) {
		t.Fatalf("birds = %d, want %d", len(birds), len(cells))
	}
	if s.FoodCount() != len(cells) {
		t.Errorf("food = %d, want %d", s.FoodCount(), len(cells))
	}

	want := make(map[[2]int]bool, len(cells))
	for _, c := range cells {
		want[[2]int{c[0], c[1] + 2}] = true
	}
	for _, b := range birds {
		if !want[[2]int{b.X, b.Y}] {
			t.Errorf("bird at (%d,%d) is not on a shifted glyph cell", b.X, b.Y)
		}
		if b.HomeX != b.X || b.HomeY != b.Y {
			t.Errorf("home (%d,%d) != spawn (%d,%d)", b.HomeX, b.HomeY, b.X, b.Y)
		}
		if b.HX != 0 || b.HY != -1 || b.Health != 1 {
			t.Errorf("bird = %+v, want heading (0,-1) and full health", b)
		}
	}
}

func TestReinitFallbackBird(t *testing.T) {
	l := glyph.ComputeLayout("~", 5)
	s := New(1)
	s.Reinit(l, l.Width, l.Height, 0, 0, 0)

	birds := s.Birds(nil)
	if len(birds) != 1 || birds[0].X != 0 || birds[0].Y != 0 {
		t.Fatalf("birds = %+v, want one bird at the origin", birds)
	}
	if s.FoodCount() != 0 {
		t.Errorf("food = %d, want none", s.FoodCount())
	}
}

func TestReinitReplacesEntities(t *testing.T) {
	s := newSim(t, "BIRDS", 1)
	l := glyph.ComputeLayout("I", 5)
	s.Reinit(l, l.Width, l.Height, 0, 0, 0)

	if got, want := len(s.Birds(nil)), len(l.Cells()); got != want {
		t.Errorf("birds after reinit = %d, want %d", got, want)
	}
	if got, want := s.FoodCount(), len(l.Cells()); got != want {
		t.Errorf("food after reinit = %d, want %d", got, want)
	}
}

func TestStepKeepsGridInvariants(t *testing.T) {
	s := newSim(t, "OK", 3)
	p := systems.DefaultParams()
	p.Homing.Cycle = 2 * time.Second
	p.Motion.SpeedMultiplier = 2
	g := s.Grid()

	for tick := 1; tick <= 600; tick++ {
		ptr := systems.Pointer{X: tick % g.W, Y: (tick / 3) % g.H, Active: tick%2 == 0}
		s.Step(time.Duration(tick)*dt, p, ptr)

		seen := make(map[[2]int]bool)
		for _, b := range s.Birds(nil) {
			if !g.InBounds(b.X, b.Y) {
				t.Fatalf("tick %d: bird at (%d,%d) off the grid", tick, b.X, b.Y)
			}
			cell := [2]int{b.X, b.Y}
			if seen[cell] {
				t.Fatalf("tick %d: two birds share cell %v", tick, cell)
			}
			seen[cell] = true
		}
	}
}

func TestStepEatsFood(t *testing.T) {
	s := newSim(t, "A", 5)
	before := s.FoodCount()

	st := s.Step(dt, systems.DefaultParams(), systems.Pointer{})

	if st.FoodEaten == 0 {
		t.Fatal("birds start on food and should eat")
	}
	if st.FoodLeft != s.FoodCount() || before-st.FoodEaten != st.FoodLeft {
		t.Errorf("food accounting: before %d eaten %d left %d count %d", before, st.FoodEaten, st.FoodLeft, s.FoodCount())
	}

	food := make(map[[2]int]bool)
	for _, f := range s.Food(nil) {
		food[[2]int{f.X, f.Y}] = true
	}
	for _, b := range s.Birds(nil) {
		if food[[2]int{b.X, b.Y}] {
			t.Errorf("bird at (%d,%d) left food uneaten", b.X, b.Y)
		}
		if b.Health != 1 {
			t.Errorf("health = %v, want capped at 1", b.Health)
		}
	}

	s.RespawnFood()
	if s.FoodCount() != before {
		t.Errorf("respawned food = %d, want %d", s.FoodCount(), before)
	}
}

func TestStepIsDeterministic(t *testing.T) {
	run := func() []BirdView {
		s := newSim(t, "GO", 11)
		p := systems.DefaultParams()
		ptr := systems.Pointer{X: 4, Y: 4, Active: true}
		for tick := 1; tick <= 200; tick++ {
			s.Step(time.Duration(tick)*dt, p, ptr)
		}
		return s.Birds(nil)
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("bird counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("bird %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestStepPhaseAndMoveEvents(t *testing.T) {
	s := newSim(t, "A", 2)
	p := systems.DefaultParams()
	p.Homing.Cycle = time.Second

	var events int
	s.OnMove = func(e MoveEvent) {
		events++
		if e.GridW != s.Grid().W || e.Vitals == nil {
			t.Errorf("bad event %+v", e)
		}
	}

	moves, toggles := 0, 0
	for tick := 1; tick <= 150; tick++ {
		st := s.Step(time.Duration(tick)*dt, p, systems.Pointer{})
		moves += st.Moves
		if st.PhaseChanged {
			toggles++
		}
		if st.Birds != s.BirdCount() {
			t.Fatalf("tick %d: Birds = %d, want %d", tick, st.Birds, s.BirdCount())
		}
	}

	if events != moves {
		t.Errorf("OnMove fired %d times for %d moves", events, moves)
	}
	// 150 ticks at 60Hz is 2.5s: roaming -> homing -> roaming.
	if toggles != 2 {
		t.Errorf("phase toggles = %d, want 2", toggles)
	}
}

func TestHomingReforms(t *testing.T) {
	s := newSim(t, "A", 9)
	p := systems.DefaultParams()
	p.Homing.Cycle = 3 * time.Second

	meanDist := func() float64 {
		birds := s.Birds(nil)
		sum := 0
		for _, b := range birds {
			sum += b.HomeDist
		}
		return float64(sum) / float64(len(birds))
	}

	// Roam until the phase flips, then home for most of the cycle.
	tick := 1
	for ; !s.Phase().Homing && tick < 1000; tick++ {
		s.Step(time.Duration(tick)*dt, p, systems.Pointer{})
	}
	if !s.Phase().Homing {
		t.Fatal("expected homing phase after one cycle")
	}
	entry := meanDist()
	end := tick + 170
	for ; tick < end; tick++ {
		s.Step(time.Duration(tick)*dt, p, systems.Pointer{})
	}

	if got := meanDist(); got > entry {
		t.Errorf("mean home distance grew from %.2f to %.2f while homing", entry, got)
	}
	if frac := s.AtHome(0); frac < 0.5 {
		t.Errorf("fraction at home = %.2f, want >= 0.5", frac)
	}
}

func TestSetOffsetRange(t *testing.T) {
	s := newSim(t, "A", 4)
	s.SetOffsetRange(3)
	for _, b := range s.Birds(nil) {
		if b.OX < -3 || b.OX > 3 || b.OY < -3 || b.OY > 3 {
			t.Errorf("offset (%v,%v) outside ±3", b.OX, b.OY)
		}
	}
}

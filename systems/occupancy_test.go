package systems

import (
	"testing"

	"github.com/pthm-cable/flock/components"
)

// newAgent allocates standalone components for a live agent at (x,y) whose
// home is its spawn cell.
func newAgent(x, y int) Agent {
	return Agent{
		Pos:     &components.Position{X: x, Y: y},
		Vel:     &components.Velocity{},
		Home:    &components.Home{X: x, Y: y, Bias: 1},
		Heading: &components.Heading{X: 0, Y: -1},
		Vitals:  &components.Vitals{Health: 1},
	}
}

func agentsAt(cells ...[2]int) []Agent {
	agents := make([]Agent, len(cells))
	for i, c := range cells {
		agents[i] = newAgent(c[0], c[1])
	}
	return agents
}

func positions(agents []Agent) [][2]int {
	out := make([][2]int, len(agents))
	for i, a := range agents {
		out[i] = [2]int{a.Pos.X, a.Pos.Y}
	}
	return out
}

// checkIndex verifies the occupancy index agrees with agent positions.
func checkIndex(t *testing.T, occ *Occupancy, agents []Agent) {
	t.Helper()
	for i, a := range agents {
		if got := occ.At(a.Pos.X, a.Pos.Y); got != i {
			t.Errorf("index at (%d,%d) = %d, want %d", a.Pos.X, a.Pos.Y, got, i)
		}
	}
	if got := occ.Count(); got != len(agents) {
		t.Errorf("occupied cells = %d, want %d", got, len(agents))
	}
}

func TestOccupancyRebuildSkipsDead(t *testing.T) {
	agents := agentsAt([2]int{1, 1}, [2]int{2, 2})
	agents[1].Vitals.Health = 0

	occ := NewOccupancy(NewGrid(5, 5))
	occ.Rebuild(agents)

	if !occ.Occupied(1, 1) {
		t.Error("live agent cell should be occupied")
	}
	if occ.Occupied(2, 2) {
		t.Error("dead agent cell should be free")
	}
}

func TestTryPushIntoFreeCell(t *testing.T) {
	agents := agentsAt([2]int{4, 5})
	occ := NewOccupancy(NewGrid(10, 10))
	occ.Rebuild(agents)

	if !occ.TryPush(agents, 0, 0, 1, 0, 3) {
		t.Fatal("push into free cell failed")
	}
	if got := positions(agents)[0]; got != [2]int{4, 6} {
		t.Errorf("position = %v, want [4 6]", got)
	}
	if occ.Occupied(4, 5) {
		t.Error("old cell should be freed")
	}
	checkIndex(t, occ, agents)
}

func TestTryPushChain(t *testing.T) {
	// Column of three agents pushed down by one.
	agents := agentsAt([2]int{2, 2}, [2]int{2, 3}, [2]int{2, 4})
	occ := NewOccupancy(NewGrid(10, 10))
	occ.Rebuild(agents)

	if !occ.TryPush(agents, 0, 0, 1, 0, 3) {
		t.Fatal("chain push failed")
	}
	want := [][2]int{{2, 3}, {2, 4}, {2, 5}}
	for i, p := range positions(agents) {
		if p != want[i] {
			t.Errorf("agent %d at %v, want %v", i, p, want[i])
		}
	}
	checkIndex(t, occ, agents)
}

func TestTryPushDepthLimit(t *testing.T) {
	tests := []struct {
		name   string
		length int
		wantOK bool
	}{
		{"four agents fit depth 0..3", 4, true},
		{"five agents exceed depth", 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := make([][2]int, tt.length)
			for i := range cells {
				cells[i] = [2]int{i + 1, 5}
			}
			agents := agentsAt(cells...)
			before := positions(agents)
			occ := NewOccupancy(NewGrid(20, 10))
			occ.Rebuild(agents)

			ok := occ.TryPush(agents, 0, 1, 0, 0, 3)
			if ok != tt.wantOK {
				t.Fatalf("TryPush = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				for i, p := range positions(agents) {
					if p != before[i] {
						t.Errorf("agent %d moved to %v after failed push", i, p)
					}
				}
			}
			checkIndex(t, occ, agents)
		})
	}
}

func TestTryPushOffGridLeavesChainUnchanged(t *testing.T) {
	// The last agent sits on the right edge; pushes never wrap.
	agents := agentsAt([2]int{7, 0}, [2]int{8, 0}, [2]int{9, 0})
	before := positions(agents)
	occ := NewOccupancy(NewGrid(10, 10))
	occ.Rebuild(agents)

	if occ.TryPush(agents, 0, 1, 0, 0, 3) {
		t.Fatal("push off the grid should fail")
	}
	for i, p := range positions(agents) {
		if p != before[i] {
			t.Errorf("agent %d moved to %v after failed push", i, p)
		}
	}
	checkIndex(t, occ, agents)
}

func TestTryPushBeyondMaxDepthFailsImmediately(t *testing.T) {
	agents := agentsAt([2]int{1, 1})
	occ := NewOccupancy(NewGrid(5, 5))
	occ.Rebuild(agents)

	if occ.TryPush(agents, 0, 1, 0, 4, 3) {
		t.Error("push at depth 4 should fail")
	}
}

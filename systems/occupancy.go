package systems

import "github.com/pthm-cable/flock/components"

const emptyCell = -1

// Agent is a per-tick view of one bird's components. The pointers refer to
// ECS storage and stay valid until the world is structurally changed.
type Agent struct {
	Pos     *components.Position
	Vel     *components.Velocity
	Home    *components.Home
	Heading *components.Heading
	Vitals  *components.Vitals
}

// Alive reports whether the agent takes part in occupancy.
func (a Agent) Alive() bool {
	return a.Vitals.Alive()
}

// Occupancy maps each grid cell to the index of the live agent standing on it.
// It is rebuilt once per tick and then mutated in place as agents move, so
// agents processed later in a tick see earlier moves.
type Occupancy struct {
	grid  Grid
	cells []int32
}

// NewOccupancy creates an empty occupancy index for the grid.
func NewOccupancy(g Grid) *Occupancy {
	o := &Occupancy{grid: g, cells: make([]int32, g.Cells())}
	o.Clear()
	return o
}

// Grid returns the grid the index covers.
func (o *Occupancy) Grid() Grid {
	return o.grid
}

// Clear marks every cell free.
func (o *Occupancy) Clear() {
	for i := range o.cells {
		o.cells[i] = emptyCell
	}
}

// Rebuild indexes every live agent at its current cell. If two live agents
// share a cell the later one in the slice wins the slot.
func (o *Occupancy) Rebuild(agents []Agent) {
	o.Clear()
	for i, a := range agents {
		if !a.Alive() {
			continue
		}
		o.cells[o.grid.Index(a.Pos.X, a.Pos.Y)] = int32(i)
	}
}

// At returns the index of the agent on the cell, or -1 if the cell is free.
func (o *Occupancy) At(x, y int) int {
	return int(o.cells[o.grid.Index(x, y)])
}

// Occupied reports whether the cell holds a live agent.
func (o *Occupancy) Occupied(x, y int) bool {
	return o.cells[o.grid.Index(x, y)] != emptyCell
}

// Count returns the number of occupied cells.
func (o *Occupancy) Count() int {
	n := 0
	for _, c := range o.cells {
		if c != emptyCell {
			n++
		}
	}
	return n
}

// Move relocates agent i to (x,y), freeing its old cell. The target must be free.
func (o *Occupancy) Move(agents []Agent, i, x, y int) {
	a := agents[i]
	old := o.grid.Index(a.Pos.X, a.Pos.Y)
	if o.cells[old] == int32(i) {
		o.cells[old] = emptyCell
	}
	a.Pos.X, a.Pos.Y = x, y
	o.cells[o.grid.Index(x, y)] = int32(i)
}

// TryPush shifts agent i one cell by (dx,dy), recursively pushing whoever is
// in the way. The destination is not wrapped: a push off the grid fails.
// Depth counts from 0 and fails beyond maxDepth. Moves are committed only
// after every deeper push in the chain has succeeded, so a failed chain
// leaves all positions and the index unchanged.
func (o *Occupancy) TryPush(agents []Agent, i, dx, dy, depth, maxDepth int) bool {
	if depth > maxDepth {
		return false
	}
	a := agents[i]
	tx, ty := a.Pos.X+dx, a.Pos.Y+dy
	if !o.grid.InBounds(tx, ty) {
		return false
	}
	occ := o.At(tx, ty)
	if occ == i {
		return false
	}
	if occ != emptyCell && !o.TryPush(agents, occ, dx, dy, depth+1, maxDepth) {
		return false
	}
	o.Move(agents, i, tx, ty)
	return true
}

package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/flock/components"
)

// FlockForces holds the three boids components for one agent.
type FlockForces struct {
	Separation r2.Vec
	Alignment  r2.Vec
	Cohesion   r2.Vec
}

// Neighborhood answers neighbour queries for flocking by scanning the
// occupancy index around an agent instead of the whole flock.
type Neighborhood struct {
	occ *Occupancy
	xs  []int
	ys  []int
}

// NewNeighborhood creates a neighbourhood scanner over the occupancy index.
func NewNeighborhood(occ *Occupancy) *Neighborhood {
	return &Neighborhood{occ: occ}
}

// Flock computes separation, alignment and cohesion for agent i.
// Neighbours are live agents at toroidal Manhattan distance d with 0 < d < radius.
//
// Separation sums the displacement away from each neighbour weighted by
// (radius - d + 1) and averages over contributors. Alignment averages
// neighbour velocities. Cohesion steers toward the neighbours' mean
// position, scaled by CohesionScale.
func (n *Neighborhood) Flock(agents []Agent, i int, p FlockingParams) FlockForces {
	g := n.occ.grid
	self := agents[i].Pos
	r := max(p.SeparationRadius, p.AlignmentRadius, p.CohesionRadius) - 1
	if r < 1 {
		return FlockForces{}
	}

	var sep, ali, coh r2.Vec
	var nSep, nAli, nCoh int

	n.xs = ringOffsets(n.xs, r, g.W)
	n.ys = ringOffsets(n.ys, r, g.H)
	for _, dy := range n.ys {
		rem := r - abs(dy)
		for _, dx := range n.xs {
			if abs(dx) > rem {
				continue
			}
			d := abs(dx) + abs(dy)
			if d == 0 {
				continue
			}
			x, y := g.Wrap(self.X+dx, self.Y+dy)
			j := n.occ.At(x, y)
			if j == emptyCell || j == i {
				continue
			}
			// Displacement from the neighbour back to self.
			away := r2.Vec{X: float64(-dx), Y: float64(-dy)}
			if d < p.SeparationRadius {
				sep = r2.Add(sep, r2.Scale(float64(p.SeparationRadius-d+1), away))
				nSep++
			}
			if d < p.AlignmentRadius {
				v := agents[j].Vel
				ali = r2.Add(ali, r2.Vec{X: v.X, Y: v.Y})
				nAli++
			}
			if d < p.CohesionRadius {
				coh = r2.Add(coh, r2.Vec{X: float64(dx), Y: float64(dy)})
				nCoh++
			}
		}
	}

	var f FlockForces
	if nSep > 0 {
		f.Separation = r2.Scale(1/float64(nSep), sep)
	}
	if nAli > 0 {
		f.Alignment = r2.Scale(1/float64(nAli), ali)
	}
	if nCoh > 0 {
		// Mean neighbour offset is the mean position minus self.
		f.Cohesion = r2.Scale(p.CohesionScale/float64(nCoh), coh)
	}
	return f
}

// FoodItem is a food cell.
type FoodItem struct {
	X, Y int
}

// FoodIndex holds the food set for a tick with a per-cell lookup.
// Items are removed from the lookup as they are eaten.
type FoodIndex struct {
	grid   Grid
	items  []FoodItem
	cells  []int32
	eaten  []bool
	left   int
	xs, ys []int
}

// NewFoodIndex indexes the food items on the grid. Items sharing a cell are
// resolved in favour of the first.
func NewFoodIndex(g Grid, items []FoodItem) *FoodIndex {
	fi := &FoodIndex{grid: g, cells: make([]int32, g.Cells())}
	fi.Reset(items)
	return fi
}

// Reset replaces the indexed items.
func (fi *FoodIndex) Reset(items []FoodItem) {
	for i := range fi.cells {
		fi.cells[i] = emptyCell
	}
	fi.items = items
	fi.eaten = fi.eaten[:0]
	fi.left = 0
	for i, it := range items {
		fi.eaten = append(fi.eaten, false)
		idx := fi.grid.Index(it.X, it.Y)
		if fi.cells[idx] == emptyCell {
			fi.cells[idx] = int32(i)
			fi.left++
		}
	}
}

// Len returns the number of uneaten indexed items.
func (fi *FoodIndex) Len() int {
	return fi.left
}

// At returns the index of the uneaten food on the cell, or -1.
func (fi *FoodIndex) At(x, y int) int {
	return int(fi.cells[fi.grid.Index(x, y)])
}

// Eat removes the food at index i from the lookup.
func (fi *FoodIndex) Eat(i int) {
	it := fi.items[i]
	idx := fi.grid.Index(it.X, it.Y)
	if fi.cells[idx] == int32(i) {
		fi.cells[idx] = emptyCell
		fi.left--
	}
	fi.eaten[i] = true
}

// Eaten reports whether item i was consumed.
func (fi *FoodIndex) Eaten(i int) bool {
	return fi.eaten[i]
}

// Nearest finds the closest food within radius (toroidal Manhattan,
// inclusive). It returns the toroidal displacement toward it and the
// distance. ok is false when no food is in range.
func (fi *FoodIndex) Nearest(x, y, radius int) (dx, dy, dist int, ok bool) {
	if fi.left == 0 || radius < 0 {
		return 0, 0, 0, false
	}
	g := fi.grid
	fi.xs = ringOffsets(fi.xs, radius, g.W)
	fi.ys = ringOffsets(fi.ys, radius, g.H)
	best := math.MaxInt
	for _, oy := range fi.ys {
		rem := radius - abs(oy)
		for _, ox := range fi.xs {
			if abs(ox) > rem {
				continue
			}
			d := abs(ox) + abs(oy)
			if d >= best {
				continue
			}
			cx, cy := g.Wrap(x+ox, y+oy)
			if fi.At(cx, cy) == emptyCell {
				continue
			}
			best, dx, dy = d, ox, oy
		}
	}
	if best == math.MaxInt {
		return 0, 0, 0, false
	}
	return dx, dy, best, true
}

// FoodAttraction scales the displacement to the nearest sensed food.
func FoodAttraction(dx, dy int, k float64) r2.Vec {
	return r2.Vec{X: float64(dx) * k, Y: float64(dy) * k}
}

// Pointer is the predator position in grid cells. Active is false when the
// pointer is off the canvas, which disables the predator entirely.
type Pointer struct {
	X, Y   int
	Active bool
}

// PredatorRadius interpolates the avoidance radius from RadiusMax on small
// grids to RadiusMin on large grids.
func PredatorRadius(gridSize int, p PredatorParams) float64 {
	span := p.RadiusMaxGrid - p.RadiusMinGrid
	t := 1.0
	if span > 0 {
		t = clamp01((float64(gridSize) - p.RadiusMinGrid) / span)
	}
	return p.RadiusMax*(1-t) + p.RadiusMin*t
}

// PredatorRepulsion pushes an agent away from the pointer. Strength falls
// linearly from (R+1)/R at the pointer to 1/R at the radius and is zero
// beyond it. An agent exactly under the pointer gets a random jitter in
// [-1,1] per axis instead.
func PredatorRepulsion(g Grid, x, y int, ptr Pointer, p PredatorParams, rng *rand.Rand) r2.Vec {
	if !ptr.Active {
		return r2.Vec{}
	}
	px, py := g.Wrap(ptr.X, ptr.Y)
	dx, dy := g.Delta(px, py, x, y)
	if dx == 0 && dy == 0 {
		return r2.Vec{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1}
	}
	away := r2.Vec{X: float64(dx), Y: float64(dy)}
	dist := r2.Norm(away)
	radius := PredatorRadius(g.MaxDim(), p)
	if dist > radius {
		return r2.Vec{}
	}
	strength := (radius - dist + 1) / radius
	return r2.Scale(strength/dist, away)
}

// WallRepulsion sums a linear push away from each edge closer than thresh
// and normalises the result to just under unit length.
func WallRepulsion(g Grid, x, y, thresh int) r2.Vec {
	if thresh <= 0 {
		return r2.Vec{}
	}
	t := float64(thresh)
	var f r2.Vec
	if d := x; d < thresh {
		f.X += (t - float64(d)) / t
	}
	if d := g.W - 1 - x; d < thresh {
		f.X -= (t - float64(d)) / t
	}
	if d := y; d < thresh {
		f.Y += (t - float64(d)) / t
	}
	if d := g.H - 1 - y; d < thresh {
		f.Y -= (t - float64(d)) / t
	}
	return r2.Scale(1/(r2.Norm(f)+1e-6), f)
}

// HomingSpring pulls an agent straight toward its home slot. The
// displacement is the direct difference, not the toroidal one. A share of the
// alignment force is mixed in to keep the flock coherent while it regroups.
func HomingSpring(x, y int, home components.Home, alignment r2.Vec, ramp float64, h HomingParams, aliWeight float64) r2.Vec {
	disp := r2.Vec{X: float64(home.X - x), Y: float64(home.Y - y)}
	f := r2.Scale(h.HomeWeight*home.Bias*ramp, disp)
	return r2.Add(f, r2.Scale((h.AlignmentBoost-1)*aliWeight*ramp, alignment))
}

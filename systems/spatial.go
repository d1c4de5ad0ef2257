// Package systems implements the per-tick flock rules: the toroidal metric,
// steering forces, behaviour selection, the homing phase clock and the
// occupancy resolver with its recursive push.
package systems

// Grid is a W x H torus. All bird and food coordinates live in [0,W)x[0,H).
type Grid struct {
	W, H int
}

// NewGrid creates a grid, flooring both dimensions at 1.
func NewGrid(w, h int) Grid {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return Grid{W: w, H: h}
}

// ToroidalDelta returns the signed shortest difference b-a on a ring of size dim.
// When |b-a| exceeds half the ring the wrap-around path is taken instead.
func ToroidalDelta(a, b, dim int) int {
	d := b - a
	if 2*abs(d) > dim {
		if d > 0 {
			d -= dim
		} else {
			d += dim
		}
	}
	return d
}

// Delta returns the shortest toroidal displacement from (x1,y1) to (x2,y2).
func (g Grid) Delta(x1, y1, x2, y2 int) (dx, dy int) {
	return ToroidalDelta(x1, x2, g.W), ToroidalDelta(y1, y2, g.H)
}

// Manhattan returns the toroidal Manhattan distance between two cells.
func (g Grid) Manhattan(x1, y1, x2, y2 int) int {
	dx, dy := g.Delta(x1, y1, x2, y2)
	return abs(dx) + abs(dy)
}

// Wrap maps any integer cell onto the torus.
func (g Grid) Wrap(x, y int) (int, int) {
	return mod(x, g.W), mod(y, g.H)
}

// InBounds reports whether a cell lies on the grid without wrapping.
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Index returns the flat index y*W+x of an in-bounds cell.
func (g Grid) Index(x, y int) int {
	return y*g.W + x
}

// Cells returns W*H.
func (g Grid) Cells() int {
	return g.W * g.H
}

// MaxDim returns the larger grid dimension.
func (g Grid) MaxDim() int {
	if g.W > g.H {
		return g.W
	}
	return g.H
}

// ringOffsets returns the distinct signed offsets within radius r on a ring of
// size dim. Each offset reaches a different cell, so small rings are not
// visited twice.
func ringOffsets(dst []int, r, dim int) []int {
	dst = dst[:0]
	for d := -r; d <= r; d++ {
		if 2*abs(d) > dim {
			continue
		}
		// On even rings +dim/2 and -dim/2 land on the same cell.
		if dim%2 == 0 && 2*d == -dim {
			continue
		}
		dst = append(dst, d)
	}
	return dst
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// mod computes the non-negative modulo (Go's % can return negative).
func mod(x, m int) int {
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

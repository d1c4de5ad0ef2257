// Package camera maps the toroidal cell grid onto a screen canvas.
package camera

import "math"

// Camera fits a cell grid into a viewport with square cells.
// The glyph layout is padded with extra rows so the grid fills the
// available height; the text is centred inside that padding.
type Camera struct {
	// Canvas origin on screen
	X, Y float32

	// Available viewport dimensions in pixels
	ViewportW, ViewportH float32

	// Cell edge in pixels
	Cell float32

	// Effective grid dimensions (layout width, padded height)
	GridW, GridH int

	// Rows of padding above the glyph layout
	SpawnOffsetRows int
}

// Fit sizes the canvas for a layoutW x layoutH glyph layout inside a
// viewW x viewH viewport whose top-left corner is at (x, y).
func Fit(x, y, viewW, viewH float32, layoutW, layoutH int) *Camera {
	c := &Camera{X: x, Y: y}
	c.fit(viewW, viewH, layoutW, layoutH)
	return c
}

func (c *Camera) fit(viewW, viewH float32, layoutW, layoutH int) {
	layoutW = max(layoutW, 1)
	layoutH = max(layoutH, 1)
	c.ViewportW = viewW
	c.ViewportH = viewH

	cell := min(viewW/float32(layoutW), viewH/float32(layoutH))
	c.Cell = max(2, cell)

	padded := int(math.Floor(float64(viewH / c.Cell)))
	extra := max(0, padded-layoutH)
	c.GridW = layoutW
	c.GridH = layoutH + extra
	c.SpawnOffsetRows = extra / 2
}

// Resize refits the grid after a viewport or layout change. It reports
// whether the grid dimensions changed, in which case the flock must be
// re-initialised.
func (c *Camera) Resize(viewW, viewH float32, layoutW, layoutH int) bool {
	w, h := c.GridW, c.GridH
	c.fit(viewW, viewH, layoutW, layoutH)
	return w != c.GridW || h != c.GridH
}

// CanvasSize returns the drawn canvas dimensions in pixels.
func (c *Camera) CanvasSize() (w, h float32) {
	return float32(math.Ceil(float64(float32(c.GridW) * c.Cell))),
		float32(math.Ceil(float64(float32(c.GridH) * c.Cell)))
}

// CellToScreen returns the screen position of the centre of cell (cx, cy).
func (c *Camera) CellToScreen(cx, cy float32) (sx, sy float32) {
	sx = c.X + cx*c.Cell + c.Cell/2
	sy = c.Y + cy*c.Cell + c.Cell/2
	return sx, sy
}

// ScreenToCell returns the cell under a screen point. ok is false when the
// point lies outside the canvas.
func (c *Camera) ScreenToCell(sx, sy float32) (cx, cy int, ok bool) {
	w, h := c.CanvasSize()
	lx := sx - c.X
	ly := sy - c.Y
	if lx < 0 || ly < 0 || lx >= w || ly >= h {
		return 0, 0, false
	}
	cx = mod(int(math.Floor(float64(lx/c.Cell))), c.GridW)
	cy = mod(int(math.Floor(float64(ly/c.Cell))), c.GridH)
	return cx, cy, true
}

// mod computes the positive modulo (Go's % can return negative).
func mod(x, m int) int {
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}

// Package renderer draws the flock, its food and the grid with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/camera"
	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/flock"
)

// FlockRenderer draws birds as oriented triangles and food as dots.
type FlockRenderer struct {
	Bird     rl.Color
	Weak     rl.Color
	Food     rl.Color
	HomeMark rl.Color
}

// NewFlockRenderer creates a renderer with the default palette.
func NewFlockRenderer() *FlockRenderer {
	return &FlockRenderer{
		Bird:     rl.Color{R: 235, G: 235, B: 225, A: 255},
		Weak:     rl.Color{R: 120, G: 120, B: 130, A: 255},
		Food:     rl.Color{R: 240, G: 190, B: 60, A: 255},
		HomeMark: rl.Color{R: 70, G: 110, B: 160, A: 120},
	}
}

// DrawFood renders a dot of a third of a cell on every food item.
func (r *FlockRenderer) DrawFood(cam *camera.Camera, food []components.Position) {
	radius := cam.Cell / 6
	for _, f := range food {
		sx, sy := cam.CellToScreen(float32(f.X), float32(f.Y))
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius, r.Food)
	}
}

// DrawHomes marks every bird's formation slot.
func (r *FlockRenderer) DrawHomes(cam *camera.Camera, birds []flock.BirdView) {
	half := cam.Cell / 2
	for i := range birds {
		sx, sy := cam.CellToScreen(float32(birds[i].HomeX), float32(birds[i].HomeY))
		rl.DrawRectangleLinesEx(rl.Rectangle{X: sx - half, Y: sy - half, Width: cam.Cell, Height: cam.Cell}, 1, r.HomeMark)
	}
}

// DrawBirds renders each bird at its cell plus its cosmetic offset, pointing
// along its heading. size scales the triangle relative to a cell.
func (r *FlockRenderer) DrawBirds(cam *camera.Camera, birds []flock.BirdView, size float32) {
	radius := cam.Cell * size * 0.5
	for i := range birds {
		b := &birds[i]
		sx, sy := cam.CellToScreen(float32(b.X), float32(b.Y))
		sx += float32(b.OX)
		sy += float32(b.OY)

		color := lerpColor(r.Weak, r.Bird, float32(b.Health))
		drawOrientedTriangle(sx, sy, birdAngle(b), radius, color)
	}
}

// birdAngle returns the draw angle from the heading, falling back to the
// velocity and then to straight up.
func birdAngle(b *flock.BirdView) float32 {
	switch {
	case b.HX != 0 || b.HY != 0:
		return float32(math.Atan2(float64(b.HY), float64(b.HX)))
	case b.VX != 0 || b.VY != 0:
		return float32(math.Atan2(b.VY, b.VX))
	default:
		return -math.Pi / 2
	}
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
func drawOrientedTriangle(x, y, heading, radius float32, color rl.Color) {
	cos := float32(math.Cos(float64(heading)))
	sin := float32(math.Sin(float64(heading)))

	front := rl.Vector2{X: x + cos*radius*1.5, Y: y + sin*radius*1.5}

	backAngle := float64(heading) + math.Pi*0.8
	backLeft := rl.Vector2{
		X: x + float32(math.Cos(backAngle))*radius,
		Y: y + float32(math.Sin(backAngle))*radius,
	}
	backAngle = float64(heading) - math.Pi*0.8
	backRight := rl.Vector2{
		X: x + float32(math.Cos(backAngle))*radius,
		Y: y + float32(math.Sin(backAngle))*radius,
	}

	// DrawTriangle requires counter-clockwise winding
	rl.DrawTriangle(front, backRight, backLeft, color)
}

func lerpColor(a, b rl.Color, t float32) rl.Color {
	t = min(max(t, 0), 1)
	mix := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t)
	}
	return rl.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

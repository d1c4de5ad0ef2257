package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/camera"
)

// GridBackground draws the canvas and its cell lines. The lines are baked
// into a render texture and rebuilt only when the camera geometry changes.
type GridBackground struct {
	target      rl.RenderTexture2D
	initialized bool

	// geometry the texture was baked for
	w, h  int32
	cell  float32
	gridW int
	gridH int

	Fill rl.Color
	Line rl.Color
}

// NewGridBackground creates a background renderer.
func NewGridBackground() *GridBackground {
	return &GridBackground{
		Fill: rl.Color{R: 8, G: 10, B: 14, A: 255},
		Line: rl.Color{R: 32, G: 38, B: 46, A: 255},
	}
}

// Draw renders the canvas for cam. Grid lines are drawn when showGrid is set.
func (b *GridBackground) Draw(cam *camera.Camera, showGrid bool) {
	cw, ch := cam.CanvasSize()
	if !showGrid {
		rl.DrawRectangle(int32(cam.X), int32(cam.Y), int32(cw), int32(ch), b.Fill)
		return
	}

	b.bake(cam, int32(cw), int32(ch))

	// Render textures are stored upside down
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(b.w), Height: -float32(b.h)}
	rl.DrawTextureRec(b.target.Texture, src, rl.Vector2{X: cam.X, Y: cam.Y}, rl.White)
}

// bake redraws the cached texture if the geometry changed.
func (b *GridBackground) bake(cam *camera.Camera, w, h int32) {
	if b.initialized && b.w == w && b.h == h && b.cell == cam.Cell &&
		b.gridW == cam.GridW && b.gridH == cam.GridH {
		return
	}
	if b.initialized {
		rl.UnloadRenderTexture(b.target)
	}

	b.target = rl.LoadRenderTexture(max(w, 1), max(h, 1))
	b.w, b.h = w, h
	b.cell = cam.Cell
	b.gridW, b.gridH = cam.GridW, cam.GridH
	b.initialized = true

	rl.BeginTextureMode(b.target)
	rl.ClearBackground(b.Fill)
	for x := 0; x <= cam.GridW; x++ {
		px := float32(x) * cam.Cell
		rl.DrawLineV(rl.Vector2{X: px, Y: 0}, rl.Vector2{X: px, Y: float32(h)}, b.Line)
	}
	for y := 0; y <= cam.GridH; y++ {
		py := float32(y) * cam.Cell
		rl.DrawLineV(rl.Vector2{X: 0, Y: py}, rl.Vector2{X: float32(w), Y: py}, b.Line)
	}
	rl.EndTextureMode()
}

// Unload frees resources.
func (b *GridBackground) Unload() {
	if b.initialized {
		rl.UnloadRenderTexture(b.target)
		b.initialized = false
	}
}

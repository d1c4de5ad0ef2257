package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/config"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight + 2
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawSlider draws a labelled slider for t and writes the new value into
// cfg. It reports whether the value changed.
func (r *Renderer) DrawSlider(x, y, width int32, t config.Tunable, cfg *config.Config) (int32, bool) {
	cur := t.Get(cfg)
	rl.DrawText(t.Label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	value := fmt.Sprintf(t.Format, cur)
	vw := rl.MeasureText(value, r.Theme.FontSize)
	rl.DrawText(value, x+width-vw, y, r.Theme.FontSize, r.Theme.ValueColor)
	y += r.Theme.LineHeight

	bounds := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: float32(r.Theme.SliderHeight)}
	next := gui.SliderBar(bounds, "", "", float32(cur), float32(t.Min), float32(t.Max))
	y += r.Theme.SliderHeight + 6

	if next == float32(cur) {
		return y, false
	}
	t.Set(cfg, float64(next))
	return y, t.Get(cfg) != cur
}

// DrawButton draws a button and reports whether it was clicked.
func (r *Renderer) DrawButton(x, y, width int32, text string) bool {
	bounds := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: float32(r.Theme.ButtonHeight)}
	return gui.Button(bounds, text)
}

// DrawToggle draws a status square, a name and the key that flips it.
func (r *Renderer) DrawToggle(x, y, width int32, name, keyLabel string, enabled bool) int32 {
	statusColor := r.Theme.InactiveColor
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = r.Theme.ActiveColor
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(name, x+14, y, r.Theme.FontSize, nameColor)

	if keyLabel != "" {
		keyText := fmt.Sprintf("[%s]", keyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
	return y + r.Theme.LineHeight
}

// Contains reports whether a screen point lies inside a panel rectangle.
func Contains(x, y, w, h int32, p rl.Vector2) bool {
	return p.X >= float32(x) && p.Y >= float32(y) && p.X < float32(x+w) && p.Y < float32(y+h)
}

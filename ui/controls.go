package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/config"
)

// PanelStatus is the state the panel labels its buttons with.
type PanelStatus struct {
	Paused   bool
	Sound    bool
	WallMode string
}

// ControlsPanel renders the right-side panel with sliders, buttons and
// overlay toggles.
type ControlsPanel struct {
	renderer  *Renderer
	tunables  []config.Tunable
	x, y      int32
	width     int32
	height    int32
}

// NewControlsPanel creates a panel at (x, y).
func NewControlsPanel(x, y, width, height int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		tunables: config.Tunables(),
		x:        x,
		y:        y,
		width:    width,
		height:   height,
	}
}

// SetBounds moves and resizes the panel.
func (c *ControlsPanel) SetBounds(x, y, width, height int32) {
	c.x, c.y, c.width, c.height = x, y, width, height
}

// Hovered reports whether the mouse is over the panel.
func (c *ControlsPanel) Hovered() bool {
	return c.width > 0 && Contains(c.x, c.y, c.width, c.height, rl.GetMousePosition())
}

// Draw renders the panel and applies slider changes to cfg. Returned
// actions are for the caller to carry out.
func (c *ControlsPanel) Draw(cfg *config.Config, overlays *OverlayRegistry, st PanelStatus) Actions {
	var act Actions
	if c.width <= 0 {
		return act
	}

	r := c.renderer
	padding := r.Theme.Padding
	inner := c.width - padding*2
	x := c.x + padding

	r.DrawPanel(c.x, c.y, c.width, c.height)
	y := c.y + padding

	y = r.DrawSectionHeader(x, y, "Word")
	y = r.DrawLabelValue(x, y, "Text", cfg.Grid.Text)
	y += 4

	y = r.DrawSectionHeader(x, y, "Tuning")
	for _, t := range c.tunables {
		var changed bool
		y, changed = r.DrawSlider(x, y, inner, t, cfg)
		if !changed {
			continue
		}
		act.ParamsChanged = true
		if t.Reinit {
			act.Reinit = true
		}
	}

	y = r.DrawSectionHeader(x, y, "Actions")
	half := (inner - 6) / 2
	if r.DrawButton(x, y, half, pick(st.Paused, "Play", "Pause")) {
		act.TogglePause = true
	}
	if r.DrawButton(x+half+6, y, half, "Refresh") {
		act.Reinit = true
	}
	y += r.Theme.ButtonHeight + 6
	if r.DrawButton(x, y, half, "Feed") {
		act.RespawnFood = true
	}
	if r.DrawButton(x+half+6, y, half, pick(st.Sound, "Sound: on", "Sound: off")) {
		act.ToggleSound = true
	}
	y += r.Theme.ButtonHeight + 6
	if r.DrawButton(x, y, inner, "Walls: "+st.WallMode) {
		act.ToggleWalls = true
	}
	y += r.Theme.ButtonHeight + 10

	y = r.DrawSectionHeader(x, y, "Overlays")
	for _, desc := range overlays.All() {
		y = r.DrawToggle(x, y, inner, desc.Name, desc.KeyLabel, overlays.IsEnabled(desc.ID))
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) &&
			Contains(x, y-r.Theme.LineHeight, inner, r.Theme.LineHeight, rl.GetMousePosition()) {
			overlays.Toggle(desc.ID)
		}
	}

	return act
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

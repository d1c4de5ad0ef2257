package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Word   string
	Phase  string
	Ramp   float64
	Frame  int
	Birds  int
	Food   int
	AtHome float64
	FPS    int32
	Paused bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD at the top-left of the canvas.
func (h *HUD) Draw(x, y int32, data HUDData) {
	phase := data.Phase
	if data.Phase == "homing" && data.Ramp < 1 {
		phase = fmt.Sprintf("%s %.0f%%", phase, data.Ramp*100)
	}
	rl.DrawText(fmt.Sprintf("%s | %s", data.Word, phase), x+10, y+10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Frame: %d | Birds: %d | Food: %d | Home: %.0f%% | FPS: %d",
			data.Frame, data.Birds, data.Food, data.AtHome*100, data.FPS),
		x+10, y+35, 14, rl.LightGray,
	)

	if data.Paused {
		rl.DrawText("PAUSED", x+10, y+55, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the canvas.
func (h *HUD) DrawControls(x, bottom int32, controls string) {
	rl.DrawText(controls, x+10, bottom-22, 12, rl.Gray)
}

// PerfPanel renders the per-stage timing breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, stages []string) {
	x, y := p.x, p.y
	width := int32(230)
	height := int32(40 + 14*len(stages))
	p.renderer.DrawPanel(x, y, width, height)
	x += 8
	y += 6

	rl.DrawText(
		fmt.Sprintf("Tick %s  TPS %.0f", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond),
		x, y, 14, rl.Yellow,
	)
	y += 20

	for _, name := range stages {
		avg := stats.PhaseAvg[name]
		pct := stats.PhasePct[name]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %7s %5.1f%%", name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/telemetry"
	"github.com/pthm-cable/flock/ui"
)

const controlsLegend = "type: edit word  [Space] pause  ^R refresh  ^F feed  ^W walls  ^M sound  ^P perf  [</>] speed"

// Draw renders the game.
func (g *Game) Draw() {
	g.perf.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.background.Draw(g.cam, g.overlays.IsEnabled(ui.OverlayGrid))

	if g.overlays.IsEnabled(ui.OverlayFood) {
		g.food = g.sim.Food(g.food[:0])
		g.flockDraw.DrawFood(g.cam, g.food)
	}

	g.birds = g.sim.Birds(g.birds[:0])
	if g.overlays.IsEnabled(ui.OverlayHomes) {
		g.flockDraw.DrawHomes(g.cam, g.birds)
	}
	g.flockDraw.DrawBirds(g.cam, g.birds, float32(g.cfg.Render.BirdSize))

	phase := g.sim.Phase()
	g.hud.Draw(int32(g.cam.X), int32(g.cam.Y), ui.HUDData{
		Word:   g.cfg.Grid.Text,
		Phase:  phase.Name(),
		Ramp:   phase.Ramp(g.simTime, g.params.Homing.Ramp),
		Frame:  g.frame,
		Birds:  len(g.birds),
		Food:   g.sim.FoodCount(),
		AtHome: g.sim.AtHome(g.cfg.Telemetry.HomeTolerance),
		FPS:    rl.GetFPS(),
		Paused: g.paused,
	})
	g.hud.DrawControls(int32(g.cam.X), int32(g.screenHeight), controlsLegend)

	if g.showPerf {
		g.perfPanel.Draw(g.perf.Stats(), telemetry.Phases())
	}

	act := g.panel.Draw(g.cfg, g.overlays, ui.PanelStatus{
		Paused:   g.paused,
		Sound:    g.chirper.Enabled(),
		WallMode: g.cfg.Walls.Mode,
	})

	rl.EndDrawing()

	if act.Any() {
		g.applyActions(act)
	}
}

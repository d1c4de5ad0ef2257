package game

import (
	"unicode"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/glyph"
	"github.com/pthm-cable/flock/ui"
)

func screenSize() (w, h float32) {
	return float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
}

func frameTime() float32 {
	return rl.GetFrameTime()
}

// handleInput processes keyboard and pointer input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
	if ctrl {
		g.handleCommandKeys()
	}
	g.handleTyping(ctrl)
	g.updatePointer()
}

// handleCommandKeys handles Ctrl+key shortcuts.
func (g *Game) handleCommandKeys() {
	switch key := rl.GetKeyPressed(); key {
	case rl.KeyR:
		g.reinit()
	case rl.KeyF:
		g.sim.RespawnFood()
	case rl.KeyW:
		g.ToggleWalls()
	case rl.KeyM:
		g.enableSound(!g.chirper.Enabled())
	case rl.KeyP:
		g.showPerf = !g.showPerf
	default:
		g.overlays.HandleKeyPress(key)
	}
}

// handleTyping edits the word from typed characters. Characters typed with
// Ctrl held are commands and are discarded.
func (g *Game) handleTyping(ctrl bool) {
	word := []rune(g.cfg.Grid.Text)
	changed := false

	for r := rl.GetCharPressed(); r != 0; r = rl.GetCharPressed() {
		if ctrl || r == ' ' {
			continue
		}
		r = unicode.ToUpper(r)
		if !glyph.Has(r) || len(word) >= maxWordLen {
			continue
		}
		word = append(word, r)
		changed = true
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(word) > 0 {
		word = word[:len(word)-1]
		changed = true
	}

	if changed {
		g.SetWord(string(word))
	}
}

// handleResize refits the canvas and rebuilds the flock after a window resize.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w, h := screenSize()
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.refit()
	g.reinit()
}

// updatePointer maps the mouse onto a grid cell. Off the canvas, over the
// panel, or outside the window the predator is inactive.
func (g *Game) updatePointer() {
	g.pointer.Active = false
	if !rl.IsCursorOnScreen() || g.panel.Hovered() {
		return
	}
	m := rl.GetMousePosition()
	cx, cy, ok := g.cam.ScreenToCell(m.X, m.Y)
	if !ok {
		return
	}
	g.pointer.X, g.pointer.Y = cx, cy
	g.pointer.Active = true
}

// applyActions carries out requests made through the panel.
func (g *Game) applyActions(act ui.Actions) {
	if act.TogglePause {
		g.paused = !g.paused
	}
	if act.ToggleSound {
		g.enableSound(!g.chirper.Enabled())
	}
	if act.ToggleWalls {
		g.ToggleWalls()
	}
	if act.ParamsChanged {
		g.applyConfig()
		if r := g.cfg.Grid.OffsetRange; r != g.sim.OffsetRange() {
			g.sim.SetOffsetRange(r)
		}
	}
	if act.Reinit {
		g.refit()
		g.reinit()
	}
	if act.RespawnFood {
		g.sim.RespawnFood()
	}
}

// Package game wires the flock simulation to a raylib window, or runs it
// headless, with telemetry and sound.
package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/flock/audio"
	"github.com/pthm-cable/flock/camera"
	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/flock"
	"github.com/pthm-cable/flock/glyph"
	"github.com/pthm-cable/flock/renderer"
	"github.com/pthm-cable/flock/systems"
	"github.com/pthm-cable/flock/telemetry"
	"github.com/pthm-cable/flock/ui"
)

// maxWordLen caps the word typed into the window.
const maxWordLen = 16

// Options configures a game instance.
type Options struct {
	Config         *config.Config // nil = embedded defaults
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string  // empty = no CSV output
	Headless       bool
	StepsPerUpdate int
}

// Game holds the complete game state.
type Game struct {
	cfg    *config.Config
	params systems.Params
	sim    *flock.Simulation
	cam    *camera.Camera

	// Telemetry
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	logStats  bool

	// Sound, nil when headless
	chirper *audio.Chirper

	// Rendering, nil when headless
	background *renderer.GridBackground
	flockDraw  *renderer.FlockRenderer
	hud        *ui.HUD
	panel      *ui.ControlsPanel
	perfPanel  *ui.PerfPanel
	overlays   *ui.OverlayRegistry
	showPerf   bool

	// Snapshots reused every frame
	birds []flock.BirdView
	food  []components.Position

	// State
	headless       bool
	paused         bool
	stepsPerUpdate int
	simTime        time.Duration
	frame          int
	pointer        systems.Pointer

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game. In graphical mode the raylib window
// must already be open.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	g := &Game{
		cfg:            cfg,
		params:         cfg.Params(),
		sim:            flock.New(opts.Seed),
		collector:      telemetry.NewCollector(statsWindow, cfg.Physics.DT),
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:       opts.LogStats,
		headless:       opts.Headless,
		stepsPerUpdate: max(opts.StepsPerUpdate, 1),
		screenWidth:    float32(cfg.Screen.Width),
		screenHeight:   float32(cfg.Screen.Height),
	}
	g.sim.Timer = g.perf

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.output = output
	if err := g.output.WriteConfig(cfg); err != nil {
		g.output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	if !opts.Headless {
		g.initGraphics(opts.Seed)
	}

	g.refit()
	g.reinit()
	return g, nil
}

// initGraphics creates the renderers, the panel and the chirper.
func (g *Game) initGraphics(seed int64) {
	g.screenWidth, g.screenHeight = screenSize()
	g.background = renderer.NewGridBackground()
	g.flockDraw = renderer.NewFlockRenderer()
	g.hud = ui.NewHUD()
	g.overlays = ui.NewOverlayRegistry(g.cfg.Render.ShowGrid, g.cfg.Render.ShowFood, g.cfg.Render.ShowHomes)
	g.panel = ui.NewControlsPanel(0, 0, 0, 0)
	g.perfPanel = ui.NewPerfPanel(10, 80)

	g.chirper = audio.NewChirper(g.cfg.Audio, seed)
	if g.cfg.Audio.Enabled {
		g.enableSound(true)
	}
	g.sim.OnMove = func(e flock.MoveEvent) {
		g.chirper.OnMove(g.simTime, e)
	}
}

// enableSound turns chirps on or off, opening the audio device on first use.
// A device failure leaves sound off.
func (g *Game) enableSound(on bool) {
	if g.chirper == nil {
		return
	}
	if on {
		if err := g.chirper.Init(); err != nil {
			slog.Warn("audio unavailable, sound disabled", "error", err)
			on = false
		}
	}
	g.chirper.SetEnabled(on)
}

// viewport returns the screen area available to the canvas.
func (g *Game) viewport() (w, h float32) {
	w = g.screenWidth - float32(g.cfg.Screen.PanelWidth)
	return max(w, 1), max(g.screenHeight, 1)
}

// refit sizes the camera for the current word and viewport.
func (g *Game) refit() {
	layout := glyph.ComputeLayout(g.cfg.Grid.Text, g.cfg.Grid.Resolution)
	vw, vh := g.viewport()
	if g.cam == nil {
		g.cam = camera.Fit(0, 0, vw, vh, layout.Width, layout.Height)
	} else {
		g.cam.Resize(vw, vh, layout.Width, layout.Height)
	}

	// Centre the canvas horizontally in the viewport
	cw, _ := g.cam.CanvasSize()
	g.cam.X = max(0, (vw-cw)/2)

	if g.panel != nil {
		pw := int32(g.cfg.Screen.PanelWidth)
		g.panel.SetBounds(int32(vw), 0, pw, int32(g.screenHeight))
	}
}

// reinit rebuilds the flock from the current word on the fitted grid.
func (g *Game) reinit() {
	layout := glyph.ComputeLayout(g.cfg.Grid.Text, g.cfg.Grid.Resolution)
	g.sim.Reinit(layout, g.cam.GridW, g.cam.GridH, g.cam.SpawnOffsetRows, g.cfg.Grid.OffsetRange, g.simTime)
	g.collector.Reset(g.sim.Tick())
	g.frame = 0
}

// applyConfig pushes edited configuration into the per-tick parameters.
func (g *Game) applyConfig() {
	g.cfg.Normalize()
	g.params = g.cfg.Params()
}

// SetWord replaces the displayed word. With auto sizing the resolution
// follows the word length. The flock is rebuilt.
func (g *Game) SetWord(word string) {
	g.cfg.Grid.Text = word
	if g.cfg.Grid.Text == "" {
		g.cfg.Grid.Text = glyph.DefaultWord
	}
	if g.cfg.Grid.AutoSize {
		g.cfg.Grid.Resolution = glyph.GridSizeForWord(g.cfg.Grid.Text)
	}
	g.applyConfig()
	g.refit()
	g.reinit()
}

// ToggleWalls flips between bounce and repel.
func (g *Game) ToggleWalls() {
	if g.cfg.Walls.Mode == "repel" {
		g.cfg.Walls.Mode = "bounce"
	} else {
		g.cfg.Walls.Mode = "repel"
	}
	g.applyConfig()
	slog.Info("wall mode", "mode", g.cfg.Walls.Mode)
}

// Update runs one frame of input and simulation.
func (g *Game) Update() {
	g.handleInput()
	if g.paused {
		return
	}

	frameDT := time.Duration(float64(frameTime()) * float64(time.Second))
	frameDT = min(frameDT, 100*time.Millisecond)
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simTime += frameDT
		g.simulationStep()
	}
	g.frame++
}

// UpdateHeadless runs simulation steps at the fixed tick length without
// any input or rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simTime += g.cfg.Derived.DT
		g.simulationStep()
	}
	g.frame++
}

// simulationStep advances the flock one tick and records telemetry.
func (g *Game) simulationStep() {
	g.perf.StartTick()
	st := g.sim.Step(g.simTime, g.params, g.pointer)

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordStep(st)
	g.flushTelemetry()

	g.perf.EndTick()
}

// Tick returns the number of ticks since the last reinitialisation.
func (g *Game) Tick() int {
	return g.sim.Tick()
}

// Phase returns the current homing phase.
func (g *Game) Phase() systems.PhaseState {
	return g.sim.Phase()
}

// AtHome returns the fraction of birds within tolerance of home.
func (g *Game) AtHome(tolerance int) float64 {
	return g.sim.AtHome(tolerance)
}

// SimTime returns the simulation clock.
func (g *Game) SimTime() time.Duration {
	return g.simTime
}

// Config returns the live configuration.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Unload releases window resources, the audio device and output files.
func (g *Game) Unload() {
	if g.background != nil {
		g.background.Unload()
	}
	if g.chirper != nil {
		g.chirper.Close()
	}
	if err := g.output.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
}

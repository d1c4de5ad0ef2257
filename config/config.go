// Package config provides configuration loading for the flock simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/flock/systems"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Flocking  FlockingConfig  `yaml:"flocking"`
	Food      FoodConfig      `yaml:"food"`
	Predator  PredatorConfig  `yaml:"predator"`
	Homing    HomingConfig    `yaml:"homing"`
	Motion    MotionConfig    `yaml:"motion"`
	Walls     WallsConfig     `yaml:"walls"`
	Render    RenderConfig    `yaml:"render"`
	Audio     AudioConfig     `yaml:"audio"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	TargetFPS  int `yaml:"target_fps"`
	PanelWidth int `yaml:"panel_width"` // Control panel on the right, excluded from the canvas
}

// GridConfig holds the text and glyph resolution that size the grid.
type GridConfig struct {
	Text          string  `yaml:"text"`
	Resolution    int     `yaml:"resolution"`     // Cells per letter side
	MinResolution int     `yaml:"min_resolution"` // Floor for Resolution
	AutoSize      bool    `yaml:"auto_size"`      // Derive resolution from the word on edit
	OffsetRange   float64 `yaml:"offset_range"`   // Cosmetic per-bird jitter in cells
}

// PhysicsConfig holds the fixed tick length.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"` // Seconds of simulation time per headless tick
}

// FlockingConfig holds boids weights and radii.
type FlockingConfig struct {
	SeparationWeight float64 `yaml:"separation_weight"`
	AlignmentWeight  float64 `yaml:"alignment_weight"`
	CohesionWeight   float64 `yaml:"cohesion_weight"`
	SeparationRadius int     `yaml:"separation_radius"`
	AlignmentRadius  int     `yaml:"alignment_radius"`
	CohesionRadius   int     `yaml:"cohesion_radius"`
	CohesionScale    float64 `yaml:"cohesion_scale"`
}

// FoodConfig holds food sensing and hunting parameters.
type FoodConfig struct {
	SenseRadius     int     `yaml:"sense_radius"`
	HuntRadius      int     `yaml:"hunt_radius"`
	Attraction      float64 `yaml:"attraction"`
	WeightScale     float64 `yaml:"weight_scale"`      // Food weight = grid size * this
	HuntFlockFactor float64 `yaml:"hunt_flock_factor"` // Flocking weight while hunting
	HealthGain      float64 `yaml:"health_gain"`
}

// PredatorConfig holds pointer avoidance parameters.
type PredatorConfig struct {
	BaseWeight     float64 `yaml:"base_weight"`
	WeightScale    float64 `yaml:"weight_scale"`
	PanicThreshold float64 `yaml:"panic_threshold"`
	ForceThreshold float64 `yaml:"force_threshold"`
	RadiusMinGrid  float64 `yaml:"radius_min_grid"`
	RadiusMaxGrid  float64 `yaml:"radius_max_grid"`
	RadiusMin      float64 `yaml:"radius_min"`
	RadiusMax      float64 `yaml:"radius_max"`
	PanicStep      int     `yaml:"panic_step"`
}

// HomingConfig holds the roam/home cycle.
type HomingConfig struct {
	HomeWeight     float64 `yaml:"home_weight"`
	CycleMS        int     `yaml:"cycle_ms"`
	RampMS         int     `yaml:"ramp_ms"`
	Damping        float64 `yaml:"damping"`
	NoiseReduction float64 `yaml:"noise_reduction"`
	AlignmentBoost float64 `yaml:"alignment_boost"`
}

// MotionConfig holds integration and stepping parameters.
type MotionConfig struct {
	Damping         float64 `yaml:"damping"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	IdleMoveChance  float64 `yaml:"idle_move_chance"`
	MaxVelocity     float64 `yaml:"max_velocity"`
	MaxPushDepth    int     `yaml:"max_push_depth"`
}

// WallsConfig holds edge behaviour.
type WallsConfig struct {
	Mode      string  `yaml:"mode"` // "bounce" or "repel"
	Weight    float64 `yaml:"weight"`
	Threshold int     `yaml:"threshold"`
}

// RenderConfig holds drawing options.
type RenderConfig struct {
	BirdSize  float64 `yaml:"bird_size"` // Scale relative to a cell
	ShowGrid  bool    `yaml:"show_grid"`
	ShowFood  bool    `yaml:"show_food"`
	ShowHomes bool    `yaml:"show_homes"`
}

// AudioConfig holds chirp synthesis settings.
type AudioConfig struct {
	Enabled       bool    `yaml:"enabled"`
	SampleRate    int     `yaml:"sample_rate"`
	MasterGain    float64 `yaml:"master_gain"`
	MinIntervalMS int     `yaml:"min_interval_ms"` // Global limiter between chirps
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds of sim time per window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	HomeTolerance       int     `yaml:"home_tolerance"` // Manhattan distance counted as at home
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT          time.Duration // Physics.DT as a duration
	Cycle       time.Duration
	Ramp        time.Duration
	MinInterval time.Duration
	WallMode    systems.WallMode
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only fields present in the file are overwritten
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.Normalize()
	return cfg, nil
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Normalize clamps out-of-range values to their documented minimums and
// recomputes derived values. Call it after changing fields at runtime.
func (c *Config) Normalize() {
	c.Grid.Text = strings.ToUpper(c.Grid.Text)
	if c.Grid.MinResolution < 5 {
		c.Grid.MinResolution = 5
	}
	c.Grid.Resolution = max(c.Grid.Resolution, c.Grid.MinResolution)
	c.Grid.OffsetRange = math.Max(c.Grid.OffsetRange, 0)

	c.Screen.Width = max(c.Screen.Width, 64)
	c.Screen.Height = max(c.Screen.Height, 64)
	c.Screen.PanelWidth = min(max(c.Screen.PanelWidth, 0), c.Screen.Width/2)
	if c.Screen.TargetFPS <= 0 {
		c.Screen.TargetFPS = 60
	}
	if c.Physics.DT <= 0 {
		c.Physics.DT = 1.0 / 60.0
	}

	c.Flocking.SeparationRadius = max(c.Flocking.SeparationRadius, 1)
	c.Flocking.AlignmentRadius = max(c.Flocking.AlignmentRadius, 1)
	c.Flocking.CohesionRadius = max(c.Flocking.CohesionRadius, 1)
	c.Food.SenseRadius = max(c.Food.SenseRadius, 0)
	c.Food.HuntRadius = max(c.Food.HuntRadius, 0)
	c.Predator.PanicStep = max(c.Predator.PanicStep, 1)
	if c.Predator.RadiusMaxGrid <= c.Predator.RadiusMinGrid {
		c.Predator.RadiusMaxGrid = c.Predator.RadiusMinGrid + 1
	}

	c.Homing.CycleMS = max(c.Homing.CycleMS, 1000)
	c.Homing.RampMS = max(c.Homing.RampMS, 1)
	c.Homing.Damping = clamp(c.Homing.Damping, 0, 1)
	c.Homing.NoiseReduction = clamp(c.Homing.NoiseReduction, 0, 1)
	c.Homing.AlignmentBoost = math.Max(c.Homing.AlignmentBoost, 0)

	c.Motion.Damping = clamp(c.Motion.Damping, 0, 1)
	c.Motion.SpeedMultiplier = math.Max(c.Motion.SpeedMultiplier, 0.1)
	c.Motion.IdleMoveChance = clamp(c.Motion.IdleMoveChance, 0, 1)
	if c.Motion.MaxVelocity <= 0 {
		c.Motion.MaxVelocity = 1e4
	}
	c.Motion.MaxPushDepth = max(c.Motion.MaxPushDepth, 0)

	c.Walls.Mode = strings.ToLower(c.Walls.Mode)
	if c.Walls.Mode != "repel" {
		c.Walls.Mode = "bounce"
	}
	c.Walls.Threshold = max(c.Walls.Threshold, 1)

	c.Render.BirdSize = clamp(c.Render.BirdSize, 0.1, 4)

	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = 48000
	}
	c.Audio.MasterGain = clamp(c.Audio.MasterGain, 0, 1)
	c.Audio.MinIntervalMS = max(c.Audio.MinIntervalMS, 0)

	if c.Telemetry.StatsWindow <= 0 {
		c.Telemetry.StatsWindow = 10
	}
	c.Telemetry.PerfCollectorWindow = max(c.Telemetry.PerfCollectorWindow, 1)
	c.Telemetry.HomeTolerance = max(c.Telemetry.HomeTolerance, 0)

	c.computeDerived()
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT = time.Duration(c.Physics.DT * float64(time.Second))
	c.Derived.Cycle = time.Duration(c.Homing.CycleMS) * time.Millisecond
	c.Derived.Ramp = time.Duration(c.Homing.RampMS) * time.Millisecond
	c.Derived.MinInterval = time.Duration(c.Audio.MinIntervalMS) * time.Millisecond
	c.Derived.WallMode = systems.ParseWallMode(c.Walls.Mode)
}

// Params converts the configuration into the per-tick tunables.
func (c *Config) Params() systems.Params {
	return systems.Params{
		Flocking: systems.FlockingParams{
			SeparationWeight: c.Flocking.SeparationWeight,
			AlignmentWeight:  c.Flocking.AlignmentWeight,
			CohesionWeight:   c.Flocking.CohesionWeight,
			SeparationRadius: c.Flocking.SeparationRadius,
			AlignmentRadius:  c.Flocking.AlignmentRadius,
			CohesionRadius:   c.Flocking.CohesionRadius,
			CohesionScale:    c.Flocking.CohesionScale,
		},
		Food: systems.FoodParams{
			SenseRadius:     c.Food.SenseRadius,
			HuntRadius:      c.Food.HuntRadius,
			Attraction:      c.Food.Attraction,
			WeightScale:     c.Food.WeightScale,
			HuntFlockFactor: c.Food.HuntFlockFactor,
			HealthGain:      c.Food.HealthGain,
		},
		Predator: systems.PredatorParams{
			BaseWeight:     c.Predator.BaseWeight,
			WeightScale:    c.Predator.WeightScale,
			PanicThreshold: c.Predator.PanicThreshold,
			ForceThreshold: c.Predator.ForceThreshold,
			RadiusMinGrid:  c.Predator.RadiusMinGrid,
			RadiusMaxGrid:  c.Predator.RadiusMaxGrid,
			RadiusMin:      c.Predator.RadiusMin,
			RadiusMax:      c.Predator.RadiusMax,
			PanicStep:      c.Predator.PanicStep,
		},
		Homing: systems.HomingParams{
			HomeWeight:     c.Homing.HomeWeight,
			Cycle:          c.Derived.Cycle,
			Ramp:           c.Derived.Ramp,
			Damping:        c.Homing.Damping,
			NoiseReduction: c.Homing.NoiseReduction,
			AlignmentBoost: c.Homing.AlignmentBoost,
		},
		Motion: systems.MotionParams{
			Damping:         c.Motion.Damping,
			SpeedMultiplier: c.Motion.SpeedMultiplier,
			IdleMoveChance:  c.Motion.IdleMoveChance,
			MaxVelocity:     c.Motion.MaxVelocity,
			MaxPushDepth:    c.Motion.MaxPushDepth,
		},
		Walls: systems.WallParams{
			Mode:      c.Derived.WallMode,
			Weight:    c.Walls.Weight,
			Threshold: c.Walls.Threshold,
		},
	}
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}

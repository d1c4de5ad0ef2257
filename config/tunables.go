package config

// Tunable describes a numeric setting that can be changed while running.
// Set writes the raw value; call Normalize afterwards to clamp and
// recompute derived values.
type Tunable struct {
	ID     string
	Label  string
	Min    float64
	Max    float64
	Format string // Printf format for the current value
	Get    func(*Config) float64
	Set    func(*Config, float64)

	// Reinit means a change requires the flock to be rebuilt.
	Reinit bool
}

// Tunables returns the runtime-adjustable settings in display order.
func Tunables() []Tunable {
	return []Tunable{
		{
			ID: "separation_weight", Label: "Separation", Min: 0, Max: 5, Format: "%.2f",
			Get: func(c *Config) float64 { return c.Flocking.SeparationWeight },
			Set: func(c *Config, v float64) { c.Flocking.SeparationWeight = v },
		},
		{
			ID: "alignment_weight", Label: "Alignment", Min: 0, Max: 5, Format: "%.2f",
			Get: func(c *Config) float64 { return c.Flocking.AlignmentWeight },
			Set: func(c *Config, v float64) { c.Flocking.AlignmentWeight = v },
		},
		{
			ID: "cohesion_weight", Label: "Cohesion", Min: 0, Max: 5, Format: "%.2f",
			Get: func(c *Config) float64 { return c.Flocking.CohesionWeight },
			Set: func(c *Config, v float64) { c.Flocking.CohesionWeight = v },
		},
		{
			ID: "home_weight", Label: "Home weight", Min: 0, Max: 0.5, Format: "%.3f",
			Get: func(c *Config) float64 { return c.Homing.HomeWeight },
			Set: func(c *Config, v float64) { c.Homing.HomeWeight = v },
		},
		{
			ID: "cycle_s", Label: "Cycle (s)", Min: 1, Max: 60, Format: "%.0f",
			Get: func(c *Config) float64 { return float64(c.Homing.CycleMS) / 1000 },
			Set: func(c *Config, v float64) { c.Homing.CycleMS = int(v * 1000) },
		},
		{
			ID: "ramp_ms", Label: "Ramp (ms)", Min: 1, Max: 10000, Format: "%.0f",
			Get: func(c *Config) float64 { return float64(c.Homing.RampMS) },
			Set: func(c *Config, v float64) { c.Homing.RampMS = int(v) },
		},
		{
			ID: "homing_damping", Label: "Home damping", Min: 0, Max: 1, Format: "%.2f",
			Get: func(c *Config) float64 { return c.Homing.Damping },
			Set: func(c *Config, v float64) { c.Homing.Damping = v },
		},
		{
			ID: "noise_reduction", Label: "Noise cut", Min: 0, Max: 1, Format: "%.2f",
			Get: func(c *Config) float64 { return c.Homing.NoiseReduction },
			Set: func(c *Config, v float64) { c.Homing.NoiseReduction = v },
		},
		{
			ID: "speed_multiplier", Label: "Speed", Min: 0.1, Max: 4, Format: "%.2f",
			Get: func(c *Config) float64 { return c.Motion.SpeedMultiplier },
			Set: func(c *Config, v float64) { c.Motion.SpeedMultiplier = v },
		},
		{
			ID: "bird_size", Label: "Bird size", Min: 0.1, Max: 4, Format: "%.2f",
			Get: func(c *Config) float64 { return c.Render.BirdSize },
			Set: func(c *Config, v float64) { c.Render.BirdSize = v },
		},
		{
			ID: "offset_range", Label: "Jitter (px)", Min: 0, Max: 10, Format: "%.1f",
			Get: func(c *Config) float64 { return c.Grid.OffsetRange },
			Set: func(c *Config, v float64) { c.Grid.OffsetRange = v },
		},
		{
			ID: "resolution", Label: "Resolution", Min: 5, Max: 80, Format: "%.0f", Reinit: true,
			Get: func(c *Config) float64 { return float64(c.Grid.Resolution) },
			Set: func(c *Config, v float64) { c.Grid.Resolution = int(v + 0.5) },
		},
	}
}

// TunableByID returns the tunable with the given ID.
func TunableByID(id string) (Tunable, bool) {
	for _, t := range Tunables() {
		if t.ID == id {
			return t, true
		}
	}
	return Tunable{}, false
}

// Package telemetry aggregates per-tick flock statistics into windows and
// writes them, with tick timing, to CSV.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int     `csv:"-"`
	WindowEndTick   int     `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Phase           string  `csv:"phase"`

	// Population at window end
	Birds    int `csv:"birds"`
	FoodLeft int `csv:"food_left"`

	// Movement during window
	Attempts     int     `csv:"attempts"`
	Moves        int     `csv:"moves"`
	Pushes       int     `csv:"pushes"`
	PushFailures int     `csv:"push_failures"`
	Blocked      int     `csv:"blocked"`
	MoveRate     float64 `csv:"move_rate"` // moves / attempts
	FoodEaten    int     `csv:"food_eaten"`
	PhaseChanges int     `csv:"phase_changes"`

	// Bird-ticks spent in each steering mode
	HomingTicks   int `csv:"mode_homing"`
	FleeingTicks  int `csv:"mode_fleeing"`
	HuntingTicks  int `csv:"mode_hunting"`
	FlockingTicks int `csv:"mode_flocking"`

	// Formation (sampled at window end)
	HomeDistMean float64 `csv:"home_dist_mean"`
	HomeDistP50  float64 `csv:"home_dist_p50"`
	HomeDistP90  float64 `csv:"home_dist_p90"`
	AtHome       float64 `csv:"at_home"`

	// Speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
}

// ComputeDistStats calculates mean and median/p90 of a sample.
func ComputeDistStats(values []float64) (mean, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, p50, p90
}

// ComputeSpeedStats calculates mean and standard deviation of a sample.
func ComputeSpeedStats(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("phase", s.Phase),
		slog.Int("birds", s.Birds),
		slog.Int("food_left", s.FoodLeft),
		slog.Int("moves", s.Moves),
		slog.Int("pushes", s.Pushes),
		slog.Int("push_failures", s.PushFailures),
		slog.Int("blocked", s.Blocked),
		slog.Float64("move_rate", s.MoveRate),
		slog.Int("food_eaten", s.FoodEaten),
		slog.Int("mode_homing", s.HomingTicks),
		slog.Int("mode_fleeing", s.FleeingTicks),
		slog.Int("mode_hunting", s.HuntingTicks),
		slog.Int("mode_flocking", s.FlockingTicks),
		slog.Float64("home_dist_mean", s.HomeDistMean),
		slog.Float64("home_dist_p90", s.HomeDistP90),
		slog.Float64("at_home", s.AtHome),
		slog.Float64("speed_mean", s.SpeedMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"phase", s.Phase,
		"birds", s.Birds,
		"food_left", s.FoodLeft,
		"moves", s.Moves,
		"pushes", s.Pushes,
		"push_failures", s.PushFailures,
		"blocked", s.Blocked,
		"move_rate", s.MoveRate,
		"food_eaten", s.FoodEaten,
		"phase_changes", s.PhaseChanges,
		"mode_homing", s.HomingTicks,
		"mode_fleeing", s.FleeingTicks,
		"mode_hunting", s.HuntingTicks,
		"mode_flocking", s.FlockingTicks,
		"home_dist_mean", s.HomeDistMean,
		"home_dist_p50", s.HomeDistP50,
		"home_dist_p90", s.HomeDistP90,
		"at_home", s.AtHome,
		"speed_mean", s.SpeedMean,
		"speed_std", s.SpeedStd,
	)
}

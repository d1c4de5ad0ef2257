package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/flock"
	"github.com/pthm-cable/flock/systems"
)

func TestComputeDistStats(t *testing.T) {
	tests := []struct {
		name          string
		values        []float64
		mean, p50, p90 float64
	}{
		{"empty", nil, 0, 0, 0},
		{"single", []float64{4}, 4, 4, 4},
		{"odd", []float64{5, 1, 3, 2, 4}, 3, 3, 5},
		{"ten", []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, 5.5, 5, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, p50, p90 := ComputeDistStats(tt.values)
			if math.Abs(mean-tt.mean) > 1e-9 || p50 != tt.p50 || p90 != tt.p90 {
				t.Errorf("ComputeDistStats(%v) = %v %v %v, want %v %v %v", tt.values, mean, p50, p90, tt.mean, tt.p50, tt.p90)
			}
		})
	}
}

func TestComputeDistStatsLeavesInputUnsorted(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeDistStats(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input was reordered: %v", values)
	}
}

func TestComputeSpeedStats(t *testing.T) {
	mean, std := ComputeSpeedStats([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if math.Abs(mean-5) > 1e-9 {
		t.Errorf("mean = %v, want 5", mean)
	}
	if want := math.Sqrt(32.0 / 7.0); math.Abs(std-want) > 1e-9 {
		t.Errorf("std = %v, want %v", std, want)
	}

	if m, s := ComputeSpeedStats(nil); m != 0 || s != 0 {
		t.Error("empty sample should return zeros")
	}
	if m, s := ComputeSpeedStats([]float64{3}); m != 3 || s != 0 {
		t.Errorf("single sample = %v, %v, want 3, 0", m, s)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1, 0.25)
	if c.WindowDurationTicks() != 4 {
		t.Fatalf("WindowDurationTicks = %d, want 4", c.WindowDurationTicks())
	}

	var modes [systems.NumModes]int
	modes[systems.ModeHoming] = 3
	modes[systems.ModeFlocking] = 1
	for tick := 1; tick <= 4; tick++ {
		c.RecordStep(flock.StepStats{
			Tick:         tick,
			Attempts:     4,
			Moves:        2,
			Pushes:       1,
			FoodEaten:    1,
			PhaseChanged: tick == 2,
			Modes:        modes,
		})
	}
	if c.ShouldFlush(3) || !c.ShouldFlush(4) {
		t.Fatal("ShouldFlush boundary wrong")
	}

	birds := []flock.BirdView{
		{HomeDist: 0, VX: 3, VY: 4},
		{HomeDist: 0},
		{HomeDist: 2},
		{HomeDist: 6},
	}
	st := c.Flush(4, "homing", birds, 7, 0)

	if st.Moves != 8 || st.Attempts != 16 || st.MoveRate != 0.5 {
		t.Errorf("moves = %d/%d rate %v, want 8/16 rate 0.5", st.Moves, st.Attempts, st.MoveRate)
	}
	if st.HomingTicks != 12 || st.FlockingTicks != 4 || st.PhaseChanges != 1 {
		t.Errorf("modes/phases = %+v", st)
	}
	if st.AtHome != 0.5 || st.HomeDistMean != 2 {
		t.Errorf("formation = at_home %v mean %v, want 0.5 and 2", st.AtHome, st.HomeDistMean)
	}
	if st.SimTimeSec != 1 || st.Birds != 4 || st.FoodLeft != 7 || st.Phase != "homing" {
		t.Errorf("header fields = %+v", st)
	}

	// Counters reset for the next window.
	next := c.Flush(8, "homing", nil, 0, 0)
	if next.Moves != 0 || next.WindowStartTick != 4 || next.HomingTicks != 0 {
		t.Errorf("next window not reset: %+v", next)
	}
}

func TestOutputManager(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	for i := 1; i <= 2; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: i * 10, Phase: "roaming"}); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
	}
	if err := om.WritePerf(PerfStats{}, 10); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("telemetry.csv has %d lines, want header + 2 rows:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "window_end,sim_time,phase") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Count(string(data), "window_end") != 1 {
		t.Error("header written more than once")
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "perf.csv")); err != nil {
		t.Errorf("perf.csv missing: %v", err)
	}
}

func TestNilOutputManager(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("empty dir should disable output, got %v %v", om, err)
	}
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" {
		t.Error("nil manager has a dir")
	}
}

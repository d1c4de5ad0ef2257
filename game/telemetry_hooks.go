package game

import (
	"log/slog"
)

// flushTelemetry emits the window stats and perf stats once the window is full.
func (g *Game) flushTelemetry() {
	tick := g.sim.Tick()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	g.birds = g.sim.Birds(g.birds[:0])
	stats := g.collector.Flush(tick, g.sim.Phase().Name(), g.birds, g.sim.FoodCount(), g.cfg.Telemetry.HomeTolerance)
	perfStats := g.perf.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.output.WritePerf(perfStats, tick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

package game

import (
	"log/slog"

	"github.com/pthm-cable/pond/components"
	"github.com/pthm-cable/pond/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sample())
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// sample observes the pond state at the end of a window.
func (g *Game) sample() telemetry.Sample {
	m := g.flocking.Metrics()
	s := telemetry.Sample{
		Tadpoles:         m.Count,
		TadpoleMeanSpeed: m.MeanSpeed,
		Polarisation:     m.Polarisation,
		Crowding:         m.MeanCrowding,
		FishStates:       make([]int, components.ForageStateCount()),
	}

	query := g.fishFilter.Query()
	for query.Next() {
		_, _, body, fish := query.Get()
		if fish.Destroyed {
			continue
		}
		s.FishSizes = append(s.FishSizes, float64(body.Radius))
		s.FishStates[fish.State]++
	}

	for _, e := range g.foods.Entities() {
		if _, food, ok := g.foods.Resolve(e); ok && food.Live() {
			s.FoodLive++
		}
	}

	pads := g.padFilter.Query()
	for pads.Next() {
		s.Pads++
	}

	return s
}

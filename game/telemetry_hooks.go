package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/sporefield/systems"
	"github.com/pthm-cable/sporefield/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	g.sample = telemetry.SampleField(g.field, g.sample)
	stats := g.collector.Flush(g.tick, g.state.Phase, g.sample)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}

		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}

		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// saveSnapshot writes a snapshot for a bookmark to the snapshot directory.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	path, err := g.SaveSnapshot(g.snapshotDir, bookmark)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}

// SaveSnapshot writes the match state to dir. bookmark may be nil.
func (g *Game) SaveSnapshot(dir string, bookmark *telemetry.Bookmark) (string, error) {
	snapshot := &telemetry.Snapshot{
		RNGSeed:  g.rngSeed,
		Tick:     g.tick,
		Phase:    g.state.Phase.String(),
		Bookmark: bookmark,
	}
	return telemetry.SaveSnapshot(snapshot, g.field, dir)
}

// RestoreSnapshot loads a snapshot written by SaveSnapshot and resumes from
// its tick and phase.
func (g *Game) RestoreSnapshot(path string) error {
	snapshot, err := telemetry.LoadSnapshot(path)
	if err != nil {
		return err
	}
	phase, err := parsePhase(snapshot.Phase)
	if err != nil {
		return err
	}
	if err := snapshot.RestoreField(path, g.field); err != nil {
		return err
	}

	g.projectiles.Clear()
	g.player.Carrying = false
	g.clampPlayer()
	g.tick = snapshot.Tick
	g.state.SetPhase(phase)

	slog.Info("snapshot restored", "path", path, "tick", g.tick, "phase", snapshot.Phase)
	return nil
}

func parsePhase(s string) (systems.Phase, error) {
	switch s {
	case systems.PhaseDay.String():
		return systems.PhaseDay, nil
	case systems.PhaseNight.String():
		return systems.PhaseNight, nil
	}
	return 0, fmt.Errorf("unknown phase %q", s)
}

package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/sporefield/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager, got %v, %v", om, err)
	}

	// All methods are nil-safe
	if err := om.WriteTelemetry(FieldStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteBookmark(Bookmark{}); err != nil {
		t.Error(err)
	}
	if err := om.WritePerf(PerfStats{}, 0); err != nil {
		t.Error(err)
	}
	if err := om.WriteConfig(config.Cfg()); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" || om.Close() != nil {
		t.Error("expected empty dir and clean close")
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager failed: %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := om.WriteTelemetry(FieldStats{WindowEndTick: int32(i * 600), Good: i, Phase: "day"}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkLeadChange, Tick: 1200, Description: "evil took the lead"}); err != nil {
		t.Fatal(err)
	}
	perf := PerfStats{AvgTickDuration: 250 * time.Microsecond, PhasePct: map[string]float64{PhaseField: 80}}
	if err := om.WritePerf(perf, 600); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Cfg()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	field := readLines(t, filepath.Join(dir, "field.csv"))
	if len(field) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(field))
	}
	if !strings.HasPrefix(field[0], "window_end,sim_time,phase,") {
		t.Errorf("unexpected header %q", field[0])
	}
	if !strings.HasPrefix(field[3], "1800,") {
		t.Errorf("unexpected last row %q", field[3])
	}

	bookmarks := readLines(t, filepath.Join(dir, "bookmarks.csv"))
	if len(bookmarks) != 2 || bookmarks[0] != "type,tick,description" {
		t.Errorf("unexpected bookmarks %q", bookmarks)
	}

	perfLines := readLines(t, filepath.Join(dir, "perf.csv"))
	if len(perfLines) != 2 || !strings.HasPrefix(perfLines[1], "600,250,") {
		t.Errorf("unexpected perf output %q", perfLines)
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot does not load: %v", err)
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

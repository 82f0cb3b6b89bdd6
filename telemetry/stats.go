package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/sporefield/systems"
)

// FieldStats holds aggregated statistics for a time window.
type FieldStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Phase           string  `csv:"phase"`

	// Cell counts at window end
	Empty       int `csv:"empty"`
	Good        int `csv:"good"`
	GoodPortals int `csv:"good_portals"`
	Evil        int `csv:"evil"`
	EvilPortals int `csv:"evil_portals"`
	EvilDead    int `csv:"evil_dead"`
	Deadzone    int `csv:"deadzone"`

	// Share of playable (non deadzone) cells held by each faction
	GoodCoverage float64 `csv:"good_coverage"`
	EvilCoverage float64 `csv:"evil_coverage"`

	// Growth events during window
	Spawned     int `csv:"spawned"`
	Grown       int `csv:"grown"`
	TakenOver   int `csv:"taken_over"`
	Resurrected int `csv:"resurrected"`
	Converted   int `csv:"converted"`

	// Projectile events during window
	SporesKilled   int `csv:"spores_killed"`
	SpawnersShot   int `csv:"spawners_shot"`
	PortalsSpawned int `csv:"portals_spawned"`
	PhaseChanges   int `csv:"phase_changes"`

	// Spore size distribution (sampled at window end)
	GoodSizeMean float64 `csv:"good_size_mean"`
	GoodSizeStd  float64 `csv:"good_size_std"`
	GoodSizeP50  float64 `csv:"good_size_p50"`
	EvilSizeMean float64 `csv:"evil_size_mean"`
	EvilSizeStd  float64 `csv:"evil_size_std"`
	EvilSizeP50  float64 `csv:"evil_size_p50"`
	GoodBiomass  float64 `csv:"good_biomass"`
	EvilBiomass  float64 `csv:"evil_biomass"`
}

// FieldSample is a point-in-time reading of the playing field.
type FieldSample struct {
	Counts    [systems.NumSporeTypes]int
	GoodSizes []float64
	EvilSizes []float64
}

// SampleField counts cells per type and collects living spore sizes.
// Buffers in dst are reused.
func SampleField(f *systems.PlayingField, dst FieldSample) FieldSample {
	dst.Counts = [systems.NumSporeTypes]int{}
	dst.GoodSizes = dst.GoodSizes[:0]
	dst.EvilSizes = dst.EvilSizes[:0]

	cells := f.Cells()
	for i := range cells {
		c := &cells[i]
		dst.Counts[c.Type]++
		switch c.Type {
		case systems.SporeGood:
			dst.GoodSizes = append(dst.GoodSizes, float64(c.Size))
		case systems.SporeEvil:
			dst.EvilSizes = append(dst.EvilSizes, float64(c.Size))
		}
	}
	return dst
}

// Playable returns the number of cells outside the deadzone.
func (s FieldSample) Playable() int {
	return sumInts(s.Counts[:]) - s.Counts[systems.SporeDeadzone]
}

// Faction returns the number of spores and portals of the given faction.
func (s FieldSample) Faction(faction systems.SporeType) int {
	switch faction {
	case systems.SporeGood:
		return s.Counts[systems.SporeGood] + s.Counts[systems.SporeGoodPortal]
	case systems.SporeEvil:
		return s.Counts[systems.SporeEvil] + s.Counts[systems.SporeEvilPortal]
	}
	return 0
}

func sumInts(v []int) int {
	n := 0
	for _, x := range v {
		n += x
	}
	return n
}

// Coverage returns the share of playable cells held by a faction.
func (s FieldSample) Coverage(faction systems.SporeType) float64 {
	playable := s.Playable()
	if playable == 0 {
		return 0
	}
	return float64(s.Faction(faction)) / float64(playable)
}

// ComputeSizeStats calculates mean, population standard deviation and the
// median of spore sizes. Returns zeros for an empty slice.
func ComputeSizeStats(values []float64) (mean, std, p50 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)

	return mean, std, p50
}

// TotalSize sums spore sizes, a rough measure of biomass.
func TotalSize(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Sum(values)
}

// Leader returns the faction with more cells, or SporeEmpty on a tie.
func (s FieldStats) Leader() systems.SporeType {
	good := s.Good + s.GoodPortals
	evil := s.Evil + s.EvilPortals
	switch {
	case good > evil:
		return systems.SporeGood
	case evil > good:
		return systems.SporeEvil
	}
	return systems.SporeEmpty
}

// Margin returns the absolute difference between faction cell counts.
func (s FieldStats) Margin() int {
	d := (s.Good + s.GoodPortals) - (s.Evil + s.EvilPortals)
	if d < 0 {
		return -d
	}
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s FieldStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("phase", s.Phase),
		slog.Int("good", s.Good),
		slog.Int("good_portals", s.GoodPortals),
		slog.Int("evil", s.Evil),
		slog.Int("evil_portals", s.EvilPortals),
		slog.Int("evil_dead", s.EvilDead),
		slog.Float64("good_coverage", s.GoodCoverage),
		slog.Float64("evil_coverage", s.EvilCoverage),
		slog.Int("spawned", s.Spawned),
		slog.Int("grown", s.Grown),
		slog.Int("taken_over", s.TakenOver),
		slog.Int("resurrected", s.Resurrected),
		slog.Int("converted", s.Converted),
		slog.Int("spores_killed", s.SporesKilled),
		slog.Int("portals_spawned", s.PortalsSpawned),
		slog.Float64("good_size_mean", s.GoodSizeMean),
		slog.Float64("evil_size_mean", s.EvilSizeMean),
		slog.Float64("good_biomass", s.GoodBiomass),
		slog.Float64("evil_biomass", s.EvilBiomass),
	)
}

// LogStats logs the window stats using slog.
func (s FieldStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"phase", s.Phase,
		"good", s.Good,
		"good_portals", s.GoodPortals,
		"evil", s.Evil,
		"evil_portals", s.EvilPortals,
		"evil_dead", s.EvilDead,
		"good_coverage", s.GoodCoverage,
		"evil_coverage", s.EvilCoverage,
		"spawned", s.Spawned,
		"grown", s.Grown,
		"taken_over", s.TakenOver,
		"resurrected", s.Resurrected,
		"converted", s.Converted,
		"spores_killed", s.SporesKilled,
		"spawners_shot", s.SpawnersShot,
		"portals_spawned", s.PortalsSpawned,
		"phase_changes", s.PhaseChanges,
		"good_size_mean", s.GoodSizeMean,
		"good_size_std", s.GoodSizeStd,
		"evil_size_mean", s.EvilSizeMean,
		"evil_size_std", s.EvilSizeStd,
	)
}

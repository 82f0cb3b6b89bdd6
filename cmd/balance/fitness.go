package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/sporefield/config"
	"github.com/pthm-cable/sporefield/game"
	"github.com/pthm-cable/sporefield/systems"
	"github.com/pthm-cable/sporefield/telemetry"
)

// Fitness weights.
const (
	warmupWindows    = 2   // Windows skipped before scoring
	swingWeight      = 0.5 // Weight of the coverage margin's spread
	extinctPenalty   = 1.0 // Added when a faction holds no cells at the end
	defaultWindowSec = 10.0
)

// FitnessEvaluator runs headless matches and scores how even they are.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu         sync.Mutex
	lastMargin float64 // mean good minus evil coverage from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: defaultWindowSec,
	}
}

// LastMargin returns the mean coverage margin from the most recent evaluation.
// Positive means good was ahead. Failed matches are left out; NaN when every
// match failed.
func (fe *FitnessEvaluator) LastMargin() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastMargin
}

// runResult holds the results from a single match.
type runResult struct {
	windows []telemetry.FieldStats
	final   telemetry.FieldSample
}

// Evaluate computes fitness for raw parameter values (lower = better).
// Seeds run in parallel.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	fitness := make([]float64, len(fe.seeds))
	margins := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result, err := fe.runMatch(x, s)
			if err != nil {
				fitness[idx] = math.Inf(1)
				margins[idx] = math.NaN()
				return
			}
			fitness[idx], margins[idx] = computeFitness(result)
		}(i, seed)
	}
	wg.Wait()

	fe.mu.Lock()
	fe.lastMargin = finiteMean(margins)
	fe.mu.Unlock()

	return stat.Mean(fitness, nil)
}

// finiteMean averages the values that are not NaN. Returns NaN when none are.
func finiteMean(values []float64) float64 {
	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return math.NaN()
	}
	return stat.Mean(kept, nil)
}

// runMatch plays one headless match for maxTicks.
func (fe *FitnessEvaluator) runMatch(x []float64, seed int64) (*runResult, error) {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}
	g, err := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 1,
		Config:         cfg,
		StatsCallback: func(stats telemetry.FieldStats) {
			result.windows = append(result.windows, stats)
		},
	})
	if err != nil {
		return nil, err
	}
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}
	result.final = telemetry.SampleField(g.Field(), telemetry.FieldSample{})
	return result, nil
}

// computeFitness scores a match by the squared coverage margin, the spread of
// that margin across windows, and a penalty if a faction was wiped out.
// Falls back to the final sample when the match was shorter than the warmup.
func computeFitness(r *runResult) (fitness, margin float64) {
	var margins []float64
	if len(r.windows) > warmupWindows {
		for _, w := range r.windows[warmupWindows:] {
			margins = append(margins, w.GoodCoverage-w.EvilCoverage)
		}
	} else {
		margins = []float64{
			r.final.Coverage(systems.SporeGood) - r.final.Coverage(systems.SporeEvil),
		}
	}

	mean, std := stat.MeanStdDev(margins, nil)
	if math.IsNaN(std) {
		std = 0
	}
	fitness = mean*mean + swingWeight*std*std

	if r.final.Faction(systems.SporeGood) == 0 || r.final.Faction(systems.SporeEvil) == 0 {
		fitness += extinctPenalty
	}
	return fitness, mean
}

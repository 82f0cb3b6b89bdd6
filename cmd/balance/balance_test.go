package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/sporefield/config"
	"github.com/pthm-cable/sporefield/systems"
	"github.com/pthm-cable/sporefield/telemetry"
)

func TestParamVectorRoundTrip(t *testing.T) {
	cfg := config.Default()
	pv := NewParamVector(cfg)

	defaults := pv.DefaultVector()
	got := pv.Denormalize(pv.Normalize(defaults))
	for i := range defaults {
		if math.Abs(got[i]-defaults[i]) > 1e-9 {
			t.Errorf("%s: round trip %v, want %v", pv.Specs[i].Name, got[i], defaults[i])
		}
	}

	values := []float64{2.5, 5, -1}
	pv.ApplyToConfig(cfg, values)
	applied := pv.ExtractFromConfig(cfg)
	want := []float64{2.5, 1, 0.5}
	for i := range want {
		if applied[i] != want[i] {
			t.Errorf("%s = %v, want %v (clamped)", pv.Specs[i].Name, applied[i], want[i])
		}
	}
	if cfg.Values.PortalGrowthFactorEvil != 2.5 {
		t.Errorf("PortalGrowthFactorEvil = %v, want 2.5", cfg.Values.PortalGrowthFactorEvil)
	}
}

func sampleWith(good, evil, empty int) telemetry.FieldSample {
	var s telemetry.FieldSample
	s.Counts[systems.SporeGood] = good
	s.Counts[systems.SporeEvil] = evil
	s.Counts[systems.SporeEmpty] = empty
	return s
}

func TestComputeFitnessEvenMatch(t *testing.T) {
	r := &runResult{final: sampleWith(10, 10, 5)}
	for range warmupWindows + 3 {
		r.windows = append(r.windows, telemetry.FieldStats{GoodCoverage: 0.4, EvilCoverage: 0.4})
	}

	fitness, margin := computeFitness(r)
	if fitness != 0 || margin != 0 {
		t.Errorf("even match: fitness=%v margin=%v, want 0, 0", fitness, margin)
	}
}

func TestComputeFitnessPrefersCloserMargin(t *testing.T) {
	run := func(good, evil float64) float64 {
		r := &runResult{final: sampleWith(10, 10, 5)}
		for range warmupWindows + 3 {
			r.windows = append(r.windows, telemetry.FieldStats{GoodCoverage: good, EvilCoverage: evil})
		}
		f, _ := computeFitness(r)
		return f
	}

	if even, lopsided := run(0.45, 0.4), run(0.7, 0.1); even >= lopsided {
		t.Errorf("close margin fitness %v should beat far margin %v", even, lopsided)
	}
}

func TestComputeFitnessPenalizesExtinction(t *testing.T) {
	r := &runResult{final: sampleWith(20, 0, 5)}
	fitness, margin := computeFitness(r)
	if fitness < extinctPenalty {
		t.Errorf("fitness = %v, want at least the extinction penalty", fitness)
	}
	if margin <= 0 {
		t.Errorf("margin = %v, want good ahead", margin)
	}
}

func TestFiniteMeanSkipsFailedRuns(t *testing.T) {
	if got := finiteMean([]float64{0.4, math.NaN(), 0.2}); math.Abs(got-0.3) > 1e-12 {
		t.Errorf("finiteMean = %v, want 0.3", got)
	}
	if got := finiteMean([]float64{math.NaN(), math.NaN()}); !math.IsNaN(got) {
		t.Errorf("finiteMean of failed runs = %v, want NaN", got)
	}
}

func TestEvaluateFailedMatchesDoNotLookBalanced(t *testing.T) {
	cfg := config.Default()
	cfg.Field.Width = 0 // every match fails to generate its field

	pv := NewParamVector(config.Default())
	fe := NewFitnessEvaluator(pv, 10, []int64{1, 2}, cfg)

	if fitness := fe.Evaluate(pv.DefaultVector()); !math.IsInf(fitness, 1) {
		t.Errorf("fitness = %v, want +Inf", fitness)
	}
	if margin := fe.LastMargin(); !math.IsNaN(margin) {
		t.Errorf("LastMargin = %v, want NaN", margin)
	}
}

package telemetry

import (
	"math"
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate a few ticks
	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseField)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseProjectiles)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	// Verify we got timing data
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}

	// Verify phases are tracked
	if len(stats.PhaseAvg) == 0 {
		t.Error("expected phase averages to be populated")
	}

	if _, ok := stats.PhaseAvg[PhaseField]; !ok {
		t.Error("expected field phase to be tracked")
	}

	if _, ok := stats.PhaseAvg[PhaseProjectiles]; !ok {
		t.Error("expected projectiles phase to be tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5) // Small window

	// Fill window completely
	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseField)
		pc.EndTick()
	}

	stats := pc.Stats()

	// Should have data
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}

	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

// stepClock advances by the duration queued for each reading.
type stepClock struct {
	t     time.Time
	steps []time.Duration
}

func (c *stepClock) now() time.Time {
	if len(c.steps) > 0 {
		c.t = c.t.Add(c.steps[0])
		c.steps = c.steps[1:]
	}
	return c.t
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)
	clock := &stepClock{t: time.Unix(0, 0)}
	pc.now = clock.now

	for i := 0; i < 5; i++ {
		// StartTick, StartPhase(fast), StartPhase(slow), EndTick
		clock.steps = append(clock.steps, 0, 0, 1*time.Millisecond, 3*time.Millisecond)
		pc.StartTick()
		pc.StartPhase("fast")
		pc.StartPhase("slow")
		pc.EndTick()
	}

	stats := pc.Stats()

	if got := stats.PhasePct["fast"]; math.Abs(got-25) > 1e-9 {
		t.Errorf("fast phase = %v%%, want 25%%", got)
	}
	if got := stats.PhasePct["slow"]; math.Abs(got-75) > 1e-9 {
		t.Errorf("slow phase = %v%%, want 75%%", got)
	}
	if stats.AvgTickDuration != 4*time.Millisecond {
		t.Errorf("avg tick = %v, want 4ms", stats.AvgTickDuration)
	}
	if stats.PhaseAvg["slow"] != 3*time.Millisecond {
		t.Errorf("slow avg = %v, want 3ms", stats.PhaseAvg["slow"])
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	// Empty collector should return zero values without panicking
	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}

	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}

	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// First call establishes baseline
	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond) // ~60fps frame time
	// Second call measures duration
	pc.RecordFrame()

	stats := pc.Stats()

	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}

	if stats.FPS <= 0 {
		t.Error("expected positive FPS")
	}

	// With 16ms frames, expect ~60 FPS (allow range 40-80)
	if stats.FPS < 40 || stats.FPS > 80 {
		t.Errorf("expected FPS between 40-80 with 16ms frame time, got %v", stats.FPS)
	}
}

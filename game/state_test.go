package game

import (
	"testing"

	"github.com/pthm-cable/sporefield/config"
	"github.com/pthm-cable/sporefield/systems"
)

func testValues() config.Values {
	v := config.Default().Values
	v.PhaseDuration = 1
	v.PhaseSpeed = 1
	v.SpawnTimer = 1
	return v
}

func TestNewGameStateStartsAtDay(t *testing.T) {
	s := NewGameState(testValues())

	if s.Phase != systems.PhaseDay {
		t.Errorf("expected day, got %s", s.Phase)
	}
	if s.PhaseTimer != 1 || s.SpawnTimer != 1 {
		t.Errorf("expected timers at 1, got phase %f spawn %f", s.PhaseTimer, s.SpawnTimer)
	}
	if s.PhaseProgress() != 0 {
		t.Errorf("expected progress 0, got %f", s.PhaseProgress())
	}
}

func TestAdvancePhase(t *testing.T) {
	s := NewGameState(testValues())

	if s.AdvancePhase(0.5) {
		t.Fatal("phase should not flip halfway")
	}
	if p := s.PhaseProgress(); p != 0.5 {
		t.Errorf("expected progress 0.5, got %f", p)
	}

	if !s.AdvancePhase(0.75) {
		t.Fatal("expected phase to flip")
	}
	if s.Phase != systems.PhaseNight {
		t.Errorf("expected night, got %s", s.Phase)
	}
	if s.PhaseTimer != 1 {
		t.Errorf("expected timer reset to 1, got %f", s.PhaseTimer)
	}

	s.AdvancePhase(1.5)
	if s.Phase != systems.PhaseDay {
		t.Errorf("expected day after second flip, got %s", s.Phase)
	}
}

func TestAdvancePhaseUsesPhaseSpeed(t *testing.T) {
	v := testValues()
	v.PhaseSpeed = 4
	s := NewGameState(v)

	if !s.AdvancePhase(0.3) {
		t.Error("expected 0.3s at speed 4 to end a 1s phase")
	}
}

func TestAdvanceSpawnTimer(t *testing.T) {
	s := NewGameState(testValues())

	if s.AdvanceSpawnTimer(0.6) {
		t.Fatal("spawn should not trigger yet")
	}
	if !s.AdvanceSpawnTimer(0.6) {
		t.Fatal("expected spawn trigger")
	}
	if s.SpawnTimer != 1 {
		t.Errorf("expected spawn timer rearmed to 1, got %f", s.SpawnTimer)
	}
}

func TestSetPhaseAndClear(t *testing.T) {
	s := NewGameState(testValues())
	s.AdvancePhase(0.5)

	s.SetPhase(systems.PhaseNight)
	if s.Phase != systems.PhaseNight || s.PhaseTimer != 1 {
		t.Errorf("expected fresh night, got %s timer %f", s.Phase, s.PhaseTimer)
	}

	s.Values.GrowthSpeedFast = 9
	s.Clear()
	if s.Phase != systems.PhaseDay {
		t.Errorf("expected day after clear, got %s", s.Phase)
	}
	if s.Values.GrowthSpeedFast != 9 {
		t.Error("clear should keep values")
	}
}

package game

import (
	"github.com/pthm-cable/sporefield/config"
	"github.com/pthm-cable/sporefield/systems"
)

// GameState holds the tunable values and the day/night cycle. The playing
// field keeps a pointer to Values, so edits take effect on the next tick.
type GameState struct {
	Values     config.Values
	Phase      systems.Phase
	PhaseTimer float32 // Seconds left in the current phase, drained at PhaseSpeed
	SpawnTimer float32 // Seconds until the next spawn trigger
}

// NewGameState starts a match at the beginning of a day.
func NewGameState(values config.Values) *GameState {
	s := &GameState{Values: values}
	s.Clear()
	return s
}

// Clear resets the cycle to the start of a day. Values are kept.
func (s *GameState) Clear() {
	s.Phase = systems.PhaseDay
	s.PhaseTimer = float32(s.Values.PhaseDuration)
	s.SpawnTimer = float32(s.Values.SpawnTimer)
}

// AdvancePhase drains the phase timer and flips between day and night when
// it runs out. Reports whether the phase changed.
func (s *GameState) AdvancePhase(dt float32) bool {
	s.PhaseTimer -= float32(s.Values.PhaseSpeed) * dt
	if s.PhaseTimer >= 0 {
		return false
	}
	s.PhaseTimer = float32(s.Values.PhaseDuration)
	if s.Phase == systems.PhaseDay {
		s.Phase = systems.PhaseNight
	} else {
		s.Phase = systems.PhaseDay
	}
	return true
}

// AdvanceSpawnTimer reports whether a spawn trigger is due and rearms the
// timer when it is.
func (s *GameState) AdvanceSpawnTimer(dt float32) bool {
	s.SpawnTimer -= dt
	if s.SpawnTimer >= 0 {
		return false
	}
	s.SpawnTimer = float32(s.Values.SpawnTimer)
	return true
}

// SetPhase forces a phase and restarts its timer.
func (s *GameState) SetPhase(p systems.Phase) {
	s.Phase = p
	s.PhaseTimer = float32(s.Values.PhaseDuration)
}

// PhaseProgress returns how far the current phase has run, in [0, 1].
func (s *GameState) PhaseProgress() float32 {
	if s.Values.PhaseDuration <= 0 {
		return 0
	}
	p := 1 - s.PhaseTimer/float32(s.Values.PhaseDuration)
	return min(max(p, 0), 1)
}

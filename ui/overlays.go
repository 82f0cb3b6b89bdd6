package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayLights    OverlayID = "lights"
	OverlayGrid      OverlayID = "grid"
	OverlayAim       OverlayID = "aim"
	OverlayInspector OverlayID = "inspector"
	OverlayStats     OverlayID = "stats"
	OverlayPerf      OverlayID = "perf"
	OverlayDebug     OverlayID = "debug_panel"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID   // Unique identifier
	Name        string      // Display name
	Description string      // What this overlay shows
	Key         int32       // Keyboard key to toggle (0 = no key)
	KeyLabel    string      // Key label for display (e.g., "L", "F1")
	Category    string      // Grouping (e.g., "visual", "panels")
	Exclusive   []OverlayID // Other overlays to disable when this is enabled
	Default     bool        // Enabled at startup
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayLights,
		Name:        "Lights",
		Description: "Portal, phase and projectile glow",
		Key:         rl.KeyL,
		KeyLabel:    "L",
		Category:    "visual",
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayGrid,
		Name:        "Grid",
		Description: "Dots on empty cells",
		Key:         rl.KeyG,
		KeyLabel:    "G",
		Category:    "visual",
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayAim,
		Name:        "Aim Line",
		Description: "Line from the player to the cursor",
		Key:         rl.KeyV,
		KeyLabel:    "V",
		Category:    "visual",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayStats,
		Name:        "Field Stats",
		Description: "Cell counts and coverage per faction",
		Key:         rl.KeyTab,
		KeyLabel:    "Tab",
		Category:    "panels",
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayInspector,
		Name:        "Cell Inspector",
		Description: "State of the cell under the cursor",
		Key:         rl.KeyI,
		KeyLabel:    "I",
		Category:    "panels",
		Exclusive:   []OverlayID{OverlayPerf, OverlayDebug},
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Performance",
		Description: "Per phase tick timing",
		Key:         rl.KeyP,
		KeyLabel:    "P",
		Category:    "panels",
		Exclusive:   []OverlayID{OverlayInspector, OverlayDebug},
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayDebug,
		Name:        "Debug Panel",
		Description: "Tuning sliders and field tools",
		Key:         rl.KeyF1,
		KeyLabel:    "F1",
		Category:    "panels",
		Exclusive:   []OverlayID{OverlayInspector, OverlayPerf},
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and handles exclusivity.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}

	r.enabled[id] = enabled
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// Len returns the number of registered overlays.
func (r *OverlayRegistry) Len() int {
	return len(r.descriptors)
}

// HandleInput toggles every overlay whose key was pressed this frame.
func (r *OverlayRegistry) HandleInput() {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			r.Toggle(desc.ID)
		}
	}
}

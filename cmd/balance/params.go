// Package main searches for difficulty values that keep the good and evil
// factions level.
package main

import (
	"github.com/pthm-cable/sporefield/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of tuned parameters.
type ParamVector struct {
	Specs []ParamSpec
	field []func(v *config.Values) *float64
}

// NewParamVector creates the parameter set. Defaults come from cfg.
func NewParamVector(cfg *config.Config) *ParamVector {
	pv := &ParamVector{}
	pv.add("portal_growth_factor_evil", "values.portal_growth_factor_evil", 0.1, 5,
		func(v *config.Values) *float64 { return &v.PortalGrowthFactorEvil })
	pv.add("evil_portal_spawner_spawn_chance", "values.evil_portal_spawner_spawn_chance", 0.01, 1,
		func(v *config.Values) *float64 { return &v.EvilPortalSpawnerSpawnChance })
	pv.add("evil_dead_spore_life", "values.evil_dead_spore_life", 0.5, 20,
		func(v *config.Values) *float64 { return &v.EvilDeadSporeLife })

	for i := range pv.Specs {
		pv.Specs[i].Default = *pv.field[i](&cfg.Values)
	}
	return pv
}

func (pv *ParamVector) add(name, path string, lo, hi float64, field func(v *config.Values) *float64) {
	pv.Specs = append(pv.Specs, ParamSpec{Name: name, Path: path, Min: lo, Max: hi})
	pv.field = append(pv.field, field)
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		*pv.field[i](&cfg.Values) = v
	}
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.field))
	for i, f := range pv.field {
		v[i] = *f(&cfg.Values)
	}
	return v
}

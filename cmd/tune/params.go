package main

import (
	"github.com/pthm-cable/pond/config"
	"github.com/pthm-cable/pond/ui"
)

// ParamSpec defines a single tunable weight.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the flocking weights under search.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector builds the search space from the slider ranges, starting
// at the weights in cfg.
func NewParamVector(cfg *config.Config) *ParamVector {
	r := ui.WeightRanges()
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "cohesion", Path: "tadpole.cohesion", Min: float64(r[0].Min), Max: float64(r[0].Max), Default: cfg.Tadpole.Cohesion},
			{Name: "alignment", Path: "tadpole.alignment", Min: float64(r[1].Min), Max: float64(r[1].Max), Default: cfg.Tadpole.Alignment},
			{Name: "separation", Path: "tadpole.separation", Min: float64(r[2].Min), Max: float64(r[2].Max), Default: cfg.Tadpole.Separation},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the starting values.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw values to the [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp keeps every value within its bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// Weights converts a raw vector into clamped steering weights.
func (pv *ParamVector) Weights(values []float64) ui.Weights {
	c := pv.Clamp(values)
	return ui.Weights{
		Cohesion:   float32(c[0]),
		Alignment:  float32(c[1]),
		Separation: float32(c[2]),
	}
}

// ApplyToConfig writes clamped values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	cfg.Tadpole.Cohesion = c[0]
	cfg.Tadpole.Alignment = c[1]
	cfg.Tadpole.Separation = c[2]
}

package main

import (
	"github.com/pthm-cable/flock/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name string  // Human-readable name
	Path string  // Config path for logging
	Min  float64 // Lower bound
	Max  float64 // Upper bound
	Get  func(*config.Config) float64
	Set  func(*config.Config, float64)
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the homing parameter set.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{
				Name: "home_weight", Path: "homing.home_weight", Min: 0.01, Max: 0.5,
				Get: func(c *config.Config) float64 { return c.Homing.HomeWeight },
				Set: func(c *config.Config, v float64) { c.Homing.HomeWeight = v },
			},
			{
				Name: "homing_damping", Path: "homing.damping", Min: 0, Max: 1,
				Get: func(c *config.Config) float64 { return c.Homing.Damping },
				Set: func(c *config.Config, v float64) { c.Homing.Damping = v },
			},
			{
				Name: "homing_noise_reduction", Path: "homing.noise_reduction", Min: 0, Max: 1,
				Get: func(c *config.Config) float64 { return c.Homing.NoiseReduction },
				Set: func(c *config.Config, v float64) { c.Homing.NoiseReduction = v },
			},
			{
				Name: "alignment_boost", Path: "homing.alignment_boost", Min: 0, Max: 4,
				Get: func(c *config.Config) float64 { return c.Homing.AlignmentBoost },
				Set: func(c *config.Config, v float64) { c.Homing.AlignmentBoost = v },
			},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
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
		pv.Specs[i].Set(cfg, v)
	}
	cfg.Normalize()
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Get(cfg)
	}
	return v
}

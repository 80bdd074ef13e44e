package domain

import (
	"log/slog"
	"math"
)

// CreativityConfig is the user-facing creativity control for a pipeline run.
type CreativityConfig struct {
	// CreativityLevel ranges from 0.0 (conventional, cheap) to 1.0
	// (maximum divergence). Out-of-range values are clamped, not
	// rejected; see MapCreativity.
	CreativityLevel float64 `json:"creativity_level"`

	// QualityThreshold is the minimum judge score a concept must reach
	// during selection. Range [0,1].
	QualityThreshold float64 `json:"quality_threshold" validate:"min=0,max=1"`
}

// Validate checks the quality threshold bounds. The creativity level is
// deliberately not validated here: the documented policy is to clamp it.
func (c *CreativityConfig) Validate() error { return validate.Struct(c) }

// EngineParameters are the internal sampling parameters derived from a
// creativity level. They are fixed for the lifetime of a run.
type EngineParameters struct {
	Temperature      float64 `json:"temperature" validate:"min=0,max=2"`
	TopP             float64 `json:"top_p" validate:"min=0,max=1"`
	NumBranches      int     `json:"num_branches" validate:"min=2"`
	QualityThreshold float64 `json:"quality_threshold" validate:"min=0,max=1"`
}

// Validate checks parameter bounds.
func (p *EngineParameters) Validate() error { return validate.Struct(p) }

// MapCreativity maps a creativity level to sampling parameters via fixed
// linear maps:
//
//	temperature = 0.4 + 0.8*L   in [0.4, 1.2]
//	top_p       = 0.6 + 0.4*L   in [0.6, 1.0]
//	branches    = max(2, floor(2 + 6*L)) in [2, 8]
//
// The function is pure and total: out-of-range levels are clamped to [0,1]
// (with a warning) rather than rejected, so a slightly out-of-range input
// degrades to the nearest legitimate configuration.
func MapCreativity(level, qualityThreshold float64) EngineParameters {
	if level < 0 || level > 1 || math.IsNaN(level) {
		clamped := clamp01(level)
		slog.Warn("creativity level out of range, clamping",
			"requested", level, "clamped", clamped)
		level = clamped
	}

	return EngineParameters{
		// Capped at 1.2 to prevent total incoherence.
		Temperature:      round2(0.4 + 0.8*level),
		TopP:             round2(0.6 + 0.4*level),
		NumBranches:      max(2, int(2+6*level)),
		QualityThreshold: qualityThreshold,
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

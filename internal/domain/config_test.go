package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapCreativity(t *testing.T) {
	tests := []struct {
		name         string
		level        float64
		wantTemp     float64
		wantTopP     float64
		wantBranches int
	}{
		{name: "minimum", level: 0.0, wantTemp: 0.4, wantTopP: 0.6, wantBranches: 2},
		{name: "midpoint", level: 0.5, wantTemp: 0.8, wantTopP: 0.8, wantBranches: 5},
		{name: "maximum", level: 1.0, wantTemp: 1.2, wantTopP: 1.0, wantBranches: 8},
		{name: "clamped below", level: -0.3, wantTemp: 0.4, wantTopP: 0.6, wantBranches: 2},
		{name: "clamped above", level: 1.7, wantTemp: 1.2, wantTopP: 1.0, wantBranches: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := MapCreativity(tt.level, 0.7)

			assert.InDelta(t, tt.wantTemp, params.Temperature, 1e-9)
			assert.InDelta(t, tt.wantTopP, params.TopP, 1e-9)
			assert.Equal(t, tt.wantBranches, params.NumBranches)
			assert.Equal(t, 0.7, params.QualityThreshold)
		})
	}
}

func TestMapCreativityMonotonic(t *testing.T) {
	prev := MapCreativity(0, 0.7)
	for l := 0.05; l <= 1.0; l += 0.05 {
		cur := MapCreativity(l, 0.7)

		assert.GreaterOrEqual(t, cur.Temperature, prev.Temperature, "temperature at level %v", l)
		assert.GreaterOrEqual(t, cur.TopP, prev.TopP, "top_p at level %v", l)
		assert.GreaterOrEqual(t, cur.NumBranches, prev.NumBranches, "branches at level %v", l)
		prev = cur
	}
}

func TestMapCreativityDeterministic(t *testing.T) {
	a := MapCreativity(0.42, 0.8)
	b := MapCreativity(0.42, 0.8)
	assert.Equal(t, a, b)
}

func TestEngineParametersValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p := MapCreativity(0.5, 0.7)
		require.NoError(t, p.Validate())
	})

	t.Run("too few branches", func(t *testing.T) {
		p := EngineParameters{Temperature: 0.8, TopP: 0.8, NumBranches: 1, QualityThreshold: 0.7}
		require.Error(t, p.Validate())
	})
}

func TestCreativityConfigValidate(t *testing.T) {
	t.Run("threshold out of range", func(t *testing.T) {
		cfg := CreativityConfig{CreativityLevel: 0.5, QualityThreshold: 1.5}
		require.Error(t, cfg.Validate())
	})

	t.Run("valid", func(t *testing.T) {
		cfg := CreativityConfig{CreativityLevel: 0.5, QualityThreshold: 0.7}
		require.NoError(t, cfg.Validate())
	})
}

package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agmi-labs/creative-engine/internal/domain"
)

func judgedConcepts(scores ...float64) []domain.Concept {
	out := make([]domain.Concept, len(scores))
	for i, s := range scores {
		out[i] = domain.Concept{ID: i, Title: "c", Description: "d", JudgeScore: s}
	}
	return out
}

func TestSelectConcept(t *testing.T) {
	t.Run("highest above threshold wins", func(t *testing.T) {
		selected, below := SelectConcept(judgedConcepts(0.9, 0.6, 0.95), 0.8)

		assert.Equal(t, 2, selected.ID)
		assert.Equal(t, 0.95, selected.JudgeScore)
		assert.False(t, below)
	})

	t.Run("fallback to best overall below threshold", func(t *testing.T) {
		selected, below := SelectConcept(judgedConcepts(0.5, 0.6), 0.8)

		assert.Equal(t, 1, selected.ID)
		assert.Equal(t, 0.6, selected.JudgeScore)
		assert.True(t, below)
	})

	t.Run("ties break to the lowest branch id", func(t *testing.T) {
		selected, below := SelectConcept(judgedConcepts(0.7, 0.9, 0.9), 0.8)

		assert.Equal(t, 1, selected.ID)
		assert.False(t, below)
	})

	t.Run("deterministic", func(t *testing.T) {
		concepts := judgedConcepts(0.81, 0.82, 0.80)
		first, _ := SelectConcept(concepts, 0.8)
		for range 10 {
			again, _ := SelectConcept(concepts, 0.8)
			assert.Equal(t, first, again)
		}
	})
}

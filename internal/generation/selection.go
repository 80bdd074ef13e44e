package generation

import "github.com/agmi-labs/creative-engine/internal/domain"

// SelectConcept picks the winning concept from a judged set. Among concepts
// at or above the threshold it returns the highest-scoring one; ties go to
// the lowest branch ID. When no concept clears the threshold it returns the
// best-scoring concept overall and reports belowThreshold=true rather than
// failing the run: a sub-threshold draft is more useful than nothing, and
// the flag lets callers decide what to do with it.
//
// The function is pure; given the same concepts and threshold it always
// returns the same winner.
func SelectConcept(concepts []domain.Concept, threshold float64) (selected domain.Concept, belowThreshold bool) {
	best := concepts[0]
	for _, c := range concepts[1:] {
		if c.JudgeScore > best.JudgeScore {
			best = c
		}
	}

	if best.JudgeScore >= threshold {
		// best already has the lowest ID among equal scores because
		// concepts arrive in ID order and only strict improvements
		// replace it.
		return best, false
	}
	return best, true
}

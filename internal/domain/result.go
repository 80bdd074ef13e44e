package domain

// EngineResult aggregates the outputs of one complete pipeline run.
// It is read-only to callers; the run that produced it is its sole owner.
type EngineResult struct {
	// RunID links generation and evaluation artifacts of the same run.
	RunID string `json:"run_id"`

	// Content is the drafted artifact expanded from the selected concept.
	Content DraftedContent `json:"content"`

	// SelectedConcept is the concept the drafting stage expanded.
	SelectedConcept Concept `json:"selected_concept"`

	// QualityScore equals the selected concept's judge score.
	QualityScore float64 `json:"quality_score"`

	// BelowThreshold is set when no concept met the quality threshold and
	// the selection fell back to the best overall scorer.
	BelowThreshold bool `json:"below_threshold"`

	// Concepts holds every judged concept of the run, in ideation order,
	// for provenance and score-distribution reporting.
	Concepts []Concept `json:"all_concepts"`

	// ProductContext and ReferenceExamples echo the run inputs.
	ProductContext    ProductContext `json:"product_context"`
	ReferenceExamples []string       `json:"reference_examples,omitempty"`

	// CreativityAssessment is present only when the run was asked to
	// evaluate its own output.
	CreativityAssessment *CreativityAssessment `json:"creativity_assessment,omitempty"`
}

// ScoreDistribution summarizes judge scores across all concepts of a run.
type ScoreDistribution struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// Distribution computes the judge-score spread over the run's concepts.
func (r *EngineResult) Distribution() ScoreDistribution {
	if len(r.Concepts) == 0 {
		return ScoreDistribution{}
	}
	d := ScoreDistribution{Min: r.Concepts[0].JudgeScore, Max: r.Concepts[0].JudgeScore}
	var sum float64
	for _, c := range r.Concepts {
		s := c.JudgeScore
		sum += s
		if s < d.Min {
			d.Min = s
		}
		if s > d.Max {
			d.Max = s
		}
	}
	d.Avg = sum / float64(len(r.Concepts))
	return d
}

package domain

// Concept is a high-level creative idea produced by one ideation branch.
// Exactly one Concept exists per branch. A Concept is created unscored by
// ideation and becomes immutable once judging assigns its score.
type Concept struct {
	// ID is the ideation branch index (0-based). It doubles as the
	// tie-break key during selection: lower index wins.
	ID int `json:"id"`

	// Title is a short, catchy name for the idea.
	Title string `json:"title" validate:"required"`

	// Description is the high-level summary of the idea.
	Description string `json:"description" validate:"required"`

	// HookIdea is the specific visual or audio hook for the first seconds.
	HookIdea string `json:"hook_idea"`

	// JudgeScore is the combined quality score in [0,1] assigned by the
	// judging stage. Zero until judged.
	JudgeScore float64 `json:"judge_score" validate:"min=0,max=1"`

	// JudgeRationale is the judge's short justification for the score.
	JudgeRationale string `json:"judge_rationale,omitempty"`
}

// Validate checks concept field constraints.
func (c *Concept) Validate() error { return validate.Struct(c) }

// Judged returns a copy of the concept with the judge verdict applied. The
// receiver is left untouched so unscored concepts stay immutable inputs.
func (c Concept) Judged(score float64, rationale string) Concept {
	c.JudgeScore = score
	c.JudgeRationale = rationale
	return c
}

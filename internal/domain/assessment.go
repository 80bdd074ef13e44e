package domain

import (
	"math"
	"sort"
)

// Criterion identifies one of the six fixed creativity rubric dimensions.
type Criterion string

const (
	CriterionHookOriginality      Criterion = "hook_originality"
	CriterionVisualCreativity     Criterion = "visual_creativity"
	CriterionNarrativeOriginality Criterion = "narrative_originality"
	CriterionEntertainmentValue   Criterion = "entertainment_value"
	CriterionBrandIntegration     Criterion = "brand_integration"
	CriterionPlatformFit          Criterion = "platform_fit"
)

// Criteria lists the rubric dimensions in canonical order.
var Criteria = []Criterion{
	CriterionHookOriginality,
	CriterionVisualCreativity,
	CriterionNarrativeOriginality,
	CriterionEntertainmentValue,
	CriterionBrandIntegration,
	CriterionPlatformFit,
}

// Rubric scale bounds for a single criterion score.
const (
	RubricMin = 1.0
	RubricMax = 3.0
)

// CriterionScore is one raw score plus the judge's short reason.
type CriterionScore struct {
	Score  float64 `json:"score" validate:"min=1,max=3"`
	Reason string  `json:"reason"`
}

// JudgeSample holds the outcome of one successful (persona, temperature)
// evaluation call: a score for every rubric criterion plus the judge's own
// overall verdict. Samples are immutable once recorded; failed cells are
// structurally absent rather than recorded with zero scores.
type JudgeSample struct {
	// Persona is the judge persona name.
	Persona string `json:"persona"`

	// PersonaIndex orders samples deterministically for aggregation.
	PersonaIndex int `json:"persona_index"`

	// Temperature is the sampling temperature of the call.
	Temperature float64 `json:"temperature"`

	// Scores maps every rubric criterion to its raw score.
	Scores map[Criterion]CriterionScore `json:"scores"`

	// Overall is the judge's self-reported overall verdict, kept for
	// provenance. Aggregation recomputes the cell average itself.
	Overall CriterionScore `json:"overall"`
}

// CellMean returns the across-criteria average of this sample. Using the
// recomputed average rather than the judge's self-reported overall keeps the
// aggregate deterministic and immune to model arithmetic slips.
func (s JudgeSample) CellMean() float64 {
	if len(s.Scores) == 0 {
		return 0
	}
	var sum float64
	for _, cs := range s.Scores {
		sum += cs.Score
	}
	return sum / float64(len(s.Scores))
}

// Stats holds mean and standard deviation over a set of samples.
// Std is the sample standard deviation (n-1), zero when Count < 2.
type Stats struct {
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Count int     `json:"count"`
}

// Aggregate is the derived statistical view of a score matrix.
// Criteria for which every cell failed are listed in Unavailable and are
// structurally absent from ByCriterion; they are never reported as zero.
type Aggregate struct {
	// Overall is computed over per-cell across-criteria averages, not
	// over per-criterion means, preserving the correlation structure
	// within a single judge call.
	Overall Stats `json:"overall"`

	// ByCriterion holds per-criterion statistics across successful cells.
	ByCriterion map[Criterion]Stats `json:"criteria"`

	// Unavailable lists criteria with no successful samples.
	Unavailable []Criterion `json:"unavailable,omitempty"`
}

// CreativityAssessment is the result of one evaluation sweep: the full raw
// sample matrix (sparse over persona x temperature), failure accounting,
// and the deterministically derived aggregate.
type CreativityAssessment struct {
	Samples []JudgeSample `json:"samples"`

	// AttemptedCells is the total number of (persona, temperature) cells
	// the sweep issued; FailedCells is how many of them produced no
	// sample. len(Samples) + FailedCells == AttemptedCells.
	AttemptedCells int `json:"attempted_cells"`
	FailedCells    int `json:"failed_cells"`

	Aggregate Aggregate `json:"aggregate"`
}

// Recompute rebuilds the aggregate from the raw samples. The aggregate is a
// pure function of the sample set, so callers can verify or rebuild it at
// any time.
func (a *CreativityAssessment) Recompute() {
	a.Aggregate = ComputeAggregate(a.Samples)
}

// ComputeAggregate derives per-criterion and overall statistics from a
// sparse sample set. Missing cells simply contribute nothing: they appear in
// neither numerator nor denominator.
func ComputeAggregate(samples []JudgeSample) Aggregate {
	agg := Aggregate{ByCriterion: make(map[Criterion]Stats, len(Criteria))}

	perCriterion := make(map[Criterion][]float64, len(Criteria))
	cellMeans := make([]float64, 0, len(samples))
	for _, s := range samples {
		if len(s.Scores) == 0 {
			continue
		}
		for crit, cs := range s.Scores {
			perCriterion[crit] = append(perCriterion[crit], cs.Score)
		}
		cellMeans = append(cellMeans, s.CellMean())
	}

	for _, crit := range Criteria {
		scores, ok := perCriterion[crit]
		if !ok || len(scores) == 0 {
			agg.Unavailable = append(agg.Unavailable, crit)
			continue
		}
		agg.ByCriterion[crit] = computeStats(scores)
	}
	agg.Overall = computeStats(cellMeans)

	return agg
}

// SortSamples orders samples by (persona index, temperature) so that
// concurrent sweeps produce a deterministic matrix regardless of completion
// order.
func SortSamples(samples []JudgeSample) {
	sort.SliceStable(samples, func(i, j int) bool {
		if samples[i].PersonaIndex != samples[j].PersonaIndex {
			return samples[i].PersonaIndex < samples[j].PersonaIndex
		}
		return samples[i].Temperature < samples[j].Temperature
	})
}

// computeStats returns mean and sample standard deviation for a score list.
func computeStats(scores []float64) Stats {
	n := len(scores)
	if n == 0 {
		return Stats{}
	}

	var sum float64
	for _, v := range scores {
		sum += v
	}
	mean := sum / float64(n)

	if n < 2 {
		return Stats{Mean: mean, Count: n}
	}

	var sq float64
	for _, v := range scores {
		d := v - mean
		sq += d * d
	}
	return Stats{
		Mean:  mean,
		Std:   math.Sqrt(sq / float64(n-1)),
		Count: n,
	}
}

package generation

import (
	"errors"
	"fmt"

	"github.com/agmi-labs/creative-engine/internal/domain"
)

// Stage names used in StageError.
const (
	StageIdeation  = "ideation"
	StageJudging   = "judging"
	StageSelection = "selection"
	StageDrafting  = "drafting"
)

var (
	// ErrInsufficientIdeation indicates fewer than two ideation branches
	// produced a valid concept, so judging has nothing to compare.
	ErrInsufficientIdeation = errors.New("insufficient ideation: fewer than two branches succeeded")

	// ErrJudgingFailure indicates no concept survived judging.
	ErrJudgingFailure = errors.New("judging failed for every concept")

	// ErrDraftingFailure indicates the selected concept could not be
	// expanded into a final artifact.
	ErrDraftingFailure = errors.New("drafting failed for selected concept")
)

// StageError reports which pipeline stage failed and carries whatever
// concepts had been produced before the failure.
type StageError struct {
	Stage    string
	Err      error
	Concepts []domain.Concept
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

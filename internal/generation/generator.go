package generation

import (
	"context"
	"log/slog"

	"github.com/agmi-labs/creative-engine/internal/domain"
	"github.com/agmi-labs/creative-engine/internal/llm"
)

// Per-stage completion budgets in tokens.
const (
	ideationMaxTokens = 1024
	judgeMaxTokens    = 512
	draftMaxTokens    = 4096
)

// Judge sampling is fixed and independent of the creativity level: verdicts
// should be stable, not exploratory.
const (
	judgeTemperature = 0.3
	judgeTopP        = 0.9
)

const defaultMaxParallel = 4

// Config tunes the pipeline's concurrency.
type Config struct {
	// MaxParallel bounds concurrent model calls within a stage.
	MaxParallel int

	Logger *slog.Logger
}

func (c *Config) applyDefaults() {
	if c.MaxParallel <= 0 {
		c.MaxParallel = defaultMaxParallel
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Generator runs the four-stage pipeline for one content type at a time.
// It is safe for concurrent use.
type Generator struct {
	client llm.Client
	cfg    Config
}

// New builds a Generator over a model client.
func New(client llm.Client, cfg Config) *Generator {
	cfg.applyDefaults()
	return &Generator{client: client, cfg: cfg}
}

// Result is the output of one full pipeline run.
type Result struct {
	Content         domain.DraftedContent
	SelectedConcept domain.Concept
	BelowThreshold  bool

	// Concepts holds every judged concept in ideation order, selected or
	// not, for inspection and audit.
	Concepts []domain.Concept
}

// Generate runs ideation, judging, selection, and drafting for one product
// context. refs are style reference examples injected into ideation; params
// come from the creativity mapper. Failures carry a *StageError naming the
// stage and any concepts produced before it.
func (g *Generator) Generate(ctx context.Context, pc domain.ProductContext, contentType domain.ContentType, refs []string, params domain.EngineParameters) (*Result, error) {
	if err := pc.Validate(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	def, err := Lookup(contentType)
	if err != nil {
		return nil, err
	}

	concepts, err := g.ideate(ctx, def, pc, refs, params)
	if err != nil {
		return nil, err
	}
	g.cfg.Logger.Info("ideation complete",
		"requested", params.NumBranches, "produced", len(concepts))

	judged, err := g.judge(ctx, def, pc, concepts)
	if err != nil {
		return nil, err
	}

	selected, belowThreshold := SelectConcept(judged, params.QualityThreshold)
	g.cfg.Logger.Info("concept selected",
		"concept_id", selected.ID,
		"judge_score", selected.JudgeScore,
		"below_threshold", belowThreshold)

	content, err := g.draft(ctx, def, pc, selected, contentType, params)
	if err != nil {
		return nil, &StageError{Stage: StageDrafting, Err: err, Concepts: judged}
	}

	return &Result{
		Content:         content,
		SelectedConcept: selected,
		BelowThreshold:  belowThreshold,
		Concepts:        judged,
	}, nil
}

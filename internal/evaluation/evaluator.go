package evaluation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/agmi-labs/creative-engine/internal/domain"
	"github.com/agmi-labs/creative-engine/internal/llm"
)

// DefaultTemperatures is the default sweep grid. Low temperatures probe the
// judge's stable opinion; higher ones expose variance in how defensible a
// score is.
var DefaultTemperatures = []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8}

const (
	verdictTopP      = 0.9
	verdictMaxTokens = 1024

	defaultMaxParallel = 4
)

// ErrNoSuccessfulCells indicates every cell of the sweep failed, so no
// assessment can be produced.
var ErrNoSuccessfulCells = fmt.Errorf("evaluation: every judge cell failed")

// Config tunes a sweep.
type Config struct {
	// Temperatures is the sweep grid; defaults to DefaultTemperatures.
	Temperatures []float64

	// MaxParallel bounds concurrent judge calls.
	MaxParallel int

	Logger *slog.Logger
}

func (c *Config) applyDefaults() {
	if len(c.Temperatures) == 0 {
		c.Temperatures = DefaultTemperatures
	}
	if c.MaxParallel <= 0 {
		c.MaxParallel = defaultMaxParallel
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Evaluator runs the persona x temperature sweep. Safe for concurrent use;
// Score is a pure read of its inputs.
type Evaluator struct {
	client llm.Client
	cfg    Config
}

// New builds an Evaluator over a model client.
func New(client llm.Client, cfg Config) *Evaluator {
	cfg.applyDefaults()
	return &Evaluator{client: client, cfg: cfg}
}

// cell is one (judge, temperature) coordinate of the sweep matrix.
type cell struct {
	personaName  string
	personaIndex int
	system       string
	temperature  float64
}

// Score sweeps the artifact through every (persona, temperature) cell:
// the generic judge at index 0 plus the named persona panel, each at every
// grid temperature. Cell failures are tolerated and counted; the resulting
// sample matrix is sparse. Only a sweep with zero successful cells fails.
func (e *Evaluator) Score(ctx context.Context, content domain.DraftedContent, refs []string, pc domain.ProductContext) (*domain.CreativityAssessment, error) {
	if err := pc.Validate(); err != nil {
		return nil, err
	}
	if len(content.Raw) == 0 {
		return nil, fmt.Errorf("evaluation: empty content")
	}

	cells := e.buildCells()
	userPrompt := judgeUserPrompt(pc, content, refs)

	var (
		mu      sync.Mutex
		samples []domain.JudgeSample
		failed  int
	)

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(e.cfg.MaxParallel)

	for _, c := range cells {
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			var out verdict
			err := llm.GenerateInto(gctx, e.client, &llm.Request{
				SystemPrompt: c.system,
				UserPrompt:   userPrompt,
				Schema:       verdictSchema,
				Temperature:  c.temperature,
				TopP:         verdictTopP,
				MaxTokens:    verdictMaxTokens,
			}, &out)
			if err != nil {
				e.cfg.Logger.Warn("judge cell failed",
					"persona", c.personaName,
					"temperature", c.temperature,
					"error", err)
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}

			mu.Lock()
			samples = append(samples, domain.JudgeSample{
				Persona:      c.personaName,
				PersonaIndex: c.personaIndex,
				Temperature:  c.temperature,
				Scores:       out.scores(),
				Overall: domain.CriterionScore{
					Score:  out.OverallCreativity.Score,
					Reason: out.OverallCreativity.Reason,
				},
			})
			mu.Unlock()
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, ErrNoSuccessfulCells
	}

	domain.SortSamples(samples)
	assessment := &domain.CreativityAssessment{
		Samples:        samples,
		AttemptedCells: len(cells),
		FailedCells:    failed,
	}
	assessment.Recompute()

	e.cfg.Logger.Info("evaluation sweep complete",
		"attempted_cells", assessment.AttemptedCells,
		"failed_cells", assessment.FailedCells,
		"overall_mean", assessment.Aggregate.Overall.Mean)
	return assessment, nil
}

// buildCells enumerates the full matrix in deterministic order.
func (e *Evaluator) buildCells() []cell {
	cells := make([]cell, 0, (1+len(Personas))*len(e.cfg.Temperatures))
	generic := genericSystemPrompt()
	for _, t := range e.cfg.Temperatures {
		cells = append(cells, cell{
			personaName:  GenericJudgeName,
			personaIndex: 0,
			system:       generic,
			temperature:  t,
		})
	}
	for i, p := range Personas {
		system := personaSystemPrompt(p)
		for _, t := range e.cfg.Temperatures {
			cells = append(cells, cell{
				personaName:  p.Name,
				personaIndex: i + 1,
				system:       system,
				temperature:  t,
			})
		}
	}
	return cells
}

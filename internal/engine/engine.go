// Package engine is the public facade of the creative engine: it wires the
// generation pipeline and the evaluation sweep behind two entry points,
// Generate and Score.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/agmi-labs/creative-engine/internal/artifacts"
	"github.com/agmi-labs/creative-engine/internal/domain"
	"github.com/agmi-labs/creative-engine/internal/evaluation"
	"github.com/agmi-labs/creative-engine/internal/generation"
	"github.com/agmi-labs/creative-engine/internal/llm"
)

// Config assembles an Engine.
type Config struct {
	// MaxParallel bounds concurrent model calls per stage.
	MaxParallel int

	// Temperatures overrides the evaluation sweep grid.
	Temperatures []float64

	// Store receives artifacts from SaveArtifacts. Optional.
	Store artifacts.Store

	Logger *slog.Logger
}

// Engine runs complete content-generation runs. Safe for concurrent use.
type Engine struct {
	generator *generation.Generator
	evaluator *evaluation.Evaluator
	store     artifacts.Store
	logger    *slog.Logger
}

// New builds an Engine over one model client shared by generation and
// evaluation.
func New(client llm.Client, cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		generator: generation.New(client, generation.Config{
			MaxParallel: cfg.MaxParallel,
			Logger:      logger,
		}),
		evaluator: evaluation.New(client, evaluation.Config{
			Temperatures: cfg.Temperatures,
			MaxParallel:  cfg.MaxParallel,
			Logger:       logger,
		}),
		store:  cfg.Store,
		logger: logger,
	}
}

// Generate runs the full divergence-convergence pipeline and, when
// evaluateCreativity is set, sweeps the drafted artifact through the judge
// matrix. An evaluation failure is logged and degrades to a nil assessment;
// it never discards a completed generation.
func (e *Engine) Generate(ctx context.Context, pc domain.ProductContext, contentType domain.ContentType, refs []string, cfg domain.CreativityConfig, evaluateCreativity bool) (*domain.EngineResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pc = pc.Clone()
	params := domain.MapCreativity(cfg.CreativityLevel, cfg.QualityThreshold)
	runID := uuid.NewString()

	e.logger.Info("generation run starting",
		"run_id", runID,
		"content_type", contentType,
		"branches", params.NumBranches,
		"temperature", params.Temperature)

	genResult, err := e.generator.Generate(ctx, pc, contentType, refs, params)
	if err != nil {
		return nil, err
	}

	result := &domain.EngineResult{
		RunID:             runID,
		Content:           genResult.Content,
		SelectedConcept:   genResult.SelectedConcept,
		QualityScore:      genResult.SelectedConcept.JudgeScore,
		BelowThreshold:    genResult.BelowThreshold,
		Concepts:          genResult.Concepts,
		ProductContext:    pc,
		ReferenceExamples: refs,
	}

	if evaluateCreativity {
		if contentType != domain.ContentTypeVideoScript {
			e.logger.Warn("creativity evaluation only supported for video scripts, skipping",
				"run_id", runID, "content_type", contentType)
		} else if assessment, err := e.Score(ctx, genResult.Content, refs, pc); err != nil {
			// The draft is done; a broken sweep should not discard it.
			e.logger.Error("creativity evaluation failed, continuing without assessment",
				"run_id", runID, "error", err)
		} else {
			result.CreativityAssessment = assessment
		}
	}

	return result, nil
}

// Score evaluates an already-drafted artifact without generating anything.
// It is a pure read of its inputs and safe to call concurrently.
func (e *Engine) Score(ctx context.Context, content domain.DraftedContent, refs []string, pc domain.ProductContext) (*domain.CreativityAssessment, error) {
	return e.evaluator.Score(ctx, content, refs, pc)
}

// SaveArtifacts persists the generation output and, when present, the
// creativity assessment. Returns the stored locations; the evaluation
// location is empty when the run carried no assessment.
func (e *Engine) SaveArtifacts(ctx context.Context, result *domain.EngineResult) (genLocation, evalLocation string, err error) {
	if e.store == nil {
		return "", "", fmt.Errorf("engine: no artifact store configured")
	}

	genLocation, err = e.store.Put(ctx, result.RunID, "generation", result)
	if err != nil {
		return "", "", err
	}

	if result.CreativityAssessment != nil {
		evalLocation, err = e.store.Put(ctx, result.RunID, "evaluation", result.CreativityAssessment)
		if err != nil {
			return genLocation, "", err
		}
	}
	return genLocation, evalLocation, nil
}

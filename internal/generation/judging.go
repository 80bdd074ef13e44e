package generation

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/agmi-labs/creative-engine/internal/domain"
	"github.com/agmi-labs/creative-engine/internal/llm"
)

// judge scores each concept with an independent call. Each verdict sees one
// concept and the product context only, never the sibling concepts, so the
// score a concept receives does not depend on what else was generated.
// Concepts whose verdict call fails are dropped; if nothing survives the
// stage fails.
func (g *Generator) judge(ctx context.Context, def Definition, pc domain.ProductContext, concepts []domain.Concept) ([]domain.Concept, error) {
	var (
		mu     sync.Mutex
		judged []domain.Concept
	)

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(g.cfg.MaxParallel)

	for _, c := range concepts {
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			var out judgeOutput
			err := llm.GenerateInto(gctx, g.client, &llm.Request{
				SystemPrompt: def.Prompts.JudgeSystem(),
				UserPrompt:   def.Prompts.JudgeUser(pc, c),
				Schema:       JudgeSchema,
				Temperature:  judgeTemperature,
				TopP:         judgeTopP,
				MaxTokens:    judgeMaxTokens,
			}, &out)
			if err != nil {
				g.cfg.Logger.Warn("judge call failed, dropping concept",
					"concept_id", c.ID, "title", c.Title, "error", err)
				return nil
			}

			mu.Lock()
			judged = append(judged, c.Judged(out.QualityScore, out.Reason))
			mu.Unlock()
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}

	if len(judged) == 0 {
		return nil, &StageError{Stage: StageJudging, Err: ErrJudgingFailure, Concepts: concepts}
	}

	slices.SortFunc(judged, func(a, b domain.Concept) int { return a.ID - b.ID })
	return judged, nil
}

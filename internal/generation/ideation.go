package generation

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/agmi-labs/creative-engine/internal/domain"
	"github.com/agmi-labs/creative-engine/internal/llm"
)

// ideate fans out params.NumBranches independent concept calls. Each branch
// sees the concepts its siblings have already produced, so later branches
// steer away from angles that are taken. Branch failures are tolerated as
// long as at least two branches succeed.
func (g *Generator) ideate(ctx context.Context, def Definition, pc domain.ProductContext, refs []string, params domain.EngineParameters) ([]domain.Concept, error) {
	var (
		mu       sync.Mutex
		produced []domain.Concept
		failed   int
	)

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(g.cfg.MaxParallel)

	for i := range params.NumBranches {
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			mu.Lock()
			siblings := slices.Clone(produced)
			mu.Unlock()

			var out conceptOutput
			err := llm.GenerateInto(gctx, g.client, &llm.Request{
				SystemPrompt: def.Prompts.IdeationSystem(),
				UserPrompt:   def.Prompts.IdeationUser(pc, refs, siblings),
				Schema:       ConceptSchema,
				Temperature:  params.Temperature,
				TopP:         params.TopP,
				MaxTokens:    ideationMaxTokens,
			}, &out)
			if err != nil {
				g.cfg.Logger.Warn("ideation branch failed",
					"branch", i, "error", err)
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}

			mu.Lock()
			produced = append(produced, domain.Concept{
				ID:          i,
				Title:       out.Title,
				Description: out.Description,
				HookIdea:    out.HookIdea,
			})
			mu.Unlock()
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}

	if len(produced) < 2 {
		return nil, &StageError{Stage: StageIdeation, Err: ErrInsufficientIdeation, Concepts: produced}
	}

	// Branch IDs are assigned before fan-out; restore submission order so
	// downstream tie-breaking is deterministic.
	slices.SortFunc(produced, func(a, b domain.Concept) int { return a.ID - b.ID })
	return produced, nil
}

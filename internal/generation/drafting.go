package generation

import (
	"context"
	"fmt"

	"github.com/agmi-labs/creative-engine/internal/domain"
	"github.com/agmi-labs/creative-engine/internal/llm"
)

// draft expands the selected concept into the final structured artifact
// with a single call validated against the content type's schema. This is
// the last stage; a failure here fails the run because there is no
// fallback artifact to return.
func (g *Generator) draft(ctx context.Context, def Definition, pc domain.ProductContext, selected domain.Concept, contentType domain.ContentType, params domain.EngineParameters) (domain.DraftedContent, error) {
	resp, err := g.client.Generate(ctx, &llm.Request{
		SystemPrompt: def.Prompts.DraftSystem(),
		UserPrompt:   def.Prompts.DraftUser(pc, selected),
		Schema:       def.DraftSchema,
		Temperature:  params.Temperature,
		TopP:         params.TopP,
		MaxTokens:    draftMaxTokens,
	})
	if err != nil {
		return domain.DraftedContent{}, fmt.Errorf("%w: %w", ErrDraftingFailure, err)
	}

	return domain.DraftedContent{
		Type: contentType,
		Raw:  resp.Content,
	}, nil
}

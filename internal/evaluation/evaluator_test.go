package evaluation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agmi-labs/creative-engine/internal/domain"
	"github.com/agmi-labs/creative-engine/internal/llm"
)

// stubClient scores every cell via fn, keyed by persona name and
// temperature extracted from the request.
type stubClient struct {
	mu    sync.Mutex
	calls int
	fn    func(system string, temperature float64) (*llm.Response, error)
}

func (s *stubClient) Generate(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.fn(req.SystemPrompt, req.Temperature)
}

func verdictJSON(score int) *llm.Response {
	cell := fmt.Sprintf(`{"score": %d, "reason": "test"}`, score)
	return &llm.Response{Content: []byte(fmt.Sprintf(`{
		"hook_originality": %s,
		"visual_creativity": %s,
		"narrative_originality": %s,
		"entertainment_value": %s,
		"brand_integration": %s,
		"platform_fit": %s,
		"overall_creativity": {"score": %d, "reason": "test"}
	}`, cell, cell, cell, cell, cell, cell, score))}
}

func testContent() domain.DraftedContent {
	return domain.DraftedContent{
		Type: domain.ContentTypeVideoScript,
		Raw:  []byte(`{"video_meta":{"duration_seconds":30,"platform":"tiktok"},"scenes":[]}`),
	}
}

func testProduct() domain.ProductContext {
	return domain.ProductContext{Name: "Acme Notes", TargetAudience: "developers"}
}

func TestEvaluatorScore(t *testing.T) {
	grid := []float64{0.1, 0.5}
	wantCells := (1 + len(Personas)) * len(grid)

	t.Run("full sweep covers every cell", func(t *testing.T) {
		client := &stubClient{fn: func(system string, temp float64) (*llm.Response, error) {
			return verdictJSON(2), nil
		}}
		e := New(client, Config{Temperatures: grid})

		assessment, err := e.Score(context.Background(), testContent(), nil, testProduct())

		require.NoError(t, err)
		assert.Equal(t, wantCells, assessment.AttemptedCells)
		assert.Zero(t, assessment.FailedCells)
		assert.Len(t, assessment.Samples, wantCells)
		assert.Equal(t, wantCells, client.calls)
		assert.InDelta(t, 2.0, assessment.Aggregate.Overall.Mean, 1e-9)
	})

	t.Run("samples arrive sorted by persona then temperature", func(t *testing.T) {
		client := &stubClient{fn: func(system string, temp float64) (*llm.Response, error) {
			return verdictJSON(2), nil
		}}
		e := New(client, Config{Temperatures: grid, MaxParallel: 8})

		assessment, err := e.Score(context.Background(), testContent(), nil, testProduct())
		require.NoError(t, err)

		for i := 1; i < len(assessment.Samples); i++ {
			prev, cur := assessment.Samples[i-1], assessment.Samples[i]
			ordered := prev.PersonaIndex < cur.PersonaIndex ||
				(prev.PersonaIndex == cur.PersonaIndex && prev.Temperature < cur.Temperature)
			assert.True(t, ordered, "samples %d and %d out of order", i-1, i)
		}
		assert.Equal(t, GenericJudgeName, assessment.Samples[0].Persona)
	})

	t.Run("cell failures accumulate without aborting", func(t *testing.T) {
		client := &stubClient{fn: func(system string, temp float64) (*llm.Response, error) {
			// One persona's cells all fail.
			if strings.Contains(system, "Meme Culture Editor") {
				return nil, fmt.Errorf("judge unavailable")
			}
			return verdictJSON(3), nil
		}}
		e := New(client, Config{Temperatures: grid})

		assessment, err := e.Score(context.Background(), testContent(), nil, testProduct())

		require.NoError(t, err)
		assert.Equal(t, len(grid), assessment.FailedCells)
		assert.Len(t, assessment.Samples, wantCells-len(grid))
		assert.Equal(t, assessment.AttemptedCells, len(assessment.Samples)+assessment.FailedCells)
	})

	t.Run("every cell failing is an error", func(t *testing.T) {
		client := &stubClient{fn: func(system string, temp float64) (*llm.Response, error) {
			return nil, fmt.Errorf("judge unavailable")
		}}
		e := New(client, Config{Temperatures: grid})

		_, err := e.Score(context.Background(), testContent(), nil, testProduct())

		require.ErrorIs(t, err, ErrNoSuccessfulCells)
	})

	t.Run("deterministic judge makes scoring idempotent", func(t *testing.T) {
		scoreFor := func(temp float64) int {
			if temp < 0.3 {
				return 1
			}
			return 3
		}
		client := &stubClient{fn: func(system string, temp float64) (*llm.Response, error) {
			return verdictJSON(scoreFor(temp)), nil
		}}
		e := New(client, Config{Temperatures: grid})

		first, err := e.Score(context.Background(), testContent(), nil, testProduct())
		require.NoError(t, err)
		second, err := e.Score(context.Background(), testContent(), nil, testProduct())
		require.NoError(t, err)

		assert.Equal(t, first.Aggregate, second.Aggregate)
		assert.Equal(t, first.Samples, second.Samples)
	})

	t.Run("empty content is rejected", func(t *testing.T) {
		e := New(&stubClient{}, Config{})
		_, err := e.Score(context.Background(), domain.DraftedContent{}, nil, testProduct())
		require.Error(t, err)
	})

	t.Run("references reach the judge prompt", func(t *testing.T) {
		var sawRefs bool
		client := &stubClient{fn: func(system string, temp float64) (*llm.Response, error) {
			return verdictJSON(2), nil
		}}
		e := New(client, Config{Temperatures: []float64{0.1}})

		refs := []string{"deadpan fourth-wall break"}
		prompt := judgeUserPrompt(testProduct(), testContent(), refs)
		sawRefs = strings.Contains(prompt, refs[0])

		_, err := e.Score(context.Background(), testContent(), refs, testProduct())
		require.NoError(t, err)
		assert.True(t, sawRefs)
	})
}

func TestPersonaPanel(t *testing.T) {
	assert.Len(t, Personas, 8)

	seen := make(map[string]struct{}, len(Personas))
	for _, p := range Personas {
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Description)
		_, dup := seen[p.Name]
		assert.False(t, dup, "duplicate persona %s", p.Name)
		seen[p.Name] = struct{}{}
	}
}

func TestVerdictSchema(t *testing.T) {
	t.Run("accepts a complete verdict", func(t *testing.T) {
		require.NoError(t, verdictSchema.Validate(verdictJSON(2).Content))
	})

	t.Run("rejects out-of-scale scores", func(t *testing.T) {
		require.Error(t, verdictSchema.Validate(verdictJSON(5).Content))
	})
}

package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmerrors "github.com/agmi-labs/creative-engine/internal/llm/errors"
	"github.com/agmi-labs/creative-engine/internal/llm/providers"
)

// stubAdapter fakes a provider for chain tests.
type stubAdapter struct {
	calls     int
	responses []string
	errs      []error
}

func (s *stubAdapter) Name() string { return "stub" }

func (s *stubAdapter) Complete(ctx context.Context, req *providers.Request) (*providers.Response, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	content := s.responses[min(i, len(s.responses)-1)]
	return &providers.Response{
		Content: content,
		Usage:   providers.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}, nil
}

func fastRetry() RetryConfig {
	cfg := DefaultRetryConfig()
	cfg.InitialInterval = time.Millisecond
	cfg.MaxInterval = time.Millisecond
	cfg.UseJitter = false
	return cfg
}

func TestClientChain(t *testing.T) {
	t.Run("validated response flows through", func(t *testing.T) {
		adapter := &stubAdapter{responses: []string{"```json\n{\"title\":\"ok\"}\n```"}}
		c := NewClientWithAdapter(Config{Model: "gpt-4o", Retry: fastRetry()}, adapter)

		resp, err := c.Generate(context.Background(), &Request{Schema: testSchema})

		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"ok"}`, string(resp.Content))
		assert.Equal(t, 1, resp.Attempts)
		assert.Equal(t, int64(15), resp.Usage.TotalTokens)
	})

	t.Run("invalid output is re-asked", func(t *testing.T) {
		adapter := &stubAdapter{responses: []string{"not json at all", `{"title":"ok"}`}}
		c := NewClientWithAdapter(Config{Model: "gpt-4o", Retry: fastRetry()}, adapter)

		resp, err := c.Generate(context.Background(), &Request{Schema: testSchema})

		require.NoError(t, err)
		assert.Equal(t, 2, adapter.calls)
		assert.Equal(t, 2, resp.Attempts)
	})

	t.Run("persistent schema failures exhaust the invalid budget", func(t *testing.T) {
		adapter := &stubAdapter{responses: []string{`{"score":0.2}`}}
		c := NewClientWithAdapter(Config{Model: "gpt-4o", Retry: fastRetry()}, adapter)

		_, err := c.Generate(context.Background(), &Request{Schema: testSchema})

		require.ErrorIs(t, err, llmerrors.ErrMaxRetriesExceeded)
		assert.Equal(t, 3, adapter.calls)
	})

	t.Run("transient provider failure retries then succeeds", func(t *testing.T) {
		adapter := &stubAdapter{
			errs: []error{&llmerrors.ProviderError{
				Provider: "stub", StatusCode: 503,
				Type: llmerrors.ErrorTypeProvider, Message: "overloaded",
			}},
			responses: []string{`{"title":"ok"}`},
		}
		c := NewClientWithAdapter(Config{Model: "gpt-4o", Retry: fastRetry()}, adapter)

		resp, err := c.Generate(context.Background(), &Request{Schema: testSchema})

		require.NoError(t, err)
		assert.Equal(t, 2, resp.Attempts)
	})
}

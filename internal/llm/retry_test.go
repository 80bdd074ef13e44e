package llm

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmerrors "github.com/agmi-labs/creative-engine/internal/llm/errors"
)

func newTestRetry(cfg RetryConfig) (*retryMiddleware, *[]time.Duration) {
	var sleeps []time.Duration
	m := &retryMiddleware{
		config: cfg,
		logger: slog.Default(),
		sleep: func(ctx context.Context, d time.Duration) error {
			sleeps = append(sleeps, d)
			return nil
		},
	}
	return m, &sleeps
}

func testRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       4,
		MaxInvalidRetries: 2,
		InitialInterval:   100 * time.Millisecond,
		MaxInterval:       time.Second,
		Multiplier:        2.0,
		UseJitter:         false,
	}
}

func retryableErr() error {
	return &llmerrors.ProviderError{
		Provider: "test", StatusCode: 500,
		Type: llmerrors.ErrorTypeProvider, Message: "upstream down",
	}
}

func invalidErr() error {
	return &llmerrors.ProviderError{
		Type: llmerrors.ErrorTypeInvalidResponse, Message: "bad shape",
	}
}

func TestRetryMiddleware(t *testing.T) {
	req := &Request{Schema: testSchema, TraceID: "t"}

	t.Run("succeeds after transient failures", func(t *testing.T) {
		m, sleeps := newTestRetry(testRetryConfig())
		calls := 0
		h := m.wrap(HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			calls++
			if calls < 3 {
				return nil, retryableErr()
			}
			return &Response{Content: []byte(`{}`)}, nil
		}))

		resp, err := h.Handle(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, 3, resp.Attempts)
		assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, *sleeps)
	})

	t.Run("exhausts transient budget", func(t *testing.T) {
		m, _ := newTestRetry(testRetryConfig())
		calls := 0
		h := m.wrap(HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			calls++
			return nil, retryableErr()
		}))

		_, err := h.Handle(context.Background(), req)

		require.ErrorIs(t, err, llmerrors.ErrMaxRetriesExceeded)
		assert.Equal(t, 4, calls)
	})

	t.Run("invalid responses retry without backoff", func(t *testing.T) {
		m, sleeps := newTestRetry(testRetryConfig())
		calls := 0
		h := m.wrap(HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			calls++
			if calls < 3 {
				return nil, invalidErr()
			}
			return &Response{Content: []byte(`{}`)}, nil
		}))

		_, err := h.Handle(context.Background(), req)

		require.NoError(t, err)
		assert.Empty(t, *sleeps)
	})

	t.Run("invalid responses have a separate smaller budget", func(t *testing.T) {
		m, _ := newTestRetry(testRetryConfig())
		calls := 0
		h := m.wrap(HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			calls++
			return nil, invalidErr()
		}))

		_, err := h.Handle(context.Background(), req)

		require.ErrorIs(t, err, llmerrors.ErrMaxRetriesExceeded)
		assert.Equal(t, 3, calls) // initial call + MaxInvalidRetries
	})

	t.Run("auth errors never retry", func(t *testing.T) {
		m, _ := newTestRetry(testRetryConfig())
		calls := 0
		h := m.wrap(HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			calls++
			return nil, &llmerrors.ProviderError{
				StatusCode: 401, Type: llmerrors.ErrorTypeAuth, Message: "bad key",
			}
		}))

		_, err := h.Handle(context.Background(), req)

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retry-after guidance wins over backoff", func(t *testing.T) {
		m, sleeps := newTestRetry(testRetryConfig())
		calls := 0
		h := m.wrap(HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			calls++
			if calls == 1 {
				return nil, &llmerrors.ProviderError{
					StatusCode: 429,
					Type:       llmerrors.ErrorTypeRateLimit,
					RetryAfter: 3,
					Message:    "slow down",
				}
			}
			return &Response{Content: []byte(`{}`)}, nil
		}))

		_, err := h.Handle(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, []time.Duration{3 * time.Second}, *sleeps)
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		m, _ := newTestRetry(testRetryConfig())
		ctx, cancel := context.WithCancel(context.Background())
		h := m.wrap(HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			cancel()
			return nil, retryableErr()
		}))

		_, err := h.Handle(ctx, req)

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestBackoffCapped(t *testing.T) {
	m, _ := newTestRetry(testRetryConfig())
	// Attempt numbers far beyond the cap must clamp to MaxInterval.
	assert.Equal(t, time.Second, m.backoff(10, retryableErr()))
}

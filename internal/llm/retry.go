package llm

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	llmerrors "github.com/agmi-labs/creative-engine/internal/llm/errors"
)

// RetryConfig controls retry behavior for failed model invocations.
// Transient provider failures retry with exponential backoff and full
// jitter; invalid responses retry under their own smaller budget because
// re-asking the same model the same question has rapidly diminishing
// returns.
type RetryConfig struct {
	// MaxAttempts is the total number of provider calls allowed for
	// transient failures (first attempt included).
	MaxAttempts int `json:"max_attempts"`

	// MaxInvalidRetries bounds retries after schema or parse failures.
	MaxInvalidRetries int `json:"max_invalid_retries"`

	// InitialInterval is the starting backoff duration.
	InitialInterval time.Duration `json:"initial_interval"`

	// MaxInterval caps the backoff duration.
	MaxInterval time.Duration `json:"max_interval"`

	// Multiplier is the exponential backoff multiplier.
	Multiplier float64 `json:"multiplier"`

	// UseJitter enables full jitter randomization.
	UseJitter bool `json:"use_jitter"`
}

// DefaultRetryConfig returns the retry policy used when none is supplied.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       4,
		MaxInvalidRetries: 2,
		InitialInterval:   500 * time.Millisecond,
		MaxInterval:       8 * time.Second,
		Multiplier:        2.0,
		UseJitter:         true,
	}
}

// retryMiddleware retries classified transient failures and bounded
// invalid-response failures. Auth/config errors surface immediately.
type retryMiddleware struct {
	config RetryConfig
	logger *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewRetryMiddleware creates the retry middleware.
func NewRetryMiddleware(config RetryConfig, logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	m := &retryMiddleware{config: config, logger: logger, sleep: sleepContext}
	return m.wrap
}

func (m *retryMiddleware) wrap(next Handler) Handler {
	return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
		var lastErr error
		invalidRetries := 0

		for attempt := 1; attempt <= m.config.MaxAttempts; attempt++ {
			resp, err := next.Handle(ctx, req)
			if err == nil {
				resp.Attempts = attempt
				return resp, nil
			}
			lastErr = err

			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if !llmerrors.IsRetryableError(err) {
				return nil, err
			}
			if llmerrors.IsInvalidResponseError(err) {
				if invalidRetries >= m.config.MaxInvalidRetries {
					return nil, fmt.Errorf("%w: %w", llmerrors.ErrMaxRetriesExceeded, err)
				}
				invalidRetries++
				// Same parameters, immediate retry: the failure is in
				// the response shape, not in provider availability.
				m.logger.Warn("retrying after invalid response",
					"schema", req.Schema.Name,
					"trace_id", req.TraceID,
					"invalid_retry", invalidRetries,
					"error", err)
				continue
			}

			if attempt == m.config.MaxAttempts {
				break
			}

			backoff := m.backoff(attempt, err)
			m.logger.Warn("retrying after transient failure",
				"trace_id", req.TraceID,
				"attempt", attempt,
				"backoff", backoff,
				"error", err)
			if err := m.sleep(ctx, backoff); err != nil {
				return nil, err
			}
		}

		return nil, fmt.Errorf("%w: %w", llmerrors.ErrMaxRetriesExceeded, lastErr)
	})
}

// backoff computes the retry delay: provider Retry-After guidance wins,
// otherwise exponential backoff with optional full jitter.
func (m *retryMiddleware) backoff(attempt int, err error) time.Duration {
	if retryAfter := llmerrors.GetRetryAfter(err); retryAfter > 0 {
		return retryAfter
	}

	base := m.config.InitialInterval
	if base <= 0 {
		base = time.Millisecond // Minimum to prevent hot looping.
	}
	for i := 1; i < attempt; i++ {
		multiplier := m.config.Multiplier
		if multiplier < 1.0 {
			multiplier = 1.0
		}
		base = time.Duration(float64(base) * multiplier)
		if base > m.config.MaxInterval {
			base = m.config.MaxInterval
			break
		}
	}

	if m.config.UseJitter {
		// Full jitter: random between 0 and the calculated backoff,
		// thread-safe via math/rand/v2.
		jitterMs := rand.Int64N(base.Milliseconds() + 1)
		return time.Duration(jitterMs) * time.Millisecond
	}
	return base
}

// sleepContext waits for the duration or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Package llm provides the model-caller abstraction shared by the
// generation pipeline and the evaluation engine: a provider-agnostic client
// with a middleware chain for logging, retry with classified backoff, and
// schema validation of structured output.
//
// Architecture (outermost first): logging -> retry -> validation ->
// provider transport. Retry wraps validation so that schema failures are
// re-asked within their bounded budget; transient provider failures back
// off exponentially with full jitter. All configuration is explicit at
// construction; the client holds no process-wide mutable state and is safe
// for concurrent use.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	llmerrors "github.com/agmi-labs/creative-engine/internal/llm/errors"
	"github.com/agmi-labs/creative-engine/internal/llm/providers"
)

// Client invokes a text-generation backend with a prompt, sampling
// parameters, and an expected output schema, returning validated JSON.
type Client interface {
	Generate(ctx context.Context, req *Request) (*Response, error)
}

// Config holds construction-time settings for the client.
type Config struct {
	// Model is the model-name string; the provider is resolved from it
	// once, before any stage runs.
	Model string

	// Provider carries credentials and endpoint overrides for the
	// resolved provider.
	Provider providers.Config

	// CallTimeout bounds each individual provider call (per attempt).
	CallTimeout time.Duration

	// Retry is the retry policy; zero value uses DefaultRetryConfig.
	Retry RetryConfig

	// Logger receives invocation lifecycle records; slog.Default when nil.
	Logger *slog.Logger
}

const defaultCallTimeout = 90 * time.Second

// client is the assembled middleware chain over one provider adapter.
type client struct {
	model   string
	handler Handler
}

// NewClient resolves the model to a provider adapter and assembles the
// middleware chain around it.
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	adapter, err := providers.ForModel(ctx, cfg.Model, cfg.Provider)
	if err != nil {
		return nil, err
	}
	return NewClientWithAdapter(cfg, adapter), nil
}

// NewClientWithAdapter assembles a client over an explicit adapter.
// Used directly by tests with stub adapters.
func NewClientWithAdapter(cfg Config, adapter providers.Adapter) Client {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = defaultCallTimeout
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = DefaultRetryConfig()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	transport := newTransportHandler(cfg.Model, adapter, cfg.CallTimeout)
	handler := Chain(transport,
		NewLoggingMiddleware(logger),
		NewRetryMiddleware(cfg.Retry, logger),
		NewValidationMiddleware(),
	)
	return &client{model: cfg.Model, handler: handler}
}

// Generate performs one structured-output invocation.
func (c *client) Generate(ctx context.Context, req *Request) (*Response, error) {
	return c.handler.Handle(ctx, req)
}

// newTransportHandler builds the terminal handler performing the provider
// call with a per-attempt timeout.
func newTransportHandler(model string, adapter providers.Adapter, timeout time.Duration) Handler {
	return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		resp, err := adapter.Complete(callCtx, &providers.Request{
			Model:        model,
			SystemPrompt: req.SystemPrompt,
			UserPrompt:   req.UserPrompt,
			Temperature:  req.Temperature,
			TopP:         req.TopP,
			MaxTokens:    req.MaxTokens,
		})
		if err != nil {
			return nil, llmerrors.ClassifyTransportError(adapter.Name(), err)
		}

		return &Response{
			Content: []byte(resp.Content),
			Usage: Usage{
				PromptTokens:     resp.Usage.PromptTokens,
				CompletionTokens: resp.Usage.CompletionTokens,
				TotalTokens:      resp.Usage.TotalTokens,
			},
		}, nil
	})
}

// GenerateInto performs an invocation and unmarshals the validated JSON
// content into out.
func GenerateInto(ctx context.Context, c Client, req *Request, out any) error {
	resp, err := c.Generate(ctx, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Content, out); err != nil {
		// Validated against the schema already; a decode failure here
		// means schema and Go type disagree.
		return fmt.Errorf("decode %s response: %w", req.Schema.Name, err)
	}
	return nil
}

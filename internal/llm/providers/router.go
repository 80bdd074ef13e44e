// Package providers implements provider adapters for model invocation.
// Each adapter translates the normalized completion request into one
// provider's API (OpenAI and Gemini through their official SDKs, Anthropic
// through its HTTP messages API) and classifies provider failures into the
// shared error taxonomy.
package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	llmerrors "github.com/agmi-labs/creative-engine/internal/llm/errors"
)

// Supported provider identifiers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGoogle    = "google"
)

// Request is a normalized completion request, provider-agnostic.
type Request struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	TopP         float64
	MaxTokens    int
}

// Usage captures normalized token accounting from a provider response.
type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

// Response is a normalized completion response.
type Response struct {
	// Content is the raw text returned by the model.
	Content string

	// Usage holds token counts when the provider reports them.
	Usage Usage

	// ProviderRequestID is the provider-side request identifier, when known.
	ProviderRequestID string
}

// Adapter abstracts provider-specific completion calls. Implementations
// must be safe for concurrent use: one adapter instance serves all
// simultaneous invocations of a run.
type Adapter interface {
	// Name returns the canonical provider identifier.
	Name() string

	// Complete performs one completion call. Failures are returned as
	// *llmerrors.ProviderError with a classified type.
	Complete(ctx context.Context, req *Request) (*Response, error)
}

// Config carries construction-time settings for an adapter. All state is
// explicit; adapters read nothing from the process environment.
type Config struct {
	// APIKey authenticates against the resolved provider.
	APIKey string

	// Endpoint overrides the provider's default base URL (HTTP adapters).
	Endpoint string

	// HTTPClient is used by HTTP-based adapters; http.DefaultClient when nil.
	HTTPClient *http.Client

	// Headers are extra headers applied to every request (HTTP adapters).
	Headers map[string]string
}

// ForModel resolves a model-name string to a provider adapter, once, before
// any stage runs. Callers must not depend on provider-specific behavior
// beyond this resolution.
//
// Prefix rules: "gpt-"/"o1-" -> openai, "claude-" -> anthropic,
// "gemini-" -> google.
func ForModel(ctx context.Context, model string, cfg Config) (Adapter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w for model %q", llmerrors.ErrMissingAPIKey, model)
	}

	switch {
	case strings.HasPrefix(model, "gpt-"), strings.HasPrefix(model, "o1-"):
		return NewOpenAIAdapter(cfg), nil
	case strings.HasPrefix(model, "claude-"):
		return NewAnthropicAdapter(cfg), nil
	case strings.HasPrefix(model, "gemini-"):
		return NewGeminiAdapter(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %s (supported prefixes: gpt-, o1-, claude-, gemini-)",
			llmerrors.ErrUnknownModel, model)
	}
}

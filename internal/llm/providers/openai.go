package providers

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	llmerrors "github.com/agmi-labs/creative-engine/internal/llm/errors"
)

// OpenAIAdapter implements Adapter for OpenAI chat models using the
// official openai-go SDK.
type OpenAIAdapter struct {
	client openai.Client
}

// NewOpenAIAdapter creates an OpenAI adapter from explicit configuration.
func NewOpenAIAdapter(cfg Config) *OpenAIAdapter {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	for k, v := range cfg.Headers {
		opts = append(opts, option.WithHeader(k, v))
	}
	return &OpenAIAdapter{client: openai.NewClient(opts...)}
}

// Name returns the provider name.
func (a *OpenAIAdapter) Name() string { return ProviderOpenAI }

// Complete performs one chat completion call.
func (a *OpenAIAdapter) Complete(ctx context.Context, req *Request) (*Response, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserPrompt),
		},
		Temperature: openai.Float(req.Temperature),
		TopP:        openai.Float(req.TopP),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, a.classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &llmerrors.ProviderError{
			Provider: ProviderOpenAI,
			Message:  "empty choices in completion response",
			Type:     llmerrors.ErrorTypeInvalidResponse,
		}
	}

	return &Response{
		Content:           resp.Choices[0].Message.Content,
		ProviderRequestID: resp.ID,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// classify converts SDK errors into the shared taxonomy.
func (a *OpenAIAdapter) classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &llmerrors.ProviderError{
			Provider:   ProviderOpenAI,
			StatusCode: apiErr.StatusCode,
			Message:    apiErr.Message,
			Code:       apiErr.Code,
			Type:       llmerrors.ClassifyStatusCode(apiErr.StatusCode, apiErr.Code),
		}
	}
	return llmerrors.ClassifyTransportError(ProviderOpenAI, err)
}

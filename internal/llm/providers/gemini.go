package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	llmerrors "github.com/agmi-labs/creative-engine/internal/llm/errors"
)

// GeminiAdapter implements Adapter for Google Gemini models using the
// generative-ai-go SDK. JSON output is requested through the response MIME
// type; schema enforcement happens in the caller's validation middleware.
type GeminiAdapter struct {
	client *genai.Client
}

// NewGeminiAdapter creates a Gemini adapter. The SDK client holds the
// connection; the context governs only client construction.
func NewGeminiAdapter(ctx context.Context, cfg Config) (*GeminiAdapter, error) {
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiAdapter{client: client}, nil
}

// Name returns the provider name.
func (a *GeminiAdapter) Name() string { return ProviderGoogle }

// Close releases the underlying SDK client.
func (a *GeminiAdapter) Close() error { return a.client.Close() }

// Complete performs one generation call.
func (a *GeminiAdapter) Complete(ctx context.Context, req *Request) (*Response, error) {
	model := a.client.GenerativeModel(req.Model)
	model.SetTemperature(float32(req.Temperature))
	model.SetTopP(float32(req.TopP))
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	model.ResponseMIMEType = "application/json"
	if req.SystemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.SystemPrompt)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.UserPrompt))
	if err != nil {
		return nil, a.classify(err)
	}

	content, err := extractGeminiText(resp)
	if err != nil {
		return nil, &llmerrors.ProviderError{
			Provider: ProviderGoogle,
			Message:  err.Error(),
			Type:     llmerrors.ErrorTypeInvalidResponse,
		}
	}

	out := &Response{Content: content}
	if resp.UsageMetadata != nil {
		out.Usage = Usage{
			PromptTokens:     int64(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int64(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int64(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return out, nil
}

func (a *GeminiAdapter) classify(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &llmerrors.ProviderError{
			Provider:   ProviderGoogle,
			StatusCode: apiErr.Code,
			Message:    apiErr.Message,
			Type:       llmerrors.ClassifyStatusCode(apiErr.Code, ""),
		}
	}
	return llmerrors.ClassifyTransportError(ProviderGoogle, err)
}

// extractGeminiText joins the text parts of the first candidate.
func extractGeminiText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("no content in response")
	}

	var content string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			content += string(text)
		}
	}
	if content == "" {
		return "", errors.New("no text parts in response")
	}
	return content, nil
}

package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	llmerrors "github.com/agmi-labs/creative-engine/internal/llm/errors"
)

// AnthropicAdapter implements Adapter for Anthropic Claude models over the
// messages API. Anthropic ships no Go SDK we depend on, so the adapter
// speaks HTTP directly: separate system prompt, versioned headers, and
// structured error parsing.
type AnthropicAdapter struct {
	cfg    Config
	client *http.Client
}

const anthropicDefaultMaxTokens = 4096

// NewAnthropicAdapter creates an Anthropic adapter with default endpoint.
func NewAnthropicAdapter(cfg Config) *AnthropicAdapter {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://api.anthropic.com/v1"
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return &AnthropicAdapter{cfg: cfg, client: client}
}

// Name returns the provider name.
func (a *AnthropicAdapter) Name() string { return ProviderAnthropic }

// Complete performs one messages call.
func (a *AnthropicAdapter) Complete(ctx context.Context, req *Request) (*Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	body := map[string]any{
		"model": req.Model,
		"messages": []map[string]any{
			{"role": "user", "content": req.UserPrompt},
		},
		"max_tokens":  maxTokens,
		"temperature": req.Temperature,
		"top_p":       req.TopP,
	}
	if req.SystemPrompt != "" {
		body["system"] = req.SystemPrompt
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal anthropic request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.cfg.Endpoint+"/messages", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create anthropic request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", a.cfg.APIKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")
	for k, v := range a.cfg.Headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, llmerrors.ClassifyTransportError(ProviderAnthropic, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, llmerrors.ClassifyTransportError(ProviderAnthropic, err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, parseAnthropicError(httpResp, respBody)
	}

	var resp struct {
		ID      string `json:"id"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		Usage struct {
			InputTokens  int64 `json:"input_tokens"`
			OutputTokens int64 `json:"output_tokens"`
		} `json:"usage"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, &llmerrors.ProviderError{
			Provider: ProviderAnthropic,
			Message:  fmt.Sprintf("parse response: %v", err),
			Type:     llmerrors.ErrorTypeInvalidResponse,
		}
	}
	if len(resp.Content) == 0 {
		return nil, &llmerrors.ProviderError{
			Provider: ProviderAnthropic,
			Message:  "empty content in messages response",
			Type:     llmerrors.ErrorTypeInvalidResponse,
		}
	}

	return &Response{
		Content:           resp.Content[0].Text,
		ProviderRequestID: resp.ID,
		Usage: Usage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
	}, nil
}

// parseAnthropicError converts error responses into classified ProviderErrors.
func parseAnthropicError(httpResp *http.Response, body []byte) error {
	retryAfter := 0
	if v := httpResp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			retryAfter = secs
		}
	}

	var errResp struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return &llmerrors.ProviderError{
			Provider:   ProviderAnthropic,
			StatusCode: httpResp.StatusCode,
			Message:    errResp.Error.Message,
			Code:       errResp.Error.Type,
			Type:       llmerrors.ClassifyStatusCode(httpResp.StatusCode, errResp.Error.Type),
			RetryAfter: retryAfter,
		}
	}

	return &llmerrors.ProviderError{
		Provider:   ProviderAnthropic,
		StatusCode: httpResp.StatusCode,
		Message:    string(body),
		Type:       llmerrors.ClassifyStatusCode(httpResp.StatusCode, ""),
		RetryAfter: retryAfter,
	}
}

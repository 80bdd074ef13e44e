package llm

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	llmerrors "github.com/agmi-labs/creative-engine/internal/llm/errors"
)

// Request is one structured-output model invocation. Sampling parameters
// are explicit per request; the client holds no ambient sampling state, so
// parameters cannot leak between concurrent calls.
type Request struct {
	// SystemPrompt and UserPrompt form the invocation.
	SystemPrompt string
	UserPrompt   string

	// Schema is the expected output schema; the response is validated
	// against it before being returned. Required.
	Schema *Schema

	// Temperature and TopP are the sampling parameters for this call.
	Temperature float64
	TopP        float64

	// MaxTokens bounds the completion length; 0 uses the provider default.
	MaxTokens int

	// TraceID correlates log records of one invocation; generated when empty.
	TraceID string
}

// Response is a validated structured-output model response.
type Response struct {
	// Content is the JSON document, schema-validated and fence-stripped.
	Content []byte

	// Usage holds normalized token accounting when reported.
	Usage Usage

	// Attempts is the number of provider calls made, including retries.
	Attempts int
}

// Usage captures token accounting for one invocation.
type Usage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// Schema pairs a name with a compiled JSON schema used to validate model
// output. Compile once at registration time; Validate is safe for
// concurrent use.
type Schema struct {
	Name     string
	compiled *gojsonschema.Schema
	raw      string
}

// NewSchema compiles a JSON schema document.
func NewSchema(name, raw string) (*Schema, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return &Schema{Name: name, compiled: compiled, raw: raw}, nil
}

// MustSchema compiles a JSON schema document and panics on failure.
// Intended for package-level schema constants.
func MustSchema(name, raw string) *Schema {
	s, err := NewSchema(name, raw)
	if err != nil {
		panic(err)
	}
	return s
}

// Raw returns the schema document, for embedding into prompts.
func (s *Schema) Raw() string { return s.raw }

// Validate checks a JSON document against the schema.
func (s *Schema) Validate(doc []byte) error {
	result, err := s.compiled.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", llmerrors.ErrSchemaValidation, s.Name, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("%w: %s: %s", llmerrors.ErrSchemaValidation, s.Name, strings.Join(msgs, "; "))
	}
	return nil
}

// StripFences removes a surrounding markdown code fence, which some models
// emit around JSON despite instructions not to.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

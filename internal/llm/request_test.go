package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmerrors "github.com/agmi-labs/creative-engine/internal/llm/errors"
)

var testSchema = MustSchema("test", `{
	"type": "object",
	"properties": {
		"title": {"type": "string", "minLength": 1},
		"score": {"type": "number", "minimum": 0, "maximum": 1}
	},
	"required": ["title"]
}`)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain json untouched", input: `{"a":1}`, want: `{"a":1}`},
		{name: "json fence", input: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", input: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "surrounding whitespace", input: "  {\"a\":1}\n", want: `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.input))
		})
	}
}

func TestSchemaValidate(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		require.NoError(t, testSchema.Validate([]byte(`{"title":"x","score":0.5}`)))
	})

	t.Run("missing required field", func(t *testing.T) {
		err := testSchema.Validate([]byte(`{"score":0.5}`))
		require.ErrorIs(t, err, llmerrors.ErrSchemaValidation)
	})

	t.Run("out of range", func(t *testing.T) {
		err := testSchema.Validate([]byte(`{"title":"x","score":1.5}`))
		require.ErrorIs(t, err, llmerrors.ErrSchemaValidation)
	})
}

func TestNewSchemaRejectsBadDocument(t *testing.T) {
	_, err := NewSchema("broken", `{"type": ["not a valid`)
	require.Error(t, err)
}

func TestValidationMiddleware(t *testing.T) {
	handler := func(content string) Handler {
		return NewValidationMiddleware()(HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			return &Response{Content: []byte(content)}, nil
		}))
	}
	req := &Request{Schema: testSchema}

	t.Run("strips fences before validating", func(t *testing.T) {
		resp, err := handler("```json\n{\"title\":\"x\"}\n```").Handle(context.Background(), req)

		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"x"}`, string(resp.Content))
	})

	t.Run("non-json is an invalid response", func(t *testing.T) {
		_, err := handler("certainly! here is your JSON").Handle(context.Background(), req)

		require.Error(t, err)
		assert.True(t, llmerrors.IsInvalidResponseError(err))
	})

	t.Run("schema violation is an invalid response", func(t *testing.T) {
		_, err := handler(`{"score":0.3}`).Handle(context.Background(), req)

		require.Error(t, err)
		assert.True(t, llmerrors.IsInvalidResponseError(err))
	})

	t.Run("missing schema is a programming error", func(t *testing.T) {
		_, err := handler(`{}`).Handle(context.Background(), &Request{})
		require.Error(t, err)
	})
}

func TestGenerateInto(t *testing.T) {
	client := clientFunc(func(ctx context.Context, req *Request) (*Response, error) {
		return &Response{Content: []byte(`{"title":"hello","score":0.9}`)}, nil
	})

	var out struct {
		Title string  `json:"title"`
		Score float64 `json:"score"`
	}
	err := GenerateInto(context.Background(), client, &Request{Schema: testSchema}, &out)

	require.NoError(t, err)
	assert.Equal(t, "hello", out.Title)
	assert.Equal(t, 0.9, out.Score)
}

// clientFunc adapts a function to the Client interface for tests.
type clientFunc func(ctx context.Context, req *Request) (*Response, error)

func (f clientFunc) Generate(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

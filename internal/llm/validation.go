package llm

import (
	"context"
	"encoding/json"
	"fmt"

	llmerrors "github.com/agmi-labs/creative-engine/internal/llm/errors"
)

// NewValidationMiddleware validates provider output against the request's
// expected schema. Markdown fences are stripped first; anything that then
// fails JSON parsing or schema validation is surfaced as an
// invalid-response error so the retry middleware can re-ask within its
// bounded budget.
func NewValidationMiddleware() Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			if req.Schema == nil {
				return nil, fmt.Errorf("request %q carries no expected schema", req.TraceID)
			}

			resp, err := next.Handle(ctx, req)
			if err != nil {
				return nil, err
			}

			doc := []byte(StripFences(string(resp.Content)))
			if !json.Valid(doc) {
				return nil, &llmerrors.ProviderError{
					Message: fmt.Sprintf("response for schema %s is not valid JSON", req.Schema.Name),
					Type:    llmerrors.ErrorTypeInvalidResponse,
				}
			}
			if err := req.Schema.Validate(doc); err != nil {
				return nil, &llmerrors.ProviderError{
					Message: err.Error(),
					Code:    "schema_validation",
					Type:    llmerrors.ErrorTypeInvalidResponse,
				}
			}

			resp.Content = doc
			return resp, nil
		})
	}
}

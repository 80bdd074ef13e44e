package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// NewLoggingMiddleware logs the lifecycle of every model invocation with a
// stable trace id, latency, attempt count and token usage. Prompts are
// never logged; only their schema name and sampling parameters are.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			if req.TraceID == "" {
				req.TraceID = uuid.New().String()
			}

			logger.Debug("model invocation started",
				"trace_id", req.TraceID,
				"schema", schemaName(req),
				"temperature", req.Temperature,
				"top_p", req.TopP)

			start := time.Now()
			resp, err := next.Handle(ctx, req)
			elapsed := time.Since(start)

			if err != nil {
				logger.Error("model invocation failed",
					"trace_id", req.TraceID,
					"schema", schemaName(req),
					"duration", elapsed,
					"error", err)
				return nil, err
			}

			logger.Debug("model invocation completed",
				"trace_id", req.TraceID,
				"schema", schemaName(req),
				"duration", elapsed,
				"attempts", resp.Attempts,
				"total_tokens", resp.Usage.TotalTokens)
			return resp, nil
		})
	}
}

func schemaName(req *Request) string {
	if req.Schema == nil {
		return ""
	}
	return req.Schema.Name
}

package llm

import "context"

// Handler processes one model invocation. The terminal handler performs the
// provider call; middleware wrap it with retry, validation and logging.
type Handler interface {
	Handle(ctx context.Context, req *Request) (*Response, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)

// Handle calls the wrapped function.
func (f HandlerFunc) Handle(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// Middleware wraps a Handler with additional behavior.
type Middleware func(next Handler) Handler

// Chain composes middleware around a terminal handler. Middleware are
// applied so the first listed wraps outermost.
func Chain(handler Handler, middleware ...Middleware) Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}
	return handler
}

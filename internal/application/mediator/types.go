package mediator

import (
	"context"
)

// Request is a command or query, e.g. *commands.OptimizeFuelStrategyCommand.
// Handlers are looked up by the request's concrete type.
type Request interface{}

// Response is whatever the handler returns; callers type-assert it
type Response interface{}

// RequestHandler handles one request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc adapts a function to the end of a middleware chain
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Middleware wraps every dispatch. Fuelio chains request logging and
// Prometheus request metrics.
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)

package http

import (
	"context"
	"net/http"

	"github.com/freshmarket/assistant/server"
)

type Middleware func(h http.Handler) http.Handler

type middlewareKey struct{}

// WithMiddleware wraps the handler with the given middlewares, outermost
// first. Middlewares that buffer the response will break per-fragment
// flushing on the chat route.
func WithMiddleware(middlewares ...Middleware) server.Option {
	return func(o *server.Options) {
		o.Context = context.WithValue(o.Context, middlewareKey{}, middlewares)
	}
}

func MiddlewareFrom(ctx context.Context) ([]Middleware, bool) {
	middlewares, ok := ctx.Value(middlewareKey{}).([]Middleware)
	return middlewares, ok
}

// Package middleware provides the HTTP middleware stack: request logging,
// CORS handling, and path normalization.
package middleware

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// System collects middleware and applies them to a handler in
// registration order (the first registered runs outermost).
type System interface {
	Use(m Middleware)
	Wrap(handler http.Handler) http.Handler
}

type stack struct {
	middleware []Middleware
}

// New creates an empty middleware stack.
func New() System {
	return &stack{}
}

func (s *stack) Use(m Middleware) {
	s.middleware = append(s.middleware, m)
}

func (s *stack) Wrap(handler http.Handler) http.Handler {
	wrapped := handler
	for i := len(s.middleware) - 1; i >= 0; i-- {
		wrapped = s.middleware[i](wrapped)
	}
	return wrapped
}

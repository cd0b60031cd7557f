package middleware

import (
	"github.com/deppfellow/trip-booking/internal/server"
)

// Middlewares groups every middleware component so the router receives
// one object instead of many.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers and the
	// global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer attaches a request-scoped logger to each request.
	ContextEnhancer *ContextEnhancer

	// Tracing wraps requests in New Relic transactions (no-op when disabled).
	Tracing *TracingMiddleware

	// RateLimit throttles clients per IP when enabled in config.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components from the application container.
func NewMiddlewares(s *server.Server) *Middlewares {
	nrApp := s.LoggerService.GetApplication()

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}

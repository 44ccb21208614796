// SPDX-License-Identifier: MIT

package middleware

import (
	"github.com/go-chi/chi/v5"
)

// StackConfig configures the HTTP middleware stack.
type StackConfig struct {
	EnableSecurityHeaders bool
	EnableMetrics         bool
	// TracingService names the HTTP spans; empty disables tracing.
	TracingService string
	// RateLimitPerMinute limits each client IP; 0 disables rate limiting.
	RateLimitPerMinute int
}

// NewRouter constructs a chi router with the middleware stack applied.
func NewRouter(cfg StackConfig) *chi.Mux {
	r := chi.NewRouter()
	ApplyStack(r, cfg)
	return r
}

// ApplyStack applies the middleware stack to r, outermost first.
func ApplyStack(r chi.Router, cfg StackConfig) {
	r.Use(Recoverer)
	r.Use(RequestID)
	if cfg.TracingService != "" {
		r.Use(OTelHTTP(cfg.TracingService))
	}
	if cfg.EnableSecurityHeaders {
		r.Use(SecurityHeaders(""))
	}
	if cfg.EnableMetrics {
		r.Use(Metrics())
	}
	if cfg.RateLimitPerMinute > 0 {
		r.Use(PerMinute(cfg.RateLimitPerMinute))
	}
}

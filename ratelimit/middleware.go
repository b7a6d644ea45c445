package ratelimit

import (
	"context"

	"github.com/aschepis/backscratcher/aifast/llm"
	"github.com/rs/zerolog"
)

// NewMiddleware returns an llm.Middleware that consults checker before every
// Complete or Chat call and fails the call with a rate limit error when the
// checker denies it. Denied calls never reach the provider.
func NewMiddleware(checker Checker, logger zerolog.Logger) llm.Middleware {
	logger = logger.With().Str("component", "ratelimit").Logger()
	return llm.MiddlewareFunc{
		BeforeCallFunc: func(ctx context.Context, call *llm.Call) error {
			if checker.CheckRateLimit() {
				return nil
			}
			logger.Warn().
				Str("provider", call.Provider).
				Str("operation", string(call.Operation)).
				Msg("Request denied by advisory rate limit")
			return llm.NewRateLimitError(call.Provider, "requests per minute limit reached")
		},
	}
}

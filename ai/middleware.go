package ai

import (
	"context"
	"sync"
	"time"

	"github.com/aschepis/backscratcher/aifast/llm"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type requestInfo struct {
	id      string
	started time.Time
}

// NewLoggingMiddleware logs every Complete and Chat call with a request id,
// the call's duration and its outcome. Prompt text is never logged.
func NewLoggingMiddleware(logger zerolog.Logger) llm.Middleware {
	logger = logger.With().Str("component", "ai").Logger()

	// In-flight calls, keyed by *llm.Call.
	var calls sync.Map

	return llm.MiddlewareFunc{
		BeforeCallFunc: func(ctx context.Context, call *llm.Call) error {
			info := requestInfo{id: uuid.New().String(), started: time.Now()}
			calls.Store(call, info)
			logger.Debug().
				Str("request_id", info.id).
				Str("provider", call.Provider).
				Str("operation", string(call.Operation)).
				Int("messages", len(call.Messages)).
				Int64("max_tokens", call.Options.MaxTokens).
				Msg("LLM call started")
			return nil
		},
		AfterCallFunc: func(ctx context.Context, call *llm.Call, text string) (string, error) {
			info := takeRequest(&calls, call)
			logger.Info().
				Str("request_id", info.id).
				Str("provider", call.Provider).
				Str("operation", string(call.Operation)).
				Dur("duration", time.Since(info.started)).
				Int("response_len", len(text)).
				Msg("LLM call completed")
			return text, nil
		},
		OnErrorFunc: func(ctx context.Context, call *llm.Call, err error) error {
			info := takeRequest(&calls, call)
			logger.Error().
				Err(err).
				Str("request_id", info.id).
				Str("provider", call.Provider).
				Str("operation", string(call.Operation)).
				Dur("duration", time.Since(info.started)).
				Msg("LLM call failed")
			return err
		},
	}
}

func takeRequest(calls *sync.Map, call *llm.Call) requestInfo {
	v, ok := calls.LoadAndDelete(call)
	if !ok {
		return requestInfo{id: "unknown", started: time.Now()}
	}
	return v.(requestInfo)
}

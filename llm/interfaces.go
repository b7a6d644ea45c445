package llm

import (
	"context"
)

// Provider is the capability every vendor integration exposes.
// Implementations delegate to a vendor SDK or HTTP API and translate
// failures with NewProviderError.
type Provider interface {
	// Name returns the vendor name used in errors and logs (e.g. "OpenAI").
	Name() string

	// Complete generates a completion for a single prompt.
	Complete(ctx context.Context, prompt string, opts Options) (string, error)

	// Chat generates the next assistant turn for a conversation.
	Chat(ctx context.Context, messages []Message, opts Options) (string, error)

	// ValidateAPIKey reports whether the configured key is accepted by the vendor.
	// It never returns an error; any failure is reported as false.
	ValidateAPIKey(ctx context.Context) bool
}

// Operation names the Provider method a Call was made through.
type Operation string

const (
	OperationComplete Operation = "complete"
	OperationChat     Operation = "chat"
)

// Call describes one Complete or Chat invocation as seen by middleware.
type Call struct {
	Provider  string
	Operation Operation
	Prompt    string    // For complete
	Messages  []Message // For chat
	Options   Options
}

// Middleware provides hooks for decorating Provider calls.
// This allows adding cross-cutting concerns like logging or rate limiting.
type Middleware interface {
	// BeforeCall is called before the provider is invoked.
	// Returning an error aborts the call.
	BeforeCall(ctx context.Context, call *Call) error

	// AfterCall is called with the provider's text. It can replace the text or fail the call.
	AfterCall(ctx context.Context, call *Call, text string) (string, error)

	// OnError is called when the provider fails, or when a later BeforeCall
	// aborts a call this middleware already saw.
	// It can return a modified error or nil to use the original error.
	OnError(ctx context.Context, call *Call, err error) error
}

// MiddlewareFunc is a function type that implements Middleware.
type MiddlewareFunc struct {
	BeforeCallFunc func(ctx context.Context, call *Call) error
	AfterCallFunc  func(ctx context.Context, call *Call, text string) (string, error)
	OnErrorFunc    func(ctx context.Context, call *Call, err error) error
}

// BeforeCall calls the BeforeCallFunc if set.
func (f MiddlewareFunc) BeforeCall(ctx context.Context, call *Call) error {
	if f.BeforeCallFunc != nil {
		return f.BeforeCallFunc(ctx, call)
	}
	return nil
}

// AfterCall calls the AfterCallFunc if set.
func (f MiddlewareFunc) AfterCall(ctx context.Context, call *Call, text string) (string, error) {
	if f.AfterCallFunc != nil {
		return f.AfterCallFunc(ctx, call, text)
	}
	return text, nil
}

// OnError calls the OnErrorFunc if set.
func (f MiddlewareFunc) OnError(ctx context.Context, call *Call, err error) error {
	if f.OnErrorFunc != nil {
		return f.OnErrorFunc(ctx, call, err)
	}
	return err
}

// WrapWithMiddleware wraps a Provider with middleware and returns a new Provider.
// BeforeCall hooks run in order, AfterCall hooks in reverse order.
func WrapWithMiddleware(provider Provider, middleware ...Middleware) Provider {
	if len(middleware) == 0 {
		return provider
	}
	return &providerWithMiddleware{
		provider:   provider,
		middleware: middleware,
	}
}

// providerWithMiddleware wraps a Provider with middleware.
type providerWithMiddleware struct {
	provider   Provider
	middleware []Middleware
}

func (p *providerWithMiddleware) Name() string {
	return p.provider.Name()
}

func (p *providerWithMiddleware) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	call := &Call{
		Provider:  p.provider.Name(),
		Operation: OperationComplete,
		Prompt:    prompt,
		Options:   opts,
	}
	return p.run(ctx, call, func() (string, error) {
		return p.provider.Complete(ctx, call.Prompt, call.Options)
	})
}

func (p *providerWithMiddleware) Chat(ctx context.Context, messages []Message, opts Options) (string, error) {
	call := &Call{
		Provider:  p.provider.Name(),
		Operation: OperationChat,
		Messages:  messages,
		Options:   opts,
	}
	return p.run(ctx, call, func() (string, error) {
		return p.provider.Chat(ctx, call.Messages, call.Options)
	})
}

// ValidateAPIKey is not a metered call and bypasses middleware.
func (p *providerWithMiddleware) ValidateAPIKey(ctx context.Context) bool {
	return p.provider.ValidateAPIKey(ctx)
}

func (p *providerWithMiddleware) run(ctx context.Context, call *Call, invoke func() (string, error)) (string, error) {
	for i, mw := range p.middleware {
		if err := mw.BeforeCall(ctx, call); err != nil {
			// Middleware that already saw BeforeCall must see the call end.
			return "", onError(ctx, p.middleware[:i], call, err)
		}
	}

	text, err := invoke()
	if err != nil {
		return "", onError(ctx, p.middleware, call, err)
	}

	for i := len(p.middleware) - 1; i >= 0; i-- {
		text, err = p.middleware[i].AfterCall(ctx, call, text)
		if err != nil {
			return "", err
		}
	}

	return text, nil
}

func onError(ctx context.Context, middleware []Middleware, call *Call, err error) error {
	for _, mw := range middleware {
		handled := mw.OnError(ctx, call, err)
		if handled == nil {
			break // Middleware kept the original error
		}
		err = handled
	}
	return err
}

// Ensure providerWithMiddleware implements Provider
var _ Provider = (*providerWithMiddleware)(nil)

// Package ai is the entry point most callers need: a thin facade over one
// llm.Provider plus a factory that builds providers from a resolved
// llm.ClientKey.
package ai

import (
	"context"

	"github.com/aschepis/backscratcher/aifast/llm"
)

// Interface delegates to a single provider with default call options.
type Interface struct {
	provider llm.Provider
}

// New returns an Interface backed by provider.
func New(provider llm.Provider) *Interface {
	return &Interface{provider: provider}
}

// Provider returns the underlying provider.
func (i *Interface) Provider() llm.Provider {
	return i.provider
}

// Complete returns the provider's completion for prompt.
func (i *Interface) Complete(ctx context.Context, prompt string) (string, error) {
	return i.provider.Complete(ctx, prompt, llm.Options{})
}

// Chat returns the provider's next assistant turn for messages.
func (i *Interface) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	return i.provider.Chat(ctx, messages, llm.Options{})
}

package ai

import (
	"fmt"

	"github.com/aschepis/backscratcher/aifast/llm"
	"github.com/aschepis/backscratcher/aifast/llm/anthropic"
	"github.com/aschepis/backscratcher/aifast/llm/cohere"
	"github.com/aschepis/backscratcher/aifast/llm/ollama"
	"github.com/aschepis/backscratcher/aifast/llm/openai"
	"github.com/rs/zerolog"
)

// NewProvider constructs the provider named by key.Provider.
// Credential checks happen in the vendor constructors, so an empty API key
// fails here before any request is made.
func NewProvider(key *llm.ClientKey, logger zerolog.Logger) (llm.Provider, error) {
	if key == nil {
		return nil, fmt.Errorf("client key is nil")
	}

	var (
		provider llm.Provider
		err      error
	)
	switch key.Provider {
	case llm.ProviderOpenAI:
		provider, err = openai.NewOpenAIClient(key.APIKey, key.BaseURL, key.Model, key.Organization, logger)
	case llm.ProviderAnthropic:
		provider, err = anthropic.NewAnthropicClient(key.APIKey, key.BaseURL, key.Model, logger)
	case llm.ProviderCohere:
		provider, err = cohere.NewCohereClient(key.APIKey, key.BaseURL, key.Model, logger)
	case llm.ProviderOllama:
		provider, err = ollama.NewOllamaClient(key.Host, key.Model, logger)
	default:
		return nil, fmt.Errorf("unknown provider: %s", key.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s provider: %w", key.Provider, err)
	}
	return provider, nil
}

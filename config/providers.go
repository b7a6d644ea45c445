package config

import (
	"os"

	"github.com/aschepis/backscratcher/aifast/llm"
)

// LoadOpenAIConfig returns the OpenAI settings, filling empty fields from
// OPENAI_API_KEY, OPENAI_BASE_URL, OPENAI_MODEL and OPENAI_ORG_ID.
func LoadOpenAIConfig(cfg *Config) OpenAIConfig {
	var c OpenAIConfig
	if cfg != nil {
		c = cfg.OpenAI
	}
	c.APIKey = orEnv(c.APIKey, "OPENAI_API_KEY")
	c.BaseURL = orEnv(c.BaseURL, "OPENAI_BASE_URL")
	c.Model = orEnv(c.Model, "OPENAI_MODEL")
	c.Organization = orEnv(c.Organization, "OPENAI_ORG_ID")
	return c
}

// LoadAnthropicConfig returns the Anthropic settings, filling empty fields
// from ANTHROPIC_API_KEY, ANTHROPIC_BASE_URL and ANTHROPIC_MODEL.
func LoadAnthropicConfig(cfg *Config) AnthropicConfig {
	var c AnthropicConfig
	if cfg != nil {
		c = cfg.Anthropic
	}
	c.APIKey = orEnv(c.APIKey, "ANTHROPIC_API_KEY")
	c.BaseURL = orEnv(c.BaseURL, "ANTHROPIC_BASE_URL")
	c.Model = orEnv(c.Model, "ANTHROPIC_MODEL")
	return c
}

// LoadCohereConfig returns the Cohere settings, filling empty fields from
// COHERE_API_KEY, COHERE_BASE_URL and COHERE_MODEL.
func LoadCohereConfig(cfg *Config) CohereConfig {
	var c CohereConfig
	if cfg != nil {
		c = cfg.Cohere
	}
	c.APIKey = orEnv(c.APIKey, "COHERE_API_KEY")
	c.BaseURL = orEnv(c.BaseURL, "COHERE_BASE_URL")
	c.Model = orEnv(c.Model, "COHERE_MODEL")
	return c
}

// LoadOllamaConfig returns the Ollama settings, filling empty fields from
// OLLAMA_HOST and OLLAMA_MODEL.
func LoadOllamaConfig(cfg *Config) OllamaConfig {
	var c OllamaConfig
	if cfg != nil {
		c = cfg.Ollama
	}
	c.Host = orEnv(c.Host, "OLLAMA_HOST")
	c.Model = orEnv(c.Model, "OLLAMA_MODEL")

	// Set defaults if still empty
	if c.Host == "" {
		c.Host = "http://localhost:11434"
	}
	return c
}

// ProviderConfig flattens the provider sections for llm.NewProviderRegistry.
func (c *Config) ProviderConfig() *llm.ProviderConfig {
	openai := LoadOpenAIConfig(c)
	anthropic := LoadAnthropicConfig(c)
	cohere := LoadCohereConfig(c)
	ollama := LoadOllamaConfig(c)

	return &llm.ProviderConfig{
		AnthropicAPIKey:  anthropic.APIKey,
		AnthropicBaseURL: anthropic.BaseURL,
		AnthropicModel:   anthropic.Model,
		CohereAPIKey:     cohere.APIKey,
		CohereBaseURL:    cohere.BaseURL,
		CohereModel:      cohere.Model,
		OllamaHost:       ollama.Host,
		OllamaModel:      ollama.Model,
		OpenAIAPIKey:     openai.APIKey,
		OpenAIBaseURL:    openai.BaseURL,
		OpenAIModel:      openai.Model,
		OpenAIOrg:        openai.Organization,
	}
}

func orEnv(value, key string) string {
	if value != "" {
		return value
	}
	return os.Getenv(key)
}

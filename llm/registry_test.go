package llm

import (
	"testing"
)

// clearProviderEnv keeps ambient credentials from leaking into registry tests.
func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"ANTHROPIC_API_KEY", "ANTHROPIC_BASE_URL", "ANTHROPIC_MODEL",
		"COHERE_API_KEY", "COHERE_BASE_URL", "COHERE_MODEL",
		"OLLAMA_HOST", "OLLAMA_MODEL",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL", "OPENAI_ORG_ID",
	} {
		t.Setenv(name, "")
	}
}

func TestProviderRegistry_IsProviderEnabled(t *testing.T) {
	registry := NewProviderRegistry(&ProviderConfig{}, []string{"anthropic", "ollama"})

	if !registry.IsProviderEnabled("anthropic") {
		t.Error("anthropic should be enabled")
	}
	if !registry.IsProviderEnabled("ollama") {
		t.Error("ollama should be enabled")
	}
	if registry.IsProviderEnabled("openai") {
		t.Error("openai should not be enabled")
	}
}

func TestProviderRegistry_IsProviderConfigured(t *testing.T) {
	clearProviderEnv(t)

	// Test Anthropic - should require API key
	registry := NewProviderRegistry(&ProviderConfig{}, []string{"anthropic"})
	if registry.IsProviderConfigured("anthropic") {
		t.Error("anthropic should not be configured without API key")
	}

	registry2 := NewProviderRegistry(&ProviderConfig{AnthropicAPIKey: "test-key"}, []string{"anthropic"})
	if !registry2.IsProviderConfigured("anthropic") {
		t.Error("anthropic should be configured with API key")
	}

	// Test Ollama - should always be configured (no API key required)
	registry3 := NewProviderRegistry(&ProviderConfig{}, []string{"ollama"})
	if !registry3.IsProviderConfigured("ollama") {
		t.Error("ollama should always be configured")
	}

	// Test Cohere - should require API key
	registry4 := NewProviderRegistry(&ProviderConfig{}, []string{"cohere"})
	if registry4.IsProviderConfigured("cohere") {
		t.Error("cohere should not be configured without API key")
	}

	registry5 := NewProviderRegistry(&ProviderConfig{OpenAIAPIKey: "test-key"}, []string{"openai"})
	if !registry5.IsProviderConfigured("openai") {
		t.Error("openai should be configured with API key")
	}

	if registry5.IsProviderConfigured("bogus") {
		t.Error("unknown providers are never configured")
	}
}

func TestProviderRegistry_IsProviderConfigured_FromEnvironment(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("COHERE_API_KEY", "env-key")

	registry := NewProviderRegistry(&ProviderConfig{}, []string{"cohere"})
	if !registry.IsProviderConfigured("cohere") {
		t.Error("cohere should pick up COHERE_API_KEY from the environment")
	}
}

func TestProviderRegistry_Resolve_WithPreferences(t *testing.T) {
	clearProviderEnv(t)
	registry := NewProviderRegistry(&ProviderConfig{AnthropicAPIKey: "test-key", AnthropicModel: "claude-3-opus-20240229", OllamaModel: "mistral:7b"}, []string{"anthropic", "ollama"})

	key, err := registry.Resolve([]string{ProviderAnthropic, ProviderOllama}, "")
	if err != nil {
		t.Fatalf("Failed to resolve config: %v", err)
	}

	if key.Provider != ProviderAnthropic {
		t.Errorf("Expected provider 'anthropic', got '%s'", key.Provider)
	}
	if key.APIKey != "test-key" {
		t.Errorf("Expected api key 'test-key', got '%s'", key.APIKey)
	}
	if key.Model != "claude-3-opus-20240229" {
		t.Errorf("Expected model 'claude-3-opus-20240229', got '%s'", key.Model)
	}
}

func TestProviderRegistry_Resolve_ModelOverride(t *testing.T) {
	clearProviderEnv(t)
	registry := NewProviderRegistry(&ProviderConfig{OpenAIAPIKey: "test-key", OpenAIModel: "gpt-3.5-turbo", OpenAIBaseURL: "http://example.test/v1"}, []string{"openai"})

	key, err := registry.Resolve(nil, "gpt-4")
	if err != nil {
		t.Fatalf("Failed to resolve config: %v", err)
	}
	if key.Model != "gpt-4" {
		t.Errorf("Expected model override 'gpt-4', got '%s'", key.Model)
	}
	if key.BaseURL != "http://example.test/v1" {
		t.Errorf("Expected base url from config, got '%s'", key.BaseURL)
	}
}

func TestProviderRegistry_Resolve_WithoutPreferences(t *testing.T) {
	clearProviderEnv(t)
	registry := NewProviderRegistry(&ProviderConfig{CohereAPIKey: "test-key"}, []string{ProviderAnthropic, ProviderCohere})

	// Anthropic is enabled first but has no key, so cohere wins.
	key, err := registry.Resolve(nil, "")
	if err != nil {
		t.Fatalf("Failed to resolve config: %v", err)
	}

	if key.Provider != ProviderCohere {
		t.Errorf("Expected provider 'cohere', got '%s'", key.Provider)
	}
}

func TestProviderRegistry_Resolve_Fallback(t *testing.T) {
	clearProviderEnv(t)
	// Only enable anthropic, not ollama
	registry := NewProviderRegistry(&ProviderConfig{AnthropicAPIKey: "test-key", OllamaModel: "mistral:7b"}, []string{"anthropic"})

	key, err := registry.Resolve([]string{"ollama", "anthropic"}, "")
	if err != nil {
		t.Fatalf("Failed to resolve config: %v", err)
	}

	if key.Provider != "anthropic" {
		t.Errorf("Expected provider 'anthropic' (fallback), got '%s'", key.Provider)
	}
}

func TestProviderRegistry_Resolve_OllamaDefaults(t *testing.T) {
	clearProviderEnv(t)
	registry := NewProviderRegistry(&ProviderConfig{OllamaModel: "llama3.2:3b"}, []string{"ollama"})

	key, err := registry.Resolve([]string{"ollama"}, "")
	if err != nil {
		t.Fatalf("Failed to resolve config: %v", err)
	}
	if key.Host != "http://localhost:11434" {
		t.Errorf("Expected default ollama host, got '%s'", key.Host)
	}

	noModel := NewProviderRegistry(&ProviderConfig{}, []string{"ollama"})
	if _, err := noModel.Resolve(nil, ""); err == nil {
		t.Error("Expected error when ollama has no model")
	}
}

func TestProviderRegistry_Resolve_NoAvailableProvider(t *testing.T) {
	// No providers enabled
	registry := NewProviderRegistry(&ProviderConfig{}, []string{})

	_, err := registry.Resolve(nil, "")
	if err == nil {
		t.Error("Expected error when no providers are enabled")
	}
}

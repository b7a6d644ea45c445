package llm

import (
	"fmt"
	"os"
	"sort"
	"sync"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderCohere    = "cohere"
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
)

// ClientKey uniquely identifies a provider configuration.
type ClientKey struct {
	Provider     string
	Model        string
	APIKey       string // For credential-based providers
	Host         string // For Ollama
	BaseURL      string // For OpenAI, Anthropic and Cohere
	Organization string // For OpenAI
}

// ProviderConfig holds the configuration needed for provider registry.
// This avoids import cycles by not importing the config package.
type ProviderConfig struct {
	AnthropicAPIKey  string
	AnthropicBaseURL string
	AnthropicModel   string
	CohereAPIKey     string
	CohereBaseURL    string
	CohereModel      string
	OllamaHost       string
	OllamaModel      string
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAIModel      string
	OpenAIOrg        string
}

// ProviderRegistry manages provider selection and configuration resolution.
// Provider construction is handled by the caller to avoid import cycles.
type ProviderRegistry struct {
	enabledProviders map[string]bool // Set of enabled providers
	order            []string        // Enabled providers in configuration order
	mu               sync.RWMutex
	config           *ProviderConfig
}

// NewProviderRegistry creates a new ProviderRegistry with the given config and enabled providers.
func NewProviderRegistry(providerConfig *ProviderConfig, enabledProviders []string) *ProviderRegistry {
	if providerConfig == nil {
		providerConfig = &ProviderConfig{}
	}
	enabledMap := make(map[string]bool)
	order := make([]string, 0, len(enabledProviders))
	for _, p := range enabledProviders {
		if !enabledMap[p] {
			order = append(order, p)
		}
		enabledMap[p] = true
	}

	return &ProviderRegistry{
		enabledProviders: enabledMap,
		order:            order,
		config:           providerConfig,
	}
}

// IsProviderEnabled checks if a provider is in the enabled providers list.
func (r *ProviderRegistry) IsProviderEnabled(provider string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabledProviders[provider]
}

// IsProviderConfigured checks if a provider has the required configuration (API keys, hosts, etc.).
func (r *ProviderRegistry) IsProviderConfigured(provider string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isProviderConfiguredUnlocked(provider)
}

// Resolve returns a ClientKey for the first enabled and configured provider
// in preferences. With no preferences the enabled providers are tried in
// configuration order. modelOverride, if set, replaces the provider's default model.
func (r *ProviderRegistry) Resolve(preferences []string, modelOverride string) (*ClientKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	candidates := preferences
	if len(candidates) == 0 {
		if len(r.order) == 0 {
			return nil, fmt.Errorf("no providers enabled")
		}
		candidates = r.order
	}

	for _, provider := range candidates {
		if !r.enabledProviders[provider] {
			continue
		}
		if !r.isProviderConfiguredUnlocked(provider) {
			continue
		}
		key, err := r.resolveProviderConfig(provider, modelOverride)
		if err != nil {
			continue
		}
		return key, nil
	}

	return nil, fmt.Errorf("no available provider from %v (enabled: %v)", candidates, r.getEnabledProvidersList())
}

// isProviderConfiguredUnlocked is the unlocked version of IsProviderConfigured.
// Must be called with r.mu already locked.
func (r *ProviderRegistry) isProviderConfiguredUnlocked(provider string) bool {
	switch provider {
	case ProviderAnthropic:
		return r.anthropicAPIKey() != ""
	case ProviderCohere:
		return r.cohereAPIKey() != ""
	case ProviderOllama:
		// Ollama doesn't require API key, just needs host (which has a default)
		return true
	case ProviderOpenAI:
		return r.openAIAPIKey() != ""
	default:
		return false
	}
}

func (r *ProviderRegistry) anthropicAPIKey() string {
	return firstNonEmpty(r.config.AnthropicAPIKey, os.Getenv("ANTHROPIC_API_KEY"))
}

func (r *ProviderRegistry) cohereAPIKey() string {
	return firstNonEmpty(r.config.CohereAPIKey, os.Getenv("COHERE_API_KEY"))
}

func (r *ProviderRegistry) openAIAPIKey() string {
	return firstNonEmpty(r.config.OpenAIAPIKey, os.Getenv("OPENAI_API_KEY"))
}

// resolveProviderConfig resolves provider-specific configuration and returns a ClientKey.
func (r *ProviderRegistry) resolveProviderConfig(provider, modelOverride string) (*ClientKey, error) {
	key := &ClientKey{
		Provider: provider,
		Model:    modelOverride,
	}

	switch provider {
	case ProviderAnthropic:
		key.APIKey = r.anthropicAPIKey()
		if key.APIKey == "" {
			return nil, fmt.Errorf("anthropic API key not configured")
		}
		key.BaseURL = firstNonEmpty(r.config.AnthropicBaseURL, os.Getenv("ANTHROPIC_BASE_URL"))
		if key.Model == "" {
			key.Model = firstNonEmpty(r.config.AnthropicModel, os.Getenv("ANTHROPIC_MODEL"))
		}

	case ProviderCohere:
		key.APIKey = r.cohereAPIKey()
		if key.APIKey == "" {
			return nil, fmt.Errorf("cohere API key not configured")
		}
		key.BaseURL = firstNonEmpty(r.config.CohereBaseURL, os.Getenv("COHERE_BASE_URL"))
		if key.Model == "" {
			key.Model = firstNonEmpty(r.config.CohereModel, os.Getenv("COHERE_MODEL"))
		}

	case ProviderOllama:
		key.Host = firstNonEmpty(r.config.OllamaHost, os.Getenv("OLLAMA_HOST"), "http://localhost:11434")
		if key.Model == "" {
			key.Model = firstNonEmpty(r.config.OllamaModel, os.Getenv("OLLAMA_MODEL"))
		}
		// Ensure we have a model - if still empty, this is an error
		if key.Model == "" {
			return nil, fmt.Errorf("ollama model not specified and no default configured")
		}

	case ProviderOpenAI:
		key.APIKey = r.openAIAPIKey()
		if key.APIKey == "" {
			return nil, fmt.Errorf("openai API key not configured")
		}
		key.BaseURL = firstNonEmpty(r.config.OpenAIBaseURL, os.Getenv("OPENAI_BASE_URL"))
		key.Organization = firstNonEmpty(r.config.OpenAIOrg, os.Getenv("OPENAI_ORG_ID"))
		if key.Model == "" {
			key.Model = firstNonEmpty(r.config.OpenAIModel, os.Getenv("OPENAI_MODEL"))
		}

	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}

	return key, nil
}

// getEnabledProvidersList returns a sorted list of enabled providers (for error messages).
func (r *ProviderRegistry) getEnabledProvidersList() []string {
	providers := make([]string, 0, len(r.enabledProviders))
	for p := range r.enabledProviders {
		providers = append(providers, p)
	}
	sort.Strings(providers)
	return providers
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

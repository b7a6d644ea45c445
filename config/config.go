package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/aschepis/backscratcher/aifast/llm"
	"github.com/aschepis/backscratcher/aifast/ratelimit"
	"gopkg.in/yaml.v3"
)

// AnthropicConfig represents configuration for Anthropic LLM provider.
type AnthropicConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`  // Anthropic API key
	BaseURL string `yaml:"base_url,omitempty"` // Custom base URL (default: SDK endpoint)
	Model   string `yaml:"model,omitempty"`    // Default model name
}

// CohereConfig represents configuration for Cohere LLM provider.
type CohereConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`  // Cohere API key
	BaseURL string `yaml:"base_url,omitempty"` // Custom base URL (default: https://api.cohere.ai)
	Model   string `yaml:"model,omitempty"`    // Default model name
}

// OllamaConfig represents configuration for Ollama LLM provider.
type OllamaConfig struct {
	Host  string `yaml:"host,omitempty"`  // Ollama host (default: "http://localhost:11434")
	Model string `yaml:"model,omitempty"` // Default model name, required to use Ollama
}

// OpenAIConfig represents configuration for OpenAI LLM provider.
type OpenAIConfig struct {
	APIKey       string `yaml:"api_key,omitempty"`      // OpenAI API key
	BaseURL      string `yaml:"base_url,omitempty"`     // Custom base URL (default: official API)
	Model        string `yaml:"model,omitempty"`        // Default model name
	Organization string `yaml:"organization,omitempty"` // Organization ID
}

// Config is the aifast configuration file.
type Config struct {
	// Providers to consider, in preference order
	LLMProviders []string `yaml:"llm_providers,omitempty"`

	// LLM provider configurations
	OpenAI    OpenAIConfig    `yaml:"openai,omitempty"`
	Anthropic AnthropicConfig `yaml:"anthropic,omitempty"`
	Cohere    CohereConfig    `yaml:"cohere,omitempty"`
	Ollama    OllamaConfig    `yaml:"ollama,omitempty"`

	// Advisory request limits
	RateLimit ratelimit.Limits `yaml:"rate_limit,omitempty"`

	// Response and content processing
	Format      string   `yaml:"format,omitempty"`       // Default format tag (default: text)
	Pipeline    []string `yaml:"pipeline,omitempty"`     // Default content pipeline
	PromptsFile string   `yaml:"prompts_file,omitempty"` // Prompt templates file
}

// Defaults returns the configuration used when no file overrides it.
func Defaults() Config {
	// Provider sections stay empty so environment variables can fill them;
	// each client applies its own model and endpoint defaults.
	return Config{
		LLMProviders: []string{llm.ProviderOpenAI, llm.ProviderAnthropic, llm.ProviderCohere, llm.ProviderOllama},
		RateLimit:    ratelimit.DefaultLimits(),
		Format:       "text",
		Pipeline:     []string{"clean"},
		PromptsFile:  "~/.aifast/prompts.yaml",
	}
}

// GetConfigPath returns the default config file path.
// Can be overridden via AIFAST_CONFIG_PATH environment variable.
func GetConfigPath() string {
	if envPath := os.Getenv("AIFAST_CONFIG_PATH"); envPath != "" {
		return expandPath(envPath)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./.aifast/config.yaml"
	}
	return filepath.Join(homeDir, ".aifast", "config.yaml")
}

// ExpandPath expands a leading ~/ to the user's home directory.
func ExpandPath(path string) string {
	return expandPath(path)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

// Load reads the config file at path and merges it onto Defaults.
// A missing file is not an error; the defaults are returned.
// An empty path means GetConfigPath().
func Load(path string) (*Config, error) {
	defaults := Defaults()

	if path == "" {
		path = GetConfigPath()
	}
	expandedPath := expandPath(path)
	if _, err := os.Stat(expandedPath); err != nil {
		// File doesn't exist, return defaults
		return &defaults, nil
	}

	configYAML, err := os.ReadFile(expandedPath) //#nosec 304 -- intentional file read for config
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", expandedPath, err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(configYAML, &fileConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", expandedPath, err)
	}

	// Merge file config onto defaults
	if err := mergo.Merge(&defaults, fileConfig, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to merge config: %w", err)
	}

	return &defaults, nil
}

// Save saves the configuration to the specified path.
func Save(cfg *Config, path string) error {
	expandedPath := expandPath(path)

	// Ensure directory exists
	dir := filepath.Dir(expandedPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(expandedPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/aschepis/backscratcher/aifast/llm"
	"github.com/ollama/ollama/api"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// ProviderName is the vendor name reported in errors.
const ProviderName = "Ollama"

// OllamaClient implements llm.Provider for a local Ollama server.
// Ollama has no API key; the host takes its place.
type OllamaClient struct {
	client *api.Client
	model  string
	logger zerolog.Logger
}

// NewOllamaClient creates a new OllamaClient.
// If host is empty, it will use the default from environment (OLLAMA_HOST or http://localhost:11434).
func NewOllamaClient(host, model string, logger zerolog.Logger) (*OllamaClient, error) {
	if model == "" {
		return nil, llm.NewInvalidArgumentError(ProviderName, "model is required")
	}

	var client *api.Client
	if host != "" {
		baseURL, err := parseHost(host)
		if err != nil {
			return nil, fmt.Errorf("invalid host: %w", err)
		}
		client = api.NewClient(baseURL, &http.Client{})
	} else {
		var err error
		client, err = api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
	}

	return &OllamaClient{
		client: client,
		model:  model,
		logger: logger.With().Str("component", "ollama").Str("model", model).Logger(),
	}, nil
}

// parseHost parses a host string into a URL.
func parseHost(host string) (*url.URL, error) {
	// If host doesn't have a scheme, add http://
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return url.Parse(host)
}

// Name implements llm.Provider.Name.
func (c *OllamaClient) Name() string {
	return ProviderName
}

// Model returns the model requests are sent to.
func (c *OllamaClient) Model() string {
	return c.model
}

// Complete implements llm.Provider.Complete as a single-turn chat.
func (c *OllamaClient) Complete(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	text, err := c.chat(ctx, []api.Message{{Role: "user", Content: prompt}}, opts)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Chat implements llm.Provider.Chat. System messages stay inline.
func (c *OllamaClient) Chat(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error) {
	return c.chat(ctx, ToOllamaMessages(messages), opts)
}

// ValidateAPIKey implements llm.Provider.ValidateAPIKey by listing local models.
func (c *OllamaClient) ValidateAPIKey(ctx context.Context) bool {
	if _, err := c.client.List(ctx); err != nil {
		c.logger.Debug().Err(err).Msg("Ollama server check failed")
		return false
	}
	return true
}

func (c *OllamaClient) chat(ctx context.Context, msgs []api.Message, opts llm.Options) (string, error) {
	chatReq := &api.ChatRequest{
		Model:    c.model,
		Messages: msgs,
		Stream:   new(bool), // false for non-streaming
		Options: map[string]interface{}{
			"temperature": opts.TemperatureOr(llm.DefaultTemperature),
		},
	}
	if opts.MaxTokens > 0 {
		chatReq.Options["num_predict"] = int(opts.MaxTokens)
	}

	var content strings.Builder
	err := c.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		if resp.Done {
			c.logger.Debug().
				Int("prompt_eval_count", resp.PromptEvalCount).
				Int("eval_count", resp.EvalCount).
				Msg("Chat finished")
		}
		return nil
	})
	if err != nil {
		return "", llm.NewProviderError(ProviderName, err)
	}
	return content.String(), nil
}

// ToOllamaMessages converts llm.Messages to Ollama chat messages.
func ToOllamaMessages(msgs []llm.Message) []api.Message {
	return lo.Map(msgs, func(msg llm.Message, _ int) api.Message {
		return api.Message{Role: string(msg.Role), Content: msg.Content}
	})
}

// Ensure OllamaClient implements llm.Provider
var _ llm.Provider = (*OllamaClient)(nil)

package cohere

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aschepis/backscratcher/aifast/llm"
	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	"github.com/cohere-ai/cohere-go/v2/option"
	"github.com/rs/zerolog"
)

const (
	// ProviderName is the vendor name reported in errors.
	ProviderName = "Cohere"
	// DefaultModel is used when no model is configured.
	DefaultModel = "command"
	// DefaultMaxTokens is used when a call does not set max tokens.
	DefaultMaxTokens = 150
	// DefaultBaseURL is the Cohere API endpoint.
	DefaultBaseURL = "https://api.cohere.ai"

	defaultTimeout = 60 * time.Second
)

// CohereClient implements llm.Provider for Cohere's generate and chat endpoints.
type CohereClient struct {
	client *cohereclient.Client
	model  string
	logger zerolog.Logger
}

// NewCohereClient creates a new CohereClient.
// If baseURL is empty DefaultBaseURL is used; if model is empty DefaultModel is used.
func NewCohereClient(apiKey, baseURL, model string, logger zerolog.Logger) (*CohereClient, error) {
	if apiKey == "" {
		return nil, llm.NewInvalidCredentialError(ProviderName)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	// Retries are left to the caller so a rate-limited call surfaces once.
	client := cohereclient.NewClient(
		option.WithToken(apiKey),
		option.WithBaseURL(strings.TrimRight(baseURL, "/")),
		option.WithHTTPClient(&http.Client{Timeout: defaultTimeout}),
		option.WithMaxAttempts(1),
	)

	return &CohereClient{
		client: client,
		model:  model,
		logger: logger.With().Str("component", "cohere").Str("model", model).Logger(),
	}, nil
}

// Name implements llm.Provider.Name.
func (c *CohereClient) Name() string {
	return ProviderName
}

// Model returns the model requests are sent to.
func (c *CohereClient) Model() string {
	return c.model
}

// Complete implements llm.Provider.Complete via the generate endpoint.
func (c *CohereClient) Complete(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	resp, err := c.client.Generate(ctx, &cohere.GenerateRequest{
		Model:       cohere.String(c.model),
		Prompt:      prompt,
		MaxTokens:   cohere.Int(int(opts.MaxTokensOr(DefaultMaxTokens))),
		Temperature: cohere.Float64(opts.TemperatureOr(llm.DefaultTemperature)),
	})
	if err != nil {
		return "", llm.NewProviderError(ProviderName, err)
	}
	if len(resp.Generations) == 0 || resp.Generations[0] == nil {
		return "", llm.NewProviderError(ProviderName, fmt.Errorf("no generations in response"))
	}
	return strings.TrimSpace(resp.Generations[0].Text), nil
}

// Chat implements llm.Provider.Chat. The last message is the current turn and
// every earlier message is sent as chat history.
func (c *CohereClient) Chat(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error) {
	if len(messages) == 0 {
		return "", llm.NewInvalidArgumentError(ProviderName, "chat requires at least one message")
	}

	req := &cohere.ChatRequest{
		Model:       cohere.String(c.model),
		Message:     messages[len(messages)-1].Content,
		ChatHistory: ToChatHistory(messages[:len(messages)-1]),
		Temperature: cohere.Float64(opts.TemperatureOr(llm.DefaultTemperature)),
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = cohere.Int(int(opts.MaxTokens))
	}

	resp, err := c.client.Chat(ctx, req)
	if err != nil {
		return "", llm.NewProviderError(ProviderName, err)
	}
	return resp.Text, nil
}

// ValidateAPIKey implements llm.Provider.ValidateAPIKey with a one-token generation.
func (c *CohereClient) ValidateAPIKey(ctx context.Context) bool {
	_, err := c.client.Generate(ctx, &cohere.GenerateRequest{
		Prompt:    "test",
		MaxTokens: cohere.Int(1),
	})
	if err != nil {
		c.logger.Debug().Err(err).Msg("API key validation failed")
		return false
	}
	return true
}

// Ensure CohereClient implements llm.Provider
var _ llm.Provider = (*CohereClient)(nil)

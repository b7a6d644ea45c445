package openai

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/aschepis/backscratcher/aifast/llm"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// ProviderName is the vendor name reported in errors.
	ProviderName = "OpenAI"
	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-3.5-turbo"
	// DefaultMaxTokens is used when a call does not set max tokens.
	DefaultMaxTokens = 150
)

// OpenAIClient implements llm.Provider for OpenAI's chat completions API.
// System messages are sent inline as part of the conversation.
type OpenAIClient struct {
	client *openai.Client
	model  string
	logger zerolog.Logger
}

// NewOpenAIClient creates a new OpenAIClient.
// If apiKey is empty, it will return an invalid credential error.
// If baseURL is empty, it will use the default OpenAI API endpoint.
// If model is empty, DefaultModel is used.
func NewOpenAIClient(apiKey, baseURL, model, organization string, logger zerolog.Logger) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, llm.NewInvalidCredentialError(ProviderName)
	}

	config := openai.DefaultConfig(apiKey)

	// Set custom base URL if provided
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	// Set organization if provided
	if organization != "" {
		config.OrgID = organization
	}

	if model == "" {
		model = DefaultModel
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
		logger: logger.With().Str("component", "openai").Str("model", model).Logger(),
	}, nil
}

// Name implements llm.Provider.Name.
func (c *OpenAIClient) Name() string {
	return ProviderName
}

// Model returns the model requests are sent to.
func (c *OpenAIClient) Model() string {
	return c.model
}

// Complete implements llm.Provider.Complete.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	return c.createChatCompletion(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}, opts)
}

// Chat implements llm.Provider.Chat.
func (c *OpenAIClient) Chat(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error) {
	return c.createChatCompletion(ctx, ToOpenAIMessages(messages), opts)
}

// ValidateAPIKey implements llm.Provider.ValidateAPIKey by listing models.
func (c *OpenAIClient) ValidateAPIKey(ctx context.Context) bool {
	if _, err := c.client.ListModels(ctx); err != nil {
		c.logger.Debug().Err(err).Msg("API key validation failed")
		return false
	}
	return true
}

func (c *OpenAIClient) createChatCompletion(ctx context.Context, msgs []openai.ChatCompletionMessage, opts llm.Options) (string, error) {
	// go-openai omits a zero temperature, which the API reads as 1.
	temperature := float32(opts.TemperatureOr(llm.DefaultTemperature))
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		MaxTokens:   int(opts.MaxTokensOr(DefaultMaxTokens)),
		Temperature: temperature,
	}

	chatResp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", llm.NewProviderError(ProviderName, err)
	}

	if len(chatResp.Choices) == 0 {
		return "", llm.NewProviderError(ProviderName, fmt.Errorf("no choices in response"))
	}

	c.logger.Debug().
		Int("prompt_tokens", chatResp.Usage.PromptTokens).
		Int("completion_tokens", chatResp.Usage.CompletionTokens).
		Str("finish_reason", string(chatResp.Choices[0].FinishReason)).
		Msg("Chat completion finished")

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// Ensure OpenAIClient implements llm.Provider
var _ llm.Provider = (*OpenAIClient)(nil)

package anthropic

import (
	"context"
	"fmt"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/aschepis/backscratcher/aifast/llm"
	"github.com/rs/zerolog"
)

const (
	// ProviderName is the vendor name reported in errors.
	ProviderName = "Anthropic"
	// DefaultModel is used when no model is configured.
	DefaultModel = "claude-3-opus-20240229"
	// DefaultMaxTokens is used when a call does not set max tokens.
	DefaultMaxTokens = 1000
)

// AnthropicClient implements llm.Provider for Anthropic's Messages API.
// System messages travel in the request's system field, never in the conversation.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
	logger zerolog.Logger
}

// NewAnthropicClient creates a new AnthropicClient with the given API key.
// If baseURL is empty the SDK default endpoint is used; if model is empty DefaultModel is used.
// SDK retries are disabled so every call is a single request.
func NewAnthropicClient(apiKey, baseURL, model string, logger zerolog.Logger) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, llm.NewInvalidCredentialError(ProviderName)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = DefaultModel
	}

	client := anthropic.NewClient(opts...)
	return &AnthropicClient{
		client: &client,
		model:  model,
		logger: logger.With().Str("component", "anthropic").Str("model", model).Logger(),
	}, nil
}

// Name implements llm.Provider.Name.
func (c *AnthropicClient) Name() string {
	return ProviderName
}

// Model returns the model requests are sent to.
func (c *AnthropicClient) Model() string {
	return c.model
}

// Complete implements llm.Provider.Complete.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   opts.MaxTokensOr(DefaultMaxTokens),
		Temperature: anthropic.Float(opts.TemperatureOr(llm.DefaultTemperature)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	return c.newMessage(ctx, params)
}

// Chat implements llm.Provider.Chat.
func (c *AnthropicClient) Chat(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error) {
	system, conversation := SplitSystem(messages)

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   opts.MaxTokensOr(DefaultMaxTokens),
		Temperature: anthropic.Float(opts.TemperatureOr(llm.DefaultTemperature)),
		Messages:    ToMessageParams(conversation),
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	return c.newMessage(ctx, params)
}

// ValidateAPIKey implements llm.Provider.ValidateAPIKey with a one-token request.
func (c *AnthropicClient) ValidateAPIKey(ctx context.Context) bool {
	_, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("test")),
		},
	})
	if err != nil {
		c.logger.Debug().Err(err).Msg("API key validation failed")
		return false
	}
	return true
}

func (c *AnthropicClient) newMessage(ctx context.Context, params anthropic.MessageNewParams) (string, error) {
	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", llm.NewProviderError(ProviderName, err)
	}

	c.logger.Debug().
		Int64("input_tokens", message.Usage.InputTokens).
		Int64("output_tokens", message.Usage.OutputTokens).
		Str("stop_reason", string(message.StopReason)).
		Msg("Message finished")

	text, ok := FirstText(message.Content)
	if !ok {
		return "", llm.NewProviderError(ProviderName, fmt.Errorf("no text content in response"))
	}
	return text, nil
}

// Ensure AnthropicClient implements llm.Provider
var _ llm.Provider = (*AnthropicClient)(nil)

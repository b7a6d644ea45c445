package llm

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// MessageRole represents the role of a message in a conversation.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// DefaultTemperature is the sampling temperature used when a call does not set one.
const DefaultTemperature = 0.7

// Message represents a single message in a conversation.
// An ordered slice of messages forms a conversation.
type Message struct {
	Role    MessageRole `json:"role" yaml:"role"`
	Content string      `json:"content" yaml:"content"`
}

// NewTextMessage creates a new message with the given role and text.
func NewTextMessage(role MessageRole, text string) Message {
	return Message{
		Role:    role,
		Content: text,
	}
}

// Options is the per-call configuration bag understood by every provider.
// A zero MaxTokens or nil Temperature selects the provider's default.
type Options struct {
	MaxTokens   int64
	Temperature *float64
}

// MaxTokensOr returns the configured max tokens, or def when unset.
func (o Options) MaxTokensOr(def int64) int64 {
	if o.MaxTokens > 0 {
		return o.MaxTokens
	}
	return def
}

// TemperatureOr returns the configured temperature, or def when unset.
func (o Options) TemperatureOr(def float64) float64 {
	if o.Temperature != nil {
		return *o.Temperature
	}
	return def
}

// Float returns a pointer to f, for use with Options.Temperature.
func Float(f float64) *float64 {
	return &f
}

// ParseOptions reads the recognized keys ("max_tokens", "temperature") from a
// loosely typed bag. Unrecognized keys are ignored.
func ParseOptions(bag map[string]any) (Options, error) {
	var opts Options
	if v, ok := bag["max_tokens"]; ok {
		n, err := toInt64(v)
		if err != nil {
			return Options{}, fmt.Errorf("max_tokens: %w", err)
		}
		opts.MaxTokens = n
	}
	if v, ok := bag["temperature"]; ok {
		f, err := toFloat64(v)
		if err != nil {
			return Options{}, fmt.Errorf("temperature: %w", err)
		}
		opts.Temperature = &f
	}
	return opts, nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	case json.Number:
		return n.Int64()
	case string:
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

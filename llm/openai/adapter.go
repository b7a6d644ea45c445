package openai

import (
	"github.com/aschepis/backscratcher/aifast/llm"
	"github.com/samber/lo"
	openai "github.com/sashabaranov/go-openai"
)

// ToOpenAIMessages converts llm.Messages to OpenAI chat message format.
// Every message, including system messages, is kept inline and in order.
func ToOpenAIMessages(msgs []llm.Message) []openai.ChatCompletionMessage {
	return lo.Map(msgs, func(msg llm.Message, _ int) openai.ChatCompletionMessage {
		return ToOpenAIMessage(msg)
	})
}

// ToOpenAIMessage converts a single llm.Message to OpenAI format.
func ToOpenAIMessage(msg llm.Message) openai.ChatCompletionMessage {
	var role string
	switch msg.Role {
	case llm.RoleUser:
		role = openai.ChatMessageRoleUser
	case llm.RoleAssistant:
		role = openai.ChatMessageRoleAssistant
	case llm.RoleSystem:
		role = openai.ChatMessageRoleSystem
	default:
		role = string(msg.Role)
	}

	return openai.ChatCompletionMessage{
		Role:    role,
		Content: msg.Content,
	}
}

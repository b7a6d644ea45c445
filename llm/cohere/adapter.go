package cohere

import (
	"github.com/aschepis/backscratcher/aifast/llm"
	cohere "github.com/cohere-ai/cohere-go/v2"
	"github.com/samber/lo"
)

// ToChatHistory maps every message onto a Cohere chat turn.
// User messages become USER turns; every other role, system included, becomes a CHATBOT turn.
func ToChatHistory(msgs []llm.Message) []*cohere.Message {
	return lo.Map(msgs, func(msg llm.Message, _ int) *cohere.Message {
		turn := &cohere.ChatMessage{Message: msg.Content}
		if msg.Role == llm.RoleUser {
			return &cohere.Message{User: turn}
		}
		return &cohere.Message{Chatbot: turn}
	})
}

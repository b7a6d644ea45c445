package anthropic

import (
	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/aschepis/backscratcher/aifast/llm"
	"github.com/samber/lo"
)

// SplitSystem separates system messages from the conversation.
// When several system messages are present the last one wins.
func SplitSystem(msgs []llm.Message) (string, []llm.Message) {
	var system string
	conversation := lo.Filter(msgs, func(msg llm.Message, _ int) bool {
		if msg.Role == llm.RoleSystem {
			system = msg.Content
			return false
		}
		return true
	})
	return system, conversation
}

// ToMessageParam converts an llm.Message to an Anthropic MessageParam.
func ToMessageParam(msg llm.Message) anthropic.MessageParam {
	block := anthropic.NewTextBlock(msg.Content)
	switch msg.Role {
	case llm.RoleAssistant:
		return anthropic.NewAssistantMessage(block)
	default:
		return anthropic.NewUserMessage(block)
	}
}

// ToMessageParams converts a slice of llm.Messages to Anthropic MessageParams.
func ToMessageParams(msgs []llm.Message) []anthropic.MessageParam {
	return lo.Map(msgs, func(msg llm.Message, _ int) anthropic.MessageParam {
		return ToMessageParam(msg)
	})
}

// FirstText returns the text of the first text block in a response.
func FirstText(blocks []anthropic.ContentBlockUnion) (string, bool) {
	for _, block := range blocks {
		if block.Type == "text" {
			return block.Text, true
		}
	}
	return "", false
}

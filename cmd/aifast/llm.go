package main

import (
	"fmt"

	"github.com/aschepis/backscratcher/aifast/ai"
	"github.com/aschepis/backscratcher/aifast/format"
	"github.com/aschepis/backscratcher/aifast/llm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newCompleteCmd(a *app) *cobra.Command {
	var formatTag string

	cmd := &cobra.Command{
		Use:   "complete [prompt...]",
		Short: "Send a single prompt to the selected provider",
		Long: `Send a single prompt to the selected provider and print the completion.

The prompt is read from the arguments, or from stdin when none are given.

Examples:
  aifast complete "Translate to French: Hello"
  echo "Summarize this" | aifast complete --provider anthropic
  aifast complete --format json "List three colors as a JSON array"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			provider, err := a.newProvider()
			if err != nil {
				return err
			}

			text, err := ai.New(provider).Complete(cmd.Context(), prompt)
			if err != nil {
				return err
			}
			return a.printFormatted(cmd, formatTag, text)
		},
	}
	cmd.Flags().StringVar(&formatTag, "format", "", "Output format (text, json, markdown, yaml, mermaid); defaults to the configured format")
	return cmd
}

func newChatCmd(a *app) *cobra.Command {
	var (
		system    string
		users     []string
		formatTag string
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Send a conversation to the selected provider",
		Long: `Send a conversation to the selected provider and print the assistant reply.

Examples:
  aifast chat --system "You are terse." --user "What is Go?"
  aifast chat --user "Hi" --user "Tell me a joke"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(users) == 0 {
				return fmt.Errorf("at least one --user message is required")
			}

			var messages []llm.Message
			if system != "" {
				messages = append(messages, llm.NewTextMessage(llm.RoleSystem, system))
			}
			messages = append(messages, lo.Map(users, func(text string, _ int) llm.Message {
				return llm.NewTextMessage(llm.RoleUser, text)
			})...)

			provider, err := a.newProvider()
			if err != nil {
				return err
			}

			text, err := ai.New(provider).Chat(cmd.Context(), messages)
			if err != nil {
				return err
			}
			return a.printFormatted(cmd, formatTag, text)
		},
	}
	cmd.Flags().StringVar(&system, "system", "", "System message")
	cmd.Flags().StringArrayVar(&users, "user", nil, "User message (repeatable, sent in order)")
	cmd.Flags().StringVar(&formatTag, "format", "", "Output format (text, json, markdown, yaml, mermaid); defaults to the configured format")
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that the selected provider accepts its API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := a.newProvider()
			if err != nil {
				return err
			}
			if !provider.ValidateAPIKey(cmd.Context()) {
				return fmt.Errorf("%s rejected the configured credentials", provider.Name())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", provider.Name())
			return nil
		},
	}
}

// printFormatted formats text with tag (or the configured default) and
// prints the rendered result.
func (a *app) printFormatted(cmd *cobra.Command, tag, text string) error {
	if tag == "" {
		tag = a.cfg.Format
	}
	formatter, err := format.New(tag, format.WithLogger(a.logger))
	if err != nil {
		return err
	}
	out, err := format.Render(formatter.Format(text))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/aschepis/backscratcher/aifast/config"
	"github.com/aschepis/backscratcher/aifast/prompt"
	"github.com/spf13/cobra"
)

func newPromptCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Manage and render stored prompt templates",
		Long: `Manage and render the prompt templates stored in the prompts file
(prompts_file in the config, or --file).

Templates use {name} placeholders; write {{ and }} for literal braces.`,
	}
	cmd.PersistentFlags().StringVar(&file, "file", "", "Prompts file (defaults to prompts_file from the config)")

	path := func() string {
		if file != "" {
			return config.ExpandPath(file)
		}
		return config.ExpandPath(a.cfg.PromptsFile)
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List template keys",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := loadPrompts(path())
				if err != nil {
					return err
				}
				for _, key := range m.Keys() {
					fmt.Fprintln(cmd.OutOrStdout(), key)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <key> [name=value...]",
			Short: "Render a template with the given values",
			Example: `  aifast prompt show summarize text="Go is a programming language"
  aifast prompt show translate lang=French text=Hello`,
			Args: cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				values, err := parseValues(args[1:])
				if err != nil {
					return err
				}
				m, err := loadPrompts(path())
				if err != nil {
					return err
				}
				out, err := m.Format(args[0], values)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <key> <template>",
			Short: "Store a template and save the prompts file",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				p := path()
				m, err := loadPrompts(p)
				if err != nil {
					return err
				}
				m.Add(args[0], args[1])
				if err := m.Save(p); err != nil {
					return err
				}
				a.logger.Info().Str("key", args[0]).Str("path", p).Msg("Saved prompt template")
				return nil
			},
		},
	)
	return cmd
}

// loadPrompts loads the prompts file, or returns an empty store if it does
// not exist yet.
func loadPrompts(path string) (*prompt.Manager, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return prompt.New(), nil
	}
	return prompt.Load(path)
}

func parseValues(pairs []string) (map[string]any, error) {
	values := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid value %q, expected name=value", pair)
		}
		values[name] = value
	}
	return values, nil
}

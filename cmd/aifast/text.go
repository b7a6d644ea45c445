package main

import (
	"fmt"
	"strings"

	"github.com/aschepis/backscratcher/aifast/content"
	"github.com/aschepis/backscratcher/aifast/format"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newFormatCmd(a *app) *cobra.Command {
	var render bool

	cmd := &cobra.Command{
		Use:   "format <tag> [text...]",
		Short: "Coerce text into text, json, markdown, yaml or mermaid",
		Long: `Coerce raw text into one of the supported formats.

The text is read from the arguments after the tag, or from stdin.
Structured results (json, yaml) are printed as indented JSON.

Examples:
  echo '{"a": 1}' | aifast format json
  aifast format mermaid "fetch" "parse" "store"
  cat answer.md | aifast format markdown --render`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := format.New(args[0], format.WithLogger(a.logger))
			if err != nil {
				return err
			}
			input, err := readInput(cmd, args[1:])
			if err != nil {
				return err
			}

			out, err := format.Render(formatter.Format(input))
			if err != nil {
				return err
			}
			if render && formatter.Tag() == format.Markdown {
				out = renderMarkdown(a, out)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&render, "render", false, "Render markdown for the terminal")
	return cmd
}

// renderMarkdown returns the terminal rendering of md, or md itself when the
// renderer cannot be built.
func renderMarkdown(a *app, md string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Markdown renderer unavailable, printing raw markdown")
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Failed to render markdown")
		return md
	}
	return strings.TrimRight(out, "\n")
}

func newProcessCmd(a *app) *cobra.Command {
	var (
		steps  []string
		tokens bool
	)

	cmd := &cobra.Command{
		Use:   "process [text...]",
		Short: "Run a normalization pipeline over text",
		Long: `Run a normalization pipeline over text read from the arguments or stdin.

Steps: clean, lowercase, remove_special_chars, tokenize, summarize.
Unknown steps are skipped. Without --step the configured pipeline is used.

Examples:
  echo "  Hello,   WORLD! " | aifast process --step clean --step lowercase
  aifast process --step tokenize --tokens "one two  three"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if len(steps) == 0 {
				steps = a.cfg.Pipeline
			}

			pipeline := content.NewProcessor(a.logger).Compile(steps...)
			for _, name := range pipeline.Skipped() {
				a.logger.Warn().Str("step", name).Msg("Skipping unknown pipeline step")
			}

			out := pipeline.Run(input)
			if tokens && out.Tokens != nil {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(out.Tokens, "\n"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Text)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&steps, "step", nil, "Pipeline step (repeatable, applied in order)")
	cmd.Flags().BoolVar(&tokens, "tokens", false, "Print one token per line when the pipeline tokenizes")
	return cmd
}

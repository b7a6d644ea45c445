package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/aschepis/backscratcher/aifast/ai"
	"github.com/aschepis/backscratcher/aifast/config"
	"github.com/aschepis/backscratcher/aifast/llm"
	"github.com/aschepis/backscratcher/aifast/logger"
	"github.com/aschepis/backscratcher/aifast/ratelimit"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

// app carries the global flags and the state built from them.
type app struct {
	configPath string
	provider   string
	model      string
	logFile    string
	pretty     bool
	envFile    string

	cfg    *config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "aifast",
		Short: "aifast - one interface over several LLM providers",
		Long: `aifast sends prompts and conversations to OpenAI, Anthropic, Cohere or a
local Ollama server, and post-processes text with normalization pipelines and
response formatters.

Providers are tried in the order configured in llm_providers; use --provider
to pick one explicitly.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file (default: $AIFAST_CONFIG_PATH or ~/.aifast/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.provider, "provider", "", "Provider to use (openai, anthropic, cohere, ollama)")
	rootCmd.PersistentFlags().StringVar(&a.model, "model", "", "Model override for the selected provider")
	rootCmd.PersistentFlags().StringVar(&a.logFile, "logfile", "", "Path to log file. If not set, logs to stderr")
	rootCmd.PersistentFlags().BoolVar(&a.pretty, "pretty", false, "Use pretty console output (only valid when logfile is not set)")
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Dotenv file to load before reading the environment")

	rootCmd.AddCommand(
		newCompleteCmd(a),
		newChatCmd(a),
		newValidateCmd(a),
		newFormatCmd(a),
		newProcessCmd(a),
		newPromptCmd(a),
		newLimitsCmd(a),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	// Validate that --logfile and --pretty are mutually exclusive
	if a.logFile != "" && a.pretty {
		return fmt.Errorf("--logfile and --pretty are mutually exclusive")
	}

	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", a.envFile, err)
		}
	}

	log, err := logger.InitWithOptions(a.logFile, a.pretty)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = log

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg

	a.logger.Debug().
		Strs("providers", cfg.LLMProviders).
		Str("format", cfg.Format).
		Msg("Loaded configuration")
	return nil
}

// newProvider resolves and builds the provider selected by flags and config,
// wrapped with request logging and the advisory rate limit.
func (a *app) newProvider() (llm.Provider, error) {
	registry := llm.NewProviderRegistry(a.cfg.ProviderConfig(), a.cfg.LLMProviders)

	var preferences []string
	if a.provider != "" {
		if !registry.IsProviderEnabled(a.provider) {
			return nil, fmt.Errorf("provider %q is not enabled (enabled: %s)", a.provider, strings.Join(a.cfg.LLMProviders, ", "))
		}
		preferences = []string{a.provider}
	}

	key, err := registry.Resolve(preferences, a.model)
	if err != nil {
		return nil, err
	}

	provider, err := ai.NewProvider(key, a.logger)
	if err != nil {
		return nil, err
	}

	a.logger.Debug().Str("provider", key.Provider).Str("model", key.Model).Msg("Resolved provider")

	tracker := ratelimit.NewLocked(ratelimit.NewTracker(ratelimit.WithLimits(a.cfg.RateLimit)))
	// Logging runs first so calls denied by the limiter are logged as failed.
	return llm.WrapWithMiddleware(provider,
		ai.NewLoggingMiddleware(a.logger),
		ratelimit.NewMiddleware(tracker, a.logger),
	), nil
}

// readInput returns args joined by spaces, or stdin when args is empty.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

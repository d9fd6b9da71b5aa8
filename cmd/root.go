package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vstratful/openrouter-launcher/internal/config"
	"github.com/vstratful/openrouter-launcher/internal/logging"
	"github.com/vstratful/openrouter-launcher/internal/tui/launcher"
)

var (
	model    string
	provider string
	baseURL  string
	theme    string
	system   string
	debug    bool
	stream   bool

	// cfg is loaded once per invocation by loadSettings.
	cfg      *config.Config
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "orl [query...]",
	Short: "Ask a model and watch the answer stream in",
	Long: `OpenRouter Launcher sends a single query to a chat-completion model and
renders the markdown answer while it streams.

Examples:
  orl                                       # Interactive launcher
  orl how do I reverse a slice in go        # Answer on stdout
  orl --model openai/gpt-4o "explain CRDTs" # Use a specific model
  orl --provider openai --stream=false hi   # Whole answer, rendered at once
  ORL_THEME=light orl                       # Environment overrides`,
	SilenceUsage:       true,
	PersistentPreRunE:  loadSettings,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return closeLog() },
	RunE: func(cmd *cobra.Command, args []string) error {
		p, client, err := newClient()
		if err != nil {
			return err
		}

		dark := config.ResolveDark(cfg.Theme, lipgloss.HasDarkBackground)

		if len(args) == 0 {
			history, err := config.RecentQueries(cfg.HistoryLimit)
			if err != nil {
				logging.Logger.WithError(err).Warn("failed to load query history")
			}
			return launcher.Run(launcher.Config{
				Client:       client,
				Provider:     p.Name,
				ModelName:    cfg.DefaultModel,
				SystemPrompt: system,
				Dark:         dark,
				MaxDepth:     cfg.MaxDepth,
				History:      history,
				SaveHistory:  true,
				HistoryLimit: cfg.HistoryLimit,
				Logger:       logging.Logger,
			})
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer cancel()

		a := asker{
			client:   client,
			provider: p.Name,
			model:    cfg.DefaultModel,
			system:   system,
			dark:     dark,
			maxDepth: cfg.MaxDepth,
			limit:    cfg.HistoryLimit,
			out:      cmd.OutOrStdout(),
		}
		query := strings.Join(args, " ")
		if stream {
			return a.stream(ctx, query)
		}
		return a.whole(ctx, query)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&model, "model", "m", "", "Model to use (default: "+config.DefaultModel+")")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "", "Provider: openrouter, openai or custom (default: "+config.DefaultProvider+")")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Override the provider's API base URL")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "", "Color theme: auto, dark or light")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write a JSON debug log to the config directory")
	rootCmd.Flags().StringVar(&system, "system", "", "System prompt sent before the query")
	rootCmd.Flags().BoolVarP(&stream, "stream", "s", true, "Render the answer while it streams")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

// loadSettings merges, in increasing precedence, the config file, ORL_*
// environment variables and command-line flags.
func loadSettings(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	overridden, err := config.ApplyEnvOverrides(loaded)
	if err != nil {
		return err
	}

	if err := applyFlags(loaded); err != nil {
		return err
	}

	logPath, err := logging.DefaultPath()
	if err != nil {
		return err
	}
	closer, err := logging.Setup(debug, logPath)
	if err != nil {
		return err
	}
	closeLog = closer

	logging.Logger.WithFields(logrus.Fields{
		"command":  cmd.Name(),
		"provider": loaded.Provider,
		"model":    loaded.DefaultModel,
		"theme":    loaded.Theme,
		"env":      overridden,
	}).Debug("settings loaded")

	cfg = loaded
	return nil
}

func applyFlags(c *config.Config) error {
	if model != "" {
		c.DefaultModel = model
	}
	if provider != "" {
		c.Provider = provider
	}
	if baseURL != "" {
		c.BaseURL = baseURL
	}
	if theme != "" {
		t, err := config.ParseTheme(theme)
		if err != nil {
			return err
		}
		c.Theme = t
	}
	return nil
}

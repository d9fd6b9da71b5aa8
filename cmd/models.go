package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/vstratful/openrouter-launcher/internal/api"
	"github.com/vstratful/openrouter-launcher/internal/config"
	"github.com/vstratful/openrouter-launcher/internal/tui"
	"github.com/vstratful/openrouter-launcher/internal/tui/picker"
)

var (
	category            string
	supportedParameters string
	showDetails         bool
	pickModel           bool
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available models from the provider",
	Long: `List the models the active provider offers.

Examples:
  orl models                              # List all models
  orl models --category programming       # Filter by category (OpenRouter)
  orl models --details                    # Show detailed info
  orl models --pick                       # Choose the default model`,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.Flags().StringVar(&category, "category", "", "Filter by category (e.g., programming, roleplay, marketing)")
	modelsCmd.Flags().StringVar(&supportedParameters, "supported-parameters", "", "Filter by supported parameters")
	modelsCmd.Flags().BoolVar(&showDetails, "details", false, "Show detailed model information")
	modelsCmd.Flags().BoolVar(&pickModel, "pick", false, "Pick a model interactively and save it as the default")
}

func runModels(cmd *cobra.Command, args []string) error {
	_, client, err := newClient()
	if err != nil {
		return err
	}

	opts := &api.ListModelsOptions{
		Category:            category,
		SupportedParameters: supportedParameters,
	}

	if pickModel {
		return pickDefaultModel(cmd.Context(), client, opts, cmd.OutOrStdout())
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	models, err := client.ListModels(ctx, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(models) == 0 {
		fmt.Fprintln(out, "No models found.")
		return nil
	}

	fmt.Fprintf(out, "Found %d models:\n\n", len(models))
	for _, m := range models {
		if showDetails {
			printModelDetails(out, m)
		} else {
			printModelSummary(out, m)
		}
	}
	return nil
}

func pickDefaultModel(ctx context.Context, client api.Client, opts *api.ListModelsOptions, out io.Writer) error {
	width := tui.TerminalWidth(out, config.DefaultTerminalWidth)
	chosen, err := picker.Run(picker.NewLoading(width, 24), picker.LoadModels(ctx, client, opts))
	if err != nil {
		return err
	}
	m := picker.GetModel(chosen)
	if m == nil {
		return nil
	}

	stored, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	stored.DefaultModel = m.ID
	if err := config.Save(stored); err != nil {
		return err
	}
	fmt.Fprintf(out, "Default model set to %s\n", m.ID)
	return nil
}

func printModelSummary(out io.Writer, m api.Model) {
	fmt.Fprintf(out, "%s %s\n", runewidth.FillRight(m.ID, 50), m.Name)
}

func printModelDetails(out io.Writer, m api.Model) {
	fmt.Fprintf(out, "ID: %s\n", m.ID)
	fmt.Fprintf(out, "Name: %s\n", m.DisplayName())

	if m.ContextLength != nil {
		fmt.Fprintf(out, "Context Length: %d tokens\n", *m.ContextLength)
	}

	if m.Pricing.Prompt != "" || m.Pricing.Completion != "" {
		fmt.Fprintf(out, "Pricing: prompt=$%s/1M tokens, completion=$%s/1M tokens\n",
			picker.FormatPricePerMillion(m.Pricing.Prompt), picker.FormatPricePerMillion(m.Pricing.Completion))
	}

	if len(m.Architecture.InputModalities) > 0 {
		fmt.Fprintf(out, "Input: %s\n", strings.Join(m.Architecture.InputModalities, ", "))
	}
	if len(m.Architecture.OutputModalities) > 0 {
		fmt.Fprintf(out, "Output: %s\n", strings.Join(m.Architecture.OutputModalities, ", "))
	}

	if m.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", runewidth.Truncate(m.Description, 200, "..."))
	}

	fmt.Fprintln(out, strings.Repeat("-", 60))
}

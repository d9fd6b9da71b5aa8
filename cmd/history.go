package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/vstratful/openrouter-launcher/internal/config"
	"github.com/vstratful/openrouter-launcher/internal/tui"
	"github.com/vstratful/openrouter-launcher/internal/tui/picker"
)

var (
	historyLimit int
	pickHistory  bool
	pruneTo      int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or revisit past answers",
	Long: `List the queries answered so far, newest first.

Examples:
  orl history              # List recent queries
  orl history --limit 5    # Only the five newest
  orl history --pick       # Choose one and show its answer
  orl history --prune 50   # Keep only the 50 newest entries`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to list (0 for all)")
	historyCmd.Flags().BoolVar(&pickHistory, "pick", false, "Pick an entry interactively and show its answer")
	historyCmd.Flags().IntVar(&pruneTo, "prune", -1, "Delete all but the newest n entries")
}

func runHistory(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if cmd.Flags().Changed("prune") {
		if pruneTo < 0 {
			return fmt.Errorf("--prune must be zero or more, got %d", pruneTo)
		}
		removed, err := config.PruneHistory(pruneTo)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %d entries.\n", removed)
		return nil
	}

	summaries, err := config.ListHistory()
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Fprintln(out, "No history yet.")
		return nil
	}

	if pickHistory {
		return pickHistoryEntry(out, summaries)
	}

	if historyLimit > 0 && len(summaries) > historyLimit {
		summaries = summaries[:historyLimit]
	}
	printHistory(out, summaries)
	return nil
}

func printHistory(out io.Writer, summaries []config.HistorySummary) {
	for _, s := range summaries {
		item := picker.HistoryItem{Summary: s}
		fmt.Fprintf(out, "%s  %s  %s\n", s.ID[:min(8, len(s.ID))], item.Title(), item.Description())
	}
}

func pickHistoryEntry(out io.Writer, summaries []config.HistorySummary) error {
	width := tui.TerminalWidth(out, config.DefaultTerminalWidth)
	chosen, err := picker.Run(picker.NewHistoryPicker(summaries, width, 24), nil)
	if err != nil {
		return err
	}
	s := picker.GetHistorySummary(chosen)
	if s == nil {
		return nil
	}

	entry, err := config.LoadHistory(s.ID)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, tui.PromptStyle.Render("› "+entry.Query))
	dark := config.ResolveDark(cfg.Theme, lipgloss.HasDarkBackground)
	return printDocument(out, entry.Response, dark)
}

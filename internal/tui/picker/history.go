package picker

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/vstratful/openrouter-launcher/internal/config"
)

// HistoryItem wraps a HistorySummary for display in a picker.
type HistoryItem struct {
	Summary config.HistorySummary
}

func (i HistoryItem) Title() string {
	return i.Summary.CreatedAt.Format("Jan 2, 15:04")
}

func (i HistoryItem) Description() string {
	if i.Summary.Model == "" {
		return fmt.Sprintf("%q", i.Summary.Preview)
	}
	return fmt.Sprintf("[%s] %q", i.Summary.Model, i.Summary.Preview)
}

func (i HistoryItem) FilterValue() string {
	return i.Summary.Preview
}

// NewHistoryPicker creates a picker listing past answers.
func NewHistoryPicker(summaries []config.HistorySummary, width, height int) Model {
	items := make([]list.Item, len(summaries))
	for i, s := range summaries {
		items[i] = HistoryItem{Summary: s}
	}
	return New(Config{
		Title:  "Past answers",
		Items:  items,
		Width:  width,
		Height: height,
	})
}

// GetHistorySummary extracts the HistorySummary from a selected item.
func GetHistorySummary(item list.Item) *config.HistorySummary {
	if hi, ok := item.(HistoryItem); ok {
		return &hi.Summary
	}
	return nil
}

package picker

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vstratful/openrouter-launcher/internal/api"
)

// FormatPricePerMillion converts a price-per-token string to a formatted price per million tokens.
func FormatPricePerMillion(pricePerToken string) string {
	price, err := strconv.ParseFloat(pricePerToken, 64)
	if err != nil || price == 0 {
		if pricePerToken == "0" {
			return "0"
		}
		return pricePerToken
	}
	pricePerMillion := price * 1_000_000
	if pricePerMillion < 0.01 {
		return fmt.Sprintf("%.4f", pricePerMillion)
	}
	return fmt.Sprintf("%.2f", pricePerMillion)
}

// ModelItem wraps a Model for display in a picker.
type ModelItem struct {
	Model api.Model
}

func (i ModelItem) Title() string {
	return i.Model.ID
}

func (i ModelItem) Description() string {
	var desc string
	if i.Model.Name != "" && i.Model.Name != i.Model.ID {
		desc = i.Model.Name
	}

	if i.Model.ContextLength != nil {
		if desc != "" {
			desc += " | "
		}
		desc += fmt.Sprintf("%dk ctx", *i.Model.ContextLength/1000)
	}

	if i.Model.Pricing.Prompt != "" || i.Model.Pricing.Completion != "" {
		if desc != "" {
			desc += " | "
		}
		desc += fmt.Sprintf("$%s/$%s per 1M tokens", FormatPricePerMillion(i.Model.Pricing.Prompt), FormatPricePerMillion(i.Model.Pricing.Completion))
	}

	return desc
}

func (i ModelItem) FilterValue() string {
	return i.Model.ID + " " + i.Model.Name
}

// ModelItems wraps models as list items.
func ModelItems(models []api.Model) []list.Item {
	items := make([]list.Item, len(models))
	for i, model := range models {
		items[i] = ModelItem{Model: model}
	}
	return items
}

// LoadModels fetches the text models and reports them as ItemsLoadedMsg.
func LoadModels(ctx context.Context, client api.Client, opts *api.ListModelsOptions) tea.Cmd {
	return func() tea.Msg {
		models, err := client.ListModels(ctx, opts)
		if err != nil {
			return LoadErrMsg{Err: err}
		}
		models = FilterTextModels(models)
		if len(models) == 0 {
			return LoadErrMsg{Err: fmt.Errorf("no text models available")}
		}
		return ItemsLoadedMsg{Title: "Select a model", Items: ModelItems(models)}
	}
}

// GetModel extracts the Model from a selected item.
func GetModel(item list.Item) *api.Model {
	if mi, ok := item.(ModelItem); ok {
		return &mi.Model
	}
	return nil
}

// FilterTextModels keeps the models that can answer with text.
func FilterTextModels(models []api.Model) []api.Model {
	filtered := make([]api.Model, 0, len(models))
	for i := range models {
		if models[i].IsTextModel() {
			filtered = append(filtered, models[i])
		}
	}
	return filtered
}

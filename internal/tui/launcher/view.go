package launcher

import (
	"fmt"
	"strings"

	"github.com/vstratful/openrouter-launcher/internal/tui"
)

// View renders the launcher.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	boxStyle := tui.InputBoxStyle
	switch {
	case m.escPending:
		boxStyle = tui.EscWarningBoxStyle
	case m.history.IsBrowsing():
		boxStyle = tui.HistoryBorderStyle
	}
	inputBox := boxStyle.Width(m.width - 2).Render(tui.PromptStyle.Render("› ") + m.input.View())

	return fmt.Sprintf("%s\n%s\n%s", inputBox, m.viewport.View(), m.footer())
}

func (m Model) footer() string {
	modelInfo := tui.DimHelpStyle.Render(m.modelName)
	sep := tui.DimHelpStyle.Render(" • ")

	switch {
	case m.streaming:
		status := " Thinking..."
		if m.answer != "" {
			status = " Streaming..."
		}
		return modelInfo + sep + m.spinner.View() + status + sep +
			tui.KeyHintStyle.Render("⎋") + tui.DimHelpStyle.Render(": cancel")

	case m.escPending:
		action := "clear input"
		if m.escAction == escExit {
			action = "exit"
		}
		return modelInfo + sep + tui.EscWarningStyle.Render("Press ⎋ again to "+action)

	case m.history.IsBrowsing():
		pos := fmt.Sprintf("history (%d/%d)", m.history.Position(), m.history.Len())
		return modelInfo + sep + tui.HistoryModeStyle.Render(pos) +
			sep + tui.DimHelpStyle.Render("↑↓: navigate • Enter: ask • ⎋: cancel")
	}

	hints := []string{
		tui.KeyHintStyle.Render("Enter") + tui.DimHelpStyle.Render(": ask"),
		tui.KeyHintStyle.Render("↑↓") + tui.DimHelpStyle.Render(": history"),
		tui.KeyHintStyle.Render("^Y") + tui.DimHelpStyle.Render(": copy"),
		tui.KeyHintStyle.Render("^T") + tui.DimHelpStyle.Render(": theme"),
	}
	out := modelInfo + sep + strings.Join(hints, sep)
	if m.notice != "" {
		out += sep + tui.NoticeStyle.Render(m.notice)
	}
	return out
}

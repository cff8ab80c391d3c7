package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fincalc/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar with key hints on the left
// and a status message on the right.
func RenderStatusBar(width int, hints, status string, isErr bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	statusColor := t.TextDim
	if isErr {
		statusColor = t.Red
	}
	statusStyle := lipgloss.NewStyle().Foreground(statusColor).Background(t.Surface)

	left := " " + hints
	right := ""
	if status != "" {
		right = status + " "
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return style.Render(left + strings.Repeat(" ", padding) + statusStyle.Render(right))
}

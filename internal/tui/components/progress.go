package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fincalc/internal/tui/theme"
)

// RiskBar renders a labelled probability bar colored by risk band.
// pct is a percentage in [0, 100].
func RiskBar(label string, pct float64, band string, labelW, barWidth int) string {
	t := theme.Active
	color := t.BandColor(band)

	frac := min(max(pct/100, 0), 1)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(frac) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", pct))
}

// ShareBar renders a two-part bar showing how a total splits between a
// kept share (accent) and the rest. Used for the reduced-habit savings.
func ShareBar(share float64, barWidth int) string {
	t := theme.Active

	bar := progress.New(
		progress.WithSolidFill(string(t.Green)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.Orange)

	return bar.ViewAs(min(max(share, 0), 1))
}

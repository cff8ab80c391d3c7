package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fincalc/internal/config"
	"github.com/theirongolddev/fincalc/internal/tui"
	"github.com/theirongolddev/fincalc/internal/tui/theme"
)

func init() {
	register(func() *cobra.Command {
		return &cobra.Command{
			Use:   "tui",
			Short: "Launch the interactive dashboard",
			Args:  cobra.NoArgs,
			RunE:  runTUI,
		}
	})
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := globals.cfg
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	firstRun := !config.Exists(globals.configPath)
	app := tui.NewApp(cfg, globals.configPath, firstRun)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return eris.Wrap(err, "tui")
	}
	return nil
}

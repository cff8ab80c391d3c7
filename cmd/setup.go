package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fincalc/internal/config"
	"github.com/theirongolddev/fincalc/internal/tui"
)

func init() {
	register(func() *cobra.Command {
		return &cobra.Command{
			Use:   "setup",
			Short: "Set your default assumptions and theme",
			Args:  cobra.NoArgs,
			RunE:  runSetup,
		}
	})
}

func runSetup(cmd *cobra.Command, _ []string) error {
	setup := tui.NewSetup(globals.cfg)
	if err := setup.Form().Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(cmd.OutOrStdout(), "  Setup cancelled, nothing saved.")
			return nil
		}
		return eris.Wrap(err, "setup")
	}

	cfg, err := setup.Config()
	if err != nil {
		return err
	}
	if err := config.SaveTo(globals.configPath, cfg); err != nil {
		return eris.Wrap(err, "saving config")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Saved to %s\n", globals.configPath)
	fmt.Fprintln(out, "  Run `fincalc setup` anytime to reconfigure.")
	fmt.Fprintln(out)
	return nil
}

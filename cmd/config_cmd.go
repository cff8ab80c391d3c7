// Package cmd implements the fincalc CLI commands.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fincalc/internal/cli"
	"github.com/theirongolddev/fincalc/internal/config"
)

func init() {
	register(func() *cobra.Command {
		return &cobra.Command{
			Use:   "config",
			Short: "Show current configuration",
			Args:  cobra.NoArgs,
			RunE:  runConfig,
		}
	})
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg := globals.cfg
	return emit(cmd.OutOrStdout(), cfg, func() string {
		return renderConfig(cfg, globals.configPath, config.Exists(globals.configPath))
	})
}

func renderConfig(cfg config.Config, path string, exists bool) string {
	var b strings.Builder
	a := cfg.Assumptions

	fmt.Fprintf(&b, "  Config file: %s\n", path)
	if exists {
		b.WriteString("  Status: loaded\n\n")
	} else {
		b.WriteString("  Status: using defaults (no config file)\n\n")
	}

	pct := func(v float64) string { return fmt.Sprintf("%g%%", v) }
	b.WriteString(cli.RenderKeyValues("[assumptions]", []cli.KV{
		{Label: "Investment return", Value: pct(a.InvestmentReturn)},
		{Label: "Home appreciation", Value: pct(a.AppreciationRate)},
		{Label: "Rent increase", Value: pct(a.RentIncreaseRate)},
		{Label: "Property tax", Value: pct(a.PropertyTaxRate)},
		{Label: "Maintenance", Value: pct(a.MaintenanceRate)},
		{Label: "Closing costs", Value: pct(a.ClosingCostRate)},
		{Label: "Selling costs", Value: pct(a.SellingCostRate)},
		{Label: "Marginal tax rate", Value: pct(a.MarginalTaxRate)},
		{Label: "Filing status", Value: a.FilingStatus},
		{Label: "Timeframe", Value: cli.FormatYears(float64(a.TimeframeYears))},
		{Label: "Loan term", Value: cli.FormatYears(float64(a.LoanTermYears))},
	}))
	b.WriteString("\n")

	b.WriteString(cli.RenderKeyValues("[appearance]", []cli.KV{
		{Label: "Theme", Value: cfg.Appearance.Theme},
	}))
	b.WriteString("\n")

	b.WriteString(cli.RenderKeyValues("[log]", []cli.KV{
		{Label: "Level", Value: cfg.Log.Level},
		{Label: "Format", Value: cfg.Log.Format},
	}))
	b.WriteString("\n  Run `fincalc setup` to reconfigure.\n")

	return b.String()
}

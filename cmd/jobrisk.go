package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/theirongolddev/fincalc/internal/cli"
	"github.com/theirongolddev/fincalc/internal/jobrisk"
)

func init() {
	register(newJobRiskCmd)
}

func newJobRiskCmd() *cobra.Command {
	var (
		inputPath   string
		listFactors bool
		flagProfile jobrisk.Profile
	)

	c := &cobra.Command{
		Use:   "jobrisk",
		Short: "Estimate the chance of losing a federal job to workforce cuts",
		Long: "Scores a federal job profile and converts the score into the probability of\n" +
			"losing the job within one month up to three years.\n\n" +
			"Run with --list to see the accepted keys for each factor.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listFactors {
				return emit(cmd.OutOrStdout(), factorKeys(), renderFactors)
			}

			p, err := resolveInput(cmd, jobrisk.Profile{}, inputPath, bindProfileFlags)
			if err != nil {
				return err
			}
			res, err := jobrisk.Assess(p)
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), res, func() string {
				return renderJobRisk(p, res)
			})
		},
	}

	c.Flags().StringVarP(&inputPath, "input", "i", "", "Profile file (YAML, TOML or JSON)")
	c.Flags().BoolVar(&listFactors, "list", false, "List the accepted keys for each factor")
	bindProfileFlags(c.Flags(), &flagProfile)
	return c
}

func bindProfileFlags(fs *pflag.FlagSet, p *jobrisk.Profile) {
	fs.StringVar(&p.Employment, "employment", p.Employment, "Employment type, e.g. career or probationary")
	fs.StringVar(&p.Tenure, "tenure", p.Tenure, "Years of service: under_1, 1_3, 3_10, 10_20, 20_plus")
	fs.StringVar(&p.Agency, "agency", p.Agency, "Agency, e.g. usaid or va")
	fs.StringSliceVar(&p.Programs, "program", p.Programs, "Program area (repeatable)")
	fs.StringVar(&p.Funding, "funding", p.Funding, "Funding status, e.g. appropriated or proposed_cut")
	fs.BoolVar(&p.Essential, "essential", p.Essential, "Role is mission-essential")
	fs.BoolVar(&p.Senior, "senior", p.Senior, "Senior or supervisory role")
	fs.BoolVar(&p.Survived, "survived", p.Survived, "Already survived a round of cuts")
}

var factorOrder = []jobrisk.Factor{
	jobrisk.FactorEmployment,
	jobrisk.FactorTenure,
	jobrisk.FactorAgency,
	jobrisk.FactorProgram,
	jobrisk.FactorFunding,
}

func factorKeys() map[jobrisk.Factor][]string {
	out := make(map[jobrisk.Factor][]string, len(factorOrder))
	for _, f := range factorOrder {
		out[f] = jobrisk.Keys(f)
	}
	return out
}

func renderFactors() string {
	var b strings.Builder
	b.WriteString("\n")
	for _, f := range factorOrder {
		kvs := make([]cli.KV, 0)
		for _, k := range jobrisk.Keys(f) {
			pts, _ := jobrisk.Points(f, k)
			kvs = append(kvs, cli.KV{Label: k, Value: fmt.Sprintf("%+g", pts)})
		}
		b.WriteString(cli.RenderKeyValues("--"+string(f), kvs))
		b.WriteString("\n")
	}
	return b.String()
}

func renderJobRisk(p jobrisk.Profile, res jobrisk.Result) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(cli.RenderTitle("FEDERAL JOB RISK"))
	b.WriteString("\n\n")

	band := string(res.Band)
	b.WriteString(cli.RenderKeyValues("", []cli.KV{
		{Label: "Risk", Value: strings.ToUpper(band), Color: cli.BandColor(band)},
		{Label: "Score", Value: fmt.Sprintf("%g", res.Score)},
		{Label: "Profile", Value: describeProfile(p)},
	}))
	b.WriteString("\n")

	b.WriteString("  Chance of losing the job within\n")
	for _, pr := range res.Probabilities {
		label := fmt.Sprintf("%-9s %3d%%", pr.Horizon.Label(), pr.Percent)
		b.WriteString(cli.RenderHorizontalBar(label, float64(pr.Percent), 100, 40, cli.BandColor(string(pr.Band))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	return b.String()
}

func describeProfile(p jobrisk.Profile) string {
	var parts []string
	for _, s := range []string{p.Employment, p.Agency, p.Tenure, p.Funding} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	parts = append(parts, p.Programs...)
	if p.Essential {
		parts = append(parts, "essential")
	}
	if p.Senior {
		parts = append(parts, "senior")
	}
	if p.Survived {
		parts = append(parts, "survived cuts")
	}
	if len(parts) == 0 {
		return "nothing specified"
	}
	return strings.Join(parts, ", ")
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fincalc/internal/jobrisk"
	"github.com/theirongolddev/fincalc/internal/tui/components"
	"github.com/theirongolddev/fincalc/internal/tui/theme"
)

type jobRiskTab struct {
	profile jobrisk.Profile
	res     jobrisk.Result
}

func newJobRiskTab() *jobRiskTab {
	tab := &jobRiskTab{}
	tab.res, _ = jobrisk.Assess(tab.profile)
	return tab
}

func factorOptions(f jobrisk.Factor) []huh.Option[string] {
	keys := jobrisk.Keys(f)
	opts := make([]huh.Option[string], 0, len(keys)+1)
	if f != jobrisk.FactorProgram {
		opts = append(opts, huh.NewOption("Not sure", ""))
	}
	for _, k := range keys {
		opts = append(opts, huh.NewOption(factorLabel(f, k), k))
	}
	return opts
}

var tenureLabels = map[string]string{
	"under_1": "Under 1 year",
	"1_3":     "1-3 years",
	"3_10":    "3-10 years",
	"10_20":   "10-20 years",
	"20_plus": "20+ years",
}

var agencyAcronyms = map[string]bool{
	"usaid": true, "cfpb": true, "opm": true, "gsa": true, "epa": true,
	"hhs": true, "hud": true, "irs": true, "noaa": true, "sba": true,
	"ssa": true, "usda": true, "doj": true, "dod": true, "va": true, "dhs": true,
}

// factorLabel returns the display name of a lookup key.
func factorLabel(f jobrisk.Factor, key string) string {
	switch f {
	case jobrisk.FactorTenure:
		if l, ok := tenureLabels[key]; ok {
			return l
		}
	case jobrisk.FactorAgency:
		if agencyAcronyms[key] {
			return strings.ToUpper(key)
		}
	}
	return humanize(key)
}

func (j *jobRiskTab) newForm() *huh.Form {
	p := &j.profile
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Employment type").Options(factorOptions(jobrisk.FactorEmployment)...).Value(&p.Employment),
			huh.NewSelect[string]().Title("Years of service").Options(factorOptions(jobrisk.FactorTenure)...).Value(&p.Tenure),
			huh.NewSelect[string]().Title("Agency").Options(factorOptions(jobrisk.FactorAgency)...).Value(&p.Agency),
		).Title("Position"),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Program areas").
				Description("Select all that apply").
				Options(factorOptions(jobrisk.FactorProgram)...).
				Value(&p.Programs),
			huh.NewSelect[string]().Title("Funding").Options(factorOptions(jobrisk.FactorFunding)...).Value(&p.Funding),
		).Title("Work"),
		huh.NewGroup(
			huh.NewConfirm().Title("Designated essential / excepted from furlough?").Value(&p.Essential),
			huh.NewConfirm().Title("GS-14 or above, or SES?").Value(&p.Senior),
			huh.NewConfirm().Title("Already survived a round of cuts?").Value(&p.Survived),
		).Title("Role"),
	)
}

func (j *jobRiskTab) submit() error {
	res, err := jobrisk.Assess(j.profile)
	if err != nil {
		return err
	}
	j.res = res
	return nil
}

func (j *jobRiskTab) status() string {
	return fmt.Sprintf("Score %.0f, %s risk over the next year", j.res.Score, j.res.Band)
}

func (j *jobRiskTab) view(cw int) string {
	t := theme.Active
	res := j.res

	oneYear := 0
	for _, p := range res.Probabilities {
		if p.Horizon == jobrisk.OneYear {
			oneYear = p.Percent
		}
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Risk score", Value: fmt.Sprintf("%.0f", res.Score), Note: "sum of factor points"},
		{Label: "One-year risk", Value: fmt.Sprintf("%d%%", oneYear), Color: t.BandColor(string(res.Band))},
		{Label: "Band", Value: humanize(string(res.Band)), Color: t.BandColor(string(res.Band))},
	}, cw))
	b.WriteString("\n")

	widths := components.LayoutRow(cw, 2)
	inner := components.CardInnerWidth(widths[0])
	labelW := 9
	barW := max(inner-labelW-8, 10)

	var bars strings.Builder
	for i, p := range res.Probabilities {
		if i > 0 {
			bars.WriteString("\n")
		}
		bars.WriteString(components.RiskBar(p.Horizon.Label(), float64(p.Percent), string(p.Band), labelW, barW))
	}

	b.WriteString(components.CardRow([]string{
		components.ContentCard("Chance of losing the job within", bars.String(), widths[0]),
		components.ContentCard("Profile", j.profileSummary(components.CardInnerWidth(widths[1])), widths[1]),
	}))
	return b.String()
}

func (j *jobRiskTab) profileSummary(width int) string {
	p := j.profile
	orDash := func(f jobrisk.Factor, s string) string {
		if s == "" {
			return "-"
		}
		return factorLabel(f, s)
	}
	yesNo := func(v bool) string {
		if v {
			return "yes"
		}
		return "no"
	}
	programs := "-"
	if len(p.Programs) > 0 {
		names := make([]string, len(p.Programs))
		for i, prog := range p.Programs {
			names[i] = humanize(prog)
		}
		programs = strings.Join(names, ", ")
	}

	body := keyValues([][2]string{
		{"Employment", orDash(jobrisk.FactorEmployment, p.Employment)},
		{"Tenure", orDash(jobrisk.FactorTenure, p.Tenure)},
		{"Agency", orDash(jobrisk.FactorAgency, p.Agency)},
		{"Programs", programs},
		{"Funding", orDash(jobrisk.FactorFunding, p.Funding)},
		{"Essential", yesNo(p.Essential)},
		{"Senior", yesNo(p.Senior)},
		{"Survived cuts", yesNo(p.Survived)},
	}, width)
	return lipgloss.NewStyle().MaxWidth(width).Render(body)
}

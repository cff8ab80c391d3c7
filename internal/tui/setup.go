package tui

import (
	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/fincalc/internal/config"
	"github.com/theirongolddev/fincalc/internal/finance"
	"github.com/theirongolddev/fincalc/internal/tui/theme"
)

// Setup is the assumptions wizard shown on first run and by `fincalc setup`.
type Setup struct {
	cfg    config.Config
	fields []*numberField
	filing string
	theme  string
}

// NewSetup starts a wizard prefilled from cfg.
func NewSetup(cfg config.Config) *Setup {
	return &Setup{cfg: cfg}
}

// Form builds the wizard form. Building it again resets unsaved edits.
func (s *Setup) Form() *huh.Form {
	a := &s.cfg.Assumptions
	s.fields = []*numberField{
		floatField("Investment return", "Expected annual return on invested money, %", &a.InvestmentReturn),
		floatField("Home appreciation", "% per year", &a.AppreciationRate),
		floatField("Rent increase", "% per year", &a.RentIncreaseRate),
		floatField("Property tax", "% of home value per year", &a.PropertyTaxRate),
		floatField("Maintenance", "% of home value per year", &a.MaintenanceRate),
		floatField("Closing costs", "% of home price", &a.ClosingCostRate),
		floatField("Selling costs", "% of sale price", &a.SellingCostRate),
		floatField("Marginal tax rate", "%", &a.MarginalTaxRate),
		intField("Timeframe", "Default projection length, years", &a.TimeframeYears),
		intField("Loan term", "Default mortgage term, years", &a.LoanTermYears),
	}

	s.filing = a.FilingStatus
	filingOpts := make([]huh.Option[string], 0, len(finance.FilingStatuses()))
	for _, fs := range finance.FilingStatuses() {
		filingOpts = append(filingOpts, huh.NewOption(humanize(string(fs)), string(fs)))
	}

	s.theme = s.cfg.Appearance.Theme
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to fincalc").
				Description("These assumptions prefill every calculator.\nYou can change them later with `fincalc setup`."),
		),
		group("Market", s.fields[:3]...),
		group("Homeownership", s.fields[3:7]...),
		huh.NewGroup(
			s.fields[7].field(),
			huh.NewSelect[string]().Title("Filing status").Options(filingOpts...).Value(&s.filing),
		).Title("Taxes"),
		group("Horizon", s.fields[8:]...),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Color theme").Options(themeOpts...).Value(&s.theme),
		).Title("Appearance"),
	)
}

// Config returns the configuration with the wizard's answers applied.
func (s *Setup) Config() (config.Config, error) {
	if err := applyAll(s.fields); err != nil {
		return s.cfg, err
	}
	s.cfg.Assumptions.FilingStatus = s.filing
	s.cfg.Appearance.Theme = s.theme
	if err := s.cfg.Validate(); err != nil {
		return s.cfg, err
	}
	return s.cfg, nil
}

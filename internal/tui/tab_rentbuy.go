package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fincalc/internal/cli"
	"github.com/theirongolddev/fincalc/internal/finance"
	"github.com/theirongolddev/fincalc/internal/rentbuy"
	"github.com/theirongolddev/fincalc/internal/tui/components"
	"github.com/theirongolddev/fincalc/internal/tui/theme"
)

type rentBuyTab struct {
	in     rentbuy.Input
	res    rentbuy.Result
	fields []*numberField
	filing string
}

func newRentBuyTab(in rentbuy.Input) *rentBuyTab {
	tab := &rentBuyTab{in: in}
	tab.res, _ = rentbuy.Calculate(in)
	return tab
}

func (r *rentBuyTab) newForm() *huh.Form {
	in := &r.in
	home := []*numberField{
		floatField("Home price", "Purchase price in dollars", &in.HomePrice),
		floatField("Down payment", "Cash paid at closing", &in.DownPayment),
		floatField("Interest rate", "Annual mortgage rate, %", &in.InterestRate),
		intField("Loan term", "Years", &in.LoanTermYears),
		floatField("Closing costs", "% of home price", &in.ClosingCostRate),
	}
	owning := []*numberField{
		floatField("Property tax", "% of home value per year", &in.PropertyTaxRate),
		floatField("Home insurance", "Dollars per year", &in.HomeInsurance),
		floatField("HOA", "Dollars per month", &in.HOA),
		floatField("PMI", "% of loan per year while equity is under 20%", &in.PMIRate),
		floatField("Maintenance", "% of home value per year", &in.MaintenanceRate),
		floatField("Utilities", "Extra dollars per month over renting", &in.Utilities),
		floatField("Rental income", "Dollars per month from house hacking", &in.RentalIncome),
		floatField("Selling costs", "% of sale price", &in.SellingCostRate),
	}
	renting := []*numberField{
		floatField("Monthly rent", "Dollars", &in.MonthlyRent),
		floatField("Rent increase", "% per year", &in.RentIncreaseRate),
		floatField("Renters insurance", "Dollars per month", &in.RentersInsurance),
		floatField("Broker fee", "One-time dollars", &in.BrokerFee),
		floatField("Security deposit", "Dollars, returned at the end", &in.SecurityDeposit),
	}
	market := []*numberField{
		floatField("Appreciation", "Home value growth, % per year", &in.AppreciationRate),
		floatField("Investment return", "% per year on money not spent", &in.InvestmentReturn),
		floatField("Marginal tax rate", "%", &in.MarginalTaxRate),
		intField("Timeframe", "Years until you would sell", &in.TimeframeYears),
	}

	r.fields = nil
	for _, fs := range [][]*numberField{home, owning, renting, market} {
		r.fields = append(r.fields, fs...)
	}

	r.filing = string(in.FilingStatus)
	if r.filing == "" {
		r.filing = string(finance.Single)
	}
	filingOpts := make([]huh.Option[string], 0, len(finance.FilingStatuses()))
	for _, fs := range finance.FilingStatuses() {
		filingOpts = append(filingOpts, huh.NewOption(humanize(string(fs)), string(fs)))
	}

	return huh.NewForm(
		group("Home & loan", home...),
		group("Owning", owning...),
		group("Renting", renting...),
		group("Market & taxes", market...),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Filing status").
				Options(filingOpts...).
				Value(&r.filing),
		).Title("Filing status"),
	)
}

// submit recalculates from the form. A rejected edit leaves the input and
// the result as they were.
func (r *rentBuyTab) submit() error {
	prev := r.in
	if err := applyAll(r.fields); err != nil {
		r.in = prev
		return err
	}
	if fs, ok := finance.ParseFilingStatus(r.filing); ok {
		r.in.FilingStatus = fs
	}

	res, err := rentbuy.Calculate(r.in)
	if err != nil {
		r.in = prev
		return err
	}
	r.res = res
	return nil
}

func (r *rentBuyTab) status() string {
	if r.res.Verdict == rentbuy.VerdictEven {
		return fmt.Sprintf("Buying and renting cost the same over %d years", r.in.TimeframeYears)
	}
	return fmt.Sprintf("%s is cheaper by %s over %d years",
		verdictLabel(r.res.Verdict), cli.FormatCurrency(abs(r.res.Difference)), r.in.TimeframeYears)
}

func (r *rentBuyTab) view(cw int) string {
	t := theme.Active
	res := r.res
	if len(res.Years) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextMuted).Render("  Press e to enter a scenario.")
	}

	verdictColor := t.TextPrimary
	switch res.Verdict {
	case rentbuy.VerdictBuy:
		verdictColor = t.Buy
	case rentbuy.VerdictRent:
		verdictColor = t.Rent
	}

	breakEven := "never"
	if res.HasBreakEven {
		breakEven = cli.FormatYears(res.BreakEvenYear)
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Monthly payment", Value: cli.FormatCents(res.MonthlyPayment), Note: "principal + interest"},
		{Label: "Monthly cost", Value: cli.FormatCurrency(res.MonthlyBuyCost), Note: "buy, first year", Color: t.Buy},
		{Label: "Monthly cost", Value: cli.FormatCurrency(res.MonthlyRentCost), Note: "rent, first year", Color: t.Rent},
		{Label: "Verdict", Value: verdictLabel(res.Verdict), Note: cli.FormatCurrency(abs(res.Difference)) + " cheaper", Color: verdictColor},
		{Label: "Break-even", Value: breakEven},
	}, cw))
	b.WriteString("\n")

	labels := make([]string, len(res.Years))
	buy := make([]float64, len(res.Years))
	rent := make([]float64, len(res.Years))
	for i, y := range res.Years {
		labels[i] = strconv.Itoa(y.Year)
		buy[i] = y.BuyTotal
		rent[i] = y.RentTotal
	}

	widths := components.LayoutRow(cw, 2)
	chart := components.GroupedBarChart([]components.Series{
		{Name: "Buy", Values: buy, Color: t.Buy},
		{Name: "Rent", Values: rent, Color: t.Rent},
	}, labels, components.CardInnerWidth(widths[0]), 10)

	details := keyValues([][2]string{
		{"Down payment", cli.FormatCurrency(r.in.DownPayment)},
		{"Closing costs", cli.FormatCurrency(res.ClosingCosts)},
		{"Sale value", cli.FormatCurrency(res.SaleValue)},
		{"Selling costs", cli.FormatCurrency(res.SellingCosts)},
		{"Loan payoff", cli.FormatCurrency(res.RemainingBalance)},
		{"Net proceeds", cli.FormatCurrency(res.NetProceeds)},
		{"Tax benefit", cli.FormatCurrency(res.TaxBenefit)},
		{"Buy opportunity", cli.FormatCurrency(res.DownPaymentOpportunity + res.BuyMonthlyOpportunity)},
		{"Rent opportunity", cli.FormatCurrency(res.RentMonthlyOpportunity)},
		{"Total buy cost", cli.FormatCurrency(res.TotalBuyCost)},
		{"Total rent cost", cli.FormatCurrency(res.TotalRentCost)},
	}, components.CardInnerWidth(widths[1]))

	b.WriteString(components.CardRow([]string{
		components.ContentCard("Net cost if sold, by year", chart, widths[0]),
		components.ContentCard(fmt.Sprintf("After %d years", r.in.TimeframeYears), details, widths[1]),
	}))
	return b.String()
}

func verdictLabel(v rentbuy.Verdict) string {
	switch v {
	case rentbuy.VerdictBuy:
		return "Buying"
	case rentbuy.VerdictRent:
		return "Renting"
	default:
		return "Even"
	}
}

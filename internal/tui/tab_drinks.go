package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/fincalc/internal/cli"
	"github.com/theirongolddev/fincalc/internal/drinks"
	"github.com/theirongolddev/fincalc/internal/tui/components"
	"github.com/theirongolddev/fincalc/internal/tui/theme"
)

type drinksTab struct {
	in     drinks.Input
	res    drinks.Result
	fields []*numberField
}

func newDrinksTab(in drinks.Input) *drinksTab {
	tab := &drinksTab{in: in}
	tab.res, _ = drinks.Calculate(in)
	return tab
}

func (d *drinksTab) newForm() *huh.Form {
	d.fields = []*numberField{
		floatField("Drinks per week", "", &d.in.DrinksPerWeek),
		floatField("Price per drink", "Dollars", &d.in.PricePerDrink),
		floatField("Calories per drink", "About 150 for a beer or glass of wine", &d.in.CaloriesPerDrink),
		intField("Years", "How long to project", &d.in.Years),
		floatField("Investment return", "% per year", &d.in.InvestmentReturn),
		floatField("Cut back by", "% of drinks, 0 to keep the habit", &d.in.ReductionPercent),
	}
	return huh.NewForm(group("Drinking habit", d.fields...))
}

func (d *drinksTab) submit() error {
	prev := d.in
	if err := applyAll(d.fields); err != nil {
		d.in = prev
		return err
	}
	res, err := drinks.Calculate(d.in)
	if err != nil {
		d.in = prev
		return err
	}
	d.res = res
	return nil
}

func (d *drinksTab) status() string {
	return fmt.Sprintf("%s a year, %s if invested over %d years",
		cli.FormatCurrency(d.res.AnnualCost), cli.FormatCurrency(d.res.InvestedValue), d.in.Years)
}

func (d *drinksTab) view(cw int) string {
	t := theme.Active
	res := d.res

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Per week", Value: cli.FormatCents(res.WeeklyCost)},
		{Label: "Per year", Value: cli.FormatCurrency(res.AnnualCost), Color: t.Orange},
		{Label: fmt.Sprintf("Spent in %d years", d.in.Years), Value: cli.FormatCurrency(res.TotalSpent)},
		{Label: "If invested", Value: cli.FormatCurrency(res.InvestedValue), Note: cli.FormatDelta(res.OpportunityCost) + " growth", Color: t.Green},
		{Label: "Calories a year", Value: cli.FormatNumber(int64(res.AnnualCalories)), Note: fmt.Sprintf("%.1f lb", res.PoundsPerYear)},
	}, cw))
	b.WriteString("\n")

	labels := make([]string, len(res.Years))
	spent := make([]float64, len(res.Years))
	invested := make([]float64, len(res.Years))
	for i, y := range res.Years {
		labels[i] = strconv.Itoa(y.Year)
		spent[i] = y.Spent
		invested[i] = y.InvestedValue
	}

	widths := components.LayoutRow(cw, 2)
	chart := components.GroupedBarChart([]components.Series{
		{Name: "Spent", Values: spent, Color: t.Orange},
		{Name: "Invested", Values: invested, Color: t.Green},
	}, labels, components.CardInnerWidth(widths[0]), 10)

	var cut string
	if d.in.ReductionPercent > 0 {
		inner := components.CardInnerWidth(widths[1])
		cut = keyValues([][2]string{
			{"Cut back by", cli.FormatPercent(d.in.ReductionPercent)},
			{"Saved a year", cli.FormatCurrency(res.ReducedAnnualSavings)},
			{"Savings invested", cli.FormatCurrency(res.ReducedInvestedValue)},
		}, inner) + "\n\n" + components.ShareBar(d.in.ReductionPercent/100, inner)
	} else {
		cut = "Set \"Cut back by\" to see what a smaller habit saves."
	}

	b.WriteString(components.CardRow([]string{
		components.ContentCard("Spent vs invested", chart, widths[0]),
		components.ContentCard("Cutting back", cut, widths[1]),
	}))
	return b.String()
}

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/theirongolddev/fincalc/internal/cli"
	"github.com/theirongolddev/fincalc/internal/drinks"
)

func init() {
	register(newDrinksCmd)
}

func newDrinksCmd() *cobra.Command {
	var (
		inputPath string
		flagIn    = drinks.DefaultInput()
	)

	c := &cobra.Command{
		Use:   "drinks",
		Short: "What a drinking habit costs in money and calories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := resolveInput(cmd, globals.cfg.DrinksInput(), inputPath, bindDrinksFlags)
			if err != nil {
				return err
			}
			res, err := drinks.Calculate(in)
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), res, func() string {
				return renderDrinks(in, res)
			})
		},
	}

	c.Flags().StringVarP(&inputPath, "input", "i", "", "Habit file (YAML, TOML or JSON)")
	bindDrinksFlags(c.Flags(), &flagIn)
	return c
}

func bindDrinksFlags(fs *pflag.FlagSet, in *drinks.Input) {
	fs.Float64Var(&in.DrinksPerWeek, "per-week", in.DrinksPerWeek, "Drinks per week")
	fs.Float64Var(&in.PricePerDrink, "price", in.PricePerDrink, "Average price per drink")
	fs.Float64Var(&in.CaloriesPerDrink, "calories", in.CaloriesPerDrink, "Calories per drink")
	fs.IntVar(&in.Years, "years", in.Years, "Years to project")
	fs.Float64Var(&in.InvestmentReturn, "return", in.InvestmentReturn, "Investment return, % per year")
	fs.Float64Var(&in.ReductionPercent, "cut", in.ReductionPercent, "Cut back by this many percent")
}

func renderDrinks(in drinks.Input, res drinks.Result) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(cli.RenderTitle(fmt.Sprintf("DRINKS  %g a week for %s", in.DrinksPerWeek, cli.FormatYears(float64(in.Years)))))
	b.WriteString("\n\n")

	b.WriteString(cli.RenderKeyValues("Spending", []cli.KV{
		{Label: "Weekly", Value: cli.FormatCents(res.WeeklyCost)},
		{Label: "Monthly", Value: cli.FormatCents(res.MonthlyCost)},
		{Label: "Yearly", Value: cli.FormatCurrency(res.AnnualCost)},
		{Label: "Total spent", Value: cli.FormatCurrency(res.TotalSpent)},
		{Label: "If invested", Value: cli.FormatCurrency(res.InvestedValue), Color: cli.ColorAccent},
		{Label: "Lost growth", Value: cli.FormatCurrency(res.OpportunityCost)},
	}))
	b.WriteString("\n")

	b.WriteString(cli.RenderKeyValues("Health", []cli.KV{
		{Label: "Calories a year", Value: cli.FormatNumber(int64(res.AnnualCalories))},
		{Label: "Pounds equivalent", Value: fmt.Sprintf("%.1f lb/yr", res.PoundsPerYear)},
	}))
	b.WriteString("\n")

	if in.ReductionPercent > 0 {
		b.WriteString(cli.RenderKeyValues(fmt.Sprintf("Cutting back %g%%", in.ReductionPercent), []cli.KV{
			{Label: "Saved a year", Value: cli.FormatCurrency(res.ReducedAnnualSavings)},
			{Label: "Invested savings", Value: cli.FormatCurrency(res.ReducedInvestedValue), Color: cli.ColorGreen},
		}))
		b.WriteString("\n")
	}

	if len(res.Years) > 0 {
		rows := make([][]string, 0, len(res.Years))
		for _, y := range res.Years {
			rows = append(rows, []string{
				strconv.Itoa(y.Year),
				cli.FormatCurrency(y.Spent),
				cli.FormatCurrency(y.InvestedValue),
			})
		}
		b.WriteString(cli.RenderTable(cli.Table{
			Title:   "By year",
			Headers: []string{"Year", "Spent", "If invested"},
			Rows:    rows,
		}))
		b.WriteString("\n\n")
	}

	return b.String()
}

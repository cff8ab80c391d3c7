package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/theirongolddev/fincalc/internal/cli"
	"github.com/theirongolddev/fincalc/internal/rentbuy"
)

func init() {
	register(newRentBuyCmd)
}

func newRentBuyCmd() *cobra.Command {
	var (
		inputPath string
		flagIn    = rentbuy.DefaultInput()
	)

	c := &cobra.Command{
		Use:   "rentbuy",
		Short: "Compare buying a home against renting",
		Long: "Projects both options over the timeframe, including the investment growth each\n" +
			"side forgoes, and reports which is cheaper and when buying breaks even.\n\n" +
			"Unset flags fall back to the --input scenario, then to the config assumptions.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := resolveInput(cmd, globals.cfg.RentBuyInput(), inputPath, bindRentBuyFlags)
			if err != nil {
				return err
			}
			res, err := rentbuy.Calculate(in)
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), res, func() string {
				return renderRentBuy(in, res)
			})
		},
	}

	c.Flags().StringVarP(&inputPath, "input", "i", "", "Scenario file (YAML, TOML or JSON)")
	bindRentBuyFlags(c.Flags(), &flagIn)
	return c
}

func bindRentBuyFlags(fs *pflag.FlagSet, in *rentbuy.Input) {
	fs.Float64Var(&in.HomePrice, "home-price", in.HomePrice, "Purchase price")
	fs.Float64Var(&in.DownPayment, "down-payment", in.DownPayment, "Down payment")
	fs.Float64Var(&in.InterestRate, "rate", in.InterestRate, "Mortgage interest rate, % per year")
	fs.IntVar(&in.LoanTermYears, "loan-years", in.LoanTermYears, "Loan term in years")
	fs.Float64Var(&in.ClosingCostRate, "closing-cost", in.ClosingCostRate, "Closing costs, % of price")

	fs.Float64Var(&in.AppreciationRate, "appreciation", in.AppreciationRate, "Home appreciation, % per year")
	fs.Float64Var(&in.PropertyTaxRate, "property-tax", in.PropertyTaxRate, "Property tax, % of value per year")
	fs.Float64Var(&in.HomeInsurance, "home-insurance", in.HomeInsurance, "Home insurance per year")
	fs.Float64Var(&in.HOA, "hoa", in.HOA, "HOA dues per month")
	fs.Float64Var(&in.PMIRate, "pmi", in.PMIRate, "PMI, % of loan per year while equity is under 20%")
	fs.Float64Var(&in.MaintenanceRate, "maintenance", in.MaintenanceRate, "Maintenance, % of value per year")
	fs.Float64Var(&in.Utilities, "utilities", in.Utilities, "Extra utilities per month when owning")
	fs.Float64Var(&in.RentalIncome, "rental-income", in.RentalIncome, "Rental income per month (house hacking)")
	fs.Float64Var(&in.SellingCostRate, "selling-cost", in.SellingCostRate, "Selling costs, % of sale price")

	fs.Float64Var(&in.MonthlyRent, "rent", in.MonthlyRent, "Monthly rent")
	fs.Float64Var(&in.RentIncreaseRate, "rent-increase", in.RentIncreaseRate, "Rent increase, % per year")
	fs.Float64Var(&in.RentersInsurance, "renters-insurance", in.RentersInsurance, "Renters insurance per month")
	fs.Float64Var(&in.BrokerFee, "broker-fee", in.BrokerFee, "Broker fee paid when moving in")
	fs.Float64Var(&in.SecurityDeposit, "deposit", in.SecurityDeposit, "Security deposit")

	fs.Float64Var(&in.InvestmentReturn, "return", in.InvestmentReturn, "Investment return, % per year")
	fs.IntVar(&in.TimeframeYears, "years", in.TimeframeYears, "Years to compare")
	fs.Var(filingFlag{&in.FilingStatus}, "filing", "Filing status (single, married_joint, married_separate, head_of_household)")
	fs.Float64Var(&in.MarginalTaxRate, "tax-rate", in.MarginalTaxRate, "Marginal income tax rate, %")
}

func renderRentBuy(in rentbuy.Input, res rentbuy.Result) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(cli.RenderTitle(fmt.Sprintf("RENT VS BUY  %s", cli.FormatYears(float64(in.TimeframeYears)))))
	b.WriteString("\n\n")

	verdict := cli.KV{Label: "Verdict", Value: verdictText(res), Color: cli.ColorAccent}
	if res.Verdict == rentbuy.VerdictRent {
		verdict.Color = cli.ColorOrange
	}

	breakEven := "never within the timeframe"
	if res.HasBreakEven {
		breakEven = "after " + cli.FormatYears(res.BreakEvenYear)
	}

	b.WriteString(cli.RenderKeyValues("Summary", []cli.KV{
		verdict,
		{Label: "Break-even", Value: breakEven},
		{Label: "Total cost to buy", Value: cli.FormatCurrency(res.TotalBuyCost)},
		{Label: "Total cost to rent", Value: cli.FormatCurrency(res.TotalRentCost)},
	}))
	b.WriteString("\n")

	b.WriteString(cli.RenderKeyValues("Buying", []cli.KV{
		{Label: "Loan", Value: cli.FormatCurrency(res.LoanAmount)},
		{Label: "Mortgage payment", Value: cli.FormatCents(res.MonthlyPayment) + "/mo"},
		{Label: "All-in first year", Value: cli.FormatCurrency(res.MonthlyBuyCost) + "/mo"},
		{Label: "Closing costs", Value: cli.FormatCurrency(res.ClosingCosts)},
		{Label: "Tax benefit", Value: cli.FormatCurrency(res.TaxBenefit)},
		{Label: "Sale value", Value: cli.FormatCurrency(res.SaleValue)},
		{Label: "Selling costs", Value: cli.FormatCurrency(res.SellingCosts)},
		{Label: "Loan payoff", Value: cli.FormatCurrency(res.RemainingBalance)},
		{Label: "Net proceeds", Value: cli.FormatCurrency(res.NetProceeds)},
		{Label: "Down payment growth", Value: cli.FormatCurrency(res.DownPaymentOpportunity)},
	}))
	b.WriteString("\n")

	b.WriteString(cli.RenderKeyValues("Renting", []cli.KV{
		{Label: "All-in first year", Value: cli.FormatCurrency(res.MonthlyRentCost) + "/mo"},
		{Label: "Rent paid", Value: cli.FormatCurrency(res.RentSpent)},
		{Label: "Savings growth", Value: cli.FormatCurrency(res.RentMonthlyOpportunity)},
	}))
	b.WriteString("\n")

	rows := make([][]string, 0, len(res.Years))
	diffs := make([]float64, 0, len(res.Years))
	for _, y := range res.Years {
		rows = append(rows, []string{
			strconv.Itoa(y.Year),
			cli.FormatCurrency(y.HomeValue),
			cli.FormatCurrency(y.LoanBalance),
			cli.FormatCurrency(y.BuyTotal),
			cli.FormatCurrency(y.RentTotal),
		})
		diffs = append(diffs, y.RentTotal-y.BuyTotal)
	}
	b.WriteString(cli.RenderTable(cli.Table{
		Title:   "By year",
		Headers: []string{"Year", "Home value", "Loan", "Buy total", "Rent total"},
		Rows:    rows,
	}))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Buying advantage  %s\n\n", cli.RenderSparkline(diffs))

	return b.String()
}

func verdictText(res rentbuy.Result) string {
	switch res.Verdict {
	case rentbuy.VerdictBuy:
		return "Buying saves " + cli.FormatCurrency(res.Difference)
	case rentbuy.VerdictRent:
		return "Renting saves " + cli.FormatCurrency(-res.Difference)
	default:
		return "Buying and renting cost the same"
	}
}

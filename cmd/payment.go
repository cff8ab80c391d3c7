package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/theirongolddev/fincalc/internal/cli"
	"github.com/theirongolddev/fincalc/internal/finance"
)

func init() {
	register(newPaymentCmd)
}

// defaultLoan is the loan implied by the configured rent-vs-buy scenario.
func defaultLoan() finance.Loan {
	in := globals.cfg.RentBuyInput()
	return finance.Loan{
		Principal:   in.LoanAmount(),
		RatePercent: in.InterestRate,
		Years:       in.LoanTermYears,
	}
}

func newPaymentCmd() *cobra.Command {
	var inputPath string
	flagLoan := finance.Loan{Principal: 320_000, RatePercent: 6.5, Years: 30}

	c := &cobra.Command{
		Use:   "payment",
		Short: "Monthly mortgage payment and amortization schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loan, err := resolveInput(cmd, defaultLoan(), inputPath, bindLoanFlags)
			if err != nil {
				return err
			}
			if err := loan.Validate(); err != nil {
				return err
			}
			summary := finance.Summarize(loan)
			return emit(cmd.OutOrStdout(), summary, func() string {
				return renderPayment(loan, summary)
			})
		},
	}

	c.Flags().StringVarP(&inputPath, "input", "i", "", "Loan file (YAML, TOML or JSON)")
	bindLoanFlags(c.Flags(), &flagLoan)
	return c
}

func bindLoanFlags(fs *pflag.FlagSet, l *finance.Loan) {
	fs.Float64Var(&l.Principal, "amount", l.Principal, "Amount borrowed")
	fs.Float64Var(&l.RatePercent, "rate", l.RatePercent, "Interest rate, % per year")
	fs.IntVar(&l.Years, "years", l.Years, "Term in years")
}

func renderPayment(l finance.Loan, s finance.LoanSummary) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(cli.RenderTitle(fmt.Sprintf("MORTGAGE  %s at %.3g%%", cli.FormatCurrency(l.Principal), l.RatePercent)))
	b.WriteString("\n\n")

	interestShare := 0.0
	if s.TotalPaid > 0 {
		interestShare = s.TotalInterest / s.TotalPaid * 100
	}
	b.WriteString(cli.RenderKeyValues("", []cli.KV{
		{Label: "Monthly payment", Value: cli.FormatCents(s.MonthlyPayment), Color: cli.ColorAccent},
		{Label: "Term", Value: cli.FormatYears(float64(l.Years))},
		{Label: "Total paid", Value: cli.FormatCurrency(s.TotalPaid)},
		{Label: "Total interest", Value: fmt.Sprintf("%s (%s of payments)",
			cli.FormatCurrency(s.TotalInterest), cli.FormatPercent(interestShare))},
	}))
	b.WriteString("\n")

	rows := make([][]string, 0, len(s.Schedule))
	for _, r := range s.Schedule {
		rows = append(rows, []string{
			strconv.Itoa(r.Year),
			cli.FormatCurrency(r.PrincipalPaid),
			cli.FormatCurrency(r.InterestPaid),
			cli.FormatCurrency(r.EndingBalance),
		})
	}
	b.WriteString(cli.RenderTable(cli.Table{
		Title:   "Amortization",
		Headers: []string{"Year", "Principal", "Interest", "Balance"},
		Rows:    rows,
	}))
	b.WriteString("\n\n")

	return b.String()
}

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/fincalc/internal/cli"
	"github.com/theirongolddev/fincalc/internal/finance"
	"github.com/theirongolddev/fincalc/internal/tui/components"
	"github.com/theirongolddev/fincalc/internal/tui/theme"
)

type paymentTab struct {
	loan    finance.Loan
	summary finance.LoanSummary
	fields  []*numberField
}

func newPaymentTab(loan finance.Loan) *paymentTab {
	return &paymentTab{loan: loan, summary: finance.Summarize(loan)}
}

func (p *paymentTab) newForm() *huh.Form {
	p.fields = []*numberField{
		floatField("Loan amount", "Dollars borrowed", &p.loan.Principal),
		floatField("Interest rate", "Annual rate, %", &p.loan.RatePercent),
		intField("Term", "Years", &p.loan.Years),
	}
	return huh.NewForm(group("Mortgage", p.fields...))
}

func (p *paymentTab) submit() error {
	prev := p.loan
	if err := applyAll(p.fields); err != nil {
		p.loan = prev
		return err
	}
	if err := p.loan.Validate(); err != nil {
		p.loan = prev
		return err
	}
	p.summary = finance.Summarize(p.loan)
	return nil
}

func (p *paymentTab) status() string {
	return fmt.Sprintf("%s per month for %d years", cli.FormatCents(p.summary.MonthlyPayment), p.loan.Years)
}

func (p *paymentTab) view(cw int) string {
	t := theme.Active
	s := p.summary

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Monthly payment", Value: cli.FormatCents(s.MonthlyPayment), Color: t.Accent},
		{Label: "Total paid", Value: cli.FormatCurrency(s.TotalPaid)},
		{Label: "Total interest", Value: cli.FormatCurrency(s.TotalInterest), Color: t.Orange},
		{Label: "Interest share", Value: cli.FormatPercent(share(s.TotalInterest, s.TotalPaid) * 100)},
	}, cw))
	b.WriteString("\n")

	labels := make([]string, len(s.Schedule))
	balances := make([]float64, len(s.Schedule))
	for i, row := range s.Schedule {
		labels[i] = strconv.Itoa(row.Year)
		balances[i] = row.EndingBalance
	}

	widths := components.LayoutRow(cw, 2)
	chart := components.BarChart(balances, labels, t.Buy, components.CardInnerWidth(widths[0]), 10)

	var sched strings.Builder
	sched.WriteString(fmt.Sprintf("%-4s %12s %12s %12s\n", "Year", "Interest", "Principal", "Balance"))
	for _, row := range s.Schedule {
		sched.WriteString(fmt.Sprintf("%-4d %12s %12s %12s\n",
			row.Year,
			cli.FormatCurrency(row.InterestPaid),
			cli.FormatCurrency(row.PrincipalPaid),
			cli.FormatCurrency(row.EndingBalance)))
	}

	b.WriteString(components.CardRow([]string{
		components.ContentCard("Balance by year", chart, widths[0]),
		components.ContentCard("Amortization", strings.TrimRight(sched.String(), "\n"), widths[1]),
	}))
	return b.String()
}

func share(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole
}

package finance

import (
	"math"

	"github.com/rotisserie/eris"
)

// ErrInvalidLoan is returned by Loan.Validate.
var ErrInvalidLoan = eris.New("invalid loan")

// Loan describes a fixed-rate, fully amortizing loan.
type Loan struct {
	Principal   float64 `json:"principal" yaml:"principal" toml:"principal"`
	RatePercent float64 `json:"rate_percent" yaml:"rate_percent" toml:"rate_percent"`
	Years       int     `json:"years" yaml:"years" toml:"years"`
}

// AmortizationRow is one year of an amortization schedule.
type AmortizationRow struct {
	Year          int     `json:"year"`
	PaymentsMade  float64 `json:"payments_made"`
	InterestPaid  float64 `json:"interest_paid"`
	PrincipalPaid float64 `json:"principal_paid"`
	EndingBalance float64 `json:"ending_balance"`
}

// LoanSummary is the result of the payment calculator.
type LoanSummary struct {
	MonthlyPayment float64           `json:"monthly_payment"`
	TotalPaid      float64           `json:"total_paid"`
	TotalInterest  float64           `json:"total_interest"`
	Schedule       []AmortizationRow `json:"schedule"`
}

// Validate rejects loans the payment formulas cannot describe.
func (l Loan) Validate() error {
	switch {
	case !(l.Principal > 0) || math.IsInf(l.Principal, 0):
		return eris.Wrapf(ErrInvalidLoan, "amount must be positive, got %v", l.Principal)
	case l.RatePercent < 0 || math.IsNaN(l.RatePercent):
		return eris.Wrapf(ErrInvalidLoan, "rate must not be negative, got %v", l.RatePercent)
	case l.Years < 1:
		return eris.Wrapf(ErrInvalidLoan, "term must be at least one year, got %d", l.Years)
	}
	return nil
}

// YearInterest returns the interest paid on the loan during year y (1-based).
// Years outside the term pay nothing.
func (l Loan) YearInterest(y int) float64 {
	if y < 1 || y > l.Years {
		return 0
	}
	payment := MonthlyPayment(l.Principal, l.RatePercent, float64(l.Years))
	start := RemainingBalance(l.Principal, l.RatePercent, float64(l.Years), float64(y-1))
	end := RemainingBalance(l.Principal, l.RatePercent, float64(l.Years), float64(y))
	return payment*MonthsPerYear - (start - end)
}

// AmortizationSchedule returns one row per year of the loan term.
func AmortizationSchedule(l Loan) []AmortizationRow {
	if l.Years <= 0 {
		return nil
	}

	payment := MonthlyPayment(l.Principal, l.RatePercent, float64(l.Years))
	rows := make([]AmortizationRow, 0, l.Years)
	balance := l.Principal
	for y := 1; y <= l.Years; y++ {
		end := RemainingBalance(l.Principal, l.RatePercent, float64(l.Years), float64(y))
		paid := payment * MonthsPerYear
		principalPaid := balance - end
		rows = append(rows, AmortizationRow{
			Year:          y,
			PaymentsMade:  paid,
			InterestPaid:  paid - principalPaid,
			PrincipalPaid: principalPaid,
			EndingBalance: end,
		})
		balance = end
	}
	return rows
}

// Summarize computes the payment, totals and schedule for l.
func Summarize(l Loan) LoanSummary {
	payment := MonthlyPayment(l.Principal, l.RatePercent, float64(l.Years))
	total := payment * float64(l.Years*MonthsPerYear)
	return LoanSummary{
		MonthlyPayment: payment,
		TotalPaid:      total,
		TotalInterest:  total - l.Principal,
		Schedule:       AmortizationSchedule(l),
	}
}

package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyPayment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		principal float64
		rate      float64
		years     float64
		want      float64
	}{
		{name: "30y at 6%", principal: 320_000, rate: 6, years: 30, want: 1918.56},
		{name: "15y at 4.5%", principal: 200_000, rate: 4.5, years: 15, want: 1529.99},
		{name: "zero rate is straight division", principal: 120_000, rate: 0, years: 10, want: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, MonthlyPayment(tt.principal, tt.rate, tt.years), 0.01)
		})
	}
}

func TestMonthlyPayment_ZeroRateMatchesDivision(t *testing.T) {
	t.Parallel()
	for _, p := range []float64{1, 999.99, 250_000, 3_000_000} {
		for _, y := range []float64{1, 7, 30} {
			assert.Equal(t, p/(y*12), MonthlyPayment(p, 0, y))
		}
	}
}

func TestMonthlyPayment_NearZeroRateIsContinuous(t *testing.T) {
	t.Parallel()
	zero := MonthlyPayment(300_000, 0, 30)
	tiny := MonthlyPayment(300_000, 1e-9, 30)
	assert.InDelta(t, zero, tiny, 0.01)
}

func TestMonthlyPayment_NaNPropagates(t *testing.T) {
	t.Parallel()
	assert.True(t, math.IsNaN(MonthlyPayment(math.NaN(), 6, 30)))
	assert.True(t, math.IsNaN(MonthlyPayment(100_000, math.NaN(), 30)))
}

func TestFutureValue(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 1210.0, FutureValue(1000, 10, 2), 1e-9)
	assert.InDelta(t, 1000.0, FutureValue(1000, 0, 25), 1e-9)

	for _, p := range []float64{0, 1, 12_345.67} {
		for _, r := range []float64{-3, 0, 4, 11.5} {
			assert.Equal(t, p, FutureValue(p, r, 0), "FutureValue(%v, %v, 0)", p, r)
		}
	}
}

func TestRemainingBalance(t *testing.T) {
	t.Parallel()

	t.Run("zero at end of term", func(t *testing.T) {
		for _, r := range []float64{0.5, 3, 6, 12} {
			assert.Equal(t, 0.0, RemainingBalance(320_000, r, 30, 30))
			assert.Equal(t, 0.0, RemainingBalance(320_000, r, 30, 35))
		}
	})

	t.Run("full principal at start", func(t *testing.T) {
		assert.Equal(t, 320_000.0, RemainingBalance(320_000, 6, 30, 0))
	})

	t.Run("linear at zero rate", func(t *testing.T) {
		assert.InDelta(t, 50_000, RemainingBalance(100_000, 0, 10, 5), 1e-9)
	})

	t.Run("matches payment stream", func(t *testing.T) {
		// Balance after 10 years of a 320k 6% 30y loan.
		assert.InDelta(t, 267_794.32, RemainingBalance(320_000, 6, 30, 10), 1)
	})

	t.Run("monotone decreasing", func(t *testing.T) {
		prev := RemainingBalance(250_000, 5, 20, 0)
		for y := 1; y <= 20; y++ {
			cur := RemainingBalance(250_000, 5, 20, float64(y))
			assert.Less(t, cur, prev, "year %d", y)
			prev = cur
		}
	})
}

func TestAnnuityFutureValue(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 1268.25, AnnuityFutureValue(100, 12, 12), 0.01)

	for _, c := range []float64{0, 50, 1234.5} {
		for _, m := range []float64{0, 1, 120} {
			assert.Equal(t, c*m, AnnuityFutureValue(c, 0, m))
		}
	}
}

func TestLogistic(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0.5, Logistic(0))
	assert.InDelta(t, 0.0998, Logistic(-2.2), 1e-4)
	assert.Greater(t, Logistic(3), Logistic(2))
}

func TestAmortizationSchedule(t *testing.T) {
	t.Parallel()

	loan := Loan{Principal: 320_000, RatePercent: 6, Years: 30}
	rows := AmortizationSchedule(loan)
	require.Len(t, rows, 30)

	var interest, principal float64
	for _, r := range rows {
		interest += r.InterestPaid
		principal += r.PrincipalPaid
	}

	summary := Summarize(loan)
	assert.InDelta(t, summary.TotalInterest, interest, 0.01)
	assert.InDelta(t, loan.Principal, principal, 0.01)
	assert.Equal(t, 0.0, rows[len(rows)-1].EndingBalance)
	assert.InDelta(t, rows[0].InterestPaid, loan.YearInterest(1), 1e-6)
	assert.Equal(t, 0.0, loan.YearInterest(31))
}

func TestAmortizationSchedule_EmptyTerm(t *testing.T) {
	t.Parallel()
	assert.Nil(t, AmortizationSchedule(Loan{Principal: 1000, RatePercent: 5}))
}

func TestLoanValidate(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Loan{Principal: 1000, RatePercent: 0, Years: 1}.Validate())

	for _, l := range []Loan{
		{Principal: 0, RatePercent: 5, Years: 30},
		{Principal: 1000, RatePercent: -1, Years: 30},
		{Principal: 1000, RatePercent: 5, Years: 0},
		{Principal: math.NaN(), RatePercent: 5, Years: 30},
	} {
		assert.ErrorIs(t, l.Validate(), ErrInvalidLoan, "%+v", l)
	}
}

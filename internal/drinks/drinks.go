// Package drinks estimates what a drinking habit costs in money, forgone
// investment growth and calories.
package drinks

import (
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/theirongolddev/fincalc/internal/finance"
)

// ErrInvalidInput is returned for negative or non-finite inputs.
var ErrInvalidInput = eris.New("invalid drinking habit")

const (
	weeksPerYear = 52
	// CaloriesPerPound is the usual rule-of-thumb energy content of body fat.
	CaloriesPerPound = 3500
	// DefaultCaloriesPerDrink approximates a beer or a glass of wine.
	DefaultCaloriesPerDrink = 150
)

// Input describes a weekly drinking habit.
type Input struct {
	DrinksPerWeek    float64 `json:"drinks_per_week" yaml:"drinks_per_week" toml:"drinks_per_week"`
	PricePerDrink    float64 `json:"price_per_drink" yaml:"price_per_drink" toml:"price_per_drink"`
	CaloriesPerDrink float64 `json:"calories_per_drink" yaml:"calories_per_drink" toml:"calories_per_drink"`
	Years            int     `json:"years" yaml:"years" toml:"years"`
	InvestmentReturn float64 `json:"investment_return" yaml:"investment_return" toml:"investment_return"`
	// ReductionPercent models cutting back; 0 keeps the habit as is.
	ReductionPercent float64 `json:"reduction_percent" yaml:"reduction_percent" toml:"reduction_percent"`
}

// YearRow is the cumulative picture at the end of one year.
type YearRow struct {
	Year          int     `json:"year"`
	Spent         float64 `json:"spent"`
	InvestedValue float64 `json:"invested_value"`
}

// Result is the impact of the habit over Input.Years.
type Result struct {
	WeeklyCost  float64 `json:"weekly_cost"`
	MonthlyCost float64 `json:"monthly_cost"`
	AnnualCost  float64 `json:"annual_cost"`
	TotalSpent  float64 `json:"total_spent"`

	InvestedValue   float64 `json:"invested_value"`
	OpportunityCost float64 `json:"opportunity_cost"`

	AnnualCalories float64 `json:"annual_calories"`
	PoundsPerYear  float64 `json:"pounds_per_year"`

	ReducedAnnualSavings float64 `json:"reduced_annual_savings"`
	ReducedInvestedValue float64 `json:"reduced_invested_value"`

	Years []YearRow `json:"years"`
}

// DefaultInput returns a moderate habit.
func DefaultInput() Input {
	return Input{
		DrinksPerWeek:    7,
		PricePerDrink:    8,
		CaloriesPerDrink: DefaultCaloriesPerDrink,
		Years:            10,
		InvestmentReturn: 7,
	}
}

// Validate rejects negative and non-finite inputs.
func (in Input) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"drinks per week", in.DrinksPerWeek},
		{"price per drink", in.PricePerDrink},
		{"calories per drink", in.CaloriesPerDrink},
		{"years", float64(in.Years)},
		{"reduction percent", in.ReductionPercent},
	}
	for _, f := range fields {
		if f.value < 0 || math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return eris.Wrapf(ErrInvalidInput, "%s must be a non-negative number, got %v", f.name, f.value)
		}
	}
	if in.ReductionPercent > 100 {
		return eris.Wrapf(ErrInvalidInput, "reduction percent must be at most 100, got %v", in.ReductionPercent)
	}
	return nil
}

// Calculate projects the habit. The monthly spend is treated as a level
// contribution that could have been invested instead.
func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	weekly := in.DrinksPerWeek * in.PricePerDrink
	annual := weekly * weeksPerYear
	monthly := annual / finance.MonthsPerYear
	months := float64(in.Years * finance.MonthsPerYear)

	res := Result{
		WeeklyCost:  weekly,
		MonthlyCost: monthly,
		AnnualCost:  annual,
		TotalSpent:  annual * float64(in.Years),

		InvestedValue: finance.AnnuityFutureValue(monthly, in.InvestmentReturn, months),

		AnnualCalories: in.DrinksPerWeek * in.CaloriesPerDrink * weeksPerYear,
	}
	res.OpportunityCost = res.InvestedValue - res.TotalSpent
	res.PoundsPerYear = res.AnnualCalories / CaloriesPerPound

	cut := in.ReductionPercent / 100
	res.ReducedAnnualSavings = annual * cut
	res.ReducedInvestedValue = finance.AnnuityFutureValue(monthly*cut, in.InvestmentReturn, months)

	res.Years = make([]YearRow, 0, in.Years)
	for y := 1; y <= in.Years; y++ {
		res.Years = append(res.Years, YearRow{
			Year:          y,
			Spent:         annual * float64(y),
			InvestedValue: finance.AnnuityFutureValue(monthly, in.InvestmentReturn, float64(y*finance.MonthsPerYear)),
		})
	}

	zap.L().Debug("drink impact calculated",
		zap.Float64("annual_cost", res.AnnualCost),
		zap.Float64("invested_value", res.InvestedValue),
	)

	return res, nil
}

// Package finance implements the closed-form formulas shared by every fincalc
// calculator: amortization, compound growth, annuities, tax thresholding and the
// break-even locator.
//
// Rates are annual percentages (6 means 6%). Inputs are not validated; a NaN
// input yields a NaN output.
package finance

import "math"

// MonthsPerYear is the number of payment periods in a year.
const MonthsPerYear = 12

// MonthlyPayment returns the fixed monthly payment that amortizes principal over
// years at annualRatePercent. At a zero rate the payment is principal/(years*12).
func MonthlyPayment(principal, annualRatePercent, years float64) float64 {
	n := years * MonthsPerYear
	if annualRatePercent == 0 {
		return principal / n
	}
	i := monthlyRate(annualRatePercent)
	return principal * i / (1 - math.Pow(1+i, -n))
}

// FutureValue grows principal for years at annualRatePercent, compounded annually.
func FutureValue(principal, annualRatePercent, years float64) float64 {
	return principal * math.Pow(1+annualRatePercent/100, years)
}

// RemainingBalance returns the unpaid principal of a fixed-rate loan after
// yearsElapsed of a totalYears term. The balance is zero once the term is over.
func RemainingBalance(principal, annualRatePercent, totalYears, yearsElapsed float64) float64 {
	if yearsElapsed >= totalYears {
		return 0
	}
	if yearsElapsed <= 0 {
		return principal
	}

	n := totalYears * MonthsPerYear
	p := yearsElapsed * MonthsPerYear
	if annualRatePercent == 0 {
		return principal * (1 - p/n)
	}

	i := monthlyRate(annualRatePercent)
	growthN := math.Pow(1+i, n)
	growthP := math.Pow(1+i, p)
	return principal * (growthN - growthP) / (growthN - 1)
}

// AnnuityFutureValue returns the value after months of a level monthly
// contribution, compounded monthly. At a zero rate it is contribution*months.
func AnnuityFutureValue(monthlyContribution, annualRatePercent, months float64) float64 {
	if annualRatePercent == 0 {
		return monthlyContribution * months
	}
	i := monthlyRate(annualRatePercent)
	return monthlyContribution * (math.Pow(1+i, months) - 1) / i
}

// Logistic maps z onto (0, 1).
func Logistic(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func monthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 100 / MonthsPerYear
}

// Package rentbuy compares the total cost of buying a home against renting
// over a fixed timeframe.
package rentbuy

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/theirongolddev/fincalc/internal/finance"
)

// Validation errors.
var (
	ErrDownPaymentTooLarge = eris.New("down payment must be less than home price")
	ErrInvalidInput        = eris.New("invalid scenario")
)

// pmiEquityThreshold is the loan-to-price ratio above which PMI is charged.
const pmiEquityThreshold = 0.8

// Input is a rent-vs-buy scenario. Rates are annual percentages; money
// fields marked monthly or annual say so. Optional fields left at zero
// disable the corresponding cost or income.
type Input struct {
	// Purchase and loan.
	HomePrice       float64 `json:"home_price" yaml:"home_price" toml:"home_price"`
	DownPayment     float64 `json:"down_payment" yaml:"down_payment" toml:"down_payment"`
	InterestRate    float64 `json:"interest_rate" yaml:"interest_rate" toml:"interest_rate"`
	LoanTermYears   int     `json:"loan_term_years" yaml:"loan_term_years" toml:"loan_term_years"`
	ClosingCostRate float64 `json:"closing_cost_rate" yaml:"closing_cost_rate" toml:"closing_cost_rate"`

	// Ownership.
	AppreciationRate float64 `json:"appreciation_rate" yaml:"appreciation_rate" toml:"appreciation_rate"`
	PropertyTaxRate  float64 `json:"property_tax_rate" yaml:"property_tax_rate" toml:"property_tax_rate"`
	HomeInsurance    float64 `json:"home_insurance" yaml:"home_insurance" toml:"home_insurance"` // annual
	HOA              float64 `json:"hoa" yaml:"hoa" toml:"hoa"`                                  // monthly
	PMIRate          float64 `json:"pmi_rate" yaml:"pmi_rate" toml:"pmi_rate"`
	MaintenanceRate  float64 `json:"maintenance_rate" yaml:"maintenance_rate" toml:"maintenance_rate"`
	Utilities        float64 `json:"utilities" yaml:"utilities" toml:"utilities"`             // monthly, extra over renting
	RentalIncome     float64 `json:"rental_income" yaml:"rental_income" toml:"rental_income"` // monthly
	SellingCostRate  float64 `json:"selling_cost_rate" yaml:"selling_cost_rate" toml:"selling_cost_rate"`

	// Renting.
	MonthlyRent      float64 `json:"monthly_rent" yaml:"monthly_rent" toml:"monthly_rent"`
	RentIncreaseRate float64 `json:"rent_increase_rate" yaml:"rent_increase_rate" toml:"rent_increase_rate"`
	RentersInsurance float64 `json:"renters_insurance" yaml:"renters_insurance" toml:"renters_insurance"` // monthly
	BrokerFee        float64 `json:"broker_fee" yaml:"broker_fee" toml:"broker_fee"`
	SecurityDeposit  float64 `json:"security_deposit" yaml:"security_deposit" toml:"security_deposit"`

	// Shared assumptions.
	InvestmentReturn float64              `json:"investment_return" yaml:"investment_return" toml:"investment_return"`
	TimeframeYears   int                  `json:"timeframe_years" yaml:"timeframe_years" toml:"timeframe_years"`
	FilingStatus     finance.FilingStatus `json:"filing_status" yaml:"filing_status" toml:"filing_status"`
	MarginalTaxRate  float64              `json:"marginal_tax_rate" yaml:"marginal_tax_rate" toml:"marginal_tax_rate"`
}

// DefaultInput returns a typical scenario used when nothing else is configured.
func DefaultInput() Input {
	return Input{
		HomePrice:        400_000,
		DownPayment:      80_000,
		InterestRate:     6.5,
		LoanTermYears:    30,
		ClosingCostRate:  3,
		AppreciationRate: 3,
		PropertyTaxRate:  1.1,
		HomeInsurance:    1_800,
		MaintenanceRate:  1,
		SellingCostRate:  6,
		MonthlyRent:      2_200,
		RentIncreaseRate: 3,
		RentersInsurance: 15,
		InvestmentReturn: 7,
		TimeframeYears:   10,
		FilingStatus:     finance.Single,
		MarginalTaxRate:  22,
	}
}

// LoanAmount is the financed part of the purchase price.
func (in Input) LoanAmount() float64 {
	return in.HomePrice - in.DownPayment
}

// Validate checks the scenario before calculation. The down payment check is
// the one hard precondition; the rest reject inputs that make every result
// meaningless. An empty filing status counts as single.
func (in Input) Validate() error {
	if in.DownPayment >= in.HomePrice {
		return ErrDownPaymentTooLarge
	}
	if !(in.HomePrice > 0) || math.IsInf(in.HomePrice, 0) {
		return eris.Wrapf(ErrInvalidInput, "home price must be positive, got %v", in.HomePrice)
	}
	if in.LoanTermYears <= 0 {
		return eris.Wrapf(ErrInvalidInput, "loan term must be at least one year, got %d", in.LoanTermYears)
	}
	if in.TimeframeYears <= 0 {
		return eris.Wrapf(ErrInvalidInput, "timeframe must be at least one year, got %d", in.TimeframeYears)
	}
	if in.FilingStatus != "" {
		if _, ok := finance.StandardDeduction(in.FilingStatus); !ok {
			return eris.Wrapf(ErrInvalidInput, "unknown filing status %q", in.FilingStatus)
		}
	}
	return nil
}

func (in Input) filingStatus() finance.FilingStatus {
	if in.FilingStatus == "" {
		return finance.Single
	}
	return in.FilingStatus
}

package rentbuy

import (
	"go.uber.org/zap"

	"github.com/theirongolddev/fincalc/internal/finance"
)

// Verdict names the cheaper option.
type Verdict string

// Possible verdicts.
const (
	VerdictBuy  Verdict = "buy"
	VerdictRent Verdict = "rent"
	VerdictEven Verdict = "even"
)

// YearRow is the state of both options at the end of one projection year.
type YearRow struct {
	Year        int     `json:"year"`
	HomeValue   float64 `json:"home_value"`
	LoanBalance float64 `json:"loan_balance"`

	// Costs incurred during the year, net of rental income and tax benefit.
	BuyCost    float64 `json:"buy_cost"`
	RentCost   float64 `json:"rent_cost"`
	Interest   float64 `json:"interest"`
	TaxBenefit float64 `json:"tax_benefit"`

	// Everything paid so far, upfront costs included.
	BuySpent  float64 `json:"buy_spent"`
	RentSpent float64 `json:"rent_spent"`

	// Total cost of each option if the home were sold at the end of the year.
	BuyTotal  float64 `json:"buy_total"`
	RentTotal float64 `json:"rent_total"`
}

// Result is the rent-vs-buy comparison at the end of the timeframe.
type Result struct {
	LoanAmount      float64 `json:"loan_amount"`
	MonthlyPayment  float64 `json:"monthly_payment"`
	ClosingCosts    float64 `json:"closing_costs"`
	MonthlyBuyCost  float64 `json:"monthly_buy_cost"`  // first year
	MonthlyRentCost float64 `json:"monthly_rent_cost"` // first year

	BuySpent  float64 `json:"buy_spent"`
	RentSpent float64 `json:"rent_spent"`

	SaleValue        float64 `json:"sale_value"`
	SellingCosts     float64 `json:"selling_costs"`
	RemainingBalance float64 `json:"remaining_balance"`
	NetProceeds      float64 `json:"net_proceeds"`
	TaxBenefit       float64 `json:"tax_benefit"`

	DownPaymentOpportunity float64 `json:"down_payment_opportunity"`
	BuyMonthlyOpportunity  float64 `json:"buy_monthly_opportunity"`
	RentMonthlyOpportunity float64 `json:"rent_monthly_opportunity"`

	TotalBuyCost  float64 `json:"total_buy_cost"`
	TotalRentCost float64 `json:"total_rent_cost"`
	// Difference is TotalRentCost - TotalBuyCost; positive favors buying.
	Difference float64 `json:"difference"`
	Verdict    Verdict `json:"verdict"`

	BreakEvenYear float64 `json:"break_even_year"`
	HasBreakEven  bool    `json:"has_break_even"`

	Years []YearRow `json:"years"`
}

// forgone tracks money one side could have invested had it not spent more
// than the other side.
type forgone struct {
	value       float64
	contributed float64
}

func (f *forgone) add(annualExtra, ratePercent float64) {
	f.value = finance.FutureValue(f.value, ratePercent, 1)
	f.value += finance.AnnuityFutureValue(annualExtra/finance.MonthsPerYear, ratePercent, finance.MonthsPerYear)
	f.contributed += annualExtra
}

func (f forgone) growth() float64 {
	return f.value - f.contributed
}

// Calculate runs the comparison. Rows are projected to the longer of the
// timeframe and the loan term so the break-even year can fall past the
// timeframe; Result.Years stops at the timeframe.
func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	loan := finance.Loan{
		Principal:   in.LoanAmount(),
		RatePercent: in.InterestRate,
		Years:       in.LoanTermYears,
	}
	payment := finance.MonthlyPayment(loan.Principal, loan.RatePercent, float64(loan.Years))
	closing := in.HomePrice * in.ClosingCostRate / 100
	upfrontBuy := in.DownPayment + closing
	horizon := max(in.TimeframeYears, in.LoanTermYears)
	status := in.filingStatus()

	res := Result{
		LoanAmount:     loan.Principal,
		MonthlyPayment: payment,
		ClosingCosts:   closing,
	}

	var (
		buySpent   = upfrontBuy
		rentSpent  = in.BrokerFee + in.SecurityDeposit
		buyerLost  forgone // renter invests what the buyer overspends
		renterLost forgone // buyer invests what the renter overspends
		taxBenefit float64

		sampleYears = make([]float64, 0, horizon+1)
		buyTotals   = make([]float64, 0, horizon+1)
		rentTotals  = make([]float64, 0, horizon+1)
	)

	snapshot := func(y int) YearRow {
		value := finance.FutureValue(in.HomePrice, in.AppreciationRate, float64(y))
		balance := finance.RemainingBalance(loan.Principal, loan.RatePercent, float64(loan.Years), float64(y))
		proceeds := value - value*in.SellingCostRate/100 - balance
		downOpp := finance.FutureValue(upfrontBuy, in.InvestmentReturn, float64(y)) - upfrontBuy
		return YearRow{
			Year:        y,
			HomeValue:   value,
			LoanBalance: balance,
			BuySpent:    buySpent,
			RentSpent:   rentSpent,
			BuyTotal:    buySpent - proceeds + downOpp + buyerLost.growth(),
			RentTotal:   rentSpent - in.SecurityDeposit + renterLost.growth(),
		}
	}

	record := func(row YearRow) {
		sampleYears = append(sampleYears, float64(row.Year))
		buyTotals = append(buyTotals, row.BuyTotal)
		rentTotals = append(rentTotals, row.RentTotal)
	}

	record(snapshot(0))

	for y := 1; y <= horizon; y++ {
		startValue := finance.FutureValue(in.HomePrice, in.AppreciationRate, float64(y-1))
		startBalance := finance.RemainingBalance(loan.Principal, loan.RatePercent, float64(loan.Years), float64(y-1))

		var mortgage float64
		if y <= loan.Years {
			mortgage = payment * finance.MonthsPerYear
		}
		interest := loan.YearInterest(y)
		propertyTax := startValue * in.PropertyTaxRate / 100
		var pmi float64
		if in.PMIRate > 0 && startBalance > pmiEquityThreshold*in.HomePrice {
			pmi = loan.Principal * in.PMIRate / 100
		}
		maintenance := startValue * in.MaintenanceRate / 100
		benefit := finance.TaxBenefit(interest+propertyTax, status, in.MarginalTaxRate)

		buyCost := mortgage + propertyTax + in.HomeInsurance + in.HOA*12 + pmi +
			maintenance + in.Utilities*12 - in.RentalIncome*12 - benefit

		rentGrowth := finance.FutureValue(1, in.RentIncreaseRate, float64(y-1))
		rentCost := (in.MonthlyRent + in.RentersInsurance) * 12 * rentGrowth

		buySpent += buyCost
		rentSpent += rentCost
		if diff := buyCost - rentCost; diff > 0 {
			buyerLost.add(diff, in.InvestmentReturn)
			renterLost.add(0, in.InvestmentReturn)
		} else {
			buyerLost.add(0, in.InvestmentReturn)
			renterLost.add(-diff, in.InvestmentReturn)
		}

		row := snapshot(y)
		row.BuyCost = buyCost
		row.RentCost = rentCost
		row.Interest = interest
		row.TaxBenefit = benefit
		record(row)

		if y == 1 {
			res.MonthlyBuyCost = buyCost / 12
			res.MonthlyRentCost = rentCost / 12
		}
		if y > in.TimeframeYears {
			continue
		}

		taxBenefit += benefit
		res.Years = append(res.Years, row)
		if y == in.TimeframeYears {
			res.BuySpent = buySpent
			res.RentSpent = rentSpent - in.SecurityDeposit
			res.SaleValue = row.HomeValue
			res.SellingCosts = row.HomeValue * in.SellingCostRate / 100
			res.RemainingBalance = row.LoanBalance
			res.NetProceeds = res.SaleValue - res.SellingCosts - res.RemainingBalance
			res.DownPaymentOpportunity = finance.FutureValue(upfrontBuy, in.InvestmentReturn, float64(y)) - upfrontBuy
			res.BuyMonthlyOpportunity = buyerLost.growth()
			res.RentMonthlyOpportunity = renterLost.growth()
			res.TotalBuyCost = row.BuyTotal
			res.TotalRentCost = row.RentTotal
		}
	}

	res.TaxBenefit = taxBenefit
	res.Difference = res.TotalRentCost - res.TotalBuyCost
	switch {
	case res.Difference > 0:
		res.Verdict = VerdictBuy
	case res.Difference < 0:
		res.Verdict = VerdictRent
	default:
		res.Verdict = VerdictEven
	}

	res.BreakEvenYear, res.HasBreakEven = finance.BreakEven(sampleYears, buyTotals, rentTotals)

	zap.L().Debug("rent vs buy calculated",
		zap.Float64("total_buy", res.TotalBuyCost),
		zap.Float64("total_rent", res.TotalRentCost),
		zap.String("verdict", string(res.Verdict)),
		zap.Bool("break_even", res.HasBreakEven),
	)

	return res, nil
}

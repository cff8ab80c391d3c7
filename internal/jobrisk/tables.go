package jobrisk

import "sort"

// Point tables. Higher points mean more exposure to a reduction in force.
// The maps are never written after init; callers read them through the
// lookup functions below.

var employmentPoints = map[string]float64{
	"career":             0,
	"career_conditional": 1,
	"excepted":           1,
	"political":          2,
	"term":               3,
	"contractor":         3,
	"temporary":          4,
	"probationary":       4,
}

var tenurePoints = map[string]float64{
	"under_1": 3,
	"1_3":     2,
	"3_10":    1,
	"10_20":   0,
	"20_plus": -1,
}

var agencyPoints = map[string]float64{
	"usaid":     8,
	"cfpb":      7,
	"education": 6,
	"opm":       4,
	"gsa":       4,
	"epa":       4,
	"hhs":       3,
	"hud":       3,
	"irs":       3,
	"labor":     3,
	"noaa":      3,
	"sba":       3,
	"state":     3,
	"commerce":  2,
	"energy":    2,
	"interior":  2,
	"ssa":       2,
	"usda":      2,
	"other":     2,
	"doj":       1,
	"dod":       1,
	"va":        1,
	"dhs":       0,
}

var programPoints = map[string]float64{
	"dei":                    6,
	"foreign_aid":            5,
	"climate":                4,
	"public_media":           4,
	"research_grants":        3,
	"administrative_support": 2,
	"regulatory_enforcement": 2,
	"communications":         2,
	"it_modernization":       1,
	"benefits_processing":    -1,
	"law_enforcement":        -2,
	"veterans_services":      -2,
	"national_security":      -3,
}

var fundingPoints = map[string]float64{
	"mandatory":             -2,
	"fee_funded":            -1,
	"appropriated":          0,
	"continuing_resolution": 1,
	"proposed_cut":          3,
	"eliminated":            6,
}

// Role modifiers.
const (
	essentialPoints = -3
	seniorPoints    = 1
	survivedPoints  = -1
)

// Horizon is a forecast window for the probability of losing the job.
type Horizon string

// Horizons in increasing length.
const (
	OneMonth    Horizon = "1m"
	ThreeMonths Horizon = "3m"
	SixMonths   Horizon = "6m"
	OneYear     Horizon = "1y"
	TwoYears    Horizon = "2y"
	ThreeYears  Horizon = "3y"
)

// logit holds the logistic parameters of one horizon.
type logit struct {
	intercept   float64
	coefficient float64
}

var horizonParams = map[Horizon]logit{
	OneMonth:    {intercept: -4.0, coefficient: 0.20},
	ThreeMonths: {intercept: -3.2, coefficient: 0.22},
	SixMonths:   {intercept: -2.7, coefficient: 0.24},
	OneYear:     {intercept: -2.2, coefficient: 0.25},
	TwoYears:    {intercept: -1.8, coefficient: 0.26},
	ThreeYears:  {intercept: -1.5, coefficient: 0.27},
}

// Horizons returns every horizon in increasing length.
func Horizons() []Horizon {
	return []Horizon{OneMonth, ThreeMonths, SixMonths, OneYear, TwoYears, ThreeYears}
}

// Label returns a human-readable horizon name.
func (h Horizon) Label() string {
	switch h {
	case OneMonth:
		return "1 month"
	case ThreeMonths:
		return "3 months"
	case SixMonths:
		return "6 months"
	case OneYear:
		return "1 year"
	case TwoYears:
		return "2 years"
	case ThreeYears:
		return "3 years"
	default:
		return string(h)
	}
}

// Factor lists the keys one lookup table accepts.
type Factor string

// Factors a profile is scored on.
const (
	FactorEmployment Factor = "employment"
	FactorTenure     Factor = "tenure"
	FactorAgency     Factor = "agency"
	FactorProgram    Factor = "program"
	FactorFunding    Factor = "funding"
)

func table(f Factor) map[string]float64 {
	switch f {
	case FactorEmployment:
		return employmentPoints
	case FactorTenure:
		return tenurePoints
	case FactorAgency:
		return agencyPoints
	case FactorProgram:
		return programPoints
	case FactorFunding:
		return fundingPoints
	default:
		return nil
	}
}

// Keys returns the accepted keys of a factor, sorted.
func Keys(f Factor) []string {
	t := table(f)
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Points returns the points of key in factor's table.
func Points(f Factor, key string) (float64, bool) {
	p, ok := table(f)[key]
	return p, ok
}

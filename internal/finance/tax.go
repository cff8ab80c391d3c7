package finance

import (
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFilingStatus is returned when decoding a status no alias matches.
var ErrUnknownFilingStatus = eris.New("unknown filing status")

// FilingStatus is a federal income tax filing status.
type FilingStatus string

// Supported filing statuses.
const (
	Single                  FilingStatus = "single"
	MarriedFilingJointly    FilingStatus = "married_joint"
	MarriedFilingSeparately FilingStatus = "married_separate"
	HeadOfHousehold         FilingStatus = "head_of_household"
)

// standardDeductions holds the 2024 federal standard deduction per status.
var standardDeductions = map[FilingStatus]float64{
	Single:                  14_600,
	MarriedFilingJointly:    29_200,
	MarriedFilingSeparately: 14_600,
	HeadOfHousehold:         21_900,
}

var filingStatusAliases = map[string]FilingStatus{
	"single":                    Single,
	"married_joint":             MarriedFilingJointly,
	"married":                   MarriedFilingJointly,
	"joint":                     MarriedFilingJointly,
	"mfj":                       MarriedFilingJointly,
	"married_filing_jointly":    MarriedFilingJointly,
	"married_separate":          MarriedFilingSeparately,
	"mfs":                       MarriedFilingSeparately,
	"married_filing_separately": MarriedFilingSeparately,
	"head_of_household":         HeadOfHousehold,
	"hoh":                       HeadOfHousehold,
}

// FilingStatuses lists the supported statuses in display order.
func FilingStatuses() []FilingStatus {
	return []FilingStatus{Single, MarriedFilingJointly, MarriedFilingSeparately, HeadOfHousehold}
}

// ParseFilingStatus normalizes user input such as "MFJ" or "head-of-household".
func ParseFilingStatus(raw string) (FilingStatus, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	fs, ok := filingStatusAliases[key]
	return fs, ok
}

// UnmarshalText accepts every alias ParseFilingStatus knows, so JSON and
// TOML scenario files can say "MFJ". An empty value stays empty.
func (f *FilingStatus) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		*f = ""
		return nil
	}
	fs, ok := ParseFilingStatus(string(text))
	if !ok {
		return eris.Wrapf(ErrUnknownFilingStatus, "%q", string(text))
	}
	*f = fs
	return nil
}

// UnmarshalYAML is UnmarshalText for yaml.v3.
func (f *FilingStatus) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return eris.Wrap(err, "filing status")
	}
	return f.UnmarshalText([]byte(raw))
}

// StandardDeduction returns the standard deduction for status.
func StandardDeduction(status FilingStatus) (float64, bool) {
	d, ok := standardDeductions[status]
	return d, ok
}

// TaxBenefit returns the tax saved by itemizing. Only the part of itemized
// deductions above the standard deduction counts, taxed at the marginal rate.
// An unknown status yields no benefit.
func TaxBenefit(itemized float64, status FilingStatus, marginalRatePercent float64) float64 {
	std, ok := StandardDeduction(status)
	if !ok || !(itemized > std) {
		return 0
	}
	return (itemized - std) * marginalRatePercent / 100
}

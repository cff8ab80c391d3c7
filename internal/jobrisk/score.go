// Package jobrisk scores how exposed a federal job is to workforce cuts.
//
// A profile is turned into an additive point score through static lookup
// tables, and the score into a probability per horizon through a logistic
// curve.
package jobrisk

import (
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/theirongolddev/fincalc/internal/finance"
)

// ErrUnknownFactor is returned when a profile uses a key no table knows.
var ErrUnknownFactor = eris.New("unknown risk factor")

// Profile describes a job. Empty keys score zero.
type Profile struct {
	Employment string   `json:"employment" yaml:"employment" toml:"employment"`
	Tenure     string   `json:"tenure" yaml:"tenure" toml:"tenure"`
	Agency     string   `json:"agency" yaml:"agency" toml:"agency"`
	Programs   []string `json:"programs" yaml:"programs" toml:"programs"`
	Essential  bool     `json:"essential" yaml:"essential" toml:"essential"`
	Senior     bool     `json:"senior" yaml:"senior" toml:"senior"`
	Survived   bool     `json:"survived" yaml:"survived" toml:"survived"`
	Funding    string   `json:"funding" yaml:"funding" toml:"funding"`
}

// Band is a qualitative risk label.
type Band string

// Bands from lowest to highest.
const (
	BandLow      Band = "low"
	BandModerate Band = "moderate"
	BandHigh     Band = "high"
	BandSevere   Band = "severe"
)

// Band thresholds, in percent.
const (
	moderateThreshold = 15
	highThreshold     = 35
	severeThreshold   = 70
)

// Probability is the chance of job loss within one horizon.
type Probability struct {
	Horizon Horizon `json:"horizon"`
	Percent int     `json:"percent"`
	Band    Band    `json:"band"`
}

// Result is the scored profile.
type Result struct {
	Score         float64       `json:"score"`
	Probabilities []Probability `json:"probabilities"`
	// Band is the band of the one-year probability.
	Band Band `json:"band"`
}

// BandFor maps a percentage onto a band.
func BandFor(percent int) Band {
	switch {
	case percent >= severeThreshold:
		return BandSevere
	case percent >= highThreshold:
		return BandHigh
	case percent >= moderateThreshold:
		return BandModerate
	default:
		return BandLow
	}
}

func normalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	return strings.NewReplacer("-", "_", " ", "_", "+", "_plus").Replace(k)
}

func lookup(f Factor, key string) (float64, error) {
	key = normalizeKey(key)
	if key == "" {
		return 0, nil
	}
	p, ok := Points(f, key)
	if !ok {
		return 0, eris.Wrapf(ErrUnknownFactor, "%s %q", f, key)
	}
	return p, nil
}

// Score sums the points of every factor in p.
func Score(p Profile) (float64, error) {
	var total float64
	for _, kv := range []struct {
		factor Factor
		key    string
	}{
		{FactorEmployment, p.Employment},
		{FactorTenure, p.Tenure},
		{FactorAgency, p.Agency},
		{FactorFunding, p.Funding},
	} {
		pts, err := lookup(kv.factor, kv.key)
		if err != nil {
			return 0, err
		}
		total += pts
	}

	seen := make(map[string]bool, len(p.Programs))
	for _, prog := range p.Programs {
		key := normalizeKey(prog)
		if seen[key] {
			continue
		}
		seen[key] = true
		pts, err := lookup(FactorProgram, key)
		if err != nil {
			return 0, err
		}
		total += pts
	}

	if p.Essential {
		total += essentialPoints
	}
	if p.Senior {
		total += seniorPoints
	}
	if p.Survived {
		total += survivedPoints
	}
	return total, nil
}

// ProbabilityAt returns the probability of job loss within h for a score,
// in [0, 1]. Unknown horizons return NaN.
func ProbabilityAt(score float64, h Horizon) float64 {
	params, ok := horizonParams[h]
	if !ok {
		return math.NaN()
	}
	return finance.Logistic(params.intercept + params.coefficient*score)
}

// Assess scores p and converts the score into a probability per horizon.
func Assess(p Profile) (Result, error) {
	score, err := Score(p)
	if err != nil {
		return Result{}, err
	}

	res := Result{Score: score}
	for _, h := range Horizons() {
		pct := int(math.Round(ProbabilityAt(score, h) * 100))
		band := BandFor(pct)
		res.Probabilities = append(res.Probabilities, Probability{Horizon: h, Percent: pct, Band: band})
		if h == OneYear {
			res.Band = band
		}
	}

	zap.L().Debug("job risk assessed",
		zap.Float64("score", score),
		zap.String("band", string(res.Band)),
	)

	return res, nil
}

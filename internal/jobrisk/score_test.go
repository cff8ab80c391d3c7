package jobrisk

import (
	"math"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fincalc/internal/finance"
)

func TestAssess_NeutralProfile(t *testing.T) {
	t.Parallel()

	res, err := Assess(Profile{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Score)

	want := int(math.Round(finance.Logistic(-2.2) * 100))
	assert.Equal(t, 10, want)

	var oneYear Probability
	for _, p := range res.Probabilities {
		if p.Horizon == OneYear {
			oneYear = p
		}
	}
	assert.Equal(t, want, oneYear.Percent)
	assert.Equal(t, BandLow, res.Band)
}

func TestAssess_ProbabilitiesGrowWithHorizon(t *testing.T) {
	t.Parallel()

	for _, p := range []Profile{
		{},
		{Employment: "probationary", Agency: "usaid", Programs: []string{"dei", "foreign_aid"}, Funding: "eliminated"},
		{Employment: "career", Tenure: "20+", Agency: "dhs", Programs: []string{"national_security"}, Essential: true, Survived: true, Funding: "mandatory"},
	} {
		res, err := Assess(p)
		require.NoError(t, err)
		require.Len(t, res.Probabilities, 6)
		for i := 1; i < len(res.Probabilities); i++ {
			assert.GreaterOrEqual(t, res.Probabilities[i].Percent, res.Probabilities[i-1].Percent,
				"score %v horizon %s", res.Score, res.Probabilities[i].Horizon)
		}
	}
}

func TestScore_Additive(t *testing.T) {
	t.Parallel()

	score, err := Score(Profile{
		Employment: "Probationary",
		Tenure:     "under 1",
		Agency:     "USAID",
		Programs:   []string{"dei", "climate", "dei"},
		Senior:     true,
		Funding:    "proposed-cut",
	})
	require.NoError(t, err)
	// 4 + 3 + 8 + (6 + 4) + 1 + 3; duplicate program counted once.
	assert.Equal(t, 29.0, score)

	score, err = Score(Profile{Essential: true, Survived: true})
	require.NoError(t, err)
	assert.Equal(t, -4.0, score)
}

func TestScore_UnknownKey(t *testing.T) {
	t.Parallel()

	_, err := Score(Profile{Agency: "ministry_of_magic"})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrUnknownFactor))

	_, err = Score(Profile{Programs: []string{"dei", "wizardry"}})
	assert.True(t, eris.Is(err, ErrUnknownFactor))
}

func TestBandFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pct  int
		want Band
	}{
		{0, BandLow},
		{14, BandLow},
		{15, BandModerate},
		{34, BandModerate},
		{35, BandHigh},
		{69, BandHigh},
		{70, BandSevere},
		{100, BandSevere},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BandFor(tt.pct), "pct %d", tt.pct)
	}
}

func TestKeys_Sorted(t *testing.T) {
	t.Parallel()

	keys := Keys(FactorAgency)
	require.NotEmpty(t, keys)
	assert.IsIncreasing(t, keys)
	assert.Empty(t, Keys(Factor("nope")))
	assert.True(t, math.IsNaN(ProbabilityAt(0, Horizon("5y"))))
}

package cli

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{12.4, "$12"},
		{1918.56, "$1,919"},
		{1_234_567, "$1,234,567"},
		{-2500, "-$2,500"},
		{math.NaN(), "n/a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(tt.in), "FormatCurrency(%v)", tt.in)
	}
}

func TestFormatCents(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "$1,918.56", FormatCents(1918.5617))
	assert.Equal(t, "-$0.50", FormatCents(-0.5))
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1,234,567", FormatNumber(1_234_567))
	assert.Equal(t, "-1,000", FormatNumber(-1000))
}

func TestFormatYears(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "1 year", FormatYears(1))
	assert.Equal(t, "10 years", FormatYears(10))
	assert.Equal(t, "9.2 years", FormatYears(9.17))
}

func TestFormatDelta(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "+$1,500", FormatDelta(1500))
	assert.Equal(t, "-$20", FormatDelta(-20))
	assert.Equal(t, "18.5%", FormatPercent(18.46))
}

func TestRenderTable(t *testing.T) {
	t.Parallel()
	out := RenderTable(Table{
		Title:   "Schedule",
		Headers: []string{"Year", "Balance"},
		Rows: [][]string{
			{"1", "$315,000"},
			SeparatorRow,
			{"Total", "$0"},
		},
	})

	assert.Contains(t, out, "Schedule")
	assert.Contains(t, out, "$315,000")
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "╯")
	assert.Equal(t, 8, strings.Count(out, "\n"))
	assert.Empty(t, RenderTable(Table{}))
}

func TestRenderKeyValues(t *testing.T) {
	t.Parallel()
	out := RenderKeyValues("Totals", []KV{
		{Label: "Buy", Value: "$10"},
		{Label: "Rent total", Value: "$20", Color: ColorGreen},
	})
	assert.Contains(t, out, "Totals")
	assert.Contains(t, out, "Rent total")
	assert.Contains(t, out, "$20")
}

func TestRenderSparkline(t *testing.T) {
	t.Parallel()
	assert.Empty(t, RenderSparkline(nil))
	assert.Equal(t, "▁▄█", RenderSparkline([]float64{0, 50, 100}))
	assert.Equal(t, "▁▁", RenderSparkline([]float64{-5, 0}))
}

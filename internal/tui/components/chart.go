package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fincalc/internal/tui/theme"
)

// Series is one named, colored run of values in a bar chart.
type Series struct {
	Name   string
	Values []float64
	Color  lipgloss.Color
}

var blocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v/peak*float64(len(blocks)-2)) + 1
		idx = min(max(idx, 1), len(blocks)-1)
		buf.WriteRune(blocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// BarChart renders a single-series bar chart with dollar-scaled y-axis ticks.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	return GroupedBarChart([]Series{{Values: values, Color: color}}, labels, width, height)
}

// GroupedBarChart renders one bar per series for each label, side by side.
// Negative values are drawn as empty bars. All series must be the same
// length as the first.
func GroupedBarChart(series []Series, labels []string, width, height int) string {
	if len(series) == 0 || len(series[0].Values) == 0 {
		return ""
	}
	n := len(series[0].Values)
	for _, s := range series[1:] {
		if len(s.Values) != n {
			return ""
		}
	}
	if width < 15 || height < 3 {
		return Sparkline(series[0].Values, series[0].Color)
	}

	t := theme.Active

	maxVal := 0.0
	for _, s := range series {
		for _, v := range s.Values {
			maxVal = max(maxVal, v)
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	tickStep := chartTickStep(maxVal)
	maxIntervals := max(height/2, 2)
	for int(math.Ceil(maxVal/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := max(int(math.Round(ceiling/tickStep)), 1)
	rowsPerTick := max(height/numIntervals, 2)
	chartH := rowsPerTick * numIntervals

	yLabelW := max(len(FormatAxisLabel(ceiling))+1, 5)
	tickLabels := make(map[int]string, numIntervals)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = FormatAxisLabel(tickStep * float64(i))
	}

	chartW := max(width-yLabelW-1, 5)

	// A group is one bar per series; groups are separated by a one-column gap.
	k := len(series)
	gap := 1
	if n == 1 {
		gap = 0
	}
	barW := (chartW - (n-1)*gap) / (n * k)
	if barW < 1 {
		// Too many points for the width: sample evenly, keeping the last.
		keep := max((chartW+1)/(k+1), 2)
		idx := make([]int, keep)
		for i := range idx {
			idx[i] = i * (n - 1) / (keep - 1)
		}
		series = sampleSeries(series, idx)
		if len(labels) == n {
			sampled := make([]string, keep)
			for i, j := range idx {
				sampled[i] = labels[j]
			}
			labels = sampled
		}
		n = keep
		barW = 1
	}
	barW = min(barW, 4)
	groupW := barW * k
	axisLen := n*groupW + max(0, n-1)*gap

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		for i := 0; i < n; i++ {
			if i > 0 && gap > 0 {
				b.WriteString(spaceStyle.Render(strings.Repeat(" ", gap)))
			}
			for _, s := range series {
				barStyle := lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface)
				v := s.Values[i]
				switch {
				case v >= rowTop:
					b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
				case v > rowBottom:
					frac := (v - rowBottom) / (rowTop - rowBottom)
					idx := min(max(int(frac*8), 1), 8)
					b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
				default:
					b.WriteString(spaceStyle.Render(strings.Repeat(" ", barW)))
				}
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(spaceStyle.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axisStyle.Render(xAxisLabels(labels, groupW+gap, axisLen)))
	}

	if k > 1 {
		b.WriteString("\n")
		b.WriteString(spaceStyle.Render(strings.Repeat(" ", yLabelW+1)))
		for i, s := range series {
			if i > 0 {
				b.WriteString(spaceStyle.Render("  "))
			}
			b.WriteString(lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface).Render("■ "))
			b.WriteString(lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(s.Name))
		}
	}

	return b.String()
}

func sampleSeries(series []Series, idx []int) []Series {
	out := make([]Series, len(series))
	for i, s := range series {
		vals := make([]float64, len(idx))
		for j, src := range idx {
			vals[j] = s.Values[src]
		}
		out[i] = Series{Name: s.Name, Color: s.Color, Values: vals}
	}
	return out
}

// xAxisLabels lays labels out at their group positions, skipping any that
// would collide with the previous one.
func xAxisLabels(labels []string, stride, axisLen int) string {
	buf := []byte(strings.Repeat(" ", axisLen))
	lastEnd := -1
	for i, lbl := range labels {
		pos := i * stride
		if pos <= lastEnd || pos >= axisLen {
			continue
		}
		end := min(pos+len(lbl), axisLen)
		copy(buf[pos:end], lbl)
		lastEnd = end
	}
	return strings.TrimRight(string(buf), " ")
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

// FormatAxisLabel formats a dollar amount compactly for chart axes.
// e.g., 250000 -> "$250k", 1500000 -> "$1.5M"
func FormatAxisLabel(v float64) string {
	compact := func(div float64, suffix string) string {
		if v == math.Trunc(v/div)*div {
			return fmt.Sprintf("$%.0f%s", v/div, suffix)
		}
		return fmt.Sprintf("$%.1f%s", v/div, suffix)
	}
	switch {
	case v >= 1e6:
		return compact(1e6, "M")
	case v >= 1e3:
		return compact(1e3, "k")
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

package finance

// BreakEven locates the first point where series a and b cross, sampled at
// the given years. The crossing year is interpolated linearly between the
// bracketing samples. Series that only touch, including a shared starting
// value, have not crossed: a run of equal samples counts only when the
// difference changes sign across it, and then its first year is returned.
// ok is false when the series never cross, or when the slices are shorter
// than two samples or differ in length.
func BreakEven(years, a, b []float64) (year float64, ok bool) {
	n := len(years)
	if n < 2 || len(a) != n || len(b) != n {
		return 0, false
	}

	var (
		prev     float64 // last non-zero difference
		prevIdx  = -1
		touchIdx = -1 // first equal sample after prevIdx
	)
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		if d == 0 {
			if prevIdx >= 0 && touchIdx < 0 {
				touchIdx = i
			}
			continue
		}
		if prevIdx >= 0 && (prev < 0) != (d < 0) {
			if touchIdx >= 0 {
				return years[touchIdx], true
			}
			frac := prev / (prev - d)
			return years[prevIdx] + frac*(years[i]-years[prevIdx]), true
		}
		prev, prevIdx, touchIdx = d, i, -1
	}
	return 0, false
}

// BreakEvenFlat is BreakEven against a constant series.
func BreakEvenFlat(years, a []float64, flat float64) (float64, bool) {
	b := make([]float64, len(a))
	for i := range b {
		b[i] = flat
	}
	return BreakEven(years, a, b)
}

// Package anomaly flags outliers in a numeric series with a one-sided
// Tukey fence.
package anomaly

import (
	"slices"
)

// Flags marks values strictly above Q3 + 1.5*IQR. Only the upper tail is
// fenced. Quartiles use the inclusive linear-interpolation convention, so
// results match the usual percentile definition on small series.
func Flags(series []float64) []bool {
	flags := make([]bool, len(series))
	if len(series) == 0 {
		return flags
	}

	q1 := Quantile(series, 0.25)
	q3 := Quantile(series, 0.75)
	upper := q3 + 1.5*(q3-q1)

	for i, v := range series {
		flags[i] = v > upper
	}
	return flags
}

// Quantile computes the p-quantile (0 <= p <= 1) of series by linear
// interpolation between closest ranks.
func Quantile(series []float64, p float64) float64 {
	if len(series) == 0 {
		return 0
	}
	sorted := slices.Clone(series)
	slices.Sort(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}

	pos := p * float64(len(sorted)-1)
	lo := int(pos)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

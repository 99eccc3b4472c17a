// Package aggregate provides the grouped aggregation used by every
// dashboard breakdown: group rows by a key, reduce a value expression per
// group, and order the result.
package aggregate

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// Group is one (group key, reduced value) pair.
type Group[K comparable] struct {
	Key   K       `json:"key"`
	Value float64 `json:"value"`
}

// Reducer folds the extracted values of one group into a single number.
type Reducer func(values []float64) float64

// Sum adds the values; empty group reduces to 0.
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// Mean averages the values; empty group reduces to 0.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}

// Count reduces to the group size regardless of values.
func Count(values []float64) float64 {
	return float64(len(values))
}

// Rate treats values as 0/1 indicators and reduces to a 0-100 percentage.
func Rate(values []float64) float64 {
	return Mean(values) * 100
}

type SortMode int

const (
	// SortValueDesc ranks groups by value, largest first (revenue charts).
	SortValueDesc SortMode = iota
	// SortValueAsc ranks groups by value, smallest first.
	SortValueAsc
	// SortKeyAsc orders groups by key (time series).
	SortKeyAsc
)

// Reduce groups rows by key, applies value to each row and reduce to each
// group, and returns the ordered result.
func Reduce[T any, K cmp.Ordered](rows []T, key func(T) K, value func(T) float64, reduce Reducer, mode SortMode) []Group[K] {
	grouped := lo.GroupBy(rows, key)

	out := make([]Group[K], 0, len(grouped))
	for k, members := range grouped {
		values := lo.Map(members, func(row T, _ int) float64 { return value(row) })
		out = append(out, Group[K]{Key: k, Value: reduce(values)})
	}

	switch mode {
	case SortValueAsc:
		slices.SortFunc(out, func(a, b Group[K]) int {
			if c := cmp.Compare(a.Value, b.Value); c != 0 {
				return c
			}
			return cmp.Compare(a.Key, b.Key)
		})
	case SortKeyAsc:
		slices.SortFunc(out, func(a, b Group[K]) int {
			return cmp.Compare(a.Key, b.Key)
		})
	default:
		slices.SortFunc(out, func(a, b Group[K]) int {
			if c := cmp.Compare(b.Value, a.Value); c != 0 {
				return c
			}
			return cmp.Compare(a.Key, b.Key)
		})
	}
	return out
}

// Top truncates an ordered result to at most n groups.
func Top[K comparable](groups []Group[K], n int) []Group[K] {
	if n <= 0 || len(groups) <= n {
		return groups
	}
	return groups[:n]
}

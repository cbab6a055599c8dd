package layout

import "slices"

// orderMaxInCenter permutes items so the heaviest ends up nearest the
// middle. The items are first stably sorted ascending by weight, then the
// sorted list is walked once, alternately appending to a left half and
// prepending to a right half; concatenating both halves yields light items
// at the edges and the heaviest in the center. The result is always a
// permutation of the input.
func orderMaxInCenter[T any](items []T, weight func(T) float64) []T {
	if len(items) < 2 {
		return slices.Clone(items)
	}

	asc := slices.Clone(items)
	slices.SortStableFunc(asc, func(a, b T) int {
		wa, wb := weight(a), weight(b)
		switch {
		case wa < wb:
			return -1
		case wa > wb:
			return 1
		default:
			return 0
		}
	})

	left := make([]T, 0, (len(asc)+1)/2)
	right := make([]T, 0, len(asc)/2)
	for i, it := range asc {
		if i%2 == 0 {
			left = append(left, it)
		} else {
			right = append([]T{it}, right...)
		}
	}
	return append(left, right...)
}

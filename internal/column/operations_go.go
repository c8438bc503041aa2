package column

import "golang.org/x/exp/constraints"

// CountEqual returns the number of values of a equal to x, comparing one
// element at a time.
func CountEqual[T constraints.Integer](a []T, x T) int {
	n := 0
	for i := range a {
		if a[i] == x {
			n++
		}
	}
	return n
}

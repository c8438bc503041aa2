package column

import "github.com/chaisql/vecbench/internal/simd"

// Int32CountEqual returns the number of values of a equal to x.
// The longest prefix of a made of whole chunks of k.Width() lanes is counted
// by the kernel, the remaining values by CountEqual.
// The result is always equal to CountEqual(a, x).
func Int32CountEqual(a []int32, x int32, k simd.Kernel) int {
	lanes := k.Width().Lanes()
	aligned := len(a) - len(a)%lanes

	n := k.Count(a[:aligned], x)
	n += CountEqual(a[aligned:], x)
	return n
}

// CountEqual returns the number of values of the column equal to x.
func (c *Int32Column) CountEqual(x int32) int {
	return CountEqual(c.Data(), x)
}

// CountEqualVectorized returns the number of values of the column equal to x
// using the given kernel.
func (c *Int32Column) CountEqualVectorized(x int32, k simd.Kernel) int {
	return Int32CountEqual(c.Data(), x, k)
}

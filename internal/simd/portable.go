package simd

import "math/bits"

// eq returns 1 if a == b, 0 otherwise.
// The compiler lowers it to a SETEQ, keeping the lane loops branch free.
func eq(a, b int32) uint32 {
	var r uint32
	if a == b {
		r = 1
	}
	return r
}

func countEqualScalar(data []int32, v int32) int {
	n := 0
	for _, x := range data {
		if x == v {
			n++
		}
	}
	return n
}

// The portable kernels emulate one vector compare per chunk: every lane sets
// its bit in a mask, and the mask is reduced with a popcount.

func countEqual4(data []int32, v int32) int {
	n := 0
	for i := 0; i < len(data); i += 4 {
		c := data[i : i+4 : i+4]
		mask := eq(c[0], v) |
			eq(c[1], v)<<1 |
			eq(c[2], v)<<2 |
			eq(c[3], v)<<3
		n += bits.OnesCount32(mask)
	}
	return n
}

func countEqual8(data []int32, v int32) int {
	n := 0
	for i := 0; i < len(data); i += 8 {
		c := data[i : i+8 : i+8]
		mask := eq(c[0], v) |
			eq(c[1], v)<<1 |
			eq(c[2], v)<<2 |
			eq(c[3], v)<<3 |
			eq(c[4], v)<<4 |
			eq(c[5], v)<<5 |
			eq(c[6], v)<<6 |
			eq(c[7], v)<<7
		n += bits.OnesCount32(mask)
	}
	return n
}

func countEqual16(data []int32, v int32) int {
	n := 0
	for i := 0; i < len(data); i += 16 {
		c := data[i : i+16 : i+16]
		var mask uint32
		for j, x := range c {
			mask |= eq(x, v) << j
		}
		n += bits.OnesCount32(mask)
	}
	return n
}

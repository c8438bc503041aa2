//go:build amd64 && !purego

package simd

import "golang.org/x/sys/cpu"

func init() {
	if !cpu.X86.HasPOPCNT {
		return
	}
	if cpu.X86.HasAVX2 {
		hardware[W256] = hardwareKernel{name: "avx2", count: countEqualAVX2}
	}
	if cpu.X86.HasAVX512F {
		hardware[W512] = hardwareKernel{name: "avx512", count: countEqualAVX512}
	}
}

// countEqualAVX2 compares 8 lanes at a time with VPCMPEQD, extracts the lane
// mask with VMOVMSKPS and adds its popcount. len(data) must be a multiple of 8.
//
//go:noescape
func countEqualAVX2(data []int32, v int32) int

// countEqualAVX512 compares 16 lanes at a time into a mask register and adds
// its popcount. len(data) must be a multiple of 16.
//
//go:noescape
func countEqualAVX512(data []int32, v int32) int

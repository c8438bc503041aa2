// Package simd provides lane-wide equality count kernels over int32 slices.
//
// A kernel processes data in chunks of Width lanes. Hardware kernels are
// selected once, at init, based on the capabilities of the running CPU.
// Every width also has a portable kernel written in Go, used when the CPU
// lacks the required instruction set or when built with the purego tag.
package simd

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// Width is the number of 32-bit lanes processed by one vector operation.
type Width int

const (
	// Auto lets Best pick the widest available width.
	Auto   Width = 0
	Scalar Width = 1
	W128   Width = 4
	W256   Width = 8
	W512   Width = 16
)

// Widths lists every supported width, narrowest first.
var Widths = []Width{Scalar, W128, W256, W512}

// Lanes returns the number of int32 lanes.
func (w Width) Lanes() int {
	return int(w)
}

// Bytes returns the size in bytes of a vector register of this width.
func (w Width) Bytes() int {
	return int(w) * 4
}

// Narrower returns the next narrower width, or Scalar.
func (w Width) Narrower() Width {
	switch w {
	case W512:
		return W256
	case W256:
		return W128
	}
	return Scalar
}

func (w Width) String() string {
	switch w {
	case Auto:
		return "auto"
	case Scalar:
		return "scalar"
	case W128, W256, W512:
		return strconv.Itoa(w.Bytes() * 8)
	}

	return "Width(" + strconv.Itoa(int(w)) + ")"
}

// ParseWidth parses a width expressed in bits ("128", "256", "512"),
// or one of "auto" and "scalar".
func ParseWidth(s string) (Width, error) {
	switch s {
	case "", "auto":
		return Auto, nil
	case "scalar", "32":
		return Scalar, nil
	case "128":
		return W128, nil
	case "256":
		return W256, nil
	case "512":
		return W512, nil
	}

	return 0, errors.Newf("unknown vector width %q", s)
}

// kernelFunc counts the values of data equal to v.
// len(data) is always a multiple of the kernel width.
type kernelFunc func(data []int32, v int32) int

type hardwareKernel struct {
	name  string
	count kernelFunc
}

// hardware holds the kernels usable on this CPU. It is filled by
// architecture specific init functions and never modified afterwards.
var hardware = map[Width]hardwareKernel{}

// A Kernel counts equal values over chunks of a fixed number of lanes.
// The zero Kernel compares one value at a time, like Portable(Scalar).
type Kernel struct {
	width    Width
	name     string
	count    kernelFunc
	hardware bool
}

// Width returns the number of lanes the kernel processes at once.
func (k Kernel) Width() Width {
	if k.count == nil {
		return Scalar
	}
	return k.width
}

// Hardware reports whether the kernel runs native vector instructions.
func (k Kernel) Hardware() bool {
	return k.hardware
}

func (k Kernel) String() string {
	if k.count == nil {
		return "portable/1"
	}
	return k.name
}

// Count returns the number of values of data equal to v.
// len(data) must be a multiple of k.Width().Lanes().
func (k Kernel) Count(data []int32, v int32) int {
	if k.count == nil {
		return countEqualScalar(data, v)
	}
	if len(data)%k.width.Lanes() != 0 {
		panic("simd: data length is not a multiple of the kernel width")
	}
	if len(data) == 0 {
		return 0
	}

	return k.count(data, v)
}

// Select returns the kernel for the given width. Native instructions are used
// if the CPU supports them, otherwise the portable implementation is returned.
// Auto resolves to Best().
func Select(w Width) Kernel {
	if w == Auto {
		w = Best()
	}

	if hk, ok := hardware[w]; ok {
		return Kernel{width: w, name: hk.name, count: hk.count, hardware: true}
	}

	return Portable(w)
}

// Portable returns the pure Go kernel for the given width,
// regardless of the capabilities of the CPU.
func Portable(w Width) Kernel {
	var fn kernelFunc
	switch w {
	case Scalar:
		fn = countEqualScalar
	case W128:
		fn = countEqual4
	case W256:
		fn = countEqual8
	case W512:
		fn = countEqual16
	default:
		panic("simd: unsupported width " + w.String())
	}

	return Kernel{width: w, name: "portable/" + strconv.Itoa(w.Lanes()), count: fn}
}

// Supported reports whether a hardware kernel exists for w on this CPU.
func Supported(w Width) bool {
	_, ok := hardware[w]
	return ok
}

// Best returns the widest width backed by a hardware kernel.
// If there is none, W128 is returned and runs the portable kernel.
func Best() Width {
	for i := len(Widths) - 1; i >= 0; i-- {
		if Supported(Widths[i]) {
			return Widths[i]
		}
	}

	return W128
}

package column

import (
	"unsafe"

	"github.com/cockroachdb/errors"
)

// maxInt32Values bounds the size of a column so that the allocation size,
// padding included, cannot overflow.
const maxInt32Values = 1 << 40

// allocInt32 returns a zeroed slice of n int32 whose first element is aligned
// to alignment bytes.
// The Go allocator only guarantees the alignment of the element type, so the
// slice is carved out of a larger one, skipping the first few elements.
// An allocation the runtime cannot satisfy aborts the process.
func allocInt32(n, alignment int) ([]int32, error) {
	if n < 0 || n > maxInt32Values {
		return nil, errors.Newf("invalid column size %d", n)
	}
	if err := ValidateAlignment(alignment); err != nil {
		return nil, err
	}

	const size = int(unsafe.Sizeof(int32(0)))
	pad := alignment/size - 1

	buf := make([]int32, n+pad)
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	off := 0
	if rem := int(addr % uintptr(alignment)); rem != 0 {
		off = (alignment - rem) / size
	}

	return buf[off : off+n : off+n], nil
}

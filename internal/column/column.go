package column

import (
	"unsafe"

	"github.com/cockroachdb/errors"
)

// DefaultAlignment is the alignment of a 512-bit vector register.
const DefaultAlignment = 64

// Int32Column is an immutable column of int32 values whose first element
// is aligned to a fixed boundary.
// The column is written once, by the fill function given to NewInt32Column,
// and is read-only afterwards.
type Int32Column struct {
	// data is the underlying data for the column.
	// Its capacity is the physical size of the column.
	data      []int32
	len       int
	alignment int
}

// NewInt32Column allocates a column of n values aligned to alignment bytes and
// sets every value to fill(i). A nil fill leaves the column zeroed.
func NewInt32Column(n, alignment int, fill func(i int) int32) (*Int32Column, error) {
	data, err := allocInt32(n, alignment)
	if err != nil {
		return nil, err
	}

	if fill != nil {
		for i := range data {
			data[i] = fill(i)
		}
	}

	return &Int32Column{
		data:      data,
		len:       n,
		alignment: alignment,
	}, nil
}

// Int32ColumnFrom copies values into a new column aligned to alignment bytes.
func Int32ColumnFrom(values []int32, alignment int) (*Int32Column, error) {
	return NewInt32Column(len(values), alignment, func(i int) int32 {
		return values[i]
	})
}

// Len returns the logical number of values in the column.
func (c *Int32Column) Len() int {
	return c.len
}

// Cap returns the physical capacity of the column.
func (c *Int32Column) Cap() int {
	return cap(c.data)
}

// Alignment returns the alignment, in bytes, of the first value.
func (c *Int32Column) Alignment() int {
	return c.alignment
}

// Data returns a view of the values of the column.
// Callers must not modify it.
func (c *Int32Column) Data() []int32 {
	return c.data[:c.len:c.len]
}

// Addr returns the address of the first value, or 0 for an empty or
// released column.
func (c *Int32Column) Addr() uintptr {
	if cap(c.data) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(c.data)))
}

// Release drops the reference to the underlying buffer.
// The column is empty afterwards.
func (c *Int32Column) Release() {
	c.data = nil
	c.len = 0
}

// IsAligned reports whether addr is a multiple of alignment.
func IsAligned(addr uintptr, alignment int) bool {
	return alignment > 0 && addr%uintptr(alignment) == 0
}

// ValidateAlignment returns an error unless alignment is a power of two
// multiple of the size of an int32.
func ValidateAlignment(alignment int) error {
	if alignment < 4 || alignment&(alignment-1) != 0 {
		return errors.Newf("alignment must be a power of two greater or equal to 4, got %d", alignment)
	}
	return nil
}

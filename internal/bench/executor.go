package bench

import (
	"github.com/chaisql/vecbench/internal/column"
	"github.com/chaisql/vecbench/internal/simd"
)

// An Executor answers the query SELECT COUNT(*) FROM col WHERE x = v.
// Executors never modify data.
type Executor interface {
	// Name is used as the section header of the report.
	Name() string
	Count(data []int32, v int32) int
}

// ScalarExecutor compares one value at a time.
type ScalarExecutor struct{}

func (ScalarExecutor) Name() string {
	return "SCALAR"
}

func (ScalarExecutor) Count(data []int32, v int32) int {
	return column.CountEqual(data, v)
}

// VectorizedExecutor compares Kernel.Width() values at a time and
// finishes the values that do not fill a whole chunk with a scalar loop.
type VectorizedExecutor struct {
	Kernel simd.Kernel
}

func (VectorizedExecutor) Name() string {
	return "SIMD"
}

func (e VectorizedExecutor) Count(data []int32, v int32) int {
	return column.Int32CountEqual(data, v, e.Kernel)
}

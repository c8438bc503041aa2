package bench

import (
	"github.com/chaisql/vecbench/internal/column"
	"github.com/chaisql/vecbench/internal/simd"
	"github.com/cockroachdb/errors"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Config holds every parameter of a benchmark run. The same value is used
// to generate the dataset and to drive both executors.
type Config struct {
	// Size is the number of values in the column.
	Size int
	// Alignment of the column, in bytes.
	Alignment int
	// Reps is the number of timed trials per executor.
	Reps int
	// Steps is the number of counting passes per trial.
	Steps int
	// Predicate is the value counted by the query.
	Predicate int32
	// Width of the vectorized executor. Auto selects the widest kernel
	// the CPU supports within the alignment.
	Width simd.Width
	// Seed of the data generator.
	Seed uint64
	// Cardinality bounds generated values to [0, Cardinality).
	// Zero means the full int32 range.
	Cardinality int
	// Format of the trial lines: text, json or csv.
	Format string
}

// DefaultConfig returns the configuration of the wide target:
// one million values aligned for 512-bit vectors, 3 trials of 10 steps
// counting the value 3.
func DefaultConfig() Config {
	return Config{
		Size:      1_000_000,
		Alignment: column.DefaultAlignment,
		Reps:      3,
		Steps:     10,
		Predicate: 3,
		Width:     simd.Auto,
		Seed:      1,
		Format:    FormatText,
	}
}

// A Target is a pair of vector width and matching column alignment.
type Target struct {
	Width     simd.Width
	Alignment int
}

// Targets lists the named vector targets.
var Targets = map[string]Target{
	"narrow": {Width: simd.W256, Alignment: 32},
	"wide":   {Width: simd.W512, Alignment: 64},
}

// WithTarget returns a copy of cfg using the width and alignment of the named target.
func (cfg Config) WithTarget(name string) (Config, error) {
	t, ok := Targets[name]
	if !ok {
		return cfg, errors.Newf("unknown target %q", name)
	}

	cfg.Width = t.Width
	cfg.Alignment = t.Alignment
	return cfg, nil
}

// ResolvedWidth returns the width used by the vectorized executor.
// For Auto, it is the widest hardware width whose vectors fit in the alignment.
func (cfg Config) ResolvedWidth() simd.Width {
	if cfg.Width != simd.Auto {
		return cfg.Width
	}

	w := simd.Best()
	for w > simd.Scalar && w.Bytes() > cfg.Alignment {
		w = w.Narrower()
	}
	return w
}

// Kernel returns the kernel of the vectorized executor.
func (cfg Config) Kernel() simd.Kernel {
	return simd.Select(cfg.ResolvedWidth())
}

// Validate returns an error if the configuration cannot be run.
func (cfg Config) Validate() error {
	if cfg.Size <= 0 {
		return errors.Newf("size must be positive, got %d", cfg.Size)
	}
	if cfg.Reps <= 0 {
		return errors.Newf("reps must be positive, got %d", cfg.Reps)
	}
	if cfg.Steps <= 0 {
		return errors.Newf("steps must be positive, got %d", cfg.Steps)
	}
	if cfg.Cardinality < 0 {
		return errors.Newf("cardinality must not be negative, got %d", cfg.Cardinality)
	}
	if err := column.ValidateAlignment(cfg.Alignment); err != nil {
		return err
	}

	switch cfg.Width {
	case simd.Auto, simd.Scalar, simd.W128, simd.W256, simd.W512:
	default:
		return errors.Newf("unsupported width %s", cfg.Width)
	}
	if w := cfg.ResolvedWidth(); w.Bytes() > cfg.Alignment {
		return errors.Newf("alignment of %d bytes is too small for %s-bit vectors", cfg.Alignment, w)
	}

	switch cfg.Format {
	case FormatText, FormatJSON, FormatCSV:
	default:
		return errors.Newf("unknown format %q", cfg.Format)
	}

	return nil
}

// Package bench times the query SELECT COUNT(*) FROM col WHERE x = v over a
// generated int32 column, once with a scalar executor and once with a
// vectorized one.
//
// Each executor runs Reps trials. A trial repeats the count Steps times and
// reports the elapsed time divided by Steps. The aggregate is reset at the
// start of every step, for both executors, so a trial's count is always the
// answer to the query.
package bench

import (
	"context"
	"io"
	"time"

	"github.com/chaisql/vecbench/internal/column"
	"github.com/sirupsen/logrus"
)

// sink receives every aggregate so the compiler cannot discard the
// counting loops.
var sink int

// Runner runs the benchmark described by its configuration.
type Runner struct {
	cfg    Config
	logger logrus.FieldLogger
	report *Reporter
}

// NewRunner validates cfg and returns a runner writing its results to w.
func NewRunner(cfg Config, w io.Writer, logger logrus.FieldLogger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	report, err := NewReporter(w, cfg.Format)
	if err != nil {
		return nil, err
	}

	return &Runner{
		cfg:    cfg,
		logger: logger,
		report: report,
	}, nil
}

// Run generates the dataset, then measures the scalar executor and the
// vectorized executor against it.
func (r *Runner) Run(ctx context.Context) error {
	col, err := Generate(r.cfg, r.logger)
	if err != nil {
		return err
	}
	defer col.Release()

	k := r.cfg.Kernel()
	l := r.logger.WithFields(logrus.Fields{
		"kernel": k.String(),
		"lanes":  k.Width().Lanes(),
	})
	if k.Hardware() {
		l.Info("using hardware vector kernel")
	} else {
		l.Warn("no hardware kernel for this width, using the portable kernel")
	}

	executors := []Executor{
		ScalarExecutor{},
		VectorizedExecutor{Kernel: k},
	}

	for _, exec := range executors {
		if err := r.report.Section(exec.Name()); err != nil {
			return err
		}

		err := r.Measure(ctx, col, exec, r.report.Trial)
		if err != nil {
			return err
		}
	}

	return nil
}

// Measure runs the trials of exec against col and passes each result to fn
// as soon as it is measured.
// The context is only checked between trials: a trial always runs to completion.
func (r *Runner) Measure(ctx context.Context, col *column.Int32Column, exec Executor, fn func(Trial) error) error {
	data := col.Data()
	predicate := r.cfg.Predicate
	steps := r.cfg.Steps

	for rep := 0; rep < r.cfg.Reps; rep++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		var aggregate int
		start := time.Now()
		for step := 0; step < steps; step++ {
			aggregate = exec.Count(data, predicate)
		}
		elapsed := time.Since(start) / time.Duration(steps)

		if aggregate < 0 {
			r.logger.WithFields(logrus.Fields{
				"executor":  exec.Name(),
				"run":       rep + 1,
				"aggregate": aggregate,
			}).Error("negative aggregate")
		}
		sink += aggregate

		err := fn(Trial{
			Executor: exec.Name(),
			Run:      rep + 1,
			Elapsed:  elapsed,
			Count:    aggregate,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

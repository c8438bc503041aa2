package bench

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/chaisql/vecbench/internal/column"
	"github.com/chaisql/vecbench/internal/simd"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Size = 10_003
	cfg.Reps = 2
	cfg.Steps = 3
	cfg.Cardinality = 8
	return cfg
}

func TestRunnerRun(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRunner(smallConfig(), &buf, discard())
	require.NoError(t, err)

	require.NoError(t, r.Run(context.Background()))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	require.Equal(t, "SCALAR BENCHMARK", lines[0])
	require.Equal(t, "", lines[3])
	require.Equal(t, "SIMD BENCHMARK", lines[4])

	trial := regexp.MustCompile(`^ Run (\d) : \d+(\.\d+)?s$`)
	for _, i := range []int{1, 2, 5, 6} {
		require.Regexp(t, trial, lines[i])
	}
	require.True(t, strings.HasPrefix(lines[2], " Run 2 : "))
	require.True(t, strings.HasPrefix(lines[6], " Run 2 : "))
}

func TestRunnerRunLogs(t *testing.T) {
	logger, hook := test.NewNullLogger()
	cfg := smallConfig()
	cfg.Width = simd.W512

	r, err := NewRunner(cfg, &bytes.Buffer{}, logger)
	require.NoError(t, err)
	require.NoError(t, r.Run(context.Background()))

	var messages []string
	for _, e := range hook.AllEntries() {
		messages = append(messages, e.Message)
	}
	require.Contains(t, messages, "Generating data...")
	require.Contains(t, messages, "Finished generating data!")
	if simd.Supported(simd.W512) {
		require.Contains(t, messages, "using hardware vector kernel")
	} else {
		require.Contains(t, messages, "no hardware kernel for this width, using the portable kernel")
	}
}

func TestNewRunnerInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Steps = 0

	_, err := NewRunner(cfg, &bytes.Buffer{}, discard())
	require.Error(t, err)
}

func TestMeasureExecutorsAgree(t *testing.T) {
	cfg := smallConfig()
	cfg.Reps = 3
	col, err := Generate(cfg, discard())
	require.NoError(t, err)

	r, err := NewRunner(cfg, &bytes.Buffer{}, discard())
	require.NoError(t, err)

	want := col.CountEqual(cfg.Predicate)
	require.Positive(t, want)

	for _, w := range simd.Widths {
		executors := []Executor{ScalarExecutor{}, VectorizedExecutor{Kernel: simd.Select(w)}, VectorizedExecutor{Kernel: simd.Portable(w)}}
		for _, exec := range executors {
			var trials []Trial
			err := r.Measure(context.Background(), col, exec, func(tr Trial) error {
				trials = append(trials, tr)
				return nil
			})
			require.NoError(t, err)
			require.Len(t, trials, cfg.Reps)

			for i, trial := range trials {
				require.Equal(t, exec.Name(), trial.Executor)
				require.Equal(t, i+1, trial.Run)
				require.Equal(t, want, trial.Count, "%s width=%s", exec.Name(), w)
				require.Positive(t, trial.Elapsed)
			}
		}
	}
}

func TestMeasureScenarios(t *testing.T) {
	const n = 1_000_000

	tests := []struct {
		name string
		fill func(int) int32
		want int
	}{
		{"all match", func(int) int32 { return 3 }, n},
		{"no match", func(i int) int32 { return int32(i%1000) + 10 }, 0},
	}

	cfg := DefaultConfig()
	cfg.Reps = 1
	cfg.Steps = 1
	r, err := NewRunner(cfg, &bytes.Buffer{}, discard())
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, err := column.NewInt32Column(n, 64, tt.fill)
			require.NoError(t, err)

			for _, exec := range []Executor{ScalarExecutor{}, VectorizedExecutor{Kernel: cfg.Kernel()}} {
				err := r.Measure(context.Background(), col, exec, func(tr Trial) error {
					require.Equal(t, tt.want, tr.Count, exec.Name())
					return nil
				})
				require.NoError(t, err)
			}
		})
	}
}

func TestVectorizedExecutorZeroKernel(t *testing.T) {
	var exec VectorizedExecutor
	require.Equal(t, 2, exec.Count([]int32{3, 3, 1}, 3))
	require.Equal(t, "SIMD", exec.Name())
}

type negativeExecutor struct{}

func (negativeExecutor) Name() string                    { return "BROKEN" }
func (negativeExecutor) Count(data []int32, v int32) int { return -1 }

func TestMeasureNegativeAggregate(t *testing.T) {
	logger, hook := test.NewNullLogger()
	cfg := smallConfig()
	cfg.Reps = 1

	r, err := NewRunner(cfg, &bytes.Buffer{}, logger)
	require.NoError(t, err)
	col, err := column.NewInt32Column(16, 64, nil)
	require.NoError(t, err)

	err = r.Measure(context.Background(), col, negativeExecutor{}, func(Trial) error { return nil })
	require.NoError(t, err)

	e := hook.LastEntry()
	require.NotNil(t, e)
	require.Equal(t, logrus.ErrorLevel, e.Level)
	require.Equal(t, "negative aggregate", e.Message)
	require.Equal(t, "BROKEN", e.Data["executor"])
}

func TestMeasureCanceled(t *testing.T) {
	cfg := smallConfig()
	r, err := NewRunner(cfg, &bytes.Buffer{}, discard())
	require.NoError(t, err)
	col, err := column.NewInt32Column(16, 64, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var trials int
	err = r.Measure(ctx, col, ScalarExecutor{}, func(Trial) error {
		trials++
		cancel()
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, trials)
}

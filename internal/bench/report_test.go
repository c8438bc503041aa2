package bench

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var reportTrials = []Trial{
	{Executor: "SCALAR", Run: 1, Elapsed: 1500 * time.Microsecond, Count: 7},
	{Executor: "SCALAR", Run: 2, Elapsed: 2 * time.Millisecond, Count: 7},
	{Executor: "SIMD", Run: 1, Elapsed: 250 * time.Microsecond, Count: 7},
}

func writeReport(t *testing.T, format string) string {
	t.Helper()

	var buf bytes.Buffer
	r, err := NewReporter(&buf, format)
	require.NoError(t, err)

	section := ""
	for _, tr := range reportTrials {
		if tr.Executor != section {
			section = tr.Executor
			require.NoError(t, r.Section(section))
		}
		require.NoError(t, r.Trial(tr))
	}

	return buf.String()
}

func TestReporterText(t *testing.T) {
	want := `SCALAR BENCHMARK
 Run 1 : 0.0015s
 Run 2 : 0.002s

SIMD BENCHMARK
 Run 1 : 0.00025s
`
	require.Equal(t, want, writeReport(t, FormatText))
}

func TestReporterJSON(t *testing.T) {
	dec := json.NewDecoder(bytes.NewReader([]byte(writeReport(t, FormatJSON))))

	var got []map[string]any
	for {
		var m map[string]any
		err := dec.Decode(&m)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, m)
	}

	want := []map[string]any{
		{"executor": "SCALAR", "run": 1.0, "seconds": 0.0015, "averageDuration": "1.5ms"},
		{"executor": "SCALAR", "run": 2.0, "seconds": 0.002, "averageDuration": "2ms"},
		{"executor": "SIMD", "run": 1.0, "seconds": 0.00025, "averageDuration": "250µs"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestReporterCSV(t *testing.T) {
	rd := csv.NewReader(bytes.NewReader([]byte(writeReport(t, FormatCSV))))
	rd.Comma = ';'
	got, err := rd.ReadAll()
	require.NoError(t, err)

	want := [][]string{
		{"executor", "run", "seconds", "milliseconds"},
		{"SCALAR", "1", "0.0015", "1.5"},
		{"SCALAR", "2", "0.002", "2"},
		{"SIMD", "1", "0.00025", "0.25"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestNewReporterUnknownFormat(t *testing.T) {
	_, err := NewReporter(io.Discard, "xml")
	require.Error(t, err)
}

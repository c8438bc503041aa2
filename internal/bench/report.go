package bench

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
)

// Trial is the result of one timed measurement.
type Trial struct {
	// Executor is the name of the executor that ran the trial.
	Executor string
	// Run is the 1-based index of the trial.
	Run int
	// Elapsed is the duration of a single counting pass.
	Elapsed time.Duration
	// Count is the aggregate of the last pass. It is never reported.
	Count int
}

type encoder func(Trial) error

// Reporter writes benchmark sections and trials as they complete.
type Reporter struct {
	w        io.Writer
	format   string
	enc      encoder
	sections int
}

// NewReporter returns a reporter writing to w in the given format.
func NewReporter(w io.Writer, format string) (*Reporter, error) {
	r := Reporter{w: w, format: format}

	switch format {
	case FormatText:
		r.enc = newTextWriter(w)
	case FormatJSON:
		r.enc = newJSONWriter(w)
	case FormatCSV:
		r.enc = newCSVWriter(w)
	default:
		return nil, errors.Newf("unknown format %q", format)
	}

	return &r, nil
}

// Section starts the results of a new executor.
// Only the text format prints section headers.
func (r *Reporter) Section(name string) error {
	defer func() { r.sections++ }()

	if r.format != FormatText {
		return nil
	}

	if r.sections > 0 {
		if _, err := fmt.Fprintln(r.w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(r.w, "%s BENCHMARK\n", name)
	return err
}

// Trial writes the result of a trial.
func (r *Reporter) Trial(t Trial) error {
	return r.enc(t)
}

func newTextWriter(w io.Writer) encoder {
	return func(t Trial) error {
		_, err := fmt.Fprintf(w, " Run %d : %ss\n", t.Run, secondsToString(t.Elapsed))
		return err
	}
}

func newJSONWriter(w io.Writer) encoder {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return func(t Trial) error {
		return enc.Encode(map[string]interface{}{
			"executor":        t.Executor,
			"run":             t.Run,
			"seconds":         t.Elapsed.Seconds(),
			"averageDuration": t.Elapsed.String(),
		})
	}
}

func newCSVWriter(w io.Writer) encoder {
	enc := csv.NewWriter(w)
	enc.Comma = ';'
	header := []string{"executor", "run", "seconds", "milliseconds"}
	var headerWritten bool

	return func(t Trial) error {
		if !headerWritten {
			err := enc.Write(header)
			if err != nil {
				return err
			}
			headerWritten = true
		}
		err := enc.Write([]string{
			t.Executor,
			strconv.Itoa(t.Run),
			secondsToString(t.Elapsed),
			strconv.FormatFloat(durationToMilliseconds(t.Elapsed), 'f', -1, 64),
		})
		if err != nil {
			return err
		}
		enc.Flush()
		return enc.Error()
	}
}

func durationToMilliseconds(d time.Duration) float64 {
	m := d / time.Millisecond
	nsec := d % time.Millisecond
	return float64(m) + float64(nsec)/1e6
}

func secondsToString(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}

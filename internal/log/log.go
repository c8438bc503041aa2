// Package log configures the logrus logger used for progress and diagnostics.
package log

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// Config contains the configuration of a logger.
type Config struct {
	// Format is either "text" or "json".
	Format string
	// Level is the lowest level that will be emitted: trace, debug, info, warn or error.
	Level string
}

// DefaultConfig returns a text logger emitting info messages and above.
func DefaultConfig() Config {
	return Config{
		Format: "text",
		Level:  "info",
	}
}

// New returns a logger writing to w, configured by cfg.
func (cfg Config) New(w io.Writer) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetOutput(w)

	if cfg.Level != "" {
		level, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, errors.Wrap(err, "invalid log level")
		}
		l.SetLevel(level)
	}

	switch cfg.Format {
	case "", "text":
		// default, do nothing
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, errors.Newf("log format must be either text or json, got %q", cfg.Format)
	}

	return l, nil
}

package bench

import (
	"math/rand/v2"

	"github.com/chaisql/vecbench/internal/column"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// Generate allocates the column described by cfg and fills it with
// pseudo-random values. The same seed always produces the same column.
func Generate(cfg Config, logger logrus.FieldLogger) (*column.Int32Column, error) {
	r := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	next := func(int) int32 {
		return int32(r.Uint32())
	}
	if cfg.Cardinality > 0 {
		n := int32(min(cfg.Cardinality, 1<<31-1))
		next = func(int) int32 {
			return r.Int32N(n)
		}
	}

	logger.WithFields(logrus.Fields{
		"size":      cfg.Size,
		"alignment": cfg.Alignment,
		"seed":      cfg.Seed,
	}).Info("Generating data...")

	col, err := column.NewInt32Column(cfg.Size, cfg.Alignment, next)
	if err != nil {
		return nil, errors.Wrap(err, "cannot generate column")
	}

	logger.WithField("address", col.Addr()).Info("Finished generating data!")
	return col, nil
}

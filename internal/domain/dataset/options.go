package dataset

import "math/rand"

// Option applies a configuration option to the Dataset.
type Option func(*Dataset)

// WithRand sets the random source used by Random. Tests use a fixed seed
// for deterministic sampling.
func WithRand(rng *rand.Rand) Option {
	return func(d *Dataset) {
		if rng != nil {
			d.rng = rng
		}
	}
}

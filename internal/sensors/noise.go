package sensors

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// NoiseSource produces the zero-mean Gaussian noise (stddev 1.0) that
// spec §4.B adds to every line-sensor reading. It is deterministic given
// a seed, which is what makes two runs with identical (wasm bytes,
// total_time_us, track, RNG seed) byte-identical (spec §8.7).
type NoiseSource struct {
	dist distuv.Normal
}

// NewNoiseSource builds a seeded Gaussian noise source. Each simulation
// run owns exactly one NoiseSource; it must never be shared across
// concurrent runs.
func NewNoiseSource(seed uint64) *NoiseSource {
	return &NoiseSource{
		dist: distuv.Normal{
			Mu:    0,
			Sigma: 1.0,
			Src:   rand.NewSource(int64(seed)),
		},
	}
}

// Sample draws the next noise value.
func (n *NoiseSource) Sample() float32 {
	return float32(n.dist.Rand())
}

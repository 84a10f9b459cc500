// Package sampling draws random samples without replacement.
package sampling

import (
	"math/rand/v2"
	"sync"
)

// DefaultSize is the number of elements drawn when no size is configured.
const DefaultSize = 5

// Sampler draws independent random samples. It is safe for concurrent use.
type Sampler struct {
	mu   sync.Mutex
	rng  *rand.Rand
	size int
}

// Option applies a configuration option to the Sampler.
type Option func(*Sampler)

// WithSize sets the maximum sample size. Values below 1 keep the default.
func WithSize(n int) Option {
	return func(s *Sampler) {
		if n > 0 {
			s.size = n
		}
	}
}

// WithSeed makes the sequence of samples reproducible. Zero keeps a random seed.
func WithSeed(seed uint64) Option {
	return func(s *Sampler) {
		if seed != 0 {
			s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // sampling is not security sensitive
		}
	}
}

// New creates a Sampler.
func New(opts ...Option) *Sampler {
	s := &Sampler{
		rng:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint:gosec // sampling is not security sensitive
		size: DefaultSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Size returns the configured maximum sample size.
func (s *Sampler) Size() int { return s.size }

// Indices returns min(Size(), n) distinct indices in [0, n), in random order.
func (s *Sampler) Indices(n int) []int {
	k := min(s.size, max(n, 0))
	if k == 0 {
		return []int{}
	}

	// Partial Fisher-Yates over an index table: only the first k slots are settled.
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	s.mu.Lock()
	for i := 0; i < k; i++ {
		j := i + s.rng.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	s.mu.Unlock()

	return idx[:k:k]
}

// Sample returns up to Size() elements of population drawn without replacement.
// The population is not modified.
func Sample[T any](s *Sampler, population []T) []T {
	idx := s.Indices(len(population))
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = population[j]
	}
	return out
}

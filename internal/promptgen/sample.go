package promptgen

import (
	"math/rand"
	"sync"
	"time"
)

// Sampler draws unordered subsets from keyword pools without replacement.
// The RNG is injected so tests can pin the selection while production
// callers get fresh variety per call.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler returns a sampler seeded from the given value.
func NewSampler(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// NewRandomSampler returns a sampler seeded from the current time.
func NewRandomSampler() *Sampler {
	return NewSampler(time.Now().UnixNano())
}

// Pick returns k distinct elements of pool. When k exceeds the pool size the
// whole pool is returned in shuffled order.
func (s *Sampler) Pick(pool []string, k int) []string {
	if k <= 0 || len(pool) == 0 {
		return nil
	}
	if k > len(pool) {
		k = len(pool)
	}
	s.mu.Lock()
	perm := s.rng.Perm(len(pool))
	s.mu.Unlock()
	out := make([]string, 0, k)
	for _, idx := range perm[:k] {
		out = append(out, pool[idx])
	}
	return out
}

// Seed returns a provider seed in [0, 1e6), matching the variety window the
// image backends expect.
func (s *Sampler) Seed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(1_000_000)
}

package generator

import (
	"math/rand"
)

// DefaultSeed is the seed used when none is supplied.
const DefaultSeed int64 = 42

// Source is the single source of randomness for a generation run.
// Every draw (ids, categories, templates, shuffles, samples) goes through it,
// so a fixed seed and a fixed draw order reproduce the same output.
type Source struct {
	rng *rand.Rand
}

// NewSource creates a Source seeded with seed.
func NewSource(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Intn returns a value in [0, n). n must be positive.
func (s *Source) Intn(n int) int {
	return s.rng.Intn(n)
}

// Between returns a value in [lo, hi]. If hi < lo the range collapses to lo.
func (s *Source) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

// Choice picks one element of items uniformly.
func (s *Source) Choice(items []string) string {
	return items[s.rng.Intn(len(items))]
}

// Shuffle permutes n elements in place using swap.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.rng.Shuffle(n, swap)
}

// SampleIndexes draws k distinct indexes from [0, n) uniformly without replacement,
// in selection order. k is clamped to n.
func (s *Source) SampleIndexes(n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	// Partial Fisher-Yates: only the first k slots are settled.
	for i := 0; i < k; i++ {
		j := i + s.rng.Intn(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// Read fills p with random bytes so the Source can back byte-oriented
// consumers such as uuid generation.
func (s *Source) Read(p []byte) (int, error) {
	return s.rng.Read(p)
}

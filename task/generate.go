package task

import "math/rand/v2"

// seedMix decorrelates the two PCG state words derived from one seed.
const seedMix = 0x9E3779B97F4A7C15

// Generator draws tasks from a seeded deterministic source. Two generators
// built from the same seed produce the same sequence. A Generator is not
// safe for concurrent use.
type Generator struct {
	r *rand.Rand
}

// NewGenerator creates a generator seeded with seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{r: rand.New(rand.NewPCG(seed, seed^seedMix))}
}

// Next draws a kind uniformly, then draws its operands from the kind's
// fixed ranges.
func (g *Generator) Next() Task {
	k := Kind(g.r.IntN(int(NumKinds)))
	return kinds[k].generate(g.r)
}

// Generate returns a batch of exactly n tasks in generation order.
// n <= 0 yields an empty batch.
func Generate(n int, seed uint64) []Task {
	if n < 0 {
		n = 0
	}
	g := NewGenerator(seed)
	batch := make([]Task, n)
	for i := range batch {
		batch[i] = g.Next()
	}
	return batch
}

// Histogram counts tasks per kind.
func Histogram(batch []Task) map[Kind]int {
	counts := make(map[Kind]int, NumKinds)
	for _, t := range batch {
		counts[t.Kind()]++
	}
	return counts
}

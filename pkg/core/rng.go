package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Chance returns true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.r.Float64() < p
}

// IntN returns a random int in [0, n).
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }

// FillLiveness sets each cell to state with probability p and to 0 otherwise.
func FillLiveness(r *RNG, g *Grid, p float64, state int) {
	for i := range g.data {
		if r.Chance(p) {
			g.data[i] = state
			continue
		}
		g.data[i] = 0
	}
}

// RandomGrid builds a rows x cols grid seeded by FillLiveness.
func RandomGrid(rows, cols int, p float64, state int, seed int64) (*Grid, error) {
	if p < 0 || p > 1 {
		return nil, Configf("probability", "must be within [0,1], got %g", p)
	}
	if state <= 0 {
		return nil, Configf("state", "must be positive, got %d", state)
	}
	g, err := NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}
	FillLiveness(NewRNG(seed), g, p, state)
	return g, nil
}

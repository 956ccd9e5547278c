// Package engine computes successive generations of a decaying life-like
// cellular automaton. Two interchangeable strategies are provided: a direct
// per-cell evaluator spread over a worker pool and a single-threaded
// convolution evaluator. For the same grid and rule set both return identical
// grids.
package engine

import (
	"strings"

	"decay-ca/pkg/core"
	"decay-ca/pkg/rules"
)

// Engine advances a grid by one generation. Step never mutates its input and
// always returns a freshly allocated grid of the same shape.
type Engine interface {
	Name() string
	Step(g *core.Grid) *core.Grid
}

// Algorithm selects an Engine implementation.
type Algorithm uint8

const (
	// Direct counts neighbours cell by cell across parallel row bands.
	Direct Algorithm = iota
	// Convolution convolves the alive mask with the kernel and applies the
	// rule with mask arithmetic.
	Convolution
)

// ParseAlgorithm accepts std, standard, direct, conv and convolution in any case.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "std", "standard", "direct":
		return Direct, nil
	case "conv", "convolution":
		return Convolution, nil
	}
	return 0, core.Configf("algorithm", "unknown algorithm %q (want standard or convolution)", s)
}

func (a Algorithm) String() string {
	switch a {
	case Direct:
		return "standard"
	case Convolution:
		return "convolution"
	}
	return "unknown"
}

// New builds the engine for alg. The direct engine uses one worker per CPU.
func New(alg Algorithm, rs *rules.RuleSet) (Engine, error) {
	if rs == nil {
		return nil, core.Configf("rules", "missing")
	}
	switch alg {
	case Direct:
		return NewDirect(rs, 0), nil
	case Convolution:
		return NewConvolution(rs), nil
	}
	return nil, core.Configf("algorithm", "unsupported value %d", alg)
}

// Step validates g against rs and advances it one generation with alg.
func Step(g *core.Grid, rs *rules.RuleSet, alg Algorithm) (*core.Grid, error) {
	e, err := New(alg, rs)
	if err != nil {
		return nil, err
	}
	if err := rs.Validate(g); err != nil {
		return nil, err
	}
	return e.Step(g), nil
}

// NeighborCount returns the kernel-weighted number of live cells around
// (row, col). Positions outside the grid count as dead.
func NeighborCount(g *core.Grid, k rules.Kernel, row, col int) int {
	n := 0
	for _, o := range k.Offsets {
		if g.At(row+o.DRow, col+o.DCol) > 0 {
			n += o.Weight
		}
	}
	return n
}

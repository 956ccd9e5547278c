package engine

import (
	"iter"

	"decay-ca/pkg/core"
	"decay-ca/pkg/rules"
)

// Sequence is a lazy, finite run of generations g0..gN. Every call to All
// restarts from the initial grid, and every yielded grid is an independent
// snapshot owned by the caller.
type Sequence struct {
	initial    *core.Grid
	engine     Engine
	iterations int
}

// Generate validates the inputs and returns the sequence of iterations+1
// grids starting at initial.
func Generate(initial *core.Grid, rs *rules.RuleSet, alg Algorithm, iterations int) (*Sequence, error) {
	e, err := New(alg, rs)
	if err != nil {
		return nil, err
	}
	if err := rs.Validate(initial); err != nil {
		return nil, err
	}
	return NewSequence(initial, e, iterations)
}

// NewSequence wraps an already constructed engine. The initial grid is
// copied, so later changes to it do not affect the sequence.
func NewSequence(initial *core.Grid, e Engine, iterations int) (*Sequence, error) {
	if initial == nil {
		return nil, core.Configf("grid", "missing")
	}
	if iterations < 0 {
		return nil, core.Configf("iterations", "must not be negative, got %d", iterations)
	}
	return &Sequence{initial: initial.Clone(), engine: e, iterations: iterations}, nil
}

// Len is the number of grids the sequence yields.
func (s *Sequence) Len() int { return s.iterations + 1 }

// Engine returns the engine that advances the sequence.
func (s *Sequence) Engine() Engine { return s.engine }

// All yields (generation, grid) pairs. Stopping early leaves nothing behind.
func (s *Sequence) All() iter.Seq2[int, *core.Grid] {
	return func(yield func(int, *core.Grid) bool) {
		cur := s.initial
		if !yield(0, cur.Clone()) {
			return
		}
		for gen := 1; gen <= s.iterations; gen++ {
			cur = s.engine.Step(cur)
			if !yield(gen, cur.Clone()) {
				return
			}
		}
	}
}

// Grids yields the grids without their generation numbers.
func (s *Sequence) Grids() iter.Seq[*core.Grid] {
	return func(yield func(*core.Grid) bool) {
		for _, g := range s.All() {
			if !yield(g) {
				return
			}
		}
	}
}

// Collect materializes the whole sequence.
func (s *Sequence) Collect() []*core.Grid {
	out := make([]*core.Grid, 0, s.Len())
	for g := range s.Grids() {
		out = append(out, g)
	}
	return out
}

// Last runs the sequence to the end and returns the final grid.
func (s *Sequence) Last() *core.Grid {
	var last *core.Grid
	for g := range s.Grids() {
		last = g
	}
	return last
}

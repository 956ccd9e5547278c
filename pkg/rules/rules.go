package rules

import (
	"fmt"
	"slices"
	"strings"

	"decay-ca/pkg/core"
)

// RuleSet is the immutable transition configuration shared by every engine
// and every step.
type RuleSet struct {
	state    int
	topology Topology
	birth    []bool
	survive  []bool
	kernel   Kernel
}

// New validates the inputs and builds a RuleSet. Every birth and survive
// count must lie within [0, topology.MaxNeighbors()].
func New(state int, topology Topology, birth, survive []int) (*RuleSet, error) {
	if !topology.valid() {
		return nil, core.Configf("topology", "unsupported value %d", topology)
	}
	if state <= 0 {
		return nil, core.Configf("state", "must be positive, got %d", state)
	}
	limit := topology.MaxNeighbors()
	b, err := countTable("birth", birth, limit)
	if err != nil {
		return nil, err
	}
	s, err := countTable("survive", survive, limit)
	if err != nil {
		return nil, err
	}
	return &RuleSet{state: state, topology: topology, birth: b, survive: s, kernel: KernelFor(topology)}, nil
}

// Conway returns the classic B3/S23 Moore rule with two states.
func Conway() *RuleSet {
	rs, err := New(1, Moore, []int{3}, []int{2, 3})
	if err != nil {
		panic(err)
	}
	return rs
}

func countTable(field string, counts []int, limit int) ([]bool, error) {
	table := make([]bool, limit+1)
	for _, c := range counts {
		if c < 0 || c > limit {
			return nil, core.Configf(field, "count %d outside [0,%d]", c, limit)
		}
		table[c] = true
	}
	return table, nil
}

// State is the value of a fully alive cell.
func (r *RuleSet) State() int { return r.state }

// Topology returns the neighbourhood shape.
func (r *RuleSet) Topology() Topology { return r.topology }

// MaxNeighbors returns the largest neighbour count for the topology.
func (r *RuleSet) MaxNeighbors() int { return r.topology.MaxNeighbors() }

// Kernel returns the cached kernel for the topology.
func (r *RuleSet) Kernel() Kernel { return r.kernel }

// IsBirth reports whether a dead cell with count live neighbours is born.
func (r *RuleSet) IsBirth(count int) bool {
	return count >= 0 && count < len(r.birth) && r.birth[count]
}

// IsSurvive reports whether a live cell with count live neighbours keeps its value.
func (r *RuleSet) IsSurvive(count int) bool {
	return count >= 0 && count < len(r.survive) && r.survive[count]
}

// Birth lists the birth counts in ascending order.
func (r *RuleSet) Birth() []int { return members(r.birth) }

// Survive lists the survive counts in ascending order.
func (r *RuleSet) Survive() []int { return members(r.survive) }

// BirthMask returns a 0/1 lookup table indexed by neighbour count.
func (r *RuleSet) BirthMask() []int { return mask(r.birth) }

// SurviveMask returns a 0/1 lookup table indexed by neighbour count.
func (r *RuleSet) SurviveMask() []int { return mask(r.survive) }

// Validate checks that every cell of g lies within [0, state].
func (r *RuleSet) Validate(g *core.Grid) error {
	if g == nil {
		return core.Configf("grid", "missing")
	}
	for i, v := range g.Cells() {
		if v < 0 || v > r.state {
			return core.Configf("grid", "cell (%d,%d) holds %d, want [0,%d]", i/g.Cols, i%g.Cols, v, r.state)
		}
	}
	return nil
}

// Notation renders the rule as B/S notation, e.g. "B3/S23".
func (r *RuleSet) Notation() string {
	return "B" + digits(r.Birth()) + "/S" + digits(r.Survive())
}

func (r *RuleSet) String() string {
	return fmt.Sprintf("%s %s state=%d", r.Notation(), r.topology, r.state)
}

// Equal reports whether both rule sets describe the same transition.
func (r *RuleSet) Equal(o *RuleSet) bool {
	return r.state == o.state && r.topology == o.topology &&
		slices.Equal(r.birth, o.birth) && slices.Equal(r.survive, o.survive)
}

func members(table []bool) []int {
	var out []int
	for c, ok := range table {
		if ok {
			out = append(out, c)
		}
	}
	return out
}

func mask(table []bool) []int {
	out := make([]int, len(table))
	for c, ok := range table {
		if ok {
			out[c] = 1
		}
	}
	return out
}

func digits(counts []int) string {
	var b strings.Builder
	for _, c := range counts {
		fmt.Fprintf(&b, "%d", c)
	}
	return b.String()
}

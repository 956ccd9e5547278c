package rules

import (
	"errors"
	"slices"
	"testing"

	"decay-ca/pkg/core"
)

func TestNewValidates(t *testing.T) {
	cases := []struct {
		name     string
		state    int
		topology Topology
		birth    []int
		survive  []int
		field    string
	}{
		{"zero state", 0, Moore, []int{3}, []int{2, 3}, "state"},
		{"negative state", -2, Moore, nil, nil, "state"},
		{"birth above moore", 1, Moore, []int{9}, nil, "birth"},
		{"survive above von neumann", 1, VonNeumann, nil, []int{5}, "survive"},
		{"negative birth", 1, VonNeumann, []int{-1}, nil, "birth"},
		{"unknown topology", 1, Topology(7), nil, nil, "topology"},
	}
	for _, tc := range cases {
		_, err := New(tc.state, tc.topology, tc.birth, tc.survive)
		var cfg *core.ConfigurationError
		if !errors.As(err, &cfg) {
			t.Fatalf("%s: expected ConfigurationError, got %v", tc.name, err)
		}
		if cfg.Field != tc.field {
			t.Fatalf("%s: field %q want %q", tc.name, cfg.Field, tc.field)
		}
	}
}

func TestQueries(t *testing.T) {
	rs, err := New(3, VonNeumann, []int{1, 4, 1}, []int{0, 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if rs.MaxNeighbors() != 4 || rs.State() != 3 || rs.Topology() != VonNeumann {
		t.Fatalf("unexpected rule set %s", rs)
	}
	if !slices.Equal(rs.Birth(), []int{1, 4}) || !slices.Equal(rs.Survive(), []int{0, 2}) {
		t.Fatalf("birth %v survive %v", rs.Birth(), rs.Survive())
	}
	for count, want := range []bool{false, true, false, false, true} {
		if rs.IsBirth(count) != want {
			t.Fatalf("IsBirth(%d) != %v", count, want)
		}
	}
	if rs.IsBirth(-1) || rs.IsSurvive(5) {
		t.Fatal("out-of-range counts must never match")
	}
	if !slices.Equal(rs.SurviveMask(), []int{1, 0, 1, 0, 0}) {
		t.Fatalf("survive mask %v", rs.SurviveMask())
	}
	if rs.Notation() != "B14/S02" {
		t.Fatalf("notation %q", rs.Notation())
	}
}

func TestKernels(t *testing.T) {
	moore := KernelFor(Moore).Matrix()
	if moore != [3][3]int{{1, 1, 1}, {1, 0, 1}, {1, 1, 1}} {
		t.Fatalf("moore kernel %v", moore)
	}
	vn := KernelFor(VonNeumann).Matrix()
	if vn != [3][3]int{{0, 1, 0}, {1, 0, 1}, {0, 1, 0}} {
		t.Fatalf("von neumann kernel %v", vn)
	}
	for _, top := range []Topology{Moore, VonNeumann} {
		if KernelFor(top).Sum() != top.MaxNeighbors() {
			t.Fatalf("%s kernel weight differs from max neighbours", top)
		}
	}
}

func TestParseTopology(t *testing.T) {
	for _, in := range []string{"m", "Moore", "MOORE"} {
		if got, err := ParseTopology(in); err != nil || got != Moore {
			t.Fatalf("ParseTopology(%q)=%v,%v", in, got, err)
		}
	}
	for _, in := range []string{"v", "vn", "VonNeumann", "von-neumann"} {
		if got, err := ParseTopology(in); err != nil || got != VonNeumann {
			t.Fatalf("ParseTopology(%q)=%v,%v", in, got, err)
		}
	}
	if _, err := ParseTopology("hex"); err == nil {
		t.Fatal("expected error for hex")
	}
}

func TestParseNotation(t *testing.T) {
	cases := []struct {
		in             string
		birth, survive []int
	}{
		{"B3/S23", []int{3}, []int{2, 3}},
		{"s23/b36", []int{3, 6}, []int{2, 3}},
		{"B/S012345678", []int{}, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}},
	}
	for _, tc := range cases {
		birth, survive, err := ParseNotation(tc.in)
		if err != nil {
			t.Fatalf("ParseNotation(%q): %v", tc.in, err)
		}
		if !slices.Equal(birth, tc.birth) || !slices.Equal(survive, tc.survive) {
			t.Fatalf("ParseNotation(%q)=%v,%v", tc.in, birth, survive)
		}
	}
	for _, in := range []string{"", "B3", "B3/S2x", "X3/S23", "B3/B4/S2", "B3//S23"} {
		if _, _, err := ParseNotation(in); err == nil {
			t.Fatalf("ParseNotation(%q) should fail", in)
		}
	}
	if _, err := FromNotation("B5/S23", 1, VonNeumann); err == nil {
		t.Fatal("B5 must be rejected for von Neumann")
	}
}

func TestParseCounts(t *testing.T) {
	got, err := ParseCounts("0, 2-4;8")
	if err != nil {
		t.Fatalf("ParseCounts: %v", err)
	}
	if !slices.Equal(got, []int{0, 2, 3, 4, 8}) {
		t.Fatalf("ParseCounts=%v", got)
	}
	if got, err := ParseCounts(""); err != nil || len(got) != 0 {
		t.Fatalf("empty list: %v %v", got, err)
	}
	for _, in := range []string{"a", "3-", "4-2"} {
		if _, err := ParseCounts(in); err == nil {
			t.Fatalf("ParseCounts(%q) should fail", in)
		}
	}
}

func TestValidateGrid(t *testing.T) {
	rs := Conway()
	g, _ := core.FromRows([][]int{{0, 1}, {1, 0}})
	if err := rs.Validate(g); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := g.Set(1, 1, 2); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := rs.Validate(g); err == nil {
		t.Fatal("expected value 2 to exceed state 1")
	}
}

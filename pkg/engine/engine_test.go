package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"decay-ca/pkg/core"
	"decay-ca/pkg/rules"
)

func mustRows(t testing.TB, rows [][]int) *core.Grid {
	t.Helper()
	g, err := core.FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	return g
}

func engines(rs *rules.RuleSet) []Engine {
	return []Engine{NewDirect(rs, 0), NewDirect(rs, 1), NewDirect(rs, 64), NewConvolution(rs)}
}

func TestBlinkerOscillation(t *testing.T) {
	vertical := [][]int{
		{0, 1, 0},
		{0, 1, 0},
		{0, 1, 0},
	}
	horizontal := [][]int{
		{0, 0, 0},
		{1, 1, 1},
		{0, 0, 0},
	}
	for _, e := range engines(rules.Conway()) {
		g := mustRows(t, vertical)
		for step := 1; step <= 4; step++ {
			g = e.Step(g)
			want := horizontal
			if step%2 == 0 {
				want = vertical
			}
			if !g.Equal(mustRows(t, want)) {
				t.Fatalf("%s step %d:\n%s", e.Name(), step, g)
			}
		}
	}
}

func TestFullGridDecay(t *testing.T) {
	for _, state := range []int{1, 2, 5} {
		rs, err := rules.New(state, rules.Moore, []int{3}, []int{2, 3})
		if err != nil {
			t.Fatalf("rules: %v", err)
		}
		s := state
		full := mustRows(t, [][]int{{s, s, s}, {s, s, s}, {s, s, s}})
		d := s - 1
		want := mustRows(t, [][]int{{s, d, s}, {d, d, d}, {s, d, s}})
		for _, e := range engines(rs) {
			if got := e.Step(full); !got.Equal(want) {
				t.Fatalf("state %d %s: got %v want %v", state, e.Name(), got.Cells(), want.Cells())
			}
		}
	}
}

func TestNeighborCounts(t *testing.T) {
	full := mustRows(t, [][]int{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}})
	cases := []struct {
		topology rules.Topology
		want     []int
	}{
		{rules.Moore, []int{3, 5, 3, 5, 8, 5, 3, 5, 3}},
		{rules.VonNeumann, []int{2, 3, 2, 3, 4, 3, 2, 3, 2}},
	}
	for _, tc := range cases {
		k := rules.KernelFor(tc.topology)
		mask := AliveMask(full.Cells())
		conv := Convolve(mask, full.Rows, full.Cols, k)
		for i, want := range tc.want {
			r, c := i/3, i%3
			if got := NeighborCount(full, k, r, c); got != want {
				t.Fatalf("%s direct count (%d,%d)=%d want %d", tc.topology, r, c, got, want)
			}
			if conv[i] != want {
				t.Fatalf("%s convolved count (%d,%d)=%d want %d", tc.topology, r, c, conv[i], want)
			}
		}
	}
}

func TestMooreCountsMatchesConvolve(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 0))
	k := rules.KernelFor(rules.Moore)
	for trial := 0; trial < 200; trial++ {
		rows, cols := 1+rng.IntN(12), 1+rng.IntN(12)
		mask := make([]int, rows*cols)
		for i := range mask {
			mask[i] = rng.IntN(2)
		}
		box := MooreCounts(mask, rows, cols)
		shifted := Convolve(mask, rows, cols, k)
		for i := range box {
			if box[i] != shifted[i] {
				t.Fatalf("%dx%d cell %d: box %d shifted %d", rows, cols, i, box[i], shifted[i])
			}
		}
	}
}

func TestAliveMask(t *testing.T) {
	got := AliveMask([]int{0, 1, 2, 0, 255, 1 << 20})
	want := []int{0, 1, 1, 0, 1, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("mask[%d]=%d want %d", i, got[i], want[i])
		}
	}
}

func randomRules(rng *rand.Rand) *rules.RuleSet {
	topology := rules.Moore
	if rng.IntN(2) == 1 {
		topology = rules.VonNeumann
	}
	var birth, survive []int
	for c := 0; c <= topology.MaxNeighbors(); c++ {
		if rng.IntN(3) == 0 {
			birth = append(birth, c)
		}
		if rng.IntN(2) == 0 {
			survive = append(survive, c)
		}
	}
	rs, err := rules.New(1+rng.IntN(6), topology, birth, survive)
	if err != nil {
		panic(err)
	}
	return rs
}

func randomGrid(rng *rand.Rand, state int) *core.Grid {
	g := core.MustGrid(1+rng.IntN(24), 1+rng.IntN(24))
	cells := g.Cells()
	for i := range cells {
		if rng.IntN(3) == 0 {
			cells[i] = rng.IntN(state + 1)
		}
	}
	return g
}

func TestEnginesAgree(t *testing.T) {
	for seed := uint64(1); seed <= 120; seed++ {
		rng := rand.New(rand.NewPCG(seed, 99))
		rs := randomRules(rng)
		direct := NewDirect(rs, 1+rng.IntN(8))
		conv := NewConvolution(rs)
		a := randomGrid(rng, rs.State())
		b := a.Clone()
		for step := 0; step < 6; step++ {
			a, b = direct.Step(a), conv.Step(b)
			if !a.Equal(b) {
				t.Fatalf("seed %d (%s) step %d diverged:\ndirect %v\nconv   %v", seed, rs, step, a.Cells(), b.Cells())
			}
			if err := rs.Validate(a); err != nil {
				t.Fatalf("seed %d step %d left valid range: %v", seed, step, err)
			}
		}
	}
}

func TestAllDeadFixedPoint(t *testing.T) {
	rs := rules.Conway()
	for _, size := range [][2]int{{1, 1}, {1, 9}, {7, 1}, {16, 16}, {33, 5}} {
		g := core.MustGrid(size[0], size[1])
		for _, e := range engines(rs) {
			if next := e.Step(g); next.Population() != 0 {
				t.Fatalf("%s %v: spontaneous birth:\n%s", e.Name(), size, next)
			}
		}
	}
}

func TestDecayToDeath(t *testing.T) {
	rs, err := rules.New(5, rules.Moore, []int{3}, []int{2, 3})
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	for _, e := range engines(rs) {
		g := core.MustGrid(3, 3)
		if err := g.Set(1, 1, 3); err != nil {
			t.Fatalf("Set: %v", err)
		}
		for _, want := range []int{2, 1, 0, 0, 0} {
			g = e.Step(g)
			if got, _ := g.Get(1, 1); got != want {
				t.Fatalf("%s: centre=%d want %d", e.Name(), got, want)
			}
		}
	}
}

func TestSurvivorKeepsIntermediateValue(t *testing.T) {
	rs, err := rules.New(4, rules.VonNeumann, nil, []int{1})
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	g := mustRows(t, [][]int{{2, 3}})
	for _, e := range engines(rs) {
		if got := e.Step(g); !got.Equal(g) {
			t.Fatalf("%s: got %v want %v", e.Name(), got.Cells(), g.Cells())
		}
	}
}

func TestCornerCellHasNoPhantomNeighbors(t *testing.T) {
	g := core.MustGrid(4, 4)
	if err := g.Set(0, 0, 1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if n := NeighborCount(g, rules.KernelFor(rules.Moore), 0, 0); n != 0 {
		t.Fatalf("corner count=%d want 0", n)
	}
	// B0 would revive every padded position if padding counted as alive.
	rs, err := rules.New(1, rules.Moore, []int{0}, nil)
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	for _, e := range engines(rs) {
		next := e.Step(g)
		if v, _ := next.Get(0, 0); v != 0 {
			t.Fatalf("%s: lone corner survived with value %d", e.Name(), v)
		}
		if v, _ := next.Get(3, 3); v != 1 {
			t.Fatalf("%s: isolated dead cell not born under B0", e.Name())
		}
	}
}

func TestStepRejectsBadInput(t *testing.T) {
	rs := rules.Conway()
	g := mustRows(t, [][]int{{0, 2}})
	var cfg *core.ConfigurationError
	if _, err := Step(g, rs, Convolution); !errors.As(err, &cfg) {
		t.Fatalf("expected ConfigurationError for value above state, got %v", err)
	}
	if _, err := Step(core.MustGrid(2, 2), rs, Algorithm(9)); !errors.As(err, &cfg) {
		t.Fatalf("expected ConfigurationError for unknown algorithm, got %v", err)
	}
	if _, err := New(Direct, nil); !errors.As(err, &cfg) {
		t.Fatalf("expected ConfigurationError for missing rules, got %v", err)
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	g := mustRows(t, [][]int{{0, 1, 0}, {0, 1, 0}, {0, 1, 0}})
	before := g.Clone()
	for _, alg := range []Algorithm{Direct, Convolution} {
		if _, err := Step(g, rules.Conway(), alg); err != nil {
			t.Fatalf("%s: %v", alg, err)
		}
		if !g.Equal(before) {
			t.Fatalf("%s mutated its input", alg)
		}
	}
}

func TestParseAlgorithm(t *testing.T) {
	cases := map[string]Algorithm{
		"std":          Direct,
		"Standard":     Direct,
		"direct":       Direct,
		"conv":         Convolution,
		" CONVOLUTION": Convolution,
	}
	for in, want := range cases {
		got, err := ParseAlgorithm(in)
		if err != nil || got != want {
			t.Fatalf("ParseAlgorithm(%q)=%v,%v want %v", in, got, err, want)
		}
	}
	if _, err := ParseAlgorithm("fft"); err == nil {
		t.Fatal("expected error for fft")
	}
}

func benchmarkEngine(b *testing.B, alg Algorithm, size int) {
	rs := rules.Conway()
	g, err := core.RandomGrid(size, size, 0.3, rs.State(), 1)
	if err != nil {
		b.Fatal(err)
	}
	e, err := New(alg, rs)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cur := g
		for step := 0; step < 20; step++ {
			cur = e.Step(cur)
		}
	}
}

func BenchmarkEngines(b *testing.B) {
	for _, size := range []int{100, 400} {
		for _, alg := range []Algorithm{Direct, Convolution} {
			b.Run(fmt.Sprintf("%s/%d", alg, size), func(b *testing.B) { benchmarkEngine(b, alg, size) })
		}
	}
}

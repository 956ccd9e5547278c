package engine

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"decay-ca/pkg/core"
	"decay-ca/pkg/rules"
)

// DirectEngine evaluates every cell independently. Rows are split into
// contiguous bands, one goroutine per band; each band reads the shared input
// grid and writes only its own rows of the output.
type DirectEngine struct {
	rules   *rules.RuleSet
	kernel  rules.Kernel
	workers int
}

// NewDirect returns a direct engine with the given worker count. A count of
// zero or less uses GOMAXPROCS.
func NewDirect(rs *rules.RuleSet, workers int) *DirectEngine {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &DirectEngine{rules: rs, kernel: rs.Kernel(), workers: workers}
}

// Name identifies the engine.
func (d *DirectEngine) Name() string { return Direct.String() }

// Workers reports the configured band count upper bound.
func (d *DirectEngine) Workers() int { return d.workers }

// Step computes the next generation.
func (d *DirectEngine) Step(g *core.Grid) *core.Grid {
	next := g.Like()
	bands := min(d.workers, g.Rows)
	per := (g.Rows + bands - 1) / bands

	var eg errgroup.Group
	for start := 0; start < g.Rows; start += per {
		end := min(start+per, g.Rows)
		eg.Go(func() error {
			d.band(g, next, start, end)
			return nil
		})
	}
	// Bands never fail; Wait is the barrier before next is handed out.
	_ = eg.Wait()
	return next
}

func (d *DirectEngine) band(cur, next *core.Grid, start, end int) {
	in, out := cur.Cells(), next.Cells()
	for row := start; row < end; row++ {
		for col := 0; col < cur.Cols; col++ {
			idx := cur.Index(row, col)
			count := NeighborCount(cur, d.kernel, row, col)
			out[idx] = d.evolve(in[idx], count)
		}
	}
}

func (d *DirectEngine) evolve(value, count int) int {
	if value == 0 {
		if d.rules.IsBirth(count) {
			return d.rules.State()
		}
		return 0
	}
	if d.rules.IsSurvive(count) {
		return value
	}
	return max(value-1, 0)
}

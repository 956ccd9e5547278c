package engine

import (
	"math/bits"

	"decay-ca/pkg/core"
	"decay-ca/pkg/rules"
)

// ConvolutionEngine convolves the alive mask of the grid with the rule
// kernel and applies birth, survival and decay as elementwise arithmetic.
type ConvolutionEngine struct {
	rules   *rules.RuleSet
	kernel  rules.Kernel
	birth   []int
	survive []int
}

// NewConvolution returns a convolution engine for rs.
func NewConvolution(rs *rules.RuleSet) *ConvolutionEngine {
	return &ConvolutionEngine{
		rules:   rs,
		kernel:  rs.Kernel(),
		birth:   rs.BirthMask(),
		survive: rs.SurviveMask(),
	}
}

// Name identifies the engine.
func (c *ConvolutionEngine) Name() string { return Convolution.String() }

// Step computes the next generation.
func (c *ConvolutionEngine) Step(g *core.Grid) *core.Grid {
	cells := g.Cells()
	alive := AliveMask(cells)

	var counts []int
	if c.rules.Topology() == rules.Moore {
		counts = MooreCounts(alive, g.Rows, g.Cols)
	} else {
		counts = Convolve(alive, g.Rows, g.Cols, c.kernel)
	}

	next := g.Like()
	out := next.Cells()
	state := c.rules.State()
	for i, v := range cells {
		a := alive[i]
		s := c.survive[counts[i]]
		b := c.birth[counts[i]]
		// v-a equals max(v-1, 0) whenever a is 1.
		out[i] = a*s*v + (1-a)*b*state + a*(1-s)*(v-a)
	}
	return next
}

// AliveMask maps each value to 1 when it is positive and 0 otherwise.
// Values must not be negative.
func AliveMask(cells []int) []int {
	out := make([]int, len(cells))
	for i, v := range cells {
		out[i] = int(uint(-v) >> (bits.UintSize - 1))
	}
	return out
}

// Convolve computes, for every cell, the kernel-weighted sum of mask under
// zero padding. Each kernel offset is applied as one shifted add over the
// rows and columns whose source stays inside the grid.
func Convolve(mask []int, rows, cols int, k rules.Kernel) []int {
	counts := make([]int, rows*cols)
	for _, o := range k.Offsets {
		r0, r1 := max(0, -o.DRow), min(rows, rows-o.DRow)
		c0, c1 := max(0, -o.DCol), min(cols, cols-o.DCol)
		if r0 >= r1 || c0 >= c1 {
			continue
		}
		for r := r0; r < r1; r++ {
			dst := counts[r*cols+c0 : r*cols+c1]
			base := (r+o.DRow)*cols + o.DCol
			src := mask[base+c0 : base+c1]
			for i := range dst {
				dst[i] += o.Weight * src[i]
			}
		}
	}
	return counts
}

// MooreCounts computes Moore neighbour counts with a separable 3x3 box sum:
// a horizontal window pass, a vertical window pass, then the centre is
// subtracted.
func MooreCounts(mask []int, rows, cols int) []int {
	horiz := make([]int, rows*cols)
	for r := 0; r < rows; r++ {
		src := mask[r*cols : (r+1)*cols]
		dst := horiz[r*cols : (r+1)*cols]
		window := src[0]
		if cols > 1 {
			window += src[1]
		}
		for col := range dst {
			dst[col] = window
			if col > 0 {
				window -= src[col-1]
			}
			if col+2 < cols {
				window += src[col+2]
			}
		}
	}

	counts := make([]int, rows*cols)
	for r := 0; r < rows; r++ {
		dst := counts[r*cols : (r+1)*cols]
		copy(dst, horiz[r*cols:(r+1)*cols])
		if r > 0 {
			addInto(dst, horiz[(r-1)*cols:r*cols])
		}
		if r+1 < rows {
			addInto(dst, horiz[(r+1)*cols:(r+2)*cols])
		}
		centre := mask[r*cols : (r+1)*cols]
		for i := range dst {
			dst[i] -= centre[i]
		}
	}
	return counts
}

func addInto(dst, src []int) {
	for i := range dst {
		dst[i] += src[i]
	}
}

package core

import "strings"

// Grid stores a rows x cols field of cell vitality values in row-major order.
// Out-of-range neighbour lookups read as dead (zero padding).
type Grid struct {
	Rows, Cols int
	data       []int
}

// NewGrid allocates an all-dead grid with the given dimensions.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 {
		return nil, Configf("rows", "must be at least 1, got %d", rows)
	}
	if cols <= 0 {
		return nil, Configf("cols", "must be at least 1, got %d", cols)
	}
	return &Grid{Rows: rows, Cols: cols, data: make([]int, rows*cols)}, nil
}

// MustGrid is NewGrid for dimensions known to be valid. It panics otherwise.
func MustGrid(rows, cols int) *Grid {
	g, err := NewGrid(rows, cols)
	if err != nil {
		panic(err)
	}
	return g
}

// FromRows builds a grid from a rectangular slice of rows.
func FromRows(rows [][]int) (*Grid, error) {
	if len(rows) == 0 {
		return nil, Configf("rows", "must be at least 1, got 0")
	}
	g, err := NewGrid(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != g.Cols {
			return nil, Configf("rows", "row %d has %d cells, want %d", r, len(row), g.Cols)
		}
		copy(g.data[r*g.Cols:], row)
	}
	return g, nil
}

// Cells exposes the backing slice so engines can read/write values directly.
func (g *Grid) Cells() []int { return g.data }

// Index returns the linear slice index for (row, col).
func (g *Grid) Index(row, col int) int { return row*g.Cols + col }

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// Get returns the value at (row, col).
func (g *Grid) Get(row, col int) (int, error) {
	if !g.InBounds(row, col) {
		return 0, &OutOfRangeError{Row: row, Col: col, Rows: g.Rows, Cols: g.Cols}
	}
	return g.data[g.Index(row, col)], nil
}

// At applies the boundary policy: positions outside the grid read as 0.
func (g *Grid) At(row, col int) int {
	if !g.InBounds(row, col) {
		return 0
	}
	return g.data[g.Index(row, col)]
}

// Set stores value at (row, col). Negative values are rejected.
func (g *Grid) Set(row, col, value int) error {
	if !g.InBounds(row, col) {
		return &OutOfRangeError{Row: row, Col: col, Rows: g.Rows, Cols: g.Cols}
	}
	if value < 0 {
		return Configf("value", "cell (%d,%d) cannot hold %d", row, col, value)
	}
	g.data[g.Index(row, col)] = value
	return nil
}

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	out := &Grid{Rows: g.Rows, Cols: g.Cols, data: make([]int, len(g.data))}
	copy(out.data, g.data)
	return out
}

// Like allocates an all-dead grid with the same shape as g.
func (g *Grid) Like() *Grid {
	return &Grid{Rows: g.Rows, Cols: g.Cols, data: make([]int, len(g.data))}
}

// Equal reports whether both grids have the same shape and values.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.Rows != o.Rows || g.Cols != o.Cols {
		return false
	}
	for i, v := range g.data {
		if o.data[i] != v {
			return false
		}
	}
	return true
}

// Population counts cells with a nonzero value.
func (g *Grid) Population() int {
	n := 0
	for _, v := range g.data {
		if v > 0 {
			n++
		}
	}
	return n
}

// Max returns the largest cell value.
func (g *Grid) Max() int {
	m := 0
	for _, v := range g.data {
		if v > m {
			m = v
		}
	}
	return m
}

// String renders live cells as '#' and dead cells as '.', one line per row.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.Cols + 1) * g.Rows)
	for r := 0; r < g.Rows; r++ {
		for _, v := range g.data[r*g.Cols : (r+1)*g.Cols] {
			if v > 0 {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

package grid

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// gridErrorf wraps an underlying error with Grid method context.
func gridErrorf(method string, c Coord, err error) error {
	return fmt.Errorf("Grid.%s%s: %w", method, c, err)
}

// Option customizes a Grid at construction.
type Option func(*Grid)

// WithSentinel overrides the value that marks a missing cell.
// The sentinel must lie outside the range of valid samples.
func WithSentinel(v float64) Option {
	return func(g *Grid) {
		g.sentinel = v
	}
}

// Grid is a rows×cols buffer of float64 samples stored row-major in a
// gonum *mat.Dense. A cell holding the sentinel value is missing.
// Grid is not safe for concurrent mutation of the same cell; writes to
// distinct cells from several goroutines are safe.
type Grid struct {
	m        *mat.Dense
	rows     int
	cols     int
	sentinel float64
}

// New creates a rows×cols grid with every sample set to zero.
// Returns ErrEmptyGrid if rows or cols is not positive.
// Complexity: O(rows×cols) time and memory.
func New(rows, cols int, opts ...Option) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrEmptyGrid
	}
	g := &Grid{
		m:        mat.NewDense(rows, cols, nil),
		rows:     rows,
		cols:     cols,
		sentinel: MissingValue,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// FromRows builds a grid from a non-empty rectangular [][]float64,
// deep-copying the input. values[x][y] is the sample at Coord{x, y}.
// Returns ErrEmptyGrid or ErrNonRectangular on bad shapes.
// Complexity: O(rows×cols).
func FromRows(values [][]float64, opts ...Option) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, cols := len(values), len(values[0])
	data := make([]float64, 0, rows*cols)
	for _, row := range values {
		if len(row) != cols {
			return nil, ErrNonRectangular
		}
		data = append(data, row...)
	}
	g := &Grid{
		m:        mat.NewDense(rows, cols, data),
		rows:     rows,
		cols:     cols,
		sentinel: MissingValue,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Sentinel returns the value marking a missing cell.
func (g *Grid) Sentinel() float64 { return g.sentinel }

// InBounds reports whether c lies within [0,rows)×[0,cols).
// Complexity: O(1).
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.rows && c.Y >= 0 && c.Y < g.cols
}

// At returns the sample at c, or ErrOutOfRange.
// Complexity: O(1).
func (g *Grid) At(c Coord) (float64, error) {
	if !g.InBounds(c) {
		return 0, gridErrorf("At", c, ErrOutOfRange)
	}
	return g.m.At(c.X, c.Y), nil
}

// Set writes v at c, or returns ErrOutOfRange.
// Complexity: O(1).
func (g *Grid) Set(c Coord, v float64) error {
	if !g.InBounds(c) {
		return gridErrorf("Set", c, ErrOutOfRange)
	}
	g.m.Set(c.X, c.Y, v)

	return nil
}

// IsMissing reports whether the cell at c holds the sentinel.
// Out-of-bounds coordinates are never missing.
// Complexity: O(1).
func (g *Grid) IsMissing(c Coord) bool {
	if !g.InBounds(c) {
		return false
	}
	return g.m.At(c.X, c.Y) == g.sentinel
}

// MarkMissing writes the sentinel at c.
func (g *Grid) MarkMissing(c Coord) error {
	if !g.InBounds(c) {
		return gridErrorf("MarkMissing", c, ErrOutOfRange)
	}
	g.m.Set(c.X, c.Y, g.sentinel)

	return nil
}

// MissingCount returns the number of sentinel cells.
// Complexity: O(rows×cols).
func (g *Grid) MissingCount() int {
	n := 0
	for x := 0; x < g.rows; x++ {
		for y := 0; y < g.cols; y++ {
			if g.m.At(x, y) == g.sentinel {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy that shares nothing with g.
// Complexity: O(rows×cols) time and memory.
func (g *Grid) Clone() *Grid {
	return &Grid{
		m:        mat.DenseCopyOf(g.m),
		rows:     g.rows,
		cols:     g.cols,
		sentinel: g.sentinel,
	}
}

// Raw exposes the backing matrix as a read-only mat.Matrix.
func (g *Grid) Raw() mat.Matrix {
	return g.m
}

// Neighbors returns the in-bounds neighbors of c under conn.
// Complexity: O(d).
func (g *Grid) Neighbors(c Coord, conn Connectivity) []Coord {
	return Neighbors(c, conn, g.rows, g.cols)
}

// String renders the grid one row per line, sentinel cells as "_".
// Complexity: O(rows×cols).
func (g *Grid) String() string {
	var sb strings.Builder
	for x := 0; x < g.rows; x++ {
		sb.WriteByte('[')
		for y := 0; y < g.cols; y++ {
			if y > 0 {
				sb.WriteString(", ")
			}
			v := g.m.At(x, y)
			if v == g.sentinel {
				sb.WriteByte('_')
				continue
			}
			fmt.Fprintf(&sb, "%g", v)
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}

package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyGrid indicates a grid with no rows or no columns.
	ErrEmptyGrid = errors.New("grid: grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")
	// ErrOutOfRange indicates a coordinate outside the grid.
	ErrOutOfRange = errors.New("grid: coordinate out of range")
	// ErrBadConnectivity indicates an unknown Connectivity value.
	ErrBadConnectivity = errors.New("grid: connectivity must be 4 or 8")
)

// MissingValue is the default sentinel marking a missing sample. Valid
// samples produced by the image adapter lie in [0,1].
const MissingValue = -1.0

// Coord is an immutable cell address. X is the row (0 is the topmost row),
// Y is the column (0 is the leftmost column).
type Coord struct {
	X, Y int
}

// String renders the coordinate as "(x, y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Less orders coordinates row-major: by X, then by Y.
func (c Coord) Less(o Coord) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	return c.Y < o.Y
}

// Connectivity selects neighbor adjacency: orthogonal (Conn4) or
// orthogonal plus diagonal (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional adjacency: N, E, S, W.
	Conn4 Connectivity = 4
	// Conn8 uses 8-directional adjacency: N, NE, E, SE, S, SW, W, NW.
	Conn8 Connectivity = 8
)

// offsets in clockwise order starting north, as (dRow, dCol).
var (
	offsets4 = [][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}
	offsets8 = [][2]int{{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}}
)

// ParseConnectivity maps 4 or 8 to the matching Connectivity.
func ParseConnectivity(n int) (Connectivity, error) {
	c := Connectivity(n)
	if !c.Valid() {
		return 0, fmt.Errorf("ParseConnectivity(%d): %w", n, ErrBadConnectivity)
	}
	return c, nil
}

// Valid reports whether c is Conn4 or Conn8.
func (c Connectivity) Valid() bool {
	return c == Conn4 || c == Conn8
}

// Offsets returns the (dRow, dCol) offsets for c. The slice is shared;
// callers must not modify it. Returns nil for an invalid Connectivity.
// Complexity: O(1).
func (c Connectivity) Offsets() [][2]int {
	switch c {
	case Conn4:
		return offsets4
	case Conn8:
		return offsets8
	default:
		return nil
	}
}

// String returns "4-connectivity" or "8-connectivity".
func (c Connectivity) String() string {
	return fmt.Sprintf("%d-connectivity", int(c))
}

// Neighbors returns the in-bounds neighbors of c under conn for a
// rows×cols grid, in clockwise order starting north. The result never
// contains duplicates; for Conn8 it contains all four diagonals.
// Returns nil for an invalid Connectivity.
// Complexity: O(d), d = 4 or 8.
func Neighbors(c Coord, conn Connectivity, rows, cols int) []Coord {
	offs := conn.Offsets()
	if offs == nil {
		return nil
	}
	out := make([]Coord, 0, len(offs))
	for _, d := range offs {
		nx, ny := c.X+d[0], c.Y+d[1]
		if nx < 0 || nx >= rows || ny < 0 || ny >= cols {
			continue
		}
		out = append(out, Coord{X: nx, Y: ny})
	}
	return out
}

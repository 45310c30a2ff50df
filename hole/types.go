package hole

import (
	"errors"
	"strings"

	"github.com/katalvlaran/holefill/grid"
)

var (
	// ErrNoMissingPixel indicates the grid contains no sentinel cell.
	ErrNoMissingPixel = errors.New("hole: no missing pixel in the image")
	// ErrSeedNotMissing indicates Trace was seeded on a non-sentinel cell.
	ErrSeedNotMissing = errors.New("hole: seed is not a missing pixel")
)

// Hole is a connected region of missing cells together with the known
// cells bordering it. A Hole is built once by Trace and never changes;
// accessors return copies. The zero Hole is empty: no interior, no
// boundary, and filling it is a no-op.
type Hole struct {
	conn     grid.Connectivity
	interior []grid.Coord
	boundary []grid.Coord
	index    map[grid.Coord]struct{}
}

// Conn returns the adjacency mode the hole was traced with.
func (h *Hole) Conn() grid.Connectivity { return h.conn }

// Seed returns the first interior coordinate, the one Trace started from.
// An empty hole has no seed and returns the zero Coord; check Len first.
func (h *Hole) Seed() grid.Coord {
	if len(h.interior) == 0 {
		return grid.Coord{}
	}
	return h.interior[0]
}

// Len returns the number of interior cells.
func (h *Hole) Len() int { return len(h.interior) }

// BoundaryLen returns the number of boundary cells.
func (h *Hole) BoundaryLen() int { return len(h.boundary) }

// Interior returns the missing cells in BFS discovery order.
// Complexity: O(Len()).
func (h *Hole) Interior() []grid.Coord {
	out := make([]grid.Coord, len(h.interior))
	copy(out, h.interior)
	return out
}

// Boundary returns the known cells adjacent to the hole, each once, in
// first-discovery order.
// Complexity: O(BoundaryLen()).
func (h *Hole) Boundary() []grid.Coord {
	out := make([]grid.Coord, len(h.boundary))
	copy(out, h.boundary)
	return out
}

// Contains reports whether c is an interior cell of the hole.
// Complexity: O(1).
func (h *Hole) Contains(c grid.Coord) bool {
	_, ok := h.index[c]
	return ok
}

// String lists interior and boundary cells on two tab-separated lines:
//
//	Hole:
//	(1, 1)	(1, 2)	...
//	Hole Boundary:
//	(0, 1)	(1, 0)	...
func (h *Hole) String() string {
	var sb strings.Builder
	sb.WriteString("Hole:\n")
	for _, c := range h.interior {
		sb.WriteString(c.String())
		sb.WriteByte('\t')
	}
	sb.WriteString("\nHole Boundary:\n")
	for _, c := range h.boundary {
		sb.WriteString(c.String())
		sb.WriteByte('\t')
	}

	return sb.String()
}

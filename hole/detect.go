package hole

import (
	"fmt"

	"github.com/katalvlaran/holefill/grid"
)

// LocateFirstMissing scans g row-major (row 0 first, column 0 first within a
// row) and returns the first sentinel coordinate. It always returns the
// lexicographically smallest (row, column) missing cell.
// Returns ErrNoMissingPixel if g has no sentinel cell.
// Complexity: O(rows×cols) time, O(1) memory.
func LocateFirstMissing(g *grid.Grid) (grid.Coord, error) {
	for x := 0; x < g.Rows(); x++ {
		for y := 0; y < g.Cols(); y++ {
			c := grid.Coord{X: x, Y: y}
			if g.IsMissing(c) {
				return c, nil
			}
		}
	}
	return grid.Coord{}, ErrNoMissingPixel
}

// Trace collects the hole containing seed by breadth-first traversal.
//
// Behavior:
//  1. Enqueue seed and mark it visited.
//  2. Dequeue a cell and record it as interior.
//  3. For each unvisited neighbor under conn: mark it visited; a sentinel
//     neighbor is enqueued, any other neighbor is recorded as boundary.
//  4. Stop when the queue is empty.
//
// The grid is only read. The visited marker lives for this call only.
// Returns ErrSeedNotMissing if g[seed] is not the sentinel.
// Complexity: O(rows×cols×d) time, O(rows×cols) memory.
func Trace(g *grid.Grid, seed grid.Coord, conn grid.Connectivity) (*Hole, error) {
	if err := validate(g, seed, conn); err != nil {
		return nil, err
	}
	t := newTracer(g, conn)
	return t.trace(seed), nil
}

// Detect locates the first missing cell of g and traces its hole.
// Returns ErrNoMissingPixel if g has no sentinel cell.
func Detect(g *grid.Grid, conn grid.Connectivity) (*Hole, error) {
	if !conn.Valid() {
		return nil, fmt.Errorf("hole.Detect: %w", grid.ErrBadConnectivity)
	}
	seed, err := LocateFirstMissing(g)
	if err != nil {
		return nil, err
	}
	return Trace(g, seed, conn)
}

// DetectAll returns every hole of g, ordered by the row-major position of
// each hole's seed. Every sentinel cell belongs to exactly one returned
// hole. Boundary cells may be shared between holes.
// Returns ErrNoMissingPixel if g has no sentinel cell.
// Complexity: O(rows×cols×d) time, O(rows×cols) memory.
func DetectAll(g *grid.Grid, conn grid.Connectivity) ([]*Hole, error) {
	if !conn.Valid() {
		return nil, fmt.Errorf("hole.DetectAll: %w", grid.ErrBadConnectivity)
	}
	t := newTracer(g, conn)
	claimed := make([]bool, g.Rows()*g.Cols())
	var holes []*Hole
	for x := 0; x < g.Rows(); x++ {
		for y := 0; y < g.Cols(); y++ {
			c := grid.Coord{X: x, Y: y}
			if !g.IsMissing(c) || claimed[t.index(c)] {
				continue
			}
			h := t.trace(c)
			for _, ic := range h.interior {
				claimed[t.index(ic)] = true
			}
			holes = append(holes, h)
		}
	}
	if len(holes) == 0 {
		return nil, ErrNoMissingPixel
	}

	return holes, nil
}

func validate(g *grid.Grid, seed grid.Coord, conn grid.Connectivity) error {
	if !conn.Valid() {
		return fmt.Errorf("hole.Trace: %w", grid.ErrBadConnectivity)
	}
	if !g.InBounds(seed) {
		return fmt.Errorf("hole.Trace%s: %w", seed, grid.ErrOutOfRange)
	}
	if !g.IsMissing(seed) {
		return fmt.Errorf("hole.Trace%s: %w", seed, ErrSeedNotMissing)
	}
	return nil
}

// tracer reuses one stamp-based visited marker across several traces:
// a cell is visited in the current trace iff mark[i] == stamp.
type tracer struct {
	g     *grid.Grid
	conn  grid.Connectivity
	mark  []uint32
	stamp uint32
}

func newTracer(g *grid.Grid, conn grid.Connectivity) *tracer {
	return &tracer{
		g:    g,
		conn: conn,
		mark: make([]uint32, g.Rows()*g.Cols()),
	}
}

// index maps c to its row-major offset.
func (t *tracer) index(c grid.Coord) int {
	return c.X*t.g.Cols() + c.Y
}

func (t *tracer) trace(seed grid.Coord) *Hole {
	t.stamp++
	h := &Hole{
		conn:  t.conn,
		index: make(map[grid.Coord]struct{}),
	}

	queue := []grid.Coord{seed}
	t.mark[t.index(seed)] = t.stamp
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		h.interior = append(h.interior, u)
		h.index[u] = struct{}{}
		for _, v := range t.g.Neighbors(u, t.conn) {
			vi := t.index(v)
			if t.mark[vi] == t.stamp {
				continue
			}
			t.mark[vi] = t.stamp
			if t.g.IsMissing(v) {
				queue = append(queue, v)
			} else {
				h.boundary = append(h.boundary, v)
			}
		}
	}

	return h
}

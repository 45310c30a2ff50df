package fill

import (
	"fmt"

	"github.com/katalvlaran/holefill/grid"
	"github.com/katalvlaran/holefill/hole"
	"github.com/katalvlaran/holefill/weight"
)

// Neighbor fills interior cells of h one at a time in BFS discovery order.
// Each cell x becomes the weighted average over its direct neighbors (under
// h.Conn()) that are not missing in the working grid when x is processed;
// the value is written before the next cell is visited.
//
// The processing order is part of the result: do not reorder or parallelize.
//
// A cell none of whose neighbors is known yet is degenerate and handled by
// the Policy (see package doc). With the default Reject policy the call
// fails with a *DegenerateError and no grid is returned.
//
// Returns ErrNilInput, ErrHoleMismatch, ErrOptionViolation, or a
// *DegenerateError under Reject.
// Complexity: O(|interior|×d) time, O(rows×cols) memory.
func Neighbor(g *grid.Grid, h *hole.Hole, w weight.Kernel, opts ...Option) (*Result, error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	if err = checkInputs(g, h, w); err != nil {
		return nil, fmt.Errorf("fill.Neighbor: %w", err)
	}

	work := g.Clone()
	res := &Result{Grid: work}
	var near *nearest // built on first fallback
	known := make([]sample, 0, 8)

	for _, c := range h.Interior() {
		known = known[:0]
		for _, n := range work.Neighbors(c, h.Conn()) {
			if work.IsMissing(n) {
				continue
			}
			v, _ := work.At(n)
			known = append(known, sample{c: n, v: v})
		}
		if v, ok := average(c, known, w); ok {
			_ = work.Set(c, v)
			res.Filled++
			continue
		}

		de := &DegenerateError{Cell: c, Strategy: NeighborLocal}
		switch o.Policy {
		case Reject:
			return nil, de
		case Fallback:
			if near == nil {
				near = newNearest(collect(g, h.Boundary()))
			}
			if v, ok := average(c, near.query(c, o.FallbackK), w); ok {
				_ = work.Set(c, v)
				res.Filled++
				res.Fallbacks++
				continue
			}
		}
		res.Degenerate = append(res.Degenerate, de)
		res.Unfilled = append(res.Unfilled, c)
	}

	return res, nil
}

package fill

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/holefill/grid"
	"github.com/katalvlaran/holefill/hole"
	"github.com/katalvlaran/holefill/weight"
)

// Boundary fills every interior cell of h with
//
//	value(x) = Σ_{y∈boundary} w(x,y)·g[y] / Σ_{y∈boundary} w(x,y)
//
// All values are computed from g before anything is written, so the result
// is the same for any processing order and any Workers count.
// Policy Fallback behaves as Skip here.
//
// Returns ErrNilInput, ErrHoleMismatch, ErrOptionViolation, or the first
// *DegenerateError in interior order under Reject.
// Complexity: O(|interior|×|boundary|) time, O(rows×cols) memory.
func Boundary(g *grid.Grid, h *hole.Hole, w weight.Kernel, opts ...Option) (*Result, error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	if err = checkInputs(g, h, w); err != nil {
		return nil, fmt.Errorf("fill.Boundary: %w", err)
	}

	interior := h.Interior()
	known := collect(g, h.Boundary())
	values := make([]float64, len(interior))
	ok := make([]bool, len(interior))
	compute := func(start, end int) {
		for i := start; i < end; i++ {
			values[i], ok[i] = average(interior[i], known, w)
		}
	}

	if o.Workers > 1 && len(interior) > 1 {
		var eg errgroup.Group
		eg.SetLimit(o.Workers)
		chunk := (len(interior) + o.Workers - 1) / o.Workers
		for start := 0; start < len(interior); start += chunk {
			start := start // per-iteration copy (go directive < 1.22)
			end := min(start+chunk, len(interior))
			eg.Go(func() error {
				compute(start, end)
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	} else {
		compute(0, len(interior))
	}

	res := &Result{Grid: g.Clone()}
	for i, c := range interior {
		if ok[i] {
			_ = res.Grid.Set(c, values[i])
			res.Filled++
			continue
		}
		de := &DegenerateError{Cell: c, Strategy: BoundaryWide}
		if o.Policy == Reject {
			return nil, de
		}
		res.Degenerate = append(res.Degenerate, de)
		res.Unfilled = append(res.Unfilled, c)
	}

	return res, nil
}

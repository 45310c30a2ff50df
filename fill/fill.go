package fill

import (
	"fmt"
	"math"

	"github.com/katalvlaran/holefill/grid"
	"github.com/katalvlaran/holefill/hole"
	"github.com/katalvlaran/holefill/weight"
)

// Apply runs the named strategy. It is a convenience for callers that pick
// the strategy at runtime.
func Apply(s Strategy, g *grid.Grid, h *hole.Hole, w weight.Kernel, opts ...Option) (*Result, error) {
	switch s {
	case BoundaryWide:
		return Boundary(g, h, w, opts...)
	case NeighborLocal:
		return Neighbor(g, h, w, opts...)
	default:
		return nil, fmt.Errorf("fill.Apply(%s): %w", s, ErrUnknownStrategy)
	}
}

// checkInputs validates that h was traced on g: every interior cell must be
// in bounds and hold the sentinel.
func checkInputs(g *grid.Grid, h *hole.Hole, w weight.Kernel) error {
	if g == nil || h == nil || w == nil {
		return ErrNilInput
	}
	if f, ok := w.(weight.Func); ok && f == nil {
		return ErrNilInput
	}
	for _, c := range h.Interior() {
		if !g.IsMissing(c) {
			return fmt.Errorf("interior cell %s: %w", c, ErrHoleMismatch)
		}
	}
	for _, c := range h.Boundary() {
		if !g.InBounds(c) || g.IsMissing(c) {
			return fmt.Errorf("boundary cell %s: %w", c, ErrHoleMismatch)
		}
	}
	return nil
}

// sample is a known coordinate and its value.
type sample struct {
	c grid.Coord
	v float64
}

// minNormal is the smallest positive normal float64.
const minNormal = 0x1p-1022

// average computes Σ w(x,s)·s.v / Σ w(x,s). When the plain weights sum
// below the normal float64 range the sum is redone in log space, scaled by
// the largest weight. ok is false when every weight is zero or the quotient
// is not finite.
// Complexity: O(len(known)).
func average(x grid.Coord, known []sample, w weight.Kernel) (value float64, ok bool) {
	var num, den float64
	for _, s := range known {
		wt := w.Weight(x, s.c)
		num += wt * s.v
		den += wt
	}
	if den >= minNormal {
		value = num / den
		if !math.IsNaN(value) && !math.IsInf(value, 0) {
			return value, true
		}
	}
	return logAverage(x, known, w)
}

// logAverage is average with each weight divided by the largest one before
// exponentiation, so the denominator is at least 1.
func logAverage(x grid.Coord, known []sample, w weight.Kernel) (value float64, ok bool) {
	logs := make([]float64, len(known))
	top := math.Inf(-1)
	for i, s := range known {
		l := w.LogWeight(x, s.c)
		if math.IsNaN(l) || math.IsInf(l, 1) {
			return 0, false
		}
		logs[i] = l
		top = math.Max(top, l)
	}
	if math.IsInf(top, -1) {
		return 0, false
	}
	var num, den float64
	for i, s := range known {
		wt := math.Exp(logs[i] - top)
		num += wt * s.v
		den += wt
	}
	value = num / den
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// collect reads the values of cs from g.
func collect(g *grid.Grid, cs []grid.Coord) []sample {
	out := make([]sample, 0, len(cs))
	for _, c := range cs {
		v, _ := g.At(c)
		out = append(out, sample{c: c, v: v})
	}
	return out
}

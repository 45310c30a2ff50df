package fill_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/holefill/fill"
	"github.com/katalvlaran/holefill/grid"
	"github.com/katalvlaran/holefill/hole"
	"github.com/katalvlaran/holefill/weight"
)

const m = grid.MissingValue

func mustGrid(t testing.TB, rows [][]float64) *grid.Grid {
	t.Helper()
	g, err := grid.FromRows(rows)
	require.NoError(t, err)
	return g
}

func mustDetect(t testing.TB, g *grid.Grid, conn grid.Connectivity) *hole.Hole {
	t.Helper()
	h, err := hole.Detect(g, conn)
	require.NoError(t, err)
	return h
}

func at(t testing.TB, g *grid.Grid, x, y int) float64 {
	t.Helper()
	v, err := g.At(grid.Coord{X: x, Y: y})
	require.NoError(t, err)
	return v
}

//----------------------------------------------------------------------------//
// Hand-computed references
//----------------------------------------------------------------------------//

// TestSingleCell_FourNeighbors: four equidistant boundary cells with values
// {0.2, 0.4, 0.6, 0.8} share equal weight 1/(1²+0.01), so the result is 0.5.
func TestSingleCell_FourNeighbors(t *testing.T) {
	g := mustGrid(t, [][]float64{
		{0, 0.2, 0},
		{0.8, m, 0.4},
		{0, 0.6, 0},
	})
	h := mustDetect(t, g, grid.Conn4)
	require.Equal(t, 4, h.BoundaryLen())
	w := weight.Default(2, 0.01)

	for _, s := range []fill.Strategy{fill.BoundaryWide, fill.NeighborLocal} {
		t.Run(s.String(), func(t *testing.T) {
			res, err := fill.Apply(s, g, h, w)
			require.NoError(t, err)
			assert.InDelta(t, 0.5, at(t, res.Grid, 1, 1), 1e-12)
			assert.Equal(t, 1, res.Filled)
			assert.True(t, res.Complete())
		})
	}
}

// TestSingleCell_EightNeighbors mixes orthogonal (w=1/1.01) and diagonal
// (w=1/2.01) boundary cells:
//
//	value = (2.0/1.01 + 4.0/2.01) / (4/1.01 + 4/2.01) ≈ 0.6672185430463576
func TestSingleCell_EightNeighbors(t *testing.T) {
	g := mustGrid(t, [][]float64{
		{1, 0.2, 1},
		{0.8, m, 0.4},
		{1, 0.6, 1},
	})
	h := mustDetect(t, g, grid.Conn8)
	require.Equal(t, 8, h.BoundaryLen())

	res, err := fill.Boundary(g, h, weight.Default(2, 0.01))
	require.NoError(t, err)

	a, b := 1/1.01, 1/2.01
	want := (a*2.0 + b*4.0) / (4*a + 4*b)
	assert.InDelta(t, want, at(t, res.Grid, 1, 1), 1e-12)
	assert.InDelta(t, 0.6672185430463576, at(t, res.Grid, 1, 1), 1e-12)
}

//----------------------------------------------------------------------------//
// Boundary
//----------------------------------------------------------------------------//

func TestBoundary_LeavesInputUntouched(t *testing.T) {
	g := mustGrid(t, [][]float64{
		{0.1, 0.2, 0.3, 0.4},
		{0.5, m, m, 0.6},
		{0.7, 0.8, m, 0.9},
	})
	before := g.String()
	h := mustDetect(t, g, grid.Conn4)

	res, err := fill.Boundary(g, h, weight.Default(2, 0.01))
	require.NoError(t, err)
	assert.Equal(t, before, g.String())
	assert.Zero(t, res.Grid.MissingCount())
	assert.Equal(t, 3, res.Filled)
	assert.NotSame(t, g, res.Grid)
}

// TestBoundary_Deterministic checks identical output across repeated runs
// and across worker counts.
func TestBoundary_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	g := randomGridWithBlock(t, rng, 24, 30, 6, 8, 10, 9)
	h := mustDetect(t, g, grid.Conn8)
	w := weight.Default(3, 1e-6)

	ref, err := fill.Boundary(g, h, w)
	require.NoError(t, err)
	for _, workers := range []int{1, 2, 3, 8, 64} {
		res, err := fill.Boundary(g, h, w, fill.WithWorkers(workers))
		require.NoError(t, err)
		assert.Equal(t, ref.Grid.String(), res.Grid.String(), "workers=%d", workers)
	}
}

// TestBoundary_ConvexCombination: each value lies within [min, max] of the boundary.
func TestBoundary_ConvexCombination(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		g := randomGridWithBlock(t, rng, 12, 12, rng.Intn(8), rng.Intn(8), 1+rng.Intn(4), 1+rng.Intn(4))
		h := mustDetect(t, g, grid.Conn4)
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, c := range h.Boundary() {
			v, _ := g.At(c)
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
		res, err := fill.Boundary(g, h, weight.Default(float64(rng.Intn(5)), 0.01))
		require.NoError(t, err)
		for _, c := range h.Interior() {
			v, _ := res.Grid.At(c)
			assert.GreaterOrEqual(t, v, lo-1e-12)
			assert.LessOrEqual(t, v, hi+1e-12)
		}
	}
}

// TestBoundary_EmptyBoundary covers a hole that spans the whole grid.
func TestBoundary_EmptyBoundary(t *testing.T) {
	g := mustGrid(t, [][]float64{{m, m}, {m, m}})
	h := mustDetect(t, g, grid.Conn4)
	w := weight.Default(2, 0.01)

	_, err := fill.Boundary(g, h, w)
	require.ErrorIs(t, err, fill.ErrDegenerateWeight)
	var de *fill.DegenerateError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, grid.Coord{X: 0, Y: 0}, de.Cell)
	assert.Equal(t, fill.BoundaryWide, de.Strategy)

	for _, p := range []fill.Policy{fill.Skip, fill.Fallback} {
		res, err := fill.Boundary(g, h, w, fill.WithPolicy(p))
		require.NoError(t, err)
		assert.Zero(t, res.Filled)
		assert.Len(t, res.Unfilled, 4)
		assert.Len(t, res.Degenerate, 4)
		assert.False(t, res.Complete())
		assert.Equal(t, 4, res.Grid.MissingCount())
	}
}

// TestBoundary_NaNKernel: a kernel producing NaN must surface as degenerate.
func TestBoundary_NaNKernel(t *testing.T) {
	g := mustGrid(t, [][]float64{{0.5, m}})
	h := mustDetect(t, g, grid.Conn4)
	nan := weight.Func(func(_, _ grid.Coord) float64 { return math.NaN() })

	_, err := fill.Boundary(g, h, nan)
	assert.ErrorIs(t, err, fill.ErrDegenerateWeight)
}

// TestBoundary_CustomKernel: a constant kernel reduces to the plain mean.
func TestBoundary_CustomKernel(t *testing.T) {
	g := mustGrid(t, [][]float64{
		{0.1, 0.3, 0.0},
		{0.5, m, 0.0},
		{0.0, 0.7, 0.0},
	})
	h := mustDetect(t, g, grid.Conn4)
	flat := weight.Func(func(_, _ grid.Coord) float64 { return 2 })

	res, err := fill.Boundary(g, h, flat)
	require.NoError(t, err)
	assert.InDelta(t, (0.3+0.0+0.7+0.5)/4, at(t, res.Grid, 1, 1), 1e-12)
}

// TestBoundary_SteepFalloff fills a 10×10 hole with z=1100, where every
// plain weight underflows. Each cell must take the mean of its nearest
// boundary cells instead of being reported degenerate.
func TestBoundary_SteepFalloff(t *testing.T) {
	rows := make([][]float64, 12)
	for x := range rows {
		rows[x] = make([]float64, 12)
		for y := range rows[x] {
			rows[x][y] = 0.1 + 0.05*float64(x) + 0.003*float64(y)
			if x >= 1 && x <= 10 && y >= 1 && y <= 10 {
				rows[x][y] = m
			}
		}
	}
	g := mustGrid(t, rows)
	h := mustDetect(t, g, grid.Conn4)
	require.Equal(t, 100, h.Len())

	for _, z := range []float64{400, 1100} {
		res, err := fill.Boundary(g, h, weight.Default(z, 0.01))
		require.NoError(t, err, "z=%g", z)
		assert.Equal(t, 100, res.Filled)
		assert.True(t, res.Complete())

		// (2,2): (0,2) and (2,0) at distance 2, next nearest at √5.
		assert.InDelta(t, (at(t, g, 0, 2)+at(t, g, 2, 0))/2, at(t, res.Grid, 2, 2), 1e-9, "z=%g", z)
		// (5,5): (0,5) and (5,0) at distance 5, (11,5) and (5,11) at 6.
		assert.InDelta(t, (at(t, g, 0, 5)+at(t, g, 5, 0))/2, at(t, res.Grid, 5, 5), 1e-9, "z=%g", z)
	}
}

// TestFill_EmptyHole: an empty hole is a no-op for both strategies.
func TestFill_EmptyHole(t *testing.T) {
	g := mustGrid(t, [][]float64{{0.1, 0.2}, {0.3, 0.4}})
	for _, s := range []fill.Strategy{fill.BoundaryWide, fill.NeighborLocal} {
		t.Run(s.String(), func(t *testing.T) {
			res, err := fill.Apply(s, g, &hole.Hole{}, weight.Default(2, 0.01))
			require.NoError(t, err)
			assert.Zero(t, res.Filled)
			assert.True(t, res.Complete())
			assert.Empty(t, res.Degenerate)
			assert.NotSame(t, g, res.Grid)
			assert.Equal(t, g.String(), res.Grid.String())
		})
	}
}

//----------------------------------------------------------------------------//
// Neighbor
//----------------------------------------------------------------------------//

// TestNeighbor_Propagates: earlier writes become known to later cells.
func TestNeighbor_Propagates(t *testing.T) {
	g := mustGrid(t, [][]float64{{0.3, m, m, m}})
	h := mustDetect(t, g, grid.Conn4)

	res, err := fill.Neighbor(g, h, weight.Default(2, 0.01))
	require.NoError(t, err)
	for y := 1; y < 4; y++ {
		assert.InDelta(t, 0.3, at(t, res.Grid, 0, y), 1e-12)
	}
	assert.Equal(t, 3, res.Filled)
	assert.True(t, g.IsMissing(grid.Coord{X: 0, Y: 3}), "input must stay untouched")
}

// TestNeighbor_BFSOrder checks the exact values of an L-shaped hole filled
// in discovery order (1,1) → (1,2) → (2,2) under a constant kernel.
func TestNeighbor_BFSOrder(t *testing.T) {
	g := mustGrid(t, [][]float64{
		{0.0, 0.4, 0.8, 0.0},
		{0.2, m, m, 0.6},
		{0.0, 0.1, m, 0.3},
	})
	h := mustDetect(t, g, grid.Conn4)
	flat := weight.Func(func(_, _ grid.Coord) float64 { return 1 })

	res, err := fill.Neighbor(g, h, flat)
	require.NoError(t, err)

	v11 := (0.4 + 0.1 + 0.2) / 3 // N, S, W; E missing
	v12 := (0.8 + 0.6 + v11) / 3 // N, E, W=(1,1); S missing
	v22 := (v12 + 0.3 + 0.1) / 3 // N=(1,2), E, W
	assert.InDelta(t, v11, at(t, res.Grid, 1, 1), 1e-12)
	assert.InDelta(t, v12, at(t, res.Grid, 1, 2), 1e-12)
	assert.InDelta(t, v22, at(t, res.Grid, 2, 2), 1e-12)
}

// TestNeighbor_Degenerate covers the three policies on a seed whose
// neighbors are all missing:
//
//	_ _
//	_ 0.5
func TestNeighbor_Degenerate(t *testing.T) {
	g := mustGrid(t, [][]float64{
		{m, m},
		{m, 0.5},
	})
	h := mustDetect(t, g, grid.Conn4)
	w := weight.Default(2, 0.01)

	t.Run("reject", func(t *testing.T) {
		res, err := fill.Neighbor(g, h, w)
		assert.Nil(t, res)
		var de *fill.DegenerateError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, grid.Coord{X: 0, Y: 0}, de.Cell)
		assert.Equal(t, fill.NeighborLocal, de.Strategy)
		assert.ErrorIs(t, err, fill.ErrDegenerateWeight)
	})

	t.Run("skip", func(t *testing.T) {
		res, err := fill.Neighbor(g, h, w, fill.WithPolicy(fill.Skip))
		require.NoError(t, err)
		assert.Equal(t, 2, res.Filled)
		if diff := cmp.Diff([]grid.Coord{{X: 0, Y: 0}}, res.Unfilled); diff != "" {
			t.Errorf("unfilled mismatch (-want +got):\n%s", diff)
		}
		assert.True(t, res.Grid.IsMissing(grid.Coord{X: 0, Y: 0}))
		assert.InDelta(t, 0.5, at(t, res.Grid, 0, 1), 1e-12)
		assert.InDelta(t, 0.5, at(t, res.Grid, 1, 0), 1e-12)
	})

	t.Run("fallback", func(t *testing.T) {
		res, err := fill.Neighbor(g, h, w, fill.WithPolicy(fill.Fallback))
		require.NoError(t, err)
		assert.Equal(t, 3, res.Filled)
		assert.Equal(t, 1, res.Fallbacks)
		assert.True(t, res.Complete())
		assert.InDelta(t, 0.5, at(t, res.Grid, 0, 0), 1e-12)
	})
}

// TestNeighbor_FallbackNearestK checks that the fallback averages only the
// k nearest boundary cells.
func TestNeighbor_FallbackNearestK(t *testing.T) {
	// Seed (0,0) has no known neighbor. The boundary is (0,2)=0.2 at d²=4,
	// then (1,2) and (2,1), both 0.9 at d²=5.
	g := mustGrid(t, [][]float64{
		{m, m, 0.2},
		{m, m, 0.9},
		{m, 0.9, 0.9},
	})
	h := mustDetect(t, g, grid.Conn4)
	flat := weight.Func(func(_, _ grid.Coord) float64 { return 1 })

	res, err := fill.Neighbor(g, h, flat, fill.WithPolicy(fill.Fallback), fill.WithFallbackK(1))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Fallbacks)
	assert.InDelta(t, 0.2, at(t, res.Grid, 0, 0), 1e-12)
}

// TestNeighbor_FallbackNoBoundary: fallback with nothing known stays unfilled.
func TestNeighbor_FallbackNoBoundary(t *testing.T) {
	g := mustGrid(t, [][]float64{{m, m}})
	h := mustDetect(t, g, grid.Conn8)

	res, err := fill.Neighbor(g, h, weight.Default(1, 0.1), fill.WithPolicy(fill.Fallback))
	require.NoError(t, err)
	assert.Zero(t, res.Filled)
	assert.Len(t, res.Unfilled, 2)
	assert.Len(t, res.Degenerate, 2)
}

//----------------------------------------------------------------------------//
// Validation
//----------------------------------------------------------------------------//

func TestFill_InputErrors(t *testing.T) {
	g := mustGrid(t, [][]float64{{0.5, m}})
	h := mustDetect(t, g, grid.Conn4)
	w := weight.Default(2, 0.01)

	for _, s := range []fill.Strategy{fill.BoundaryWide, fill.NeighborLocal} {
		_, err := fill.Apply(s, nil, h, w)
		assert.ErrorIs(t, err, fill.ErrNilInput)
		_, err = fill.Apply(s, g, nil, w)
		assert.ErrorIs(t, err, fill.ErrNilInput)
		_, err = fill.Apply(s, g, h, nil)
		assert.ErrorIs(t, err, fill.ErrNilInput)
		_, err = fill.Apply(s, g, h, weight.Func(nil))
		assert.ErrorIs(t, err, fill.ErrNilInput)

		other := mustGrid(t, [][]float64{{0.5, 0.5}})
		_, err = fill.Apply(s, other, h, w)
		assert.ErrorIs(t, err, fill.ErrHoleMismatch)

		small := mustGrid(t, [][]float64{{m}})
		_, err = fill.Apply(s, small, h, w)
		assert.ErrorIs(t, err, fill.ErrHoleMismatch)
	}

	_, err := fill.Apply(fill.Strategy(9), g, h, w)
	assert.ErrorIs(t, err, fill.ErrUnknownStrategy)
}

func TestFill_OptionViolations(t *testing.T) {
	g := mustGrid(t, [][]float64{{0.5, m}})
	h := mustDetect(t, g, grid.Conn4)
	w := weight.Default(2, 0.01)

	cases := map[string]fill.Option{
		"workers":  fill.WithWorkers(0),
		"policy":   fill.WithPolicy(fill.Policy(7)),
		"fallback": fill.WithFallbackK(0),
	}
	for name, opt := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := fill.Boundary(g, h, w, opt)
			assert.ErrorIs(t, err, fill.ErrOptionViolation)
			_, err = fill.Neighbor(g, h, w, opt)
			assert.ErrorIs(t, err, fill.ErrOptionViolation)
		})
	}
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "boundary", fill.BoundaryWide.String())
	assert.Equal(t, "neighbor", fill.NeighborLocal.String())
	assert.Equal(t, "skip", fill.Skip.String())
	de := &fill.DegenerateError{Cell: grid.Coord{X: 1, Y: 2}, Strategy: fill.NeighborLocal}
	assert.Equal(t, "fill: neighbor fill at (1, 2): zero weight denominator", de.Error())
}

//----------------------------------------------------------------------------//
// helpers
//----------------------------------------------------------------------------//

// randomGridWithBlock fills a rows×cols grid with random samples in [0,1)
// and carves a missing h×w block at (top,left), clipped to the grid.
func randomGridWithBlock(t testing.TB, rng *rand.Rand, rows, cols, top, left, bh, bw int) *grid.Grid {
	t.Helper()
	values := make([][]float64, rows)
	for x := range values {
		values[x] = make([]float64, cols)
		for y := range values[x] {
			values[x][y] = rng.Float64()
		}
	}
	for x := top; x < top+bh && x < rows; x++ {
		for y := left; y < left+bw && y < cols; y++ {
			values[x][y] = m
		}
	}
	return mustGrid(t, values)
}

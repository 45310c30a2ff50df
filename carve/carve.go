// Package carve punches synthetic holes into a grid.Grid, for demos,
// benchmarks and tests of the detector and filler.
//
// Rect carves an axis-aligned rectangle. Random grows one 4-connected blob
// of a requested size from a random start cell; it is deterministic for a
// given seed (WithSeed) or *rand.Rand (WithRand).
package carve

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/holefill/grid"
)

var (
	// ErrBadSize indicates a non-positive rectangle side or blob size.
	ErrBadSize = errors.New("carve: size must be > 0")
	// ErrOutside indicates a rectangle that does not overlap the grid.
	ErrOutside = errors.New("carve: region lies outside the grid")
)

// Option customizes Random.
type Option func(*config)

type config struct {
	rng *rand.Rand
}

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand uses r as the random source. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("carve: WithRand(nil)")
	}
	return func(c *config) {
		c.rng = r
	}
}

// Rect marks the height×width rectangle with top-left corner (top, left) as
// missing, clipped to the grid. Returns the number of cells carved.
// Complexity: O(height×width).
func Rect(g *grid.Grid, top, left, height, width int) (int, error) {
	if height <= 0 || width <= 0 {
		return 0, fmt.Errorf("carve.Rect(%dx%d): %w", height, width, ErrBadSize)
	}
	x0, y0 := max(top, 0), max(left, 0)
	x1, y1 := min(top+height, g.Rows()), min(left+width, g.Cols())
	if x0 >= x1 || y0 >= y1 {
		return 0, fmt.Errorf("carve.Rect(%d,%d,%d,%d): %w", top, left, height, width, ErrOutside)
	}
	n := 0
	for x := x0; x < x1; x++ {
		for y := y0; y < y1; y++ {
			_ = g.MarkMissing(grid.Coord{X: x, Y: y})
			n++
		}
	}
	return n, nil
}

// Random grows a single 4-connected blob of up to n missing cells. The start
// cell is uniform over the grid; each step picks a uniform frontier cell.
// Without WithSeed or WithRand the seed is 1. Returns the cells carved in
// carving order; fewer than n only if the grid is smaller than n.
// Complexity: O(n) expected.
func Random(g *grid.Grid, n int, opts ...Option) ([]grid.Coord, error) {
	if n <= 0 {
		return nil, fmt.Errorf("carve.Random(%d): %w", n, ErrBadSize)
	}
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(1))
	}
	rng := cfg.rng

	start := grid.Coord{X: rng.Intn(g.Rows()), Y: rng.Intn(g.Cols())}
	inBlob := map[grid.Coord]bool{}
	onFrontier := map[grid.Coord]bool{start: true}
	frontier := []grid.Coord{start}
	var carved []grid.Coord

	for len(carved) < n && len(frontier) > 0 {
		i := rng.Intn(len(frontier))
		c := frontier[i]
		frontier[i] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		inBlob[c] = true
		_ = g.MarkMissing(c)
		carved = append(carved, c)
		for _, nb := range g.Neighbors(c, grid.Conn4) {
			if inBlob[nb] || onFrontier[nb] {
				continue
			}
			onFrontier[nb] = true
			frontier = append(frontier, nb)
		}
	}

	return carved, nil
}

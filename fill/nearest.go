package fill

import (
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/katalvlaran/holefill/grid"
)

// site is a known sample placed in a kd-tree keyed by (row, column).
type site sample

// Compare implements kdtree.Comparable.
func (s site) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(site)
	if d == 0 {
		return float64(s.c.X - q.c.X)
	}
	return float64(s.c.Y - q.c.Y)
}

// Dims implements kdtree.Comparable.
func (s site) Dims() int { return 2 }

// Distance returns the squared Euclidean distance, as kdtree expects.
func (s site) Distance(c kdtree.Comparable) float64 {
	q := c.(site)
	dx, dy := float64(s.c.X-q.c.X), float64(s.c.Y-q.c.Y)
	return dx*dx + dy*dy
}

// sites satisfies kdtree.Interface.
type sites []site

func (p sites) Index(i int) kdtree.Comparable         { return p[i] }
func (p sites) Len() int                              { return len(p) }
func (p sites) Slice(start, end int) kdtree.Interface { return p[start:end] }
func (p sites) Pivot(d kdtree.Dim) int {
	plane := sitePlane{sites: p, Dim: d}
	return kdtree.Partition(plane, kdtree.MedianOfMedians(plane))
}

// sitePlane orders sites along one dimension for pivoting.
type sitePlane struct {
	sites
	kdtree.Dim
}

func (p sitePlane) Less(i, j int) bool {
	if p.Dim == 0 {
		return p.sites[i].c.X < p.sites[j].c.X
	}
	return p.sites[i].c.Y < p.sites[j].c.Y
}

func (p sitePlane) Slice(start, end int) kdtree.SortSlicer {
	return sitePlane{sites: p.sites[start:end], Dim: p.Dim}
}

func (p sitePlane) Swap(i, j int) {
	p.sites[i], p.sites[j] = p.sites[j], p.sites[i]
}

// nearest answers k-nearest queries over a fixed set of known samples.
type nearest struct {
	tree *kdtree.Tree
	size int
}

func newNearest(known []sample) *nearest {
	if len(known) == 0 {
		return &nearest{}
	}
	pts := make(sites, len(known))
	for i, s := range known {
		pts[i] = site(s)
	}
	return &nearest{tree: kdtree.New(pts, false), size: len(pts)}
}

// query returns up to k samples nearest to c, ordered by distance and then
// row-major so the result is deterministic.
// Complexity: O(k log n) on average.
func (n *nearest) query(c grid.Coord, k int) []sample {
	if n.tree == nil {
		return nil
	}
	keeper := kdtree.NewNKeeper(k)
	n.tree.NearestSet(keeper, site{c: c})

	type hit struct {
		s sample
		d float64
	}
	hits := make([]hit, 0, k)
	for _, cd := range keeper.Heap {
		if cd.Comparable == nil {
			continue
		}
		hits = append(hits, hit{s: sample(cd.Comparable.(site)), d: cd.Dist})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].d != hits[j].d {
			return hits[i].d < hits[j].d
		}
		return hits[i].s.c.Less(hits[j].s.c)
	})
	out := make([]sample, len(hits))
	for i, h := range hits {
		out[i] = h.s
	}
	return out
}

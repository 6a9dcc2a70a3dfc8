// Package spatial indexes vertex positions for nearest neighbour
// and radius queries.
package spatial

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// Index is an immutable kd-tree over a set of vertices.
type Index struct {
	tree *kdtree.Tree
	n    int
}

// New indexes the vertices ids of positions. An empty ids gives an
// empty index.
func New(positions []r3.Vec, ids []int) *Index {
	pts := make(points, len(ids))
	for i, id := range ids {
		pts[i] = point{Vec: positions[id], idx: id}
	}
	if len(pts) == 0 {
		return &Index{}
	}
	return &Index{tree: kdtree.New(pts, false), n: len(pts)}
}

// Len returns the number of indexed vertices.
func (ix *Index) Len() int { return ix.n }

// Nearest returns the indexed vertex closest to q and its distance.
// ok is false for an empty index.
func (ix *Index) Nearest(q r3.Vec) (id int, dist float64, ok bool) {
	if ix.n == 0 {
		return -1, math.Inf(1), false
	}
	c, d2 := ix.tree.Nearest(point{Vec: q})
	if c == nil {
		return -1, math.Inf(1), false
	}
	return c.(point).idx, math.Sqrt(d2), true
}

// Within returns the indexed vertices strictly closer than r to q,
// sorted by vertex index.
func (ix *Index) Within(q r3.Vec, r float64) []int {
	if ix.n == 0 || r <= 0 {
		return nil
	}
	r2 := r * r
	keep := kdtree.NewDistKeeper(r2)
	ix.tree.NearestSet(keep, point{Vec: q})
	var found []int
	for _, c := range keep.Heap {
		// The keeper is seeded with a nil sentinel at the query radius.
		if c.Comparable == nil || c.Dist >= r2 {
			continue
		}
		found = append(found, c.Comparable.(point).idx)
	}
	sort.Ints(found)
	return found
}

// point is an indexed vertex. Distance is squared euclidean distance.
type point struct {
	r3.Vec
	idx int
}

func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(point)
	switch d {
	case 0:
		return p.X - q.X
	case 1:
		return p.Y - q.Y
	case 2:
		return p.Z - q.Z
	}
	panic("illegal dimension")
}

func (p point) Dims() int { return 3 }

func (p point) Distance(c kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(p.Vec, c.(point).Vec))
}

// points implements kdtree.Interface.
type points []point

func (p points) Index(i int) kdtree.Comparable { return p[i] }

func (p points) Len() int { return len(p) }

func (p points) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(plane{points: p, dim: d}, kdtree.MedianOfMedians(plane{points: p, dim: d}))
}

func (p points) Slice(start, end int) kdtree.Interface { return p[start:end] }

// plane sorts points along one dimension.
type plane struct {
	points
	dim kdtree.Dim
}

func (p plane) Less(i, j int) bool {
	return p.points[i].Compare(p.points[j], p.dim) < 0
}

func (p plane) Swap(i, j int) { p.points[i], p.points[j] = p.points[j], p.points[i] }

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{points: p.points[start:end], dim: p.dim}
}

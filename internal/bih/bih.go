// Package bih implements a bounding interval hierarchy over a triangle mesh
// for ray casting and closest point queries. Trees are built once from an
// immutable snapshot of the geometry and are safe for concurrent reads.
package bih

import (
	"math"
	"sort"

	"github.com/soypat/dent/internal/d3"
	"github.com/soypat/dent/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	leaf = iota
	xClip
	yClip
	zClip
)

// maxLeafFaces is the face count at or below which a node becomes a leaf.
const maxLeafFaces = 4

type node struct {
	flags int // offset to children is stored in the upper bits, lower two bits are used as flags
	// either:
	// - left and right clipping plane values (as float64 bits)
	// - or the face range [lo,hi) that belongs to this leaf
	lo, hi uint64
}

func (n *node) isLeaf() bool { return n.flags&3 == leaf }

func (n *node) axis() int { return n.flags&3 - 1 }

func (n *node) children() int { return n.flags >> 2 }

func (n *node) leftClip() float64 { return math.Float64frombits(n.lo) }

func (n *node) rightClip() float64 { return math.Float64frombits(n.hi) }

// Tree is a bounding interval hierarchy over the faces of a mesh.
type Tree struct {
	verts []r3.Vec
	// faces are stored in tree order. ids maps them back to the
	// caller's face indices.
	faces [][3]int
	ids   []int
	nodes []node
	bb    d3.Box

	faceN []r3.Vec          // unit face normals, tree order
	edgeN map[[2]int]r3.Vec // edge pseudonormals keyed by lower vertex index first
	vertN []r3.Vec          // vertex pseudonormals
}

// New builds a tree over faces indexing into verts. verts and faces are
// not retained beyond an internal copy.
func New(verts []r3.Vec, faces [][3]int) *Tree {
	t := &Tree{
		verts: append([]r3.Vec(nil), verts...),
		faces: make([][3]int, len(faces)),
		ids:   make([]int, len(faces)),
		bb:    d3.EmptyBox(),
	}
	centroids := make([]r3.Vec, len(faces))
	order := make([]int, len(faces))
	for i, f := range faces {
		order[i] = i
		centroids[i] = r3.Scale(1./3., r3.Add(r3.Add(verts[f[0]], verts[f[1]]), verts[f[2]]))
		for _, idx := range f {
			t.bb = t.bb.Include(verts[idx])
		}
	}
	if len(faces) > 0 {
		t.nodes = make([]node, 1)
		t.subdivide(0, 0, order, faces, centroids, t.bb)
	}
	for i, id := range order {
		t.faces[i] = faces[id]
		t.ids[i] = id
	}
	t.faceN = mesh.FaceNormals(t.verts, t.faces)
	t.edgeN = mesh.EdgeNormals(t.verts, t.faces)
	t.vertN = mesh.VertexNormals(t.verts, t.faces)
	return t
}

func (t *Tree) subdivide(nodeIdx, offset int, order []int, faces [][3]int, centroids []r3.Vec, bb d3.Box) {
	if len(order) <= maxLeafFaces {
		t.nodes[nodeIdx] = node{
			flags: leaf,
			lo:    uint64(offset),
			hi:    uint64(offset + len(order)),
		}
		return
	}
	// classical heuristic, the longest axis
	// using the median as the pivot point
	axis := d3.LongestAxis(bb.Size())
	sort.SliceStable(order, func(i, j int) bool {
		return d3.Component(centroids[order[i]], axis) < d3.Component(centroids[order[j]], axis)
	})
	half := len(order) / 2
	leftBB, rightBB := d3.EmptyBox(), d3.EmptyBox()
	for _, id := range order[:half] {
		for _, idx := range faces[id] {
			leftBB = leftBB.Include(t.verts[idx])
		}
	}
	for _, id := range order[half:] {
		for _, idx := range faces[id] {
			rightBB = rightBB.Include(t.verts[idx])
		}
	}
	// append two new nodes to store the children
	children := len(t.nodes)
	t.nodes = append(t.nodes, node{}, node{})
	t.subdivide(children, offset, order[:half], faces, centroids, leftBB)
	t.subdivide(children+1, offset+half, order[half:], faces, centroids, rightBB)

	t.nodes[nodeIdx] = node{
		flags: children<<2 | (axis + 1),
		lo:    math.Float64bits(d3.Component(leftBB.Max, axis)),
		hi:    math.Float64bits(d3.Component(rightBB.Min, axis)),
	}
}

// childBoxes returns the bounding boxes of the children of n given the
// box of n itself.
func childBoxes(n *node, bb d3.Box) (left, right d3.Box) {
	left, right = bb, bb
	switch n.axis() {
	case 0:
		left.Max.X = n.leftClip()
		right.Min.X = n.rightClip()
	case 1:
		left.Max.Y = n.leftClip()
		right.Min.Y = n.rightClip()
	case 2:
		left.Max.Z = n.leftClip()
		right.Min.Z = n.rightClip()
	}
	return left, right
}

// Bounds returns the bounding box of the tree's faces.
func (t *Tree) Bounds() r3.Box { return r3.Box(t.bb) }

func (t *Tree) triangle(i int) r3.Triangle {
	f := t.faces[i]
	return r3.Triangle{t.verts[f[0]], t.verts[f[1]], t.verts[f[2]]}
}

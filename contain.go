package dent

import (
	"math"

	"github.com/soypat/dent/internal/bih"
	"github.com/soypat/dent/internal/d3"
	"github.com/soypat/dent/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// parityNudge moves a ray origin past each hit so a hit on a shared
	// edge or vertex is counted once.
	parityNudge = 1e-5
	// maxParityHits bounds the crossings counted along one axis.
	maxParityHits = 10000
)

// Oracle decides whether points lie inside a closed mesh.
type Oracle interface {
	Inside(p r3.Vec) bool
}

// NewRayParity returns an oracle over the world space positions of m that
// counts ray crossings along the +X, +Y and +Z axes. A point is inside
// when every axis crosses the surface an odd number of times.
func NewRayParity(m *mesh.Mesh) Oracle {
	return rayParity{tree: worldTree(m, m.Positions())}
}

// NewClosestSide returns an oracle over the world space positions of m
// that tests the pseudonormal of the surface feature closest to the point.
func NewClosestSide(m *mesh.Mesh) Oracle {
	return closestSide{tree: worldTree(m, m.Positions())}
}

// IsInside reports whether p, in world space, lies inside m.
func IsInside(p r3.Vec, m *mesh.Mesh) bool {
	return NewRayParity(m).Inside(p)
}

func newOracle(kind Containment, tree *bih.Tree) Oracle {
	if kind == ClosestSide {
		return closestSide{tree: tree}
	}
	return rayParity{tree: tree}
}

func worldTree(m *mesh.Mesh, pos []r3.Vec) *bih.Tree {
	return bih.New(m.WorldPositions(pos), m.Faces)
}

type rayParity struct {
	tree *bih.Tree
}

var parityAxes = [3]r3.Vec{{X: 1}, {Y: 1}, {Z: 1}}

func (o rayParity) Inside(p r3.Vec) bool {
	if !d3.Box(o.tree.Bounds()).Contains(p) {
		return false
	}
	for _, dir := range parityAxes {
		if o.crossings(p, dir)%2 == 0 {
			return false
		}
	}
	return true
}

func (o rayParity) crossings(origin, dir r3.Vec) int {
	n := 0
	for n < maxParityHits {
		hit, ok := o.tree.Raycast(origin, dir, math.Inf(1))
		if !ok {
			break
		}
		n++
		origin = r3.Add(hit.Point, r3.Scale(parityNudge, dir))
	}
	return n
}

type closestSide struct {
	tree *bih.Tree
}

func (o closestSide) Inside(p r3.Vec) bool {
	return o.tree.SignedDistance(p) < 0
}

package bih

import (
	"math"

	"github.com/soypat/dent/internal/d3"
	"github.com/soypat/dent/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// feature is the closest triangle feature to a query point.
type feature int

const (
	featureV0 feature = iota
	featureV1
	featureV2
	featureE0 // edge V0-V1
	featureE1 // edge V1-V2
	featureE2 // edge V2-V0
	featureFace
)

// Closest is the result of a closest point query.
type Closest struct {
	Point r3.Vec
	// Dist is the euclidean distance to Point.
	Dist float64
	// Normal is the pseudonormal of the closest feature. Its sign against
	// the query offset tells the side of the surface the query lies on.
	Normal r3.Vec
	Face   int
}

// Closest returns the surface point nearest to p. ok is false for an
// empty tree.
func (t *Tree) Closest(p r3.Vec) (c Closest, ok bool) {
	if len(t.nodes) == 0 {
		return Closest{}, false
	}
	best := closestState{dist2: math.MaxFloat64, face: -1}
	t.closest(0, t.bb, p, &best)
	if best.face < 0 {
		return Closest{}, false
	}
	return Closest{
		Point:  best.point,
		Dist:   math.Sqrt(best.dist2),
		Normal: t.featureNormal(best.face, best.feat),
		Face:   t.ids[best.face],
	}, true
}

// SignedDistance returns the distance from p to the surface, negative
// when p lies inside the mesh according to the closest feature's
// pseudonormal.
func (t *Tree) SignedDistance(p r3.Vec) float64 {
	c, ok := t.Closest(p)
	if !ok {
		return math.MaxFloat64
	}
	return math.Copysign(c.Dist, r3.Dot(c.Normal, r3.Sub(p, c.Point)))
}

type closestState struct {
	dist2 float64
	point r3.Vec
	face  int // tree order
	feat  feature
}

func (t *Tree) closest(idx int, bb d3.Box, p r3.Vec, best *closestState) {
	n := &t.nodes[idx]
	if n.isLeaf() {
		for i := n.lo; i < n.hi; i++ {
			q, feat := closestOnTriangle(p, t.triangle(int(i)))
			d2 := r3.Norm2(r3.Sub(p, q))
			if d2 < best.dist2 {
				*best = closestState{dist2: d2, point: q, face: int(i), feat: feat}
			}
		}
		return
	}
	// see which bounding box is closer to the target and
	// start with that one
	left, right := childBoxes(n, bb)
	leftD2 := left.Dist2(p)
	rightD2 := right.Dist2(p)
	c := n.children()
	if leftD2 < rightD2 {
		if leftD2 < best.dist2 {
			t.closest(c, left, p, best)
		}
		if rightD2 < best.dist2 {
			t.closest(c+1, right, p, best)
		}
	} else {
		if rightD2 < best.dist2 {
			t.closest(c+1, right, p, best)
		}
		if leftD2 < best.dist2 {
			t.closest(c, left, p, best)
		}
	}
}

func (t *Tree) featureNormal(face int, feat feature) r3.Vec {
	f := t.faces[face]
	switch {
	case feat <= featureV2:
		return t.vertN[f[feat]]
	case feat <= featureE2:
		v0 := int(feat - featureE0)
		return t.edgeN[mesh.EdgeKey(f[v0], f[(v0+1)%3])]
	}
	return t.faceN[face]
}

// closestOnTriangle returns the point of tri closest to p and the feature
// it lies on. Regions follow Ericson, Real-Time Collision Detection 5.1.5.
func closestOnTriangle(p r3.Vec, tri r3.Triangle) (r3.Vec, feature) {
	a, b, c := tri[0], tri[1], tri[2]
	ab := r3.Sub(b, a)
	ac := r3.Sub(c, a)
	ap := r3.Sub(p, a)
	s1 := r3.Dot(ab, ap)
	s2 := r3.Dot(ac, ap)
	if s1 <= 0 && s2 <= 0 {
		return a, featureV0
	}
	bp := r3.Sub(p, b)
	s3 := r3.Dot(ab, bp)
	s4 := r3.Dot(ac, bp)
	if s3 >= 0 && s4 <= s3 {
		return b, featureV1
	}
	vc := s1*s4 - s3*s2
	if vc <= 0 && s1 >= 0 && s3 <= 0 {
		v := s1 / (s1 - s3)
		return r3.Add(a, r3.Scale(v, ab)), featureE0
	}
	cp := r3.Sub(p, c)
	s5 := r3.Dot(ab, cp)
	s6 := r3.Dot(ac, cp)
	if s6 >= 0 && s5 <= s6 {
		return c, featureV2
	}
	vb := s5*s2 - s1*s6
	if vb <= 0 && s2 >= 0 && s6 <= 0 {
		w := s2 / (s2 - s6)
		return r3.Add(a, r3.Scale(w, ac)), featureE2
	}
	va := s3*s6 - s5*s4
	if va <= 0 && (s4-s3) >= 0 && (s5-s6) >= 0 {
		w := (s4 - s3) / ((s4 - s3) + (s5 - s6))
		return r3.Add(b, r3.Scale(w, r3.Sub(c, b))), featureE1
	}
	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return r3.Add(a, r3.Add(r3.Scale(v, ab), r3.Scale(w, ac))), featureFace
}

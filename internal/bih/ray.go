package bih

import (
	"math"

	"github.com/soypat/dent/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// rayEpsilon rejects hits closer than this to the ray origin and
// near-parallel triangles.
const rayEpsilon = 1e-7

// Hit describes the intersection of a ray with a tree face.
type Hit struct {
	// T is the distance along the unit ray direction.
	T     float64
	Point r3.Vec
	// Normal is the unit face normal of the hit face.
	Normal r3.Vec
	// Face is the caller's index of the hit face.
	Face int
}

// Raycast returns the nearest intersection of the ray starting at origin
// along dir with distance at most maxDist. dir need not be normalized.
// Use math.Inf(1) to cast to infinity.
func (t *Tree) Raycast(origin, dir r3.Vec, maxDist float64) (Hit, bool) {
	if len(t.nodes) == 0 || r3.Norm2(dir) == 0 {
		return Hit{}, false
	}
	dir = r3.Unit(dir)
	best := Hit{T: maxDist, Face: -1}
	t.raycast(0, t.bb, origin, dir, &best)
	if best.Face < 0 {
		return Hit{}, false
	}
	best.Point = r3.Add(origin, r3.Scale(best.T, dir))
	return best, true
}

func (t *Tree) raycast(idx int, bb d3.Box, origin, dir r3.Vec, best *Hit) {
	near, far, ok := slab(bb, origin, dir)
	if !ok || far < 0 || near > best.T {
		return
	}
	n := &t.nodes[idx]
	if n.isLeaf() {
		for i := n.lo; i < n.hi; i++ {
			d, ok := IntersectRay(t.triangle(int(i)), origin, dir)
			if ok && d < best.T {
				best.T = d
				best.Normal = t.faceN[i]
				best.Face = t.ids[i]
			}
		}
		return
	}
	left, right := childBoxes(n, bb)
	leftNear, _, _ := slab(left, origin, dir)
	rightNear, _, _ := slab(right, origin, dir)
	c := n.children()
	if leftNear <= rightNear {
		t.raycast(c, left, origin, dir, best)
		t.raycast(c+1, right, origin, dir, best)
	} else {
		t.raycast(c+1, right, origin, dir, best)
		t.raycast(c, left, origin, dir, best)
	}
}

// slab returns the parametric entry and exit distances of a ray
// through the box. ok is false if the ray misses the box.
func slab(bb d3.Box, origin, dir r3.Vec) (near, far float64, ok bool) {
	near, far = math.Inf(-1), math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		o := d3.Component(origin, axis)
		d := d3.Component(dir, axis)
		lo := d3.Component(bb.Min, axis)
		hi := d3.Component(bb.Max, axis)
		if d == 0 {
			if o < lo || o > hi {
				return 0, 0, false
			}
			continue
		}
		t0, t1 := (lo-o)/d, (hi-o)/d
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		near = math.Max(near, t0)
		far = math.Min(far, t1)
		if near > far {
			return 0, 0, false
		}
	}
	return near, far, true
}

// IntersectRay returns the distance along dir at which the ray hits the
// triangle from either side. dir must have unit length for the
// distance to be euclidean.
func IntersectRay(tri r3.Triangle, origin, dir r3.Vec) (float64, bool) {
	// Moller-Trumbore intersection.
	edge1 := r3.Sub(tri[1], tri[0])
	edge2 := r3.Sub(tri[2], tri[0])
	h := r3.Cross(dir, edge2)
	det := r3.Dot(edge1, h)
	if det > -rayEpsilon && det < rayEpsilon {
		// Ray parallel to the plane of the triangle.
		return 0, false
	}
	invDet := 1 / det
	s := r3.Sub(origin, tri[0])
	u := invDet * r3.Dot(s, h)
	if u < 0 || u > 1 {
		return 0, false
	}
	q := r3.Cross(s, edge1)
	v := invDet * r3.Dot(dir, q)
	if v < 0 || u+v > 1 {
		return 0, false
	}
	d := invDet * r3.Dot(edge2, q)
	if d < rayEpsilon {
		// There is a line intersection but not a ray intersection.
		return 0, false
	}
	return d, true
}

// SegmentIntersects reports whether the segment between a and b
// crosses the triangle.
func SegmentIntersects(tri r3.Triangle, a, b r3.Vec) bool {
	ab := r3.Sub(b, a)
	length := r3.Norm(ab)
	if length == 0 {
		return false
	}
	d, ok := IntersectRay(tri, a, r3.Scale(1/length, ab))
	return ok && d <= length
}

// TrianglesIntersect reports whether two triangles intersect, testing every
// edge of each triangle against the other. Coplanar overlaps are not
// detected.
func TrianglesIntersect(a, b r3.Triangle) bool {
	if !d3.TriangleBox(a).Overlaps(d3.TriangleBox(b)) {
		return false
	}
	for i := 0; i < 3; i++ {
		if SegmentIntersects(b, a[i], a[(i+1)%3]) || SegmentIntersects(a, b[i], b[(i+1)%3]) {
			return true
		}
	}
	return false
}

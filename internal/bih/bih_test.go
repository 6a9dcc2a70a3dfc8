package bih

import (
	"math"
	"math/rand"
	"testing"

	"github.com/soypat/dent/internal/d3"
	"github.com/soypat/dent/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestRaycastCube(t *testing.T) {
	cube := mesh.Cube(1)
	tree := New(cube.Vertices, cube.Faces)
	for _, test := range []struct {
		name    string
		origin  r3.Vec
		dir     r3.Vec
		wantHit bool
		want    r3.Vec
	}{
		{"center +x", r3.Vec{}, r3.Vec{X: 1}, true, r3.Vec{X: 0.5}},
		{"center -y", r3.Vec{}, r3.Vec{Y: -3}, true, r3.Vec{Y: -0.5}},
		{"outside toward", r3.Vec{Z: 4}, r3.Vec{Z: -1}, true, r3.Vec{Z: 0.5}},
		{"outside away", r3.Vec{Z: 4}, r3.Vec{Z: 1}, false, r3.Vec{}},
		{"outside miss", r3.Vec{X: 2, Z: 4}, r3.Vec{Z: -1}, false, r3.Vec{}},
	} {
		t.Run(test.name, func(t *testing.T) {
			hit, ok := tree.Raycast(test.origin, test.dir, math.Inf(1))
			if ok != test.wantHit {
				t.Fatalf("got hit=%v, want %v", ok, test.wantHit)
			}
			if ok && !d3.EqualWithin(hit.Point, test.want, 1e-9) {
				t.Errorf("hit point %v, want %v", hit.Point, test.want)
			}
			if ok && r3.Dot(hit.Normal, r3.Unit(test.want)) < 0.99 {
				t.Errorf("hit normal %v not outward for %v", hit.Normal, test.want)
			}
		})
	}
}

func TestRaycastMaxDist(t *testing.T) {
	cube := mesh.Cube(1)
	tree := New(cube.Vertices, cube.Faces)
	if _, ok := tree.Raycast(r3.Vec{X: -3}, r3.Vec{X: 1}, 2); ok {
		t.Error("hit beyond max distance")
	}
	hit, ok := tree.Raycast(r3.Vec{X: -3}, r3.Vec{X: 1}, 2.6)
	if !ok || math.Abs(hit.T-2.5) > 1e-9 {
		t.Errorf("got hit %+v ok=%v, want T=2.5", hit, ok)
	}
}

func TestRaycastMatchesBruteForce(t *testing.T) {
	sphere := mesh.Icosphere(1, 3)
	tree := New(sphere.Vertices, sphere.Faces)
	tris := sphere.Triangles(sphere.Vertices)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		origin := r3.Vec{X: rng.Float64()*4 - 2, Y: rng.Float64()*4 - 2, Z: rng.Float64()*4 - 2}
		dir := r3.Unit(r3.Vec{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()})
		want := math.Inf(1)
		for _, tri := range tris {
			if d, ok := IntersectRay(tri, origin, dir); ok && d < want {
				want = d
			}
		}
		hit, ok := tree.Raycast(origin, dir, math.Inf(1))
		if ok != !math.IsInf(want, 1) {
			t.Fatalf("ray %d: tree hit=%v, brute force distance %g", i, ok, want)
		}
		if ok && math.Abs(hit.T-want) > 1e-9 {
			t.Fatalf("ray %d: tree distance %g, brute force %g", i, hit.T, want)
		}
	}
}

func TestSignedDistance(t *testing.T) {
	sphere := mesh.Icosphere(1, 3)
	tree := New(sphere.Vertices, sphere.Faces)
	for _, test := range []struct {
		p      r3.Vec
		inside bool
	}{
		{r3.Vec{}, true},
		{r3.Vec{X: 0.5, Y: 0.2}, true},
		{r3.Vec{X: 1.5}, false},
		{r3.Vec{X: 3, Y: 3, Z: 3}, false},
		{r3.Vec{Z: -0.9}, true},
	} {
		d := tree.SignedDistance(test.p)
		if (d < 0) != test.inside {
			t.Errorf("SignedDistance(%v) = %g, want inside=%v", test.p, d, test.inside)
		}
	}
	// Closest point on a vertex must use the vertex pseudonormal.
	far := r3.Scale(3, sphere.Vertices[0])
	c, ok := tree.Closest(far)
	if !ok {
		t.Fatal("closest on non empty tree failed")
	}
	if !d3.EqualWithin(c.Point, sphere.Vertices[0], 1e-9) {
		t.Errorf("closest point %v, want vertex %v", c.Point, sphere.Vertices[0])
	}
	if math.Abs(c.Dist-2) > 1e-9 {
		t.Errorf("closest distance %g, want 2", c.Dist)
	}
}

func TestTrianglesIntersect(t *testing.T) {
	base := r3.Triangle{{X: -1, Y: -1}, {X: 1, Y: -1}, {Y: 1}}
	for _, test := range []struct {
		name  string
		other r3.Triangle
		want  bool
	}{
		{"piercing", r3.Triangle{{Z: -1}, {Z: 1}, {X: 0.1, Z: 1}}, true},
		{"above", r3.Triangle{{Z: 1}, {Z: 2}, {X: 0.1, Z: 2}}, false},
		{"far", r3.Triangle{{X: 5, Z: -1}, {X: 5, Z: 1}, {X: 5.1, Z: 1}}, false},
	} {
		if got := TrianglesIntersect(base, test.other); got != test.want {
			t.Errorf("%s: TrianglesIntersect = %v, want %v", test.name, got, test.want)
		}
	}
}

func TestEmptyTree(t *testing.T) {
	tree := New(nil, nil)
	if _, ok := tree.Raycast(r3.Vec{}, r3.Vec{X: 1}, math.Inf(1)); ok {
		t.Error("empty tree reported hit")
	}
	if _, ok := tree.Closest(r3.Vec{}); ok {
		t.Error("empty tree reported closest point")
	}
}

func BenchmarkRaycast(b *testing.B) {
	sphere := mesh.Icosphere(1, 5)
	tree := New(sphere.Vertices, sphere.Faces)
	dir := r3.Unit(r3.Vec{X: 1, Y: 0.3, Z: 0.1})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Raycast(r3.Vec{}, dir, math.Inf(1))
	}
}

package sdfmesh

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestSphere(t *testing.T) {
	center := r3.Vec{X: 1, Y: -2, Z: 0.5}
	m, err := Sphere(2, center, 40)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	want := 4.0 / 3 * math.Pi * 8
	if vol := m.SignedVolume(); math.Abs(vol-want) > 0.03*want {
		t.Errorf("got volume %g, want about %g", vol, want)
	}
	bb := m.Bounds()
	for _, c := range []struct{ got, want float64 }{
		{bb.Min.X, center.X - 2}, {bb.Max.X, center.X + 2},
		{bb.Min.Y, center.Y - 2}, {bb.Max.Y, center.Y + 2},
		{bb.Min.Z, center.Z - 2}, {bb.Max.Z, center.Z + 2},
	} {
		if math.Abs(c.got-c.want) > 0.2 {
			t.Errorf("bounds %v not about sphere at %v", bb, center)
			break
		}
	}
}

func TestBox(t *testing.T) {
	size := r3.Vec{X: 2, Y: 1, Z: 1}
	m, err := Box(size, 0, r3.Vec{}, 40)
	if err != nil {
		t.Fatal(err)
	}
	if vol := m.SignedVolume(); math.Abs(vol-2) > 0.1 {
		t.Errorf("got volume %g, want about 2", vol)
	}
	if _, err := Box(size, 0, r3.Vec{}, 1); err == nil {
		t.Error("expected error for a single cell")
	}
	if _, err := Sphere(-1, r3.Vec{}, 10); err == nil {
		t.Error("expected error for negative radius")
	}
}

package d3

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestBoxInclude(t *testing.T) {
	b := EmptyBox()
	for _, v := range []r3.Vec{{X: 1, Y: -2, Z: 3}, {X: -1, Y: 2, Z: 0}} {
		b = b.Include(v)
	}
	want := Box{Min: r3.Vec{X: -1, Y: -2, Z: 0}, Max: r3.Vec{X: 1, Y: 2, Z: 3}}
	if b != want {
		t.Fatalf("got %v, want %v", b, want)
	}
	if !b.Contains(r3.Vec{X: 1, Y: 2, Z: 3}) {
		t.Error("corner should be contained")
	}
	if b.Contains(r3.Vec{X: 1.1}) {
		t.Error("point outside reported as contained")
	}
	if got := LongestAxis(b.Size()); got != 1 {
		t.Errorf("longest axis %d, want 1", got)
	}
}

func TestBoxOverlaps(t *testing.T) {
	a := Box{Max: Elem(1)}
	for _, test := range []struct {
		b    Box
		want bool
	}{
		{Box{Min: Elem(0.5), Max: Elem(2)}, true},
		{Box{Min: Elem(1), Max: Elem(2)}, true},
		{Box{Min: Elem(1.01), Max: Elem(2)}, false},
	} {
		if got := a.Overlaps(test.b); got != test.want {
			t.Errorf("Overlaps(%v) = %v, want %v", test.b, got, test.want)
		}
	}
	if d := a.Enlarge(Elem(2)).Size(); d != Elem(3) {
		t.Errorf("enlarged size %v", d)
	}
}

package main

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestParseVec(t *testing.T) {
	for _, test := range []struct {
		in      string
		want    r3.Vec
		wantErr bool
	}{
		{"0,0,0", r3.Vec{}, false},
		{"1, -2.5, 3e-1", r3.Vec{X: 1, Y: -2.5, Z: 0.3}, false},
		{"1,2", r3.Vec{}, true},
		{"a,b,c", r3.Vec{}, true},
		{"", r3.Vec{}, true},
	} {
		got, err := parseVec(test.in)
		if (err != nil) != test.wantErr {
			t.Errorf("parseVec(%q) error = %v, wantErr %v", test.in, err, test.wantErr)
			continue
		}
		if got != test.want {
			t.Errorf("parseVec(%q) = %v, want %v", test.in, got, test.want)
		}
	}
}

func TestWorldTransform(t *testing.T) {
	tr, err := worldTransform("2,1,0.5", "1,0,-1")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := tr.Transform(r3.Vec{X: 1, Y: 1, Z: 2}), (r3.Vec{X: 3, Y: 1, Z: 0}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	unit, err := worldTransform("1,1,1", "0,0,0")
	if err != nil {
		t.Fatal(err)
	}
	if !unit.IsIdentity() {
		t.Error("unit scale and zero offset should give identity")
	}
	for _, bad := range [][2]string{{"1,1", "0,0,0"}, {"1,1,1", "x,0,0"}} {
		if _, err := worldTransform(bad[0], bad[1]); err == nil {
			t.Errorf("worldTransform(%q, %q) gave no error", bad[0], bad[1])
		}
	}
}

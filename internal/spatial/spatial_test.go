package spatial

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r3"
)

func randomPositions(rng *rand.Rand, n int) []r3.Vec {
	pos := make([]r3.Vec, n)
	for i := range pos {
		pos[i] = r3.Vec{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()}
	}
	return pos
}

func TestNearestMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pos := randomPositions(rng, 500)
	ids := make([]int, len(pos))
	for i := range ids {
		ids[i] = i
	}
	ix := New(pos, ids)
	if ix.Len() != len(pos) {
		t.Fatalf("got Len %d, want %d", ix.Len(), len(pos))
	}
	for i := 0; i < 100; i++ {
		q := r3.Vec{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()}
		want, wantDist := -1, math.Inf(1)
		for j, p := range pos {
			if d := r3.Norm(r3.Sub(p, q)); d < wantDist {
				want, wantDist = j, d
			}
		}
		got, dist, ok := ix.Nearest(q)
		if !ok || got != want || math.Abs(dist-wantDist) > 1e-12 {
			t.Fatalf("query %v: got (%d, %g, %v), want (%d, %g)", q, got, dist, ok, want, wantDist)
		}
	}
}

func TestWithinMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	pos := randomPositions(rng, 400)
	// Index every other vertex to exercise id mapping.
	var ids []int
	for i := 0; i < len(pos); i += 2 {
		ids = append(ids, i)
	}
	ix := New(pos, ids)
	for _, r := range []float64{0.05, 0.2, 0.5, 2} {
		q := r3.Vec{X: 0.5, Y: 0.4, Z: 0.6}
		var want []int
		for _, id := range ids {
			if r3.Norm(r3.Sub(pos[id], q)) < r {
				want = append(want, id)
			}
		}
		sort.Ints(want)
		got := ix.Within(q, r)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Within(r=%g) mismatch (-want +got):\n%s", r, diff)
		}
	}
}

func TestEmptyIndex(t *testing.T) {
	ix := New(nil, nil)
	if _, _, ok := ix.Nearest(r3.Vec{}); ok {
		t.Error("empty index returned a nearest vertex")
	}
	if got := ix.Within(r3.Vec{}, 10); len(got) != 0 {
		t.Errorf("empty index returned %v", got)
	}
	pos := []r3.Vec{{X: 1}, {X: 2}}
	for _, ids := range [][]int{nil, {}} {
		ix = New(pos, ids)
		if ix.Len() != 0 {
			t.Errorf("New(pos, %#v) indexed %d vertices", ids, ix.Len())
		}
		if got := ix.Within(r3.Vec{X: 1}, 10); len(got) != 0 {
			t.Errorf("New(pos, %#v) found %v", ids, got)
		}
	}
}

package dent

import (
	"math"

	"github.com/soypat/dent/internal/spatial"
	"gonum.org/v1/gonum/spatial/r3"
)

// anchors returns the indented vertices that share an edge with an
// exterior vertex, in ascending order.
func (r *run) anchors() []int {
	adj := r.soft.Neighbors()
	var b []int
	for _, v := range r.interiorSoft {
		if !r.indented[v] {
			continue
		}
		for _, n := range adj[v] {
			if r.class[n] == Exterior {
				b = append(b, v)
				break
			}
		}
	}
	return b
}

// sinkInRange returns the falloff distance of the sink-in pass.
func (r *run) sinkInRange() float64 {
	if !r.cfg.AutoSinkIn {
		return r.cfg.SinkInRange
	}
	return math.Sqrt(r.report.DistTotal / float64(len(r.interiorSoft)))
}

// sinkIn drags exterior vertices near the dent along with their nearest
// anchor and marks them Boundary.
func (r *run) sinkIn(anchors []int) {
	rng := r.report.SinkInRange
	if len(anchors) == 0 || rng <= 0 {
		return
	}
	ix := spatial.New(r.base, anchors)
	ext := r.ofClass(Exterior)
	moved := make([]bool, len(ext))
	pos := make([]r3.Vec, len(ext))
	forEach(len(ext), r.cfg.workers(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			e := ext[i]
			b, d, ok := ix.Nearest(r.base[e])
			if !ok || d >= rng {
				continue
			}
			f := SinkIn(d, rng, r.cfg.SinkInSmoothness)
			pos[i] = r3.Add(r.base[e], r3.Scale(f, r3.Sub(r.shape[b], r.base[b])))
			moved[i] = true
		}
	})
	for i, e := range ext {
		if moved[i] {
			r.shape[e] = pos[i]
			r.class[e] = Boundary
			r.report.SunkIn++
		}
	}
}

// ofClass returns the soft vertices of class c in ascending order.
func (r *run) ofClass(c Class) []int {
	var idx []int
	for i, cl := range r.class {
		if cl == c {
			idx = append(idx, i)
		}
	}
	return idx
}

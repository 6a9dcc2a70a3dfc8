package dent

import (
	"math"

	"github.com/soypat/dent/internal/spatial"
	"gonum.org/v1/gonum/spatial/r3"
)

// zeroDirection is the squared length under which an averaged normal
// is considered to have no direction.
const zeroDirection = 1e-20

type indentResult struct {
	pos   r3.Vec // soft local frame
	dist  float64
	delta float64
	err   error
}

// indent pushes every interior soft vertex out of the hard mesh.
func (r *run) indent() {
	hardIx := spatial.New(r.hardWorld, r.interiorHard)
	results := make([]indentResult, len(r.interiorSoft))
	forEach(len(r.interiorSoft), r.cfg.workers(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			results[i] = r.indentVertex(hardIx, r.interiorSoft[i])
		}
	})
	for i, res := range results {
		v := r.interiorSoft[i]
		if res.err != nil {
			r.warn(&VertexError{Vertex: v, Delta: res.delta, Err: res.err})
			continue
		}
		r.shape[v] = res.pos
		r.indented[v] = true
		r.report.DistTotal += res.dist
		r.report.MaxDelta = math.Max(r.report.MaxDelta, res.delta)
		r.report.Indented++
	}
}

// indentVertex grows a search sphere around soft vertex v until it holds
// interior hard vertices, then casts a ray along their mean normal to
// find where v leaves the hard mesh.
func (r *run) indentVertex(hardIx *spatial.Index, v int) indentResult {
	p := r.softWorld[v]
	delta := r.cfg.DeltaInitial
	near := hardIx.Within(p, delta)
	for step := 1; len(near) == 0; step++ {
		delta = r.cfg.DeltaInitial + float64(step)*r.cfg.DeltaIncrease
		if delta > r.cfg.DeltaCeiling {
			return indentResult{delta: delta, err: ErrDeltaExhausted}
		}
		near = hardIx.Within(p, delta)
	}
	var dir r3.Vec
	for _, h := range near {
		dir = r3.Add(dir, r.hardNormals[h])
	}
	if r3.Norm2(dir) < zeroDirection {
		return indentResult{delta: delta, err: ErrZeroDirection}
	}
	hit, ok := r.hardTree.Raycast(p, dir, math.Inf(1))
	if !ok {
		return indentResult{delta: delta, err: ErrRayMissed}
	}
	world := r3.Add(hit.Point, r3.Scale(r.cfg.DisplaceIncrease, hit.Normal))
	local := r.toLocal.Transform(world)
	return indentResult{
		pos:   local,
		dist:  r3.Norm(r3.Sub(local, r.base[v])),
		delta: delta,
	}
}

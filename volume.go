package dent

import (
	"github.com/soypat/dent/internal/spatial"
	"github.com/soypat/dent/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// redistribute bulges the remaining exterior vertices along their rest
// normals so the total displacement matches the indented distance.
func (r *run) redistribute(anchors []int) {
	if r.cfg.VolumePreservation == 0 || r.report.DistTotal == 0 {
		return
	}
	ref := r.ofClass(Boundary)
	if len(ref) == 0 {
		ref = anchors
	}
	if len(ref) == 0 {
		return
	}
	ix := spatial.New(r.base, ref)
	ext := r.ofClass(Exterior)
	ramps := make([]float64, len(ext))
	forEach(len(ext), r.cfg.workers(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			_, d, _ := ix.Nearest(r.base[ext[i]])
			ramps[i] = Ramp(d, r.cfg.VolumeRamp)
		}
	})
	var sum float64
	for _, w := range ramps {
		sum += w
	}
	r.report.VolumeSum = sum
	if sum == 0 {
		r.warn(ErrDegenerateVolumeSum)
		return
	}
	fac := r.report.DistTotal * r.cfg.VolumePreservation / sum
	r.report.VolumeFac = fac
	normals := r.restNormals()
	for i, e := range ext {
		if ramps[i] == 0 {
			continue
		}
		r.shape[e] = r3.Add(r.base[e], r3.Scale(fac*ramps[i], normals[e]))
		r.report.Bulged++
	}
}

// restNormals returns unit soft vertex normals of the base positions.
func (r *run) restNormals() []r3.Vec {
	if r.fromShape {
		return mesh.VertexNormals(r.base, r.soft.Faces)
	}
	rest := r.soft.RestNormals()
	normals := make([]r3.Vec, len(rest))
	for i, n := range rest {
		if r3.Norm2(n) > 0 {
			normals[i] = r3.Unit(n)
		}
	}
	return normals
}

package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/dent/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// FromTriangles welds a triangle soup into an indexed mesh. Vertices closer
// than tol are shared among triangles. tol should be of the order of
// 1/1000th of the size of the smallest triangle in the model; if set to 0
// it is inferred from the shortest edge. Faces that collapse after welding
// are dropped.
func FromTriangles(triangles []r3.Triangle, tol float64) (*Mesh, error) {
	if len(triangles) == 0 {
		return nil, errors.New("empty triangle slice")
	}
	bb := d3.EmptyBox()
	minDist2 := math.MaxFloat64
	maxDist2 := 0.0
	for i := range triangles {
		for j, vert := range triangles[i] {
			if !d3.IsFinite(vert) {
				return nil, fmt.Errorf("triangle %d has non-finite vertex %v", i, vert)
			}
			bb = bb.Include(vert)
			side2 := r3.Norm2(r3.Sub(triangles[i][(j+1)%3], vert))
			if side2 > 0 {
				minDist2 = math.Min(minDist2, side2)
			}
			maxDist2 = math.Max(maxDist2, side2)
		}
	}
	if maxDist2 == 0 {
		return nil, errors.New("all triangles are degenerate")
	}
	suggested := math.Sqrt(minDist2) / 256
	if tol > math.Sqrt(maxDist2)/2 {
		return nil, fmt.Errorf("vertex tolerance is too large to generate appropriate mesh, suggested tolerance: %g", suggested)
	}
	if tol == 0 {
		tol = suggested
	}
	div := d3.Max(bb.Size()) / tol
	if div > math.MaxInt64/2 {
		return nil, errors.New("tolerance too small. overflowed int64")
	}
	m := &Mesh{Faces: make([][3]int, 0, len(triangles))}
	// vertex index cache in resolution-space.
	cache := make(map[[3]int64]int)
	ri := 1 / tol
	for _, tri := range triangles {
		var face [3]int
		for j, vert := range tri {
			v := r3.Scale(ri, vert)
			key := [3]int64{int64(math.Round(v.X)), int64(math.Round(v.Y)), int64(math.Round(v.Z))}
			idx, ok := cache[key]
			if !ok {
				idx = len(m.Vertices)
				cache[key] = idx
				m.Vertices = append(m.Vertices, vert)
			}
			face[j] = idx
		}
		if face[0] == face[1] || face[1] == face[2] || face[2] == face[0] {
			continue
		}
		m.Faces = append(m.Faces, face)
	}
	if len(m.Faces) == 0 {
		return nil, errors.New("no faces left after welding vertices")
	}
	return m, nil
}

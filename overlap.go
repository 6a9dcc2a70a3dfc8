package dent

import (
	"fmt"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/soypat/dent/internal/bih"
	"github.com/soypat/dent/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// boxPad keeps face boxes of axis aligned triangles from collapsing to
// zero volume, which rtreego rejects.
const boxPad = 1e-9

// insideOf returns the indices of pos for which the oracle reports inside,
// in ascending order.
func insideOf(o Oracle, pos []r3.Vec, workers int) []int {
	inside := make([]bool, len(pos))
	forEach(len(pos), workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			inside[i] = o.Inside(pos[i])
		}
	})
	var idx []int
	for i, in := range inside {
		if in {
			idx = append(idx, i)
		}
	}
	return idx
}

// faceBox is a hard face stored in the broad phase R-tree.
type faceBox struct {
	face int
	rect rtreego.Rect
}

func (f *faceBox) Bounds() rtreego.Rect { return f.rect }

// crossingVertices returns the vertices of soft faces that intersect a
// hard face, in ascending order. Candidate pairs come from an R-tree over
// the hard face boxes.
func crossingVertices(softPos []r3.Vec, softFaces [][3]int, hardPos []r3.Vec, hardFaces [][3]int) ([]int, error) {
	if len(hardFaces) == 0 {
		return nil, nil
	}
	objs := make([]rtreego.Spatial, len(hardFaces))
	for i, f := range hardFaces {
		rect, err := faceRect(r3.Triangle{hardPos[f[0]], hardPos[f[1]], hardPos[f[2]]})
		if err != nil {
			return nil, fmt.Errorf("hard face %d: %w", i, err)
		}
		objs[i] = &faceBox{face: i, rect: rect}
	}
	rt := rtreego.NewTree(3, 25, 50, objs...)
	marked := make(map[int]bool)
	for i, f := range softFaces {
		tri := r3.Triangle{softPos[f[0]], softPos[f[1]], softPos[f[2]]}
		rect, err := faceRect(tri)
		if err != nil {
			return nil, fmt.Errorf("soft face %d: %w", i, err)
		}
		for _, obj := range rt.SearchIntersect(rect) {
			hf := hardFaces[obj.(*faceBox).face]
			other := r3.Triangle{hardPos[hf[0]], hardPos[hf[1]], hardPos[hf[2]]}
			if bih.TrianglesIntersect(tri, other) {
				marked[f[0]], marked[f[1]], marked[f[2]] = true, true, true
				break
			}
		}
	}
	verts := make([]int, 0, len(marked))
	for v := range marked {
		verts = append(verts, v)
	}
	sort.Ints(verts)
	return verts, nil
}

func faceRect(tri r3.Triangle) (rtreego.Rect, error) {
	bb := d3.TriangleBox(tri).Enlarge(d3.Elem(boxPad))
	size := d3.MaxElem(bb.Size(), d3.Elem(boxPad))
	return rtreego.NewRect(rtreego.Point{bb.Min.X, bb.Min.Y, bb.Min.Z}, []float64{size.X, size.Y, size.Z})
}

// mergeSorted returns the sorted union of two ascending index lists.
func mergeSorted(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j == len(b) || (i < len(a) && a[i] < b[j]):
			out = append(out, a[i])
			i++
		case i == len(a) || b[j] < a[i]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// FaceNormals returns the unit normal of every face built from pos.
// Degenerate faces get a zero normal.
func FaceNormals(pos []r3.Vec, faces [][3]int) []r3.Vec {
	normals := make([]r3.Vec, len(faces))
	for i, f := range faces {
		n := r3.Cross(r3.Sub(pos[f[1]], pos[f[0]]), r3.Sub(pos[f[2]], pos[f[0]]))
		if r3.Norm2(n) > 0 {
			n = r3.Unit(n)
		}
		normals[i] = n
	}
	return normals
}

// VertexNormals returns unit vertex pseudonormals: the face normals around
// each vertex weighted by the opening angle of the face at that vertex.
func VertexNormals(pos []r3.Vec, faces [][3]int) []r3.Vec {
	normals := make([]r3.Vec, len(pos))
	fn := FaceNormals(pos, faces)
	for i, f := range faces {
		for j, idx := range f {
			s1 := r3.Sub(pos[f[(j+1)%3]], pos[idx])
			s2 := r3.Sub(pos[f[(j+2)%3]], pos[idx])
			if r3.Norm2(s1) == 0 || r3.Norm2(s2) == 0 {
				continue
			}
			alpha := math.Acos(clampUnit(r3.Cos(s1, s2)))
			normals[idx] = r3.Add(normals[idx], r3.Scale(alpha, fn[i]))
		}
	}
	for i, n := range normals {
		if r3.Norm2(n) > 0 {
			normals[i] = r3.Unit(n)
		}
	}
	return normals
}

// EdgeNormals returns the pseudonormal of every edge, the sum of the
// normals of the faces sharing it. Keys hold the lower index first.
func EdgeNormals(pos []r3.Vec, faces [][3]int) map[[2]int]r3.Vec {
	fn := FaceNormals(pos, faces)
	edges := make(map[[2]int]r3.Vec, 3*len(faces)/2)
	for i, f := range faces {
		for j := range f {
			e := EdgeKey(f[j], f[(j+1)%3])
			edges[e] = r3.Add(edges[e], fn[i])
		}
	}
	return edges
}

// RestNormals returns the supplied mesh normals, or computes vertex
// pseudonormals from the rest positions when none are supplied.
func (m *Mesh) RestNormals() []r3.Vec {
	if m.Normals != nil {
		return m.Normals
	}
	return VertexNormals(m.Vertices, m.Faces)
}

func clampUnit(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}

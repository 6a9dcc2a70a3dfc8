package mesh

import (
	"fmt"

	"github.com/fogleman/simplify"
	"gonum.org/v1/gonum/spatial/r3"
)

// Decimate returns a simplified copy of m with about factor times its face
// count, using quadric error simplification. The copy keeps the world
// transform but drops normals and any shape layer.
func Decimate(m *Mesh, factor float64) (*Mesh, error) {
	if factor <= 0 || factor > 1 {
		return nil, fmt.Errorf("decimate factor %g out of range (0,1]", factor)
	}
	tris := make([]*simplify.Triangle, len(m.Faces))
	for i, f := range m.Faces {
		tris[i] = &simplify.Triangle{
			V1: toSimplify(m.Vertices[f[0]]),
			V2: toSimplify(m.Vertices[f[1]]),
			V3: toSimplify(m.Vertices[f[2]]),
		}
	}
	out := simplify.NewMesh(tris).Simplify(factor)
	soup := make([]r3.Triangle, len(out.Triangles))
	for i, t := range out.Triangles {
		soup[i] = r3.Triangle{fromSimplify(t.V1), fromSimplify(t.V2), fromSimplify(t.V3)}
	}
	dm, err := FromTriangles(soup, 0)
	if err != nil {
		return nil, fmt.Errorf("while welding decimated mesh: %w", err)
	}
	dm.Name = m.Name
	dm.World = m.World
	dm.Orient()
	return dm, nil
}

func toSimplify(v r3.Vec) simplify.Vector {
	return simplify.Vector{X: v.X, Y: v.Y, Z: v.Z}
}

func fromSimplify(v simplify.Vector) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

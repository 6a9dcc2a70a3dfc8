// Package mesh defines indexed triangle meshes with an optional shape layer
// over their rest positions, and the geometric helpers the deformer needs:
// welding triangle soups, pseudonormals, edge topology and orientation.
package mesh

import (
	"errors"
	"fmt"

	"github.com/soypat/dent/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Name string
	// Vertices are the rest positions in the mesh's local frame.
	Vertices []r3.Vec
	// Faces index into Vertices. Faces are wound counter-clockwise
	// when seen from outside the mesh.
	Faces [][3]int
	// Normals are optional per-vertex normals in the local frame.
	// If nil they are computed from Vertices when needed.
	Normals []r3.Vec
	// World takes local coordinates to world space.
	World Transform
	// Shape is an optional displaced position layer parallel to Vertices.
	Shape []r3.Vec
}

// Validate checks face indices and the lengths of the
// normal and shape layers.
func (m *Mesh) Validate() error {
	if len(m.Vertices) == 0 {
		return errors.New("mesh has no vertices")
	}
	if len(m.Faces) == 0 {
		return errors.New("mesh has no faces")
	}
	nv := len(m.Vertices)
	for i, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= nv {
				return fmt.Errorf("face %d references vertex %d out of range [0,%d)", i, idx, nv)
			}
		}
	}
	if m.Normals != nil && len(m.Normals) != nv {
		return fmt.Errorf("got %d normals for %d vertices", len(m.Normals), nv)
	}
	if m.Shape != nil && len(m.Shape) != nv {
		return fmt.Errorf("got shape layer of length %d for %d vertices", len(m.Shape), nv)
	}
	return nil
}

// Positions returns the shape layer if present, else the rest positions.
// The returned slice must not be modified.
func (m *Mesh) Positions() []r3.Vec {
	if m.Shape != nil {
		return m.Shape
	}
	return m.Vertices
}

// WorldPositions returns a copy of pos transformed to world space.
func (m *Mesh) WorldPositions(pos []r3.Vec) []r3.Vec {
	out := make([]r3.Vec, len(pos))
	for i, v := range pos {
		out[i] = m.World.Transform(v)
	}
	return out
}

// SetShape commits a shape layer to the mesh. The layer is copied.
func (m *Mesh) SetShape(shape []r3.Vec) error {
	if len(shape) != len(m.Vertices) {
		return fmt.Errorf("shape layer length %d does not match %d vertices", len(shape), len(m.Vertices))
	}
	m.Shape = append(m.Shape[:0:0], shape...)
	return nil
}

// Bounds returns the local frame bounding box of the rest positions.
func (m *Mesh) Bounds() r3.Box {
	return r3.Box(boundsOf(m.Vertices))
}

// Triangle returns face i built from the pos array.
func (m *Mesh) Triangle(pos []r3.Vec, i int) r3.Triangle {
	f := m.Faces[i]
	return r3.Triangle{pos[f[0]], pos[f[1]], pos[f[2]]}
}

// Triangles returns the triangle soup of the mesh built from pos.
func (m *Mesh) Triangles(pos []r3.Vec) []r3.Triangle {
	tris := make([]r3.Triangle, len(m.Faces))
	for i := range m.Faces {
		tris[i] = m.Triangle(pos, i)
	}
	return tris
}

// SignedVolume returns the enclosed volume of the rest positions.
// It is negative for meshes wound clockwise seen from outside.
func (m *Mesh) SignedVolume() float64 {
	var vol float64
	for _, f := range m.Faces {
		a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		vol += r3.Dot(a, r3.Cross(b, c))
	}
	return vol / 6
}

// Orient flips every face if the mesh is wound inside out
// and reports whether it did.
func (m *Mesh) Orient() bool {
	if m.SignedVolume() >= 0 {
		return false
	}
	for i, f := range m.Faces {
		m.Faces[i] = [3]int{f[0], f[2], f[1]}
	}
	m.Normals = nil
	return true
}

func boundsOf(pos []r3.Vec) d3.Box {
	bb := d3.EmptyBox()
	for _, v := range pos {
		bb = bb.Include(v)
	}
	return bb
}

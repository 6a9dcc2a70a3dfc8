package meshio

import (
	"bufio"
	"io"
	"strconv"

	"github.com/fogleman/fauxgl"
	"github.com/soypat/dent/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// LoadOBJ reads the triangles of a Wavefront OBJ file.
// Polygons are triangulated as fans.
func LoadOBJ(path string) ([]r3.Triangle, error) {
	m, err := fauxgl.LoadOBJ(path)
	if err != nil {
		return nil, err
	}
	return fromFauxgl(m), nil
}

// LoadPLY reads the triangles of an ASCII or binary PLY file.
func LoadPLY(path string) ([]r3.Triangle, error) {
	m, err := fauxgl.LoadPLY(path)
	if err != nil {
		return nil, err
	}
	return fromFauxgl(m), nil
}

func fromFauxgl(m *fauxgl.Mesh) []r3.Triangle {
	tris := make([]r3.Triangle, len(m.Triangles))
	for i, t := range m.Triangles {
		tris[i] = r3.Triangle{
			vecFromFauxgl(t.V1.Position),
			vecFromFauxgl(t.V2.Position),
			vecFromFauxgl(t.V3.Position),
		}
	}
	return tris
}

func vecFromFauxgl(v fauxgl.Vector) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// WriteOBJ writes the faces of m over the positions pos as a Wavefront
// OBJ object. Coordinates are written with full precision.
func WriteOBJ(w io.Writer, m *mesh.Mesh, pos []r3.Vec) error {
	bw := bufio.NewWriter(w)
	if m.Name != "" {
		bw.WriteString("o " + m.Name + "\n")
	}
	var b []byte
	for _, v := range pos {
		b = append(b[:0], "v "...)
		b = strconv.AppendFloat(b, v.X, 'g', -1, 64)
		b = append(b, ' ')
		b = strconv.AppendFloat(b, v.Y, 'g', -1, 64)
		b = append(b, ' ')
		b = strconv.AppendFloat(b, v.Z, 'g', -1, 64)
		b = append(b, '\n')
		bw.Write(b)
	}
	for _, f := range m.Faces {
		b = append(b[:0], 'f')
		for _, idx := range f {
			b = append(b, ' ')
			b = strconv.AppendInt(b, int64(idx+1), 10) // OBJ indices start at 1.
		}
		b = append(b, '\n')
		bw.Write(b)
	}
	return bw.Flush()
}

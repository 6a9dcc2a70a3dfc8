package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Icosphere returns a closed sphere mesh centered at the origin built by
// subdividing an icosahedron. Each subdivision quadruples the face count.
func Icosphere(radius float64, subdivisions int) *Mesh {
	t := (1 + math.Sqrt(5)) / 2
	verts := []r3.Vec{
		{X: -1, Y: t}, {X: 1, Y: t}, {X: -1, Y: -t}, {X: 1, Y: -t},
		{Y: -1, Z: t}, {Y: 1, Z: t}, {Y: -1, Z: -t}, {Y: 1, Z: -t},
		{X: t, Z: -1}, {X: t, Z: 1}, {X: -t, Z: -1}, {X: -t, Z: 1},
	}
	faces := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	for i := range verts {
		verts[i] = r3.Unit(verts[i])
	}
	for s := 0; s < subdivisions; s++ {
		mid := make(map[[2]int]int)
		midpoint := func(a, b int) int {
			key := EdgeKey(a, b)
			if idx, ok := mid[key]; ok {
				return idx
			}
			verts = append(verts, r3.Unit(r3.Add(verts[a], verts[b])))
			mid[key] = len(verts) - 1
			return len(verts) - 1
		}
		next := make([][3]int, 0, 4*len(faces))
		for _, f := range faces {
			ab := midpoint(f[0], f[1])
			bc := midpoint(f[1], f[2])
			ca := midpoint(f[2], f[0])
			next = append(next,
				[3]int{f[0], ab, ca},
				[3]int{f[1], bc, ab},
				[3]int{f[2], ca, bc},
				[3]int{ab, bc, ca},
			)
		}
		faces = next
	}
	for i := range verts {
		verts[i] = r3.Scale(radius, verts[i])
	}
	m := &Mesh{Name: "icosphere", Vertices: verts, Faces: faces}
	m.Orient()
	return m
}

// Cube returns a closed axis aligned cube mesh of side size
// centered at the origin.
func Cube(size float64) *Mesh {
	h := size / 2
	verts := make([]r3.Vec, 8)
	// Vertex i has +h on X, Y, Z when bits 2, 1, 0 of i are set.
	for i := range verts {
		verts[i] = r3.Vec{X: -h, Y: -h, Z: -h}
		if i&4 != 0 {
			verts[i].X = h
		}
		if i&2 != 0 {
			verts[i].Y = h
		}
		if i&1 != 0 {
			verts[i].Z = h
		}
	}
	faces := [][3]int{
		{0, 1, 3}, {0, 3, 2}, // -X
		{4, 6, 7}, {4, 7, 5}, // +X
		{0, 4, 5}, {0, 5, 1}, // -Y
		{2, 3, 7}, {2, 7, 6}, // +Y
		{0, 2, 6}, {0, 6, 4}, // -Z
		{1, 5, 7}, {1, 7, 3}, // +Z
	}
	return &Mesh{Name: "cube", Vertices: verts, Faces: faces}
}

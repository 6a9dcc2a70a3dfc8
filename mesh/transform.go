package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is a 4x4 homogeneous transform taking a mesh's local frame to
// world space. The zero value of Transform is the identity transform.
type Transform struct {
	// d stores the matrix in row-major order with the identity subtracted
	// so the zero value represents identity. Use at to read elements.
	d [16]float64
}

// NewTransform returns a Transform populated with the 16 values of a
// row-major matrix. If a is nil NewTransform returns a Transform filled
// with zeros.
func NewTransform(a []float64) Transform {
	var t Transform
	if a == nil {
		for i := 0; i < 4; i++ {
			t.d[5*i] = -1
		}
		return t
	}
	if len(a) != 16 {
		panic("Transform is initialized with 16 values")
	}
	for i := range a {
		t.set(i/4, i%4, a[i])
	}
	return t
}

// Translation returns a transform that translates by v.
func Translation(v r3.Vec) Transform {
	return Transform{}.Translate(v)
}

func (t Transform) at(r, c int) float64 {
	if r == c {
		return t.d[4*r+c] + 1
	}
	return t.d[4*r+c]
}

func (t *Transform) set(r, c int, v float64) {
	if r == c {
		v--
	}
	t.d[4*r+c] = v
}

// IsIdentity reports whether t is exactly the identity.
func (t Transform) IsIdentity() bool { return t == Transform{} }

// Transform applies the Transform to the argument point
// and returns the result.
func (t Transform) Transform(v r3.Vec) r3.Vec {
	if t.IsIdentity() {
		return v
	}
	w := 1 / (t.at(3, 0)*v.X + t.at(3, 1)*v.Y + t.at(3, 2)*v.Z + t.at(3, 3))
	return r3.Vec{
		X: (t.at(0, 0)*v.X + t.at(0, 1)*v.Y + t.at(0, 2)*v.Z + t.at(0, 3)) * w,
		Y: (t.at(1, 0)*v.X + t.at(1, 1)*v.Y + t.at(1, 2)*v.Z + t.at(1, 3)) * w,
		Z: (t.at(2, 0)*v.X + t.at(2, 1)*v.Y + t.at(2, 2)*v.Z + t.at(2, 3)) * w,
	}
}

// Normals transforms surface normals with the inverse transpose of the
// linear part and returns them with unit length. Zero normals stay zero.
func (t Transform) Normals(ns []r3.Vec) []r3.Vec {
	out := make([]r3.Vec, len(ns))
	inv := t.Inv()
	for i, n := range ns {
		// Multiply by the transpose of inv.
		m := r3.Vec{
			X: inv.at(0, 0)*n.X + inv.at(1, 0)*n.Y + inv.at(2, 0)*n.Z,
			Y: inv.at(0, 1)*n.X + inv.at(1, 1)*n.Y + inv.at(2, 1)*n.Z,
			Z: inv.at(0, 2)*n.X + inv.at(1, 2)*n.Y + inv.at(2, 2)*n.Z,
		}
		if r3.Norm2(m) != 0 {
			m = r3.Unit(m)
		}
		out[i] = m
	}
	return out
}

// Translate adds v to the positional part of the Transform.
func (t Transform) Translate(v r3.Vec) Transform {
	t.d[3] += v.X
	t.d[7] += v.Y
	t.d[11] += v.Z
	return t
}

// Scale returns the transform with scaling by factor added around
// the argument origin.
func (t Transform) Scale(origin, factor r3.Vec) Transform {
	s := NewTransform([]float64{
		factor.X, 0, 0, origin.X * (1 - factor.X),
		0, factor.Y, 0, origin.Y * (1 - factor.Y),
		0, 0, factor.Z, origin.Z * (1 - factor.Z),
		0, 0, 0, 1,
	})
	return s.Mul(t)
}

// Mul multiplies the Transforms t and b and returns the result t*b,
// which applies b first and then t.
func (t Transform) Mul(b Transform) Transform {
	if t.IsIdentity() {
		return b
	}
	if b.IsIdentity() {
		return t
	}
	var m Transform
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += t.at(r, k) * b.at(k, c)
			}
			m.set(r, c, sum)
		}
	}
	return m
}

// Det returns the determinant of the Transform.
func (t Transform) Det() float64 {
	a := t.array()
	det := 1.0
	for col := 0; col < 4; col++ {
		p := pivotRow(&a, col)
		if a[p][col] == 0 {
			return 0
		}
		if p != col {
			a[p], a[col] = a[col], a[p]
			det = -det
		}
		det *= a[col][col]
		for r := col + 1; r < 4; r++ {
			f := a[r][col] / a[col][col]
			for c := col; c < 4; c++ {
				a[r][c] -= f * a[col][c]
			}
		}
	}
	return det
}

// Inv returns the inverse of the transform such that
// t.Inv().Mul(t) is the identity Transform.
// If the matrix is singular then Inv returns the zero transform.
func (t Transform) Inv() Transform {
	if t.IsIdentity() {
		return t
	}
	a := t.array()
	var inv [4][4]float64
	for i := range inv {
		inv[i][i] = 1
	}
	// Gauss-Jordan elimination with partial pivoting.
	for col := 0; col < 4; col++ {
		p := pivotRow(&a, col)
		if math.Abs(a[p][col]) < 1e-16 {
			return NewTransform(nil)
		}
		a[p], a[col] = a[col], a[p]
		inv[p], inv[col] = inv[col], inv[p]
		f := 1 / a[col][col]
		for c := 0; c < 4; c++ {
			a[col][c] *= f
			inv[col][c] *= f
		}
		for r := 0; r < 4; r++ {
			if r == col || a[r][col] == 0 {
				continue
			}
			g := a[r][col]
			for c := 0; c < 4; c++ {
				a[r][c] -= g * a[col][c]
				inv[r][c] -= g * inv[col][c]
			}
		}
	}
	var m Transform
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m.set(r, c, inv[r][c])
		}
	}
	return m
}

func (t Transform) array() (a [4][4]float64) {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			a[r][c] = t.at(r, c)
		}
	}
	return a
}

// pivotRow returns the row at or below col with the largest magnitude in
// column col.
func pivotRow(a *[4][4]float64, col int) int {
	p := col
	for r := col + 1; r < 4; r++ {
		if math.Abs(a[r][col]) > math.Abs(a[p][col]) {
			p = r
		}
	}
	return p
}

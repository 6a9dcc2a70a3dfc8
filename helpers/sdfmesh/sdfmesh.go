// Package sdfmesh tessellates signed distance primitives into closed
// meshes for demos and tests.
package sdfmesh

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/soypat/dent/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Sphere returns a sphere of the given radius centered at center, sampled
// with cells marching cubes along its longest side.
func Sphere(radius float64, center r3.Vec, cells int) (*mesh.Mesh, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, err
	}
	m, err := tessellate(s, center, cells)
	if err != nil {
		return nil, err
	}
	m.Name = "sphere"
	return m, nil
}

// Box returns a box of the given size with edges rounded by round,
// centered at center.
func Box(size r3.Vec, round float64, center r3.Vec, cells int) (*mesh.Mesh, error) {
	s, err := sdf.Box3D(v3.Vec{X: size.X, Y: size.Y, Z: size.Z}, round)
	if err != nil {
		return nil, err
	}
	m, err := tessellate(s, center, cells)
	if err != nil {
		return nil, err
	}
	m.Name = "box"
	return m, nil
}

func tessellate(s sdf.SDF3, center r3.Vec, cells int) (*mesh.Mesh, error) {
	if cells < 2 {
		return nil, errors.New("need at least 2 cells to tessellate")
	}
	s = sdf.Transform3D(s, sdf.Translate3d(v3.Vec{X: center.X, Y: center.Y, Z: center.Z}))
	tris := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))
	soup := make([]r3.Triangle, 0, len(tris))
	for _, tri := range tris {
		soup = append(soup, r3.Triangle{fromV3(tri[0]), fromV3(tri[1]), fromV3(tri[2])})
	}
	m, err := mesh.FromTriangles(soup, 0)
	if err != nil {
		return nil, fmt.Errorf("while welding marching cubes output: %w", err)
	}
	m.Orient()
	return m, nil
}

func fromV3(v v3.Vec) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

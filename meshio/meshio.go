// Package meshio loads and saves meshes as STL, OBJ and PLY files.
package meshio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/soypat/dent/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Load reads the triangle soup at path, chosen by file extension, welds it
// into an indexed mesh and orients its faces outward. The mesh is named
// after the file.
func Load(path string) (*mesh.Mesh, error) {
	var (
		tris []r3.Triangle
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		tris, err = loadSTL(path)
	case ".obj":
		tris, err = LoadOBJ(path)
	case ".ply":
		tris, err = LoadPLY(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("while loading %s: %w", path, err)
	}
	m, err := mesh.FromTriangles(tris, 0)
	if err != nil {
		return nil, fmt.Errorf("while welding %s: %w", path, err)
	}
	m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if m.Orient() {
		glog.V(1).Infof("meshio: flipped inside out faces of %s", path)
	}
	if n := m.OpenEdges(); n > 0 {
		glog.Warningf("meshio: %s has %d open edges", path, n)
	}
	return m, nil
}

func loadSTL(path string) ([]r3.Triangle, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	tris, err := ReadSTL(fp)
	if errors.Is(err, ErrNormalMismatch) {
		glog.Warningf("meshio: %s: %v", path, err)
		err = nil
	}
	return tris, err
}

// Save writes the positions of m, its committed shape layer if present,
// to path as STL or OBJ chosen by file extension.
func Save(path string, m *mesh.Mesh) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".stl" && ext != ".obj" {
		return fmt.Errorf("unsupported output format %q", ext)
	}
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	pos := m.Positions()
	if ext == ".stl" {
		err = WriteSTL(fp, m.Triangles(pos))
	} else {
		err = WriteOBJ(fp, m, pos)
	}
	if err != nil {
		fp.Close()
		return fmt.Errorf("while writing %s: %w", path, err)
	}
	return fp.Close()
}

package meshio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/soypat/dent/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSTLWriteRead(t *testing.T) {
	cube := mesh.Cube(2)
	model := cube.Triangles(cube.Vertices)
	var b bytes.Buffer
	if err := WriteSTL(&b, model); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 84+50*len(model) {
		t.Fatalf("got %d bytes, want %d", b.Len(), 84+50*len(model))
	}
	got, err := ReadSTL(&b)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(model, got); diff != "" {
		t.Errorf("read back triangles differ (-want +got):\n%s", diff)
	}
}

func TestSTLReadErrors(t *testing.T) {
	if _, err := ReadSTL(bytes.NewReader(make([]byte, 20))); err == nil {
		t.Error("expected error reading short header")
	}
	if _, err := ReadSTL(bytes.NewReader(make([]byte, 84))); err == nil {
		t.Error("expected error for zero triangle count")
	}
	if err := WriteSTL(&bytes.Buffer{}, nil); err == nil {
		t.Error("expected error writing empty model")
	}

	cube := mesh.Cube(1)
	var b bytes.Buffer
	if err := WriteSTL(&b, cube.Triangles(cube.Vertices)); err != nil {
		t.Fatal(err)
	}
	raw := b.Bytes()
	// Truncated body.
	if _, err := ReadSTL(bytes.NewReader(raw[:len(raw)-10])); err == nil {
		t.Error("expected error reading truncated STL")
	}
	// NaN in the first vertex of the first triangle.
	bad := append([]byte(nil), raw...)
	binary.LittleEndian.PutUint32(bad[84+12:], math.Float32bits(float32(math.NaN())))
	if _, err := ReadSTL(bytes.NewReader(bad)); err == nil {
		t.Error("expected error reading NaN vertex")
	}
	// Flipped stored normal is accepted, a rotated one is a mismatch.
	rot := append([]byte(nil), raw...)
	put3F32(rot[84:], [3]float32{0, 0, 1})
	tris, err := ReadSTL(bytes.NewReader(rot))
	if !errors.Is(err, ErrNormalMismatch) {
		t.Fatalf("got error %v, want ErrNormalMismatch", err)
	}
	if len(tris) != len(cube.Faces) {
		t.Errorf("got %d triangles with normal mismatch, want %d", len(tris), len(cube.Faces))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	sphere := mesh.Icosphere(1, 2)
	shape := make([]r3.Vec, len(sphere.Vertices))
	for i, v := range sphere.Vertices {
		shape[i] = r3.Scale(1.5, v)
	}
	if err := sphere.SetShape(shape); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"sphere.stl", "sphere.obj"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(path, sphere); err != nil {
				t.Fatal(err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if got.Name != "sphere" {
				t.Errorf("got name %q", got.Name)
			}
			if len(got.Vertices) != len(sphere.Vertices) || len(got.Faces) != len(sphere.Faces) {
				t.Fatalf("got %d vertices %d faces, want %d and %d",
					len(got.Vertices), len(got.Faces), len(sphere.Vertices), len(sphere.Faces))
			}
			if got.OpenEdges() != 0 {
				t.Errorf("loaded mesh has %d open edges", got.OpenEdges())
			}
			// The saved mesh is the shape layer, 1.5 times the rest sphere.
			wantVol := 1.5 * 1.5 * 1.5 * sphere.SignedVolume()
			if vol := got.SignedVolume(); math.Abs(vol-wantVol) > 1e-4*wantVol {
				t.Errorf("got volume %g, want %g", vol, wantVol)
			}
		})
	}
}

func TestWriteOBJExact(t *testing.T) {
	m := &mesh.Mesh{
		Name:     "tri",
		Vertices: []r3.Vec{{X: 0.1}, {Y: 1.0 / 3}, {Z: -2.5e-7}},
		Faces:    [][3]int{{0, 1, 2}},
	}
	var b bytes.Buffer
	if err := WriteOBJ(&b, m, m.Vertices); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "tri.obj")
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	tris, err := LoadOBJ(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []r3.Triangle{m.Triangle(m.Vertices, 0)}
	if diff := cmp.Diff(want, tris); diff != "" {
		t.Errorf("OBJ round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := Load("model.fbx"); err == nil {
		t.Error("expected error loading unsupported format")
	}
	if err := Save(filepath.Join(t.TempDir(), "model.ply"), mesh.Cube(1)); err == nil {
		t.Error("expected error saving unsupported format")
	}
}

func BenchmarkWriteSTL(b *testing.B) {
	sphere := mesh.Icosphere(1, 5)
	model := sphere.Triangles(sphere.Vertices)
	var buf bytes.Buffer
	for i := 0; i < b.N; i++ {
		buf.Reset()
		WriteSTL(&buf, model)
	}
}

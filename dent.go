// Package dent indents a soft triangle mesh with a rigid hard mesh.
//
// Soft vertices inside the hard mesh are pushed out to its surface, the
// surrounding soft surface sinks in after them and the indented volume
// is restored as a bulge over the rest of the soft surface. The result is
// a shape layer parallel to the soft mesh's vertices; neither mesh is
// modified.
package dent

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/soypat/dent/internal/bih"
	"github.com/soypat/dent/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Report summarizes a deformation.
type Report struct {
	// Stage is the last stage reached.
	Stage Stage
	// DistTotal is the summed displacement of indented vertices.
	DistTotal   float64
	SinkInRange float64
	VolumeSum   float64
	VolumeFac   float64
	// MaxDelta is the largest search radius an indented vertex needed.
	MaxDelta     float64
	InteriorSoft int
	InteriorHard int
	Indented     int
	SunkIn       int
	Bulged       int
	// Islands is the number of connected groups of interior soft vertices.
	Islands int
	// Warnings holds the non fatal problems met, see the Err variables.
	Warnings []error
}

// Result is the outcome of Deform.
type Result struct {
	// Shape holds the deformed soft positions in the soft local frame.
	Shape []r3.Vec
	// Class holds the role of each soft vertex.
	Class  []Class
	Report Report
}

// Deform presses hard into soft and returns the deformed soft shape. The
// returned error wraps ErrInvalidSelection or ErrInvalidConfig; all other
// problems are reported as warnings in the result.
func Deform(soft, hard *mesh.Mesh, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if err := checkSelection(soft, hard); err != nil {
		return Result{}, err
	}
	r := newRun(soft, hard, cfg)
	r.classify()
	if len(r.interiorSoft) == 0 {
		r.warn(ErrNoOverlap)
		return r.result(), nil
	}

	r.stage(Indenting)
	r.indent()
	glog.V(1).Infof("dent: indented %d of %d vertices, total distance %g", r.report.Indented, len(r.interiorSoft), r.report.DistTotal)

	r.stage(SinkingIn)
	anchors := r.anchors()
	r.report.SinkInRange = r.sinkInRange()
	r.sinkIn(anchors)
	glog.V(1).Infof("dent: %d anchors, %d vertices sunk in within %g", len(anchors), r.report.SunkIn, r.report.SinkInRange)

	r.stage(RedistributingVolume)
	r.redistribute(anchors)
	glog.V(1).Infof("dent: bulged %d vertices, volume factor %g", r.report.Bulged, r.report.VolumeFac)

	r.stage(Done)
	return r.result(), nil
}

func checkSelection(soft, hard *mesh.Mesh) error {
	switch {
	case soft == nil || hard == nil:
		return fmt.Errorf("%w: nil mesh", ErrInvalidSelection)
	case soft == hard:
		return fmt.Errorf("%w: soft and hard are the same mesh", ErrInvalidSelection)
	}
	if err := soft.Validate(); err != nil {
		return fmt.Errorf("%w: soft mesh: %v", ErrInvalidSelection, err)
	}
	if err := hard.Validate(); err != nil {
		return fmt.Errorf("%w: hard mesh: %v", ErrInvalidSelection, err)
	}
	if &soft.Vertices[0] == &hard.Vertices[0] || &soft.Faces[0] == &hard.Faces[0] {
		return fmt.Errorf("%w: soft and hard share vertex or face storage", ErrInvalidSelection)
	}
	if soft.World.Det() == 0 {
		return fmt.Errorf("%w: soft world transform is singular", ErrInvalidSelection)
	}
	return nil
}

// run holds the snapshots and scratch state of one Deform call.
type run struct {
	cfg       Config
	soft      *mesh.Mesh
	fromShape bool
	// base and shape are in the soft local frame.
	base      []r3.Vec
	shape     []r3.Vec
	softWorld []r3.Vec
	toLocal   mesh.Transform

	hardFaces   [][3]int
	hardWorld   []r3.Vec
	hardNormals []r3.Vec // world frame, unit
	hardTree    *bih.Tree

	class        []Class
	indented     []bool
	interiorSoft []int
	interiorHard []int
	report       Report
}

func newRun(soft, hard *mesh.Mesh, cfg Config) *run {
	r := &run{
		cfg:       cfg,
		soft:      soft,
		fromShape: cfg.FromShape && soft.Shape != nil,
		toLocal:   soft.World.Inv(),
	}
	if r.fromShape {
		r.base = append([]r3.Vec(nil), soft.Shape...)
	} else {
		r.base = append([]r3.Vec(nil), soft.Vertices...)
	}
	r.shape = append([]r3.Vec(nil), r.base...)
	r.softWorld = soft.WorldPositions(r.base)
	r.class = make([]Class, len(r.base))
	r.indented = make([]bool, len(r.base))

	solid := r.solidHard(hard)
	pos := solid.Positions()
	r.hardFaces = solid.Faces
	r.hardWorld = solid.WorldPositions(pos)
	r.hardTree = bih.New(r.hardWorld, r.hardFaces)
	normals := solid.Normals
	if normals == nil || solid.Shape != nil {
		normals = mesh.VertexNormals(pos, solid.Faces)
	}
	r.hardNormals = solid.World.Normals(normals)
	for _, m := range [2]*mesh.Mesh{soft, solid} {
		if n := m.OpenEdges(); n > 0 {
			glog.Warningf("dent: mesh %q has %d open edges, containment may be wrong", m.Name, n)
		}
	}
	return r
}

// solidHard returns the hard mesh the run solves against, decimated
// when requested.
func (r *run) solidHard(hard *mesh.Mesh) *mesh.Mesh {
	if !r.cfg.UseDecimate {
		return hard
	}
	src := &mesh.Mesh{Name: hard.Name, Vertices: hard.Positions(), Faces: hard.Faces, World: hard.World}
	dm, err := mesh.Decimate(src, r.cfg.DecimateFactor)
	if err != nil {
		r.warn(fmt.Errorf("decimating hard mesh: %w", err))
		return hard
	}
	glog.V(1).Infof("dent: decimated hard mesh from %d to %d faces", len(hard.Faces), len(dm.Faces))
	return dm
}

// classify finds the soft vertices inside the hard mesh and the hard
// vertices inside the soft mesh.
func (r *run) classify() {
	r.stage(Classifying)
	workers := r.cfg.workers()
	softTree := bih.New(r.softWorld, r.soft.Faces)
	r.interiorSoft = insideOf(newOracle(r.cfg.Containment, r.hardTree), r.softWorld, workers)
	r.interiorHard = insideOf(newOracle(r.cfg.Containment, softTree), r.hardWorld, workers)
	if r.cfg.BroadPhase {
		crossing, err := crossingVertices(r.softWorld, r.soft.Faces, r.hardWorld, r.hardFaces)
		if err != nil {
			r.warn(fmt.Errorf("broad phase: %w", err))
		}
		r.interiorSoft = mergeSorted(r.interiorSoft, crossing)
	}
	for _, v := range r.interiorSoft {
		r.class[v] = Interior
	}
	r.report.InteriorSoft = len(r.interiorSoft)
	r.report.InteriorHard = len(r.interiorHard)
	r.report.Islands = len(r.soft.Islands(r.interiorSoft))
	glog.V(1).Infof("dent: %d soft vertices inside hard in %d islands, %d hard vertices inside soft",
		r.report.InteriorSoft, r.report.Islands, r.report.InteriorHard)
}

func (r *run) stage(s Stage) {
	r.report.Stage = s
}

func (r *run) warn(err error) {
	glog.Warningf("dent: %v", err)
	r.report.Warnings = append(r.report.Warnings, err)
}

func (r *run) result() Result {
	return Result{Shape: r.shape, Class: r.class, Report: r.report}
}

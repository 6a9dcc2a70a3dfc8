package dent

import "strconv"

// Stage is a step of the deformation.
type Stage int

const (
	Idle Stage = iota
	Classifying
	Indenting
	SinkingIn
	RedistributingVolume
	Done
)

func (s Stage) String() string {
	switch s {
	case Idle:
		return "idle"
	case Classifying:
		return "classifying"
	case Indenting:
		return "indenting"
	case SinkingIn:
		return "sinking in"
	case RedistributingVolume:
		return "redistributing volume"
	case Done:
		return "done"
	}
	return "Stage(" + strconv.Itoa(int(s)) + ")"
}

// Class is the role of a soft vertex in a deformation.
type Class uint8

const (
	// Exterior vertices lie outside the hard mesh.
	Exterior Class = iota
	// Interior vertices lie inside the hard mesh.
	Interior
	// Boundary vertices are exterior vertices within sink-in range of the dent.
	Boundary
)

func (c Class) String() string {
	switch c {
	case Exterior:
		return "exterior"
	case Interior:
		return "interior"
	case Boundary:
		return "boundary"
	}
	return "Class(" + strconv.Itoa(int(c)) + ")"
}

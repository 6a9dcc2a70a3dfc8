package dent

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSelection is returned when the soft and hard meshes
	// cannot be deformed against each other.
	ErrInvalidSelection = errors.New("invalid mesh selection")
	// ErrInvalidConfig is returned for out of range parameters.
	ErrInvalidConfig = errors.New("invalid config")
)

// The following are warnings collected in Report.Warnings.
var (
	ErrNoOverlap           = errors.New("no overlap between soft and hard mesh")
	ErrDeltaExhausted      = errors.New("no overlapping vertices")
	ErrRayMissed           = errors.New("ray missed hard surface")
	ErrZeroDirection       = errors.New("hard normals average to zero")
	ErrDegenerateVolumeSum = errors.New("volume ramp sum is zero")
)

// VertexError is a warning about a soft vertex that was left at its
// base position.
type VertexError struct {
	Vertex int
	// Delta is the last search radius tried.
	Delta float64
	Err   error
}

func (e *VertexError) Error() string {
	return fmt.Sprintf("vertex %d (delta %g): %v", e.Vertex, e.Delta, e.Err)
}

func (e *VertexError) Unwrap() error { return e.Err }

package dent

import (
	"fmt"
	"math"
	"runtime"
)

// Containment selects how points are tested against a closed mesh.
type Containment int

const (
	// RayParity casts rays along the three positive axes and counts crossings.
	RayParity Containment = iota
	// ClosestSide tests the side of the closest surface feature.
	ClosestSide
)

func (c Containment) String() string {
	switch c {
	case RayParity:
		return "rayparity"
	case ClosestSide:
		return "closestside"
	}
	return fmt.Sprintf("Containment(%d)", int(c))
}

// Config defines the parameters of an indentation. Distances are in the
// units of the meshes.
type Config struct {
	DisplaceIncrease   float64 // push indented vertices this far past the hard surface
	DeltaInitial       float64 // initial hard vertex search radius
	DeltaIncrease      float64 // search radius growth step
	DeltaCeiling       float64 // give up on a vertex past this search radius
	SinkInRange        float64 // sink-in falloff distance when AutoSinkIn is false
	AutoSinkIn         bool    // derive the sink-in range from the indentation depth
	SinkInSmoothness   float64 // in [0,1], 0 is close to linear
	VolumePreservation float64 // fraction of the indented volume restored as bulge
	VolumeRamp         float64 // bulge ease-in distance from the dent
	UseDecimate        bool    // simplify the hard mesh before solving
	DecimateFactor     float64 // fraction of hard faces kept when decimating
	BroadPhase         bool    // also mark vertices of soft faces crossing the hard surface
	Containment        Containment
	FromShape          bool // start from the soft mesh's shape layer
	Workers            int  // goroutines per pass, 0 uses GOMAXPROCS
}

// DefaultConfig returns the default indentation parameters.
func DefaultConfig() Config {
	return Config{
		DisplaceIncrease:   0.02,
		DeltaInitial:       5,
		DeltaIncrease:      0.1,
		DeltaCeiling:       100,
		SinkInRange:        1.2,
		AutoSinkIn:         true,
		SinkInSmoothness:   0.95,
		VolumePreservation: 1,
		VolumeRamp:         0.8,
		DecimateFactor:     0.5,
		Containment:        RayParity,
	}
}

// Validate returns an error wrapping ErrInvalidConfig naming the first
// offending field.
func (c Config) Validate() (err error) {
	switch {
	case !finite(c.DisplaceIncrease) || c.DisplaceIncrease < 0:
		err = fmt.Errorf("DisplaceIncrease %g must be finite and >= 0", c.DisplaceIncrease)
	case !finite(c.DeltaInitial) || c.DeltaInitial <= 0:
		err = fmt.Errorf("DeltaInitial %g must be finite and > 0", c.DeltaInitial)
	case !finite(c.DeltaIncrease) || c.DeltaIncrease <= 0:
		err = fmt.Errorf("DeltaIncrease %g must be finite and > 0", c.DeltaIncrease)
	case !finite(c.DeltaCeiling) || c.DeltaCeiling < c.DeltaInitial:
		err = fmt.Errorf("DeltaCeiling %g must be finite and >= DeltaInitial", c.DeltaCeiling)
	case !c.AutoSinkIn && (!finite(c.SinkInRange) || c.SinkInRange < 0):
		err = fmt.Errorf("SinkInRange %g must be finite and >= 0", c.SinkInRange)
	case !(c.SinkInSmoothness >= 0 && c.SinkInSmoothness <= 1):
		err = fmt.Errorf("SinkInSmoothness %g out of range [0,1]", c.SinkInSmoothness)
	case !finite(c.VolumePreservation) || c.VolumePreservation < 0:
		err = fmt.Errorf("VolumePreservation %g must be finite and >= 0", c.VolumePreservation)
	case !finite(c.VolumeRamp) || c.VolumeRamp <= 0:
		err = fmt.Errorf("VolumeRamp %g must be finite and > 0", c.VolumeRamp)
	case c.UseDecimate && !(c.DecimateFactor > 0 && c.DecimateFactor <= 1):
		err = fmt.Errorf("DecimateFactor %g out of range (0,1]", c.DecimateFactor)
	case c.Containment != RayParity && c.Containment != ClosestSide:
		err = fmt.Errorf("unknown containment %v", c.Containment)
	case c.Workers < 0:
		err = fmt.Errorf("Workers %d must be >= 0", c.Workers)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

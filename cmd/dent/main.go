// Command dent presses a hard mesh into a soft mesh and saves the
// deformed soft mesh.
package main

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/soypat/dent"
	"github.com/soypat/dent/helpers/sdfmesh"
	"github.com/soypat/dent/mesh"
	"github.com/soypat/dent/meshio"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	softPath   = flag.String("soft", "", "Soft mesh to deform (.stl, .obj or .ply).")
	hardPath   = flag.String("hard", "", "Hard mesh pressed into the soft mesh.")
	outPath    = flag.String("out", "dented.stl", "Output path for the deformed soft mesh (.stl or .obj).")
	demo       = flag.Bool("demo", false, "Press a generated sphere into another instead of loading meshes.")
	demoCells  = flag.Int("demo-cells", 48, "Marching cubes resolution of the demo spheres.")
	softOffset = flag.String("soft-offset", "0,0,0", "World translation x,y,z of the soft mesh.")
	hardOffset = flag.String("hard-offset", "0,0,0", "World translation x,y,z of the hard mesh.")
	softScale  = flag.String("soft-scale", "1,1,1", "World scale x,y,z of the soft mesh, applied before -soft-offset.")
	hardScale  = flag.String("hard-scale", "1,1,1", "World scale x,y,z of the hard mesh, applied before -hard-offset.")

	cfg         = dent.DefaultConfig()
	containment = flag.String("containment", "rayparity", "Point containment test: rayparity or closestside.")
)

func init() {
	flag.Float64Var(&cfg.DisplaceIncrease, "displace-increase", cfg.DisplaceIncrease, "Push indented vertices this far past the hard surface.")
	flag.Float64Var(&cfg.DeltaInitial, "delta-initial", cfg.DeltaInitial, "Initial search radius for interior hard vertices.")
	flag.Float64Var(&cfg.DeltaIncrease, "delta-increase", cfg.DeltaIncrease, "Search radius growth step.")
	flag.Float64Var(&cfg.DeltaCeiling, "delta-ceiling", cfg.DeltaCeiling, "Largest search radius before a vertex is skipped.")
	flag.Float64Var(&cfg.SinkInRange, "sinkin-range", cfg.SinkInRange, "Sink-in falloff distance, used with -auto-sinkin=false.")
	flag.BoolVar(&cfg.AutoSinkIn, "auto-sinkin", cfg.AutoSinkIn, "Derive the sink-in range from the indentation depth.")
	flag.Float64Var(&cfg.SinkInSmoothness, "sinkin-smoothness", cfg.SinkInSmoothness, "Sink-in smoothness in [0,1].")
	flag.Float64Var(&cfg.VolumePreservation, "volume-preservation", cfg.VolumePreservation, "Fraction of indented volume restored as bulge.")
	flag.Float64Var(&cfg.VolumeRamp, "volume-ramp", cfg.VolumeRamp, "Bulge ease-in distance from the dent.")
	flag.BoolVar(&cfg.UseDecimate, "decimate", cfg.UseDecimate, "Simplify the hard mesh before solving.")
	flag.Float64Var(&cfg.DecimateFactor, "decimate-factor", cfg.DecimateFactor, "Fraction of hard faces kept by -decimate.")
	flag.BoolVar(&cfg.BroadPhase, "broad-phase", cfg.BroadPhase, "Also indent vertices of soft faces crossing the hard surface.")
	flag.BoolVar(&cfg.FromShape, "from-shape", cfg.FromShape, "Start from the soft mesh's shape layer.")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Goroutines per pass, 0 uses GOMAXPROCS.")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	if err := do(); err != nil {
		glog.Exitf("Error: %v", err)
	}
}

func do() error {
	switch *containment {
	case "rayparity":
		cfg.Containment = dent.RayParity
	case "closestside":
		cfg.Containment = dent.ClosestSide
	default:
		return fmt.Errorf("unknown -containment %q", *containment)
	}
	softWorld, err := worldTransform(*softScale, *softOffset)
	if err != nil {
		return fmt.Errorf("while parsing soft placement: %w", err)
	}
	hardWorld, err := worldTransform(*hardScale, *hardOffset)
	if err != nil {
		return fmt.Errorf("while parsing hard placement: %w", err)
	}

	soft, hard, err := loadMeshes()
	if err != nil {
		return err
	}
	soft.World = softWorld
	hard.World = hardWorld
	glog.Infof("soft %q: %d vertices %d faces", soft.Name, len(soft.Vertices), len(soft.Faces))
	glog.Infof("hard %q: %d vertices %d faces", hard.Name, len(hard.Vertices), len(hard.Faces))

	res, err := dent.Deform(soft, hard, cfg)
	if err != nil {
		return fmt.Errorf("while deforming: %w", err)
	}
	summarize(res.Report)
	if res.Report.Stage != dent.Done {
		return nil
	}
	if err := soft.SetShape(res.Shape); err != nil {
		return err
	}
	if err := meshio.Save(*outPath, soft); err != nil {
		return err
	}
	glog.Infof("wrote %s", *outPath)
	return nil
}

func loadMeshes() (soft, hard *mesh.Mesh, err error) {
	if *demo {
		soft, err = sdfmesh.Sphere(1, r3.Vec{}, *demoCells)
		if err != nil {
			return nil, nil, fmt.Errorf("while generating soft sphere: %w", err)
		}
		hard, err = sdfmesh.Sphere(0.5, r3.Vec{Z: 1.2}, *demoCells)
		if err != nil {
			return nil, nil, fmt.Errorf("while generating hard sphere: %w", err)
		}
		return soft, hard, nil
	}
	if *softPath == "" || *hardPath == "" {
		return nil, nil, errors.New("need -soft and -hard, or -demo")
	}
	soft, err = meshio.Load(*softPath)
	if err != nil {
		return nil, nil, err
	}
	hard, err = meshio.Load(*hardPath)
	if err != nil {
		return nil, nil, err
	}
	return soft, hard, nil
}

func summarize(r dent.Report) {
	glog.Infof("stage: %v", r.Stage)
	glog.Infof("interior: %d soft in %d islands, %d hard", r.InteriorSoft, r.Islands, r.InteriorHard)
	glog.Infof("indented: %d, total distance %g, max delta %g", r.Indented, r.DistTotal, r.MaxDelta)
	glog.Infof("sunk in: %d within %g", r.SunkIn, r.SinkInRange)
	glog.Infof("bulged: %d, volume sum %g, volume factor %g", r.Bulged, r.VolumeSum, r.VolumeFac)
	for _, w := range r.Warnings {
		var verr *dent.VertexError
		if errors.As(w, &verr) {
			continue // logged by dent
		}
		glog.Warningf("warning: %v", w)
	}
	if n := len(r.Warnings); n > 0 {
		glog.Infof("%d warnings", n)
	}
}

// worldTransform scales about the local origin and then translates.
func worldTransform(scale, offset string) (mesh.Transform, error) {
	s, err := parseVec(scale)
	if err != nil {
		return mesh.Transform{}, fmt.Errorf("scale: %w", err)
	}
	at, err := parseVec(offset)
	if err != nil {
		return mesh.Transform{}, fmt.Errorf("offset: %w", err)
	}
	return mesh.Transform{}.Scale(r3.Vec{}, s).Translate(at), nil
}

// parseVec parses a comma separated x,y,z triple.
func parseVec(s string) (r3.Vec, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return r3.Vec{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var f [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return r3.Vec{}, err
		}
		f[i] = v
	}
	return r3.Vec{X: f[0], Y: f[1], Z: f[2]}, nil
}

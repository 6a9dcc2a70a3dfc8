// Command dentplot charts the sink-in and volume ramp falloff profiles.
package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/soypat/dent"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

var (
	sinkRange  = flag.Float64("range", 1.2, "Sink-in range.")
	volumeRamp = flag.Float64("ramp", 0.8, "Volume ramp distance.")
	smoothness = flag.String("smoothness", "0,0.5,0.95,1", "Comma separated sink-in smoothness values.")
	outPath    = flag.String("out", "falloff.png", "Output chart; format by extension (.png, .svg, .pdf).")
	width      = flag.Float64("width", 6, "Chart width in inches.")
	height     = flag.Float64("height", 4, "Chart height in inches.")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	smooth, err := parseList(*smoothness)
	if err != nil {
		glog.Exitf("Error: while parsing -smoothness: %v", err)
	}
	p, err := profilePlot(*sinkRange, *volumeRamp, smooth)
	if err != nil {
		glog.Exitf("Error: %v", err)
	}
	if err := p.Save(vg.Length(*width)*vg.Inch, vg.Length(*height)*vg.Inch, *outPath); err != nil {
		glog.Exitf("Error: while saving %s: %v", *outPath, err)
	}
	glog.Infof("wrote %s", *outPath)
}

// profilePlot plots one sink-in curve per smoothness and the volume ramp
// over distance from the dent.
func profilePlot(rng, ramp float64, smooth []float64) (*plot.Plot, error) {
	if rng <= 0 || ramp <= 0 {
		return nil, fmt.Errorf("range %g and ramp %g must be positive", rng, ramp)
	}
	p := plot.New()
	p.Title.Text = "Indentation falloff"
	p.X.Label.Text = "distance"
	p.Y.Label.Text = "weight"
	p.X.Min, p.X.Max = 0, 1.25*max(rng, ramp)
	p.Y.Min, p.Y.Max = 0, 1.05
	for i, s := range smooth {
		if s < 0 || s > 1 {
			return nil, fmt.Errorf("smoothness %g out of range [0,1]", s)
		}
		fn := plotter.NewFunction(func(x float64) float64 { return dent.SinkIn(x, rng, s) })
		fn.Samples = 200
		fn.Color = plotutil.Color(i)
		p.Add(fn)
		p.Legend.Add(fmt.Sprintf("sink-in s=%g", s), fn)
	}
	fn := plotter.NewFunction(func(x float64) float64 { return dent.Ramp(x, ramp) })
	fn.Samples = 200
	fn.Color = plotutil.Color(len(smooth))
	fn.Dashes = plotutil.Dashes(1)
	p.Add(fn)
	p.Legend.Add("volume ramp", fn)
	p.Legend.Top = true
	return p, nil
}

func parseList(s string) ([]float64, error) {
	var list []float64
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, nil
}

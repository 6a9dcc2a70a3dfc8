package dent

import "math"

// DecayCoefficient maps a sink-in smoothness in [0,1] to the decay length
// of SinkIn as a fraction of the range: 3 at smoothness 0, where the
// falloff is close to linear, down to 0.001 at smoothness 1.
func DecayCoefficient(smoothness float64) float64 {
	return 3 * math.Pow(0.001/3, smoothness)
}

// SinkIn returns the fraction of an anchor's displacement carried by a
// vertex at distance x from it. It falls from 1 at x=0 to 0 at x=rng
// and is zero beyond.
func SinkIn(x, rng, smoothness float64) float64 {
	if rng <= 0 || x >= rng {
		return 0
	}
	t := math.Max(x, 0) / rng
	c := DecayCoefficient(smoothness)
	end := math.Exp(-1 / c)
	return math.Max(0, (math.Exp(-t/c)-end)/(1-end))
}

// Ramp is a quadratic ease-in-out from 0 at x=0 to 1 at x=ramp.
// It is 1 for x >= ramp.
func Ramp(x, ramp float64) float64 {
	if x >= ramp {
		return 1
	}
	if x <= 0 {
		return 0
	}
	t := x / ramp
	if t < 0.5 {
		return 2 * t * t
	}
	u := 1 - t
	return 1 - 2*u*u
}

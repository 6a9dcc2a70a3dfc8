package dent

import (
	"math"
	"testing"
)

func TestDecayCoefficient(t *testing.T) {
	if got := DecayCoefficient(0); math.Abs(got-3) > 1e-12 {
		t.Errorf("DecayCoefficient(0) = %g, want 3", got)
	}
	if got := DecayCoefficient(1); math.Abs(got-0.001) > 1e-15 {
		t.Errorf("DecayCoefficient(1) = %g, want 0.001", got)
	}
	last := math.Inf(1)
	for s := 0.0; s <= 1; s += 0.05 {
		k := DecayCoefficient(s)
		if k >= last {
			t.Fatalf("decay coefficient not decreasing at smoothness %g", s)
		}
		last = k
	}
}

func TestSinkInProfile(t *testing.T) {
	const rng = 1.2
	for _, s := range []float64{0, 0.25, 0.5, 0.95, 1} {
		if got := SinkIn(0, rng, s); math.Abs(got-1) > 1e-12 {
			t.Errorf("smoothness %g: SinkIn(0) = %g, want 1", s, got)
		}
		if got := SinkIn(rng, rng, s); got != 0 {
			t.Errorf("smoothness %g: SinkIn(range) = %g, want 0", s, got)
		}
		if got := SinkIn(2*rng, rng, s); got != 0 {
			t.Errorf("smoothness %g: SinkIn beyond range = %g, want 0", s, got)
		}
		last := 2.0
		for x := 0.0; x < rng; x += rng / 64 {
			f := SinkIn(x, rng, s)
			// Steep profiles underflow to zero before the range ends.
			if f < 0 || f > 1 || f > last || (s <= 0.5 && f == last) {
				t.Fatalf("smoothness %g: SinkIn(%g) = %g not in [0,1] or not decreasing from %g", s, x, f, last)
			}
			last = f
		}
	}
	// Smoothness 0 is close to linear.
	for _, x := range []float64{0.3, 0.6, 0.9} {
		lin := 1 - x/rng
		if got := SinkIn(x, rng, 0); math.Abs(got-lin) > 0.05 {
			t.Errorf("SinkIn(%g) with smoothness 0 = %g, want about %g", x, got, lin)
		}
	}
	// Smoother falloff sinks in less at the same distance.
	prev := math.Inf(1)
	for _, s := range []float64{0, 0.5, 0.95, 1} {
		f := SinkIn(0.3, rng, s)
		if f >= prev {
			t.Errorf("SinkIn(0.3) with smoothness %g = %g, not below %g", s, f, prev)
		}
		prev = f
	}
	if got := SinkIn(0.1, 0, 0.5); got != 0 {
		t.Errorf("zero range SinkIn = %g, want 0", got)
	}
}

func TestRamp(t *testing.T) {
	const ramp = 0.8
	for _, test := range []struct {
		x, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.2, 0.125},
		{0.4, 0.5},
		{0.6, 0.875},
		{0.8, 1},
		{5, 1},
	} {
		if got := Ramp(test.x, ramp); math.Abs(got-test.want) > 1e-12 {
			t.Errorf("Ramp(%g, %g) = %g, want %g", test.x, ramp, got, test.want)
		}
	}
	last := -1.0
	for x := 0.0; x <= ramp; x += ramp / 50 {
		f := Ramp(x, ramp)
		if f < last {
			t.Fatalf("Ramp decreasing at %g", x)
		}
		last = f
	}
}

package dent

import (
	"errors"
	"math"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	for _, test := range []struct {
		name   string
		modify func(*Config)
	}{
		{"negative displace", func(c *Config) { c.DisplaceIncrease = -1 }},
		{"zero delta", func(c *Config) { c.DeltaInitial = 0 }},
		{"zero increase", func(c *Config) { c.DeltaIncrease = 0 }},
		{"ceiling below initial", func(c *Config) { c.DeltaCeiling = 1 }},
		{"nan ceiling", func(c *Config) { c.DeltaCeiling = math.NaN() }},
		{"negative range", func(c *Config) { c.AutoSinkIn = false; c.SinkInRange = -0.1 }},
		{"smoothness above one", func(c *Config) { c.SinkInSmoothness = 1.5 }},
		{"nan smoothness", func(c *Config) { c.SinkInSmoothness = math.NaN() }},
		{"negative preservation", func(c *Config) { c.VolumePreservation = -1 }},
		{"zero ramp", func(c *Config) { c.VolumeRamp = 0 }},
		{"bad decimate", func(c *Config) { c.UseDecimate = true; c.DecimateFactor = 0 }},
		{"unknown containment", func(c *Config) { c.Containment = 7 }},
		{"negative workers", func(c *Config) { c.Workers = -2 }},
	} {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultConfig()
			test.modify(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("got %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfigIgnoresUnusedFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SinkInRange = -1 // unused with auto sink-in
	cfg.DecimateFactor = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

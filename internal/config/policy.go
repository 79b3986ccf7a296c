package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Policy is the tunable significance-scoring table. Each slice holds
// ascending crossing points; every band a movement's magnitude reaches adds
// one point, so the ladders are additive rather than max-of.
type Policy struct {
	NativeBands []float64 `yaml:"native_bands"` // SOL
	StableBands []float64 `yaml:"stable_bands"` // display units
	LegBands    []float64 `yaml:"leg_bands"`    // display units
}

// DefaultPolicy returns the built-in escalating ladder.
func DefaultPolicy() Policy {
	return Policy{
		NativeBands: []float64{1, 10, 100, 500, 1000},
		StableBands: []float64{1_000, 10_000, 100_000, 500_000, 1_000_000},
		LegBands:    []float64{1_000, 10_000, 100_000, 500_000, 1_000_000},
	}
}

// LoadPolicy reads a scoring policy from a YAML file. Omitted ladders keep
// their defaults.
func LoadPolicy(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy file: %w", err)
	}

	policy := DefaultPolicy()
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return Policy{}, fmt.Errorf("parse policy file: %w", err)
	}

	if err := policy.Validate(); err != nil {
		return Policy{}, err
	}
	return policy, nil
}

// Validate rejects ladders that are not strictly ascending or contain
// non-positive crossing points.
func (p Policy) Validate() error {
	for name, bands := range map[string][]float64{
		"native_bands": p.NativeBands,
		"stable_bands": p.StableBands,
		"leg_bands":    p.LegBands,
	} {
		for i, band := range bands {
			if band <= 0 {
				return fmt.Errorf("%s[%d] must be positive, got %g", name, i, band)
			}
			if i > 0 && band <= bands[i-1] {
				return fmt.Errorf("%s must be strictly ascending (%g after %g)", name, band, bands[i-1])
			}
		}
	}
	return nil
}

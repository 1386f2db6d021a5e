package router

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sheafworks/latticeroute/pkg/validation"
)

// Config holds the router's decision parameters. Pass it explicitly; there
// is no process-wide mutable configuration, so independently configured
// routers can coexist.
type Config struct {
	// LatticeSteps is the discretization resolution of the trust lattice
	LatticeSteps int `yaml:"lattice_steps"`
	// AllowThreshold is the minimum coherence score for ALLOW
	AllowThreshold float64 `yaml:"allow_threshold"`
	// QuarantineThreshold is the minimum coherence score for QUARANTINE;
	// below it the path is DENIED
	QuarantineThreshold float64 `yaml:"quarantine_threshold"`
	// MaxIterations bounds harmonic flow; exceeding it is a construction
	// bug, not a runtime condition to retry
	MaxIterations int `yaml:"max_iterations"`
	// HarmonicCoupling is the risk-amplification base
	HarmonicCoupling float64 `yaml:"harmonic_coupling"`
}

// DefaultConfig returns the documented defaults: 16 lattice steps, allow at
// coherence >= 0.8, quarantine at >= 0.4, 64 iterations, golden-ratio
// coupling.
func DefaultConfig() Config {
	return Config{
		LatticeSteps:        16,
		AllowThreshold:      0.8,
		QuarantineThreshold: 0.4,
		MaxIterations:       64,
		HarmonicCoupling:    math.Phi,
	}
}

// Validate checks the config is usable. A non-positive LatticeSteps is a
// malformed-lattice construction failure and is never silently defaulted.
func (c Config) Validate() error {
	return validation.NewConfigValidator("RouterConfig").
		Positive("LatticeSteps", c.LatticeSteps).
		Positive("MaxIterations", c.MaxIterations).
		Probability("AllowThreshold", c.AllowThreshold).
		Probability("QuarantineThreshold", c.QuarantineThreshold).
		Ordered("QuarantineThreshold", c.QuarantineThreshold, "AllowThreshold", c.AllowThreshold).
		MinFloat("HarmonicCoupling", c.HarmonicCoupling, 1.0).
		Validate()
}

// LoadConfig reads a YAML config file over the defaults, so omitted fields
// keep their documented values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

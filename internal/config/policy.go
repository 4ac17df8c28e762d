// Package config holds the compensation and depth policy applied by the audit,
// and loads it from defaults, an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalidPolicy is returned by Validate and Load for unusable settings.
var ErrInvalidPolicy = errors.New("invalid policy")

const (
	DefaultMinMultiplier = 1.20
	DefaultMaxMultiplier = 1.50
	DefaultMaxDepth      = 4
)

// Environment overrides, applied after the config file.
const (
	EnvMinMultiplier = "ORGAUDIT_MIN_MULTIPLIER"
	EnvMaxMultiplier = "ORGAUDIT_MAX_MULTIPLIER"
	EnvMaxDepth      = "ORGAUDIT_MAX_DEPTH"
)

// Policy defines what counts as a violation.
//
// A manager must earn within [avg*MinMultiplier, avg*MaxMultiplier] of the
// average salary of their direct reports. An employee more than MaxDepth
// levels below the root has a reporting line that is too long.
type Policy struct {
	MinMultiplier float64 `json:"min_multiplier" yaml:"min_multiplier"`
	MaxMultiplier float64 `json:"max_multiplier" yaml:"max_multiplier"`
	MaxDepth      int     `json:"max_depth" yaml:"max_depth"`
}

// DefaultPolicy returns the standard 20%-50% band with a depth limit of 4.
func DefaultPolicy() Policy {
	return Policy{
		MinMultiplier: DefaultMinMultiplier,
		MaxMultiplier: DefaultMaxMultiplier,
		MaxDepth:      DefaultMaxDepth,
	}
}

// DefaultFile is read from the working directory when no config path is given.
const DefaultFile = "orgaudit.yaml"

// Load resolves the policy with priority: env > file > defaults.
// An empty path reads DefaultFile if it exists; an explicit path must exist.
func Load(path string) (Policy, error) {
	p := DefaultPolicy()

	optional := path == ""
	if optional {
		path = DefaultFile
	}
	if err := loadFile(path, optional, &p); err != nil {
		return p, fmt.Errorf("load config file: %w", err)
	}

	if err := loadEnv(&p); err != nil {
		return p, err
	}

	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

func loadFile(path string, optional bool, p *Policy) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func loadEnv(p *Policy) error {
	if v := os.Getenv(EnvMinMultiplier); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidPolicy, EnvMinMultiplier, v)
		}
		p.MinMultiplier = f
	}
	if v := os.Getenv(EnvMaxMultiplier); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidPolicy, EnvMaxMultiplier, v)
		}
		p.MaxMultiplier = f
	}
	if v := os.Getenv(EnvMaxDepth); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidPolicy, EnvMaxDepth, v)
		}
		p.MaxDepth = i
	}
	return nil
}

// Validate checks that the band is well-formed and the depth limit is usable.
func (p Policy) Validate() error {
	if !finite(p.MinMultiplier) || !finite(p.MaxMultiplier) {
		return fmt.Errorf("%w: multipliers must be finite numbers, got %v and %v",
			ErrInvalidPolicy, p.MinMultiplier, p.MaxMultiplier)
	}
	if p.MinMultiplier <= 0 {
		return fmt.Errorf("%w: min_multiplier must be > 0, got %v", ErrInvalidPolicy, p.MinMultiplier)
	}
	if p.MaxMultiplier < p.MinMultiplier {
		return fmt.Errorf("%w: max_multiplier (%v) must be >= min_multiplier (%v)",
			ErrInvalidPolicy, p.MaxMultiplier, p.MinMultiplier)
	}
	if p.MaxDepth < 0 {
		return fmt.Errorf("%w: max_depth must be >= 0, got %d", ErrInvalidPolicy, p.MaxDepth)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/threelink/internal/equilibrium"
	"github.com/san-kum/threelink/internal/linsys"
	"github.com/san-kum/threelink/internal/mechanism"
)

const (
	DefaultPreset    = "reference"
	DefaultSolver    = equilibrium.DefaultSolver
	DefaultTolerance = linsys.DefaultTolerance
	DefaultFormat    = "text"
)

var Formats = []string{"text", "json", "yaml"}

type Config struct {
	Preset    string           `yaml:"preset"`
	Solver    string           `yaml:"solver"`
	Tolerance float64          `yaml:"tolerance"`
	Format    string           `yaml:"format"`
	Params    mechanism.Params `yaml:"params"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset:    DefaultPreset,
		Solver:    DefaultSolver,
		Tolerance: DefaultTolerance,
		Format:    DefaultFormat,
		Params:    mechanism.Reference(),
	}
}

// ApplyPreset replaces the parameters with a built-in set.
func (c *Config) ApplyPreset(name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets())
	}
	c.Preset = name
	c.Params = p.Params
	return nil
}

// ApplyOverrides sets individual parameters from NAME=VALUE pairs.
func (c *Config) ApplyOverrides(overrides map[string]string) error {
	for name, raw := range overrides {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("parameter %s: %w", name, err)
		}
		p, err := c.Params.With(strings.TrimSpace(name), v)
		if err != nil {
			return err
		}
		c.Params = p
	}
	return nil
}

func (c *Config) Validate() error {
	if _, err := equilibrium.NewRegistry().GetSolver(c.Solver); err != nil {
		return err
	}
	if !(c.Tolerance > 0) {
		return fmt.Errorf("tolerance must be positive, got %g", c.Tolerance)
	}
	if !validFormat(c.Format) {
		return fmt.Errorf("unknown format: %s (available: %v)", c.Format, Formats)
	}
	return c.Params.Validate()
}

func (c *Config) Options() equilibrium.Options {
	return equilibrium.Options{
		Solver:    c.Solver,
		Tolerance: c.Tolerance,
	}
}

// Marshal renders the effective configuration as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func validFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

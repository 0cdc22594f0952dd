package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/elvijs/linear-systems/internal/feedback"
	"github.com/elvijs/linear-systems/internal/linsys"
)

const (
	KindLinear = "linear"
	KindLure   = "lure"

	DefaultBoundThreshold = 10.0
)

type Config struct {
	Name           string              `yaml:"name"`
	Kind           string              `yaml:"kind"`
	A              [][]float64         `yaml:"a"`
	B              [][]float64         `yaml:"b"`
	C              [][]float64         `yaml:"c"`
	D              [][]float64         `yaml:"d"`
	Discretize     float64             `yaml:"discretize,omitempty"`
	Nonlinearity   *NonlinearityConfig `yaml:"nonlinearity,omitempty"`
	X0             []float64           `yaml:"x0"`
	Input          [][]float64         `yaml:"input"`
	BoundThreshold float64             `yaml:"bound_threshold"`
}

type NonlinearityConfig struct {
	Name   string             `yaml:"name"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// DefaultConfig is the scalar system x' = 0.5x + 3u, y = 2x + u.
func DefaultConfig() *Config {
	return &Config{
		Name:           "asd",
		Kind:           KindLinear,
		A:              [][]float64{{0.5}},
		B:              [][]float64{{3}},
		C:              [][]float64{{2}},
		D:              [][]float64{{1}},
		X0:             []float64{1},
		Input:          [][]float64{{1}, {-4}, {1}, {-1}, {1}, {-1}},
		BoundThreshold: DefaultBoundThreshold,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{Kind: KindLinear, BoundThreshold: DefaultBoundThreshold}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the fields that do not need the system to be built.
// Matrix shapes are checked by System.
func (c *Config) Validate() error {
	switch c.Kind {
	case KindLinear:
	case KindLure:
		if c.Nonlinearity == nil || c.Nonlinearity.Name == "" {
			return fmt.Errorf("lure system %q needs a nonlinearity", c.Name)
		}
	default:
		return fmt.Errorf("unknown kind: %s", c.Kind)
	}
	if c.Discretize < 0 {
		return fmt.Errorf("discretize must be non-negative, got %f", c.Discretize)
	}
	if c.BoundThreshold <= 0 {
		return fmt.Errorf("bound_threshold must be positive, got %f", c.BoundThreshold)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.A = cloneRows(c.A)
	out.B = cloneRows(c.B)
	out.C = cloneRows(c.C)
	out.D = cloneRows(c.D)
	out.Input = cloneRows(c.Input)
	out.X0 = append([]float64(nil), c.X0...)
	if c.Nonlinearity != nil {
		nl := *c.Nonlinearity
		if c.Nonlinearity.Params != nil {
			nl.Params = make(map[string]float64, len(c.Nonlinearity.Params))
			for k, v := range c.Nonlinearity.Params {
				nl.Params[k] = v
			}
		}
		out.Nonlinearity = &nl
	}
	return &out
}

// System builds the linear part, discretizing it first when Discretize is
// positive.
func (c *Config) System() (*linsys.LinearSystem, error) {
	sys, err := linsys.FromRows(c.A, c.B, c.C, c.D)
	if err != nil {
		return nil, err
	}
	if c.Discretize > 0 {
		return sys.Discretize(c.Discretize)
	}
	return sys, nil
}

// Lure builds the closed loop using a nonlinearity from reg.
func (c *Config) Lure(reg *feedback.Registry) (*linsys.LureSystem, error) {
	if c.Nonlinearity == nil {
		return nil, linsys.ErrNoNonlinearity
	}
	sys, err := c.System()
	if err != nil {
		return nil, err
	}
	f, err := reg.Get(c.Nonlinearity.Name, c.Nonlinearity.Params)
	if err != nil {
		return nil, err
	}
	return linsys.NewLure(sys, f.Apply, f.String())
}

// Simulate builds the configured system and runs it from X0 under Input.
func (c *Config) Simulate(reg *feedback.Registry) (*linsys.Trajectory, error) {
	if c.Kind == KindLure {
		sys, err := c.Lure(reg)
		if err != nil {
			return nil, err
		}
		return sys.SolnFloats(c.X0, c.Input)
	}
	sys, err := c.System()
	if err != nil {
		return nil, err
	}
	return sys.SolnFloats(c.X0, c.Input)
}

func cloneRows(rows [][]float64) [][]float64 {
	if rows == nil {
		return nil
	}
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = append([]float64(nil), r...)
	}
	return out
}

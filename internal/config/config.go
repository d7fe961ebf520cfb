// SPDX-License-Identifier: MIT

// Package config loads tile rule sets from YAML and turns them into a grid,
// compiled rules and generator options.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tilewave/generator"
	"github.com/katalvlaran/tilewave/grid"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Heuristic names accepted by generation.node_heuristic and model_heuristic.
const (
	NodeMRV     = "mrv"
	NodeEntropy = "entropy"
	NodeFirst   = "first"
	NodeRandom  = "random"

	ModelWeighted = "weighted"
	ModelUniform  = "uniform"
)

// Config is a complete rule set plus the grid and generation settings.
type Config struct {
	Grid         GridConfig          `yaml:"grid"`
	RotationAxis string              `yaml:"rotation_axis"`
	Generation   GenerationConfig    `yaml:"generation"`
	Sockets      []string            `yaml:"sockets"`
	Connections  [][]string          `yaml:"connections"`
	Models       []ModelConfig       `yaml:"models"`
	InitialNodes []InitialNodeConfig `yaml:"initial_nodes"`
}

// GridConfig describes the grid extent.
type GridConfig struct {
	Dimensions int    `yaml:"dimensions"` // 2 or 3
	Size       []int  `yaml:"size"`       // [x, y] or [x, y, z]
	Looping    []bool `yaml:"looping"`    // per axis, missing entries are false
}

// GenerationConfig holds the solver settings.
type GenerationConfig struct {
	Seed           int64  `yaml:"seed"` // 0 draws a new seed per attempt
	NodeHeuristic  string `yaml:"node_heuristic"`
	ModelHeuristic string `yaml:"model_heuristic"`
	MaxAttempts    int    `yaml:"max_attempts"`
}

// ModelConfig declares one model by socket name, one per direction.
type ModelConfig struct {
	Name      string   `yaml:"name"`
	Glyph     string   `yaml:"glyph"`
	Sockets   []string `yaml:"sockets"`
	Weight    float64  `yaml:"weight"`
	Rotations []int    `yaml:"rotations"` // degrees
}

// InitialNodeConfig pins the node at Position to a model rotation.
type InitialNodeConfig struct {
	Position []int  `yaml:"position"`
	Model    string `yaml:"model"`
	Rotation int    `yaml:"rotation"` // degrees
}

// Load reads a rule set from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes, defaults and validates a YAML rule set.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Grid.Dimensions == 0 {
		c.Grid.Dimensions = 2
	}
	if c.RotationAxis == "" {
		c.RotationAxis = "z+"
		if c.Grid.Dimensions == 3 {
			c.RotationAxis = "y+"
		}
	}
	if c.Generation.NodeHeuristic == "" {
		c.Generation.NodeHeuristic = NodeMRV
	}
	if c.Generation.ModelHeuristic == "" {
		c.Generation.ModelHeuristic = ModelWeighted
	}
	if c.Generation.MaxAttempts == 0 {
		c.Generation.MaxAttempts = 10
	}
	for i := range c.Models {
		m := &c.Models[i]
		if m.Weight == 0 {
			m.Weight = 1
		}
		if m.Glyph == "" && m.Name != "" {
			r, _ := utf8.DecodeRuneInString(m.Name)
			m.Glyph = string(r)
		}
	}
}

// Validate checks the name-level consistency of the rule set. Socket
// arity, rotation axes and weights are checked again when rules are built.
func (c *Config) Validate() error {
	if d := c.Grid.Dimensions; d != 2 && d != 3 {
		return invalid("grid.dimensions must be 2 or 3, got %d", d)
	}
	if len(c.Grid.Size) != c.Grid.Dimensions {
		return invalid("grid.size needs %d extents, got %d", c.Grid.Dimensions, len(c.Grid.Size))
	}
	for i, s := range c.Grid.Size {
		if s <= 0 {
			return invalid("grid.size[%d] must be positive, got %d", i, s)
		}
	}
	if len(c.Grid.Looping) > c.Grid.Dimensions {
		return invalid("grid.looping has %d entries for %d dimensions", len(c.Grid.Looping), c.Grid.Dimensions)
	}
	if _, err := grid.ParseDirection(c.RotationAxis); err != nil {
		return invalid("rotation_axis %q", c.RotationAxis)
	}
	if _, err := NodeSelector(c.Generation.NodeHeuristic); err != nil {
		return err
	}
	if _, err := ModelSelector(c.Generation.ModelHeuristic); err != nil {
		return err
	}
	if c.Generation.MaxAttempts < 1 {
		return invalid("generation.max_attempts must be at least 1, got %d", c.Generation.MaxAttempts)
	}

	if len(c.Sockets) == 0 {
		return invalid("no sockets declared")
	}
	known := make(map[string]bool, len(c.Sockets))
	for _, s := range c.Sockets {
		if s == "" {
			return invalid("empty socket name")
		}
		if known[s] {
			return invalid("duplicate socket %q", s)
		}
		known[s] = true
	}
	for i, pair := range c.Connections {
		if len(pair) != 2 {
			return invalid("connections[%d] must name two sockets, got %d", i, len(pair))
		}
		for _, s := range pair {
			if !known[s] {
				return invalid("connections[%d]: unknown socket %q", i, s)
			}
		}
	}

	if len(c.Models) == 0 {
		return invalid("no models declared")
	}
	models := make(map[string]bool, len(c.Models))
	for i, m := range c.Models {
		if m.Name == "" {
			return invalid("models[%d] has no name", i)
		}
		if models[m.Name] {
			return invalid("duplicate model %q", m.Name)
		}
		models[m.Name] = true
		if utf8.RuneCountInString(m.Glyph) != 1 {
			return invalid("model %q: glyph must be a single character, got %q", m.Name, m.Glyph)
		}
		for _, s := range m.Sockets {
			if !known[s] {
				return invalid("model %q: unknown socket %q", m.Name, s)
			}
		}
	}
	for i, in := range c.InitialNodes {
		if len(in.Position) != c.Grid.Dimensions {
			return invalid("initial_nodes[%d]: position needs %d coordinates", i, c.Grid.Dimensions)
		}
		if !models[in.Model] {
			return invalid("initial_nodes[%d]: unknown model %q", i, in.Model)
		}
	}
	return nil
}

// NodeSelector maps a heuristic name to its implementation.
func NodeSelector(name string) (generator.NodeSelector, error) {
	switch strings.ToLower(name) {
	case NodeMRV:
		return generator.MinimumRemainingValues{}, nil
	case NodeEntropy:
		return generator.MinimumEntropy{}, nil
	case NodeFirst:
		return generator.FirstUndetermined{}, nil
	case NodeRandom:
		return generator.RandomNode{}, nil
	}
	return nil, invalid("unknown node heuristic %q", name)
}

// ModelSelector maps a heuristic name to its implementation.
func ModelSelector(name string) (generator.ModelSelector, error) {
	switch strings.ToLower(name) {
	case ModelWeighted:
		return generator.WeightedProbability{}, nil
	case ModelUniform:
		return generator.UniformRandom{}, nil
	}
	return nil, invalid("unknown model heuristic %q", name)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// SPDX-License-Identifier: MIT

package config

import (
	"fmt"

	"github.com/katalvlaran/tilewave/generator"
	"github.com/katalvlaran/tilewave/grid"
	"github.com/katalvlaran/tilewave/rules"
)

// Setup is everything a generator needs, built from one Config.
type Setup struct {
	Grid    *grid.CartesianGrid
	Rules   *rules.Rules
	Options []generator.Option
	// Glyphs[m] is the display character of model m.
	Glyphs []string
}

// Build compiles the rule set and grid and translates the generation
// settings into generator options. Rule errors are returned unchanged so
// callers can match them with errors.Is / errors.As.
func (c *Config) Build() (*Setup, error) {
	g, err := c.buildGrid()
	if err != nil {
		return nil, err
	}
	r, err := c.buildRules()
	if err != nil {
		return nil, err
	}

	node, _ := NodeSelector(c.Generation.NodeHeuristic)
	model, _ := ModelSelector(c.Generation.ModelHeuristic)
	opts := []generator.Option{
		generator.WithNodeSelector(node),
		generator.WithModelSelector(model),
		generator.WithMaxAttempts(c.Generation.MaxAttempts),
	}
	if c.Generation.Seed != 0 {
		opts = append(opts, generator.WithSeed(c.Generation.Seed))
	} else {
		opts = append(opts, generator.WithRng(generator.RandomSeed()))
	}

	pins, err := c.buildInitialNodes(g, r)
	if err != nil {
		return nil, err
	}
	if len(pins) > 0 {
		opts = append(opts, generator.WithInitialNodes(pins...))
	}

	glyphs := make([]string, len(c.Models))
	for i, m := range c.Models {
		glyphs[i] = m.Glyph
	}
	return &Setup{Grid: g, Rules: r, Options: opts, Glyphs: glyphs}, nil
}

func (c *Config) buildGrid() (*grid.CartesianGrid, error) {
	var loop [3]bool
	copy(loop[:], c.Grid.Looping)
	s := c.Grid.Size
	if c.Grid.Dimensions == 2 {
		return grid.New2D(s[0], s[1], loop[0], loop[1])
	}
	return grid.New3D(s[0], s[1], s[2], loop[0], loop[1], loop[2])
}

func (c *Config) buildRules() (*rules.Rules, error) {
	sc := rules.NewSocketCollection()
	byName := make(map[string]rules.Socket, len(c.Sockets))
	for _, name := range c.Sockets {
		byName[name] = sc.Create()
	}
	for _, pair := range c.Connections {
		sc.AddConnection(byName[pair[0]], byName[pair[1]])
	}

	mc := rules.NewModelCollection()
	for _, mcfg := range c.Models {
		sockets := make([]rules.Socket, len(mcfg.Sockets))
		for i, s := range mcfg.Sockets {
			sockets[i] = byName[s]
		}
		m := mc.Create(mcfg.Name, sockets...).WithWeight(mcfg.Weight)
		for _, deg := range mcfg.Rotations {
			rot, err := rules.RotationFromDegrees(deg)
			if err != nil {
				return nil, fmt.Errorf("model %q: %w", mcfg.Name, err)
			}
			m.WithRotation(rot)
		}
	}

	axis, _ := grid.ParseDirection(c.RotationAxis)
	var b *rules.RulesBuilder
	if c.Grid.Dimensions == 2 {
		b = rules.NewRulesBuilder2D(mc, sc)
	} else {
		b = rules.NewRulesBuilder3D(mc, sc)
	}
	return b.WithRotationAxis(axis).Build()
}

func (c *Config) buildInitialNodes(g *grid.CartesianGrid, r *rules.Rules) ([]generator.InitialNode, error) {
	if len(c.InitialNodes) == 0 {
		return nil, nil
	}
	modelIndex := make(map[string]int, len(c.Models))
	for i, m := range c.Models {
		modelIndex[m.Name] = i
	}

	pins := make([]generator.InitialNode, 0, len(c.InitialNodes))
	for i, in := range c.InitialNodes {
		var p grid.Position
		p.X, p.Y = in.Position[0], in.Position[1]
		if len(in.Position) == 3 {
			p.Z = in.Position[2]
		}
		if !g.InBounds(p) {
			return nil, invalid("initial_nodes[%d]: position %v outside %v", i, p, g)
		}
		rot, err := rules.RotationFromDegrees(in.Rotation)
		if err != nil {
			return nil, fmt.Errorf("initial_nodes[%d]: %w", i, err)
		}

		inst := -1
		for _, idx := range r.InstancesOf(modelIndex[in.Model]) {
			if r.Instance(idx).Rotation == rot {
				inst = idx
				break
			}
		}
		if inst < 0 {
			return nil, invalid("initial_nodes[%d]: model %q has no %s instance", i, in.Model, rot)
		}
		pins = append(pins, generator.InitialNode{Node: g.IndexFromPosition(p), Instance: inst})
	}
	return pins, nil
}

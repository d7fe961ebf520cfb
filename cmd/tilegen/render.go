// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tilewave/generator"
	"github.com/katalvlaran/tilewave/grid"
	"github.com/katalvlaran/tilewave/internal/config"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

// renderText prints one glyph per node, one line per row (y ascending) and
// one block per z layer separated by a blank line.
func renderText(w io.Writer, setup *config.Setup, res *generator.Result) error {
	g := setup.Grid
	data := res.On(g)
	bw := bufio.NewWriter(w)
	for z := 0; z < g.SizeZ(); z++ {
		if z > 0 {
			bw.WriteByte('\n')
		}
		for y := 0; y < g.SizeY(); y++ {
			for x := 0; x < g.SizeX(); x++ {
				inst := data.At(grid.Pos3(x, y, z))
				bw.WriteString(setup.Glyphs[inst.ModelIndex])
			}
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

type nodeOut struct {
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	Z        int    `yaml:"z"`
	Model    string `yaml:"model"`
	Rotation int    `yaml:"rotation"`
}

type mapOut struct {
	Grid     string    `yaml:"grid"`
	Seed     int64     `yaml:"seed"`
	Attempts int       `yaml:"attempts"`
	Nodes    []nodeOut `yaml:"nodes"`
}

// renderYAML writes the assignment as a YAML document, one entry per node in
// index order.
func renderYAML(w io.Writer, setup *config.Setup, res *generator.Result) error {
	g := setup.Grid
	out := mapOut{
		Grid:     g.String(),
		Seed:     res.Info.Seed,
		Attempts: res.Info.Attempts,
		Nodes:    make([]nodeOut, len(res.Nodes)),
	}
	for i, inst := range res.Nodes {
		p := g.PositionFromIndex(i)
		out.Nodes[i] = nodeOut{
			X: p.X, Y: p.Y, Z: p.Z,
			Model:    setup.Rules.ModelName(inst.Index),
			Rotation: inst.Degrees(),
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode map: %w", err)
	}
	return enc.Close()
}

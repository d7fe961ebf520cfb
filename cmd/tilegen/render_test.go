package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tilewave/generator"
	"github.com/katalvlaran/tilewave/internal/config"
)

const stripesYAML = `
grid: {size: [4, 2]}
generation: {seed: 3}
sockets: [a, b]
connections: [[a, a], [b, b]]
models:
  - {name: alpha, glyph: A, sockets: [a, a, a, a]}
  - {name: beta, glyph: B, sockets: [b, b, b, b]}
initial_nodes:
  - {position: [0, 0], model: beta}
`

func generate(t *testing.T, body string) (*config.Setup, *generator.Result) {
	t.Helper()
	cfg, err := config.Parse([]byte(body))
	require.NoError(t, err)
	setup, err := cfg.Build()
	require.NoError(t, err)
	gen, err := generator.New(setup.Grid, setup.Rules, setup.Options...)
	require.NoError(t, err)
	res, err := gen.GenerateWithRetries(context.Background())
	require.NoError(t, err)
	return setup, res
}

func TestRenderText(t *testing.T) {
	setup, res := generate(t, stripesYAML)
	var buf bytes.Buffer
	require.NoError(t, renderText(&buf, setup, res))
	assert.Equal(t, "BBBB\nBBBB\n", buf.String())
}

func TestRenderText_Layers(t *testing.T) {
	setup, res := generate(t, `
grid: {dimensions: 3, size: [2, 1, 2]}
sockets: [s]
connections: [[s, s]]
models:
  - {name: rock, glyph: "#", sockets: [s, s, s, s, s, s]}
`)
	var buf bytes.Buffer
	require.NoError(t, renderText(&buf, setup, res))
	assert.Equal(t, "##\n\n##\n", buf.String())
}

func TestRenderYAML(t *testing.T) {
	setup, res := generate(t, stripesYAML)
	var buf bytes.Buffer
	require.NoError(t, renderYAML(&buf, setup, res))

	var out mapOut
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Nodes, 8)
	assert.Equal(t, res.Info.Seed, out.Seed)
	assert.Equal(t, nodeOut{X: 3, Y: 1, Z: 0, Model: "beta", Rotation: 0}, out.Nodes[7])
}

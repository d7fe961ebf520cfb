package generator_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tilewave/generator"
	"github.com/katalvlaran/tilewave/grid"
	"github.com/katalvlaran/tilewave/rules"
)

// chainRules returns two models, "AA" and "BB", whose faces carry sockets A
// and B respectively; each socket only matches itself.
func chainRules(t testing.TB) *rules.Rules {
	t.Helper()
	sc := rules.NewSocketCollection()
	a, b := sc.Create(), sc.Create()
	sc.AddConnection(a, a).AddConnection(b, b)

	mc := rules.NewModelCollection()
	mc.Create("AA", a, a, a, a)
	mc.Create("BB", b, b, b, b)

	r, err := rules.NewRulesBuilder2D(mc, sc).Build()
	require.NoError(t, err)
	return r
}

// isolatedRules returns two models whose sockets match nothing at all.
func isolatedRules(t testing.TB) *rules.Rules {
	t.Helper()
	sc := rules.NewSocketCollection()
	a, b := sc.Create(), sc.Create()

	mc := rules.NewModelCollection()
	mc.Create("AA", a, a, a, a)
	mc.Create("BB", b, b, b, b)

	r, err := rules.NewRulesBuilder2D(mc, sc).Build()
	require.NoError(t, err)
	return r
}

// pipeRules returns a complete 2D pipe set: every combination of open and
// closed faces has a tile, so propagation can never empty a node.
func pipeRules(t testing.TB) *rules.Rules {
	t.Helper()
	sc := rules.NewSocketCollection()
	void, pipe := sc.Create(), sc.Create()
	sc.AddConnection(void, void).AddConnection(pipe, pipe)

	mc := rules.NewModelCollection()
	mc.Create("empty", void, void, void, void).WithWeight(3)
	mc.Create("straight", pipe, void, pipe, void).WithRotation(rules.Rot90)
	mc.Create("corner", pipe, pipe, void, void).WithAllRotations()
	mc.Create("tee", pipe, pipe, pipe, void).WithAllRotations().WithWeight(0.5)
	mc.Create("end", pipe, void, void, void).WithAllRotations().WithWeight(0.25)
	mc.Create("cross", pipe, pipe, pipe, pipe).WithWeight(0.25)

	r, err := rules.NewRulesBuilder2D(mc, sc).Build()
	require.NoError(t, err)
	return r
}

// requireConsistent checks every adjacent pair of a result against the rules.
func requireConsistent(t *testing.T, g *grid.CartesianGrid, r *rules.Rules, res *generator.Result) {
	t.Helper()
	require.Len(t, res.Nodes, g.TotalSize())
	buf := make([]int, g.DirectionsCount())
	for i, inst := range res.Nodes {
		for d, nb := range g.Neighbours(i, buf) {
			if nb == grid.NoNeighbour {
				continue
			}
			require.True(t, r.Allows(inst.Index, grid.Direction(d), res.Nodes[nb].Index),
				"node %d (%v) -> %v -> node %d (%v)", i, inst, grid.Direction(d), nb, res.Nodes[nb])
		}
	}
}

// TestGenerate_ChainNeverMixes covers the 4-node chain scenario: every success
// is a uniform AA chain or a uniform BB chain.
func TestGenerate_ChainNeverMixes(t *testing.T) {
	r := chainRules(t)
	g, err := grid.New2D(4, 1, false, false)
	require.NoError(t, err)

	seen := map[int]bool{}
	for seed := int64(1); seed <= 64; seed++ {
		gen, err := generator.New(g, r, generator.WithSeed(seed))
		require.NoError(t, err)

		res, err := gen.Generate()
		require.NoError(t, err, "seed %d", seed)
		first := res.Nodes[0].ModelIndex
		for _, n := range res.Nodes {
			assert.Equal(t, first, n.ModelIndex, "seed %d mixed chain", seed)
		}
		seen[first] = true
		requireConsistent(t, g, r, res)
	}
	assert.Len(t, seen, 2, "both chains should appear over 64 seeds")
}

// TestGenerate_NoCompatibilities covers the closed-socket scenario: with two
// or more nodes the first propagation across an edge empties a node.
func TestGenerate_NoCompatibilities(t *testing.T) {
	r := isolatedRules(t)
	g, err := grid.New2D(2, 1, false, false)
	require.NoError(t, err)

	gen, err := generator.New(g, r, generator.WithSeed(3))
	require.NoError(t, err)

	res, err := gen.Generate()
	assert.Nil(t, res)
	require.ErrorIs(t, err, generator.ErrContradiction)

	var ge *generator.GeneratorError
	require.ErrorAs(t, err, &ge)
	assert.Contains(t, []int{0, 1}, ge.Node)
	assert.GreaterOrEqual(t, ge.Source, 0)
	assert.NotEqual(t, ge.Node, ge.Source)
}

// TestGenerate_SingleInstanceStillChecked ensures a rule set with one instance
// that cannot touch itself is reported, not silently returned.
func TestGenerate_SingleInstanceStillChecked(t *testing.T) {
	sc := rules.NewSocketCollection()
	s := sc.Create()
	mc := rules.NewModelCollection()
	mc.Create("lonely", s, s, s, s)
	r, err := rules.NewRulesBuilder2D(mc, sc).Build()
	require.NoError(t, err)

	g, err := grid.New2D(3, 3, false, false)
	require.NoError(t, err)
	gen, err := generator.New(g, r)
	require.NoError(t, err)

	_, err = gen.Generate()
	assert.ErrorIs(t, err, generator.ErrContradiction)
}

// TestGenerate_SingleNode covers the edgeless grid scenario.
func TestGenerate_SingleNode(t *testing.T) {
	r := isolatedRules(t)
	g, err := grid.New2D(1, 1, false, false)
	require.NoError(t, err)

	gen, err := generator.New(g, r)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		res, err := gen.Generate()
		require.NoError(t, err)
		require.Len(t, res.Nodes, 1)
		assert.Equal(t, 1, res.Info.NodesProcessed)
		assert.Equal(t, 1, res.Info.Collapses)
	}
}

// TestGenerate_FixedSeedReproducible compares two generators with the same seed
// over several consecutive attempts.
func TestGenerate_FixedSeedReproducible(t *testing.T) {
	r := pipeRules(t)
	g, err := grid.New2D(12, 9, false, false)
	require.NoError(t, err)

	g1, err := generator.New(g, r, generator.WithSeed(2024))
	require.NoError(t, err)
	g2, err := generator.New(g, r, generator.WithSeed(2024))
	require.NoError(t, err)

	for attempt := 0; attempt < 5; attempt++ {
		res1, err1 := g1.Generate()
		res2, err2 := g2.Generate()
		if err1 != nil {
			assert.Equal(t, err1.Error(), err2.Error(), "attempt %d", attempt)
			continue
		}
		require.NoError(t, err2)
		assert.Equal(t, res1.Nodes, res2.Nodes, "attempt %d", attempt)
		assert.Equal(t, res1.Info, res2.Info)
	}
}

// TestGenerateWithSeed_Replay checks a random-seed success can be replayed exactly.
func TestGenerateWithSeed_Replay(t *testing.T) {
	r := pipeRules(t)
	g, err := grid.New2D(10, 10, true, true)
	require.NoError(t, err)

	gen, err := generator.New(g, r, generator.WithRng(generator.RandomSeed()), generator.WithMaxAttempts(50))
	require.NoError(t, err)
	res, err := gen.GenerateWithRetries(context.Background())
	require.NoError(t, err)

	replay, err := gen.GenerateWithSeed(res.Info.Seed)
	require.NoError(t, err)
	assert.Equal(t, res.Nodes, replay.Nodes)
}

// TestGenerate_Consistent runs the pipe set on looping and bounded grids and
// validates every adjacency of each success.
func TestGenerate_Consistent(t *testing.T) {
	r := pipeRules(t)
	for _, loop := range []bool{false, true} {
		g, err := grid.New2D(16, 16, loop, loop)
		require.NoError(t, err)
		gen, err := generator.New(g, r, generator.WithSeed(11), generator.WithMaxAttempts(100))
		require.NoError(t, err)

		res, err := gen.GenerateWithRetries(context.Background())
		require.NoError(t, err, "looping=%t", loop)
		requireConsistent(t, g, r, res)
		assert.GreaterOrEqual(t, res.Info.Attempts, 1)

		w := gen.Wave()
		for node := 0; node < w.Len(); node++ {
			assert.True(t, w.Determined(node))
		}
	}
}

// TestGenerate_3D exercises a volumetric grid with rotated models.
func TestGenerate_3D(t *testing.T) {
	sc := rules.NewSocketCollection()
	air, ground, side := sc.Create(), sc.Create(), sc.Create()
	sc.AddConnection(air, air).AddConnection(ground, ground).AddConnection(side, side, air)

	mc := rules.NewModelCollection()
	// Direction order: X+, Y+, X-, Y-, Z+, Z-.
	mc.Create("air", air, air, air, air, air, air)
	mc.Create("block", side, ground, side, ground, side, air).WithAllRotations()

	r, err := rules.NewRulesBuilder3D(mc, sc).Build()
	require.NoError(t, err)

	g, err := grid.New3D(4, 3, 4, false, false, false)
	require.NoError(t, err)
	gen, err := generator.New(g, r, generator.WithSeed(5), generator.WithMaxAttempts(50))
	require.NoError(t, err)

	res, err := gen.GenerateWithRetries(context.Background())
	require.NoError(t, err)
	requireConsistent(t, g, r, res)

	data := res.On(g)
	assert.Equal(t, res.Nodes[g.IndexFromCoords(1, 2, 3)], data.At(grid.Pos3(1, 2, 3)))
}

// TestGenerate_MonotonicAndBounded observes every reduction through the hook
// and checks the propagation count stays within nodes × instances.
func TestGenerate_MonotonicAndBounded(t *testing.T) {
	r := pipeRules(t)
	g, err := grid.New2D(10, 8, false, true)
	require.NoError(t, err)

	reductions := 0
	collapses := 0
	gen, err := generator.New(g, r,
		generator.WithSeed(99),
		generator.WithOnReduce(func(node, before, after int) {
			reductions++
			assert.Less(t, after, before, "node %d grew or stayed", node)
		}),
		generator.WithOnCollapse(func(node, instance int) {
			collapses++
		}),
	)
	require.NoError(t, err)

	bound := g.TotalSize() * r.InstancesCount()
	for i := 0; i < 10; i++ {
		collapses = 0
		res, err := gen.Generate()
		if err != nil {
			require.ErrorIs(t, err, generator.ErrContradiction)
			continue
		}
		assert.LessOrEqual(t, res.Info.Propagations, bound)
		assert.Equal(t, collapses, res.Info.Collapses)
	}
	assert.Positive(t, reductions)
}

// TestGenerate_WeightedConvergence checks model frequencies approach their
// declared weights, independent of how many rotations a model has.
func TestGenerate_WeightedConvergence(t *testing.T) {
	sc := rules.NewSocketCollection()
	s := sc.Create()
	sc.AddConnection(s, s)
	mc := rules.NewModelCollection()
	mc.Create("light", s, s, s, s).WithWeight(1)
	mc.Create("heavy", s, s, s, s).WithWeight(3).WithAllRotations()
	r, err := rules.NewRulesBuilder2D(mc, sc).Build()
	require.NoError(t, err)

	g, err := grid.New2D(1, 1, false, false)
	require.NoError(t, err)
	gen, err := generator.New(g, r, generator.WithSeed(42))
	require.NoError(t, err)

	const runs = 4000
	heavy := 0
	for i := 0; i < runs; i++ {
		res, err := gen.Generate()
		require.NoError(t, err)
		if res.Nodes[0].ModelIndex == 1 {
			heavy++
		}
	}
	assert.InDelta(t, 0.75, float64(heavy)/runs, 0.03)
}

// TestNew_Errors covers the configuration error classes.
func TestNew_Errors(t *testing.T) {
	r := chainRules(t)
	g3, err := grid.New3D(2, 2, 2, false, false, false)
	require.NoError(t, err)
	g2, err := grid.New2D(2, 2, false, false)
	require.NoError(t, err)

	_, err = generator.New(g3, r)
	assert.ErrorIs(t, err, generator.ErrCoordinateSystemMismatch)

	_, err = generator.New(nil, r)
	assert.ErrorIs(t, err, generator.ErrNilGrid)

	_, err = generator.New(g2, nil)
	assert.ErrorIs(t, err, generator.ErrNilRules)

	_, err = generator.New(g2, r, generator.WithInitialNodes(generator.InitialNode{Node: 4, Instance: 0}))
	assert.ErrorIs(t, err, generator.ErrInvalidInitialNode)

	_, err = generator.New(g2, r, generator.WithInitialNodes(generator.InitialNode{Node: 0, Instance: 2}))
	assert.ErrorIs(t, err, generator.ErrInvalidInitialNode)

	// Configuration errors are never contradictions.
	assert.False(t, errors.Is(err, generator.ErrContradiction))
}

// TestInitialNodes pins chain ends and checks propagation follows them.
func TestInitialNodes(t *testing.T) {
	r := chainRules(t)
	g, err := grid.New2D(5, 1, false, false)
	require.NoError(t, err)
	bb := r.InstancesOf(1)[0]
	aa := r.InstancesOf(0)[0]

	gen, err := generator.New(g, r, generator.WithInitialNodes(generator.InitialNode{Node: 4, Instance: bb}))
	require.NoError(t, err)
	res, err := gen.Generate()
	require.NoError(t, err)
	for _, n := range res.Nodes {
		assert.Equal(t, bb, n.Index)
	}
	assert.Zero(t, res.Info.Collapses, "propagation alone determines the chain")

	gen, err = generator.New(g, r, generator.WithInitialNodes(
		generator.InitialNode{Node: 0, Instance: aa},
		generator.InitialNode{Node: 0, Instance: bb},
	))
	require.NoError(t, err)
	_, err = gen.Generate()
	var ge *generator.GeneratorError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, 0, ge.Node)
	assert.Equal(t, -1, ge.Source)

	gen, err = generator.New(g, r, generator.WithInitialNodes(
		generator.InitialNode{Node: 0, Instance: aa},
		generator.InitialNode{Node: 4, Instance: bb},
	))
	require.NoError(t, err)
	_, err = gen.Generate()
	assert.ErrorIs(t, err, generator.ErrContradiction)
}

// TestGenerateWithRetries_Exhausted checks the retry loop gives up with both
// sentinels reachable and reports every failure through the hook.
func TestGenerateWithRetries_Exhausted(t *testing.T) {
	r := isolatedRules(t)
	g, err := grid.New2D(3, 3, false, false)
	require.NoError(t, err)

	failures := 0
	gen, err := generator.New(g, r,
		generator.WithMaxAttempts(3),
		generator.WithOnContradiction(func(*generator.GeneratorError) { failures++ }),
	)
	require.NoError(t, err)

	_, err = gen.GenerateWithRetries(context.Background())
	assert.ErrorIs(t, err, generator.ErrAttemptsExhausted)
	assert.ErrorIs(t, err, generator.ErrContradiction)
	assert.Equal(t, 3, failures)
}

func TestGenerateWithRetries_Cancelled(t *testing.T) {
	r := chainRules(t)
	g, err := grid.New2D(3, 1, false, false)
	require.NoError(t, err)
	gen, err := generator.New(g, r)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = gen.GenerateWithRetries(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestHeuristicCombinations runs the chain scenario under every heuristic pair.
func TestHeuristicCombinations(t *testing.T) {
	r := chainRules(t)
	g, err := grid.New2D(6, 2, false, false)
	require.NoError(t, err)

	nodeSel := map[string]generator.NodeSelector{
		"mrv":     generator.MinimumRemainingValues{},
		"entropy": generator.MinimumEntropy{},
		"first":   generator.FirstUndetermined{},
		"random":  generator.RandomNode{},
	}
	modelSel := map[string]generator.ModelSelector{
		"weighted": generator.WeightedProbability{},
		"uniform":  generator.UniformRandom{},
	}
	for nn, ns := range nodeSel {
		for mn, ms := range modelSel {
			t.Run(nn+"/"+mn, func(t *testing.T) {
				gen, err := generator.New(g, r,
					generator.WithSeed(8),
					generator.WithNodeSelector(ns),
					generator.WithModelSelector(ms),
				)
				require.NoError(t, err)
				res, err := gen.Generate()
				require.NoError(t, err)
				requireConsistent(t, g, r, res)
				assert.Equal(t, 1, res.Info.Collapses)
			})
		}
	}
}

type lazySelector struct{}

func (lazySelector) SelectNode(*generator.Wave, *rand.Rand) (int, bool) { return -1, false }

// TestBrokenSelector checks a selector that gives up early is reported, not trusted.
func TestBrokenSelector(t *testing.T) {
	r := chainRules(t)
	g, err := grid.New2D(3, 1, false, false)
	require.NoError(t, err)
	gen, err := generator.New(g, r, generator.WithNodeSelector(lazySelector{}))
	require.NoError(t, err)

	_, err = gen.Generate()
	assert.ErrorIs(t, err, generator.ErrSelection)
	assert.False(t, errors.Is(err, generator.ErrContradiction))
}

func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { generator.WithNodeSelector(nil) })
	assert.Panics(t, func() { generator.WithModelSelector(nil) })
	assert.Panics(t, func() { generator.WithMaxAttempts(0) })
}

// TestGenerate_SharedRulesConcurrently runs independent generators over one
// *rules.Rules on separate goroutines.
func TestGenerate_SharedRulesConcurrently(t *testing.T) {
	r := pipeRules(t)
	g, err := grid.New2D(8, 8, false, false)
	require.NoError(t, err)

	const workers = 4
	errs := make(chan error, workers)
	for w := 0; w < workers; w++ {
		go func(seed int64) {
			gen, err := generator.New(g, r, generator.WithSeed(seed), generator.WithMaxAttempts(50))
			if err != nil {
				errs <- err
				return
			}
			_, err = gen.GenerateWithRetries(context.Background())
			errs <- err
		}(int64(w))
	}
	for w := 0; w < workers; w++ {
		assert.NoError(t, <-errs)
	}
}

// SPDX-License-Identifier: MIT

package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/tilewave/grid"
	"github.com/katalvlaran/tilewave/rules"
)

// Grid is the addressing a Generator needs. *grid.CartesianGrid implements it.
type Grid interface {
	CoordinateSystem() grid.CoordinateSystem
	TotalSize() int
	Neighbours(index int, buf []int) []int
}

// GenInfo summarises a successful generation.
type GenInfo struct {
	// Attempts is the number of attempts the call consumed (1 for Generate).
	Attempts int
	// Seed is the seed of the successful attempt.
	Seed int64
	// NodesProcessed is the number of nodes assigned.
	NodesProcessed int
	// Collapses counts nodes collapsed by the model heuristic.
	Collapses int
	// Propagations counts nodes popped from the propagation queue.
	Propagations int
}

// Result is a complete, consistent assignment.
type Result struct {
	// Nodes[i] is the instance committed to node i.
	Nodes []rules.ModelInstance
	Info  GenInfo
}

// On binds the assignment to g for position-based lookup.
// Panics if g does not have len(Nodes) nodes.
func (res *Result) On(g *grid.CartesianGrid) *grid.Data[rules.ModelInstance] {
	return grid.DataFrom(g, res.Nodes)
}

// Generator solves one grid against one set of rules.
//
// The rules are shared read-only; everything else (wave, queue, random
// source) belongs to the generator and is rebuilt at the start of every
// attempt, so a failed attempt leaks nothing into the next one.
// A Generator is not safe for concurrent use; run one per goroutine.
type Generator struct {
	grid  Grid
	rules *rules.Rules
	opts  Options

	nodes      int
	dirs       int
	neighbours []int // [node*dirs + d], grid.NoNeighbour when absent

	wave    *Wave
	queue   []int
	head    int
	queued  []bool
	scratch *bitset.BitSet

	undetermined int
	attempts     uint64
	rng          *rand.Rand
	stats        GenInfo
}

// New builds a generator for g and r.
// Returns ErrNilGrid, ErrNilRules, ErrCoordinateSystemMismatch or
// ErrInvalidInitialNode on misconfiguration.
// Complexity: O(N·d) for the neighbour table plus O(N·I/64) for the wave.
func New(g Grid, r *rules.Rules, opts ...Option) (*Generator, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if r == nil {
		return nil, ErrNilRules
	}
	if gcs, rcs := g.CoordinateSystem(), r.CoordinateSystem(); gcs.Name() != rcs.Name() {
		return nil, fmt.Errorf("%w: grid %s, rules %s", ErrCoordinateSystemMismatch, gcs.Name(), rcs.Name())
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	nodes, dirs := g.TotalSize(), r.DirectionsCount()
	for _, in := range o.InitialNodes {
		if in.Node < 0 || in.Node >= nodes || in.Instance < 0 || in.Instance >= r.InstancesCount() {
			return nil, fmt.Errorf("%w: node %d instance %d", ErrInvalidInitialNode, in.Node, in.Instance)
		}
	}

	gen := &Generator{
		grid:       g,
		rules:      r,
		opts:       o,
		nodes:      nodes,
		dirs:       dirs,
		neighbours: make([]int, nodes*dirs),
		wave:       newWave(r, nodes),
		queue:      make([]int, 0, nodes),
		queued:     make([]bool, nodes),
		scratch:    bitset.New(uint(r.InstancesCount())),
	}
	buf := make([]int, dirs)
	for i := 0; i < nodes; i++ {
		copy(gen.neighbours[i*dirs:], g.Neighbours(i, buf))
	}
	return gen, nil
}

// Rules returns the shared rules.
func (gen *Generator) Rules() *rules.Rules { return gen.rules }

// Grid returns the grid being solved.
func (gen *Generator) Grid() Grid { return gen.grid }

// Wave exposes the possibility sets of the latest attempt for inspection.
func (gen *Generator) Wave() *Wave { return gen.wave }

// Generate runs one attempt with the next seed of the configured RngMode.
// It returns a *GeneratorError wrapping ErrContradiction when the attempt
// fails; the documented recovery is to call Generate again.
func (gen *Generator) Generate() (*Result, error) {
	seed := gen.opts.Rng.attemptSeed(gen.attempts)
	gen.attempts++
	return gen.run(seed)
}

// GenerateWithSeed runs one attempt with exactly seed, e.g. to replay
// GenInfo.Seed or GeneratorError.Seed.
func (gen *Generator) GenerateWithSeed(seed int64) (*Result, error) {
	return gen.run(seed)
}

// GenerateWithRetries calls Generate until it succeeds or MaxAttempts
// attempts have failed. ctx is checked between attempts only; an attempt in
// progress always runs to completion.
// Errors: ctx.Err(), or ErrAttemptsExhausted wrapping the last contradiction.
func (gen *Generator) GenerateWithRetries(ctx context.Context) (*Result, error) {
	var last error
	for attempt := 1; attempt <= gen.opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := gen.Generate()
		if err == nil {
			res.Info.Attempts = attempt
			return res, nil
		}
		var ge *GeneratorError
		if !errors.As(err, &ge) {
			return nil, err
		}
		last = err
	}
	return nil, fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, gen.opts.MaxAttempts, last)
}

// run is one full attempt: reset, pin initial nodes, then alternate
// propagation and selection until every node is determined or one is empty.
func (gen *Generator) run(seed int64) (*Result, error) {
	gen.reset(seed)

	for _, in := range gen.opts.InitialNodes {
		if err := gen.pin(in); err != nil {
			return nil, gen.fail(err)
		}
	}

	for {
		if err := gen.drain(); err != nil {
			return nil, gen.fail(err)
		}
		if gen.undetermined == 0 {
			return gen.result(), nil
		}

		node, ok := gen.opts.NodeSelector.SelectNode(gen.wave, gen.rng)
		if !ok || node < 0 || node >= gen.nodes || gen.wave.Remaining(node) <= 1 {
			return nil, fmt.Errorf("%w: node selector returned %d", ErrSelection, node)
		}
		inst, ok := gen.opts.ModelSelector.SelectModel(gen.wave, node, gen.rng)
		if !ok || inst < 0 || inst >= gen.wave.Instances() || !gen.wave.Possible(node, inst) {
			return nil, fmt.Errorf("%w: model selector returned %d for node %d", ErrSelection, inst, node)
		}

		gen.wave.collapse(node, inst)
		gen.undetermined--
		gen.stats.Collapses++
		if gen.opts.OnCollapse != nil {
			gen.opts.OnCollapse(node, inst)
		}
		gen.enqueue(node)
	}
}

func (gen *Generator) reset(seed int64) {
	gen.wave.reset()
	// Every node starts queued: the first drain prunes instances that fit
	// no neighbour at all and checks grids whose nodes start determined.
	gen.queue = gen.queue[:0]
	gen.head = 0
	for i := range gen.queued {
		gen.queued[i] = true
		gen.queue = append(gen.queue, i)
	}
	gen.undetermined = 0
	if gen.wave.Instances() > 1 {
		gen.undetermined = gen.nodes
	}
	gen.rng = rngFromSeed(seed)
	gen.stats = GenInfo{Attempts: 1, Seed: seed, NodesProcessed: gen.nodes}
}

// pin restricts a node to a single instance, intersecting with earlier pins.
func (gen *Generator) pin(in InitialNode) *GeneratorError {
	before := gen.wave.Remaining(in.Node)
	gen.wave.collapse(in.Node, in.Instance)
	after := gen.wave.Remaining(in.Node)
	if after == before {
		return nil
	}
	gen.noteReduced(in.Node, before, after)
	if after == 0 {
		return &GeneratorError{Node: in.Node, Source: -1}
	}
	gen.enqueue(in.Node)
	return nil
}

func (gen *Generator) enqueue(node int) {
	if gen.queued[node] {
		return
	}
	gen.queued[node] = true
	gen.queue = append(gen.queue, node)
}

// drain propagates until the queue is empty or a node runs out of options.
func (gen *Generator) drain() *GeneratorError {
	for gen.head < len(gen.queue) {
		node := gen.queue[gen.head]
		gen.head++
		gen.queued[node] = false
		gen.stats.Propagations++
		if err := gen.propagate(node); err != nil {
			return err
		}
	}
	gen.queue = gen.queue[:0]
	gen.head = 0
	return nil
}

// propagate narrows every neighbour of node to the instances the rules allow
// next to at least one of node's remaining instances. Shrunk neighbours are
// queued so the wavefront only visits affected edges.
// Complexity: O(d·R·I/64), R = remaining instances on node.
func (gen *Generator) propagate(node int) *GeneratorError {
	set := gen.wave.sets[node]
	for d := 0; d < gen.dirs; d++ {
		nb := gen.neighbours[node*gen.dirs+d]
		if nb == grid.NoNeighbour {
			continue
		}
		dir := grid.Direction(d)
		union := gen.scratch
		union.ClearAll()
		for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
			union.InPlaceUnion(gen.rules.Allowed(int(i), dir))
		}
		before, after := gen.wave.restrict(nb, union)
		if after == before {
			continue
		}
		gen.noteReduced(nb, before, after)
		if after == 0 {
			return &GeneratorError{Node: nb, Source: node, Direction: dir}
		}
		gen.enqueue(nb)
	}
	return nil
}

func (gen *Generator) noteReduced(node, before, after int) {
	if before > 1 && after <= 1 {
		gen.undetermined--
	}
	if gen.opts.OnReduce != nil {
		gen.opts.OnReduce(node, before, after)
	}
}

func (gen *Generator) fail(err *GeneratorError) error {
	err.Seed = gen.stats.Seed
	if gen.opts.OnContradiction != nil {
		gen.opts.OnContradiction(err)
	}
	return err
}

func (gen *Generator) result() *Result {
	nodes := make([]rules.ModelInstance, gen.nodes)
	for i := range nodes {
		nodes[i] = gen.rules.Instance(gen.wave.first(i))
	}
	return &Result{Nodes: nodes, Info: gen.stats}
}

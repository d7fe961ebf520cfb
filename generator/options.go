// SPDX-License-Identifier: MIT

package generator

// Option configures a Generator. Use with New(g, r, opts...).
type Option func(*Options)

// InitialNode pins a node to an instance before every attempt.
type InitialNode struct {
	Node     int
	Instance int
}

// Options holds the generator configuration.
type Options struct {
	// Rng selects fixed or fresh seeds per attempt. Default RandomSeed().
	Rng RngMode

	// NodeSelector picks the next node to collapse. Default MinimumRemainingValues.
	NodeSelector NodeSelector

	// ModelSelector picks the instance for a node. Default WeightedProbability.
	ModelSelector ModelSelector

	// MaxAttempts bounds GenerateWithRetries. Default 10.
	MaxAttempts int

	// InitialNodes are applied, in order, at the start of every attempt.
	InitialNodes []InitialNode

	// OnCollapse, if non-nil, is called after a heuristic collapses a node.
	OnCollapse func(node, instance int)

	// OnReduce, if non-nil, is called whenever propagation shrinks a node's
	// possibility set from before to after instances.
	OnReduce func(node, before, after int)

	// OnContradiction, if non-nil, is called when an attempt fails.
	OnContradiction func(err *GeneratorError)
}

// DefaultOptions returns Options with:
//   - RandomSeed
//   - MinimumRemainingValues node selection
//   - WeightedProbability model selection
//   - MaxAttempts = 10
//   - no initial nodes and no hooks
func DefaultOptions() Options {
	return Options{
		Rng:           RandomSeed(),
		NodeSelector:  MinimumRemainingValues{},
		ModelSelector: WeightedProbability{},
		MaxAttempts:   10,
	}
}

// WithRng sets the seeding mode.
func WithRng(mode RngMode) Option {
	return func(o *Options) {
		o.Rng = mode
	}
}

// WithSeed is shorthand for WithRng(FixedSeed(seed)).
func WithSeed(seed int64) Option {
	return WithRng(FixedSeed(seed))
}

// WithNodeSelector installs a node selection heuristic. Panics on nil.
func WithNodeSelector(s NodeSelector) Option {
	if s == nil {
		panic("generator: WithNodeSelector(nil)")
	}
	return func(o *Options) {
		o.NodeSelector = s
	}
}

// WithModelSelector installs a model selection heuristic. Panics on nil.
func WithModelSelector(s ModelSelector) Option {
	if s == nil {
		panic("generator: WithModelSelector(nil)")
	}
	return func(o *Options) {
		o.ModelSelector = s
	}
}

// WithMaxAttempts bounds GenerateWithRetries. Panics if n < 1.
func WithMaxAttempts(n int) Option {
	if n < 1 {
		panic("generator: WithMaxAttempts(n < 1)")
	}
	return func(o *Options) {
		o.MaxAttempts = n
	}
}

// WithInitialNodes pins nodes before every attempt. Nodes and instances are
// validated by New; conflicting pins surface as a contradiction.
func WithInitialNodes(nodes ...InitialNode) Option {
	return func(o *Options) {
		o.InitialNodes = append(o.InitialNodes, nodes...)
	}
}

// WithOnCollapse installs a collapse hook.
func WithOnCollapse(fn func(node, instance int)) Option {
	return func(o *Options) {
		o.OnCollapse = fn
	}
}

// WithOnReduce installs a propagation hook.
func WithOnReduce(fn func(node, before, after int)) Option {
	return func(o *Options) {
		o.OnReduce = fn
	}
}

// WithOnContradiction installs a failure hook.
func WithOnContradiction(fn func(err *GeneratorError)) Option {
	return func(o *Options) {
		o.OnContradiction = fn
	}
}

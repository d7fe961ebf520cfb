// SPDX-License-Identifier: MIT

// Package generator assigns a model instance to every node of a grid so that
// all adjacent pairs satisfy compiled rules, Wave-Function-Collapse style.
//
// What:
//
//   - Wave: per-node possibility bitsets, full at the start of an attempt and
//     shrinking monotonically.
//   - Propagation: a FIFO wavefront; popping a node narrows each neighbour to
//     the union of instances its remaining instances allow, and queues the
//     neighbour only if it shrank.
//   - Selection: a NodeSelector picks the next undetermined node and a
//     ModelSelector picks what it collapses to.
//
// Attempt lifecycle:
//
//	reset ─▶ propagate ─▶ (queue empty) ─▶ all determined? ─▶ Done
//	            ▲                               │ no
//	            └──── collapse ◀── select ◀─────┘
//	any set empty ─▶ Contradiction (*GeneratorError)
//
// There is no backtracking: a contradiction abandons the attempt. Call
// Generate again (fresh seed), or use GenerateWithRetries. Every attempt
// rebuilds its state, so failures never leak into the next attempt.
//
// Heuristics:
//
//   - Nodes:  MinimumRemainingValues (default), MinimumEntropy, FirstUndetermined, RandomNode.
//   - Models: WeightedProbability (default), UniformRandom.
//
// Randomness:
//
//   - FixedSeed(s): reproducible attempt sequence per generator.
//   - RandomSeed(): a fresh seed per attempt, reported in GenInfo.Seed and
//     GeneratorError.Seed for replay via GenerateWithSeed.
//
// Complexity (N nodes, I instances, d directions):
//
//   - Propagation steps per attempt: at most N·I.
//   - Each step: O(d·I²/64) worst case.
//
// Errors:
//
//   - ErrNilGrid, ErrNilRules, ErrCoordinateSystemMismatch, ErrInvalidInitialNode (New).
//   - *GeneratorError wrapping ErrContradiction (Generate*).
//   - ErrAttemptsExhausted, context errors (GenerateWithRetries).
//   - ErrSelection when a custom heuristic breaks its contract.
//
// Concurrency: a Generator is single-goroutine; *rules.Rules may be shared
// by any number of generators.
package generator

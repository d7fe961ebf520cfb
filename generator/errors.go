// SPDX-License-Identifier: MIT

package generator

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tilewave/grid"
)

// Configuration errors, returned by New.
var (
	// ErrNilGrid indicates New received no grid.
	ErrNilGrid = errors.New("generator: grid is nil")

	// ErrNilRules indicates New received no rules.
	ErrNilRules = errors.New("generator: rules are nil")

	// ErrCoordinateSystemMismatch indicates rules compiled for another coordinate system.
	ErrCoordinateSystemMismatch = errors.New("generator: grid and rules use different coordinate systems")

	// ErrInvalidInitialNode indicates an initial node outside the grid or an unknown instance.
	ErrInvalidInitialNode = errors.New("generator: invalid initial node")
)

// Run-time errors, returned by the Generate family.
var (
	// ErrContradiction indicates a node ran out of possibilities. Retry the attempt.
	ErrContradiction = errors.New("generator: contradiction")

	// ErrAttemptsExhausted indicates GenerateWithRetries used every allowed attempt.
	ErrAttemptsExhausted = errors.New("generator: attempts exhausted")

	// ErrSelection indicates a NodeSelector or ModelSelector broke its contract.
	ErrSelection = errors.New("generator: heuristic returned no usable choice")
)

// GeneratorError describes a contradiction. errors.Is(err, ErrContradiction)
// holds for every *GeneratorError.
type GeneratorError struct {
	// Node is the node whose possibility set became empty.
	Node int
	// Source is the node whose propagation emptied Node, or -1 when Node was
	// emptied by conflicting initial nodes.
	Source int
	// Direction points from Source to Node; meaningful when Source >= 0.
	Direction grid.Direction
	// Seed is the seed of the failed attempt; GenerateWithSeed replays it.
	Seed int64
}

func (e *GeneratorError) Error() string {
	if e.Source < 0 {
		return fmt.Sprintf("%v at node %d (conflicting initial nodes, seed %d)", ErrContradiction, e.Node, e.Seed)
	}
	return fmt.Sprintf("%v at node %d (from node %d via %s, seed %d)",
		ErrContradiction, e.Node, e.Source, e.Direction, e.Seed)
}

func (e *GeneratorError) Unwrap() error { return ErrContradiction }

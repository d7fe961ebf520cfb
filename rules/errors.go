// SPDX-License-Identifier: MIT

package rules

import (
	"errors"
	"fmt"
)

var (
	// ErrNoModels indicates an empty model collection.
	ErrNoModels = errors.New("rules: model collection is empty")

	// ErrNoSockets indicates an empty socket collection.
	ErrNoSockets = errors.New("rules: socket collection is empty")

	// ErrInvalidRotation indicates a model declared a rotation outside Rot0..Rot270.
	ErrInvalidRotation = errors.New("rules: invalid model rotation")

	// ErrInvalidRotationAxis indicates a rotation axis the coordinate system cannot rotate about.
	ErrInvalidRotationAxis = errors.New("rules: rotation axis not supported by coordinate system")

	// ErrSocketCount indicates a model whose socket count differs from the direction count.
	ErrSocketCount = errors.New("rules: model socket count does not match directions")

	// ErrUnknownSocket indicates a model referencing a socket not created by the collection.
	ErrUnknownSocket = errors.New("rules: model references an unknown socket")

	// ErrInvalidWeight indicates a model weight that is not a finite positive number.
	ErrInvalidWeight = errors.New("rules: model weight must be finite and positive")
)

// RuleError reports a rules misconfiguration detected by RulesBuilder.Build.
// Kind is one of the package sentinels; errors.Is(err, ErrX) matches it.
type RuleError struct {
	Kind   error
	Model  int // offending model index, -1 when not model specific
	Name   string
	Detail string
}

func (e *RuleError) Error() string {
	msg := e.Kind.Error()
	if e.Model >= 0 {
		msg = fmt.Sprintf("%s (model %d %q)", msg, e.Model, e.Name)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *RuleError) Unwrap() error { return e.Kind }

func ruleErr(kind error, detail string) *RuleError {
	return &RuleError{Kind: kind, Model: -1, Detail: detail}
}

func modelErr(kind error, m *Model, format string, args ...interface{}) *RuleError {
	return &RuleError{Kind: kind, Model: m.index, Name: m.name, Detail: fmt.Sprintf(format, args...)}
}

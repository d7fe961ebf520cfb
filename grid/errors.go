// SPDX-License-Identifier: MIT

package grid

import "errors"

var (
	// ErrZeroExtent indicates that an axis extent is zero.
	ErrZeroExtent = errors.New("grid: every axis extent must be at least 1")

	// ErrUnknownDirection is returned by ParseDirection for unrecognised names.
	ErrUnknownDirection = errors.New("grid: unknown direction")
)

// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"
	"strings"
)

// Direction is one of the six primary Cartesian axis directions.
// The numeric values are stable and double as indices into per-direction tables.
type Direction int

const (
	XForward  Direction = iota // X+
	YForward                   // Y+
	XBackward                  // X-
	YBackward                  // Y-
	ZForward                   // Z+
	ZBackward                  // Z-
)

// directionsCount is the size of the closed Direction enumeration.
const directionsCount = 6

// Right-handed rotation bases: successive 90° rotations about an axis
// visit the four perpendicular directions in this order.
var rotationBases = [directionsCount][4]Direction{
	XForward:  {YForward, ZForward, YBackward, ZBackward},
	YForward:  {ZForward, XForward, ZBackward, XBackward},
	XBackward: {ZForward, YForward, ZBackward, YBackward},
	YBackward: {XForward, ZForward, XBackward, ZBackward},
	ZForward:  {XForward, YForward, XBackward, YBackward},
	ZBackward: {YForward, XForward, YBackward, XBackward},
}

var directionNames = [directionsCount]string{
	XForward:  "x+",
	YForward:  "y+",
	XBackward: "x-",
	YBackward: "y-",
	ZForward:  "z+",
	ZBackward: "z-",
}

// Valid reports whether d is one of the six defined directions.
func (d Direction) Valid() bool {
	return d >= 0 && d < directionsCount
}

// Opposite returns the direction pointing the other way along the same axis.
// Complexity: O(1).
func (d Direction) Opposite() Direction {
	switch d {
	case XForward:
		return XBackward
	case XBackward:
		return XForward
	case YForward:
		return YBackward
	case YBackward:
		return YForward
	case ZForward:
		return ZBackward
	case ZBackward:
		return ZForward
	}
	panic(fmt.Sprintf("grid: invalid direction %d", int(d)))
}

// RotationBasis returns the four directions perpendicular to d, ordered so
// that a 90° rotation about d moves each entry to the next one.
func (d Direction) RotationBasis() [4]Direction {
	return rotationBases[d]
}

// String returns the short axis notation ("x+", "z-", ...).
func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection converts a short axis notation ("x+", "Y-", ...) back into
// a Direction. Returns ErrUnknownDirection for anything else.
func ParseDirection(s string) (Direction, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d, n := range directionNames {
		if n == name {
			return Direction(d), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// SPDX-License-Identifier: MIT

package grid

import "fmt"

// Delta is a displacement on the grid.
type Delta struct {
	DX, DY, DZ int
}

// Mul scales the displacement by k units.
func (d Delta) Mul(k int) Delta {
	return Delta{DX: d.DX * k, DY: d.DY * k, DZ: d.DZ * k}
}

// Position is a node coordinate. 2D grids always use Z == 0.
type Position struct {
	X, Y, Z int
}

// Pos2 builds a planar Position.
func Pos2(x, y int) Position { return Position{X: x, Y: y} }

// Pos3 builds a volumetric Position.
func Pos3(x, y, z int) Position { return Position{X: x, Y: y, Z: z} }

// Add returns p displaced by d. The result may lie outside any grid.
func (p Position) Add(d Delta) Position {
	return Position{X: p.X + d.DX, Y: p.Y + d.DY, Z: p.Z + d.DZ}
}

// ManhattanDistance returns |dx|+|dy|+|dz| between p and q.
func (p Position) ManhattanDistance(q Position) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y) + abs(p.Z-q.Z)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// CoordinateSystem describes the active direction set of a grid.
//
// Directions are listed in index order: Directions()[i] == Direction(i).
// Generators and rules use that index to address per-direction tables.
type CoordinateSystem interface {
	// Name identifies the system; two systems with the same name are interchangeable.
	Name() string
	// Directions returns the active directions in index order.
	Directions() []Direction
	// DirectionsCount returns len(Directions()).
	DirectionsCount() int
	// Delta returns the unit displacement for d.
	Delta(d Direction) Delta
	// Has reports whether d belongs to the active set.
	Has(d Direction) bool
}

var cartesianDeltas = [directionsCount]Delta{
	XForward:  {DX: 1},
	YForward:  {DY: 1},
	XBackward: {DX: -1},
	YBackward: {DY: -1},
	ZForward:  {DZ: 1},
	ZBackward: {DZ: -1},
}

var (
	cartesian2DDirections = []Direction{XForward, YForward, XBackward, YBackward}
	cartesian3DDirections = []Direction{XForward, YForward, XBackward, YBackward, ZForward, ZBackward}
)

// Cartesian2D is the right-handed planar system with four directions.
type Cartesian2D struct{}

func (Cartesian2D) Name() string { return "cartesian2d" }

func (Cartesian2D) Directions() []Direction {
	out := make([]Direction, len(cartesian2DDirections))
	copy(out, cartesian2DDirections)
	return out
}

func (Cartesian2D) DirectionsCount() int { return len(cartesian2DDirections) }

func (Cartesian2D) Delta(d Direction) Delta { return cartesianDeltas[d] }

func (Cartesian2D) Has(d Direction) bool { return d >= XForward && d <= YBackward }

// Cartesian3D is the right-handed volumetric system with six directions.
type Cartesian3D struct{}

func (Cartesian3D) Name() string { return "cartesian3d" }

func (Cartesian3D) Directions() []Direction {
	out := make([]Direction, len(cartesian3DDirections))
	copy(out, cartesian3DDirections)
	return out
}

func (Cartesian3D) DirectionsCount() int { return len(cartesian3DDirections) }

func (Cartesian3D) Delta(d Direction) Delta { return cartesianDeltas[d] }

func (Cartesian3D) Has(d Direction) bool { return d.Valid() }

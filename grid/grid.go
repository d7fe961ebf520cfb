// SPDX-License-Identifier: MIT

package grid

import (
	"errors"
	"fmt"
)

// ErrPlanarDepth indicates a Cartesian2D grid built with a Z extent other than 1.
var ErrPlanarDepth = errors.New("grid: 2D grids must have a Z extent of 1")

// NoNeighbour marks a missing neighbour in the buffer filled by Neighbours.
const NoNeighbour = -1

// CartesianGrid is an immutable box of nodes with per-axis looping.
//
// Nodes are numbered row-major: index = x + y*SizeX + z*SizeX*SizeY.
// A CartesianGrid is safe for concurrent use once constructed.
type CartesianGrid struct {
	sizeX, sizeY, sizeZ int
	loopX, loopY, loopZ bool
	sizeXY              int
	cs                  CoordinateSystem
}

// New2D builds a planar grid of sizeX×sizeY nodes using Cartesian2D.
func New2D(sizeX, sizeY int, loopX, loopY bool) (*CartesianGrid, error) {
	return New(sizeX, sizeY, 1, [3]bool{loopX, loopY, false}, Cartesian2D{})
}

// New3D builds a volumetric grid of sizeX×sizeY×sizeZ nodes using Cartesian3D.
func New3D(sizeX, sizeY, sizeZ int, loopX, loopY, loopZ bool) (*CartesianGrid, error) {
	return New(sizeX, sizeY, sizeZ, [3]bool{loopX, loopY, loopZ}, Cartesian3D{})
}

// New builds a grid for an explicit coordinate system.
// Returns ErrZeroExtent if any extent is < 1 and ErrPlanarDepth if a planar
// system is given a Z extent other than 1.
// Complexity: O(1).
func New(sizeX, sizeY, sizeZ int, looping [3]bool, cs CoordinateSystem) (*CartesianGrid, error) {
	if sizeX < 1 || sizeY < 1 || sizeZ < 1 {
		return nil, fmt.Errorf("%w: got %dx%dx%d", ErrZeroExtent, sizeX, sizeY, sizeZ)
	}
	if cs == nil {
		cs = Cartesian3D{}
	}
	if !cs.Has(ZForward) && sizeZ != 1 {
		return nil, ErrPlanarDepth
	}
	return &CartesianGrid{
		sizeX:  sizeX,
		sizeY:  sizeY,
		sizeZ:  sizeZ,
		loopX:  looping[0],
		loopY:  looping[1],
		loopZ:  looping[2] && cs.Has(ZForward),
		sizeXY: sizeX * sizeY,
		cs:     cs,
	}, nil
}

// CoordinateSystem returns the grid's direction set.
func (g *CartesianGrid) CoordinateSystem() CoordinateSystem { return g.cs }

// DirectionsCount returns the number of neighbour directions per node.
func (g *CartesianGrid) DirectionsCount() int { return g.cs.DirectionsCount() }

// TotalSize returns the number of nodes.
func (g *CartesianGrid) TotalSize() int { return g.sizeXY * g.sizeZ }

// Size returns the extents along X, Y and Z.
func (g *CartesianGrid) Size() (x, y, z int) { return g.sizeX, g.sizeY, g.sizeZ }

func (g *CartesianGrid) SizeX() int { return g.sizeX }
func (g *CartesianGrid) SizeY() int { return g.sizeY }
func (g *CartesianGrid) SizeZ() int { return g.sizeZ }

// Looping returns the wraparound flag of each axis (X, Y, Z).
func (g *CartesianGrid) Looping() [3]bool { return [3]bool{g.loopX, g.loopY, g.loopZ} }

// InBounds reports whether p lies within the grid extents.
// Complexity: O(1).
func (g *CartesianGrid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.sizeX &&
		p.Y >= 0 && p.Y < g.sizeY &&
		p.Z >= 0 && p.Z < g.sizeZ
}

// IndexFromPosition returns the node index of p. Panics if p is out of bounds.
func (g *CartesianGrid) IndexFromPosition(p Position) int {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("grid: position %v outside %v", p, g))
	}
	return p.X + p.Y*g.sizeX + p.Z*g.sizeXY
}

// IndexFromCoords is IndexFromPosition without building a Position.
func (g *CartesianGrid) IndexFromCoords(x, y, z int) int {
	return g.IndexFromPosition(Position{X: x, Y: y, Z: z})
}

// PositionFromIndex is the inverse of IndexFromPosition. Panics on an
// out-of-range index.
func (g *CartesianGrid) PositionFromIndex(index int) Position {
	g.checkIndex(index)
	return Position{
		X: index % g.sizeX,
		Y: (index / g.sizeX) % g.sizeY,
		Z: index / g.sizeXY,
	}
}

func (g *CartesianGrid) checkIndex(index int) {
	if index < 0 || index >= g.TotalSize() {
		panic(fmt.Sprintf("grid: node index %d outside [0,%d)", index, g.TotalSize()))
	}
}

// NextPosition applies delta to p. Looping axes wrap modulo their extent;
// on a non-looping axis an out-of-range result yields ok == false.
func (g *CartesianGrid) NextPosition(p Position, delta Delta) (next Position, ok bool) {
	next = p.Add(delta)
	if next.X, ok = wrap(next.X, g.sizeX, g.loopX); !ok {
		return Position{}, false
	}
	if next.Y, ok = wrap(next.Y, g.sizeY, g.loopY); !ok {
		return Position{}, false
	}
	if next.Z, ok = wrap(next.Z, g.sizeZ, g.loopZ); !ok {
		return Position{}, false
	}
	return next, true
}

func wrap(c, size int, looping bool) (int, bool) {
	if c >= 0 && c < size {
		return c, true
	}
	if !looping {
		return 0, false
	}
	c %= size
	if c < 0 {
		c += size
	}
	return c, true
}

// NeighbourIndex returns the index of the node one step from p in direction d.
// ok is false when the step leaves a non-looping axis.
// Complexity: O(1).
func (g *CartesianGrid) NeighbourIndex(p Position, d Direction) (index int, ok bool) {
	return g.IndexInDirection(p, d, 1)
}

// IndexInDirection returns the index of the node units steps from p in direction d.
func (g *CartesianGrid) IndexInDirection(p Position, d Direction, units int) (index int, ok bool) {
	if !g.cs.Has(d) {
		return NoNeighbour, false
	}
	next, ok := g.NextPosition(p, g.cs.Delta(d).Mul(units))
	if !ok {
		return NoNeighbour, false
	}
	return g.IndexFromPosition(next), true
}

// Neighbours fills buf with one neighbour index per direction, in coordinate
// system order, using NoNeighbour where there is none. buf is reused when
// its capacity suffices; the filled slice is returned.
// Complexity: O(d).
func (g *CartesianGrid) Neighbours(index int, buf []int) []int {
	n := g.cs.DirectionsCount()
	if cap(buf) < n {
		buf = make([]int, n)
	}
	buf = buf[:n]
	p := g.PositionFromIndex(index)
	for i := 0; i < n; i++ {
		if j, ok := g.NeighbourIndex(p, Direction(i)); ok {
			buf[i] = j
		} else {
			buf[i] = NoNeighbour
		}
	}
	return buf
}

// Direction returns the direction of the first differing axis going from
// node from to node to, checked in X, Y, Z order. It is meaningful for
// adjacent, non-wrapping node pairs.
func (g *CartesianGrid) Direction(from, to int) Direction {
	a, b := g.PositionFromIndex(from), g.PositionFromIndex(to)
	switch {
	case a.X < b.X:
		return XForward
	case a.X > b.X:
		return XBackward
	case a.Y < b.Y:
		return YForward
	case a.Y > b.Y:
		return YBackward
	case a.Z < b.Z:
		return ZForward
	default:
		return ZBackward
	}
}

func (g *CartesianGrid) String() string {
	return fmt.Sprintf("%s(size: %d %d %d, looping: %t %t %t)",
		g.cs.Name(), g.sizeX, g.sizeY, g.sizeZ, g.loopX, g.loopY, g.loopZ)
}

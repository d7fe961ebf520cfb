// SPDX-License-Identifier: MIT

// Package grid provides the addressing layer used by the tile generator:
// directions, coordinate systems and row-major Cartesian grids.
//
// What:
//
//   - Direction: closed set of six axis directions (X±, Y±, Z±), each with an
//     opposite and a right-handed rotation basis.
//   - CoordinateSystem: Cartesian2D (4 directions) or Cartesian3D (6 directions).
//   - CartesianGrid: immutable extents and per-axis looping, mapping Position
//     to a linear node index and back.
//   - Data[T]: a value per grid node, indexed like the grid.
//
// Why:
//
//   - Generators work on flat node indices; consumers think in positions.
//   - Looping axes give seamless, tileable outputs.
//
// Complexity:
//
//   - IndexFromPosition, PositionFromIndex, NeighbourIndex: O(1).
//   - Neighbours: O(d), d = number of directions.
//
// Errors:
//
//   - ErrZeroExtent: a constructor received an axis of size 0.
//
// Out-of-range node indices are programmer errors and panic.
package grid

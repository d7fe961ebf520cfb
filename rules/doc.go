// SPDX-License-Identifier: MIT

// Package rules compiles tile models and socket compatibilities into an
// immutable adjacency table used by the generator.
//
// What:
//
//   - Socket / SocketCollection: opaque face identifiers and the symmetric
//     relation declaring which sockets may touch across a shared face.
//   - Model / ModelCollection: one socket per direction, a selection weight
//     and the rotations (about the rotation axis) a model may appear under.
//   - ModelInstance: a (model, rotation) pair, the unit assigned to a node.
//   - Rules: for every (instance, direction) the set of instances allowed on
//     the neighbouring node, precomputed once by RulesBuilder.Build.
//
// Rotation:
//
//	Rotating a model by k quarter turns moves the socket on face basis[i] of
//	the rotation axis to face basis[(i+k)%4]. Faces on the axis itself keep
//	their sockets.
//
// Complexity:
//
//   - Build: O(I²·d) time, O(I²·d/64) memory, I = instances, d = directions.
//   - Allows / Allowed / Weight: O(1).
//
// Errors (all returned as *RuleError, match with errors.Is):
//
//   - ErrNoModels, ErrNoSockets
//   - ErrInvalidRotation, ErrInvalidRotationAxis
//   - ErrSocketCount, ErrUnknownSocket, ErrInvalidWeight
//
// A built *Rules never changes and may be shared by concurrent generators.
package rules

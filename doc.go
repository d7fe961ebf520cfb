// Package tilewave generates tile maps by wave function collapse: every node
// of a grid starts with every tile, and constraint propagation between
// neighbouring sockets narrows the choices until one tile per node remains.
//
// 🚀 What is tilewave?
//
//	A small, dependency-light solver that brings together:
//		• Grids: 2D and 3D Cartesian, per-axis looping (torus) or bounded
//		• Rules: models with one socket per face, quarter-turn rotations,
//		  weights, and a symmetric socket compatibility table
//		• Generator: arc-consistent propagation, pluggable node and model
//		  heuristics, reproducible seeds, retries and initial nodes
//		• tilegen: a CLI that reads a YAML rule set and prints the map
//
// ✨ Why choose tilewave?
//
//   - Deterministic: a fixed seed always replays the same attempts
//   - Shareable rules: compile once, run any number of generators
//   - Observable: hooks (OnCollapse, OnReduce, OnContradiction) instead of logs
//
// Everything is organized under three subpackages:
//
//	grid/       Direction, CoordinateSystem, CartesianGrid, Data[T]
//	rules/      SocketCollection, ModelCollection, RulesBuilder, Rules
//	generator/  Wave, heuristics, Generator, GeneratorError
//
// Quick ASCII example (3×1 grid, sockets: r road, g grass):
//
//	┌─g─┐┌─g─┐┌─g─┐
//	g   rr   rr   g     road tiles chain when touching faces are both r;
//	└─g─┘└─g─┘└─g─┘     the outer faces see no neighbour and stay free.
//
//	go get github.com/katalvlaran/tilewave
package tilewave

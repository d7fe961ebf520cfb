// SPDX-License-Identifier: MIT

// Seeding policy shared by every generation attempt.
//
//   - FixedSeed(s): attempt k of a generator runs on seed deriveSeed(s, k),
//     so two generators built with the same seed replay the same attempts.
//   - RandomSeed(): every attempt draws a fresh seed.
//
// Each attempt owns its *rand.Rand; nothing is shared across generators.

package generator

import "math/rand"

// RngMode selects how attempt seeds are chosen.
type RngMode struct {
	fixed bool
	seed  int64
}

// FixedSeed pins the attempt sequence to seed for reproducible runs.
func FixedSeed(seed int64) RngMode { return RngMode{fixed: true, seed: seed} }

// RandomSeed draws a new seed for every attempt.
func RandomSeed() RngMode { return RngMode{} }

// IsFixed reports whether the mode pins the seed.
func (m RngMode) IsFixed() bool { return m.fixed }

// Seed returns the base seed of a fixed mode (0 for RandomSeed).
func (m RngMode) Seed() int64 { return m.seed }

// attemptSeed returns the seed used by the k-th attempt.
func (m RngMode) attemptSeed(attempt uint64) int64 {
	if !m.fixed {
		return rand.Int63()
	}
	return deriveSeed(m.seed, attempt)
}

// deriveSeed mixes a parent seed and a stream identifier into a new seed
// with a SplitMix64 finalizer, so consecutive attempts are decorrelated.
// Complexity: O(1).
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// rngFromSeed returns a deterministic source for one attempt.
func rngFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// SPDX-License-Identifier: MIT

package generator

import (
	"math"
	"math/rand"
)

// NodeSelector picks the next node to collapse.
//
// SelectNode must return an undetermined node (Remaining > 1), or ok == false
// when every node is determined. rng is the attempt's random source; using it
// is the only way to stay reproducible under FixedSeed.
type NodeSelector interface {
	SelectNode(w *Wave, rng *rand.Rand) (node int, ok bool)
}

// ModelSelector picks the instance a node collapses to.
//
// SelectModel must return an instance still possible on node; ok == false
// means no candidate is left.
type ModelSelector interface {
	SelectModel(w *Wave, node int, rng *rand.Rand) (instance int, ok bool)
}

// MinimumRemainingValues selects the undetermined node with the fewest
// remaining possibilities. Ties are broken uniformly at random by reservoir
// sampling over the scan order, which is stable for a fixed seed.
// Complexity: O(N) per selection.
type MinimumRemainingValues struct{}

func (MinimumRemainingValues) SelectNode(w *Wave, rng *rand.Rand) (int, bool) {
	best, bestCount, ties := -1, math.MaxInt, 0
	for node := 0; node < w.Len(); node++ {
		c := w.Remaining(node)
		if c <= 1 {
			continue
		}
		switch {
		case c < bestCount:
			best, bestCount, ties = node, c, 1
		case c == bestCount:
			ties++
			if rng.Intn(ties) == 0 {
				best = node
			}
		}
	}
	return best, best >= 0
}

// FirstUndetermined selects the first undetermined node in index order.
// It ignores rng and gives scanline-like growth.
type FirstUndetermined struct{}

func (FirstUndetermined) SelectNode(w *Wave, _ *rand.Rand) (int, bool) {
	for node := 0; node < w.Len(); node++ {
		if w.Remaining(node) > 1 {
			return node, true
		}
	}
	return -1, false
}

// MinimumEntropy selects the undetermined node with the lowest Shannon
// entropy of its remaining instance weights, breaking ties at random.
// Complexity: O(N·I) per selection.
type MinimumEntropy struct{}

// entropyEpsilon groups entropies that only differ by rounding.
const entropyEpsilon = 1e-9

func (MinimumEntropy) SelectNode(w *Wave, rng *rand.Rand) (int, bool) {
	r := w.Rules()
	best, bestH, ties := -1, math.Inf(1), 0
	var buf []int
	for node := 0; node < w.Len(); node++ {
		if w.Remaining(node) <= 1 {
			continue
		}
		var sum, sumLog float64
		buf = w.Candidates(node, buf[:0])
		for _, inst := range buf {
			wt := r.Weight(inst)
			sum += wt
			sumLog += wt * math.Log(wt)
		}
		h := math.Log(sum) - sumLog/sum
		switch {
		case h < bestH-entropyEpsilon:
			best, bestH, ties = node, h, 1
		case math.Abs(h-bestH) <= entropyEpsilon:
			ties++
			if rng.Intn(ties) == 0 {
				best = node
			}
		}
	}
	return best, best >= 0
}

// RandomNode selects uniformly among undetermined nodes.
type RandomNode struct{}

func (RandomNode) SelectNode(w *Wave, rng *rand.Rand) (int, bool) {
	best, seen := -1, 0
	for node := 0; node < w.Len(); node++ {
		if w.Remaining(node) <= 1 {
			continue
		}
		seen++
		if rng.Intn(seen) == 0 {
			best = node
		}
	}
	return best, best >= 0
}

// WeightedProbability draws among the remaining instances proportionally to
// rules.Rules.Weight, i.e. the model weight split across its rotations.
// Complexity: O(I) per selection.
type WeightedProbability struct{}

func (WeightedProbability) SelectModel(w *Wave, node int, rng *rand.Rand) (int, bool) {
	r := w.Rules()
	cands := w.Candidates(node, nil)
	if len(cands) == 0 {
		return -1, false
	}
	var total float64
	for _, inst := range cands {
		total += r.Weight(inst)
	}
	x := rng.Float64() * total
	for _, inst := range cands {
		x -= r.Weight(inst)
		if x < 0 {
			return inst, true
		}
	}
	// Rounding left x marginally >= 0.
	return cands[len(cands)-1], true
}

// UniformRandom draws uniformly among the remaining instances, ignoring weights.
type UniformRandom struct{}

func (UniformRandom) SelectModel(w *Wave, node int, rng *rand.Rand) (int, bool) {
	cands := w.Candidates(node, nil)
	if len(cands) == 0 {
		return -1, false
	}
	return cands[rng.Intn(len(cands))], true
}

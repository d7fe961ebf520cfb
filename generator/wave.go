// SPDX-License-Identifier: MIT

package generator

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/tilewave/rules"
)

// Wave holds the possibility set of every node: the model instances not yet
// ruled out. Sets only shrink during an attempt. Heuristics read it; only the
// generator mutates it.
type Wave struct {
	rules     *rules.Rules
	sets      []*bitset.BitSet
	counts    []int
	instances int
}

func newWave(r *rules.Rules, nodes int) *Wave {
	n := r.InstancesCount()
	w := &Wave{
		rules:     r,
		sets:      make([]*bitset.BitSet, nodes),
		counts:    make([]int, nodes),
		instances: n,
	}
	for i := range w.sets {
		w.sets[i] = bitset.New(uint(n))
	}
	w.reset()
	return w
}

// reset makes every instance possible again on every node.
// Complexity: O(N·I/64).
func (w *Wave) reset() {
	for i, s := range w.sets {
		s.ClearAll()
		s.FlipRange(0, uint(w.instances))
		w.counts[i] = w.instances
	}
}

// Rules returns the rules the wave is built on.
func (w *Wave) Rules() *rules.Rules { return w.rules }

// Len returns the number of nodes.
func (w *Wave) Len() int { return len(w.sets) }

// Instances returns the number of model instances.
func (w *Wave) Instances() int { return w.instances }

// Remaining returns how many instances are still possible on node.
// Complexity: O(1).
func (w *Wave) Remaining(node int) int { return w.counts[node] }

// Determined reports whether exactly one instance remains on node.
func (w *Wave) Determined(node int) bool { return w.counts[node] == 1 }

// Possible reports whether instance is still possible on node.
func (w *Wave) Possible(node, instance int) bool {
	return w.sets[node].Test(uint(instance))
}

// Candidates appends the instances still possible on node to buf, ascending.
func (w *Wave) Candidates(node int, buf []int) []int {
	s := w.sets[node]
	for i, ok := s.NextSet(0); ok; i, ok = s.NextSet(i + 1) {
		buf = append(buf, int(i))
	}
	return buf
}

// first returns the lowest possible instance on node, or -1 if none remain.
func (w *Wave) first(node int) int {
	if i, ok := w.sets[node].NextSet(0); ok {
		return int(i)
	}
	return -1
}

// restrict intersects node's set with mask and returns the counts before and after.
func (w *Wave) restrict(node int, mask *bitset.BitSet) (before, after int) {
	before = w.counts[node]
	w.sets[node].InPlaceIntersection(mask)
	after = int(w.sets[node].Count())
	w.counts[node] = after
	return before, after
}

// collapse reduces node to the single instance and returns the previous count.
func (w *Wave) collapse(node, instance int) int {
	before := w.counts[node]
	keep := w.sets[node].Test(uint(instance))
	w.sets[node].ClearAll()
	if keep {
		w.sets[node].Set(uint(instance))
		w.counts[node] = 1
	} else {
		w.counts[node] = 0
	}
	return before
}

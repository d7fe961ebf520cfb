// SPDX-License-Identifier: MIT

package rules

import (
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/tilewave/grid"
)

// RulesBuilder collects the inputs of a rules compilation.
type RulesBuilder struct {
	models  *ModelCollection
	sockets *SocketCollection
	cs      grid.CoordinateSystem
	axis    grid.Direction
}

// NewRulesBuilder2D prepares rules for Cartesian2D grids, rotating about Z+.
func NewRulesBuilder2D(models *ModelCollection, sockets *SocketCollection) *RulesBuilder {
	return NewRulesBuilder(models, sockets, grid.Cartesian2D{}).WithRotationAxis(grid.ZForward)
}

// NewRulesBuilder3D prepares rules for Cartesian3D grids, rotating about Y+.
func NewRulesBuilder3D(models *ModelCollection, sockets *SocketCollection) *RulesBuilder {
	return NewRulesBuilder(models, sockets, grid.Cartesian3D{}).WithRotationAxis(grid.YForward)
}

// NewRulesBuilder prepares rules for an arbitrary coordinate system. The
// rotation axis defaults to Z+.
func NewRulesBuilder(models *ModelCollection, sockets *SocketCollection, cs grid.CoordinateSystem) *RulesBuilder {
	return &RulesBuilder{models: models, sockets: sockets, cs: cs, axis: grid.ZForward}
}

// WithRotationAxis sets the "up" axis models rotate about.
func (b *RulesBuilder) WithRotationAxis(axis grid.Direction) *RulesBuilder {
	b.axis = axis
	return b
}

// Rules is the compiled, read-only adjacency table.
type Rules struct {
	cs   grid.CoordinateSystem
	axis grid.Direction

	modelNames   []string
	modelWeights []float64
	byModel      [][]int // model index -> instance indices

	instances []ModelInstance
	weights   []float64  // per-instance draw weight
	sockets   [][]Socket // [instance][direction] after rotation
	allowed   [][]*bitset.BitSet
}

// Build validates the inputs and compiles the adjacency table.
//
// Steps:
//  1. Validate collections, rotation axis and every model.
//  2. Expand each model into one instance per permitted rotation (Rot0 first).
//  3. Rotate each instance's sockets about the axis.
//  4. For every (x, d), collect y whose socket on d.Opposite() is compatible
//     with x's socket on d.
//
// Complexity: O(I²·d) time.
func (b *RulesBuilder) Build() (*Rules, error) {
	if b.cs == nil {
		b.cs = grid.Cartesian3D{}
	}
	if b.models == nil || b.models.Len() == 0 {
		return nil, ruleErr(ErrNoModels, "")
	}
	if b.sockets == nil || b.sockets.Len() == 0 {
		return nil, ruleErr(ErrNoSockets, "")
	}
	if err := b.validateAxis(); err != nil {
		return nil, err
	}
	dirs := b.cs.DirectionsCount()
	for _, m := range b.models.models {
		if err := b.validateModel(m, dirs); err != nil {
			return nil, err
		}
	}

	r := &Rules{
		cs:           b.cs,
		axis:         b.axis,
		modelNames:   make([]string, b.models.Len()),
		modelWeights: make([]float64, b.models.Len()),
		byModel:      make([][]int, b.models.Len()),
	}
	for _, m := range b.models.models {
		r.modelNames[m.index] = m.name
		r.modelWeights[m.index] = m.weight
		rots := m.Rotations()
		share := m.weight / float64(len(rots))
		for _, rot := range rots {
			inst := ModelInstance{Index: len(r.instances), ModelIndex: m.index, Rotation: rot}
			r.byModel[m.index] = append(r.byModel[m.index], inst.Index)
			r.instances = append(r.instances, inst)
			r.weights = append(r.weights, share)
			r.sockets = append(r.sockets, rotatedSockets(m.sockets, rot, b.axis))
		}
	}

	n := len(r.instances)
	r.allowed = make([][]*bitset.BitSet, n)
	for x := 0; x < n; x++ {
		r.allowed[x] = make([]*bitset.BitSet, dirs)
		for d := 0; d < dirs; d++ {
			set := bitset.New(uint(n))
			sx := r.sockets[x][d]
			opp := int(grid.Direction(d).Opposite())
			for y := 0; y < n; y++ {
				if b.sockets.IsCompatible(sx, r.sockets[y][opp]) {
					set.Set(uint(y))
				}
			}
			r.allowed[x][d] = set
		}
	}
	return r, nil
}

func (b *RulesBuilder) validateAxis() error {
	if !b.axis.Valid() {
		return ruleErr(ErrInvalidRotationAxis, b.axis.String())
	}
	// Every face the axis rotates must exist in the coordinate system.
	for _, d := range b.axis.RotationBasis() {
		if !b.cs.Has(d) {
			return ruleErr(ErrInvalidRotationAxis,
				fmt.Sprintf("%s rotates onto %s, absent in %s", b.axis, d, b.cs.Name()))
		}
	}
	return nil
}

func (b *RulesBuilder) validateModel(m *Model, dirs int) error {
	if len(m.sockets) != dirs {
		return modelErr(ErrSocketCount, m, "got %d sockets, want %d", len(m.sockets), dirs)
	}
	for d, s := range m.sockets {
		if !b.sockets.Owns(s) {
			return modelErr(ErrUnknownSocket, m, "socket %d on %s", int(s), grid.Direction(d))
		}
	}
	if m.weight <= 0 || math.IsNaN(m.weight) || math.IsInf(m.weight, 0) {
		return modelErr(ErrInvalidWeight, m, "%v", m.weight)
	}
	for _, rot := range m.rotations {
		if !rot.Valid() {
			return modelErr(ErrInvalidRotation, m, "%d", int(rot))
		}
	}
	return nil
}

// rotatedSockets returns the per-direction sockets of a model rotated by rot.
// The socket found on face d after rotation is the one that rotated onto d.
func rotatedSockets(sockets []Socket, rot ModelRotation, axis grid.Direction) []Socket {
	out := make([]Socket, len(sockets))
	for d := range sockets {
		out[int(rot.rotateFace(grid.Direction(d), axis))] = sockets[d]
	}
	return out
}

// CoordinateSystem returns the system the rules were compiled for.
func (r *Rules) CoordinateSystem() grid.CoordinateSystem { return r.cs }

// RotationAxis returns the axis models rotate about.
func (r *Rules) RotationAxis() grid.Direction { return r.axis }

// DirectionsCount returns the number of directions per instance.
func (r *Rules) DirectionsCount() int { return r.cs.DirectionsCount() }

// InstancesCount returns the number of model instances.
func (r *Rules) InstancesCount() int { return len(r.instances) }

// ModelsCount returns the number of source models.
func (r *Rules) ModelsCount() int { return len(r.modelNames) }

// Instance returns the i-th model instance.
func (r *Rules) Instance(i int) ModelInstance { return r.instances[i] }

// Instances returns a copy of the flat instance table.
func (r *Rules) Instances() []ModelInstance {
	out := make([]ModelInstance, len(r.instances))
	copy(out, r.instances)
	return out
}

// InstancesOf returns the instance indices expanded from model m.
func (r *Rules) InstancesOf(m int) []int {
	out := make([]int, len(r.byModel[m]))
	copy(out, r.byModel[m])
	return out
}

// ModelName returns the name of the model behind instance i.
func (r *Rules) ModelName(i int) string { return r.modelNames[r.instances[i].ModelIndex] }

// ModelWeight returns the configured weight of model m.
func (r *Rules) ModelWeight(m int) float64 { return r.modelWeights[m] }

// Weight returns the draw weight of instance i: the model weight divided by
// the number of rotations the model expands to, so the total selection
// frequency of a model matches its declared weight.
func (r *Rules) Weight(i int) float64 { return r.weights[i] }

// Socket returns the socket of instance i on direction d after rotation.
func (r *Rules) Socket(i int, d grid.Direction) Socket { return r.sockets[i][d] }

// Allowed returns the set of instances permitted on the neighbour of an
// instance-i node in direction d. The returned set is shared; do not modify it.
func (r *Rules) Allowed(i int, d grid.Direction) *bitset.BitSet { return r.allowed[i][d] }

// Allows reports whether instance y may sit next to instance x in direction d.
func (r *Rules) Allows(x int, d grid.Direction, y int) bool {
	return r.allowed[x][d].Test(uint(y))
}

// SPDX-License-Identifier: MIT

package rules

import (
	"fmt"

	"github.com/katalvlaran/tilewave/grid"
)

// ModelRotation is a multiple of a quarter turn about the rotation axis.
type ModelRotation int

const (
	Rot0 ModelRotation = iota
	Rot90
	Rot180
	Rot270
)

// AllRotations lists the four quarter-turn rotations in ascending order.
var AllRotations = []ModelRotation{Rot0, Rot90, Rot180, Rot270}

// Valid reports whether r is one of Rot0..Rot270.
func (r ModelRotation) Valid() bool { return r >= Rot0 && r <= Rot270 }

// Degrees returns the rotation angle: 0, 90, 180 or 270.
func (r ModelRotation) Degrees() int { return int(r) * 90 }

func (r ModelRotation) String() string {
	return fmt.Sprintf("rot%d", r.Degrees())
}

// RotationFromDegrees maps 0, 90, 180 or 270 (or any equivalent angle) to a rotation.
func RotationFromDegrees(deg int) (ModelRotation, error) {
	if deg%90 != 0 {
		return 0, fmt.Errorf("%w: %d degrees", ErrInvalidRotation, deg)
	}
	steps := (deg / 90) % 4
	if steps < 0 {
		steps += 4
	}
	return ModelRotation(steps), nil
}

// rotateFace returns the face that d ends up on after rotating by r about axis.
func (r ModelRotation) rotateFace(d, axis grid.Direction) grid.Direction {
	if d == axis || d == axis.Opposite() {
		return d
	}
	basis := axis.RotationBasis()
	for i, b := range basis {
		if b == d {
			return basis[(i+int(r))%4]
		}
	}
	return d
}

// Model is a tile template: one socket per direction (in coordinate-system
// direction order), a relative weight and the rotations it may take.
// Models are created by a ModelCollection and configured with the With*
// methods; rules copy them at Build time.
type Model struct {
	index     int
	name      string
	sockets   []Socket
	weight    float64
	rotations []ModelRotation
}

// Index returns the position of the model in its collection.
func (m *Model) Index() int { return m.index }

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// Weight returns the configured weight (default 1).
func (m *Model) Weight() float64 { return m.weight }

// Sockets returns a copy of the unrotated per-direction sockets.
func (m *Model) Sockets() []Socket {
	out := make([]Socket, len(m.sockets))
	copy(out, m.sockets)
	return out
}

// WithWeight sets the relative selection weight.
func (m *Model) WithWeight(w float64) *Model {
	m.weight = w
	return m
}

// WithRotation permits r in addition to the ones already allowed.
func (m *Model) WithRotation(r ModelRotation) *Model {
	m.rotations = append(m.rotations, r)
	return m
}

// WithRotations permits every rotation in rs.
func (m *Model) WithRotations(rs ...ModelRotation) *Model {
	m.rotations = append(m.rotations, rs...)
	return m
}

// WithAllRotations permits all four quarter turns.
func (m *Model) WithAllRotations() *Model {
	return m.WithRotations(AllRotations...)
}

// Rotations returns the distinct permitted rotations in ascending order.
// Rot0 is always included; invalid declarations are skipped.
func (m *Model) Rotations() []ModelRotation {
	var seen [4]bool
	seen[Rot0] = true
	for _, r := range m.rotations {
		if r.Valid() {
			seen[r] = true
		}
	}
	out := make([]ModelRotation, 0, 4)
	for r, ok := range seen {
		if ok {
			out = append(out, ModelRotation(r))
		}
	}
	return out
}

// ModelCollection is the ordered set of models handed to a RulesBuilder.
type ModelCollection struct {
	models []*Model
}

// NewModelCollection returns an empty collection.
func NewModelCollection() *ModelCollection {
	return &ModelCollection{}
}

// Create appends a model with weight 1 and rotation Rot0 only.
func (c *ModelCollection) Create(name string, sockets ...Socket) *Model {
	m := &Model{
		index:   len(c.models),
		name:    name,
		sockets: append([]Socket(nil), sockets...),
		weight:  1,
	}
	c.models = append(c.models, m)
	return m
}

// Len returns the number of models.
func (c *ModelCollection) Len() int { return len(c.models) }

// Model returns the i-th model.
func (c *ModelCollection) Model(i int) *Model { return c.models[i] }

// ModelInstance is a model under one rotation, the value assigned to a node.
type ModelInstance struct {
	// Index is the instance position in the flat table of Rules.
	Index int
	// ModelIndex is the source model position in its collection.
	ModelIndex int
	// Rotation is the quarter-turn applied about the rotation axis.
	Rotation ModelRotation
}

// Degrees returns the rotation angle used for placement.
func (mi ModelInstance) Degrees() int { return mi.Rotation.Degrees() }

func (mi ModelInstance) String() string {
	return fmt.Sprintf("model %d %s", mi.ModelIndex, mi.Rotation)
}

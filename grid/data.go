// SPDX-License-Identifier: MIT

package grid

// Data stores one value of type T per node of a CartesianGrid.
type Data[T any] struct {
	grid   *CartesianGrid
	values []T
}

// NewData allocates a store for g with every node set to fill.
func NewData[T any](g *CartesianGrid, fill T) *Data[T] {
	values := make([]T, g.TotalSize())
	for i := range values {
		values[i] = fill
	}
	return &Data[T]{grid: g, values: values}
}

// DataFrom wraps an existing slice. Panics if len(values) != g.TotalSize().
func DataFrom[T any](g *CartesianGrid, values []T) *Data[T] {
	if len(values) != g.TotalSize() {
		panic("grid: DataFrom length does not match grid size")
	}
	return &Data[T]{grid: g, values: values}
}

// Grid returns the grid the store is bound to.
func (d *Data[T]) Grid() *CartesianGrid { return d.grid }

// Len returns the number of nodes.
func (d *Data[T]) Len() int { return len(d.values) }

// Get returns the value at node index i.
func (d *Data[T]) Get(i int) T { return d.values[i] }

// Set stores v at node index i.
func (d *Data[T]) Set(i int, v T) { d.values[i] = v }

// At returns the value at position p.
func (d *Data[T]) At(p Position) T { return d.values[d.grid.IndexFromPosition(p)] }

// SetAt stores v at position p.
func (d *Data[T]) SetAt(p Position, v T) { d.values[d.grid.IndexFromPosition(p)] = v }

// All returns the backing slice, indexed by node.
func (d *Data[T]) All() []T { return d.values }

// Reset sets every node to v.
func (d *Data[T]) Reset(v T) {
	for i := range d.values {
		d.values[i] = v
	}
}

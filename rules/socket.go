// SPDX-License-Identifier: MIT

package rules

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Socket identifies the connection type of one model face.
// Sockets are handles created by a SocketCollection.
type Socket int

// SocketCollection creates sockets and records which pairs are compatible.
//
// Compatibility is symmetric and never implicit: a socket is compatible with
// itself only if AddConnection(s, s) was declared. Each socket keeps a bitset
// of compatible sockets, so IsCompatible is O(1).
type SocketCollection struct {
	compat []*bitset.BitSet
}

// NewSocketCollection returns an empty collection.
func NewSocketCollection() *SocketCollection {
	return &SocketCollection{}
}

// Create allocates a new socket with no compatibilities.
func (c *SocketCollection) Create() Socket {
	c.compat = append(c.compat, bitset.New(0))
	return Socket(len(c.compat) - 1)
}

// CreateN allocates n sockets.
func (c *SocketCollection) CreateN(n int) []Socket {
	out := make([]Socket, n)
	for i := range out {
		out[i] = c.Create()
	}
	return out
}

// Len returns the number of sockets created so far.
func (c *SocketCollection) Len() int { return len(c.compat) }

// Owns reports whether s was created by this collection.
func (c *SocketCollection) Owns(s Socket) bool {
	return s >= 0 && int(s) < len(c.compat)
}

// AddConnection declares from compatible with every socket in to, in both
// directions. Panics if a socket was not created by this collection.
func (c *SocketCollection) AddConnection(from Socket, to ...Socket) *SocketCollection {
	c.mustOwn(from)
	for _, s := range to {
		c.mustOwn(s)
		c.compat[from].Set(uint(s))
		c.compat[s].Set(uint(from))
	}
	return c
}

// AddConnections declares every pair in pairs compatible.
func (c *SocketCollection) AddConnections(pairs ...[2]Socket) *SocketCollection {
	for _, p := range pairs {
		c.AddConnection(p[0], p[1])
	}
	return c
}

// IsCompatible reports whether a and b may face each other across an edge.
// Complexity: O(1).
func (c *SocketCollection) IsCompatible(a, b Socket) bool {
	if !c.Owns(a) || !c.Owns(b) {
		return false
	}
	return c.compat[a].Test(uint(b))
}

// Connections returns the sockets compatible with s in ascending order.
func (c *SocketCollection) Connections(s Socket) []Socket {
	c.mustOwn(s)
	var out []Socket
	for i, ok := c.compat[s].NextSet(0); ok; i, ok = c.compat[s].NextSet(i + 1) {
		out = append(out, Socket(i))
	}
	return out
}

func (c *SocketCollection) mustOwn(s Socket) {
	if !c.Owns(s) {
		panic(fmt.Sprintf("rules: socket %d not created by this collection", int(s)))
	}
}

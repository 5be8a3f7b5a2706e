// Copyright (c) 2026 the libsfta authors
//
// MIT License

package mtbdd

// Node is a reference to an element of a diagram: either an internal node
// testing one variable, or a leaf holding a value. Nodes are owned by the
// engine that created them and are only meaningful with respect to it.
type Node int

type dnode struct {
	level  int32 // variable level; _LEAFLEVEL on leaves
	low    int   // false branch; -1 when the slot is free, -2 on leaves
	high   int   // true branch; next free slot when the slot is free
	leaf   int   // index in the leaf table, -1 on internal nodes
	refcou int32 // number of handles (parent edges and external refs) keeping the node alive
}

// triple is the key of the unicity table: two internal nodes with the same
// triple are always the same node.
type triple struct {
	level     int32
	low, high int
}

func (b *MTBDD[L]) isleaf(n int) bool {
	return b.nodes[n].leaf >= 0
}

func (b *MTBDD[L]) level(n int) int32 {
	return b.nodes[n].level
}

func (b *MTBDD[L]) low(n int) int {
	return b.nodes[n].low
}

func (b *MTBDD[L]) high(n int) int {
	return b.nodes[n].high
}

func (b *MTBDD[L]) leafval(n int) L {
	return b.leaves[b.nodes[n].leaf]
}

// alive reports whether n is the index of a node slot currently in use. Free
// slots are recognized by a low field of -1.
func (b *MTBDD[L]) alive(n int) bool {
	return n >= 0 && n < len(b.nodes) && b.nodes[n].low != -1
}

// cofactors returns the two branches of n along the given level. A node
// testing a higher variable, or a leaf, is constant along level: both its
// branches are the node itself.
func (b *MTBDD[L]) cofactors(n int, level int32) (int, int) {
	if b.nodes[n].level == level {
		return b.nodes[n].low, b.nodes[n].high
	}
	return n, n
}

// Copyright (c) 2026 the libsfta authors
//
// MIT License

package mtbdd

// Reference counting is the only reclamation mechanism of the engine: a
// node's count records the number of handles keeping it alive, one per
// parent edge plus one per external reference (root targets included), and
// the node is reclaimed the moment the count reaches zero. There is no
// separate sweep pass.

// refi increments the count of node n and returns n so that calls chain.
func (b *MTBDD[L]) refi(n int) int {
	if n >= 0 {
		b.nodes[n].refcou++
	}
	return n
}

// derefi decrements the count of node n. A node reaching zero is removed
// from its unicity table, its slot returns to the free list, and its
// children are released in turn.
func (b *MTBDD[L]) derefi(n int) {
	if n < 0 || b.nodes[n].refcou <= 0 {
		return
	}
	b.nodes[n].refcou--
	if b.nodes[n].refcou > 0 {
		return
	}
	low, high := -1, -1
	if li := b.nodes[n].leaf; li >= 0 {
		delete(b.leafidx, b.leafkey[li])
		var zero L
		b.leaves[li] = zero
		b.leafkey[li] = ""
		b.leaffree = append(b.leaffree, li)
	} else {
		delete(b.unique, triple{b.nodes[n].level, b.nodes[n].low, b.nodes[n].high})
		low, high = b.nodes[n].low, b.nodes[n].high
	}
	b.nodes[n] = dnode{low: -1, high: b.freepos, leaf: -1}
	b.freepos = n
	b.freenum++
	b.derefi(low)
	b.derefi(high)
}

// Ref increments the reference count of node n and returns n so that calls
// can be chained together. References taken on a node that is not otherwise
// reachable are what keep it alive; every Ref must be matched by exactly one
// Deref or the node table leaks. Calls on unused or out-of-range nodes are
// ignored.
func (b *MTBDD[L]) Ref(n Node) Node {
	if b.alive(int(n)) {
		b.refi(int(n))
	}
	return n
}

// Deref decrements the reference count of node n, reclaiming it, and
// recursively releasing its children, when the count reaches zero. Calls on
// unused or out-of-range nodes are ignored.
func (b *MTBDD[L]) Deref(n Node) {
	if b.alive(int(n)) {
		b.derefi(int(n))
	}
}

// drain releases the references held by a recursion memo. Transient nodes
// whose only handles were memo entries (and parent edges from other
// transients) reach zero here and are reclaimed; the nodes of the final
// result survive through the reference taken on it before draining.
func drain[L any, K comparable](b *MTBDD[L], memo map[K]int) {
	for _, n := range memo {
		b.derefi(n)
	}
}

// Copyright (c) 2026 the libsfta authors
//
// MIT License

package mtbdd

import (
	"fmt"
	"math"
)

// MTBDD is a shared multi-terminal binary decision diagram over leaves of
// type L: a canonicalized DAG representing functions from Boolean vectors of
// a fixed width to leaf values. All diagrams of one engine share a single
// node table, so structurally identical sub-functions are physically shared
// and structural equality is an index comparison.
//
// An engine is not safe for concurrent use; every operation must be
// sequenced by the caller. Distinct engines are fully independent and never
// alias each other's nodes.
type MTBDD[L any] struct {
	varnum     int32          // number of variables
	nodes      []dnode        // node table; free slots are chained through the high field
	unique     map[triple]int // unicity table for internal nodes
	leaves     []L            // leaf values, indexed by the leaf field of leaf nodes
	leafkey    []string       // canonical key of each leaf slot
	leaffree   []int          // free slots in the leaf table
	leafidx    map[string]int // unicity table for leaves: canonical key to node index
	freepos    int            // first free node slot, -1 if none
	freenum    int            // number of free node slots
	produced   int            // total number of nodes ever produced
	background int            // node index of the leaf used for freshly created roots
	key        func(L) string // canonical encoding of leaf values
	roots      []rootslot     // root handle table
	rootfree   int            // first free root slot, -1 if none
	configs                   // sizing parameters
}

// New initializes an engine over varnum variables. Every path not explicitly
// given a value maps to the background leaf. The key function is the
// canonical encoding of leaf values used by the unicity table: two values
// are the same leaf exactly when their keys are equal, so key must be
// injective up to the equality the caller intends.
func New[L any](varnum int, background L, key func(L) string, opts ...Option) (*MTBDD[L], error) {
	if varnum < 1 || varnum > int(_MAXVAR) {
		return nil, fmt.Errorf("bad number of variables (%d)", varnum)
	}
	if key == nil {
		return nil, fmt.Errorf("nil leaf key function")
	}
	c := makeconfigs(varnum)
	for _, o := range opts {
		o(c)
	}
	b := &MTBDD[L]{
		varnum:   int32(varnum),
		key:      key,
		rootfree: -1,
		configs:  *c,
	}
	b.nodes = make([]dnode, c.nodesize)
	for k := range b.nodes {
		b.nodes[k] = dnode{low: -1, high: k + 1, leaf: -1}
	}
	b.nodes[len(b.nodes)-1].high = -1
	b.freepos = 0
	b.freenum = len(b.nodes)
	b.unique = make(map[triple]int, c.nodesize)
	b.leafidx = make(map[string]int)
	n, err := b.makeleaf(background)
	if err != nil {
		return nil, err
	}
	// the engine keeps one reference on the current background leaf
	b.background = b.refi(n)
	return b, nil
}

// Varnum returns the number of variables of the engine.
func (b *MTBDD[L]) Varnum() int {
	return int(b.varnum)
}

// Size returns the number of live nodes in the table, leaves included.
func (b *MTBDD[L]) Size() int {
	return len(b.nodes) - b.freenum
}

// alloc pops the first free slot of the node table, resizing it when none is
// left.
func (b *MTBDD[L]) alloc() (int, error) {
	if b.freepos < 0 {
		if err := b.noderesize(); err != nil {
			return -1, err
		}
	}
	n := b.freepos
	b.freepos = b.nodes[n].high
	b.freenum--
	b.produced++
	return n, nil
}

// makeleaf returns the canonical leaf node for value v, creating it on first
// use. The returned node has no reference of its own; callers keep it alive
// by making it a child, the target of a root, or through Ref.
func (b *MTBDD[L]) makeleaf(v L) (int, error) {
	k := b.key(v)
	if n, ok := b.leafidx[k]; ok {
		return n, nil
	}
	n, err := b.alloc()
	if err != nil {
		return -1, err
	}
	var li int
	if len(b.leaffree) > 0 {
		li = b.leaffree[len(b.leaffree)-1]
		b.leaffree = b.leaffree[:len(b.leaffree)-1]
		b.leaves[li] = v
		b.leafkey[li] = k
	} else {
		li = len(b.leaves)
		b.leaves = append(b.leaves, v)
		b.leafkey = append(b.leafkey, k)
	}
	b.nodes[n] = dnode{level: _LEAFLEVEL, low: -2, high: -2, leaf: li}
	b.leafidx[k] = n
	return n, nil
}

// makenode returns the canonical internal node for (level, low, high),
// creating it if absent. A node whose two branches are equal is never
// materialized: the branch is returned directly. A fresh node takes one
// reference on each of its children.
func (b *MTBDD[L]) makenode(level int32, low, high int) (int, error) {
	if low == high {
		return low, nil
	}
	if level < 0 || level >= b.varnum {
		return -1, fmt.Errorf("level %d outside [0..%d): %w", level, b.varnum, ErrInvariant)
	}
	if level >= b.nodes[low].level || level >= b.nodes[high].level {
		return -1, fmt.Errorf("level %d not below children (low %d, high %d): %w",
			level, b.nodes[low].level, b.nodes[high].level, ErrInvariant)
	}
	t := triple{level, low, high}
	if n, ok := b.unique[t]; ok {
		return n, nil
	}
	n, err := b.alloc()
	if err != nil {
		return -1, err
	}
	b.nodes[n] = dnode{level: level, low: low, high: high, leaf: -1}
	b.unique[t] = n
	b.refi(low)
	b.refi(high)
	return n, nil
}

// noderesize grows the node table, typically doubling its size, within the
// bounds set by the Maxnodesize and Maxnodeincrease options.
func (b *MTBDD[L]) noderesize() error {
	oldsize := len(b.nodes)
	if b.maxnodesize > 0 && oldsize >= b.maxnodesize {
		return errMemory
	}
	nodesize := oldsize
	if oldsize > (math.MaxInt32 >> 1) {
		nodesize = math.MaxInt32 - 1
	} else {
		nodesize = nodesize << 1
	}
	if b.maxnodeincrease > 0 && nodesize > oldsize+b.maxnodeincrease {
		nodesize = oldsize + b.maxnodeincrease
	}
	if b.maxnodesize > 0 && nodesize > b.maxnodesize {
		nodesize = b.maxnodesize
	}
	if nodesize <= oldsize {
		return errMemory
	}
	tmp := b.nodes
	b.nodes = make([]dnode, nodesize)
	copy(b.nodes, tmp)
	for n := oldsize; n < nodesize; n++ {
		b.nodes[n] = dnode{low: -1, high: n + 1, leaf: -1}
	}
	b.nodes[nodesize-1].high = b.freepos
	b.freepos = oldsize
	b.freenum += nodesize - oldsize
	return nil
}

// MakeLeaf returns the canonical leaf for the given value, creating it on
// first use. The leaf is returned without a reference of its own; use Ref,
// or make it a child through MakeInternal, to keep it alive.
func (b *MTBDD[L]) MakeLeaf(v L) (Node, error) {
	n, err := b.makeleaf(v)
	return Node(n), err
}

// MakeInternal returns the canonical internal node testing variable v with
// the given branches, creating it if absent. When both branches are the same
// node that node is returned directly. It fails with ErrInvariant unless v
// is strictly below the variables tested by both children, so diagrams must
// be constructed bottom-up.
func (b *MTBDD[L]) MakeInternal(v int, then, els Node) (Node, error) {
	// checked before the int32 conversion so a large index cannot alias a
	// valid level
	if v < 0 || v >= int(b.varnum) {
		return -1, fmt.Errorf("level %d outside [0..%d): %w", v, b.varnum, ErrInvariant)
	}
	if !b.alive(int(then)) {
		return -1, fmt.Errorf("bad then child (%d): %w", then, ErrInvariant)
	}
	if !b.alive(int(els)) {
		return -1, fmt.Errorf("bad else child (%d): %w", els, ErrInvariant)
	}
	n, err := b.makenode(int32(v), int(els), int(then))
	if err != nil {
		return -1, err
	}
	return Node(n), nil
}

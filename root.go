// Copyright (c) 2026 the libsfta authors
//
// MIT License

package mtbdd

import (
	"fmt"
)

// Root is an external, reference-counted handle on a diagram. A root's
// identity is independent of the diagram it refers to; erasing it releases
// its reference and invalidates the handle. Handles carry a generation tag
// so that use after EraseRoot is detected even when the slot has been
// recycled for a new root.
type Root struct {
	idx int
	gen uint32
}

type rootslot struct {
	node int    // target node; -1 when the slot is free
	gen  uint32 // incremented on erase, invalidating outstanding handles
	next int    // next free slot
}

// CreateRoot allocates a fresh root referring to the background leaf, with
// one reference held on its behalf.
func (b *MTBDD[L]) CreateRoot() Root {
	return b.attach(b.refi(b.background))
}

// attach allocates a root slot for node n, taking ownership of one
// already-held reference on n.
func (b *MTBDD[L]) attach(n int) Root {
	var idx int
	if b.rootfree >= 0 {
		idx = b.rootfree
		b.rootfree = b.roots[idx].next
		b.roots[idx].node = n
	} else {
		idx = len(b.roots)
		b.roots = append(b.roots, rootslot{node: n, next: -1})
	}
	return Root{idx: idx, gen: b.roots[idx].gen}
}

// rootnode resolves a handle to its target node, rejecting erased or
// foreign handles.
func (b *MTBDD[L]) rootnode(r Root) (int, error) {
	if r.idx < 0 || r.idx >= len(b.roots) {
		return -1, fmt.Errorf("unknown root (%d): %w", r.idx, ErrErasedRoot)
	}
	s := b.roots[r.idx]
	if s.node < 0 || s.gen != r.gen {
		return -1, fmt.Errorf("root %d: %w", r.idx, ErrErasedRoot)
	}
	return s.node, nil
}

// EraseRoot releases the root's reference; if that was the last handle on
// its subgraph the subgraph is reclaimed. The handle is invalid afterwards
// and any further use fails with ErrErasedRoot.
func (b *MTBDD[L]) EraseRoot(r Root) error {
	n, err := b.rootnode(r)
	if err != nil {
		return err
	}
	b.roots[r.idx].node = -1
	b.roots[r.idx].gen++
	b.roots[r.idx].next = b.rootfree
	b.rootfree = r.idx
	b.derefi(n)
	return nil
}

// Node returns the node the root currently refers to.
func (b *MTBDD[L]) Node(r Root) (Node, error) {
	n, err := b.rootnode(r)
	return Node(n), err
}

// SetRoot replaces the root's target with node n, releasing the reference
// held on the previous target.
func (b *MTBDD[L]) SetRoot(r Root, n Node) error {
	old, err := b.rootnode(r)
	if err != nil {
		return err
	}
	if !b.alive(int(n)) {
		return fmt.Errorf("bad node (%d) in call to SetRoot: %w", n, ErrInvariant)
	}
	b.refi(int(n))
	b.roots[r.idx].node = int(n)
	b.derefi(old)
	return nil
}

// SetBackground changes the leaf used as the value of every path of a
// freshly created root. Existing diagrams are not affected.
func (b *MTBDD[L]) SetBackground(v L) error {
	n, err := b.makeleaf(v)
	if err != nil {
		return err
	}
	b.setbackground(n)
	return nil
}

func (b *MTBDD[L]) setbackground(n int) {
	b.refi(n)
	old := b.background
	b.background = n
	b.derefi(old)
}

// Background returns the current background leaf value.
func (b *MTBDD[L]) Background() L {
	return b.leafval(b.background)
}

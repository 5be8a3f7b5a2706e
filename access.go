// Copyright (c) 2026 the libsfta authors
//
// MIT License

package mtbdd

import (
	"fmt"
)

// checkassignment rejects assignments whose width differs from the engine's
// variable count, or holding an unrecognized position value, before any
// mutation takes place.
func (b *MTBDD[L]) checkassignment(a Assignment) error {
	if a.Size() != int(b.varnum) {
		return fmt.Errorf("assignment width %d, engine has %d variables: %w", a.Size(), b.varnum, ErrAssignment)
	}
	if !a.wellformed() {
		return fmt.Errorf("assignment holds an unrecognized value: %w", ErrAssignment)
	}
	return nil
}

// GetValue returns the values of all leaves reachable from the root along
// the given assignment: at each node, a Zero or One position follows the
// matching branch and a DontCare position follows both. The result holds no
// duplicate values (under the engine's leaf equality) and lists them in
// low-before-high traversal order, so it is deterministic. A path never
// given a value reaches the background leaf, which is reported like any
// other.
func (b *MTBDD[L]) GetValue(r Root, a Assignment) ([]L, error) {
	n, err := b.rootnode(r)
	if err != nil {
		return nil, err
	}
	if err := b.checkassignment(a); err != nil {
		return nil, err
	}
	res := []L{}
	seen := make(map[string]bool)
	b.getvalue(n, a, seen, &res)
	return res, nil
}

func (b *MTBDD[L]) getvalue(n int, a Assignment, seen map[string]bool, out *[]L) {
	if b.isleaf(n) {
		k := b.leafkey[b.nodes[n].leaf]
		if !seen[k] {
			seen[k] = true
			*out = append(*out, b.leafval(n))
		}
		return
	}
	switch a.At(int(b.level(n))) {
	case Zero:
		b.getvalue(b.low(n), a, seen, out)
	case One:
		b.getvalue(b.high(n), a, seen, out)
	default:
		b.getvalue(b.low(n), a, seen, out)
		b.getvalue(b.high(n), a, seen, out)
	}
}

type setkey struct {
	n     int
	level int32
}

// SetValue rewrites the diagram under the root so that every total
// assignment consistent with a maps to value, leaving all other paths
// unchanged. Bound positions rebuild one spine node; a DontCare position
// rewrites both branches, which interacts with the existing branching of the
// function and therefore proceeds as a memoized merge rather than a single
// path write. The root is swapped to the rebuilt diagram and its previous
// target released.
func (b *MTBDD[L]) SetValue(r Root, a Assignment, value L) error {
	n, err := b.rootnode(r)
	if err != nil {
		return err
	}
	if err := b.checkassignment(a); err != nil {
		return err
	}
	memo := make(map[setkey]int)
	res, err := b.setvalue(n, 0, a, value, memo)
	if err == nil {
		b.refi(res)
	}
	drain(b, memo)
	if err != nil {
		return err
	}
	b.roots[r.idx].node = res
	b.derefi(n)
	return nil
}

func (b *MTBDD[L]) setvalue(n int, level int32, a Assignment, value L, memo map[setkey]int) (int, error) {
	k := setkey{n, level}
	if res, ok := memo[k]; ok {
		return res, nil
	}
	var res int
	var err error
	if level == b.varnum {
		// below the last variable n is a leaf; it is replaced outright
		res, err = b.makeleaf(value)
	} else {
		nl, nh := b.cofactors(n, level)
		low, high := nl, nh
		switch a.At(int(level)) {
		case Zero:
			if low, err = b.setvalue(nl, level+1, a, value, memo); err != nil {
				return -1, err
			}
		case One:
			if high, err = b.setvalue(nh, level+1, a, value, memo); err != nil {
				return -1, err
			}
		default:
			if low, err = b.setvalue(nl, level+1, a, value, memo); err != nil {
				return -1, err
			}
			if high, err = b.setvalue(nh, level+1, a, value, memo); err != nil {
				return -1, err
			}
		}
		res, err = b.makenode(level, low, high)
	}
	if err != nil {
		return -1, err
	}
	memo[k] = b.refi(res)
	return res, nil
}

// AllValues calls f once for every distinct path of the diagram, passing the
// assignment describing the path (DontCare on the variables the path does
// not test) and the leaf value it reaches. Paths are visited left to right
// (low branch first), so the enumeration order is deterministic. The
// iteration stops at the first error returned by f.
func (b *MTBDD[L]) AllValues(r Root, f func(Assignment, L) error) error {
	n, err := b.rootnode(r)
	if err != nil {
		return err
	}
	a := NewAssignment(int(b.varnum))
	return b.allvalues(n, a, f)
}

func (b *MTBDD[L]) allvalues(n int, a Assignment, f func(Assignment, L) error) error {
	if b.isleaf(n) {
		return f(a.Clone(), b.leafval(n))
	}
	i := int(b.level(n))
	a.put(i, Zero)
	if err := b.allvalues(b.low(n), a, f); err != nil {
		a.put(i, DontCare)
		return err
	}
	a.put(i, One)
	err := b.allvalues(b.high(n), a, f)
	a.put(i, DontCare)
	return err
}

// Copyright (c) 2026 the libsfta authors
//
// MIT License

package mtbdd

import (
	"fmt"
)

// RenameVariables computes the diagram obtained by replacing every variable
// v tested by the diagram with rename(v). The renaming is validated against
// the support of the diagram before any node is built: every image must be a
// valid level, no two support variables may share an image, and the image of
// a renamed variable must not be a support variable left in place. A
// renaming that fails these checks would break the ordering invariant on
// some path and is rejected with ErrInvariant, leaving the store unchanged.
func (b *MTBDD[L]) RenameVariables(r Root, rename func(int) int) (Root, error) {
	n, err := b.rootnode(r)
	if err != nil {
		return Root{}, err
	}
	if rename == nil {
		return Root{}, fmt.Errorf("nil function in call to RenameVariables")
	}
	support := make(map[int32]bool)
	b.support(n, support, make(map[int]bool))
	image := make(map[int32]int32, len(support))
	used := make(map[int32]int32, len(support))
	last := int32(-1)
	for v := range support {
		w := rename(int(v))
		if w < 0 || w >= int(b.varnum) {
			return Root{}, fmt.Errorf("variable %d renamed to %d, outside [0..%d): %w", v, w, b.varnum, ErrInvariant)
		}
		image[v] = int32(w)
		if u, ok := used[int32(w)]; ok {
			return Root{}, fmt.Errorf("variables %d and %d both renamed to %d: %w", u, v, w, ErrInvariant)
		}
		used[int32(w)] = v
		if int32(w) != v && v > last {
			last = v
		}
	}
	memo := make(map[int]int)
	cmemo := make(map[triple]int)
	res, err := b.replace(n, image, last, memo, cmemo)
	if err == nil {
		b.refi(res)
	}
	drain(b, memo)
	drain(b, cmemo)
	if err != nil {
		return Root{}, err
	}
	return b.attach(res), nil
}

// support collects the set of variables tested by the diagram rooted at n.
func (b *MTBDD[L]) support(n int, levels map[int32]bool, visited map[int]bool) {
	if b.isleaf(n) || visited[n] {
		return
	}
	visited[n] = true
	levels[b.level(n)] = true
	b.support(b.low(n), levels, visited)
	b.support(b.high(n), levels, visited)
}

// replace rebuilds the diagram bottom-up, reinserting every internal node
// under its renamed level. Subgraphs testing only variables beyond the last
// renamed one are unchanged and returned as is.
func (b *MTBDD[L]) replace(n int, image map[int32]int32, last int32, memo map[int]int, cmemo map[triple]int) (int, error) {
	if b.level(n) > last {
		return n, nil
	}
	if res, ok := memo[n]; ok {
		return res, nil
	}
	low, err := b.replace(b.low(n), image, last, memo, cmemo)
	if err != nil {
		return -1, err
	}
	high, err := b.replace(b.high(n), image, last, memo, cmemo)
	if err != nil {
		return -1, err
	}
	res, err := b.correctify(image[b.level(n)], low, high, cmemo)
	if err != nil {
		return -1, err
	}
	memo[n] = b.refi(res)
	return res, nil
}

// correctify inserts a test on the given level into the diagram formed by
// the two branches, pushing it down past nodes testing smaller levels so
// that levels stay strictly increasing on every path. Validation in
// RenameVariables guarantees the level cannot collide with a level already
// present below; the check is kept because the rebuild is meaningless if it
// ever fails.
func (b *MTBDD[L]) correctify(level int32, low, high int, cmemo map[triple]int) (int, error) {
	k := triple{level, low, high}
	if res, ok := cmemo[k]; ok {
		return res, nil
	}
	var res int
	var err error
	switch {
	case level < b.level(low) && level < b.level(high):
		res, err = b.makenode(level, low, high)
	case level == b.level(low) || level == b.level(high):
		return -1, fmt.Errorf("renamed level %d already tested below: %w", level, ErrInvariant)
	default:
		top := b.level(low)
		if b.level(high) < top {
			top = b.level(high)
		}
		ll, lh := b.cofactors(low, top)
		hl, hh := b.cofactors(high, top)
		var left, right int
		if left, err = b.correctify(level, ll, hl, cmemo); err != nil {
			return -1, err
		}
		if right, err = b.correctify(level, lh, hh, cmemo); err != nil {
			return -1, err
		}
		res, err = b.makenode(top, left, right)
	}
	if err != nil {
		return -1, err
	}
	cmemo[k] = b.refi(res)
	return res, nil
}

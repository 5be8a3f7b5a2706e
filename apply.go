// Copyright (c) 2026 the libsfta authors
//
// MIT License

package mtbdd

import (
	"fmt"
)

// The apply family combines diagrams pointwise through a caller-supplied
// function on leaves. Each top-level call owns a fresh memo table keyed by
// the operand tuple; the memo bounds the recursion by the number of distinct
// reachable tuples and holds one reference per entry, drained on every exit
// path so that transient nodes are reclaimed and only the result survives.

type pair struct {
	l, r int
}

type triad struct {
	l, m, r int
}

// Apply computes the diagram mapping every total assignment a to
// f(lhs(a), rhs(a)). The result is returned as a fresh root holding one
// reference.
func (b *MTBDD[L]) Apply(lhs, rhs Root, f func(L, L) L) (Root, error) {
	ln, err := b.rootnode(lhs)
	if err != nil {
		return Root{}, err
	}
	rn, err := b.rootnode(rhs)
	if err != nil {
		return Root{}, err
	}
	if f == nil {
		return Root{}, fmt.Errorf("nil function in call to Apply")
	}
	memo := make(map[pair]int)
	res, err := b.apply(ln, rn, f, memo)
	if err == nil {
		b.refi(res)
	}
	drain(b, memo)
	if err != nil {
		return Root{}, err
	}
	return b.attach(res), nil
}

func (b *MTBDD[L]) apply(l, r int, f func(L, L) L, memo map[pair]int) (int, error) {
	k := pair{l, r}
	if res, ok := memo[k]; ok {
		return res, nil
	}
	var res int
	var err error
	if b.isleaf(l) && b.isleaf(r) {
		res, err = b.makeleaf(f(b.leafval(l), b.leafval(r)))
	} else {
		level := b.level(l)
		if b.level(r) < level {
			level = b.level(r)
		}
		ll, lh := b.cofactors(l, level)
		rl, rh := b.cofactors(r, level)
		var low, high int
		if low, err = b.apply(ll, rl, f, memo); err != nil {
			return -1, err
		}
		if high, err = b.apply(lh, rh, f, memo); err != nil {
			return -1, err
		}
		res, err = b.makenode(level, low, high)
	}
	if err != nil {
		return -1, err
	}
	memo[k] = b.refi(res)
	return res, nil
}

// TernaryApply computes the diagram mapping every total assignment a to
// f(lhs(a), mhs(a), rhs(a)).
func (b *MTBDD[L]) TernaryApply(lhs, mhs, rhs Root, f func(L, L, L) L) (Root, error) {
	ln, err := b.rootnode(lhs)
	if err != nil {
		return Root{}, err
	}
	mn, err := b.rootnode(mhs)
	if err != nil {
		return Root{}, err
	}
	rn, err := b.rootnode(rhs)
	if err != nil {
		return Root{}, err
	}
	if f == nil {
		return Root{}, fmt.Errorf("nil function in call to TernaryApply")
	}
	memo := make(map[triad]int)
	res, err := b.apply3(ln, mn, rn, f, memo)
	if err == nil {
		b.refi(res)
	}
	drain(b, memo)
	if err != nil {
		return Root{}, err
	}
	return b.attach(res), nil
}

func (b *MTBDD[L]) apply3(l, m, r int, f func(L, L, L) L, memo map[triad]int) (int, error) {
	k := triad{l, m, r}
	if res, ok := memo[k]; ok {
		return res, nil
	}
	var res int
	var err error
	if b.isleaf(l) && b.isleaf(m) && b.isleaf(r) {
		res, err = b.makeleaf(f(b.leafval(l), b.leafval(m), b.leafval(r)))
	} else {
		level := min3(b.level(l), b.level(m), b.level(r))
		ll, lh := b.cofactors(l, level)
		ml, mh := b.cofactors(m, level)
		rl, rh := b.cofactors(r, level)
		var low, high int
		if low, err = b.apply3(ll, ml, rl, f, memo); err != nil {
			return -1, err
		}
		if high, err = b.apply3(lh, mh, rh, f, memo); err != nil {
			return -1, err
		}
		res, err = b.makenode(level, low, high)
	}
	if err != nil {
		return -1, err
	}
	memo[k] = b.refi(res)
	return res, nil
}

// MonadicApply computes the diagram mapping every total assignment a to
// f(root(a)): the shape of the diagram is preserved up to the merging of
// leaves that f maps to the same value.
func (b *MTBDD[L]) MonadicApply(r Root, f func(L) L) (Root, error) {
	n, err := b.rootnode(r)
	if err != nil {
		return Root{}, err
	}
	if f == nil {
		return Root{}, fmt.Errorf("nil function in call to MonadicApply")
	}
	memo := make(map[int]int)
	res, err := b.apply1(n, f, memo)
	if err == nil {
		b.refi(res)
	}
	drain(b, memo)
	if err != nil {
		return Root{}, err
	}
	return b.attach(res), nil
}

func (b *MTBDD[L]) apply1(n int, f func(L) L, memo map[int]int) (int, error) {
	if res, ok := memo[n]; ok {
		return res, nil
	}
	var res int
	var err error
	if b.isleaf(n) {
		res, err = b.makeleaf(f(b.leafval(n)))
	} else {
		var low, high int
		if low, err = b.apply1(b.low(n), f, memo); err != nil {
			return -1, err
		}
		if high, err = b.apply1(b.high(n), f, memo); err != nil {
			return -1, err
		}
		res, err = b.makenode(b.level(n), low, high)
	}
	if err != nil {
		return -1, err
	}
	memo[n] = b.refi(res)
	return res, nil
}

// min3 returns the smallest of three levels.
func min3(p, q, r int32) int32 {
	if p <= q {
		if p <= r {
			return p
		}
		return r
	}
	if q <= r {
		return q
	}
	return r
}

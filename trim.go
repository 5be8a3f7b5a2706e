// Copyright (c) 2026 the libsfta authors
//
// MIT License

package mtbdd

import (
	"fmt"
)

// TrimVariables eliminates from the diagram every variable v for which
// pred(v) is true. At each eliminated test the two branches are combined
// pointwise with merge, so the result maps every assignment over the
// remaining variables to the merge of all values the original diagram takes
// when the eliminated variables range over both branches. Nodes are
// processed bottom-up, deepest eliminated variable first, and within one
// eliminated node the low branch is the left operand of merge. The result is
// returned as a fresh root; the input root is untouched.
func (b *MTBDD[L]) TrimVariables(r Root, pred func(int) bool, merge func(L, L) L) (Root, error) {
	n, err := b.rootnode(r)
	if err != nil {
		return Root{}, err
	}
	if pred == nil || merge == nil {
		return Root{}, fmt.Errorf("nil function in call to TrimVariables")
	}
	memo := make(map[int]int)
	amemo := make(map[pair]int)
	res, err := b.trim(n, pred, merge, memo, amemo)
	if err == nil {
		b.refi(res)
	}
	drain(b, memo)
	drain(b, amemo)
	if err != nil {
		return Root{}, err
	}
	return b.attach(res), nil
}

func (b *MTBDD[L]) trim(n int, pred func(int) bool, merge func(L, L) L, memo map[int]int, amemo map[pair]int) (int, error) {
	if b.isleaf(n) {
		return n, nil
	}
	if res, ok := memo[n]; ok {
		return res, nil
	}
	low, err := b.trim(b.low(n), pred, merge, memo, amemo)
	if err != nil {
		return -1, err
	}
	high, err := b.trim(b.high(n), pred, merge, memo, amemo)
	if err != nil {
		return -1, err
	}
	var res int
	if pred(int(b.level(n))) {
		res, err = b.apply(low, high, merge, amemo)
	} else {
		res, err = b.makenode(b.level(n), low, high)
	}
	if err != nil {
		return -1, err
	}
	memo[n] = b.refi(res)
	return res, nil
}

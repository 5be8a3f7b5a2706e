// Copyright (c) 2026 the libsfta authors
//
// MIT License

package mtbdd

import (
	"fmt"
)

// Stats returns information about the node table of the engine.
func (b *MTBDD[L]) Stats() string {
	res := fmt.Sprintf("Varnum:     %d\n", b.varnum)
	res += fmt.Sprintf("Allocated:  %d\n", len(b.nodes))
	res += fmt.Sprintf("Produced:   %d\n", b.produced)
	r := (float64(b.freenum) / float64(len(b.nodes))) * 100
	res += fmt.Sprintf("Free:       %d  (%.3g %%)\n", b.freenum, r)
	res += fmt.Sprintf("Used:       %d  (%.3g %%)\n", len(b.nodes)-b.freenum, 100.0-r)
	res += fmt.Sprintf("Leaves:     %d\n", len(b.leafidx))
	res += fmt.Sprintf("Roots:      %d", b.liveroots())
	return res
}

func (b *MTBDD[L]) liveroots() int {
	count := 0
	for _, s := range b.roots {
		if s.node >= 0 {
			count++
		}
	}
	return count
}

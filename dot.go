// Copyright (c) 2026 the libsfta authors
//
// MIT License

package mtbdd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Dot writes a graph-like description of the diagrams reachable from the
// named roots using the DOT syntax of the GraphViz tool set. Leaves are
// drawn as boxes labelled with the leaf value printed through enc, internal
// nodes as circles labelled with their variable; low branches are dotted.
// Vertices are numbered deterministically, so equal sets of diagrams produce
// equal output.
func (b *MTBDD[L]) Dot(w io.Writer, named map[string]Root, enc func(L) (string, error)) error {
	if enc == nil {
		return fmt.Errorf("nil encoding function in call to Dot")
	}
	im, err := b.snapshot(named)
	if err != nil {
		return err
	}
	buf := bufio.NewWriter(w)
	fmt.Fprintln(buf, "digraph G {")
	for id, n := range im.order {
		if b.isleaf(n) {
			s, err := enc(b.leafval(n))
			if err != nil {
				return fmt.Errorf("encoding leaf: %w", err)
			}
			fmt.Fprintf(buf, "%d [shape=box, label=%s, style=filled, height=0.3, width=0.3];\n", id, strconv.Quote(s))
			continue
		}
		fmt.Fprintf(buf, "%d %s\n", id, dotlabel(id, b.level(n)))
		fmt.Fprintf(buf, "%d -> %d [style=dotted];\n", id, im.ids[b.low(n)])
		fmt.Fprintf(buf, "%d -> %d [style=filled];\n", id, im.ids[b.high(n)])
	}
	for _, name := range im.names {
		fmt.Fprintf(buf, "%s [shape=plaintext];\n", strconv.Quote(name))
		fmt.Fprintf(buf, "%s -> %d;\n", strconv.Quote(name), im.rootid[name])
	}
	fmt.Fprintln(buf, "}")
	return buf.Flush()
}

// FPrintDot is like Dot but writes to the named file, created or truncated
// beforehand.
func (b *MTBDD[L]) FPrintDot(filename string, named map[string]Root, enc func(L) (string, error)) error {
	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer out.Close()
	return b.Dot(out, named, enc)
}

func dotlabel(a int, b int32) string {
	return fmt.Sprintf(`[label=<
	<FONT POINT-SIZE="20">x%d</FONT>
	<FONT POINT-SIZE="10">[%d]</FONT>
>];`, b, a)
}

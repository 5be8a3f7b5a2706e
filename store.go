// Copyright (c) 2026 the libsfta authors
//
// MIT License

package mtbdd

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// The text format is line based and deterministic: storing the same set of
// diagrams twice produces identical bytes. A file starts with a header line
// carrying the variable count, then one record per node in traversal order
// (children always precede their parents), then the background and one line
// per named root in name order:
//
//	mtbdd <varnum>
//	LEAF <quoted encoded value>
//	INTERNAL <var> <then id> <else id>
//	BACKGROUND <id>
//	ROOT <id> <quoted name>
//
// A node's id is its position in the record list, starting at 0. Ids are
// dense and assigned by the traversal, so shared subgraphs are written once
// and sharing survives a round trip.

// storeimage is a deterministic numbering of the nodes reachable from the
// background and a set of named roots, shared by the text and binary
// encoders.
type storeimage struct {
	order  []int       // node indices in id order, children first
	ids    map[int]int // node index to id
	backid int
	names  []string // root names in order
	rootid map[string]int
}

func (b *MTBDD[L]) snapshot(named map[string]Root) (*storeimage, error) {
	im := &storeimage{ids: make(map[int]int), rootid: make(map[string]int, len(named))}
	im.backid = b.number(b.background, im)
	for name := range named {
		im.names = append(im.names, name)
	}
	sort.Strings(im.names)
	for _, name := range im.names {
		n, err := b.rootnode(named[name])
		if err != nil {
			return nil, fmt.Errorf("root %q: %w", name, err)
		}
		im.rootid[name] = b.number(n, im)
	}
	return im, nil
}

// number assigns ids post-order, low branch first, so every child precedes
// its parents in the numbering.
func (b *MTBDD[L]) number(n int, im *storeimage) int {
	if id, ok := im.ids[n]; ok {
		return id
	}
	if !b.isleaf(n) {
		b.number(b.low(n), im)
		b.number(b.high(n), im)
	}
	id := len(im.order)
	im.ids[n] = id
	im.order = append(im.order, n)
	return id
}

// Store writes the diagrams reachable from the named roots, together with
// the background, in the text format. Leaf values are encoded with enc; the
// encoding must be the identity of the value, consistent with the engine's
// key function, for a round trip to rebuild the same diagrams.
func (b *MTBDD[L]) Store(w io.Writer, named map[string]Root, enc func(L) (string, error)) error {
	if enc == nil {
		return fmt.Errorf("nil encoding function in call to Store")
	}
	im, err := b.snapshot(named)
	if err != nil {
		return err
	}
	buf := bufio.NewWriter(w)
	fmt.Fprintf(buf, "mtbdd %d\n", b.varnum)
	for _, n := range im.order {
		if b.isleaf(n) {
			s, err := enc(b.leafval(n))
			if err != nil {
				return fmt.Errorf("encoding leaf: %w", err)
			}
			fmt.Fprintf(buf, "LEAF %s\n", strconv.Quote(s))
			continue
		}
		fmt.Fprintf(buf, "INTERNAL %d %d %d\n", b.level(n), im.ids[b.high(n)], im.ids[b.low(n)])
	}
	fmt.Fprintf(buf, "BACKGROUND %d\n", im.backid)
	for _, name := range im.names {
		fmt.Fprintf(buf, "ROOT %d %s\n", im.rootid[name], strconv.Quote(name))
	}
	return buf.Flush()
}

// Load rebuilds an engine from the text format. The key function plays the
// same role as in New; dec inverts the encoding given to Store. It returns
// the engine and its named roots. Any structural defect in the input, such
// as a node referencing an id at or past its own or a branch ordering
// violation, fails with ErrMalformed.
func Load[L any](r io.Reader, key func(L) string, dec func(string) (L, error), opts ...Option) (*MTBDD[L], map[string]Root, error) {
	if dec == nil {
		return nil, nil, fmt.Errorf("nil decoding function in call to Load")
	}
	scan := bufio.NewScanner(r)
	if !scan.Scan() {
		return nil, nil, fmt.Errorf("missing header: %w", ErrMalformed)
	}
	var varnum int
	if _, err := fmt.Sscanf(scan.Text(), "mtbdd %d", &varnum); err != nil {
		return nil, nil, fmt.Errorf("bad header %q: %w", scan.Text(), ErrMalformed)
	}
	var zero L
	b, err := New(varnum, zero, key, opts...)
	if err != nil {
		return nil, nil, err
	}
	var byid []int
	named := make(map[string]Root)
	lineno := 1
	background := false
	for scan.Scan() {
		lineno++
		line := scan.Text()
		if line == "" {
			continue
		}
		tag, rest, _ := strings.Cut(line, " ")
		switch tag {
		case "LEAF":
			s, err := strconv.Unquote(rest)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: bad leaf value %s: %w", lineno, rest, ErrMalformed)
			}
			v, err := dec(s)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: decoding leaf: %w", lineno, err)
			}
			n, err := b.makeleaf(v)
			if err != nil {
				return nil, nil, err
			}
			// replace the interned representative with the decoded value and
			// hold a reference until the roots are attached; a later
			// BACKGROUND record must not reclaim a node still listed here
			b.leaves[b.nodes[n].leaf] = v
			byid = append(byid, b.refi(n))
		case "INTERNAL":
			var level, then, els int
			if _, err := fmt.Sscanf(rest, "%d %d %d", &level, &then, &els); err != nil {
				return nil, nil, fmt.Errorf("line %d: bad node %q: %w", lineno, line, ErrMalformed)
			}
			if then < 0 || then >= len(byid) || els < 0 || els >= len(byid) {
				return nil, nil, fmt.Errorf("line %d: forward reference: %w", lineno, ErrMalformed)
			}
			n, err := b.makenode(int32(level), byid[els], byid[then])
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %v: %w", lineno, err, ErrMalformed)
			}
			byid = append(byid, b.refi(n))
		case "BACKGROUND":
			var id int
			if _, err := fmt.Sscanf(rest, "%d", &id); err != nil {
				return nil, nil, fmt.Errorf("line %d: bad background %q: %w", lineno, line, ErrMalformed)
			}
			if id < 0 || id >= len(byid) {
				return nil, nil, fmt.Errorf("line %d: undefined id %d: %w", lineno, id, ErrMalformed)
			}
			b.setbackground(byid[id])
			background = true
		case "ROOT":
			idtext, quoted, ok := strings.Cut(rest, " ")
			if !ok {
				return nil, nil, fmt.Errorf("line %d: truncated root: %w", lineno, ErrMalformed)
			}
			id, err := strconv.Atoi(idtext)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: bad id %q: %w", lineno, idtext, ErrMalformed)
			}
			name, err := strconv.Unquote(quoted)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: bad root name %s: %w", lineno, quoted, ErrMalformed)
			}
			if id < 0 || id >= len(byid) {
				return nil, nil, fmt.Errorf("line %d: undefined id %d: %w", lineno, id, ErrMalformed)
			}
			if _, ok := named[name]; ok {
				return nil, nil, fmt.Errorf("line %d: duplicate root %q: %w", lineno, name, ErrMalformed)
			}
			named[name] = b.attach(b.refi(byid[id]))
		default:
			return nil, nil, fmt.Errorf("line %d: unknown tag %q: %w", lineno, tag, ErrMalformed)
		}
	}
	if err := scan.Err(); err != nil {
		return nil, nil, err
	}
	if !background {
		return nil, nil, fmt.Errorf("missing background record: %w", ErrMalformed)
	}
	for _, n := range byid {
		b.derefi(n)
	}
	return b, named, nil
}

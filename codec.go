// Copyright (c) 2026 the libsfta authors
//
// MIT License

package mtbdd

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// The binary format is a CBOR encoding of the same image as the text
// format: the node table in child-first order, the background id and the
// named roots. Encoding uses the core deterministic options, so equal sets
// of diagrams serialize to equal bytes. Leaf values are encoded as CBOR
// themselves, which frees callers from providing a string codec but
// requires L to be a type the cbor package can marshal.

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error
	if cborEnc, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(err)
	}
	if cborDec, err = (cbor.DecOptions{}).DecMode(); err != nil {
		panic(err)
	}
}

type cborImage struct {
	Varnum     int        `cbor:"1,keyasint"`
	Nodes      []cborNode `cbor:"2,keyasint"`
	Background int        `cbor:"3,keyasint"`
	Roots      []cborRoot `cbor:"4,keyasint"`
}

// cborNode is one node of the table. A leaf has Var set to -1 and carries
// its value; an internal node carries the ids of its branches, which always
// precede it in the table.
type cborNode struct {
	Var  int32           `cbor:"1,keyasint"`
	Then int             `cbor:"2,keyasint,omitempty"`
	Else int             `cbor:"3,keyasint,omitempty"`
	Leaf cbor.RawMessage `cbor:"4,keyasint,omitempty"`
}

type cborRoot struct {
	Name string `cbor:"1,keyasint"`
	Id   int    `cbor:"2,keyasint"`
}

// StoreBinary writes the diagrams reachable from the named roots, together
// with the background, in the binary format.
func (b *MTBDD[L]) StoreBinary(w io.Writer, named map[string]Root) error {
	im, err := b.snapshot(named)
	if err != nil {
		return err
	}
	img := cborImage{
		Varnum:     int(b.varnum),
		Nodes:      make([]cborNode, len(im.order)),
		Background: im.backid,
	}
	for id, n := range im.order {
		if b.isleaf(n) {
			raw, err := cborEnc.Marshal(b.leafval(n))
			if err != nil {
				return fmt.Errorf("encoding leaf: %w", err)
			}
			img.Nodes[id] = cborNode{Var: -1, Leaf: raw}
			continue
		}
		img.Nodes[id] = cborNode{Var: b.level(n), Then: im.ids[b.high(n)], Else: im.ids[b.low(n)]}
	}
	for _, name := range im.names {
		img.Roots = append(img.Roots, cborRoot{Name: name, Id: im.rootid[name]})
	}
	return cborEnc.NewEncoder(w).Encode(img)
}

// LoadBinary rebuilds an engine from the binary format. The key function
// plays the same role as in New. Structural defects in the input fail with
// ErrMalformed.
func LoadBinary[L any](r io.Reader, key func(L) string, opts ...Option) (*MTBDD[L], map[string]Root, error) {
	var img cborImage
	if err := cborDec.NewDecoder(r).Decode(&img); err != nil {
		return nil, nil, fmt.Errorf("decoding image: %v: %w", err, ErrMalformed)
	}
	var zero L
	b, err := New(img.Varnum, zero, key, opts...)
	if err != nil {
		return nil, nil, err
	}
	// every decoded node holds one reference until the roots are attached,
	// so replacing the background cannot reclaim a node still listed in byid
	byid := make([]int, len(img.Nodes))
	for id, cn := range img.Nodes {
		if cn.Var < 0 {
			var v L
			if err := cborDec.Unmarshal(cn.Leaf, &v); err != nil {
				return nil, nil, fmt.Errorf("node %d: decoding leaf: %v: %w", id, err, ErrMalformed)
			}
			n, err := b.makeleaf(v)
			if err != nil {
				return nil, nil, err
			}
			// the decoded value replaces the interned representative, so a
			// key collision with the fresh engine's zero-value background
			// cannot change the bytes of a later StoreBinary
			b.leaves[b.nodes[n].leaf] = v
			byid[id] = b.refi(n)
			continue
		}
		if cn.Then < 0 || cn.Then >= id || cn.Else < 0 || cn.Else >= id {
			return nil, nil, fmt.Errorf("node %d: branch out of range: %w", id, ErrMalformed)
		}
		n, err := b.makenode(cn.Var, byid[cn.Else], byid[cn.Then])
		if err != nil {
			return nil, nil, fmt.Errorf("node %d: %v: %w", id, err, ErrMalformed)
		}
		byid[id] = b.refi(n)
	}
	if img.Background < 0 || img.Background >= len(byid) {
		return nil, nil, fmt.Errorf("background out of range: %w", ErrMalformed)
	}
	b.setbackground(byid[img.Background])
	named := make(map[string]Root, len(img.Roots))
	for _, cr := range img.Roots {
		if cr.Id < 0 || cr.Id >= len(byid) {
			return nil, nil, fmt.Errorf("root %q out of range: %w", cr.Name, ErrMalformed)
		}
		if _, ok := named[cr.Name]; ok {
			return nil, nil, fmt.Errorf("duplicate root %q: %w", cr.Name, ErrMalformed)
		}
		named[cr.Name] = b.attach(b.refi(byid[cr.Id]))
	}
	for _, n := range byid {
		b.derefi(n)
	}
	return b, named, nil
}

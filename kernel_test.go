// Copyright (c) 2026 the libsfta authors
//
// MIT License

package mtbdd

import (
	"errors"
	"strconv"
	"testing"
)

//********************************************************************************************

func TestNew(t *testing.T) {
	if _, err := New(0, 0, strconv.Itoa); err == nil {
		t.Errorf("New with 0 variables: expected error")
	}
	if _, err := New[int](4, 0, nil); err == nil {
		t.Errorf("New with nil key: expected error")
	}
	b, err := New(4, 0, strconv.Itoa)
	if err != nil {
		t.Fatalf("New: unexpected error %s", err)
	}
	if b.Varnum() != 4 {
		t.Errorf("Varnum: expected 4, actual %d", b.Varnum())
	}
	// the only live node of a fresh engine is the background leaf
	if b.Size() != 1 {
		t.Errorf("Size of a fresh engine: expected 1, actual %d", b.Size())
	}
	if b.Background() != 0 {
		t.Errorf("Background: expected 0, actual %d", b.Background())
	}
}

func TestCanonicity(t *testing.T) {
	b, _ := New(4, 0, strconv.Itoa)
	l1, err := b.MakeLeaf(42)
	if err != nil {
		t.Fatalf("MakeLeaf: unexpected error %s", err)
	}
	l2, _ := b.MakeLeaf(42)
	if l1 != l2 {
		t.Errorf("two leaves with equal values should be the same node")
	}
	l3, _ := b.MakeLeaf(43)
	if l1 == l3 {
		t.Errorf("leaves with distinct values should be distinct nodes")
	}
	n1, err := b.MakeInternal(1, l1, l3)
	if err != nil {
		t.Fatalf("MakeInternal: unexpected error %s", err)
	}
	n2, _ := b.MakeInternal(1, l1, l3)
	if n1 != n2 {
		t.Errorf("two internal nodes with equal triples should be the same node")
	}
	// a node whose branches are equal is never materialized
	n3, err := b.MakeInternal(2, l1, l1)
	if err != nil {
		t.Fatalf("MakeInternal: unexpected error %s", err)
	}
	if n3 != l1 {
		t.Errorf("redundant test: expected node %d, actual %d", l1, n3)
	}
}

func TestOrderingViolation(t *testing.T) {
	b, _ := New(4, 0, strconv.Itoa)
	l1, _ := b.MakeLeaf(1)
	l2, _ := b.MakeLeaf(2)
	n1, err := b.MakeInternal(1, l1, l2)
	if err != nil {
		t.Fatalf("MakeInternal: unexpected error %s", err)
	}
	if _, err := b.MakeInternal(1, n1, l2); !errors.Is(err, ErrInvariant) {
		t.Errorf("node at its child's level: expected ErrInvariant, actual %v", err)
	}
	if _, err := b.MakeInternal(3, n1, l2); !errors.Is(err, ErrInvariant) {
		t.Errorf("node below its child's level: expected ErrInvariant, actual %v", err)
	}
	if _, err := b.MakeInternal(4, l1, l2); !errors.Is(err, ErrInvariant) {
		t.Errorf("level out of range: expected ErrInvariant, actual %v", err)
	}
	if strconv.IntSize == 64 {
		// an index that is an exact multiple of 1<<32 must not alias level 0
		if _, err := b.MakeInternal(int(uint64(1)<<32), l1, l2); !errors.Is(err, ErrInvariant) {
			t.Errorf("huge level: expected ErrInvariant, actual %v", err)
		}
	}
	if _, err := b.MakeInternal(0, Node(-1), l2); !errors.Is(err, ErrInvariant) {
		t.Errorf("bad child: expected ErrInvariant, actual %v", err)
	}
}

//********************************************************************************************

func TestReclamation(t *testing.T) {
	b, _ := New(4, 0, strconv.Itoa)
	r := b.CreateRoot()
	a, _ := ParseAssignment("0011")
	if err := b.SetValue(r, a, 42); err != nil {
		t.Fatalf("SetValue: unexpected error %s", err)
	}
	if b.Size() <= 1 {
		t.Fatalf("SetValue should have produced nodes")
	}
	if err := b.EraseRoot(r); err != nil {
		t.Fatalf("EraseRoot: unexpected error %s", err)
	}
	// erasing the only root reclaims every node but the background leaf
	if b.Size() != 1 {
		t.Errorf("Size after erasing the only root: expected 1, actual %d", b.Size())
	}
}

func TestSharedReclamation(t *testing.T) {
	b, _ := New(4, 0, strconv.Itoa)
	r1 := b.CreateRoot()
	a, _ := ParseAssignment("0011")
	if err := b.SetValue(r1, a, 42); err != nil {
		t.Fatalf("SetValue: unexpected error %s", err)
	}
	n, _ := b.Node(r1)
	r2 := b.CreateRoot()
	if err := b.SetRoot(r2, n); err != nil {
		t.Fatalf("SetRoot: unexpected error %s", err)
	}
	size := b.Size()
	if err := b.EraseRoot(r1); err != nil {
		t.Fatalf("EraseRoot: unexpected error %s", err)
	}
	// the subgraph survives through the second root
	if b.Size() != size {
		t.Errorf("Size after erasing one of two roots: expected %d, actual %d", size, b.Size())
	}
	if vs, err := b.GetValue(r2, a); err != nil || len(vs) != 1 || vs[0] != 42 {
		t.Errorf("GetValue through surviving root: expected [42], actual %v (%v)", vs, err)
	}
	if err := b.EraseRoot(r2); err != nil {
		t.Fatalf("EraseRoot: unexpected error %s", err)
	}
	if b.Size() != 1 {
		t.Errorf("Size after erasing both roots: expected 1, actual %d", b.Size())
	}
}

func TestErasedRoot(t *testing.T) {
	b, _ := New(4, 0, strconv.Itoa)
	r1 := b.CreateRoot()
	if err := b.EraseRoot(r1); err != nil {
		t.Fatalf("EraseRoot: unexpected error %s", err)
	}
	if err := b.EraseRoot(r1); !errors.Is(err, ErrErasedRoot) {
		t.Errorf("double EraseRoot: expected ErrErasedRoot, actual %v", err)
	}
	if _, err := b.Node(r1); !errors.Is(err, ErrErasedRoot) {
		t.Errorf("Node on erased root: expected ErrErasedRoot, actual %v", err)
	}
	a := NewAssignment(4)
	if _, err := b.GetValue(r1, a); !errors.Is(err, ErrErasedRoot) {
		t.Errorf("GetValue on erased root: expected ErrErasedRoot, actual %v", err)
	}
	// the slot is recycled but the stale handle keeps failing
	r2 := b.CreateRoot()
	if err := b.SetValue(r1, a, 1); !errors.Is(err, ErrErasedRoot) {
		t.Errorf("SetValue on stale handle of a recycled slot: expected ErrErasedRoot, actual %v", err)
	}
	if _, err := b.Node(r2); err != nil {
		t.Errorf("Node on recycled root: unexpected error %s", err)
	}
}

func TestEngineIndependence(t *testing.T) {
	b1, _ := New(4, 0, strconv.Itoa)
	b2, _ := New(4, 0, strconv.Itoa)
	r1 := b1.CreateRoot()
	a, _ := ParseAssignment("0011")
	if err := b1.SetValue(r1, a, 42); err != nil {
		t.Fatalf("SetValue: unexpected error %s", err)
	}
	if b2.Size() != 1 {
		t.Errorf("mutating one engine should not touch another")
	}
}

func TestSetBackground(t *testing.T) {
	b, _ := New(4, 7, strconv.Itoa)
	r1 := b.CreateRoot()
	if err := b.SetBackground(9); err != nil {
		t.Fatalf("SetBackground: unexpected error %s", err)
	}
	if b.Background() != 9 {
		t.Errorf("Background: expected 9, actual %d", b.Background())
	}
	// roots created before the change keep the old background
	if vs, _ := b.GetValue(r1, NewAssignment(4)); len(vs) != 1 || vs[0] != 7 {
		t.Errorf("existing root: expected [7], actual %v", vs)
	}
	r2 := b.CreateRoot()
	if vs, _ := b.GetValue(r2, NewAssignment(4)); len(vs) != 1 || vs[0] != 9 {
		t.Errorf("fresh root: expected [9], actual %v", vs)
	}
}

func TestNoderesize(t *testing.T) {
	b, err := New(4, 0, strconv.Itoa, Maxnodesize(10))
	if err != nil {
		t.Fatalf("New: unexpected error %s", err)
	}
	// the initial table has 10 slots, one taken by the background leaf
	for i := 1; i <= 9; i++ {
		if _, err := b.MakeLeaf(i); err != nil {
			t.Fatalf("MakeLeaf(%d): unexpected error %s", i, err)
		}
	}
	if _, err := b.MakeLeaf(10); err == nil {
		t.Errorf("node table capped at 10 slots: expected an error")
	}
	b2, _ := New(4, 0, strconv.Itoa)
	for i := 1; i <= 100; i++ {
		if _, err := b2.MakeLeaf(i); err != nil {
			t.Fatalf("MakeLeaf(%d) with resizing: unexpected error %s", i, err)
		}
	}
	if b2.Size() != 101 {
		t.Errorf("Size after 100 leaves: expected 101, actual %d", b2.Size())
	}
}

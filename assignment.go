// Copyright (c) 2026 the libsfta authors
//
// MIT License

package mtbdd

import (
	"fmt"
	"strings"
)

// VarValue is the value of one position of an Assignment. The zero value of
// the type is not a legal position value; assignments built through
// NewAssignment, ParseAssignment or AssignmentFromUint only ever hold Zero,
// One or DontCare.
type VarValue byte

const (
	// Zero constrains a variable to its false branch.
	Zero VarValue = 0x1
	// One constrains a variable to its true branch.
	One VarValue = 0x2
	// DontCare leaves a variable unconstrained; it matches both branches.
	DontCare VarValue = 0x3
)

func (v VarValue) String() string {
	switch v {
	case Zero:
		return "0"
	case One:
		return "1"
	case DontCare:
		return "X"
	}
	return "?"
}

const bitsPerVar = 2
const varsPerByte = 8 / bitsPerVar
const varMask = 0x3

// Assignment is a fixed-width vector of per-variable values drawn from
// {Zero, One, DontCare}, packed two bits per position. It describes a
// (possibly partial) path in a diagram: position i gives the branch to follow
// on variable i, with DontCare matching both branches.
//
// Assignments are totally ordered: positions are compared from the highest
// index down to position 0, with Zero < One < DontCare at each position.
type Assignment struct {
	size int
	vars []byte
}

// NewAssignment returns an assignment of the given width with every position
// set to DontCare.
func NewAssignment(size int) Assignment {
	a := Assignment{size: size, vars: make([]byte, (size+varsPerByte-1)/varsPerByte)}
	for i := 0; i < size; i++ {
		a.put(i, DontCare)
	}
	return a
}

// ParseAssignment builds an assignment from a string over the alphabet
// {'0', '1', 'X'}, where the character at index i gives the value of
// position i.
func ParseAssignment(s string) (Assignment, error) {
	a := NewAssignment(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			a.put(i, Zero)
		case '1':
			a.put(i, One)
		case 'X', 'x':
			a.put(i, DontCare)
		default:
			return Assignment{}, fmt.Errorf("character %q at position %d: %w", s[i], i, ErrAssignment)
		}
	}
	return a, nil
}

// AssignmentFromUint returns the total assignment of the given width where
// position i holds One exactly when bit i of n is set. Enumerating n from 0
// to 2^size-1 enumerates all total assignments in ascending order.
func AssignmentFromUint(n uint64, size int) Assignment {
	a := NewAssignment(size)
	for i := 0; i < size; i++ {
		if n&(1<<uint(i)) != 0 {
			a.put(i, One)
		} else {
			a.put(i, Zero)
		}
	}
	return a
}

func (a Assignment) put(i int, v VarValue) {
	shift := uint(i%varsPerByte) * bitsPerVar
	a.vars[i/varsPerByte] &^= varMask << shift
	a.vars[i/varsPerByte] |= byte(v) << shift
}

// Size returns the width of the assignment.
func (a Assignment) Size() int {
	return a.size
}

// At returns the value at position i. It panics when i is out of range.
func (a Assignment) At(i int) VarValue {
	if i < 0 || i >= a.size {
		panic(fmt.Sprintf("mtbdd: assignment index %d out of range [0..%d)", i, a.size))
	}
	return VarValue((a.vars[i/varsPerByte] >> (uint(i%varsPerByte) * bitsPerVar)) & varMask)
}

// Set stores v at position i.
func (a *Assignment) Set(i int, v VarValue) error {
	if i < 0 || i >= a.size {
		return fmt.Errorf("position %d out of range [0..%d): %w", i, a.size, ErrAssignment)
	}
	if v != Zero && v != One && v != DontCare {
		return fmt.Errorf("bad position value (%d): %w", v, ErrAssignment)
	}
	a.put(i, v)
	return nil
}

// Clone returns a copy of the assignment with its own backing storage.
func (a Assignment) Clone() Assignment {
	res := Assignment{size: a.size, vars: make([]byte, len(a.vars))}
	copy(res.vars, a.vars)
	return res
}

func (a Assignment) String() string {
	var sb strings.Builder
	for i := 0; i < a.size; i++ {
		sb.WriteString(a.At(i).String())
	}
	return sb.String()
}

// rank orders position values as Zero < One < DontCare.
func rank(v VarValue) int {
	switch v {
	case Zero:
		return 0
	case One:
		return 1
	default:
		return 2
	}
}

// Compare returns -1, 0 or 1 when a is smaller than, equal to, or greater
// than o. Assignments of different widths compare by width first.
func (a Assignment) Compare(o Assignment) int {
	if a.size != o.size {
		if a.size < o.size {
			return -1
		}
		return 1
	}
	for i := a.size - 1; i >= 0; i-- {
		ra, ro := rank(a.At(i)), rank(o.At(i))
		if ra != ro {
			if ra < ro {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Eq reports whether the two assignments have the same width and the same
// value at every position.
func (a Assignment) Eq(o Assignment) bool {
	return a.Compare(o) == 0
}

// Increment steps a total assignment to its successor, treating position 0 as
// the least significant. The all-One assignment wraps around to all-Zero. It
// fails on assignments holding a DontCare, leaving the assignment unchanged.
func (a *Assignment) Increment() error {
	for i := 0; i < a.size; i++ {
		if a.At(i) == DontCare {
			return fmt.Errorf("cannot increment a partial assignment: %w", ErrAssignment)
		}
	}
	for i := 0; i < a.size; i++ {
		if a.At(i) == Zero {
			a.put(i, One)
			return nil
		}
		a.put(i, Zero)
	}
	return nil
}

// wellformed reports whether every position holds a legal value. The zero
// value of Assignment, and assignments with manually corrupted storage, are
// not well formed.
func (a Assignment) wellformed() bool {
	for i := 0; i < a.size; i++ {
		switch a.At(i) {
		case Zero, One, DontCare:
		default:
			return false
		}
	}
	return true
}

// Copyright (c) 2026 the libsfta authors
//
// MIT License

package mtbdd

import (
	"errors"
)

// _MAXVAR is the maximal number of variables in a diagram. Variable levels
// are encoded on int32 and the value _MAXVAR itself is reserved for the
// level of leaves, which must compare above every variable.
const _MAXVAR int32 = 0x1FFFFF

// _LEAFLEVEL is the level stored on leaf nodes. It is strictly greater than
// any admissible variable level, so the min-level rule in the apply family
// treats leaves as constant along every variable.
const _LEAFLEVEL int32 = _MAXVAR

// _DEFAULTMAXNODEINC is the default value for the maximal increase in the
// number of nodes during a resize. It is approx. one million nodes.
const _DEFAULTMAXNODEINC int = 1 << 20

// ErrInvariant reports an attempt to build an internal node whose variable
// level is not strictly below the levels of both children, or a variable
// renaming that would produce such a node. The node table is left unchanged.
var ErrInvariant = errors.New("variable ordering invariant violation")

// ErrAssignment reports an assignment whose width does not match the number
// of variables of the engine, or one holding an unrecognized position value.
var ErrAssignment = errors.New("invalid variable assignment")

// ErrErasedRoot reports an operation on a root handle after EraseRoot.
var ErrErasedRoot = errors.New("use of erased root")

// ErrMalformed reports a structural error found while decoding a stored
// diagram: unknown record tag, forward reference, or truncated stream.
var ErrMalformed = errors.New("malformed diagram encoding")

var errMemory = errors.New("unable to resize node table")

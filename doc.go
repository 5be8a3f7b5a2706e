// Copyright (c) 2026 the libsfta authors
//
// MIT License

/*
Package mtbdd defines a concrete type for shared Multi-Terminal Binary
Decision Diagrams (MTBDD), a data structure used to efficiently represent
total functions from Boolean vectors of a fixed width to values of an
arbitrary leaf type.

# Basics

Each engine has a fixed number of variables, Varnum, declared when it is
initialized (using the function New) and each variable is represented by an
(integer) index in the interval [0..Varnum), called a level. The library
supports the creation of multiple engines with possibly different numbers of
variables and leaf types; engines are fully independent and never share
nodes.

All diagrams managed by one engine live in a single shared node table.
Internal nodes are canonical, meaning that two nodes with the same level and
the same branches are physically the same vertex, and likewise two leaves
carrying the same value (as decided by the key function given to New) are
the same vertex. On every path from a root to a leaf the levels of the
traversed nodes are strictly increasing, and a node whose two branches are
equal is never materialized. Together these rules make structural equality
of diagrams a simple index comparison.

# Roots and memory management

User code manipulates diagrams through Root handles created with CreateRoot
and released with EraseRoot. The engine counts references on every node, one
per parent edge plus one per root or explicit Ref, and reclaims a node the
moment its count drops to zero. There is no separate garbage collection
pass: erasing the last root of a subgraph immediately returns its nodes to
the free list. Handles carry a generation tag, so using a root after it has
been erased is detected and reported with ErrErasedRoot rather than silently
touching recycled storage.

Assignments and values are read and written with SetValue, GetValue and
AllValues, using fixed-width assignments over the alphabet {0, 1, X} where X
leaves a variable unconstrained. Diagrams are combined pointwise with the
Apply family of operations, reshaped with RenameVariables and TrimVariables,
and serialized with Store and StoreBinary in deterministic text and binary
formats.
*/
package mtbdd

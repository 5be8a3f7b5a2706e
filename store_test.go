// Copyright (c) 2026 the libsfta authors
//
// MIT License

package mtbdd

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func encint(v int) (string, error) { return strconv.Itoa(v), nil }
func decint(s string) (int, error) { return strconv.Atoi(s) }

//********************************************************************************************

func TestStoreLoad(t *testing.T) {
	b, err := New(4, 0, strconv.Itoa)
	require.NoError(t, err)
	named := map[string]Root{
		"mod 5": intdiagram(t, b, func(n uint64) int { return int(n % 5) }),
		"mod 3": intdiagram(t, b, func(n uint64) int { return int(n % 3) }),
	}
	var buf bytes.Buffer
	require.NoError(t, b.Store(&buf, named, encint))

	c, loaded, err := Load(strings.NewReader(buf.String()), strconv.Itoa, decint)
	require.NoError(t, err)
	require.Equal(t, 4, c.Varnum())
	require.Equal(t, 0, c.Background())
	require.Len(t, loaded, 2)
	for n := uint64(0); n < 16; n++ {
		require.Equal(t, int(n%5), valueAt(t, c, loaded["mod 5"], n))
		require.Equal(t, int(n%3), valueAt(t, c, loaded["mod 3"], n))
	}
	// node sharing survives the round trip
	require.Equal(t, b.Size(), c.Size())
}

func TestStoreDeterministic(t *testing.T) {
	b, _ := New(4, 0, strconv.Itoa)
	named := map[string]Root{
		"b": intdiagram(t, b, func(n uint64) int { return int(n % 3) }),
		"a": intdiagram(t, b, func(n uint64) int { return int(n % 5) }),
	}
	var buf1, buf2 bytes.Buffer
	require.NoError(t, b.Store(&buf1, named, encint))
	require.NoError(t, b.Store(&buf2, named, encint))
	require.Equal(t, buf1.String(), buf2.String())

	// a reloaded engine stores the same bytes
	c, loaded, err := Load(strings.NewReader(buf1.String()), strconv.Itoa, decint)
	require.NoError(t, err)
	var buf3 bytes.Buffer
	require.NoError(t, c.Store(&buf3, loaded, encint))
	require.Equal(t, buf1.String(), buf3.String())
}

func TestLoadMalformed(t *testing.T) {
	var malformedTests = []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"bad header", "bdd 4\n"},
		{"unknown tag", "mtbdd 4\nFOO 0\n"},
		{"forward reference", "mtbdd 4\nLEAF \"1\"\nINTERNAL 0 2 0\nBACKGROUND 0\n"},
		{"self reference", "mtbdd 4\nLEAF \"1\"\nINTERNAL 0 1 0\nBACKGROUND 0\n"},
		{"missing background", "mtbdd 4\nLEAF \"1\"\n"},
		{"undefined background", "mtbdd 4\nLEAF \"1\"\nBACKGROUND 3\n"},
		{"undefined root", "mtbdd 4\nLEAF \"1\"\nBACKGROUND 0\nROOT 4 \"a\"\n"},
		{"bad leaf quoting", "mtbdd 4\nLEAF oops\nBACKGROUND 0\n"},
		{"ordering violation", "mtbdd 4\nLEAF \"1\"\nLEAF \"2\"\nINTERNAL 1 0 1\nINTERNAL 1 2 0\nBACKGROUND 0\n"},
	}
	for _, tt := range malformedTests {
		_, _, err := Load(strings.NewReader(tt.input), strconv.Itoa, decint)
		require.ErrorIs(t, err, ErrMalformed, tt.name)
	}
	// decoding errors from the leaf codec are passed through
	_, _, err := Load(strings.NewReader("mtbdd 4\nLEAF \"zz\"\nBACKGROUND 0\n"), strconv.Itoa, decint)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrMalformed)
}

func TestLoadBackgroundCollision(t *testing.T) {
	// the first leaf shares its key with the fresh engine's zero-value
	// background; pointing the background elsewhere must not reclaim it
	// while a root record still refers to its id
	input := "mtbdd 4\nLEAF \"0\"\nLEAF \"5\"\nBACKGROUND 1\nROOT 0 \"a\"\n"
	b, named, err := Load(strings.NewReader(input), strconv.Itoa, decint)
	require.NoError(t, err)
	require.Equal(t, 5, b.Background())
	vs, err := b.GetValue(named["a"], NewAssignment(4))
	require.NoError(t, err)
	require.Equal(t, []int{0}, vs)

	// same shape with an extra leaf allocated between the background swap
	// and the root record
	input = "mtbdd 4\nLEAF \"0\"\nLEAF \"5\"\nLEAF \"99\"\nBACKGROUND 1\nROOT 0 \"a\"\n"
	b, named, err = Load(strings.NewReader(input), strconv.Itoa, decint)
	require.NoError(t, err)
	vs, err = b.GetValue(named["a"], NewAssignment(4))
	require.NoError(t, err)
	require.Equal(t, []int{0}, vs)
}

func TestLoadBinaryBackgroundCollision(t *testing.T) {
	b, _ := New(4, 5, strconv.Itoa)
	r := b.CreateRoot()
	n, err := b.MakeLeaf(0)
	require.NoError(t, err)
	require.NoError(t, b.SetRoot(r, n))
	var buf bytes.Buffer
	require.NoError(t, b.StoreBinary(&buf, map[string]Root{"a": r}))

	c, loaded, err := LoadBinary[int](bytes.NewReader(buf.Bytes()), strconv.Itoa)
	require.NoError(t, err)
	require.Equal(t, 5, c.Background())
	vs, err := c.GetValue(loaded["a"], NewAssignment(4))
	require.NoError(t, err)
	require.Equal(t, []int{0}, vs)
}

//********************************************************************************************

func TestStoreLoadBinary(t *testing.T) {
	b, err := New(4, uset{}, usetkey)
	require.NoError(t, err)
	r := b.CreateRoot()
	for _, tc := range standardCases {
		a, _ := ParseAssignment(tc.path)
		require.NoError(t, b.SetValue(r, a, tc.value))
	}
	named := map[string]Root{"cases": r}
	var buf bytes.Buffer
	require.NoError(t, b.StoreBinary(&buf, named))

	c, loaded, err := LoadBinary[uset](bytes.NewReader(buf.Bytes()), usetkey)
	require.NoError(t, err)
	require.Equal(t, b.Size(), c.Size())
	// the decoded value wins over the zero-value representative interned by
	// New under the same key, nil and empty sets encoding differently
	require.Equal(t, uset{}, c.Background())
	for _, tc := range standardCases {
		a, _ := ParseAssignment(tc.path)
		vs, err := c.GetValue(loaded["cases"], a)
		require.NoError(t, err)
		require.Equal(t, []uset{tc.value}, vs)
	}
	// the binary encoding is deterministic as well
	var buf2 bytes.Buffer
	require.NoError(t, c.StoreBinary(&buf2, loaded))
	require.Equal(t, buf.Bytes(), buf2.Bytes())
}

func TestLoadBinaryMalformed(t *testing.T) {
	_, _, err := LoadBinary[int](strings.NewReader("not cbor at all"), strconv.Itoa)
	require.ErrorIs(t, err, ErrMalformed)
	_, _, err = LoadBinary[int](strings.NewReader(""), strconv.Itoa)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestStoreErasedRoot(t *testing.T) {
	b, _ := New(4, 0, strconv.Itoa)
	r := b.CreateRoot()
	require.NoError(t, b.EraseRoot(r))
	var buf bytes.Buffer
	err := b.Store(&buf, map[string]Root{"gone": r}, encint)
	require.ErrorIs(t, err, ErrErasedRoot)
	err = b.StoreBinary(&buf, map[string]Root{"gone": r})
	require.ErrorIs(t, err, ErrErasedRoot)
}

//********************************************************************************************

func TestDot(t *testing.T) {
	b, _ := New(4, 0, strconv.Itoa)
	named := map[string]Root{"mod 3": intdiagram(t, b, func(n uint64) int { return int(n % 3) })}
	var buf bytes.Buffer
	require.NoError(t, b.Dot(&buf, named, encint))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "digraph G {"))
	require.Contains(t, out, "shape=box")
	require.Contains(t, out, "\"mod 3\" ->")
	var buf2 bytes.Buffer
	require.NoError(t, b.Dot(&buf2, named, encint))
	require.Equal(t, out, buf2.String())
}

func TestStats(t *testing.T) {
	b, _ := New(4, 0, strconv.Itoa)
	r := b.CreateRoot()
	a, _ := ParseAssignment("0011")
	require.NoError(t, b.SetValue(r, a, 42))
	s := b.Stats()
	require.Contains(t, s, "Varnum:     4")
	require.Contains(t, s, "Roots:      1")
}

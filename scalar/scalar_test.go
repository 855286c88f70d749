// Copyright 2021 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package scalar

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUUIDCanonicalString(t *testing.T) {
	var u UUID
	for i := range u {
		u[i] = byte(i)
	}
	require.Equal(t, "0f0e0d0c-0b0a-0908-0706-050403020100", u.String())
}

func TestUUIDStringReversesGeneratedFixtureBytes(t *testing.T) {
	// google/uuid generates the fixture bytes here; the on-disk UUID
	// type still does its own little-end-first rendering (spec.md §3),
	// since google/uuid's own String() assumes standard RFC 4122 byte
	// order, not this host's reversed layout, so the two must disagree
	// on a non-palindromic value.
	fixture := uuid.New()
	var u UUID
	copy(u[:], fixture[:])
	require.NotEqual(t, fixture.String(), u.String())

	var reversed UUID
	for i := 0; i < 16; i++ {
		reversed[i] = fixture[15-i]
	}
	require.Equal(t, fixture.String(), reversed.String())
}

func TestIPv4RendersReversedOctets(t *testing.T) {
	require.Equal(t, "4.3.2.1", FormatIPv4([4]byte{0x01, 0x02, 0x03, 0x04}))
}

func TestDateTimeEqualIgnoresReservedBits(t *testing.T) {
	a := NewDateTime(2024, 3, 15, 10, 30, 0, 500)
	b := a | 0x1FFFF // set every reserved bit
	require.True(t, a.Equal(b))
	require.Equal(t, a.Year(), b.Year())
}

func TestDateEqualIgnoresReservedBits(t *testing.T) {
	a := NewDate(2024, 3, 15)
	b := a | 0xFFF
	require.True(t, a.Equal(b))
}

func TestCharNRoundTripShortAndTruncated(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a", "a"},
		{"hello", "hello"},
		{"exactly8", "exactly8"},
		{"this string is far too long for an 8 byte buffer", "this str"},
	}
	for _, tt := range tests {
		c := NewChar8(tt.in)
		require.Equal(t, tt.want, c.String())
	}
}

func TestChar1IsNotReversed(t *testing.T) {
	c := NewChar1("z")
	require.Equal(t, byte('z'), c[0])
	require.Equal(t, "z", c.String())
}

func TestCharNOrderingIsLexicographic(t *testing.T) {
	a := NewChar8("apple")
	b := NewChar8("banana")
	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, 1, b.Compare(a))
	require.Equal(t, 0, a.Compare(NewChar8("apple")))
}

func TestLookupUnknownType(t *testing.T) {
	_, ok := Lookup(TypeTag(0xDEADBEEF))
	require.False(t, ok)
}

func TestLookupKnownType(t *testing.T) {
	info, ok := Lookup(TypeInt)
	require.True(t, ok)
	require.Equal(t, 4, info.Width)
	require.False(t, info.IsVarWidth)
}

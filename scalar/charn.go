// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package scalar

// Package note: the reference CharN<W> is a C++ template; per
// spec.md §9 a language without templates should expose one
// concrete, fixed-width type per W. The widths matching the host's
// CHAR column storage are 1, 2, 4, 8, 16, 32, 64, 128 and 256 bytes.
// Each is a plain byte array; the shared (un)packing and comparison
// logic lives in the package-level helpers below so the nine types
// stay one-liners, the way ImageDOSHeader's uint16 fields all share
// ReadUint16 in the teacher.

type Char1 [1]byte
type Char2 [2]byte
type Char4 [4]byte
type Char8 [8]byte
type Char16 [16]byte
type Char32 [32]byte
type Char64 [64]byte
type Char128 [128]byte
type Char256 [256]byte

// charNPack reverses s (truncated/zero-padded to len(buf)) into buf,
// matching the host's storage layout where character 0 lives in the
// last byte. Width 1 is a documented special case (spec.md §9 Open
// Question 4): a single byte is stored as-is, with no reversal.
func charNPack(buf []byte, s string) {
	b := []byte(s)
	if len(b) > len(buf) {
		b = b[:len(buf)]
	}
	for i := range buf {
		buf[i] = 0
	}
	if len(buf) == 1 {
		if len(b) > 0 {
			buf[0] = b[0]
		}
		return
	}
	for i, c := range b {
		buf[len(buf)-1-i] = c
	}
}

// charNUnpack renders buf back to a string. If byte 0 is zero, the
// buffer is treated as a NUL-terminated C string with trailing zeros
// suppressed; otherwise it is exactly len(buf) characters.
func charNUnpack(buf []byte) string {
	if len(buf) == 1 {
		if buf[0] == 0 {
			return ""
		}
		return string(buf[0])
	}

	if buf[0] == 0 {
		// buf[0] holds the last character slot; a zero there means
		// the string is shorter than len(buf), and the zero run sits
		// at the LOW indices (the reversed image of a C string's
		// trailing NUL padding). Find where the real characters
		// start and reverse just that tail back into string order.
		start := 0
		for start < len(buf) && buf[start] == 0 {
			start++
		}
		out := make([]byte, len(buf)-start)
		for i := range out {
			out[i] = buf[len(buf)-1-i]
		}
		return string(out)
	}

	out := make([]byte, len(buf))
	for i := range buf {
		out[i] = buf[len(buf)-1-i]
	}
	return string(out)
}

// charNCompare implements lexicographic character comparison by
// treating the reversed buffer as a little-endian multi-byte integer
// and comparing it the way a native integer compare would: from the
// most significant byte down. Because character 0 is stored at the
// highest index (buf[W-1]), that byte is the integer's most
// significant byte, so walking from the top index down compares
// character 0 first, then character 1, and so on — lexicographic
// order on the original string (spec.md §3/§9: "comparing the
// native-endian integer(s) the buffer overlays"; for W>8 the same
// walk also realizes "compared big-word-first", since the word
// holding the higher byte indices holds the earlier characters).
func charNCompare(a, b []byte) int {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func NewChar1(s string) (c Char1)     { charNPack(c[:], s); return }
func NewChar2(s string) (c Char2)     { charNPack(c[:], s); return }
func NewChar4(s string) (c Char4)     { charNPack(c[:], s); return }
func NewChar8(s string) (c Char8)     { charNPack(c[:], s); return }
func NewChar16(s string) (c Char16)   { charNPack(c[:], s); return }
func NewChar32(s string) (c Char32)   { charNPack(c[:], s); return }
func NewChar64(s string) (c Char64)   { charNPack(c[:], s); return }
func NewChar128(s string) (c Char128) { charNPack(c[:], s); return }
func NewChar256(s string) (c Char256) { charNPack(c[:], s); return }

func (c Char1) String() string   { return charNUnpack(c[:]) }
func (c Char2) String() string   { return charNUnpack(c[:]) }
func (c Char4) String() string   { return charNUnpack(c[:]) }
func (c Char8) String() string   { return charNUnpack(c[:]) }
func (c Char16) String() string  { return charNUnpack(c[:]) }
func (c Char32) String() string  { return charNUnpack(c[:]) }
func (c Char64) String() string  { return charNUnpack(c[:]) }
func (c Char128) String() string { return charNUnpack(c[:]) }
func (c Char256) String() string { return charNUnpack(c[:]) }

func (c Char1) Compare(o Char1) int     { return charNCompare(c[:], o[:]) }
func (c Char2) Compare(o Char2) int     { return charNCompare(c[:], o[:]) }
func (c Char4) Compare(o Char4) int     { return charNCompare(c[:], o[:]) }
func (c Char8) Compare(o Char8) int     { return charNCompare(c[:], o[:]) }
func (c Char16) Compare(o Char16) int   { return charNCompare(c[:], o[:]) }
func (c Char32) Compare(o Char32) int   { return charNCompare(c[:], o[:]) }
func (c Char64) Compare(o Char64) int   { return charNCompare(c[:], o[:]) }
func (c Char128) Compare(o Char128) int { return charNCompare(c[:], o[:]) }
func (c Char256) Compare(o Char256) int { return charNCompare(c[:], o[:]) }

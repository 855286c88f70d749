// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package codec implements the control file's wire encoding: a
// length-prefixed scheme for strings, byte blobs, fixed-width
// vectors, and ordered string-keyed maps, layered on top of
// mmapfile.MappedFile's cursor. It is the Go analogue of the
// structUnpack/ReadUint32 family in the teacher's helper.go, widened
// from "read one fixed struct at a fixed offset" to "stream a
// sequence of variable-length values".
package codec

import (
	"encoding/binary"
	"sort"

	"github.com/kineticadb/kinetica-proc-sdk-go/mmapfile"
)

// Cursor is the subset of MappedFile the codec needs. Defined as an
// interface so codec can be unit tested against something other than
// a real mapping if ever needed, though production callers always
// pass a *mmapfile.MappedFile.
type Cursor interface {
	Read(buf []byte) error
	Write(buf []byte) error
}

var _ Cursor = (*mmapfile.MappedFile)(nil)

// ReadUint64 reads a raw little-endian u64 and advances the cursor.
func ReadUint64(c Cursor) (uint64, error) {
	var buf [8]byte
	if err := c.Read(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// WriteUint64 writes v as a raw little-endian u64.
func WriteUint64(c Cursor, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return c.Write(buf[:])
}

// ReadBytes reads a u64 length prefix followed by that many raw
// bytes.
func ReadBytes(c Cursor) ([]byte, error) {
	n, err := ReadUint64(c)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if n > 0 {
		if err := c.Read(buf); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// WriteBytes writes a u64 length prefix followed by b.
func WriteBytes(c Cursor, b []byte) error {
	if err := WriteUint64(c, uint64(len(b))); err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	return c.Write(b)
}

// ReadString reads a u64 length prefix followed by that many UTF-8
// bytes (no NUL terminator, per spec.md §4.B).
func ReadString(c Cursor) (string, error) {
	b, err := ReadBytes(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteString writes s as a u64 length prefix followed by its bytes.
func WriteString(c Cursor, s string) error {
	return WriteBytes(c, []byte(s))
}

// ReadStringMap reads a u64 count followed by that many (string,
// string) pairs into a fresh map. Per spec.md §4.B, reading into a
// destination must replace rather than merge — ReadStringMap always
// allocates a new map rather than accepting one to mutate, so callers
// that need "replace" semantics on a reused variable simply reassign
// the returned map (see proc.Open's double requestInfo read).
func ReadStringMap(c Cursor) (map[string]string, error) {
	n, err := ReadUint64(c)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, n)
	for i := uint64(0); i < n; i++ {
		k, err := ReadString(c)
		if err != nil {
			return nil, err
		}
		v, err := ReadString(c)
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
	return m, nil
}

// WriteStringMap writes m as a u64 count followed by (string, string)
// pairs in sorted-by-key order, since the host expects canonical
// replay (spec.md §4.B).
func WriteStringMap(c Cursor, m map[string]string) error {
	keys := sortedKeys(m)
	if err := WriteUint64(c, uint64(len(keys))); err != nil {
		return err
	}
	for _, k := range keys {
		if err := WriteString(c, k); err != nil {
			return err
		}
		if err := WriteString(c, m[k]); err != nil {
			return err
		}
	}
	return nil
}

// ReadBytesMap reads a u64 count followed by that many (string,
// bytes) pairs into a fresh map.
func ReadBytesMap(c Cursor) (map[string][]byte, error) {
	n, err := ReadUint64(c)
	if err != nil {
		return nil, err
	}
	m := make(map[string][]byte, n)
	for i := uint64(0); i < n; i++ {
		k, err := ReadString(c)
		if err != nil {
			return nil, err
		}
		v, err := ReadBytes(c)
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
	return m, nil
}

// WriteBytesMap writes m sorted by key, mirroring WriteStringMap.
func WriteBytesMap(c Cursor, m map[string][]byte) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if err := WriteUint64(c, uint64(len(keys))); err != nil {
		return err
	}
	for _, k := range keys {
		if err := WriteString(c, k); err != nil {
			return err
		}
		if err := WriteBytes(c, m[k]); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

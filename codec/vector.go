// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package codec

import (
	"encoding/binary"
	"math"
)

// FixedWidth is the set of scalar wire types a Vector may hold.
// Matches the numeric primitives §4.D type-width table assigns a
// native Go representation to. Deliberately exact types, not
// approximate (~) element types: decode/encode dispatch via a type
// switch on the element's dynamic type, which only matches exact
// types, so a named type built on e.g. int32 would silently fall
// through to the zero-value default below.
type FixedWidth interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// ReadVector reads a u64 count followed by count fixed-width elements
// of T, little-endian.
func ReadVector[T FixedWidth](c Cursor) ([]T, error) {
	n, err := ReadUint64(c)
	if err != nil {
		return nil, err
	}
	out := make([]T, n)
	var zero T
	width := sizeOf(zero)
	buf := make([]byte, width)
	for i := range out {
		if err := c.Read(buf); err != nil {
			return nil, err
		}
		out[i] = decode[T](buf)
	}
	return out, nil
}

// WriteVector writes a u64 count followed by the elements of v,
// little-endian.
func WriteVector[T FixedWidth](c Cursor, v []T) error {
	if err := WriteUint64(c, uint64(len(v))); err != nil {
		return err
	}
	var zero T
	width := sizeOf(zero)
	buf := make([]byte, width)
	for _, e := range v {
		encode(buf, e)
		if err := c.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

func sizeOf(v any) int {
	switch v.(type) {
	case int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32, float32:
		return 4
	default:
		return 8
	}
}

func decode[T FixedWidth](buf []byte) T {
	var zero T
	switch any(zero).(type) {
	case int8:
		return T(int8(buf[0]))
	case uint8:
		return T(buf[0])
	case int16:
		return T(int16(binary.LittleEndian.Uint16(buf)))
	case uint16:
		return T(binary.LittleEndian.Uint16(buf))
	case int32:
		return T(int32(binary.LittleEndian.Uint32(buf)))
	case uint32:
		return T(binary.LittleEndian.Uint32(buf))
	case float32:
		bits := binary.LittleEndian.Uint32(buf)
		return T(math.Float32frombits(bits))
	case int64:
		return T(int64(binary.LittleEndian.Uint64(buf)))
	case uint64:
		return T(binary.LittleEndian.Uint64(buf))
	case float64:
		bits := binary.LittleEndian.Uint64(buf)
		return T(math.Float64frombits(bits))
	default:
		return zero
	}
}

func encode[T FixedWidth](buf []byte, v T) {
	switch val := any(v).(type) {
	case int8:
		buf[0] = byte(val)
	case uint8:
		buf[0] = val
	case int16:
		binary.LittleEndian.PutUint16(buf, uint16(val))
	case uint16:
		binary.LittleEndian.PutUint16(buf, val)
	case int32:
		binary.LittleEndian.PutUint32(buf, uint32(val))
	case uint32:
		binary.LittleEndian.PutUint32(buf, val)
	case float32:
		binary.LittleEndian.PutUint32(buf, math.Float32bits(val))
	case int64:
		binary.LittleEndian.PutUint64(buf, uint64(val))
	case uint64:
		binary.LittleEndian.PutUint64(buf, val)
	case float64:
		binary.LittleEndian.PutUint64(buf, math.Float64bits(val))
	}
}

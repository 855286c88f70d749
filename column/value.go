// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package column

import (
	"github.com/kineticadb/kinetica-proc-sdk-go/scalar"
)

// Kind identifies which field of Value is populated, standing in for
// the sum type the spec's Open Question 9 leaves to the host
// language's discretion. A tagged struct was chosen over an `any` so
// callers doing generic column processing switch on a Kind constant
// rather than on a type assertion that fails silently on a typo.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint64
	KindFloat32
	KindFloat64
	KindDate
	KindTime
	KindDateTime
	KindIPv4
	KindUUID
	KindBytes
	KindString
)

// Value is a single decoded column element, tagged by Kind. Exactly
// one field matching Kind is meaningful; the rest are zero.
type Value struct {
	Kind Kind

	Bool     bool
	Int8     int8
	Int16    int16
	Int32    int32
	Int64    int64
	Uint64   uint64
	Float32  float32
	Float64  float64
	Date     scalar.Date
	Time     scalar.Time
	DateTime scalar.DateTime
	IPv4     [4]byte
	UUID     scalar.UUID
	Bytes    []byte
	String   string
}

// At decodes element i into a tagged Value, dispatching on the
// column's type tag the way typeinfo.go's typeTable dispatches on tag
// for rendering.
func (c *Column) At(i int64) (Value, error) {
	isNull, err := c.IsNull(i)
	if err != nil {
		return Value{}, err
	}
	if isNull {
		return Value{Kind: KindNull}, nil
	}

	switch c.tag {
	case scalar.TypeBoolean:
		v, err := c.GetBool(i)
		return Value{Kind: KindBool, Bool: v}, err
	case scalar.TypeInt8:
		v, err := c.GetInt8(i)
		return Value{Kind: KindInt8, Int8: v}, err
	case scalar.TypeInt16:
		v, err := c.GetInt16(i)
		return Value{Kind: KindInt16, Int16: v}, err
	case scalar.TypeInt:
		v, err := c.GetInt32(i)
		return Value{Kind: KindInt32, Int32: v}, err
	case scalar.TypeLong:
		v, err := c.GetInt64(i)
		return Value{Kind: KindInt64, Int64: v}, err
	case scalar.TypeULong:
		v, err := c.GetUint64(i)
		return Value{Kind: KindUint64, Uint64: v}, err
	case scalar.TypeFloat:
		v, err := c.GetFloat32(i)
		return Value{Kind: KindFloat32, Float32: v}, err
	case scalar.TypeDouble:
		v, err := c.GetFloat64(i)
		return Value{Kind: KindFloat64, Float64: v}, err
	case scalar.TypeDate:
		v, err := c.GetDate(i)
		return Value{Kind: KindDate, Date: v}, err
	case scalar.TypeTime:
		v, err := c.GetTime(i)
		return Value{Kind: KindTime, Time: v}, err
	case scalar.TypeDateTime, scalar.TypeTimestamp:
		v, err := c.GetDateTime(i)
		return Value{Kind: KindDateTime, DateTime: v}, err
	case scalar.TypeIPv4:
		v, err := c.GetIPv4(i)
		return Value{Kind: KindIPv4, IPv4: v}, err
	case scalar.TypeUUID:
		v, err := c.GetUUID(i)
		return Value{Kind: KindUUID, UUID: v}, err
	case scalar.TypeBytes:
		v, err := c.GetBytes(i)
		return Value{Kind: KindBytes, Bytes: v}, err
	case scalar.TypeString:
		v, err := c.GetString(i)
		return Value{Kind: KindString, String: v}, err
	default:
		s, err := c.ToString(i)
		return Value{Kind: KindString, String: s}, err
	}
}

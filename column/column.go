// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package column implements the columnar storage contract of
// spec.md §4.D/§4.E: a Column owns up to three mapped regions (a
// fixed-width payload, an optional null bitmap, and an optional
// variable-length payload) and exposes typed, bounds-checked
// accessors over them. The bounds-checked "compute an offset, check
// it against the mapping size, slice" shape is the same one
// section.go's Section.Data uses to carve a byte range out of a PE
// section, generalized here from "one contiguous region" to "N
// fixed-width elements, each independently addressable".
package column

import (
	"encoding/binary"
	"math"

	"github.com/kineticadb/kinetica-proc-sdk-go/mmapfile"
	"github.com/kineticadb/kinetica-proc-sdk-go/scalar"
)

// Column is a named, typed, length-N vector of values backed by
// memory-mapped files.
type Column struct {
	name string
	tag  scalar.TypeTag
	info scalar.TypeInfo

	nullable bool
	varWidth bool
	writable bool

	size int64 // logical element count

	data    *mmapfile.MappedFile
	nulls   *mmapfile.MappedFile // nil when !nullable
	varData *mmapfile.MappedFile // nil when !varWidth
}

// Open constructs a Column from a decoded column header: the name and
// type tag read directly off the control file cursor, and the three
// possibly-empty paths it references. Each non-empty path is mapped
// with the writability the caller requests (false for inputs, true
// for outputs), per spec.md §4.D.
func Open(name string, tag scalar.TypeTag, dataPath, nullsPath, varDataPath string, writable bool) (*Column, error) {
	info, ok := scalar.Lookup(tag)
	if !ok {
		return nil, scalar.ErrUnknownType
	}

	c := &Column{
		name:     name,
		tag:      tag,
		info:     info,
		nullable: nullsPath != "",
		varWidth: varDataPath != "",
		writable: writable,
	}

	if dataPath != "" {
		mf, err := mmapfile.Map(dataPath, writable, nil)
		if err != nil {
			return nil, err
		}
		c.data = mf
		c.size = mf.Size() / int64(info.Width)
	}

	if c.nullable {
		mf, err := mmapfile.Map(nullsPath, writable, nil)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.nulls = mf
	}

	if c.varWidth {
		mf, err := mmapfile.Map(varDataPath, writable, nil)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.varData = mf
	}

	return c, nil
}

// Close releases every mapping the column owns. Safe to call more
// than once.
func (c *Column) Close() error {
	var firstErr error
	for _, mf := range []*mmapfile.MappedFile{c.data, c.nulls, c.varData} {
		if mf == nil {
			continue
		}
		if err := mf.Unmap(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *Column) Name() string          { return c.name }
func (c *Column) Type() scalar.TypeTag  { return c.tag }
func (c *Column) Width() int            { return c.info.Width }
func (c *Column) Nullable() bool        { return c.nullable }
func (c *Column) VarWidth() bool        { return c.varWidth }
func (c *Column) Size() int64           { return c.size }

// IsNull reports whether element i is null. Non-nullable columns
// never report null (spec.md §4.D).
func (c *Column) IsNull(i int64) (bool, error) {
	if i < 0 || i >= c.size {
		return false, ErrOutOfRange
	}
	if !c.nullable {
		return false, nil
	}
	b, err := c.nulls.ReadAt(i, 1)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

// rawElement returns the fixed-width slice for element i.
func (c *Column) rawElement(i int64) ([]byte, error) {
	if i < 0 || i >= c.size {
		return nil, ErrOutOfRange
	}
	return c.data.ReadAt(i*int64(c.info.Width), int64(c.info.Width))
}

// varSlice returns the raw variable payload for element i, including
// a trailing NUL for STRING columns (the caller strips it).
func (c *Column) varSlice(i int64) ([]byte, error) {
	raw, err := c.rawElement(i)
	if err != nil {
		return nil, err
	}
	start := int64(binary.LittleEndian.Uint64(raw))

	var end int64
	if i+1 < c.size {
		next, err := c.rawElement(i + 1)
		if err != nil {
			return nil, err
		}
		end = int64(binary.LittleEndian.Uint64(next))
	} else {
		end = c.varData.Size()
	}

	if end < start {
		return nil, ErrOutOfRange
	}
	return c.varData.ReadAt(start, end-start)
}

// Raw returns the raw fixed-width bytes for element i, suitable for
// copying verbatim into an OutputColumn of the same type (e.g. an
// echo proc).
func (c *Column) Raw(i int64) ([]byte, error) {
	return c.rawElement(i)
}

// GetBytes returns the raw payload bytes for a BYTES element.
func (c *Column) GetBytes(i int64) ([]byte, error) {
	return c.varSlice(i)
}

// GetString returns the payload for a STRING element with its
// trailing NUL stripped (spec.md §3: "STRING payloads include a
// trailing NUL byte not reported in the logical string length").
func (c *Column) GetString(i int64) (string, error) {
	raw, err := c.varSlice(i)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", nil
	}
	return string(raw[:len(raw)-1]), nil
}

func (c *Column) GetBool(i int64) (bool, error) {
	raw, err := c.rawElement(i)
	if err != nil {
		return false, err
	}
	return raw[0] != 0, nil
}

func (c *Column) GetInt8(i int64) (int8, error) {
	raw, err := c.rawElement(i)
	if err != nil {
		return 0, err
	}
	return int8(raw[0]), nil
}

func (c *Column) GetInt16(i int64) (int16, error) {
	raw, err := c.rawElement(i)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(raw)), nil
}

func (c *Column) GetInt32(i int64) (int32, error) {
	raw, err := c.rawElement(i)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(raw)), nil
}

func (c *Column) GetInt64(i int64) (int64, error) {
	raw, err := c.rawElement(i)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(raw)), nil
}

func (c *Column) GetUint64(i int64) (uint64, error) {
	raw, err := c.rawElement(i)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(raw), nil
}

func (c *Column) GetFloat32(i int64) (float32, error) {
	raw, err := c.rawElement(i)
	if err != nil {
		return 0, err
	}
	bits := binary.LittleEndian.Uint32(raw)
	return math.Float32frombits(bits), nil
}

func (c *Column) GetFloat64(i int64) (float64, error) {
	raw, err := c.rawElement(i)
	if err != nil {
		return 0, err
	}
	bits := binary.LittleEndian.Uint64(raw)
	return math.Float64frombits(bits), nil
}

func (c *Column) GetDate(i int64) (scalar.Date, error) {
	raw, err := c.rawElement(i)
	if err != nil {
		return 0, err
	}
	return scalar.Date(binary.LittleEndian.Uint32(raw)), nil
}

func (c *Column) GetTime(i int64) (scalar.Time, error) {
	raw, err := c.rawElement(i)
	if err != nil {
		return 0, err
	}
	return scalar.Time(binary.LittleEndian.Uint32(raw)), nil
}

func (c *Column) GetDateTime(i int64) (scalar.DateTime, error) {
	raw, err := c.rawElement(i)
	if err != nil {
		return 0, err
	}
	return scalar.DateTime(binary.LittleEndian.Uint64(raw)), nil
}

func (c *Column) GetIPv4(i int64) ([4]byte, error) {
	var b [4]byte
	raw, err := c.rawElement(i)
	if err != nil {
		return b, err
	}
	copy(b[:], raw)
	return b, nil
}

func (c *Column) GetUUID(i int64) (scalar.UUID, error) {
	var u scalar.UUID
	raw, err := c.rawElement(i)
	if err != nil {
		return u, err
	}
	copy(u[:], raw)
	return u, nil
}

// ToString renders element i the way spec.md §4.D describes: null as
// empty string, BYTES as lowercase hex, IPV4/UUID/temporal via their
// dedicated renderers, and numeric types in natural decimal form.
func (c *Column) ToString(i int64) (string, error) {
	isNull, err := c.IsNull(i)
	if err != nil {
		return "", err
	}
	if isNull {
		return "", nil
	}

	if c.info.IsVarWidth {
		payload, err := c.varSlice(i)
		if err != nil {
			return "", err
		}
		if c.tag == scalar.TypeString && len(payload) > 0 {
			payload = payload[:len(payload)-1]
		}
		return c.info.Render(payload), nil
	}

	raw, err := c.rawElement(i)
	if err != nil {
		return "", err
	}
	return c.info.Render(raw), nil
}

// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package column

import "encoding/binary"

// OutputColumn is a Column opened for writing. It supports the two
// output modes spec.md §4.E/§2 describes: preallocate (Reserve then
// SetValue/SetNull by index) and append (AppendValue/AppendNull/
// AppendVarValue growing the column one element at a time). The two
// modes are not meant to be mixed on the same column.
type OutputColumn struct {
	*Column

	capacity int64 // elements reserved via Reserve, preallocate mode
	count    int64 // elements written via Append*, append mode
	varPos   int64 // bytes appended to the var payload so far
}

// Wrap adapts an already-opened writable Column into an OutputColumn.
func Wrap(c *Column) *OutputColumn {
	return &OutputColumn{Column: c}
}

// Reserve preallocates storage for n elements (the data buffer, and
// the null bitmap when nullable), enabling indexed writes via
// SetValue/SetNull. Var-width payloads are never preallocated: their
// final length is unknown until Complete (spec.md §2).
func (oc *OutputColumn) Reserve(n int64) error {
	width := int64(oc.info.Width)
	if err := oc.data.Ensure(n*width - oc.data.Pos()); err != nil {
		return err
	}
	if oc.nullable {
		if err := oc.nulls.Ensure(n - oc.nulls.Pos()); err != nil {
			return err
		}
	}
	oc.capacity = n
	oc.size = n
	return nil
}

// SetValue writes the fixed-width encoding of a value at index i.
// Valid only after Reserve.
func (oc *OutputColumn) SetValue(i int64, raw []byte) error {
	if i < 0 || i >= oc.capacity {
		return ErrOutOfRange
	}
	return oc.data.WriteAt(i*int64(oc.info.Width), raw)
}

// SetNull marks (or clears) the null flag for index i. Valid only
// after Reserve on a nullable column.
func (oc *OutputColumn) SetNull(i int64, isNull bool) error {
	if !oc.nullable {
		return ErrNotNullable
	}
	if i < 0 || i >= oc.capacity {
		return ErrOutOfRange
	}
	b := byte(0)
	if isNull {
		b = 1
	}
	return oc.nulls.WriteAt(i, []byte{b})
}

// appendFixed writes raw as the next element in append mode, keeping
// the null bitmap (when present) in lockstep so size invariants hold
// for every element, not just the non-null ones.
func (oc *OutputColumn) appendFixed(raw []byte, isNull bool) error {
	width := int64(oc.info.Width)
	if err := oc.data.Seek(oc.count * width); err != nil {
		return err
	}
	if err := oc.data.Write(raw); err != nil {
		return err
	}
	if oc.nullable {
		b := byte(0)
		if isNull {
			b = 1
		}
		if err := oc.nulls.Seek(oc.count); err != nil {
			return err
		}
		if err := oc.nulls.Write([]byte{b}); err != nil {
			return err
		}
	}
	oc.count++
	oc.size = oc.count
	return nil
}

// AppendValue appends a non-null fixed-width value, growing the
// column by one element.
func (oc *OutputColumn) AppendValue(raw []byte) error {
	return oc.appendFixed(raw, false)
}

// AppendNull appends a null element: a zero-valued placeholder in the
// data buffer with the null flag set, keeping the data and null
// bitmap the same length (spec.md §8 property: "Null marking").
func (oc *OutputColumn) AppendNull() error {
	if !oc.nullable {
		return ErrNotNullable
	}
	return oc.appendFixed(make([]byte, oc.info.Width), true)
}

// appendVar records payload's current offset in the fixed element
// array, then appends payload to the var-data region. Offsets are
// monotonically non-decreasing, matching spec.md §8 property 2.
func (oc *OutputColumn) appendVar(payload []byte, isNull bool) error {
	if !oc.varWidth {
		return ErrNotVarWidth
	}
	offsetBuf := make([]byte, 8)
	binary.LittleEndian.PutUint64(offsetBuf, uint64(oc.varPos))
	if err := oc.appendFixed(offsetBuf, isNull); err != nil {
		return err
	}
	if err := oc.varData.Seek(oc.varPos); err != nil {
		return err
	}
	if err := oc.varData.Write(payload); err != nil {
		return err
	}
	oc.varPos += int64(len(payload))
	return nil
}

// AppendVarValue appends a BYTES element.
func (oc *OutputColumn) AppendVarValue(payload []byte) error {
	return oc.appendVar(payload, false)
}

// AppendString appends a STRING element, adding the trailing NUL the
// on-disk format requires (spec.md §3).
func (oc *OutputColumn) AppendString(s string) error {
	return oc.appendVar(append([]byte(s), 0), false)
}

// AppendVarNull appends a null var-width element: an empty payload
// (zero-length span) with the null flag set.
func (oc *OutputColumn) AppendVarNull() error {
	if !oc.nullable {
		return ErrNotNullable
	}
	return oc.appendVar(nil, true)
}

// Complete truncates every region the column owns down to its actual
// logical length, per spec.md §2's "var-payload truncation on
// completion": a Reserve-d column that never grew past its
// preallocated size, and an append-mode column's var payload, both
// end up without the page-aligned slack Ensure/Remap left behind.
func (oc *OutputColumn) Complete() error {
	width := int64(oc.info.Width)
	dataLen := oc.size * width
	if err := oc.data.Remap(&dataLen); err != nil {
		return err
	}
	if oc.nullable {
		nullLen := oc.size
		if err := oc.nulls.Remap(&nullLen); err != nil {
			return err
		}
	}
	if oc.varWidth {
		varLen := oc.varPos
		if err := oc.varData.Remap(&varLen); err != nil {
			return err
		}
	}
	return nil
}

// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package column

import (
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kineticadb/kinetica-proc-sdk-go/scalar"
)

func openOutput(t *testing.T, tag scalar.TypeTag, nullable, varWidth bool) *OutputColumn {
	t.Helper()
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "c.dat")
	nullsPath := ""
	if nullable {
		nullsPath = filepath.Join(dir, "c.nulls")
	}
	varPath := ""
	if varWidth {
		varPath = filepath.Join(dir, "c.var")
	}
	c, err := Open("c", tag, dataPath, nullsPath, varPath, true)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return Wrap(c)
}

func TestOutputColumnReserveAndSetValue(t *testing.T) {
	oc := openOutput(t, scalar.TypeInt, false, false)
	require.NoError(t, oc.Reserve(3))

	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, 42)
	require.NoError(t, oc.SetValue(1, buf))
	require.NoError(t, oc.Complete())

	v, err := oc.GetInt32(1)
	require.NoError(t, err)
	require.Equal(t, int32(42), v)

	require.ErrorIs(t, oc.SetValue(5, buf), ErrOutOfRange)
}

func TestOutputColumnAppendValueAndAppendNull(t *testing.T) {
	oc := openOutput(t, scalar.TypeInt, true, false)

	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, 7)
	require.NoError(t, oc.AppendValue(buf))
	require.NoError(t, oc.AppendNull())
	binary.LittleEndian.PutUint32(buf, 9)
	require.NoError(t, oc.AppendValue(buf))
	require.NoError(t, oc.Complete())

	require.EqualValues(t, 3, oc.Size())

	isNull, err := oc.IsNull(1)
	require.NoError(t, err)
	require.True(t, isNull)

	v, err := oc.GetInt32(0)
	require.NoError(t, err)
	require.Equal(t, int32(7), v)
	v, err = oc.GetInt32(2)
	require.NoError(t, err)
	require.Equal(t, int32(9), v)
}

func TestOutputColumnAppendStringOffsetsMonotone(t *testing.T) {
	oc := openOutput(t, scalar.TypeString, false, true)

	require.NoError(t, oc.AppendString("a"))
	require.NoError(t, oc.AppendString("bb"))
	require.NoError(t, oc.AppendString(""))
	require.NoError(t, oc.Complete())

	require.EqualValues(t, 3, oc.Size())

	var prevOffset int64 = -1
	for i := int64(0); i < oc.Size(); i++ {
		raw, err := oc.rawElement(i)
		require.NoError(t, err)
		offset := int64(binary.LittleEndian.Uint64(raw))
		require.GreaterOrEqual(t, offset, prevOffset)
		prevOffset = offset
	}

	s, err := oc.GetString(0)
	require.NoError(t, err)
	require.Equal(t, "a", s)
	s, err = oc.GetString(1)
	require.NoError(t, err)
	require.Equal(t, "bb", s)
	s, err = oc.GetString(2)
	require.NoError(t, err)
	require.Equal(t, "", s)
}

func TestOutputColumnSetNullRequiresNullable(t *testing.T) {
	oc := openOutput(t, scalar.TypeInt, false, false)
	require.NoError(t, oc.Reserve(1))
	require.ErrorIs(t, oc.SetNull(0, true), ErrNotNullable)
}

func TestOutputColumnAppendVarValueRequiresVarWidth(t *testing.T) {
	oc := openOutput(t, scalar.TypeInt, false, false)
	require.ErrorIs(t, oc.AppendVarValue([]byte("x")), ErrNotVarWidth)
}

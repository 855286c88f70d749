// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package column

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kineticadb/kinetica-proc-sdk-go/scalar"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0644))
	return p
}

func le32(v int32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return b
}

func le64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

func TestColumnReadsFixedWidthInts(t *testing.T) {
	dir := t.TempDir()
	var data []byte
	for _, v := range []int32{10, -20, 30} {
		data = append(data, le32(v)...)
	}
	dataPath := writeFile(t, dir, "ints.dat", data)

	c, err := Open("n", scalar.TypeInt, dataPath, "", "", false)
	require.NoError(t, err)
	defer c.Close()

	require.EqualValues(t, 3, c.Size())
	v, err := c.GetInt32(0)
	require.NoError(t, err)
	require.Equal(t, int32(10), v)
	v, err = c.GetInt32(1)
	require.NoError(t, err)
	require.Equal(t, int32(-20), v)

	_, err = c.GetInt32(3)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestColumnNullBitmap(t *testing.T) {
	dir := t.TempDir()
	data := append(le32(1), append(le32(0), le32(3)...)...)
	nulls := []byte{0, 1, 0}
	dataPath := writeFile(t, dir, "d.dat", data)
	nullsPath := writeFile(t, dir, "d.nulls", nulls)

	c, err := Open("n", scalar.TypeInt, dataPath, nullsPath, "", false)
	require.NoError(t, err)
	defer c.Close()

	require.True(t, c.Nullable())
	isNull, err := c.IsNull(1)
	require.NoError(t, err)
	require.True(t, isNull)
	isNull, err = c.IsNull(0)
	require.NoError(t, err)
	require.False(t, isNull)
}

func TestColumnStringPayloadStripsTrailingNUL(t *testing.T) {
	dir := t.TempDir()
	var varPayload []byte
	var offsets []byte
	for _, s := range []string{"hi", "kinetica"} {
		offsets = append(offsets, le64(uint64(len(varPayload)))...)
		varPayload = append(varPayload, append([]byte(s), 0)...)
	}
	dataPath := writeFile(t, dir, "s.dat", offsets)
	varPath := writeFile(t, dir, "s.var", varPayload)

	c, err := Open("n", scalar.TypeString, dataPath, "", varPath, false)
	require.NoError(t, err)
	defer c.Close()

	s, err := c.GetString(0)
	require.NoError(t, err)
	require.Equal(t, "hi", s)

	s, err = c.GetString(1)
	require.NoError(t, err)
	require.Equal(t, "kinetica", s)
}

func TestColumnToStringRendersIPv4AndUnknownType(t *testing.T) {
	dir := t.TempDir()
	data := []byte{0x01, 0x02, 0x03, 0x04}
	dataPath := writeFile(t, dir, "ip.dat", data)

	c, err := Open("n", scalar.TypeIPv4, dataPath, "", "", false)
	require.NoError(t, err)
	defer c.Close()

	s, err := c.ToString(0)
	require.NoError(t, err)
	require.Equal(t, "4.3.2.1", s)

	_, err = Open("n", scalar.TypeTag(0xDEADBEEF), dataPath, "", "", false)
	require.ErrorIs(t, err, scalar.ErrUnknownType)
}

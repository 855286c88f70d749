// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package proc

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kineticadb/kinetica-proc-sdk-go/codec"
	"github.com/kineticadb/kinetica-proc-sdk-go/mmapfile"
	"github.com/kineticadb/kinetica-proc-sdk-go/scalar"
)

// writeIntColumn writes a fixed-width int32 data file and returns its
// path.
func writeIntColumn(t *testing.T, dir, name string, values []int32) string {
	t.Helper()
	var buf []byte
	for _, v := range values {
		b := make([]byte, 4)
		for i := 0; i < 4; i++ {
			b[i] = byte(uint32(v) >> (8 * i))
		}
		buf = append(buf, b...)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf, 0644))
	return path
}

// buildControlFile writes a synthetic control file for an echo proc:
// one input table "t" with int column "x", one output table "t" with
// int column "x" (an empty data file, sized later by the test).
func buildControlFile(t *testing.T, version uint64) (pcfPath, outPath string) {
	t.Helper()
	dir := t.TempDir()

	inPath := writeIntColumn(t, dir, "in_x.dat", []int32{1, 2, -3, 2147483647})
	outDataPath := filepath.Join(dir, "out_x.dat")
	outPath = filepath.Join(dir, "out.pcf")

	pcfPath = filepath.Join(dir, "in.pcf")
	cur, err := mmapfile.Map(pcfPath, true, nil)
	require.NoError(t, err)
	defer cur.Unmap()

	require.NoError(t, codec.WriteUint64(cur, version))
	require.NoError(t, codec.WriteStringMap(cur, map[string]string{"stale": "1"}))
	require.NoError(t, codec.WriteStringMap(cur, map[string]string{"host": "kinetica"}))
	require.NoError(t, codec.WriteStringMap(cur, map[string]string{"k": "v"}))
	require.NoError(t, codec.WriteBytesMap(cur, map[string][]byte{"b": {1, 2}}))

	// inputData: 1 table, 1 column
	require.NoError(t, codec.WriteUint64(cur, 1))
	require.NoError(t, codec.WriteString(cur, "t"))
	require.NoError(t, codec.WriteUint64(cur, 1))
	require.NoError(t, codec.WriteString(cur, "x"))
	require.NoError(t, codec.WriteUint64(cur, uint64(scalar.TypeInt)))
	require.NoError(t, codec.WriteString(cur, inPath))
	require.NoError(t, codec.WriteString(cur, ""))
	require.NoError(t, codec.WriteString(cur, ""))

	// outputData: 1 table, 1 column
	require.NoError(t, codec.WriteUint64(cur, 1))
	require.NoError(t, codec.WriteString(cur, "t"))
	require.NoError(t, codec.WriteUint64(cur, 1))
	require.NoError(t, codec.WriteString(cur, "x"))
	require.NoError(t, codec.WriteUint64(cur, uint64(scalar.TypeInt)))
	require.NoError(t, codec.WriteString(cur, outDataPath))
	require.NoError(t, codec.WriteString(cur, ""))
	require.NoError(t, codec.WriteString(cur, ""))

	require.NoError(t, codec.WriteString(cur, outPath))

	if version == 2 {
		require.NoError(t, codec.WriteString(cur, filepath.Join(dir, "status")))
	}

	return pcfPath, outPath
}

func TestOpenAndCompleteEchoProc(t *testing.T) {
	pcfPath, outPath := buildControlFile(t, 1)

	p, err := OpenFile(pcfPath)
	require.NoError(t, err)

	require.Equal(t, "kinetica", p.RequestInfo()["host"])
	require.Equal(t, "v", p.Params()["k"])
	require.Equal(t, []byte{1, 2}, p.BinParams()["b"])
	_, hasStale := p.RequestInfo()["stale"]
	require.False(t, hasStale, "second requestInfo read must replace the first")

	inTable, err := p.InputData().Table("t")
	require.NoError(t, err)
	inCol, err := inTable.Column("x")
	require.NoError(t, err)

	outTable, err := p.OutputData().OutputByName("t")
	require.NoError(t, err)
	require.NoError(t, outTable.SetSize(inTable.RowCount()))
	outCol, err := outTable.OutputByName("x")
	require.NoError(t, err)

	for i := int64(0); i < inTable.RowCount(); i++ {
		v, err := inCol.GetInt32(i)
		require.NoError(t, err)
		buf := make([]byte, 4)
		for b := 0; b < 4; b++ {
			buf[b] = byte(uint32(v) >> (8 * b))
		}
		require.NoError(t, outCol.SetValue(i, buf))
	}

	p.SetResult("rows", "4")
	require.NoError(t, p.Complete())
	require.NoError(t, p.Close())

	_, err = os.Stat(outPath)
	require.NoError(t, err)
}

func TestOpenFailsWithoutEnv(t *testing.T) {
	os.Unsetenv("KINETICA_PCF")
	_, err := Open()
	require.ErrorIs(t, err, ErrMissingControlFile)
}

func TestOpenFailsUnsupportedVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.pcf")
	cur, err := mmapfile.Map(path, true, nil)
	require.NoError(t, err)
	require.NoError(t, codec.WriteUint64(cur, 99))
	require.NoError(t, cur.Unmap())

	_, err = OpenFile(path)
	require.ErrorIs(t, err, ErrUnsupportedVersion)

	// Init failure must release the process-wide guard so a retry
	// after fixing the file can succeed (spec.md §8 Scenario 5).
	pcfPath, _ := buildControlFile(t, 1)
	p, err := OpenFile(pcfPath)
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestOnlyOneProcOpenAtATime(t *testing.T) {
	pcfPath, _ := buildControlFile(t, 1)
	p, err := OpenFile(pcfPath)
	require.NoError(t, err)
	defer p.Close()

	_, err = OpenFile(pcfPath)
	require.ErrorIs(t, err, ErrAlreadyOpen)
}

func TestSetStatusPersistsOnVersion2(t *testing.T) {
	pcfPath, _ := buildControlFile(t, 2)
	p, err := OpenFile(pcfPath)
	require.NoError(t, err)
	defer p.Close()

	require.NoError(t, p.SetStatus("running"))
	require.Equal(t, "running", p.Status())

	raw, err := os.ReadFile(p.statusFileName)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(raw), 8+len("running"))
	require.Equal(t, uint64(len("running")), binary.LittleEndian.Uint64(raw[:8]))
	require.Equal(t, "running", string(raw[8:8+len("running")]))
}

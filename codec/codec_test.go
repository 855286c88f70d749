// Copyright 2021 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package codec

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/kineticadb/kinetica-proc-sdk-go/mmapfile"
)

func newScratch(t *testing.T) *mmapfile.MappedFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scratch.bin")
	mf, err := mmapfile.Map(path, true, nil)
	require.NoError(t, err)
	t.Cleanup(func() { mf.Unmap() })
	return mf
}

func TestStringRoundTrip(t *testing.T) {
	mf := newScratch(t)
	require.NoError(t, WriteString(mf, "hello, world"))
	require.NoError(t, mf.Seek(0))
	got, err := ReadString(mf)
	require.NoError(t, err)
	require.Equal(t, "hello, world", got)
}

func TestBytesRoundTrip(t *testing.T) {
	mf := newScratch(t)
	payload := []byte{0x00, 0x01, 0xff, 0x10}
	require.NoError(t, WriteBytes(mf, payload))
	require.NoError(t, mf.Seek(0))
	got, err := ReadBytes(mf)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestStringMapRoundTripIsOrderIndependent(t *testing.T) {
	mf := newScratch(t)
	m := map[string]string{"z": "last", "a": "first", "m": "mid"}
	require.NoError(t, WriteStringMap(mf, m))
	require.NoError(t, mf.Seek(0))
	got, err := ReadStringMap(mf)
	require.NoError(t, err)
	if diff := cmp.Diff(m, got); diff != "" {
		t.Fatalf("map round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestStringMapWriteIsSortedByKey(t *testing.T) {
	mf := newScratch(t)
	m := map[string]string{"z": "1", "a": "2"}
	require.NoError(t, WriteStringMap(mf, m))
	require.NoError(t, mf.Seek(0))

	n, err := ReadUint64(mf)
	require.NoError(t, err)
	require.Equal(t, uint64(2), n)

	first, err := ReadString(mf)
	require.NoError(t, err)
	require.Equal(t, "a", first)
}

func TestBytesMapRoundTrip(t *testing.T) {
	mf := newScratch(t)
	m := map[string][]byte{"k1": {1, 2, 3}, "k2": {}}
	require.NoError(t, WriteBytesMap(mf, m))
	require.NoError(t, mf.Seek(0))
	got, err := ReadBytesMap(mf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, []byte{1, 2, 3}, got["k1"])
}

func TestReadMapReplacesNotMerges(t *testing.T) {
	mf := newScratch(t)
	require.NoError(t, WriteStringMap(mf, map[string]string{"a": "1"}))
	require.NoError(t, WriteStringMap(mf, map[string]string{"b": "2"}))
	require.NoError(t, mf.Seek(0))

	first, err := ReadStringMap(mf)
	require.NoError(t, err)
	second, err := ReadStringMap(mf)
	require.NoError(t, err)

	require.Equal(t, map[string]string{"a": "1"}, first)
	require.Equal(t, map[string]string{"b": "2"}, second)
}

func TestVectorRoundTrip(t *testing.T) {
	mf := newScratch(t)
	v := []int32{1, 2, -3, 2147483647}
	require.NoError(t, WriteVector(mf, v))
	require.NoError(t, mf.Seek(0))
	got, err := ReadVector[int32](mf)
	require.NoError(t, err)
	require.Equal(t, v, got)
}

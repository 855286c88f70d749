// Copyright 2021 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package mmapfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapWriteReadRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
	}{
		{"empty", nil},
		{"small", []byte("hello")},
		{"page-crossing", make([]byte, 9000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "data.bin")

			mf, err := Map(path, true, nil)
			require.NoError(t, err)

			err = mf.Write(tt.payload)
			require.NoError(t, err)
			require.Equal(t, int64(len(tt.payload)), mf.Pos())

			err = mf.Seek(0)
			require.NoError(t, err)

			got := make([]byte, len(tt.payload))
			err = mf.Read(got)
			require.NoError(t, err)
			require.Equal(t, tt.payload, got)

			require.NoError(t, mf.Unmap())
		})
	}
}

func TestEnsureGrowsWriteModeMapping(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grow.bin")

	mf, err := Map(path, true, nil)
	require.NoError(t, err)
	defer mf.Unmap()

	require.NoError(t, mf.Seek(5000))
	require.GreaterOrEqual(t, mf.Size(), int64(5000))
}

func TestEnsureFailsEndOfFileInReadMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ro.bin")

	size := int64(16)
	mf, err := Map(path, true, &size)
	require.NoError(t, err)
	require.NoError(t, mf.Unmap())

	ro, err := Map(path, false, nil)
	require.NoError(t, err)
	defer ro.Unmap()

	err = ro.Seek(32)
	require.ErrorIs(t, err, ErrEndOfFile)
}

func TestTruncateSetsLengthToCursor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trunc.bin")

	mf, err := Map(path, true, nil)
	require.NoError(t, err)
	defer mf.Unmap()

	require.NoError(t, mf.Write([]byte("0123456789")))
	require.NoError(t, mf.Seek(4))
	require.NoError(t, mf.Truncate())
	require.Equal(t, int64(4), mf.Size())
}

func TestUnmapIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "idem.bin")

	mf, err := Map(path, true, nil)
	require.NoError(t, err)
	require.NoError(t, mf.Unmap())
	require.NoError(t, mf.Unmap())
}

func TestLockUnlockRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "status.bin")

	mf, err := Map(path, true, nil)
	require.NoError(t, err)
	defer mf.Unmap()

	require.NoError(t, mf.Lock(true))
	require.NoError(t, mf.Unlock())
}

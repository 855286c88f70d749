// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package mmapfile

import "os"

// Read copies len(buf) bytes starting at the cursor into buf and
// advances the cursor. Boundary-checked the way helper.go's
// ReadUint32/ReadBytesAtOffset check offset+size against pe.size
// before touching the slice.
func (mf *MappedFile) Read(buf []byte) error {
	if err := mf.Ensure(int64(len(buf))); err != nil {
		return err
	}
	copy(buf, mf.data[mf.pos:mf.pos+int64(len(buf))])
	mf.pos += int64(len(buf))
	return nil
}

// Write copies buf to the cursor position, growing the mapping if
// needed, and advances the cursor.
func (mf *MappedFile) Write(buf []byte) error {
	if err := mf.Ensure(int64(len(buf))); err != nil {
		return err
	}
	copy(mf.data[mf.pos:mf.pos+int64(len(buf))], buf)
	mf.pos += int64(len(buf))
	return nil
}

// ReadAt returns a slice view of length bytes at the given absolute
// offset without touching the cursor. Used by columnar accessors that
// need random access rather than streaming reads.
func (mf *MappedFile) ReadAt(offset, length int64) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > mf.Size() {
		return nil, ErrEndOfFile
	}
	return mf.data[offset : offset+length], nil
}

// WriteAt copies buf into the mapping at the given absolute offset,
// growing it if needed, without touching the cursor. Used by
// preallocated (indexed) column writes, as opposed to the sequential
// append writes Write serves.
func (mf *MappedFile) WriteAt(offset int64, buf []byte) error {
	if offset < 0 {
		return ioErr("writeat", mf.path, os.ErrInvalid)
	}
	need := offset + int64(len(buf))
	if need > mf.Size() {
		if !mf.writable {
			return ErrEndOfFile
		}
		page := int64(pageSize())
		target := ((need + page - 1) / page) * page
		if err := mf.Remap(&target); err != nil {
			return err
		}
	}
	copy(mf.data[offset:offset+int64(len(buf))], buf)
	return nil
}

// Truncate sets the file length to the current cursor position.
func (mf *MappedFile) Truncate() error {
	pos := mf.pos
	return mf.Remap(&pos)
}

// Lock acquires a whole-file advisory lock, retrying only on EINTR;
// any other flock failure is reported as a LockError. Grounded on
// calvinalkan-agent-task/lock.go's retry-on-flock-contention loop,
// adapted to retry on interrupt rather than on a wall-clock timeout,
// since the spec defines no timeout policy for this lock.
func (mf *MappedFile) Lock(exclusive bool) error {
	if mf.f == nil {
		return &LockError{Path: mf.path, Err: os.ErrClosed}
	}
	how := unixFlockShared
	if exclusive {
		how = unixFlockExclusive
	}
	for {
		err := flock(mf.f, how)
		if err == nil {
			return nil
		}
		if err == errEINTR {
			continue
		}
		return &LockError{Path: mf.path, Err: err}
	}
}

// Unlock releases the advisory lock. It is a no-op on an unmapped
// file.
func (mf *MappedFile) Unlock() error {
	if mf.f == nil {
		return nil
	}
	if err := flockUnlock(mf.f); err != nil {
		return &LockError{Path: mf.path, Err: err}
	}
	return nil
}

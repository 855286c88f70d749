// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package mmapfile provides a growable, page-aligned, shared memory
// mapping over a single file with a cursor for sequential reads and
// writes, plus an advisory whole-file lock.
//
// It plays the role file.go's File plays for a PE image in the
// teacher library: open once, map the region, and let higher layers
// treat the mapping either as a byte-addressable buffer or as a
// stream with a cursor. Unlike a PE image, the files this package
// maps are written as well as read, so the mapping must grow past its
// initial size and be lockable.
package mmapfile

import (
	"os"

	"golang.org/x/sys/unix"
)

// MappedFile is a single open, possibly-mapped file with a read/write
// cursor. The zero value is not usable; construct with Map.
type MappedFile struct {
	path     string
	f        *os.File
	writable bool
	data     []byte
	pos      int64
}

// Map opens path (creating it if writable and absent) and maps it into
// memory. If size is nil, the file is mapped at its current length. If
// size is non-nil and the file is writable, the file is first
// truncated to *size. Each call returns a new MappedFile.
func Map(path string, writable bool, size *int64) (*MappedFile, error) {
	mf := &MappedFile{}
	if err := mf.doMap(path, writable, size); err != nil {
		return nil, err
	}
	return mf, nil
}

func (mf *MappedFile) doMap(path string, writable bool, size *int64) error {
	flag := os.O_RDONLY
	if writable {
		flag = os.O_RDWR | os.O_CREATE
	}

	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return ioErr("open", path, err)
	}

	length, err := resolveLength(f, path, writable, size)
	if err != nil {
		f.Close()
		return err
	}

	mf.unmapLocked()
	mf.path = path
	mf.f = f
	mf.writable = writable
	mf.pos = 0

	if length == 0 {
		return nil
	}

	data, err := mmapRegion(f, length, writable)
	if err != nil {
		f.Close()
		mf.f = nil
		return ioErr("mmap", path, err)
	}
	mf.data = data
	return nil
}

func resolveLength(f *os.File, path string, writable bool, size *int64) (int64, error) {
	if size != nil {
		if writable {
			if err := f.Truncate(*size); err != nil {
				return 0, ioErr("ftruncate", path, err)
			}
		}
		return *size, nil
	}

	info, err := f.Stat()
	if err != nil {
		return 0, ioErr("fstat", path, err)
	}
	return info.Size(), nil
}

func mmapRegion(f *os.File, length int64, writable bool) ([]byte, error) {
	prot := unix.PROT_READ
	if writable {
		prot |= unix.PROT_WRITE
	}
	return unix.Mmap(int(f.Fd()), 0, int(length), prot, unix.MAP_SHARED)
}

// Remap resizes the mapping. Semantics mirror Map: nil keeps the
// current file length, a non-nil size truncates (write mode only)
// before remapping. A target size of zero unmaps the region but
// leaves the file handle open. The POSIX target for this library
// offers mremap, but an unmap-then-remap pair is observably
// equivalent and portable across the mmap implementations in the
// golang.org/x/sys/unix package, so that is what this does.
func (mf *MappedFile) Remap(size *int64) error {
	if mf.f == nil {
		return ioErr("remap", mf.path, os.ErrClosed)
	}

	length, err := resolveLength(mf.f, mf.path, mf.writable, size)
	if err != nil {
		return err
	}

	if err := mf.munmapData(); err != nil {
		return err
	}

	if length == 0 {
		if mf.pos > 0 {
			mf.pos = 0
		}
		return nil
	}

	data, err := mmapRegion(mf.f, length, mf.writable)
	if err != nil {
		return ioErr("mremap", mf.path, err)
	}
	mf.data = data
	if mf.pos > int64(len(mf.data)) {
		mf.pos = int64(len(mf.data))
	}
	return nil
}

// Unmap releases the mapping and closes the file handle. It is
// idempotent.
func (mf *MappedFile) Unmap() error {
	if mf.f == nil {
		return nil
	}
	if err := mf.munmapData(); err != nil {
		return err
	}
	err := mf.f.Close()
	mf.f = nil
	mf.pos = 0
	if err != nil {
		return ioErr("close", mf.path, err)
	}
	return nil
}

func (mf *MappedFile) munmapData() error {
	return mf.unmapLocked()
}

func (mf *MappedFile) unmapLocked() error {
	if mf.data == nil {
		return nil
	}
	err := unix.Munmap(mf.data)
	mf.data = nil
	if err != nil {
		return ioErr("munmap", mf.path, err)
	}
	return nil
}

// Path returns the path the file was opened with.
func (mf *MappedFile) Path() string { return mf.path }

// Writable reports whether the mapping was opened read-write.
func (mf *MappedFile) Writable() bool { return mf.writable }

// Size returns the current mapping size in bytes.
func (mf *MappedFile) Size() int64 { return int64(len(mf.data)) }

// Pos returns the current cursor position.
func (mf *MappedFile) Pos() int64 { return mf.pos }

// Seek moves the cursor to pos. In write mode, seeking past the
// current size extends the mapping via Ensure. In read mode, seeking
// past the current size fails with ErrEndOfFile.
func (mf *MappedFile) Seek(pos int64) error {
	if pos < 0 {
		return ioErr("seek", mf.path, os.ErrInvalid)
	}
	if pos > mf.Size() {
		if !mf.writable {
			return ErrEndOfFile
		}
		if err := mf.Ensure(pos - mf.pos); err != nil {
			return err
		}
	}
	mf.pos = pos
	return nil
}

// Ensure guarantees that Pos()+length <= Size(). In read mode it fails
// with ErrEndOfFile when the mapping is too small. In write mode it
// remaps to the next page-size multiple of the required length.
func (mf *MappedFile) Ensure(length int64) error {
	need := mf.pos + length
	if need <= mf.Size() {
		return nil
	}
	if !mf.writable {
		return ErrEndOfFile
	}

	page := int64(pageSize())
	target := ((need + page - 1) / page) * page
	return mf.Remap(&target)
}

// Data returns the raw mapped region for bulk columnar access. Callers
// must not retain it past the next Remap/Unmap call.
func (mf *MappedFile) Data() []byte { return mf.data }

func pageSize() int {
	if n := unix.Getpagesize(); n > 0 {
		return n
	}
	return 4096
}

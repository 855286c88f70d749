// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package mmapfile

import (
	"errors"
	"fmt"
)

// ErrEndOfFile is returned when a read would advance the cursor past the
// end of a read-only mapping.
var ErrEndOfFile = errors.New("mmapfile: read past end of file")

// IOError wraps a failing syscall (open, fstat, ftruncate, mmap, mremap,
// munmap, close) with the path and operation that triggered it.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("mmapfile: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func ioErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Path: path, Err: err}
}

// LockError wraps an flock failure that is not EINTR.
type LockError struct {
	Path string
	Err  error
}

func (e *LockError) Error() string {
	return fmt.Sprintf("mmapfile: lock %s: %v", e.Path, e.Err)
}

func (e *LockError) Unwrap() error { return e.Err }

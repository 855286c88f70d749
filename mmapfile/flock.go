// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package mmapfile

import (
	"os"

	"golang.org/x/sys/unix"
)

const (
	unixFlockShared    = unix.LOCK_SH
	unixFlockExclusive = unix.LOCK_EX
)

var errEINTR = unix.EINTR

func flock(f *os.File, how int) error {
	return unix.Flock(int(f.Fd()), how)
}

func flockUnlock(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}

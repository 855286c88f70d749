// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package proc

import "errors"

// ErrMissingControlFile is returned when KINETICA_PCF is unset
// (spec.md §7).
var ErrMissingControlFile = errors.New("proc: KINETICA_PCF is not set")

// ErrUnsupportedVersion is returned when the control file declares a
// version other than 1 or 2 (spec.md §7).
var ErrUnsupportedVersion = errors.New("proc: unsupported control file version")

// ErrAlreadyOpen is returned by Open when a Proc handle for this
// process is already live — the underlying files are not safe to open
// twice (spec.md §9 Open Question 2).
var ErrAlreadyOpen = errors.New("proc: a control file is already open in this process")

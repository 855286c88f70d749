// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package scalar

import "errors"

// ErrUnknownType is returned when a control file references a type
// tag not present in the sparse dispatch table (spec.md §7, §8
// Scenario 5).
var ErrUnknownType = errors.New("scalar: unknown column type tag")

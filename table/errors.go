// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package table

import "errors"

// ErrOutOfRange is returned by index/name lookups on a Table or
// DataSet that miss (spec.md §7).
var ErrOutOfRange = errors.New("table: index or name out of range")

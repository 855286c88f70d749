// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package column

import "errors"

// ErrOutOfRange is returned by index-based accessors when the index
// is outside [0, size) (spec.md §7).
var ErrOutOfRange = errors.New("column: index out of range")

// ErrNotNullable is returned when SetNull/AppendNull/AppendVarNull is called on a
// column that has no null bitmap (spec.md §7).
var ErrNotNullable = errors.New("column: column is not nullable")

// ErrNotVarWidth is returned when AppendVarValue/AppendString is
// called on a column with no variable-length payload region.
var ErrNotVarWidth = errors.New("column: column is not variable-width")

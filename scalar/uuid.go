// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package scalar

import "fmt"

// UUID is a 16-byte value stored little-end-first on disk. Rendering
// walks the bytes in reverse (index 15 down to 0) into the canonical
// 8-4-4-4-12 form, per spec.md §3.
type UUID [16]byte

// String renders the canonical 8-4-4-4-12 form by reversing byte
// order, per spec.md §8 property 6: UUID{raw: [0..15]}.String() ==
// "0f0e0d0c-0b0a-0908-0706-050403020100".
func (u UUID) String() string {
	var rev [16]byte
	for i := 0; i < 16; i++ {
		rev[i] = u[15-i]
	}
	return fmt.Sprintf("%02x%02x%02x%02x-%02x%02x-%02x%02x-%02x%02x-%02x%02x%02x%02x%02x%02x",
		rev[0], rev[1], rev[2], rev[3],
		rev[4], rev[5],
		rev[6], rev[7],
		rev[8], rev[9],
		rev[10], rev[11], rev[12], rev[13], rev[14], rev[15])
}

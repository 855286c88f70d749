// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package scalar

import "fmt"

// FormatIPv4 renders the 4 raw bytes of an IPV4 column value as
// dotted-decimal, reading byte 3 as the first octet (spec.md §4.D:
// "byte 3 is the first octet"). Scenario 3 in spec.md §8: bytes
// [0x01,0x02,0x03,0x04] render as "4.3.2.1".
func FormatIPv4(b [4]byte) string {
	return fmt.Sprintf("%d.%d.%d.%d", b[3], b[2], b[1], b[0])
}

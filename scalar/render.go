// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package scalar

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"strconv"
)

func renderBoolean(raw []byte) string {
	if raw[0] != 0 {
		return "true"
	}
	return "false"
}

func renderInt8(raw []byte) string  { return strconv.FormatInt(int64(int8(raw[0])), 10) }
func renderInt16(raw []byte) string {
	return strconv.FormatInt(int64(int16(binary.LittleEndian.Uint16(raw))), 10)
}
func renderInt32(raw []byte) string {
	return strconv.FormatInt(int64(int32(binary.LittleEndian.Uint32(raw))), 10)
}
func renderInt64(raw []byte) string {
	return strconv.FormatInt(int64(binary.LittleEndian.Uint64(raw)), 10)
}
func renderUint64(raw []byte) string {
	return strconv.FormatUint(binary.LittleEndian.Uint64(raw), 10)
}
func renderFloat32(raw []byte) string {
	v := math.Float32frombits(binary.LittleEndian.Uint32(raw))
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
func renderFloat64(raw []byte) string {
	v := math.Float64frombits(binary.LittleEndian.Uint64(raw))
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func renderDate(raw []byte) string {
	return Date(binary.LittleEndian.Uint32(raw)).String()
}
func renderTime(raw []byte) string {
	return Time(binary.LittleEndian.Uint32(raw)).String()
}
func renderDateTime(raw []byte) string {
	return DateTime(binary.LittleEndian.Uint64(raw)).String()
}

func renderIPv4(raw []byte) string {
	var b [4]byte
	copy(b[:], raw)
	return FormatIPv4(b)
}

func renderUUID(raw []byte) string {
	var u UUID
	copy(u[:], raw)
	return u.String()
}

func renderHex(raw []byte) string {
	return hex.EncodeToString(raw)
}

func renderRawString(raw []byte) string {
	return string(raw)
}

func renderCharN(raw []byte) string {
	return charNUnpack(raw)
}

// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package scalar

// TypeTag identifies a column's wire type. Values are bit-flag-shaped
// constants assigned by the host (spec.md §4.D) and are NOT dense —
// some bits were added across host versions (spec.md §9 Open Question
// 3: BOOLEAN, DATETIME, UUID and ULONG are absent from older control
// files). Dispatch therefore always goes through the sparse table
// below, never a contiguous array indexed by tag.
type TypeTag uint64

const (
	TypeBoolean TypeTag = 1 << iota
	TypeInt8
	TypeInt16
	TypeInt
	TypeLong
	TypeULong
	TypeFloat
	TypeDouble
	TypeDecimal
	TypeDate
	TypeTime
	TypeDateTime
	TypeTimestamp
	TypeIPv4
	TypeUUID
	TypeBytes
	TypeString
	TypeChar1
	TypeChar2
	TypeChar4
	TypeChar8
	TypeChar16
	TypeChar32
	TypeChar64
	TypeChar128
	TypeChar256
)

// TypeInfo carries everything a Column needs to interpret a tag:
// its fixed-payload element width, whether it is variable-width
// (BYTES/STRING hold u64 offsets in the fixed payload and raw bytes
// in the var payload), and a renderer for Column.ToString.
type TypeInfo struct {
	Tag        TypeTag
	Width      int
	IsVarWidth bool
	Render     func(raw []byte) string
}

// typeTable is deliberately a map, not a switch or array indexed by
// tag, because TypeTag values are sparse — exactly the dispatch shape
// file.go's ParseDataDirectories uses for ImageDirectoryEntry (a map
// from a sparse, host/format-defined enum to a handler), adapted here
// from "directory index -> parse function" to "type tag -> width +
// renderer".
var typeTable map[TypeTag]TypeInfo

func init() {
	typeTable = map[TypeTag]TypeInfo{
		TypeBoolean:  {TypeBoolean, 1, false, renderBoolean},
		TypeInt8:     {TypeInt8, 1, false, renderInt8},
		TypeInt16:    {TypeInt16, 2, false, renderInt16},
		TypeInt:      {TypeInt, 4, false, renderInt32},
		TypeLong:     {TypeLong, 8, false, renderInt64},
		TypeULong:    {TypeULong, 8, false, renderUint64},
		TypeFloat:    {TypeFloat, 4, false, renderFloat32},
		TypeDouble:   {TypeDouble, 8, false, renderFloat64},
		TypeDecimal:  {TypeDecimal, 8, false, renderInt64},
		TypeDate:     {TypeDate, 4, false, renderDate},
		TypeTime:     {TypeTime, 4, false, renderTime},
		TypeDateTime: {TypeDateTime, 8, false, renderDateTime},
		TypeTimestamp: {TypeTimestamp, 8, false, renderInt64},
		TypeIPv4:     {TypeIPv4, 4, false, renderIPv4},
		TypeUUID:     {TypeUUID, 16, false, renderUUID},
		TypeBytes:    {TypeBytes, 8, true, renderHex},
		TypeString:   {TypeString, 8, true, renderRawString},
		TypeChar1:    {TypeChar1, 1, false, renderCharN},
		TypeChar2:    {TypeChar2, 2, false, renderCharN},
		TypeChar4:    {TypeChar4, 4, false, renderCharN},
		TypeChar8:    {TypeChar8, 8, false, renderCharN},
		TypeChar16:   {TypeChar16, 16, false, renderCharN},
		TypeChar32:   {TypeChar32, 32, false, renderCharN},
		TypeChar64:   {TypeChar64, 64, false, renderCharN},
		TypeChar128:  {TypeChar128, 128, false, renderCharN},
		TypeChar256:  {TypeChar256, 256, false, renderCharN},
	}
}

// Lookup returns the TypeInfo for tag and true, or a zero TypeInfo and
// false if tag is not recognized — the caller turns that into
// ErrUnknownType (spec.md §8 Scenario 5).
func Lookup(tag TypeTag) (TypeInfo, bool) {
	info, ok := typeTable[tag]
	return info, ok
}

// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package scalar implements the packed and fixed-width scalar types a
// Column's fixed payload may hold: Date, DateTime, Time, UUID, and the
// CharN family. The packed temporal types mirror the bitfield layout
// dosheader.go's ImageDOSHeader uses for its own fixed-width record —
// a single integer overlaying several sub-byte fields — except here
// the fields are extracted with shifts and masks instead of separate
// struct members, per spec.md §3's explicit bit layout.
package scalar

// Date is a packed 32-bit date: bits 31..21 hold year-1900 (signed),
// 20..17 month, 16..12 day, 11..0 reserved.
type Date uint32

const (
	dateYearShift  = 21
	dateYearBits   = 11
	dateMonthShift = 17
	dateMonthMask  = 0xF
	dateDayShift   = 12
	dateDayMask    = 0x1F
	dateReservedMask = 0xFFF
)

// DefaultDate encodes 1000-01-01, the default value per spec.md §3.
var DefaultDate = NewDate(1000, 1, 1)

// NewDate packs year/month/day into a Date. Values are not validated;
// out-of-range components (spec.md §9 Open Question 2) are passed
// through unchanged, matching the reference Date::getMonth behavior.
func NewDate(year int, month, day int) Date {
	y := uint32(int32(year-1900)) & ((1 << dateYearBits) - 1)
	return Date((y << dateYearShift) |
		(uint32(month&dateMonthMask) << dateMonthShift) |
		(uint32(day&dateDayMask) << dateDayShift))
}

// Year returns year-1900 sign-extended back to a calendar year.
func (d Date) Year() int {
	raw := int32(uint32(d)>>dateYearShift) << (32 - dateYearBits) >> (32 - dateYearBits)
	return int(raw) + 1900
}

// Month returns the packed 4-bit month field, not validated.
func (d Date) Month() int { return int((uint32(d) >> dateMonthShift) & dateMonthMask) }

// Day returns the packed 5-bit day field, not validated.
func (d Date) Day() int { return int((uint32(d) >> dateDayShift) & dateDayMask) }

// Equal compares two Date values ignoring the reserved low bits, per
// spec.md §3 "Equality/ordering ... ignores the reserved low bits".
func (d Date) Equal(other Date) bool {
	mask := Date(^uint32(dateReservedMask))
	return d&mask == other&mask
}

// DateTime is a packed 64-bit timestamp: 63..53 year-1900, 52..49
// month, 48..44 day, 43..39 hour, 38..33 minute, 32..27 second, 26..17
// millisecond, 16..0 reserved.
type DateTime uint64

const (
	dtYearShift  = 53
	dtYearBits   = 11
	dtMonthShift = 49
	dtMonthMask  = 0xF
	dtDayShift   = 44
	dtDayMask    = 0x1F
	dtHourShift  = 39
	dtHourMask   = 0x1F
	dtMinShift   = 33
	dtMinMask    = 0x3F
	dtSecShift   = 27
	dtSecMask    = 0x3F
	dtMilliShift = 17
	dtMilliMask  = 0x3FF
	dtReservedMask = 0x1FFFF
)

// DefaultDateTime encodes 1000-01-01 00:00:00.000.
var DefaultDateTime = NewDateTime(1000, 1, 1, 0, 0, 0, 0)

// NewDateTime packs the given components into a DateTime.
func NewDateTime(year int, month, day, hour, minute, second, milli int) DateTime {
	y := uint64(int64(year-1900)) & ((1 << dtYearBits) - 1)
	return DateTime((y << dtYearShift) |
		(uint64(month&dtMonthMask) << dtMonthShift) |
		(uint64(day&dtDayMask) << dtDayShift) |
		(uint64(hour&dtHourMask) << dtHourShift) |
		(uint64(minute&dtMinMask) << dtMinShift) |
		(uint64(second&dtSecMask) << dtSecShift) |
		(uint64(milli&dtMilliMask) << dtMilliShift))
}

func (dt DateTime) Year() int {
	raw := int64(uint64(dt)>>dtYearShift) << (64 - dtYearBits) >> (64 - dtYearBits)
	return int(raw) + 1900
}
func (dt DateTime) Month() int  { return int((uint64(dt) >> dtMonthShift) & dtMonthMask) }
func (dt DateTime) Day() int    { return int((uint64(dt) >> dtDayShift) & dtDayMask) }
func (dt DateTime) Hour() int   { return int((uint64(dt) >> dtHourShift) & dtHourMask) }
func (dt DateTime) Minute() int { return int((uint64(dt) >> dtMinShift) & dtMinMask) }
func (dt DateTime) Second() int { return int((uint64(dt) >> dtSecShift) & dtSecMask) }
func (dt DateTime) Milli() int  { return int((uint64(dt) >> dtMilliShift) & dtMilliMask) }

// Equal compares two DateTime values ignoring reserved bits (spec.md
// §8 property 5).
func (dt DateTime) Equal(other DateTime) bool {
	mask := DateTime(^uint64(dtReservedMask))
	return dt&mask == other&mask
}

// Time is a packed 32-bit time-of-day: 31..26 hour, 25..20 minute,
// 19..14 second, 13..4 millisecond, 3..0 reserved.
type Time uint32

const (
	tHourShift  = 26
	tHourMask   = 0x3F
	tMinShift   = 20
	tMinMask    = 0x3F
	tSecShift   = 14
	tSecMask    = 0x3F
	tMilliShift = 4
	tMilliMask  = 0x3FF
	tReservedMask = 0xF
)

func NewTime(hour, minute, second, milli int) Time {
	return Time((uint32(hour&tHourMask) << tHourShift) |
		(uint32(minute&tMinMask) << tMinShift) |
		(uint32(second&tSecMask) << tSecShift) |
		(uint32(milli&tMilliMask) << tMilliShift))
}

func (t Time) Hour() int   { return int((uint32(t) >> tHourShift) & tHourMask) }
func (t Time) Minute() int { return int((uint32(t) >> tMinShift) & tMinMask) }
func (t Time) Second() int { return int((uint32(t) >> tSecShift) & tSecMask) }
func (t Time) Milli() int  { return int((uint32(t) >> tMilliShift) & tMilliMask) }

func (t Time) Equal(other Time) bool {
	mask := Time(^uint32(tReservedMask))
	return t&mask == other&mask
}

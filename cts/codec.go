package cts

import (
	"encoding/binary"
	"errors"
	"fmt"

	"bleclock/clock"
)

var (
	// ErrWrongLength indicates a Current Time write that is not exactly 10
	// bytes.
	ErrWrongLength = errors.New("current time value has wrong length")

	// ErrInvalidRange indicates a Current Time write whose decoded fields
	// fail calendar validation.
	ErrInvalidRange = errors.New("current time field out of range")
)

// EncodeCurrentTime packs t into the 10-byte Current Time layout: year
// (little-endian 16-bit), month, day, hour, minute, second, day of week,
// fractions256, adjust reason. Fractions256 is always 0; sub-second
// resolution is not tracked.
func EncodeCurrentTime(t clock.CalendarTime, adjustReason uint8) []byte {
	b := make([]byte, CurrentTimeLen)
	binary.LittleEndian.PutUint16(b[0:2], t.Year)
	b[2] = t.Month
	b[3] = t.Day
	b[4] = t.Hour
	b[5] = t.Minute
	b[6] = t.Second
	b[7] = t.DayOfWeek
	b[8] = 0
	b[9] = adjustReason
	return b
}

// DecodeCurrentTime parses a 10-byte Current Time value and validates the
// calendar fields. The fractions256 and adjust-reason bytes of incoming
// writes are ignored.
func DecodeCurrentTime(b []byte) (clock.CalendarTime, error) {
	if len(b) != CurrentTimeLen {
		return clock.CalendarTime{}, fmt.Errorf("%w: got %d bytes, expected %d",
			ErrWrongLength, len(b), CurrentTimeLen)
	}
	t := clock.CalendarTime{
		Year:      binary.LittleEndian.Uint16(b[0:2]),
		Month:     b[2],
		Day:       b[3],
		Hour:      b[4],
		Minute:    b[5],
		Second:    b[6],
		DayOfWeek: b[7],
	}
	if err := clock.Validate(t); err != nil {
		return clock.CalendarTime{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	return t, nil
}

// EncodeLocalTimeInfo packs the 2-byte Local Time Information value: time
// zone in 15-minute units east of UTC, then the DST offset (0 = standard
// time). Both come from configuration; the peripheral never changes them at
// runtime.
func EncodeLocalTimeInfo(tzQuarters int8, dstOffset uint8) []byte {
	return []byte{byte(tzQuarters), dstOffset}
}

// EncodeReferenceTimeInfo packs the 4-byte Reference Time Information value
// for a manually set clock: source, accuracy, days since update, fractions
// of a second since update. The update counters stay 0 because the clock has
// no external reference to age against.
func EncodeReferenceTimeInfo() []byte {
	return []byte{TimeSourceManual, AccuracyUnknown, 0, 0}
}

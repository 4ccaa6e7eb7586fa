package cts

import (
	"bytes"
	"errors"
	"testing"

	"bleclock/clock"
)

func TestEncodeCurrentTimeLayout(t *testing.T) {
	ct := clock.CalendarTime{
		Year: 2024, Month: 3, Day: 15,
		Hour: 13, Minute: 37, Second: 42, DayOfWeek: 5,
	}

	got := EncodeCurrentTime(ct, AdjustManual)
	// Official CTS field order: year LE, month, day, hour, minute, second,
	// day of week, fractions256, adjust reason.
	expected := []byte{0xE8, 0x07, 3, 15, 13, 37, 42, 5, 0, 1}
	if !bytes.Equal(got, expected) {
		t.Errorf("EncodeCurrentTime = %v, expected %v", got, expected)
	}
}

func TestCurrentTimeRoundTrip(t *testing.T) {
	testCases := []clock.CalendarTime{
		{Year: 1582, Month: 1, Day: 1, DayOfWeek: 1},
		{Year: 2024, Month: 2, Day: 29, Hour: 23, Minute: 59, Second: 59, DayOfWeek: 4},
		{Year: 2024, Month: 12, Day: 31, Hour: 0, Minute: 0, Second: 0, DayOfWeek: 2},
		{Year: 9999, Month: 7, Day: 4, Hour: 12, Minute: 30, Second: 15, DayOfWeek: 7},
	}

	for _, expected := range testCases {
		decoded, err := DecodeCurrentTime(EncodeCurrentTime(expected, AdjustNone))
		if err != nil {
			t.Errorf("round trip of %v failed: %v", expected, err)
			continue
		}
		if decoded != expected {
			t.Errorf("round trip mismatch: encoded %v, decoded %v", expected, decoded)
		}
	}
}

func TestDecodeCurrentTimeWrongLength(t *testing.T) {
	for _, n := range []int{0, 1, 9, 11, 20} {
		_, err := DecodeCurrentTime(make([]byte, n))
		if !errors.Is(err, ErrWrongLength) {
			t.Errorf("DecodeCurrentTime(%d bytes) = %v, expected ErrWrongLength", n, err)
		}
	}
}

func TestDecodeCurrentTimeInvalidRange(t *testing.T) {
	base := clock.CalendarTime{Year: 2024, Month: 1, Day: 1, DayOfWeek: 1}

	testCases := []struct {
		name   string
		mutate func(b []byte)
	}{
		{"month 13", func(b []byte) { b[2] = 13 }},
		{"month 0", func(b []byte) { b[2] = 0 }},
		{"hour 24", func(b []byte) { b[4] = 24 }},
		{"minute 60", func(b []byte) { b[5] = 60 }},
		{"second 60", func(b []byte) { b[6] = 60 }},
		{"day of week 8", func(b []byte) { b[7] = 8 }},
		{"feb 30", func(b []byte) { b[2] = 2; b[3] = 30 }},
		{"year 1000", func(b []byte) { b[0] = 0xE8; b[1] = 0x03 }},
	}

	for _, tc := range testCases {
		b := EncodeCurrentTime(base, AdjustNone)
		tc.mutate(b)
		_, err := DecodeCurrentTime(b)
		if !errors.Is(err, ErrInvalidRange) {
			t.Errorf("%s: DecodeCurrentTime = %v, expected ErrInvalidRange", tc.name, err)
		}
	}
}

func TestDecodeIgnoresFractionsAndAdjustReason(t *testing.T) {
	expected := clock.CalendarTime{Year: 2024, Month: 6, Day: 1, Hour: 8, DayOfWeek: 6}
	b := EncodeCurrentTime(expected, AdjustNone)
	b[8] = 0x80 // fractions256
	b[9] = 0xFF // adjust reason

	decoded, err := DecodeCurrentTime(b)
	if err != nil {
		t.Fatalf("DecodeCurrentTime: %v", err)
	}
	if decoded != expected {
		t.Errorf("decoded %v, expected %v", decoded, expected)
	}
}

func TestEncodeLocalTimeInfo(t *testing.T) {
	testCases := []struct {
		tz       int8
		dst      uint8
		expected []byte
	}{
		{32, 0, []byte{0x20, 0x00}},  // UTC+8, standard time
		{-20, 4, []byte{0xEC, 0x04}}, // UTC-5, +1h DST
		{0, 0, []byte{0x00, 0x00}},
	}

	for _, tc := range testCases {
		got := EncodeLocalTimeInfo(tc.tz, tc.dst)
		if !bytes.Equal(got, tc.expected) {
			t.Errorf("EncodeLocalTimeInfo(%d, %d) = %v, expected %v", tc.tz, tc.dst, got, tc.expected)
		}
	}
}

func TestEncodeReferenceTimeInfo(t *testing.T) {
	got := EncodeReferenceTimeInfo()
	expected := []byte{TimeSourceManual, AccuracyUnknown, 0, 0}
	if !bytes.Equal(got, expected) {
		t.Errorf("EncodeReferenceTimeInfo = %v, expected %v", got, expected)
	}
	if len(got) != ReferenceTimeInfoLen {
		t.Errorf("length %d, expected %d", len(got), ReferenceTimeInfoLen)
	}
}

// Package cts implements the wire layer of the Bluetooth Current Time
// Service: the SIG assigned numbers and the fixed byte layouts of the three
// characteristics, with validation of externally supplied values.
package cts

// Bluetooth SIG 16-bit assigned numbers for the Current Time Service.
const (
	ServiceUUID           = 0x1805
	CurrentTimeUUID       = 0x2A2B
	LocalTimeInfoUUID     = 0x2A0F
	ReferenceTimeInfoUUID = 0x2A14
)

// Characteristic value lengths in bytes.
const (
	CurrentTimeLen       = 10
	LocalTimeInfoLen     = 2
	ReferenceTimeInfoLen = 4
)

// CharID names one of the three CTS characteristics for the radio
// collaborator.
type CharID uint8

const (
	CharCurrentTime CharID = iota
	CharLocalTimeInfo
	CharReferenceTimeInfo
)

// String returns the characteristic name for diagnostics.
func (c CharID) String() string {
	switch c {
	case CharCurrentTime:
		return "current_time"
	case CharLocalTimeInfo:
		return "local_time_info"
	case CharReferenceTimeInfo:
		return "reference_time_info"
	default:
		return "unknown"
	}
}

// Adjust-reason values for the last byte of the Current Time value. The
// peripheral sends AdjustNone on periodic pushes; the manual flag is a local
// convention sent once right after a client writes the time, not a normative
// CTS requirement.
const (
	AdjustNone   uint8 = 0x00
	AdjustManual uint8 = 0x01
)

// Reference Time Information constants describing a clock with no external
// time reference.
const (
	TimeSourceManual uint8 = 4
	AccuracyUnknown  uint8 = 254
)

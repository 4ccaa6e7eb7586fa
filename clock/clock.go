// Package clock implements the calendar engine for the wall clock: a
// denormalized date/time tuple advanced from a monotonic millisecond counter,
// with full carry/rollover handling and leap-year support.
package clock

import (
	"errors"
	"fmt"
)

// ErrInvalidTime indicates a calendar tuple with a field outside its valid
// range for the given year and month.
var ErrInvalidTime = errors.New("invalid calendar time")

// MinYear is the earliest representable year (start of the Gregorian calendar).
const MinYear = 1582

// CalendarTime is the wall-clock state. All fields use the Bluetooth CTS
// conventions: Month 1-12, Day 1..DaysInMonth, DayOfWeek 1=Monday..7=Sunday.
type CalendarTime struct {
	Year      uint16 `json:"year"`
	Month     uint8  `json:"month"`
	Day       uint8  `json:"day"`
	Hour      uint8  `json:"hour"`
	Minute    uint8  `json:"minute"`
	Second    uint8  `json:"second"`
	DayOfWeek uint8  `json:"day_of_week"`
}

// String formats the time the way the diagnostic console prints it.
func (t CalendarTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d DOW:%d",
		t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second, t.DayOfWeek)
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year uint16) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month of the given year.
func DaysInMonth(year uint16, month uint8) uint8 {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

// Validate checks every field of t against its valid range. Day is checked
// against the true month length, not a blanket 1-31 range.
func Validate(t CalendarTime) error {
	if t.Year < MinYear {
		return fmt.Errorf("%w: year %d before %d", ErrInvalidTime, t.Year, MinYear)
	}
	if t.Month < 1 || t.Month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidTime, t.Month)
	}
	if t.Day < 1 || t.Day > DaysInMonth(t.Year, t.Month) {
		return fmt.Errorf("%w: day %d in %04d-%02d", ErrInvalidTime, t.Day, t.Year, t.Month)
	}
	if t.Hour > 23 {
		return fmt.Errorf("%w: hour %d", ErrInvalidTime, t.Hour)
	}
	if t.Minute > 59 {
		return fmt.Errorf("%w: minute %d", ErrInvalidTime, t.Minute)
	}
	if t.Second > 59 {
		return fmt.Errorf("%w: second %d", ErrInvalidTime, t.Second)
	}
	if t.DayOfWeek < 1 || t.DayOfWeek > 7 {
		return fmt.Errorf("%w: day of week %d", ErrInvalidTime, t.DayOfWeek)
	}
	return nil
}

// Engine owns the calendar state and the tick baseline it is advanced from.
// It is not safe for concurrent use; the cooperative main loop is the only
// caller.
type Engine struct {
	current  CalendarTime
	baseline uint64 // millisecond instant the next whole second is measured from
}

// NewEngine creates an engine holding initial, with the tick baseline set to
// nowMs. The initial time is validated like an external write.
func NewEngine(initial CalendarTime, nowMs uint64) (*Engine, error) {
	if err := Validate(initial); err != nil {
		return nil, err
	}
	return &Engine{current: initial, baseline: nowMs}, nil
}

// Advance rolls the calendar forward by the whole seconds elapsed since the
// tick baseline. The baseline keeps the sub-second remainder, so calling this
// at any cadence never loses time. A call with less than one full second
// elapsed is a no-op.
func (e *Engine) Advance(nowMs uint64) {
	if nowMs <= e.baseline {
		return
	}
	elapsed := (nowMs - e.baseline) / 1000
	if elapsed == 0 {
		return
	}
	e.baseline += elapsed * 1000

	seconds := uint64(e.current.Second) + elapsed
	e.current.Second = uint8(seconds % 60)
	minutes := uint64(e.current.Minute) + seconds/60
	e.current.Minute = uint8(minutes % 60)
	hours := uint64(e.current.Hour) + minutes/60
	e.current.Hour = uint8(hours % 24)

	days := hours / 24
	if days == 0 {
		return
	}
	e.current.DayOfWeek = uint8((uint64(e.current.DayOfWeek-1)+days)%7) + 1

	// Month length changes as the carry crosses month boundaries, so it must
	// be recomputed on every iteration.
	day := uint64(e.current.Day) + days
	for {
		monthDays := uint64(DaysInMonth(e.current.Year, e.current.Month))
		if day <= monthDays {
			break
		}
		day -= monthDays
		e.current.Month++
		if e.current.Month > 12 {
			e.current.Month = 1
			e.current.Year++
		}
	}
	e.current.Day = uint8(day)
}

// SetTime replaces the calendar state with t and resets the tick baseline to
// nowMs. On validation failure the engine is left untouched.
func (e *Engine) SetTime(t CalendarTime, nowMs uint64) error {
	if err := Validate(t); err != nil {
		return err
	}
	e.current = t
	e.baseline = nowMs
	return nil
}

// Snapshot returns a copy of the current calendar state.
func (e *Engine) Snapshot() CalendarTime {
	return e.current
}

// Package config loads the peripheral's JSON configuration and fills in the
// defaults of the reference device.
package config

import (
	"encoding/json"

	"bleclock/clock"
	"bleclock/cts"
)

// Config holds everything the peripheral needs at startup: the advertised
// identity, the fixed time-zone characteristics, the adjust-reason
// convention and the cooperative task cadences.
type Config struct {
	// DeviceName is advertised as the BLE local name.
	DeviceName string `json:"device_name"`

	// TimeZoneQuarters is the fixed local time zone in 15-minute units east
	// of UTC (32 = UTC+8). Zero means UTC.
	TimeZoneQuarters int8 `json:"time_zone_quarters"`

	// DSTOffset is the fixed DST offset value (0 = standard time).
	DSTOffset uint8 `json:"dst_offset"`

	// AdjustReason is the sentinel sent in the first Current Time push after
	// a client time write. A local convention, not a CTS requirement; set to
	// 0 to disable.
	AdjustReason uint8 `json:"adjust_reason"`

	// Task periods in milliseconds.
	PollPeriodMs  uint64 `json:"poll_period_ms"`  // radio event pump
	TickPeriodMs  uint64 `json:"tick_period_ms"`  // internal time update
	PushPeriodMs  uint64 `json:"push_period_ms"`  // Current Time push while connected
	BlinkPeriodMs uint64 `json:"blink_period_ms"` // status LED while advertising
	PrintPeriodMs uint64 `json:"print_period_ms"` // diagnostic time print

	// InitialTime is the calendar state at power-on, before any client
	// synchronizes the clock.
	InitialTime clock.CalendarTime `json:"initial_time"`
}

// LoadConfig parses a JSON configuration and applies defaults for anything
// left unset.
func LoadConfig(jsonData []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults fills in missing configuration values.
func applyDefaults(cfg *Config) {
	if cfg.DeviceName == "" {
		cfg.DeviceName = "S&B Watch"
	}
	if cfg.PollPeriodMs == 0 {
		cfg.PollPeriodMs = 5
	}
	if cfg.TickPeriodMs == 0 {
		cfg.TickPeriodMs = 1000
	}
	if cfg.PushPeriodMs == 0 {
		cfg.PushPeriodMs = 1500
	}
	if cfg.BlinkPeriodMs == 0 {
		cfg.BlinkPeriodMs = 1000
	}
	if cfg.PrintPeriodMs == 0 {
		cfg.PrintPeriodMs = 5000
	}
	if cfg.InitialTime == (clock.CalendarTime{}) {
		cfg.InitialTime = clock.CalendarTime{Year: 2024, Month: 1, Day: 1, DayOfWeek: 1}
	}
}

// DefaultConfig returns the configuration of the reference device: UTC+8,
// manual adjust-reason convention, the original task cadences.
func DefaultConfig() *Config {
	return &Config{
		DeviceName:       "S&B Watch",
		TimeZoneQuarters: 32,
		DSTOffset:        0,
		AdjustReason:     cts.AdjustManual,
		PollPeriodMs:     5,
		TickPeriodMs:     1000,
		PushPeriodMs:     1500,
		BlinkPeriodMs:    1000,
		PrintPeriodMs:    5000,
		InitialTime:      clock.CalendarTime{Year: 2024, Month: 1, Day: 1, DayOfWeek: 1},
	}
}

package config

import (
	"testing"

	"bleclock/clock"
)

func TestLoadConfigAppliesDefaults(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{}`))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.DeviceName != "S&B Watch" {
		t.Errorf("DeviceName = %q", cfg.DeviceName)
	}
	if cfg.PollPeriodMs != 5 || cfg.TickPeriodMs != 1000 || cfg.PushPeriodMs != 1500 {
		t.Errorf("task periods = %d/%d/%d", cfg.PollPeriodMs, cfg.TickPeriodMs, cfg.PushPeriodMs)
	}
	expected := clock.CalendarTime{Year: 2024, Month: 1, Day: 1, DayOfWeek: 1}
	if cfg.InitialTime != expected {
		t.Errorf("InitialTime = %v, expected %v", cfg.InitialTime, expected)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	data := []byte(`{
		"device_name": "Bench Clock",
		"time_zone_quarters": -20,
		"dst_offset": 4,
		"adjust_reason": 8,
		"push_period_ms": 2000,
		"initial_time": {"year": 2025, "month": 6, "day": 15, "hour": 12, "day_of_week": 7}
	}`)

	cfg, err := LoadConfig(data)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.DeviceName != "Bench Clock" {
		t.Errorf("DeviceName = %q", cfg.DeviceName)
	}
	if cfg.TimeZoneQuarters != -20 || cfg.DSTOffset != 4 {
		t.Errorf("time zone = %d/%d", cfg.TimeZoneQuarters, cfg.DSTOffset)
	}
	if cfg.AdjustReason != 8 {
		t.Errorf("AdjustReason = %d", cfg.AdjustReason)
	}
	if cfg.PushPeriodMs != 2000 {
		t.Errorf("PushPeriodMs = %d", cfg.PushPeriodMs)
	}
	// Unset periods still get defaults.
	if cfg.TickPeriodMs != 1000 {
		t.Errorf("TickPeriodMs = %d", cfg.TickPeriodMs)
	}
	expected := clock.CalendarTime{Year: 2025, Month: 6, Day: 15, Hour: 12, DayOfWeek: 7}
	if cfg.InitialTime != expected {
		t.Errorf("InitialTime = %v, expected %v", cfg.InitialTime, expected)
	}
}

func TestLoadConfigRejectsBadJSON(t *testing.T) {
	if _, err := LoadConfig([]byte(`{"device_name":`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := clock.Validate(cfg.InitialTime); err != nil {
		t.Errorf("default initial time invalid: %v", err)
	}
	if cfg.TimeZoneQuarters != 32 {
		t.Errorf("TimeZoneQuarters = %d, expected 32 (UTC+8)", cfg.TimeZoneQuarters)
	}
}

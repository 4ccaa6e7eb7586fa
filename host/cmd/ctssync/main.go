// Command ctssync is the host-side Current Time Service central: it scans
// for the clock peripheral, prints the time it reports, and writes the host
// wall time to it. The matched device is remembered in a JSON file so later
// runs skip the name scan.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"tinygo.org/x/bluetooth"

	"bleclock/clock"
	"bleclock/cts"
)

var (
	configPath = flag.String("config", "ctssync.json", "Path to the client state file")
	name       = flag.String("name", "S&B Watch", "Device name to scan for")
	once       = flag.Bool("once", false, "Sync once and exit instead of looping")
)

// deviceInfo identifies a previously synced peripheral.
type deviceInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// clientConfig is the persisted client state, mirroring the peripheral's
// config style.
type clientConfig struct {
	LastDevice    *deviceInfo `json:"last_device"`
	ScanTimeoutS  int         `json:"scan_timeout_s"`
	SyncIntervalS int         `json:"sync_interval_s"`
}

func loadClientConfig(path string) *clientConfig {
	cfg := &clientConfig{ScanTimeoutS: 10, SyncIntervalS: 1800}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring bad state file: %v\n", err)
		return &clientConfig{ScanTimeoutS: 10, SyncIntervalS: 1800}
	}
	if cfg.ScanTimeoutS <= 0 {
		cfg.ScanTimeoutS = 10
	}
	if cfg.SyncIntervalS <= 0 {
		cfg.SyncIntervalS = 1800
	}
	return cfg
}

func saveClientConfig(path string, cfg *clientConfig) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save state: %v\n", err)
	}
}

func main() {
	flag.Parse()

	cfg := loadClientConfig(*configPath)

	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: enabling BLE stack failed: %v\n", err)
		os.Exit(1)
	}

	for {
		if err := syncOnce(adapter, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		} else {
			saveClientConfig(*configPath, cfg)
		}
		if *once {
			return
		}
		fmt.Printf("Next sync in %ds\n", cfg.SyncIntervalS)
		time.Sleep(time.Duration(cfg.SyncIntervalS) * time.Second)
	}
}

// findDevice scans until the remembered address or the configured name shows
// up, or the scan timeout stops the scan.
func findDevice(adapter *bluetooth.Adapter, cfg *clientConfig) (bluetooth.ScanResult, error) {
	var found bluetooth.ScanResult
	var ok bool

	timer := time.AfterFunc(time.Duration(cfg.ScanTimeoutS)*time.Second, func() {
		adapter.StopScan()
	})
	defer timer.Stop()

	err := adapter.Scan(func(a *bluetooth.Adapter, result bluetooth.ScanResult) {
		if cfg.LastDevice != nil && result.Address.String() == cfg.LastDevice.Address {
			found, ok = result, true
			a.StopScan()
			return
		}
		if result.LocalName() == *name {
			found, ok = result, true
			a.StopScan()
		}
	})
	if err != nil {
		return found, fmt.Errorf("scan failed: %w", err)
	}
	if !ok {
		return found, errors.New("device not found")
	}
	return found, nil
}

func syncOnce(adapter *bluetooth.Adapter, cfg *clientConfig) error {
	result, err := findDevice(adapter, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Found %s (%s)\n", result.LocalName(), result.Address.String())

	device, err := adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("connect failed: %w", err)
	}
	defer device.Disconnect()

	srvcs, err := device.DiscoverServices([]bluetooth.UUID{bluetooth.New16BitUUID(cts.ServiceUUID)})
	if err != nil || len(srvcs) == 0 {
		return fmt.Errorf("current time service not found: %v", err)
	}
	chars, err := srvcs[0].DiscoverCharacteristics([]bluetooth.UUID{bluetooth.New16BitUUID(cts.CurrentTimeUUID)})
	if err != nil || len(chars) == 0 {
		return fmt.Errorf("current time characteristic not found: %v", err)
	}
	char := chars[0]

	buf := make([]byte, cts.CurrentTimeLen)
	if n, err := char.Read(buf); err == nil {
		if t, derr := cts.DecodeCurrentTime(buf[:n]); derr == nil {
			fmt.Println("Peripheral time:", t)
		} else {
			fmt.Fprintf(os.Stderr, "Warning: peripheral sent malformed time: %v\n", derr)
		}
	}

	now := hostCalendarTime(time.Now())
	if _, err := char.WriteWithoutResponse(cts.EncodeCurrentTime(now, cts.AdjustManual)); err != nil {
		return fmt.Errorf("time write failed: %w", err)
	}
	fmt.Println("Wrote host time: ", now)

	cfg.LastDevice = &deviceInfo{Name: result.LocalName(), Address: result.Address.String()}
	return nil
}

// hostCalendarTime converts the host wall time to the CTS calendar form,
// mapping Go's Sunday-first weekday to ISO 1=Monday.
func hostCalendarTime(t time.Time) clock.CalendarTime {
	return clock.CalendarTime{
		Year:      uint16(t.Year()),
		Month:     uint8(t.Month()),
		Day:       uint8(t.Day()),
		Hour:      uint8(t.Hour()),
		Minute:    uint8(t.Minute()),
		Second:    uint8(t.Second()),
		DayOfWeek: uint8((int(t.Weekday())+6)%7) + 1,
	}
}

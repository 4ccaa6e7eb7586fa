//go:build linux

// Command ctsd runs the Current Time Service peripheral on a Linux host
// using the BlueZ backend of the BLE stack.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"tinygo.org/x/bluetooth"

	"bleclock/clock"
	"bleclock/config"
	"bleclock/core"
	"bleclock/cts"
	"bleclock/radio"
)

var (
	configPath = flag.String("config", "", "Path to JSON configuration file")
	verbose    = flag.Bool("verbose", false, "Enable diagnostic output")
)

func main() {
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read config: %v\n", err)
			os.Exit(1)
		}
		cfg, err = config.LoadConfig(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to parse config: %v\n", err)
			os.Exit(1)
		}
	}

	core.SetDebugWriter(func(s string) { fmt.Println(s) })
	if *verbose {
		core.SetDebugEnabled(true)
	}

	engine, err := clock.NewEngine(cfg.InitialTime, core.Millis())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: bad initial time: %v\n", err)
		os.Exit(1)
	}

	// BLE bring-up failure is fatal; everything after this point is
	// recoverable.
	ble := radio.New(bluetooth.DefaultAdapter)
	err = ble.Init(cfg.DeviceName,
		cts.EncodeLocalTimeInfo(cfg.TimeZoneQuarters, cfg.DSTOffset),
		cts.EncodeReferenceTimeInfo())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: starting BLE failed: %v\n", err)
		os.Exit(1)
	}

	ctrl := core.NewController(engine, ble, core.Options{
		TimeZoneQuarters: cfg.TimeZoneQuarters,
		DSTOffset:        cfg.DSTOffset,
		AdjustReason:     cfg.AdjustReason,
	})
	ble.SetEventSink(ctrl)

	if err := ble.Advertise(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: advertising failed to start: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: advertising Current Time Service\n", cfg.DeviceName)

	sched := core.NewScheduler()
	sched.Schedule(&core.Task{Period: cfg.PollPeriodMs, Handler: func(nowMs uint64) uint8 {
		ble.PollOnce()
		return core.TaskReschedule
	}})
	sched.Schedule(&core.Task{Period: cfg.TickPeriodMs, Handler: func(nowMs uint64) uint8 {
		engine.Advance(nowMs)
		return core.TaskReschedule
	}})
	sched.Schedule(&core.Task{Period: cfg.PushPeriodMs, Handler: func(nowMs uint64) uint8 {
		ctrl.OnPeriodicTick(nowMs)
		return core.TaskReschedule
	}})
	sched.Schedule(&core.Task{Period: cfg.PrintPeriodMs, Handler: func(nowMs uint64) uint8 {
		engine.Advance(nowMs)
		core.DebugPrintln("system time: " + engine.Snapshot().String())
		return core.TaskReschedule
	}})

	for {
		sched.Dispatch(core.Millis())
		time.Sleep(time.Millisecond)
	}
}

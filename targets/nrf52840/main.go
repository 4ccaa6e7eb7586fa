//go:build nrf52840

// Firmware main for nRF52840 boards: the Current Time Service peripheral
// with a status LED that blinks while advertising and stays solid while a
// central is connected.
package main

import (
	"time"

	"tinygo.org/x/bluetooth"

	"bleclock/clock"
	"bleclock/config"
	"bleclock/core"
	"bleclock/cts"
	"bleclock/radio"
)

func main() {
	// Give the USB console time to enumerate before the first prints.
	time.Sleep(time.Second)

	core.SetDebugWriter(func(s string) { println(s) })
	core.SetDebugEnabled(true)

	cfg := config.DefaultConfig()

	engine, err := clock.NewEngine(cfg.InitialTime, core.Millis())
	if err != nil {
		fail("bad initial time: " + err.Error())
	}

	ble := radio.New(bluetooth.DefaultAdapter)
	err = ble.Init(cfg.DeviceName,
		cts.EncodeLocalTimeInfo(cfg.TimeZoneQuarters, cfg.DSTOffset),
		cts.EncodeReferenceTimeInfo())
	if err != nil {
		fail("starting BLE failed: " + err.Error())
	}

	ctrl := core.NewController(engine, ble, core.Options{
		TimeZoneQuarters: cfg.TimeZoneQuarters,
		DSTOffset:        cfg.DSTOffset,
		AdjustReason:     cfg.AdjustReason,
	})
	ble.SetEventSink(ctrl)

	if err := ble.Advertise(); err != nil {
		fail("advertising failed to start: " + err.Error())
	}
	println(cfg.DeviceName + ": advertising Current Time Service")

	led := initLED()

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
	sched.Schedule(&core.Task{Period: cfg.BlinkPeriodMs, Handler: func(nowMs uint64) uint8 {
		if ctrl.Connected() {
			led.Set(true)
		} else {
			led.Toggle()
		}
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

// fail halts the firmware, repeating the message on the console so it
// survives a late monitor attach.
func fail(msg string) {
	for {
		println(msg)
		time.Sleep(2 * time.Second)
	}
}

// Package core implements the synchronization state machine that ties the
// calendar engine to the radio collaborator, plus the cooperative task
// scheduler and debug output used by the platform mains.
package core

import (
	"bleclock/clock"
	"bleclock/cts"
)

// Radio is the transport collaborator the controller drives. The real
// implementation sits on the BLE stack; tests use a fake.
type Radio interface {
	// WriteCharacteristic updates a characteristic value, notifying any
	// subscribed central.
	WriteCharacteristic(id cts.CharID, data []byte) error

	// Advertise starts (or resumes) advertising.
	Advertise() error

	// StopAdvertise stops advertising.
	StopAdvertise() error
}

// EventSink receives connection and write events from the radio, one at a
// time. Controller implements it.
type EventSink interface {
	OnConnect(device string)
	OnDisconnect(device string)
	OnClientWrite(data []byte)
}

// Options carries the configuration constants the controller encodes into
// characteristic values.
type Options struct {
	// TimeZoneQuarters is the fixed local time zone in 15-minute units east
	// of UTC.
	TimeZoneQuarters int8

	// DSTOffset is the fixed DST offset value (0 = standard time).
	DSTOffset uint8

	// AdjustReason is the sentinel sent in the next Current Time push after
	// a client writes the time. Zero disables the convention.
	AdjustReason uint8

	// NowMs supplies the monotonic millisecond counter used when a client
	// write resets the tick baseline. Defaults to Millis.
	NowMs func() uint64
}

// Controller is the two-state (disconnected/connected) synchronization
// machine. All methods must be called from the single cooperative main loop;
// the controller holds no locks.
type Controller struct {
	engine *clock.Engine
	radio  Radio
	opts   Options

	connected bool
	device    string // borrowed identifier of the bound central

	// adjustPending is armed by a successful client time write and cleared
	// by the next Current Time push that reaches the radio.
	adjustPending bool
}

// NewController creates a controller in the disconnected state.
func NewController(engine *clock.Engine, radio Radio, opts Options) *Controller {
	if opts.NowMs == nil {
		opts.NowMs = Millis
	}
	return &Controller{engine: engine, radio: radio, opts: opts}
}

// Connected reports whether a central is currently bound.
func (c *Controller) Connected() bool {
	return c.connected
}

// Device returns the identifier of the bound central, or "" while
// disconnected.
func (c *Controller) Device() string {
	return c.device
}

// OnConnect binds the central and pushes all three characteristic values.
// A duplicate connect notification is benign and ignored.
func (c *Controller) OnConnect(device string) {
	if c.connected {
		DebugPrintln("cts: duplicate connect from " + device + " ignored")
		return
	}
	c.connected = true
	c.device = device
	DebugPrintln("cts: connected to " + device)

	c.pushCurrentTime()
	c.push(cts.CharLocalTimeInfo,
		cts.EncodeLocalTimeInfo(c.opts.TimeZoneQuarters, c.opts.DSTOffset))
	c.push(cts.CharReferenceTimeInfo, cts.EncodeReferenceTimeInfo())
}

// OnDisconnect clears the bound central and resumes advertising. A duplicate
// disconnect notification is benign and ignored.
func (c *Controller) OnDisconnect(device string) {
	if !c.connected {
		DebugPrintln("cts: disconnect from " + device + " while not connected, ignored")
		return
	}
	c.connected = false
	c.device = ""
	DebugPrintln("cts: disconnected from " + device)

	if err := c.radio.Advertise(); err != nil {
		DebugPrintln("cts: failed to resume advertising: " + err.Error())
	}
}

// OnPeriodicTick advances the clock and re-pushes the Current Time value.
// Local and reference time info are static per connection and are not
// re-pushed. No-op while disconnected.
func (c *Controller) OnPeriodicTick(nowMs uint64) {
	if !c.connected {
		return
	}
	c.engine.Advance(nowMs)
	c.pushCurrentTime()
}

// OnClientWrite installs an externally supplied time. Decode or validation
// failures leave the clock untouched and are only reported. A successful
// write makes the client's time authoritative from this instant and arms the
// adjust-reason sentinel for the next push.
func (c *Controller) OnClientWrite(data []byte) {
	t, err := cts.DecodeCurrentTime(data)
	if err != nil {
		DebugPrintln("cts: rejected time write: " + err.Error())
		return
	}
	if err := c.engine.SetTime(t, c.opts.NowMs()); err != nil {
		DebugPrintln("cts: rejected time write: " + err.Error())
		return
	}
	if c.opts.AdjustReason != cts.AdjustNone {
		c.adjustPending = true
	}
	DebugPrintln("cts: time set by client to " + t.String())
}

// pushCurrentTime encodes and pushes the Current Time value. While the
// sentinel is pending it rides along until a push succeeds, so a failed push
// cannot lose it.
func (c *Controller) pushCurrentTime() {
	reason := cts.AdjustNone
	if c.adjustPending {
		reason = c.opts.AdjustReason
	}
	data := cts.EncodeCurrentTime(c.engine.Snapshot(), reason)
	if err := c.radio.WriteCharacteristic(cts.CharCurrentTime, data); err != nil {
		// Recoverable: the tick cadence retries on the next period.
		DebugPrintln("cts: current time push failed: " + err.Error())
		return
	}
	c.adjustPending = false
}

// push writes a static characteristic value, logging failures.
func (c *Controller) push(id cts.CharID, data []byte) {
	if err := c.radio.WriteCharacteristic(id, data); err != nil {
		DebugPrintln("cts: " + id.String() + " push failed: " + err.Error())
	}
}

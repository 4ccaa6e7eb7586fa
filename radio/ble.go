// Package radio adapts the BLE stack to the controller: it registers the
// Current Time Service, advertises it, and turns stack callbacks into
// queued events the cooperative main loop drains one at a time.
package radio

import (
	"errors"

	"tinygo.org/x/bluetooth"

	"bleclock/core"
	"bleclock/cts"
)

// ErrUnknownCharacteristic indicates a write to a characteristic the service
// does not expose.
var ErrUnknownCharacteristic = errors.New("unknown characteristic")

// eventQueueSize bounds the callback-to-loop queue. Events past the bound
// are dropped; the poll cadence keeps the queue near empty in practice.
const eventQueueSize = 16

type eventKind uint8

const (
	evtConnect eventKind = iota
	evtDisconnect
	evtWrite
)

type event struct {
	kind   eventKind
	device string
	data   []byte
}

// BLE implements core.Radio on top of tinygo.org/x/bluetooth. Stack
// callbacks arrive on foreign goroutines and only post into the event
// queue; all dispatch to the sink happens in PollOnce on the main loop, so
// the core sees events one at a time.
type BLE struct {
	adapter *bluetooth.Adapter
	adv     *bluetooth.Advertisement

	currentTime bluetooth.Characteristic
	localTime   bluetooth.Characteristic
	refTime     bluetooth.Characteristic

	events chan event
	sink   core.EventSink
}

// New creates a BLE radio on the given adapter (normally
// bluetooth.DefaultAdapter).
func New(adapter *bluetooth.Adapter) *BLE {
	return &BLE{
		adapter: adapter,
		events:  make(chan event, eventQueueSize),
	}
}

// Init enables the BLE stack, registers the Current Time Service with the
// given static characteristic values, and configures advertising under
// deviceName. A failure here is startup-fatal for the caller.
func (b *BLE) Init(deviceName string, localTimeInfo, refTimeInfo []byte) error {
	if err := b.adapter.Enable(); err != nil {
		return err
	}

	b.adapter.SetConnectHandler(func(device bluetooth.Device, connected bool) {
		kind := evtDisconnect
		if connected {
			kind = evtConnect
		}
		b.post(event{kind: kind, device: device.Address.String()})
	})

	err := b.adapter.AddService(&bluetooth.Service{
		UUID: bluetooth.New16BitUUID(cts.ServiceUUID),
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				Handle: &b.currentTime,
				UUID:   bluetooth.New16BitUUID(cts.CurrentTimeUUID),
				Flags: bluetooth.CharacteristicReadPermission |
					bluetooth.CharacteristicNotifyPermission |
					bluetooth.CharacteristicWritePermission,
				WriteEvent: func(client bluetooth.Connection, offset int, value []byte) {
					if offset != 0 {
						return
					}
					// The stack reuses the value buffer after the callback
					// returns.
					data := make([]byte, len(value))
					copy(data, value)
					b.post(event{kind: evtWrite, data: data})
				},
			},
			{
				Handle: &b.localTime,
				UUID:   bluetooth.New16BitUUID(cts.LocalTimeInfoUUID),
				Value:  localTimeInfo,
				Flags:  bluetooth.CharacteristicReadPermission,
			},
			{
				Handle: &b.refTime,
				UUID:   bluetooth.New16BitUUID(cts.ReferenceTimeInfoUUID),
				Value:  refTimeInfo,
				Flags:  bluetooth.CharacteristicReadPermission,
			},
		},
	})
	if err != nil {
		return err
	}

	b.adv = b.adapter.DefaultAdvertisement()
	return b.adv.Configure(bluetooth.AdvertisementOptions{
		LocalName:    deviceName,
		ServiceUUIDs: []bluetooth.UUID{bluetooth.New16BitUUID(cts.ServiceUUID)},
	})
}

// SetEventSink registers the sink PollOnce dispatches into. Must be set
// before the first PollOnce.
func (b *BLE) SetEventSink(sink core.EventSink) {
	b.sink = sink
}

// post queues an event from a stack callback. Never blocks: a full queue
// drops the event rather than stalling the BLE stack.
func (b *BLE) post(e event) {
	select {
	case b.events <- e:
	default:
		core.DebugPrintln("radio: event queue full, dropping event")
	}
}

// PollOnce drains queued radio events and dispatches them to the sink in
// arrival order. Called only from the cooperative main loop.
func (b *BLE) PollOnce() {
	for {
		select {
		case e := <-b.events:
			switch e.kind {
			case evtConnect:
				b.sink.OnConnect(e.device)
			case evtDisconnect:
				b.sink.OnDisconnect(e.device)
			case evtWrite:
				b.sink.OnClientWrite(e.data)
			}
		default:
			return
		}
	}
}

// Advertise starts (or resumes) advertising.
func (b *BLE) Advertise() error {
	return b.adv.Start()
}

// StopAdvertise stops advertising.
func (b *BLE) StopAdvertise() error {
	return b.adv.Stop()
}

// WriteCharacteristic updates one of the three service characteristics,
// notifying a subscribed central where the characteristic supports it.
func (b *BLE) WriteCharacteristic(id cts.CharID, data []byte) error {
	var ch *bluetooth.Characteristic
	switch id {
	case cts.CharCurrentTime:
		ch = &b.currentTime
	case cts.CharLocalTimeInfo:
		ch = &b.localTime
	case cts.CharReferenceTimeInfo:
		ch = &b.refTime
	default:
		return ErrUnknownCharacteristic
	}
	n, err := ch.Write(data)
	if err != nil {
		return err
	}
	if n != len(data) {
		return errors.New("short characteristic write")
	}
	return nil
}

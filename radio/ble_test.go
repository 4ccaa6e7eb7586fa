package radio

import (
	"bytes"
	"testing"
)

type recordedEvent struct {
	kind   string
	device string
	data   []byte
}

type recordingSink struct {
	events []recordedEvent
}

func (r *recordingSink) OnConnect(device string) {
	r.events = append(r.events, recordedEvent{kind: "connect", device: device})
}

func (r *recordingSink) OnDisconnect(device string) {
	r.events = append(r.events, recordedEvent{kind: "disconnect", device: device})
}

func (r *recordingSink) OnClientWrite(data []byte) {
	r.events = append(r.events, recordedEvent{kind: "write", data: data})
}

func TestPollOnceDispatchesInArrivalOrder(t *testing.T) {
	b := New(nil)
	sink := &recordingSink{}
	b.SetEventSink(sink)

	b.post(event{kind: evtConnect, device: "AA:BB"})
	b.post(event{kind: evtWrite, data: []byte{1, 2, 3}})
	b.post(event{kind: evtDisconnect, device: "AA:BB"})

	b.PollOnce()

	if len(sink.events) != 3 {
		t.Fatalf("dispatched %d events, expected 3", len(sink.events))
	}
	if sink.events[0].kind != "connect" || sink.events[0].device != "AA:BB" {
		t.Errorf("event 0 = %+v", sink.events[0])
	}
	if sink.events[1].kind != "write" || !bytes.Equal(sink.events[1].data, []byte{1, 2, 3}) {
		t.Errorf("event 1 = %+v", sink.events[1])
	}
	if sink.events[2].kind != "disconnect" {
		t.Errorf("event 2 = %+v", sink.events[2])
	}
}

func TestPollOnceWithEmptyQueueReturns(t *testing.T) {
	b := New(nil)
	sink := &recordingSink{}
	b.SetEventSink(sink)

	b.PollOnce()

	if len(sink.events) != 0 {
		t.Errorf("dispatched %d events from an empty queue", len(sink.events))
	}
}

func TestPostDropsWhenQueueFull(t *testing.T) {
	b := New(nil)
	sink := &recordingSink{}
	b.SetEventSink(sink)

	for i := 0; i < eventQueueSize+5; i++ {
		b.post(event{kind: evtConnect, device: "AA:BB"})
	}

	b.PollOnce()
	if len(sink.events) != eventQueueSize {
		t.Errorf("dispatched %d events, expected the queue bound %d", len(sink.events), eventQueueSize)
	}
}

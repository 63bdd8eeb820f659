package gamepad

import (
	"context"
	"errors"
	"testing"
	"time"
)

func drainStatus(p *Poller) []StatusEvent {
	var out []StatusEvent
	for {
		select {
		case ev := <-p.status:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func drainButtons(p *Poller) []ButtonEvent {
	var out []ButtonEvent
	for {
		select {
		case ev := <-p.buttons:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestPollerHotPlugRoundTrip(t *testing.T) {
	d := newFakeDriver()
	d.addDevice(5, "Test Pad", true)
	p := NewPoller(d, DefaultTick)

	d.push(Event{Kind: EventDeviceAdded, Device: 5})
	p.processEvents()

	status := drainStatus(p)
	if len(status) != 1 || !status[0].Connected || status[0].Name != "Test Pad" {
		t.Fatalf("after add: status = %+v, want one connected event", status)
	}

	d.push(Event{Kind: EventDeviceRemoved, Device: 5})
	p.processEvents()

	status = drainStatus(p)
	if len(status) != 1 || status[0].Connected || status[0].Name != "Test Pad" {
		t.Fatalf("after remove: status = %+v, want one disconnected event", status)
	}
	if p.registry.Len() != 0 || p.registry.HapticCount() != 0 {
		t.Error("registry not empty after removal")
	}
}

func TestPollerButtonMapping(t *testing.T) {
	d := newFakeDriver()
	p := NewPoller(d, DefaultTick)

	d.push(
		Event{Kind: EventButtonDown, Button: ButtonSouth},
		Event{Kind: EventButtonDown, Button: ButtonGuide},
		Event{Kind: EventButtonDown, Button: Button(200)}, // unmapped, suppressed
	)
	p.processEvents()

	got := drainButtons(p)
	if len(got) != 2 {
		t.Fatalf("got %d button events, want 2", len(got))
	}
	if got[0].Button != 0 || got[1].Button != 16 {
		t.Errorf("button indices = [%d %d], want [0 16]", got[0].Button, got[1].Button)
	}
}

func TestPollerTriggerPulses(t *testing.T) {
	d := newFakeDriver()
	p := NewPoller(d, DefaultTick)

	// Left trigger crosses once with chatter above the threshold, then
	// releases; right trigger never crosses.
	d.push(
		Event{Kind: EventAxisMotion, Axis: AxisLeftTrigger, Value: 9000},
		Event{Kind: EventAxisMotion, Axis: AxisLeftTrigger, Value: 20000},
		Event{Kind: EventAxisMotion, Axis: AxisLeftTrigger, Value: 9000},
		Event{Kind: EventAxisMotion, Axis: AxisLeftTrigger, Value: 1000},
		Event{Kind: EventAxisMotion, Axis: AxisRightTrigger, Value: 3000},
	)
	p.processEvents()

	got := drainButtons(p)
	if len(got) != 1 || got[0].Button != W3CLeftTrigger {
		t.Fatalf("trigger events = %+v, want exactly one press of button 6", got)
	}

	// A second crossing after release fires again.
	d.push(Event{Kind: EventAxisMotion, Axis: AxisLeftTrigger, Value: 9000})
	p.processEvents()
	if got := drainButtons(p); len(got) != 1 {
		t.Fatalf("second crossing: got %d events, want 1", len(got))
	}
}

func TestPollerRemovalResetsTriggerGates(t *testing.T) {
	d := newFakeDriver()
	d.addDevice(1, "Pad", false)
	p := NewPoller(d, DefaultTick)

	d.push(
		Event{Kind: EventDeviceAdded, Device: 1},
		Event{Kind: EventAxisMotion, Axis: AxisLeftTrigger, Value: 9000},
		Event{Kind: EventDeviceRemoved, Device: 1},
	)
	p.processEvents()
	drainStatus(p)
	drainButtons(p)

	// Gate was reset by the removal, so the next crossing pulses again
	// without ever dropping below half threshold.
	d.push(Event{Kind: EventAxisMotion, Axis: AxisLeftTrigger, Value: 9000})
	p.processEvents()
	if got := drainButtons(p); len(got) != 1 {
		t.Errorf("got %d events after removal reset, want 1", len(got))
	}
}

func TestPollerRemoveUnknownLeavesStateUnchanged(t *testing.T) {
	d := newFakeDriver()
	d.addDevice(1, "Pad", true)
	p := NewPoller(d, DefaultTick)

	d.push(Event{Kind: EventDeviceAdded, Device: 1})
	p.processEvents()
	drainStatus(p)

	d.push(Event{Kind: EventDeviceRemoved, Device: 42})
	p.processEvents()

	if got := drainStatus(p); len(got) != 0 {
		t.Errorf("unknown removal emitted %d status events", len(got))
	}
	if p.registry.Len() != 1 {
		t.Errorf("registry len = %d, want 1", p.registry.Len())
	}
}

func TestPollerEmissionNeverBlocks(t *testing.T) {
	d := newFakeDriver()
	p := NewPoller(d, DefaultTick)

	// Nobody reads the buttons channel; overflow must be dropped.
	for i := 0; i < eventChanSize*2; i++ {
		d.push(Event{Kind: EventButtonDown, Button: ButtonSouth})
	}
	done := make(chan struct{})
	go func() {
		p.processEvents()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("processEvents blocked on a full event channel")
	}
}

func TestPollerRumbleEnqueuesForNextDrain(t *testing.T) {
	d := newFakeDriver()
	dev := d.addDevice(1, "Pad", true)
	p := NewPoller(d, DefaultTick)

	d.push(Event{Kind: EventDeviceAdded, Device: 1})
	p.processEvents()

	if !p.Rumble(0.5, 200*time.Millisecond) {
		t.Fatal("Rumble enqueue failed")
	}
	p.dispatcher.Drain()

	if len(dev.haptic.calls) != 1 {
		t.Fatalf("got %d rumble calls, want 1", len(dev.haptic.calls))
	}
	call := dev.haptic.calls[0]
	if call.strength != 0.5 || call.duration != 200*time.Millisecond {
		t.Errorf("rumble call = %+v", call)
	}
}

func TestPollerRunInitFailureIsFatal(t *testing.T) {
	d := newFakeDriver()
	d.initErr = errors.New("no controller subsystem")
	p := NewPoller(d, time.Millisecond)

	if err := p.Run(context.Background()); err == nil {
		t.Fatal("Run returned nil for failing driver init")
	}
}

func TestPollerRunStopsOnCancel(t *testing.T) {
	d := newFakeDriver()
	d.addDevice(1, "Pad", false)
	d.attached = []DeviceID{1}
	p := NewPoller(d, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v on cancel", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on context cancel")
	}
	if d.quits != 1 {
		t.Errorf("driver Quit called %d times, want 1", d.quits)
	}
}

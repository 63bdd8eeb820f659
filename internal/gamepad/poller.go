package gamepad

import (
	"context"
	"log"
	"runtime"
	"time"
)

// DefaultTick is the poll loop cadence, ~120Hz.
const DefaultTick = 8 * time.Millisecond

const eventChanSize = 64

// StatusEvent reports a controller being attached or detached.
type StatusEvent struct {
	Connected bool   `json:"connected"`
	Name      string `json:"name"`
}

// ButtonEvent reports one normalized button press (W3C index 0-16).
type ButtonEvent struct {
	Button uint8 `json:"button"`
}

// Poller is the single goroutine that owns all controller state: the device
// registry, the trigger gates and the haptic dispatcher. It pumps hardware
// events, normalizes them onto the outbound channels and fans inbound haptic
// requests back out to the devices.
type Poller struct {
	driver     Driver
	registry   *Registry
	dispatcher *Dispatcher
	leftGate   TriggerGate
	rightGate  TriggerGate
	tick       time.Duration

	status  chan StatusEvent
	buttons chan ButtonEvent
}

func NewPoller(driver Driver, tick time.Duration) *Poller {
	if tick <= 0 {
		tick = DefaultTick
	}
	registry := NewRegistry(driver)
	return &Poller{
		driver:     driver,
		registry:   registry,
		dispatcher: NewDispatcher(registry),
		tick:       tick,
		status:     make(chan StatusEvent, eventChanSize),
		buttons:    make(chan ButtonEvent, eventChanSize),
	}
}

// Status returns the channel of hot-plug notifications.
func (p *Poller) Status() <-chan StatusEvent {
	return p.status
}

// Buttons returns the channel of normalized button presses.
func (p *Poller) Buttons() <-chan ButtonEvent {
	return p.buttons
}

// Rumble enqueues a haptic request for the next tick. Strength must already
// be clamped to [0,1] by the caller-facing boundary. Returns false when the
// queue is full. Safe to call from any goroutine.
func (p *Poller) Rumble(strength float64, duration time.Duration) bool {
	return p.dispatcher.Enqueue(HapticRequest{
		Strength:   strength,
		DurationMS: uint32(duration / time.Millisecond),
	})
}

// Run acquires the hardware subsystems and polls until ctx is cancelled.
// Must be called from its own goroutine; it locks the OS thread for SDL.
// A subsystem acquisition failure is fatal and returned immediately; after
// that the loop only ever skips individual devices, it never stops.
func (p *Poller) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := p.driver.Init(); err != nil {
		return err
	}
	defer p.driver.Quit()

	log.Println("Controller subsystem initialized")

	// Open any already-connected controllers
	for _, ev := range p.registry.Populate() {
		p.emitStatus(ev)
	}

	for {
		select {
		case <-ctx.Done():
			p.registry.CloseAll()
			return nil
		default:
		}

		p.processEvents()
		p.dispatcher.Drain()
		time.Sleep(p.tick)
	}
}

func (p *Poller) processEvents() {
	for {
		ev, ok := p.driver.Poll()
		if !ok {
			return
		}

		switch ev.Kind {
		case EventDeviceAdded:
			if st, ok := p.registry.Open(ev.Device); ok {
				p.emitStatus(st)
			}

		case EventDeviceRemoved:
			if st, ok := p.registry.Remove(ev.Device); ok {
				p.emitStatus(st)
				// The removed pad may have held a trigger mid-press.
				p.leftGate.Reset()
				p.rightGate.Reset()
			}

		case EventButtonDown:
			if idx := ButtonToW3C(ev.Button); idx != Unmapped {
				p.emitButton(ButtonEvent{Button: idx})
			}

		case EventAxisMotion:
			switch ev.Axis {
			case AxisLeftTrigger:
				if p.leftGate.Sample(ev.Value) {
					p.emitButton(ButtonEvent{Button: W3CLeftTrigger})
				}
			case AxisRightTrigger:
				if p.rightGate.Sample(ev.Value) {
					p.emitButton(ButtonEvent{Button: W3CRightTrigger})
				}
			}
		}
	}
}

// Emission is fire-and-forget: a lagging consumer loses events rather than
// stalling the poll loop.

func (p *Poller) emitStatus(ev StatusEvent) {
	select {
	case p.status <- ev:
	default:
	}
}

func (p *Poller) emitButton(ev ButtonEvent) {
	select {
	case p.buttons <- ev:
	default:
	}
}

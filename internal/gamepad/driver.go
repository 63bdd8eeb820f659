package gamepad

import "time"

// DeviceID is the stable instance identifier of an attached controller.
// It survives for the lifetime of one attachment; a re-plugged device gets a
// new id.
type DeviceID uint32

// EventKind discriminates the events a Driver reports.
type EventKind uint8

const (
	EventNone EventKind = iota
	EventDeviceAdded
	EventDeviceRemoved
	EventButtonDown
	EventAxisMotion
)

// Event is one pending hardware event. Which fields are meaningful depends on
// Kind: Device is always set, Button only for EventButtonDown, Axis/Value only
// for EventAxisMotion.
type Event struct {
	Kind   EventKind
	Device DeviceID
	Button Button
	Axis   Axis
	Value  int16
}

// Controller is an open handle to one attached device.
type Controller interface {
	ID() DeviceID
	Name() string
	Close()
}

// Haptic is the optional rumble capability of a controller. Rumble replays a
// timed vibration scaled by strength in [0,1]; failures are reported but
// callers treat them as best-effort.
type Haptic interface {
	Rumble(strength float64, duration time.Duration) error
}

// Driver abstracts the hardware event source so the poll loop and registry
// can be exercised without real devices. The production implementation is
// SDLDriver.
type Driver interface {
	// Init acquires the controller subsystems. Failure is fatal to the
	// feature: the poll loop cannot run at all.
	Init() error
	Quit()

	// Gamepads enumerates every attached device that declares controller
	// capability, for initial registry population.
	Gamepads() []DeviceID

	// Open opens the device and best-effort acquires its haptic capability.
	// The returned Haptic is nil when the device has no rumble support;
	// that is not an error.
	Open(id DeviceID) (Controller, Haptic, error)

	// Poll returns the next pending event, or ok=false when none remain.
	// It never blocks.
	Poll() (ev Event, ok bool)
}

package gamepad

import (
	"errors"
	"time"
)

// Test doubles shared across the package tests.

type rumbleCall struct {
	strength float64
	duration time.Duration
}

type fakeHaptic struct {
	calls []rumbleCall
	err   error
}

func (h *fakeHaptic) Rumble(strength float64, duration time.Duration) error {
	h.calls = append(h.calls, rumbleCall{strength, duration})
	return h.err
}

type fakeController struct {
	id     DeviceID
	name   string
	closed bool
}

func (c *fakeController) ID() DeviceID { return c.id }
func (c *fakeController) Name() string { return c.name }
func (c *fakeController) Close()       { c.closed = true }

type fakeDevice struct {
	name    string
	haptic  *fakeHaptic
	openErr error
}

type fakeDriver struct {
	initErr  error
	quits    int
	attached []DeviceID
	devices  map[DeviceID]*fakeDevice
	events   []Event
	opened   map[DeviceID]*fakeController
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		devices: make(map[DeviceID]*fakeDevice),
		opened:  make(map[DeviceID]*fakeController),
	}
}

func (d *fakeDriver) addDevice(id DeviceID, name string, rumble bool) *fakeDevice {
	dev := &fakeDevice{name: name}
	if rumble {
		dev.haptic = &fakeHaptic{}
	}
	d.devices[id] = dev
	return dev
}

func (d *fakeDriver) Init() error { return d.initErr }
func (d *fakeDriver) Quit()       { d.quits++ }

func (d *fakeDriver) Gamepads() []DeviceID { return d.attached }

func (d *fakeDriver) Open(id DeviceID) (Controller, Haptic, error) {
	dev, ok := d.devices[id]
	if !ok {
		return nil, nil, errors.New("no such device")
	}
	if dev.openErr != nil {
		return nil, nil, dev.openErr
	}
	c := &fakeController{id: id, name: dev.name}
	d.opened[id] = c
	if dev.haptic != nil {
		return c, dev.haptic, nil
	}
	return c, nil, nil
}

func (d *fakeDriver) Poll() (Event, bool) {
	if len(d.events) == 0 {
		return Event{}, false
	}
	ev := d.events[0]
	d.events = d.events[1:]
	return ev, true
}

func (d *fakeDriver) push(evs ...Event) {
	d.events = append(d.events, evs...)
}

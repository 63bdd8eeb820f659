package gamepad

import (
	"errors"
	"time"

	"github.com/jupiterrider/purego-sdl3/sdl"
)

// SDLDriver implements Driver on SDL3's gamepad subsystem. It is the only
// file that talks to SDL; everything above it works on the Driver interface.
type SDLDriver struct{}

func (SDLDriver) Init() error {
	if !sdl.Init(sdl.InitJoystick | sdl.InitGamepad) {
		return errors.New(sdl.GetError())
	}
	return nil
}

func (SDLDriver) Quit() {
	sdl.Quit()
}

func (SDLDriver) Gamepads() []DeviceID {
	ids := sdl.GetGamepads()
	out := make([]DeviceID, 0, len(ids))
	for _, id := range ids {
		out = append(out, DeviceID(id))
	}
	return out
}

func (SDLDriver) Open(id DeviceID) (Controller, Haptic, error) {
	pad := sdl.OpenGamepad(sdl.JoystickID(id))
	if pad == nil {
		return nil, nil, errors.New(sdl.GetError())
	}

	controller := &sdlController{
		pad:  pad,
		id:   id,
		name: sdl.GetGamepadName(pad),
	}

	// The binding does not wrap SDL_RumbleGamepad, so rumble goes through
	// the underlying joystick, which shares the gamepad's instance id.
	joy := sdl.GetJoystickFromID(sdl.JoystickID(id))

	// Probe rumble support with a zero-amplitude pulse. Pads without a
	// rumble capability fail the call and get no haptic handle.
	var haptic Haptic
	if sdl.RumbleJoystick(joy, 0, 0, 0) {
		haptic = &sdlHaptic{joy: joy}
	}

	return controller, haptic, nil
}

func (SDLDriver) Poll() (Event, bool) {
	var ev sdl.Event
	for sdl.PollEvent(&ev) {
		switch ev.Type() {
		case sdl.EventGamepadAdded:
			return Event{Kind: EventDeviceAdded, Device: DeviceID(ev.GDevice().Which)}, true

		case sdl.EventGamepadRemoved:
			return Event{Kind: EventDeviceRemoved, Device: DeviceID(ev.GDevice().Which)}, true

		case sdl.EventGamepadButtonDown:
			be := ev.GButton()
			return Event{
				Kind:   EventButtonDown,
				Device: DeviceID(be.Which),
				Button: Button(be.Button),
			}, true

		case sdl.EventGamepadAxisMotion:
			ae := ev.GAxis()
			return Event{
				Kind:   EventAxisMotion,
				Device: DeviceID(ae.Which),
				Axis:   Axis(ae.Axis),
				Value:  int16(ae.Value),
			}, true
		}
		// Unrelated event types are skipped.
	}
	return Event{}, false
}

type sdlController struct {
	pad  *sdl.Gamepad
	id   DeviceID
	name string
}

func (c *sdlController) ID() DeviceID { return c.id }
func (c *sdlController) Name() string { return c.name }
func (c *sdlController) Close()       { sdl.CloseGamepad(c.pad) }

type sdlHaptic struct {
	joy *sdl.Joystick
}

// Rumble scales strength in [0,1] linearly into the 16-bit amplitude range:
// the low-frequency motor runs at 0.3x strength, the high-frequency motor at
// full strength.
func (h *sdlHaptic) Rumble(strength float64, duration time.Duration) error {
	low := uint16(strength * 0.3 * 65535)
	high := uint16(strength * 65535)
	ms := uint32(duration / time.Millisecond)
	if !sdl.RumbleJoystick(h.joy, low, high, ms) {
		return errors.New(sdl.GetError())
	}
	return nil
}

package gamepad

// Button identifies a controller button by its vendor (SDL3 gamepad) meaning.
// Values mirror the SDL3 SDL_GamepadButton ordering so the driver layer can
// convert with a plain cast.
type Button uint8

const (
	ButtonSouth Button = iota // A / Cross
	ButtonEast                // B / Circle
	ButtonWest                // X / Square
	ButtonNorth               // Y / Triangle
	ButtonBack
	ButtonGuide
	ButtonStart
	ButtonLeftStick
	ButtonRightStick
	ButtonLeftShoulder
	ButtonRightShoulder
	ButtonDpadUp
	ButtonDpadDown
	ButtonDpadLeft
	ButtonDpadRight
)

// Axis identifies a controller axis, mirroring SDL_GamepadAxis ordering.
type Axis uint8

const (
	AxisLeftX Axis = iota
	AxisLeftY
	AxisRightX
	AxisRightY
	AxisLeftTrigger
	AxisRightTrigger
)

// Unmapped is returned by ButtonToW3C for buttons outside the fixed table.
// Events for unmapped buttons are suppressed, never forwarded.
const Unmapped uint8 = 255

// W3C indices reserved for the analog triggers, synthesized from axis motion
// rather than button events.
const (
	W3CLeftTrigger  uint8 = 6
	W3CRightTrigger uint8 = 7
)

// ButtonToW3C translates a vendor button into its W3C Gamepad API index.
// The table is fixed: downstream consumers rely on this exact numbering, so
// existing gamepad binding configs keep working unchanged.
func ButtonToW3C(b Button) uint8 {
	switch b {
	case ButtonSouth:
		return 0
	case ButtonEast:
		return 1
	case ButtonWest:
		return 2
	case ButtonNorth:
		return 3
	case ButtonLeftShoulder:
		return 4
	case ButtonRightShoulder:
		return 5
	// 6 = LT, 7 = RT, synthesized from trigger axes
	case ButtonBack:
		return 8
	case ButtonStart:
		return 9
	case ButtonLeftStick:
		return 10
	case ButtonRightStick:
		return 11
	case ButtonDpadUp:
		return 12
	case ButtonDpadDown:
		return 13
	case ButtonDpadLeft:
		return 14
	case ButtonDpadRight:
		return 15
	case ButtonGuide:
		return 16
	default:
		return Unmapped
	}
}

// TriggerThreshold is the raw axis value above which a trigger counts as
// pressed. The release point sits at half of it, giving the gate its
// hysteresis band.
const (
	TriggerThreshold int16 = 8000
	triggerRelease   int16 = TriggerThreshold / 2
)

// TriggerGate converts an analog trigger axis into press-only button pulses.
// One-sided hysteresis: Sample reports true exactly once per upward crossing
// of TriggerThreshold and re-arms only after the value falls below half the
// threshold. There is no release event; the external protocol models triggers
// as press-only pulses.
type TriggerGate struct {
	pressed bool
}

// Sample feeds one raw axis value and reports whether a press pulse fires.
func (g *TriggerGate) Sample(value int16) bool {
	if value > TriggerThreshold && !g.pressed {
		g.pressed = true
		return true
	}
	if value < triggerRelease {
		g.pressed = false
	}
	return false
}

// Reset re-arms the gate. Called when the owning controller is removed.
func (g *TriggerGate) Reset() {
	g.pressed = false
}

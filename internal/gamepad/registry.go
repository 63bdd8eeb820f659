package gamepad

import "log"

// entry pairs an open controller with its optional haptic handle. Keeping the
// two in one record, keyed by instance id, makes it impossible for the
// controller and haptic bookkeeping to fall out of step on removal.
type entry struct {
	controller Controller
	haptic     Haptic // nil when the device has no rumble support
	name       string
}

// Registry tracks the currently attached controllers. It is owned by the poll
// loop goroutine; nothing else touches it.
type Registry struct {
	driver  Driver
	entries map[DeviceID]*entry
}

func NewRegistry(driver Driver) *Registry {
	return &Registry{
		driver:  driver,
		entries: make(map[DeviceID]*entry),
	}
}

// Open opens the device at id and records it. On success it returns the
// connected status event to emit. A device that fails to open is skipped
// (logged, absent from the registry, ok=false); an id that is already present
// is a no-op.
func (r *Registry) Open(id DeviceID) (StatusEvent, bool) {
	if _, exists := r.entries[id]; exists {
		return StatusEvent{}, false
	}

	controller, haptic, err := r.driver.Open(id)
	if err != nil {
		log.Printf("Failed to open controller %d: %v", id, err)
		return StatusEvent{}, false
	}

	name := controller.Name()
	r.entries[controller.ID()] = &entry{
		controller: controller,
		haptic:     haptic,
		name:       name,
	}

	log.Printf("Controller connected: %s (ID=%d, rumble=%t)", name, controller.ID(), haptic != nil)
	return StatusEvent{Connected: true, Name: name}, true
}

// Remove closes and forgets the device with the given instance id, returning
// the disconnected status event to emit. Unknown ids are a no-op.
func (r *Registry) Remove(id DeviceID) (StatusEvent, bool) {
	e, exists := r.entries[id]
	if !exists {
		return StatusEvent{}, false
	}

	log.Printf("Controller disconnected: %s", e.name)
	e.controller.Close()
	delete(r.entries, id)

	return StatusEvent{Connected: false, Name: e.name}, true
}

// Populate opens every already-attached controller through the same path as
// hot-plug additions. Returns the status events to emit, one per device that
// opened successfully.
func (r *Registry) Populate() []StatusEvent {
	var events []StatusEvent
	for _, id := range r.driver.Gamepads() {
		if ev, ok := r.Open(id); ok {
			events = append(events, ev)
		}
	}
	return events
}

// ForEachHaptic calls fn once per entry that holds a haptic handle.
func (r *Registry) ForEachHaptic(fn func(Haptic)) {
	for _, e := range r.entries {
		if e.haptic != nil {
			fn(e.haptic)
		}
	}
}

// Len reports the number of attached controllers.
func (r *Registry) Len() int {
	return len(r.entries)
}

// HapticCount reports how many attached controllers are rumble-capable.
func (r *Registry) HapticCount() int {
	n := 0
	for _, e := range r.entries {
		if e.haptic != nil {
			n++
		}
	}
	return n
}

// CloseAll closes every open controller, for shutdown.
func (r *Registry) CloseAll() {
	for id, e := range r.entries {
		e.controller.Close()
		delete(r.entries, id)
	}
}

package gamepad

import "time"

// HapticRequest asks all attached rumble-capable controllers to vibrate.
// Strength is expected in [0,1]; the caller-facing boundary clamps before
// enqueueing, the dispatcher only forwards.
type HapticRequest struct {
	Strength   float64 `json:"strength"`
	DurationMS uint32  `json:"durationMs"`
}

const requestQueueSize = 64

// Dispatcher fans haptic requests out to every capable device in the
// registry. The request queue is the only cross-goroutine boundary on the
// input side: many producers enqueue without blocking, the poll loop drains
// it to empty once per tick.
type Dispatcher struct {
	registry *Registry
	requests chan HapticRequest
}

func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		requests: make(chan HapticRequest, requestQueueSize),
	}
}

// Enqueue adds a request without blocking. Returns false when the queue is
// full and the request was dropped. Safe to call from any goroutine.
func (d *Dispatcher) Enqueue(req HapticRequest) bool {
	select {
	case d.requests <- req:
		return true
	default:
		return false
	}
}

// Drain pops pending requests until the queue is empty and replays each on
// every haptic-capable controller with identical strength and duration.
// A request arriving while no capable device is attached is silently dropped.
// Called only from the poll loop goroutine.
func (d *Dispatcher) Drain() {
	for {
		select {
		case req := <-d.requests:
			duration := time.Duration(req.DurationMS) * time.Millisecond
			d.registry.ForEachHaptic(func(h Haptic) {
				// Best effort: a device that fails to rumble is skipped.
				_ = h.Rumble(req.Strength, duration)
			})
		default:
			return
		}
	}
}

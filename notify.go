package schedule

import "sync"

// Names a notification emitted by a Handle or a Sequence.
type Event string

const (
	// Emitted every time Stop is called on a handle.
	EventStop Event = "stop"
	// Emitted when a handle's task panics. Handle.Err holds the failure.
	EventError Event = "error"
	// Emitted once by a Sequence after its final step has run.
	EventEnded Event = "ended"
)

// Receives a notification along with the handle it concerns.
type Listener func(h *Handle)

// Notifier is the publish/subscribe capability shared by Handle and
// Sequence. Only the owner can emit.
type Notifier struct {
	mutex     sync.Mutex
	listeners map[Event][]Listener
}

// Registers fn to be called each time the event is emitted.
func (n *Notifier) On(ev Event, fn Listener) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	if n.listeners == nil {
		n.listeners = make(map[Event][]Listener)
	}
	n.listeners[ev] = append(n.listeners[ev], fn)
}

func (n *Notifier) emit(ev Event, h *Handle) {
	n.mutex.Lock()
	fns := make([]Listener, len(n.listeners[ev]))
	copy(fns, n.listeners[ev])
	n.mutex.Unlock()

	for _, fn := range fns {
		fn(h)
	}
}

package mkdom

import "github.com/google/uuid"

// Event is delivered to listeners by the host.
type Event struct {
	// Type is the event type ("click", "input", ...).
	Type string

	// Target is the node the event was dispatched to.
	Target Node

	// CurrentTarget is the node whose listener is running.
	CurrentTarget Node

	// Detail carries host specific payload, if any.
	Detail map[string]any
}

// Listener is an event handler with a stable identity. Register and
// unregister the same *Listener value; two listeners wrapping the same
// function are different handlers.
type Listener struct {
	id string
	fn func(*Event)
}

// NewListener wraps fn in a Listener.
func NewListener(fn func(*Event)) *Listener {
	return &Listener{
		id: uuid.NewString(),
		fn: fn,
	}
}

// ID returns the listener's unique name. Hosts that must bind handlers by
// name (remote browsers) use it.
func (l *Listener) ID() string {
	return l.id
}

// Handle invokes the wrapped function.
func (l *Listener) Handle(e *Event) {
	if l == nil || l.fn == nil {
		return
	}
	l.fn(e)
}

package htmlhost

import (
	"golang.org/x/net/html"

	"github.com/vango-dev/mkdom"
	"github.com/vango-dev/mkdom/internal/errors"
)

type registration struct {
	eventType string
	listener  *mkdom.Listener
}

// AddEventListener implements mkdom.Document. Registering the same
// listener for the same type twice has no effect.
func (d *Document) AddEventListener(n mkdom.Node, eventType string, l *mkdom.Listener) error {
	hn, err := d.node(n)
	if err != nil {
		return err
	}
	if l == nil {
		return errors.New("E011").WithDetail("nil listener")
	}
	for _, r := range d.listeners[hn] {
		if r.eventType == eventType && r.listener == l {
			return nil
		}
	}
	d.listeners[hn] = append(d.listeners[hn], registration{eventType: eventType, listener: l})
	return nil
}

// RemoveEventListener implements mkdom.Document. Removing an unknown
// listener is a no-op.
func (d *Document) RemoveEventListener(n mkdom.Node, eventType string, l *mkdom.Listener) error {
	hn, err := d.node(n)
	if err != nil {
		return err
	}
	regs := d.listeners[hn]
	for i, r := range regs {
		if r.eventType == eventType && r.listener == l {
			regs = append(regs[:i:i], regs[i+1:]...)
			break
		}
	}
	if len(regs) == 0 {
		delete(d.listeners, hn)
	} else {
		d.listeners[hn] = regs
	}
	return nil
}

// ListenerCount returns how many listeners n has for eventType.
func (d *Document) ListenerCount(n mkdom.Node, eventType string) int {
	hn, err := d.node(n)
	if err != nil {
		return 0
	}
	count := 0
	for _, r := range d.listeners[hn] {
		if r.eventType == eventType {
			count++
		}
	}
	return count
}

// Dispatch delivers an event of eventType to n and bubbles it up through
// n's ancestors. It returns the number of listener invocations.
func (d *Document) Dispatch(n mkdom.Node, eventType string, detail map[string]any) (int, error) {
	target, err := d.node(n)
	if err != nil {
		return 0, err
	}

	// Listeners added during dispatch do not run for this event.
	var path []*html.Node
	for cur := target; cur != nil; cur = cur.Parent {
		path = append(path, cur)
	}
	calls := 0
	for _, cur := range path {
		regs := append([]registration(nil), d.listeners[cur]...)
		for _, r := range regs {
			if r.eventType != eventType {
				continue
			}
			r.listener.Handle(&mkdom.Event{
				Type:          eventType,
				Target:        target,
				CurrentTarget: cur,
				Detail:        detail,
			})
			calls++
		}
	}
	d.logger.Debug("event dispatched", "type", eventType, "calls", calls)
	return calls, nil
}

package rodhost

import (
	"github.com/ysmood/gson"

	"github.com/vango-dev/mkdom"
	"github.com/vango-dev/mkdom/internal/errors"
)

// bindingName is the window function a listener is exposed as.
func bindingName(l *mkdom.Listener) string {
	return "__mkdom_" + l.ID()
}

// retain binds l on the page if needed and takes a reference on the
// binding.
func (d *Document) retain(l *mkdom.Listener) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if b, ok := d.bindings[l.ID()]; ok {
		b.refs++
		return nil
	}
	stop, err := d.page.Expose(bindingName(l), func(payload gson.JSON) (interface{}, error) {
		detail := make(map[string]any)
		for k, v := range payload.Get("detail").Map() {
			detail[k] = v.Val()
		}
		l.Handle(&mkdom.Event{Type: payload.Get("type").Str(), Detail: detail})
		return nil, nil
	})
	if err != nil {
		return errors.New("E011").WithDetail(l.ID()).Wrap(err)
	}
	d.bindings[l.ID()] = &binding{listener: l, stop: stop, refs: 1}
	d.logger.Debug("listener bound", "listener", l.ID())
	return nil
}

// release drops a reference and removes the page binding with the last one.
func (d *Document) release(l *mkdom.Listener) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.bindings[l.ID()]
	if !ok {
		return nil
	}
	if b.refs--; b.refs > 0 {
		return nil
	}
	delete(d.bindings, l.ID())
	d.logger.Debug("listener unbound", "listener", l.ID())
	if b.stop == nil {
		return nil
	}
	if err := b.stop(); err != nil {
		return errors.New("E011").WithDetail(l.ID()).Wrap(err)
	}
	return nil
}

// AddEventListener implements mkdom.Document. The JavaScript handler is
// stored on the element under the event type and listener ID so a second
// registration is a no-op and removal finds it.
func (d *Document) AddEventListener(n mkdom.Node, eventType string, l *mkdom.Listener) error {
	if l == nil {
		return errors.New("E011").WithDetail("nil listener")
	}
	el, err := d.element(n)
	if err != nil {
		return err
	}
	if err := d.retain(l); err != nil {
		return err
	}
	added, err := d.eval("addEventListener", el, `function(type, id, name) {
		const reg = this.__mkdomListeners || (this.__mkdomListeners = {});
		const key = type + '|' + id;
		if (reg[key]) return false;
		reg[key] = (e) => {
			const detail = {};
			if (e.detail && typeof e.detail === 'object') Object.assign(detail, e.detail);
			window[name]({ type: e.type, detail: detail });
		};
		this.addEventListener(type, reg[key]);
		return true;
	}`, eventType, l.ID(), bindingName(l))
	if err != nil {
		d.release(l)
		return errors.New("E011").WithDetail(eventType).Wrap(err)
	}
	if !added.Bool() {
		return d.release(l)
	}
	return nil
}

// RemoveEventListener implements mkdom.Document. The page binding goes away
// with the listener's last registration.
func (d *Document) RemoveEventListener(n mkdom.Node, eventType string, l *mkdom.Listener) error {
	if l == nil {
		return nil
	}
	el, err := d.element(n)
	if err != nil {
		return err
	}
	removed, err := d.eval("removeEventListener", el, `function(type, id) {
		const reg = this.__mkdomListeners;
		const key = type + '|' + id;
		if (!reg || !reg[key]) return false;
		this.removeEventListener(type, reg[key]);
		delete reg[key];
		return true;
	}`, eventType, l.ID())
	if err != nil {
		return err
	}
	if removed.Bool() {
		return d.release(l)
	}
	return nil
}

// Dispatch fires a CustomEvent on n in the page.
func (d *Document) Dispatch(n mkdom.Node, eventType string, detail map[string]any) error {
	el, err := d.element(n)
	if err != nil {
		return err
	}
	_, err = d.eval("dispatchEvent", el, `function(type, detail) {
		this.dispatchEvent(new CustomEvent(type, { bubbles: true, detail: detail }));
	}`, eventType, detail)
	return err
}

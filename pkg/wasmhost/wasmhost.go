//go:build js && wasm

package wasmhost

import (
	"fmt"
	"sync"
	"syscall/js"

	"github.com/vango-dev/mkdom"
	"github.com/vango-dev/mkdom/internal/errors"
)

// Document is the page document.
type Document struct {
	document js.Value

	mu    sync.Mutex
	next  int
	funcs map[string]js.Func
}

// registry is the per-element property holding bound handlers, keyed by
// event type and listener ID.
const registry = "__mkdomListeners"

var _ mkdom.Document = (*Document)(nil)

// New returns the global document.
func New() *Document {
	return &Document{
		document: js.Global().Get("document"),
		funcs:    make(map[string]js.Func),
	}
}

func (d *Document) value(n mkdom.Node) (js.Value, error) {
	v, ok := n.(js.Value)
	if !ok || v.IsNull() || v.IsUndefined() {
		return js.Value{}, errors.New("E012").WithDetailf("%T", n)
	}
	return v, nil
}

// call invokes method on v and converts a thrown exception into an error.
func call(op string, v js.Value, method string, args ...any) (res js.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(exceptionCode(r)).WithDetail(op).Wrap(fmt.Errorf("%v", r))
		}
	}()
	return v.Call(method, args...), nil
}

func exceptionCode(r any) string {
	jsErr, ok := r.(js.Error)
	if !ok {
		return "E010"
	}
	switch jsErr.Get("name").String() {
	case "HierarchyRequestError", "NotFoundError":
		return "E005"
	case "SyntaxError":
		return "E003"
	}
	return "E010"
}

func node(v js.Value) mkdom.Node {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return v
}

func (d *Document) scope(n mkdom.Node) (js.Value, error) {
	if n == nil {
		return d.document, nil
	}
	return d.value(n)
}

// QuerySelectorAll implements mkdom.Document.
func (d *Document) QuerySelectorAll(scope mkdom.Node, selector string) ([]mkdom.Node, error) {
	s, err := d.scope(scope)
	if err != nil {
		return nil, err
	}
	list, err := call("querySelectorAll", s, "querySelectorAll", selector)
	if err != nil {
		return nil, err
	}
	out := make([]mkdom.Node, list.Length())
	for i := range out {
		out[i] = list.Index(i)
	}
	return out, nil
}

// QuerySelector implements mkdom.Document.
func (d *Document) QuerySelector(scope mkdom.Node, selector string) (mkdom.Node, error) {
	s, err := d.scope(scope)
	if err != nil {
		return nil, err
	}
	v, err := call("querySelector", s, "querySelector", selector)
	return node(v), err
}

// GetElementByID implements mkdom.Document.
func (d *Document) GetElementByID(id string) (mkdom.Node, error) {
	v, err := call("getElementById", d.document, "getElementById", id)
	return node(v), err
}

// CreateElement implements mkdom.Document.
func (d *Document) CreateElement(tag string) (mkdom.Node, error) {
	v, err := call("createElement", d.document, "createElement", tag)
	return node(v), err
}

// CreateElementNS implements mkdom.Document.
func (d *Document) CreateElementNS(namespaceURI, tag string) (mkdom.Node, error) {
	v, err := call("createElementNS", d.document, "createElementNS", namespaceURI, tag)
	return node(v), err
}

// CloneNode implements mkdom.Document.
func (d *Document) CloneNode(n mkdom.Node, deep bool) (mkdom.Node, error) {
	v, err := d.value(n)
	if err != nil {
		return nil, err
	}
	c, err := call("cloneNode", v, "cloneNode", deep)
	return node(c), err
}

func (d *Document) prop(n mkdom.Node, name string) (mkdom.Node, error) {
	v, err := d.value(n)
	if err != nil {
		return nil, err
	}
	return node(v.Get(name)), nil
}

// ParentNode implements mkdom.Document.
func (d *Document) ParentNode(n mkdom.Node) (mkdom.Node, error) {
	return d.prop(n, "parentElement")
}

// FirstChild implements mkdom.Document.
func (d *Document) FirstChild(n mkdom.Node) (mkdom.Node, error) {
	return d.prop(n, "firstElementChild")
}

// NextSibling implements mkdom.Document.
func (d *Document) NextSibling(n mkdom.Node) (mkdom.Node, error) {
	return d.prop(n, "nextElementSibling")
}

// AppendChild implements mkdom.Document.
func (d *Document) AppendChild(parent, child mkdom.Node) error {
	return d.InsertBefore(parent, child, nil)
}

// InsertBefore implements mkdom.Document.
func (d *Document) InsertBefore(parent, child, ref mkdom.Node) error {
	p, err := d.value(parent)
	if err != nil {
		return err
	}
	c, err := d.value(child)
	if err != nil {
		return err
	}
	r := js.Null()
	if ref != nil {
		if r, err = d.value(ref); err != nil {
			return err
		}
	}
	_, err = call("insertBefore", p, "insertBefore", c, r)
	return err
}

// RemoveChild implements mkdom.Document.
func (d *Document) RemoveChild(parent, child mkdom.Node) error {
	p, err := d.value(parent)
	if err != nil {
		return err
	}
	c, err := d.value(child)
	if err != nil {
		return err
	}
	_, err = call("removeChild", p, "removeChild", c)
	return err
}

// SetInnerHTML implements mkdom.Document.
func (d *Document) SetInnerHTML(n mkdom.Node, markup string) error {
	v, err := d.value(n)
	if err != nil {
		return err
	}
	v.Set("innerHTML", markup)
	return nil
}

// GetAttribute implements mkdom.Document.
func (d *Document) GetAttribute(n mkdom.Node, key string) (string, bool, error) {
	v, err := d.value(n)
	if err != nil {
		return "", false, err
	}
	a, err := call("getAttribute", v, "getAttribute", key)
	if err != nil || a.IsNull() {
		return "", false, err
	}
	return a.String(), true, nil
}

// SetAttribute implements mkdom.Document.
func (d *Document) SetAttribute(n mkdom.Node, key, val string) error {
	v, err := d.value(n)
	if err != nil {
		return err
	}
	_, err = call("setAttribute", v, "setAttribute", key, val)
	return err
}

// SetAttributeNS implements mkdom.Document.
func (d *Document) SetAttributeNS(n mkdom.Node, namespaceURI, key, val string) error {
	v, err := d.value(n)
	if err != nil {
		return err
	}
	_, err = call("setAttributeNS", v, "setAttributeNS", namespaceURI, key, val)
	return err
}

// ClassList implements mkdom.Document.
func (d *Document) ClassList(n mkdom.Node) mkdom.TokenList {
	v, err := d.value(n)
	if err != nil {
		return nil
	}
	cl := v.Get("classList")
	if cl.IsUndefined() {
		return nil
	}
	return classList{cl}
}

type classList struct {
	v js.Value
}

func (c classList) Add(token string) error {
	_, err := call("classList.add", c.v, "add", token)
	return err
}

func (c classList) Remove(token string) error {
	_, err := call("classList.remove", c.v, "remove", token)
	return err
}

func (c classList) Contains(token string) (bool, error) {
	r, err := call("classList.contains", c.v, "contains", token)
	if err != nil {
		return false, err
	}
	return r.Bool(), nil
}

// SetStyle implements mkdom.Document.
func (d *Document) SetStyle(n mkdom.Node, property, val string) error {
	v, err := d.value(n)
	if err != nil {
		return err
	}
	v.Get("style").Set(property, val)
	return nil
}

// Dataset implements mkdom.Document.
func (d *Document) Dataset(n mkdom.Node) (map[string]string, error) {
	v, err := d.value(n)
	if err != nil {
		return nil, err
	}
	ds := v.Get("dataset")
	keys := js.Global().Get("Object").Call("keys", ds)
	out := make(map[string]string, keys.Length())
	for i := 0; i < keys.Length(); i++ {
		k := keys.Index(i).String()
		out[k] = ds.Get(k).String()
	}
	return out, nil
}

// SetData implements mkdom.Document.
func (d *Document) SetData(n mkdom.Node, key, val string) error {
	v, err := d.value(n)
	if err != nil {
		return err
	}
	v.Get("dataset").Set(key, val)
	return nil
}

// OffsetWidth implements mkdom.Document.
func (d *Document) OffsetWidth(n mkdom.Node) (int, error) {
	v, err := d.value(n)
	if err != nil {
		return 0, err
	}
	return v.Get("offsetWidth").Int(), nil
}

// OffsetHeight implements mkdom.Document.
func (d *Document) OffsetHeight(n mkdom.Node) (int, error) {
	v, err := d.value(n)
	if err != nil {
		return 0, err
	}
	return v.Get("offsetHeight").Int(), nil
}

// AddEventListener implements mkdom.Document. A second registration of
// the same listener and type is a no-op.
func (d *Document) AddEventListener(n mkdom.Node, eventType string, l *mkdom.Listener) error {
	if l == nil {
		return errors.New("E011").WithDetail("nil listener")
	}
	v, err := d.value(n)
	if err != nil {
		return err
	}
	reg := v.Get(registry)
	if reg.IsUndefined() {
		reg = js.Global().Get("Object").New()
		v.Set(registry, reg)
	}
	key := eventType + "|" + l.ID()
	if !reg.Get(key).IsUndefined() {
		return nil
	}

	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		e := &mkdom.Event{Type: eventType, CurrentTarget: v}
		if len(args) > 0 {
			e.Target = node(args[0].Get("target"))
		}
		l.Handle(e)
		return nil
	})
	if _, err := call("addEventListener", v, "addEventListener", eventType, fn); err != nil {
		fn.Release()
		return errors.New("E011").WithDetail(eventType).Wrap(err)
	}

	d.mu.Lock()
	d.next++
	token := fmt.Sprintf("%d", d.next)
	d.funcs[token] = fn
	d.mu.Unlock()

	entry := js.Global().Get("Object").New()
	entry.Set("fn", fn.Value)
	entry.Set("token", token)
	reg.Set(key, entry)
	return nil
}

// RemoveEventListener implements mkdom.Document.
func (d *Document) RemoveEventListener(n mkdom.Node, eventType string, l *mkdom.Listener) error {
	if l == nil {
		return nil
	}
	v, err := d.value(n)
	if err != nil {
		return err
	}
	reg := v.Get(registry)
	if reg.IsUndefined() {
		return nil
	}
	key := eventType + "|" + l.ID()
	entry := reg.Get(key)
	if entry.IsUndefined() {
		return nil
	}
	reg.Delete(key)
	_, err = call("removeEventListener", v, "removeEventListener", eventType, entry.Get("fn"))

	token := entry.Get("token").String()
	d.mu.Lock()
	fn, ok := d.funcs[token]
	delete(d.funcs, token)
	d.mu.Unlock()
	if ok {
		fn.Release()
	}
	return err
}

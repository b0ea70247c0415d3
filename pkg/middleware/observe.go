package middleware

import (
	"time"

	"github.com/vango-dev/mkdom"
)

// CallObserver receives every host call made through an observed document.
type CallObserver func(op string, elapsed time.Duration, err error)

// Observe wraps doc so that every call is reported to observers.
func Observe(doc mkdom.Document, observers ...CallObserver) mkdom.Document {
	return &observedDocument{next: doc, observers: observers}
}

type observedDocument struct {
	next      mkdom.Document
	observers []CallObserver
}

var _ mkdom.Document = (*observedDocument)(nil)

// observe is deferred by every forwarding method with a pointer to its
// named error result.
func (d *observedDocument) observe(op string, start time.Time, errp *error) {
	elapsed := time.Since(start)
	var err error
	if errp != nil {
		err = *errp
	}
	for _, o := range d.observers {
		o(op, elapsed, err)
	}
}

func (d *observedDocument) QuerySelectorAll(scope mkdom.Node, selector string) (nodes []mkdom.Node, err error) {
	defer d.observe("querySelectorAll", time.Now(), &err)
	return d.next.QuerySelectorAll(scope, selector)
}

func (d *observedDocument) QuerySelector(scope mkdom.Node, selector string) (n mkdom.Node, err error) {
	defer d.observe("querySelector", time.Now(), &err)
	return d.next.QuerySelector(scope, selector)
}

func (d *observedDocument) GetElementByID(id string) (n mkdom.Node, err error) {
	defer d.observe("getElementById", time.Now(), &err)
	return d.next.GetElementByID(id)
}

func (d *observedDocument) CreateElement(tag string) (n mkdom.Node, err error) {
	defer d.observe("createElement", time.Now(), &err)
	return d.next.CreateElement(tag)
}

func (d *observedDocument) CreateElementNS(namespaceURI, tag string) (n mkdom.Node, err error) {
	defer d.observe("createElementNS", time.Now(), &err)
	return d.next.CreateElementNS(namespaceURI, tag)
}

func (d *observedDocument) CloneNode(n mkdom.Node, deep bool) (c mkdom.Node, err error) {
	defer d.observe("cloneNode", time.Now(), &err)
	return d.next.CloneNode(n, deep)
}

func (d *observedDocument) ParentNode(n mkdom.Node) (p mkdom.Node, err error) {
	defer d.observe("parentNode", time.Now(), &err)
	return d.next.ParentNode(n)
}

func (d *observedDocument) FirstChild(n mkdom.Node) (c mkdom.Node, err error) {
	defer d.observe("firstChild", time.Now(), &err)
	return d.next.FirstChild(n)
}

func (d *observedDocument) NextSibling(n mkdom.Node) (s mkdom.Node, err error) {
	defer d.observe("nextSibling", time.Now(), &err)
	return d.next.NextSibling(n)
}

func (d *observedDocument) AppendChild(parent, child mkdom.Node) (err error) {
	defer d.observe("appendChild", time.Now(), &err)
	return d.next.AppendChild(parent, child)
}

func (d *observedDocument) InsertBefore(parent, child, ref mkdom.Node) (err error) {
	defer d.observe("insertBefore", time.Now(), &err)
	return d.next.InsertBefore(parent, child, ref)
}

func (d *observedDocument) RemoveChild(parent, child mkdom.Node) (err error) {
	defer d.observe("removeChild", time.Now(), &err)
	return d.next.RemoveChild(parent, child)
}

func (d *observedDocument) SetInnerHTML(n mkdom.Node, markup string) (err error) {
	defer d.observe("innerHTML", time.Now(), &err)
	return d.next.SetInnerHTML(n, markup)
}

func (d *observedDocument) GetAttribute(n mkdom.Node, key string) (v string, ok bool, err error) {
	defer d.observe("getAttribute", time.Now(), &err)
	return d.next.GetAttribute(n, key)
}

func (d *observedDocument) SetAttribute(n mkdom.Node, key, val string) (err error) {
	defer d.observe("setAttribute", time.Now(), &err)
	return d.next.SetAttribute(n, key, val)
}

func (d *observedDocument) SetAttributeNS(n mkdom.Node, namespaceURI, key, val string) (err error) {
	defer d.observe("setAttributeNS", time.Now(), &err)
	return d.next.SetAttributeNS(n, namespaceURI, key, val)
}

func (d *observedDocument) ClassList(n mkdom.Node) mkdom.TokenList {
	tl := d.next.ClassList(n)
	if tl == nil {
		return nil
	}
	return &observedTokenList{doc: d, next: tl}
}

func (d *observedDocument) SetStyle(n mkdom.Node, property, val string) (err error) {
	defer d.observe("setStyle", time.Now(), &err)
	return d.next.SetStyle(n, property, val)
}

func (d *observedDocument) Dataset(n mkdom.Node) (ds map[string]string, err error) {
	defer d.observe("dataset", time.Now(), &err)
	return d.next.Dataset(n)
}

func (d *observedDocument) SetData(n mkdom.Node, key, val string) (err error) {
	defer d.observe("setData", time.Now(), &err)
	return d.next.SetData(n, key, val)
}

func (d *observedDocument) OffsetWidth(n mkdom.Node) (w int, err error) {
	defer d.observe("offsetWidth", time.Now(), &err)
	return d.next.OffsetWidth(n)
}

func (d *observedDocument) OffsetHeight(n mkdom.Node) (h int, err error) {
	defer d.observe("offsetHeight", time.Now(), &err)
	return d.next.OffsetHeight(n)
}

func (d *observedDocument) AddEventListener(n mkdom.Node, eventType string, l *mkdom.Listener) (err error) {
	defer d.observe("addEventListener", time.Now(), &err)
	return d.next.AddEventListener(n, eventType, l)
}

func (d *observedDocument) RemoveEventListener(n mkdom.Node, eventType string, l *mkdom.Listener) (err error) {
	defer d.observe("removeEventListener", time.Now(), &err)
	return d.next.RemoveEventListener(n, eventType, l)
}

type observedTokenList struct {
	doc  *observedDocument
	next mkdom.TokenList
}

func (t *observedTokenList) Add(token string) (err error) {
	defer t.doc.observe("classList.add", time.Now(), &err)
	return t.next.Add(token)
}

func (t *observedTokenList) Remove(token string) (err error) {
	defer t.doc.observe("classList.remove", time.Now(), &err)
	return t.next.Remove(token)
}

func (t *observedTokenList) Contains(token string) (ok bool, err error) {
	defer t.doc.observe("classList.contains", time.Now(), &err)
	return t.next.Contains(token)
}

package domtest

import (
	"github.com/vango-dev/mkdom"
)

// FaultyDocument fails the host calls named in Fail and forwards the rest.
// Op names match the middleware package: "appendChild", "insertBefore",
// "removeChild", "setInnerHTML", "setAttribute", "setStyle", "cloneNode",
// "parentNode", "setData", "addEventListener".
type FaultyDocument struct {
	mkdom.Document
	Fail map[string]error
}

// Faulty wraps doc.
func Faulty(doc mkdom.Document, fail map[string]error) *FaultyDocument {
	return &FaultyDocument{Document: doc, Fail: fail}
}

func (d *FaultyDocument) fault(op string) error {
	return d.Fail[op]
}

func (d *FaultyDocument) AppendChild(parent, child mkdom.Node) error {
	if err := d.fault("appendChild"); err != nil {
		return err
	}
	return d.Document.AppendChild(parent, child)
}

func (d *FaultyDocument) InsertBefore(parent, child, ref mkdom.Node) error {
	if err := d.fault("insertBefore"); err != nil {
		return err
	}
	return d.Document.InsertBefore(parent, child, ref)
}

func (d *FaultyDocument) RemoveChild(parent, child mkdom.Node) error {
	if err := d.fault("removeChild"); err != nil {
		return err
	}
	return d.Document.RemoveChild(parent, child)
}

func (d *FaultyDocument) SetInnerHTML(n mkdom.Node, markup string) error {
	if err := d.fault("setInnerHTML"); err != nil {
		return err
	}
	return d.Document.SetInnerHTML(n, markup)
}

func (d *FaultyDocument) SetAttribute(n mkdom.Node, key, val string) error {
	if err := d.fault("setAttribute"); err != nil {
		return err
	}
	return d.Document.SetAttribute(n, key, val)
}

func (d *FaultyDocument) SetStyle(n mkdom.Node, property, val string) error {
	if err := d.fault("setStyle"); err != nil {
		return err
	}
	return d.Document.SetStyle(n, property, val)
}

func (d *FaultyDocument) CloneNode(n mkdom.Node, deep bool) (mkdom.Node, error) {
	if err := d.fault("cloneNode"); err != nil {
		return nil, err
	}
	return d.Document.CloneNode(n, deep)
}

func (d *FaultyDocument) ParentNode(n mkdom.Node) (mkdom.Node, error) {
	if err := d.fault("parentNode"); err != nil {
		return nil, err
	}
	return d.Document.ParentNode(n)
}

func (d *FaultyDocument) SetData(n mkdom.Node, key, val string) error {
	if err := d.fault("setData"); err != nil {
		return err
	}
	return d.Document.SetData(n, key, val)
}

func (d *FaultyDocument) AddEventListener(n mkdom.Node, eventType string, l *mkdom.Listener) error {
	if err := d.fault("addEventListener"); err != nil {
		return err
	}
	return d.Document.AddEventListener(n, eventType, l)
}

package rodhost

import (
	"github.com/go-rod/rod"

	"github.com/vango-dev/mkdom"
)

func nodes(els rod.Elements) []mkdom.Node {
	out := make([]mkdom.Node, len(els))
	for i, el := range els {
		out[i] = el
	}
	return out
}

// QuerySelectorAll implements mkdom.Document.
func (d *Document) QuerySelectorAll(scope mkdom.Node, selector string) ([]mkdom.Node, error) {
	if scope == nil {
		els, err := d.page.ElementsByJS(rod.Eval(`sel => Array.from(document.querySelectorAll(sel))`, selector).ByObject())
		if err != nil {
			return nil, hostErr("querySelectorAll", err)
		}
		return nodes(els), nil
	}
	el, err := d.element(scope)
	if err != nil {
		return nil, err
	}
	els, err := d.page.ElementsByJS(rod.Eval(`(root, sel) => Array.from(root.querySelectorAll(sel))`, arg(el), selector).ByObject())
	if err != nil {
		return nil, hostErr("querySelectorAll", err)
	}
	return nodes(els), nil
}

// QuerySelector implements mkdom.Document.
func (d *Document) QuerySelector(scope mkdom.Node, selector string) (mkdom.Node, error) {
	if scope == nil {
		return d.evalNode("querySelector", nil, `sel => document.querySelector(sel)`, selector)
	}
	el, err := d.element(scope)
	if err != nil {
		return nil, err
	}
	return d.evalNode("querySelector", el, `function(sel) { return this.querySelector(sel) }`, selector)
}

// GetElementByID implements mkdom.Document.
func (d *Document) GetElementByID(id string) (mkdom.Node, error) {
	return d.evalNode("getElementById", nil, `id => document.getElementById(id)`, id)
}

// CreateElement implements mkdom.Document.
func (d *Document) CreateElement(tag string) (mkdom.Node, error) {
	return d.evalNode("createElement", nil, `tag => document.createElement(tag)`, tag)
}

// CreateElementNS implements mkdom.Document.
func (d *Document) CreateElementNS(namespaceURI, tag string) (mkdom.Node, error) {
	return d.evalNode("createElementNS", nil, `(ns, tag) => document.createElementNS(ns, tag)`, namespaceURI, tag)
}

// CloneNode implements mkdom.Document.
func (d *Document) CloneNode(n mkdom.Node, deep bool) (mkdom.Node, error) {
	el, err := d.element(n)
	if err != nil {
		return nil, err
	}
	return d.evalNode("cloneNode", el, `function(deep) { return this.cloneNode(deep) }`, deep)
}

// ParentNode implements mkdom.Document. Only element parents are
// returned.
func (d *Document) ParentNode(n mkdom.Node) (mkdom.Node, error) {
	el, err := d.element(n)
	if err != nil {
		return nil, err
	}
	return d.evalNode("parentNode", el, `function() { return this.parentElement }`)
}

// FirstChild implements mkdom.Document.
func (d *Document) FirstChild(n mkdom.Node) (mkdom.Node, error) {
	el, err := d.element(n)
	if err != nil {
		return nil, err
	}
	return d.evalNode("firstChild", el, `function() { return this.firstElementChild }`)
}

// NextSibling implements mkdom.Document.
func (d *Document) NextSibling(n mkdom.Node) (mkdom.Node, error) {
	el, err := d.element(n)
	if err != nil {
		return nil, err
	}
	return d.evalNode("nextSibling", el, `function() { return this.nextElementSibling }`)
}

// AppendChild implements mkdom.Document.
func (d *Document) AppendChild(parent, child mkdom.Node) error {
	return d.InsertBefore(parent, child, nil)
}

// InsertBefore implements mkdom.Document.
func (d *Document) InsertBefore(parent, child, ref mkdom.Node) error {
	p, err := d.element(parent)
	if err != nil {
		return err
	}
	c, err := d.element(child)
	if err != nil {
		return err
	}
	var r *rod.Element
	if ref != nil {
		if r, err = d.element(ref); err != nil {
			return err
		}
	}
	_, err = d.eval("insertBefore", p, `function(child, ref) { this.insertBefore(child, ref) }`, arg(c), arg(r))
	return err
}

// RemoveChild implements mkdom.Document.
func (d *Document) RemoveChild(parent, child mkdom.Node) error {
	p, err := d.element(parent)
	if err != nil {
		return err
	}
	c, err := d.element(child)
	if err != nil {
		return err
	}
	_, err = d.eval("removeChild", p, `function(child) { this.removeChild(child) }`, arg(c))
	return err
}

// SetInnerHTML implements mkdom.Document.
func (d *Document) SetInnerHTML(n mkdom.Node, markup string) error {
	el, err := d.element(n)
	if err != nil {
		return err
	}
	_, err = d.eval("setInnerHTML", el, `function(html) { this.innerHTML = html }`, markup)
	return err
}

// GetAttribute implements mkdom.Document.
func (d *Document) GetAttribute(n mkdom.Node, key string) (string, bool, error) {
	el, err := d.element(n)
	if err != nil {
		return "", false, err
	}
	v, err := d.eval("getAttribute", el, `function(k) { return this.getAttribute(k) }`, key)
	if err != nil || v.Nil() {
		return "", false, err
	}
	return v.Str(), true, nil
}

// SetAttribute implements mkdom.Document.
func (d *Document) SetAttribute(n mkdom.Node, key, val string) error {
	el, err := d.element(n)
	if err != nil {
		return err
	}
	_, err = d.eval("setAttribute", el, `function(k, v) { this.setAttribute(k, v) }`, key, val)
	return err
}

// SetAttributeNS implements mkdom.Document.
func (d *Document) SetAttributeNS(n mkdom.Node, namespaceURI, key, val string) error {
	el, err := d.element(n)
	if err != nil {
		return err
	}
	_, err = d.eval("setAttributeNS", el, `function(ns, k, v) { this.setAttributeNS(ns, k, v) }`, namespaceURI, key, val)
	return err
}

// SetStyle implements mkdom.Document.
func (d *Document) SetStyle(n mkdom.Node, property, val string) error {
	el, err := d.element(n)
	if err != nil {
		return err
	}
	_, err = d.eval("setStyle", el, `function(p, v) {
		if (p.includes('-')) { this.style.setProperty(p, v) } else { this.style[p] = v }
	}`, property, val)
	return err
}

// Dataset implements mkdom.Document.
func (d *Document) Dataset(n mkdom.Node) (map[string]string, error) {
	el, err := d.element(n)
	if err != nil {
		return nil, err
	}
	v, err := d.eval("dataset", el, `function() { return Object.assign({}, this.dataset) }`)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string)
	for k, val := range v.Map() {
		out[k] = val.Str()
	}
	return out, nil
}

// SetData implements mkdom.Document.
func (d *Document) SetData(n mkdom.Node, key, val string) error {
	el, err := d.element(n)
	if err != nil {
		return err
	}
	_, err = d.eval("setData", el, `function(k, v) { this.dataset[k] = v }`, key, val)
	return err
}

// OffsetWidth implements mkdom.Document.
func (d *Document) OffsetWidth(n mkdom.Node) (int, error) {
	return d.offset("offsetWidth", n)
}

// OffsetHeight implements mkdom.Document.
func (d *Document) OffsetHeight(n mkdom.Node) (int, error) {
	return d.offset("offsetHeight", n)
}

func (d *Document) offset(prop string, n mkdom.Node) (int, error) {
	el, err := d.element(n)
	if err != nil {
		return 0, err
	}
	v, err := d.eval(prop, el, `function(p) { return this[p] || 0 }`, prop)
	if err != nil {
		return 0, err
	}
	return v.Int(), nil
}

// ClassList implements mkdom.Document.
func (d *Document) ClassList(n mkdom.Node) mkdom.TokenList {
	if !d.classList {
		return nil
	}
	el, err := d.element(n)
	if err != nil {
		return nil
	}
	return &classList{doc: d, el: el}
}

type classList struct {
	doc *Document
	el  *rod.Element
}

func (c *classList) Add(token string) error {
	_, err := c.doc.eval("classList.add", c.el, `function(t) { this.classList.add(t) }`, token)
	return err
}

func (c *classList) Remove(token string) error {
	_, err := c.doc.eval("classList.remove", c.el, `function(t) { this.classList.remove(t) }`, token)
	return err
}

func (c *classList) Contains(token string) (bool, error) {
	v, err := c.doc.eval("classList.contains", c.el, `function(t) { return this.classList.contains(t) }`, token)
	if err != nil {
		return false, err
	}
	return v.Bool(), nil
}

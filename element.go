package mkdom

import (
	"fmt"
	"sort"

	"github.com/vango-dev/mkdom/internal/errors"
)

// Element wraps a single host element, or nothing when a lookup missed.
//
// Mutators return the receiver so calls chain. Operations on an absent
// element do nothing and the first failure of a chain is kept in Err.
type Element struct {
	doc     Document
	node    Node
	classes classStrategy
	err     error
}

// newElement wraps node. err is carried over from the handle the element
// was derived from; an absent node with no prior error records
// ErrElementNotFound.
func newElement(doc Document, node Node, err error) *Element {
	e := &Element{doc: doc, node: node, err: err}
	if node == nil {
		e.classes = classStringClasses{}
		if e.err == nil {
			e.err = errors.New("E001")
		}
		return e
	}
	e.classes = selectClasses(doc, node)
	return e
}

func notFound(detail string) error {
	return errors.New("E001").WithDetail(detail)
}

func detached(op string) error {
	return errors.New("E002").WithDetail(op)
}

// fail records err if it is the first failure.
func (e *Element) fail(err error) {
	if err != nil && e.err == nil {
		e.err = err
	}
}

// Err returns the first error recorded on the handle.
func (e *Element) Err() error {
	return e.err
}

// Node returns the wrapped host node, or nil.
func (e *Element) Node() Node {
	return e.node
}

// Document returns the host document the handle operates on.
func (e *Element) Document() Document {
	return e.doc
}

// Exists reports whether the handle wraps an element.
func (e *Element) Exists() bool {
	return e.node != nil
}

// Len returns 1 when an element is wrapped and 0 otherwise.
func (e *Element) Len() int {
	if e.node == nil {
		return 0
	}
	return 1
}

// CSS assigns each style property in styles.
func (e *Element) CSS(styles map[string]string) *Element {
	if e.node == nil {
		return e
	}
	for _, k := range sortedKeys(styles) {
		e.fail(hostError("setStyle", e.doc.SetStyle(e.node, k, styles[k])))
	}
	return e
}

// Height returns the rendered height in pixels.
func (e *Element) Height() int {
	if e.node == nil {
		return 0
	}
	h, err := e.doc.OffsetHeight(e.node)
	e.fail(hostError("offsetHeight", err))
	return h
}

// Width returns the rendered width in pixels.
func (e *Element) Width() int {
	if e.node == nil {
		return 0
	}
	w, err := e.doc.OffsetWidth(e.node)
	e.fail(hostError("offsetWidth", err))
	return w
}

// HTML replaces the element's content with markup. The markup is not
// escaped.
func (e *Element) HTML(markup string) *Element {
	if e.node == nil {
		return e
	}
	e.fail(hostError("innerHTML", e.doc.SetInnerHTML(e.node, markup)))
	return e
}

// Clear removes all content.
func (e *Element) Clear() *Element {
	return e.HTML("")
}

// Parent returns a handle over the element's parent node.
func (e *Element) Parent() *Element {
	if e.node == nil {
		return newElement(e.doc, nil, e.err)
	}
	p, err := e.doc.ParentNode(e.node)
	if err != nil {
		return newElement(e.doc, nil, hostError("parentNode", err))
	}
	if p == nil {
		return newElement(e.doc, nil, notFound("parent of detached element"))
	}
	return newElement(e.doc, p, e.err)
}

// Append moves other's element to the end of this element's children and
// returns other.
func (e *Element) Append(other *Element) *Element {
	return e.insert("appendChild", other, false, e.appendPlace)
}

// AppendClone appends a deep copy of other's element and returns a handle
// over the copy. other is left where it is.
func (e *Element) AppendClone(other *Element) *Element {
	return e.insert("appendChild", other, true, e.appendPlace)
}

// Prepend moves other's element to the start of this element's children
// and returns other.
func (e *Element) Prepend(other *Element) *Element {
	return e.insert("prepend", other, false, e.prependPlace)
}

// PrependClone prepends a deep copy of other's element and returns a handle
// over the copy.
func (e *Element) PrependClone(other *Element) *Element {
	return e.insert("prepend", other, true, e.prependPlace)
}

// InsertBefore moves other's element right before this element among its
// siblings and returns other.
func (e *Element) InsertBefore(other *Element) *Element {
	return e.insert("insertBefore", other, false, e.beforePlace)
}

// InsertBeforeClone inserts a deep copy of other's element before this
// element and returns a handle over the copy.
func (e *Element) InsertBeforeClone(other *Element) *Element {
	return e.insert("insertBefore", other, true, e.beforePlace)
}

// InsertAfter moves other's element right after this element among its
// siblings and returns other.
func (e *Element) InsertAfter(other *Element) *Element {
	return e.insert("insertAfter", other, false, e.afterPlace)
}

// InsertAfterClone inserts a deep copy of other's element after this
// element and returns a handle over the copy.
func (e *Element) InsertAfterClone(other *Element) *Element {
	return e.insert("insertAfter", other, true, e.afterPlace)
}

func (e *Element) appendPlace(child Node) error {
	return e.doc.AppendChild(e.node, child)
}

func (e *Element) prependPlace(child Node) error {
	first, err := e.doc.FirstChild(e.node)
	if err != nil {
		return err
	}
	return e.doc.InsertBefore(e.node, child, first)
}

func (e *Element) beforePlace(child Node) error {
	parent, err := e.doc.ParentNode(e.node)
	if err != nil {
		return err
	}
	if parent == nil {
		return detached("insertBefore")
	}
	return e.doc.InsertBefore(parent, child, e.node)
}

func (e *Element) afterPlace(child Node) error {
	parent, err := e.doc.ParentNode(e.node)
	if err != nil {
		return err
	}
	if parent == nil {
		return detached("insertAfter")
	}
	next, err := e.doc.NextSibling(e.node)
	if err != nil {
		return err
	}
	return e.doc.InsertBefore(parent, child, next)
}

// insert places other's node (or a clone of it) with place. The move form
// returns other, the clone form a new handle over the copy.
func (e *Element) insert(op string, other *Element, clone bool, place func(Node) error) *Element {
	if other == nil {
		other = newElement(e.doc, nil, nil)
	}
	failed := func(err error) *Element {
		e.fail(err)
		if clone {
			return newElement(e.doc, nil, err)
		}
		other.fail(err)
		return other
	}

	if e.node == nil {
		return failed(e.err)
	}
	if other.node == nil {
		return failed(other.err)
	}

	child := other.node
	if clone {
		c, err := e.doc.CloneNode(other.node, true)
		if err != nil {
			return failed(hostError("cloneNode", err))
		}
		child = c
	}
	if err := place(child); err != nil {
		return failed(hostError(op, err))
	}
	if clone {
		return newElement(e.doc, child, nil)
	}
	return other
}

// Remove detaches the element from its parent.
func (e *Element) Remove() error {
	if e.node == nil {
		return e.err
	}
	parent, err := e.doc.ParentNode(e.node)
	if err != nil {
		err = hostError("parentNode", err)
		e.fail(err)
		return err
	}
	if parent == nil {
		err := detached("remove")
		e.fail(err)
		return err
	}
	err = hostError("removeChild", e.doc.RemoveChild(parent, e.node))
	e.fail(err)
	return err
}

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(key string) (string, bool) {
	if e.node == nil {
		return "", false
	}
	v, ok, err := e.doc.GetAttribute(e.node, key)
	e.fail(hostError("getAttribute", err))
	return v, ok
}

// SetAttr sets an attribute. An empty value is stored as is.
func (e *Element) SetAttr(key, val string) *Element {
	if e.node == nil {
		return e
	}
	e.fail(hostError("setAttribute", e.doc.SetAttribute(e.node, key, val)))
	return e
}

// SetAttrs sets every attribute in attrs, in key order.
func (e *Element) SetAttrs(attrs map[string]string) *Element {
	for _, k := range sortedKeys(attrs) {
		e.SetAttr(k, attrs[k])
	}
	return e
}

// SetAttrNS sets a namespaced attribute such as xlink:href on SVG content.
func (e *Element) SetAttrNS(namespaceURI, key, val string) *Element {
	if e.node == nil {
		return e
	}
	e.fail(hostError("setAttributeNS", e.doc.SetAttributeNS(e.node, namespaceURI, key, val)))
	return e
}

// SetAttrsNS sets every attribute in attrs in one namespace.
func (e *Element) SetAttrsNS(namespaceURI string, attrs map[string]string) *Element {
	for _, k := range sortedKeys(attrs) {
		e.SetAttrNS(namespaceURI, k, attrs[k])
	}
	return e
}

// Data returns one custom data attribute by its camelCase key.
func (e *Element) Data(key string) (string, bool) {
	ds := e.Dataset()
	v, ok := ds[key]
	return v, ok
}

// SetData sets a custom data attribute.
func (e *Element) SetData(key, val string) *Element {
	if e.node == nil {
		return e
	}
	e.fail(hostError("dataset", e.doc.SetData(e.node, key, val)))
	return e
}

// Dataset returns all custom data attributes of the element.
func (e *Element) Dataset() map[string]string {
	if e.node == nil {
		return nil
	}
	ds, err := e.doc.Dataset(e.node)
	e.fail(hostError("dataset", err))
	return ds
}

// HasClass reports whether the element has the class name.
func (e *Element) HasClass(name string) bool {
	if e.node == nil {
		return false
	}
	ok, err := e.classes.has(e.doc, e.node, name)
	e.fail(hostError("classList.contains", err))
	return ok
}

// AddClass adds a class name. Adding a present name is a no-op.
func (e *Element) AddClass(name string) *Element {
	if e.node == nil {
		return e
	}
	e.fail(hostError("classList.add", e.classes.add(e.doc, e.node, name)))
	return e
}

// RemoveClass removes a class name.
func (e *Element) RemoveClass(name string) *Element {
	if e.node == nil {
		return e
	}
	e.fail(hostError("classList.remove", e.classes.remove(e.doc, e.node, name)))
	return e
}

// On registers l for eventType.
func (e *Element) On(eventType string, l *Listener) *Element {
	if e.node == nil {
		return e
	}
	e.fail(hostError("addEventListener", e.doc.AddEventListener(e.node, eventType, l)))
	return e
}

// Off unregisters l for eventType.
func (e *Element) Off(eventType string, l *Listener) *Element {
	if e.node == nil {
		return e
	}
	e.fail(hostError("removeEventListener", e.doc.RemoveEventListener(e.node, eventType, l)))
	return e
}

// Outline draws a solid debug outline. An empty color means red and a
// non-positive width means 1px.
func (e *Element) Outline(color string, width int) *Element {
	if color == "" {
		color = "red"
	}
	if width <= 0 {
		width = 1
	}
	return e.CSS(map[string]string{
		"outline": fmt.Sprintf("%dpx solid %s", width, color),
	})
}

// OutlineOff removes the debug outline.
func (e *Element) OutlineOff() *Element {
	return e.CSS(map[string]string{"outline": "none"})
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

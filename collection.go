package mkdom

// Collection wraps the elements matched by a multi-element query. Every
// mutator applies to each element in order and returns the receiver, or a
// new Collection for operations that produce nodes.
//
// The element list is fixed when the Collection is built; later changes to
// the document are not reflected.
type Collection struct {
	doc     Document
	nodes   []Node
	classes classStrategy
	err     error
}

func newCollection(doc Document, nodes []Node, err error) *Collection {
	var sample Node
	if len(nodes) > 0 {
		sample = nodes[0]
	}
	return &Collection{
		doc:     doc,
		nodes:   nodes,
		classes: selectClasses(doc, sample),
		err:     err,
	}
}

func (c *Collection) fail(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}

// Err returns the first error recorded on the collection.
func (c *Collection) Err() error {
	return c.err
}

// Len returns the number of wrapped elements.
func (c *Collection) Len() int {
	return len(c.nodes)
}

// Nodes returns a copy of the wrapped host nodes.
func (c *Collection) Nodes() []Node {
	out := make([]Node, len(c.nodes))
	copy(out, c.nodes)
	return out
}

// At returns a handle over the i-th element. Out of range indexes yield an
// absent element.
func (c *Collection) At(i int) *Element {
	if i < 0 || i >= len(c.nodes) {
		return newElement(c.doc, nil, nil)
	}
	return newElement(c.doc, c.nodes[i], nil)
}

// CSS assigns each style property to every element.
func (c *Collection) CSS(styles map[string]string) *Collection {
	keys := sortedKeys(styles)
	for _, n := range c.nodes {
		for _, k := range keys {
			c.fail(hostError("setStyle", c.doc.SetStyle(n, k, styles[k])))
		}
	}
	return c
}

// HTML replaces the content of every element with markup.
func (c *Collection) HTML(markup string) *Collection {
	for _, n := range c.nodes {
		c.fail(hostError("innerHTML", c.doc.SetInnerHTML(n, markup)))
	}
	return c
}

// Clear removes the content of every element.
func (c *Collection) Clear() *Collection {
	return c.HTML("")
}

// Parent returns a collection of each element's parent, in order.
// Elements without a parent contribute nothing; shared parents repeat.
func (c *Collection) Parent() *Collection {
	parents := make([]Node, 0, len(c.nodes))
	var firstErr error
	for _, n := range c.nodes {
		p, err := c.doc.ParentNode(n)
		if err != nil {
			if firstErr == nil {
				firstErr = hostError("parentNode", err)
			}
			continue
		}
		if p != nil {
			parents = append(parents, p)
		}
	}
	out := newCollection(c.doc, parents, c.err)
	out.fail(firstErr)
	return out
}

// Append inserts a deep copy of tpl's element as the last child of every
// element and returns a collection of the copies. tpl itself never moves.
func (c *Collection) Append(tpl *Element) *Collection {
	return c.stamp("appendChild", tpl, func(parent, clone Node) error {
		return c.doc.AppendChild(parent, clone)
	})
}

// Prepend inserts a deep copy of tpl's element as the first child of every
// element and returns a collection of the copies.
func (c *Collection) Prepend(tpl *Element) *Collection {
	return c.stamp("prepend", tpl, func(parent, clone Node) error {
		first, err := c.doc.FirstChild(parent)
		if err != nil {
			return err
		}
		return c.doc.InsertBefore(parent, clone, first)
	})
}

func (c *Collection) stamp(op string, tpl *Element, place func(parent, clone Node) error) *Collection {
	if tpl == nil || tpl.node == nil {
		err := notFound("template element")
		if tpl != nil {
			err = tpl.err
		}
		c.fail(err)
		return newCollection(c.doc, nil, err)
	}

	clones := make([]Node, 0, len(c.nodes))
	var firstErr error
	record := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}
	for _, n := range c.nodes {
		clone, err := c.doc.CloneNode(tpl.node, true)
		if err != nil {
			record(hostError("cloneNode", err))
			continue
		}
		if err := place(n, clone); err != nil {
			record(hostError(op, err))
			continue
		}
		clones = append(clones, clone)
	}
	c.fail(firstErr)
	out := newCollection(c.doc, clones, c.err)
	out.fail(firstErr)
	return out
}

// Remove detaches every element from its parent. It returns the first
// failure; elements after a failure are still removed.
func (c *Collection) Remove() error {
	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, n := range c.nodes {
		parent, err := c.doc.ParentNode(n)
		if err != nil {
			record(hostError("parentNode", err))
			continue
		}
		if parent == nil {
			record(detached("remove"))
			continue
		}
		record(hostError("removeChild", c.doc.RemoveChild(parent, n)))
	}
	c.fail(firstErr)
	return firstErr
}

// SetAttr sets an attribute on every element.
func (c *Collection) SetAttr(key, val string) *Collection {
	for _, n := range c.nodes {
		c.fail(hostError("setAttribute", c.doc.SetAttribute(n, key, val)))
	}
	return c
}

// AddClass adds a class name to every element.
func (c *Collection) AddClass(name string) *Collection {
	for _, n := range c.nodes {
		c.fail(hostError("classList.add", c.classes.add(c.doc, n, name)))
	}
	return c
}

// RemoveClass removes a class name from every element.
func (c *Collection) RemoveClass(name string) *Collection {
	for _, n := range c.nodes {
		c.fail(hostError("classList.remove", c.classes.remove(c.doc, n, name)))
	}
	return c
}

// On registers l for eventType on every element.
func (c *Collection) On(eventType string, l *Listener) *Collection {
	for _, n := range c.nodes {
		c.fail(hostError("addEventListener", c.doc.AddEventListener(n, eventType, l)))
	}
	return c
}

// Off unregisters l for eventType on every element.
func (c *Collection) Off(eventType string, l *Listener) *Collection {
	for _, n := range c.nodes {
		c.fail(hostError("removeEventListener", c.doc.RemoveEventListener(n, eventType, l)))
	}
	return c
}

// Each calls fn with every raw host node, in order.
func (c *Collection) Each(fn func(Node)) *Collection {
	for _, n := range c.nodes {
		fn(n)
	}
	return c
}

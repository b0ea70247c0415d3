package mkdom

import "fmt"

// All returns every element matching selector. The search covers the whole
// document, or the subtree of the first node in within.
func All(doc Document, selector string, within ...Node) *Collection {
	nodes, err := doc.QuerySelectorAll(scopeOf(within), selector)
	if err != nil {
		return newCollection(doc, nil, hostError("querySelectorAll", err))
	}
	return newCollection(doc, nodes, nil)
}

// One returns the first element matching selector.
func One(doc Document, selector string, within ...Node) *Element {
	n, err := doc.QuerySelector(scopeOf(within), selector)
	if err != nil {
		return newElement(doc, nil, hostError("querySelector", err))
	}
	if n == nil {
		return newElement(doc, nil, notFound(fmt.Sprintf("selector %q", selector)))
	}
	return newElement(doc, n, nil)
}

// ByID returns the element with the given id.
func ByID(doc Document, id string) *Element {
	n, err := doc.GetElementByID(id)
	if err != nil {
		return newElement(doc, nil, hostError("getElementById", err))
	}
	if n == nil {
		return newElement(doc, nil, notFound(fmt.Sprintf("id %q", id)))
	}
	return newElement(doc, n, nil)
}

// New creates a detached element.
func New(doc Document, tag string) *Element {
	n, err := doc.CreateElement(tag)
	if err != nil {
		return newElement(doc, nil, hostError("createElement", err))
	}
	return newElement(doc, n, nil)
}

// NewNS creates a detached element in a namespace, e.g. SVG content:
//
//	circle := mkdom.NewNS(doc, "http://www.w3.org/2000/svg", "circle")
func NewNS(doc Document, namespaceURI, tag string) *Element {
	n, err := doc.CreateElementNS(namespaceURI, tag)
	if err != nil {
		return newElement(doc, nil, hostError("createElementNS", err))
	}
	return newElement(doc, n, nil)
}

// Wrap returns a handle over an existing host node.
func Wrap(doc Document, n Node) *Element {
	return newElement(doc, n, nil)
}

// WrapAll returns a collection over existing host nodes.
func WrapAll(doc Document, nodes []Node) *Collection {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return newCollection(doc, out, nil)
}

func scopeOf(within []Node) Node {
	if len(within) == 0 {
		return nil
	}
	return within[0]
}

package mkdom

// Node is an opaque reference to a node owned by the host document. Hosts
// decide the concrete type (*html.Node, *rod.Element, js.Value). A nil Node
// means "absent"; hosts must return an untyped nil, never a typed nil
// pointer, when there is no node.
type Node any

// Document is the host document API the handles delegate to. Every method
// maps to one host primitive. Remote hosts can fail on any call, so every
// method reports an error; local hosts return nil errors for reads.
type Document interface {
	// QuerySelectorAll returns all elements under scope matching selector,
	// in document order. A nil scope means the whole document.
	QuerySelectorAll(scope Node, selector string) ([]Node, error)

	// QuerySelector returns the first match under scope, or nil.
	QuerySelector(scope Node, selector string) (Node, error)

	// GetElementByID returns the element with the given id, or nil.
	GetElementByID(id string) (Node, error)

	// CreateElement creates a detached element.
	CreateElement(tag string) (Node, error)

	// CreateElementNS creates a detached element in a namespace.
	CreateElementNS(namespaceURI, tag string) (Node, error)

	// CloneNode copies n, including its subtree when deep is set.
	// Event listeners are not copied.
	CloneNode(n Node, deep bool) (Node, error)

	ParentNode(n Node) (Node, error)
	FirstChild(n Node) (Node, error)
	NextSibling(n Node) (Node, error)

	// AppendChild moves child to the end of parent's children.
	AppendChild(parent, child Node) error

	// InsertBefore moves child before ref among parent's children.
	// A nil ref appends.
	InsertBefore(parent, child, ref Node) error

	// RemoveChild detaches child from parent.
	RemoveChild(parent, child Node) error

	// SetInnerHTML replaces n's children with the parsed markup.
	SetInnerHTML(n Node, markup string) error

	GetAttribute(n Node, key string) (string, bool, error)
	SetAttribute(n Node, key, val string) error
	SetAttributeNS(n Node, namespaceURI, key, val string) error

	// ClassList returns the element's class token set, or nil when the host
	// does not provide one.
	ClassList(n Node) TokenList

	// SetStyle assigns one inline style property. An empty value clears it.
	SetStyle(n Node, property, val string) error

	// Dataset returns the element's custom data attributes keyed by their
	// camelCase name.
	Dataset(n Node) (map[string]string, error)
	SetData(n Node, key, val string) error

	OffsetWidth(n Node) (int, error)
	OffsetHeight(n Node) (int, error)

	AddEventListener(n Node, eventType string, l *Listener) error
	RemoveEventListener(n Node, eventType string, l *Listener) error
}

// TokenList is the host's class-name token set.
type TokenList interface {
	Add(token string) error
	Remove(token string) error
	Contains(token string) (bool, error)
}

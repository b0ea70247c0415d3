package htmlhost

import (
	"bytes"
	"io"
	"log/slog"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/mkdom"
	"github.com/vango-dev/mkdom/internal/errors"
)

// Namespace URIs understood by CreateElementNS and SetAttributeNS.
const (
	NamespaceHTML   = "http://www.w3.org/1999/xhtml"
	NamespaceSVG    = "http://www.w3.org/2000/svg"
	NamespaceMathML = "http://www.w3.org/1998/Math/MathML"
	NamespaceXLink  = "http://www.w3.org/1999/xlink"
	NamespaceXML    = "http://www.w3.org/XML/1998/namespace"
	NamespaceXMLNS  = "http://www.w3.org/2000/xmlns/"
)

const emptyPage = "<!DOCTYPE html><html><head></head><body></body></html>"

// Document is an in-memory host document.
type Document struct {
	root      *html.Node
	classList bool
	selectors map[string]cascadia.Selector
	listeners map[*html.Node][]registration
	logger    *slog.Logger
}

var _ mkdom.Document = (*Document)(nil)

// Option configures a Document.
type Option func(*Document)

// WithoutClassList makes ClassList return nil so callers fall back to
// editing the class attribute.
func WithoutClassList() Option {
	return func(d *Document) {
		d.classList = false
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) {
		if logger != nil {
			d.logger = logger
		}
	}
}

func newDocument(root *html.Node, opts ...Option) *Document {
	d := &Document{
		root:      root,
		classList: true,
		selectors: make(map[string]cascadia.Selector),
		listeners: make(map[*html.Node][]registration),
		logger:    slog.Default().With("component", "htmlhost"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Parse reads a full HTML document.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.New("E004").Wrap(err)
	}
	d := newDocument(root, opts...)
	d.logger.Debug("document parsed")
	return d, nil
}

// ParseString parses a full HTML document from a string.
func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(s), opts...)
}

// NewDocument returns an empty document with head and body.
func NewDocument(opts ...Option) *Document {
	d, err := ParseString(emptyPage, opts...)
	if err != nil {
		// The constant page always parses.
		panic(err)
	}
	return d
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Body returns the body element, or nil.
func (d *Document) Body() mkdom.Node {
	var body *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			body = n
			return false
		}
		return true
	})
	return wrap(body)
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// OuterHTML renders n including its own tag.
func (d *Document) OuterHTML(n mkdom.Node) string {
	hn, err := d.node(n)
	if err != nil {
		return ""
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, hn); err != nil {
		return ""
	}
	return buf.String()
}

// InnerHTML renders n's children.
func (d *Document) InnerHTML(n mkdom.Node) string {
	hn, err := d.node(n)
	if err != nil {
		return ""
	}
	var buf bytes.Buffer
	for c := hn.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return ""
		}
	}
	return buf.String()
}

// TextContent returns the concatenated text of n's subtree.
func (d *Document) TextContent(n mkdom.Node) string {
	hn, err := d.node(n)
	if err != nil {
		return ""
	}
	var b strings.Builder
	walk(hn, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// node converts a handle value back to the tree node.
func (d *Document) node(n mkdom.Node) (*html.Node, error) {
	hn, ok := n.(*html.Node)
	if !ok || hn == nil {
		return nil, errors.New("E012").WithDetailf("got %T", n)
	}
	return hn, nil
}

// wrap keeps nil pointers from turning into non-nil interface values.
func wrap(n *html.Node) mkdom.Node {
	if n == nil {
		return nil
	}
	return n
}

// walk visits n and its descendants in document order until fn returns
// false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

// descendants is walk without the starting node.
func descendants(n *html.Node, fn func(*html.Node) bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return
		}
	}
}

func (d *Document) compile(selector string) (cascadia.Selector, error) {
	if sel, ok := d.selectors[selector]; ok {
		return sel, nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, errors.New("E003").WithDetailf("%q", selector).Wrap(err)
	}
	d.selectors[selector] = sel
	return sel, nil
}

func (d *Document) scope(n mkdom.Node) (*html.Node, error) {
	if n == nil {
		return d.root, nil
	}
	return d.node(n)
}

// QuerySelectorAll implements mkdom.Document.
func (d *Document) QuerySelectorAll(scope mkdom.Node, selector string) ([]mkdom.Node, error) {
	root, err := d.scope(scope)
	if err != nil {
		return nil, err
	}
	sel, err := d.compile(selector)
	if err != nil {
		return nil, err
	}
	var out []mkdom.Node
	descendants(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && sel.Match(n) {
			out = append(out, n)
		}
		return true
	})
	return out, nil
}

// QuerySelector implements mkdom.Document.
func (d *Document) QuerySelector(scope mkdom.Node, selector string) (mkdom.Node, error) {
	root, err := d.scope(scope)
	if err != nil {
		return nil, err
	}
	sel, err := d.compile(selector)
	if err != nil {
		return nil, err
	}
	var found *html.Node
	descendants(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && sel.Match(n) {
			found = n
			return false
		}
		return true
	})
	return wrap(found), nil
}

// GetElementByID implements mkdom.Document.
func (d *Document) GetElementByID(id string) (mkdom.Node, error) {
	var found *html.Node
	descendants(d.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		if v, ok := attr(n, "id"); ok && v == id {
			found = n
			return false
		}
		return true
	})
	return wrap(found), nil
}

// CreateElement implements mkdom.Document.
func (d *Document) CreateElement(tag string) (mkdom.Node, error) {
	if tag == "" {
		return nil, errors.New("E010").WithDetail("empty tag name")
	}
	name := strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		Data:     name,
		DataAtom: atom.Lookup([]byte(name)),
	}, nil
}

// CreateElementNS implements mkdom.Document. HTML, SVG and MathML
// namespaces map to the parser's namespace names; other URIs are kept
// verbatim.
func (d *Document) CreateElementNS(namespaceURI, tag string) (mkdom.Node, error) {
	if namespaceURI == "" || namespaceURI == NamespaceHTML {
		return d.CreateElement(tag)
	}
	if tag == "" {
		return nil, errors.New("E010").WithDetail("empty tag name")
	}
	return &html.Node{
		Type:      html.ElementNode,
		Data:      tag,
		Namespace: elementNamespace(namespaceURI),
	}, nil
}

func elementNamespace(uri string) string {
	switch uri {
	case NamespaceSVG:
		return "svg"
	case NamespaceMathML:
		return "math"
	default:
		return uri
	}
}

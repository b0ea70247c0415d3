package htmlhost

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/mkdom"
	"github.com/vango-dev/mkdom/internal/errors"
)

// ParentNode implements mkdom.Document.
func (d *Document) ParentNode(n mkdom.Node) (mkdom.Node, error) {
	hn, err := d.node(n)
	if err != nil {
		return nil, err
	}
	return wrap(hn.Parent), nil
}

// FirstChild implements mkdom.Document.
func (d *Document) FirstChild(n mkdom.Node) (mkdom.Node, error) {
	hn, err := d.node(n)
	if err != nil {
		return nil, err
	}
	return wrap(hn.FirstChild), nil
}

// NextSibling implements mkdom.Document.
func (d *Document) NextSibling(n mkdom.Node) (mkdom.Node, error) {
	hn, err := d.node(n)
	if err != nil {
		return nil, err
	}
	return wrap(hn.NextSibling), nil
}

// CloneNode implements mkdom.Document. Listeners stay on the original.
func (d *Document) CloneNode(n mkdom.Node, deep bool) (mkdom.Node, error) {
	hn, err := d.node(n)
	if err != nil {
		return nil, err
	}
	return cloneNode(hn, deep), nil
}

func cloneNode(n *html.Node, deep bool) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = append([]html.Attribute(nil), n.Attr...)
	}
	if deep {
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			c.AppendChild(cloneNode(ch, true))
		}
	}
	return c
}

// AppendChild implements mkdom.Document. A child that already has a
// parent is moved.
func (d *Document) AppendChild(parent, child mkdom.Node) error {
	return d.InsertBefore(parent, child, nil)
}

// InsertBefore implements mkdom.Document.
func (d *Document) InsertBefore(parent, child, ref mkdom.Node) error {
	p, err := d.node(parent)
	if err != nil {
		return err
	}
	c, err := d.node(child)
	if err != nil {
		return err
	}
	var r *html.Node
	if ref != nil {
		if r, err = d.node(ref); err != nil {
			return err
		}
		if r.Parent != p {
			return errors.New("E005").WithDetail("reference node is not a child of the parent")
		}
	}
	if isInclusiveAncestor(c, p) {
		return errors.New("E005").WithDetail("node would contain itself")
	}
	if c == r {
		return nil
	}
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
	if r == nil {
		p.AppendChild(c)
	} else {
		p.InsertBefore(c, r)
	}
	return nil
}

// RemoveChild implements mkdom.Document.
func (d *Document) RemoveChild(parent, child mkdom.Node) error {
	p, err := d.node(parent)
	if err != nil {
		return err
	}
	c, err := d.node(child)
	if err != nil {
		return err
	}
	if c.Parent != p {
		return errors.New("E005").WithDetail("node is not a child of the parent")
	}
	p.RemoveChild(c)
	return nil
}

// SetInnerHTML implements mkdom.Document.
func (d *Document) SetInnerHTML(n mkdom.Node, markup string) error {
	hn, err := d.node(n)
	if err != nil {
		return err
	}
	if hn.Type != html.ElementNode {
		return errors.New("E004").WithDetail("inner content can only be set on elements")
	}

	var parsed []*html.Node
	if markup != "" {
		parsed, err = html.ParseFragment(strings.NewReader(markup), fragmentContext(hn))
		if err != nil {
			return errors.New("E004").Wrap(err)
		}
	}

	for c := hn.FirstChild; c != nil; {
		next := c.NextSibling
		hn.RemoveChild(c)
		c = next
	}
	for _, c := range parsed {
		if c.Parent != nil {
			c.Parent.RemoveChild(c)
		}
		hn.AppendChild(c)
	}
	return nil
}

// fragmentContext returns the context element for fragment parsing. The
// parser needs a body context for the document element.
func fragmentContext(n *html.Node) *html.Node {
	if n.Namespace == "" && n.DataAtom == atom.Html {
		return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	}
	return n
}

func isInclusiveAncestor(ancestor, n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

package htmlhost

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/vango-dev/mkdom"
	"github.com/vango-dev/mkdom/internal/errors"
)

// attr looks up a non-namespaced attribute. HTML attribute names are
// case-insensitive; foreign (SVG, MathML) names are not.
func attr(n *html.Node, key string) (string, bool) {
	if i := attrIndex(n, "", key); i >= 0 {
		return n.Attr[i].Val, true
	}
	return "", false
}

func attrIndex(n *html.Node, ns, key string) int {
	if n.Namespace == "" {
		key = strings.ToLower(key)
	}
	for i, a := range n.Attr {
		if a.Namespace == ns && a.Key == key {
			return i
		}
	}
	return -1
}

func setAttr(n *html.Node, ns, key, val string) {
	if n.Namespace == "" && ns == "" {
		key = strings.ToLower(key)
	}
	if i := attrIndex(n, ns, key); i >= 0 {
		n.Attr[i].Val = val
		return
	}
	n.Attr = append(n.Attr, html.Attribute{Namespace: ns, Key: key, Val: val})
}

func removeAttr(n *html.Node, ns, key string) {
	if i := attrIndex(n, ns, key); i >= 0 {
		n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
	}
}

func (d *Document) element(n mkdom.Node) (*html.Node, error) {
	hn, err := d.node(n)
	if err != nil {
		return nil, err
	}
	if hn.Type != html.ElementNode {
		return nil, errors.New("E010").WithDetail("not an element")
	}
	return hn, nil
}

// GetAttribute implements mkdom.Document. A qualified name such as
// "xlink:href" also finds namespaced attributes.
func (d *Document) GetAttribute(n mkdom.Node, key string) (string, bool, error) {
	hn, err := d.element(n)
	if err != nil {
		return "", false, err
	}
	if v, ok := attr(hn, key); ok {
		return v, true, nil
	}
	if prefix, local, ok := strings.Cut(key, ":"); ok {
		if i := attrIndex(hn, prefix, local); i >= 0 {
			return hn.Attr[i].Val, true, nil
		}
	}
	return "", false, nil
}

// SetAttribute implements mkdom.Document.
func (d *Document) SetAttribute(n mkdom.Node, key, val string) error {
	hn, err := d.element(n)
	if err != nil {
		return err
	}
	if key == "" {
		return errors.New("E010").WithDetail("empty attribute name")
	}
	setAttr(hn, "", key, val)
	return nil
}

// SetAttributeNS implements mkdom.Document. The prefix of a qualified name
// wins; otherwise the well known XLink, XML and XMLNS URIs map to their
// usual prefixes. Unknown namespaces without a prefix store a plain
// attribute.
func (d *Document) SetAttributeNS(n mkdom.Node, namespaceURI, key, val string) error {
	hn, err := d.element(n)
	if err != nil {
		return err
	}
	if key == "" {
		return errors.New("E010").WithDetail("empty attribute name")
	}
	prefix, local, ok := strings.Cut(key, ":")
	if !ok {
		prefix, local = attrNamespace(namespaceURI), key
	}
	setAttr(hn, prefix, local, val)
	return nil
}

func attrNamespace(uri string) string {
	switch uri {
	case NamespaceXLink:
		return "xlink"
	case NamespaceXML:
		return "xml"
	case NamespaceXMLNS:
		return "xmlns"
	default:
		return ""
	}
}

// ClassList implements mkdom.Document. It returns nil when the document
// was built WithoutClassList.
func (d *Document) ClassList(n mkdom.Node) mkdom.TokenList {
	if !d.classList {
		return nil
	}
	hn, err := d.element(n)
	if err != nil {
		return nil
	}
	return &classList{n: hn}
}

// classList is the token set view of the class attribute.
type classList struct {
	n *html.Node
}

func validToken(token string) error {
	if token == "" {
		return errors.New("E010").WithDetail("empty class token")
	}
	if strings.IndexFunc(token, unicode.IsSpace) >= 0 {
		return errors.New("E010").WithDetailf("class token %q contains whitespace", token)
	}
	return nil
}

func (c *classList) tokens() []string {
	v, _ := attr(c.n, "class")
	return strings.Fields(v)
}

func (c *classList) Add(token string) error {
	if err := validToken(token); err != nil {
		return err
	}
	tokens := c.tokens()
	for _, t := range tokens {
		if t == token {
			return nil
		}
	}
	setAttr(c.n, "", "class", strings.Join(append(tokens, token), " "))
	return nil
}

func (c *classList) Remove(token string) error {
	if err := validToken(token); err != nil {
		return err
	}
	if _, ok := attr(c.n, "class"); !ok {
		return nil
	}
	tokens := c.tokens()
	kept := tokens[:0]
	for _, t := range tokens {
		if t != token {
			kept = append(kept, t)
		}
	}
	setAttr(c.n, "", "class", strings.Join(kept, " "))
	return nil
}

func (c *classList) Contains(token string) (bool, error) {
	for _, t := range c.tokens() {
		if t == token {
			return true, nil
		}
	}
	return false, nil
}

// Dataset implements mkdom.Document.
func (d *Document) Dataset(n mkdom.Node) (map[string]string, error) {
	hn, err := d.element(n)
	if err != nil {
		return nil, err
	}
	ds := make(map[string]string)
	for _, a := range hn.Attr {
		if a.Namespace == "" && strings.HasPrefix(a.Key, "data-") {
			ds[dataKey(a.Key[len("data-"):])] = a.Val
		}
	}
	return ds, nil
}

// SetData implements mkdom.Document.
func (d *Document) SetData(n mkdom.Node, key, val string) error {
	hn, err := d.element(n)
	if err != nil {
		return err
	}
	if err := validDataKey(key); err != nil {
		return err
	}
	setAttr(hn, "", "data-"+kebab(key), val)
	return nil
}

// validDataKey rejects keys that could not be read back under the same
// name: a hyphen followed by a lowercase letter maps to a different key.
func validDataKey(key string) error {
	if key == "" {
		return errors.New("E010").WithDetail("empty data key")
	}
	for i := 0; i+1 < len(key); i++ {
		if key[i] == '-' && key[i+1] >= 'a' && key[i+1] <= 'z' {
			return errors.New("E010").WithDetail("invalid data key " + strconv.Quote(key))
		}
	}
	return nil
}

// dataKey converts "foo-bar" to "fooBar".
func dataKey(name string) string {
	var b strings.Builder
	upper := false
	for _, r := range name {
		if r == '-' {
			upper = true
			continue
		}
		if upper && r >= 'a' && r <= 'z' {
			r = unicode.ToUpper(r)
		} else if upper {
			b.WriteByte('-')
		}
		upper = false
		b.WriteRune(r)
	}
	if upper {
		b.WriteByte('-')
	}
	return b.String()
}

// kebab converts "fooBar" to "foo-bar".
func kebab(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

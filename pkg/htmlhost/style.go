package htmlhost

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/vango-dev/mkdom"
)

type declaration struct {
	property string
	value    string
}

func parseStyle(s string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(s, ";") {
		prop, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		val = strings.TrimSpace(val)
		if prop == "" || val == "" {
			continue
		}
		decls = append(decls, declaration{property: prop, value: val})
	}
	return decls
}

func formatStyle(decls []declaration) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.property + ": " + d.value
	}
	return strings.Join(parts, "; ")
}

// cssProperty maps script style names ("backgroundColor", "cssFloat") to
// CSS property names. Names that already contain a dash pass through.
func cssProperty(name string) string {
	if name == "cssFloat" {
		return "float"
	}
	if strings.Contains(name, "-") {
		return strings.ToLower(name)
	}
	return kebab(name)
}

func styleValue(n *html.Node, property string) string {
	s, _ := attr(n, "style")
	for _, d := range parseStyle(s) {
		if d.property == property {
			return d.value
		}
	}
	return ""
}

// SetStyle implements mkdom.Document. Declarations keep their first
// position when updated and new ones are appended.
func (d *Document) SetStyle(n mkdom.Node, property, val string) error {
	hn, err := d.element(n)
	if err != nil {
		return err
	}
	prop := cssProperty(property)
	val = strings.TrimSpace(val)

	s, _ := attr(hn, "style")
	decls := parseStyle(s)
	idx := -1
	for i, decl := range decls {
		if decl.property == prop {
			idx = i
			break
		}
	}
	switch {
	case val == "" && idx >= 0:
		decls = append(decls[:idx], decls[idx+1:]...)
	case val == "":
		return nil
	case idx >= 0:
		decls[idx].value = val
	default:
		decls = append(decls, declaration{property: prop, value: val})
	}

	if len(decls) == 0 {
		removeAttr(hn, "", "style")
		return nil
	}
	setAttr(hn, "", "style", formatStyle(decls))
	return nil
}

// Style returns one inline style value, or "".
func (d *Document) Style(n mkdom.Node, property string) string {
	hn, err := d.element(n)
	if err != nil {
		return ""
	}
	return styleValue(hn, cssProperty(property))
}

// OffsetWidth implements mkdom.Document.
func (d *Document) OffsetWidth(n mkdom.Node) (int, error) {
	return d.dimension(n, "width")
}

// OffsetHeight implements mkdom.Document.
func (d *Document) OffsetHeight(n mkdom.Node) (int, error) {
	return d.dimension(n, "height")
}

func (d *Document) dimension(n mkdom.Node, name string) (int, error) {
	hn, err := d.element(n)
	if err != nil {
		return 0, err
	}
	for cur := hn; cur != nil && cur.Type == html.ElementNode; cur = cur.Parent {
		if styleValue(cur, "display") == "none" {
			return 0, nil
		}
	}
	if px, ok := pixels(styleValue(hn, name)); ok {
		return px, nil
	}
	if v, ok := attr(hn, name); ok {
		if px, ok := pixels(v); ok {
			return px, nil
		}
	}
	return 0, nil
}

// pixels parses "120", "120px" or "120.6px" and rounds to whole pixels.
func pixels(v string) (int, bool) {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return int(math.Round(f)), true
}

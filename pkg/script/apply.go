package script

import (
	"github.com/vango-dev/mkdom"
)

// apply runs one step and returns the number of elements it touched.
func apply(doc mkdom.Document, st *Step) (int, error) {
	if st.All != "" {
		return applyAll(doc, mkdom.All(doc, st.All), st)
	}
	var el *mkdom.Element
	if st.One != "" {
		el = mkdom.One(doc, st.One)
	} else {
		el = mkdom.ByID(doc, st.ID)
	}
	if !el.Exists() {
		return 0, el.Err()
	}
	return applyOne(doc, el, st)
}

func applyAll(doc mkdom.Document, c *mkdom.Collection, st *Step) (int, error) {
	if err := c.Err(); err != nil {
		return 0, err
	}
	switch st.Op {
	case "css":
		c.CSS(st.Values)
	case "html":
		c.HTML(st.HTML)
	case "clear":
		c.Clear()
	case "addClass":
		c.AddClass(st.Name)
	case "removeClass":
		c.RemoveClass(st.Name)
	case "attr":
		c.SetAttr(st.Name, st.Value)
	case "remove":
		if err := c.Remove(); err != nil {
			return 0, err
		}
	case "append", "prepend":
		tpl, err := build(doc, st.Node)
		if err != nil {
			return 0, err
		}
		var out *mkdom.Collection
		if st.Op == "append" {
			out = c.Append(tpl)
		} else {
			out = c.Prepend(tpl)
		}
		if err := out.Err(); err != nil {
			return 0, err
		}
		return out.Len(), nil
	default:
		// Single-element operations run once per match.
		for i := 0; i < c.Len(); i++ {
			if _, err := applyOne(doc, c.At(i), st); err != nil {
				return i, err
			}
		}
		return c.Len(), nil
	}
	if err := c.Err(); err != nil {
		return 0, err
	}
	return c.Len(), nil
}

func applyOne(doc mkdom.Document, el *mkdom.Element, st *Step) (int, error) {
	switch st.Op {
	case "css":
		el.CSS(st.Values)
	case "html":
		el.HTML(st.HTML)
	case "clear":
		el.Clear()
	case "addClass":
		el.AddClass(st.Name)
	case "removeClass":
		el.RemoveClass(st.Name)
	case "attr":
		el.SetAttr(st.Name, st.Value)
	case "attrs":
		el.SetAttrs(st.Values)
	case "attrNS":
		el.SetAttrsNS(st.Namespace, st.Values)
	case "data":
		el.SetData(st.Name, st.Value)
	case "outline":
		el.Outline(st.Color, st.Width)
	case "outlineOff":
		el.OutlineOff()
	case "remove":
		if err := el.Remove(); err != nil {
			return 0, err
		}
	case "append", "prepend", "insertBefore", "insertAfter":
		node, err := build(doc, st.Node)
		if err != nil {
			return 0, err
		}
		if res := insert(el, node, st.Op, st.Clone); res.Err() != nil {
			return 0, res.Err()
		}
	}
	if err := el.Err(); err != nil {
		return 0, err
	}
	return 1, nil
}

func insert(el, node *mkdom.Element, op string, clone bool) *mkdom.Element {
	switch op {
	case "append":
		if clone {
			return el.AppendClone(node)
		}
		return el.Append(node)
	case "prepend":
		if clone {
			return el.PrependClone(node)
		}
		return el.Prepend(node)
	case "insertBefore":
		if clone {
			return el.InsertBeforeClone(node)
		}
		return el.InsertBefore(node)
	default:
		if clone {
			return el.InsertAfterClone(node)
		}
		return el.InsertAfter(node)
	}
}

// build resolves a node spec to an element: the referenced element, or a
// new one from the template.
func build(doc mkdom.Document, ns *NodeSpec) (*mkdom.Element, error) {
	if ns.Ref != "" {
		el := mkdom.One(doc, ns.Ref)
		return el, el.Err()
	}
	var el *mkdom.Element
	if ns.NS != "" {
		el = mkdom.NewNS(doc, ns.NS, ns.Tag)
	} else {
		el = mkdom.New(doc, ns.Tag)
	}
	if len(ns.Attrs) > 0 {
		el.SetAttrs(ns.Attrs)
	}
	if ns.HTML != "" {
		el.HTML(ns.HTML)
	}
	return el, el.Err()
}

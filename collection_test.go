package mkdom_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/mkdom"
	"github.com/vango-dev/mkdom/pkg/htmlhost"
)

const listPage = `<!DOCTYPE html><html><head></head><body>
<section id="a" class="box"><p class="item">one</p></section>
<section id="b" class="box"><p class="item">two</p></section>
<section id="c" class="box"><p class="item">three</p></section>
<template id="tpl-holder"><span>ignored</span></template>
</body></html>`

func parse(t *testing.T, markup string, opts ...htmlhost.Option) *htmlhost.Document {
	t.Helper()
	doc, err := htmlhost.ParseString(markup, opts...)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	return doc
}

func TestAllLengthAndRemove(t *testing.T) {
	doc := parse(t, listPage)

	items := mkdom.All(doc, ".item")
	if items.Len() != 3 {
		t.Fatalf("Len = %d, want 3", items.Len())
	}
	if err := items.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got := mkdom.All(doc, ".item").Len(); got != 0 {
		t.Errorf("Len after remove = %d, want 0", got)
	}
	// The collection keeps its construction-time length.
	if items.Len() != 3 {
		t.Errorf("Len changed to %d after external mutation", items.Len())
	}
}

func TestAllWithin(t *testing.T) {
	doc := parse(t, listPage)
	b := mkdom.ByID(doc, "b")

	in := mkdom.All(doc, ".item", b.Node())
	if in.Len() != 1 {
		t.Fatalf("Len = %d, want 1", in.Len())
	}
	if got := doc.TextContent(in.At(0).Node()); got != "two" {
		t.Errorf("text = %q, want two", got)
	}
}

func TestEmptyCollectionNeverFails(t *testing.T) {
	doc := parse(t, listPage)
	none := mkdom.All(doc, ".missing")

	calls := 0
	none.CSS(map[string]string{"color": "red"}).
		HTML("<b>x</b>").
		Clear().
		SetAttr("k", "v").
		AddClass("x").
		RemoveClass("x").
		On("click", mkdom.NewListener(func(*mkdom.Event) {})).
		Each(func(mkdom.Node) { calls++ })

	if err := none.Remove(); err != nil {
		t.Errorf("Remove on empty collection: %v", err)
	}
	if none.Err() != nil {
		t.Errorf("Err = %v, want nil", none.Err())
	}
	if calls != 0 {
		t.Errorf("Each called %d times on empty collection", calls)
	}
	if got := none.Append(mkdom.New(doc, "i")).Len(); got != 0 {
		t.Errorf("Append on empty collection returned %d clones", got)
	}
}

func TestEmptyStyleMapTouchesNothing(t *testing.T) {
	doc := parse(t, listPage)
	before := doc.String()

	visited := 0
	mkdom.All(doc, ".box").CSS(map[string]string{}).Each(func(mkdom.Node) { visited++ })

	if visited != 3 {
		t.Errorf("Each visited %d, want 3", visited)
	}
	if doc.String() != before {
		t.Error("CSS with an empty map changed the document")
	}
}

func TestCollectionCSSAndAttr(t *testing.T) {
	doc := parse(t, listPage)

	mkdom.All(doc, ".box").
		CSS(map[string]string{"color": "red", "marginTop": "4px"}).
		SetAttr("role", "region")

	mkdom.All(doc, ".box").Each(func(n mkdom.Node) {
		if got := doc.Style(n, "color"); got != "red" {
			t.Errorf("color = %q", got)
		}
		if got := doc.Style(n, "margin-top"); got != "4px" {
			t.Errorf("margin-top = %q", got)
		}
		if v, _ := mkdom.Wrap(doc, n).Attr("role"); v != "region" {
			t.Errorf("role = %q", v)
		}
	})
}

func TestCollectionHTMLAndClear(t *testing.T) {
	doc := parse(t, listPage)
	boxes := mkdom.All(doc, ".box")

	boxes.HTML("<em>hi</em>")
	if got := mkdom.All(doc, "section > em").Len(); got != 3 {
		t.Errorf("em count = %d, want 3", got)
	}

	boxes.Clear()
	boxes.Each(func(n mkdom.Node) {
		if got := doc.InnerHTML(n); got != "" {
			t.Errorf("InnerHTML after Clear = %q", got)
		}
	})
	if boxes.Err() != nil {
		t.Errorf("Err = %v", boxes.Err())
	}
}

func TestCollectionParent(t *testing.T) {
	doc := parse(t, listPage)
	items := mkdom.All(doc, ".item")

	parents := items.Parent()
	if parents.Len() != 3 {
		t.Fatalf("Len = %d, want 3", parents.Len())
	}
	var ids []string
	parents.Each(func(n mkdom.Node) {
		id, _ := mkdom.Wrap(doc, n).Attr("id")
		ids = append(ids, id)
	})
	if diff := cmp.Diff([]string{"a", "b", "c"}, ids); diff != "" {
		t.Errorf("parent order mismatch (-want +got):\n%s", diff)
	}

	// Shared parents repeat; detached elements contribute nothing.
	loose := mkdom.New(doc, "div")
	mixed := mkdom.WrapAll(doc, []mkdom.Node{items.At(0).Node(), items.At(0).Node(), loose.Node()})
	if got := mixed.Parent().Len(); got != 2 {
		t.Errorf("Parent().Len() = %d, want 2", got)
	}
}

func TestCollectionAppendClones(t *testing.T) {
	doc := parse(t, listPage)
	holder := mkdom.New(doc, "aside")
	mkdom.One(doc, "body").Append(holder)
	tpl := holder.Append(mkdom.New(doc, "span").SetAttr("class", "badge").HTML("new"))

	boxes := mkdom.All(doc, ".box")
	clones := boxes.Append(tpl)
	if clones.Len() != boxes.Len() {
		t.Fatalf("clones = %d, want %d", clones.Len(), boxes.Len())
	}
	if p := tpl.Parent(); p.Node() != holder.Node() {
		t.Error("template moved out of its parent")
	}
	for i := 0; i < clones.Len(); i++ {
		c := clones.At(i)
		if c.Node() == tpl.Node() {
			t.Fatal("clone is the template itself")
		}
		if c.Parent().Node() != boxes.At(i).Node() {
			t.Errorf("clone %d not inside box %d", i, i)
		}
	}
	if got := mkdom.All(doc, ".box > .badge:last-child").Len(); got != 3 {
		t.Errorf("badges as last child = %d, want 3", got)
	}
}

func TestCollectionPrepend(t *testing.T) {
	doc := parse(t, listPage)
	tpl := mkdom.New(doc, "h2").HTML("title")

	clones := mkdom.All(doc, ".box").Prepend(tpl)
	if clones.Len() != 3 {
		t.Fatalf("clones = %d", clones.Len())
	}
	if got := mkdom.All(doc, ".box > h2:first-child").Len(); got != 3 {
		t.Errorf("h2 as first child = %d, want 3", got)
	}
	if tpl.Parent().Exists() {
		t.Error("detached template gained a parent")
	}
}

func TestCollectionAppendAbsentTemplate(t *testing.T) {
	doc := parse(t, listPage)
	boxes := mkdom.All(doc, ".box")

	out := boxes.Append(mkdom.ByID(doc, "nope"))
	if out.Len() != 0 {
		t.Errorf("Len = %d, want 0", out.Len())
	}
	if !errors.Is(boxes.Err(), mkdom.ErrElementNotFound) {
		t.Errorf("Err = %v, want ErrElementNotFound", boxes.Err())
	}
}

func TestCollectionRemoveDetached(t *testing.T) {
	doc := parse(t, listPage)
	loose := mkdom.New(doc, "div")
	attached := mkdom.ByID(doc, "a")

	c := mkdom.WrapAll(doc, []mkdom.Node{loose.Node(), attached.Node()})
	err := c.Remove()
	if !errors.Is(err, mkdom.ErrDetachedNode) {
		t.Errorf("err = %v, want ErrDetachedNode", err)
	}
	if mkdom.ByID(doc, "a").Exists() {
		t.Error("attached element after the failure was not removed")
	}
}

func TestCollectionClasses(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts []htmlhost.Option
	}{
		{"token set", nil},
		{"class string", []htmlhost.Option{htmlhost.WithoutClassList()}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			doc := parse(t, listPage, tc.opts...)
			boxes := mkdom.All(doc, ".box")

			boxes.AddClass("on").AddClass("on")
			if got := mkdom.All(doc, ".box.on").Len(); got != 3 {
				t.Errorf("after AddClass = %d, want 3", got)
			}
			if v, _ := boxes.At(0).Attr("class"); v != "box on" {
				t.Errorf("class = %q, want %q", v, "box on")
			}

			boxes.RemoveClass("box")
			if got := mkdom.All(doc, ".box").Len(); got != 0 {
				t.Errorf("after RemoveClass = %d, want 0", got)
			}
			if got := mkdom.All(doc, ".on").Len(); got != 3 {
				t.Errorf("other classes lost: %d", got)
			}
		})
	}
}

func TestCollectionEvents(t *testing.T) {
	doc := parse(t, listPage)
	boxes := mkdom.All(doc, ".box")

	hits := 0
	l := mkdom.NewListener(func(*mkdom.Event) { hits++ })
	boxes.On("click", l)

	boxes.Each(func(n mkdom.Node) {
		if _, err := doc.Dispatch(n, "click", nil); err != nil {
			t.Fatal(err)
		}
	})
	if hits != 3 {
		t.Errorf("hits = %d, want 3", hits)
	}

	boxes.Off("click", l)
	boxes.Each(func(n mkdom.Node) { _, _ = doc.Dispatch(n, "click", nil) })
	if hits != 3 {
		t.Errorf("hits after Off = %d, want 3", hits)
	}
}

func TestInvalidSelectorRecorded(t *testing.T) {
	doc := parse(t, listPage)

	c := mkdom.All(doc, "p[")
	if c.Len() != 0 {
		t.Errorf("Len = %d", c.Len())
	}
	if !errors.Is(c.Err(), mkdom.ErrInvalidSelector) {
		t.Errorf("Err = %v, want ErrInvalidSelector", c.Err())
	}
	if !errors.Is(c.Parent().Err(), mkdom.ErrInvalidSelector) {
		t.Error("derived collection should carry the error")
	}
}

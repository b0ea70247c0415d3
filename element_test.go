package mkdom_test

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/mkdom"
	"github.com/vango-dev/mkdom/pkg/domtest"
	"github.com/vango-dev/mkdom/pkg/htmlhost"
)

const treePage = `<!DOCTYPE html><html><head></head><body>
<div id="left"><span id="moving" class="chip" title="t">m</span></div>
<div id="right"><b id="first">1</b><b id="last">2</b></div>
<div id="box" style="width: 200px; height: 50px"></div>
</body></html>`

func TestFactories(t *testing.T) {
	doc := parse(t, treePage)

	if el := mkdom.One(doc, "#right b"); !el.Exists() || el.Err() != nil {
		t.Errorf("One = exists %v, err %v", el.Exists(), el.Err())
	}
	if el := mkdom.ByID(doc, "last"); doc.TextContent(el.Node()) != "2" {
		t.Errorf("ByID text = %q", doc.TextContent(el.Node()))
	}
	if el := mkdom.New(doc, "section"); !el.Exists() || el.Parent().Exists() {
		t.Error("New should create a detached element")
	}
	svg := mkdom.NewNS(doc, htmlhost.NamespaceSVG, "rect")
	if !svg.Exists() {
		t.Fatal("NewNS failed")
	}
	if got := doc.OuterHTML(svg.Node()); got != "<rect></rect>" {
		t.Errorf("OuterHTML = %q", got)
	}
}

func TestAbsentElement(t *testing.T) {
	doc := parse(t, treePage)

	tests := []struct {
		name string
		el   *mkdom.Element
	}{
		{"One", mkdom.One(doc, ".missing")},
		{"ByID", mkdom.ByID(doc, "missing")},
		{"At", mkdom.All(doc, "b").At(9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := tt.el
			if el.Exists() || el.Len() != 0 {
				t.Errorf("Exists = %v, Len = %d", el.Exists(), el.Len())
			}
			if !errors.Is(el.Err(), mkdom.ErrElementNotFound) {
				t.Errorf("Err = %v, want ErrElementNotFound", el.Err())
			}

			// Everything is a no-op.
			el.CSS(map[string]string{"color": "red"}).HTML("x").AddClass("a").SetAttr("k", "v").SetData("k", "v")
			if el.HasClass("a") || el.Height() != 0 || el.Width() != 0 {
				t.Error("absent element reported state")
			}
			if _, ok := el.Attr("k"); ok {
				t.Error("absent element has attribute")
			}
			if el.Dataset() != nil {
				t.Error("absent element has dataset")
			}
			if err := el.Remove(); !errors.Is(err, mkdom.ErrElementNotFound) {
				t.Errorf("Remove = %v", err)
			}
			if el.Parent().Exists() {
				t.Error("parent of absent element exists")
			}
		})
	}
}

func TestClassRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts []htmlhost.Option
	}{
		{"token set", nil},
		{"class string", []htmlhost.Option{htmlhost.WithoutClassList()}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			doc := parse(t, treePage, tc.opts...)
			el := mkdom.ByID(doc, "moving")

			for i := 0; i < 2; i++ {
				el.AddClass("hot")
				if !el.HasClass("hot") {
					t.Fatalf("round %d: HasClass after AddClass = false", i)
				}
			}
			if v, _ := el.Attr("class"); v != "chip hot" {
				t.Errorf("class = %q, want %q", v, "chip hot")
			}
			for i := 0; i < 2; i++ {
				el.RemoveClass("hot")
				if el.HasClass("hot") {
					t.Fatalf("round %d: HasClass after RemoveClass = true", i)
				}
			}
			if !el.HasClass("chip") {
				t.Error("unrelated class removed")
			}
			if el.HasClass("chi") {
				t.Error("prefix matched as a class")
			}
			if el.Err() != nil {
				t.Errorf("Err = %v", el.Err())
			}
		})
	}
}

func TestAttrRoundTrip(t *testing.T) {
	doc := parse(t, treePage)
	el := mkdom.ByID(doc, "moving")

	for _, v := range []string{"hello", "", "0", "with space"} {
		el.SetAttr("aria-label", v)
		got, ok := el.Attr("aria-label")
		if !ok || got != v {
			t.Errorf("Attr after SetAttr(%q) = %q, %v", v, got, ok)
		}
	}

	el.SetAttrs(map[string]string{"role": "button", "tabindex": "0"})
	if v, _ := el.Attr("role"); v != "button" {
		t.Errorf("role = %q", v)
	}
	if v, _ := el.Attr("tabindex"); v != "0" {
		t.Errorf("tabindex = %q", v)
	}
}

func TestAttrNS(t *testing.T) {
	doc := parse(t, treePage)
	use := mkdom.NewNS(doc, htmlhost.NamespaceSVG, "use").
		SetAttrNS(htmlhost.NamespaceXLink, "xlink:href", "#icon").
		SetAttrsNS(htmlhost.NamespaceXLink, map[string]string{"title": "icon"})

	if got := doc.OuterHTML(use.Node()); got != `<use xlink:href="#icon" xlink:title="icon"></use>` {
		t.Errorf("OuterHTML = %s", got)
	}
}

func TestDataRoundTrip(t *testing.T) {
	doc := parse(t, treePage)
	el := mkdom.ByID(doc, "moving")

	el.SetData("foo", "bar").SetData("userId", "")
	if v, ok := el.Data("foo"); !ok || v != "bar" {
		t.Errorf("Data(foo) = %q, %v", v, ok)
	}
	if v, ok := el.Data("userId"); !ok || v != "" {
		t.Errorf("Data(userId) = %q, %v, want empty and present", v, ok)
	}
	if _, ok := el.Data("nope"); ok {
		t.Error("Data(nope) present")
	}
	want := map[string]string{"foo": "bar", "userId": ""}
	if diff := cmp.Diff(want, el.Dataset()); diff != "" {
		t.Errorf("Dataset mismatch (-want +got):\n%s", diff)
	}
}

func TestAppendMoves(t *testing.T) {
	doc := parse(t, treePage)
	left := mkdom.ByID(doc, "left")
	right := mkdom.ByID(doc, "right")
	moving := mkdom.ByID(doc, "moving")

	got := right.Append(moving)
	if got != moving {
		t.Error("Append should return the argument handle")
	}
	if mkdom.One(doc, "#moving", left.Node()).Exists() {
		t.Error("old parent still contains the element")
	}
	if moving.Parent().Node() != right.Node() {
		t.Error("element not inside the new parent")
	}
	if got := doc.InnerHTML(right.Node()); got != `<b id="first">1</b><b id="last">2</b><span id="moving" class="chip" title="t">m</span>` {
		t.Errorf("right = %s", got)
	}
}

func TestAppendCloneKeepsOriginal(t *testing.T) {
	doc := parse(t, treePage)
	left := mkdom.ByID(doc, "left")
	right := mkdom.ByID(doc, "right")
	moving := mkdom.ByID(doc, "moving")

	clone := right.AppendClone(moving)
	if clone == moving || clone.Node() == moving.Node() {
		t.Fatal("AppendClone returned the original")
	}
	if moving.Parent().Node() != left.Node() {
		t.Error("original moved")
	}
	if clone.Parent().Node() != right.Node() {
		t.Error("clone not inserted")
	}
	if v, _ := clone.Attr("title"); v != "t" {
		t.Errorf("clone title = %q", v)
	}
	if doc.OuterHTML(clone.Node()) != doc.OuterHTML(moving.Node()) {
		t.Error("clone differs from the original")
	}
}

func TestPrependAndSiblingInsertion(t *testing.T) {
	tests := []struct {
		name string
		run  func(doc *htmlhost.Document) *mkdom.Element
		want string
	}{
		{
			name: "prepend",
			run: func(doc *htmlhost.Document) *mkdom.Element {
				return mkdom.ByID(doc, "right").Prepend(mkdom.New(doc, "i"))
			},
			want: `<i></i><b id="first">1</b><b id="last">2</b>`,
		},
		{
			name: "insert before",
			run: func(doc *htmlhost.Document) *mkdom.Element {
				return mkdom.ByID(doc, "last").InsertBefore(mkdom.New(doc, "i"))
			},
			want: `<b id="first">1</b><i></i><b id="last">2</b>`,
		},
		{
			name: "insert after middle",
			run: func(doc *htmlhost.Document) *mkdom.Element {
				return mkdom.ByID(doc, "first").InsertAfter(mkdom.New(doc, "i"))
			},
			want: `<b id="first">1</b><i></i><b id="last">2</b>`,
		},
		{
			name: "insert after last",
			run: func(doc *htmlhost.Document) *mkdom.Element {
				return mkdom.ByID(doc, "last").InsertAfter(mkdom.New(doc, "i"))
			},
			want: `<b id="first">1</b><b id="last">2</b><i></i>`,
		},
		{
			name: "reorder by moving",
			run: func(doc *htmlhost.Document) *mkdom.Element {
				return mkdom.ByID(doc, "first").InsertBefore(mkdom.ByID(doc, "last"))
			},
			want: `<b id="last">2</b><b id="first">1</b>`,
		},
		{
			name: "clone before",
			run: func(doc *htmlhost.Document) *mkdom.Element {
				return mkdom.ByID(doc, "first").InsertBeforeClone(mkdom.ByID(doc, "last"))
			},
			want: `<b id="last">2</b><b id="first">1</b><b id="last">2</b>`,
		},
		{
			name: "clone after",
			run: func(doc *htmlhost.Document) *mkdom.Element {
				return mkdom.ByID(doc, "last").InsertAfterClone(mkdom.ByID(doc, "first"))
			},
			want: `<b id="first">1</b><b id="last">2</b><b id="first">1</b>`,
		},
		{
			name: "prepend clone",
			run: func(doc *htmlhost.Document) *mkdom.Element {
				return mkdom.ByID(doc, "right").PrependClone(mkdom.ByID(doc, "last"))
			},
			want: `<b id="last">2</b><b id="first">1</b><b id="last">2</b>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, treePage)
			got := tt.run(doc)
			if got.Err() != nil {
				t.Fatalf("Err = %v", got.Err())
			}
			right, _ := doc.GetElementByID("right")
			if html := doc.InnerHTML(right); html != tt.want {
				t.Errorf("right = %s\nwant    %s", html, tt.want)
			}
		})
	}
}

func TestSiblingInsertionOnDetached(t *testing.T) {
	doc := parse(t, treePage)
	loose := mkdom.New(doc, "div")
	other := mkdom.New(doc, "span")

	loose.InsertBefore(other)
	if !errors.Is(loose.Err(), mkdom.ErrDetachedNode) {
		t.Errorf("receiver Err = %v, want ErrDetachedNode", loose.Err())
	}
	if !errors.Is(other.Err(), mkdom.ErrDetachedNode) {
		t.Errorf("argument Err = %v, want ErrDetachedNode", other.Err())
	}

	clone := mkdom.New(doc, "div").InsertAfterClone(mkdom.New(doc, "span"))
	if clone.Exists() || !errors.Is(clone.Err(), mkdom.ErrDetachedNode) {
		t.Errorf("clone handle = exists %v, err %v", clone.Exists(), clone.Err())
	}
}

func TestAppendIntoItself(t *testing.T) {
	doc := parse(t, treePage)
	left := mkdom.ByID(doc, "left")
	moving := mkdom.ByID(doc, "moving")

	moving.Append(left)
	if !errors.Is(moving.Err(), mkdom.ErrHierarchy) {
		t.Errorf("Err = %v, want ErrHierarchy", moving.Err())
	}
}

func TestRemove(t *testing.T) {
	doc := parse(t, treePage)
	el := mkdom.ByID(doc, "moving")

	if err := el.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if mkdom.ByID(doc, "moving").Exists() {
		t.Error("element still in the document")
	}
	if err := el.Remove(); !errors.Is(err, mkdom.ErrDetachedNode) {
		t.Errorf("second Remove = %v, want ErrDetachedNode", err)
	}
}

func TestHTMLAndClear(t *testing.T) {
	doc := parse(t, treePage)
	box := mkdom.ByID(doc, "box")

	box.HTML(`<p class="x">a</p><p class="x">b</p>`)
	if got := mkdom.All(doc, ".x", box.Node()).Len(); got != 2 {
		t.Errorf("children = %d, want 2", got)
	}
	box.Clear()
	if got := doc.InnerHTML(box.Node()); got != "" {
		t.Errorf("InnerHTML = %q", got)
	}
}

func TestDimensionsAndOutline(t *testing.T) {
	doc := parse(t, treePage)
	box := mkdom.ByID(doc, "box")

	if box.Width() != 200 || box.Height() != 50 {
		t.Errorf("size = %dx%d, want 200x50", box.Width(), box.Height())
	}

	box.Outline("", 0)
	if got := doc.Style(box.Node(), "outline"); got != "1px solid red" {
		t.Errorf("outline = %q", got)
	}
	box.Outline("blue", 3)
	if got := doc.Style(box.Node(), "outline"); got != "3px solid blue" {
		t.Errorf("outline = %q", got)
	}
	box.OutlineOff()
	if got := doc.Style(box.Node(), "outline"); got != "none" {
		t.Errorf("outline = %q", got)
	}
}

func TestElementEvents(t *testing.T) {
	doc := parse(t, treePage)
	el := mkdom.ByID(doc, "moving")

	var got []string
	l := mkdom.NewListener(func(e *mkdom.Event) { got = append(got, e.Type) })
	el.On("click", l).On("focus", l)

	_, _ = doc.Dispatch(el.Node(), "click", nil)
	_, _ = doc.Dispatch(el.Node(), "focus", nil)
	el.Off("click", l)
	_, _ = doc.Dispatch(el.Node(), "click", nil)

	if diff := cmp.Diff([]string{"click", "focus"}, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestListenerIdentity(t *testing.T) {
	fn := func(*mkdom.Event) {}
	a := mkdom.NewListener(fn)
	b := mkdom.NewListener(fn)
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("IDs = %q, %q, want distinct non-empty", a.ID(), b.ID())
	}

	var nilListener *mkdom.Listener
	nilListener.Handle(&mkdom.Event{}) // must not panic
}

func TestStickyHostError(t *testing.T) {
	base := parse(t, treePage)
	doc := domtest.Faulty(base, map[string]error{
		"setStyle":     io.ErrUnexpectedEOF,
		"setInnerHTML": io.ErrClosedPipe,
	})

	el := mkdom.ByID(doc, "moving").
		CSS(map[string]string{"color": "red"}).
		SetAttr("title", "after").
		HTML("<i>x</i>")

	err := el.Err()
	if !errors.Is(err, mkdom.ErrHost) {
		t.Errorf("Err() = %v, want ErrHost", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Err() = %v, want first failure io.ErrUnexpectedEOF", err)
	}
	if errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("Err() = %v, later failure replaced the first", err)
	}
	domtest.ExpectAttr(t, base, "#moving", "title", "after")
}

func TestSetDataHyphenatedKeyRecorded(t *testing.T) {
	doc := parse(t, treePage)
	el := mkdom.ByID(doc, "moving").SetData("foo-bar", "x")

	if !errors.Is(el.Err(), mkdom.ErrHost) {
		t.Errorf("Err() = %v, want ErrHost", el.Err())
	}
	if v, ok := el.Data("fooBar"); ok {
		t.Errorf("Data(fooBar) = %q, want unset", v)
	}
}

package rodhost

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/vango-dev/mkdom"
	"github.com/vango-dev/mkdom/internal/errors"
)

func TestHostErrCodes(t *testing.T) {
	tests := []struct {
		msg  string
		code string
	}{
		{"HierarchyRequestError: The new child element contains the parent.", "E005"},
		{"NotFoundError: The node to be removed is not a child of this node.", "E005"},
		{"SyntaxError: 'li[' is not a valid selector.", "E003"},
		{"context deadline exceeded", "E010"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := hostErr("op", fmt.Errorf("%s", tt.msg))
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("hostErr = %T, want *errors.Error", err)
			}
			if e.Code != tt.code {
				t.Errorf("Code = %s, want %s", e.Code, tt.code)
			}
		})
	}
}

func TestForeignNode(t *testing.T) {
	d := New(nil, false, nil)
	if _, err := d.ParentNode("not an element"); !stderrors.Is(err, errors.New("E012")) {
		t.Errorf("ParentNode(foreign) = %v, want E012", err)
	}
	if d.ClassList(42) != nil {
		t.Error("ClassList(foreign) should be nil")
	}
	if err := d.AddEventListener(nil, "click", nil); !stderrors.Is(err, mkdom.ErrListener) {
		t.Errorf("AddEventListener(nil listener) = %v, want ErrListener", err)
	}
}

// openBrowser starts a headless browser or skips the test.
func openBrowser(t *testing.T, markup string) *Document {
	t.Helper()
	if testing.Short() {
		t.Skip("browser test skipped in short mode")
	}
	bin, ok := launcher.LookPath()
	if !ok {
		t.Skip("no browser found")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	d, err := Open(ctx, Config{Bin: bin, Headless: true})
	if err != nil {
		t.Skipf("browser unavailable: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	body := d.page.MustElement("body")
	if err := d.SetInnerHTML(body, markup); err != nil {
		t.Fatalf("SetInnerHTML: %v", err)
	}
	return d
}

func TestBrowserRoundTrip(t *testing.T) {
	d := openBrowser(t, `<ul id="list"><li class="item">a</li><li class="item">b</li></ul>`)

	items := mkdom.All(d, ".item")
	if items.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", items.Len())
	}
	items.AddClass("seen")
	if !items.At(1).HasClass("seen") {
		t.Error("class not added")
	}

	list := mkdom.ByID(d, "list")
	li := list.Append(mkdom.New(d, "li").SetAttr("id", "c"))
	if err := li.Err(); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if n := mkdom.All(d, "#list > li").Len(); n != 3 {
		t.Errorf("items = %d, want 3", n)
	}

	li.SetData("userId", "7")
	if v, _ := li.Data("userId"); v != "7" {
		t.Errorf("Data(userId) = %q, want 7", v)
	}

	if err := li.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if mkdom.ByID(d, "c").Exists() {
		t.Error("removed element still present")
	}
}

func TestBrowserEvents(t *testing.T) {
	d := openBrowser(t, `<button id="b">go</button>`)

	got := make(chan string, 1)
	l := mkdom.NewListener(func(e *mkdom.Event) { got <- e.Type })
	btn := mkdom.ByID(d, "b").On("ping", l)
	if err := btn.Err(); err != nil {
		t.Fatalf("On: %v", err)
	}
	if err := d.Dispatch(btn.Node(), "ping", nil); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	select {
	case typ := <-got:
		if typ != "ping" {
			t.Errorf("event type = %q, want ping", typ)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("listener not called")
	}
}

func TestBindingReleasedWithLastReference(t *testing.T) {
	d := New(nil, false, nil)
	l := mkdom.NewListener(func(*mkdom.Event) {})

	stopped := 0
	d.bindings[l.ID()] = &binding{listener: l, refs: 2, stop: func() error {
		stopped++
		return nil
	}}

	if err := d.release(l); err != nil {
		t.Fatalf("release: %v", err)
	}
	if stopped != 0 || len(d.bindings) != 1 {
		t.Errorf("after first release: stopped = %d, bindings = %d, want 0, 1", stopped, len(d.bindings))
	}
	if err := d.release(l); err != nil {
		t.Fatalf("release: %v", err)
	}
	if stopped != 1 || len(d.bindings) != 0 {
		t.Errorf("after last release: stopped = %d, bindings = %d, want 1, 0", stopped, len(d.bindings))
	}
	if err := d.release(l); err != nil || stopped != 1 {
		t.Errorf("release of unbound listener: err = %v, stopped = %d", err, stopped)
	}
}

func TestBrowserListenerUnbound(t *testing.T) {
	d := openBrowser(t, `<button id="b">go</button>`)

	l := mkdom.NewListener(func(*mkdom.Event) {})
	btn := mkdom.ByID(d, "b").On("ping", l).On("pong", l).On("ping", l)
	if err := btn.Err(); err != nil {
		t.Fatalf("On: %v", err)
	}
	if got := d.bindings[l.ID()].refs; got != 2 {
		t.Errorf("refs = %d, want 2", got)
	}

	btn.Off("ping", l).Off("pong", l)
	if err := btn.Err(); err != nil {
		t.Fatalf("Off: %v", err)
	}
	if _, ok := d.bindings[l.ID()]; ok {
		t.Error("binding kept after the last listener was removed")
	}
}

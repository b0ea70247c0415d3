package domtest

import (
	stderrors "errors"
	"io"
	"strings"
	"testing"

	"github.com/vango-dev/mkdom"
)

const page = `<div id="box" class="a"><p class="x">1</p><p class="x" title="t">2</p></div>`

func TestExpectHelpersPass(t *testing.T) {
	doc := Parse(t, page)
	ExpectCount(t, doc, "p.x", 2)
	ExpectAttr(t, doc, "p[title]", "title", "t")
	ExpectClass(t, doc, "p", "x")
	ExpectContains(t, doc, `<p class="x">1</p>`)
	ExpectNotContains(t, doc, "<span")
}

type recorder struct {
	testing.TB
	errors []string
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...any) {
	r.errors = append(r.errors, format)
}

func TestExpectHelpersFail(t *testing.T) {
	doc := Parse(t, page)
	tests := []struct {
		name string
		run  func(tb testing.TB)
	}{
		{"count", func(tb testing.TB) { ExpectCount(tb, doc, "p", 3) }},
		{"bad selector", func(tb testing.TB) { ExpectCount(tb, doc, "p[", 0) }},
		{"attr missing", func(tb testing.TB) { ExpectAttr(tb, doc, "#box", "title", "x") }},
		{"attr value", func(tb testing.TB) { ExpectAttr(tb, doc, "p[title]", "title", "u") }},
		{"class", func(tb testing.TB) { ExpectClass(tb, doc, "p", "y") }},
		{"contains", func(tb testing.TB) { ExpectContains(tb, doc, "<span") }},
		{"not contains", func(tb testing.TB) { ExpectNotContains(tb, doc, "<p") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{TB: t}
			tt.run(r)
			if len(r.errors) == 0 {
				t.Error("helper reported no failure")
			}
		})
	}
}

func TestFaulty(t *testing.T) {
	doc := Faulty(Parse(t, page), map[string]error{"removeChild": io.ErrUnexpectedEOF})

	err := mkdom.One(doc, "p").Remove()
	if !stderrors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Remove() = %v, want io.ErrUnexpectedEOF", err)
	}
	if !stderrors.Is(err, mkdom.ErrHost) {
		t.Errorf("Remove() = %v, want ErrHost", err)
	}
	ExpectCount(t, doc, "p", 2)

	mkdom.One(doc, "#box").SetAttr("title", "ok")
	ExpectAttr(t, doc, "#box", "title", "ok")
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 600)
	if got := truncate(long, 500); len(got) != 503 {
		t.Errorf("len(truncate) = %d, want 503", len(got))
	}
	if got := truncate("short", 500); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
}

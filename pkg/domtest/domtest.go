package domtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/mkdom"
	"github.com/vango-dev/mkdom/pkg/htmlhost"
)

// Parse parses markup into a document.
func Parse(t testing.TB, markup string, opts ...htmlhost.Option) *htmlhost.Document {
	t.Helper()
	doc, err := htmlhost.ParseString(markup, opts...)
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return doc
}

// ExpectContains asserts that the rendered document contains expected.
func ExpectContains(t testing.TB, doc *htmlhost.Document, expected string) {
	t.Helper()
	html := doc.String()
	if !strings.Contains(html, expected) {
		t.Errorf("expected document to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that the rendered document does not contain
// unexpected.
func ExpectNotContains(t testing.TB, doc *htmlhost.Document, unexpected string) {
	t.Helper()
	html := doc.String()
	if strings.Contains(html, unexpected) {
		t.Errorf("expected document to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectCount asserts the number of elements matching selector.
func ExpectCount(t testing.TB, doc mkdom.Document, selector string, want int) {
	t.Helper()
	c := mkdom.All(doc, selector)
	if err := c.Err(); err != nil {
		t.Errorf("query %q: %v", selector, err)
		return
	}
	if c.Len() != want {
		t.Errorf("count(%q) = %d, want %d", selector, c.Len(), want)
	}
}

// ExpectAttr asserts an attribute value on the first match of selector.
func ExpectAttr(t testing.TB, doc mkdom.Document, selector, key, want string) {
	t.Helper()
	el := mkdom.One(doc, selector)
	if !el.Exists() {
		t.Errorf("no element matches %q", selector)
		return
	}
	got, ok := el.Attr(key)
	if !ok {
		t.Errorf("%s has no attribute %q", selector, key)
		return
	}
	if got != want {
		t.Errorf("%s[%s] = %q, want %q", selector, key, got, want)
	}
}

// ExpectClass asserts that every match of selector has class name.
func ExpectClass(t testing.TB, doc mkdom.Document, selector, name string) {
	t.Helper()
	c := mkdom.All(doc, selector)
	if c.Len() == 0 {
		t.Errorf("no element matches %q", selector)
		return
	}
	for i := 0; i < c.Len(); i++ {
		if !c.At(i).HasClass(name) {
			t.Errorf("%s #%d lacks class %q", selector, i, name)
		}
	}
}

// truncate shortens a string to maxLen characters.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

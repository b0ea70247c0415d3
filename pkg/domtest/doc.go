// Package domtest provides testing helpers for code built on mkdom.
//
// Parse builds an in-memory document and fails the test on bad markup:
//
//	func TestHighlight(t *testing.T) {
//	    doc := domtest.Parse(t, `<ul><li>a</li><li>b</li></ul>`)
//	    Highlight(doc)
//	    domtest.ExpectCount(t, doc, "li.active", 2)
//	    domtest.ExpectContains(t, doc, `<li class="active">a</li>`)
//	}
//
// Faulty wraps a document and makes chosen host calls fail, for testing
// error paths:
//
//	doc := domtest.Faulty(domtest.Parse(t, page), map[string]error{
//	    "removeChild": io.ErrUnexpectedEOF,
//	})
package domtest

// Package htmlhost implements mkdom.Document over an in-memory
// golang.org/x/net/html tree.
//
// It is the host used by tests, the CLI and the live server. Selectors are
// compiled with github.com/andybalholm/cascadia and cached per document.
//
// There is no layout engine. OffsetWidth and OffsetHeight read pixel
// values from the inline style, then from the width/height attributes,
// and report 0 for elements styled display:none.
//
// Events never fire on their own; call Dispatch to deliver one. Delivery
// runs the target's listeners, then bubbles to each ancestor.
//
// A Document is not safe for concurrent use.
package htmlhost

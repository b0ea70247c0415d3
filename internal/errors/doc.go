// Package errors provides structured, actionable error messages for mkdom.
//
// Every error carries a registered code that maps to a category, a short
// message, a longer detail and a documentation URL. Errors compare by code
// with errors.Is, so callers can test against the sentinels exported by the
// mkdom package:
//
//	if errors.Is(el.Err(), mkdom.ErrElementNotFound) { ... }
//
// # Error Categories
//
//   - dom: element lookups, detached nodes, selectors, markup (E001-E009)
//   - host: host document calls and listener binding (E010-E019)
//   - config: mkdom.json problems (E120-E129)
//   - cli: command line usage (E140-E149)
//   - script: mutation script parsing and execution (E160-E169)
//   - storage: document load/save (E180-E189)
//
// # Usage
//
//	err := errors.New("E161").
//	    WithLocation("ops.yaml", 12, 5).
//	    WithSuggestion("Use one of: css, html, addClass, ...")
//
//	errors.PrintError(err)
//	// Output:
//	// ERROR E161: Unknown operation
//	//
//	//   ops.yaml:12:5
//	//
//	//     10 │   - one: "#main"
//	//     11 │     op: addClass
//	//   → 12 │   - op: explode
//	//        │     ^
//	//
//	//   Hint: Use one of: css, html, addClass, ...
//	//
//	//   Learn more: https://mkdom.dev/docs/errors/E161
package errors

// Package script runs declarative mutation scripts against an
// mkdom.Document.
//
// A script is a YAML (or JSON) list of steps. Each step picks its target
// with exactly one of all, one or id and applies a single operation:
//
//	name: highlight
//	steps:
//	  - all: ".item"
//	    op: addClass
//	    name: active
//	  - one: "#list"
//	    op: append
//	    node: {tag: li, attrs: {class: item}, html: "new"}
//	  - id: banner
//	    op: remove
//
// Operations: css, html, clear, addClass, removeClass, attr, attrs, attrNS,
// data, remove, append, prepend, insertBefore, insertAfter, outline,
// outlineOff.
//
// Insertion steps take a node: either a template (tag, ns, attrs, html) or
// ref, the selector of an existing element. Steps on an all target always
// insert copies; steps on a single target move ref unless clone is set.
//
// Runner executes steps in order and stops at the first failure. Each run
// and each step is an OpenTelemetry span.
package script

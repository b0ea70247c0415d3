// Package mkdom is a small convenience layer over a host document: element
// selection, style/attribute/class mutation, tree insertion and removal,
// and event binding.
//
// It provides two handle shapes. A Collection wraps every element matched
// by a query and applies each call to all of them. An Element wraps one
// element (or nothing) and adds single-element operations such as
// dimensions, sibling-relative insertion and data attributes.
//
// Usage:
//
//	doc, _ := htmlhost.ParseString(page)
//
//	mkdom.All(doc, ".item").
//	    AddClass("active").
//	    CSS(map[string]string{"color": "red"})
//
//	tpl := mkdom.New(doc, "li").SetAttr("class", "row").HTML("new")
//	mkdom.All(doc, "ul").Append(tpl) // stamps a copy into every list
//
//	if el := mkdom.ByID(doc, "main"); el.Err() != nil {
//	    log.Println(el.Err())
//	}
//
// # Hosts
//
// The package never parses markup or selectors itself. Everything goes
// through the Document interface. Implementations live in pkg/htmlhost
// (in-memory, golang.org/x/net/html), pkg/rodhost (a real browser driven
// over the DevTools protocol) and pkg/wasmhost (syscall/js, for code
// compiled to WebAssembly).
//
// # Errors
//
// Handles keep the first failure of a chain and report it from Err. Calls
// on an absent element do nothing. Compare with errors.Is against
// ErrElementNotFound, ErrDetachedNode and the other sentinels.
//
// # Move and clone
//
// Collection.Append and Collection.Prepend always insert copies so one
// template can be stamped into many containers. The Element insertion
// methods move the argument; their *Clone variants insert a copy and return
// a handle over it.
package mkdom

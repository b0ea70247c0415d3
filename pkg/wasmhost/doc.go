// Package wasmhost implements mkdom.Document over the browser DOM from
// inside a js/wasm program.
//
// Nodes are js.Value. Listeners become js.Func callbacks that are released
// when removed.
//
//	doc := wasmhost.New()
//	mkdom.ByID(doc, "save").On("click", mkdom.NewListener(func(e *mkdom.Event) {
//	    mkdom.ByID(doc, "status").HTML("saved")
//	}))
package wasmhost

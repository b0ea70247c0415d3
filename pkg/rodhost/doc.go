// Package rodhost implements mkdom.Document over a live browser page driven
// by go-rod.
//
// Nodes are *rod.Element values. Each host call is one JavaScript
// evaluation against the element, so every call is a round trip to the
// browser and can fail.
//
//	doc, err := rodhost.Open(ctx, rodhost.Config{URL: "https://example.com", Headless: true})
//	if err != nil {
//	    return err
//	}
//	defer doc.Close()
//
//	mkdom.All(doc, "a").AddClass("seen")
//
// Listeners are bound with Page.Expose under the listener ID. Events reach
// Go with their type and detail; the target is not transferred.
package rodhost

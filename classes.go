package mkdom

import "strings"

// classStrategy manipulates an element's class names. A handle picks one
// strategy at construction: the host token set when it has one, the raw
// class attribute otherwise.
type classStrategy interface {
	add(doc Document, n Node, name string) error
	remove(doc Document, n Node, name string) error
	has(doc Document, n Node, name string) (bool, error)
}

func selectClasses(doc Document, sample Node) classStrategy {
	if sample != nil && doc.ClassList(sample) != nil {
		return tokenSetClasses{}
	}
	return classStringClasses{}
}

type tokenSetClasses struct{}

func (tokenSetClasses) add(doc Document, n Node, name string) error {
	tl := doc.ClassList(n)
	if tl == nil {
		return classStringClasses{}.add(doc, n, name)
	}
	return tl.Add(name)
}

func (tokenSetClasses) remove(doc Document, n Node, name string) error {
	tl := doc.ClassList(n)
	if tl == nil {
		return classStringClasses{}.remove(doc, n, name)
	}
	return tl.Remove(name)
}

func (tokenSetClasses) has(doc Document, n Node, name string) (bool, error) {
	tl := doc.ClassList(n)
	if tl == nil {
		return classStringClasses{}.has(doc, n, name)
	}
	return tl.Contains(name)
}

// classStringClasses edits the class attribute as a whitespace separated
// token string.
type classStringClasses struct{}

func (classStringClasses) add(doc Document, n Node, name string) error {
	cur, _, err := doc.GetAttribute(n, "class")
	if err != nil {
		return err
	}
	if containsToken(cur, name) {
		return nil
	}
	if strings.TrimSpace(cur) == "" {
		return doc.SetAttribute(n, "class", name)
	}
	return doc.SetAttribute(n, "class", strings.TrimRight(cur, " \t\n\f\r")+" "+name)
}

func (classStringClasses) remove(doc Document, n Node, name string) error {
	cur, ok, err := doc.GetAttribute(n, "class")
	if err != nil || !ok || !containsToken(cur, name) {
		return err
	}
	tokens := strings.Fields(cur)
	kept := tokens[:0]
	for _, tok := range tokens {
		if tok != name {
			kept = append(kept, tok)
		}
	}
	return doc.SetAttribute(n, "class", strings.Join(kept, " "))
}

func (classStringClasses) has(doc Document, n Node, name string) (bool, error) {
	cur, _, err := doc.GetAttribute(n, "class")
	if err != nil {
		return false, err
	}
	return containsToken(cur, name), nil
}

func containsToken(list, token string) bool {
	for _, tok := range strings.Fields(list) {
		if tok == token {
			return true
		}
	}
	return false
}

package jsontoxml

// Elem describes an XML element with explicit attributes, text and
// children. It is the typed form of the descriptor object
// {"name": ..., "attrs": ..., "value"/"text": ..., "children": ...}
// and, like the descriptor, is only written as an element when it is a
// direct member of an array:
//
//	[]any{
//		Elem{Name: "item", Attrs: []Attr{{Name: "id", Value: "1"}}, Text: "hi"},
//	}
//	<item id="1">hi</item>
//
// Anywhere else it is written as a plain object with those keys.
type Elem struct {
	Name string

	// Attrs are written in order. If Attrs is empty, RawAttrs is appended
	// verbatim after a single space, e.g. `id="1" class="x"`.
	Attrs    []Attr
	RawAttrs string

	// Value takes precedence over Text. A nil Value or Text is absent.
	Value any
	Text  any

	// Children is converted like any other value and placed after the
	// element's text.
	Children any
}

func (e Elem) node(nz *normalizer, depth int) (*node, error) {
	n := objectNode()
	n.members.Set("name", stringNode(e.Name))

	if len(e.Attrs) > 0 {
		attrs := objectNode()
		for _, a := range e.Attrs {
			attrs.members.Set(a.Name, stringNode(a.Value))
		}
		n.members.Set("attrs", attrs)
	} else if e.RawAttrs != "" {
		n.members.Set("attrs", stringNode(e.RawAttrs))
	}

	for _, f := range []struct {
		key string
		v   any
	}{
		{"value", e.Value},
		{"text", e.Text},
		{"children", e.Children},
	} {
		if f.v == nil {
			continue
		}
		member, err := nz.value(f.v, depth+1)
		if err != nil {
			return nil, err
		}
		n.members.Set(f.key, member)
	}
	return n, nil
}

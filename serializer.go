package jsontoxml

import (
	"bytes"
	"fmt"
	"strings"
)

// serializer walks a normalised value and writes the document body. Every
// element is written straight into the shared buffer; nothing is built up
// per level and copied into its parent.
type serializer struct {
	escape   bool
	sanitize bool

	// nil when not pretty printing
	indenter Indenter
}

func newSerializer(o Options) *serializer {
	return &serializer{
		escape:   o.Escape,
		sanitize: o.RemoveIllegalNameCharacters,
		indenter: o.indenter(),
	}
}

// openTag is an element whose start tag has been written.
type openTag struct {
	name   string
	indent string

	// buffer length just after the '>' of the start tag
	mark int
}

// open writes the indent, '<', name, attrs and '>'.
func (s *serializer) open(b *bytes.Buffer, name, attrs string, level int) openTag {
	t := openTag{name: name}
	if s.indenter != nil {
		t.indent = s.indenter.Indent(level)
	}
	if s.sanitize {
		t.name = SanitizeName(name)
	}
	b.WriteString(t.indent)
	b.WriteByte('<')
	b.WriteString(t.name)
	b.WriteString(attrs)
	b.WriteByte('>')
	t.mark = b.Len()
	return t
}

// close finishes an element. If nothing was written since open, the start
// tag is turned into a self-closing one. hasSubNodes puts the closing tag
// on its own indented line.
func (s *serializer) close(b *bytes.Buffer, t openTag, hasSubNodes bool) {
	if b.Len() == t.mark {
		b.Truncate(t.mark - 1)
		b.WriteString("/>")
		return
	}
	if hasSubNodes {
		b.WriteString(t.indent)
	}
	b.WriteString("</")
	b.WriteString(t.name)
	b.WriteByte('>')
}

// serialize writes n. inArray is set when n is a direct member of an
// array, the only place an element descriptor is recognised.
func (s *serializer) serialize(b *bytes.Buffer, n *node, inArray bool, level int) error {
	switch n.kind {
	case arrayKind:
		for _, item := range n.items {
			if err := s.serialize(b, item, true, level+1); err != nil {
				return err
			}
		}
		if s.indenter != nil && len(n.items) > 0 {
			b.WriteString(s.indenter.Newline())
		}

	case dateKind:
		b.WriteString(n.text)

	case objectKind:
		if inArray {
			if name, ok := n.get("name"); ok && isElementName(name) {
				return s.descriptor(b, n, name, level)
			}
		}
		for pair := n.members.Oldest(); pair != nil; pair = pair.Next() {
			t := s.open(b, pair.Key, "", level+1)
			if err := s.serialize(b, pair.Value, false, level+1); err != nil {
				return err
			}
			s.close(b, t, false)
		}
		if s.indenter != nil && n.members.Len() > 0 {
			b.WriteString(s.indenter.Newline())
		}

	case thunkKind:
		str, err := s.call(n)
		if err != nil {
			return err
		}
		b.WriteString(str)

	default:
		s.writeText(b, n.text)
	}
	return nil
}

// isElementName reports whether a descriptor's name can be used as a tag.
// Arrays and objects can't; such an object is written as a plain object.
func isElementName(n *node) bool {
	return n.truthy && n.kind != arrayKind && n.kind != objectKind
}

// descriptor writes {"name": ..., "attrs": ..., "value"/"text": ...,
// "children": ...} as a single element.
func (s *serializer) descriptor(b *bytes.Buffer, n *node, nameNode *node, level int) error {
	name, err := s.stringify(nameNode)
	if err != nil {
		return err
	}

	var attrs strings.Builder
	if a, ok := n.get("attrs"); ok && a.truthy {
		if err := s.attrs(&attrs, a); err != nil {
			return err
		}
	}

	t := s.open(b, name, attrs.String(), level)

	text, ok := n.get("value")
	if !ok {
		text, ok = n.get("text")
	}
	if ok {
		str, err := s.stringify(text)
		if err != nil {
			return err
		}
		s.writeText(b, str)
	}

	children, hasSubNodes := n.get("children")
	hasSubNodes = hasSubNodes && children.truthy
	if hasSubNodes {
		if err := s.serialize(b, children, false, level+1); err != nil {
			return err
		}
	}

	s.close(b, t, hasSubNodes)
	return nil
}

// attrs writes ` key="value"` for every member of an object, or the
// string form of anything else after a single space.
func (s *serializer) attrs(b *strings.Builder, a *node) error {
	switch a.kind {
	case objectKind:
		for pair := a.members.Oldest(); pair != nil; pair = pair.Next() {
			val, err := s.stringify(pair.Value)
			if err != nil {
				return err
			}
			b.WriteByte(' ')
			b.WriteString(pair.Key)
			b.WriteString(`="`)
			s.writeText(b, val)
			b.WriteByte('"')
		}
	case arrayKind:
		for i, item := range a.items {
			val, err := s.stringify(item)
			if err != nil {
				return err
			}
			fmt.Fprintf(b, ` %d="`, i)
			s.writeText(b, val)
			b.WriteByte('"')
		}
	case dateKind:
	default:
		val, err := s.stringify(a)
		if err != nil {
			return err
		}
		b.WriteByte(' ')
		b.WriteString(val)
	}
	return nil
}

// stringify returns the unescaped string form of a value used as a name,
// attribute value or element text. Arrays and objects are rendered as
// unindented XML.
func (s *serializer) stringify(n *node) (string, error) {
	switch n.kind {
	case thunkKind:
		return s.call(n)
	case arrayKind, objectKind:
		flat := serializer{sanitize: s.sanitize}
		var b bytes.Buffer
		if err := flat.serialize(&b, n, false, 0); err != nil {
			return "", err
		}
		return b.String(), nil
	default:
		return n.text, nil
	}
}

// writeText writes element or attribute text, escaped when enabled.
func (s *serializer) writeText(w stringWriter, str string) {
	if s.escape {
		writeEscaped(w, str)
		return
	}
	w.WriteString(str)
}

func (s *serializer) call(n *node) (string, error) {
	str, err := n.thunk()
	if err != nil {
		return "", fmt.Errorf("jsontoxml: value function failed: %w", err)
	}
	return str, nil
}

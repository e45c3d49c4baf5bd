package jsontoxml

import "strings"

// Indenter allows custom indenting strategies to be written for pretty
// printing the resultant XML.
//
// Indent is called before every element's opening tag, and before the
// closing tag of descriptor elements that have children. Newline is written
// after every non-empty run of siblings.
type Indenter interface {
	Indent(level int) string
	Newline() string
}

// StandardIndenter writes a newline followed by one IndentString per level.
// Indents are cached, so the fields must not change after first use, and a
// StandardIndenter must not be shared between goroutines.
//
// StandardIndenter is used by the WithPrettyPrint option:
//
//	s, err := jsontoxml.Convert(v, jsontoxml.WithPrettyPrint())
type StandardIndenter struct {
	// Output whitespace control
	IndentString  string
	NewlineString string

	cache []string
}

// NewStandardIndenter creates a StandardIndenter which indents with a tab.
func NewStandardIndenter() *StandardIndenter {
	return &StandardIndenter{
		IndentString:  DefaultIndent,
		NewlineString: "\n",
	}
}

// Indent satisfies the Indenter interface.
func (s *StandardIndenter) Indent(level int) string {
	if level < 0 {
		level = 0
	}
	if level < len(s.cache) {
		return s.cache[level]
	}
	for len(s.cache) <= level {
		s.cache = append(s.cache, s.NewlineString+strings.Repeat(s.IndentString, len(s.cache)))
	}
	return s.cache[level]
}

// Newline satisfies the Indenter interface.
func (s *StandardIndenter) Newline() string {
	return s.NewlineString
}

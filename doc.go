/*
Package jsontoxml converts JSON, or Go values shaped like decoded JSON, into
an XML string.

It is not a validating XML writer: names are only made legal if you ask
for it, text is only escaped if you ask for it, and nothing checks that the
result is well formed. It does not parse XML and it does not stream; every
document is built in memory.


Converting

	s, err := jsontoxml.Convert(`{"a": 1, "b": "x"}`)
	// <a>1</a><b>x</b>

Strings and byte slices passed to Convert are parsed as JSON. Invalid JSON
returns an error matching ErrInvalidJSON:

	_, err := jsontoxml.Convert("{not json")
	errors.Is(err, jsontoxml.ErrInvalidJSON) // true

Anything else is converted directly:

	s, err := jsontoxml.Convert(map[string]any{"a": "<b>"}, jsontoxml.WithEscape())
	// <a>&lt;b&gt;</a>


Options

Options are based on Dave Cheney's functional options pattern
(https://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis):

	s, err := jsontoxml.Convert(v,
		jsontoxml.WithIndentString("  "),
		jsontoxml.WithEscape(),
		jsontoxml.WithXMLHeader(jsontoxml.Header{Standalone: true}),
		jsontoxml.WithDocType("note"))

Provided options are:
  - WithPrettyPrint()
  - WithIndentString(string)
  - WithIndenter(Indenter)
  - WithEscape()
  - WithSanitizedNames()
  - WithXMLHeader(Header)
  - WithDefaultXMLHeader()
  - WithDocType(string)
  - WithDTD(DTD)
  - WithMaxDepth(int)

Loosely typed option maps, as found in configuration files, can be turned
into Options with OptionsFrom.


Values

Each value is written according to its shape, checked in this order:

	arrays      each member is written in turn; the array adds no element
	            of its own, the key that holds it does
	dates       time.Time, as 2006-01-02T15:04:05.000Z in UTC, never escaped
	objects     each key becomes an element wrapping its converted value
	functions   func() string, func() (string, error) and Raw are written
	            exactly as returned, never escaped
	scalars     strings, numbers, booleans and null as text

Objects are *Object (insertion ordered), map[string]any and other
string-keyed maps (sorted by key), and structs and maps with integer or
encoding.TextMarshaler keys (via encoding/json, in field or sorted key
order). JSON text keeps the order of its keys.

	{"list": [1, 2]}
	<list>12</list>


Element descriptors

A direct member of an array which is an object with a truthy "name" key is
written as a single element instead:

	{"list": [{"name": "item", "attrs": {"id": 1}, "text": "hi"}]}
	<list><item id="1">hi</item></list>

  - attrs: an object of attribute values, or a string appended verbatim
  - value or text: element text; value wins if both are present
  - children: converted and appended after the text

Elem and Attr are typed helpers that produce the same thing.


Pretty printing

With pretty printing on, every element starts on a new line indented by
its depth, and every non-empty run of sibling elements is followed by a
newline. Nesting starts at depth 1 for the members of the root object:

	{"a": {"b": 1}}

	"\n\t<a>\n\t\t<b>1</b>\n</a>\n"

which prints as:

	<TAB><a>
	<TAB><TAB><b>1</b>
	</a>

The closing tag of an object member is not indented; the closing tag of a
descriptor with children is.


Encodings

Output can be converted to other encodings with the golang.org/x/text/encoding
package:

	b := &bytes.Buffer{}
	e := jsontoxml.NewEncoderEncoding(b, "windows-1252", charmap.Windows1252.NewEncoder(),
		jsontoxml.WithDefaultXMLHeader())
	err := e.Encode(map[string]any{"hello": "Résumé"})
	e.Flush()

The declaration will look like this:

	<?xml version="1.0" encoding="windows-1252" ?>


Limits

Time and memory are linear in the size of the input: JSON text is read in
a single pass and the document is written into one buffer. Conversion does
recurse once per level of nesting, so stack use grows with depth. Input
deeper than Options.MaxDepth (DefaultMaxDepth unless changed) fails with
ErrMaxDepth, which also catches cyclic Go values. With MaxDepth set to 0
only the Go stack limit applies.
*/
package jsontoxml

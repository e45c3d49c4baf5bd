package jsontoxml

import (
	"regexp"
	"strings"
)

// Character classes approximating the NameStartChar and NameChar productions
// of https://www.w3.org/TR/xml/#NT-NameStartChar. The colon is deliberately
// absent from both.
const (
	nameStartChars = `a-zA-Z_` +
		`\x{00C0}-\x{00D6}\x{00D8}-\x{00F6}\x{00F8}-\x{00FF}` +
		`\x{0370}-\x{037D}\x{037F}-\x{1FFF}\x{200C}-\x{200D}` +
		`\x{2070}-\x{218F}\x{2C00}-\x{2FFF}\x{3001}-\x{D7FF}` +
		`\x{F900}-\x{FDCF}\x{FDF0}-\x{FFFD}`

	nameChars = `\-.0-9\x{00B7}\x{0300}-\x{036F}\x{203F}\x{2040}`
)

// illegalName matches, in priority order: an illegal first character, a
// leading "xml" in any case, and any character that may not appear in a
// name at all.
var illegalName = regexp.MustCompile(
	`^[^` + nameStartChars + `]` +
		`|^[xX][mM][lL]` +
		`|[^` + nameStartChars + nameChars + `]`)

// SanitizeName replaces everything that would make name an illegal XML
// element name with an underscore:
//
//	SanitizeName("1tag")      == "_tag"
//	SanitizeName("xmlThing")  == "_Thing"
//	SanitizeName("a b")       == "a_b"
//
// A leading "xml" is replaced as a whole by a single underscore, and so is
// each run of invalid UTF-8 bytes.
func SanitizeName(name string) string {
	// regexp reads invalid bytes as U+FFFD, which is a legal name character
	name = strings.ToValidUTF8(name, "_")
	return illegalName.ReplaceAllString(name, "_")
}

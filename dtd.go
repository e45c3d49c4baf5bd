package jsontoxml

import "strings"

// DTD describes a document type declaration by name and optional external
// identifier. Its String() form is suitable for WithDocType:
//
//	DTD{Name: "note"}
//	note
//
//	DTD{Name: "note", SystemID: "note.dtd"}
//	note SYSTEM "note.dtd"
//
//	DTD{Name: "html", PublicID: "-//W3C//DTD XHTML 1.0 Strict//EN", SystemID: "xhtml1-strict.dtd"}
//	html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "xhtml1-strict.dtd"
//
// Nothing is validated.
type DTD struct {
	Name     string
	PublicID string
	SystemID string
}

// String returns the declaration body without the surrounding
// "<!DOCTYPE" and ">".
func (d DTD) String() string {
	var b strings.Builder
	b.WriteString(d.Name)
	if d.PublicID == "" && d.SystemID == "" {
		return b.String()
	}
	b.WriteByte(' ')

	// 'SYSTEM' S SystemLiteral | 'PUBLIC' S PubidLiteral S SystemLiteral
	if d.PublicID == "" {
		b.WriteString("SYSTEM ")
		writeSystemID(&b, d.SystemID)
		return b.String()
	}

	b.WriteString(`PUBLIC "`)
	b.WriteString(d.PublicID)
	b.WriteByte('"')
	if d.SystemID != "" {
		b.WriteByte(' ')
		writeSystemID(&b, d.SystemID)
	}
	return b.String()
}

// SystemLiteral ::= ('"' [^"]* '"') | ("'" [^']* "'")
func writeSystemID(b *strings.Builder, systemID string) {
	var qc byte = '"'
	if strings.IndexByte(systemID, '"') >= 0 {
		qc = '\''
	}
	b.WriteByte(qc)
	b.WriteString(systemID)
	b.WriteByte(qc)
}

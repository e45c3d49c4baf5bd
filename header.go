package jsontoxml

import "strings"

// Header represents the XML declaration written before the document.
//
// Examples:
//
//	Header{}
//	<?xml version="1.0" encoding="utf-8" ?>
//
//	Header{Standalone: true}
//	<?xml version="1.0" encoding="utf-8" standalone="yes"?>
//
//	Header{Version: "1.1", Encoding: "windows-1252"}
//	<?xml version="1.1" encoding="windows-1252" ?>
//
// Version and Encoding are written without escaping; do not pass untrusted
// strings.
type Header struct {
	// Defaults to DefaultVersion if empty.
	Version string `mapstructure:"version"`

	// Defaults to DefaultEncoding if empty.
	Encoding string `mapstructure:"encoding"`

	Standalone bool `mapstructure:"standalone"`
}

// Default values used by Header.
const (
	DefaultVersion  = "1.0"
	DefaultEncoding = "utf-8"
)

// WithStandalone is a fluent convenience function for assigning Standalone.
func (h Header) WithStandalone(v bool) Header { h.Standalone = v; return h }

// ForceEncoding is a fluent convenience function for assigning Encoding.
func (h Header) ForceEncoding(v string) Header { h.Encoding = v; return h }

// ForceVersion is a fluent convenience function for assigning Version.
func (h Header) ForceVersion(v string) Header { h.Version = v; return h }

// String returns the complete declaration.
func (h Header) String() string {
	version := h.Version
	if version == "" {
		version = DefaultVersion
	}
	encoding := h.Encoding
	if encoding == "" {
		encoding = DefaultEncoding
	}

	var b strings.Builder
	b.WriteString(`<?xml version="`)
	b.WriteString(version)
	b.WriteString(`" encoding="`)
	b.WriteString(encoding)
	b.WriteString(`" `)
	if h.Standalone {
		b.WriteString(`standalone="yes"`)
	}
	b.WriteString("?>")
	return b.String()
}

package jsontoxml

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Defaults used by DefaultOptions.
const (
	DefaultIndent   = "\t"
	DefaultMaxDepth = 10000
)

// Options controls how a value is converted. Start from DefaultOptions();
// the zero value is valid but has an empty Indent and no depth limit.
type Options struct {
	// One level of indentation. Only used when PrettyPrint is set. An empty
	// string is honoured: elements then start on a new line with no indent.
	Indent string

	// Put every element on its own line, indented by its depth.
	PrettyPrint bool

	// Replace characters which are illegal in XML element names with "_".
	RemoveIllegalNameCharacters bool

	// Escape &, <, >, ' and " in text and attribute values. Off by default,
	// in which case text is written as-is.
	Escape bool

	// If not nil, write an XML declaration first.
	XMLHeader *Header

	// If not nil, write <!DOCTYPE ...> with this body, even if it is empty.
	DocType *string

	// Maximum nesting depth of the input. Values <= 0 disable the check.
	MaxDepth int

	// Overrides the StandardIndenter built from Indent when PrettyPrint is
	// set.
	Indenter Indenter
}

// DefaultOptions returns the options used by Convert before any Option is
// applied.
func DefaultOptions() Options {
	return Options{
		Indent:   DefaultIndent,
		MaxDepth: DefaultMaxDepth,
	}
}

func (o Options) indenter() Indenter {
	if !o.PrettyPrint {
		return nil
	}
	if o.Indenter != nil {
		return o.Indenter
	}
	si := NewStandardIndenter()
	si.IndentString = o.Indent
	return si
}

// Option is an option to Convert or an Encoder.
type Option func(o *Options)

// WithPrettyPrint indents elements using the current indent string, a tab
// by default:
//
//	s, err := jsontoxml.Convert(v, jsontoxml.WithPrettyPrint())
func WithPrettyPrint() Option {
	return func(o *Options) {
		o.PrettyPrint = true
	}
}

// WithIndentString turns on pretty printing using a specific indent string:
//
//	s, err := jsontoxml.Convert(v, jsontoxml.WithIndentString("    "))
func WithIndentString(indent string) Option {
	return func(o *Options) {
		o.PrettyPrint = true
		o.Indent = indent
	}
}

// WithIndenter turns on pretty printing using a custom Indenter.
func WithIndenter(indenter Indenter) Option {
	return func(o *Options) {
		o.PrettyPrint = true
		o.Indenter = indenter
	}
}

// WithEscape escapes text and attribute values.
func WithEscape() Option {
	return func(o *Options) {
		o.Escape = true
	}
}

// WithSanitizedNames replaces illegal characters in element names.
func WithSanitizedNames() Option {
	return func(o *Options) {
		o.RemoveIllegalNameCharacters = true
	}
}

// WithXMLHeader writes the supplied XML declaration before the document.
func WithXMLHeader(h Header) Option {
	return func(o *Options) {
		o.XMLHeader = &h
	}
}

// WithDefaultXMLHeader writes <?xml version="1.0" encoding="utf-8" ?>
// before the document.
func WithDefaultXMLHeader() Option {
	return WithXMLHeader(Header{})
}

// WithDocType writes <!DOCTYPE docType> after the XML declaration.
func WithDocType(docType string) Option {
	return func(o *Options) {
		o.DocType = &docType
	}
}

// WithDTD writes the DTD as the document type declaration.
func WithDTD(dtd DTD) Option {
	return WithDocType(dtd.String())
}

// WithMaxDepth limits how deeply the input may nest. Use 0 for no limit.
func WithMaxDepth(depth int) Option {
	return func(o *Options) {
		o.MaxDepth = depth
	}
}

// looseOptions mirrors the keys accepted by OptionsFrom.
type looseOptions struct {
	Indent                      *string `mapstructure:"indent"`
	PrettyPrint                 bool    `mapstructure:"prettyPrint"`
	RemoveIllegalNameCharacters bool    `mapstructure:"removeIllegalNameCharacters"`
	Escape                      bool    `mapstructure:"escape"`
	XMLHeader                   any     `mapstructure:"xmlHeader"`
	DocType                     *string `mapstructure:"docType"`
	MaxDepth                    *int    `mapstructure:"maxDepth"`
}

// OptionsFrom builds Options from a loosely typed value, such as one decoded
// from a JSON or YAML configuration file:
//
//	nil, false       defaults
//	true             defaults plus the default XML header
//	map[string]any   keys: indent, prettyPrint, removeIllegalNameCharacters,
//	                 escape, xmlHeader, docType, maxDepth
//
// Flags are set when their value is truthy: "false" sets a flag, 0 and ""
// don't. xmlHeader may be a bool or a map with the keys version, encoding
// and standalone; it is only used when it is truthy. docType is used whenever it
// is present, even if it is empty. Options and *Options are returned as-is.
func OptionsFrom(v any) (Options, error) {
	opts := DefaultOptions()

	var raw map[string]any
	switch t := v.(type) {
	case nil:
		return opts, nil
	case Options:
		return t, nil
	case *Options:
		if t == nil {
			return opts, nil
		}
		return *t, nil
	case map[string]any:
		raw = t
	case *Object:
		if t == nil {
			return opts, nil
		}
		raw = make(map[string]any, t.Len())
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			raw[pair.Key] = pair.Value
		}
	default:
		if truthy(v) {
			opts.XMLHeader = &Header{}
		}
		return opts, nil
	}

	var lo looseOptions
	if err := decodeLoose(raw, &lo); err != nil {
		return opts, err
	}

	if lo.Indent != nil {
		opts.Indent = *lo.Indent
	}
	opts.PrettyPrint = lo.PrettyPrint
	opts.RemoveIllegalNameCharacters = lo.RemoveIllegalNameCharacters
	opts.Escape = lo.Escape
	opts.DocType = lo.DocType
	if lo.MaxDepth != nil {
		opts.MaxDepth = *lo.MaxDepth
	}

	if truthy(lo.XMLHeader) {
		h := Header{}
		switch t := lo.XMLHeader.(type) {
		case map[string]any:
			if err := decodeLoose(t, &h); err != nil {
				return opts, err
			}
		case Header:
			h = t
		case *Header:
			h = *t
		}
		opts.XMLHeader = &h
	}
	return opts, nil
}

func decodeLoose(in map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       truthyBoolHook,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(in); err != nil {
		return fmt.Errorf("jsontoxml: invalid options: %w", err)
	}
	return nil
}

// truthyBoolHook decodes every flag by truthiness, so "no" and "false" are
// both set while 0 and "" are not.
func truthyBoolHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Bool {
		return data, nil
	}
	return truthy(data), nil
}

// truthy reports whether a loosely typed option value counts as set.
func truthy(v any) bool {
	nz := normalizer{maxDepth: DefaultMaxDepth}
	n, err := nz.value(v, 0)
	if err != nil {
		return true
	}
	return n.truthy
}

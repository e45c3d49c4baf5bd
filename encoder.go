package jsontoxml

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"golang.org/x/text/encoding"
)

const defaultBufsize = 2048

// Convert converts v to an XML string.
//
// If v is a string, []byte or json.RawMessage it is parsed as JSON first;
// if that fails, Convert returns ErrInvalidJSON. Any other value is
// converted directly, see the package documentation for how each kind of Go
// value is written.
func Convert(v any, options ...Option) (string, error) {
	opts := DefaultOptions()
	for _, o := range options {
		o(&opts)
	}
	return ConvertWithOptions(v, opts)
}

// ConvertWithOptions is Convert with an explicit Options struct. No defaults
// are applied; start from DefaultOptions().
func ConvertWithOptions(v any, opts Options) (string, error) {
	var b bytes.Buffer
	if err := render(&b, v, opts, ""); err != nil {
		return "", err
	}
	return b.String(), nil
}

// render writes the complete document to b. If encoding is not empty it
// replaces the header's encoding attribute. On error, b holds a partial
// document and must be discarded.
func render(b *bytes.Buffer, v any, opts Options, encoding string) error {
	nz := normalizer{maxDepth: opts.MaxDepth}

	var root *node
	var err error
	switch t := v.(type) {
	case string:
		root, err = nz.parseJSON(t)
	case []byte:
		root, err = nz.parseJSON(string(t))
	case json.RawMessage:
		root, err = nz.parseJSON(string(t))
	default:
		root, err = nz.value(v, 0)
	}
	if err != nil {
		return err
	}

	s := newSerializer(opts)
	if opts.XMLHeader != nil {
		h := *opts.XMLHeader
		if encoding != "" {
			h.Encoding = encoding
		}
		b.WriteString(h.String())
	}
	if opts.DocType != nil {
		if s.indenter != nil {
			b.WriteString(s.indenter.Newline())
		}
		b.WriteString("<!DOCTYPE ")
		b.WriteString(*opts.DocType)
		b.WriteByte('>')
	}
	return s.serialize(b, root, false, 0)
}

// Encoder writes converted documents to an io.Writer.
//
// Encoder wraps a bufio.Writer. Don't forget to Flush, otherwise you'll
// lose data. Each document is fully built before any of it is written, so
// a failed Encode writes nothing.
type Encoder struct {
	printer  printer
	opts     Options
	encoding string

	// scratch space for the document being built
	doc bytes.Buffer
}

func newEncoder(w io.Writer, options ...Option) *Encoder {
	e := &Encoder{opts: DefaultOptions()}
	for _, o := range options {
		o(&e.opts)
	}
	e.printer = printer{Writer: bufio.NewWriterSize(w, defaultBufsize)}
	return e
}

// NewEncoder creates an Encoder which writes UTF-8.
func NewEncoder(w io.Writer, options ...Option) *Encoder {
	return newEncoder(w, options...)
}

// NewEncoderEncoding creates an Encoder which converts its output using the
// supplied encoding. Characters the encoding can't represent are written as
// numeric character references (&#128512;). If a header is written, its
// encoding attribute is set to encstr.
//
// This example writes windows-1252:
//
//	enc := charmap.Windows1252.NewEncoder()
//	e := jsontoxml.NewEncoderEncoding(b, "windows-1252", enc, jsontoxml.WithDefaultXMLHeader())
//
// You should still pass UTF-8 strings to the encoder - they are converted
// on the fly to the target encoding.
func NewEncoderEncoding(w io.Writer, encstr string, encoder *encoding.Encoder, options ...Option) *Encoder {
	enc := encoding.HTMLEscapeUnsupported(encoder).Writer(w)
	e := newEncoder(enc, options...)
	e.encoding = encstr
	return e
}

// Options returns the options the Encoder was created with.
func (e *Encoder) Options() Options {
	return e.opts
}

// Encode converts v and writes it to the buffer.
func (e *Encoder) Encode(v any) error {
	e.doc.Reset()
	if err := render(&e.doc, v, e.opts, e.encoding); err != nil {
		return err
	}
	e.printer.Write(e.doc.Bytes())
	return e.printer.cachedWriteError()
}

// WriteRaw writes a raw string to the output. It is written exactly as it is
// declared, apart from conversion to the Encoder's encoding.
func (e *Encoder) WriteRaw(raw string) error {
	e.printer.WriteString(raw)
	return e.printer.cachedWriteError()
}

// Flush ensures the output buffer accumulated inside the Encoder is fully
// written to the underlying io.Writer.
func (e *Encoder) Flush() error {
	return e.printer.Flush()
}

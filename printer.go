// Copyright (c) 2009 The Go Authors. All rights reserved.

// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are
// met:

// * Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
// * Redistributions in binary form must reproduce the above
// copyright notice, this list of conditions and the following disclaimer
// in the documentation and/or other materials provided with the
// distribution.
// * Neither the name of Google Inc. nor the names of its
// contributors may be used to endorse or promote products derived from
// this software without specific prior written permission.

// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
// "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
// LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
// A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
// OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
// LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
// DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
// THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
// (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package jsontoxml

import (
	"bufio"
	"strings"
)

// the escaping loop follows encoding/xml's EscapeString, but always uses
// the named entities and leaves other characters alone.

const (
	escAmp  = "&amp;"
	escLt   = "&lt;"
	escGt   = "&gt;"
	escApos = "&apos;"
	escQuot = "&quot;"

	cdataStart = "<![CDATA["
	cdataEnd   = "]]>"
)

type printer struct {
	*bufio.Writer
}

// return the bufio Writer's cached write error
func (p *printer) cachedWriteError() error {
	_, err := p.Write(nil)
	return err
}

type stringWriter interface {
	WriteString(s string) (int, error)
}

// writeEscaped writes s to w with &, <, >, ' and " replaced by entities.
// Ampersands are replaced in the same pass as everything else, so entities
// introduced here are never escaped twice.
func writeEscaped(w stringWriter, s string) {
	last := 0
	for i := 0; i < len(s); i++ {
		var esc string
		switch s[i] {
		case '&':
			esc = escAmp
		case '<':
			esc = escLt
		case '>':
			esc = escGt
		case '\'':
			esc = escApos
		case '"':
			esc = escQuot
		default:
			continue
		}
		w.WriteString(s[last:i])
		w.WriteString(esc)
		last = i + 1
	}
	w.WriteString(s[last:])
}

func escapeString(s string) string {
	if strings.IndexAny(s, `&<>'"`) < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	writeEscaped(&b, s)
	return b.String()
}

// Escape converts v to its string form (as it would be written as element
// text) and replaces &, <, >, ' and " with &amp;, &lt;, &gt;, &apos; and
// &quot;. Strings are used as-is; nil is "null".
func Escape(v any) string {
	return escapeString(scalarString(v))
}

// CData wraps s in a CDATA section. Any "]]>" inside s is removed rather
// than escaped, so the content is lossy for strings containing it:
//
//	CData("a]]>b") == "<![CDATA[ab]]>"
func CData(s string) string {
	if s == "" {
		return cdataStart + cdataEnd
	}
	return cdataStart + strings.ReplaceAll(s, cdataEnd, "") + cdataEnd
}

// scalarString renders a value the way the serializer renders a scalar,
// without escaping.
func scalarString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	nz := normalizer{maxDepth: DefaultMaxDepth}
	n, err := nz.value(v, 0)
	if err != nil {
		return ""
	}
	s := serializer{}
	str, err := s.stringify(n)
	if err != nil {
		return ""
	}
	return str
}

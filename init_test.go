package jsontoxml

import (
	"bytes"
	"testing"
)

func must(err error) {
	if err != nil {
		panic(err)
	}
}

type Null struct{}

func (w Null) Write(p []byte) (n int, err error) {
	return len(p), nil
}

func open(o ...Option) (*bytes.Buffer, *Encoder) {
	b := &bytes.Buffer{}
	e := NewEncoder(b, o...)
	return b, e
}

func str(b *bytes.Buffer, e *Encoder) string {
	must(e.Flush())
	return b.String()
}

// conv converts v and fails the test on error.
func conv(tb testing.TB, v any, o ...Option) string {
	tb.Helper()
	out, err := Convert(v, o...)
	if err != nil {
		tb.Fatalf("unexpected error: %v", err)
	}
	return out
}

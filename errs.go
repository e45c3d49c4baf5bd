package jsontoxml

import "errors"

var (
	// ErrInvalidJSON is returned when string or []byte input is not valid
	// JSON. Nothing is written in that case. Check for it with errors.Is;
	// the returned error carries a short quote of the offending input.
	ErrInvalidJSON = errors.New("jsontoxml: invalid JSON input")

	// ErrMaxDepth is returned when the input nests deeper than the
	// MaxDepth option allows. Cyclic values always end up here.
	ErrMaxDepth = errors.New("jsontoxml: maximum nesting depth exceeded")
)

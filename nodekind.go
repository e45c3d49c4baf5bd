package jsontoxml

import "fmt"

// nodeKind is the shape of a value after normalisation. The serializer
// dispatches on it in a fixed priority order: arrays, dates, objects
// (descriptors first when under an array), thunks, then scalars.
type nodeKind int

// Name returns a stable name for the nodeKind, or an empty string if the
// kind is invalid.
func (k nodeKind) Name() string {
	if k >= 0 && int(k) < kindLength {
		return kindName[k]
	}
	return ""
}

func (k nodeKind) String() string {
	s := k.Name()
	if s == "" {
		s = "<unknown>"
	}
	return fmt.Sprintf("%s(%d)", s, k)
}

// Range of allowed nodeKind values. noKind is never produced by the
// normalizer.
const (
	noKind nodeKind = iota
	nullKind
	boolKind
	numberKind
	stringKind
	dateKind
	arrayKind
	objectKind
	thunkKind

	kindLength int = iota
)

var kindName = [kindLength]string{
	noKind:     "none",
	nullKind:   "null",
	boolKind:   "bool",
	numberKind: "number",
	stringKind: "string",
	dateKind:   "date",
	arrayKind:  "array",
	objectKind: "object",
	thunkKind:  "thunk",
}

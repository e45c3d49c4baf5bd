package jsontoxml

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is an insertion-ordered mapping from key to value. Keys are written
// out in the order they were first set. Use it instead of map[string]any
// when element order matters; plain maps are written in sorted key order.
type Object = orderedmap.OrderedMap[string, any]

// NewObject creates an empty Object.
func NewObject() *Object {
	return orderedmap.New[string, any]()
}

// Raw is a string inserted into the output exactly as it is declared. It
// does not have to be valid XML. It behaves like a func() string value.
type Raw string

// DateLayout is the ISO-8601 form used for time.Time values. Times are
// converted to UTC first.
const DateLayout = "2006-01-02T15:04:05.000Z"

// node is the normalised form of an input value. Like a bogus tagged union,
// only the fields relevant to kind are populated.
type node struct {
	kind   nodeKind
	truthy bool

	// scalar and date text
	text string

	items   []*node
	members *orderedmap.OrderedMap[string, *node]
	thunk   func() (string, error)
}

func (n *node) get(key string) (*node, bool) {
	if n.members == nil {
		return nil, false
	}
	return n.members.Get(key)
}

var (
	nullNode  = &node{kind: nullKind, text: "null"}
	trueNode  = &node{kind: boolKind, text: "true", truthy: true}
	falseNode = &node{kind: boolKind, text: "false"}

	timeType = reflect.TypeOf(time.Time{})
)

func boolNode(v bool) *node {
	if v {
		return trueNode
	}
	return falseNode
}

func stringNode(s string) *node {
	return &node{kind: stringKind, text: s, truthy: s != ""}
}

func floatNode(f float64, bitSize int) *node {
	return &node{
		kind:   numberKind,
		text:   formatNumber(f, bitSize),
		truthy: f != 0 && !math.IsNaN(f),
	}
}

// numberNode parses a JSON number. Magnitudes too large for a float64
// become infinities.
func numberNode(num json.Number) *node {
	f, err := strconv.ParseFloat(string(num), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return stringNode(string(num))
	}
	return floatNode(f, 64)
}

func intNode(v int64) *node {
	return &node{kind: numberKind, text: strconv.FormatInt(v, 10), truthy: v != 0}
}

func uintNode(v uint64) *node {
	return &node{kind: numberKind, text: strconv.FormatUint(v, 10), truthy: v != 0}
}

func dateNode(t time.Time) *node {
	return &node{kind: dateKind, text: t.UTC().Format(DateLayout), truthy: true}
}

func thunkNode(fn func() (string, error)) *node {
	return &node{kind: thunkKind, thunk: fn, truthy: true}
}

func objectNode() *node {
	return &node{kind: objectKind, members: orderedmap.New[string, *node](), truthy: true}
}

// formatNumber renders a float using the shortest representation that
// round-trips. Magnitudes in [1e-6, 1e21) are written as plain decimals,
// anything else with an exponent: 1e+21, 1.5e-7.
func formatNumber(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, bitSize)
	}
	s := strconv.FormatFloat(f, 'e', -1, bitSize)

	// strconv pads the exponent to two digits: 1.5e-07
	if i := strings.IndexByte(s, 'e'); i >= 0 && i+3 < len(s) && s[i+2] == '0' {
		s = s[:i+2] + s[i+3:]
	}
	return s
}

// normalizer converts arbitrary Go values and parsed JSON into nodes.
type normalizer struct {
	maxDepth int
}

func (nz *normalizer) enter(depth int) error {
	if nz.maxDepth > 0 && depth > nz.maxDepth {
		return fmt.Errorf("%w: limit is %d", ErrMaxDepth, nz.maxDepth)
	}
	return nil
}

// parseJSON validates and normalises JSON text.
func (nz *normalizer) parseJSON(text string) (*node, error) {
	return nz.rawJSON(text, 0)
}

func snippet(text string) string {
	const max = 32
	text = strings.TrimSpace(text)
	if len(text) > max {
		text = text[:max] + "..."
	}
	return strconv.Quote(text)
}

// rawJSON normalises JSON text found at depth. The tree is built in a
// single pass over the decoder's tokens, linear in the size of the input.
func (nz *normalizer) rawJSON(text string, depth int) (*node, error) {
	if !gjson.Valid(text) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJSON, snippet(text))
	}
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	return nz.decode(dec, depth)
}

func (nz *normalizer) decode(dec *json.Decoder, depth int) (*node, error) {
	if err := nz.enter(depth); err != nil {
		return nil, err
	}
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	switch t := tok.(type) {
	case nil:
		return nullNode, nil
	case bool:
		return boolNode(t), nil
	case string:
		return stringNode(t), nil
	case json.Number:
		return numberNode(t), nil
	case json.Delim:
		switch t {
		case '[':
			n := &node{kind: arrayKind, truthy: true}
			for dec.More() {
				item, err := nz.decode(dec, depth+1)
				if err != nil {
					return nil, err
				}
				n.items = append(n.items, item)
			}
			if err := nz.closeDelim(dec); err != nil {
				return nil, err
			}
			return n, nil

		case '{':
			n := objectNode()
			for dec.More() {
				key, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
				}
				k, _ := key.(string)
				member, err := nz.decode(dec, depth+1)
				if err != nil {
					return nil, err
				}
				// duplicate keys keep their first position and their last value
				n.members.Set(k, member)
			}
			if err := nz.closeDelim(dec); err != nil {
				return nil, err
			}
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: unexpected %v", ErrInvalidJSON, tok)
}

func (nz *normalizer) closeDelim(dec *json.Decoder) error {
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}

// result normalises a gjson.Result, usually one picked out of a larger
// document with gjson.Get.
func (nz *normalizer) result(r gjson.Result, depth int) (*node, error) {
	switch r.Type {
	case gjson.Null:
		return nullNode, nil
	case gjson.True:
		return trueNode, nil
	case gjson.False:
		return falseNode, nil
	case gjson.Number:
		return floatNode(r.Num, 64), nil
	case gjson.String:
		return stringNode(r.Str), nil
	}
	return nz.rawJSON(r.Raw, depth)
}

func (nz *normalizer) value(v any, depth int) (*node, error) {
	if err := nz.enter(depth); err != nil {
		return nil, err
	}

	switch t := v.(type) {
	case nil:
		return nullNode, nil
	case *node:
		return t, nil
	case bool:
		return boolNode(t), nil
	case string:
		return stringNode(t), nil
	case []byte:
		return stringNode(string(t)), nil
	case int:
		return intNode(int64(t)), nil
	case int8:
		return intNode(int64(t)), nil
	case int16:
		return intNode(int64(t)), nil
	case int32:
		return intNode(int64(t)), nil
	case int64:
		return intNode(t), nil
	case uint:
		return uintNode(uint64(t)), nil
	case uint8:
		return uintNode(uint64(t)), nil
	case uint16:
		return uintNode(uint64(t)), nil
	case uint32:
		return uintNode(uint64(t)), nil
	case uint64:
		return uintNode(t), nil
	case float32:
		return floatNode(float64(t), 32), nil
	case float64:
		return floatNode(t, 64), nil
	case json.Number:
		return numberNode(t), nil
	case json.RawMessage:
		return nz.rawJSON(string(t), depth)
	case gjson.Result:
		return nz.result(t, depth)
	case time.Time:
		return dateNode(t), nil
	case *time.Time:
		if t == nil {
			return nullNode, nil
		}
		return dateNode(*t), nil
	case Raw:
		s := string(t)
		return thunkNode(func() (string, error) { return s, nil }), nil
	case func() string:
		if t == nil {
			return nullNode, nil
		}
		return thunkNode(func() (string, error) { return t(), nil }), nil
	case func() (string, error):
		if t == nil {
			return nullNode, nil
		}
		return thunkNode(t), nil
	case Elem:
		return t.node(nz, depth)
	case *Elem:
		if t == nil {
			return nullNode, nil
		}
		return t.node(nz, depth)
	case *Object:
		if t == nil {
			return nullNode, nil
		}
		n := objectNode()
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			member, err := nz.value(pair.Value, depth+1)
			if err != nil {
				return nil, err
			}
			n.members.Set(pair.Key, member)
		}
		return n, nil
	case map[string]any:
		if t == nil {
			return nullNode, nil
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		n := objectNode()
		for _, k := range keys {
			member, err := nz.value(t[k], depth+1)
			if err != nil {
				return nil, err
			}
			n.members.Set(k, member)
		}
		return n, nil
	case []any:
		if t == nil {
			return nullNode, nil
		}
		n := &node{kind: arrayKind, truthy: true, items: make([]*node, 0, len(t))}
		for _, v := range t {
			item, err := nz.value(v, depth+1)
			if err != nil {
				return nil, err
			}
			n.items = append(n.items, item)
		}
		return n, nil
	case json.Marshaler:
		bts, err := t.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("jsontoxml: marshal %T: %w", v, err)
		}
		return nz.rawJSON(string(bts), depth)
	}

	return nz.reflect(reflect.ValueOf(v), depth)
}

// reflect handles named types, typed slices and maps, pointers and structs.
func (nz *normalizer) reflect(rv reflect.Value, depth int) (*node, error) {
	switch rv.Kind() {
	case reflect.Invalid:
		return nullNode, nil

	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nullNode, nil
		}
		return nz.value(rv.Elem().Interface(), depth)

	case reflect.Bool:
		return boolNode(rv.Bool()), nil
	case reflect.String:
		return stringNode(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intNode(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return uintNode(rv.Uint()), nil
	case reflect.Float32:
		return floatNode(rv.Float(), 32), nil
	case reflect.Float64:
		return floatNode(rv.Float(), 64), nil

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nullNode, nil
		}
		n := &node{kind: arrayKind, truthy: true, items: make([]*node, 0, rv.Len())}
		for i := 0; i < rv.Len(); i++ {
			item, err := nz.value(rv.Index(i).Interface(), depth+1)
			if err != nil {
				return nil, err
			}
			n.items = append(n.items, item)
		}
		return n, nil

	case reflect.Map:
		if rv.IsNil() {
			return nullNode, nil
		}
		if rv.Type().Key().Kind() != reflect.String {
			// encoding/json writes integer and TextMarshaler keys as
			// strings, in sorted order.
			return nz.marshal(rv, depth)
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		n := objectNode()
		for _, k := range keys {
			member, err := nz.value(rv.MapIndex(k).Interface(), depth+1)
			if err != nil {
				return nil, err
			}
			n.members.Set(k.String(), member)
		}
		return n, nil

	case reflect.Struct:
		if rv.Type().ConvertibleTo(timeType) {
			return dateNode(rv.Convert(timeType).Interface().(time.Time)), nil
		}
		// encoding/json knows about field tags and embedding, and the
		// decoder keeps the field order when reading it back.
		return nz.marshal(rv, depth)
	}

	return stringNode(fmt.Sprint(rv.Interface())), nil
}

func (nz *normalizer) marshal(rv reflect.Value, depth int) (*node, error) {
	bts, err := json.Marshal(rv.Interface())
	if err != nil {
		return nil, fmt.Errorf("jsontoxml: marshal %s: %w", rv.Type(), err)
	}
	return nz.rawJSON(string(bts), depth)
}

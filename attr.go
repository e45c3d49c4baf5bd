package jsontoxml

import (
	"strconv"
	"time"
)

// Attr is a single attribute of an Elem. Values can be assigned from any
// golang primitive like so:
//
//	Attr{Name: "foo"}.Int(5)
//	Attr{Name: "foo"}.Uint64(5)
//	Attr{Name: "foo"}.Float64(1.234)
//
// The value is escaped on output only when escaping is enabled.
type Attr struct {
	Name  string
	Value string
}

func (a Attr) Bool(v bool) Attr     { a.Value = strconv.FormatBool(v); return a }
func (a Attr) Int(v int) Attr       { a.Value = strconv.FormatInt(int64(v), 10); return a }
func (a Attr) Int8(v int8) Attr     { a.Value = strconv.FormatInt(int64(v), 10); return a }
func (a Attr) Int16(v int16) Attr   { a.Value = strconv.FormatInt(int64(v), 10); return a }
func (a Attr) Int32(v int32) Attr   { a.Value = strconv.FormatInt(int64(v), 10); return a }
func (a Attr) Int64(v int64) Attr   { a.Value = strconv.FormatInt(v, 10); return a }
func (a Attr) Uint(v uint) Attr     { a.Value = strconv.FormatUint(uint64(v), 10); return a }
func (a Attr) Uint8(v uint8) Attr   { a.Value = strconv.FormatUint(uint64(v), 10); return a }
func (a Attr) Uint16(v uint16) Attr { a.Value = strconv.FormatUint(uint64(v), 10); return a }
func (a Attr) Uint32(v uint32) Attr { a.Value = strconv.FormatUint(uint64(v), 10); return a }
func (a Attr) Uint64(v uint64) Attr { a.Value = strconv.FormatUint(v, 10); return a }
func (a Attr) Float32(v float32) Attr {
	a.Value = formatNumber(float64(v), 32)
	return a
}
func (a Attr) Float64(v float64) Attr { a.Value = formatNumber(v, 64); return a }

// Time assigns a time using DateLayout.
func (a Attr) Time(v time.Time) Attr { a.Value = v.UTC().Format(DateLayout); return a }

package jsontoxml

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"
	"testing"
)

type Outer struct {
	Name   string  `json:"name" xml:"name,attr"`
	Inners []Inner `json:"inner" xml:"inner"`
}

type Inner struct {
	Name  string `json:"name" xml:"name,attr"`
	Value string `json:"value" xml:"value,attr"`
}

func makeStruct(cnt int) *Outer {
	names := []string{"foo", "bar", "baz", "qux", "pants", "trou"}
	values := []string{"yep", "nup", "wahey", "ding", "dong"}
	o := &Outer{Name: "hi", Inners: make([]Inner, cnt)}
	for i := 0; i < cnt; i++ {
		o.Inners[i] = Inner{Name: names[i%len(names)], Value: values[i%len(values)]}
	}
	return o
}

func makeDescriptors(o *Outer) map[string]any {
	items := make([]any, len(o.Inners))
	for i, c := range o.Inners {
		items[i] = Elem{Name: "inner", Attrs: []Attr{{Name: "name", Value: c.Name}, {Name: "value", Value: c.Value}}}
	}
	return map[string]any{o.Name: items}
}

func BenchmarkConvertJSONHuge(b *testing.B) {
	benchmarkConvertJSON(b, 30000)
}

func BenchmarkConvertJSONSmall(b *testing.B) {
	benchmarkConvertJSON(b, 10)
}

func benchmarkConvertJSON(b *testing.B, cnt int) {
	b.StopTimer()
	bts, err := json.Marshal(makeStruct(cnt))
	must(err)
	in := string(bts)
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		out, err := Convert(in, WithEscape())
		must(err)
		BenchString = out
	}
}

func BenchmarkConvertElemHuge(b *testing.B) {
	benchmarkConvertElem(b, 30000)
}

func BenchmarkConvertElemSmall(b *testing.B) {
	benchmarkConvertElem(b, 10)
}

func benchmarkConvertElem(b *testing.B, cnt int) {
	b.StopTimer()
	v := makeDescriptors(makeStruct(cnt))
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		e := NewEncoder(Null{}, WithPrettyPrint())
		must(e.Encode(v))
		must(e.Flush())
	}
}

func benchmarkGolang(b *testing.B, cnt int) {
	b.StopTimer()
	o := makeStruct(cnt)
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		must(xml.NewEncoder(Null{}).Encode(o))
	}
}

func BenchmarkGolangHuge(b *testing.B) {
	benchmarkGolang(b, 30000)
}

func BenchmarkGolangSmall(b *testing.B) {
	benchmarkGolang(b, 10)
}

func BenchmarkConvertDeep(b *testing.B) {
	for _, depth := range []int{100, 1000, 8000} {
		b.Run(fmt.Sprintf("%d", depth), func(b *testing.B) {
			in := strings.Repeat(`{"a":[`, depth) + "1" + strings.Repeat("]}", depth)
			for i := 0; i < b.N; i++ {
				out, err := Convert(in, WithMaxDepth(0))
				must(err)
				BenchString = out
			}
		})
	}
}

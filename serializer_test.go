package jsontoxml

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tt "github.com/shabbyrobe/jsontoxml/testtool"
)

func TestConvertJSON(t *testing.T) {
	for idx, tc := range []struct {
		in  string
		out string
	}{
		{`{"a": 1, "b": "x"}`, `<a>1</a><b>x</b>`},
		{`{"a": "<b>"}`, `<a><b></a>`},
		{`{"b": 1, "a": 2}`, `<b>1</b><a>2</a>`},
		{`{"a": 1, "b": 2, "a": 3}`, `<a>3</a><b>2</b>`},
		{`{"a": ""}`, `<a/>`},
		{`{"a": null}`, `<a>null</a>`},
		{`{"a": true, "b": false}`, `<a>true</a><b>false</b>`},
		{`{"a": {}}`, `<a/>`},
		{`{"a": []}`, `<a/>`},
		{`{"a": {"b": {"c": "d"}}}`, `<a><b><c>d</c></b></a>`},
		{`{"list": [1, 2]}`, `<list>12</list>`},
		{`{"list": [{"a": 1}, {"a": 2}]}`, `<list><a>1</a><a>2</a></list>`},
		{`{"n": 1.50}`, `<n>1.5</n>`},
		{`{"n": 1e21}`, `<n>1e+21</n>`},
		{`{"n": 1.5e-7}`, `<n>1.5e-7</n>`},
		{`{"n": -0.000001}`, `<n>-0.000001</n>`},
		{`{"n": 100}`, `<n>100</n>`},
		{`{"n": 1e400}`, `<n>Infinity</n>`},
		{`{"n": -1e400}`, `<n>-Infinity</n>`},
		{`"hi"`, `hi`},
		{`42`, `42`},
		{`null`, `null`},
		{`[]`, ``},
		{`{}`, ``},
		{`{"a b": 1}`, `<a b>1</a b>`},
	} {
		t.Run(fmt.Sprintf("%d", idx), func(t *testing.T) {
			tt.Equals(t, tc.out, conv(t, tc.in))
		})
	}
}

func TestConvertDescriptor(t *testing.T) {
	for idx, tc := range []struct {
		in  string
		out string
	}{
		{`{"list": [{"name": "item", "attrs": {"id": 1}, "text": "hi"}]}`, `<list><item id="1">hi</item></list>`},
		{`[{"name": "a"}, {"name": "b", "value": 0}]`, `<a/><b>0</b>`},
		{`[{"name": "a", "value": "v", "text": "t"}]`, `<a>v</a>`},
		{`[{"name": "a", "value": ""}]`, `<a/>`},
		{`[{"name": "a", "text": null}]`, `<a>null</a>`},
		{`[{"name": "a", "attrs": "x=\"1\" y=\"2\"", "text": "t"}]`, `<a x="1" y="2">t</a>`},
		{`[{"name": "a", "attrs": {"k": "v", "j": 2}}]`, `<a k="v" j="2"/>`},
		{`[{"name": "a", "attrs": {}}]`, `<a/>`},
		{`[{"name": "a", "attrs": ""}]`, `<a/>`},
		{`[{"name": "a", "attrs": ["x", "y"]}]`, `<a 0="x" 1="y"/>`},
		{`[{"name": "a", "attrs": {"k": "v"}, "text": "t", "children": {"b": 1}}]`, `<a k="v">t<b>1</b></a>`},
		{`{"root": [{"name": "p", "children": [{"name": "c", "text": "1"}, {"name": "c", "text": "2"}]}]}`, `<root><p><c>1</c><c>2</c></p></root>`},
		{`[{"name": "a", "children": ""}]`, `<a/>`},
		{`[{"name": "a", "children": 0}]`, `<a/>`},
		{`[{"name": 7, "text": "t"}]`, `<7>t</7>`},

		// only recognised directly under an array
		{`{"a": {"name": "x", "text": "y"}}`, `<a><name>x</name><text>y</text></a>`},
		{`{"name": "x", "text": "y"}`, `<name>x</name><text>y</text>`},

		// a falsy name is a plain object
		{`[{"name": "", "x": 1}]`, `<name/><x>1</x>`},
		{`[{"name": false, "x": 1}]`, `<name>false</name><x>1</x>`},

		// so is one whose name can't be a tag
		{`[{"name": {"x": 1}, "text": "t"}]`, `<name><x>1</x></name><text>t</text>`},
		{`[{"name": ["x"], "text": "t"}]`, `<name>x</name><text>t</text>`},
	} {
		t.Run(fmt.Sprintf("%d", idx), func(t *testing.T) {
			tt.Equals(t, tc.out, conv(t, tc.in))
		})
	}
}

func TestConvertEscape(t *testing.T) {
	for idx, tc := range []struct {
		in     string
		escape bool
		out    string
	}{
		{`{"a": "<b>"}`, true, `<a>&lt;b&gt;</a>`},
		{`{"a": "<b>"}`, false, `<a><b></a>`},
		{`{"a": "Tom & 'Jerry'"}`, true, `<a>Tom &amp; &apos;Jerry&apos;</a>`},
		{`[{"name": "a", "attrs": {"q": "<\"&"}}]`, true, `<a q="&lt;&quot;&amp;"/>`},
		{`[{"name": "a", "attrs": {"q": "<\"&"}}]`, false, `<a q="<"&"/>`},
		{`[{"name": "a", "attrs": {"q": "v"}, "text": "x<y"}]`, true, `<a q="v">x&lt;y</a>`},
		{`[{"name": "a", "value": "\"q\""}]`, true, `<a>&quot;q&quot;</a>`},

		// the raw attribute string is always verbatim
		{`[{"name": "a", "attrs": "q=\"<\""}]`, true, `<a q="<"/>`},
	} {
		t.Run(fmt.Sprintf("%d", idx), func(t *testing.T) {
			var opts []Option
			if tc.escape {
				opts = append(opts, WithEscape())
			}
			tt.Equals(t, tc.out, conv(t, tc.in, opts...))
		})
	}
}

func TestConvertSanitizedNames(t *testing.T) {
	tt.Equals(t, `<_tag>1</_tag>`, conv(t, `{"1tag": 1}`, WithSanitizedNames()))
	tt.Equals(t, `<__bad>1</__bad>`, conv(t, `{"xml:bad": 1}`, WithSanitizedNames()))
	tt.Equals(t, `<valid_tag>1</valid_tag>`, conv(t, `{"valid_tag": 1}`, WithSanitizedNames()))
	tt.Equals(t, `<l><a_b/></l>`, conv(t, `{"l": [{"name": "a b"}]}`, WithSanitizedNames()))
	tt.Equals(t, `<a_b>1</a_b>`, conv(t, map[string]any{"a\xffb": 1}, WithSanitizedNames()))

	// without the option names are passed through
	tt.Equals(t, `<1tag>1</1tag>`, conv(t, `{"1tag": 1}`))
}

func TestConvertInvalidJSON(t *testing.T) {
	for idx, in := range []any{
		"{not json",
		"",
		"   ",
		[]byte(`{"a":`),
		json.RawMessage(`[1, 2`),
		"hello",
	} {
		t.Run(fmt.Sprintf("%d", idx), func(t *testing.T) {
			out, err := Convert(in)
			tt.ErrIs(t, err, ErrInvalidJSON)
			tt.Pattern(t, `^jsontoxml: invalid JSON input: ".*"$`, err.Error())
			tt.Equals(t, "", out)
		})
	}
}

func TestConvertBytes(t *testing.T) {
	tt.Equals(t, `<a>1</a>`, conv(t, []byte(`{"a": 1}`)))
	tt.Equals(t, `<a>1</a>`, conv(t, json.RawMessage(`{"a": 1}`)))
}

func TestConvertGoValues(t *testing.T) {
	type inner struct {
		Z int    `json:"z"`
		A string `json:"a"`
	}
	type named string

	obj := NewObject()
	obj.Set("z", 1)
	obj.Set("a", 2)

	var nilTime *time.Time
	when := time.Date(2020, 1, 2, 3, 4, 5, 6e6, time.FixedZone("X", 3600))

	for idx, tc := range []struct {
		in  any
		out string
	}{
		{map[string]any{"b": 1, "a": 2}, `<a>2</a><b>1</b>`},
		{obj, `<z>1</z><a>2</a>`},
		{map[string]any{"o": inner{Z: 1, A: "x"}}, `<o><z>1</z><a>x</a></o>`},
		{&inner{Z: 2}, `<z>2</z><a/>`},
		{map[string]any{"xs": []int{1, 2}}, `<xs>12</xs>`},
		{map[string]any{"m": map[string]int{"y": 1, "x": 2}}, `<m><x>2</x><y>1</y></m>`},
		{map[string]any{"m": map[int]string{2: "b", 1: "a", 10: "c"}}, `<m><1>a</1><10>c</10><2>b</2></m>`},
		{map[string]any{"m": map[int]string(nil)}, `<m>null</m>`},
		{map[string]any{"s": named("v")}, `<s>v</s>`},
		{map[string]any{"f": float32(0.1)}, `<f>0.1</f>`},
		{map[string]any{"u": uint64(18446744073709551615)}, `<u>18446744073709551615</u>`},
		{map[string]any{"n": json.Number("1.50")}, `<n>1.5</n>`},
		{map[string]any{"r": json.RawMessage(`{"b": 1, "a": 2}`)}, `<r><b>1</b><a>2</a></r>`},
		{map[string]any{"b": []byte("bytes")}, `<b>bytes</b>`},
		{map[string]any{"when": when}, `<when>2020-01-02T02:04:05.006Z</when>`},
		{map[string]any{"when": &when}, `<when>2020-01-02T02:04:05.006Z</when>`},
		{map[string]any{"when": nilTime}, `<when>null</when>`},
		{map[string]any{"p": (*inner)(nil)}, `<p>null</p>`},
		{map[string]any{"a": nil}, `<a>null</a>`},
		{map[string]any{"a": []any{nil, true}}, `<a>nulltrue</a>`},
		{[]any{map[string]any{"name": "x", "text": "y"}}, `<x>y</x>`},
	} {
		t.Run(fmt.Sprintf("%d", idx), func(t *testing.T) {
			tt.Equals(t, tc.out, conv(t, tc.in))
		})
	}
}

func TestConvertDateNotEscaped(t *testing.T) {
	when := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	tt.Equals(t, `<d>2021-06-01T00:00:00.000Z</d>`, conv(t, map[string]any{"d": when}, WithEscape()))
}

func TestConvertThunk(t *testing.T) {
	v := map[string]any{
		"a": func() string { return "<raw/>" },
		"b": Raw(CData("x<y")),
		"c": func() (string, error) { return "&", nil },
	}
	tt.Equals(t, `<a><raw/></a><b><![CDATA[x<y]]></b><c>&</c>`, conv(t, v, WithEscape()))
}

func TestConvertThunkError(t *testing.T) {
	fail := errors.New("nope")
	out, err := Convert(map[string]any{"a": func() (string, error) { return "", fail }})
	tt.ErrIs(t, err, fail)
	tt.Equals(t, "", out)
}

func TestConvertElem(t *testing.T) {
	for idx, tc := range []struct {
		in  any
		out string
	}{
		{
			map[string]any{"list": []any{
				Elem{Name: "item", Attrs: []Attr{Attr{Name: "id"}.Int(1)}, Text: "hi"},
			}},
			`<list><item id="1">hi</item></list>`,
		},
		{
			[]any{Elem{Name: "a", RawAttrs: `x="1"`, Value: 0, Text: "ignored"}},
			`<a x="1">0</a>`,
		},
		{
			[]any{&Elem{Name: "a", Children: []any{Elem{Name: "b", Text: "c"}}}},
			`<a><b>c</b></a>`,
		},
		{
			[]Elem{{Name: "a", Attrs: []Attr{Attr{Name: "on"}.Bool(true), Attr{Name: "f"}.Float64(0.5)}}},
			`<a on="true" f="0.5"/>`,
		},
		{
			// outside an array it is an object like any other
			map[string]any{"e": Elem{Name: "a", Text: "t"}},
			`<e><name>a</name><text>t</text></e>`,
		},
	} {
		t.Run(fmt.Sprintf("%d", idx), func(t *testing.T) {
			tt.Equals(t, tc.out, conv(t, tc.in))
		})
	}
}

func TestConvertHeader(t *testing.T) {
	tt.Equals(t, `<?xml version="1.0" encoding="utf-8" ?><a>1</a>`,
		conv(t, `{"a": 1}`, WithDefaultXMLHeader()))

	tt.Equals(t, `<?xml version="1.1" encoding="ascii" standalone="yes"?><a>1</a>`,
		conv(t, `{"a": 1}`, WithXMLHeader(Header{Version: "1.1", Encoding: "ascii", Standalone: true})))
}

func TestConvertDocType(t *testing.T) {
	tt.Equals(t, `<!DOCTYPE note><a>1</a>`, conv(t, `{"a": 1}`, WithDocType("note")))
	tt.Equals(t, `<!DOCTYPE ><a>1</a>`, conv(t, `{"a": 1}`, WithDocType("")))
	tt.Equals(t, `<?xml version="1.0" encoding="utf-8" ?><!DOCTYPE note SYSTEM "note.dtd"><a>1</a>`,
		conv(t, `{"a": 1}`, WithDefaultXMLHeader(), WithDTD(DTD{Name: "note", SystemID: "note.dtd"})))
}

func TestConvertDeterministic(t *testing.T) {
	v := map[string]any{"z": []any{1, "2", map[string]any{"c": 3, "b": 4}}, "a": "x"}
	first := conv(t, v, WithPrettyPrint())
	for i := 0; i < 20; i++ {
		tt.Equals(t, first, conv(t, v, WithPrettyPrint()))
	}
}

func TestConvertMaxDepth(t *testing.T) {
	var v any = "leaf"
	for i := 0; i < 20; i++ {
		v = []any{v}
	}
	_, err := Convert(v, WithMaxDepth(5))
	tt.ErrIs(t, err, ErrMaxDepth)

	out, err := Convert(v, WithMaxDepth(0))
	tt.OK(t, err)
	tt.Equals(t, "leaf", out)

	deep := ""
	for i := 0; i < 50; i++ {
		deep = `{"a":` + deep
	}
	deep += "1"
	for i := 0; i < 50; i++ {
		deep += "}"
	}
	_, err = Convert(deep, WithMaxDepth(10))
	tt.ErrIs(t, err, ErrMaxDepth)

	_, err = Convert(deep)
	tt.OK(t, err)
}

func TestConvertCycle(t *testing.T) {
	m := map[string]any{}
	m["self"] = m
	_, err := Convert(m, WithMaxDepth(100))
	tt.ErrIs(t, err, ErrMaxDepth)
}

func element(s *serializer, name, content, attrs string, level int, hasSubNodes bool) string {
	var b bytes.Buffer
	t := s.open(&b, name, attrs, level)
	b.WriteString(content)
	s.close(&b, t, hasSubNodes)
	return b.String()
}

func TestElementTags(t *testing.T) {
	s := &serializer{}
	tt.Equals(t, `<a>c</a>`, element(s, "a", "c", "", 3, true))
	tt.Equals(t, `<a k="v"/>`, element(s, "a", "", ` k="v"`, 0, false))

	s = &serializer{indenter: &StandardIndenter{IndentString: "  ", NewlineString: "\n"}, sanitize: true}
	tt.Equals(t, "\n    <_a>c\n    </_a>", element(s, "1a", "c", "", 2, true))
	tt.Equals(t, "\n  <a>c</a>", element(s, "a", "c", "", 1, false))
	tt.Equals(t, "\n<a/>", element(s, "a", "", "", 0, false))
}

func TestElementTagsSharedBuffer(t *testing.T) {
	s := &serializer{}
	var b bytes.Buffer
	b.WriteString("prefix")
	outer := s.open(&b, "a", "", 0)
	inner := s.open(&b, "b", "", 1)
	s.close(&b, inner, false)
	s.close(&b, outer, false)
	tt.Equals(t, "prefix<a><b/></a>", b.String())
}

func TestConvertDeepNesting(t *testing.T) {
	const depth = 20000
	in := strings.Repeat(`{"a":`, depth) + "1" + strings.Repeat("}", depth)

	out, err := Convert(in, WithMaxDepth(0))
	tt.OK(t, err)
	tt.Equals(t, depth*len("<a></a>")+1, len(out))
	tt.Assert(t, strings.HasPrefix(out, "<a><a>"))
	tt.Assert(t, strings.HasSuffix(out, "1</a></a>"))

	_, err = Convert(in)
	tt.ErrIs(t, err, ErrMaxDepth)
}

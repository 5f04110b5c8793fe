package parse

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sdict-format/go-sdict/dict"
	"github.com/sdict-format/go-sdict/ir"
	"github.com/sdict-format/go-sdict/placeholder"
)

func parseJSON(t *testing.T, text string) *dict.Dict {
	t.Helper()
	d := dict.New()
	if _, err := NewJSONParser().Parse(d, text); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return d
}

func TestJSONScalars(t *testing.T) {
	d := parseJSON(t, `{"a": 1, "b": 2.5, "c": true, "d": null, "e": "word"}`)
	tests := []struct {
		key  string
		want *ir.Node
	}{
		{"a", ir.FromInt(1)},
		{"b", ir.FromFloat(2.5)},
		{"c", ir.FromBool(true)},
		{"d", ir.Null()},
		{"e", ir.FromString("word")},
	}
	for _, tt := range tests {
		if got := mustGet(t, d.Root, tt.key); !got.Equal(tt.want) {
			t.Errorf("%s = %s, want %s", tt.key, got, tt.want)
		}
	}
}

func TestJSONKeyOrderKept(t *testing.T) {
	d := parseJSON(t, `{"z": 1, "a": 2, "m": 3}`)
	var got []string
	for _, k := range d.Root.Keys {
		got = append(got, k.String())
	}
	want := []string{"z", "a", "m"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONNested(t *testing.T) {
	d := parseJSON(t, `{"sub": {"x": [1, 2, {"y": 3}]}}`)
	sub := mustGet(t, d.Root, "sub")
	x := mustGet(t, sub, "x")
	if x.Type != ir.SeqType || x.Len() != 3 {
		t.Fatalf("sub.x = %s, want a sequence of 3", x)
	}
	inner := x.Values[2]
	if got := mustGet(t, inner, "y"); !got.Equal(ir.FromInt(3)) {
		t.Errorf("sub.x[2].y = %s, want 3", got)
	}
}

func TestJSONIncludes(t *testing.T) {
	d := parseJSON(t, `{"#include": "paramDict", "a": 1}`)
	name := placeholder.Name(placeholder.Include, 0)
	if got := d.Root.Keys[0].String(); got != name {
		t.Errorf("first key = %q, want the include placeholder %q", got, name)
	}
	entry := d.Reg.Includes[0]
	if entry.Name != "paramDict" {
		t.Errorf("include name = %q, want paramDict", entry.Name)
	}
	if _, ok := d.Root.Get(ir.StringKey("#include")); ok {
		t.Error("#include key should be replaced by the placeholder")
	}
}

func TestJSONExpressions(t *testing.T) {
	d := parseJSON(t, `{"a": 1, "b": "$a", "c": "$a + 2"}`)
	if len(d.Reg.Expressions) != 2 {
		t.Fatalf("Expressions = %v, want 2 entries", d.Reg.Expressions)
	}
	var exprs []string
	for _, id := range []int{0, 1} {
		exprs = append(exprs, d.Reg.Expressions[id].Expr)
	}
	want := []string{"$a", "$a + 2"}
	if diff := cmp.Diff(want, exprs); diff != "" {
		t.Errorf("expressions mismatch (-want +got):\n%s", diff)
	}
	b := mustGet(t, d.Root, "b")
	if b.Type != ir.StringType || !placeholder.IsName(b.Str, placeholder.Expression) {
		t.Errorf("b = %s, want an expression placeholder", b)
	}
}

func TestJSONTopLevelArrayRejected(t *testing.T) {
	d := dict.New()
	if _, err := NewJSONParser().Parse(d, `[1, 2]`); err == nil {
		t.Error("Parse() expected error for a top-level array")
	}
}

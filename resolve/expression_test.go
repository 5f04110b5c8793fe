package resolve

import (
	"math"
	"testing"

	"github.com/sdict-format/go-sdict/dict"
	"github.com/sdict-format/go-sdict/ir"
	"github.com/sdict-format/go-sdict/parse"
)

func parseText(t *testing.T, text string) *dict.Dict {
	t.Helper()
	d := dict.New()
	if _, err := parse.NewNativeParser().Parse(d, text); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return d
}

func value(t *testing.T, d *dict.Dict, key string) *ir.Node {
	t.Helper()
	v, ok := d.Root.Get(ir.StringKey(key))
	if !ok {
		t.Fatalf("key %q missing, have %s", key, d.Root)
	}
	return v
}

func TestEvalReference(t *testing.T) {
	d := parseText(t, "a 1;\nb $a;\n")
	EvalExpressions(d)
	if got := value(t, d, "b"); !got.Equal(ir.FromInt(1)) {
		t.Errorf("b = %s, want 1", got)
	}
	if len(d.Reg.Expressions) != 0 {
		t.Errorf("Expressions = %v, want all consumed", d.Reg.Expressions)
	}
}

func TestEvalArithmetic(t *testing.T) {
	d := parseText(t, "a 2;\nb \"$a + 3\";\nc \"$a * $a\";\n")
	EvalExpressions(d)
	if got := value(t, d, "b"); !got.Equal(ir.FromInt(5)) {
		t.Errorf("b = %s, want 5", got)
	}
	if got := value(t, d, "c"); !got.Equal(ir.FromInt(4)) {
		t.Errorf("c = %s, want 4", got)
	}
}

func TestEvalChain(t *testing.T) {
	d := parseText(t, "a 1;\nb $a;\nc \"$b + 1\";\nd \"$c + 1\";\n")
	EvalExpressions(d)
	if got := value(t, d, "d"); !got.Equal(ir.FromInt(3)) {
		t.Errorf("d = %s, want 3", got)
	}
}

// The referenced values are whole numbers on purpose: they substitute
// into the expression text as integer literals, and the function
// environment has to take those as readily as floats.
func TestEvalMathFunctions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"sin", "a 0;\nr \"sin($a)\";\n", 0},
		{"cos", "a 0;\nr \"cos($a)\";\n", 1},
		{"tan", "a 0;\nr \"tan($a)\";\n", 0},
		{"asin", "a 1;\nr \"asin($a)\";\n", math.Pi / 2},
		{"acos", "a 1;\nr \"acos($a)\";\n", 0},
		{"atan", "a 1;\nr \"atan($a)\";\n", math.Pi / 4},
		{"atan2", "a 1;\nb 1;\nr \"atan2($a, $b)\";\n", math.Pi / 4},
		{"exp", "a 1;\nr \"exp($a)\";\n", math.E},
		{"log", "a 1;\nr \"log($a)\";\n", 0},
		{"log10", "a 100;\nr \"log10($a)\";\n", 2},
		{"pow", "a 2;\nb 10;\nr \"pow($a, $b)\";\n", 1024},
		{"sqrt", "a 16;\nr \"sqrt($a)\";\n", 4},
		{"pi constant", "a 16;\nr \"pi * $a\";\n", 16 * math.Pi},
		{"e constant", "a 2;\nr \"e * $a\";\n", 2 * math.E},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := parseText(t, tt.text)
			EvalExpressions(d)
			r := value(t, d, "r")
			if r.Type != ir.FloatType || math.Abs(*r.Float64-tt.want) > 1e-12 {
				t.Errorf("r = %s, want %g", r, tt.want)
			}
		})
	}
}

func TestEvalStringReference(t *testing.T) {
	d := parseText(t, "name 'John Doe';\ngreet $name;\n")
	EvalExpressions(d)
	if got := value(t, d, "greet"); !got.Equal(ir.FromString("John Doe")) {
		t.Errorf("greet = %s, want John Doe", got)
	}
}

func TestEvalIndexedReference(t *testing.T) {
	d := parseText(t, "xs ( 10 20 30 );\nsecond \"$xs[1]\";\n")
	EvalExpressions(d)
	if got := value(t, d, "second"); !got.Equal(ir.FromInt(20)) {
		t.Errorf("second = %s, want 20", got)
	}
}

func TestEvalUnresolvedLeftAsText(t *testing.T) {
	d := parseText(t, "b $missing;\n")
	EvalExpressions(d)
	if got := value(t, d, "b"); !got.Equal(ir.FromString("$missing")) {
		t.Errorf("b = %s, want the raw reference text", got)
	}
	if len(d.Reg.Expressions) != 0 {
		t.Errorf("Expressions = %v, want registry emptied", d.Reg.Expressions)
	}
}

func TestResolveReference(t *testing.T) {
	vars := map[string]*ir.Node{
		"a":    ir.FromInt(1),
		"b":    ir.FromString("$a"),
		"list": ir.FromSlice([]*ir.Node{ir.FromInt(10), ir.FromInt(20)}),
	}
	tests := []struct {
		name string
		ref  string
		want *ir.Node
	}{
		{"direct", "$a", ir.FromInt(1)},
		{"chained", "$b", ir.FromInt(1)},
		{"indexed", "$list[1]", ir.FromInt(20)},
		{"whole sequence", "$list", vars["list"]},
		{"unknown", "$nope", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveReference(tt.ref, vars)
			if tt.want == nil {
				if got != nil {
					t.Errorf("resolveReference(%q) = %s, want nil", tt.ref, got)
				}
				return
			}
			if got == nil || !got.Equal(tt.want) {
				t.Errorf("resolveReference(%q) = %s, want %s", tt.ref, got, tt.want)
			}
		})
	}
}

func TestRenderValue(t *testing.T) {
	tests := []struct {
		in   *ir.Node
		want string
	}{
		{ir.FromInt(3), "3"},
		{ir.FromBool(true), "true"},
		{ir.Null(), "nil"},
		{ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)}), "[1, 2]"},
	}
	for _, tt := range tests {
		if got := renderValue(tt.in); got != tt.want {
			t.Errorf("renderValue(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

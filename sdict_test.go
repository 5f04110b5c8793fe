package sdict

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sdict-format/go-sdict/dict"
	"github.com/sdict-format/go-sdict/format"
	"github.com/sdict-format/go-sdict/ir"
)

func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func get(t *testing.T, d *dict.Dict, key string) *ir.Node {
	t.Helper()
	v, ok := d.Root.Get(ir.StringKey(key))
	if !ok {
		t.Fatalf("key %q missing in %s", key, d.Root)
	}
	return v
}

func TestReadResolvesIncludesAndExpressions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "paramDict", "width 2.5;\n")
	path := writeFile(t, dir, "caseDict", "#include 'paramDict'\nheight \"$width * 2\";\n")

	d, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if v := get(t, d, "width"); !v.Equal(ir.FromFloat(2.5)) {
		t.Errorf("width = %s, want 2.5", v)
	}
	if v := get(t, d, "height"); !v.Equal(ir.FromFloat(5)) {
		t.Errorf("height = %s, want 5", v)
	}
}

func TestReadIgnoreIncludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "paramDict", "width 2.5;\n")
	path := writeFile(t, dir, "caseDict", "#include 'paramDict'\na 1;\n")

	d, err := Read(path, WithIncludes(false))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if _, ok := d.Root.Get(ir.StringKey("width")); ok {
		t.Error("included content should not be merged")
	}
	for _, k := range d.Root.Keys {
		if strings.HasPrefix(k.Str, "INCLUDE") {
			t.Errorf("include directive left behind: %v", k)
		}
	}
}

func TestReadScope(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "caseDict", "sub\n{\n    a 1;\n}\nb 2;\n")

	d, err := Read(path, WithScope([]ir.Key{ir.StringKey("sub")}))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if v := get(t, d, "a"); !v.Equal(ir.FromInt(1)) {
		t.Errorf("a = %s, want 1", v)
	}
	if _, ok := d.Root.Get(ir.StringKey("b")); ok {
		t.Error("b should be outside the scope")
	}
}

func TestReadScopeMissing(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "caseDict", "a 1;\n")
	if _, err := Read(path, WithScope([]ir.Key{ir.StringKey("nope")})); !errors.Is(err, dict.ErrScope) {
		t.Errorf("Read() error = %v, want %v", err, dict.ErrScope)
	}
}

func TestReadOrder(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "caseDict", "z 1;\na 2;\n")
	d, err := Read(path, WithOrder(true))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if !d.Root.Keys[0].Equal(ir.StringKey("a")) {
		t.Errorf("keys not ordered: %v", d.Root.Keys)
	}
}

func TestParseInMemory(t *testing.T) {
	d, err := Parse("a 1;\nb \"$a + 1\";\n", format.NativeFormat)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if v := get(t, d, "b"); !v.Equal(ir.FromInt(2)) {
		t.Errorf("b = %s, want 2", v)
	}
}

func TestWriteAndReadBack(t *testing.T) {
	dir := t.TempDir()
	d, err := Parse("a 1;\nsub\n{\n    x 2.5;\n}\n", format.NativeFormat)
	if err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "outDict")
	if err := Write(d, target); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	back, err := Read(target)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	eq, err := Equal(d, back)
	if err != nil {
		t.Fatal(err)
	}
	if !eq {
		diff, _ := Diff(d, back)
		t.Errorf("round trip changed the dictionary:\n%s", diff)
	}
}

func TestWriteAppendMerges(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "outDict")

	first, err := Parse("a 1;\n", format.NativeFormat)
	if err != nil {
		t.Fatal(err)
	}
	if err := Write(first, target); err != nil {
		t.Fatal(err)
	}
	second, err := Parse("a 9;\nb 2;\n", format.NativeFormat)
	if err != nil {
		t.Fatal(err)
	}
	if err := Write(second, target, WithMode("a")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	back, err := Read(target)
	if err != nil {
		t.Fatal(err)
	}
	// merge never overwrites: the existing a wins, b is added
	if v := get(t, back, "a"); !v.Equal(ir.FromInt(1)) {
		t.Errorf("a = %s, want 1", v)
	}
	if v := get(t, back, "b"); !v.Equal(ir.FromInt(2)) {
		t.Errorf("b = %s, want 2", v)
	}
}

func TestWriteOrder(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "outDict")
	d, err := Parse("z 1;\na 2;\n", format.NativeFormat)
	if err != nil {
		t.Fatal(err)
	}
	if err := Write(d, target, WithWriteOrder(true)); err != nil {
		t.Fatal(err)
	}
	back, err := Read(target)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Root.Keys[0].Equal(ir.StringKey("a")) {
		t.Errorf("keys not ordered on write: %v", back.Root.Keys)
	}
}

func TestTargetFileName(t *testing.T) {
	jsonFormat := format.JSONFormat
	xmlFormat := format.XMLFormat
	nativeFormat := format.NativeFormat
	tests := []struct {
		name   string
		source string
		scope  []ir.Key
		format *format.Format
		want   string
	}{
		{"no format keeps name", "case/controlDict", nil, nil, "case/parsed.controlDict"},
		{"no format keeps extension", "case/System.ssd", nil, nil, "case/parsed.System.ssd"},
		{"json adds suffix", "case/controlDict", nil, &jsonFormat, "case/parsed.controlDict.json"},
		{"suffix not doubled", "case/controlDict.json", nil, &jsonFormat, "case/parsed.controlDict.json"},
		{"format replaces extension", "case/System.ssd", nil, &xmlFormat, "case/parsed.System.xml"},
		{"native drops extension", "case/paramDict.cpp", nil, &nativeFormat, "case/parsed.paramDict"},
		{"prefix not doubled", "case/parsed.controlDict", nil, nil, "case/parsed.controlDict"},
		{"scope in name", "case/caseDict", []ir.Key{ir.StringKey("sub"), ir.IntKey(0)}, nil, "case/parsed.caseDict_sub_0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TargetFileName(tt.source, tt.scope, tt.format)
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("TargetFileName(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestDiffReportsChange(t *testing.T) {
	a, err := Parse("a 1;\n", format.NativeFormat)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse("a 2;\n", format.NativeFormat)
	if err != nil {
		t.Fatal(err)
	}
	diff, err := Diff(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if diff == "" {
		t.Fatal("expected a non empty diff")
	}
	same, err := Diff(a, a)
	if err != nil {
		t.Fatal(err)
	}
	if same != "" {
		t.Errorf("Diff(a, a) = %q, want empty", same)
	}
}

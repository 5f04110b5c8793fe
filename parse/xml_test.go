package parse

import (
	"testing"

	"github.com/sdict-format/go-sdict/dict"
	"github.com/sdict-format/go-sdict/ir"
)

const xmlDoc = `<?xml version="1.0" ?>
<config xmlns:xs="https://ns.example/schema" version="4">
    <item unit="m">2.5</item>
    <flag enabled="True"/>
    <nested>
        <a>1</a>
    </nested>
</config>`

func parseXMLDoc(t *testing.T, text string) *dict.Dict {
	t.Helper()
	d := dict.New()
	if _, err := NewXMLParser().Parse(d, text); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return d
}

func TestXMLStructure(t *testing.T) {
	d := parseXMLDoc(t, xmlDoc)

	item := mustGet(t, d.Root, "000000_item")
	if got := mustGet(t, item, "_content"); !got.Equal(ir.FromFloat(2.5)) {
		t.Errorf("item content = %s, want 2.5", got)
	}
	attrs := mustGet(t, item, "_attributes")
	if got := mustGet(t, attrs, "unit"); !got.Equal(ir.FromString("m")) {
		t.Errorf("item unit = %s, want m", got)
	}

	flag := mustGet(t, d.Root, "000001_flag")
	flagAttrs := mustGet(t, flag, "_attributes")
	if got := mustGet(t, flagAttrs, "enabled"); !got.Equal(ir.FromBool(true)) {
		t.Errorf("flag enabled = %s, want true", got)
	}

	nested := mustGet(t, d.Root, "000002_nested")
	if got := mustGet(t, mustGet(t, nested, "000003_a"), "_content"); !got.Equal(ir.FromInt(1)) {
		t.Errorf("nested a = %s, want 1", got)
	}
}

func TestXMLOpts(t *testing.T) {
	d := parseXMLDoc(t, xmlDoc)
	opts := mustGet(t, d.Root, "_xmlOpts")
	if got := mustGet(t, opts, "_rootTag"); !got.Equal(ir.FromString("config")) {
		t.Errorf("_rootTag = %s, want config", got)
	}
	ns := mustGet(t, opts, "_nameSpaces")
	if got := mustGet(t, ns, "xs"); !got.Equal(ir.FromString("https://ns.example/schema")) {
		t.Errorf("xs namespace = %s", got)
	}
	rootAttrs := mustGet(t, opts, "_rootAttributes")
	if got := mustGet(t, rootAttrs, "version"); !got.Equal(ir.FromString("4")) {
		t.Errorf("root version = %s, want 4", got)
	}
	if got := mustGet(t, opts, "_addNodeNumbering"); !got.Equal(ir.FromBool(true)) {
		t.Errorf("_addNodeNumbering = %s, want true", got)
	}
}

func TestXMLDefaultNamespace(t *testing.T) {
	d := parseXMLDoc(t, `<root><a>x</a></root>`)
	opts := mustGet(t, d.Root, "_xmlOpts")
	ns := mustGet(t, opts, "_nameSpaces")
	if _, ok := ns.Get(ir.StringKey("xs")); !ok {
		t.Errorf("default xs namespace missing: %s", ns)
	}
}

func TestXMLWithoutNumbering(t *testing.T) {
	p := NewXMLParser()
	p.AddNodeNumbering = false
	d := dict.New()
	if _, err := p.Parse(d, `<root><a>1</a></root>`); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if _, ok := d.Root.Get(ir.StringKey("a")); !ok {
		t.Errorf("key a missing without numbering: %s", d.Root)
	}
}

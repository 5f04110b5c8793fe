package encode

import (
	"strings"
	"testing"

	"github.com/sdict-format/go-sdict/dict"
	"github.com/sdict-format/go-sdict/ir"
)

func xmlDict() *dict.Dict {
	d := dict.New()

	item := ir.NewMap()
	item.Set(ir.StringKey("_content"), ir.FromFloat(2.5))
	attrs := ir.NewMap()
	attrs.Set(ir.StringKey("unit"), ir.FromString("m"))
	item.Set(ir.StringKey("_attributes"), attrs)
	d.Root.Set(ir.StringKey("000000_item"), item)

	d.Root.Set(ir.StringKey("000001_empty"), ir.NewMap())

	ns := ir.NewMap()
	ns.Set(ir.StringKey("xs"), ir.FromString("https://ns.example/schema"))
	opts := ir.NewMap()
	opts.Set(ir.StringKey("_nameSpaces"), ns)
	opts.Set(ir.StringKey("_rootTag"), ir.FromString("config"))
	opts.Set(ir.StringKey("_rootAttributes"), ir.NewMap())
	d.Root.Set(ir.StringKey("_xmlOpts"), opts)
	return d
}

func TestXMLEncode(t *testing.T) {
	out, err := NewXMLEncoder().String(xmlDict())
	if err != nil {
		t.Fatalf("String() error: %v", err)
	}
	want := `<?xml version="1.0" ?>
<config xmlns:xs="https://ns.example/schema">
    <item unit="m">2.5</item>
    <empty/>
</config>
`
	if out != want {
		t.Errorf("String() = %q, want %q", out, want)
	}
}

func TestXMLEncodeKeepNumbering(t *testing.T) {
	e := NewXMLEncoder()
	e.RemoveNodeNumbering = false
	out, err := e.String(xmlDict())
	if err != nil {
		t.Fatalf("String() error: %v", err)
	}
	if !strings.Contains(out, "<000000_item") {
		t.Errorf("numbered tags should stay:\n%s", out)
	}
}

func TestXMLEncodeDefaults(t *testing.T) {
	d := dict.New()
	d.Root.Set(ir.StringKey("a"), ir.NewMap())
	out, err := NewXMLEncoder().String(d)
	if err != nil {
		t.Fatalf("String() error: %v", err)
	}
	if !strings.Contains(out, "<NOTSPECIFIED ") {
		t.Errorf("default root tag missing:\n%s", out)
	}
	if !strings.Contains(out, `xmlns:xs="https://www.w3.org/2009/XMLSchema/XMLSchema.xsd"`) {
		t.Errorf("default namespace missing:\n%s", out)
	}
}

func TestXMLEncodeSequenceAsText(t *testing.T) {
	d := dict.New()
	d.Root.Set(ir.StringKey("000000_vector"),
		ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2), ir.FromInt(3)}))
	out, err := NewXMLEncoder().String(d)
	if err != nil {
		t.Fatalf("String() error: %v", err)
	}
	if !strings.Contains(out, "<vector>1 2 3</vector>") {
		t.Errorf("sequence content should join with spaces:\n%s", out)
	}
}

func TestXMLEncodeBoolAttribute(t *testing.T) {
	d := dict.New()
	flag := ir.NewMap()
	attrs := ir.NewMap()
	attrs.Set(ir.StringKey("enabled"), ir.FromBool(true))
	flag.Set(ir.StringKey("_attributes"), attrs)
	d.Root.Set(ir.StringKey("000000_flag"), flag)
	out, err := NewXMLEncoder().String(d)
	if err != nil {
		t.Fatalf("String() error: %v", err)
	}
	if !strings.Contains(out, `<flag enabled="true"/>`) {
		t.Errorf("bool attributes render lower case:\n%s", out)
	}
}

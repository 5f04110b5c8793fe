package encode

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sdict-format/go-sdict/dict"
	"github.com/sdict-format/go-sdict/ir"
)

// XMLEncoder serializes a dictionary as pretty printed XML. The
// document's namespaces, root tag and root attributes are taken from
// the "_xmlOpts" entry the XML parser leaves behind; without it, a
// default namespace and root tag are used. "_attributes" entries
// become element attributes, "_content" entries element text, and the
// node numbering prefixes added on parsing are removed again.
type XMLEncoder struct {
	RemoveNodeNumbering bool
}

func NewXMLEncoder() *XMLEncoder {
	return &XMLEncoder{RemoveNodeNumbering: true}
}

const defaultRootTag = "NOTSPECIFIED"

func (e *XMLEncoder) String(d *dict.Dict) (string, error) {
	namespaces := map[string]string{"xs": "https://www.w3.org/2009/XMLSchema/XMLSchema.xsd"}
	var nsOrder []string
	rootTag := defaultRootTag
	var rootAttributes *ir.Node
	removeNumbering := e.RemoveNodeNumbering

	if opts, ok := d.Root.Get(ir.StringKey("_xmlOpts")); ok && opts.Type == ir.MapType {
		if ns, ok := opts.Get(ir.StringKey("_nameSpaces")); ok && ns.Type == ir.MapType {
			namespaces = map[string]string{}
			for i, k := range ns.Keys {
				namespaces[k.String()] = ns.Values[i].Text()
				nsOrder = append(nsOrder, k.String())
			}
		}
		if tag, ok := opts.Get(ir.StringKey("_rootTag")); ok {
			rootTag = tag.Text()
		}
		if attrs, ok := opts.Get(ir.StringKey("_rootAttributes")); ok && attrs.Type == ir.MapType {
			rootAttributes = attrs
		}
		if rm, ok := opts.Get(ir.StringKey("_removeNodeNumbering")); ok && rm.Type == ir.BoolType {
			removeNumbering = rm.Bool
		}
	}
	if nsOrder == nil {
		nsOrder = []string{"xs"}
	}

	var sb strings.Builder
	sb.WriteString("<?xml version=\"1.0\" ?>\n")
	var attrs []string
	for _, prefix := range nsOrder {
		if prefix == "None" {
			attrs = append(attrs, "xmlns=\""+namespaces[prefix]+"\"")
		} else {
			attrs = append(attrs, "xmlns:"+prefix+"=\""+namespaces[prefix]+"\"")
		}
	}
	if rootAttributes != nil {
		for i, k := range rootAttributes.Keys {
			if v := rootAttributes.Values[i].Text(); v != "" {
				attrs = append(attrs, k.String()+"=\""+escapeAttr(v)+"\"")
			}
		}
	}
	w := &xmlWriter{removeNumbering: removeNumbering}
	w.writeElement(&sb, rootTag, attrs, d.Root, 0)
	return sb.String(), nil
}

type xmlWriter struct {
	removeNumbering bool
}

var (
	contentKeyRx   = regexp.MustCompile(`^_content`)
	attributeKeyRx = regexp.MustCompile(`^_attrib`)
	optsKeyRx      = regexp.MustCompile(`^(_.*[Oo]pts|INCLUDE)`)
	commentKeyRx   = regexp.MustCompile(`^(BLOCKCOMMENT|LINECOMMENT)[0-9]+`)
	numberingRx    = regexp.MustCompile(`^\d{1,6}_`)
)

// writeElement writes one element with its attributes on the opening
// tag. Text-only elements render inline, multiline text as an indented
// block, and empty elements self-close.
func (w *xmlWriter) writeElement(sb *strings.Builder, tag string, attrs []string, value *ir.Node, level int) {
	indent := strings.Repeat(" ", tabLen*level)
	open := tag
	if len(attrs) > 0 {
		open += " " + strings.Join(attrs, " ")
	}

	text, children := w.splitElement(value)
	switch {
	case len(children) == 0 && text == "":
		fmt.Fprintf(sb, "%s<%s/>\n", indent, open)
	case len(children) == 0:
		if strings.Contains(text, "\n") {
			fmt.Fprintf(sb, "%s<%s>\n%s\n%s</%s>\n", indent, open, escapeXML(text), indent, tag)
		} else {
			fmt.Fprintf(sb, "%s<%s>%s</%s>\n", indent, open, escapeXML(text), tag)
		}
	default:
		fmt.Fprintf(sb, "%s<%s>\n", indent, open)
		for _, c := range children {
			w.writeElement(sb, c.tag, c.attrs, c.value, level+1)
		}
		fmt.Fprintf(sb, "%s</%s>\n", indent, tag)
	}
}

type xmlChild struct {
	tag   string
	attrs []string
	value *ir.Node
}

// splitElement derives an element's text and child elements from its
// dictionary value.
func (w *xmlWriter) splitElement(value *ir.Node) (string, []xmlChild) {
	switch value.Type {
	case ir.SeqType:
		parts := make([]string, len(value.Values))
		for i, v := range value.Values {
			parts[i] = v.Text()
		}
		return strings.Join(parts, " "), nil
	case ir.MapType:
		text := ""
		var children []xmlChild
		for i, k := range value.Keys {
			skey := k.String()
			item := value.Values[i]
			switch {
			case contentKeyRx.MatchString(skey):
				text = item.Text()
				if text != "" && len(strings.Split(text, "\n")) > 1 {
					text = "\n" + text + "\n"
				}
			case attributeKeyRx.MatchString(skey):
				// handled by the parent when building the child list
			case optsKeyRx.MatchString(skey) || commentKeyRx.MatchString(skey):
				// not content
			default:
				tag := skey
				if w.removeNumbering {
					tag = numberingRx.ReplaceAllString(tag, "")
				}
				children = append(children, xmlChild{
					tag:   tag,
					attrs: elementAttrs(item),
					value: item,
				})
			}
		}
		return text, children
	case ir.NullType:
		return "", nil
	default:
		return value.Text(), nil
	}
}

var boolWordRx = regexp.MustCompile(`(?i)^(true|false)$`)

// elementAttrs collects the "_attributes" entries of a map value.
// Empty attribute values are dropped and boolean words forced to
// lower case.
func elementAttrs(value *ir.Node) []string {
	if value.Type != ir.MapType {
		return nil
	}
	attrMap, ok := value.Get(ir.StringKey("_attributes"))
	if !ok || attrMap.Type != ir.MapType {
		return nil
	}
	var attrs []string
	for i, k := range attrMap.Keys {
		v := attrMap.Values[i].Text()
		if v == "" {
			continue
		}
		if boolWordRx.MatchString(v) {
			v = strings.ToLower(v)
		}
		attrs = append(attrs, k.String()+"=\""+escapeAttr(v)+"\"")
	}
	return attrs
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

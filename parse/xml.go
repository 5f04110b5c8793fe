package parse

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/sdict-format/go-sdict/dict"
	"github.com/sdict-format/go-sdict/ir"
	"github.com/sdict-format/go-sdict/placeholder"
)

// XMLParser deserializes XML files into the document model. Element
// tags become keys, element text lands under "_content", attributes
// under "_attributes", and the document's namespaces, root tag and
// root attributes are recorded under "_xmlOpts" so the writer can
// reconstruct the document.
type XMLParser struct {
	config *config

	// AddNodeNumbering prefixes every element key with a unique
	// six-digit index, keeping repeated sibling tags distinct.
	// Enabled by default.
	AddNodeNumbering bool
}

func NewXMLParser(opts ...Option) *XMLParser {
	return &XMLParser{config: newConfig(opts), AddNodeNumbering: true}
}

const defaultNamespace = "https://www.w3.org/2009/XMLSchema/XMLSchema.xsd"

type xmlElement struct {
	tag      string
	attrs    []xml.Attr
	text     string
	children []*xmlElement
}

func (p *XMLParser) Parse(target *dict.Dict, text string) (*dict.Dict, error) {
	parsed := dict.New()
	parsed.Session = target.Session
	parsed.SetSourceFile(target.SourceFile())

	root, err := decodeXML(text)
	if err != nil {
		return nil, fmt.Errorf("parsing XML dict: %w", err)
	}

	namespaces := ir.NewMap()
	rootAttributes := ir.NewMap()
	for _, a := range root.attrs {
		switch {
		case a.Name.Space == "xmlns":
			namespaces.Set(ir.StringKey(a.Name.Local), ir.FromString(a.Value))
		case a.Name.Local == "xmlns":
			namespaces.Set(ir.StringKey("None"), ir.FromString(a.Value))
		default:
			rootAttributes.Set(ir.StringKey(a.Name.Local), ir.FromString(a.Value))
		}
	}
	if namespaces.Len() == 0 {
		namespaces.Set(ir.StringKey("xs"), ir.FromString(defaultNamespace))
	}

	parsed.Root = p.parseNodes(parsed.Session, root)

	opts := ir.NewMap()
	opts.Set(ir.StringKey("_nameSpaces"), namespaces)
	opts.Set(ir.StringKey("_rootTag"), ir.FromString(root.tag))
	opts.Set(ir.StringKey("_rootAttributes"), rootAttributes)
	opts.Set(ir.StringKey("_addNodeNumbering"), ir.FromBool(p.AddNodeNumbering))
	parsed.Root.Set(ir.StringKey("_xmlOpts"), opts)

	target.Merge(parsed)
	return parsed, nil
}

func decodeXML(text string) (*xmlElement, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	var stack []*xmlElement
	var root *xmlElement
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &xmlElement{tag: t.Name.Local}
			el.attrs = append(el.attrs, t.Attr...)
			if len(stack) == 0 {
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text += string(t)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("no root element")
	}
	return root, nil
}

var blankRx = regexp.MustCompile(`^[\s\n\r]*$`)

func (p *XMLParser) parseNodes(session *placeholder.Session, el *xmlElement) *ir.Node {
	m := ir.NewMap()
	for _, child := range el.children {
		tag := child.tag
		if p.AddNodeNumbering {
			tag = fmt.Sprintf("%06d_%s", session.Next(), tag)
		}
		key := ir.StringKey(tag)

		var value *ir.Node
		switch {
		case len(child.children) > 0:
			value = p.parseNodes(session, child)
		case blankRx.MatchString(child.text):
			// Attributes may still attach to an empty node, so it
			// gets a dict even without content.
			value = ir.NewMap()
		default:
			value = ir.NewMap()
			value.Set(ir.StringKey("_content"), ir.FromString(stripIndentation(child.text)))
		}

		if len(child.attrs) > 0 {
			attrs := ir.NewMap()
			for _, a := range child.attrs {
				if a.Value == "" {
					continue
				}
				attrs.Set(ir.StringKey(a.Name.Local), ir.FromString(a.Value))
			}
			value.Set(ir.StringKey("_attributes"), attrs)
		}
		m.Set(key, value)
	}
	coerceStrings(m)
	return m
}

// stripIndentation drops the per-line indentation the XML text
// attribute carries for multiline content.
func stripIndentation(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// coerceStrings re-parses every string scalar in the tree so that
// numbers and boolean words read from XML text come back typed.
func coerceStrings(n *ir.Node) {
	for i, v := range n.Values {
		switch v.Type {
		case ir.MapType, ir.SeqType:
			coerceStrings(v)
		case ir.StringType:
			n.Values[i] = ParseValue(v.Str)
		}
	}
}

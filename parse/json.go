package parse

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sdict-format/go-sdict/dict"
	"github.com/sdict-format/go-sdict/ir"
	"github.com/sdict-format/go-sdict/placeholder"
)

// JSONParser deserializes JSON dictionary files. Include directives
// are JSON keys spelled "#include" with the file name as value;
// string values containing $references become expression placeholders,
// just as in the native format.
type JSONParser struct {
	config *config
}

func NewJSONParser(opts ...Option) *JSONParser {
	return &JSONParser{config: newConfig(opts)}
}

func (p *JSONParser) Parse(target *dict.Dict, text string) (*dict.Dict, error) {
	parsed := dict.New()
	parsed.Session = target.Session
	parsed.SetSourceFile(target.SourceFile())

	root, err := decodeJSON(text)
	if err != nil {
		return nil, fmt.Errorf("parsing JSON dict: %w", err)
	}
	parsed.Root = root

	extractJSONIncludes(parsed)
	extractTreeExpressions(parsed.Reg, parsed.Session, parsed.Root)

	target.Merge(parsed)
	return parsed, nil
}

// decodeJSON builds the tree off the raw token stream rather than
// Unmarshal, since Go maps would lose the key order of the document.
func decodeJSON(text string) (*ir.Node, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return nil, fmt.Errorf("expected top-level object, got %v", tok)
	}
	return decodeJSONObject(dec)
}

func decodeJSONObject(dec *json.Decoder) (*ir.Node, error) {
	m := ir.NewMap()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		v, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		m.Set(ir.StringKey(key), v)
	}
	_, err := dec.Token()
	return m, err
}

func decodeJSONArray(dec *json.Decoder) (*ir.Node, error) {
	s := ir.NewSeq()
	for dec.More() {
		v, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		s.Append(v)
	}
	_, err := dec.Token()
	return s, err
}

func decodeJSONValue(dec *json.Decoder) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %v", v)
	case string:
		return ir.FromString(v), nil
	case bool:
		return ir.FromBool(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return ir.FromInt(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return ir.FromFloat(f), nil
	case nil:
		return ir.Null(), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// extractJSONIncludes turns top-level "#include" keys into include
// placeholder entries and moves the placeholders to the front of the
// document, where directives belong.
func extractJSONIncludes(d *dict.Dict) {
	var placeholderKeys []string
	keys := make([]ir.Key, len(d.Root.Keys))
	copy(keys, d.Root.Keys)
	for _, key := range keys {
		if key.IsInt || !includeRx.MatchString(key.Str) {
			continue
		}
		v, _ := d.Root.Get(key)
		name := trimQuotes(v.Text())
		id := d.Session.Next()
		d.Reg.Includes[id] = placeholder.IncludeEntry{
			Directive: fmt.Sprintf("#include '%s'", strings.ReplaceAll(name, `\`, `\\`)),
			Name:      name,
			Path:      filepath.Join(d.Dir(), name),
		}
		placeholderKeys = append(placeholderKeys, placeholder.Name(placeholder.Include, id))
		d.Root.Delete(key)
	}
	if len(placeholderKeys) == 0 {
		return
	}
	rest := d.Root
	d.Root = ir.NewMap()
	for _, k := range placeholderKeys {
		d.Root.Set(ir.StringKey(k), ir.FromString(k))
	}
	for i, k := range rest.Keys {
		d.Root.Set(k, rest.Values[i])
	}
}

var wholeReferenceRx = regexp.MustCompile(`^\s*(\$\w[\w\[\]]*)\s*$`)

// extractTreeExpressions walks an already typed tree and lifts
// expressions out of its string values. A value that is nothing but a
// single $reference registers the reference; any other string
// containing a reference registers the whole trimmed string as an
// expression.
func extractTreeExpressions(reg *placeholder.Registry, session *placeholder.Session, n *ir.Node) {
	for i, v := range n.Values {
		if v.Type == ir.MapType || v.Type == ir.SeqType {
			extractTreeExpressions(reg, session, v)
			continue
		}
		if v.Type != ir.StringType || ParseValue(v.Str).Type != ir.StringType {
			continue
		}
		if s, changed := extractExpression(reg, session, v.Str); changed {
			n.Values[i] = ir.FromString(s)
		}
	}
}

func extractExpression(reg *placeholder.Registry, session *placeholder.Session, s string) (string, bool) {
	if !referenceRx.MatchString(s) {
		return s, false
	}
	expr := strings.TrimSpace(s)
	if m := wholeReferenceRx.FindStringSubmatch(s); m != nil {
		expr = m[1]
	}
	id := session.Next()
	name := placeholder.Name(placeholder.Expression, id)
	reg.Expressions[id] = placeholder.ExprEntry{Name: name, Expr: expr}
	return strings.ReplaceAll(s, expr, name), true
}

var (
	includeRx   = regexp.MustCompile(`^\s*#\s*include`)
	referenceRx = regexp.MustCompile(`\$\w[\w\[\]]*`)
)

package encode

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/sdict-format/go-sdict/dict"
	"github.com/sdict-format/go-sdict/ir"
	"github.com/sdict-format/go-sdict/placeholder"
)

// JSONEncoder serializes a dictionary as JSON with four space
// indentation. Include placeholder entries come out as "#includeNNNNNN"
// keys carrying the include file name. The tree is marshalled by hand
// since Go maps would not keep the document's key order.
type JSONEncoder struct{}

func NewJSONEncoder() *JSONEncoder {
	return &JSONEncoder{}
}

func (e *JSONEncoder) String(d *dict.Dict) (string, error) {
	var sb strings.Builder
	if err := writeJSON(&sb, d.Root, 0); err != nil {
		return "", err
	}
	return insertJSONIncludes(d, sb.String()), nil
}

func writeJSON(sb *strings.Builder, n *ir.Node, level int) error {
	indent := strings.Repeat(" ", tabLen*level)
	inner := strings.Repeat(" ", tabLen*(level+1))
	switch n.Type {
	case ir.MapType:
		if len(n.Keys) == 0 {
			sb.WriteString("{}")
			return nil
		}
		sb.WriteString("{")
		for i, k := range n.Keys {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
			sb.WriteString(inner)
			key, err := json.Marshal(k.String())
			if err != nil {
				return err
			}
			sb.Write(key)
			sb.WriteString(":")
			if err := writeJSON(sb, n.Values[i], level+1); err != nil {
				return err
			}
		}
		sb.WriteString("\n")
		sb.WriteString(indent)
		sb.WriteString("}")
	case ir.SeqType:
		if len(n.Values) == 0 {
			sb.WriteString("[]")
			return nil
		}
		sb.WriteString("[")
		for i, v := range n.Values {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
			sb.WriteString(inner)
			if err := writeJSON(sb, v, level+1); err != nil {
				return err
			}
		}
		sb.WriteString("\n")
		sb.WriteString(indent)
		sb.WriteString("]")
	default:
		b, err := json.Marshal(n.Interface())
		if err != nil {
			return fmt.Errorf("marshalling %s: %w", n.Text(), err)
		}
		sb.Write(b)
	}
	return nil
}

func insertJSONIncludes(d *dict.Dict, s string) string {
	for _, id := range sortedIncludeIDs(d.Reg.Includes) {
		name := placeholder.Name(placeholder.Include, id)
		rx := regexp.MustCompile(`"` + name + `"\s*:\s*"` + name + `"`)
		escaped := strings.ReplaceAll(d.Reg.Includes[id].Name, `\`, `\\`)
		directive := fmt.Sprintf(`"#include%06d":"%s"`, id, escaped)
		s = rx.ReplaceAllLiteralString(s, directive)
	}
	return s
}

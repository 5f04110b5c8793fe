package resolve

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sdict-format/go-sdict/ir"
)

var (
	referenceRx = regexp.MustCompile(`\$\w[\w\[\]]*`)
	indexTailRx = regexp.MustCompile(`\[.+\]$`)
	refNameRx   = regexp.MustCompile(`(^\$|\[.+$)`)
	indexRx     = regexp.MustCompile(`\[(\d+)\]`)
)

// resolveReference looks up a single $reference in the variables
// table. References can chain: when the referenced value itself
// contains a $, it is followed until a plain value is reached. An
// index suffix like $field[2] selects from a sequence variable; if
// indexing fails, the unindexed value is kept. Returns nil when the
// reference cannot be resolved.
func resolveReference(reference string, vars map[string]*ir.Node) *ir.Node {
	indexing := indexTailRx.FindString(reference)
	name := refNameRx.ReplaceAllString(reference, "")

	value, ok := vars[name]
	if !ok {
		return nil
	}
	changed := false
	for value != nil && strings.Contains(renderValue(value), "$") {
		reference = renderValue(value)
		changed = true
		value = resolveReference(reference, vars)
	}
	if changed {
		name = refNameRx.ReplaceAllString(reference, "")
	}
	if indexing != "" {
		if indexed, ok := applyIndexing(vars[name], indexing); ok {
			value = indexed
		}
	}
	return value
}

// applyIndexing walks a chain of [i] selectors through nested
// sequences.
func applyIndexing(value *ir.Node, indexing string) (*ir.Node, bool) {
	if value == nil {
		return nil, false
	}
	for _, m := range indexRx.FindAllStringSubmatch(indexing, -1) {
		i, err := strconv.Atoi(m[1])
		if err != nil || value.Type != ir.SeqType || i < 0 || i >= len(value.Values) {
			return nil, false
		}
		value = value.Values[i]
	}
	return value, true
}

// renderValue renders a value the way it is spliced into expression
// text: booleans and null as expression literals, numbers bare,
// strings as their raw text, sequences in bracket syntax.
func renderValue(n *ir.Node) string {
	switch n.Type {
	case ir.SeqType:
		elems := make([]string, len(n.Values))
		for i, v := range n.Values {
			elems[i] = renderValue(v)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case ir.NullType:
		return "nil"
	default:
		return n.Text()
	}
}

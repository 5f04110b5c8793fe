package dict

import (
	"strings"

	"github.com/sdict-format/go-sdict/ir"
	"github.com/sdict-format/go-sdict/placeholder"
)

// Update replaces top-level keys of d with those of other, the way a
// plain map update would. Nested content under a colliding key is
// substituted wholesale, not merged. Registry entries follow with
// last-writer-wins on colliding IDs.
func (d *Dict) Update(other *Dict) {
	for i, k := range other.Root.Keys {
		d.Root.Set(k, other.Root.Values[i])
	}
	d.Reg.Update(other.Reg)
	d.Clean()
}

// Merge merges other into d recursively. In contrast to Update, nested
// maps are descended into and combined, so nested keys present only in
// d survive. Existing keys are not overwritten, with one exception:
// a leftover value that still references its own key (the residue of an
// unresolvable expression) yields to the incoming value. Registry
// entries merge without overwriting.
func (d *Dict) Merge(other *Dict) {
	mergeNodes(d.Root, other.Root, d.Reg)
	d.Reg.Merge(other.Reg)
	d.Clean()
}

func mergeNodes(target, src *ir.Node, reg *placeholder.Registry) {
	for i, key := range src.Keys {
		srcVal := src.Values[i]
		if cur, ok := target.Get(key); ok {
			if cur.Type == ir.MapType && srcVal.Type == ir.MapType {
				mergeNodes(cur, srcVal, reg)
				continue
			}
			if !circularLeftover(key, cur, reg) {
				continue
			}
		}
		target.Set(key, srcVal)
	}
}

// circularLeftover reports whether value is a self-referential string
// left behind by an expression that could never resolve, detected as
// the key's own name occurring in the (expression-substituted) value
// text.
func circularLeftover(key ir.Key, value *ir.Node, reg *placeholder.Registry) bool {
	if key.IsInt || value.Type != ir.StringType {
		return false
	}
	return strings.Contains(insertExpression(value, reg).Str, key.Str)
}

// insertExpression substitutes an expression placeholder value with the
// raw expression text it stands for, so that self-references become
// visible to circularLeftover and Variables. Non-placeholder values
// pass through unchanged.
func insertExpression(value *ir.Node, reg *placeholder.Registry) *ir.Node {
	if value.Type != ir.StringType {
		return value
	}
	id, ok := placeholder.FindID(value.Str, placeholder.Expression)
	if !ok {
		return value
	}
	if e, ok := reg.Expressions[id]; ok {
		return ir.FromString(e.Expr)
	}
	return value
}

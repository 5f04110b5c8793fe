package dict

import "github.com/sdict-format/go-sdict/ir"

// Variables returns a flattened lookup table of all variables in the
// dictionary: every string-keyed entry anywhere in the tree, keyed by
// its local name. Expression placeholder values are substituted with
// their raw expression text. Entries whose (substituted) value still
// contains their own key name are self-referential leftovers and are
// skipped. Sequence elements carry no name and are never added, but
// maps nested inside sequences are descended into.
func (d *Dict) Variables() map[string]*ir.Node {
	vars := map[string]*ir.Node{}
	d.collectVariables(d.Root, vars)
	return vars
}

func (d *Dict) collectVariables(m *ir.Node, vars map[string]*ir.Node) {
	for i, key := range m.Keys {
		value := m.Values[i]
		switch {
		case value.Type == ir.MapType:
			d.collectVariables(value, vars)
		case value.Type == ir.SeqType && seqContainsMap(value):
			d.collectVariablesFromSeq(value, vars)
		}
		if key.IsInt {
			continue
		}
		if value.Type == ir.SeqType {
			vars[key.Str] = value
			continue
		}
		v := insertExpression(value, d.Reg)
		if !circularLeftover(key, v, d.Reg) {
			vars[key.Str] = v
		}
	}
}

func (d *Dict) collectVariablesFromSeq(s *ir.Node, vars map[string]*ir.Node) {
	for _, v := range s.Values {
		switch v.Type {
		case ir.MapType:
			d.collectVariables(v, vars)
		case ir.SeqType:
			d.collectVariablesFromSeq(v, vars)
		}
	}
}

func seqContainsMap(s *ir.Node) bool {
	for _, v := range s.Values {
		switch v.Type {
		case ir.MapType:
			return true
		case ir.SeqType:
			if seqContainsMap(v) {
				return true
			}
		}
	}
	return false
}

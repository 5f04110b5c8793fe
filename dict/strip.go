package dict

import (
	"github.com/sdict-format/go-sdict/ir"
	"github.com/sdict-format/go-sdict/placeholder"
)

// StripComments removes every comment placeholder entry from the tree
// and empties the comment registries. The result serializes without
// any comments.
func (d *Dict) StripComments() {
	stripKind(d.Root, placeholder.BlockComment)
	stripKind(d.Root, placeholder.LineComment)
	clear(d.Reg.BlockComments)
	clear(d.Reg.LineComments)
}

// StripIncludes removes every include placeholder entry from the tree
// and empties the include registry. The included content itself, if it
// was merged in, stays.
func (d *Dict) StripIncludes() {
	stripKind(d.Root, placeholder.Include)
	clear(d.Reg.Includes)
}

func stripKind(n *ir.Node, kind placeholder.Kind) {
	switch n.Type {
	case ir.MapType:
		for i := 0; i < len(n.Keys); {
			if !n.Keys[i].IsInt && placeholder.IsName(n.Keys[i].Str, kind) {
				n.Keys = append(n.Keys[:i], n.Keys[i+1:]...)
				n.Values = append(n.Values[:i], n.Values[i+1:]...)
				continue
			}
			stripKind(n.Values[i], kind)
			i++
		}
	case ir.SeqType:
		for _, v := range n.Values {
			stripKind(v, kind)
		}
	}
}

package dict

import (
	"github.com/sdict-format/go-sdict/ir"
	"github.com/sdict-format/go-sdict/placeholder"
)

// Clean removes doublettes of block comment, include and line comment
// placeholder keys. Doublettes are identified per nest level through
// equality of their registry entries, never across levels. Both the key
// and its registry entry are dropped, so repeated merges of the same
// include tree do not accumulate copies of its comments and directives.
func (d *Dict) Clean() {
	cleanRecursive(d.Root, d.Reg)
}

// cleanRecursive descends through map values only. Maps nested inside
// sequences keep their entries untouched.
func cleanRecursive(data *ir.Node, reg *placeholder.Registry) {
	cleanLevel(data, reg)
	for _, v := range data.Values {
		if v.Type == ir.MapType {
			cleanRecursive(v, reg)
		}
	}
}

func cleanLevel(data *ir.Node, reg *placeholder.Registry) {
	var blockComments, includes, lineComments []string
	for _, k := range data.Keys {
		if k.IsInt {
			continue
		}
		switch {
		case placeholder.IsName(k.Str, placeholder.BlockComment):
			blockComments = append(blockComments, k.Str)
		case placeholder.IsName(k.Str, placeholder.Include):
			includes = append(includes, k.Str)
		case placeholder.IsName(k.Str, placeholder.LineComment):
			lineComments = append(lineComments, k.Str)
		}
	}

	seenBlock := map[string]bool{}
	for _, key := range blockComments {
		id, _ := placeholder.ID(key, placeholder.BlockComment)
		text, ok := reg.BlockComments[id]
		if !ok {
			continue
		}
		if seenBlock[text] {
			data.Delete(ir.StringKey(key))
			delete(reg.BlockComments, id)
		} else {
			seenBlock[text] = true
		}
	}
	seenInclude := map[placeholder.IncludeEntry]bool{}
	for _, key := range includes {
		id, _ := placeholder.ID(key, placeholder.Include)
		entry, ok := reg.Includes[id]
		if !ok {
			continue
		}
		if seenInclude[entry] {
			data.Delete(ir.StringKey(key))
			delete(reg.Includes, id)
		} else {
			seenInclude[entry] = true
		}
	}
	seenLine := map[string]bool{}
	for _, key := range lineComments {
		id, _ := placeholder.ID(key, placeholder.LineComment)
		text, ok := reg.LineComments[id]
		if !ok {
			continue
		}
		if seenLine[text] {
			data.Delete(ir.StringKey(key))
			delete(reg.LineComments, id)
		} else {
			seenLine[text] = true
		}
	}
}

package ir

import (
	"fmt"
	"regexp"
	"sort"
)

// GlobalKey addresses a node anywhere in a dictionary tree as the
// sequence of keys leading to it from the root. Sequence levels are
// addressed with integer keys.
type GlobalKey []Key

func (gk GlobalKey) String() string {
	s := ""
	for i, k := range gk {
		if i > 0 {
			s += "."
		}
		s += k.String()
	}
	return s
}

// maxSetDepth bounds SetGlobalKey. Deeper keys are rejected rather
// than followed.
const maxSetDepth = 10

// FindGlobalKey returns the path to the first scalar value whose text
// matches query. Map entries are tried in sorted key order, integer
// keys before string keys, so the result is deterministic regardless
// of insertion order. Returns nil if nothing matches.
func FindGlobalKey(n *Node, query *regexp.Regexp) GlobalKey {
	switch n.Type {
	case MapType:
		idx := make([]int, len(n.Keys))
		for i := range idx {
			idx[i] = i
		}
		sort.Slice(idx, func(a, b int) bool {
			return n.Keys[idx[a]].Less(n.Keys[idx[b]])
		})
		for _, i := range idx {
			if gk := findIn(n.Keys[i], n.Values[i], query); gk != nil {
				return gk
			}
		}
	case SeqType:
		for i, v := range n.Values {
			if gk := findIn(IntKey(int64(i)), v, query); gk != nil {
				return gk
			}
		}
	}
	return nil
}

func findIn(key Key, v *Node, query *regexp.Regexp) GlobalKey {
	switch v.Type {
	case MapType, SeqType:
		if sub := FindGlobalKey(v, query); sub != nil {
			return append(GlobalKey{key}, sub...)
		}
	default:
		if query.MatchString(v.Text()) {
			return GlobalKey{key}
		}
	}
	return nil
}

// SetGlobalKey sets the node addressed by gk to value. Every level but
// the last must already exist and be a container; sequence levels need
// integer keys. Keys deeper than maxSetDepth are rejected.
func SetGlobalKey(root *Node, gk GlobalKey, value *Node) error {
	if len(gk) == 0 {
		return nil
	}
	if len(gk) > maxSetDepth {
		return fmt.Errorf("%w: global key %v exceeds %d levels", ErrAddressing, gk, maxSetDepth)
	}
	node := root
	for _, key := range gk[:len(gk)-1] {
		next, err := step(node, key)
		if err != nil {
			return fmt.Errorf("%w: global key %v", err, gk)
		}
		if next.Type != MapType && next.Type != SeqType {
			return fmt.Errorf("%w: global key %v hits scalar at %v", ErrAddressing, gk, key)
		}
		node = next
	}
	last := gk[len(gk)-1]
	switch node.Type {
	case MapType:
		node.Set(last, value)
	case SeqType:
		if !last.IsInt || last.Int < 0 || last.Int >= int64(len(node.Values)) {
			return fmt.Errorf("%w: global key %v: bad sequence index %v", ErrAddressing, gk, last)
		}
		node.Values[last.Int] = value
	default:
		return fmt.Errorf("%w: global key %v hits scalar", ErrAddressing, gk)
	}
	return nil
}

func step(node *Node, key Key) (*Node, error) {
	switch node.Type {
	case MapType:
		if v, ok := node.Get(key); ok {
			return v, nil
		}
		return nil, fmt.Errorf("%w: key %v", ErrNotFound, key)
	case SeqType:
		if !key.IsInt {
			return nil, fmt.Errorf("%w: sequence index %v", ErrAddressing, key)
		}
		if key.Int < 0 || key.Int >= int64(len(node.Values)) {
			return nil, fmt.Errorf("%w: index %d out of range", ErrNotFound, key.Int)
		}
		return node.Values[key.Int], nil
	}
	return nil, ErrStructure
}

// GlobalKeyExists reports whether gk addresses an existing map chain in
// root: every key along the path must resolve, and every resolved
// value must itself be a map.
func GlobalKeyExists(root *Node, gk GlobalKey) bool {
	node := root
	for _, key := range gk {
		next, ok := node.Get(key)
		if !ok || next.Type != MapType {
			return false
		}
		node = next
	}
	return true
}

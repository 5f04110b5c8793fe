package ir

import "sort"

// OrderKeys sorts the entries of every map in the tree rooted at n,
// recursively, integer keys before string keys. Sequences keep their
// element order; maps nested in sequence elements are not reordered,
// matching the scope of dictionary-level sorting.
func OrderKeys(n *Node) {
	if n == nil || n.Type != MapType {
		return
	}
	type entry struct {
		k Key
		v *Node
	}
	entries := make([]entry, len(n.Keys))
	for i := range n.Keys {
		entries[i] = entry{n.Keys[i], n.Values[i]}
	}
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].k.Less(entries[b].k)
	})
	for i, e := range entries {
		n.Keys[i] = e.k
		n.Values[i] = e.v
		OrderKeys(e.v)
	}
}

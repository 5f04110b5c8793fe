package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Key is a single element of a map key path. Dictionary keys are
// strings or integers; integer keys sort before string keys and are
// kept distinct so that round trips preserve them.
type Key struct {
	Str   string
	Int   int64
	IsInt bool
}

func StringKey(s string) Key {
	return Key{Str: s}
}

func IntKey(i int64) Key {
	return Key{Int: i, IsInt: true}
}

func (k Key) String() string {
	if k.IsInt {
		return strconv.FormatInt(k.Int, 10)
	}
	return k.Str
}

func (k Key) Equal(o Key) bool {
	if k.IsInt != o.IsInt {
		return false
	}
	if k.IsInt {
		return k.Int == o.Int
	}
	return k.Str == o.Str
}

// Less orders keys for deterministic traversal: integer keys first in
// numeric order, then string keys lexicographically.
func (k Key) Less(o Key) bool {
	if k.IsInt != o.IsInt {
		return k.IsInt
	}
	if k.IsInt {
		return k.Int < o.Int
	}
	return k.Str < o.Str
}

// Node is a closed tagged variant over the dictionary value types. For
// MapType, Keys and Values are parallel slices preserving insertion
// order; for SeqType only Values is used. Scalar variants populate
// exactly one of the scalar slots according to Type.
type Node struct {
	Type    Type
	Keys    []Key
	Values  []*Node
	Str     string
	Bool    bool
	Int64   *int64
	Float64 *float64
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: IntType, Int64: &v}
}

func FromFloat(v float64) *Node {
	return &Node{Type: FloatType, Float64: &v}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, Str: v}
}

func NewMap() *Node {
	return &Node{Type: MapType}
}

func NewSeq() *Node {
	return &Node{Type: SeqType}
}

// FromSlice builds a SeqType node over elts without copying them.
func FromSlice(elts []*Node) *Node {
	return &Node{Type: SeqType, Values: elts}
}

// Index returns the position of key in a MapType node, or -1.
func (n *Node) Index(key Key) int {
	for i, k := range n.Keys {
		if k.Equal(key) {
			return i
		}
	}
	return -1
}

// Get looks up key in a MapType node.
func (n *Node) Get(key Key) (*Node, bool) {
	if n.Type != MapType {
		return nil, false
	}
	if i := n.Index(key); i != -1 {
		return n.Values[i], true
	}
	return nil, false
}

// Set inserts or replaces key in a MapType node, preserving the
// insertion order of existing keys.
func (n *Node) Set(key Key, v *Node) {
	if i := n.Index(key); i != -1 {
		n.Values[i] = v
		return
	}
	n.Keys = append(n.Keys, key)
	n.Values = append(n.Values, v)
}

// Delete removes key from a MapType node if present.
func (n *Node) Delete(key Key) bool {
	i := n.Index(key)
	if i == -1 {
		return false
	}
	n.Keys = append(n.Keys[:i], n.Keys[i+1:]...)
	n.Values = append(n.Values[:i], n.Values[i+1:]...)
	return true
}

// Append adds an element to a SeqType node.
func (n *Node) Append(v *Node) {
	n.Values = append(n.Values, v)
}

// Len returns the number of entries (map) or elements (seq).
func (n *Node) Len() int {
	return len(n.Values)
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	res := &Node{Type: n.Type, Str: n.Str, Bool: n.Bool}
	if n.Int64 != nil {
		v := *n.Int64
		res.Int64 = &v
	}
	if n.Float64 != nil {
		v := *n.Float64
		res.Float64 = &v
	}
	if n.Keys != nil {
		res.Keys = make([]Key, len(n.Keys))
		copy(res.Keys, n.Keys)
	}
	if n.Values != nil {
		res.Values = make([]*Node, len(n.Values))
		for i, v := range n.Values {
			res.Values[i] = v.Clone()
		}
	}
	return res
}

// Equal reports deep structural equality, including map entry order.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Type != o.Type || len(n.Values) != len(o.Values) {
		return false
	}
	switch n.Type {
	case NullType:
		return true
	case BoolType:
		return n.Bool == o.Bool
	case IntType:
		return *n.Int64 == *o.Int64
	case FloatType:
		return *n.Float64 == *o.Float64
	case StringType:
		return n.Str == o.Str
	case MapType:
		for i, k := range n.Keys {
			if !k.Equal(o.Keys[i]) {
				return false
			}
			if !n.Values[i].Equal(o.Values[i]) {
				return false
			}
		}
		return true
	case SeqType:
		for i, v := range n.Values {
			if !v.Equal(o.Values[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Text renders a scalar node the way it appears in a dictionary body.
// Container nodes render a short structural summary, which is enough
// for diagnostics.
func (n *Node) Text() string {
	switch n.Type {
	case NullType:
		return "NULL"
	case BoolType:
		if n.Bool {
			return "true"
		}
		return "false"
	case IntType:
		return strconv.FormatInt(*n.Int64, 10)
	case FloatType:
		return strconv.FormatFloat(*n.Float64, 'g', -1, 64)
	case StringType:
		return n.Str
	case MapType:
		return fmt.Sprintf("{%d}", len(n.Keys))
	case SeqType:
		return fmt.Sprintf("(%d)", len(n.Values))
	}
	return ""
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.Type.IsScalar() {
		return n.Text()
	}
	var sb strings.Builder
	n.describe(&sb)
	return sb.String()
}

func (n *Node) describe(sb *strings.Builder) {
	switch n.Type {
	case MapType:
		sb.WriteByte('{')
		for i, k := range n.Keys {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(k.String())
			sb.WriteByte(' ')
			n.Values[i].describe(sb)
			sb.WriteByte(';')
		}
		sb.WriteByte('}')
	case SeqType:
		sb.WriteByte('(')
		for i, v := range n.Values {
			if i > 0 {
				sb.WriteByte(' ')
			}
			v.describe(sb)
		}
		sb.WriteByte(')')
	default:
		sb.WriteString(n.Text())
	}
}

// Visit walks n depth first, calling fn for every node. Map values are
// visited in entry order. Returning false from fn stops the walk.
func (n *Node) Visit(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, v := range n.Values {
		if !v.Visit(fn) {
			return false
		}
	}
	return true
}

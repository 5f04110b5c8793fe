package ir

import "fmt"

// Interface converts n to plain Go values: map[string]any for maps,
// []any for sequences, and the scalar itself otherwise. Integer map
// keys are rendered as their decimal strings.
func (n *Node) Interface() any {
	switch n.Type {
	case NullType:
		return nil
	case BoolType:
		return n.Bool
	case IntType:
		return *n.Int64
	case FloatType:
		return *n.Float64
	case StringType:
		return n.Str
	case SeqType:
		vals := make([]any, len(n.Values))
		for i, v := range n.Values {
			vals[i] = v.Interface()
		}
		return vals
	case MapType:
		m := make(map[string]any, len(n.Keys))
		for i, k := range n.Keys {
			m[k.String()] = n.Values[i].Interface()
		}
		return m
	}
	return nil
}

// FromInterface converts plain Go values into a Node. Numeric types
// narrow to int64 or float64.
func FromInterface(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return FromInt(int64(x)), nil
	case uint64:
		return FromInt(int64(x)), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case string:
		return FromString(x), nil
	case []any:
		s := NewSeq()
		for _, e := range x {
			n, err := FromInterface(e)
			if err != nil {
				return nil, err
			}
			s.Append(n)
		}
		return s, nil
	case map[string]any:
		m := NewMap()
		for k, e := range x {
			n, err := FromInterface(e)
			if err != nil {
				return nil, err
			}
			m.Set(StringKey(k), n)
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: cannot convert %T", ErrStructure, v)
}

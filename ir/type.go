package ir

// Type discriminates the variants of Node.
type Type int

const (
	NullType Type = iota
	BoolType
	IntType
	FloatType
	StringType
	SeqType
	MapType
)

var typeNames = map[Type]string{
	NullType:   "null",
	BoolType:   "bool",
	IntType:    "int",
	FloatType:  "float",
	StringType: "string",
	SeqType:    "seq",
	MapType:    "map",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "unknown"
}

// IsScalar reports whether t is a leaf type.
func (t Type) IsScalar() bool {
	switch t {
	case NullType, BoolType, IntType, FloatType, StringType:
		return true
	}
	return false
}

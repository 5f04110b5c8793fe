package ir

import "errors"

var (
	// ErrNotFound indicates a global key did not match anything.
	ErrNotFound = errors.New("not found")
	// ErrStructure indicates a node had the wrong variant for an
	// operation, such as indexing a scalar.
	ErrStructure = errors.New("structure")
	// ErrAddressing indicates a global key was too deep or stepped
	// through a sequence without an integer index.
	ErrAddressing = errors.New("addressing")
)

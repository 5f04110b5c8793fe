package sdict

import (
	"github.com/sdict-format/go-sdict/dict"
	"github.com/sdict-format/go-sdict/encode"
	"github.com/sdict-format/go-sdict/textdiff"
)

// Equal reports whether two dictionaries serialize to the same native
// representation.
func Equal(a, b *dict.Dict) (bool, error) {
	enc := encode.NewNativeEncoder()
	as, err := enc.String(a)
	if err != nil {
		return false, err
	}
	bs, err := enc.String(b)
	if err != nil {
		return false, err
	}
	return as == bs, nil
}

// Diff renders a line diff between the native serializations of two
// dictionaries. An empty result means the dictionaries are equal.
func Diff(a, b *dict.Dict) (string, error) {
	enc := encode.NewNativeEncoder()
	as, err := enc.String(a)
	if err != nil {
		return "", err
	}
	bs, err := enc.String(b)
	if err != nil {
		return "", err
	}
	diffs := textdiff.Lines(as, bs)
	if !textdiff.Changed(diffs) {
		return "", nil
	}
	return textdiff.Unified(diffs), nil
}

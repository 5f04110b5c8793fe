// Package encode serializes dictionaries back to text: the native
// format, its OpenFOAM restriction, JSON and XML.
package encode

import (
	"github.com/sdict-format/go-sdict/dict"
	"github.com/sdict-format/go-sdict/format"
)

// Encoder serializes a dictionary into its textual representation.
type Encoder interface {
	String(d *dict.Dict) (string, error)
}

// ForFormat returns the encoder for f.
func ForFormat(f format.Format) Encoder {
	switch {
	case f.IsFoam():
		return NewFoamEncoder()
	case f.IsJSON():
		return NewJSONEncoder()
	case f.IsXML():
		return NewXMLEncoder()
	default:
		return NewNativeEncoder()
	}
}

// ForPath returns the encoder matching the file extension of path.
func ForPath(path string) Encoder {
	return ForFormat(format.ForPath(path))
}

package format

import (
	"errors"
	"fmt"
	"path/filepath"
)

type Format int

const (
	NativeFormat Format = iota
	FoamFormat
	JSONFormat
	XMLFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"n":      NativeFormat,
		"native": NativeFormat,
		"cpp":    NativeFormat,
		"f":      FoamFormat,
		"foam":   FoamFormat,
		"j":      JSONFormat,
		"json":   JSONFormat,
		"x":      XMLFormat,
		"xml":    XMLFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

// ForPath selects the format by file extension. Files with suffix ".foam"
// are Foam dictionaries, ".json" is JSON, ".xml" and OSP ".ssd" are XML.
// Everything else (including extensionless files and ".cpp") is native.
func ForPath(path string) Format {
	switch filepath.Ext(path) {
	case ".foam":
		return FoamFormat
	case ".json":
		return JSONFormat
	case ".xml", ".ssd":
		return XMLFormat
	default:
		return NativeFormat
	}
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case NativeFormat:
		return []byte("native"), nil
	case FoamFormat:
		return []byte("foam"), nil
	case JSONFormat:
		return []byte("json"), nil
	case XMLFormat:
		return []byte("xml"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsNative() bool { return f == NativeFormat }
func (f Format) IsFoam() bool   { return f == FoamFormat }
func (f Format) IsJSON() bool   { return f == JSONFormat }
func (f Format) IsXML() bool    { return f == XMLFormat }

// Suffix returns the file extension for this format (including the dot).
// The native format has no conventional extension.
func (f Format) Suffix() string {
	switch f {
	case FoamFormat:
		return ".foam"
	case JSONFormat:
		return ".json"
	case XMLFormat:
		return ".xml"
	default:
		return ""
	}
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{NativeFormat, FoamFormat, JSONFormat, XMLFormat}
}

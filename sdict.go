// Package sdict reads and writes structured dictionary files.
//
// # Usage
//
//	// Read a dictionary, resolving includes and expressions
//	d, err := sdict.Read("case/controlDict")
//
//	// Write it back out in a different format
//	err = sdict.Write(d, "parsed.controlDict.json")
//
// The on disk formats are the native C++ dictionary style format, its
// OpenFOAM variant, JSON and XML. Parsing detects the format from the
// file suffix.
package sdict

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sdict-format/go-sdict/dict"
	"github.com/sdict-format/go-sdict/encode"
	"github.com/sdict-format/go-sdict/format"
	"github.com/sdict-format/go-sdict/ir"
	"github.com/sdict-format/go-sdict/parse"
	"github.com/sdict-format/go-sdict/resolve"
)

type ReadConfig struct {
	Includes bool
	Comments bool
	Order    bool
	Scope    []ir.Key
}

type ReadOpt func(*ReadConfig)

// WithIncludes controls whether included dictionaries are read and
// merged. When false, include directives are stripped from the result.
func WithIncludes(v bool) ReadOpt {
	return func(c *ReadConfig) { c.Includes = v }
}

// WithComments controls whether comments are carried into the result.
func WithComments(v bool) ReadOpt {
	return func(c *ReadConfig) { c.Comments = v }
}

// WithOrder sorts the dictionary's keys recursively after reading.
func WithOrder(v bool) ReadOpt {
	return func(c *ReadConfig) { c.Order = v }
}

// WithScope reduces the result to the element the given key sequence
// addresses. Reading fails if the scope does not exist.
func WithScope(scope []ir.Key) ReadOpt {
	return func(c *ReadConfig) { c.Scope = scope }
}

func newReadConfig(opts []ReadOpt) *ReadConfig {
	cfg := &ReadConfig{Includes: true, Comments: true}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Read reads the dictionary file at path, merges its includes,
// evaluates its expressions and returns the result.
func Read(path string, opts ...ReadOpt) (*dict.Dict, error) {
	cfg := newReadConfig(opts)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d := dict.New()
	d.SetSourceFile(path)
	parser := parse.ForPath(path, parse.WithComments(cfg.Comments))
	if _, err := parser.Parse(d, string(data)); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Includes {
		resolve.MergeIncludes(d, cfg.Comments)
	}
	resolve.EvalExpressions(d)
	if len(cfg.Scope) > 0 {
		if err := d.ReduceScope(cfg.Scope); err != nil {
			return nil, err
		}
	}
	if cfg.Order {
		d.OrderKeys()
	}
	if !cfg.Includes {
		d.StripIncludes()
	}
	return d, nil
}

// Parse parses dictionary text in the given format without touching
// the file system. Includes are left unresolved.
func Parse(text string, f format.Format, opts ...ReadOpt) (*dict.Dict, error) {
	cfg := newReadConfig(opts)
	d := dict.New()
	parser := parse.ForFormat(f, parse.WithComments(cfg.Comments))
	if _, err := parser.Parse(d, text); err != nil {
		return nil, err
	}
	resolve.EvalExpressions(d)
	if cfg.Order {
		d.OrderKeys()
	}
	return d, nil
}

type WriteConfig struct {
	Mode  string
	Order bool
}

type WriteOpt func(*WriteConfig)

// WithMode selects the write mode: "w" replaces the target file, "a"
// merges into its current content.
func WithMode(mode string) WriteOpt {
	return func(c *WriteConfig) { c.Mode = mode }
}

// WithWriteOrder sorts the dictionary's keys recursively before
// writing.
func WithWriteOrder(v bool) WriteOpt {
	return func(c *WriteConfig) { c.Order = v }
}

// Write serializes d into the file at path, in the format the path's
// suffix indicates.
func Write(d *dict.Dict, path string, opts ...WriteOpt) error {
	cfg := &WriteConfig{Mode: "w"}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Mode == "a" {
		if _, err := os.Stat(path); err == nil {
			existing, err := Read(path, WithIncludes(false))
			if err != nil {
				return fmt.Errorf("reading %s for append: %w", path, err)
			}
			existing.Merge(d)
			d = existing
		}
	}
	if cfg.Order {
		d.OrderKeys()
	}
	enc := encode.ForPath(path)
	s, err := enc.String(d)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(s), 0o644)
}

// TargetFileName derives the name of the file Write would produce for
// a source file: the source name with a "parsed." prefix (applied at
// most once), the scope the dictionary was reduced to as an underscore
// suffix, and the extension the output format implies. A nil format
// keeps the source file's extension.
func TargetFileName(sourcePath string, scope []ir.Key, f *format.Format) string {
	dir, name := filepath.Split(sourcePath)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	// "parsed.controlDict" carries no real extension
	if stem == "parsed" {
		stem, ext = name, ""
	}
	for _, key := range scope {
		stem += "_" + key.String()
	}
	stem = "parsed." + strings.TrimPrefix(stem, "parsed.")
	if f != nil {
		ext = f.Suffix()
	}
	return filepath.Join(dir, stem+ext)
}

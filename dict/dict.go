// Package dict implements the document model: a parsed dictionary
// tree together with its placeholder registry, and the operations
// that combine and rewrite such documents.
package dict

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sdict-format/go-sdict/ir"
	"github.com/sdict-format/go-sdict/pathutil"
	"github.com/sdict-format/go-sdict/placeholder"
)

// ErrScope indicates a requested scope does not exist in a dictionary.
var ErrScope = errors.New("scope")

// Dict is a parsed dictionary: the value tree plus the registry that
// resolves the placeholder keys and values embedded in the tree.
type Dict struct {
	Root *ir.Node
	Reg  *placeholder.Registry

	// Session owns the placeholder ID counter and the include chain
	// for all parses feeding this dictionary.
	Session *placeholder.Session

	sourceFile string
}

func New() *Dict {
	return &Dict{
		Root:    ir.NewMap(),
		Reg:     placeholder.NewRegistry(),
		Session: placeholder.NewSession(),
	}
}

// SourceFile returns the absolute path of the file this dictionary was
// read from, or "" if it was built in memory.
func (d *Dict) SourceFile() string {
	return d.sourceFile
}

// SetSourceFile records path, made absolute, as the dictionary's
// origin.
func (d *Dict) SetSourceFile(path string) {
	if path == "" {
		d.sourceFile = ""
		return
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	d.sourceFile = abs
}

// Dir returns the directory of the source file, or the process working
// directory when the dictionary has no source file.
func (d *Dict) Dir() string {
	if d.sourceFile == "" {
		dir, err := filepath.Abs(".")
		if err != nil {
			return "."
		}
		return dir
	}
	return filepath.Dir(d.sourceFile)
}

// Name returns the base name of the source file, or "".
func (d *Dict) Name() string {
	if d.sourceFile == "" {
		return ""
	}
	return filepath.Base(d.sourceFile)
}

// Reset removes all content, returning d to the state of New.
func (d *Dict) Reset() {
	d.Root = ir.NewMap()
	d.Reg = placeholder.NewRegistry()
	d.Session = placeholder.NewSession()
	d.sourceFile = ""
}

// OrderKeys sorts all map levels of the tree recursively.
func (d *Dict) OrderKeys() {
	ir.OrderKeys(d.Root)
}

// FindGlobalKey returns the path to the first scalar value matching
// query, or nil.
func (d *Dict) FindGlobalKey(query *regexp.Regexp) ir.GlobalKey {
	return ir.FindGlobalKey(d.Root, query)
}

// SetGlobalKey sets the value at gk.
func (d *Dict) SetGlobalKey(gk ir.GlobalKey, value *ir.Node) error {
	return ir.SetGlobalKey(d.Root, gk, value)
}

// GlobalKeyExists reports whether gk addresses an existing map chain.
func (d *Dict) GlobalKeyExists(gk ir.GlobalKey) bool {
	return ir.GlobalKeyExists(d.Root, gk)
}

// ReduceScope replaces the tree with the sub-dictionary addressed by
// scope. The scope must address a map through maps only.
func (d *Dict) ReduceScope(scope []ir.Key) error {
	if len(scope) == 0 {
		return nil
	}
	node := d.Root
	for _, key := range scope {
		next, ok := node.Get(key)
		if !ok {
			return fmt.Errorf("%w: no key %v in dictionary %s", ErrScope, key, d.sourceFile)
		}
		if next.Type != ir.MapType {
			return fmt.Errorf("%w: key %v in dictionary %s is not a dict", ErrScope, key, d.sourceFile)
		}
		node = next
	}
	d.Root = node
	return nil
}

// AddInclude adds an include directive for other to d. Both
// dictionaries must have source files, and other's must be reachable
// from d's directory by a relative path.
func (d *Dict) AddInclude(other *Dict) error {
	if other.sourceFile == "" {
		return fmt.Errorf("cannot include %s: no source file", other.Name())
	}
	if d.sourceFile == "" {
		return fmt.Errorf("cannot include %s: %s has no source file", other.Name(), d.Name())
	}
	rel, err := pathutil.RelativePath(d.Dir(), other.sourceFile)
	if err != nil {
		return fmt.Errorf("cannot include %s: %v", other.Name(), err)
	}
	name := quoteIncludePath(strings.ReplaceAll(rel, `\`, `\\`))
	directive := "#include " + name

	var id int
	var key string
	for {
		id = d.Session.Next()
		key = placeholder.Name(placeholder.Include, id)
		if _, ok := d.Root.Get(ir.StringKey(key)); !ok {
			break
		}
	}
	d.Root.Set(ir.StringKey(key), ir.FromString(key))
	d.Reg.Includes[id] = placeholder.IncludeEntry{
		Directive: directive,
		Name:      name,
		Path:      other.sourceFile,
	}
	return nil
}

var needsQuotesRx = regexp.MustCompile(`[\s:/\\"']`)

func quoteIncludePath(s string) string {
	if needsQuotesRx.MatchString(s) {
		return "'" + s + "'"
	}
	return s
}

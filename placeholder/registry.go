package placeholder

import "maps"

// IncludeEntry records one extracted #include directive: the literal
// directive text, the (unquoted) file name as written, and the file path
// resolved against the including document's directory.
type IncludeEntry struct {
	Directive string
	Name      string
	Path      string
}

// ExprEntry records one extracted expression: the placeholder token it was
// substituted with and the raw (quote-stripped) expression text, which the
// resolver rewrites in place as references get substituted.
type ExprEntry struct {
	Name string
	Expr string
}

// Registry holds the lookup tables for all placeholders substituted into a
// document's tree. StringLiterals and Expressions are transient: literals
// are cleared after back-insertion by the parser, expressions after
// resolution.
type Registry struct {
	BlockComments  map[int]string
	LineComments   map[int]string
	Includes       map[int]IncludeEntry
	StringLiterals map[int]string
	Expressions    map[int]ExprEntry
}

func NewRegistry() *Registry {
	return &Registry{
		BlockComments:  map[int]string{},
		LineComments:   map[int]string{},
		Includes:       map[int]IncludeEntry{},
		StringLiterals: map[int]string{},
		Expressions:    map[int]ExprEntry{},
	}
}

// Update combines other into r with last-writer-wins semantics on
// colliding IDs. It backs the shallow Dict.Update operation.
func (r *Registry) Update(other *Registry) {
	if other == nil {
		return
	}
	maps.Copy(r.BlockComments, other.BlockComments)
	maps.Copy(r.LineComments, other.LineComments)
	maps.Copy(r.Includes, other.Includes)
	maps.Copy(r.StringLiterals, other.StringLiterals)
	maps.Copy(r.Expressions, other.Expressions)
}

// Merge combines other into r without overwriting existing IDs, matching
// the never-overwrite semantics of the recursive Dict.Merge operation.
func (r *Registry) Merge(other *Registry) {
	if other == nil {
		return
	}
	mergeTable(r.BlockComments, other.BlockComments)
	mergeTable(r.LineComments, other.LineComments)
	mergeTable(r.Includes, other.Includes)
	mergeTable(r.StringLiterals, other.StringLiterals)
	mergeTable(r.Expressions, other.Expressions)
}

func mergeTable[V any](dst, src map[int]V) {
	for k, v := range src {
		if _, ok := dst[k]; ok {
			continue
		}
		dst[k] = v
	}
}

func (r *Registry) Clear() {
	clear(r.BlockComments)
	clear(r.LineComments)
	clear(r.Includes)
	clear(r.StringLiterals)
	clear(r.Expressions)
}

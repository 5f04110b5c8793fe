// Package resolve implements the two post-parse passes: merging of
// #include'd dictionaries and evaluation of $reference expressions.
package resolve

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sdict-format/go-sdict/debug"
	"github.com/sdict-format/go-sdict/dict"
	"github.com/sdict-format/go-sdict/parse"
)

// MergeIncludes parses every dictionary referenced through an include
// directive of parent and merges it in, depth first to any nesting
// level. The include chain is watched for recursion: a file name seen
// twice aborts that branch with a warning instead of looping. Included
// files that do not exist are skipped with a warning.
func MergeIncludes(parent *dict.Dict, comments bool) {
	parent.Session.ResetVisited()
	parent.Merge(mergeIncludesRecursive(parent, comments))
}

func mergeIncludesRecursive(parent *dict.Dict, comments bool) *dict.Dict {
	// Included content accumulates in a temporary dictionary first,
	// so parent is not modified while its includes are walked.
	temp := dict.New()
	temp.Session = parent.Session

	ids := make([]int, 0, len(parent.Reg.Includes))
	for id := range parent.Reg.Includes {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		path := parent.Reg.Includes[id].Path
		switch {
		case parent.Session.Visit(filepath.Base(path)):
			chain := strings.Join(parent.Session.Chain(), "->")
			slog.Warn("recursive include detected",
				"aborted", chain, "dict", parent.Name())
		case !fileExists(path):
			slog.Warn("included dict not found", "path", path)
		default:
			if debug.Include() {
				debug.Logf("include %s <- %s\n", parent.Name(), path)
			}
			text, err := os.ReadFile(path)
			if err != nil {
				slog.Warn("included dict not readable", "path", path, "err", err)
				continue
			}
			included := dict.New()
			included.Session = parent.Session
			included.SetSourceFile(path)
			p := parse.ForPath(path, parse.WithComments(comments))
			if _, err := p.Parse(included, string(text)); err != nil {
				slog.Warn("included dict not parseable", "path", path, "err", err)
				continue
			}
			if len(included.Reg.Includes) != 0 {
				temp.Merge(mergeIncludesRecursive(included, comments))
			}
			temp.Merge(included)
		}
	}

	parent.Merge(temp)
	return parent
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

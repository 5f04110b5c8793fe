// Package textdiff computes line based diffs between serialized
// dictionaries.
package textdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Lines computes a line granular diff between two texts.
func Lines(from, to string) []diffpatch.Diff {
	dmp := diffpatch.New()
	fromRunes, toRunes, lines := dmp.DiffLinesToRunes(from, to)
	diffs := dmp.DiffMainRunes(fromRunes, toRunes, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

// Unified renders a line diff with "-" and "+" markers, one line per
// changed line. Unchanged lines are kept for context.
func Unified(diffs []diffpatch.Diff) string {
	var sb strings.Builder
	for _, diff := range diffs {
		marker := "  "
		switch diff.Type {
		case diffpatch.DiffDelete:
			marker = "- "
		case diffpatch.DiffInsert:
			marker = "+ "
		}
		for _, line := range splitLines(diff.Text) {
			sb.WriteString(marker)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Changed reports whether a diff contains any insertion or deletion.
func Changed(diffs []diffpatch.Diff) bool {
	for _, diff := range diffs {
		if diff.Type != diffpatch.DiffEqual {
			return true
		}
	}
	return false
}

func splitLines(text string) []string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	return lines
}

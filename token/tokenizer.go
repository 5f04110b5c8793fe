package token

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sdict-format/go-sdict/debug"
	"github.com/sdict-format/go-sdict/placeholder"
)

// Tokenizer runs the extraction pipeline over one source text. IDs for
// the extracted placeholders come from the shared Session so that
// every parse feeding the same dictionary yields unique placeholder
// names; the extracted content lands in Reg.
type Tokenizer struct {
	Session *placeholder.Session
	Reg     *placeholder.Registry

	// Dir is the directory include file names are resolved against,
	// normally the directory of the file being tokenized.
	Dir string

	// Comments controls whether comments survive extraction. When
	// false, comment text is registered nowhere and the comment is
	// dropped from the text instead of being replaced by a
	// placeholder.
	Comments bool
}

func NewTokenizer(session *placeholder.Session, reg *placeholder.Registry, dir string) *Tokenizer {
	return &Tokenizer{Session: session, Reg: reg, Dir: dir, Comments: true}
}

// Tokenize runs the full pipeline and returns the depth-tagged token
// stream. The stage order is load-bearing: line comments and includes
// work per line, block comments need line endings intact, string
// literals must be lifted before expressions so that quoted text is
// never mistaken for a reference.
func (t *Tokenizer) Tokenize(text string) ([]Token, error) {
	lines := splitLines(text)
	lines = t.extractLineComments(lines)
	lines = t.extractIncludes(lines)
	block := strings.Join(lines, "")
	block = t.extractBlockComments(block)
	block = strings.TrimSpace(strings.ReplaceAll(block, "\n", " "))
	block = t.extractStringLiterals(block)
	block = t.extractExpressions(block)
	block = separateDelimiters(block)
	tokens := split(block)
	tokens, err := balance(tokens)
	if debug.Token() {
		for _, tok := range tokens {
			debug.Logf("token %v", tok)
		}
	}
	return tokens, err
}

func splitLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// lineCommentStart returns the offset of the first "//" in line that
// is not preceded by a colon, or -1. The colon guard keeps URL schemes
// like "https://" from opening a comment.
func lineCommentStart(line string) int {
	for i := 0; i+1 < len(line); i++ {
		if line[i] == '/' && line[i+1] == '/' && (i == 0 || line[i-1] != ':') {
			return i
		}
	}
	return -1
}

func (t *Tokenizer) extractLineComments(lines []string) []string {
	for i, line := range lines {
		if lineCommentStart(line) < 0 {
			continue
		}
		// The comment text starts at the first "//" of any kind and
		// runs to the end of the line.
		start := strings.Index(line, "//")
		comment := strings.TrimSuffix(line[start:], "\n")
		name := ""
		if t.Comments {
			id := t.Session.Next()
			t.Reg.LineComments[id] = comment
			name = placeholder.Name(placeholder.LineComment, id)
		}
		lines[i] = strings.Replace(line, comment, name, 1)
	}
	return lines
}

var includeRx = regexp.MustCompile(`^\s*#\s*include`)
var includeTrimRx = regexp.MustCompile(`(^\s*#\s*include\s*|\s*$)`)

func (t *Tokenizer) extractIncludes(lines []string) []string {
	for i, line := range lines {
		if !includeRx.MatchString(line) {
			continue
		}
		id := t.Session.Next()
		name := includeTrimRx.ReplaceAllString(line, "")
		name = trimQuotes(name)
		t.Reg.Includes[id] = placeholder.IncludeEntry{
			Directive: strings.TrimSuffix(line, "\n"),
			Name:      name,
			Path:      filepath.Join(t.Dir, name),
		}
		lines[i] = placeholder.Name(placeholder.Include, id) + "\n"
	}
	return lines
}

// trimQuotes strips one leading and one trailing quote character,
// single or double, keeping quotes inside the string.
func trimQuotes(s string) string {
	if len(s) > 0 && (s[0] == '\'' || s[0] == '"') {
		s = s[1:]
	}
	if len(s) > 0 && (s[len(s)-1] == '\'' || s[len(s)-1] == '"') {
		s = s[:len(s)-1]
	}
	return s
}

var blockCommentRx = regexp.MustCompile(`(?s)/\*.*?\*/`)

// extractBlockComments registers every /* .. */ region under its
// position in the text, starting at zero for each parse, and replaces
// all occurrences with the placeholder. A comment text occurring twice
// is therefore collapsed onto the first placeholder; the doublette
// registry entry is swept out later by the document clean pass.
func (t *Tokenizer) extractBlockComments(block string) string {
	comments := blockCommentRx.FindAllString(block, -1)
	for i, comment := range comments {
		name := ""
		if t.Comments {
			t.Reg.BlockComments[i] = comment
			name = placeholder.Name(placeholder.BlockComment, i)
		}
		block = strings.ReplaceAll(block, comment, name)
	}
	return block
}

type span struct {
	start, end int
}

// findQuoted scans for quoted regions opened by a run of zero, two,
// four, six or eight backslashes followed by the quote character, the
// run itself not preceded by a backslash. The region closes at the
// next occurrence of the identical opener sequence. Unterminated
// openers are ignored.
func findQuoted(s string, quote byte) []span {
	var spans []span
	for i := 0; i < len(s); {
		n := openerLen(s, i, quote)
		if n == 0 {
			i++
			continue
		}
		opener := s[i : i+n]
		j := strings.Index(s[i+n:], opener)
		if j < 0 {
			break
		}
		end := i + n + j + n
		spans = append(spans, span{i, end})
		i = end
	}
	return spans
}

func openerLen(s string, i int, quote byte) int {
	if i > 0 && s[i-1] == '\\' {
		return 0
	}
	for _, n := range []int{8, 6, 4, 2, 0} {
		if i+n >= len(s) || s[i+n] != quote {
			continue
		}
		run := true
		for k := range n {
			if s[i+k] != '\\' {
				run = false
				break
			}
		}
		if run {
			return n + 1
		}
	}
	return 0
}

func nestedIn(sp span, others []span) bool {
	for _, o := range others {
		if sp.start > o.start && sp.start < o.end {
			return true
		}
	}
	return false
}

// extractStringLiterals lifts quoted strings out of the text. Single
// quoted strings are always literals; double quoted strings count as
// literals only when they contain no $ character, since those are
// expressions. Literals found nested inside another literal are
// replaced after the outer ones, so their standalone occurrences still
// get placeholders while nested occurrences are already gone.
func (t *Tokenizer) extractStringLiterals(block string) string {
	single := findQuoted(block, '\'')
	var double []span
	for _, sp := range findQuoted(block, '"') {
		if !strings.Contains(block[sp.start:sp.end], "$") {
			double = append(double, sp)
		}
	}

	var outer, nested []string
	for _, sp := range single {
		if nestedIn(sp, double) {
			nested = append(nested, block[sp.start:sp.end])
		} else {
			outer = append(outer, block[sp.start:sp.end])
		}
	}
	var dqOuter, dqNested []string
	for _, sp := range double {
		if nestedIn(sp, single) {
			dqNested = append(dqNested, block[sp.start:sp.end])
		} else {
			dqOuter = append(dqOuter, block[sp.start:sp.end])
		}
	}
	literals := append(append(append(outer, dqOuter...), nested...), dqNested...)

	for _, lit := range literals {
		id := t.Session.Next()
		block = strings.ReplaceAll(block, lit, placeholder.Name(placeholder.StringLiteral, id))
		t.Reg.StringLiterals[id] = trimQuotes(lit)
	}
	return block
}

var (
	quotedExprRx = regexp.MustCompile(`"[^"]*\$.*?"`)
	referenceRx  = regexp.MustCompile(`\$\w[\w\[\]]*`)
)

// extractExpressions lifts expressions out of the text: first double
// quoted strings containing at least one $reference, then bare
// $references outside quotes, each bare reference getting its own
// placeholder.
func (t *Tokenizer) extractExpressions(block string) string {
	for _, expr := range quotedExprRx.FindAllString(block, -1) {
		id := t.Session.Next()
		name := placeholder.Name(placeholder.Expression, id)
		block = strings.ReplaceAll(block, expr, name)
		t.Reg.Expressions[id] = placeholder.ExprEntry{
			Name: name,
			Expr: strings.ReplaceAll(expr, `"`, ""),
		}
	}
	for {
		ref := referenceRx.FindString(block)
		if ref == "" {
			break
		}
		id := t.Session.Next()
		name := placeholder.Name(placeholder.Expression, id)
		block = strings.Replace(block, ref, name, 1)
		t.Reg.Expressions[id] = placeholder.ExprEntry{Name: name, Expr: ref}
	}
	return block
}

var spaceRx = regexp.MustCompile(`\s+`)

// separateDelimiters pads every delimiter with spaces and collapses
// all whitespace runs to single spaces, so that a plain split yields
// one word or one delimiter per token.
func separateDelimiters(block string) string {
	for _, d := range Delimiters {
		block = strings.ReplaceAll(block, d, " "+d+" ")
	}
	return strings.TrimSpace(spaceRx.ReplaceAllString(block, " "))
}

func split(block string) []Token {
	if block == "" {
		return nil
	}
	words := strings.Split(block, " ")
	tokens := make([]Token, len(words))
	for i, w := range words {
		tokens[i] = Token{Text: w}
	}
	return tokens
}

// balance assigns each token the nesting depth dictated by the
// sequence of brackets. A closing bracket is tagged at the depth it
// closes to; an opening bracket at the depth it opens from. If the
// brackets do not balance, the tagged tokens are still returned,
// together with an error listing the open and close counts per
// bracket pair.
func balance(tokens []Token) ([]Token, error) {
	depth := 0
	countOpen := map[string]int{}
	countClose := map[string]int{}
	for i, tok := range tokens {
		switch {
		case IsOpening(tok.Text):
			countOpen[tok.Text]++
			tokens[i].Depth = depth
			depth++
		case IsClosing(tok.Text):
			countClose[tok.Text]++
			depth--
			tokens[i].Depth = depth
		default:
			tokens[i].Depth = depth
		}
	}
	if depth != 0 {
		var counts []string
		for i, open := range OpeningBrackets {
			counts = append(counts, fmt.Sprintf("%s%d -- %d%s",
				open, countOpen[open], countClose[ClosingBrackets[i]], ClosingBrackets[i]))
		}
		return tokens, fmt.Errorf("opening and closing delimiters are not balanced: %s",
			strings.Join(counts, ", "))
	}
	return tokens, nil
}

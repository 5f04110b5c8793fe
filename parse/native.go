package parse

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/sdict-format/go-sdict/debug"
	"github.com/sdict-format/go-sdict/dict"
	"github.com/sdict-format/go-sdict/ir"
	"github.com/sdict-format/go-sdict/placeholder"
	"github.com/sdict-format/go-sdict/token"
)

// NativeParser deserializes the native dictionary format.
type NativeParser struct {
	config *config
}

func NewNativeParser(opts ...Option) *NativeParser {
	return &NativeParser{config: newConfig(opts)}
}

// Parse tokenizes text, builds the tree from the depth-tagged token
// stream, back-inserts string literals and merges the result into
// target. Placeholder IDs are drawn from target's session, so parsing
// several files into one target cannot produce colliding placeholders.
func (p *NativeParser) Parse(target *dict.Dict, text string) (*dict.Dict, error) {
	parsed := dict.New()
	parsed.Session = target.Session
	parsed.SetSourceFile(target.SourceFile())

	tk := token.NewTokenizer(parsed.Session, parsed.Reg, parsed.Dir())
	tk.Comments = p.config.comments
	tokens, err := tk.Tokenize(text)
	if err != nil {
		slog.Warn("tokenize", "dict", parsed.Name(), "err", err)
	}

	if debug.Parse() {
		debug.Logf("parse %s: %d tokens\n", parsed.Name(), len(tokens))
	}
	parsed.Root = p.parseMap(tokens)
	insertStringLiterals(parsed)
	dropWriterKeys(parsed.Root)

	target.Merge(parsed)
	return parsed, nil
}

// parseMap parses tokens belonging to one map level. The tokens of a
// nested container run from its opening bracket through the matching
// closing bracket; the container's key is the token directly before
// the opening bracket, skipping comment placeholders.
func (p *NativeParser) parseMap(tokens []token.Token) *ir.Node {
	m := ir.NewMap()
	for i := 0; i < len(tokens); i++ {
		text := tokens[i].Text
		switch {
		case token.IsOpening(text):
			offset := 1
			for i-offset >= 0 && placeholder.IsCommentLike(tokens[i-offset].Text) {
				offset++
			}
			if i-offset < 0 {
				slog.Warn("container without a key", "at", i)
				continue
			}
			key, err := ParseKey(tokens[i-offset].Text)
			if err != nil {
				slog.Error("bad container key", "err", err)
				continue
			}
			sub, last := collectContainer(tokens, i)
			p.checkSyntax(key.String(), tokens, i, sub)
			m.Set(key, p.parseContainer(sub))
			if last >= 0 {
				// skip past the closing bracket
				i = last + 1
			}

		case text == ";" && (i == 0 || tokens[i-1].Text != ")"):
			kv := collectKeyValue(tokens, i)
			if len(kv) != 3 {
				slog.Warn("tokens skipped", "tokens", tokenTexts(kv), "near", context(tokens, i))
				continue
			}
			key, err := ParseKey(kv[0].Text)
			if err != nil {
				slog.Error("bad key", "err", err)
				continue
			}
			m.Set(key, ParseValue(kv[1].Text))

		case placeholder.IsCommentLike(text) || placeholder.IsIncludeLike(text):
			m.Set(ir.StringKey(text), ir.FromString(text))
		}
	}
	return m
}

// parseSeq parses the tokens of one sequence, including its
// surrounding brackets. Nested containers are recognized by an opening
// bracket deeper than the sequence itself; everything else except
// brackets and semicolons is an element.
func (p *NativeParser) parseSeq(tokens []token.Token) *ir.Node {
	s := ir.NewSeq()
	baseDepth := tokens[0].Depth
	for i := 0; i < len(tokens); i++ {
		text := tokens[i].Text
		switch {
		case token.IsOpening(text) && tokens[i].Depth > baseDepth:
			sub, last := collectContainer(tokens, i)
			if sub[len(sub)-1].Text == "}" {
				checkLastPair("", sub)
			}
			s.Append(p.parseContainer(sub))
			if last >= 0 {
				i = last + 1
			}
		case text != "(" && text != ")" && text != ";":
			s.Append(ParseValue(text))
		}
	}
	return s
}

// parseContainer dispatches a collected container token run, brackets
// included, to the sequence or map parser.
func (p *NativeParser) parseContainer(sub []token.Token) *ir.Node {
	if sub[0].Text == "(" {
		if len(sub) < 3 {
			return ir.NewSeq()
		}
		return p.parseSeq(sub)
	}
	return p.parseMap(sub[1 : len(sub)-1])
}

// collectContainer copies the token run of the container opening at
// start, from the opening bracket through the matching closing bracket
// at the same depth. It returns the copied run and the index of the
// token before the closing bracket, which the caller fast-forwards to.
func collectContainer(tokens []token.Token, start int) ([]token.Token, int) {
	closing := token.Companion(tokens[start].Text)
	closingDepth := tokens[start].Depth
	var sub []token.Token
	last := -1
	i := start
	for i < len(tokens)-1 &&
		(tokens[i].Text != closing ||
			tokens[i].Depth != closingDepth && !placeholder.IsCommentLike(tokens[i].Text)) {
		last = i
		sub = append(sub, tokens[i])
		i++
	}
	sub = append(sub, tokens[i])
	return sub, last
}

// collectKeyValue walks backwards from the semicolon at end, gathering
// the tokens of one key value pair on the same depth. Comment and
// include placeholders end the pair, as do structural tokens.
func collectKeyValue(tokens []token.Token, end int) []token.Token {
	kv := []token.Token{tokens[end]}
	depth := tokens[end].Depth
	for i := end - 1; i >= 0; i-- {
		t := tokens[i]
		if t.Depth != depth || t.Text == ";" || t.Text == "}" ||
			placeholder.IsCommentLike(t.Text) || placeholder.IsIncludeLike(t.Text) {
			break
		}
		kv = append(kv, t)
	}
	for l, r := 0, len(kv)-1; l < r; l, r = l+1, r-1 {
		kv[l], kv[r] = kv[r], kv[l]
	}
	return kv
}

// checkSyntax runs the closing-bracket diagnostics: a sequence nested
// in a map must be followed by a semicolon, and the last key value
// pair of a map must close with one.
func (p *NativeParser) checkSyntax(key string, tokens []token.Token, start int, sub []token.Token) {
	if sub[len(sub)-1].Text == ")" {
		next := start + len(sub)
		if next < len(tokens) && tokens[next].Text != ";" && tokens[next].Text != ")" {
			slog.Warn("mis-spelled expression / missing ';'",
				"around", key+" "+strings.Join(tokenTexts(sub), " "))
		}
	}
	if sub[len(sub)-1].Text == "}" {
		checkLastPair(key, sub)
	}
}

func checkLastPair(key string, sub []token.Token) {
	i := len(sub) - 2
	for i >= 0 && placeholder.IsCommentLike(sub[i].Text) {
		i--
	}
	if i < 0 {
		return
	}
	switch sub[i].Text {
	case "{", ";", "}":
	default:
		slog.Error("mis-spelled expression / missing ';'",
			"around", strings.TrimSpace(key+" "+strings.Join(tokenTexts(sub), " ")))
	}
}

func tokenTexts(tokens []token.Token) []string {
	texts := make([]string, len(tokens))
	for i, t := range tokens {
		texts[i] = t.Text
	}
	return texts
}

func context(tokens []token.Token, at int) string {
	from := max(0, at-20)
	to := min(at+20, len(tokens))
	return "/" + strings.Join(tokenTexts(tokens[from:to]), " ") + "/"
}

// insertStringLiterals replaces every string literal placeholder in
// the tree with its registered text, re-coerced so that literals
// spelling booleans or numbers come back as their native type. The
// global key search is non-greedy and finds one occurrence at a time,
// so each placeholder is searched until gone.
func insertStringLiterals(d *dict.Dict) {
	for id, literal := range d.Reg.StringLiterals {
		name := placeholder.Name(placeholder.StringLiteral, id)
		value := ParseValue(literal)
		query := regexp.MustCompile(regexp.QuoteMeta(name))
		for {
			gk := d.FindGlobalKey(query)
			if gk == nil {
				break
			}
			if err := d.SetGlobalKey(gk, value); err != nil {
				slog.Error("insert string literal", "key", gk, "err", err)
				break
			}
		}
	}
	clear(d.Reg.StringLiterals)
}

// dropWriterKeys removes the _variables and _includes keys the native
// writer emits for documentation purposes.
func dropWriterKeys(root *ir.Node) {
	root.Delete(ir.StringKey("_variables"))
	root.Delete(ir.StringKey("_includes"))
}

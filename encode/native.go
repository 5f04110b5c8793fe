package encode

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sdict-format/go-sdict/dict"
	"github.com/sdict-format/go-sdict/ir"
	"github.com/sdict-format/go-sdict/placeholder"
)

const (
	tabLen       = 4
	totalIndent  = 30
	itemsPerLine = 10
	itemWidth    = 14
)

// NativeEncoder serializes the native format: key value pairs aligned
// to a fixed column, sequences wrapped after ten items, comments and
// include directives re-inserted in place of their placeholders, and a
// C++ styled header banner when the document has none.
type NativeEncoder struct {
	style quoteStyle
}

func NewNativeEncoder() *NativeEncoder {
	return &NativeEncoder{style: quoteStyle{preferSingle: true}}
}

func (e *NativeEncoder) String(d *dict.Dict) (string, error) {
	return e.render(d, d.Root, e.defaultHeader)
}

func (e *NativeEncoder) render(d *dict.Dict, root *ir.Node, header func(string) string) (string, error) {
	var sb strings.Builder
	e.formatMap(&sb, frontLoadDirectives(root), 0)
	s := sb.String()
	s = e.insertBlockComments(d, s, header)
	s = e.insertIncludes(d, s)
	s = insertLineComments(d, s)
	return removeTrailingSpaces(s), nil
}

// frontLoadDirectives returns a shallow reordering of root with block
// comment keys first, include keys second and everything else after,
// which is where headers and directives belong in a file.
func frontLoadDirectives(root *ir.Node) *ir.Node {
	res := ir.NewMap()
	for i, k := range root.Keys {
		if !k.IsInt && placeholder.IsName(k.Str, placeholder.BlockComment) {
			res.Set(k, root.Values[i])
		}
	}
	for i, k := range root.Keys {
		if !k.IsInt && placeholder.IsName(k.Str, placeholder.Include) {
			res.Set(k, root.Values[i])
		}
	}
	for i, k := range root.Keys {
		if _, ok := res.Get(k); !ok {
			res.Set(k, root.Values[i])
		}
	}
	return res
}

func line(sb *strings.Builder, level int, text, end string) {
	sb.WriteString(strings.Repeat(" ", tabLen*level))
	sb.WriteString(text)
	sb.WriteString(end)
}

func (e *NativeEncoder) formatMap(sb *strings.Builder, m *ir.Node, level int) {
	for i, key := range m.Keys {
		item := m.Values[i]
		skey := key.String()
		switch item.Type {
		case ir.MapType:
			line(sb, level, skey, "\n")
			line(sb, level, "{", "\n")
			e.formatMap(sb, item, level+1)
			line(sb, level, "}", "\n")
		case ir.SeqType:
			line(sb, level, skey, "\n")
			e.formatSeq(sb, item, level, false)
		default:
			value := e.style.formatValue(item)
			pad := max(8, totalIndent-len(skey)-tabLen*level)
			line(sb, level, skey+strings.Repeat(" ", pad)+value+";", "\n")
		}
	}
}

// formatSeq writes a sequence, ten scalar items to a line, each item
// padded to a fixed width so columns align. A sequence nested directly
// in a sequence closes with a bare bracket; as the value of a key it
// closes with a semicolon.
func (e *NativeEncoder) formatSeq(sb *strings.Builder, seq *ir.Node, level int, inSeq bool) {
	line(sb, level, "(", "\n")
	firstOnLine := true
	for i, item := range seq.Values {
		switch item.Type {
		case ir.SeqType:
			e.formatSeq(sb, item, level+1, true)
		case ir.MapType:
			line(sb, level+1, "", "\n")
			line(sb, level+1, "{", "\n")
			e.formatMap(sb, item, level+2)
			line(sb, level+1, "}", "\n")
			firstOnLine = true
		default:
			value := e.style.formatValue(item)
			itemLevel := 1
			if firstOnLine {
				itemLevel = level + 1
				firstOnLine = false
			}
			if (i+1)%itemsPerLine == 0 || i+1 == len(seq.Values) {
				line(sb, itemLevel, value, "\n")
				firstOnLine = true
			} else {
				line(sb, itemLevel, value+strings.Repeat(" ", max(0, itemWidth-len(value))), "")
			}
		}
	}
	if inSeq {
		line(sb, level, ")", "\n")
	} else {
		line(sb, level, ");", "\n")
	}
}

const nativeHeader = "/*---------------------------------*- C++ -*----------------------------------*\\\n" +
	"filetype dictionary; coding utf-8; version 0.1; local --; purpose --;\n" +
	"\\*----------------------------------------------------------------------------*/\n"

var cppBannerRx = regexp.MustCompile(`\s[Cc]\+{2}\s`)

// defaultHeader prepends the standard C++ banner unless the comment
// already carries one.
func (e *NativeEncoder) defaultHeader(comment string) string {
	if !cppBannerRx.MatchString(comment) {
		comment = nativeHeader + comment
	}
	return comment
}

// insertBlockComments replaces block comment placeholder pairs with
// their registered text. The first comment is forced to carry the
// header banner; a comment text already inserted earlier is dropped
// rather than doubled. When the document ends up with no block comment
// at all, the default banner is prepended.
func (e *NativeEncoder) insertBlockComments(d *dict.Dict, s string, header func(string) string) string {
	insertedSoFar := ""
	first := true
	for _, id := range sortedIDs(d.Reg.BlockComments) {
		rx := placeholderPairRx(placeholder.BlockComment, id)
		if !rx.MatchString(s) {
			// registry leftover with no key in the tree; it must not
			// consume the header slot
			continue
		}
		comment := d.Reg.BlockComments[id]
		if first {
			comment = header(comment)
			first = false
		}
		if strings.Contains(insertedSoFar, comment) {
			comment = ""
		}
		s = rx.ReplaceAllLiteralString(s, comment)
		insertedSoFar += comment
	}
	if insertedSoFar == "" {
		s = header("") + s
	}
	return s
}

func (e *NativeEncoder) insertIncludes(d *dict.Dict, s string) string {
	for _, id := range sortedIncludeIDs(d.Reg.Includes) {
		name := strings.ReplaceAll(d.Reg.Includes[id].Name, `\`, `\\`)
		directive := "#include " + e.style.formatString(name)
		s = placeholderPairRx(placeholder.Include, id).ReplaceAllLiteralString(s, directive)
	}
	return s
}

func insertLineComments(d *dict.Dict, s string) string {
	for _, id := range sortedIDs(d.Reg.LineComments) {
		comment := d.Reg.LineComments[id]
		s = placeholderPairRx(placeholder.LineComment, id).ReplaceAllLiteralString(s, comment)
	}
	return s
}

// placeholderPairRx matches the "NAME   NAME;" key value pair a
// placeholder turns into when the tree is serialized.
func placeholderPairRx(kind placeholder.Kind, id int) *regexp.Regexp {
	name := placeholder.Name(kind, id)
	return regexp.MustCompile(name + `\s+` + name + `;`)
}

func sortedIDs(m map[int]string) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func sortedIncludeIDs(m map[int]placeholder.IncludeEntry) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func removeTrailingSpaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return strings.Join(lines, "\n")
}

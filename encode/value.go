package encode

import (
	"regexp"
	"strings"

	"github.com/sdict-format/go-sdict/ir"
)

// quoteStyle captures how the native and the foam renditions quote
// strings differently.
type quoteStyle struct {
	// preferSingle selects single quotes for empty and multi word
	// strings; foam output wants double quotes throughout.
	preferSingle bool
}

var (
	dollarRx     = regexp.MustCompile(`[$]`)
	bareRefRx    = regexp.MustCompile(`^\$\w[\w\[\]]*$`)
	anyQuoteRx   = regexp.MustCompile(`["']`)
	multiWordRx  = regexp.MustCompile(`[\s:/\\]`)
	doubleQuoted = func(s string) string { return `"` + s + `"` }
	singleQuoted = func(s string) string { return `'` + s + `'` }
)

// formatValue renders a scalar value as it appears in native output.
func (q quoteStyle) formatValue(n *ir.Node) string {
	switch n.Type {
	case ir.StringType:
		return q.formatString(n.Str)
	case ir.NullType:
		return "NULL"
	default:
		return n.Text()
	}
}

// formatString runs the quoting cascade: references stay bare,
// expressions get double quotes, empty and multi word strings get
// quoted, single words stay bare.
func (q quoteStyle) formatString(s string) string {
	if dollarRx.MatchString(s) {
		if bareRefRx.MatchString(s) {
			return s
		}
		return doubleQuoted(s)
	}
	if s == "" {
		return q.quote(s)
	}
	if anyQuoteRx.MatchString(s) {
		return q.formatNestedString(s)
	}
	if multiWordRx.MatchString(s) {
		return q.quote(s)
	}
	return s
}

// formatNestedString quotes a string that itself contains quote
// characters, picking the quote kind that does not collide. Foam
// output has no single quotes, so double quotes inside the string are
// escaped instead.
func (q quoteStyle) formatNestedString(s string) string {
	if strings.Contains(s, `"`) {
		if q.preferSingle {
			return singleQuoted(s)
		}
		return doubleQuoted(strings.ReplaceAll(s, `"`, `\"`))
	}
	return doubleQuoted(s)
}

func (q quoteStyle) quote(s string) string {
	if q.preferSingle {
		return singleQuoted(s)
	}
	return doubleQuoted(s)
}

package placeholder

import (
	"fmt"
	"regexp"
	"strconv"
)

// Kind enumerates the five constructs extracted out of raw text during
// tokenization and carried through the parsed tree as fixed-width
// placeholder tokens.
type Kind int

const (
	BlockComment Kind = iota
	LineComment
	Include
	StringLiteral
	Expression
)

// Width is the number of digits in a placeholder name. The shared counter
// wraps when it exceeds what Width digits can express.
const Width = 6

// Max is the exclusive upper bound of placeholder IDs.
const Max = 1000000

func (k Kind) String() string {
	return map[Kind]string{
		BlockComment:  "BLOCKCOMMENT",
		LineComment:   "LINECOMMENT",
		Include:       "INCLUDE",
		StringLiteral: "STRINGLITERAL",
		Expression:    "EXPRESSION",
	}[k]
}

// Name renders the placeholder token for kind k with id, e.g.
// "LINECOMMENT000042".
func Name(k Kind, id int) string {
	return fmt.Sprintf("%s%06d", k, id)
}

var nameRx = regexp.MustCompile(`^(BLOCKCOMMENT|LINECOMMENT|INCLUDE|STRINGLITERAL|EXPRESSION)(\d{6})$`)

// ParseName splits a placeholder token back into its kind and id.
func ParseName(s string) (Kind, int, bool) {
	m := nameRx.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	k, ok := map[string]Kind{
		"BLOCKCOMMENT":  BlockComment,
		"LINECOMMENT":   LineComment,
		"INCLUDE":       Include,
		"STRINGLITERAL": StringLiteral,
		"EXPRESSION":    Expression,
	}[m[1]]
	if !ok {
		return 0, 0, false
	}
	id, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, false
	}
	return k, id, true
}

// IsName reports whether s is exactly a placeholder token of kind k.
func IsName(s string, k Kind) bool {
	pk, _, ok := ParseName(s)
	return ok && pk == k
}

// ID extracts the numeric id of a placeholder token of kind k, if s is one.
func ID(s string, k Kind) (int, bool) {
	pk, id, ok := ParseName(s)
	if !ok || pk != k {
		return 0, false
	}
	return id, true
}

var findRxs = map[Kind]*regexp.Regexp{
	BlockComment:  regexp.MustCompile(`BLOCKCOMMENT(\d{6})`),
	LineComment:   regexp.MustCompile(`LINECOMMENT(\d{6})`),
	Include:       regexp.MustCompile(`INCLUDE(\d{6})`),
	StringLiteral: regexp.MustCompile(`STRINGLITERAL(\d{6})`),
	Expression:    regexp.MustCompile(`EXPRESSION(\d{6})`),
}

// FindID extracts the id of the first kind-k placeholder token occurring
// anywhere in s. Unlike ID it does not require s to be exactly a
// placeholder token.
func FindID(s string, k Kind) (int, bool) {
	m := findRxs[k].FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return id, true
}

var commentRx = regexp.MustCompile(`COMMENT`)
var includeRx = regexp.MustCompile(`INCLUDE`)

// IsCommentLike reports whether a token names a comment placeholder of
// either kind. The structural parser skips these when locating the key of
// a nested container.
func IsCommentLike(s string) bool {
	return commentRx.MatchString(s)
}

// IsIncludeLike reports whether a token names an include placeholder.
func IsIncludeLike(s string) bool {
	return includeRx.MatchString(s)
}

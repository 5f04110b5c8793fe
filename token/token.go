// Package token turns raw dictionary text into a flat stream of
// depth-tagged tokens. On the way, comments, include directives,
// string literals and expressions are lifted out of the text and
// replaced with fixed-width placeholder tokens, registered in a
// placeholder registry for later back-insertion and resolution.
package token

import "fmt"

// Token is one word of dictionary text, tagged with the nesting depth
// it occurs at. Depth 0 is the document root.
type Token struct {
	Depth int
	Text  string
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%s", t.Depth, t.Text)
}

// Delimiters are the characters separated into their own tokens.
var Delimiters = []string{"{", "}", "(", ")", "<", ">", ";", ","}

// OpeningBrackets and ClosingBrackets drive depth tagging. The
// comparison operators < and > are deliberately absent.
var (
	OpeningBrackets = []string{"{", "[", "("}
	ClosingBrackets = []string{"}", "]", ")"}
)

// IsOpening reports whether s is an opening bracket token.
func IsOpening(s string) bool {
	for _, b := range OpeningBrackets {
		if s == b {
			return true
		}
	}
	return false
}

// IsClosing reports whether s is a closing bracket token.
func IsClosing(s string) bool {
	for _, b := range ClosingBrackets {
		if s == b {
			return true
		}
	}
	return false
}

// Companion returns the matching bracket for an opening or closing
// bracket token, or "".
func Companion(bracket string) string {
	pairs := [][2]string{{"{", "}"}, {"[", "]"}, {"(", ")"}, {"<", ">"}}
	for _, p := range pairs {
		if bracket == p[0] {
			return p[1]
		}
		if bracket == p[1] {
			return p[0]
		}
	}
	return ""
}

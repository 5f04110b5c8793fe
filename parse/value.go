package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sdict-format/go-sdict/ir"
)

var (
	intRx      = regexp.MustCompile(`^[+-]?\d+$`)
	floatRx    = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)
	floatExpRx = regexp.MustCompile(`^[+-]?\d*(\.\d*)?([eE]?[-+]?\d+)?$`)
)

// ParseValue casts a token text to its native scalar type. The cascade
// order matters: the placeholder words "-", "_" and "." stay strings,
// numbers come before the boolean words, and anything unmatched falls
// through as a quote-stripped string.
func ParseValue(text string) *ir.Node {
	if stripped := trimQuotes(text); stripped == "" {
		return ir.FromString("")
	}
	switch text {
	case "-", "_", ".":
		return ir.FromString(text)
	}
	if intRx.MatchString(text) {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return ir.FromInt(i)
		}
	}
	if floatRx.MatchString(text) || floatExpRx.MatchString(text) {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return ir.FromFloat(f)
		}
	}
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true", "on":
		return ir.FromBool(true)
	case "false", "off":
		return ir.FromBool(false)
	case "none", "null":
		return ir.Null()
	}
	return ir.FromString(trimQuotes(text))
}

// ParseKey casts a token text to a dictionary key. Keys are strings or
// integers; token texts that coerce to any other scalar type are not
// valid keys.
func ParseKey(text string) (ir.Key, error) {
	v := ParseValue(text)
	switch v.Type {
	case ir.IntType:
		return ir.IntKey(*v.Int64), nil
	case ir.StringType:
		return ir.StringKey(v.Str), nil
	}
	return ir.Key{}, fmt.Errorf("key %q is not a string or int (parsed as %s)", text, v.Type)
}

// trimQuotes strips one leading and one trailing quote character,
// single or double.
func trimQuotes(s string) string {
	if len(s) > 0 && (s[0] == '\'' || s[0] == '"') {
		s = s[1:]
	}
	if len(s) > 0 && (s[len(s)-1] == '\'' || s[len(s)-1] == '"') {
		s = s[:len(s)-1]
	}
	return s
}

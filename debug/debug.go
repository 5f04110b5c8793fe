package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Token   bool
	Parse   bool
	Include bool
	Expr    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Token = boolEnv("SDICT_DEBUG_TOKEN")
	d.Parse = boolEnv("SDICT_DEBUG_PARSE")
	d.Include = boolEnv("SDICT_DEBUG_INCLUDE")
	d.Expr = boolEnv("SDICT_DEBUG_EXPR")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Token() bool {
	return d.Token
}
func Parse() bool {
	return d.Parse
}
func Include() bool {
	return d.Include
}
func Expr() bool {
	return d.Expr
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

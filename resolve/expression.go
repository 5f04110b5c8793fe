package resolve

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/sdict-format/go-sdict/debug"
	"github.com/sdict-format/go-sdict/dict"
	"github.com/sdict-format/go-sdict/ir"
	"github.com/sdict-format/go-sdict/placeholder"
)

// evalEnv is the function and constant environment available inside
// expressions. The math functions are wrapped so they take whatever
// numeric type the expression engine hands over; substituted whole
// number references arrive as ints.
var evalEnv = map[string]any{
	"sin":   unaryFn(math.Sin),
	"cos":   unaryFn(math.Cos),
	"tan":   unaryFn(math.Tan),
	"asin":  unaryFn(math.Asin),
	"acos":  unaryFn(math.Acos),
	"atan":  unaryFn(math.Atan),
	"atan2": binaryFn(math.Atan2),
	"exp":   unaryFn(math.Exp),
	"log":   unaryFn(math.Log),
	"log10": unaryFn(math.Log10),
	"pow":   binaryFn(math.Pow),
	"sqrt":  unaryFn(math.Sqrt),
	"pi":    math.Pi,
	"e":     math.E,
}

func unaryFn(f func(float64) float64) func(any) float64 {
	return func(x any) float64 { return f(toFloat64(x)) }
}

func binaryFn(f func(float64, float64) float64) func(any, any) float64 {
	return func(x, y any) float64 { return f(toFloat64(x), toFloat64(y)) }
}

// toFloat64 widens the numeric types the expression engine produces.
// Anything else panics; the engine turns the panic into a run error,
// which makes the expression pass through as text.
func toFloat64(v any) float64 {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	case float32:
		return float64(x)
	case float64:
		return x
	}
	panic(fmt.Sprintf("not a number: %v", v))
}

// EvalExpressions resolves all expression placeholders in d. The pass
// iterates to a fixpoint: each round substitutes the references
// resolved so far into the expression texts, evaluates what has become
// closed, and writes the results back into the tree, which in turn can
// resolve further references. Iteration stops when a round no longer
// reduces the number of unresolved references. Whatever is left then
// goes back into the tree as its (possibly partly substituted)
// expression text.
func EvalExpressions(d *dict.Dict) {
	resolved, unresolved := resolveAll(d)

	for prev := len(unresolved) + 1; len(unresolved) < prev; {
		prev = len(unresolved)
		evalRound(d, resolved)
		resolved, unresolved = resolveAll(d)
	}

	for id, entry := range d.Reg.Expressions {
		insertResult(d, entry.Name, ir.FromString(entry.Expr))
		delete(d.Reg.Expressions, id)
	}
}

// resolveAll resolves every reference occurring in the still pending
// expressions against the current variables table. A reference counts
// as resolved only when its value is known, non-null, and free of
// placeholders and further references.
func resolveAll(d *dict.Dict) (map[string]*ir.Node, []string) {
	vars := d.Variables()
	resolved := map[string]*ir.Node{}
	var unresolved []string
	for _, entry := range d.Reg.Expressions {
		for _, ref := range referenceRx.FindAllString(entry.Expr, -1) {
			value := resolveReference(ref, vars)
			if value == nil || value.Type == ir.NullType ||
				strings.Contains(renderValue(value), "EXPRESSION") ||
				strings.Contains(renderValue(value), "$") {
				unresolved = append(unresolved, ref)
				continue
			}
			resolved[ref] = value
		}
	}
	return resolved, unresolved
}

func evalRound(d *dict.Dict, resolved map[string]*ir.Node) {
	ids := make([]int, 0, len(d.Reg.Expressions))
	for id := range d.Reg.Expressions {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		entry := d.Reg.Expressions[id]
		expression := entry.Expr
		for _, ref := range referenceRx.FindAllString(expression, -1) {
			if value, ok := resolved[ref]; ok {
				expression = strings.ReplaceAll(expression, ref, renderValue(value))
			}
		}
		if strings.Contains(expression, "$") {
			d.Reg.Expressions[id] = placeholder.ExprEntry{Name: entry.Name, Expr: expression}
			continue
		}
		if debug.Expr() {
			debug.Logf("expr %s = %s\n", entry.Name, expression)
		}
		result, ok := eval(expression)
		if !ok {
			d.Reg.Expressions[id] = placeholder.ExprEntry{Name: entry.Name, Expr: expression}
			continue
		}
		insertResult(d, entry.Name, result)
		delete(d.Reg.Expressions, id)
	}
}

// eval evaluates a closed expression. A text that does not even
// compile is not evaluable yet and stays pending. A text that
// compiles but fails at run time, typically because it is a bare word
// that is no known identifier, passes through as its own string
// value, which is what a plain unresolvable reference should collapse
// to.
func eval(expression string) (*ir.Node, bool) {
	prg, err := expr.Compile(expression)
	if err != nil {
		slog.Warn("evaluation not yet possible", "expression", expression)
		return nil, false
	}
	out, err := expr.Run(prg, evalEnv)
	if err != nil {
		return ir.FromString(expression), true
	}
	result, err := ir.FromInterface(out)
	if err != nil {
		return ir.FromString(expression), true
	}
	return result, true
}

// insertResult replaces every occurrence of an expression placeholder
// in the tree with value.
func insertResult(d *dict.Dict, name string, value *ir.Node) {
	query := regexp.MustCompile(regexp.QuoteMeta(name))
	for {
		gk := d.FindGlobalKey(query)
		if gk == nil {
			return
		}
		if err := d.SetGlobalKey(gk, value); err != nil {
			slog.Error("insert expression result", "key", gk, "err", err)
			return
		}
	}
}

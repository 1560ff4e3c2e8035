// Package infer guesses the type of a value from the expression that is
// assigned to it. It only looks at the shape of literals, ternaries and names
// it can find in a lookup table. When no rule applies, or a ternary has
// branches that disagree, no type is returned at all so that callers leave
// the declaration alone instead of writing a wrong annotation.
package infer

import (
	"regexp"
	"strings"

	"github.com/tanema/typify/src/types"
)

// Lookup resolves names, such as builtin variables, to their known type.
type Lookup interface {
	Lookup(name string) (*types.Type, bool)
}

const naLiteral = "na"

var (
	intPattern   = regexp.MustCompile(`^[+-]?\d+$`)
	floatPattern = regexp.MustCompile(`^[+-]?(\d+\.\d*|\.\d+|\d+)([eE][+-]?\d+)?$`)
	colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	namePattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

	stringCalls = []string{"str.format("}
	colorCalls  = []string{"color.new(", "color.rgb("}
)

// Infer returns the best guess for the type of expr, or nil when it cannot
// tell. tbl may be nil.
func Infer(expr string, tbl Lookup) *types.Type {
	expr = strings.TrimSpace(expr)
	switch {
	case expr == "":
		return nil
	case isQuoted(expr) || hasCallPrefix(expr, stringCalls):
		return types.String
	case expr == "true" || expr == "false":
		return types.Bool
	case expr == naLiteral:
		return types.Float
	case intPattern.MatchString(expr):
		return types.Int
	case floatPattern.MatchString(expr):
		return types.Float
	case isColor(expr, tbl):
		return types.Color
	}
	if cond, then, els, ok := splitTernary(expr); ok && cond != "" {
		return ternary(then, els, tbl)
	}
	return lookup(expr, tbl)
}

func ternary(then, els string, tbl Lookup) *types.Type {
	thenNa, elsNa := then == naLiteral, els == naLiteral
	switch {
	case thenNa && !elsNa:
		return Infer(els, tbl)
	case elsNa && !thenNa:
		return Infer(then, tbl)
	}
	return types.Widen(Infer(then, tbl), Infer(els, tbl))
}

// splitTernary finds the top level "?" and the ":" that belongs to it. Parens,
// brackets and string literals hide their contents, and every nested "?" in
// the then branch claims one ":" before ours is found.
func splitTernary(expr string) (string, string, string, bool) {
	depth, question, nested := 0, -1, 0
	var quote byte
	for i := 0; i < len(expr); i++ {
		ch := expr[i]
		switch {
		case quote != 0:
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '(' || ch == '[':
			depth++
		case ch == ')' || ch == ']':
			depth--
		case depth != 0:
		case ch == '?' && question < 0:
			question = i
		case ch == '?':
			nested++
		case ch == ':' && question >= 0 && nested > 0:
			nested--
		case ch == ':' && question >= 0:
			return strings.TrimSpace(expr[:question]),
				strings.TrimSpace(expr[question+1 : i]),
				strings.TrimSpace(expr[i+1:]),
				true
		}
	}
	return "", "", "", false
}

func isQuoted(expr string) bool {
	if len(expr) < 2 {
		return false
	}
	first, last := expr[0], expr[len(expr)-1]
	return (first == '"' || first == '\'') && first == last
}

func isColor(expr string, tbl Lookup) bool {
	if colorPattern.MatchString(expr) || hasCallPrefix(expr, colorCalls) {
		return true
	} else if !namePattern.MatchString(expr) {
		return false
	}
	defn := lookup(expr, tbl)
	return defn != nil && !defn.IsContainer() && defn.Base == types.NameColor
}

func hasCallPrefix(expr string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(expr, prefix) {
			return true
		}
	}
	return false
}

func lookup(expr string, tbl Lookup) *types.Type {
	if tbl == nil {
		return nil
	}
	if defn, ok := tbl.Lookup(expr); ok {
		return defn
	}
	return nil
}

// Package parse turns free form type strings into structured types. The parser
// is a best effort reader of the grammar below, it never returns an error.
// Anything it does not recognize is kept verbatim as the base of the type so
// that nothing the user wrote is lost.
//
//	<type>      ::= [<modifier> WS] [<lib> "."] (<container> | <name>)
//	<container> ::= ("array" | "matrix") "<" <type> ">" | <type> "[" "]"
//	              | "map" "<" <type> "," <type> ">"
//	<modifier>  ::= "series" | "simple" | "input" | "const" | "literal"
//	<lib>       ::= <name> ("." <name>)*
package parse

import (
	"strings"

	"github.com/tanema/typify/src/types"
)

// parser walks a token slice, every rule works on a half open range of token
// indexes so that sub types can be parsed without lexing again.
type parser struct {
	src    string
	tokens []*token
}

// Parse converts a type string into a structured type. Empty input yields
// types.Unknown.
func Parse(src string) *types.Type {
	src = strings.TrimSpace(src)
	if src == "" {
		return types.Unknown
	}
	p := &parser{src: src, tokens: tokenize(src)}
	return p.typestat(0, len(p.tokens)-1)
}

// <type> ::= [<modifier> WS] [<lib> "."] (<container> | <shorthand> | <verbatim>).
func (p *parser) typestat(lo, hi int) *types.Type {
	if lo >= hi {
		return types.Unknown
	}
	var mod types.Modifier
	if p.isModifier(lo, hi) {
		mod = types.Modifier(p.tokens[lo].StringVal)
		lo++
	}
	lib, lo := p.libstat(lo, hi)
	if defn := p.generic(lo, hi); defn != nil {
		return qualify(defn, mod, lib)
	} else if defn := p.shorthand(lo, hi); defn != nil {
		return qualify(defn, mod, lib)
	}
	return &types.Type{Base: p.text(lo, hi), Modifier: mod, Lib: lib}
}

// only a single modifier is consumed and it has to be separated from the rest
// of the type by whitespace.
func (p *parser) isModifier(lo, hi int) bool {
	if hi-lo < 2 {
		return false
	}
	tk, following := p.tokens[lo], p.tokens[lo+1]
	return tk.Kind == tokenIdentifier && types.IsModifier(tk.StringVal) && following.Start > tk.End
}

// <lib> ::= <name> ("." <name>)* "." and is only consumed when a name follows
// the final period.
func (p *parser) libstat(lo, hi int) (string, int) {
	names := []string{}
	i := lo
	for i+2 < hi &&
		p.tokens[i].Kind == tokenIdentifier &&
		p.tokens[i+1].Kind == tokenPeriod &&
		p.tokens[i+2].Kind == tokenIdentifier {
		names = append(names, p.tokens[i].StringVal)
		i += 2
	}
	return strings.Join(names, "."), i
}

// <container> ::= ("array" | "matrix") "<" <type> ">" | "map" "<" <type> "," <type> ">".
func (p *parser) generic(lo, hi int) *types.Type {
	if hi-lo < 3 || p.tokens[lo].Kind != tokenIdentifier || p.tokens[lo+1].Kind != tokenLt {
		return nil
	}
	kind, isContainer := types.Containers[p.tokens[lo].StringVal]
	if !isContainer || p.tokens[hi-1].Kind != tokenGt || p.closing(lo+1, hi) != hi-1 {
		return nil
	}
	argsLo, argsHi := lo+2, hi-1
	if argsLo == argsHi {
		return nil
	}
	split := p.topLevelComma(argsLo, argsHi)
	switch kind {
	case types.ContainerMap:
		if split < 0 {
			return types.NewMap(p.typestat(argsLo, argsHi), types.Unknown)
		}
		return types.NewMap(p.typestat(argsLo, split), p.typestat(split+1, argsHi))
	case types.ContainerMatrix:
		if split >= 0 {
			argsHi = split
		}
		return types.NewMatrix(p.typestat(argsLo, argsHi))
	default:
		if split >= 0 {
			argsHi = split
		}
		return types.NewArray(p.typestat(argsLo, argsHi))
	}
}

// <shorthand> ::= <type> "[" "]".
func (p *parser) shorthand(lo, hi int) *types.Type {
	if hi-lo < 2 || p.tokens[hi-2].Kind != tokenOpenBracket || p.tokens[hi-1].Kind != tokenCloseBracket {
		return nil
	}
	return types.NewArray(p.typestat(lo, hi-2))
}

// closing finds the index of the token that closes the bracket at open, or -1
// when a bracket is closed by the wrong kind before that.
func (p *parser) closing(open, hi int) int {
	stack := []tokenType{}
	for i := open; i < hi; i++ {
		tk := p.tokens[i]
		if tk.opens() {
			stack = append(stack, tk.Kind)
		} else if tk.closes() {
			if len(stack) == 0 || closers[stack[len(stack)-1]] != tk.Kind {
				return -1
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i
			}
		}
	}
	return -1
}

// topLevelComma returns the index of the first comma outside of any nested
// brackets, or -1.
func (p *parser) topLevelComma(lo, hi int) int {
	depth := 0
	for i := lo; i < hi; i++ {
		switch tk := p.tokens[i]; {
		case tk.opens():
			depth++
		case tk.closes():
			depth--
		case tk.Kind == tokenComma && depth == 0:
			return i
		}
	}
	return -1
}

func (p *parser) text(lo, hi int) string {
	if lo >= hi {
		return ""
	}
	return p.src[p.tokens[lo].Start:p.tokens[hi-1].End]
}

func qualify(defn *types.Type, mod types.Modifier, lib string) *types.Type {
	if mod == "" && lib == "" {
		return defn
	}
	return defn.WithQualifiers(mod, lib)
}

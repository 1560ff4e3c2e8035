package typify

import (
	"regexp"
	"strings"
	"sync"

	"github.com/tanema/typify/src/infer"
	"github.com/tanema/typify/src/typecache"
	"github.com/tanema/typify/src/types"
)

type (
	// Options tune which declarations are annotated.
	Options struct {
		// Disallowed base types are never written as annotations.
		Disallowed []string
	}
	line struct {
		start int
		text  string
	}
	// lazyTable builds the table on the first lookup so a pass over a document
	// without candidates never queries the linter.
	lazyTable struct {
		get func() *typecache.Table
	}
)

// DefaultDisallowed lists pseudo types that inference can produce from
// builtins but that cannot be written as a declaration type.
var DefaultDisallowed = []string{"plot", "hline", "void"}

var (
	declPattern  = regexp.MustCompile(`^\s*(?:(var|varip)\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*=(.*)$`)
	typeKeywords = map[string]bool{
		"int": true, "float": true, "bool": true, "string": true, "color": true,
		"line": true, "label": true, "box": true, "table": true, "linefill": true,
		"polyline": true, "array": true, "matrix": true, "map": true,
		"series": true, "simple": true, "input": true, "const": true, "literal": true,
	}
)

func (lt *lazyTable) Lookup(name string) (*types.Type, bool) {
	if lt.get == nil {
		return nil, false
	}
	return lt.get().Lookup(name)
}

// Plan visits every line of text once and returns insert edits that annotate
// untyped declarations. table is called at most once, and only when a lookup
// is needed.
func Plan(text string, table func() *typecache.Table, opts Options) Edits {
	disallowed := map[string]bool{}
	for _, name := range opts.Disallowed {
		disallowed[name] = true
	}
	lookup := &lazyTable{}
	if table != nil {
		lookup.get = sync.OnceValue(table)
	}
	lines := splitLines(text)
	processed := make([]bool, len(lines))
	edits := Edits{}
	depth := 0
	for i := range lines {
		if processed[i] {
			continue
		}
		processed[i] = true
		ln := lines[i]
		code := stripComment(ln.text)
		insideCall := depth > 0
		depth = max(depth+parenDelta(code), 0)
		if insideCall || isTyped(code) {
			continue
		}
		match := declPattern.FindStringSubmatchIndex(code)
		if match == nil {
			continue
		}
		rhs := code[match[6]:match[7]]
		if strings.HasPrefix(rhs, "=") {
			continue
		}
		for j := i + 1; j < len(lines) && isContinuation(lines[j].text); j++ {
			processed[j] = true
			cont := stripComment(lines[j].text)
			depth = max(depth+parenDelta(cont), 0)
			rhs += " " + strings.TrimSpace(cont)
		}
		defn := infer.Infer(rhs, lookup)
		if defn.IsUnknown() || disallowed[defn.Base] {
			continue
		}
		insert := defn.String() + " "
		offset := ln.start + match[4]
		if strings.HasPrefix(text[offset:], insert) {
			continue
		}
		edits = append(edits, Edit{Start: offset, End: offset, Text: insert})
	}
	return edits
}

// splitLines keeps the offset of every line so that line endings of any width
// are accounted for.
func splitLines(text string) []line {
	lines := []line{}
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '\n' && text[i] != '\r' {
			continue
		}
		lines = append(lines, line{start: start, text: text[start:i]})
		if text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n' {
			i++
		}
		start = i + 1
	}
	return append(lines, line{start: start, text: text[start:]})
}

func isTyped(code string) bool {
	fields := strings.Fields(code)
	if len(fields) == 0 {
		return true
	}
	word := fields[0]
	if (word == "var" || word == "varip") && len(fields) > 1 {
		word = fields[1]
	}
	if idx := strings.IndexAny(word, "<[."); idx > 0 {
		word = word[:idx]
	}
	return typeKeywords[word]
}

func isContinuation(text string) bool {
	trimmed := strings.TrimSpace(text)
	return strings.HasPrefix(trimmed, "?") || strings.HasPrefix(trimmed, ":")
}

// stripComment drops a trailing // comment that is not inside a string.
func stripComment(text string) string {
	var quote byte
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case quote != 0:
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '/' && i+1 < len(text) && text[i+1] == '/':
			return strings.TrimRight(text[:i], " \t")
		}
	}
	return strings.TrimRight(text, " \t")
}

func parenDelta(code string) int {
	delta := 0
	var quote byte
	for i := 0; i < len(code); i++ {
		ch := code[i]
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
			delta++
		case ch == ')' || ch == ']':
			delta--
		}
	}
	return delta
}

// Package typecache builds the table of known names that the inferencer falls
// back on. A table is built once per typify pass from three ordered sources,
// linter hints, the builtin registry and a set of language constants, where the
// first source to name a variable wins.
package typecache

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/tanema/typify/src/docs"
	"github.com/tanema/typify/src/parse"
	"github.com/tanema/typify/src/types"
)

type (
	// Registry supplies builtin documentation by kind.
	Registry interface {
		Docs(kind string) []docs.Variable
	}
	// Table maps case sensitive names to their type. It is read only once
	// Build returns it.
	Table struct {
		entries map[string]*types.Type
	}
	// Builder creates tables. The zero value is usable and parses without a memo.
	Builder struct {
		Memo   *parse.Memo
		Logger *zap.Logger
	}
)

// Colors lists the named color constants available as color.<name>.
var Colors = []string{
	"aqua", "black", "blue", "fuchsia", "gray", "green", "lime", "maroon", "navy",
	"olive", "orange", "purple", "red", "silver", "teal", "white", "yellow",
}

var (
	modifierPattern  = regexp.MustCompile(`\b(series|simple|input|const|literal)\s+`)
	shorthandPattern = regexp.MustCompile(`\b([A-Za-z_]\w*(?:\.[A-Za-z_]\w*)?)\s*\[\s*\]`)
	colorType        = &types.Type{Base: types.NameColor, Lib: types.NameColor}
)

// Build creates a fresh table. hints may be nil when no linter is available
// and reg may be nil when there is no registry.
func (b *Builder) Build(hints []docs.Variable, reg Registry) *Table {
	log := b.Logger
	if log == nil {
		log = zap.NewNop()
	}
	tbl := &Table{entries: map[string]*types.Type{}}

	added := 0
	for _, hint := range hints {
		if tbl.add(hint.Name, b.Memo.Parse(hint.Type)) {
			added++
		}
	}
	log.Debug("type table linter hints", zap.Int("received", len(hints)), zap.Int("added", added))

	if reg != nil {
		builtins := reg.Docs(docs.KindVariables)
		added = 0
		for _, v := range builtins {
			if tbl.add(v.Name, b.Memo.Parse(NormalizeBuiltin(v.Type))) {
				added++
			}
		}
		log.Debug("type table builtins", zap.Int("received", len(builtins)), zap.Int("added", added))
	}

	tbl.add("true", types.Bool)
	tbl.add("false", types.Bool)
	tbl.add("na", types.Float)
	for _, name := range Colors {
		tbl.add("color."+name, colorType)
	}
	log.Debug("type table built", zap.Int("entries", tbl.Len()))
	return tbl
}

// NormalizeBuiltin rewrites a registry type string into the generic grammar.
// Modifiers are dropped wherever they occur and every Ident[] or Lib.Ident[]
// becomes array<Ident> or array<Lib.Ident>.
func NormalizeBuiltin(src string) string {
	src = modifierPattern.ReplaceAllString(src, "")
	for shorthandPattern.MatchString(src) {
		src = shorthandPattern.ReplaceAllString(src, "array<$1>")
	}
	return strings.TrimSpace(src)
}

// Lookup returns the type recorded for name.
func (tbl *Table) Lookup(name string) (*types.Type, bool) {
	if tbl == nil {
		return nil, false
	}
	defn, ok := tbl.entries[name]
	return defn, ok
}

// Len is the amount of names in the table.
func (tbl *Table) Len() int {
	if tbl == nil {
		return 0
	}
	return len(tbl.entries)
}

func (tbl *Table) add(name string, defn *types.Type) bool {
	if name == "" || defn.IsUnknown() {
		return false
	} else if _, exists := tbl.entries[name]; exists {
		return false
	}
	tbl.entries[name] = defn
	return true
}

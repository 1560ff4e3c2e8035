package typecache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tanema/typify/src/docs"
	"github.com/tanema/typify/src/parse"
	"github.com/tanema/typify/src/types"
)

type registry []docs.Variable

func (reg registry) Docs(kind string) []docs.Variable {
	if kind != docs.KindVariables {
		return nil
	}
	return reg
}

func TestBuild(t *testing.T) {
	t.Parallel()
	hints := []docs.Variable{
		{Name: "myVar", Type: "series int"},
		{Name: "skipped", Type: ""},
		{Name: "close", Type: "float"},
	}
	reg := registry{
		{Name: "close", Type: "series float"},
		{Name: "open", Type: "series float"},
		{Name: "label.all", Type: "label[]"},
		{Name: "points", Type: "chart.point[]"},
		{Name: "red", Type: "const color"},
	}

	builder := &Builder{Logger: zap.NewNop()}
	tbl := builder.Build(hints, reg)

	tests := []struct {
		name     string
		expected string
	}{
		{"myVar", "series int"},
		{"close", "float"},
		{"open", "float"},
		{"label.all", "array<label>"},
		{"points", "array<chart.point>"},
		{"red", "color"},
		{"true", "bool"},
		{"false", "bool"},
		{"na", "float"},
		{"color.orange", "color.color"},
	}
	for _, test := range tests {
		defn, ok := tbl.Lookup(test.name)
		require.True(t, ok, test.name)
		assert.Equal(t, test.expected, defn.String(), test.name)
	}

	_, ok := tbl.Lookup("skipped")
	assert.False(t, ok)
	_, ok = tbl.Lookup("Close")
	assert.False(t, ok)
	assert.Equal(t, 9+len(Colors), tbl.Len())
}

func TestBuildFirstWriterWins(t *testing.T) {
	t.Parallel()
	tbl := (&Builder{}).Build([]docs.Variable{{Name: "na", Type: "int"}, {Name: "color.red", Type: "string"}}, nil)
	defn, _ := tbl.Lookup("na")
	assert.Equal(t, types.Int, defn)
	defn, _ = tbl.Lookup("color.red")
	assert.Equal(t, types.String, defn)
}

func TestBuildStartsEmpty(t *testing.T) {
	t.Parallel()
	memo, err := parse.NewMemo(16)
	require.NoError(t, err)
	builder := &Builder{Memo: memo}
	first := builder.Build([]docs.Variable{{Name: "a", Type: "int"}}, nil)
	second := builder.Build([]docs.Variable{{Name: "b", Type: "int"}}, nil)
	_, ok := second.Lookup("a")
	assert.False(t, ok)
	_, ok = first.Lookup("b")
	assert.False(t, ok)
	assert.Equal(t, 1, memo.Len())
}

func TestNormalizeBuiltin(t *testing.T) {
	t.Parallel()
	tests := []struct{ src, expected string }{
		{"series float", "float"},
		{"simple string", "string"},
		{"label[]", "array<label>"},
		{"chart.point[]", "array<chart.point>"},
		{"series int[]", "array<int>"},
		{"int [ ]", "array<int>"},
		{"map<string, const float>", "map<string, float>"},
		{"int[][]", "array<int>[]"},
		{"float", "float"},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, NormalizeBuiltin(test.src), test.src)
	}
}

func TestNilTable(t *testing.T) {
	t.Parallel()
	var tbl *Table
	_, ok := tbl.Lookup("close")
	assert.False(t, ok)
	assert.Equal(t, 0, tbl.Len())
}

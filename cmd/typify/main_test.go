package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanema/typify/src/conf"
	"github.com/tanema/typify/src/parse"
)

func testApp(t *testing.T) *app {
	t.Helper()
	a, err := newApp(conf.Default(), nil, false, &bytes.Buffer{})
	require.NoError(t, err)
	return a
}

func writeScript(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestFixFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	first := writeScript(t, dir, "a.pine", "len = 14\nsrc = close\n")
	second := writeScript(t, dir, "b.pine", "int done = 1\n")

	results, err := testApp(t).fixFiles(context.Background(), []string{first, second}, fixOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 2, results[0].edits)
	assert.Equal(t, 0, results[1].edits)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "int len = 14\nfloat src = close\n", string(data))
	assert.Equal(t, string(data), results[0].after)
}

func TestFixFileDryRun(t *testing.T) {
	t.Parallel()
	path := writeScript(t, t.TempDir(), "a.pine", "x = na\n")
	res, err := testApp(t).fixFile(context.Background(), path, fixOptions{dryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.edits)
	assert.Equal(t, "float x = na\n", res.after)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x = na\n", string(data))

	out := &bytes.Buffer{}
	writePreview(out, res)
	assert.Contains(t, out.String(), path+" (1 edits)")
	assert.Contains(t, out.String(), "   1 - x = na")
	assert.Contains(t, out.String(), "   1 + float x = na")
}

func TestFixFileBackup(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeScript(t, dir, "a.pine", "on = true")
	_, err := testApp(t).fixFile(context.Background(), path, fixOptions{backup: true})
	require.NoError(t, err)
	backups, err := filepath.Glob(path + ".*.bak")
	require.NoError(t, err)
	require.Len(t, backups, 1)
	data, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Equal(t, "on = true", string(data))
}

func TestFixFilesMissing(t *testing.T) {
	t.Parallel()
	_, err := testApp(t).fixFiles(context.Background(), []string{filepath.Join(t.TempDir(), "nope.pine")}, fixOptions{})
	assert.Error(t, err)
}

func TestEvalLine(t *testing.T) {
	t.Parallel()
	tbl := testApp(t).builder().Build(nil, nil)
	tests := []struct {
		src, expected string
	}{
		{"1.5", "float\n"},
		{"c ? 1 : \"a\"", "unknown (left unannotated)\n"},
		{":type series  map< string ,int[] >", "series map<string, array<int>>\n"},
		{":tree int[]", "base: array\nelem:\n  base: int\n"},
		{"", ""},
	}
	for _, test := range tests {
		out := &bytes.Buffer{}
		evalLine(out, test.src, tbl)
		assert.Equal(t, test.expected, out.String(), test.src)
	}
}

func TestWriteTree(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}
	writeTree(out, parse.Parse("series MyLib.map<string, color>"), "")
	assert.Equal(t, "base: map\nmodifier: series\nlib: MyLib\nkey:\n  base: string\nvalue:\n  base: color\n", out.String())
}

func TestWatcherFlush(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeScript(t, dir, "a.pine", "a = 1\n")
	out := &bytes.Buffer{}
	w, err := newWatcher(testApp(t), []string{path}, out)
	require.NoError(t, err)
	defer func() { _ = w.fs.Close() }()

	w.pending[path] = time.Now()
	w.flush(context.Background(), time.Now())
	assert.Len(t, w.pending, 1)

	w.flush(context.Background(), time.Now().Add(time.Second))
	assert.Empty(t, w.pending)
	assert.Contains(t, out.String(), "applied 1 edits")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "int a = 1\n", string(data))
}

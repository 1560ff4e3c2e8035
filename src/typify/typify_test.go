package typify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tanema/typify/src/docs"
	"github.com/tanema/typify/src/lerrors"
	"github.com/tanema/typify/src/typecache"
)

type (
	fakeDoc struct {
		text     string
		applyErr error
		applied  [][]TextEdit
	}
	fakeEditor struct{ doc Document }
	fakeSink   struct{ msgs []string }
	fakeHints  struct {
		vars  []docs.Variable
		calls int
	}
	fakeRegistry []docs.Variable
)

func (doc *fakeDoc) Name() string          { return "fake.pine" }
func (doc *fakeDoc) Text() (string, error) { return doc.text, nil }

// single line documents only.
func (doc *fakeDoc) PositionAt(offset int) Position { return Position{Character: offset} }

func (doc *fakeDoc) ApplyEdits(_ context.Context, edits []TextEdit) error {
	if doc.applyErr != nil {
		return doc.applyErr
	}
	doc.applied = append(doc.applied, edits)
	offsets := Edits{}
	for _, edit := range edits {
		offsets = append(offsets, Edit{Start: edit.Range.Start.Character, End: edit.Range.End.Character, Text: edit.NewText})
	}
	doc.text = offsets.Apply(doc.text)
	return nil
}

func (ed fakeEditor) ActiveDocument() (Document, bool) { return ed.doc, ed.doc != nil }
func (sink *fakeSink) ShowError(msg string)            { sink.msgs = append(sink.msgs, msg) }

func (h *fakeHints) Hints(_ context.Context, _ string) []docs.Variable {
	h.calls++
	return h.vars
}

func (reg fakeRegistry) Docs(_ string) []docs.Variable { return reg }

func TestTypify(t *testing.T) {
	t.Parallel()
	doc := &fakeDoc{text: "a = src ? 1 : 2.0"}
	hints := &fakeHints{vars: []docs.Variable{{Name: "mine", Type: "int"}}}
	typifier := &Typifier{
		Editor:   fakeEditor{doc: doc},
		Hints:    hints,
		Registry: fakeRegistry{{Name: "close", Type: "series float"}},
		Builder:  &typecache.Builder{Logger: zap.NewNop()},
		Logger:   zap.NewNop(),
		Options:  Options{Disallowed: DefaultDisallowed},
	}

	count, err := typifier.Typify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "float a = src ? 1 : 2.0", doc.text)
	require.Len(t, doc.applied, 1)
	assert.Equal(t, 0, hints.calls)

	count, err = typifier.Typify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Len(t, doc.applied, 1)
}

func TestTypifyUsesHintsAndRegistry(t *testing.T) {
	t.Parallel()
	doc := &fakeDoc{text: "a = mine"}
	hints := &fakeHints{vars: []docs.Variable{{Name: "mine", Type: "MyLib.Point[]"}}}
	typifier := &Typifier{
		Editor:   fakeEditor{doc: doc},
		Hints:    hints,
		Registry: fakeRegistry{{Name: "mine", Type: "int"}},
	}
	count, err := typifier.Typify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, hints.calls)
	assert.Equal(t, "MyLib.array<Point> a = mine", doc.text)

	doc.text = "b = close"
	typifier.Registry = fakeRegistry{{Name: "close", Type: "series float"}}
	_, err = typifier.Typify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "float b = close", doc.text)
	assert.Equal(t, 2, hints.calls)
}

func TestTypifyNoDocument(t *testing.T) {
	t.Parallel()
	sink := &fakeSink{}
	typifier := &Typifier{Editor: fakeEditor{}, Sink: sink}
	count, err := typifier.Typify(context.Background())
	assert.Equal(t, 0, count)
	assert.True(t, lerrors.Is(err, lerrors.EditorErr))
	assert.ErrorIs(t, err, lerrors.ErrNoDocument)
	require.Len(t, sink.msgs, 1)
	assert.True(t, strings.Contains(sink.msgs[0], "no active document"))

	_, err = (&Typifier{}).Typify(context.Background())
	assert.True(t, lerrors.Is(err, lerrors.EditorErr))
}

func TestTypifyApplyFailure(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	doc := &fakeDoc{text: "a = 1", applyErr: boom}
	sink := &fakeSink{}
	typifier := &Typifier{Editor: fakeEditor{doc: doc}, Sink: sink}
	count, err := typifier.Typify(context.Background())
	assert.Equal(t, 0, count)
	assert.True(t, lerrors.Is(err, lerrors.ApplyErr))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "a = 1", doc.text)
	assert.Empty(t, sink.msgs)
}

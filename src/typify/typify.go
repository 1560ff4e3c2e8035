// Package typify rewrites untyped declarations in a document into typed ones.
// A pass reads the active document, plans insert edits with the inferencer and
// hands the whole batch to the editor at once. The document, the editor, the
// linter and the builtin registry are all consumed through small interfaces so
// the same pass can run against files on disk or an editor buffer.
package typify

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/tanema/typify/src/docs"
	"github.com/tanema/typify/src/lerrors"
	"github.com/tanema/typify/src/typecache"
)

type (
	// Document is the text being typified.
	Document interface {
		Name() string
		Text() (string, error)
		PositionAt(offset int) Position
		ApplyEdits(ctx context.Context, edits []TextEdit) error
	}
	// Editor hands out the document the user is working on.
	Editor interface {
		ActiveDocument() (Document, bool)
	}
	// ErrorSink shows failures to the user.
	ErrorSink interface {
		ShowError(msg string)
	}
	// HintSource reports variable types for a script, usually from a linter. An
	// unavailable source returns no hints.
	HintSource interface {
		Hints(ctx context.Context, src string) []docs.Variable
	}
	// Typifier runs typify passes. Hints, Registry, Sink and Logger are optional.
	Typifier struct {
		Editor   Editor
		Hints    HintSource
		Registry typecache.Registry
		Builder  *typecache.Builder
		Sink     ErrorSink
		Logger   *zap.Logger
		Options  Options
	}
)

// Typify annotates the active document and returns the amount of edits that
// were applied. Nothing is applied when any part of the pass fails.
func (t *Typifier) Typify(ctx context.Context) (int, error) {
	log := t.logger()
	if t.Editor == nil {
		return 0, t.noDocument()
	}
	doc, ok := t.Editor.ActiveDocument()
	if !ok || doc == nil {
		return 0, t.noDocument()
	}
	log = log.With(zap.String("document", doc.Name()))

	text, err := doc.Text()
	if err != nil {
		return 0, &lerrors.Error{Kind: lerrors.EditorErr, Filename: doc.Name(), Err: err}
	}

	table := func() *typecache.Table {
		var hints []docs.Variable
		if t.Hints != nil {
			hints = t.Hints.Hints(ctx, text)
		}
		builder := t.Builder
		if builder == nil {
			builder = &typecache.Builder{Logger: log}
		}
		return builder.Build(hints, t.Registry)
	}

	edits := Plan(text, table, t.Options)
	if len(edits) == 0 {
		log.Debug("document already typed")
		return 0, nil
	}
	if err := edits.Validate(text); err != nil {
		var lerr *lerrors.Error
		if errors.As(err, &lerr) {
			lerr.Filename = doc.Name()
		}
		log.Error("invalid edits", zap.Error(err))
		return 0, err
	}
	if err := doc.ApplyEdits(ctx, edits.TextEdits(doc.PositionAt)); err != nil {
		log.Error("failed to apply edits", zap.Int("edits", len(edits)), zap.Error(err))
		return 0, &lerrors.Error{Kind: lerrors.ApplyErr, Filename: doc.Name(), Err: err}
	}
	log.Info("typified document", zap.Int("edits", len(edits)))
	return len(edits), nil
}

func (t *Typifier) noDocument() error {
	err := &lerrors.Error{Kind: lerrors.EditorErr, Err: lerrors.ErrNoDocument}
	if t.Sink != nil {
		t.Sink.ShowError(err.Error())
	}
	return err
}

func (t *Typifier) logger() *zap.Logger {
	if t.Logger == nil {
		return zap.NewNop()
	}
	return t.Logger
}

// Package document adapts text held in memory or on disk to the document
// boundary of a typify pass. Positions use zero based lines and UTF-16
// character offsets, the same units editors speak.
package document

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/tanema/typify/src/typify"
)

// Buffer is an in memory document.
type Buffer struct {
	name string
	text string
}

// NewBuffer creates a document holding text.
func NewBuffer(name, text string) *Buffer {
	return &Buffer{name: name, text: text}
}

// Name is the name the buffer was created with.
func (buf *Buffer) Name() string { return buf.name }

// Text returns the current contents.
func (buf *Buffer) Text() (string, error) { return buf.text, nil }

// String returns the current contents.
func (buf *Buffer) String() string { return buf.text }

// PositionAt converts a byte offset into a position.
func (buf *Buffer) PositionAt(offset int) typify.Position { return PositionAt(buf.text, offset) }

// ApplyEdits applies the batch or nothing at all.
func (buf *Buffer) ApplyEdits(_ context.Context, edits []typify.TextEdit) error {
	text, err := ApplyTextEdits(buf.text, edits)
	if err != nil {
		return err
	}
	buf.text = text
	return nil
}

// PositionAt converts a byte offset in text into a position. Offsets outside
// of the text are clamped.
func PositionAt(text string, offset int) typify.Position {
	offset = min(max(offset, 0), len(text))
	pos := typify.Position{}
	for i := 0; i < offset; {
		ch, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case ch == '\r' && i+1 < len(text) && text[i+1] == '\n' && i+1 < offset:
			size = 2
			fallthrough
		case ch == '\n' || ch == '\r':
			pos.Line++
			pos.Character = 0
		default:
			pos.Character += utf16RuneLen(ch)
		}
		i += size
	}
	return pos
}

// OffsetAt converts a position into a byte offset in text. A character past
// the end of its line resolves to the end of that line.
func OffsetAt(text string, pos typify.Position) (int, error) {
	if pos.Line < 0 || pos.Character < 0 {
		return 0, fmt.Errorf("invalid position %d:%d", pos.Line, pos.Character)
	}
	i := 0
	for line := 0; line < pos.Line; line++ {
		for i < len(text) && text[i] != '\n' && text[i] != '\r' {
			i++
		}
		if i >= len(text) {
			return 0, fmt.Errorf("line %d out of range", pos.Line)
		}
		if text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n' {
			i++
		}
		i++
	}
	for units := 0; i < len(text) && units < pos.Character; {
		ch, size := utf8.DecodeRuneInString(text[i:])
		if ch == '\n' || ch == '\r' {
			break
		}
		units += utf16RuneLen(ch)
		i += size
	}
	return i, nil
}

// ApplyTextEdits applies position based edits to text. Edits are converted to
// offsets and validated as a whole before any of them is applied.
func ApplyTextEdits(text string, edits []typify.TextEdit) (string, error) {
	offsets := make(typify.Edits, 0, len(edits))
	for _, edit := range edits {
		start, err := OffsetAt(text, edit.Range.Start)
		if err != nil {
			return text, err
		}
		end, err := OffsetAt(text, edit.Range.End)
		if err != nil {
			return text, err
		}
		offsets = append(offsets, typify.Edit{Start: start, End: end, Text: edit.NewText})
	}
	if err := offsets.Validate(text); err != nil {
		return text, err
	}
	return offsets.Apply(text), nil
}

// Active is an editor with at most one open document.
type Active struct {
	Doc typify.Document
}

// ActiveDocument returns the open document, if there is one.
func (a Active) ActiveDocument() (typify.Document, bool) {
	return a.Doc, a.Doc != nil
}

package typify

import (
	"fmt"
	"sort"

	"github.com/tanema/typify/src/lerrors"
)

type (
	// Edit replaces text[Start:End] with Text. Inserts have Start == End.
	Edit struct {
		Start int
		End   int
		Text  string
	}
	// Edits is a batch of edits over one text.
	Edits []Edit
	// Position is a zero based line and character offset in a document.
	Position struct {
		Line      int `json:"line"`
		Character int `json:"character"`
	}
	// Range spans two positions in a document.
	Range struct {
		Start Position `json:"start"`
		End   Position `json:"end"`
	}
	// TextEdit is an edit expressed in document positions, the form handed to
	// the editor.
	TextEdit struct {
		Range   Range  `json:"range"`
		NewText string `json:"newText"`
	}
)

// Validate sorts the edits by offset and checks that each one lies within text
// and that no two edits touch the same text. Two inserts at the same offset
// count as overlapping since their order would be ambiguous. Errors point at
// the one based line and column of the offending edit.
func (edits Edits) Validate(text string) error {
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].Start < edits[j].Start })
	for i, edit := range edits {
		if edit.Start < 0 || edit.End < edit.Start || edit.End > len(text) {
			return editErr(text, edit.Start, fmt.Errorf("edit [%d:%d] out of range 0..%d", edit.Start, edit.End, len(text)))
		} else if i == 0 {
			continue
		}
		prev := edits[i-1]
		if edit.Start < prev.End || edit.Start == prev.Start {
			return editErr(text, edit.Start, fmt.Errorf("edit [%d:%d] overlaps [%d:%d]", edit.Start, edit.End, prev.Start, prev.End))
		}
	}
	return nil
}

func editErr(text string, offset int, err error) *lerrors.Error {
	offset = min(max(offset, 0), len(text))
	line, lineStart := 1, 0
	for i := 0; i < offset; i++ {
		switch {
		case text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n':
			continue
		case text[i] == '\n' || text[i] == '\r':
			line++
			lineStart = i + 1
		}
	}
	return &lerrors.Error{Kind: lerrors.EditErr, Line: line, Column: offset - lineStart + 1, Err: err}
}

// Apply returns text with every edit applied. The edits must be valid.
func (edits Edits) Apply(text string) string {
	out := []byte{}
	last := 0
	for _, edit := range edits {
		out = append(out, text[last:edit.Start]...)
		out = append(out, edit.Text...)
		last = edit.End
	}
	return string(append(out, text[last:]...))
}

// TextEdits converts the offsets into positions using positionAt.
func (edits Edits) TextEdits(positionAt func(offset int) Position) []TextEdit {
	out := make([]TextEdit, len(edits))
	for i, edit := range edits {
		out[i] = TextEdit{
			Range:   Range{Start: positionAt(edit.Start), End: positionAt(edit.End)},
			NewText: edit.Text,
		}
	}
	return out
}

// Package lerrors is the unified error type for typify so that failures from
// configuration, the editor boundary, edit planning and the linter are
// formatted and handled in a uniform way.
package lerrors

import (
	"errors"
	"fmt"
)

type (
	// ErrorKind is an enum to describe where the error originates from.
	ErrorKind int
	// Error captures all errors surfaced by typify. Line and Column are one based
	// and only set when the error points into a document.
	Error struct {
		Line     int
		Column   int
		Kind     ErrorKind
		Err      error
		Filename string
	}
)

const (
	// ConfigErr is an error loading or validating configuration.
	ConfigErr ErrorKind = iota
	// EditorErr is raised when there is no document to work on.
	EditorErr
	// EditErr is a planned edit that is out of range or overlaps another.
	EditErr
	// ApplyErr is an error applying a batch of edits to a document.
	ApplyErr
	// LinterErr is an error talking to the linter.
	LinterErr
)

// ErrNoDocument is reported when the editor has no active document.
var ErrNoDocument = errors.New("no active document")

func (err *Error) Error() string {
	switch err.Kind {
	case ConfigErr:
		return fmt.Sprintf("Config Error: %s %v", err.Filename, err.Err)
	case EditorErr:
		return fmt.Sprintf("Editor Error: %v", err.Err)
	case EditErr:
		return fmt.Sprintf("Edit Error: %s:%v:%v %v", err.Filename, err.Line, err.Column, err.Err)
	case ApplyErr:
		return fmt.Sprintf("Apply Error: %s %v", err.Filename, err.Err)
	case LinterErr:
		return fmt.Sprintf("Lint Error: %v", err.Err)
	default:
		return err.Err.Error()
	}
}

func (err *Error) Unwrap() error { return err.Err }

// Is reports if err is a typify error of the given kind.
func Is(err error, kind ErrorKind) bool {
	var lerr *Error
	return errors.As(err, &lerr) && lerr.Kind == kind
}

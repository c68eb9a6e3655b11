// Package bridge defines the capability surface through which plugin
// actions and scripts observe and mutate editor state.
//
// The Bridge interface is the only channel between the plugin core and the
// live editor. Built-in actions call it directly; embedded scripts reach it
// through an injected capability object. No other component holds a
// reference to the editor's internal representation.
package bridge

import (
	"errors"
	"fmt"
)

// Bridge exposes the fixed set of editor operations available to plugins.
//
// Positions are 1-based (line, column). Implementations are not required to
// be goroutine-safe: the engine runs actions one at a time on the host's
// event loop.
type Bridge interface {
	// Text returns the full buffer text.
	Text() (string, error)

	// SetText replaces the full buffer text.
	SetText(text string) error

	// Selection returns the selected text and its bounds. An empty string
	// with a zero Span means no selection.
	Selection() (string, Span, error)

	// ReplaceSelection replaces the selected text. The selection is updated
	// to cover the inserted text.
	ReplaceSelection(text string) error

	// Cursor returns the current cursor position.
	Cursor() (Position, error)

	// SetCursor moves the cursor. Out-of-range positions are clamped.
	SetCursor(pos Position) error

	// FilePath returns the path of the current file. Returns ErrNoFile for
	// an unsaved buffer.
	FilePath() (string, error)

	// Language returns the language identifier of the current buffer.
	Language() (string, error)

	// Notify displays a notification to the user. Title may be empty.
	Notify(message, title string) error
}

// Position is a 1-based line/column location in the buffer.
type Position struct {
	Line int
	Col  int
}

// String returns "line:col".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// IsZero reports whether the position is unset.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Col == 0
}

// Span is a half-open region of the buffer from Start to End.
type Span struct {
	Start Position
	End   Position
}

// IsZero reports whether the span is unset.
func (s Span) IsZero() bool {
	return s.Start.IsZero() && s.End.IsZero()
}

// Bridge errors.
var (
	// ErrNoFile is returned for file-path queries on an unsaved buffer.
	ErrNoFile = errors.New("no file associated with buffer")

	// ErrNoEditor is returned when no editor context is active.
	ErrNoEditor = errors.New("no active editor context")
)

// Error wraps a failed bridge operation with the operation name.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return "bridge: " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

package bridge

import "errors"

// ErrNoSelection is returned when a selection operation runs with nothing
// selected.
var ErrNoSelection = errors.New("no selection")

// Notification is a message displayed to the user.
type Notification struct {
	Message string
	Title   string
}

// Editor is an in-memory Bridge implementation. It backs the engine's tests
// and the quill-plugin dev CLI; the editor proper provides its own
// implementation wired to the live buffer.
type Editor struct {
	path     string
	language string
	text     string

	selStart int
	selEnd   int
	selected bool

	cursor int // byte offset

	notices []Notification
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithPath sets the file path of the buffer.
func WithPath(path string) EditorOption {
	return func(e *Editor) {
		e.path = path
	}
}

// WithLanguage sets the language identifier of the buffer.
func WithLanguage(language string) EditorOption {
	return func(e *Editor) {
		e.language = language
	}
}

// NewEditor creates an in-memory editor holding the given text.
func NewEditor(text string, opts ...EditorOption) *Editor {
	e := &Editor{text: text}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Text returns the full buffer text.
func (e *Editor) Text() (string, error) {
	return e.text, nil
}

// SetText replaces the buffer text, clearing the selection and clamping the
// cursor.
func (e *Editor) SetText(text string) error {
	e.text = text
	e.selected = false
	e.selStart, e.selEnd = 0, 0
	if e.cursor > len(text) {
		e.cursor = len(text)
	}
	return nil
}

// Select sets the selection to the half-open region between two positions.
func (e *Editor) Select(start, end Position) {
	s := OffsetAt(e.text, start)
	n := OffsetAt(e.text, end)
	if n < s {
		s, n = n, s
	}
	e.selStart, e.selEnd = s, n
	e.selected = true
	e.cursor = n
}

// ClearSelection removes the selection.
func (e *Editor) ClearSelection() {
	e.selected = false
	e.selStart, e.selEnd = 0, 0
}

// Selection returns the selected text and its bounds.
func (e *Editor) Selection() (string, Span, error) {
	if !e.selected {
		return "", Span{}, nil
	}
	span := Span{
		Start: PositionAt(e.text, e.selStart),
		End:   PositionAt(e.text, e.selEnd),
	}
	return e.text[e.selStart:e.selEnd], span, nil
}

// ReplaceSelection replaces the selected text and keeps the inserted text
// selected.
func (e *Editor) ReplaceSelection(text string) error {
	if !e.selected {
		return &Error{Op: "replace_selection", Err: ErrNoSelection}
	}
	e.text = e.text[:e.selStart] + text + e.text[e.selEnd:]
	e.selEnd = e.selStart + len(text)
	e.cursor = e.selEnd
	return nil
}

// Cursor returns the cursor position.
func (e *Editor) Cursor() (Position, error) {
	return PositionAt(e.text, e.cursor), nil
}

// SetCursor moves the cursor, clamping out-of-range positions.
func (e *Editor) SetCursor(pos Position) error {
	e.cursor = OffsetAt(e.text, pos)
	return nil
}

// FilePath returns the buffer's file path, or ErrNoFile for an unsaved
// buffer.
func (e *Editor) FilePath() (string, error) {
	if e.path == "" {
		return "", &Error{Op: "file_path", Err: ErrNoFile}
	}
	return e.path, nil
}

// Language returns the buffer's language identifier.
func (e *Editor) Language() (string, error) {
	return e.language, nil
}

// Notify records a notification.
func (e *Editor) Notify(message, title string) error {
	e.notices = append(e.notices, Notification{Message: message, Title: title})
	return nil
}

// Notifications returns all recorded notifications.
func (e *Editor) Notifications() []Notification {
	return e.notices
}

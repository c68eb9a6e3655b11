package plugin

import (
	"errors"

	"github.com/quill-editor/quill/internal/plugin/bridge"
)

// Context is the editor state read at invocation time. It is built per
// invocation and owned by it; executions are never concurrent, so it is
// never shared.
type Context struct {
	// FilePath is empty for unsaved buffers.
	FilePath string

	Language  string
	Text      string
	Selection string
	Bounds    bridge.Span
	Cursor    bridge.Position
}

// SnapshotContext reads the current editor state through the bridge.
func SnapshotContext(b bridge.Bridge) (*Context, error) {
	text, err := b.Text()
	if err != nil {
		return nil, err
	}
	selection, bounds, err := b.Selection()
	if err != nil {
		return nil, err
	}
	cursor, err := b.Cursor()
	if err != nil {
		return nil, err
	}
	language, err := b.Language()
	if err != nil {
		return nil, err
	}
	path, err := b.FilePath()
	if err != nil && !errors.Is(err, bridge.ErrNoFile) {
		return nil, err
	}
	return &Context{
		FilePath:  path,
		Language:  language,
		Text:      text,
		Selection: selection,
		Bounds:    bounds,
		Cursor:    cursor,
	}, nil
}

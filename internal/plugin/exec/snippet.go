package exec

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/quill-editor/quill/internal/plugin"
	"github.com/quill-editor/quill/internal/plugin/bridge"
)

// unsavedPlaceholder substitutes for file tokens in unsaved buffers.
const unsavedPlaceholder = "untitled"

// runSnippet expands the template against the current context and inserts
// it at the cursor, moving the cursor to the end of the inserted text.
func (e *Executor) runSnippet(a plugin.Action, b bridge.Bridge) error {
	expanded, err := e.expandSnippet(a.Template, b)
	if err != nil {
		return err
	}

	text, err := b.Text()
	if err != nil {
		return err
	}
	cursor, err := b.Cursor()
	if err != nil {
		return err
	}

	offset := bridge.OffsetAt(text, cursor)
	updated := text[:offset] + expanded + text[offset:]
	if err := b.SetText(updated); err != nil {
		return err
	}
	return b.SetCursor(bridge.PositionAt(updated, offset+len(expanded)))
}

// expandSnippet resolves substitution tokens at the invocation instant.
// Recognized tokens: {file_name}, {file_path}, {date}, {time}, {language}.
func (e *Executor) expandSnippet(template string, b bridge.Bridge) (string, error) {
	path, err := b.FilePath()
	if err != nil {
		if !errors.Is(err, bridge.ErrNoFile) {
			return "", err
		}
		path = ""
	}
	name := unsavedPlaceholder
	filePath := unsavedPlaceholder
	if path != "" {
		name = filepath.Base(path)
		filePath = path
	}

	language, err := b.Language()
	if err != nil {
		return "", err
	}

	now := e.now()
	return strings.NewReplacer(
		"{file_name}", name,
		"{file_path}", filePath,
		"{date}", now.Format("2006-01-02"),
		"{time}", now.Format("15:04:05"),
		"{language}", language,
	).Replace(template), nil
}

package plugin

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// TriggerKind declares when a trigger fires.
type TriggerKind string

// Trigger kinds.
const (
	// KindCommand triggers are offered in the command palette/menu.
	KindCommand TriggerKind = "command"

	// KindShortcut triggers are bound to a key combination only.
	KindShortcut TriggerKind = "shortcut"

	// KindOnSave triggers fire after the buffer is saved.
	KindOnSave TriggerKind = "on_save"

	// KindOnOpen triggers fire after a file is opened.
	KindOnOpen TriggerKind = "on_open"
)

// validTriggerKinds is the closed set of trigger kinds.
var validTriggerKinds = map[TriggerKind]bool{
	KindCommand:  true,
	KindShortcut: true,
	KindOnSave:   true,
	KindOnOpen:   true,
}

// Trigger binds an event kind to an action.
type Trigger struct {
	ID       string      `json:"id"`
	Kind     TriggerKind `json:"type"`
	ActionID string      `json:"action_id"`

	// Presentation hints, meaningful for command/shortcut kinds. The menu
	// and keymap layers are owned by the host, not by this core.
	CommandName string `json:"command_name,omitempty"`
	Shortcut    string `json:"shortcut,omitempty"`

	// Context gates the trigger on the current file. Nil matches
	// unconditionally.
	Context *ContextFilter `json:"context,omitempty"`
}

// Label returns the display label for menu entries.
func (t *Trigger) Label() string {
	if t.CommandName != "" {
		return t.CommandName
	}
	return t.ID
}

// ContextFilter gates a trigger on language and file name. Both sets are
// optional; an empty set places no constraint.
type ContextFilter struct {
	Languages    []string `json:"languages,omitempty"`
	FilePatterns []string `json:"file_patterns,omitempty"`
}

// Matches reports whether the filter admits the given language and file
// path. Patterns match against the base file name unless they contain a
// path separator, in which case they match the full path.
func (f *ContextFilter) Matches(language, filePath string) bool {
	if f == nil {
		return true
	}
	if len(f.Languages) > 0 {
		found := false
		for _, lang := range f.Languages {
			if strings.EqualFold(lang, language) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(f.FilePatterns) > 0 {
		name := filepath.Base(filePath)
		found := false
		for _, pattern := range f.FilePatterns {
			target := name
			if strings.ContainsRune(pattern, '/') {
				target = filepath.ToSlash(filePath)
			}
			if ok, err := doublestar.Match(pattern, target); err == nil && ok {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// validate checks the filter's patterns.
func (f *ContextFilter) validate() error {
	if f == nil {
		return nil
	}
	for _, pattern := range f.FilePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return &patternError{pattern: pattern}
		}
	}
	return nil
}

type patternError struct {
	pattern string
}

func (e *patternError) Error() string {
	return ErrInvalidPattern.Error() + ": " + e.pattern
}

func (e *patternError) Unwrap() error {
	return ErrInvalidPattern
}

package plugin

import (
	"fmt"
	"path/filepath"

	"github.com/quill-editor/quill/internal/plugin/textop"
)

// ActionType tags the closed set of action variants.
type ActionType string

// Action variants.
const (
	ActionExternalCommand ActionType = "external_command"
	ActionSnippet         ActionType = "snippet"
	ActionNotify          ActionType = "notify"
	ActionTransform       ActionType = "transform"
	ActionChain           ActionType = "chain"
	ActionScript          ActionType = "script"
)

// InputMode selects what is piped to an external command's stdin.
type InputMode string

// Input modes.
const (
	InputNone      InputMode = ""
	InputWholeFile InputMode = "whole_file"
	InputSelection InputMode = "selection"
)

// OutputMode selects what an external command's stdout replaces.
type OutputMode string

// Output modes.
const (
	OutputReplaceWholeFile OutputMode = "replace_whole_file"
	OutputReplaceSelection OutputMode = "replace_selection"
	OutputDiscard          OutputMode = "discard"
)

// ScriptEngine identifies an embedded script engine.
type ScriptEngine string

// Script engines.
const (
	EngineLua      ScriptEngine = "lua"
	EngineStarlark ScriptEngine = "starlark"
)

// Action declares what runs when a trigger fires. The Type tag selects the
// variant; the remaining fields are variant-specific and validated
// exhaustively at load time.
type Action struct {
	Type ActionType `json:"type"`

	// external_command
	Command string     `json:"command,omitempty"`
	Input   InputMode  `json:"input,omitempty"`
	Output  OutputMode `json:"output,omitempty"`

	// snippet
	Template string `json:"template,omitempty"`

	// transform
	Name string `json:"name,omitempty"`

	// notify
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`

	// chain
	Actions []string `json:"actions,omitempty"`

	// script
	Engine ScriptEngine `json:"engine,omitempty"`
	File   string       `json:"file,omitempty"`
	Code   string       `json:"code,omitempty"`
	Entry  string       `json:"entry,omitempty"`
}

// validate checks the variant-specific fields of a single action. Chain
// member resolution and cycle detection need the whole action map and are
// performed by Manifest.Validate.
func (a *Action) validate(id string) error {
	switch a.Type {
	case ActionExternalCommand:
		if a.Command == "" {
			return fmt.Errorf("%w (action %q)", ErrMissingCommand, id)
		}
		switch a.Input {
		case InputNone, InputWholeFile, InputSelection:
		default:
			return fmt.Errorf("%w: %q (action %q)", ErrInvalidInputMode, a.Input, id)
		}
		switch a.Output {
		case OutputReplaceWholeFile, OutputReplaceSelection, OutputDiscard:
		default:
			return fmt.Errorf("%w: %q (action %q)", ErrInvalidOutputMode, a.Output, id)
		}
	case ActionSnippet:
		if a.Template == "" {
			return fmt.Errorf("%w (action %q)", ErrMissingTemplate, id)
		}
	case ActionTransform:
		if _, ok := textop.Lookup(a.Name); !ok {
			return fmt.Errorf("%w: %q (action %q)", ErrUnknownTransform, a.Name, id)
		}
	case ActionNotify:
		if a.Message == "" {
			return fmt.Errorf("%w (action %q)", ErrMissingMessage, id)
		}
	case ActionChain:
		if len(a.Actions) == 0 {
			return fmt.Errorf("%w (action %q)", ErrEmptyChain, id)
		}
	case ActionScript:
		switch a.Engine {
		case EngineLua, EngineStarlark:
		default:
			return fmt.Errorf("%w: %q (action %q)", ErrUnknownEngine, a.Engine, id)
		}
		if (a.File == "") == (a.Code == "") {
			return fmt.Errorf("%w (action %q)", ErrScriptSource, id)
		}
		if a.File != "" && !filepath.IsLocal(a.File) {
			return fmt.Errorf("%w: %q (action %q)", ErrScriptEscape, a.File, id)
		}
	default:
		return fmt.Errorf("%w: %q (action %q)", ErrUnknownActionType, a.Type, id)
	}
	return nil
}

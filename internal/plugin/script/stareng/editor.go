package stareng

import (
	"errors"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/quill-editor/quill/internal/plugin/bridge"
)

// newEditorModule builds the capability object injected as the pre-bound
// global "editor". Bridge failures become Starlark errors except the
// no-file case, which surfaces as None.
func newEditorModule(b bridge.Bridge) *starlarkstruct.Module {
	return &starlarkstruct.Module{
		Name: "editor",
		Members: starlark.StringDict{
			"get_text":          starlark.NewBuiltin("get_text", getText(b)),
			"set_text":          starlark.NewBuiltin("set_text", setText(b)),
			"get_selection":     starlark.NewBuiltin("get_selection", getSelection(b)),
			"replace_selection": starlark.NewBuiltin("replace_selection", replaceSelection(b)),
			"get_cursor":        starlark.NewBuiltin("get_cursor", getCursor(b)),
			"set_cursor":        starlark.NewBuiltin("set_cursor", setCursor(b)),
			"get_file_path":     starlark.NewBuiltin("get_file_path", getFilePath(b)),
			"get_language":      starlark.NewBuiltin("get_language", getLanguage(b)),
			"notify":            starlark.NewBuiltin("notify", notify(b)),
		},
	}
}

type builtinFunc func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error)

func getText(b bridge.Bridge) builtinFunc {
	return func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
			return nil, err
		}
		text, err := b.Text()
		if err != nil {
			return nil, err
		}
		return starlark.String(text), nil
	}
}

func setText(b bridge.Bridge) builtinFunc {
	return func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var text string
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "text", &text); err != nil {
			return nil, err
		}
		if err := b.SetText(text); err != nil {
			return nil, err
		}
		return starlark.None, nil
	}
}

func getSelection(b bridge.Bridge) builtinFunc {
	return func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
			return nil, err
		}
		text, _, err := b.Selection()
		if err != nil {
			return nil, err
		}
		return starlark.String(text), nil
	}
}

func replaceSelection(b bridge.Bridge) builtinFunc {
	return func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var text string
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "text", &text); err != nil {
			return nil, err
		}
		if err := b.ReplaceSelection(text); err != nil {
			return nil, err
		}
		return starlark.None, nil
	}
}

func getCursor(b bridge.Bridge) builtinFunc {
	return func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
			return nil, err
		}
		pos, err := b.Cursor()
		if err != nil {
			return nil, err
		}
		return starlark.Tuple{starlark.MakeInt(pos.Line), starlark.MakeInt(pos.Col)}, nil
	}
}

func setCursor(b bridge.Bridge) builtinFunc {
	return func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var line, col int
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "line", &line, "col", &col); err != nil {
			return nil, err
		}
		if err := b.SetCursor(bridge.Position{Line: line, Col: col}); err != nil {
			return nil, err
		}
		return starlark.None, nil
	}
}

func getFilePath(b bridge.Bridge) builtinFunc {
	return func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
			return nil, err
		}
		path, err := b.FilePath()
		if err != nil {
			if errors.Is(err, bridge.ErrNoFile) {
				return starlark.None, nil
			}
			return nil, err
		}
		return starlark.String(path), nil
	}
}

func getLanguage(b bridge.Bridge) builtinFunc {
	return func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
			return nil, err
		}
		language, err := b.Language()
		if err != nil {
			return nil, err
		}
		return starlark.String(language), nil
	}
}

func notify(b bridge.Bridge) builtinFunc {
	return func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var message, title string
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "message", &message, "title?", &title); err != nil {
			return nil, err
		}
		if err := b.Notify(message, title); err != nil {
			return nil, err
		}
		return starlark.None, nil
	}
}

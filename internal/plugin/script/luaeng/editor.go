package luaeng

import (
	"errors"

	lua "github.com/yuin/gopher-lua"

	"github.com/quill-editor/quill/internal/plugin/bridge"
)

// registerEditor installs the capability object as the pre-bound global
// "editor". Every function maps one bridge operation; bridge failures are
// raised as Lua errors except the no-file case, which surfaces as nil.
func registerEditor(L *lua.LState, b bridge.Bridge) {
	mod := L.NewTable()

	// get_text() -> string
	L.SetField(mod, "get_text", L.NewFunction(func(L *lua.LState) int {
		text, err := b.Text()
		if err != nil {
			raiseBridge(L, "get_text", err)
			return 0
		}
		L.Push(lua.LString(text))
		return 1
	}))

	// set_text(text)
	L.SetField(mod, "set_text", L.NewFunction(func(L *lua.LState) int {
		text := L.CheckString(1)
		if err := b.SetText(text); err != nil {
			raiseBridge(L, "set_text", err)
			return 0
		}
		return 0
	}))

	// get_selection() -> string
	L.SetField(mod, "get_selection", L.NewFunction(func(L *lua.LState) int {
		text, _, err := b.Selection()
		if err != nil {
			raiseBridge(L, "get_selection", err)
			return 0
		}
		L.Push(lua.LString(text))
		return 1
	}))

	// replace_selection(text)
	L.SetField(mod, "replace_selection", L.NewFunction(func(L *lua.LState) int {
		text := L.CheckString(1)
		if err := b.ReplaceSelection(text); err != nil {
			raiseBridge(L, "replace_selection", err)
			return 0
		}
		return 0
	}))

	// get_cursor() -> line, col
	L.SetField(mod, "get_cursor", L.NewFunction(func(L *lua.LState) int {
		pos, err := b.Cursor()
		if err != nil {
			raiseBridge(L, "get_cursor", err)
			return 0
		}
		L.Push(lua.LNumber(pos.Line))
		L.Push(lua.LNumber(pos.Col))
		return 2
	}))

	// set_cursor(line, col)
	L.SetField(mod, "set_cursor", L.NewFunction(func(L *lua.LState) int {
		line := L.CheckInt(1)
		col := L.CheckInt(2)
		if err := b.SetCursor(bridge.Position{Line: line, Col: col}); err != nil {
			raiseBridge(L, "set_cursor", err)
			return 0
		}
		return 0
	}))

	// get_file_path() -> string | nil
	L.SetField(mod, "get_file_path", L.NewFunction(func(L *lua.LState) int {
		path, err := b.FilePath()
		if err != nil {
			if errors.Is(err, bridge.ErrNoFile) {
				L.Push(lua.LNil)
				return 1
			}
			raiseBridge(L, "get_file_path", err)
			return 0
		}
		L.Push(lua.LString(path))
		return 1
	}))

	// get_language() -> string
	L.SetField(mod, "get_language", L.NewFunction(func(L *lua.LState) int {
		language, err := b.Language()
		if err != nil {
			raiseBridge(L, "get_language", err)
			return 0
		}
		L.Push(lua.LString(language))
		return 1
	}))

	// notify(message [, title])
	L.SetField(mod, "notify", L.NewFunction(func(L *lua.LState) int {
		message := L.CheckString(1)
		title := L.OptString(2, "")
		if err := b.Notify(message, title); err != nil {
			raiseBridge(L, "notify", err)
			return 0
		}
		return 0
	}))

	L.SetGlobal("editor", mod)
}

// Package luaeng implements the Lua script engine on gopher-lua.
//
// Each Run gets a fresh sandboxed state: only the base, table, string, and
// math libraries are opened, the code-loading primitives are removed, and
// the io, os, debug, and package libraries are never registered. The only
// external capability is the injected editor object.
package luaeng

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/quill-editor/quill/internal/plugin/bridge"
	"github.com/quill-editor/quill/internal/plugin/script"
)

// EngineName is the identifier used in action definitions.
const EngineName = "lua"

// Engine runs Lua plugin scripts.
type Engine struct{}

// New creates the Lua engine.
func New() *Engine {
	return &Engine{}
}

// Name returns "lua".
func (e *Engine) Name() string {
	return EngineName
}

// Run executes source in a fresh sandboxed state and calls entryPoint with
// no arguments. Execution blocks until the entry point returns.
func (e *Engine) Run(source, entryPoint string, b bridge.Bridge) (err error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibraries(L)
	sandbox(L)
	registerEditor(L, b)

	defer func() {
		if r := recover(); r != nil {
			err = script.Errorf(EngineName, "panic: %v", r)
		}
	}()

	if err := L.DoString(source); err != nil {
		return script.Errorf(EngineName, "load failed: %v", err)
	}

	fn := L.GetGlobal(entryPoint)
	if fn == lua.LNil {
		return script.Errorf(EngineName, "entry point %q not found", entryPoint)
	}
	if fn.Type() != lua.LTFunction {
		return script.Errorf(EngineName, "entry point %q is not a function (got %s)", entryPoint, fn.Type())
	}

	L.Push(fn)
	if err := L.PCall(0, 0, nil); err != nil {
		return script.Errorf(EngineName, "%v", err)
	}
	return nil
}

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Intentionally not opened: io, os, debug, package.
}

// sandbox removes the base-library primitives that load code from strings
// or files. With the package library never opened, require does not exist
// either, so the global environment is closed over what was registered
// above plus the editor object.
func sandbox(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// raiseBridge converts a bridge failure into a Lua error.
func raiseBridge(L *lua.LState, op string, err error) {
	L.RaiseError("editor.%s: %v", op, err)
}

// Package stareng implements the Starlark script engine.
//
// Starlark is the Python-dialect engine: its evaluation namespace has no
// module-import mechanism (load is refused), no file-handle constructors,
// no dynamic code-execution primitives, and no process-spawning primitives.
// The universe is the safe Starlark builtin set plus the injected editor
// object; a script that reaches for open, exec, or an import fails to
// resolve and is reported as a script error.
package stareng

import (
	"errors"
	"fmt"

	"go.starlark.net/starlark"

	"github.com/quill-editor/quill/internal/plugin/bridge"
	"github.com/quill-editor/quill/internal/plugin/script"
)

// EngineName is the identifier used in action definitions.
const EngineName = "starlark"

// Engine runs Starlark plugin scripts.
type Engine struct{}

// New creates the Starlark engine.
func New() *Engine {
	return &Engine{}
}

// Name returns "starlark".
func (e *Engine) Name() string {
	return EngineName
}

// Run executes source in a restricted namespace and calls entryPoint with
// no arguments. Execution blocks until the entry point returns.
func (e *Engine) Run(source, entryPoint string, b bridge.Bridge) error {
	thread := &starlark.Thread{
		Name: "plugin",
		Load: func(_ *starlark.Thread, module string) (starlark.StringDict, error) {
			return nil, fmt.Errorf("load(%q): module loading is not available to plugins", module)
		},
	}

	predeclared := starlark.StringDict{
		"editor": newEditorModule(b),
	}

	globals, err := starlark.ExecFile(thread, "plugin.star", source, predeclared)
	if err != nil {
		return script.Errorf(EngineName, "%s", evalMessage(err))
	}

	fn, ok := globals[entryPoint]
	if !ok {
		return script.Errorf(EngineName, "entry point %q not found", entryPoint)
	}
	if _, ok := fn.(starlark.Callable); !ok {
		return script.Errorf(EngineName, "entry point %q is not callable (got %s)", entryPoint, fn.Type())
	}

	if _, err := starlark.Call(thread, fn, nil, nil); err != nil {
		return script.Errorf(EngineName, "%s", evalMessage(err))
	}
	return nil
}

// evalMessage prefers the backtraced form of Starlark evaluation errors.
func evalMessage(err error) string {
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		return evalErr.Backtrace()
	}
	return err.Error()
}

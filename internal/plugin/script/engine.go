// Package script defines the uniform contract over the embedded script
// engines.
//
// Each engine runs untrusted plugin-supplied source in a restricted
// environment whose only external capability is the injected editor object
// backed by the bridge. Filesystem, network, and process access are not
// reachable from scripts.
package script

import (
	"fmt"

	"github.com/quill-editor/quill/internal/plugin/bridge"
)

// Engine runs plugin scripts. Implementations load source, locate the named
// entry point, and invoke it with no arguments; the capability object is
// injected as a pre-bound global named "editor", not passed positionally.
// Scripts communicate results to the host exclusively by calling editor
// methods during execution.
type Engine interface {
	// Name returns the engine identifier used in action definitions.
	Name() string

	// Run executes source and invokes entryPoint. Any interpreter-level
	// failure (syntax error, missing entry point, unhandled runtime error)
	// is returned as an *Error tagged with the engine name.
	Run(source, entryPoint string, b bridge.Bridge) error
}

// Error reports an interpreter-level failure, tagged with the engine that
// produced it.
type Error struct {
	Engine  string
	Message string
}

func (e *Error) Error() string {
	return "script(" + e.Engine + "): " + e.Message
}

// Errorf builds an engine-tagged Error.
func Errorf(engine, format string, args ...any) *Error {
	return &Error{Engine: engine, Message: fmt.Sprintf(format, args...)}
}

package exec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEngineUnavailable is returned when a script action names an engine the
// executor has no adapter for.
var ErrEngineUnavailable = errors.New("script engine unavailable")

// ActionError reports a failed action execution with enough detail to
// identify the offending plugin and action. For chains, Member names the
// first failing member; for external commands, ExitCode and Stderr carry
// the subprocess failure.
type ActionError struct {
	Plugin   string
	Action   string
	Member   string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ActionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "action %q (plugin %q)", e.Action, e.Plugin)
	if e.Member != "" {
		fmt.Fprintf(&b, " member %q", e.Member)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	if e.ExitCode > 0 {
		fmt.Fprintf(&b, " (exit %d)", e.ExitCode)
	}
	if e.Stderr != "" {
		fmt.Fprintf(&b, ": %s", strings.TrimSpace(e.Stderr))
	}
	return b.String()
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

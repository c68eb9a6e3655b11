package exec

import (
	"bytes"
	"errors"
	"fmt"
	osexec "os/exec"
	"strings"

	"github.com/quill-editor/quill/internal/plugin"
	"github.com/quill-editor/quill/internal/plugin/bridge"
)

// runExternal spawns the configured shell command, pipes the selected input
// to its stdin, and blocks until exit. A non-zero exit is a recoverable
// ActionError carrying captured stderr; the buffer is left untouched. On
// success the output mode governs what the captured stdout replaces.
func (e *Executor) runExternal(p *plugin.Plugin, id string, a plugin.Action, b bridge.Bridge) error {
	var input string
	useInput := false
	switch a.Input {
	case plugin.InputWholeFile:
		text, err := b.Text()
		if err != nil {
			return err
		}
		input = text
		useInput = true
	case plugin.InputSelection:
		selection, _, err := b.Selection()
		if err != nil {
			return err
		}
		input = selection
		useInput = true
	}

	cmd := osexec.Command("sh", "-c", a.Command)
	if useInput {
		// The reader is consumed to EOF, which closes the child's stdin.
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *osexec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return &ActionError{
			Plugin:   p.Name(),
			Action:   id,
			ExitCode: exitCode,
			Stderr:   stderr.String(),
			Err:      fmt.Errorf("command failed: %w", err),
		}
	}

	switch a.Output {
	case plugin.OutputReplaceWholeFile:
		return b.SetText(stdout.String())
	case plugin.OutputReplaceSelection:
		return b.ReplaceSelection(stdout.String())
	default:
		return nil // discard
	}
}

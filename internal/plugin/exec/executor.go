// Package exec interprets action definitions against the live editor
// through the capability bridge.
//
// The executor runs synchronously on the host's event loop: no action or
// script runs concurrently with another, so editor state needs no locking
// discipline here. External commands and scripts block until they return;
// there is no timeout or cancellation path.
package exec

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/quill-editor/quill/internal/plugin"
	"github.com/quill-editor/quill/internal/plugin/bridge"
	"github.com/quill-editor/quill/internal/plugin/script"
	"github.com/quill-editor/quill/internal/plugin/script/luaeng"
	"github.com/quill-editor/quill/internal/plugin/script/stareng"
	"github.com/quill-editor/quill/internal/plugin/textop"
)

// Executor runs plugin actions.
type Executor struct {
	engines map[plugin.ScriptEngine]script.Engine
	now     func() time.Time
}

// Option configures an Executor.
type Option func(*Executor)

// WithClock overrides the clock used for snippet timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		e.now = now
	}
}

// WithEngine registers or replaces a script engine.
func WithEngine(tag plugin.ScriptEngine, eng script.Engine) Option {
	return func(e *Executor) {
		e.engines[tag] = eng
	}
}

// NewExecutor creates an executor with the Lua and Starlark engines
// registered.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		engines: map[plugin.ScriptEngine]script.Engine{
			plugin.EngineLua:      luaeng.New(),
			plugin.EngineStarlark: stareng.New(),
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute resolves and runs the named action of a plugin against the live
// editor. Failures are returned as *ActionError identifying the plugin and
// action; script failures additionally unwrap to *script.Error.
func (e *Executor) Execute(p *plugin.Plugin, actionID string, b bridge.Bridge) error {
	a, ok := p.Manifest.Action(actionID)
	if !ok {
		return &ActionError{Plugin: p.Name(), Action: actionID, Err: plugin.ErrActionNotFound}
	}
	if err := e.run(p, actionID, a, b); err != nil {
		if ae, ok := err.(*ActionError); ok {
			return ae
		}
		return &ActionError{Plugin: p.Name(), Action: actionID, Err: err}
	}
	return nil
}

// RunTrigger runs the action bound to a trigger.
func (e *Executor) RunTrigger(p *plugin.Plugin, t *plugin.Trigger, b bridge.Bridge) error {
	return e.Execute(p, t.ActionID, b)
}

// Dispatch fires every trigger of the given kind whose context filter
// matches the current editor state, in deterministic registry order. Each
// failure is surfaced through the notification channel and does not
// suppress the remaining triggers. The collected failures are returned.
func (e *Executor) Dispatch(reg *plugin.Registry, kind plugin.TriggerKind, b bridge.Bridge) []error {
	ctx, err := plugin.SnapshotContext(b)
	if err != nil {
		return []error{err}
	}

	var errs []error
	for _, m := range reg.TriggersFor(kind, ctx) {
		if err := e.RunTrigger(m.Plugin, m.Trigger, b); err != nil {
			errs = append(errs, err)
			_ = b.Notify(err.Error(), "Plugin error")
		}
	}
	return errs
}

// run dispatches on the action variant.
func (e *Executor) run(p *plugin.Plugin, id string, a plugin.Action, b bridge.Bridge) error {
	switch a.Type {
	case plugin.ActionTransform:
		return e.runTransform(a, b)
	case plugin.ActionSnippet:
		return e.runSnippet(a, b)
	case plugin.ActionNotify:
		return b.Notify(a.Message, a.Title)
	case plugin.ActionExternalCommand:
		return e.runExternal(p, id, a, b)
	case plugin.ActionChain:
		return e.runChain(p, id, a, b)
	case plugin.ActionScript:
		return e.runScript(p, a, b)
	default:
		// Unreachable for validated manifests.
		return fmt.Errorf("%w: %q", plugin.ErrUnknownActionType, a.Type)
	}
}

// runTransform applies the named pure operation to the selection if one
// exists, otherwise to the whole buffer, and replaces the operand.
func (e *Executor) runTransform(a plugin.Action, b bridge.Bridge) error {
	fn, ok := textop.Lookup(a.Name)
	if !ok {
		return fmt.Errorf("%w: %q", plugin.ErrUnknownTransform, a.Name)
	}

	selection, _, err := b.Selection()
	if err != nil {
		return err
	}
	if selection != "" {
		return b.ReplaceSelection(fn(selection))
	}

	text, err := b.Text()
	if err != nil {
		return err
	}
	return b.SetText(fn(text))
}

// runChain executes member actions strictly in list order against the live
// buffer, so mutations from earlier members are visible to later ones. The
// chain aborts at the first failure, reporting the failing member. Earlier
// members are not rolled back.
func (e *Executor) runChain(p *plugin.Plugin, id string, a plugin.Action, b bridge.Bridge) error {
	for _, member := range a.Actions {
		ma, ok := p.Manifest.Action(member)
		if !ok {
			return &ActionError{Plugin: p.Name(), Action: id, Member: member, Err: plugin.ErrActionNotFound}
		}
		if err := e.run(p, member, ma, b); err != nil {
			return &ActionError{Plugin: p.Name(), Action: id, Member: member, Err: err}
		}
	}
	return nil
}

// runScript loads the action's source and delegates to the named engine.
func (e *Executor) runScript(p *plugin.Plugin, a plugin.Action, b bridge.Bridge) error {
	eng, ok := e.engines[a.Engine]
	if !ok {
		return fmt.Errorf("%w: %q", ErrEngineUnavailable, a.Engine)
	}

	source := a.Code
	if a.File != "" {
		// Re-checked at execution time even though validation rejects it,
		// since the manifest on disk may have changed underneath us.
		if !filepath.IsLocal(a.File) {
			return fmt.Errorf("%w: %q", plugin.ErrScriptEscape, a.File)
		}
		data, err := os.ReadFile(filepath.Join(p.Dir, a.File))
		if err != nil {
			return script.Errorf(eng.Name(), "load failed: %v", err)
		}
		source = string(data)
	}

	return eng.Run(source, a.Entry, b)
}

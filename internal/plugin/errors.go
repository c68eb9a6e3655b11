package plugin

import (
	"errors"
	"fmt"
)

// Manifest validation errors.
var (
	ErrMissingName        = errors.New("manifest: name is required")
	ErrInvalidName        = errors.New("manifest: name must be alphanumeric with hyphens")
	ErrInvalidVersion     = errors.New("manifest: version must be valid semver")
	ErrMissingTriggerID   = errors.New("manifest: trigger id is required")
	ErrDuplicateTrigger   = errors.New("manifest: duplicate trigger id")
	ErrUnknownTriggerKind = errors.New("manifest: unknown trigger type")
	ErrMissingActionRef   = errors.New("manifest: trigger action_id is required")
	ErrDanglingAction     = errors.New("manifest: trigger references unknown action")
	ErrInvalidPattern     = errors.New("manifest: invalid file pattern")
	ErrUnknownActionType  = errors.New("manifest: unknown action type")
	ErrMissingCommand     = errors.New("manifest: external_command requires a command")
	ErrInvalidInputMode   = errors.New("manifest: invalid input mode")
	ErrInvalidOutputMode  = errors.New("manifest: invalid output mode")
	ErrMissingTemplate    = errors.New("manifest: snippet requires a template")
	ErrUnknownTransform   = errors.New("manifest: unknown transform operation")
	ErrMissingMessage     = errors.New("manifest: notify requires a message")
	ErrEmptyChain         = errors.New("manifest: chain requires at least one action")
	ErrDanglingChain      = errors.New("manifest: chain references unknown action")
	ErrCyclicChain        = errors.New("manifest: cyclic chain detected")
	ErrUnknownEngine      = errors.New("manifest: unknown script engine")
	ErrScriptSource       = errors.New("manifest: script requires exactly one of file or code")
	ErrScriptEscape       = errors.New("manifest: script file escapes plugin directory")
)

// Registry errors.
var (
	// ErrPluginNotFound is returned when a plugin cannot be located.
	ErrPluginNotFound = errors.New("plugin not found")

	// ErrActionNotFound is returned when an action id does not resolve.
	ErrActionNotFound = errors.New("action not found")

	// ErrTriggerNotFound is returned when a trigger id does not resolve.
	ErrTriggerNotFound = errors.New("trigger not found")
)

// DiscoveryError reports an unreadable plugin root directory. Per-plugin
// failures never produce a DiscoveryError; they are recorded as
// PluginErrors on the registry instead.
type DiscoveryError struct {
	Root string
	Err  error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("plugin discovery: %s: %v", e.Root, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// PluginError reports a single malformed or self-inconsistent plugin.
// The plugin is rejected wholesale; sibling plugins are unaffected.
type PluginError struct {
	Plugin string // plugin name, or directory name if the manifest is unreadable
	Dir    string
	Err    error
}

func (e *PluginError) Error() string {
	return fmt.Sprintf("plugin %q: %v", e.Plugin, e.Err)
}

func (e *PluginError) Unwrap() error {
	return e.Err
}

// Package plugin implements Quill's trigger/action plugin engine.
//
// A plugin is a directory under the plugin root containing a plugin.json
// definition file. The definition declares triggers (when something should
// happen) and actions (what should happen):
//
//	~/.config/quill/plugins/myplugin/
//	├── plugin.json
//	└── format.lua          # scripts referenced by script actions
//
// # Definition file
//
//	{
//	  "name": "my-plugin",
//	  "version": "1.0.0",
//	  "triggers": [
//	    {
//	      "id": "format-on-save",
//	      "type": "on_save",
//	      "action_id": "format",
//	      "context": {"languages": ["go"], "file_patterns": ["*.go"]}
//	    }
//	  ],
//	  "actions": {
//	    "format": {
//	      "type": "external_command",
//	      "command": "gofmt",
//	      "input": "whole_file",
//	      "output": "replace_whole_file"
//	    }
//	  }
//	}
//
// Trigger types are command, shortcut, on_save, and on_open. Action types
// are external_command, snippet, notify, transform, chain, and script.
// Script actions name an engine ("lua" or "starlark") and either a file
// relative to the plugin directory or inline code.
//
// # Validation
//
// Plugins fail closed: a manifest with an unknown trigger or action type, a
// dangling action reference, or a cyclic chain is rejected wholesale at
// load time. Each plugin validates independently, so one malformed plugin
// never blocks its siblings; failures are recorded on the registry and
// reported through the notification channel.
//
// # Snapshots
//
// Load produces an immutable Registry snapshot. Store holds the current
// snapshot behind an atomic pointer; Reload re-runs discovery and swaps the
// snapshot wholesale while in-flight executions keep the one they started
// with.
//
// Execution lives in the exec subpackage, the editor capability surface in
// bridge, and the embedded script engines in script/luaeng and
// script/stareng.
package plugin

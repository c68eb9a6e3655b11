package plugin

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// writePlugin creates root/<dir>/plugin.json with the given contents.
func writePlugin(t *testing.T, root, dir, manifest string) {
	t.Helper()
	pluginDir := filepath.Join(root, dir)
	if err := os.MkdirAll(pluginDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(pluginDir, ManifestFile), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
}

const notifyManifest = `{
  "name": "%NAME%",
  "triggers": [{"id": "t", "type": "on_save", "action_id": "say"}],
  "actions": {"say": {"type": "notify", "message": "hi"}}
}`

func notifyPlugin(name string) string {
	return strings.ReplaceAll(notifyManifest, "%NAME%", name)
}

func TestLoadUnreadableRoot(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("Load() should fail on a missing root")
	}
	var discErr *DiscoveryError
	if !errors.As(err, &discErr) {
		t.Errorf("error = %T, want *DiscoveryError", err)
	}
}

func TestLoadSkipsNonPluginEntries(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "good", notifyPlugin("good"))
	// A stray file and an empty directory are not plugins and not errors.
	if err := os.WriteFile(filepath.Join(root, "README.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}

	reg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(reg.Plugins()) != 1 {
		t.Errorf("got %d plugins, want 1", len(reg.Plugins()))
	}
	if len(reg.Errors()) != 0 {
		t.Errorf("got %d errors, want 0: %v", len(reg.Errors()), reg.Errors())
	}
}

func TestLoadIsolatesMalformedPlugins(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "alpha", notifyPlugin("alpha"))
	writePlugin(t, root, "broken", `{"name": "broken", "actions": {"a": {"type": "teleport"}}}`)
	writePlugin(t, root, "garbled", `{"name": "garbled", `)
	writePlugin(t, root, "zeta", notifyPlugin("zeta"))

	reg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(reg.Plugins()) != 2 {
		t.Fatalf("got %d plugins, want 2", len(reg.Plugins()))
	}
	if len(reg.Errors()) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(reg.Errors()), reg.Errors())
	}

	// Names are recovered even from manifests that failed to parse.
	names := map[string]bool{}
	for _, pe := range reg.Errors() {
		names[pe.Plugin] = true
	}
	if !names["broken"] || !names["garbled"] {
		t.Errorf("error plugin names = %v", names)
	}
}

func TestLoadOrderIsDeterministic(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "charlie", notifyPlugin("charlie"))
	writePlugin(t, root, "alpha", notifyPlugin("alpha"))
	writePlugin(t, root, "bravo", notifyPlugin("bravo"))

	reg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	var got []string
	for _, p := range reg.Plugins() {
		got = append(got, p.Name())
	}
	want := []string{"alpha", "bravo", "charlie"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("load order = %v, want %v", got, want)
	}
}

func TestLoadRejectsDuplicateNames(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "dir-a", notifyPlugin("same"))
	writePlugin(t, root, "dir-b", notifyPlugin("same"))

	reg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(reg.Plugins()) != 1 {
		t.Errorf("got %d plugins, want 1", len(reg.Plugins()))
	}
	if len(reg.Errors()) != 1 {
		t.Errorf("got %d errors, want 1", len(reg.Errors()))
	}
}

func TestTriggersFor(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "first", `{
	  "name": "first",
	  "triggers": [
	    {"id": "save-go", "type": "on_save", "action_id": "say",
	     "context": {"languages": ["go"]}},
	    {"id": "open-any", "type": "on_open", "action_id": "say"}
	  ],
	  "actions": {"say": {"type": "notify", "message": "hi"}}
	}`)
	writePlugin(t, root, "second", `{
	  "name": "second",
	  "triggers": [
	    {"id": "save-any", "type": "on_save", "action_id": "say"}
	  ],
	  "actions": {"say": {"type": "notify", "message": "ho"}}
	}`)

	reg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	goCtx := &Context{Language: "go", FilePath: "main.go"}
	matches := reg.TriggersFor(KindOnSave, goCtx)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].Trigger.ID != "save-go" || matches[1].Trigger.ID != "save-any" {
		t.Errorf("match order = %s, %s", matches[0].Trigger.ID, matches[1].Trigger.ID)
	}

	// Language filter excludes the gated trigger.
	pyCtx := &Context{Language: "python", FilePath: "main.py"}
	matches = reg.TriggersFor(KindOnSave, pyCtx)
	if len(matches) != 1 || matches[0].Trigger.ID != "save-any" {
		t.Errorf("python matches = %v", matches)
	}

	// Kind filter.
	matches = reg.TriggersFor(KindOnOpen, goCtx)
	if len(matches) != 1 || matches[0].Trigger.ID != "open-any" {
		t.Errorf("on_open matches = %v", matches)
	}

	if matches := reg.TriggersFor(KindShortcut, goCtx); len(matches) != 0 {
		t.Errorf("shortcut matches = %v, want none", matches)
	}
}

func TestStoreReloadIdempotent(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "alpha", notifyPlugin("alpha"))
	writePlugin(t, root, "beta", notifyPlugin("beta"))

	store := NewStore(root)
	first, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	second, err := store.Reload()
	if err != nil {
		t.Fatalf("Reload() error: %v", err)
	}

	// No filesystem change: the snapshots are equivalent.
	if len(first.Plugins()) != len(second.Plugins()) {
		t.Fatalf("plugin counts differ: %d vs %d", len(first.Plugins()), len(second.Plugins()))
	}
	for i := range first.Plugins() {
		a, b := first.Plugins()[i], second.Plugins()[i]
		if a.Name() != b.Name() || !reflect.DeepEqual(a.Manifest.Triggers, b.Manifest.Triggers) {
			t.Errorf("plugin %d differs after reload", i)
		}
	}

	if first.Generation() == second.Generation() {
		t.Error("generations should differ across reloads")
	}
	if store.Current() != second {
		t.Error("Current() should return the newest snapshot")
	}
}

func TestStoreReloadKeepsOldSnapshotUsable(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "alpha", notifyPlugin("alpha"))

	store := NewStore(root)
	old, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// The plugin disappears before the reload.
	if err := os.RemoveAll(filepath.Join(root, "alpha")); err != nil {
		t.Fatal(err)
	}
	fresh, err := store.Reload()
	if err != nil {
		t.Fatalf("Reload() error: %v", err)
	}
	if len(fresh.Plugins()) != 0 {
		t.Errorf("fresh snapshot has %d plugins, want 0", len(fresh.Plugins()))
	}

	// An invocation that started against the old snapshot still resolves.
	if _, ok := old.Lookup("alpha"); !ok {
		t.Error("old snapshot should still contain alpha")
	}
}

package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/tidwall/gjson"
)

// Plugin is one validated plugin: its manifest plus the directory it was
// loaded from.
type Plugin struct {
	Manifest *Manifest
	Dir      string
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return p.Manifest.Name
}

// Registry is an immutable snapshot of every plugin discovered under one
// root directory. Reloading produces a new snapshot; a Registry is never
// mutated after Load returns.
type Registry struct {
	root       string
	generation uint64

	plugins []*Plugin // load order: sorted directory names
	byName  map[string]*Plugin
	errs    []*PluginError
}

// Load scans the immediate subdirectories of root and builds a registry
// snapshot. A malformed plugin is recorded in Errors and skipped; it never
// aborts discovery of its siblings. An unreadable root is a DiscoveryError.
func Load(root string) (*Registry, error) {
	return load(root, 1)
}

func load(root string, generation uint64) (*Registry, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, &DiscoveryError{Root: root, Err: err}
	}

	reg := &Registry{
		root:       root,
		generation: generation,
		byName:     make(map[string]*Plugin),
	}

	// os.ReadDir sorts by name, which fixes the load order.
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		manifestPath := filepath.Join(dir, ManifestFile)
		data, err := os.ReadFile(manifestPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue // not a plugin directory
			}
			reg.errs = append(reg.errs, &PluginError{Plugin: entry.Name(), Dir: dir, Err: err})
			continue
		}

		m, err := ParseManifest(data, dir)
		if err != nil {
			reg.errs = append(reg.errs, &PluginError{Plugin: manifestName(data, entry.Name()), Dir: dir, Err: err})
			continue
		}

		if _, exists := reg.byName[m.Name]; exists {
			reg.errs = append(reg.errs, &PluginError{
				Plugin: m.Name,
				Dir:    dir,
				Err:    fmt.Errorf("duplicate plugin name %q", m.Name),
			})
			continue
		}

		p := &Plugin{Manifest: m, Dir: dir}
		reg.plugins = append(reg.plugins, p)
		reg.byName[m.Name] = p
	}

	return reg, nil
}

// manifestName recovers the plugin name from manifest bytes that failed to
// parse or validate, so errors can still identify the offending plugin.
func manifestName(data []byte, fallback string) string {
	if name := gjson.GetBytes(data, "name").String(); name != "" {
		return name
	}
	return fallback
}

// Root returns the plugin root directory.
func (r *Registry) Root() string {
	return r.root
}

// Generation returns the snapshot generation, starting at 1.
func (r *Registry) Generation() uint64 {
	return r.generation
}

// Plugins returns all plugins in load order.
func (r *Registry) Plugins() []*Plugin {
	return r.plugins
}

// Lookup returns the plugin with the given name.
func (r *Registry) Lookup(name string) (*Plugin, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// Errors returns the per-plugin failures recorded during discovery.
func (r *Registry) Errors() []*PluginError {
	return r.errs
}

// Match pairs a trigger with the plugin that declared it.
type Match struct {
	Plugin  *Plugin
	Trigger *Trigger
}

// TriggersFor returns the triggers of the given kind whose context filter
// admits ctx, iterating plugins in load order and triggers in declaration
// order. Duplicate command labels across plugins are all returned; the
// presentation layer offers them as separate entries.
func (r *Registry) TriggersFor(kind TriggerKind, ctx *Context) []Match {
	var matches []Match
	for _, p := range r.plugins {
		for i := range p.Manifest.Triggers {
			t := &p.Manifest.Triggers[i]
			if t.Kind != kind {
				continue
			}
			if ctx != nil && !t.Context.Matches(ctx.Language, ctx.FilePath) {
				continue
			}
			matches = append(matches, Match{Plugin: p, Trigger: t})
		}
	}
	return matches
}

// Store holds the current registry snapshot behind an atomic pointer.
// Reload swaps the whole snapshot; invocations already holding the old
// snapshot continue against it unaffected.
type Store struct {
	root       string
	current    atomic.Pointer[Registry]
	generation atomic.Uint64
}

// NewStore creates a store for the given plugin root. Call Load before
// Current.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Load performs initial discovery and publishes the first snapshot.
func (s *Store) Load() (*Registry, error) {
	return s.Reload()
}

// Reload re-runs discovery and atomically replaces the snapshot.
func (s *Store) Reload() (*Registry, error) {
	reg, err := load(s.root, s.generation.Add(1))
	if err != nil {
		return nil, err
	}
	s.current.Store(reg)
	return reg, nil
}

// Current returns the newest snapshot, or nil before the first Load.
func (s *Store) Current() *Registry {
	return s.current.Load()
}

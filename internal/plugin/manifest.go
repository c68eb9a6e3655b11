package plugin

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// ManifestFile is the definition file looked up in each plugin directory.
const ManifestFile = "plugin.json"

// Manifest describes one plugin: its identity, its triggers in declaration
// order, and its actions keyed by id.
//
// A manifest either validates completely or the plugin is rejected
// wholesale; there is no partial load.
type Manifest struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Author      string `json:"author"`

	Triggers []Trigger         `json:"triggers"`
	Actions  map[string]Action `json:"actions"`

	// dir is the plugin directory; script file paths resolve against it.
	dir string
}

// namePattern validates plugin names.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*[a-z0-9]$|^[a-z]$`)

// semverPattern validates version strings (simplified semver).
var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.-]+)?(\+[a-zA-Z0-9.-]+)?$`)

// LoadManifest loads and validates a plugin manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data, filepath.Dir(path))
}

// ParseManifest parses and validates manifest JSON for a plugin rooted at
// dir.
func ParseManifest(data []byte, dir string) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	m.dir = dir
	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// applyDefaults sets default values for optional fields.
func (m *Manifest) applyDefaults() {
	if m.Version == "" {
		m.Version = "0.0.0"
	}
	for id, a := range m.Actions {
		changed := false
		if a.Type == ActionExternalCommand && a.Output == "" {
			a.Output = OutputDiscard
			changed = true
		}
		if a.Type == ActionScript && a.Entry == "" {
			a.Entry = "main"
			changed = true
		}
		if changed {
			m.Actions[id] = a
		}
	}
}

// Validate checks the manifest for completeness and self-consistency:
// identity fields, trigger kinds and action types drawn from their closed
// sets, every trigger's action reference resolving, and chains acyclic.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return ErrMissingName
	}
	if !namePattern.MatchString(m.Name) {
		return fmt.Errorf("%w: %s", ErrInvalidName, m.Name)
	}
	if !semverPattern.MatchString(m.Version) {
		return fmt.Errorf("%w: %s", ErrInvalidVersion, m.Version)
	}

	seen := make(map[string]bool, len(m.Triggers))
	for i := range m.Triggers {
		t := &m.Triggers[i]
		if t.ID == "" {
			return fmt.Errorf("%w at index %d", ErrMissingTriggerID, i)
		}
		if seen[t.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateTrigger, t.ID)
		}
		seen[t.ID] = true
		if !validTriggerKinds[t.Kind] {
			return fmt.Errorf("%w: %q (trigger %q)", ErrUnknownTriggerKind, t.Kind, t.ID)
		}
		if t.ActionID == "" {
			return fmt.Errorf("%w (trigger %q)", ErrMissingActionRef, t.ID)
		}
		if _, ok := m.Actions[t.ActionID]; !ok {
			return fmt.Errorf("%w: %q (trigger %q)", ErrDanglingAction, t.ActionID, t.ID)
		}
		if err := t.Context.validate(); err != nil {
			return fmt.Errorf("%w (trigger %q)", err, t.ID)
		}
	}

	for id, a := range m.Actions {
		if err := a.validate(id); err != nil {
			return err
		}
	}

	// Chains are checked after per-action validation so member actions are
	// known to be well-formed.
	for id, a := range m.Actions {
		if a.Type != ActionChain {
			continue
		}
		if err := m.checkChain(id, make(map[string]bool)); err != nil {
			return err
		}
	}

	return nil
}

// checkChain walks the chain closure rooted at id, rejecting dangling
// members and any member already on the current resolution path.
func (m *Manifest) checkChain(id string, path map[string]bool) error {
	if path[id] {
		return fmt.Errorf("%w: %q revisited", ErrCyclicChain, id)
	}
	a, ok := m.Actions[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrDanglingChain, id)
	}
	if a.Type != ActionChain {
		return nil
	}
	path[id] = true
	for _, member := range a.Actions {
		if err := m.checkChain(member, path); err != nil {
			return err
		}
	}
	delete(path, id)
	return nil
}

// Dir returns the plugin directory.
func (m *Manifest) Dir() string {
	return m.dir
}

// Action returns the action with the given id.
func (m *Manifest) Action(id string) (Action, bool) {
	a, ok := m.Actions[id]
	return a, ok
}

// TriggerByID returns the trigger with the given id.
func (m *Manifest) TriggerByID(id string) (*Trigger, bool) {
	for i := range m.Triggers {
		if m.Triggers[i].ID == id {
			return &m.Triggers[i], true
		}
	}
	return nil, false
}

// String returns "name vVersion".
func (m *Manifest) String() string {
	return fmt.Sprintf("%s v%s", m.Name, m.Version)
}

// Package preset stores named chart configurations on disk, one JSON
// file per name, next to a set of built-in starting points.
package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/figkit/figkit"
)

// ErrNotFound marks a lookup of a preset that does not exist.
var ErrNotFound = errors.New("preset not found")

// Entry is one stored configuration with its catalog metadata.
type Entry struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Builtin     bool               `json:"builtin,omitempty"`
	Config      figkit.ChartConfig `json:"config"`
}

// Store keeps user presets under Dir. Built-ins are always available
// and cannot be overwritten or deleted.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.Dir, name+".json")
}

// validName rejects anything that could escape the store directory.
func validName(name string) error {
	if name == "" {
		return fmt.Errorf("preset name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("invalid preset name %q", name)
	}
	return nil
}

// Save writes a preset. Built-in names are reserved.
func (s *Store) Save(name, description string, cfg figkit.ChartConfig) error {
	if err := validName(name); err != nil {
		return err
	}
	if _, ok := builtins[name]; ok {
		return fmt.Errorf("%q is a built-in preset", name)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	entry := Entry{Name: name, Description: description, Config: cfg}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(name), data, 0o644)
}

// Load resolves a preset by name, built-ins first.
func (s *Store) Load(name string) (Entry, error) {
	if e, ok := builtins[name]; ok {
		return e, nil
	}
	if err := validName(name); err != nil {
		return Entry{}, err
	}
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return Entry{}, fmt.Errorf("%q: %w", name, ErrNotFound)
		}
		return Entry{}, err
	}
	entry := Entry{Config: figkit.DefaultConfig()}
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, fmt.Errorf("preset %q: %w", name, err)
	}
	entry.Name = name
	return entry, nil
}

// Delete removes a user preset.
func (s *Store) Delete(name string) error {
	if _, ok := builtins[name]; ok {
		return fmt.Errorf("%q is a built-in preset", name)
	}
	if err := validName(name); err != nil {
		return err
	}
	if err := os.Remove(s.path(name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%q: %w", name, ErrNotFound)
		}
		return err
	}
	return nil
}

// List returns every preset, built-ins first, then the stored ones in
// name order.
func (s *Store) List() ([]Entry, error) {
	out := make([]Entry, 0, len(builtins))
	for _, name := range builtinNames {
		out = append(out, builtins[name])
	}
	files, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, err
	}
	var names []string
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(f.Name(), ".json"))
	}
	sort.Strings(names)
	for _, name := range names {
		entry, err := s.Load(name)
		if err != nil {
			continue // unreadable file, skip
		}
		out = append(out, entry)
	}
	return out, nil
}

// Package registry loads the project registry: the mapping from view keys
// (one per satellite/sector/imagery combination) to the wallpaper-engine
// project directory that renders that view.
//
// Two file shapes are accepted, because the registry is maintained by hand
// and both have been in circulation:
//
//	{"GOES-19_East_752W_Full_Disk_GeoColor_CIRA": {"project_path": "..."}}
//
//	[{"view_name": "GOES-19 East ...", "project_path": "..."}]
//
// Array records may name the view via "view_name" or "view_name_base"; the
// name is canonicalized into the key form on load.
package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// DescriptorName is the renderable project descriptor expected inside every
// registered project directory.
const DescriptorName = "project.json"

var (
	// ErrConfigMissing is returned when the registry file does not exist.
	// There is no fallback: without a registry nothing can be activated.
	ErrConfigMissing = errors.New("registry file missing")

	// ErrUnknownKey is returned when a resolved view key has no registry
	// entry. Callers check this before attempting any activation.
	ErrUnknownKey = errors.New("unknown view key")
)

// Entry is one registered view.
type Entry struct {
	Key         string
	ProjectPath string
}

// Registry is the loaded view-key → project mapping. Read-only after Load.
type Registry struct {
	entries map[string]Entry
}

// record is the array-shape registry element.
type record struct {
	ViewName     string `json:"view_name"`
	ViewNameBase string `json:"view_name_base"`
	ProjectPath  string `json:"project_path"`
}

// mapEntry is the object-shape registry value.
type mapEntry struct {
	ProjectPath string `json:"project_path"`
}

// Load reads the registry file at path. A missing file is ErrConfigMissing;
// a present but malformed file is a parse error, never silently ignored.
func Load(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigMissing, path)
		}
		return nil, fmt.Errorf("read registry %s: %w", path, err)
	}

	entries, err := parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &Registry{entries: entries}, nil
}

func parse(raw []byte) (map[string]Entry, error) {
	entries := make(map[string]Entry)

	switch firstToken(raw) {
	case '[':
		var recs []record
		if err := json.Unmarshal(raw, &recs); err != nil {
			return nil, err
		}
		for _, r := range recs {
			name := r.ViewName
			if name == "" {
				name = r.ViewNameBase
			}
			key := Canonicalize(name)
			if key == "" || r.ProjectPath == "" {
				return nil, fmt.Errorf("record missing view_name or project_path: %+v", r)
			}
			entries[key] = Entry{Key: key, ProjectPath: r.ProjectPath}
		}
	case '{':
		var m map[string]mapEntry
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		for name, v := range m {
			key := Canonicalize(name)
			if v.ProjectPath == "" {
				return nil, fmt.Errorf("entry %q missing project_path", name)
			}
			entries[key] = Entry{Key: key, ProjectPath: v.ProjectPath}
		}
	default:
		return nil, errors.New("registry must be a JSON object or array")
	}

	if len(entries) == 0 {
		return nil, errors.New("registry is empty")
	}
	return entries, nil
}

func firstToken(raw []byte) byte {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// Lookup returns the entry for key. Keys that miss verbatim are retried in
// canonical form, so callers may pass either the raw view name or the key.
func (r *Registry) Lookup(key string) (Entry, error) {
	if e, ok := r.entries[key]; ok {
		return e, nil
	}
	if e, ok := r.entries[Canonicalize(key)]; ok {
		return e, nil
	}
	return Entry{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// Descriptor resolves key to its project descriptor path and verifies the
// descriptor file exists. A registered project without a descriptor is a
// fatal condition: the rendering application cannot open it.
func (r *Registry) Descriptor(key string) (string, error) {
	e, err := r.Lookup(key)
	if err != nil {
		return "", err
	}
	p := filepath.Join(e.ProjectPath, DescriptorName)
	if _, err := os.Stat(p); err != nil {
		return "", fmt.Errorf("view %q: descriptor %s: %w", key, p, err)
	}
	return p, nil
}

// Keys returns all registered view keys, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of registered views.
func (r *Registry) Len() int { return len(r.entries) }

package model

import (
	"fmt"
	"strings"
)

// RegistryEntry is one tracked repository from the static registry document.
// Entries are immutable within a run.
type RegistryEntry struct {
	Name        string `json:"name"` // full "owner/repo" name
	Category    string `json:"category"`
	Active      bool   `json:"active"`
	Description string `json:"description"`
}

// ShortName returns the repository name without the owner prefix.
func (e RegistryEntry) ShortName() string {
	return ShortName(e.Name)
}

// Registry is the static list of tracked repositories.
type Registry struct {
	Repos []RegistryEntry `json:"repos"`
}

// Active returns the subset of entries marked active, in registry order.
func (r *Registry) Active() []RegistryEntry {
	active := make([]RegistryEntry, 0, len(r.Repos))
	for _, entry := range r.Repos {
		if entry.Active {
			active = append(active, entry)
		}
	}
	return active
}

// Validate checks that every active entry has an "owner/repo" name and that
// no two active entries share a short name. Short names key the per-repo
// detail documents on disk, so a collision would silently overwrite one
// repository's detail with another's.
func (r *Registry) Validate() error {
	seen := make(map[string]string, len(r.Repos))
	for _, entry := range r.Repos {
		if !entry.Active {
			continue
		}
		owner, name, ok := strings.Cut(entry.Name, "/")
		if !ok || owner == "" || name == "" {
			return fmt.Errorf("registry entry %q is not in owner/repo form", entry.Name)
		}
		if prev, dup := seen[name]; dup {
			return fmt.Errorf("registry entries %q and %q collide on short name %q", prev, entry.Name, name)
		}
		seen[name] = entry.Name
	}
	return nil
}

// ShortName returns the part of an "owner/repo" name after the slash.
// A name without a slash is returned unchanged.
func ShortName(fullName string) string {
	if _, name, ok := strings.Cut(fullName, "/"); ok {
		return name
	}
	return fullName
}

package shim

import (
	"sort"

	"github.com/sahilm/fuzzy"
)

// Source records where a shim definition was loaded from.
type Source struct {
	Path        string // shim file path
	Fingerprint string // BLAKE3 digest of the file contents (hex)
}

// Entry pairs a shim with its source file.
type Entry struct {
	Shim   *Shim
	Source Source
}

// Registry maps program base names to shims. It is read-only once built.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry builds a registry from entries. Later entries replace earlier
// ones with the same program name.
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		r.entries[e.Shim.Program()] = e
	}
	return r
}

// Lookup returns the shim registered for program.
func (r *Registry) Lookup(program string) (*Shim, bool) {
	if r == nil {
		return nil, false
	}
	e, ok := r.entries[program]
	if !ok {
		return nil, false
	}
	return e.Shim, true
}

// Source returns the source of the shim registered for program.
func (r *Registry) Source(program string) (Source, bool) {
	if r == nil {
		return Source{}, false
	}
	e, ok := r.entries[program]
	return e.Source, ok
}

// Programs returns all registered program names, sorted.
func (r *Registry) Programs() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered shims.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Suggest returns registered program names that fuzzy-match name, best first.
func (r *Registry) Suggest(name string) []string {
	if name == "" {
		return nil
	}
	programs := r.Programs()
	matches := fuzzy.Find(name, programs)
	suggestions := make([]string, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, m.Str)
	}
	return suggestions
}

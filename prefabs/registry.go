package prefabs

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/milk9111/outpost/ecs/component"
)

// Registry holds loaded archetypes by name. Archetype values are never
// mutated; a reload swaps the pointer.
type Registry struct {
	mu         sync.RWMutex
	logger     *log.Logger
	specs      map[string]ArchetypeSpec
	archetypes map[string]*component.Archetype
	files      map[string]string
}

func NewRegistry(logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		logger:     logger.With("module", "prefabs"),
		specs:      make(map[string]ArchetypeSpec),
		archetypes: make(map[string]*component.Archetype),
		files:      make(map[string]string),
	}
}

// LoadArchetypes loads every named archetype file.
func (r *Registry) LoadArchetypes(files ...string) error {
	for _, f := range files {
		if _, err := r.load(f); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) load(file string) (*component.Archetype, error) {
	spec, err := LoadArchetypeSpec(file)
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}
	a, err := spec.Archetype()
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", file, err)
	}

	r.mu.Lock()
	r.specs[spec.Name] = spec
	r.archetypes[spec.Name] = a
	r.files[cleanPrefabPath(file)] = spec.Name
	r.mu.Unlock()
	r.logger.Debug("archetype loaded", "name", spec.Name, "file", file)
	return a, nil
}

// Get returns a loaded archetype.
func (r *Registry) Get(name string) (*component.Archetype, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.archetypes[name]
	return a, ok
}

// Spec returns the raw spec an archetype was built from.
func (r *Registry) Spec(name string) (ArchetypeSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.specs[name]
	return s, ok
}

// Variant builds an archetype from a loaded spec plus per-spawn overrides.
func (r *Registry) Variant(name string, overrides map[string]any) (*component.Archetype, error) {
	if len(overrides) == 0 {
		if a, ok := r.Get(name); ok {
			return a, nil
		}
		return nil, fmt.Errorf("prefabs: unknown archetype %q", name)
	}
	base, ok := r.Spec(name)
	if !ok {
		return nil, fmt.Errorf("prefabs: unknown archetype %q", name)
	}
	spec, err := ApplyOverrides(base, overrides)
	if err != nil {
		return nil, err
	}
	return spec.Archetype()
}

// Names lists loaded archetypes in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.archetypes))
	for name := range r.archetypes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Reload re-reads the archetype file at path. It reports false for files the
// registry never loaded. On error the previous archetype stays in place.
func (r *Registry) Reload(path string) (*component.Archetype, bool, error) {
	name := Name(path)
	r.mu.RLock()
	_, known := r.files[name]
	r.mu.RUnlock()
	if !known {
		return nil, false, nil
	}
	a, err := r.load(name)
	if err != nil {
		r.logger.Error("archetype reload failed", "file", name, "err", err)
		return nil, true, err
	}
	r.logger.Info("archetype reloaded", "name", a.Name)
	return a, true, nil
}

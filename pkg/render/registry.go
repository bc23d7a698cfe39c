package render

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores targets by name, providing discovery and duplication
// safeguards.
type Registry struct {
	mu      sync.RWMutex
	targets map[string]Target
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		targets: make(map[string]Target),
	}
}

// DefaultRegistry returns a registry holding the training, inference and
// export-key targets.
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.MustRegister(TrainingTarget())
	registry.MustRegister(InferenceTarget())
	registry.MustRegister(ExportKeysTarget())
	return registry
}

// Register adds a target by its Name(). Duplicate names and duplicate output
// files return an error.
func (r *Registry) Register(target Target) error {
	if target == nil {
		return fmt.Errorf("render: target is required")
	}
	name := target.Name()
	if name == "" {
		return fmt.Errorf("render: target name is required")
	}
	if target.TemplateID() == "" {
		return fmt.Errorf("render: target %q has no template", name)
	}
	if target.Filename() == "" {
		return fmt.Errorf("render: target %q has no output file", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.targets[name]; exists {
		return fmt.Errorf("render: target %q already registered", name)
	}
	for _, existing := range r.targets {
		if existing.Filename() == target.Filename() {
			return fmt.Errorf("render: target %q writes %q, already claimed by %q", name, target.Filename(), existing.Name())
		}
	}

	r.targets[name] = target
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(target Target) {
	if err := r.Register(target); err != nil {
		panic(err)
	}
}

// Get retrieves a target by name.
func (r *Registry) Get(name string) (Target, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	target, ok := r.targets[name]
	if !ok {
		return nil, fmt.Errorf("render: target %q not found", name)
	}
	return target, nil
}

// MustGet panics if the target is missing.
func (r *Registry) MustGet(name string) Target {
	target, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return target
}

// List returns a sorted list of target names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a target is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.targets[name]
	return ok
}

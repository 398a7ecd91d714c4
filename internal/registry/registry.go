// Package registry holds the static dependency graph of the managed stack.
//
// The registry is populated once from configuration, validated (duplicate
// names, dangling dependency references, cycles), and is read-only for the
// duration of an orchestration run.
package registry

import (
	"stackctl/internal/config"
)

// Registry maps service names to their descriptors and remembers
// registration order for deterministic iteration.
type Registry struct {
	services map[string]config.ServiceDefinition
	names    []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		services: make(map[string]config.ServiceDefinition),
	}
}

// FromConfig builds a registry from a stack configuration and validates it.
// This is the normal construction path; Register/Validate are exposed
// separately for tests and programmatic assembly.
func FromConfig(cfg config.StackConfig) (*Registry, error) {
	r := New()
	for _, svc := range cfg.Services {
		if err := r.Register(svc); err != nil {
			return nil, err
		}
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds a service descriptor. It fails with DuplicateServiceError
// if the name is already taken. Dependencies are a set: a name listed more
// than once in DependsOn is stored once, so repeated listings cannot skew
// scheduling arithmetic downstream.
func (r *Registry) Register(def config.ServiceDefinition) error {
	if _, exists := r.services[def.Name]; exists {
		return &DuplicateServiceError{Name: def.Name}
	}
	def.DependsOn = dedupeNames(def.DependsOn)
	r.services[def.Name] = def
	r.names = append(r.names, def.Name)
	return nil
}

// dedupeNames returns names with repeats removed, keeping first-occurrence
// order. The input slice is left untouched.
func dedupeNames(names []string) []string {
	if len(names) < 2 {
		return names
	}
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// Lookup returns the descriptor for name, or UnknownServiceError.
func (r *Registry) Lookup(name string) (config.ServiceDefinition, error) {
	def, exists := r.services[name]
	if !exists {
		return config.ServiceDefinition{}, &UnknownServiceError{Name: name}
	}
	return def, nil
}

// Names returns all registered service names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered services.
func (r *Registry) Len() int {
	return len(r.services)
}

// Dependents returns the names of services that directly depend on name,
// in registration order.
func (r *Registry) Dependents(name string) []string {
	var dependents []string
	for _, candidate := range r.names {
		for _, dep := range r.services[candidate].DependsOn {
			if dep == name {
				dependents = append(dependents, candidate)
				break
			}
		}
	}
	return dependents
}

// Validate checks that every dependency reference resolves to a registered
// service and that the graph is acyclic. It fails with UnknownServiceError
// or CycleDetectedError naming the offending cycle.
func (r *Registry) Validate() error {
	for _, name := range r.names {
		for _, dep := range r.services[name].DependsOn {
			if _, exists := r.services[dep]; !exists {
				return &UnknownServiceError{Name: dep, ReferencedBy: name}
			}
		}
	}

	// DFS with three-color marking. A back-edge to a node on the current
	// path is a cycle.
	const (
		white = iota // unvisited
		gray         // on the current DFS path
		black        // fully explored
	)
	color := make(map[string]int, len(r.names))

	var visit func(name string, path []string) *CycleDetectedError
	visit = func(name string, path []string) *CycleDetectedError {
		color[name] = gray
		path = append(path, name)

		for _, dep := range r.services[name].DependsOn {
			switch color[dep] {
			case gray:
				// Trim the path down to where the cycle starts.
				start := 0
				for i, member := range path {
					if member == dep {
						start = i
						break
					}
				}
				cycle := append(append([]string{}, path[start:]...), dep)
				return &CycleDetectedError{Cycle: cycle}
			case white:
				if err := visit(dep, path); err != nil {
					return err
				}
			}
		}

		color[name] = black
		return nil
	}

	for _, name := range r.names {
		if color[name] == white {
			if err := visit(name, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

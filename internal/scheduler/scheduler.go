// Package scheduler computes the deterministic start order of the stack.
//
// The order is a topological sort of the validated dependency graph. Among
// services whose dependencies are all scheduled, ties are broken first by
// ascending priority tier, then by name, so two runs over the same registry
// always produce the same order. The reverse of the start order is the
// canonical shutdown order.
package scheduler

import (
	"sort"

	"stackctl/internal/registry"
)

// StartOrder returns the service names in a valid start order.
//
// The registry must already be validated; an unexpected cycle at this point
// is a programming error and is reported as CycleDetectedError naming the
// leftover services.
func StartOrder(reg *registry.Registry) ([]string, error) {
	names := reg.Names()

	remaining := make(map[string]int, len(names)) // name -> unscheduled dependency count
	for _, name := range names {
		def, err := reg.Lookup(name)
		if err != nil {
			return nil, err
		}
		remaining[name] = len(def.DependsOn)
	}

	order := make([]string, 0, len(names))
	scheduled := make(map[string]bool, len(names))

	for len(order) < len(names) {
		// Collect every service whose dependencies are all scheduled,
		// then peel the best candidate by (tier, name).
		var ready []string
		for _, name := range names {
			if !scheduled[name] && remaining[name] == 0 {
				ready = append(ready, name)
			}
		}
		if len(ready) == 0 {
			// All leftovers are on a cycle. Validation should have caught
			// this, but never loop forever on a bad graph.
			var leftover []string
			for _, name := range names {
				if !scheduled[name] {
					leftover = append(leftover, name)
				}
			}
			return nil, &registry.CycleDetectedError{Cycle: leftover}
		}

		sort.Slice(ready, func(i, j int) bool {
			a, _ := reg.Lookup(ready[i])
			b, _ := reg.Lookup(ready[j])
			if a.PriorityTier != b.PriorityTier {
				return a.PriorityTier < b.PriorityTier
			}
			return a.Name < b.Name
		})

		next := ready[0]
		order = append(order, next)
		scheduled[next] = true
		for _, dependent := range reg.Dependents(next) {
			remaining[dependent]--
		}
	}

	return order, nil
}

// Reverse returns a new slice with the elements of order reversed. The
// reverse of a realized start order is the shutdown order.
func Reverse(order []string) []string {
	reversed := make([]string, len(order))
	for i, name := range order {
		reversed[len(order)-1-i] = name
	}
	return reversed
}

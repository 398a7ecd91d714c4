package registry

import (
	"fmt"
	"strings"
)

// DuplicateServiceError is returned by Register when a service name is
// already taken.
type DuplicateServiceError struct {
	Name string
}

func (e *DuplicateServiceError) Error() string {
	return fmt.Sprintf("service %q is already registered", e.Name)
}

// UnknownServiceError is returned by Lookup for names that were never
// registered, and by Validate for dangling dependency references.
type UnknownServiceError struct {
	Name string
	// ReferencedBy is set when the unknown name was found in another
	// service's dependency list rather than in a direct lookup.
	ReferencedBy string
}

func (e *UnknownServiceError) Error() string {
	if e.ReferencedBy != "" {
		return fmt.Sprintf("service %q depends on unknown service %q", e.ReferencedBy, e.Name)
	}
	return fmt.Sprintf("unknown service %q", e.Name)
}

// CycleDetectedError is returned by Validate when the dependency graph
// contains a cycle. Cycle lists the member names in traversal order, with
// the first name repeated at the end.
type CycleDetectedError struct {
	Cycle []string
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

package orchestrator

import (
	"fmt"
	"time"
)

// InvocationError records that the control plane could not be instructed to
// start or stop a service. It is captured as service state Error and never
// raised out of the driver loop.
type InvocationError struct {
	Service string
	Op      string // "start" or "stop"
	Err     error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("failed to %s service %q: %v", e.Op, e.Service, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// HealthCheckTimeoutError records that a service's readiness probe never
// succeeded within its configured window. Captured as state Unhealthy.
type HealthCheckTimeoutError struct {
	Service string
	Timeout time.Duration
	LastErr error
}

func (e *HealthCheckTimeoutError) Error() string {
	if e.LastErr != nil {
		return fmt.Sprintf("service %q did not become healthy within %s: %v", e.Service, e.Timeout, e.LastErr)
	}
	return fmt.Sprintf("service %q did not become healthy within %s", e.Service, e.Timeout)
}

func (e *HealthCheckTimeoutError) Unwrap() error {
	return e.LastErr
}

// DependencyFailedError records that a prerequisite ended in a non-Ready
// terminal state, so the dependent's start routine was skipped. Captured as
// state DependencyError.
type DependencyFailedError struct {
	Service    string
	Dependency string
	Status     ServiceStatus
}

func (e *DependencyFailedError) Error() string {
	return fmt.Sprintf("service %q skipped: dependency %q is %s", e.Service, e.Dependency, e.Status)
}

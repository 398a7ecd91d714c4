package orchestrator

import (
	"time"
)

// ServiceStatus represents the lifecycle state of one managed service
// within a run.
type ServiceStatus string

const (
	StatusUnknown         ServiceStatus = "Unknown"
	StatusStarting        ServiceStatus = "Starting"
	StatusReady           ServiceStatus = "Ready"
	StatusUnhealthy       ServiceStatus = "Unhealthy"
	StatusError           ServiceStatus = "Error"
	StatusDependencyError ServiceStatus = "DependencyError"
	StatusStopped         ServiceStatus = "Stopped"
)

// failed reports whether the status is a terminal failure state.
func (s ServiceStatus) failed() bool {
	switch s {
	case StatusUnhealthy, StatusError, StatusDependencyError:
		return true
	default:
		return false
	}
}

// RuntimeState is the mutable per-service record of a run.
type RuntimeState struct {
	Status    ServiceStatus
	StartedAt *time.Time // when the start routine was invoked
	ReadyAt   *time.Time // when the first successful probe was observed
	LastError error
}

// Run captures one orchestration pass over the stack. It is created fresh
// per invocation and discarded after reporting; there is no cross-run
// persistence.
type Run struct {
	StartedAt   time.Time
	CompletedAt time.Time

	// Order is the realized processing order of this run: the start order
	// for StartAll, the reverse order for StopAll.
	Order  []string
	States map[string]*RuntimeState
}

func newRun(order []string) *Run {
	states := make(map[string]*RuntimeState, len(order))
	for _, name := range order {
		states[name] = &RuntimeState{Status: StatusUnknown}
	}
	return &Run{
		StartedAt: time.Now(),
		Order:     order,
		States:    states,
	}
}

// State returns the runtime state for name, or nil if the service was not
// part of this run.
func (r *Run) State(name string) *RuntimeState {
	return r.States[name]
}

// Succeeded returns the services that ended Ready, in processing order.
func (r *Run) Succeeded() []string {
	var out []string
	for _, name := range r.Order {
		if r.States[name].Status == StatusReady {
			out = append(out, name)
		}
	}
	return out
}

// Failed returns the services that ended in a terminal failure state
// (Unhealthy, Error, or DependencyError), in processing order.
func (r *Run) Failed() []string {
	var out []string
	for _, name := range r.Order {
		if r.States[name].Status.failed() {
			out = append(out, name)
		}
	}
	return out
}

// AllReady reports whether every service in the run ended Ready. This is
// the aggregate pass signal for start and restart.
func (r *Run) AllReady() bool {
	for _, name := range r.Order {
		if r.States[name].Status != StatusReady {
			return false
		}
	}
	return true
}

// AllStopped reports whether every service in the run ended Stopped. This
// is the aggregate pass signal for stop.
func (r *Run) AllStopped() bool {
	for _, name := range r.Order {
		if r.States[name].Status != StatusStopped {
			return false
		}
	}
	return true
}

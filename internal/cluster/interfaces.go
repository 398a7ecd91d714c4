package cluster

import (
	"context"
	"time"
)

// PodStatus summarizes the pod backing a managed service.
type PodStatus struct {
	Phase           string // Pending, Running, Succeeded, Failed, Unknown, or "" when no pod exists
	ReadyContainers int
	TotalContainers int
}

// Manager is the control-plane collaborator the orchestrator drives.
// Services are Deployments in the configured namespace; starting means
// scaling to one replica, stopping means scaling to zero. The orchestrator
// is a best-effort client of this interface, not its owner.
type Manager interface {
	// Exists reports whether a Deployment with the service's name exists.
	Exists(ctx context.Context, serviceName string) (bool, error)

	// GetReplicaCount returns the desired replica count of the service.
	GetReplicaCount(ctx context.Context, serviceName string) (int32, error)

	// SetReplicaCount scales the service to n replicas.
	SetReplicaCount(ctx context.Context, serviceName string, n int32) error

	// WaitUntilAvailable blocks until the Deployment reports all desired
	// replicas ready, or the timeout elapses. It returns whether the
	// Deployment became available.
	WaitUntilAvailable(ctx context.Context, serviceName string, timeout time.Duration) (bool, error)

	// GetPodStatus returns the status of the pod backing the service.
	GetPodStatus(ctx context.Context, serviceName string) (PodStatus, error)
}

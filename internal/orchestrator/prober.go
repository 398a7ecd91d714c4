package orchestrator

import (
	"context"
	"time"

	"stackctl/internal/config"
	"stackctl/internal/health"
)

// Prober is the driver's view of the health probe subsystem. It exists as
// an interface so that tests can substitute deterministic probe outcomes.
type Prober interface {
	// Probe polls the service's readiness check until success or timeout
	// and returns whether it became ready, with the last observed error.
	Probe(ctx context.Context, def config.ServiceDefinition, timeout, interval time.Duration) (bool, error)

	// Check performs a single readiness check attempt.
	Check(ctx context.Context, def config.ServiceDefinition) error
}

// healthProber is the production Prober backed by the health package.
type healthProber struct{}

func (healthProber) Probe(ctx context.Context, def config.ServiceDefinition, timeout, interval time.Duration) (bool, error) {
	checker, err := health.ForService(def)
	if err != nil {
		return false, err
	}
	return health.Probe(ctx, checker, timeout, interval)
}

func (healthProber) Check(ctx context.Context, def config.ServiceDefinition) error {
	checker, err := health.ForService(def)
	if err != nil {
		return err
	}
	return checker.CheckHealth(ctx)
}

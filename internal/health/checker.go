// Package health implements per-kind readiness checks for managed services.
//
// Each service kind gets one Checker strategy: a relational database is ready
// when it accepts TCP connections, a cache when it answers a PING/PONG
// exchange, and an HTTP application when its health endpoint returns 2xx.
// A single Probe combinator polls any Checker at a fixed interval within a
// bounded window; probes are read-only and never mutate the target.
package health

import (
	"context"
	"fmt"

	"stackctl/internal/config"
)

// Checker performs one bounded-time readiness check attempt.
type Checker interface {
	CheckHealth(ctx context.Context) error
}

// ForService selects the Checker strategy for the service's configured
// health check kind.
func ForService(def config.ServiceDefinition) (Checker, error) {
	switch def.HealthCheck.Kind {
	case config.HealthCheckDatabase:
		return NewDatabaseReadyChecker(def.Name, def.HealthCheck.Target), nil
	case config.HealthCheckCache:
		return NewCacheReadyChecker(def.Name, def.HealthCheck.Target), nil
	case config.HealthCheckHTTP:
		return NewHTTPHealthChecker(def.Name, def.HealthCheck.Target), nil
	default:
		return nil, fmt.Errorf("service %q: no health checker for kind %q", def.Name, def.HealthCheck.Kind)
	}
}

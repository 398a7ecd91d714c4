package config

import "time"

// Standard stack-wide timing defaults. Individual services may override
// any of these in their definition.
const (
	DefaultProbeTimeout  = 60 * time.Second
	DefaultProbeInterval = 2 * time.Second
	DefaultStartTimeout  = 120 * time.Second
)

// DefaultNamespace is used when neither the configuration files nor the
// STACKCTL_NAMESPACE environment variable select a namespace.
const DefaultNamespace = "dev"

// GetDefaultConfig returns the built-in stack definition: a relational
// database and a cache at the bottom, an API gateway above them, and the
// application on top.
func GetDefaultConfig() StackConfig {
	return StackConfig{
		Namespace: DefaultNamespace,
		Defaults: ProbeDefaults{
			ProbeTimeout:  Duration(DefaultProbeTimeout),
			ProbeInterval: Duration(DefaultProbeInterval),
			StartTimeout:  Duration(DefaultStartTimeout),
		},
		Services: []ServiceDefinition{
			{
				Name:         "db",
				PriorityTier: 1,
				HealthCheck: HealthCheckSpec{
					Kind:   HealthCheckDatabase,
					Target: "db.dev.svc.cluster.local:5432",
				},
			},
			{
				Name:         "cache",
				PriorityTier: 1,
				HealthCheck: HealthCheckSpec{
					Kind:   HealthCheckCache,
					Target: "cache.dev.svc.cluster.local:6379",
				},
			},
			{
				Name:         "gateway",
				DependsOn:    []string{"db", "cache"},
				PriorityTier: 2,
				HealthCheck: HealthCheckSpec{
					Kind:   HealthCheckHTTP,
					Target: "http://gateway.dev.svc.cluster.local:8080/healthz",
				},
			},
			{
				Name:         "app",
				DependsOn:    []string{"db", "gateway"},
				PriorityTier: 3,
				HealthCheck: HealthCheckSpec{
					Kind:   HealthCheckHTTP,
					Target: "http://app.dev.svc.cluster.local:8081/healthz",
				},
			},
		},
	}
}

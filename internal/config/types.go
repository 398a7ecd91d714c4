package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so that YAML values like "90s" or "2m"
// round-trip through the standard time.ParseDuration format.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// HealthCheckKind selects the readiness strategy for a service.
type HealthCheckKind string

const (
	// HealthCheckDatabase verifies the target accepts TCP connections,
	// the "accepting connections" semantics of a relational store.
	HealthCheckDatabase HealthCheckKind = "database"
	// HealthCheckCache verifies a PING/PONG liveness exchange against the target.
	HealthCheckCache HealthCheckKind = "cache"
	// HealthCheckHTTP verifies an HTTP GET against the target returns 2xx.
	HealthCheckHTTP HealthCheckKind = "http"
)

// HealthCheckSpec describes how a service's readiness is probed.
type HealthCheckSpec struct {
	Kind   HealthCheckKind `yaml:"kind"`             // "database", "cache", or "http"
	Target string          `yaml:"target"`           // host:port for database/cache, URL for http
}

// ServiceDefinition is the static descriptor of one managed service.
// The name must match the Deployment name in the target namespace.
type ServiceDefinition struct {
	Name         string          `yaml:"name"`                   // Unique identifier, also the Deployment name
	DependsOn    []string        `yaml:"dependsOn,omitempty"`    // Names of services that must be Ready first
	PriorityTier int             `yaml:"priorityTier,omitempty"` // Lower tiers start earlier among independent services
	HealthCheck  HealthCheckSpec `yaml:"healthCheck"`

	// Per-service overrides of the stack-wide probe defaults.
	ProbeTimeout  Duration `yaml:"probeTimeout,omitempty"`
	ProbeInterval Duration `yaml:"probeInterval,omitempty"`
	StartTimeout  Duration `yaml:"startTimeout,omitempty"`
}

// ProbeDefaults holds the stack-wide timing defaults applied to every
// service that does not override them.
type ProbeDefaults struct {
	ProbeTimeout  Duration `yaml:"probeTimeout,omitempty"`  // Total window a readiness probe may take
	ProbeInterval Duration `yaml:"probeInterval,omitempty"` // Delay between probe attempts
	StartTimeout  Duration `yaml:"startTimeout,omitempty"`  // Window for the control plane to report the Deployment available
}

// StackConfig is the top-level configuration structure for stackctl.
type StackConfig struct {
	Namespace string              `yaml:"namespace,omitempty"` // Target Kubernetes namespace
	Defaults  ProbeDefaults       `yaml:"defaults,omitempty"`
	Services  []ServiceDefinition `yaml:"services"`
}

// EffectiveProbeTimeout returns the probe timeout for svc, falling back to
// the stack defaults.
func (c StackConfig) EffectiveProbeTimeout(svc ServiceDefinition) time.Duration {
	if svc.ProbeTimeout != 0 {
		return svc.ProbeTimeout.Std()
	}
	return c.Defaults.ProbeTimeout.Std()
}

// EffectiveProbeInterval returns the probe poll interval for svc, falling
// back to the stack defaults.
func (c StackConfig) EffectiveProbeInterval(svc ServiceDefinition) time.Duration {
	if svc.ProbeInterval != 0 {
		return svc.ProbeInterval.Std()
	}
	return c.Defaults.ProbeInterval.Std()
}

// EffectiveStartTimeout returns the control-plane availability timeout for
// svc, falling back to the stack defaults.
func (c StackConfig) EffectiveStartTimeout(svc ServiceDefinition) time.Duration {
	if svc.StartTimeout != 0 {
		return svc.StartTimeout.Std()
	}
	return c.Defaults.StartTimeout.Std()
}

// Validate performs field-level validation of the configuration.
// Graph-level validation (duplicates, unknown references, cycles) is the
// registry's responsibility.
func (c StackConfig) Validate() error {
	if c.Namespace == "" {
		return fmt.Errorf("namespace must not be empty")
	}
	if c.Defaults.ProbeTimeout < 0 {
		return fmt.Errorf("defaults: probeTimeout must not be negative")
	}
	if c.Defaults.ProbeInterval < 0 {
		return fmt.Errorf("defaults: probeInterval must not be negative")
	}
	if c.Defaults.StartTimeout < 0 {
		return fmt.Errorf("defaults: startTimeout must not be negative")
	}
	for _, svc := range c.Services {
		if svc.Name == "" {
			return fmt.Errorf("service with empty name in configuration")
		}
		switch svc.HealthCheck.Kind {
		case HealthCheckDatabase, HealthCheckCache, HealthCheckHTTP:
		default:
			return fmt.Errorf("service %q: unknown health check kind %q", svc.Name, svc.HealthCheck.Kind)
		}
		if svc.HealthCheck.Target == "" {
			return fmt.Errorf("service %q: health check target must not be empty", svc.Name)
		}
		if svc.ProbeTimeout < 0 {
			return fmt.Errorf("service %q: probeTimeout must not be negative", svc.Name)
		}
		if svc.ProbeInterval < 0 {
			return fmt.Errorf("service %q: probeInterval must not be negative", svc.Name)
		}
		if svc.StartTimeout < 0 {
			return fmt.Errorf("service %q: startTimeout must not be negative", svc.Name)
		}
	}
	return nil
}

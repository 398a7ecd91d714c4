// Package orchestrator drives the managed service stack through its
// lifecycle: starting services in dependency order, verifying readiness via
// health probes, and stopping them in reverse order.
//
// # Architecture
//
// The orchestrator combines a validated registry (the static dependency
// graph), the scheduler (deterministic start order), the cluster manager
// (the Kubernetes control plane that actually runs the services), and the
// health probe subsystem. All per-run mutable state lives in a Run value
// created fresh for each invocation; the Driver itself holds only
// configuration and collaborators.
//
// # State Machine
//
// Each service moves through:
//
//	Unknown -> Starting -> {Ready | Unhealthy}
//	Unknown -> DependencyError        (prerequisite failed, start skipped)
//	Unknown/Starting -> Error         (control plane could not be instructed)
//	Ready -> Stopped                  (shutdown path)
//
// A service reaches Ready only through an observed successful health probe.
// If a prerequisite ends in any non-Ready terminal state, every direct and
// transitive dependent is marked DependencyError and its start routine is
// never invoked (cascading skip).
//
// # Failure Semantics
//
// A single service's failure never aborts a run: the driver processes every
// service so the operator gets a complete picture, and the per-service
// report distinguishes why each failure happened. Only configuration-time
// errors (duplicate names, dangling references, cycles) abort before any
// service is touched.
//
// # Usage Example
//
//	reg, err := registry.FromConfig(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	driver := orchestrator.New(cfg, reg, clusterMgr)
//	run, err := driver.StartAll(ctx)
package orchestrator

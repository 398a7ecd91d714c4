package orchestrator

import (
	"context"
	"fmt"
	"time"

	"stackctl/internal/cluster"
	"stackctl/internal/config"
	"stackctl/internal/registry"
	"stackctl/internal/scheduler"
	"stackctl/pkg/logging"
)

// Driver runs the lifecycle state machine over the stack. It is a single
// logical thread of control: services are processed sequentially in
// dependency order and each health probe blocks the driver until it
// succeeds or times out. The design assumes at most one driver instance
// per deployment target; concurrent instances could issue conflicting
// scale instructions.
type Driver struct {
	cfg     config.StackConfig
	reg     *registry.Registry
	cluster cluster.Manager
	prober  Prober
}

// New creates a driver over a validated registry.
func New(cfg config.StackConfig, reg *registry.Registry, clusterMgr cluster.Manager) *Driver {
	return &Driver{
		cfg:     cfg,
		reg:     reg,
		cluster: clusterMgr,
		prober:  healthProber{},
	}
}

// StartAll starts every registered service in dependency order and returns
// the completed run. Per-service failures are captured in the run, never
// returned as an error; the error return covers only scheduling failures,
// which a validated registry should never produce.
//
// Cancelling ctx stops launching new services; services not yet processed
// are left Unknown and the partial run is returned.
func (d *Driver) StartAll(ctx context.Context) (*Run, error) {
	order, err := scheduler.StartOrder(d.reg)
	if err != nil {
		return nil, err
	}

	run := newRun(order)
	logging.Info("Driver", "Starting %d services in order %v", len(order), order)

	for _, name := range order {
		select {
		case <-ctx.Done():
			logging.Warn("Driver", "Start run cancelled, %s and later services not launched", name)
			run.CompletedAt = time.Now()
			return run, nil
		default:
		}

		d.startOne(ctx, run, name)
	}

	run.CompletedAt = time.Now()
	logging.Info("Driver", "Start run complete: %d ready, %d failed", len(run.Succeeded()), len(run.Failed()))
	return run, nil
}

// startOne drives a single service through Unknown -> Starting ->
// {Ready | Unhealthy | Error}, or straight to DependencyError when a
// prerequisite is not Ready.
func (d *Driver) startOne(ctx context.Context, run *Run, name string) {
	state := run.States[name]
	def, err := d.reg.Lookup(name)
	if err != nil {
		// Unreachable with a validated registry.
		state.Status = StatusError
		state.LastError = err
		return
	}

	// Cascading skip: dependents of a failed service are never started.
	for _, dep := range def.DependsOn {
		depState := run.States[dep]
		if depState == nil || depState.Status != StatusReady {
			depStatus := StatusUnknown
			if depState != nil {
				depStatus = depState.Status
			}
			state.Status = StatusDependencyError
			state.LastError = &DependencyFailedError{Service: name, Dependency: dep, Status: depStatus}
			logging.Warn("Driver", "Skipping %s: dependency %s is %s", name, dep, depStatus)
			return
		}
	}

	d.startOneUnchecked(ctx, run, name, def)
}

// instructStart asks the control plane to run the service.
func (d *Driver) instructStart(ctx context.Context, name string) error {
	exists, err := d.cluster.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("deployment %q not found in namespace %q", name, d.cfg.Namespace)
	}
	return d.cluster.SetReplicaCount(ctx, name, 1)
}

// StopAll stops every registered service in reverse dependency order. The
// stop is not health-checked: a service is Stopped once the control plane
// accepts the scale-down instruction.
func (d *Driver) StopAll(ctx context.Context) (*Run, error) {
	order, err := scheduler.StartOrder(d.reg)
	if err != nil {
		return nil, err
	}
	return d.stopServices(ctx, scheduler.Reverse(order)), nil
}

// stopServices scales each named service to zero, in the given order.
func (d *Driver) stopServices(ctx context.Context, order []string) *Run {
	run := newRun(order)
	logging.Info("Driver", "Stopping %d services in order %v", len(order), order)

	for _, name := range order {
		state := run.States[name]
		if err := d.cluster.SetReplicaCount(ctx, name, 0); err != nil {
			state.Status = StatusError
			state.LastError = &InvocationError{Service: name, Op: "stop", Err: err}
			logging.Error("Driver", err, "Failed to stop %s", name)
			continue
		}
		state.Status = StatusStopped
		logging.Info("Driver", "Stopped service %s", name)
	}

	run.CompletedAt = time.Now()
	return run
}

// Restart stops the named services in reverse dependency order and starts
// them again in forward order. It operates only on the named subset:
// dependents outside the subset keep running and are not re-validated.
// With no names, the whole stack is restarted.
func (d *Driver) Restart(ctx context.Context, names []string) (*Run, error) {
	if len(names) == 0 {
		if _, err := d.StopAll(ctx); err != nil {
			return nil, err
		}
		return d.StartAll(ctx)
	}

	subset := make(map[string]bool, len(names))
	for _, name := range names {
		if _, err := d.reg.Lookup(name); err != nil {
			return nil, err
		}
		subset[name] = true
	}

	fullOrder, err := scheduler.StartOrder(d.reg)
	if err != nil {
		return nil, err
	}
	var order []string
	for _, name := range fullOrder {
		if subset[name] {
			order = append(order, name)
		}
	}

	d.stopServices(ctx, scheduler.Reverse(order))

	run := newRun(order)
	for _, name := range order {
		select {
		case <-ctx.Done():
			run.CompletedAt = time.Now()
			return run, nil
		default:
		}
		d.restartOne(ctx, run, name, subset)
	}
	run.CompletedAt = time.Now()
	return run, nil
}

// restartOne behaves like startOne, except that dependencies outside the
// restarted subset are checked against the live control plane instead of
// this run's states.
func (d *Driver) restartOne(ctx context.Context, run *Run, name string, subset map[string]bool) {
	state := run.States[name]
	def, err := d.reg.Lookup(name)
	if err != nil {
		state.Status = StatusError
		state.LastError = err
		return
	}

	for _, dep := range def.DependsOn {
		if subset[dep] {
			// Restarted alongside this service; gate on its fresh state.
			if run.States[dep].Status != StatusReady {
				state.Status = StatusDependencyError
				state.LastError = &DependencyFailedError{Service: name, Dependency: dep, Status: run.States[dep].Status}
				return
			}
			continue
		}
		// Untouched dependency: it must already be running.
		replicas, err := d.cluster.GetReplicaCount(ctx, dep)
		if err != nil || replicas == 0 {
			state.Status = StatusDependencyError
			state.LastError = &DependencyFailedError{Service: name, Dependency: dep, Status: StatusStopped}
			logging.Warn("Driver", "Not restarting %s: dependency %s is not running", name, dep)
			return
		}
	}

	d.startOneUnchecked(ctx, run, name, def)
}

// startOneUnchecked runs the start+probe sequence without dependency
// gating; the caller has already verified prerequisites.
func (d *Driver) startOneUnchecked(ctx context.Context, run *Run, name string, def config.ServiceDefinition) {
	state := run.States[name]

	now := time.Now()
	state.StartedAt = &now
	state.Status = StatusStarting
	logging.Info("Driver", "Starting service %s", name)

	if err := d.instructStart(ctx, name); err != nil {
		state.Status = StatusError
		state.LastError = &InvocationError{Service: name, Op: "start", Err: err}
		logging.Error("Driver", err, "Failed to start %s", name)
		return
	}

	available, err := d.cluster.WaitUntilAvailable(ctx, name, d.cfg.EffectiveStartTimeout(def))
	if err != nil {
		state.Status = StatusError
		state.LastError = &InvocationError{Service: name, Op: "start", Err: err}
		logging.Error("Driver", err, "Error waiting for %s to become available", name)
		return
	}
	if !available {
		state.Status = StatusUnhealthy
		state.LastError = &HealthCheckTimeoutError{Service: name, Timeout: d.cfg.EffectiveStartTimeout(def)}
		logging.Warn("Driver", "Service %s never became available on the control plane", name)
		return
	}

	ready, probeErr := d.prober.Probe(ctx, def, d.cfg.EffectiveProbeTimeout(def), d.cfg.EffectiveProbeInterval(def))
	if !ready {
		state.Status = StatusUnhealthy
		state.LastError = &HealthCheckTimeoutError{
			Service: name,
			Timeout: d.cfg.EffectiveProbeTimeout(def),
			LastErr: probeErr,
		}
		logging.Warn("Driver", "Service %s failed its readiness probe: %v", name, probeErr)
		return
	}

	readyAt := time.Now()
	state.ReadyAt = &readyAt
	state.Status = StatusReady
	logging.Info("Driver", "Service %s is ready", name)
}

// ServiceInfo is one row of the Status report.
type ServiceInfo struct {
	Name            string
	Exists          bool
	Replicas        int32
	PodPhase        string
	ReadyContainers int
	TotalContainers int
	Error           error
}

// Status queries the control plane for every registered service. It is
// read-only and safe to call while nothing else mutates the stack.
func (d *Driver) Status(ctx context.Context) ([]ServiceInfo, error) {
	order, err := scheduler.StartOrder(d.reg)
	if err != nil {
		return nil, err
	}

	infos := make([]ServiceInfo, 0, len(order))
	for _, name := range order {
		info := ServiceInfo{Name: name}

		exists, err := d.cluster.Exists(ctx, name)
		if err != nil {
			info.Error = err
			infos = append(infos, info)
			continue
		}
		info.Exists = exists
		if !exists {
			infos = append(infos, info)
			continue
		}

		if replicas, err := d.cluster.GetReplicaCount(ctx, name); err == nil {
			info.Replicas = replicas
		} else {
			info.Error = err
		}
		if pod, err := d.cluster.GetPodStatus(ctx, name); err == nil {
			info.PodPhase = pod.Phase
			info.ReadyContainers = pod.ReadyContainers
			info.TotalContainers = pod.TotalContainers
		} else if info.Error == nil {
			info.Error = err
		}

		infos = append(infos, info)
	}
	return infos, nil
}

// HealthResult is one row of the HealthCheckAll report.
type HealthResult struct {
	Name    string
	Healthy bool
	Latency time.Duration
	Err     error
}

// HealthCheckAll performs a single readiness check attempt against every
// registered service without touching the control plane.
func (d *Driver) HealthCheckAll(ctx context.Context) ([]HealthResult, error) {
	order, err := scheduler.StartOrder(d.reg)
	if err != nil {
		return nil, err
	}

	results := make([]HealthResult, 0, len(order))
	for _, name := range order {
		def, err := d.reg.Lookup(name)
		if err != nil {
			results = append(results, HealthResult{Name: name, Err: err})
			continue
		}

		began := time.Now()
		checkErr := d.prober.Check(ctx, def)
		results = append(results, HealthResult{
			Name:    name,
			Healthy: checkErr == nil,
			Latency: time.Since(began),
			Err:     checkErr,
		})
	}
	return results, nil
}

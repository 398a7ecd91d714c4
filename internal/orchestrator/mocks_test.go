package orchestrator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"stackctl/internal/cluster"
	"stackctl/internal/config"
)

// mockClusterManager is a testify mock of the control-plane collaborator.
type mockClusterManager struct {
	mock.Mock
}

func (m *mockClusterManager) Exists(ctx context.Context, serviceName string) (bool, error) {
	args := m.Called(ctx, serviceName)
	return args.Bool(0), args.Error(1)
}

func (m *mockClusterManager) GetReplicaCount(ctx context.Context, serviceName string) (int32, error) {
	args := m.Called(ctx, serviceName)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockClusterManager) SetReplicaCount(ctx context.Context, serviceName string, n int32) error {
	args := m.Called(ctx, serviceName, n)
	return args.Error(0)
}

func (m *mockClusterManager) WaitUntilAvailable(ctx context.Context, serviceName string, timeout time.Duration) (bool, error) {
	args := m.Called(ctx, serviceName, timeout)
	return args.Bool(0), args.Error(1)
}

func (m *mockClusterManager) GetPodStatus(ctx context.Context, serviceName string) (cluster.PodStatus, error) {
	args := m.Called(ctx, serviceName)
	return args.Get(0).(cluster.PodStatus), args.Error(1)
}

// fakeControlPlane is a hand-rolled control plane that records every scale
// instruction. It is used where the interesting assertion is which services
// were (or were not) started, rather than individual call expectations.
type fakeControlPlane struct {
	mu           sync.Mutex
	replicas     map[string]int32
	startCalls   map[string]int
	stopCalls    map[string]int
	failStartFor map[string]error
	stopOrder    []string
	startOrder   []string
}

func newFakeControlPlane() *fakeControlPlane {
	return &fakeControlPlane{
		replicas:     make(map[string]int32),
		startCalls:   make(map[string]int),
		stopCalls:    make(map[string]int),
		failStartFor: make(map[string]error),
	}
}

func (f *fakeControlPlane) Exists(ctx context.Context, serviceName string) (bool, error) {
	return true, nil
}

func (f *fakeControlPlane) GetReplicaCount(ctx context.Context, serviceName string) (int32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.replicas[serviceName], nil
}

func (f *fakeControlPlane) SetReplicaCount(ctx context.Context, serviceName string, n int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n > 0 {
		if err := f.failStartFor[serviceName]; err != nil {
			return err
		}
		f.startCalls[serviceName]++
		f.startOrder = append(f.startOrder, serviceName)
	} else {
		f.stopCalls[serviceName]++
		f.stopOrder = append(f.stopOrder, serviceName)
	}
	f.replicas[serviceName] = n
	return nil
}

func (f *fakeControlPlane) WaitUntilAvailable(ctx context.Context, serviceName string, timeout time.Duration) (bool, error) {
	return true, nil
}

func (f *fakeControlPlane) GetPodStatus(ctx context.Context, serviceName string) (cluster.PodStatus, error) {
	return cluster.PodStatus{Phase: "Running", ReadyContainers: 1, TotalContainers: 1}, nil
}

func (f *fakeControlPlane) startCount(serviceName string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.startCalls[serviceName]
}

// fakeProber returns scripted probe outcomes and counts probe calls.
type fakeProber struct {
	mu         sync.Mutex
	unhealthy  map[string]bool // services whose probes never succeed
	probeCalls map[string]int
}

func newFakeProber(unhealthy ...string) *fakeProber {
	set := make(map[string]bool, len(unhealthy))
	for _, name := range unhealthy {
		set[name] = true
	}
	return &fakeProber{
		unhealthy:  set,
		probeCalls: make(map[string]int),
	}
}

func (p *fakeProber) Probe(ctx context.Context, def config.ServiceDefinition, timeout, interval time.Duration) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.probeCalls[def.Name]++
	if p.unhealthy[def.Name] {
		return false, errors.New("probe never succeeded")
	}
	return true, nil
}

func (p *fakeProber) Check(ctx context.Context, def config.ServiceDefinition) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.probeCalls[def.Name]++
	if p.unhealthy[def.Name] {
		return errors.New("check failed")
	}
	return nil
}

func (p *fakeProber) calls(serviceName string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.probeCalls[serviceName]
}

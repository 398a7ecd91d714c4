package report

import (
	"fmt"
	"time"

	"stackctl/internal/color"
	"stackctl/internal/orchestrator"
)

// statusCell renders a lifecycle status with its semantic color.
func statusCell(status orchestrator.ServiceStatus, colored bool) string {
	s := string(status)
	if !colored {
		return s
	}
	switch status {
	case orchestrator.StatusReady, orchestrator.StatusStopped:
		return color.SuccessStyle.Render(s)
	case orchestrator.StatusStarting, orchestrator.StatusUnknown:
		return color.WarningStyle.Render(s)
	case orchestrator.StatusUnhealthy, orchestrator.StatusError, orchestrator.StatusDependencyError:
		return color.ErrorStyle.Render(s)
	default:
		return s
	}
}

func errCell(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// RunReport renders the outcome of a start, stop or restart run.
type RunReport struct {
	Run *orchestrator.Run
}

func (r RunReport) Headers() []string {
	return []string{"Service", "Status", "Duration", "Detail"}
}

func (r RunReport) Rows(colored bool) [][]string {
	rows := make([][]string, 0, len(r.Run.Order))
	for _, name := range r.Run.Order {
		state := r.Run.State(name)
		duration := ""
		if state.StartedAt != nil && state.ReadyAt != nil {
			duration = state.ReadyAt.Sub(*state.StartedAt).Round(time.Millisecond).String()
		}
		rows = append(rows, []string{
			name,
			statusCell(state.Status, colored),
			duration,
			errCell(state.LastError),
		})
	}
	return rows
}

// runDocument is the marshal-friendly shape of a run.
type runDocument struct {
	StartedAt   time.Time            `json:"startedAt" yaml:"startedAt"`
	CompletedAt time.Time            `json:"completedAt" yaml:"completedAt"`
	Services    []runServiceDocument `json:"services" yaml:"services"`
}

type runServiceDocument struct {
	Name    string     `json:"name" yaml:"name"`
	Status  string     `json:"status" yaml:"status"`
	ReadyAt *time.Time `json:"readyAt,omitempty" yaml:"readyAt,omitempty"`
	Error   string     `json:"error,omitempty" yaml:"error,omitempty"`
}

func (r RunReport) Document() any {
	doc := runDocument{
		StartedAt:   r.Run.StartedAt,
		CompletedAt: r.Run.CompletedAt,
		Services:    make([]runServiceDocument, 0, len(r.Run.Order)),
	}
	for _, name := range r.Run.Order {
		state := r.Run.State(name)
		doc.Services = append(doc.Services, runServiceDocument{
			Name:    name,
			Status:  string(state.Status),
			ReadyAt: state.ReadyAt,
			Error:   errCell(state.LastError),
		})
	}
	return doc
}

// StatusReport renders the read-only control-plane view of the stack.
type StatusReport struct {
	Namespace string
	Services  []orchestrator.ServiceInfo
}

func (r StatusReport) Headers() []string {
	return []string{"Service", "Deployment", "Replicas", "Pod", "Containers"}
}

func (r StatusReport) Rows(colored bool) [][]string {
	rows := make([][]string, 0, len(r.Services))
	for _, info := range r.Services {
		if info.Error != nil {
			cell := errCell(info.Error)
			if colored {
				cell = color.ErrorStyle.Render(cell)
			}
			rows = append(rows, []string{info.Name, cell, "", "", ""})
			continue
		}
		if !info.Exists {
			cell := "missing"
			if colored {
				cell = color.MutedStyle.Render(cell)
			}
			rows = append(rows, []string{info.Name, cell, "", "", ""})
			continue
		}

		deployment := "scaled down"
		if info.Replicas > 0 {
			deployment = "running"
		}
		if colored {
			if info.Replicas > 0 {
				deployment = color.SuccessStyle.Render(deployment)
			} else {
				deployment = color.MutedStyle.Render(deployment)
			}
		}

		containers := ""
		if info.TotalContainers > 0 {
			containers = fmt.Sprintf("%d/%d", info.ReadyContainers, info.TotalContainers)
		}
		rows = append(rows, []string{
			info.Name,
			deployment,
			fmt.Sprintf("%d", info.Replicas),
			info.PodPhase,
			containers,
		})
	}
	return rows
}

type statusDocument struct {
	Namespace string                  `json:"namespace" yaml:"namespace"`
	Services  []statusServiceDocument `json:"services" yaml:"services"`
}

type statusServiceDocument struct {
	Name            string `json:"name" yaml:"name"`
	Exists          bool   `json:"exists" yaml:"exists"`
	Replicas        int32  `json:"replicas" yaml:"replicas"`
	PodPhase        string `json:"podPhase,omitempty" yaml:"podPhase,omitempty"`
	ReadyContainers int    `json:"readyContainers" yaml:"readyContainers"`
	TotalContainers int    `json:"totalContainers" yaml:"totalContainers"`
	Error           string `json:"error,omitempty" yaml:"error,omitempty"`
}

func (r StatusReport) Document() any {
	doc := statusDocument{
		Namespace: r.Namespace,
		Services:  make([]statusServiceDocument, 0, len(r.Services)),
	}
	for _, info := range r.Services {
		doc.Services = append(doc.Services, statusServiceDocument{
			Name:            info.Name,
			Exists:          info.Exists,
			Replicas:        info.Replicas,
			PodPhase:        info.PodPhase,
			ReadyContainers: info.ReadyContainers,
			TotalContainers: info.TotalContainers,
			Error:           errCell(info.Error),
		})
	}
	return doc
}

// HealthReport renders the outcome of direct readiness checks.
type HealthReport struct {
	Results []orchestrator.HealthResult
}

func (r HealthReport) Headers() []string {
	return []string{"Service", "Health", "Latency", "Detail"}
}

func (r HealthReport) Rows(colored bool) [][]string {
	rows := make([][]string, 0, len(r.Results))
	for _, res := range r.Results {
		health := "unhealthy"
		if res.Healthy {
			health = "healthy"
		}
		if colored {
			if res.Healthy {
				health = color.SuccessStyle.Render(health)
			} else {
				health = color.ErrorStyle.Render(health)
			}
		}
		rows = append(rows, []string{
			res.Name,
			health,
			res.Latency.Round(time.Millisecond).String(),
			errCell(res.Err),
		})
	}
	return rows
}

type healthDocument struct {
	Services []healthServiceDocument `json:"services" yaml:"services"`
}

type healthServiceDocument struct {
	Name      string `json:"name" yaml:"name"`
	Healthy   bool   `json:"healthy" yaml:"healthy"`
	LatencyMS int64  `json:"latencyMs" yaml:"latencyMs"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

func (r HealthReport) Document() any {
	doc := healthDocument{Services: make([]healthServiceDocument, 0, len(r.Results))}
	for _, res := range r.Results {
		doc.Services = append(doc.Services, healthServiceDocument{
			Name:      res.Name,
			Healthy:   res.Healthy,
			LatencyMS: res.Latency.Milliseconds(),
			Error:     errCell(res.Err),
		})
	}
	return doc
}

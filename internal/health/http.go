package health

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"stackctl/pkg/logging"
)

// httpAttemptTimeout bounds a single GET; the overall probe window is
// enforced by Probe.
const httpAttemptTimeout = 5 * time.Second

// HTTPHealthChecker checks an application by issuing an HTTP GET against
// its health endpoint and expecting a 2xx status.
type HTTPHealthChecker struct {
	name   string
	target string // full URL of the health endpoint
	client *http.Client
}

// NewHTTPHealthChecker creates a new HTTP health checker.
func NewHTTPHealthChecker(name, target string) *HTTPHealthChecker {
	return &HTTPHealthChecker{
		name:   name,
		target: target,
		client: &http.Client{
			Timeout: httpAttemptTimeout,
		},
	}
}

// CheckHealth performs the GET. Any status outside 2xx is a failure; the
// body is drained and discarded so connections can be reused.
func (h *HTTPHealthChecker) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", h.target, err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach %s: %w", h.target, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("health endpoint %s returned status %d", h.target, resp.StatusCode)
	}

	logging.Debug("HTTPHealthChecker", "Service %s is healthy (%d from %s)", h.name, resp.StatusCode, h.target)
	return nil
}

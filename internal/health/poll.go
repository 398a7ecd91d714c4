package health

import (
	"context"
	"fmt"
	"time"
)

// Probe polls the checker at the given interval until it succeeds or the
// timeout window elapses. It returns whether the target became ready and,
// on failure, the last error the checker observed.
//
// The first attempt runs immediately; cancellation of ctx ends the probe
// early with ready=false.
func Probe(ctx context.Context, checker Checker, timeout, pollInterval time.Duration) (bool, error) {
	// time.NewTicker panics on a non-positive interval; surface bad timing
	// values as an error instead.
	if pollInterval <= 0 {
		return false, fmt.Errorf("poll interval must be positive, got %s", pollInterval)
	}

	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	var lastErr error
	for {
		if err := checker.CheckHealth(probeCtx); err == nil {
			return true, nil
		} else {
			lastErr = err
		}

		select {
		case <-probeCtx.Done():
			if lastErr == nil {
				lastErr = probeCtx.Err()
			}
			return false, fmt.Errorf("readiness probe gave up: %w", lastErr)
		case <-ticker.C:
		}
	}
}

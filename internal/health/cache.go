package health

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"stackctl/pkg/logging"
)

const (
	cacheDialTimeout     = 3 * time.Second
	cacheExchangeTimeout = 2 * time.Second
)

// CacheReadyChecker checks a cache server with a PING/PONG liveness
// exchange using the inline form of the RESP protocol.
type CacheReadyChecker struct {
	name   string
	target string // host:port
}

// NewCacheReadyChecker creates a new cache readiness checker.
func NewCacheReadyChecker(name, target string) *CacheReadyChecker {
	return &CacheReadyChecker{
		name:   name,
		target: target,
	}
}

// CheckHealth connects to the cache, sends PING, and expects a PONG reply.
// A fresh connection is used per attempt.
func (c *CacheReadyChecker) CheckHealth(ctx context.Context) error {
	dialer := &net.Dialer{
		Timeout: cacheDialTimeout,
	}

	conn, err := dialer.DialContext(ctx, "tcp", c.target)
	if err != nil {
		return fmt.Errorf("failed to connect to cache at %s: %w", c.target, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(cacheExchangeTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return fmt.Errorf("failed to set deadline on cache connection: %w", err)
	}

	if _, err := conn.Write([]byte("PING\r\n")); err != nil {
		return fmt.Errorf("failed to send PING to cache at %s: %w", c.target, err)
	}

	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read PING reply from cache at %s: %w", c.target, err)
	}

	reply = strings.TrimSpace(reply)
	if reply != "+PONG" && reply != "PONG" {
		return fmt.Errorf("unexpected PING reply from cache at %s: %q", c.target, reply)
	}

	logging.Debug("CacheReadyChecker", "Cache %s answered PING on %s", c.name, c.target)
	return nil
}

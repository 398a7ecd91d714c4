package health

import (
	"context"
	"fmt"
	"net"
	"time"

	"stackctl/pkg/logging"
)

// databaseDialTimeout bounds a single connection attempt; the overall probe
// window is enforced by Probe.
const databaseDialTimeout = 3 * time.Second

// DatabaseReadyChecker checks that a relational store accepts TCP
// connections on its configured address.
type DatabaseReadyChecker struct {
	name   string
	target string // host:port
}

// NewDatabaseReadyChecker creates a new database readiness checker.
func NewDatabaseReadyChecker(name, target string) *DatabaseReadyChecker {
	return &DatabaseReadyChecker{
		name:   name,
		target: target,
	}
}

// CheckHealth attempts a TCP connection to the database address. A completed
// handshake is taken as "accepting connections"; the connection is closed
// immediately without sending anything.
func (d *DatabaseReadyChecker) CheckHealth(ctx context.Context) error {
	dialer := &net.Dialer{
		Timeout: databaseDialTimeout,
	}

	conn, err := dialer.DialContext(ctx, "tcp", d.target)
	if err != nil {
		return fmt.Errorf("failed to connect to database at %s: %w", d.target, err)
	}
	defer conn.Close()

	logging.Debug("DatabaseReadyChecker", "Database %s is accepting connections on %s", d.name, d.target)
	return nil
}

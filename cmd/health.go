package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stackctl/internal/report"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Run a single readiness check against every service",
		Long: `Run one readiness check attempt against every service and report the
result with per-service latency. Unlike 'start', this does not poll and
does not touch the control plane; it talks directly to each service's
health endpoint.

The command exits non-zero unless every service is healthy.`,
		Args: cobra.NoArgs,
		RunE: runHealth,
	}
}

func runHealth(cmd *cobra.Command, args []string) error {
	driver, _, err := newDriver()
	if err != nil {
		return err
	}
	printer, err := newReportPrinter(cmd)
	if err != nil {
		return err
	}

	results, err := driver.HealthCheckAll(commandContext(cmd))
	if err != nil {
		return err
	}
	if err := printer.Print(report.HealthReport{Results: results}); err != nil {
		return err
	}

	unhealthy := 0
	for _, res := range results {
		if !res.Healthy {
			unhealthy++
		}
	}
	if unhealthy > 0 {
		return fmt.Errorf("%d of %d services are unhealthy", unhealthy, len(results))
	}
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stackctl/internal/report"
)

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the whole stack in reverse dependency order",
		Long: `Stop every service of the stack in reverse dependency order.

Dependents are scaled down before the services they depend on, so nothing
observes its prerequisites disappearing mid-flight. Stopping is not
health-checked: a service counts as stopped once the cluster accepts the
scale-down.`,
		Args: cobra.NoArgs,
		RunE: runStop,
	}
}

func runStop(cmd *cobra.Command, args []string) error {
	driver, _, err := newDriver()
	if err != nil {
		return err
	}
	printer, err := newReportPrinter(cmd)
	if err != nil {
		return err
	}

	run, err := driver.StopAll(commandContext(cmd))
	if err != nil {
		return err
	}
	if err := printer.Print(report.RunReport{Run: run}); err != nil {
		return err
	}
	if !run.AllStopped() {
		return fmt.Errorf("%d of %d services failed to stop", len(run.Failed()), len(run.Order))
	}
	return nil
}

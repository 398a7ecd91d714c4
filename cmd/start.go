package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stackctl/internal/report"
)

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the whole stack in dependency order",
		Long: `Start every service of the stack in dependency order.

Each service is scaled up on the cluster, waited on until its Deployment
reports available, and then probed until its readiness check passes.
Services whose dependencies failed are skipped and reported as
DependencyError without ever being started.

The command exits non-zero unless every service reached Ready.`,
		Args: cobra.NoArgs,
		RunE: runStart,
	}
}

func runStart(cmd *cobra.Command, args []string) error {
	driver, _, err := newDriver()
	if err != nil {
		return err
	}
	printer, err := newReportPrinter(cmd)
	if err != nil {
		return err
	}

	run, err := driver.StartAll(commandContext(cmd))
	if err != nil {
		return err
	}
	if err := printer.Print(report.RunReport{Run: run}); err != nil {
		return err
	}
	if !run.AllReady() {
		// Count everything short of Ready, including services left
		// unprocessed by a cancelled run.
		notReady := len(run.Order) - len(run.Succeeded())
		return fmt.Errorf("%d of %d services did not become ready", notReady, len(run.Order))
	}
	return nil
}

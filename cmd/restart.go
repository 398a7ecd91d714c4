package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stackctl/internal/report"
)

func newRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart [service...]",
		Short: "Restart the stack or a subset of services",
		Long: `Restart services: stop them in reverse dependency order, then start
them again in forward order, waiting for readiness as with 'start'.

With no arguments the whole stack is restarted. With service names only
that subset is touched; running dependents outside the subset are left
alone, and a named service is only started if its dependencies are either
restarted alongside it or already running on the cluster.`,
		RunE: runRestart,
	}
}

func runRestart(cmd *cobra.Command, args []string) error {
	driver, _, err := newDriver()
	if err != nil {
		return err
	}
	printer, err := newReportPrinter(cmd)
	if err != nil {
		return err
	}

	run, err := driver.Restart(commandContext(cmd), args)
	if err != nil {
		return err
	}
	if err := printer.Print(report.RunReport{Run: run}); err != nil {
		return err
	}
	if !run.AllReady() {
		notReady := len(run.Order) - len(run.Succeeded())
		return fmt.Errorf("%d of %d services did not become ready", notReady, len(run.Order))
	}
	return nil
}

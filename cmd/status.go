package cmd

import (
	"github.com/spf13/cobra"

	"stackctl/internal/report"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the cluster state of every service",
		Long: `Show the current control-plane state of every service in the stack:
whether its Deployment exists, its replica count, and the phase of a
representative pod. This is read-only and never mutates the cluster.`,
		Args: cobra.NoArgs,
		RunE: runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	driver, cfg, err := newDriver()
	if err != nil {
		return err
	}
	printer, err := newReportPrinter(cmd)
	if err != nil {
		return err
	}

	infos, err := driver.Status(commandContext(cmd))
	if err != nil {
		return err
	}
	return printer.Print(report.StatusReport{Namespace: cfg.Namespace, Services: infos})
}

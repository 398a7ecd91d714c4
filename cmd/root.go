package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"stackctl/internal/cluster"
	"stackctl/internal/color"
	"stackctl/internal/config"
	"stackctl/internal/orchestrator"
	"stackctl/internal/registry"
	"stackctl/internal/report"
	"stackctl/pkg/logging"
)

var (
	flagNamespace    string
	flagLogLevel     string
	flagOutput       string
	flagNoColor      bool
	flagTimeout      time.Duration
	flagPollInterval time.Duration
)

// newClusterManager builds the control-plane client. It is a variable so
// tests can substitute a fake without touching a live cluster.
var newClusterManager = func(namespace string) (cluster.Manager, error) {
	return cluster.NewManager(namespace)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stackctl",
	Short: "Orchestrate dependency-ordered service stacks on Kubernetes",
	Long: `stackctl starts, stops and inspects a stack of interdependent services
running as Kubernetes Deployments. Services declare their dependencies in
the stack configuration; stackctl computes a safe startup order, waits for
each service to pass its readiness probe, and skips everything downstream
of a failure.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid arguments, failed probes)
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.InitForCLI(logging.ParseLevel(flagLogLevel), os.Stderr)
		if !flagNoColor {
			color.Initialize(lipgloss.HasDarkBackground())
		}
		return nil
	},
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v // Set cobra's version field as well
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Set up version template
	rootCmd.SetVersionTemplate(`{{printf "stackctl version %s\n" .Version}}`)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newStartCmd())
	rootCmd.AddCommand(newStopCmd())
	rootCmd.AddCommand(newRestartCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())

	rootCmd.PersistentFlags().StringVarP(&flagNamespace, "namespace", "n", "", "Kubernetes namespace (overrides configuration)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "table", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "Override the per-service probe timeout")
	rootCmd.PersistentFlags().DurationVar(&flagPollInterval, "poll-interval", 0, "Override the probe polling interval")
}

// loadStack loads the layered configuration, applies flag overrides and
// validates the resulting dependency graph.
func loadStack() (config.StackConfig, *registry.Registry, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return config.StackConfig{}, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if flagNamespace != "" {
		cfg.Namespace = flagNamespace
	}
	if flagTimeout > 0 {
		cfg.Defaults.ProbeTimeout = config.Duration(flagTimeout)
	}
	if flagPollInterval > 0 {
		cfg.Defaults.ProbeInterval = config.Duration(flagPollInterval)
	}

	reg, err := registry.FromConfig(cfg)
	if err != nil {
		return config.StackConfig{}, nil, err
	}
	return cfg, reg, nil
}

// newDriver wires configuration, registry and control plane into a driver.
func newDriver() (*orchestrator.Driver, config.StackConfig, error) {
	cfg, reg, err := loadStack()
	if err != nil {
		return nil, config.StackConfig{}, err
	}
	mgr, err := newClusterManager(cfg.Namespace)
	if err != nil {
		return nil, config.StackConfig{}, fmt.Errorf("failed to connect to cluster: %w", err)
	}
	return orchestrator.New(cfg, reg, mgr), cfg, nil
}

// newReportPrinter builds the printer for the selected --output format.
func newReportPrinter(cmd *cobra.Command) (*report.Printer, error) {
	format, err := report.ParseFormat(flagOutput)
	if err != nil {
		return nil, err
	}
	colored := !flagNoColor && format == report.FormatTable
	return report.NewPrinter(cmd.OutOrStdout(), format, colored), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

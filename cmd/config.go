package cmd

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective stack configuration",
		Long: `Print the effective stack configuration as YAML, after merging the
built-in defaults, the user configuration and the project configuration,
and after applying any flag overrides. Useful for checking which service
definitions a command would act on.`,
		Args: cobra.NoArgs,
		RunE: runConfig,
	}
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadStack()
	if err != nil {
		return err
	}
	encoder := yaml.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent(2)
	defer func() { _ = encoder.Close() }()
	return encoder.Encode(cfg)
}

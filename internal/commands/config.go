package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// newConfigCmd represents the config command and its subcommands
func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Display and validate configuration settings.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Load and display the current configuration from file and environment variables.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			jsonBytes, err := json.MarshalIndent(cfg.Redacted(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to format config: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		Long:  `Load and validate the configuration file without cloning anything.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return invalidInput(fmt.Errorf("configuration is invalid: %w", err))
			}

			out := newConsole(cmd, cfg.Log.Quiet)
			out.PrintSuccess("Configuration is valid")
			out.PrintInfo(fmt.Sprintf("Repository: %s", cfg.Source.URL))
			out.PrintInfo(fmt.Sprintf("Output path: %s", cfg.Output.Path))
			out.PrintInfo(fmt.Sprintf("Backend: %s", cfg.Transfer.Backend))

			return nil
		},
	})

	return cmd
}

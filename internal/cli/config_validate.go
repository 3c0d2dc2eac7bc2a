package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/trustboard/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		Long: `Validates the effective configuration: the user config file, the project
overlay, the environment and the global flags, merged in that order.

This includes:
- Mode is mock, development or live
- api.base_url is set unless the mode is mock
- Timeouts and rate limits are not negative
- output.default_format is table, json or ndjson`,
		Example: `  # Validate current configuration
  trustboard config validate

  # Validate and show detailed information
  trustboard config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.Path())
	if dir := config.GetResolvedProjectDir(); dir != "" {
		cmd.Printf("  Project directory: %s\n", dir)
	}
	cmd.Printf("  Mode: %s (fallback: %t)\n", cfg.Mode, cfg.FallbackEnabled())
	if cfg.Mode != config.ModeMock {
		cmd.Printf("  API: %s (timeout %s)\n", cfg.API.BaseURL, cfg.API.Timeout)
	}
	if cfg.Fixtures.Dir != "" {
		cmd.Printf("  Fixtures directory: %s\n", cfg.Fixtures.Dir)
	}
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
}

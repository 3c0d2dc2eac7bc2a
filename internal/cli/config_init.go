package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/trustboard/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
// Inside a project that has a .trustboard/ directory (without --global), it
// writes the project-local .trustboard/config.yaml. Otherwise it writes the
// user config at $TRUSTBOARD_HOME/config.yaml.
func NewConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

When a project .trustboard/ directory is found (or given with --project-dir),
the file is created at .trustboard/config.yaml and overrides the user
configuration for that project. Use --global to write the user configuration
at $TRUSTBOARD_HOME/config.yaml instead.`,
		Example: `  # Create project-local configuration
  trustboard config init

  # Create user configuration
  trustboard config init --global

  # Create configuration, overwriting existing
  trustboard config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectDir := config.GetResolvedProjectDir()

			if projectDir != "" && !global {
				return initProjectConfig(cmd, projectDir, force)
			}

			return initGlobalConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "write the user configuration even inside a project")

	return cmd
}

// initProjectConfig creates project-local config at projectDir/config.yaml.
func initProjectConfig(cmd *cobra.Command, projectDir string, force bool) error {
	configPath := filepath.Join(projectDir, "config.yaml")

	if err := checkWritable(configPath, force); err != nil {
		return err
	}

	if err := os.MkdirAll(projectDir, 0o750); err != nil {
		return fmt.Errorf("failed to create project config directory: %w", err)
	}

	cfg := config.Default()
	cfg.SetPath(configPath)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", configPath)
	return nil
}

// initGlobalConfig creates the user config at $TRUSTBOARD_HOME/config.yaml.
func initGlobalConfig(cmd *cobra.Command, force bool) error {
	path, err := config.DefaultConfigPath()
	if err != nil {
		return err
	}
	if err := checkWritable(path, force); err != nil {
		return err
	}

	cfg := config.Default()
	cfg.SetPath(path)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", cfg.Path())
	return nil
}

// checkWritable fails when path exists and force is not set.
func checkWritable(path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return errors.New("configuration file already exists, use --force to overwrite")
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("cannot access config path %s: %w", path, err)
	}
	return nil
}

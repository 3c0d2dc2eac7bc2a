package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/trustboard/internal/config"
)

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration as YAML.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Prints the configuration after the user file, project overlay, environment
and global flags have been applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(config.GetGlobalConfig())
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// NewConfigGetCmd creates the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one configuration value",
		Example: `  trustboard config get mode
  trustboard config get api.base_url
  trustboard config get logging`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			if _, isMap := value.(map[string]interface{}); !isMap {
				cmd.Println(value)
				return nil
			}
			data, err := yaml.Marshal(value)
			if err != nil {
				return fmt.Errorf("encoding %s: %w", args[0], err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// NewConfigSetCmd creates the config set command. It edits the user config
// file only, so environment and flag overrides are never persisted.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a value in the user configuration file",
		Example: `  trustboard config set mode live
  trustboard config set api.base_url http://localhost:5000
  trustboard config set api.timeout 5s
  trustboard config set fallback false`,
		Args: cobra.ExactArgs(2), //nolint:mnd // key and value
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			logger.Debug().Ctx(cmd.Context()).
				Str("operation", "config_set").
				Str("key", args[0]).
				Str("path", cfg.Path()).
				Msg("configuration updated")

			cmd.Printf("Set %s = %s\n", args[0], args[1])
			return nil
		},
	}
}

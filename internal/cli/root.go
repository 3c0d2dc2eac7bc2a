package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/rshade/trustboard/internal/config"
	"github.com/rshade/trustboard/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	debug       bool
	mode        string
	fallback    bool
	apiURL      string
	projectDir  string
	fixturesDir string
}

// NewRootCmd creates the root Cobra command for the trustboard CLI.
// It loads configuration, wires up logging and tracing, and registers the
// leaderboard, influencer, dashboard, serve and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		flags     globalFlags
		logResult *logging.LogPathResult
	)

	cmd := &cobra.Command{
		Use:           "trustboard",
		Short:         "Trust scores for health influencers",
		Long:          "trustboard: Browse the influencer leaderboard and per-influencer claim verifications",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd, flags); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.StringVar(&flags.mode, "mode", "", "data mode: mock, development or live (overrides config and TRUSTBOARD_MODE)")
	pf.BoolVar(&flags.fallback, "fallback", false, "replace failed fetches with sample data (overrides the mode default)")
	pf.StringVar(&flags.apiURL, "api-url", "", "base URL of the influencer API")
	pf.StringVar(&flags.projectDir, "project-dir", "", "project .trustboard directory (default: nearest .trustboard above the working directory)")
	pf.StringVar(&flags.fixturesDir, "fixtures-dir", "", "directory whose JSON files override the built-in sample data")

	cmd.AddCommand(
		NewLeaderboardCmd(),
		NewInfluencerCmd(),
		NewDashboardCmd(),
		NewServeCmd(),
		newConfigCmd(),
	)

	return cmd
}

// loadConfig resolves the project directory, builds the global config and
// applies explicitly set persistent flags on top of it. Validation is left
// to the commands that use the config, so config commands can repair it.
func loadConfig(cmd *cobra.Command, flags globalFlags) error {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	if cwd != "" {
		if err := config.LoadDotEnv(cwd); err != nil {
			cmd.PrintErrf("Warning: could not load .env: %v\n", err)
		}
	}

	ctx := cmd.Context()
	projectDir := config.ResolveProjectDir(ctx, flags.projectDir, cwd)
	config.SetResolvedProjectDir(projectDir)
	config.InitGlobalConfigWithProject(ctx, projectDir)

	return applyFlagOverrides(config.GetGlobalConfig(), cmd.Flags(), flags)
}

// applyFlagOverrides copies the persistent flags the user set onto cfg.
func applyFlagOverrides(cfg *config.Config, f *pflag.FlagSet, flags globalFlags) error {
	if f.Changed("mode") {
		mode, err := config.ParseMode(flags.mode)
		if err != nil {
			return err
		}
		cfg.Mode = mode
	}
	if f.Changed("fallback") {
		fallback := flags.fallback
		cfg.Fallback = &fallback
	}
	if f.Changed("api-url") {
		cfg.API.BaseURL = flags.apiURL
	}
	if f.Changed("fixtures-dir") {
		cfg.Fixtures.Dir = flags.fixturesDir
	}
	return nil
}

const rootCmdExample = `  # Show the leaderboard using the built-in sample data
  trustboard leaderboard --mode mock

  # Only show nutrition influencers, lowest trust score first
  trustboard leaderboard --category Nutrition --sort asc

  # Show verified sleep claims for one influencer as JSON
  trustboard influencer hubermanlab --category Sleep --status Verified --output json

  # Open the interactive dashboard
  trustboard dashboard

  # Serve the API locally from sample data
  trustboard serve --mode mock --listen 127.0.0.1:5000

  # Initialize configuration
  trustboard config init

  # Set configuration values
  trustboard config set api.base_url http://localhost:5000`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigShowCmd(), NewConfigGetCmd(),
		NewConfigSetCmd(), NewConfigValidateCmd(),
	)
	return cmd
}

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/JakobGM/quelf/internal/adapters/cachefile"
	"github.com/JakobGM/quelf/internal/adapters/sleepcycle"
	"github.com/JakobGM/quelf/internal/adapters/toggl"
	"github.com/JakobGM/quelf/internal/application"
	"github.com/JakobGM/quelf/internal/config"
	"github.com/JakobGM/quelf/internal/ports"
)

var (
	configPath string
	dataDir    string
	debug      bool

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "quelf-cli",
	Short: "CLI for the quelf quantified-self toolkit",
	Long: `quelf-cli fetches your sleep data from Sleep Cycle's servers into a
local cache and projects it into CSV or SQLite for analysis.

Sessions are fetched incrementally: only nights not yet cached are
downloaded, and an interrupted run resumes where it stopped. Time
tracking data from Toggl can be stored alongside.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		level := slog.LevelWarn
		if debug {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for the cache and database files")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// openStore loads the session cache from the configured path.
func openStore() (ports.SessionStore, error) {
	return cachefile.Load(cfg.CachePath())
}

// newSource builds the remote session client from the configured credentials.
func newSource() *sleepcycle.Client {
	return sleepcycle.New(
		cfg.SleepCycle.Email,
		cfg.SleepCycle.Password,
		sleepcycle.WithLogger(logger),
	)
}

// newWalker wires a walker over the cache and the remote service.
func newWalker(store ports.SessionStore, opts ...application.WalkerOption) *application.SessionWalker {
	opts = append([]application.WalkerOption{application.WithLogger(logger)}, opts...)
	return application.NewSessionWalker(store, newSource(), opts...)
}

// newTracker builds the time tracking client from the configured credentials.
func newTracker() *toggl.Client {
	return toggl.New(
		cfg.Toggl.APIToken,
		cfg.Toggl.Email,
		cfg.Toggl.WorkspaceID,
		toggl.WithLogger(logger),
	)
}

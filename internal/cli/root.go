// Package cli is the pomodoro command line: the desktop app by default
// plus data management subcommands.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pomodoro/internal/config"
	"pomodoro/internal/storage"
)

// ErrPreferencesBackend indicates a data command run against the desktop
// preferences store, which only the running app can open.
var ErrPreferencesBackend = errors.New("the preferences backend is only available in the desktop app")

// runner holds the state shared by every command.
type runner struct {
	configPath string
	logLevel   string
	config     config.Config
	logger     *slog.Logger
}

// NewRootCommand builds the command tree.
func NewRootCommand(version string) *cobra.Command {
	run := &runner{}

	rootCmd := &cobra.Command{
		Use:   "pomodoro",
		Short: "Pomodoro focus timer",
		Long: `Pomodoro is a focus timer with short, long and manual breaks.

Without a subcommand it opens the desktop app. The subcommands read and
write the same data the app keeps.`,
		Version:           version,
		PersistentPreRunE: run.setup,
		RunE:              run.runGUI,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&run.configPath, "config", "", "Config file (default is the user config dir)")
	rootCmd.PersistentFlags().StringVar(&run.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(run.exportCommand())
	rootCmd.AddCommand(run.importCommand())
	rootCmd.AddCommand(run.statsCommand())
	rootCmd.AddCommand(run.clearCommand())
	return rootCmd
}

// Execute runs the root command.
func Execute(version string) error {
	if err := NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func (run *runner) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(run.configPath)
	if err != nil {
		return err
	}
	if run.logLevel != "" {
		level, err := config.ParseLevel(run.logLevel)
		if err != nil {
			return err
		}
		cfg.Log.Level = level
	}
	run.config = cfg
	run.logger = config.NewLogger(cmd.ErrOrStderr(), cfg.Log)
	slog.SetDefault(run.logger)
	return nil
}

// openStore opens the configured store for a data command.
func (run *runner) openStore() (storage.Store, error) {
	if strings.EqualFold(run.config.Storage.Backend, storage.BackendPreferences) {
		return nil, ErrPreferencesBackend
	}
	store, err := storage.Open(storage.Options{
		Backend: run.config.Storage.Backend,
		DataDir: run.config.Storage.DataDir,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return store, nil
}

func (run *runner) withStore(fn func(storage.Store) error) error {
	store, err := run.openStore()
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(store); err != nil {
			run.logger.Warn("close store", "error", err)
		}
	}()
	return fn(store)
}

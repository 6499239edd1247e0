// Root command for the larder CLI: global flags, config loading, logging
// setup, and engine lifecycle shared by all subcommands.
package main

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/internal/paths"
	"github.com/mesh-intelligence/larder/pkg/larder"
	"github.com/mesh-intelligence/larder/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagBackend   string
	flagDataset   string
	flagVerbose   bool
)

// db is the engine opened by PersistentPreRunE for commands that need one.
var db *larder.Engine

var rootCmd = &cobra.Command{
	Use:   "larder",
	Short: "Larder is an embedded JSON record store",
	Long: `Larder manages named tables of key-value records with auto-increment
ids, persisting the full dataset through a configurable storage backend
after every mutation.`,
	Version:       larder.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()

		// init, version, and cobra's built-ins run without a dataset.
		switch cmd.Name() {
		case "init", "version", "help", "completion":
			return nil
		}
		return openEngine()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db == nil {
			return nil
		}
		return db.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: platform data dir)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: file, sqlite, or memory (default: file)")
	rootCmd.PersistentFlags().StringVar(&flagDataset, "dataset", "", "dataset name (default: \"default\")")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(insertCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(dropCmd)
}

// setupLogging installs a tinted slog handler on stderr and tags every log
// line of this invocation with a run id.
func setupLogging() {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
	slog.SetDefault(logger.With("run", uuid.NewString()[:8]))
}

// openEngine resolves configuration and opens the global engine bound to
// the selected dataset.
func openEngine() error {
	configDir, err := paths.ResolveConfigDir(flagConfigDir)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}

	backend := flagBackend
	if backend == "" {
		backend = cfg.GetString(cfgKeyBackend)
	}
	dataset := flagDataset
	if dataset == "" {
		dataset = cfg.GetString(cfgKeyDataset)
	}
	dataDir, err := paths.ResolveDataDir(flagDataDir, cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return err
	}

	slog.Debug("opening engine", "backend", backend, "dataset", dataset, "data_dir", dataDir)
	db, err = larder.Open(types.Config{Backend: backend, DataDir: dataDir}, dataset)
	return err
}

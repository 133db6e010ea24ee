// Package main implements genpass, a bulk generator of synthetic
// credential-like strings: usernames, passwords and numeric PINs.
//
// Items are produced in bulk, printed or saved as plain text, and
// optionally served from a small web page.
//
// Usage:
//
//	genpass generate password -n 500 --save
//	genpass serve --port 8000
//	genpass history --limit 20
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rampantspark/genpass/internal/config"
	"github.com/rampantspark/genpass/internal/engine"
	"github.com/rampantspark/genpass/internal/logging"
	"github.com/rampantspark/genpass/internal/stats"
)

// Built-in defaults, overridden by the config file and then by flags.
const (
	defaultCategory       = "password"
	defaultCount          = 100
	defaultOutputDir      = "."
	defaultPort           = "8000"
	defaultMaxCount       = 100000
	defaultRateLimit      = 10
	defaultRateBurst      = 20
	defaultBodyBytes      = 1 << 16
	defaultRequestTimeout = 30 * time.Second
)

// cli carries state shared by every command.
type cli struct {
	configPath string
	logLevel   string
	logFormat  string
	history    bool
	dbPath     string

	file   config.FileConfig
	logger *slog.Logger
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:           "genpass",
		Short:         "Bulk generator of usernames, passwords and PINs",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.configPath, "config", config.DefaultConfigPath(), "config file path")
	flags.StringVar(&c.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&c.logFormat, "log-format", logging.FormatHuman, "log format (human, text, json)")
	flags.BoolVar(&c.history, "history", true, "record generation metadata")
	flags.StringVar(&c.dbPath, "db-path", config.DefaultDBPath(), "history database path")

	rootCmd.AddCommand(newGenerateCmd(c))
	rootCmd.AddCommand(newServeCmd(c))
	rootCmd.AddCommand(newHistoryCmd(c))
	rootCmd.AddCommand(newCategoriesCmd())
	rootCmd.AddCommand(newConfigCmd(c))

	return rootCmd
}

// setup loads the config file and builds the logger. Flags given on the
// command line win over file values.
func (c *cli) setup(cmd *cobra.Command) error {
	fileCfg, err := config.LoadConfig(c.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c.file = fileCfg

	applyStringConfig(cmd, "log-level", &c.logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-format", &c.logFormat, fileCfg.Log.Format)
	applyBoolConfig(cmd, "history", &c.history, fileCfg.Storage.History)
	applyStringConfig(cmd, "db-path", &c.dbPath, fileCfg.Storage.DBPath)

	level, err := logging.ParseLevel(c.logLevel)
	if err != nil {
		return err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), level, c.logFormat)
	if err != nil {
		return err
	}
	c.logger = logger
	return nil
}

// openStats opens the history store. With history disabled the manager
// keeps an in-memory history for the lifetime of the process.
func (c *cli) openStats(trustProxy bool) (*stats.Manager, error) {
	if !c.history || c.dbPath == "" {
		return stats.NewManager(nil, nil, trustProxy, c.logger), nil
	}
	db, err := stats.NewDatabase(c.dbPath, c.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return stats.NewManager(db, nil, trustProxy, c.logger), nil
}

func (c *cli) closeStats(mgr *stats.Manager) {
	if err := mgr.Close(); err != nil {
		c.logger.Warn("Failed to close history database", "error", err)
	}
}

func (c *cli) defaults() config.Defaults {
	return config.Defaults{
		Category:     defaultCategory,
		Count:        defaultCount,
		PreviewLimit: engine.DefaultPreviewLimit,
		OutputDir:    defaultOutputDir,
		Port:         defaultPort,
		MaxCount:     defaultMaxCount,
		RateLimit:    defaultRateLimit,
		RateBurst:    defaultRateBurst,
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *string) error {
	if value == nil {
		return nil
	}
	if cmd.Flags().Changed(name) {
		return nil
	}
	d, err := time.ParseDuration(*value)
	if err != nil {
		return fmt.Errorf("invalid %s in config: %w", name, err)
	}
	*target = d
	return nil
}

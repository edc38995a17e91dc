// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package main

import (
	"context"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/filmgraph/internal/config"
	"github.com/tomtom215/filmgraph/internal/database"
	"github.com/tomtom215/filmgraph/internal/logging"
	"github.com/tomtom215/filmgraph/internal/recommend"
)

// cli holds state shared by the subcommands.
type cli struct {
	configPath string
	dbPath     string
	logLevel   string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "filmgraphctl",
		Short: "Filmgraph - preference graph film recommendations",
		Long: `filmgraphctl seeds, imports and queries a filmgraph DuckDB store.

Examples:
  filmgraphctl seed                        # load the demo catalog
  filmgraphctl recommend --user 1 --k 3    # compute recommendations
  filmgraphctl stats --user 1              # list served recommendations`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (overrides CONFIG_PATH)")
	root.PersistentFlags().StringVar(&c.dbPath, "db", "", "DuckDB database path (overrides database.path)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level (overrides logging.level)")

	root.AddCommand(
		c.newSeedCmd(),
		c.newImportCmd(),
		c.newRecommendCmd(),
		c.newAnalyzeCmd(),
		c.newStatsCmd(),
		c.newCountsCmd(),
	)
	return root
}

// setup loads configuration and initialises logging on stderr.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if c.configPath != "" {
		if err := os.Setenv(config.ConfigPathEnvVar, c.configPath); err != nil {
			return err
		}
	}

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		return err
	}
	if c.dbPath != "" {
		cfg.Database.Path = c.dbPath
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
	}

	logCfg := cfg.Logging.LoggerConfig()
	logCfg.Output = cmd.ErrOrStderr()
	logging.Init(logCfg)

	c.cfg = cfg
	return nil
}

// openDB opens the configured store. The caller closes it.
func (c *cli) openDB() (*database.DB, error) {
	return database.New(&c.cfg.Database)
}

// newEngine builds an engine reading through the circuit breaker.
func (c *cli) newEngine(db *database.DB) (*recommend.Engine, error) {
	provider := database.NewBreakerProvider(db, &c.cfg.Breaker)
	return recommend.NewEngine(c.cfg.Recommend.EngineConfig(), provider, logging.WithComponent("recommend"))
}

// withDB opens the store, runs fn and closes the store.
func (c *cli) withDB(cmd *cobra.Command, fn func(ctx context.Context, db *database.DB) error) (err error) {
	db, err := c.openDB()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(cmd.Context(), db)
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

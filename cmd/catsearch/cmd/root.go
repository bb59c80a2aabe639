// Package cmd provides the CLI commands for catsearch.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tripline/catsearch/internal/config"
	"github.com/tripline/catsearch/internal/logging"
	"github.com/tripline/catsearch/pkg/version"
)

// Shared flags and loaded configuration for subcommands.
var (
	configPath string
	dbPath     string
	logLevel   string
	cfg        *config.Config
)

// NewRootCmd creates the root command for the catsearch CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catsearch",
		Short: "Fuzzy catalog search for the shop and events catalogs",
		Long: `catsearch serves fuzzy, filtered, paginated search over the product
and event catalogs. The index is built lazily from the catalog database,
cached in memory with a TTL, and rebuilt with single-flight coalescing.

Run 'catsearch seed' once to create a demo database, then
'catsearch serve' to expose the HTTP API.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			if dbPath != "" {
				cfg.Database.Path = dbPath
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}
			logging.Setup(logging.Config{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
			})
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (YAML)")
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to catalog database (overrides config)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newSuggestCmd())
	cmd.AddCommand(newSeedCmd())
	return cmd
}

// Execute runs the root command.
func Execute() error {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

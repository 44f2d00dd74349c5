/*
main.go - Application entry point

PURPOSE:
  The budget CLI: serves the HTTP API and answers proration queries from the
  terminal.

COMMANDS:
  budget serve                    Start the HTTP server
  budget total START END          Print the prorated total
  budget breakdown START END      Print the total month by month
  budget import FILE              Upsert allocations from a YAML/JSON file

GLOBAL FLAGS:
  --db         SQLite database path (default: $BUDGET_DB_PATH or budget.db)
               Use ":memory:" for an in-memory database
  --sample     Use the built-in sample allocations instead of the database
  --log-level  debug, info, warn, error (default: $LOG_LEVEL or info)

ENVIRONMENT:
  See config/config.go. A .env file in the working directory is honoured.

EXAMPLES:
  budget --sample total 20240731 20240801     # 101
  budget import ./allocations.yaml
  budget serve --port 3000
*/
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/warp/budget-engine/budget"
	"github.com/warp/budget-engine/config"
	"github.com/warp/budget-engine/generic"
	"github.com/warp/budget-engine/generic/store"
	"github.com/warp/budget-engine/store/sqlite"
)

var (
	cfg = config.Load()

	dbPath     string
	useSample  bool
	logLevel   string
	servePort  int
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:           "budget",
	Short:         "Prorate monthly budget allocations over date ranges",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg.DBPath = dbPath
		cfg.LogLevel = logLevel
		return cfg.Validate()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.DBPath, "SQLite database path")
	rootCmd.PersistentFlags().BoolVar(&useSample, "sample", false, "use the built-in sample allocations (in memory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "log level")

	rootCmd.AddCommand(serveCmd, totalCmd, breakdownCmd, importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openService builds the service over the configured store. The returned
// close func must always be called.
func openService(logger zerolog.Logger) (*budget.Service, func(), error) {
	var (
		s       generic.AllocationStore
		closeFn = func() {}
	)

	if useSample {
		s = store.NewMemoryWith(budget.SampleAllocations())
		logger.Debug().Msg("using sample allocations")
	} else {
		db, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, closeFn, fmt.Errorf("failed to initialize database: %w", err)
		}
		s = db
		closeFn = func() { db.Close() }
		logger.Debug().Str("db", cfg.DBPath).Msg("opened database")
	}

	return budget.NewService(s, budget.WithLogger(logger)), closeFn, nil
}

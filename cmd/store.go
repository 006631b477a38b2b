package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/iostore"
)

// storeSetup loads the history store settings without opening it, so that
// clear and migrate work against a missing or outdated database.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, err := contract.ParseStoreBackend(viper.GetString("store-backend"))
	if err != nil {
		return err
	}
	connStr := viper.GetString("store-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeOpenWrapper loads the store settings and opens the history store.
func storeOpenWrapper(_ *cobra.Command, _ []string) error {
	if err := storeSetup(); err != nil {
		return err
	}
	if err := iostore.InitStores(cfg.StoreBackend, cfg.StoreDBConnect, "", ""); err != nil {
		return fmt.Errorf("failed to initialize history store: %w", err)
	}
	return nil
}

// storeCmd focused on history store management.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the board history store",
	Long: `Manage the database holding projects, sprints, tasks, changelog and worklogs.

Supported backends: SQLite (default), MySQL, PostgreSQL

Subcommands:
  status  - Show row counts and connection info
  import  - Load a board snapshot (YAML or JSON)
  clear   - Remove all board history
  migrate - Run database schema migrations

Examples:
  # Load a snapshot, then chart it
  burndown store import board.yaml
  burndown burndown --scope-id 10`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history store statistics and connection details",
	Long: `Show the backend, per-table row counts, latest activity and size of the history store.

Examples:
  burndown store status`,
	PreRunE: storeOpenWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := storeManager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		iostore.PrintStoreStatus(os.Stdout, status)
	},
}

// storeImportCmd loads a board snapshot.
var storeImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a board snapshot into the history store",
	Long: `Read a YAML (or JSON) board snapshot and replace the stored rows of every
project, sprint, task, changelog entry and worklog it contains.

The whole document is validated first; nothing is written when any entity is invalid.

Examples:
  burndown store import board.yaml
  burndown store import - < board.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: storeOpenWrapper,
	Run: func(_ *cobra.Command, args []string) {
		in := os.Stdin
		if args[0] != "-" {
			file, err := os.Open(args[0])
			if err != nil {
				contract.LogFatal("Failed to open board snapshot", err)
			}
			defer func() { _ = file.Close() }()
			in = file
		}

		board, err := iostore.LoadBoard(in)
		if err != nil {
			contract.LogFatal("Failed to read board snapshot", err)
		}
		summary, err := storeManager.GetHistoryStore().ImportBoard(rootCtx, board)
		if err != nil {
			contract.LogFatal("Failed to import board snapshot", err)
		}
		fmt.Printf("Imported %d projects, %d sprints, %d tasks, %d changelog entries, %d worklogs.\n",
			summary.Projects, summary.Sprints, summary.Tasks, summary.Changelog, summary.Worklogs)
	},
}

// storeClearCmd clears the history store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all board history",
	Long: `Delete every imported project, sprint, task, changelog entry and worklog.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the board tables

Examples:
  burndown store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ClearHistory(cfg.StoreBackend, contract.GetHistoryDBFilePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear board history", err)
		}
		fmt.Println("Board history cleared successfully.")
	},
}

// storeMigrateCmd runs database migrations for the history store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage schema versions of the history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  burndown store migrate

  # Rollback everything
  burndown store migrate --target-version 0`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iostore.MigrateHistory(os.Stdout, cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

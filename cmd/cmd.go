// Package cmd defines the command-line interface for burndown.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(burndownCmd)
	rootCmd.AddCommand(burnupCmd)
	rootCmd.AddCommand(flowCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(messageCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)
	storeCmd.AddCommand(storeImportCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("scope", string(schema.SprintScope), "Scope kind: sprint or project")
	rootCmd.PersistentFlags().Int64("scope-id", 0, "Id of the sprint or project to chart")
	rootCmd.PersistentFlags().String("as-of", "", "Drop points after this instant (ISO8601 or time ago)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet or html")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for hour columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "History store backend: sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for the history store")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for the cache (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("cache-ttl", "7 days", "How long cached series stay fresh")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write Prometheus metrics to this file after the run")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of taskCmd to Viper
	taskCmd.Flags().Int64("task-id", 0, "Id of the task")
	if err := viper.BindPFlags(taskCmd.Flags()); err != nil {
		contract.LogFatal("Error binding task flags", err)
	}

	// Bind all flags of messageCmd to Viper
	messageCmd.Flags().String("kind", schema.InitialPoint.String(), "Point kind: initial, new_task, scope_change, stage_change, work_logged")
	messageCmd.Flags().Int64("source-id", 0, "Source id carried by the point")
	messageCmd.Flags().String("at", "", "Instant of the point (ISO8601 or time ago)")
	if err := viper.BindPFlags(messageCmd.Flags()); err != nil {
		contract.LogFatal("Error binding message flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}

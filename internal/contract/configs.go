package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 1
	MaxPrecision     = 3
	DefaultCacheTTL  = 7 * 24 * time.Hour
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the final, validated runtime configuration.
type Config struct {
	ScopeKind schema.ScopeKind
	ScopeID   int64
	TaskID    int64
	AsOf      time.Time // Zero keeps every point

	// Point lookup for the message command
	PointKind schema.PointKind
	SourceID  int64
	PointAt   time.Time

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
	CacheTTL       time.Duration

	MetricsFile string
	LogLevel    string

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Scope          string `mapstructure:"scope"`
	ScopeID        int64  `mapstructure:"scope-id"`
	AsOf           string `mapstructure:"as-of"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Precision      int    `mapstructure:"precision"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	Emoji          string `mapstructure:"emoji"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
	CacheTTL       string `mapstructure:"cache-ttl"`
	MetricsFile    string `mapstructure:"metrics-file"`
	LogLevel       string `mapstructure:"log-level"`

	// --- Fields from taskCmd.Flags() ---
	TaskID int64 `mapstructure:"task-id"`

	// --- Fields from messageCmd.Flags() ---
	Kind     string `mapstructure:"kind"`
	SourceID int64  `mapstructure:"source-id"`
	At       string `mapstructure:"at"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	now := time.Now()
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processScope(cfg, input, now); err != nil {
		return err
	}
	if err := processPointLookup(cfg, input, now); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	default:
		return fmt.Errorf("unknown database backend '%s'", backend)
	}
	return nil
}

// ParseStoreBackend validates a history store backend name. Unlike the cache, the
// store cannot be disabled.
func ParseStoreBackend(raw string) (schema.DatabaseBackend, error) {
	backend := schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok || backend == schema.NoneBackend {
		return "", fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql", raw)
	}
	return backend, nil
}

// ParseCacheBackend validates a cache backend name.
func ParseCacheBackend(raw string) (schema.DatabaseBackend, error) {
	backend := schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", raw)
	}
	return backend, nil
}

// validateBackendConfigs validates history store and cache backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- History Store Validation ---
	backend, err := ParseStoreBackend(input.StoreBackend)
	if err != nil {
		return err
	}
	cfg.StoreBackend = backend
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}

	// --- Cache Backend Validation ---
	backend, err = ParseCacheBackend(input.CacheBackend)
	if err != nil {
		return err
	}
	cfg.CacheBackend = backend
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// SQLite store and cache must not share a file, since clearing the cache removes it.
	if cfg.StoreBackend == schema.SQLiteBackend && cfg.CacheBackend == schema.SQLiteBackend {
		storePath := cfg.StoreDBConnect
		if storePath == "" {
			storePath = GetHistoryDBFilePath()
		}
		cachePath := cfg.CacheDBConnect
		if cachePath == "" {
			cachePath = GetCacheDBFilePath()
		}
		if storePath == cachePath {
			return fmt.Errorf("history store and cache must use different SQLite database files. Both resolve to %q", storePath)
		}
	}

	cfg.CacheTTL = DefaultCacheTTL
	if input.CacheTTL != "" {
		ttl, err := ParseSpan(input.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid --cache-ttl value: %w", err)
		}
		cfg.CacheTTL = ttl
	}
	return nil
}

// validateSimpleInputs processes and validates the output and logging fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.MetricsFile = input.MetricsFile

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet, html", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	cfg.LogLevel = strings.ToLower(input.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = zerolog.InfoLevel.String()
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level '%s'", input.LogLevel)
	}
	return nil
}

// processScope handles the scope selection and the as-of instant.
func processScope(cfg *Config, input *ConfigRawInput, now time.Time) error {
	cfg.ScopeKind = schema.ScopeKind(strings.ToLower(strings.TrimSpace(input.Scope)))
	if _, ok := schema.ValidScopeKinds[cfg.ScopeKind]; !ok {
		return fmt.Errorf("invalid scope '%s'. must be sprint, project", input.Scope)
	}
	if input.ScopeID < 0 {
		return fmt.Errorf("scope-id cannot be negative (received %d)", input.ScopeID)
	}
	cfg.ScopeID = input.ScopeID

	if input.TaskID < 0 {
		return fmt.Errorf("task-id cannot be negative (received %d)", input.TaskID)
	}
	cfg.TaskID = input.TaskID

	asOf, err := ParseInstant(input.AsOf, now)
	if err != nil {
		return fmt.Errorf("invalid --as-of value: %w", err)
	}
	cfg.AsOf = asOf
	return nil
}

// processPointLookup handles the point selection of the message command.
func processPointLookup(cfg *Config, input *ConfigRawInput, now time.Time) error {
	cfg.PointKind = schema.InitialPoint
	if input.Kind != "" {
		kind, err := schema.ParsePointKind(strings.ToLower(strings.TrimSpace(input.Kind)))
		if err != nil {
			return fmt.Errorf("invalid --kind value: %w", err)
		}
		cfg.PointKind = kind
	}
	if input.SourceID < 0 {
		return fmt.Errorf("source-id cannot be negative (received %d)", input.SourceID)
	}
	cfg.SourceID = input.SourceID

	at, err := ParseInstant(input.At, now)
	if err != nil {
		return fmt.Errorf("invalid --at value: %w", err)
	}
	cfg.PointAt = at
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// RequireScope checks that a scope id was given.
func (c *Config) RequireScope() error {
	if c.ScopeID <= 0 {
		return fmt.Errorf("%w: --scope-id is required", ErrInvalidInput)
	}
	return nil
}

// RequireTask checks that a task id was given.
func (c *Config) RequireTask() error {
	if c.TaskID <= 0 {
		return fmt.Errorf("%w: --task-id is required", ErrInvalidInput)
	}
	return nil
}

// RevalidateScope re-applies scope selection on a cloned config. The MCP
// tools use it since they bypass flag parsing.
func RevalidateScope(cfg *Config, scope string, scopeID int64, asOf string) error {
	if scope == "" {
		scope = string(schema.SprintScope)
	}
	input := &ConfigRawInput{Scope: scope, ScopeID: scopeID, TaskID: cfg.TaskID, AsOf: asOf}
	if err := processScope(cfg, input, time.Now()); err != nil {
		return err
	}
	return cfg.RequireScope()
}

// RevalidateTask re-applies task selection on a cloned config.
func RevalidateTask(cfg *Config, taskID int64, asOf string) error {
	input := &ConfigRawInput{Scope: string(schema.SprintScope), TaskID: taskID, AsOf: asOf}
	if err := processScope(cfg, input, time.Now()); err != nil {
		return err
	}
	return cfg.RequireTask()
}

// RevalidatePoint re-applies point selection on a cloned config.
func RevalidatePoint(cfg *Config, kind string, sourceID int64, at string) error {
	input := &ConfigRawInput{Kind: kind, SourceID: sourceID, At: at}
	return processPointLookup(cfg, input, time.Now())
}

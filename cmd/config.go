package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"office-pump/internal/catalog"
	"office-pump/internal/dialect"
	"office-pump/internal/estimate"
	"office-pump/internal/ledger"

	"github.com/spf13/viper"
)

type DBConfig struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Schema string `mapstructure:"schema"`
	Active bool   `mapstructure:"active"`
}

// GetActiveDBConfig returns the currently active database configuration.
func GetActiveDBConfig() (*DBConfig, error) {
	var configs []DBConfig

	if err := viper.UnmarshalKey("databases", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse databases config: %w", err)
	}

	var activeConfig *DBConfig
	count := 0

	for i := range configs {
		if configs[i].Active {
			activeConfig = &configs[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("no active database found in config (set active: true)")
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active databases found (only one can be active)")
	}

	return activeConfig, nil
}

// DetectDriver guesses the driver from a DSN when none is configured.
func DetectDriver(connStr string) string {
	lower := strings.ToLower(connStr)
	switch {
	case strings.HasPrefix(lower, "sqlserver://"):
		return "sqlserver"
	case strings.HasPrefix(lower, "oracle://"):
		return "oracle"
	case strings.Contains(lower, "postgres") || strings.Contains(lower, "sslmode"):
		return "postgres"
	case strings.HasPrefix(lower, "file:") || strings.HasSuffix(lower, ".db") ||
		strings.HasSuffix(lower, ".sqlite") || lower == ":memory:":
		return "sqlite"
	default:
		return "mysql"
	}
}

// dbSource is an attached database.
type dbSource struct {
	db     *sql.DB
	cfg    DBConfig
	schema string
}

// Label names the database in output file names.
func (s *dbSource) Label() string {
	if s.cfg.Name != "" {
		return s.cfg.Name
	}
	if s.cfg.Driver == "sqlite" {
		base := filepath.Base(strings.TrimPrefix(s.cfg.DSN, "file:"))
		if i := strings.IndexByte(base, '?'); i >= 0 {
			base = base[:i]
		}
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	if s.schema != "" {
		return s.schema
	}
	return s.cfg.Driver
}

func (s *dbSource) Close() error {
	return s.db.Close()
}

func openDB(ctx context.Context, cfg DBConfig) (*dbSource, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("empty dsn")
	}
	if cfg.Driver == "" {
		cfg.Driver = DetectDriver(cfg.DSN)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if cfg.Driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	src := &dbSource{db: db, cfg: cfg, schema: cfg.Schema}
	if src.schema == "" && cfg.Driver == "mysql" {
		// Fetch current database name for the catalog queries
		if err := db.QueryRowContext(ctx, "SELECT DATABASE()").Scan(&src.schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to get database name: %w", err)
		}
		if src.schema == "" {
			db.Close()
			return nil, fmt.Errorf("no database selected in DSN")
		}
	}
	return src, nil
}

// dbProviders ranks the ways to attach a database: explicit flags, the
// active entry of the databases list, then database.dsn from config or env.
func dbProviders() []catalog.Provider[*dbSource] {
	return []catalog.Provider[*dbSource]{
		{Name: "flags", Attach: func(ctx context.Context) (*dbSource, error) {
			if dsn == "" {
				return nil, fmt.Errorf("--dsn not given")
			}
			return openDB(ctx, DBConfig{Name: "cli", Driver: driverName, DSN: dsn})
		}},
		{Name: "databases", Attach: func(ctx context.Context) (*dbSource, error) {
			cfg, err := GetActiveDBConfig()
			if err != nil {
				return nil, err
			}
			return openDB(ctx, *cfg)
		}},
		{Name: "database.dsn", Attach: func(ctx context.Context) (*dbSource, error) {
			connStr := viper.GetString("database.dsn")
			if connStr == "" {
				return nil, fmt.Errorf("database.dsn not set")
			}
			return openDB(ctx, DBConfig{
				Driver: viper.GetString("database.driver"),
				DSN:    connStr,
				Schema: viper.GetString("database.schema"),
			})
		}},
	}
}

// loadEstimateConfig reads the estimate.* keys over the defaults for d.
func loadEstimateConfig(d dialect.Dialect) estimate.Config {
	cfg := estimate.DefaultConfig(d.SystemTablePrefix())
	if viper.IsSet("estimate.avg_long_text_chars") {
		cfg.AvgLongTextChars = viper.GetInt("estimate.avg_long_text_chars")
	}
	if viper.IsSet("estimate.text_fill") {
		cfg.TextFill = viper.GetFloat64("estimate.text_fill")
	}
	if viper.IsSet("estimate.row_overhead") {
		cfg.RowOverhead = viper.GetInt("estimate.row_overhead")
	}
	if viper.IsSet("estimate.index_multiplier") {
		cfg.IndexMultiplier = viper.GetFloat64("estimate.index_multiplier")
	}
	if viper.IsSet("estimate.system_prefix") {
		cfg.SystemPrefix = viper.GetString("estimate.system_prefix")
	}
	return cfg
}

// loadLedgerConfig unmarshals the ledger section over the defaults.
func loadLedgerConfig() (ledger.Config, error) {
	cfg := ledger.DefaultConfig()
	if viper.IsSet("ledger.entities") {
		cfg.Entities = nil
	}
	if err := viper.UnmarshalKey("ledger", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse ledger config: %w", err)
	}
	if len(cfg.Entities) == 0 {
		return cfg, fmt.Errorf("ledger.entities must name at least one entity")
	}
	return cfg, nil
}

package warehouse

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	sf "github.com/snowflakedb/gosnowflake"

	"NPSLabeler/internal/config"
)

// Warehouse table names. Unquoted identifiers, so Snowflake resolves them
// case-insensitively.
const (
	rawTable    = "nps_provider_raw"
	domainTable = "provider_domain"
	outputTable = "final_nps_op"
)

// Open connects to the warehouse and verifies the session with a ping.
func Open(cfg config.WarehouseConfig) (*sqlx.DB, error) {
	dsn := cfg.DSN
	if dsn == "" {
		var err error
		dsn, err = sf.DSN(&sf.Config{
			Account:   cfg.Account,
			User:      cfg.User,
			Password:  cfg.Password,
			Database:  cfg.Database,
			Schema:    cfg.Schema,
			Role:      cfg.Role,
			Warehouse: cfg.Warehouse,
		})
		if err != nil {
			return nil, fmt.Errorf("build dsn: %w", err)
		}
	}

	db, err := sqlx.Connect("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect warehouse: %w", err)
	}
	return db, nil
}

package database

import (
	"context"
	"fmt"
	"strings"

	"nird-backend/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver, registers "oracle"
	_ "modernc.org/sqlite"         // SQLite driver, registers "sqlite"
)

func init() {
	// Neither driver name is in sqlx's built-in bind table.
	sqlx.BindDriver(config.DriverOracle, sqlx.NAMED)
	sqlx.BindDriver(config.DriverSQLite, sqlx.QUESTION)
}

// NewSQLXDB connects to the configured database and verifies the connection.
func NewSQLXDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	driver := cfg.DB.Driver
	dsn := cfg.GetDSN()
	if driver == config.DriverSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	if driver == config.DriverSQLite {
		// One connection: SQLite has a single writer and ":memory:" is per connection.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}
	return db, nil
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

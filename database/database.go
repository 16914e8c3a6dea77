// Package database holds the schema migrations, one directory per SQL dialect.
package database

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed migrations/oracle/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// Migrations returns the migration files for a driver ("oracle" or "sqlite").
func Migrations(driver string) (fs.FS, error) {
	switch driver {
	case "oracle", "sqlite":
		return fs.Sub(migrations, "migrations/"+driver)
	default:
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}
}

package database

import (
	"errors"
	"fmt"

	schema "nird-backend/database"
	"nird-backend/internal/config"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

// Migrator applies the embedded schema migrations.
type Migrator interface {
	// Up applies every pending migration. No pending migration is not an error.
	Up() error
	// Down rolls back steps migrations, or all of them when steps <= 0.
	Down(steps int) error
	// Version reports the applied version, 0 when none.
	Version() (version uint, dirty bool, err error)
	// Close releases the migration source. The database stays open.
	Close() error
}

// NewMigrator picks the migration runner for the connection's driver.
func NewMigrator(db *sqlx.DB) (Migrator, error) {
	driver := db.DriverName()
	fsys, err := schema.Migrations(driver)
	if err != nil {
		return nil, err
	}

	switch driver {
	case config.DriverSQLite:
		src, err := iofs.New(fsys, ".")
		if err != nil {
			return nil, fmt.Errorf("could not open migration source: %w", err)
		}
		dbDriver, err := sqlite.WithInstance(db.DB, &sqlite.Config{})
		if err != nil {
			src.Close()
			return nil, fmt.Errorf("could not create sqlite migration driver: %w", err)
		}
		m, err := migrate.NewWithInstance("iofs", src, config.DriverSQLite, dbDriver)
		if err != nil {
			src.Close()
			return nil, fmt.Errorf("could not create migrator: %w", err)
		}
		return &golangMigrator{m: m, src: src}, nil
	case config.DriverOracle:
		return newOracleMigrator(db, fsys), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}

type golangMigrator struct {
	m   *migrate.Migrate
	src source.Driver
}

func (g *golangMigrator) Up() error {
	if err := g.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply migrations: %w", err)
	}
	return nil
}

func (g *golangMigrator) Down(steps int) error {
	var err error
	if steps <= 0 {
		err = g.m.Down()
	} else {
		err = g.m.Steps(-steps)
	}
	var short migrate.ErrShortLimit
	if err != nil && !errors.Is(err, migrate.ErrNoChange) && !errors.As(err, &short) {
		return fmt.Errorf("could not roll back migrations: %w", err)
	}
	return nil
}

func (g *golangMigrator) Version() (uint, bool, error) {
	v, dirty, err := g.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// Close only closes the source: migrate.Close would also close the caller's *sql.DB.
func (g *golangMigrator) Close() error {
	return g.src.Close()
}

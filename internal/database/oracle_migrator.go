package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

// oracleMigrator executes the embedded .up.sql/.down.sql files itself and keeps
// the same schema_migrations(version, dirty) bookkeeping golang-migrate uses.
// golang-migrate ships no driver for go-ora.
type oracleMigrator struct {
	db   *sqlx.DB
	fsys fs.FS
}

type migrationFile struct {
	version uint
	up      string
	down    string
}

func newOracleMigrator(db *sqlx.DB, fsys fs.FS) *oracleMigrator {
	return &oracleMigrator{db: db, fsys: fsys}
}

func (o *oracleMigrator) Up() error {
	ctx := context.Background()
	if err := o.ensureVersionTable(ctx); err != nil {
		return err
	}
	current, dirty, err := o.Version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("database is dirty at version %d, fix it manually", current)
	}

	files, err := o.load()
	if err != nil {
		return err
	}
	for _, f := range files {
		if f.version <= current {
			continue
		}
		if err := o.apply(ctx, f.version, f.up, f.version); err != nil {
			return err
		}
	}
	return nil
}

func (o *oracleMigrator) Down(steps int) error {
	ctx := context.Background()
	if err := o.ensureVersionTable(ctx); err != nil {
		return err
	}
	current, dirty, err := o.Version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("database is dirty at version %d, fix it manually", current)
	}

	files, err := o.load()
	if err != nil {
		return err
	}
	var applied []migrationFile
	for _, f := range files {
		if f.version <= current {
			applied = append(applied, f)
		}
	}

	done := 0
	for i := len(applied) - 1; i >= 0; i-- {
		if steps > 0 && done == steps {
			break
		}
		var previous uint
		if i > 0 {
			previous = applied[i-1].version
		}
		if err := o.apply(ctx, applied[i].version, applied[i].down, previous); err != nil {
			return err
		}
		done++
	}
	return nil
}

func (o *oracleMigrator) Version() (uint, bool, error) {
	var row struct {
		Version int64 `db:"version"`
		Dirty   bool  `db:"dirty"`
	}
	err := o.db.Get(&row, `SELECT version "version", dirty "dirty" FROM schema_migrations FETCH FIRST 1 ROWS ONLY`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to query schema_migrations: %w", err)
	}
	return uint(row.Version), row.Dirty, nil
}

func (o *oracleMigrator) Close() error {
	return nil
}

func (o *oracleMigrator) ensureVersionTable(ctx context.Context) error {
	var count int
	if err := o.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'`); err != nil {
		return fmt.Errorf("could not inspect schema_migrations: %w", err)
	}
	if count > 0 {
		return nil
	}
	if _, err := o.db.ExecContext(ctx, `CREATE TABLE schema_migrations (version NUMBER(19) NOT NULL, dirty NUMBER(1) NOT NULL)`); err != nil {
		return fmt.Errorf("could not create schema_migrations: %w", err)
	}
	return nil
}

// apply marks the database dirty, runs the file, then records target as clean.
// A failing statement leaves the dirty flag set, as golang-migrate does.
func (o *oracleMigrator) apply(ctx context.Context, version uint, name string, target uint) error {
	if err := o.setVersion(ctx, version, true); err != nil {
		return err
	}

	content, err := fs.ReadFile(o.fsys, name)
	if err != nil {
		return fmt.Errorf("could not read migration file %s: %w", name, err)
	}
	for _, stmt := range splitStatements(string(content)) {
		if _, err := o.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not execute migration %s: %w", name, err)
		}
	}

	if target == 0 {
		_, err := o.db.ExecContext(ctx, `DELETE FROM schema_migrations`)
		return err
	}
	return o.setVersion(ctx, target, false)
}

func (o *oracleMigrator) setVersion(ctx context.Context, version uint, dirty bool) error {
	if _, err := o.db.ExecContext(ctx, `DELETE FROM schema_migrations`); err != nil {
		return fmt.Errorf("could not reset schema_migrations: %w", err)
	}
	query := o.db.Rebind(`INSERT INTO schema_migrations (version, dirty) VALUES (?, ?)`)
	if _, err := o.db.ExecContext(ctx, query, int64(version), dirty); err != nil {
		return fmt.Errorf("could not record version %d: %w", version, err)
	}
	return nil
}

// load pairs up and down files by their numeric prefix, sorted by version.
func (o *oracleMigrator) load() ([]migrationFile, error) {
	entries, err := fs.ReadDir(o.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}

	byVersion := make(map[uint]*migrationFile)
	for _, e := range entries {
		name := e.Name()
		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			continue
		}
		v, err := strconv.ParseUint(prefix, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid migration file name %s: %w", name, err)
		}
		f, ok := byVersion[uint(v)]
		if !ok {
			f = &migrationFile{version: uint(v)}
			byVersion[uint(v)] = f
		}
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			f.up = name
		case strings.HasSuffix(name, ".down.sql"):
			f.down = name
		}
	}

	files := make([]migrationFile, 0, len(byVersion))
	for _, f := range byVersion {
		if f.up == "" || f.down == "" {
			return nil, fmt.Errorf("migration %d is missing its up or down file", f.version)
		}
		files = append(files, *f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].version < files[j].version })
	return files, nil
}

// splitStatements splits a script on statement-terminating semicolons.
// Oracle rejects a trailing ";" and more than one statement per call.
func splitStatements(script string) []string {
	var stmts []string
	for _, part := range strings.Split(script, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

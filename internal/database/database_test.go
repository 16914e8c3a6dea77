package database

import (
	"context"
	"regexp"
	"testing"
	"testing/fstest"

	"nird-backend/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryDB(t *testing.T) *sqlx.DB {
	t.Helper()
	cfg := &config.Config{DB: config.DBConfig{Driver: config.DriverSQLite, Path: ":memory:"}}
	db, err := NewSQLXDB(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sqlx.DB, name string) bool {
	t.Helper()
	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name))
	return count == 1
}

func TestSQLiteMigrator_UpDown(t *testing.T) {
	db := newMemoryDB(t)

	m, err := NewMigrator(db)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.Up())
	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(4), version)
	assert.False(t, dirty)
	for _, table := range []string{"users", "questions", "human_quiz_questions", "blog_posts"} {
		assert.True(t, tableExists(t, db, table), table)
	}

	// second Up is a no-op
	require.NoError(t, m.Up())

	require.NoError(t, m.Down(1))
	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(3), version)
	assert.False(t, tableExists(t, db, "blog_posts"))

	require.NoError(t, m.Down(0))
	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)
	assert.False(t, tableExists(t, db, "users"))

	require.NoError(t, m.Up())
	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(4), version)
}

func TestNewSQLXDB_SQLiteBindType(t *testing.T) {
	db := newMemoryDB(t)
	assert.Equal(t, "SELECT 1 WHERE ? = ?", db.Rebind("SELECT 1 WHERE ? = ?"))
	assert.Equal(t, sqlx.NAMED, sqlx.BindType(config.DriverOracle))
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file:nird.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN("nird.db"))
	assert.Equal(t, "file:custom.db?mode=ro", sqliteDSN("file:custom.db?mode=ro"))
}

func TestSplitStatements(t *testing.T) {
	script := "CREATE TABLE a (id NUMBER);\n\nCREATE INDEX idx_a ON a (id);\n"
	assert.Equal(t, []string{"CREATE TABLE a (id NUMBER)", "CREATE INDEX idx_a ON a (id)"}, splitStatements(script))
	assert.Empty(t, splitStatements("  \n"))
}

func TestOracleMigrator_Load(t *testing.T) {
	fsys := fstest.MapFS{
		"000002_b.up.sql":   {Data: []byte("CREATE TABLE b (id NUMBER);")},
		"000002_b.down.sql": {Data: []byte("DROP TABLE b;")},
		"000001_a.up.sql":   {Data: []byte("CREATE TABLE a (id NUMBER);")},
		"000001_a.down.sql": {Data: []byte("DROP TABLE a;")},
	}
	files, err := newOracleMigrator(nil, fsys).load()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, uint(1), files[0].version)
	assert.Equal(t, "000001_a.up.sql", files[0].up)
	assert.Equal(t, "000002_b.down.sql", files[1].down)

	delete(fsys, "000002_b.down.sql")
	_, err = newOracleMigrator(nil, fsys).load()
	assert.ErrorContains(t, err, "missing its up or down file")
}

func TestOracleMigrator_UpFromEmpty(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	db := sqlx.NewDb(mockDB, "sqlmock")
	defer db.Close()

	fsys := fstest.MapFS{
		"000001_users.up.sql":   {Data: []byte("CREATE TABLE users (id VARCHAR2(26));\nCREATE INDEX idx_users ON users (id);\n")},
		"000001_users.down.sql": {Data: []byte("DROP TABLE users;")},
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`CREATE TABLE schema_migrations`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT version "version", dirty "dirty" FROM schema_migrations`).
		WillReturnRows(sqlmock.NewRows([]string{"version", "dirty"}))

	mock.ExpectExec(`DELETE FROM schema_migrations`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO schema_migrations (version, dirty) VALUES (?, ?)`)).
		WithArgs(int64(1), true).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE users (id VARCHAR2(26))`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE INDEX idx_users ON users (id)`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM schema_migrations`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO schema_migrations (version, dirty) VALUES (?, ?)`)).
		WithArgs(int64(1), false).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, newOracleMigrator(db, fsys).Up())
	assert.NoError(t, mock.ExpectationsWereMet())
}

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func TestWithTransaction_Commit(t *testing.T) {
	db, mock := setupTestDB(t)
	tm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	var sawTx bool
	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		_, sawTx = GetExecutor(ctx, db).(*sqlx.Tx)
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, sawTx)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RollbackOnError(t *testing.T) {
	db, mock := setupTestDB(t)
	tm := NewTransactionManagerAdapter(db)
	fnErr := errors.New("seed failed")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		return fnErr
	})

	assert.ErrorIs(t, err, fnErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RollbackOnPanic(t *testing.T) {
	db, mock := setupTestDB(t)
	tm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = tm.WithTransaction(context.Background(), func(ctx context.Context) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_BeginError(t *testing.T) {
	db, mock := setupTestDB(t)
	tm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		t.Fatal("fn must not run")
		return nil
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to begin transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExecutor_WithoutTransaction(t *testing.T) {
	db, _ := setupTestDB(t)
	assert.Equal(t, DBTX(db), GetExecutor(context.Background(), db))
}

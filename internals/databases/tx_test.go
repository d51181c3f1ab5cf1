package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"danceflow_backend/internals/testutil"
)

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrTxConflict))
	assert.True(t, IsRetryable(fmt.Errorf("wrap: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "40001"}))
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "40P01"}))
	assert.False(t, IsRetryable(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsRetryable(errors.New("boom")))
	assert.False(t, IsRetryable(nil))
}

func TestWithTxRetry(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	calls := 0
	err := WithTxRetry(ctx, db, 3, func(tx *gorm.DB) error {
		calls++
		if calls < 3 {
			return ErrTxConflict
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = WithTxRetry(ctx, db, 3, func(tx *gorm.DB) error {
		calls++
		return ErrTxConflict
	})
	assert.ErrorIs(t, err, ErrTxRetriesExhausted)
	assert.ErrorIs(t, err, ErrTxConflict)
	assert.Equal(t, 3, calls)

	// error biasa tidak diulang
	calls = 0
	boom := errors.New("boom")
	err = WithTxRetry(ctx, db, 3, func(tx *gorm.DB) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestWithTxRetryCancelledContext(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := WithTxRetry(ctx, db, 3, func(tx *gorm.DB) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

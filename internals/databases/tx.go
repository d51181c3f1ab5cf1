package database

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const DefaultTxAttempts = 3

// ErrTxConflict ditandai oleh fn ketika guard optimistic (class_version) tidak cocok.
var ErrTxConflict = errors.New("transaction conflict")

// ErrTxRetriesExhausted dibungkus bersama konflik terakhir bila semua percobaan gagal.
var ErrTxRetriesExhausted = errors.New("transaction retries exhausted")

// WithTxRetry menjalankan fn di dalam db.Transaction dan mengulang seluruh transaksi
// bila terjadi konflik (guard 0 baris, serialization failure, deadlock, unique violation).
func WithTxRetry(ctx context.Context, db *gorm.DB, attempts int, fn func(tx *gorm.DB) error) error {
	if attempts <= 0 {
		attempts = DefaultTxAttempts
	}
	var err error
	for i := 1; i <= attempts; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = db.WithContext(ctx).Transaction(fn)
		if err == nil || !IsRetryable(err) {
			return err
		}
		log.Printf("[WARN] tx conflict, retrying (%d/%d): %v", i, attempts, err)
	}
	return errors.Join(ErrTxRetriesExhausted, err)
}

// IsRetryable: konflik yang aman diulang dari awal.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTxConflict) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", // serialization_failure
			"40P01", // deadlock_detected
			"23505": // unique_violation
			return true
		}
	}
	return false
}

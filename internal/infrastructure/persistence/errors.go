package persistence

import (
	"errors"
	"strings"

	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// translateError maps driver-level errors to domain sentinels.
// Unique violations become shared.ErrConflict so services can treat the
// database constraint as the final arbiter of uniqueness races.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	if isUniqueViolation(err) {
		return shared.ErrConflict
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite driver used by the test suite
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isSerializationFailure reports whether the transaction lost a
// serialization or deadlock race and is worth one retry
// (postgres codes 40001 and 40P01).
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

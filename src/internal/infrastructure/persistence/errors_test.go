package persistence

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestClassifyError_PostgresLockErrors_MapToConflict(t *testing.T) {
	codes := []string{
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.LockNotAvailable,
	}

	for _, code := range codes {
		t.Run(code, func(t *testing.T) {
			err := fmt.Errorf("commit: %w", &pgconn.PgError{Code: code, Message: "could not serialize"})

			classified := classifyError(err)

			assert.ErrorIs(t, classified, shared.ErrConcurrentWrite)
			assert.Equal(t, shared.KindConflict, shared.KindOf(classified))
		})
	}
}

func TestClassifyError_OtherErrors_PassThrough(t *testing.T) {
	original := errors.New("connection refused")

	assert.Same(t, original, classifyError(original))
	assert.False(t, isConflictError(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
}

func TestIsUniqueConstraintError(t *testing.T) {
	assert.True(t, isUniqueConstraintError(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.True(t, isUniqueConstraintError(errors.New("UNIQUE constraint failed: customers.phone")))
	assert.False(t, isUniqueConstraintError(&pgconn.PgError{Code: pgerrcode.DeadlockDetected}))
	assert.False(t, isUniqueConstraintError(nil))
}

func TestParseCreateTime(t *testing.T) {
	cst := time.FixedZone("CST", 8*3600)
	stored := formatCreateTime(time.Date(2024, 5, 1, 8, 30, 0, 123, cst))
	assert.Equal(t, "2024-05-01T00:30:00.000000123Z", stored)
	assert.True(t, parseCreateTime(stored, time.UTC).Equal(time.Date(2024, 5, 1, 0, 30, 0, 123, time.UTC)))

	// 沒有時區的舊格式以營業時區解讀，而不是主機時區
	legacy := parseCreateTime("2024-05-01T08:30:00.5", cst)
	assert.True(t, legacy.Equal(time.Date(2024, 5, 1, 0, 30, 0, 500000000, time.UTC)))

	assert.True(t, parseCreateTime("", cst).IsZero())
	assert.True(t, parseCreateTime("yesterday", cst).IsZero())
}

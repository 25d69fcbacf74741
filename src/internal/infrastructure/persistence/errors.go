package persistence

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// 資料庫錯誤分類
// ===========================

// isUniqueConstraintError 唯一約束違反
//
// PostgreSQL 使用 SQLSTATE 判斷；SQLite 沒有結構化錯誤碼，退回訊息比對。
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

// isConflictError 兩個事務爭用同一列造成的失敗，呼叫者可以重試
func isConflictError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.SerializationFailure,
			pgerrcode.DeadlockDetected,
			pgerrcode.LockNotAvailable:
			return true
		}
		return false
	}

	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}

// classifyError 將併發衝突映射為 shared.ErrConcurrentWrite，其他錯誤原樣返回
func classifyError(err error) error {
	if isConflictError(err) {
		return shared.ErrConcurrentWrite.WithContext("database_error", err.Error())
	}
	return err
}

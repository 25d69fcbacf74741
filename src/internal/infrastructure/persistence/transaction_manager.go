package persistence

import (
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"gorm.io/gorm"
)

// GORMTransactionManager 以 gorm.DB.Transaction 實作 shared.TransactionManager
//
// - fn 返回錯誤：回滾，原樣返回錯誤
// - fn panic：回滾後重新 panic
// - 提交失敗：序列化失敗 / 死鎖等併發錯誤映射為 shared.ErrConcurrentWrite
type GORMTransactionManager struct {
	db *gorm.DB
}

// NewGORMTransactionManager 創建事務管理器
func NewGORMTransactionManager(db *gorm.DB) shared.TransactionManager {
	return &GORMTransactionManager{db: db}
}

// InTransaction 在單一資料庫事務中執行 fn
func (m *GORMTransactionManager) InTransaction(fn func(ctx shared.TransactionContext) error) error {
	var fnErr error

	err := m.db.Transaction(func(tx *gorm.DB) error {
		fnErr = fn(NewGORMTransactionContext(tx))
		return fnErr
	})

	if err == nil {
		return nil
	}
	// fn 的錯誤已經是呼叫者能理解的錯誤，不再包裝
	if fnErr != nil {
		return fnErr
	}
	return classifyError(err)
}

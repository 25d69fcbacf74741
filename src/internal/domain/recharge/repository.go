package recharge

import (
	"github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
)

// ===========================
// RechargeRecord Repository 介面
// ===========================

// Predicate 全表掃描的過濾條件
type Predicate func(r *RechargeRecord) bool

// RechargeRecordRepository 充值記錄倉儲介面
//
// 充值記錄是 append-only 日記帳，因此沒有 Update / Delete。
// Save 必須與對應的餘額入帳在同一事務內執行。
type RechargeRecordRepository interface {
	// Save 追加充值記錄（ctx 必須 non-nil）
	Save(ctx shared.TransactionContext, record *RechargeRecord) error

	// FindByID 根據 ID 查找
	// 錯誤：ErrRechargeRecordNotFound
	FindByID(ctx shared.TransactionContext, id RechargeID) (*RechargeRecord, error)

	// FindByCustomerID 查詢客戶的所有充值記錄（按建立時間倒序）
	FindByCustomerID(ctx shared.TransactionContext, customerID customer.CustomerID) ([]*RechargeRecord, error)

	// CountByCustomerID 客戶的充值記錄數
	CountByCustomerID(ctx shared.TransactionContext, customerID customer.CustomerID) (int64, error)

	// Scan 全表掃描，依 predicate 過濾（nil 返回全部）
	Scan(ctx shared.TransactionContext, predicate Predicate) ([]*RechargeRecord, error)
}

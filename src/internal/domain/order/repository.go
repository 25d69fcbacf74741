package order

import (
	"github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
)

// ===========================
// Repository 介面
// ===========================

// Predicate 訂單全表掃描過濾條件
type Predicate func(o *Order) bool

// OrderRepository 訂單倉儲介面
//
// PREPAID 訂單的 Save 必須與客戶扣款在同一事務內執行。
type OrderRepository interface {
	// Save 保存新訂單（ctx 必須 non-nil）
	Save(ctx shared.TransactionContext, o *Order) error

	// FindByID 根據 ID 查找
	// 錯誤：ErrOrderNotFound
	FindByID(ctx shared.TransactionContext, id OrderID) (*Order, error)

	// FindByIDForUpdate 查找並鎖定訂單列，直到事務結束（ctx 必須 non-nil）
	// 狀態修改、取消、新增衣物都經由此方法互斥
	// 錯誤：ErrOrderNotFound
	FindByIDForUpdate(ctx shared.TransactionContext, id OrderID) (*Order, error)

	// Update 更新訂單欄位與狀態
	// 錯誤：ErrOrderNotFound
	Update(ctx shared.TransactionContext, o *Order) error

	// Delete 刪除訂單
	// 錯誤：ErrOrderNotFound
	Delete(ctx shared.TransactionContext, id OrderID) error

	// FindByCustomerID 客戶的所有訂單（按建立時間倒序）
	FindByCustomerID(ctx shared.TransactionContext, customerID customer.CustomerID) ([]*Order, error)

	// CountByCustomerID 客戶的訂單數
	CountByCustomerID(ctx shared.TransactionContext, customerID customer.CustomerID) (int64, error)

	// Scan 全表掃描，依 predicate 過濾（nil 返回全部），按建立時間倒序
	Scan(ctx shared.TransactionContext, predicate Predicate) ([]*Order, error)
}

// ClothesRepository 衣物明細倉儲介面
type ClothesRepository interface {
	// Save 保存新衣物
	Save(ctx shared.TransactionContext, c *Clothes) error

	// FindByID 根據 ID 查找
	// 錯誤：ErrClothesNotFound
	FindByID(ctx shared.TransactionContext, id ClothesID) (*Clothes, error)

	// FindByOrderID 訂單的所有衣物（按建立時間正序）
	FindByOrderID(ctx shared.TransactionContext, orderID OrderID) ([]*Clothes, error)

	// FindByStatus 指定狀態的所有衣物（按建立時間正序）
	FindByStatus(ctx shared.TransactionContext, status ClothesStatus) ([]*Clothes, error)

	// Update 更新衣物
	// 錯誤：ErrClothesNotFound
	Update(ctx shared.TransactionContext, c *Clothes) error

	// Delete 刪除衣物
	// 錯誤：ErrClothesNotFound
	Delete(ctx shared.TransactionContext, id ClothesID) error

	// DeleteByOrderID 刪除訂單的所有衣物（取消訂單時使用），返回刪除筆數
	DeleteByOrderID(ctx shared.TransactionContext, orderID OrderID) (int64, error)
}

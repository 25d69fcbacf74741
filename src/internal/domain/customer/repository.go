package customer

import (
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
)

// ===========================
// CustomerRepository Interface
// ===========================

// Predicate 全表掃描時的過濾條件（返回 true 表示保留）
type Predicate func(c *Customer) bool

// CustomerRepository 客戶倉儲接口
//
// 事務管理策略：
//
// 寫操作（ctx 必須 non-nil）：
//   - Save(): 新增客戶
//   - Update(): 以 ExpectedVersion 做樂觀鎖更新，版本不符返回 shared.ErrConcurrentWrite
//   - Delete(): 刪除客戶
//   - FindByIDForUpdate(): 讀取並鎖定客戶列（SELECT ... FOR UPDATE）
//
// 讀操作（ctx 可為 nil）：
//   - FindByID() / FindByPhone() / Scan()
type CustomerRepository interface {
	// Save 保存新客戶
	// 錯誤：ErrPhoneNumberTaken（手機號碼唯一約束）
	Save(ctx shared.TransactionContext, c *Customer) error

	// FindByID 根據 ID 查找客戶
	// 錯誤：ErrCustomerNotFound
	FindByID(ctx shared.TransactionContext, id CustomerID) (*Customer, error)

	// FindByIDForUpdate 查找並鎖定客戶列，直到事務結束
	// 錯誤：ErrCustomerNotFound
	FindByIDForUpdate(ctx shared.TransactionContext, id CustomerID) (*Customer, error)

	// FindByPhone 根據手機號碼查找客戶
	// 錯誤：ErrCustomerNotFound
	FindByPhone(ctx shared.TransactionContext, phone PhoneNumber) (*Customer, error)

	// Update 更新客戶（包含餘額）
	// 錯誤：ErrCustomerNotFound、shared.ErrConcurrentWrite、ErrPhoneNumberTaken
	Update(ctx shared.TransactionContext, c *Customer) error

	// Delete 刪除客戶
	// 錯誤：ErrCustomerNotFound
	Delete(ctx shared.TransactionContext, id CustomerID) error

	// Scan 全表掃描，依 predicate 過濾（predicate 為 nil 時返回全部），按建立時間倒序
	Scan(ctx shared.TransactionContext, predicate Predicate) ([]*Customer, error)
}

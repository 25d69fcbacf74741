package customer

import (
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
)

// ===========================
// CustomerID 值對象
// ===========================

// CustomerMarker 客戶 ID 標記類型
type CustomerMarker struct{}

// CustomerID 客戶唯一標識符（UUID）
//
// 使用：id := NewCustomerID() 或 CustomerIDFromString(s)
type CustomerID = shared.EntityID[CustomerMarker]

// NewCustomerID 生成新的客戶 ID（UUID v4）
func NewCustomerID() CustomerID {
	return shared.NewEntityID[CustomerMarker]()
}

// CustomerIDFromString 從字串解析客戶 ID
//
// 返回：
//   CustomerID - 解析成功的 ID
//   error - 解析失敗（ErrInvalidCustomerID）
func CustomerIDFromString(s string) (CustomerID, error) {
	return shared.EntityIDFromString[CustomerMarker](s, ErrInvalidCustomerID)
}

package order

import (
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
)

// OrderMarker 訂單 ID 標記類型
type OrderMarker struct{}

// OrderID 訂單唯一標識符
type OrderID = shared.EntityID[OrderMarker]

// NewOrderID 生成新的訂單 ID
func NewOrderID() OrderID {
	return shared.NewEntityID[OrderMarker]()
}

// OrderIDFromString 從字串解析訂單 ID
func OrderIDFromString(s string) (OrderID, error) {
	return shared.EntityIDFromString[OrderMarker](s, ErrInvalidOrderID)
}

// ClothesMarker 衣物 ID 標記類型
type ClothesMarker struct{}

// ClothesID 衣物明細唯一標識符
type ClothesID = shared.EntityID[ClothesMarker]

// NewClothesID 生成新的衣物 ID
func NewClothesID() ClothesID {
	return shared.NewEntityID[ClothesMarker]()
}

// ClothesIDFromString 從字串解析衣物 ID
func ClothesIDFromString(s string) (ClothesID, error) {
	return shared.EntityIDFromString[ClothesMarker](s, ErrInvalidClothesID)
}

package order

import "strings"

// ===========================
// PayType
// ===========================

// PayType 支付方式（建立後不可變）
type PayType string

const (
	PayTypeCash    PayType = "CASH"    // 現金，視為當日收入
	PayTypePrepaid PayType = "PREPAID" // 儲值扣款，收入已在充值時計入
)

// ParsePayType 解析支付方式（大小寫不敏感）
func ParsePayType(s string) (PayType, error) {
	switch PayType(strings.ToUpper(strings.TrimSpace(s))) {
	case PayTypeCash:
		return PayTypeCash, nil
	case PayTypePrepaid:
		return PayTypePrepaid, nil
	default:
		return "", ErrInvalidPayType.WithContext("input", s)
	}
}

// ===========================
// OrderStatus
// ===========================

// OrderStatus 訂單狀態
//
// 狀態機：任何開放狀態之間可以互相覆寫，FINISHED 為終態，進入後不可離開。
type OrderStatus string

const (
	OrderStatusNew      OrderStatus = "NEW"
	OrderStatusUnwashed OrderStatus = "UNWASHED"
	OrderStatusWashing  OrderStatus = "WASHING"
	OrderStatusWashed   OrderStatus = "WASHED"
	OrderStatusFinished OrderStatus = "FINISHED"
)

var validOrderStatuses = map[OrderStatus]struct{}{
	OrderStatusNew:      {},
	OrderStatusUnwashed: {},
	OrderStatusWashing:  {},
	OrderStatusWashed:   {},
	OrderStatusFinished: {},
}

// ParseOrderStatus 解析客戶端提交的訂單狀態；空字串返回預設狀態 NEW
func ParseOrderStatus(s string) (OrderStatus, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return OrderStatusNew, nil
	}
	status := OrderStatus(s)
	if _, ok := validOrderStatuses[status]; !ok {
		return "", ErrInvalidOrderStatus.WithContext("input", s)
	}
	return status, nil
}

// IsFinished 是否為終態
func (s OrderStatus) IsFinished() bool {
	return s == OrderStatusFinished
}

// String 實現 fmt.Stringer
func (s OrderStatus) String() string {
	return string(s)
}

// ===========================
// ClothesStatus
// ===========================

// ClothesStatus 衣物狀態（線性：UNWASHED → WASHED → FINISHED）
type ClothesStatus string

const (
	ClothesStatusUnwashed ClothesStatus = "UNWASHED"
	ClothesStatusWashed   ClothesStatus = "WASHED"
	ClothesStatusFinished ClothesStatus = "FINISHED"
)

var clothesStatusRank = map[ClothesStatus]int{
	ClothesStatusUnwashed: 0,
	ClothesStatusWashed:   1,
	ClothesStatusFinished: 2,
}

// ParseClothesStatus 解析衣物狀態；空字串返回 UNWASHED
func ParseClothesStatus(s string) (ClothesStatus, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return ClothesStatusUnwashed, nil
	}
	status := ClothesStatus(s)
	if _, ok := clothesStatusRank[status]; !ok {
		return "", ErrInvalidClothesStatus.WithContext("input", s)
	}
	return status, nil
}

// Next 返回下一個狀態；FINISHED 沒有下一個狀態
func (s ClothesStatus) Next() (ClothesStatus, bool) {
	switch s {
	case ClothesStatusUnwashed:
		return ClothesStatusWashed, true
	case ClothesStatusWashed:
		return ClothesStatusFinished, true
	default:
		return s, false
	}
}

// CanTransitionTo 只允許前進一步
func (s ClothesStatus) CanTransitionTo(target ClothesStatus) bool {
	next, ok := s.Next()
	return ok && next == target
}

// String 實現 fmt.Stringer
func (s ClothesStatus) String() string {
	return string(s)
}

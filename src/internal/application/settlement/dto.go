package settlement

import (
	"time"

	"github.com/jackyeh168/laundry_crm/src/internal/domain/order"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/recharge"
	"github.com/shopspring/decimal"
)

// ===========================
// Input DTO
// ===========================
//
// 只包含外部輸入的原始類型，由 Engine 轉換為 Value Object。

// ClothesInput 衣物明細輸入
type ClothesInput struct {
	Type         string
	Price        decimal.Decimal
	DamageRemark string
	DamageImage  string
}

// CreateOrderCommand 建立訂單指令
type CreateOrderCommand struct {
	CustomerID   string
	OrderNo      string
	TotalPrice   decimal.Decimal
	Prepaid      decimal.Decimal // 客戶已付訂金，僅記錄
	PayType      string          // CASH / PREPAID
	Status       string          // 空字串時為 NEW
	Urgent       bool
	ExpectedTime *time.Time
	Clothes      []ClothesInput // 選填，與訂單同一事務寫入
}

// UpdateOrderCommand 修改訂單指令（不含支付方式與狀態）
type UpdateOrderCommand struct {
	OrderID      string
	OrderNo      string
	TotalPrice   decimal.Decimal
	Prepaid      decimal.Decimal
	Urgent       bool
	ExpectedTime *time.Time
}

// UpdateOrderStatusCommand 修改訂單狀態指令
type UpdateOrderStatusCommand struct {
	OrderID string
	Status  string
}

// ListOrdersQuery 訂單查詢條件（空字串表示不過濾）
type ListOrdersQuery struct {
	CustomerID string
	Status     string
}

// RechargeCommand 充值指令
type RechargeCommand struct {
	CustomerID string
	Amount     decimal.Decimal
}

// PayWithPrepaidCommand 櫃檯直接扣款指令
type PayWithPrepaidCommand struct {
	CustomerID string
	Amount     decimal.Decimal
}

// CreateCustomerWithRechargeCommand 開卡充值指令
type CreateCustomerWithRechargeCommand struct {
	Name           string
	Phone          string
	Wechat         string
	RechargeAmount decimal.Decimal // 0 表示只建檔不充值
}

// AddClothesCommand 新增衣物指令
type AddClothesCommand struct {
	OrderID string
	ClothesInput
}

// UpdateClothesCommand 修改衣物指令
type UpdateClothesCommand struct {
	ClothesID string
	ClothesInput
}

// AdvanceClothesStatusCommand 衣物狀態前進指令
type AdvanceClothesStatusCommand struct {
	ClothesID string
	Status    string
}

// ===========================
// Output DTO
// ===========================

// OrderResult 訂單
type OrderResult struct {
	OrderID      string
	CustomerID   string
	OrderNo      string
	TotalPrice   decimal.Decimal
	Prepaid      decimal.Decimal
	PayType      string
	Status       string
	Urgent       bool
	ExpectedTime *time.Time
	CreatedAt    time.Time
}

// ClothesResult 衣物明細
type ClothesResult struct {
	ClothesID    string
	OrderID      string
	Type         string
	Price        decimal.Decimal
	DamageRemark string
	DamageImage  string
	Status       string
	CreatedAt    time.Time
}

// CreateOrderResult 建立訂單結果
type CreateOrderResult struct {
	Order   OrderResult
	Clothes []ClothesResult
	Balance decimal.Decimal // 結算後的客戶餘額
}

// OrderDetailResult 訂單與衣物明細
type OrderDetailResult struct {
	Order   OrderResult
	Clothes []ClothesResult
}

// CancelOrderResult 取消訂單結果
type CancelOrderResult struct {
	OrderID        string
	CustomerID     string
	Refunded       decimal.Decimal
	ClothesRemoved int64
}

// RechargeResult 充值記錄
type RechargeResult struct {
	RechargeID     string
	CustomerID     string
	RechargeAmount decimal.Decimal
	GiftAmount     decimal.Decimal
	Balance        decimal.Decimal // 充值後餘額（查詢歷史記錄時為零值）
	CreatedAt      time.Time
}

// PaymentResult 直接扣款結果
type PaymentResult struct {
	CustomerID string
	Amount     decimal.Decimal
	Balance    decimal.Decimal
}

// CustomerWithRechargeResult 開卡充值結果
type CustomerWithRechargeResult struct {
	CustomerID string
	Name       string
	Phone      string
	Wechat     string
	Balance    decimal.Decimal
	Recharge   *RechargeResult // 未充值時為 nil
}

// ===========================
// DTO 轉換
// ===========================

func toOrderResult(o *order.Order) OrderResult {
	return OrderResult{
		OrderID:      o.OrderID().String(),
		CustomerID:   o.CustomerID().String(),
		OrderNo:      o.OrderNo(),
		TotalPrice:   o.TotalPrice().Decimal(),
		Prepaid:      o.Prepaid().Decimal(),
		PayType:      string(o.PayType()),
		Status:       o.Status().String(),
		Urgent:       o.Urgent(),
		ExpectedTime: o.ExpectedTime(),
		CreatedAt:    o.CreatedAt(),
	}
}

func toClothesResult(c *order.Clothes) ClothesResult {
	return ClothesResult{
		ClothesID:    c.ClothesID().String(),
		OrderID:      c.OrderID().String(),
		Type:         c.Type(),
		Price:        c.Price().Decimal(),
		DamageRemark: c.DamageRemark(),
		DamageImage:  c.DamageImage(),
		Status:       c.Status().String(),
		CreatedAt:    c.CreatedAt(),
	}
}

func toClothesResults(items []*order.Clothes) []ClothesResult {
	results := make([]ClothesResult, 0, len(items))
	for _, c := range items {
		results = append(results, toClothesResult(c))
	}
	return results
}

func toRechargeResult(r *recharge.RechargeRecord) RechargeResult {
	return RechargeResult{
		RechargeID:     r.RechargeID().String(),
		CustomerID:     r.CustomerID().String(),
		RechargeAmount: r.RechargeAmount().Decimal(),
		GiftAmount:     r.GiftAmount().Decimal(),
		CreatedAt:      r.CreatedAt(),
	}
}

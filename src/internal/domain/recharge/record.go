package recharge

import (
	"time"

	"github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
)

// ===========================
// RechargeRecord 實體（append-only 日記帳）
// ===========================

// RechargeRecord 充值記錄
//
// 不變量：
// 1. rechargeAmount > 0（客戶實際交付的現金）
// 2. giftAmount 只能由 GiftTierCalculator 計算，不接受外部輸入
// 3. 建立後不可修改、不可刪除：它是「餘額從哪來」的稽核依據
type RechargeRecord struct {
	rechargeID     RechargeID
	customerID     customer.CustomerID
	rechargeAmount shared.Money
	giftAmount     shared.Money
	createdAt      time.Time
}

// NewRechargeRecord 建立充值記錄，贈送金額由 calculator 計算
//
// 錯誤：
// - ErrInvalidRechargeAmount: rechargeAmount <= 0
func NewRechargeRecord(
	customerID customer.CustomerID,
	rechargeAmount shared.Money,
	calculator *GiftTierCalculator,
) (*RechargeRecord, error) {
	if !rechargeAmount.IsPositive() {
		return nil, ErrInvalidRechargeAmount.WithContext(
			"customer_id", customerID.String(),
			"amount", rechargeAmount.String(),
		)
	}

	return &RechargeRecord{
		rechargeID:     NewRechargeID(),
		customerID:     customerID,
		rechargeAmount: rechargeAmount,
		giftAmount:     calculator.GiftAmount(rechargeAmount),
		createdAt:      time.Now(),
	}, nil
}

// ReconstructRechargeRecord 從資料庫重建充值記錄
//
// createdAt 允許為零值：儲存的時間戳無法解析時由 Repository 傳入零值，
// 統計時此記錄不落入任何時間窗口。
func ReconstructRechargeRecord(
	rechargeID RechargeID,
	customerID customer.CustomerID,
	rechargeAmount shared.Money,
	giftAmount shared.Money,
	createdAt time.Time,
) (*RechargeRecord, error) {
	if rechargeID.IsEmpty() {
		return nil, ErrCorruptedRechargeRecord.WithContext("reason", "empty recharge ID")
	}
	if !rechargeAmount.IsPositive() {
		return nil, ErrCorruptedRechargeRecord.WithContext(
			"recharge_id", rechargeID.String(),
			"amount", rechargeAmount.String(),
		)
	}

	return &RechargeRecord{
		rechargeID:     rechargeID,
		customerID:     customerID,
		rechargeAmount: rechargeAmount,
		giftAmount:     giftAmount,
		createdAt:      createdAt,
	}, nil
}

// RechargeID 返回充值記錄 ID
func (r *RechargeRecord) RechargeID() RechargeID { return r.rechargeID }

// CustomerID 返回客戶 ID
func (r *RechargeRecord) CustomerID() customer.CustomerID { return r.customerID }

// RechargeAmount 返回充值本金
func (r *RechargeRecord) RechargeAmount() shared.Money { return r.rechargeAmount }

// GiftAmount 返回贈送金額
func (r *RechargeRecord) GiftAmount() shared.Money { return r.giftAmount }

// TotalCredit 返回實際入帳金額（本金 + 贈送）
func (r *RechargeRecord) TotalCredit() shared.Money {
	return r.rechargeAmount.Add(r.giftAmount)
}

// CreatedAt 返回建立時間
func (r *RechargeRecord) CreatedAt() time.Time { return r.createdAt }

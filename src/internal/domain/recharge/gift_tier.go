package recharge

import (
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ===========================
// GiftTierCalculator 領域服務
// ===========================

// GiftTier 贈送階梯（門檻 → 比例）
type GiftTier struct {
	Threshold decimal.Decimal
	Ratio     decimal.Decimal
}

// DefaultGiftTiers 預設階梯，由高到低排列：
// - 充值 >= 200 送 20%
// - 充值 >= 100 送 10%
// - 充值 < 100 不贈送
var DefaultGiftTiers = []GiftTier{
	{Threshold: decimal.NewFromInt(200), Ratio: decimal.RequireFromString("0.2")},
	{Threshold: decimal.NewFromInt(100), Ratio: decimal.RequireFromString("0.1")},
}

// GiftTierCalculator 充值贈送計算（無狀態，可在多個 goroutine 共用）
type GiftTierCalculator struct {
	tiers []GiftTier
}

// NewGiftTierCalculator 使用預設階梯建立計算器
func NewGiftTierCalculator() *GiftTierCalculator {
	return &GiftTierCalculator{tiers: DefaultGiftTiers}
}

// GiftAmount 根據充值金額計算贈送金額
//
// 業務規則：
// - 取符合的最高門檻，不疊加
// - 贈送 = 充值金額 × 比例，精確 decimal 乘法，不捨入
//   例如 GiftAmount(199.99) = 19.999
func (c *GiftTierCalculator) GiftAmount(rechargeAmount shared.Money) shared.Money {
	for _, tier := range c.tiers {
		if rechargeAmount.Decimal().GreaterThanOrEqual(tier.Threshold) {
			return rechargeAmount.MulRatio(tier.Ratio)
		}
	}
	return shared.Zero()
}

// TotalCredit 實際入帳金額（充值 + 贈送）
func (c *GiftTierCalculator) TotalCredit(rechargeAmount shared.Money) shared.Money {
	return rechargeAmount.Add(c.GiftAmount(rechargeAmount))
}

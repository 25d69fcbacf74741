package shared

import (
	"github.com/shopspring/decimal"
)

// ===========================
// Money 值對象
// ===========================

// Money 金額值對象（人民幣，元）
//
// 建構約束：金額 >= 0。
// 內部使用 decimal.Decimal，不做任何四捨五入。
type Money struct {
	value decimal.Decimal
}

// Zero 零金額
func Zero() Money {
	return Money{value: decimal.Zero}
}

// NewMoney 建構函數（checked 版本）
func NewMoney(value decimal.Decimal) (Money, error) {
	if value.IsNegative() {
		return Money{}, ErrNegativeMoney.WithContext("value", value.String())
	}
	return Money{value: value}, nil
}

// InputScale 外部輸入金額的最大小數位數（分）
const InputScale = 2

// NewCentMoney 外部輸入金額的建構函數：>= 0 且最多兩位小數
//
// 贈送金額等衍生值可以超過兩位小數，只有輸入端受此限制。
func NewCentMoney(value decimal.Decimal) (Money, error) {
	if !value.Equal(value.Truncate(InputScale)) {
		return Money{}, ErrMoneyScale.WithContext("value", value.String())
	}
	return NewMoney(value)
}

// MoneyFromString 從字串解析金額（例如 "199.99"）
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidMoney.WithContext("input", s, "parse_error", err.Error())
	}
	return NewMoney(d)
}

// MustMoney 從字串建立金額，失敗時 panic（僅用於常量與測試）
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// newMoneyUnchecked 內部建構函數，呼叫者保證 value >= 0
func newMoneyUnchecked(value decimal.Decimal) Money {
	return Money{value: value}
}

// Decimal 取得 decimal 值
func (m Money) Decimal() decimal.Decimal {
	return m.value
}

// String 十進位字串表示（不補零，例如 "240"、"19.999"）
func (m Money) String() string {
	return m.value.String()
}

// IsZero 是否為零
func (m Money) IsZero() bool {
	return m.value.IsZero()
}

// IsPositive 是否大於零
func (m Money) IsPositive() bool {
	return m.value.IsPositive()
}

// Add 相加
func (m Money) Add(other Money) Money {
	return newMoneyUnchecked(m.value.Add(other.value))
}

// Subtract 相減
//
// 業務規則：結果不能為負數；不足時返回 ok=false，原值不變
func (m Money) Subtract(other Money) (result Money, ok bool) {
	if m.value.LessThan(other.value) {
		return m, false
	}
	return newMoneyUnchecked(m.value.Sub(other.value)), true
}

// MulRatio 乘以非負比例（例如贈送比例 0.2），結果精確不捨入
func (m Money) MulRatio(ratio decimal.Decimal) Money {
	if ratio.IsNegative() {
		return Zero()
	}
	return newMoneyUnchecked(m.value.Mul(ratio))
}

// IsMultipleOf 是否為 unit 的整數倍（unit 必須 > 0）
func (m Money) IsMultipleOf(unit decimal.Decimal) bool {
	if !unit.IsPositive() {
		return false
	}
	return m.value.Mod(unit).IsZero()
}

// Equals 比較數值是否相等（"100" 與 "100.00" 相等）
func (m Money) Equals(other Money) bool {
	return m.value.Equal(other.value)
}

// GreaterThan 判斷是否大於另一個金額
func (m Money) GreaterThan(other Money) bool {
	return m.value.GreaterThan(other.value)
}

// LessThan 判斷是否小於另一個金額
func (m Money) LessThan(other Money) bool {
	return m.value.LessThan(other.value)
}

// GreaterThanOrEqual 判斷是否大於等於另一個金額
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.value.GreaterThanOrEqual(other.value)
}

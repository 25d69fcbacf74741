package persistence

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Amount 金額欄位
//
// 寫入時以 decimal 字串傳給驅動。PostgreSQL 使用 numeric(20,4)；
// SQLite 的 NUMERIC 親和性會把字串轉成 REAL（只保留 15 位有效數字），
// 因此 SQLite 上改用 TEXT，讀回的值與寫入完全相同。
type Amount struct {
	decimal.Decimal
}

// NewAmount 包裝 decimal 值
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// GormDBDataType 依方言決定欄位型別
func (Amount) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == DriverPostgres {
		return "numeric(20,4)"
	}
	return "text"
}

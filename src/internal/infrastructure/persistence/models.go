package persistence

import (
	"time"
)

// ===========================
// GORM Model 定義
// ===========================

// CustomerModel 客戶資料表
//
// - phone: 唯一索引
// - balance: Amount（SQLite 存 TEXT，PostgreSQL 存 numeric）
// - version: 樂觀鎖
type CustomerModel struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(100);not null;index"`
	Phone     string    `gorm:"column:phone;type:varchar(20);uniqueIndex;not null"`
	Wechat    string    `gorm:"column:wechat;type:varchar(64)"`
	Balance   Amount    `gorm:"column:balance;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
	Version   int       `gorm:"column:version;not null;default:1"`
}

// TableName 指定表名
func (CustomerModel) TableName() string {
	return "customers"
}

// OrderModel 訂單資料表
//
// create_time 以字串儲存（與既有資料相容），無法解析的值在讀取時視為零時間。
type OrderModel struct {
	ID           string     `gorm:"column:id;type:varchar(36);primaryKey"`
	OrderNo      string     `gorm:"column:order_no;type:varchar(64);not null;index"`
	CustomerID   string     `gorm:"column:customer_id;type:varchar(36);not null;index"`
	TotalPrice   Amount     `gorm:"column:total_price;not null"`
	Prepaid      Amount     `gorm:"column:prepaid;not null;default:0"`
	PayType      string     `gorm:"column:pay_type;type:varchar(16);not null"`
	Urgent       bool       `gorm:"column:urgent;not null;default:false"`
	Status       string     `gorm:"column:status;type:varchar(16);not null;index"`
	ExpectedTime *time.Time `gorm:"column:expected_time"`
	CreateTime   string     `gorm:"column:create_time;type:varchar(40);not null;index"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}

// ClothesModel 衣物明細資料表
type ClothesModel struct {
	ID           string `gorm:"column:id;type:varchar(36);primaryKey"`
	OrderID      string `gorm:"column:order_id;type:varchar(36);not null;index"`
	Type         string `gorm:"column:type;type:varchar(64);not null"`
	Price        Amount `gorm:"column:price;not null;default:0"`
	DamageRemark string `gorm:"column:damage_remark;type:text"`
	DamageImage  string `gorm:"column:damage_image;type:text"`
	Status       string `gorm:"column:status;type:varchar(16);not null"`
	CreateTime   string `gorm:"column:create_time;type:varchar(40);not null"`
}

// TableName 指定表名
func (ClothesModel) TableName() string {
	return "clothes"
}

// RechargeRecordModel 充值記錄資料表（append-only）
type RechargeRecordModel struct {
	ID             string `gorm:"column:id;type:varchar(36);primaryKey"`
	CustomerID     string `gorm:"column:customer_id;type:varchar(36);not null;index"`
	RechargeAmount Amount `gorm:"column:recharge_amount;not null"`
	GiftAmount     Amount `gorm:"column:gift_amount;not null;default:0"`
	CreateTime     string `gorm:"column:create_time;type:varchar(40);not null;index"`
}

// TableName 指定表名
func (RechargeRecordModel) TableName() string {
	return "recharge_records"
}

// ===========================
// create_time 編碼
// ===========================

// createTimeLayout 固定寬度的 UTC 格式，字串排序等於時間排序
const createTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// legacyCreateTimeLayouts 舊系統寫入的本地時間格式（沒有時區）
var legacyCreateTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func formatCreateTime(t time.Time) string {
	return t.UTC().Format(createTimeLayout)
}

// parseCreateTime 解析 create_time；沒有時區的舊格式以 loc 解讀，無法解析時返回零時間
func parseCreateTime(s string, loc *time.Location) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	for _, layout := range legacyCreateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}

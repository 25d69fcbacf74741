package customer

import (
	"fmt"
	"strings"
	"time"

	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
)

// ===========================
// Customer Aggregate Root
// ===========================

// Customer 客戶聚合根
//
// 聚合邊界：
// - 客戶基本資料（姓名、手機號碼、微信號）
// - 儲值餘額（balance，唯一可變的金額欄位）
//
// 不變量（Invariants）：
// 1. balance >= 0（由 shared.Money 與 Debit 的前置檢查保證）
// 2. 餘額只透過 Credit / Debit / OverwriteBalance 改變，每次改變都記錄事件
// 3. 姓名不能為空
// 4. version 每次狀態變更遞增，Repository 以 ExpectedVersion 做樂觀鎖
type Customer struct {
	customerID CustomerID
	name       string
	phone      PhoneNumber
	wechat     WechatID

	balance shared.Money

	createdAt time.Time
	updatedAt time.Time

	version         int // 目前版本號
	expectedVersion int // 載入時的版本號（新建時為 0）

	events shared.EventRecorder
}

// NewCustomer 創建新客戶（初始餘額為 0）
//
// 錯誤：
// - ErrInvalidCustomerName: 姓名為空
func NewCustomer(name string, phone PhoneNumber, wechat WechatID) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidCustomerName
	}
	if phone.IsZero() {
		return nil, ErrInvalidPhoneNumberFormat.WithContext("reason", "phone number is required")
	}

	now := time.Now()
	c := &Customer{
		customerID:      NewCustomerID(),
		name:            name,
		phone:           phone,
		wechat:          wechat,
		balance:         shared.Zero(),
		createdAt:       now,
		updatedAt:       now,
		version:         1,
		expectedVersion: 0,
	}

	c.events.Record(&CustomerRegisteredEvent{
		baseEvent: newBaseEvent(c.customerID),
		name:      name,
	})

	return c, nil
}

// ReconstructCustomer 重建客戶聚合（用於從資料庫載入）
//
// 餘額為負數表示資料損壞，返回 ErrCorruptedBalance。
func ReconstructCustomer(
	customerID CustomerID,
	name string,
	phone PhoneNumber,
	wechat WechatID,
	balance shared.Money,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
) (*Customer, error) {
	if customerID.IsEmpty() {
		return nil, ErrInvalidCustomerID.WithContext("reason", "invalid customer ID in database")
	}
	if name == "" {
		return nil, ErrInvalidCustomerName.WithContext("customer_id", customerID.String())
	}

	return &Customer{
		customerID:      customerID,
		name:            name,
		phone:           phone,
		wechat:          wechat,
		balance:         balance,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		version:         version,
		expectedVersion: version,
	}, nil
}

// ===========================
// 餘額命令方法
// ===========================

// Credit 入帳
//
// 參數：
//   amount - 入帳金額（shared.Money 已保證 >= 0）
//   source - 入帳來源（充值、退款）
//   sourceID - 來源記錄 ID
//
// 零金額為 no-op：不改變狀態、不記錄事件。
func (c *Customer) Credit(amount shared.Money, source CreditSource, sourceID string) {
	if amount.IsZero() {
		return
	}

	c.balance = c.balance.Add(amount)
	c.touch()

	c.events.Record(&BalanceCreditedEvent{
		baseEvent:    newBaseEvent(c.customerID),
		amount:       amount,
		source:       source,
		sourceID:     sourceID,
		balanceAfter: c.balance,
	})
}

// Debit 扣款
//
// 錯誤：
//   ErrInsufficientBalance - balance < amount，訊息包含目前餘額與所需金額，狀態不變
func (c *Customer) Debit(amount shared.Money, source DebitSource, sourceID string) error {
	if err := c.EnsureCanPay(amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}

	newBalance, _ := c.balance.Subtract(amount)
	c.balance = newBalance
	c.touch()

	c.events.Record(&BalanceDebitedEvent{
		baseEvent:    newBaseEvent(c.customerID),
		amount:       amount,
		source:       source,
		sourceID:     sourceID,
		balanceAfter: c.balance,
	})

	return nil
}

// EnsureCanPay 檢查餘額是否足以支付 amount（不改變狀態）
func (c *Customer) EnsureCanPay(amount shared.Money) error {
	if c.balance.GreaterThanOrEqual(amount) {
		return nil
	}
	return ErrInsufficientBalance.
		WithMessage("儲值餘額不足，目前餘額 %s，需要 %s", c.balance.String(), amount.String()).
		WithContext(
			"customer_id", c.customerID.String(),
			"balance", c.balance.String(),
			"required", amount.String(),
		)
}

// OverwriteBalance 管理員直接改寫餘額
//
// 不經過充值記錄或訂單，只用於人工修正；記錄 BalanceOverwrittenEvent。
func (c *Customer) OverwriteBalance(newBalance shared.Money, reason string) {
	old := c.balance
	c.balance = newBalance
	c.touch()

	c.events.Record(&BalanceOverwrittenEvent{
		baseEvent:  newBaseEvent(c.customerID),
		oldBalance: old,
		newBalance: newBalance,
		reason:     reason,
	})
}

// ===========================
// 資料維護
// ===========================

// UpdateProfile 更新客戶基本資料（不含餘額）
func (c *Customer) UpdateProfile(name string, phone PhoneNumber, wechat WechatID) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidCustomerName.WithContext("customer_id", c.customerID.String())
	}
	if phone.IsZero() {
		return ErrInvalidPhoneNumberFormat.WithContext("reason", "phone number is required")
	}

	c.name = name
	c.phone = phone
	c.wechat = wechat
	c.touch()
	return nil
}

func (c *Customer) touch() {
	c.updatedAt = time.Now()
	c.version++
}

// ===========================
// Getters
// ===========================

// CustomerID 返回客戶 ID
func (c *Customer) CustomerID() CustomerID { return c.customerID }

// Name 返回姓名
func (c *Customer) Name() string { return c.name }

// Phone 返回手機號碼
func (c *Customer) Phone() PhoneNumber { return c.phone }

// Wechat 返回微信號
func (c *Customer) Wechat() WechatID { return c.wechat }

// Balance 返回儲值餘額
func (c *Customer) Balance() shared.Money { return c.balance }

// CreatedAt 返回創建時間
func (c *Customer) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt 返回更新時間
func (c *Customer) UpdatedAt() time.Time { return c.updatedAt }

// Version 返回目前版本號
func (c *Customer) Version() int { return c.version }

// ExpectedVersion 返回載入時的版本號（樂觀鎖比對用）
func (c *Customer) ExpectedVersion() int { return c.expectedVersion }

// PullEvents 獲取所有待發布事件並清空列表
func (c *Customer) PullEvents() []shared.DomainEvent {
	return c.events.PullEvents()
}

// String 調試用
func (c *Customer) String() string {
	return fmt.Sprintf("Customer{%s %s balance=%s v%d}", c.customerID, c.name, c.balance, c.version)
}

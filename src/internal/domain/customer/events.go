package customer

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
)

// ===========================
// 餘額來源
// ===========================

// CreditSource 入帳來源
type CreditSource string

const (
	CreditSourceRecharge CreditSource = "RECHARGE"     // 充值（本金 + 贈送）
	CreditSourceRefund   CreditSource = "ORDER_REFUND" // 取消未完成的儲值訂單
)

// DebitSource 扣款來源
type DebitSource string

const (
	DebitSourceOrder     DebitSource = "PREPAID_ORDER" // 儲值支付訂單
	DebitSourceDirectPay DebitSource = "DIRECT_PAY"    // 櫃檯直接扣款
)

// baseEvent 事件共用欄位
type baseEvent struct {
	eventID    string
	customerID CustomerID
	occurredAt time.Time
}

func newBaseEvent(customerID CustomerID) baseEvent {
	return baseEvent{
		eventID:    uuid.New().String(),
		customerID: customerID,
		occurredAt: time.Now(),
	}
}

// EventID 實現 DomainEvent 介面
func (e baseEvent) EventID() string { return e.eventID }

// OccurredAt 實現 DomainEvent 介面
func (e baseEvent) OccurredAt() time.Time { return e.occurredAt }

// AggregateID 實現 DomainEvent 介面
func (e baseEvent) AggregateID() string { return e.customerID.String() }

// ===========================
// CustomerRegistered
// ===========================

// CustomerRegisteredEvent 客戶建檔事件
type CustomerRegisteredEvent struct {
	baseEvent
	name string
}

// EventType 實現 DomainEvent 介面
func (e *CustomerRegisteredEvent) EventType() string { return "customer.registered" }

// Name 客戶姓名
func (e *CustomerRegisteredEvent) Name() string { return e.name }

// ===========================
// BalanceCredited
// ===========================

// BalanceCreditedEvent 餘額入帳事件
type BalanceCreditedEvent struct {
	baseEvent
	amount       shared.Money
	source       CreditSource
	sourceID     string
	balanceAfter shared.Money
}

// EventType 實現 DomainEvent 介面
func (e *BalanceCreditedEvent) EventType() string { return "customer.balance_credited" }

// Amount 入帳金額
func (e *BalanceCreditedEvent) Amount() shared.Money { return e.amount }

// Source 入帳來源
func (e *BalanceCreditedEvent) Source() CreditSource { return e.source }

// SourceID 來源記錄 ID（充值記錄 ID 或訂單 ID）
func (e *BalanceCreditedEvent) SourceID() string { return e.sourceID }

// BalanceAfter 入帳後餘額
func (e *BalanceCreditedEvent) BalanceAfter() shared.Money { return e.balanceAfter }

// ===========================
// BalanceDebited
// ===========================

// BalanceDebitedEvent 餘額扣款事件
type BalanceDebitedEvent struct {
	baseEvent
	amount       shared.Money
	source       DebitSource
	sourceID     string
	balanceAfter shared.Money
}

// EventType 實現 DomainEvent 介面
func (e *BalanceDebitedEvent) EventType() string { return "customer.balance_debited" }

// Amount 扣款金額
func (e *BalanceDebitedEvent) Amount() shared.Money { return e.amount }

// Source 扣款來源
func (e *BalanceDebitedEvent) Source() DebitSource { return e.source }

// SourceID 來源記錄 ID
func (e *BalanceDebitedEvent) SourceID() string { return e.sourceID }

// BalanceAfter 扣款後餘額
func (e *BalanceDebitedEvent) BalanceAfter() shared.Money { return e.balanceAfter }

// ===========================
// BalanceOverwritten
// ===========================

// BalanceOverwrittenEvent 管理員直接改寫餘額事件（不經過充值或訂單）
type BalanceOverwrittenEvent struct {
	baseEvent
	oldBalance shared.Money
	newBalance shared.Money
	reason     string
}

// EventType 實現 DomainEvent 介面
func (e *BalanceOverwrittenEvent) EventType() string { return "customer.balance_overwritten" }

// OldBalance 改寫前餘額
func (e *BalanceOverwrittenEvent) OldBalance() shared.Money { return e.oldBalance }

// NewBalance 改寫後餘額
func (e *BalanceOverwrittenEvent) NewBalance() shared.Money { return e.newBalance }

// Reason 改寫原因
func (e *BalanceOverwrittenEvent) Reason() string { return e.reason }

package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
)

type baseEvent struct {
	eventID    string
	orderID    OrderID
	occurredAt time.Time
}

func newBaseEvent(orderID OrderID) baseEvent {
	return baseEvent{
		eventID:    uuid.New().String(),
		orderID:    orderID,
		occurredAt: time.Now(),
	}
}

// EventID 實現 DomainEvent 介面
func (e baseEvent) EventID() string { return e.eventID }

// OccurredAt 實現 DomainEvent 介面
func (e baseEvent) OccurredAt() time.Time { return e.occurredAt }

// AggregateID 實現 DomainEvent 介面
func (e baseEvent) AggregateID() string { return e.orderID.String() }

// OrderPlacedEvent 訂單建立事件
type OrderPlacedEvent struct {
	baseEvent
	customerID customer.CustomerID
	orderNo    string
	payType    PayType
	totalPrice shared.Money
}

// EventType 實現 DomainEvent 介面
func (e *OrderPlacedEvent) EventType() string { return "order.placed" }

// CustomerID 下單客戶
func (e *OrderPlacedEvent) CustomerID() customer.CustomerID { return e.customerID }

// OrderNo 訂單編號
func (e *OrderPlacedEvent) OrderNo() string { return e.orderNo }

// PayType 支付方式
func (e *OrderPlacedEvent) PayType() PayType { return e.payType }

// TotalPrice 訂單總價
func (e *OrderPlacedEvent) TotalPrice() shared.Money { return e.totalPrice }

// OrderStatusChangedEvent 訂單狀態變更事件
type OrderStatusChangedEvent struct {
	baseEvent
	from OrderStatus
	to   OrderStatus
}

// EventType 實現 DomainEvent 介面
func (e *OrderStatusChangedEvent) EventType() string { return "order.status_changed" }

// From 原狀態
func (e *OrderStatusChangedEvent) From() OrderStatus { return e.from }

// To 新狀態
func (e *OrderStatusChangedEvent) To() OrderStatus { return e.to }

package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
)

// ===========================
// Order Aggregate Root
// ===========================

// Details 訂單可由櫃檯修改的欄位
//
// payType 不在其中：支付方式決定了建立時走的結算路徑，建立後不可變。
type Details struct {
	OrderNo      string
	TotalPrice   shared.Money
	Prepaid      shared.Money // 客戶已付訂金，僅記錄，不影響餘額
	Urgent       bool
	ExpectedTime *time.Time
}

// Order 訂單聚合根
//
// 不變量：
// 1. orderNo 非空
// 2. totalPrice > 0
// 3. payType 建立後不可變
// 4. FINISHED 為終態
// 5. createdAt 由伺服器指定
type Order struct {
	orderID    OrderID
	customerID customer.CustomerID
	payType    PayType
	status     OrderStatus

	orderNo      string
	totalPrice   shared.Money
	prepaid      shared.Money
	urgent       bool
	expectedTime *time.Time

	createdAt time.Time
	updatedAt time.Time

	events shared.EventRecorder
}

// ValidateOrderNo 檢查訂單編號（結算流程第一個前置條件）
func ValidateOrderNo(orderNo string) error {
	if strings.TrimSpace(orderNo) == "" {
		return ErrEmptyOrderNo
	}
	return nil
}

// ValidateTotalPrice 檢查訂單總價 > 0
func ValidateTotalPrice(totalPrice shared.Money) error {
	if !totalPrice.IsPositive() {
		return ErrInvalidTotalPrice.WithContext("total_price", totalPrice.String())
	}
	return nil
}

func (d Details) validate() error {
	if err := ValidateOrderNo(d.OrderNo); err != nil {
		return err
	}
	return ValidateTotalPrice(d.TotalPrice)
}

// NewOrder 建立新訂單，狀態為 status（空值時呼叫者應傳入 OrderStatusNew）
//
// 此函數不處理金流；PREPAID 訂單的扣款由結算引擎在同一事務中完成。
func NewOrder(customerID customer.CustomerID, payType PayType, status OrderStatus, details Details) (*Order, error) {
	if err := details.validate(); err != nil {
		return nil, err
	}
	if payType != PayTypeCash && payType != PayTypePrepaid {
		return nil, ErrInvalidPayType.WithContext("pay_type", string(payType))
	}
	if status == "" {
		status = OrderStatusNew
	}

	now := time.Now()
	o := &Order{
		orderID:      NewOrderID(),
		customerID:   customerID,
		payType:      payType,
		status:       status,
		orderNo:      strings.TrimSpace(details.OrderNo),
		totalPrice:   details.TotalPrice,
		prepaid:      details.Prepaid,
		urgent:       details.Urgent,
		expectedTime: details.ExpectedTime,
		createdAt:    now,
		updatedAt:    now,
	}

	o.events.Record(&OrderPlacedEvent{
		baseEvent:  newBaseEvent(o.orderID),
		customerID: customerID,
		orderNo:    o.orderNo,
		payType:    payType,
		totalPrice: o.totalPrice,
	})

	return o, nil
}

// ReconstructOrder 從資料庫重建訂單
//
// createdAt 可為零值（儲存的時間戳無法解析），此時統計不會把它計入任何時間窗口。
func ReconstructOrder(
	orderID OrderID,
	customerID customer.CustomerID,
	payType PayType,
	status OrderStatus,
	details Details,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if orderID.IsEmpty() {
		return nil, ErrCorruptedOrder.WithContext("reason", "empty order ID")
	}

	return &Order{
		orderID:      orderID,
		customerID:   customerID,
		payType:      payType,
		status:       status,
		orderNo:      details.OrderNo,
		totalPrice:   details.TotalPrice,
		prepaid:      details.Prepaid,
		urgent:       details.Urgent,
		expectedTime: details.ExpectedTime,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

// ===========================
// 命令方法
// ===========================

// UpdateDetails 修改訂單欄位
//
// 不產生任何金流：修改 totalPrice 不會補扣或退回儲值餘額。
func (o *Order) UpdateDetails(details Details) error {
	if err := details.validate(); err != nil {
		return err
	}

	o.orderNo = strings.TrimSpace(details.OrderNo)
	o.totalPrice = details.TotalPrice
	o.prepaid = details.Prepaid
	o.urgent = details.Urgent
	o.expectedTime = details.ExpectedTime
	o.updatedAt = time.Now()
	return nil
}

// ChangeStatus 覆寫訂單狀態
//
// 錯誤：
// - ErrOrderFinished: 訂單已是 FINISHED，不能改回開放狀態
func (o *Order) ChangeStatus(target OrderStatus) error {
	if o.status == target {
		return nil
	}
	if o.status.IsFinished() {
		return ErrOrderFinished.WithContext(
			"order_id", o.orderID.String(),
			"target_status", target.String(),
		)
	}

	from := o.status
	o.status = target
	o.updatedAt = time.Now()

	o.events.Record(&OrderStatusChangedEvent{
		baseEvent: newBaseEvent(o.orderID),
		from:      from,
		to:        target,
	})
	return nil
}

// EnsureCancellable 只有未完成的訂單可以取消
func (o *Order) EnsureCancellable() error {
	if o.status.IsFinished() {
		return ErrOrderFinished.WithContext("order_id", o.orderID.String())
	}
	return nil
}

// RefundAmount 取消訂單時應退回儲值餘額的金額（現金訂單為 0）
func (o *Order) RefundAmount() shared.Money {
	if o.payType == PayTypePrepaid {
		return o.totalPrice
	}
	return shared.Zero()
}

// ===========================
// Getters
// ===========================

// OrderID 返回訂單 ID
func (o *Order) OrderID() OrderID { return o.orderID }

// CustomerID 返回客戶 ID
func (o *Order) CustomerID() customer.CustomerID { return o.customerID }

// PayType 返回支付方式
func (o *Order) PayType() PayType { return o.payType }

// Status 返回狀態
func (o *Order) Status() OrderStatus { return o.status }

// IsFinished 是否已完成
func (o *Order) IsFinished() bool { return o.status.IsFinished() }

// OrderNo 返回訂單編號
func (o *Order) OrderNo() string { return o.orderNo }

// TotalPrice 返回總價
func (o *Order) TotalPrice() shared.Money { return o.totalPrice }

// Prepaid 返回訂金
func (o *Order) Prepaid() shared.Money { return o.prepaid }

// Urgent 是否加急
func (o *Order) Urgent() bool { return o.urgent }

// ExpectedTime 返回預計完成時間（可能為 nil）
func (o *Order) ExpectedTime() *time.Time { return o.expectedTime }

// CreatedAt 返回建立時間
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt 返回更新時間
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Details 返回可修改欄位的快照
func (o *Order) Details() Details {
	return Details{
		OrderNo:      o.orderNo,
		TotalPrice:   o.totalPrice,
		Prepaid:      o.prepaid,
		Urgent:       o.urgent,
		ExpectedTime: o.expectedTime,
	}
}

// PullEvents 獲取所有待發布事件並清空列表
func (o *Order) PullEvents() []shared.DomainEvent {
	return o.events.PullEvents()
}

// String 調試用
func (o *Order) String() string {
	return fmt.Sprintf("Order{%s no=%s %s %s total=%s}", o.orderID, o.orderNo, o.payType, o.status, o.totalPrice)
}

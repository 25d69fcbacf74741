package order_test

import (
	"testing"
	"time"

	"github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/order"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() order.Details {
	return order.Details{
		OrderNo:    "A20240101-001",
		TotalPrice: shared.MustMoney("100"),
		Prepaid:    shared.Zero(),
	}
}

// ===== NewOrder =====

func TestNewOrder_Success(t *testing.T) {
	// Arrange
	customerID := customer.NewCustomerID()
	expected := time.Now().Add(48 * time.Hour)
	details := validDetails()
	details.Urgent = true
	details.ExpectedTime = &expected

	// Act
	o, err := order.NewOrder(customerID, order.PayTypePrepaid, "", details)

	// Assert
	require.NoError(t, err)
	assert.False(t, o.OrderID().IsEmpty())
	assert.True(t, o.CustomerID().Equals(customerID))
	assert.Equal(t, order.PayTypePrepaid, o.PayType())
	assert.Equal(t, order.OrderStatusNew, o.Status(), "空狀態應預設為 NEW")
	assert.True(t, o.Urgent())
	assert.Equal(t, &expected, o.ExpectedTime())
	assert.WithinDuration(t, time.Now(), o.CreatedAt(), time.Second)

	events := o.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "order.placed", events[0].EventType())
}

func TestNewOrder_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *order.Details)
		payType order.PayType
		wantErr error
	}{
		{
			name:    "空訂單編號",
			mutate:  func(d *order.Details) { d.OrderNo = "  " },
			payType: order.PayTypeCash,
			wantErr: order.ErrEmptyOrderNo,
		},
		{
			name:    "總價為 0",
			mutate:  func(d *order.Details) { d.TotalPrice = shared.Zero() },
			payType: order.PayTypeCash,
			wantErr: order.ErrInvalidTotalPrice,
		},
		{
			name:    "未知支付方式",
			mutate:  func(d *order.Details) {},
			payType: order.PayType("CARD"),
			wantErr: order.ErrInvalidPayType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := validDetails()
			tt.mutate(&details)

			o, err := order.NewOrder(customer.NewCustomerID(), tt.payType, order.OrderStatusNew, details)

			assert.Nil(t, o)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, shared.KindInvalidArgument, shared.KindOf(err))
		})
	}
}

// ===== 狀態 =====

func TestOrder_ChangeStatus_OpenStatesAreOverwritable(t *testing.T) {
	o, err := order.NewOrder(customer.NewCustomerID(), order.PayTypeCash, order.OrderStatusNew, validDetails())
	require.NoError(t, err)
	o.PullEvents()

	require.NoError(t, o.ChangeStatus(order.OrderStatusWashing))
	require.NoError(t, o.ChangeStatus(order.OrderStatusUnwashed))
	require.NoError(t, o.ChangeStatus(order.OrderStatusFinished))

	assert.True(t, o.IsFinished())
	assert.Len(t, o.PullEvents(), 3)
}

func TestOrder_ChangeStatus_FinishedIsTerminal(t *testing.T) {
	o, err := order.NewOrder(customer.NewCustomerID(), order.PayTypeCash, order.OrderStatusFinished, validDetails())
	require.NoError(t, err)

	err = o.ChangeStatus(order.OrderStatusWashing)

	assert.ErrorIs(t, err, order.ErrOrderFinished)
	assert.Equal(t, order.OrderStatusFinished, o.Status())
	assert.NoError(t, o.ChangeStatus(order.OrderStatusFinished), "重複設定 FINISHED 為 no-op")
}

func TestParseOrderStatus(t *testing.T) {
	status, err := order.ParseOrderStatus("washing")
	require.NoError(t, err)
	assert.Equal(t, order.OrderStatusWashing, status)

	status, err = order.ParseOrderStatus("")
	require.NoError(t, err)
	assert.Equal(t, order.OrderStatusNew, status)

	_, err = order.ParseOrderStatus("LOST")
	assert.ErrorIs(t, err, order.ErrInvalidOrderStatus)
}

func TestParsePayType(t *testing.T) {
	payType, err := order.ParsePayType("prepaid")
	require.NoError(t, err)
	assert.Equal(t, order.PayTypePrepaid, payType)

	_, err = order.ParsePayType("")
	assert.ErrorIs(t, err, order.ErrInvalidPayType)
}

// ===== 修改 / 取消 =====

func TestOrder_UpdateDetails_KeepsPayType(t *testing.T) {
	o, err := order.NewOrder(customer.NewCustomerID(), order.PayTypePrepaid, order.OrderStatusNew, validDetails())
	require.NoError(t, err)

	details := validDetails()
	details.OrderNo = "A20240101-002"
	details.TotalPrice = shared.MustMoney("120.5")
	require.NoError(t, o.UpdateDetails(details))

	assert.Equal(t, "A20240101-002", o.OrderNo())
	assert.Equal(t, "120.5", o.TotalPrice().String())
	assert.Equal(t, order.PayTypePrepaid, o.PayType())
}

func TestOrder_UpdateDetails_InvalidPrice_LeavesOrderUnchanged(t *testing.T) {
	o, err := order.NewOrder(customer.NewCustomerID(), order.PayTypeCash, order.OrderStatusNew, validDetails())
	require.NoError(t, err)

	details := validDetails()
	details.TotalPrice = shared.Zero()

	assert.ErrorIs(t, o.UpdateDetails(details), order.ErrInvalidTotalPrice)
	assert.Equal(t, "100", o.TotalPrice().String())
}

func TestOrder_RefundAmount(t *testing.T) {
	prepaid, err := order.NewOrder(customer.NewCustomerID(), order.PayTypePrepaid, order.OrderStatusNew, validDetails())
	require.NoError(t, err)
	cash, err := order.NewOrder(customer.NewCustomerID(), order.PayTypeCash, order.OrderStatusNew, validDetails())
	require.NoError(t, err)

	assert.Equal(t, "100", prepaid.RefundAmount().String())
	assert.True(t, cash.RefundAmount().IsZero())
}

func TestOrder_EnsureCancellable(t *testing.T) {
	o, err := order.NewOrder(customer.NewCustomerID(), order.PayTypeCash, order.OrderStatusWashed, validDetails())
	require.NoError(t, err)
	assert.NoError(t, o.EnsureCancellable())

	require.NoError(t, o.ChangeStatus(order.OrderStatusFinished))
	assert.ErrorIs(t, o.EnsureCancellable(), order.ErrOrderFinished)
}

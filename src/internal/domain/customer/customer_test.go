package customer

import (
	"testing"
	"time"

	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// 測試輔助函數
// ===========================

func newTestCustomer(t *testing.T) *Customer {
	t.Helper()

	phone, err := NewPhoneNumber("13812345678")
	require.NoError(t, err)

	c, err := NewCustomer("王小明", phone, WechatID{})
	require.NoError(t, err)
	c.PullEvents()
	return c
}

// ===========================
// NewCustomer 測試
// ===========================

func TestNewCustomer_ValidInput_StartsWithZeroBalance(t *testing.T) {
	// Arrange
	phone, _ := NewPhoneNumber("13812345678")
	wechat, _ := NewWechatID("wxid_001")

	// Act
	c, err := NewCustomer("  王小明 ", phone, wechat)

	// Assert
	require.NoError(t, err)
	assert.False(t, c.CustomerID().IsEmpty())
	assert.Equal(t, "王小明", c.Name())
	assert.True(t, c.Balance().IsZero())
	assert.Equal(t, 1, c.Version())
	assert.Equal(t, 0, c.ExpectedVersion())
	assert.False(t, c.CreatedAt().IsZero())

	events := c.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "customer.registered", events[0].EventType())
}

func TestNewCustomer_EmptyName_ReturnsError(t *testing.T) {
	phone, _ := NewPhoneNumber("13812345678")

	c, err := NewCustomer("   ", phone, WechatID{})

	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrInvalidCustomerName)
}

func TestNewCustomer_MissingPhone_ReturnsError(t *testing.T) {
	c, err := NewCustomer("王小明", PhoneNumber{}, WechatID{})

	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrInvalidPhoneNumberFormat)
}

// ===========================
// Credit / Debit 測試
// ===========================

func TestCustomer_Credit_AddsAmountAndRecordsEvent(t *testing.T) {
	// Arrange
	c := newTestCustomer(t)

	// Act
	c.Credit(shared.MustMoney("240"), CreditSourceRecharge, "recharge-1")

	// Assert
	assert.True(t, c.Balance().Equals(shared.MustMoney("240")))
	assert.Equal(t, 2, c.Version())

	events := c.PullEvents()
	require.Len(t, events, 1)
	credited, ok := events[0].(*BalanceCreditedEvent)
	require.True(t, ok)
	assert.Equal(t, CreditSourceRecharge, credited.Source())
	assert.Equal(t, "recharge-1", credited.SourceID())
	assert.True(t, credited.BalanceAfter().Equals(shared.MustMoney("240")))
}

func TestCustomer_Credit_ZeroAmount_IsNoOp(t *testing.T) {
	c := newTestCustomer(t)

	c.Credit(shared.Zero(), CreditSourceRecharge, "recharge-0")

	assert.True(t, c.Balance().IsZero())
	assert.Equal(t, 1, c.Version(), "零金額入帳不應遞增版本")
	assert.Empty(t, c.PullEvents())
}

func TestCustomer_Debit_SufficientBalance_Subtracts(t *testing.T) {
	// Arrange
	c := newTestCustomer(t)
	c.Credit(shared.MustMoney("150"), CreditSourceRecharge, "r-1")
	c.PullEvents()

	// Act
	err := c.Debit(shared.MustMoney("100"), DebitSourceOrder, "order-1")

	// Assert
	require.NoError(t, err)
	assert.True(t, c.Balance().Equals(shared.MustMoney("50")))

	events := c.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "customer.balance_debited", events[0].EventType())
}

func TestCustomer_Debit_ExactBalance_LeavesZero(t *testing.T) {
	c := newTestCustomer(t)
	c.Credit(shared.MustMoney("100"), CreditSourceRecharge, "r-1")

	err := c.Debit(shared.MustMoney("100.00"), DebitSourceDirectPay, "pay-1")

	require.NoError(t, err)
	assert.True(t, c.Balance().IsZero())
}

func TestCustomer_Debit_InsufficientBalance_ReturnsErrorAndKeepsState(t *testing.T) {
	// Arrange
	c := newTestCustomer(t)
	c.Credit(shared.MustMoney("50"), CreditSourceRecharge, "r-1")
	c.PullEvents()
	versionBefore := c.Version()

	// Act
	err := c.Debit(shared.MustMoney("100"), DebitSourceOrder, "order-1")

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, shared.KindInsufficientFunds, shared.KindOf(err))
	assert.Contains(t, err.Error(), "目前餘額 50")
	assert.Contains(t, err.Error(), "需要 100")
	assert.True(t, c.Balance().Equals(shared.MustMoney("50")))
	assert.Equal(t, versionBefore, c.Version())
	assert.Empty(t, c.PullEvents())
}

func TestCustomer_OverwriteBalance_RecordsDistinctEvent(t *testing.T) {
	// Arrange
	c := newTestCustomer(t)
	c.Credit(shared.MustMoney("80"), CreditSourceRecharge, "r-1")
	c.PullEvents()

	// Act
	c.OverwriteBalance(shared.MustMoney("30"), "manual correction")

	// Assert
	assert.True(t, c.Balance().Equals(shared.MustMoney("30")))
	events := c.PullEvents()
	require.Len(t, events, 1)
	overwritten, ok := events[0].(*BalanceOverwrittenEvent)
	require.True(t, ok)
	assert.True(t, overwritten.OldBalance().Equals(shared.MustMoney("80")))
	assert.True(t, overwritten.NewBalance().Equals(shared.MustMoney("30")))
	assert.Equal(t, "manual correction", overwritten.Reason())
}

// ===========================
// UpdateProfile / Reconstruct 測試
// ===========================

func TestCustomer_UpdateProfile_DoesNotTouchBalance(t *testing.T) {
	c := newTestCustomer(t)
	c.Credit(shared.MustMoney("10"), CreditSourceRecharge, "r-1")
	newPhone, _ := NewPhoneNumber("13900000000")

	err := c.UpdateProfile("王大明", newPhone, WechatID{})

	require.NoError(t, err)
	assert.Equal(t, "王大明", c.Name())
	assert.Equal(t, "13900000000", c.Phone().String())
	assert.True(t, c.Balance().Equals(shared.MustMoney("10")))
}

func TestReconstructCustomer_SetsExpectedVersion(t *testing.T) {
	// Arrange
	id := NewCustomerID()
	phone, _ := NewPhoneNumber("13812345678")
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	// Act
	c, err := ReconstructCustomer(id, "王小明", phone, WechatID{}, shared.MustMoney("12.5"), created, created, 7)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 7, c.Version())
	assert.Equal(t, 7, c.ExpectedVersion())
	assert.Empty(t, c.PullEvents(), "重建時不應產生事件")

	c.Credit(shared.MustMoney("1"), CreditSourceRecharge, "r")
	assert.Equal(t, 8, c.Version())
	assert.Equal(t, 7, c.ExpectedVersion())
}

func TestReconstructCustomer_EmptyID_ReturnsError(t *testing.T) {
	phone, _ := NewPhoneNumber("13812345678")

	_, err := ReconstructCustomer(CustomerID{}, "王小明", phone, WechatID{}, shared.Zero(), time.Now(), time.Now(), 1)

	assert.ErrorIs(t, err, ErrInvalidCustomerID)
}

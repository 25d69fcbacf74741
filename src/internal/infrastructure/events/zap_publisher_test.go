package events

import (
	"testing"

	"github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedPublisher() (*ZapPublisher, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewZapPublisher(zap.New(core)), logs
}

func TestZapPublisher_BalanceEvents(t *testing.T) {
	// Arrange
	publisher, logs := newObservedPublisher()
	phone, err := customer.NewPhoneNumber("13812345678")
	require.NoError(t, err)
	c, err := customer.NewCustomer("王小明", phone, customer.WechatID{})
	require.NoError(t, err)

	c.Credit(shared.MustMoney("240"), customer.CreditSourceRecharge, "r-1")
	require.NoError(t, c.Debit(shared.MustMoney("40"), customer.DebitSourceDirectPay, "pay-1"))

	// Act
	err = publisher.PublishBatch(c.PullEvents())

	// Assert
	require.NoError(t, err)
	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "customer.registered", entries[0].ContextMap()["event_type"])
	assert.Equal(t, "customer.balance_credited", entries[1].ContextMap()["event_type"])
	assert.Equal(t, "240", entries[1].ContextMap()["balance_after"])
	assert.Equal(t, "200", entries[2].ContextMap()["balance_after"])
}

func TestZapPublisher_OverwriteLoggedAsWarning(t *testing.T) {
	publisher, logs := newObservedPublisher()
	phone, err := customer.NewPhoneNumber("13812345678")
	require.NoError(t, err)
	c, err := customer.NewCustomer("王小明", phone, customer.WechatID{})
	require.NoError(t, err)
	c.PullEvents()

	c.OverwriteBalance(shared.MustMoney("500"), "manual correction")
	require.NoError(t, publisher.PublishBatch(c.PullEvents()))

	entries := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "manual correction", entries[0].ContextMap()["reason"])
}

func TestZapPublisher_NilEvent(t *testing.T) {
	publisher, _ := newObservedPublisher()

	assert.Error(t, publisher.Publish(nil))
}

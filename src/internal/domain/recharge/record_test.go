package recharge_test

import (
	"testing"
	"time"

	"github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/recharge"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRechargeRecord_ComputesGift(t *testing.T) {
	// Arrange
	customerID := customer.NewCustomerID()

	// Act
	record, err := recharge.NewRechargeRecord(customerID, shared.MustMoney("200"), recharge.NewGiftTierCalculator())

	// Assert
	require.NoError(t, err)
	assert.False(t, record.RechargeID().IsEmpty())
	assert.True(t, record.CustomerID().Equals(customerID))
	assert.Equal(t, "200", record.RechargeAmount().String())
	assert.Equal(t, "40", record.GiftAmount().String())
	assert.Equal(t, "240", record.TotalCredit().String())
	assert.WithinDuration(t, time.Now(), record.CreatedAt(), time.Second)
}

func TestNewRechargeRecord_ZeroAmount_ReturnsError(t *testing.T) {
	_, err := recharge.NewRechargeRecord(customer.NewCustomerID(), shared.Zero(), recharge.NewGiftTierCalculator())

	assert.ErrorIs(t, err, recharge.ErrInvalidRechargeAmount)
	assert.Equal(t, shared.KindInvalidArgument, shared.KindOf(err))
}

func TestReconstructRechargeRecord_AllowsZeroCreatedAt(t *testing.T) {
	record, err := recharge.ReconstructRechargeRecord(
		recharge.NewRechargeID(),
		customer.NewCustomerID(),
		shared.MustMoney("100"),
		shared.MustMoney("10"),
		time.Time{},
	)

	require.NoError(t, err)
	assert.True(t, record.CreatedAt().IsZero())
}

func TestReconstructRechargeRecord_NonPositiveAmount_IsCorrupted(t *testing.T) {
	_, err := recharge.ReconstructRechargeRecord(
		recharge.NewRechargeID(),
		customer.NewCustomerID(),
		shared.Zero(),
		shared.Zero(),
		time.Now(),
	)

	assert.ErrorIs(t, err, recharge.ErrCorruptedRechargeRecord)
}

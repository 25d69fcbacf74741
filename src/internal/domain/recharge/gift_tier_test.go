package recharge_test

import (
	"testing"

	"github.com/jackyeh168/laundry_crm/src/internal/domain/recharge"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

// ===== GiftTierCalculator 測試 =====

func TestGiftTierCalculator_GiftAmount_Boundaries(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected string
	}{
		{name: "未達門檻", amount: "99", expected: "0"},
		{name: "剛好 100 送 10%", amount: "100", expected: "10"},
		{name: "199.99 精確不捨入", amount: "199.99", expected: "19.999"},
		{name: "剛好 200 送 20%", amount: "200", expected: "40"},
		{name: "500 送 20%", amount: "500", expected: "100"},
		{name: "零金額", amount: "0", expected: "0"},
	}

	calculator := recharge.NewGiftTierCalculator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			gift := calculator.GiftAmount(shared.MustMoney(tt.amount))

			// Assert
			assert.True(t, gift.Equals(shared.MustMoney(tt.expected)),
				"GiftAmount(%s) = %s, want %s", tt.amount, gift, tt.expected)
		})
	}
}

func TestGiftTierCalculator_TotalCredit(t *testing.T) {
	calculator := recharge.NewGiftTierCalculator()

	total := calculator.TotalCredit(shared.MustMoney("200"))

	assert.True(t, total.Equals(shared.MustMoney("240")))
}

package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// PhoneNumber Value Object Tests
// ===========================

func TestNewPhoneNumber_ValidMainlandMobile_Success(t *testing.T) {
	validNumbers := []string{
		"13812345678",
		"15900000000",
		"19999999999",
	}

	for _, number := range validNumbers {
		t.Run(number, func(t *testing.T) {
			// Act
			phoneNumber, err := NewPhoneNumber(number)

			// Assert
			require.NoError(t, err, "valid mobile should be accepted: %s", number)
			assert.Equal(t, number, phoneNumber.String())
		})
	}
}

func TestNewPhoneNumber_TrimsSpaces(t *testing.T) {
	phoneNumber, err := NewPhoneNumber("  13812345678 ")

	require.NoError(t, err)
	assert.Equal(t, "13812345678", phoneNumber.String())
}

func TestNewPhoneNumber_InvalidFormat_ReturnsError(t *testing.T) {
	invalidNumbers := []string{
		"1381234567",    // 10 位
		"138123456789",  // 12 位
		"",              // 空字串
		"12812345678",   // 第二位為 2
		"23812345678",   // 不是 1 開頭
		"138-1234-5678", // 包含連字號
		"1381234567a",   // 包含字母
	}

	for _, number := range invalidNumbers {
		t.Run(number, func(t *testing.T) {
			// Act
			phoneNumber, err := NewPhoneNumber(number)

			// Assert
			assert.ErrorIs(t, err, ErrInvalidPhoneNumberFormat)
			assert.True(t, phoneNumber.IsZero())
		})
	}
}

func TestPhoneNumber_Equals(t *testing.T) {
	a, _ := NewPhoneNumber("13812345678")
	b, _ := NewPhoneNumber("13812345678")
	c, _ := NewPhoneNumber("13912345678")

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

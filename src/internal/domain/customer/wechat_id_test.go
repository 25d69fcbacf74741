package customer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// WechatID Value Object Tests
// ===========================

func TestNewWechatID_Valid_Success(t *testing.T) {
	wechat, err := NewWechatID("wxid_abc123")

	require.NoError(t, err)
	assert.Equal(t, "wxid_abc123", wechat.String())
	assert.False(t, wechat.IsZero())
}

func TestNewWechatID_Empty_ReturnsZeroValue(t *testing.T) {
	for _, value := range []string{"", "   "} {
		wechat, err := NewWechatID(value)

		require.NoError(t, err, "微信號為選填")
		assert.True(t, wechat.IsZero())
	}
}

func TestNewWechatID_Invalid_ReturnsError(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"包含空白", "wx id"},
		{"超過 64 字符", strings.Repeat("a", 65)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWechatID(tt.value)

			assert.ErrorIs(t, err, ErrInvalidWechatID)
		})
	}
}

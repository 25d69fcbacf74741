package customer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ===========================
// WechatID Value Object
// ===========================

// WechatID 微信號值對象（選填）
//
// 業務規則：
// 1. 可為空（客戶未提供微信號）
// 2. 非空時長度 1-64 個字符
// 3. 不能包含空白字符
type WechatID struct {
	value string
}

// maxWechatIDLength 微信號最大長度
const maxWechatIDLength = 64

// NewWechatID 創建微信號值對象
//
// 空字串（或只有空白）返回零值，不視為錯誤。
func NewWechatID(value string) (WechatID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return WechatID{}, nil
	}

	if utf8.RuneCountInString(trimmed) > maxWechatIDLength {
		return WechatID{}, ErrInvalidWechatID.WithContext(
			"wechat", value,
			"reason", "must be at most 64 characters long",
		)
	}

	if strings.IndexFunc(trimmed, unicode.IsSpace) >= 0 {
		return WechatID{}, ErrInvalidWechatID.WithContext(
			"wechat", value,
			"reason", "must not contain whitespace",
		)
	}

	return WechatID{value: trimmed}, nil
}

// String 返回微信號字串表示
func (w WechatID) String() string {
	return w.value
}

// Equals 比較兩個微信號是否相等
func (w WechatID) Equals(other WechatID) bool {
	return w.value == other.value
}

// IsZero 檢查是否為零值（未填寫）
func (w WechatID) IsZero() bool {
	return w.value == ""
}

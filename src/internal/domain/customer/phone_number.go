package customer

import (
	"regexp"
	"strings"
)

// ===========================
// PhoneNumber Value Object
// ===========================

// PhoneNumber 手機號碼值對象
//
// 業務規則：
// 1. 中國大陸手機號碼格式
// 2. 11 位數字
// 3. 以 "1" 開頭，第二位為 3-9
//
// 使用範例：
//   phoneNumber, err := NewPhoneNumber("13812345678")
type PhoneNumber struct {
	value string
}

// mainlandMobilePattern 大陸手機號碼正則表達式
var mainlandMobilePattern = regexp.MustCompile(`^1[3-9][0-9]{9}$`)

// NewPhoneNumber 創建新的手機號碼值對象（Checked Constructor）
//
// 前後空白會被去除；格式不符返回 ErrInvalidPhoneNumberFormat。
//
// 錯誤範例：
// - "1381234567" (10位) → ErrInvalidPhoneNumberFormat
// - "12812345678" (第二位為 2) → ErrInvalidPhoneNumberFormat
// - "138-1234-5678" (包含連字號) → ErrInvalidPhoneNumberFormat
func NewPhoneNumber(value string) (PhoneNumber, error) {
	trimmed := strings.TrimSpace(value)
	if !mainlandMobilePattern.MatchString(trimmed) {
		return PhoneNumber{}, ErrInvalidPhoneNumberFormat.WithContext(
			"phone", value,
			"reason", "must be 11 digits starting with 1[3-9]",
		)
	}
	return PhoneNumber{value: trimmed}, nil
}

// String 返回手機號碼字串表示
func (p PhoneNumber) String() string {
	return p.value
}

// Equals 比較兩個手機號碼是否相等
func (p PhoneNumber) Equals(other PhoneNumber) bool {
	return p.value == other.value
}

// IsZero 檢查是否為零值
func (p PhoneNumber) IsZero() bool {
	return p.value == ""
}

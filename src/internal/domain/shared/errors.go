package shared

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ===========================
// 錯誤分類與代碼
// ===========================

// ErrorKind 錯誤分類（呼叫端依此決定回應方式，例如 HTTP 狀態碼）
type ErrorKind string

// 錯誤分類常量
const (
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindInsufficientFunds ErrorKind = "INSUFFICIENT_FUNDS"
	KindInvalidArgument   ErrorKind = "INVALID_ARGUMENT"
	KindConflict          ErrorKind = "CONFLICT"
	KindInternal          ErrorKind = "INTERNAL"
)

// ErrorCode 錯誤代碼（同一分類下的具體錯誤）
type ErrorCode string

// ===========================
// DomainError 結構
// ===========================

// DomainError 領域錯誤
//
// - Kind: 錯誤分類
// - Code: 結構化錯誤代碼，errors.Is 依此比對
// - Message: 給使用者看的訊息
// - Context: 調試用的鍵值對（例如目前餘額、所需金額）
type DomainError struct {
	Kind    ErrorKind
	Code    ErrorCode
	Message string
	Context map[string]interface{}
}

// NewDomainError 建立預定義錯誤
func NewDomainError(kind ErrorKind, code ErrorCode, message string) *DomainError {
	return &DomainError{Kind: kind, Code: code, Message: message}
}

// Error 實現 error 介面
func (e *DomainError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s (context: %s)", e.Code, e.Message, formatContext(e.Context))
}

// WithContext 添加上下文信息（返回新的錯誤實例）
func (e *DomainError) WithContext(keyValues ...interface{}) *DomainError {
	if len(keyValues)%2 != 0 {
		panic("WithContext requires even number of arguments (key-value pairs)")
	}

	ctx := make(map[string]interface{}, len(e.Context)+len(keyValues)/2)
	for k, v := range e.Context {
		ctx[k] = v
	}
	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			panic(fmt.Sprintf("context key must be string, got %T", keyValues[i]))
		}
		ctx[key] = keyValues[i+1]
	}

	return &DomainError{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: e.Message,
		Context: ctx,
	}
}

// WithMessage 替換訊息（保留分類、代碼與上下文）
func (e *DomainError) WithMessage(format string, args ...interface{}) *DomainError {
	return &DomainError{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: fmt.Sprintf(format, args...),
		Context: e.Context,
	}
}

// Is 實現 errors.Is 介面（以錯誤代碼比對）
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// KindOf 取得錯誤分類
//
// 錯誤鏈中找不到 DomainError 時返回 KindInternal（儲存層或未知錯誤）
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// IsKind 判斷錯誤是否屬於指定分類
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

func formatContext(ctx map[string]interface{}) string {
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, ctx[k]))
	}
	return strings.Join(parts, ", ")
}

// ===========================
// 共用錯誤
// ===========================

// 共用錯誤代碼
const (
	ErrCodeNegativeMoney   ErrorCode = "MONEY_NEGATIVE"
	ErrCodeInvalidMoney    ErrorCode = "MONEY_INVALID"
	ErrCodeMoneyScale      ErrorCode = "MONEY_SCALE_INVALID"
	ErrCodeConcurrentWrite ErrorCode = "CONCURRENT_WRITE"
	ErrCodeLockUnavailable ErrorCode = "LOCK_UNAVAILABLE"
)

var (
	// ErrNegativeMoney 金額不能為負數
	ErrNegativeMoney = NewDomainError(KindInvalidArgument, ErrCodeNegativeMoney, "金額不能為負數")

	// ErrInvalidMoney 金額格式無效
	ErrInvalidMoney = NewDomainError(KindInvalidArgument, ErrCodeInvalidMoney, "無效的金額")

	// ErrMoneyScale 輸入金額最多到分（小數兩位）
	ErrMoneyScale = NewDomainError(KindInvalidArgument, ErrCodeMoneyScale, "金額最多只能有兩位小數")

	// ErrConcurrentWrite 樂觀鎖版本不符（資料已被其他請求修改）
	ErrConcurrentWrite = NewDomainError(KindConflict, ErrCodeConcurrentWrite, "資料已被其他請求修改，請重試")

	// ErrLockUnavailable 無法在時限內取得客戶鎖
	ErrLockUnavailable = NewDomainError(KindConflict, ErrCodeLockUnavailable, "客戶帳戶正在處理其他請求，請稍後重試")
)

package customer

import "github.com/jackyeh168/laundry_crm/src/internal/domain/shared"

// ===========================
// Customer Domain 錯誤定義
// ===========================

// Customer Domain 錯誤代碼常量
const (
	ErrCodeInvalidCustomerID        shared.ErrorCode = "CUSTOMER_ID_INVALID"
	ErrCodeInvalidCustomerName      shared.ErrorCode = "CUSTOMER_NAME_INVALID"
	ErrCodeInvalidPhoneNumberFormat shared.ErrorCode = "PHONE_NUMBER_FORMAT_INVALID"
	ErrCodeInvalidWechatID          shared.ErrorCode = "WECHAT_ID_INVALID"
	ErrCodeInsufficientBalance      shared.ErrorCode = "BALANCE_INSUFFICIENT"
	ErrCodeCorruptedBalance         shared.ErrorCode = "BALANCE_CORRUPTED"
	ErrCodeCustomerNotFound         shared.ErrorCode = "CUSTOMER_NOT_FOUND"
	ErrCodePhoneNumberTaken         shared.ErrorCode = "PHONE_NUMBER_TAKEN"
	ErrCodeCustomerHasDependents    shared.ErrorCode = "CUSTOMER_HAS_DEPENDENTS"
	ErrCodeInvalidAmount            shared.ErrorCode = "AMOUNT_INVALID"
)

var (
	// ErrInvalidCustomerID 無效的客戶 ID
	ErrInvalidCustomerID = shared.NewDomainError(
		shared.KindInvalidArgument, ErrCodeInvalidCustomerID, "無效的客戶 ID",
	)

	// ErrInvalidCustomerName 客戶姓名不能為空
	ErrInvalidCustomerName = shared.NewDomainError(
		shared.KindInvalidArgument, ErrCodeInvalidCustomerName, "客戶姓名不能為空",
	)

	// ErrInvalidPhoneNumberFormat 手機號碼格式錯誤
	ErrInvalidPhoneNumberFormat = shared.NewDomainError(
		shared.KindInvalidArgument, ErrCodeInvalidPhoneNumberFormat, "手機號碼格式錯誤",
	)

	// ErrInvalidWechatID 微信號格式錯誤
	ErrInvalidWechatID = shared.NewDomainError(
		shared.KindInvalidArgument, ErrCodeInvalidWechatID, "微信號格式錯誤",
	)

	// ErrInsufficientBalance 儲值餘額不足
	ErrInsufficientBalance = shared.NewDomainError(
		shared.KindInsufficientFunds, ErrCodeInsufficientBalance, "儲值餘額不足",
	)

	// ErrCorruptedBalance 資料庫中的餘額違反不變條件（負數）
	ErrCorruptedBalance = shared.NewDomainError(
		shared.KindInternal, ErrCodeCorruptedBalance, "客戶餘額資料損壞",
	)

	// ErrCustomerNotFound 客戶不存在
	ErrCustomerNotFound = shared.NewDomainError(
		shared.KindNotFound, ErrCodeCustomerNotFound, "客戶不存在",
	)

	// ErrPhoneNumberTaken 手機號碼已被其他客戶使用
	ErrPhoneNumberTaken = shared.NewDomainError(
		shared.KindConflict, ErrCodePhoneNumberTaken, "手機號碼已被其他客戶使用",
	)

	// ErrInvalidAmount 扣款金額必須大於 0
	ErrInvalidAmount = shared.NewDomainError(
		shared.KindInvalidArgument, ErrCodeInvalidAmount, "金額必須大於 0",
	)

	// ErrCustomerHasDependents 客戶仍有訂單或充值記錄，不能刪除
	ErrCustomerHasDependents = shared.NewDomainError(
		shared.KindConflict, ErrCodeCustomerHasDependents, "客戶仍有訂單或充值記錄，不能刪除",
	)
)

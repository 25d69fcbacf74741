package recharge

import "github.com/jackyeh168/laundry_crm/src/internal/domain/shared"

// ===========================
// Recharge Domain 錯誤定義
// ===========================

const (
	ErrCodeInvalidRechargeID      shared.ErrorCode = "RECHARGE_ID_INVALID"
	ErrCodeInvalidRechargeAmount  shared.ErrorCode = "RECHARGE_AMOUNT_INVALID"
	ErrCodeRechargeNotMultiple    shared.ErrorCode = "RECHARGE_AMOUNT_NOT_MULTIPLE_OF_100"
	ErrCodeRechargeRecordNotFound shared.ErrorCode = "RECHARGE_RECORD_NOT_FOUND"
	ErrCodeCorruptedRecharge      shared.ErrorCode = "RECHARGE_RECORD_CORRUPTED"
)

var (
	// ErrInvalidRechargeID 無效的充值記錄 ID
	ErrInvalidRechargeID = shared.NewDomainError(
		shared.KindInvalidArgument, ErrCodeInvalidRechargeID, "無效的充值記錄 ID",
	)

	// ErrInvalidRechargeAmount 充值金額必須大於 0
	ErrInvalidRechargeAmount = shared.NewDomainError(
		shared.KindInvalidArgument, ErrCodeInvalidRechargeAmount, "充值金額必須大於 0",
	)

	// ErrRechargeNotMultipleOf100 開卡充值金額必須是 100 的整數倍
	ErrRechargeNotMultipleOf100 = shared.NewDomainError(
		shared.KindInvalidArgument, ErrCodeRechargeNotMultiple, "充值金額必須是 100 的整數倍",
	)

	// ErrRechargeRecordNotFound 充值記錄不存在
	ErrRechargeRecordNotFound = shared.NewDomainError(
		shared.KindNotFound, ErrCodeRechargeRecordNotFound, "充值記錄不存在",
	)

	// ErrCorruptedRechargeRecord 資料庫中的充值記錄違反不變條件
	ErrCorruptedRechargeRecord = shared.NewDomainError(
		shared.KindInternal, ErrCodeCorruptedRecharge, "充值記錄資料損壞",
	)
)

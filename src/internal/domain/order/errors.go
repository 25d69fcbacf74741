package order

import "github.com/jackyeh168/laundry_crm/src/internal/domain/shared"

// ===========================
// Order Domain 錯誤定義
// ===========================

const (
	ErrCodeInvalidOrderID       shared.ErrorCode = "ORDER_ID_INVALID"
	ErrCodeInvalidClothesID     shared.ErrorCode = "CLOTHES_ID_INVALID"
	ErrCodeEmptyOrderNo         shared.ErrorCode = "ORDER_NO_EMPTY"
	ErrCodeInvalidTotalPrice    shared.ErrorCode = "ORDER_TOTAL_PRICE_INVALID"
	ErrCodeInvalidPayType       shared.ErrorCode = "ORDER_PAY_TYPE_INVALID"
	ErrCodeInvalidOrderStatus   shared.ErrorCode = "ORDER_STATUS_INVALID"
	ErrCodeOrderFinished        shared.ErrorCode = "ORDER_ALREADY_FINISHED"
	ErrCodeOrderNotFound        shared.ErrorCode = "ORDER_NOT_FOUND"
	ErrCodeInvalidClothesType   shared.ErrorCode = "CLOTHES_TYPE_INVALID"
	ErrCodeInvalidClothesStatus shared.ErrorCode = "CLOTHES_STATUS_INVALID"
	ErrCodeClothesTransition    shared.ErrorCode = "CLOTHES_STATUS_TRANSITION_INVALID"
	ErrCodeClothesNotFound      shared.ErrorCode = "CLOTHES_NOT_FOUND"
	ErrCodeCorruptedOrder       shared.ErrorCode = "ORDER_CORRUPTED"
)

var (
	// ErrInvalidOrderID 無效的訂單 ID
	ErrInvalidOrderID = shared.NewDomainError(
		shared.KindInvalidArgument, ErrCodeInvalidOrderID, "無效的訂單 ID",
	)

	// ErrInvalidClothesID 無效的衣物 ID
	ErrInvalidClothesID = shared.NewDomainError(
		shared.KindInvalidArgument, ErrCodeInvalidClothesID, "無效的衣物 ID",
	)

	// ErrEmptyOrderNo 訂單編號不能為空
	ErrEmptyOrderNo = shared.NewDomainError(
		shared.KindInvalidArgument, ErrCodeEmptyOrderNo, "訂單編號不能為空",
	)

	// ErrInvalidTotalPrice 訂單總價必須大於 0
	ErrInvalidTotalPrice = shared.NewDomainError(
		shared.KindInvalidArgument, ErrCodeInvalidTotalPrice, "訂單總價必須大於 0",
	)

	// ErrInvalidPayType 支付方式只能是 CASH 或 PREPAID
	ErrInvalidPayType = shared.NewDomainError(
		shared.KindInvalidArgument, ErrCodeInvalidPayType, "無效的支付方式",
	)

	// ErrInvalidOrderStatus 無效的訂單狀態
	ErrInvalidOrderStatus = shared.NewDomainError(
		shared.KindInvalidArgument, ErrCodeInvalidOrderStatus, "無效的訂單狀態",
	)

	// ErrOrderFinished 訂單已完成，不能再變更狀態或取消
	ErrOrderFinished = shared.NewDomainError(
		shared.KindConflict, ErrCodeOrderFinished, "訂單已完成",
	)

	// ErrOrderNotFound 訂單不存在
	ErrOrderNotFound = shared.NewDomainError(
		shared.KindNotFound, ErrCodeOrderNotFound, "訂單不存在",
	)

	// ErrInvalidClothesType 衣物類型不能為空
	ErrInvalidClothesType = shared.NewDomainError(
		shared.KindInvalidArgument, ErrCodeInvalidClothesType, "衣物類型不能為空",
	)

	// ErrInvalidClothesStatus 無效的衣物狀態
	ErrInvalidClothesStatus = shared.NewDomainError(
		shared.KindInvalidArgument, ErrCodeInvalidClothesStatus, "無效的衣物狀態",
	)

	// ErrInvalidClothesTransition 衣物狀態只能依 UNWASHED → WASHED → FINISHED 前進
	ErrInvalidClothesTransition = shared.NewDomainError(
		shared.KindInvalidArgument, ErrCodeClothesTransition, "衣物狀態不能倒退或跳躍",
	)

	// ErrClothesNotFound 衣物不存在
	ErrClothesNotFound = shared.NewDomainError(
		shared.KindNotFound, ErrCodeClothesNotFound, "衣物不存在",
	)

	// ErrCorruptedOrder 資料庫中的訂單違反不變條件
	ErrCorruptedOrder = shared.NewDomainError(
		shared.KindInternal, ErrCodeCorruptedOrder, "訂單資料損壞",
	)
)

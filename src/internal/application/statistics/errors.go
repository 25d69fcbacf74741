package statistics

import "github.com/jackyeh168/laundry_crm/src/internal/domain/shared"

// ErrCodeInvalidMonth 月份超出 1..12
const ErrCodeInvalidMonth shared.ErrorCode = "STATISTICS_MONTH_INVALID"

// ErrInvalidMonth 月份必須在 1 到 12 之間
var ErrInvalidMonth = shared.NewDomainError(
	shared.KindInvalidArgument, ErrCodeInvalidMonth, "月份必須在 1 到 12 之間",
)

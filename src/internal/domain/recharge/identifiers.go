package recharge

import (
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
)

// RechargeMarker 充值記錄 ID 標記類型
type RechargeMarker struct{}

// RechargeID 充值記錄唯一標識符（UUID）
type RechargeID = shared.EntityID[RechargeMarker]

// NewRechargeID 生成新的充值記錄 ID
func NewRechargeID() RechargeID {
	return shared.NewEntityID[RechargeMarker]()
}

// RechargeIDFromString 從字串解析充值記錄 ID
func RechargeIDFromString(s string) (RechargeID, error) {
	return shared.EntityIDFromString[RechargeMarker](s, ErrInvalidRechargeID)
}

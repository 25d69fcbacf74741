package order

import (
	"strings"
	"time"

	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
)

// ===========================
// Clothes 實體（訂單明細）
// ===========================

// Clothes 衣物明細，以 orderID 外鍵歸屬於訂單
type Clothes struct {
	clothesID    ClothesID
	orderID      OrderID
	clothesType  string
	price        shared.Money
	damageRemark string
	damageImage  string
	status       ClothesStatus
	createdAt    time.Time
}

// ClothesDetails 衣物可修改欄位
type ClothesDetails struct {
	Type         string
	Price        shared.Money
	DamageRemark string
	DamageImage  string
}

func (d ClothesDetails) validate() error {
	if strings.TrimSpace(d.Type) == "" {
		return ErrInvalidClothesType
	}
	return nil
}

// NewClothes 建立衣物明細，初始狀態 UNWASHED
func NewClothes(orderID OrderID, details ClothesDetails) (*Clothes, error) {
	if err := details.validate(); err != nil {
		return nil, err
	}

	return &Clothes{
		clothesID:    NewClothesID(),
		orderID:      orderID,
		clothesType:  strings.TrimSpace(details.Type),
		price:        details.Price,
		damageRemark: details.DamageRemark,
		damageImage:  details.DamageImage,
		status:       ClothesStatusUnwashed,
		createdAt:    time.Now(),
	}, nil
}

// ReconstructClothes 從資料庫重建衣物明細
func ReconstructClothes(
	clothesID ClothesID,
	orderID OrderID,
	details ClothesDetails,
	status ClothesStatus,
	createdAt time.Time,
) *Clothes {
	return &Clothes{
		clothesID:    clothesID,
		orderID:      orderID,
		clothesType:  details.Type,
		price:        details.Price,
		damageRemark: details.DamageRemark,
		damageImage:  details.DamageImage,
		status:       status,
		createdAt:    createdAt,
	}
}

// UpdateDetails 修改衣物資料（不含狀態）
func (c *Clothes) UpdateDetails(details ClothesDetails) error {
	if err := details.validate(); err != nil {
		return err
	}
	c.clothesType = strings.TrimSpace(details.Type)
	c.price = details.Price
	c.damageRemark = details.DamageRemark
	c.damageImage = details.DamageImage
	return nil
}

// AdvanceTo 將狀態前進一步；相同狀態為 no-op
//
// 錯誤：
// - ErrInvalidClothesTransition: 倒退、跳躍或離開 FINISHED
func (c *Clothes) AdvanceTo(target ClothesStatus) error {
	if c.status == target {
		return nil
	}
	if !c.status.CanTransitionTo(target) {
		return ErrInvalidClothesTransition.WithContext(
			"clothes_id", c.clothesID.String(),
			"from", c.status.String(),
			"to", target.String(),
		)
	}
	c.status = target
	return nil
}

// ClothesID 返回衣物 ID
func (c *Clothes) ClothesID() ClothesID { return c.clothesID }

// OrderID 返回所屬訂單 ID
func (c *Clothes) OrderID() OrderID { return c.orderID }

// Type 返回衣物類型
func (c *Clothes) Type() string { return c.clothesType }

// Price 返回單價
func (c *Clothes) Price() shared.Money { return c.price }

// DamageRemark 返回破損備註
func (c *Clothes) DamageRemark() string { return c.damageRemark }

// DamageImage 返回破損圖片參照
func (c *Clothes) DamageImage() string { return c.damageImage }

// Status 返回狀態
func (c *Clothes) Status() ClothesStatus { return c.status }

// CreatedAt 返回建立時間
func (c *Clothes) CreatedAt() time.Time { return c.createdAt }

package persistence

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackyeh168/laundry_crm/src/internal/domain/order"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"gorm.io/gorm"
)

// GORMClothesRepository GORM 實作的衣物明細倉儲
type GORMClothesRepository struct {
	db  *gorm.DB
	loc *time.Location
}

// NewClothesRepository 創建衣物明細倉儲
func NewClothesRepository(db *gorm.DB, opts ...RepositoryOption) order.ClothesRepository {
	cfg := newRepositoryConfig(opts)
	return &GORMClothesRepository{db: db, loc: cfg.legacyLocation}
}

// Save 插入新衣物
func (r *GORMClothesRepository) Save(ctx shared.TransactionContext, c *order.Clothes) error {
	if err := dbFrom(ctx, r.db).Create(clothesToGORM(c)).Error; err != nil {
		return classifyError(err)
	}
	return nil
}

// FindByID 根據 ID 查找
func (r *GORMClothesRepository) FindByID(ctx shared.TransactionContext, id order.ClothesID) (*order.Clothes, error) {
	var model ClothesModel
	if err := dbFrom(ctx, r.db).Where("id = ?", id.String()).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrClothesNotFound.WithContext("clothes_id", id.String())
		}
		return nil, classifyError(err)
	}
	return clothesToDomain(&model, r.loc)
}

// FindByOrderID 訂單的所有衣物
func (r *GORMClothesRepository) FindByOrderID(ctx shared.TransactionContext, orderID order.OrderID) ([]*order.Clothes, error) {
	return r.findWhere(ctx, "order_id = ?", orderID.String())
}

// FindByStatus 指定狀態的所有衣物（空白狀態視為 UNWASHED，與讀取時一致）
func (r *GORMClothesRepository) FindByStatus(ctx shared.TransactionContext, status order.ClothesStatus) ([]*order.Clothes, error) {
	values := []string{status.String()}
	if status == order.ClothesStatusUnwashed {
		values = append(values, "")
	}
	return r.findWhere(ctx, "status IN ?", values)
}

func (r *GORMClothesRepository) findWhere(ctx shared.TransactionContext, query string, arg interface{}) ([]*order.Clothes, error) {
	var models []ClothesModel
	err := dbFrom(ctx, r.db).
		Where(query, arg).
		Order("create_time ASC").
		Find(&models).Error
	if err != nil {
		return nil, classifyError(err)
	}

	items := make([]*order.Clothes, 0, len(models))
	for i := range models {
		c, err := clothesToDomain(&models[i], r.loc)
		if err != nil {
			return nil, fmt.Errorf("failed to map clothes %s: %w", models[i].ID, err)
		}
		items = append(items, c)
	}
	return items, nil
}

// Update 更新衣物
func (r *GORMClothesRepository) Update(ctx shared.TransactionContext, c *order.Clothes) error {
	model := clothesToGORM(c)

	result := dbFrom(ctx, r.db).Model(&ClothesModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"type":          model.Type,
			"price":         model.Price,
			"damage_remark": model.DamageRemark,
			"damage_image":  model.DamageImage,
			"status":        model.Status,
		})
	if result.Error != nil {
		return classifyError(result.Error)
	}
	if result.RowsAffected == 0 {
		return order.ErrClothesNotFound.WithContext("clothes_id", model.ID)
	}
	return nil
}

// Delete 刪除衣物
func (r *GORMClothesRepository) Delete(ctx shared.TransactionContext, id order.ClothesID) error {
	result := dbFrom(ctx, r.db).Where("id = ?", id.String()).Delete(&ClothesModel{})
	if result.Error != nil {
		return classifyError(result.Error)
	}
	if result.RowsAffected == 0 {
		return order.ErrClothesNotFound.WithContext("clothes_id", id.String())
	}
	return nil
}

// DeleteByOrderID 刪除訂單的所有衣物
func (r *GORMClothesRepository) DeleteByOrderID(ctx shared.TransactionContext, orderID order.OrderID) (int64, error) {
	result := dbFrom(ctx, r.db).Where("order_id = ?", orderID.String()).Delete(&ClothesModel{})
	if result.Error != nil {
		return 0, classifyError(result.Error)
	}
	return result.RowsAffected, nil
}

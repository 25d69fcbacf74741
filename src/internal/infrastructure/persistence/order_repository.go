package persistence

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/order"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ===========================
// GORM OrderRepository 實作
// ===========================

// GORMOrderRepository GORM 實作的訂單倉儲
type GORMOrderRepository struct {
	db  *gorm.DB
	loc *time.Location
}

// NewOrderRepository 創建訂單倉儲
func NewOrderRepository(db *gorm.DB, opts ...RepositoryOption) order.OrderRepository {
	cfg := newRepositoryConfig(opts)
	return &GORMOrderRepository{db: db, loc: cfg.legacyLocation}
}

// Save 插入新訂單
func (r *GORMOrderRepository) Save(ctx shared.TransactionContext, o *order.Order) error {
	if err := dbFrom(ctx, r.db).Create(orderToGORM(o)).Error; err != nil {
		return classifyError(err)
	}
	return nil
}

// FindByID 根據 ID 查找訂單
func (r *GORMOrderRepository) FindByID(ctx shared.TransactionContext, id order.OrderID) (*order.Order, error) {
	return r.findOne(dbFrom(ctx, r.db), id)
}

// FindByIDForUpdate 查找並鎖定訂單列（SELECT ... FOR UPDATE；SQLite 由事務寫鎖保證）
func (r *GORMOrderRepository) FindByIDForUpdate(ctx shared.TransactionContext, id order.OrderID) (*order.Order, error) {
	return r.findOne(dbFrom(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GORMOrderRepository) findOne(db *gorm.DB, id order.OrderID) (*order.Order, error) {
	var model OrderModel
	if err := db.Where("id = ?", id.String()).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound.WithContext("order_id", id.String())
		}
		return nil, classifyError(err)
	}
	return orderToDomain(&model, r.loc)
}

// Update 更新訂單欄位與狀態（create_time 與 pay_type 不變）
func (r *GORMOrderRepository) Update(ctx shared.TransactionContext, o *order.Order) error {
	model := orderToGORM(o)

	result := dbFrom(ctx, r.db).Model(&OrderModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"order_no":      model.OrderNo,
			"total_price":   model.TotalPrice,
			"prepaid":       model.Prepaid,
			"urgent":        model.Urgent,
			"status":        model.Status,
			"expected_time": model.ExpectedTime,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		return classifyError(result.Error)
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound.WithContext("order_id", model.ID)
	}
	return nil
}

// Delete 刪除訂單
func (r *GORMOrderRepository) Delete(ctx shared.TransactionContext, id order.OrderID) error {
	result := dbFrom(ctx, r.db).Where("id = ?", id.String()).Delete(&OrderModel{})
	if result.Error != nil {
		return classifyError(result.Error)
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound.WithContext("order_id", id.String())
	}
	return nil
}

// FindByCustomerID 客戶的所有訂單
func (r *GORMOrderRepository) FindByCustomerID(ctx shared.TransactionContext, customerID customer.CustomerID) ([]*order.Order, error) {
	return r.find(dbFrom(ctx, r.db).Where("customer_id = ?", customerID.String()), nil)
}

// CountByCustomerID 客戶的訂單數
func (r *GORMOrderRepository) CountByCustomerID(ctx shared.TransactionContext, customerID customer.CustomerID) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&OrderModel{}).
		Where("customer_id = ?", customerID.String()).
		Count(&count).Error
	if err != nil {
		return 0, classifyError(err)
	}
	return count, nil
}

// Scan 全表掃描
func (r *GORMOrderRepository) Scan(ctx shared.TransactionContext, predicate order.Predicate) ([]*order.Order, error) {
	return r.find(dbFrom(ctx, r.db), predicate)
}

func (r *GORMOrderRepository) find(db *gorm.DB, predicate order.Predicate) ([]*order.Order, error) {
	var models []OrderModel
	if err := db.Order("create_time DESC").Find(&models).Error; err != nil {
		return nil, classifyError(err)
	}

	orders := make([]*order.Order, 0, len(models))
	for i := range models {
		o, err := orderToDomain(&models[i], r.loc)
		if err != nil {
			return nil, fmt.Errorf("failed to map order %s: %w", models[i].ID, err)
		}
		if predicate == nil || predicate(o) {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

package persistence

import (
	"errors"
	"fmt"

	"github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ===========================
// GORM CustomerRepository 實作
// ===========================

// GORMCustomerRepository GORM 實作的客戶倉儲
type GORMCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 創建客戶倉儲
func NewCustomerRepository(db *gorm.DB) customer.CustomerRepository {
	return &GORMCustomerRepository{db: db}
}

// Save 插入新客戶
func (r *GORMCustomerRepository) Save(ctx shared.TransactionContext, c *customer.Customer) error {
	db := dbFrom(ctx, r.db)

	if err := db.Create(customerToGORM(c)).Error; err != nil {
		if isUniqueConstraintError(err) {
			return customer.ErrPhoneNumberTaken.WithContext("phone", c.Phone().String())
		}
		return classifyError(err)
	}
	return nil
}

// FindByID 根據 ID 查找客戶
func (r *GORMCustomerRepository) FindByID(ctx shared.TransactionContext, id customer.CustomerID) (*customer.Customer, error) {
	return r.findOne(dbFrom(ctx, r.db), "id = ?", id.String())
}

// FindByIDForUpdate 查找並鎖定客戶列
//
// PostgreSQL 產生 SELECT ... FOR UPDATE；SQLite 忽略 FOR 子句，
// 但它的事務本身就是資料庫層級的寫鎖。
func (r *GORMCustomerRepository) FindByIDForUpdate(ctx shared.TransactionContext, id customer.CustomerID) (*customer.Customer, error) {
	db := dbFrom(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.findOne(db, "id = ?", id.String())
}

// FindByPhone 根據手機號碼查找客戶
func (r *GORMCustomerRepository) FindByPhone(ctx shared.TransactionContext, phone customer.PhoneNumber) (*customer.Customer, error) {
	return r.findOne(dbFrom(ctx, r.db), "phone = ?", phone.String())
}

// Update 以樂觀鎖更新客戶
//
// WHERE version = ExpectedVersion 未命中時，再查一次存在性以區分
// ErrCustomerNotFound 與 shared.ErrConcurrentWrite。
func (r *GORMCustomerRepository) Update(ctx shared.TransactionContext, c *customer.Customer) error {
	db := dbFrom(ctx, r.db)
	model := customerToGORM(c)

	result := db.Model(&CustomerModel{}).
		Where("id = ? AND version = ?", model.ID, c.ExpectedVersion()).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"phone":      model.Phone,
			"wechat":     model.Wechat,
			"balance":    model.Balance,
			"updated_at": model.UpdatedAt,
			"version":    model.Version,
		})
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return customer.ErrPhoneNumberTaken.WithContext("phone", model.Phone)
		}
		return classifyError(result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&CustomerModel{}).Where("id = ?", model.ID).Count(&count).Error; err != nil {
			return classifyError(err)
		}
		if count == 0 {
			return customer.ErrCustomerNotFound.WithContext("customer_id", model.ID)
		}
		return shared.ErrConcurrentWrite.WithContext(
			"customer_id", model.ID,
			"expected_version", c.ExpectedVersion(),
		)
	}

	return nil
}

// Delete 刪除客戶（物理刪除）
func (r *GORMCustomerRepository) Delete(ctx shared.TransactionContext, id customer.CustomerID) error {
	result := dbFrom(ctx, r.db).Where("id = ?", id.String()).Delete(&CustomerModel{})
	if result.Error != nil {
		return classifyError(result.Error)
	}
	if result.RowsAffected == 0 {
		return customer.ErrCustomerNotFound.WithContext("customer_id", id.String())
	}
	return nil
}

// Scan 全表掃描，按建立時間倒序
func (r *GORMCustomerRepository) Scan(ctx shared.TransactionContext, predicate customer.Predicate) ([]*customer.Customer, error) {
	var models []CustomerModel
	if err := dbFrom(ctx, r.db).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, classifyError(err)
	}

	customers := make([]*customer.Customer, 0, len(models))
	for i := range models {
		c, err := customerToDomain(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to map customer %s: %w", models[i].ID, err)
		}
		if predicate == nil || predicate(c) {
			customers = append(customers, c)
		}
	}
	return customers, nil
}

func (r *GORMCustomerRepository) findOne(db *gorm.DB, query string, args ...interface{}) (*customer.Customer, error) {
	var model CustomerModel
	if err := db.Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound.WithContext("query", query, "args", fmt.Sprint(args...))
		}
		return nil, classifyError(err)
	}
	return customerToDomain(&model)
}

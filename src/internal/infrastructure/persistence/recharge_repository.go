package persistence

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/recharge"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"gorm.io/gorm"
)

// GORMRechargeRecordRepository GORM 實作的充值記錄倉儲（只追加）
type GORMRechargeRecordRepository struct {
	db  *gorm.DB
	loc *time.Location
}

// NewRechargeRecordRepository 創建充值記錄倉儲
func NewRechargeRecordRepository(db *gorm.DB, opts ...RepositoryOption) recharge.RechargeRecordRepository {
	cfg := newRepositoryConfig(opts)
	return &GORMRechargeRecordRepository{db: db, loc: cfg.legacyLocation}
}

// Save 追加充值記錄
func (r *GORMRechargeRecordRepository) Save(ctx shared.TransactionContext, record *recharge.RechargeRecord) error {
	if err := dbFrom(ctx, r.db).Create(rechargeToGORM(record)).Error; err != nil {
		return classifyError(err)
	}
	return nil
}

// FindByID 根據 ID 查找
func (r *GORMRechargeRecordRepository) FindByID(ctx shared.TransactionContext, id recharge.RechargeID) (*recharge.RechargeRecord, error) {
	var model RechargeRecordModel
	if err := dbFrom(ctx, r.db).Where("id = ?", id.String()).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recharge.ErrRechargeRecordNotFound.WithContext("recharge_id", id.String())
		}
		return nil, classifyError(err)
	}
	return rechargeToDomain(&model, r.loc)
}

// FindByCustomerID 客戶的充值記錄（新到舊）
func (r *GORMRechargeRecordRepository) FindByCustomerID(ctx shared.TransactionContext, customerID customer.CustomerID) ([]*recharge.RechargeRecord, error) {
	return r.find(dbFrom(ctx, r.db).Where("customer_id = ?", customerID.String()), nil)
}

// CountByCustomerID 客戶的充值記錄數
func (r *GORMRechargeRecordRepository) CountByCustomerID(ctx shared.TransactionContext, customerID customer.CustomerID) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&RechargeRecordModel{}).
		Where("customer_id = ?", customerID.String()).
		Count(&count).Error
	if err != nil {
		return 0, classifyError(err)
	}
	return count, nil
}

// Scan 全表掃描
func (r *GORMRechargeRecordRepository) Scan(ctx shared.TransactionContext, predicate recharge.Predicate) ([]*recharge.RechargeRecord, error) {
	return r.find(dbFrom(ctx, r.db), predicate)
}

func (r *GORMRechargeRecordRepository) find(db *gorm.DB, predicate recharge.Predicate) ([]*recharge.RechargeRecord, error) {
	var models []RechargeRecordModel
	if err := db.Order("create_time DESC").Find(&models).Error; err != nil {
		return nil, classifyError(err)
	}

	records := make([]*recharge.RechargeRecord, 0, len(models))
	for i := range models {
		rec, err := rechargeToDomain(&models[i], r.loc)
		if err != nil {
			return nil, fmt.Errorf("failed to map recharge record %s: %w", models[i].ID, err)
		}
		if predicate == nil || predicate(rec) {
			records = append(records, rec)
		}
	}
	return records, nil
}

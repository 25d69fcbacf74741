package customer

import (
	"fmt"

	domain "github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/order"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/recharge"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
)

// ===========================
// DeleteCustomer Use Case
// ===========================

// DeleteCustomerUseCase 刪除客戶 Use Case 接口
//
// 業務規則：客戶仍有訂單或充值記錄時不能刪除（充值記錄是餘額的稽核依據）。
type DeleteCustomerUseCase interface {
	Execute(customerID string) error
}

// DeleteCustomerUseCaseImpl 刪除客戶 Use Case 實作
type DeleteCustomerUseCaseImpl struct {
	customerRepo domain.CustomerRepository
	orderRepo    order.OrderRepository
	rechargeRepo recharge.RechargeRecordRepository
	txManager    shared.TransactionManager
	locker       shared.KeyedLocker
}

// NewDeleteCustomerUseCase 創建 DeleteCustomerUseCase 實例
func NewDeleteCustomerUseCase(
	customerRepo domain.CustomerRepository,
	orderRepo order.OrderRepository,
	rechargeRepo recharge.RechargeRecordRepository,
	txManager shared.TransactionManager,
	locker shared.KeyedLocker,
) DeleteCustomerUseCase {
	return &DeleteCustomerUseCaseImpl{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		rechargeRepo: rechargeRepo,
		txManager:    txManager,
		locker:       locker,
	}
}

// Execute 執行刪除
//
// 錯誤：
// - ErrCustomerNotFound
// - ErrCustomerHasDependents（KindConflict）
func (uc *DeleteCustomerUseCaseImpl) Execute(customerIDStr string) error {
	customerID, err := domain.CustomerIDFromString(customerIDStr)
	if err != nil {
		return err
	}

	return uc.locker.WithLock(customerID.String(), func() error {
		return uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
			if _, err := uc.customerRepo.FindByIDForUpdate(ctx, customerID); err != nil {
				return err
			}

			orders, err := uc.orderRepo.CountByCustomerID(ctx, customerID)
			if err != nil {
				return fmt.Errorf("failed to count orders: %w", err)
			}
			records, err := uc.rechargeRepo.CountByCustomerID(ctx, customerID)
			if err != nil {
				return fmt.Errorf("failed to count recharge records: %w", err)
			}
			if orders > 0 || records > 0 {
				return domain.ErrCustomerHasDependents.WithContext(
					"customer_id", customerID.String(),
					"orders", orders,
					"recharge_records", records,
				)
			}

			return uc.customerRepo.Delete(ctx, customerID)
		})
	})
}

package customer

import (
	"fmt"

	domain "github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
)

// ===========================
// UpdateCustomer Use Case
// ===========================

// UpdateCustomerCommand 修改客戶資料指令
//
// 不含餘額：餘額只能透過充值、訂單或 ledger.Service.SetBalance 改變。
type UpdateCustomerCommand struct {
	CustomerID string
	Name       string
	Phone      string
	Wechat     string
}

// UpdateCustomerUseCase 修改客戶資料 Use Case 接口
type UpdateCustomerUseCase interface {
	Execute(cmd UpdateCustomerCommand) (*CustomerResult, error)
}

// UpdateCustomerUseCaseImpl 修改客戶資料 Use Case 實作
//
// 持有客戶鎖：Update 會寫回整列（包含餘額與 version），不能與結算流程交錯。
type UpdateCustomerUseCaseImpl struct {
	customerRepo domain.CustomerRepository
	txManager    shared.TransactionManager
	locker       shared.KeyedLocker
}

// NewUpdateCustomerUseCase 創建 UpdateCustomerUseCase 實例
func NewUpdateCustomerUseCase(
	customerRepo domain.CustomerRepository,
	txManager shared.TransactionManager,
	locker shared.KeyedLocker,
) UpdateCustomerUseCase {
	return &UpdateCustomerUseCaseImpl{
		customerRepo: customerRepo,
		txManager:    txManager,
		locker:       locker,
	}
}

// Execute 執行修改
//
// 錯誤：ErrCustomerNotFound、ErrPhoneNumberTaken、格式錯誤
func (uc *UpdateCustomerUseCaseImpl) Execute(cmd UpdateCustomerCommand) (*CustomerResult, error) {
	customerID, err := domain.CustomerIDFromString(cmd.CustomerID)
	if err != nil {
		return nil, err
	}
	phone, err := domain.NewPhoneNumber(cmd.Phone)
	if err != nil {
		return nil, err
	}
	wechat, err := domain.NewWechatID(cmd.Wechat)
	if err != nil {
		return nil, err
	}

	var updated *domain.Customer

	err = uc.locker.WithLock(customerID.String(), func() error {
		return uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
			c, err := uc.customerRepo.FindByIDForUpdate(ctx, customerID)
			if err != nil {
				return err
			}
			if err := ensurePhoneAvailable(ctx, uc.customerRepo, phone, customerID); err != nil {
				return err
			}
			if err := c.UpdateProfile(cmd.Name, phone, wechat); err != nil {
				return err
			}
			if err := uc.customerRepo.Update(ctx, c); err != nil {
				return fmt.Errorf("failed to update customer: %w", err)
			}
			updated = c
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return toResult(updated), nil
}

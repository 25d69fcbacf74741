package customer

import (
	domain "github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
)

// ===========================
// RegisterCustomer Use Case
// ===========================

// RegisterCustomerCommand 客戶建檔指令（Input DTO）
//
// 使用原始類型，由 Use Case 轉換為 Value Object。
type RegisterCustomerCommand struct {
	Name   string // 姓名（必填）
	Phone  string // 手機號碼（11 位，1 開頭）
	Wechat string // 微信號（選填）
}

// RegisterCustomerUseCase 客戶建檔 Use Case 接口
//
// 業務規則：
// 1. 手機號碼不能重複
// 2. 姓名不能為空
// 3. 初始餘額為 0（開卡充值請用 settlement.Engine.CreateCustomerWithRecharge）
type RegisterCustomerUseCase interface {
	Execute(cmd RegisterCustomerCommand) (*CustomerResult, error)
}

// RegisterCustomerUseCaseImpl 客戶建檔 Use Case 實作
type RegisterCustomerUseCaseImpl struct {
	customerRepo domain.CustomerRepository
	txManager    shared.TransactionManager
	publisher    shared.EventPublisher
}

// NewRegisterCustomerUseCase 創建 RegisterCustomerUseCase 實例
func NewRegisterCustomerUseCase(
	customerRepo domain.CustomerRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
) RegisterCustomerUseCase {
	return &RegisterCustomerUseCaseImpl{
		customerRepo: customerRepo,
		txManager:    txManager,
		publisher:    publisher,
	}
}

// Execute 執行客戶建檔
//
// 業務流程：
// 1. 驗證輸入並轉換為 Value Object
// 2. 在事務中執行：
//    a. 檢查手機號碼是否已被使用
//    b. 創建 Customer 聚合
//    c. 保存到資料庫
// 3. 發布 CustomerRegistered 事件
//
// 錯誤處理：
// - 輸入驗證失敗 → ErrInvalidPhoneNumberFormat / ErrInvalidWechatID / ErrInvalidCustomerName
// - 手機號碼已存在 → ErrPhoneNumberTaken
func (uc *RegisterCustomerUseCaseImpl) Execute(cmd RegisterCustomerCommand) (*CustomerResult, error) {
	// Step 1: 驗證輸入並轉換為 Value Object
	phone, err := domain.NewPhoneNumber(cmd.Phone)
	if err != nil {
		return nil, err
	}

	wechat, err := domain.NewWechatID(cmd.Wechat)
	if err != nil {
		return nil, err
	}

	// Step 2: 在事務中執行業務邏輯
	var created *domain.Customer

	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		// 2a. 檢查手機號碼是否已被使用
		if err := ensurePhoneAvailable(ctx, uc.customerRepo, phone, domain.CustomerID{}); err != nil {
			return err
		}

		// 2b. 創建 Customer 聚合
		created, err = domain.NewCustomer(cmd.Name, phone, wechat)
		if err != nil {
			return err
		}

		// 2c. 保存到資料庫
		return uc.customerRepo.Save(ctx, created)
	})

	if err != nil {
		return nil, err
	}

	// Step 3: 發布事件（資料已提交，失敗不影響結果）
	_ = uc.publisher.PublishBatch(created.PullEvents())

	return toResult(created), nil
}

// ensurePhoneAvailable 手機號碼未被其他客戶使用（self 為自己時允許）
func ensurePhoneAvailable(
	ctx shared.TransactionContext,
	repo domain.CustomerRepository,
	phone domain.PhoneNumber,
	self domain.CustomerID,
) error {
	existing, err := repo.FindByPhone(ctx, phone)
	if err != nil {
		if shared.IsKind(err, shared.KindNotFound) {
			return nil
		}
		return err
	}
	if !self.IsEmpty() && existing.CustomerID().Equals(self) {
		return nil
	}
	return domain.ErrPhoneNumberTaken.WithContext("phone", phone.String())
}

package ledger

import (
	"fmt"

	"github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ===========================
// Balance Ledger
// ===========================

// Service 儲值餘額帳本
//
// 客戶餘額只能透過這裡改變。每一次讀-改-寫：
// 1. 持有客戶鎖（KeyedLocker，以客戶 ID 為 key）
// 2. 在單一事務中以 FindByIDForUpdate 讀取客戶列
// 3. 以 ExpectedVersion 做樂觀鎖更新
//
// 任何一層失敗都不會留下部分寫入；兩個請求同時扣款時最多一個成功。
type Service struct {
	customers customer.CustomerRepository
	txManager shared.TransactionManager
	locker    shared.KeyedLocker
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewService 創建帳本服務
func NewService(
	customers customer.CustomerRepository,
	txManager shared.TransactionManager,
	locker shared.KeyedLocker,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		customers: customers,
		txManager: txManager,
		locker:    locker,
		publisher: publisher,
		logger:    logger.Named("ledger"),
	}
}

// BalanceResult 餘額變動結果
type BalanceResult struct {
	CustomerID string
	Balance    shared.Money
}

// Credit 入帳
//
// 錯誤：
// - shared.ErrNegativeMoney / shared.ErrMoneyScale（KindInvalidArgument）
// - ErrCustomerNotFound
// - shared.ErrConcurrentWrite / shared.ErrLockUnavailable（KindConflict）
//
// 零金額為 no-op，仍然成功並返回目前餘額。
func (s *Service) Credit(
	customerID customer.CustomerID,
	value decimal.Decimal,
	source customer.CreditSource,
	sourceID string,
) (*BalanceResult, error) {
	amount, err := shared.NewCentMoney(value)
	if err != nil {
		return nil, err
	}
	return s.mutate(customerID, func(ctx shared.TransactionContext) (*customer.Customer, error) {
		return s.CreditWithinTx(ctx, customerID, amount, source, sourceID)
	})
}

// Debit 扣款
//
// 錯誤：
// - shared.ErrNegativeMoney
// - ErrCustomerNotFound
// - ErrInsufficientBalance（訊息包含目前餘額與所需金額，餘額不變）
// - shared.ErrConcurrentWrite / shared.ErrLockUnavailable
func (s *Service) Debit(
	customerID customer.CustomerID,
	value decimal.Decimal,
	source customer.DebitSource,
	sourceID string,
) (*BalanceResult, error) {
	amount, err := shared.NewCentMoney(value)
	if err != nil {
		return nil, err
	}
	return s.mutate(customerID, func(ctx shared.TransactionContext) (*customer.Customer, error) {
		return s.DebitWithinTx(ctx, customerID, amount, source, sourceID)
	})
}

// SetBalance 管理員直接改寫餘額
//
// 不經過充值記錄或訂單，只用於人工修正；以 WARN 記錄新舊餘額。
// 負數返回 shared.ErrNegativeMoney，超過兩位小數返回 shared.ErrMoneyScale。
func (s *Service) SetBalance(customerID customer.CustomerID, value decimal.Decimal, reason string) (*BalanceResult, error) {
	newBalance, err := shared.NewCentMoney(value)
	if err != nil {
		return nil, err
	}

	var oldBalance shared.Money

	result, err := s.mutate(customerID, func(ctx shared.TransactionContext) (*customer.Customer, error) {
		c, err := s.customers.FindByIDForUpdate(ctx, customerID)
		if err != nil {
			return nil, err
		}
		oldBalance = c.Balance()
		c.OverwriteBalance(newBalance, reason)
		if err := s.customers.Update(ctx, c); err != nil {
			return nil, fmt.Errorf("failed to update customer: %w", err)
		}
		return c, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Warn("balance overwritten",
		zap.String("customer_id", customerID.String()),
		zap.String("old_balance", oldBalance.String()),
		zap.String("new_balance", newBalance.String()),
		zap.String("reason", reason),
	)
	return result, nil
}

// Balance 查詢目前餘額
func (s *Service) Balance(customerID customer.CustomerID) (*BalanceResult, error) {
	c, err := s.customers.FindByID(nil, customerID)
	if err != nil {
		return nil, err
	}
	return &BalanceResult{CustomerID: customerID.String(), Balance: c.Balance()}, nil
}

// ===========================
// 事務內組合用的方法
// ===========================
//
// 呼叫者必須已持有客戶鎖並開啟事務；事件留在聚合上，由呼叫者在提交後發布。

// CreditWithinTx 在呼叫者的事務中入帳
func (s *Service) CreditWithinTx(
	ctx shared.TransactionContext,
	customerID customer.CustomerID,
	amount shared.Money,
	source customer.CreditSource,
	sourceID string,
) (*customer.Customer, error) {
	c, err := s.customers.FindByIDForUpdate(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := s.ApplyCredit(ctx, c, amount, source, sourceID); err != nil {
		return nil, err
	}
	return c, nil
}

// DebitWithinTx 在呼叫者的事務中扣款
func (s *Service) DebitWithinTx(
	ctx shared.TransactionContext,
	customerID customer.CustomerID,
	amount shared.Money,
	source customer.DebitSource,
	sourceID string,
) (*customer.Customer, error) {
	c, err := s.customers.FindByIDForUpdate(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := s.ApplyDebit(ctx, c, amount, source, sourceID); err != nil {
		return nil, err
	}
	return c, nil
}

// ApplyCredit 對已鎖定載入的客戶入帳並寫回
func (s *Service) ApplyCredit(
	ctx shared.TransactionContext,
	c *customer.Customer,
	amount shared.Money,
	source customer.CreditSource,
	sourceID string,
) error {
	if amount.IsZero() {
		return nil
	}
	c.Credit(amount, source, sourceID)
	if err := s.customers.Update(ctx, c); err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return nil
}

// ApplyDebit 對已鎖定載入的客戶扣款並寫回
func (s *Service) ApplyDebit(
	ctx shared.TransactionContext,
	c *customer.Customer,
	amount shared.Money,
	source customer.DebitSource,
	sourceID string,
) error {
	if err := c.Debit(amount, source, sourceID); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}
	if err := s.customers.Update(ctx, c); err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return nil
}

// Publish 發布聚合上累積的事件；失敗只記錄日誌（資料已提交）
func (s *Service) Publish(events []shared.DomainEvent) {
	if len(events) == 0 {
		return
	}
	if err := s.publisher.PublishBatch(events); err != nil {
		s.logger.Error("failed to publish domain events", zap.Int("count", len(events)), zap.Error(err))
	}
}

// WithCustomerLock 以客戶鎖包住 fn（供結算引擎組合多步寫入）
func (s *Service) WithCustomerLock(customerID customer.CustomerID, fn func() error) error {
	return s.locker.WithLock(customerID.String(), fn)
}

func (s *Service) mutate(
	customerID customer.CustomerID,
	fn func(ctx shared.TransactionContext) (*customer.Customer, error),
) (*BalanceResult, error) {
	var updated *customer.Customer

	err := s.WithCustomerLock(customerID, func() error {
		return s.txManager.InTransaction(func(ctx shared.TransactionContext) error {
			c, err := fn(ctx)
			if err != nil {
				return err
			}
			updated = c
			return nil
		})
	})
	if err != nil {
		s.logger.Debug("balance mutation rejected",
			zap.String("customer_id", customerID.String()),
			zap.String("kind", string(shared.KindOf(err))),
			zap.Error(err),
		)
		return nil, err
	}

	s.Publish(updated.PullEvents())

	return &BalanceResult{
		CustomerID: customerID.String(),
		Balance:    updated.Balance(),
	}, nil
}

package settlement

import (
	"github.com/jackyeh168/laundry_crm/src/internal/application/ledger"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/order"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/recharge"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"go.uber.org/zap"
)

// ===========================
// Settlement Engine
// ===========================

// Engine 訂單結算引擎
//
// 職責：
// 1. 建立訂單（PREPAID 訂單扣款與寫入訂單同成同敗）
// 2. 充值（入帳 本金+贈送 與追加充值記錄同成同敗）
// 3. 櫃檯直接扣款、開卡充值
// 4. 訂單、衣物的維護（不產生金流，取消未完成的儲值訂單除外）
//
// 所有改變餘額的流程都持有客戶鎖，並在單一事務中完成。
// 事件在事務提交後發布。
type Engine struct {
	customers customer.CustomerRepository
	orders    order.OrderRepository
	clothes   order.ClothesRepository
	recharges recharge.RechargeRecordRepository
	ledger    *ledger.Service
	txManager shared.TransactionManager
	gifts     *recharge.GiftTierCalculator
	logger    *zap.Logger
}

// NewEngine 創建結算引擎
func NewEngine(
	customers customer.CustomerRepository,
	orders order.OrderRepository,
	clothes order.ClothesRepository,
	recharges recharge.RechargeRecordRepository,
	ledgerService *ledger.Service,
	txManager shared.TransactionManager,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		customers: customers,
		orders:    orders,
		clothes:   clothes,
		recharges: recharges,
		ledger:    ledgerService,
		txManager: txManager,
		gifts:     recharge.NewGiftTierCalculator(),
		logger:    logger.Named("settlement"),
	}
}

// inCustomerTx 持有客戶鎖並開啟事務執行 fn
func (e *Engine) inCustomerTx(customerID customer.CustomerID, fn func(ctx shared.TransactionContext) error) error {
	return e.ledger.WithCustomerLock(customerID, func() error {
		return e.txManager.InTransaction(fn)
	})
}

// publish 提交後發布各聚合累積的事件
func (e *Engine) publish(batches ...[]shared.DomainEvent) {
	var all []shared.DomainEvent
	for _, batch := range batches {
		all = append(all, batch...)
	}
	e.ledger.Publish(all)
}

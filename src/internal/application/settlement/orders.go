package settlement

import (
	"fmt"
	"strings"

	"github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/order"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"go.uber.org/zap"
)

// ===========================
// UpdateOrder / UpdateOrderStatus
// ===========================

// UpdateOrder 修改訂單欄位
//
// 不產生金流：修改 PREPAID 訂單的 totalPrice 不會補扣或退款。
//
// 錯誤：order.ErrOrderNotFound、order.ErrEmptyOrderNo、order.ErrInvalidTotalPrice
func (e *Engine) UpdateOrder(cmd UpdateOrderCommand) (*OrderResult, error) {
	orderID, err := order.OrderIDFromString(cmd.OrderID)
	if err != nil {
		return nil, err
	}
	totalPrice, err := positiveTotalPrice(cmd.TotalPrice)
	if err != nil {
		return nil, err
	}
	prepaid, err := shared.NewCentMoney(cmd.Prepaid)
	if err != nil {
		return nil, err
	}

	var updated *order.Order
	err = e.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		o, err := e.orders.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := o.UpdateDetails(order.Details{
			OrderNo:      cmd.OrderNo,
			TotalPrice:   totalPrice,
			Prepaid:      prepaid,
			Urgent:       cmd.Urgent,
			ExpectedTime: cmd.ExpectedTime,
		}); err != nil {
			return err
		}
		if err := e.orders.Update(ctx, o); err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := toOrderResult(updated)
	return &result, nil
}

// UpdateOrderStatus 修改訂單狀態
//
// 錯誤：
// - order.ErrInvalidOrderStatus: 不在狀態列舉中（包含空字串）
// - order.ErrOrderNotFound
// - order.ErrOrderFinished: FINISHED 為終態
func (e *Engine) UpdateOrderStatus(cmd UpdateOrderStatusCommand) (*OrderResult, error) {
	if strings.TrimSpace(cmd.Status) == "" {
		return nil, order.ErrInvalidOrderStatus.WithContext("status", cmd.Status)
	}
	status, err := order.ParseOrderStatus(cmd.Status)
	if err != nil {
		return nil, err
	}
	orderID, err := order.OrderIDFromString(cmd.OrderID)
	if err != nil {
		return nil, err
	}

	var updated *order.Order
	err = e.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		// 鎖定訂單列：與 CancelOrder 互斥
		o, err := e.orders.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := o.ChangeStatus(status); err != nil {
			return err
		}
		if err := e.orders.Update(ctx, o); err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.publish(updated.PullEvents())

	result := toOrderResult(updated)
	return &result, nil
}

// ===========================
// CancelOrder
// ===========================

// CancelOrder 取消訂單：刪除訂單與衣物明細
//
// 未完成的 PREPAID 訂單在同一事務中把 totalPrice 退回客戶餘額（持有客戶鎖）。
//
// 錯誤：
// - order.ErrOrderNotFound
// - order.ErrOrderFinished: 已完成的訂單不能取消
func (e *Engine) CancelOrder(orderIDStr string) (*CancelOrderResult, error) {
	orderID, err := order.OrderIDFromString(orderIDStr)
	if err != nil {
		return nil, err
	}

	existing, err := e.orders.FindByID(nil, orderID)
	if err != nil {
		return nil, err
	}
	if err := existing.EnsureCancellable(); err != nil {
		return nil, err
	}
	customerID := existing.CustomerID()

	var (
		refunded *customer.Customer
		refund   shared.Money
		removed  int64
	)

	err = e.inCustomerTx(customerID, func(ctx shared.TransactionContext) error {
		// 鎖定訂單列後重新檢查：狀態修改與新增衣物都必須等本事務結束
		o, err := e.orders.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := o.EnsureCancellable(); err != nil {
			return err
		}

		removed, err = e.clothes.DeleteByOrderID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("failed to delete clothes: %w", err)
		}
		if err := e.orders.Delete(ctx, orderID); err != nil {
			return err
		}

		refund = o.RefundAmount()
		if refund.IsPositive() {
			refunded, err = e.ledger.CreditWithinTx(ctx, customerID, refund, customer.CreditSourceRefund, orderID.String())
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if refunded != nil {
		e.publish(refunded.PullEvents())
	}
	e.logger.Info("order cancelled",
		zap.String("order_id", orderID.String()),
		zap.String("customer_id", customerID.String()),
		zap.String("refunded", refund.String()),
		zap.Int64("clothes_removed", removed),
	)

	return &CancelOrderResult{
		OrderID:        orderID.String(),
		CustomerID:     customerID.String(),
		Refunded:       refund.Decimal(),
		ClothesRemoved: removed,
	}, nil
}

// ===========================
// 查詢
// ===========================

// GetOrder 查詢訂單與衣物明細
func (e *Engine) GetOrder(orderIDStr string) (*OrderDetailResult, error) {
	orderID, err := order.OrderIDFromString(orderIDStr)
	if err != nil {
		return nil, err
	}

	o, err := e.orders.FindByID(nil, orderID)
	if err != nil {
		return nil, err
	}
	items, err := e.clothes.FindByOrderID(nil, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clothes: %w", err)
	}

	return &OrderDetailResult{
		Order:   toOrderResult(o),
		Clothes: toClothesResults(items),
	}, nil
}

// ListOrders 查詢訂單（可依客戶、狀態過濾），按建立時間倒序
func (e *Engine) ListOrders(query ListOrdersQuery) ([]OrderResult, error) {
	var predicates []order.Predicate

	if query.CustomerID != "" {
		customerID, err := customer.CustomerIDFromString(query.CustomerID)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, func(o *order.Order) bool {
			return o.CustomerID().Equals(customerID)
		})
	}
	if query.Status != "" {
		status, err := order.ParseOrderStatus(query.Status)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, func(o *order.Order) bool {
			return o.Status() == status
		})
	}

	orders, err := e.orders.Scan(nil, func(o *order.Order) bool {
		for _, p := range predicates {
			if !p(o) {
				return false
			}
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	results := make([]OrderResult, 0, len(orders))
	for _, o := range orders {
		results = append(results, toOrderResult(o))
	}
	return results, nil
}

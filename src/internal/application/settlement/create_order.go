package settlement

import (
	"fmt"

	"github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/order"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ===========================
// CreateOrder
// ===========================

// CreateOrder 建立訂單
//
// 驗證順序（第一個失敗的條件決定返回的錯誤）：
// 1. orderNo 非空           → order.ErrEmptyOrderNo
// 2. 客戶存在               → customer.ErrCustomerNotFound
// 3. totalPrice > 0         → order.ErrInvalidTotalPrice
// 4. PREPAID 時餘額足夠     → customer.ErrInsufficientBalance（訊息含目前餘額與所需金額）
//
// 兩種支付方式都持有客戶鎖並鎖定客戶列，避免與刪除客戶交錯而留下孤兒訂單。
// PREPAID：在同一事務中扣款並寫入訂單。
// CASH：只寫入訂單，不碰餘額。
// 附帶的衣物明細與訂單在同一事務寫入。
func (e *Engine) CreateOrder(cmd CreateOrderCommand) (*CreateOrderResult, error) {
	// Step 1: orderNo
	if err := order.ValidateOrderNo(cmd.OrderNo); err != nil {
		return nil, err
	}

	// Step 2: 輸入轉換為 Value Object
	customerID, err := customer.CustomerIDFromString(cmd.CustomerID)
	if err != nil {
		return nil, err
	}
	payType, err := order.ParsePayType(cmd.PayType)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseOrderStatus(cmd.Status)
	if err != nil {
		return nil, err
	}
	prepaid, err := shared.NewCentMoney(cmd.Prepaid)
	if err != nil {
		return nil, err
	}
	clothesDetails, err := toClothesDetailsList(cmd.Clothes)
	if err != nil {
		return nil, err
	}

	var (
		payer   *customer.Customer
		created *order.Order
		items   []*order.Clothes
	)

	settle := func(ctx shared.TransactionContext) error {
		// Step 3: 客戶存在（鎖定客戶列）
		var err error
		payer, err = e.customers.FindByIDForUpdate(ctx, customerID)
		if err != nil {
			return err
		}

		// Step 4: totalPrice > 0
		totalPrice, err := positiveTotalPrice(cmd.TotalPrice)
		if err != nil {
			return err
		}

		// Step 5: 餘額檢查
		if payType == order.PayTypePrepaid {
			if err := payer.EnsureCanPay(totalPrice); err != nil {
				return err
			}
		}

		// Step 6: 建立訂單，PREPAID 扣款
		created, err = order.NewOrder(customerID, payType, status, order.Details{
			OrderNo:      cmd.OrderNo,
			TotalPrice:   totalPrice,
			Prepaid:      prepaid,
			Urgent:       cmd.Urgent,
			ExpectedTime: cmd.ExpectedTime,
		})
		if err != nil {
			return err
		}

		if payType == order.PayTypePrepaid {
			if err := e.ledger.ApplyDebit(ctx, payer, totalPrice, customer.DebitSourceOrder, created.OrderID().String()); err != nil {
				return err
			}
		}

		if err := e.orders.Save(ctx, created); err != nil {
			return fmt.Errorf("failed to save order: %w", err)
		}

		// Step 7: 衣物明細
		items = make([]*order.Clothes, 0, len(clothesDetails))
		for _, d := range clothesDetails {
			c, err := order.NewClothes(created.OrderID(), d)
			if err != nil {
				return err
			}
			if err := e.clothes.Save(ctx, c); err != nil {
				return fmt.Errorf("failed to save clothes: %w", err)
			}
			items = append(items, c)
		}
		return nil
	}

	if err := e.inCustomerTx(customerID, settle); err != nil {
		return nil, err
	}

	e.publish(payer.PullEvents(), created.PullEvents())
	e.logger.Info("order created",
		zap.String("order_id", created.OrderID().String()),
		zap.String("customer_id", customerID.String()),
		zap.String("pay_type", string(payType)),
		zap.String("total_price", created.TotalPrice().String()),
		zap.String("balance", payer.Balance().String()),
	)

	return &CreateOrderResult{
		Order:   toOrderResult(created),
		Clothes: toClothesResults(items),
		Balance: payer.Balance().Decimal(),
	}, nil
}

func positiveTotalPrice(value decimal.Decimal) (shared.Money, error) {
	if !value.IsPositive() {
		return shared.Money{}, order.ErrInvalidTotalPrice.WithContext("total_price", value.String())
	}
	return shared.NewCentMoney(value)
}

func toClothesDetails(in ClothesInput) (order.ClothesDetails, error) {
	price, err := shared.NewCentMoney(in.Price)
	if err != nil {
		return order.ClothesDetails{}, err
	}
	return order.ClothesDetails{
		Type:         in.Type,
		Price:        price,
		DamageRemark: in.DamageRemark,
		DamageImage:  in.DamageImage,
	}, nil
}

func toClothesDetailsList(inputs []ClothesInput) ([]order.ClothesDetails, error) {
	details := make([]order.ClothesDetails, 0, len(inputs))
	for _, in := range inputs {
		d, err := toClothesDetails(in)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

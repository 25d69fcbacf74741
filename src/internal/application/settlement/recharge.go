package settlement

import (
	"fmt"

	"github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/recharge"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// hundred 開卡充值的金額單位
var hundred = decimal.NewFromInt(100)

// ===========================
// Recharge
// ===========================

// Recharge 儲值充值
//
// 業務流程（持有客戶鎖，單一事務）：
// 1. 鎖定客戶列
// 2. 依 GiftTier 計算贈送金額，建立充值記錄
// 3. 入帳 本金 + 贈送
// 4. 追加充值記錄
//
// 錯誤：
// - recharge.ErrInvalidRechargeAmount: amount <= 0
// - customer.ErrCustomerNotFound
func (e *Engine) Recharge(cmd RechargeCommand) (*RechargeResult, error) {
	if !cmd.Amount.IsPositive() {
		return nil, recharge.ErrInvalidRechargeAmount.WithContext("amount", cmd.Amount.String())
	}
	amount, err := shared.NewCentMoney(cmd.Amount)
	if err != nil {
		return nil, err
	}
	customerID, err := customer.CustomerIDFromString(cmd.CustomerID)
	if err != nil {
		return nil, err
	}

	var (
		payer  *customer.Customer
		record *recharge.RechargeRecord
	)

	err = e.inCustomerTx(customerID, func(ctx shared.TransactionContext) error {
		var err error
		payer, err = e.customers.FindByIDForUpdate(ctx, customerID)
		if err != nil {
			return err
		}

		record, err = recharge.NewRechargeRecord(customerID, amount, e.gifts)
		if err != nil {
			return err
		}

		if err := e.ledger.ApplyCredit(ctx, payer, record.TotalCredit(), customer.CreditSourceRecharge, record.RechargeID().String()); err != nil {
			return err
		}

		if err := e.recharges.Save(ctx, record); err != nil {
			return fmt.Errorf("failed to save recharge record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.publish(payer.PullEvents())
	e.logger.Info("customer recharged",
		zap.String("customer_id", customerID.String()),
		zap.String("recharge_id", record.RechargeID().String()),
		zap.String("amount", record.RechargeAmount().String()),
		zap.String("gift", record.GiftAmount().String()),
		zap.String("balance", payer.Balance().String()),
	)

	result := toRechargeResult(record)
	result.Balance = payer.Balance().Decimal()
	return &result, nil
}

// ===========================
// PayWithPrepaid
// ===========================

// PayWithPrepaid 櫃檯直接以儲值餘額扣款（不建立訂單）
//
// 錯誤：
// - customer.ErrInvalidAmount: amount <= 0
// - customer.ErrCustomerNotFound
// - customer.ErrInsufficientBalance（訊息含目前餘額）
func (e *Engine) PayWithPrepaid(cmd PayWithPrepaidCommand) (*PaymentResult, error) {
	if !cmd.Amount.IsPositive() {
		return nil, customer.ErrInvalidAmount.WithContext("amount", cmd.Amount.String())
	}
	customerID, err := customer.CustomerIDFromString(cmd.CustomerID)
	if err != nil {
		return nil, err
	}

	balance, err := e.ledger.Debit(customerID, cmd.Amount, customer.DebitSourceDirectPay, "")
	if err != nil {
		return nil, err
	}

	e.logger.Info("prepaid payment",
		zap.String("customer_id", customerID.String()),
		zap.String("amount", cmd.Amount.String()),
		zap.String("balance", balance.Balance.String()),
	)

	return &PaymentResult{
		CustomerID: balance.CustomerID,
		Amount:     cmd.Amount,
		Balance:    balance.Balance.Decimal(),
	}, nil
}

// ===========================
// CreateCustomerWithRecharge
// ===========================

// CreateCustomerWithRecharge 開卡並充值
//
// 寫入前的檢查：
// - 金額為負 → recharge.ErrInvalidRechargeAmount
// - 金額 > 0 且不是 100 的整數倍 → recharge.ErrRechargeNotMultipleOf100
// - 姓名、手機號碼、微信號格式
//
// 單一事務：建立客戶（餘額 0）→ 入帳 本金+贈送 → 寫入客戶 → 追加充值記錄。
// 金額為 0 時只建檔。
func (e *Engine) CreateCustomerWithRecharge(cmd CreateCustomerWithRechargeCommand) (*CustomerWithRechargeResult, error) {
	// Step 1: 金額檢查（任何寫入之前）
	if cmd.RechargeAmount.IsNegative() {
		return nil, recharge.ErrInvalidRechargeAmount.WithContext("amount", cmd.RechargeAmount.String())
	}
	amount, err := shared.NewCentMoney(cmd.RechargeAmount)
	if err != nil {
		return nil, err
	}
	if amount.IsPositive() && !amount.IsMultipleOf(hundred) {
		return nil, recharge.ErrRechargeNotMultipleOf100.WithContext("amount", amount.String())
	}

	// Step 2: 輸入轉換為 Value Object
	phone, err := customer.NewPhoneNumber(cmd.Phone)
	if err != nil {
		return nil, err
	}
	wechat, err := customer.NewWechatID(cmd.Wechat)
	if err != nil {
		return nil, err
	}

	// Step 3: 建立聚合
	created, err := customer.NewCustomer(cmd.Name, phone, wechat)
	if err != nil {
		return nil, err
	}

	var record *recharge.RechargeRecord
	if amount.IsPositive() {
		record, err = recharge.NewRechargeRecord(created.CustomerID(), amount, e.gifts)
		if err != nil {
			return nil, err
		}
		created.Credit(record.TotalCredit(), customer.CreditSourceRecharge, record.RechargeID().String())
	}

	// Step 4: 單一事務寫入
	err = e.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		if _, err := e.customers.FindByPhone(ctx, phone); err == nil {
			return customer.ErrPhoneNumberTaken.WithContext("phone", phone.String())
		} else if !shared.IsKind(err, shared.KindNotFound) {
			return err
		}

		if err := e.customers.Save(ctx, created); err != nil {
			return err
		}
		if record != nil {
			if err := e.recharges.Save(ctx, record); err != nil {
				return fmt.Errorf("failed to save recharge record: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.publish(created.PullEvents())
	e.logger.Info("customer created with recharge",
		zap.String("customer_id", created.CustomerID().String()),
		zap.String("amount", amount.String()),
		zap.String("balance", created.Balance().String()),
	)

	result := &CustomerWithRechargeResult{
		CustomerID: created.CustomerID().String(),
		Name:       created.Name(),
		Phone:      created.Phone().String(),
		Wechat:     created.Wechat().String(),
		Balance:    created.Balance().Decimal(),
	}
	if record != nil {
		r := toRechargeResult(record)
		r.Balance = created.Balance().Decimal()
		result.Recharge = &r
	}
	return result, nil
}

// ===========================
// ListRechargeRecords
// ===========================

// ListRechargeRecords 客戶的充值記錄（按建立時間倒序）
//
// 錯誤：customer.ErrCustomerNotFound
func (e *Engine) ListRechargeRecords(customerIDStr string) ([]RechargeResult, error) {
	customerID, err := customer.CustomerIDFromString(customerIDStr)
	if err != nil {
		return nil, err
	}
	if _, err := e.customers.FindByID(nil, customerID); err != nil {
		return nil, err
	}

	records, err := e.recharges.FindByCustomerID(nil, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recharge records: %w", err)
	}

	results := make([]RechargeResult, 0, len(records))
	for _, r := range records {
		results = append(results, toRechargeResult(r))
	}
	return results, nil
}

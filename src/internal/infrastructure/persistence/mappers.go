package persistence

import (
	"time"

	"github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/order"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/recharge"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
)

// ===========================
// Domain ↔ GORM Model 轉換函數
// ===========================
//
// toDomain 方向會驗證資料庫內容：違反不變條件時返回錯誤而不是 panic。

func customerToDomain(m *CustomerModel) (*customer.Customer, error) {
	id, err := customer.CustomerIDFromString(m.ID)
	if err != nil {
		return nil, err
	}

	phone, err := customer.NewPhoneNumber(m.Phone)
	if err != nil {
		return nil, err
	}

	wechat, err := customer.NewWechatID(m.Wechat)
	if err != nil {
		return nil, err
	}

	balance, err := shared.NewMoney(m.Balance.Decimal)
	if err != nil {
		return nil, customer.ErrCorruptedBalance.WithContext(
			"customer_id", m.ID,
			"balance", m.Balance.String(),
		)
	}

	return customer.ReconstructCustomer(
		id,
		m.Name,
		phone,
		wechat,
		balance,
		m.CreatedAt,
		m.UpdatedAt,
		m.Version,
	)
}

func customerToGORM(c *customer.Customer) *CustomerModel {
	return &CustomerModel{
		ID:        c.CustomerID().String(),
		Name:      c.Name(),
		Phone:     c.Phone().String(),
		Wechat:    c.Wechat().String(),
		Balance:   NewAmount(c.Balance().Decimal()),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
		Version:   c.Version(),
	}
}

func orderToDomain(m *OrderModel, loc *time.Location) (*order.Order, error) {
	id, err := order.OrderIDFromString(m.ID)
	if err != nil {
		return nil, err
	}

	customerID, err := customer.CustomerIDFromString(m.CustomerID)
	if err != nil {
		return nil, err
	}

	totalPrice, err := shared.NewMoney(m.TotalPrice.Decimal)
	if err != nil {
		return nil, order.ErrCorruptedOrder.WithContext("order_id", m.ID, "total_price", m.TotalPrice.String())
	}

	prepaid, err := shared.NewMoney(m.Prepaid.Decimal)
	if err != nil {
		return nil, order.ErrCorruptedOrder.WithContext("order_id", m.ID, "prepaid", m.Prepaid.String())
	}

	return order.ReconstructOrder(
		id,
		customerID,
		order.PayType(m.PayType),
		// 未知的舊狀態值原樣保留，視為開放狀態
		order.OrderStatus(m.Status),
		order.Details{
			OrderNo:      m.OrderNo,
			TotalPrice:   totalPrice,
			Prepaid:      prepaid,
			Urgent:       m.Urgent,
			ExpectedTime: m.ExpectedTime,
		},
		parseCreateTime(m.CreateTime, loc),
		m.UpdatedAt,
	)
}

func orderToGORM(o *order.Order) *OrderModel {
	return &OrderModel{
		ID:           o.OrderID().String(),
		OrderNo:      o.OrderNo(),
		CustomerID:   o.CustomerID().String(),
		TotalPrice:   NewAmount(o.TotalPrice().Decimal()),
		Prepaid:      NewAmount(o.Prepaid().Decimal()),
		PayType:      string(o.PayType()),
		Urgent:       o.Urgent(),
		Status:       string(o.Status()),
		ExpectedTime: o.ExpectedTime(),
		CreateTime:   formatCreateTime(o.CreatedAt()),
		UpdatedAt:    o.UpdatedAt(),
	}
}

func clothesToDomain(m *ClothesModel, loc *time.Location) (*order.Clothes, error) {
	id, err := order.ClothesIDFromString(m.ID)
	if err != nil {
		return nil, err
	}

	orderID, err := order.OrderIDFromString(m.OrderID)
	if err != nil {
		return nil, err
	}

	price, err := shared.NewMoney(m.Price.Decimal)
	if err != nil {
		return nil, order.ErrCorruptedOrder.WithContext("clothes_id", m.ID, "price", m.Price.String())
	}

	status, err := order.ParseClothesStatus(m.Status)
	if err != nil {
		return nil, err
	}

	return order.ReconstructClothes(
		id,
		orderID,
		order.ClothesDetails{
			Type:         m.Type,
			Price:        price,
			DamageRemark: m.DamageRemark,
			DamageImage:  m.DamageImage,
		},
		status,
		parseCreateTime(m.CreateTime, loc),
	), nil
}

func clothesToGORM(c *order.Clothes) *ClothesModel {
	return &ClothesModel{
		ID:           c.ClothesID().String(),
		OrderID:      c.OrderID().String(),
		Type:         c.Type(),
		Price:        NewAmount(c.Price().Decimal()),
		DamageRemark: c.DamageRemark(),
		DamageImage:  c.DamageImage(),
		Status:       string(c.Status()),
		CreateTime:   formatCreateTime(c.CreatedAt()),
	}
}

func rechargeToDomain(m *RechargeRecordModel, loc *time.Location) (*recharge.RechargeRecord, error) {
	id, err := recharge.RechargeIDFromString(m.ID)
	if err != nil {
		return nil, err
	}

	customerID, err := customer.CustomerIDFromString(m.CustomerID)
	if err != nil {
		return nil, err
	}

	amount, err := shared.NewMoney(m.RechargeAmount.Decimal)
	if err != nil {
		return nil, recharge.ErrCorruptedRechargeRecord.WithContext("recharge_id", m.ID)
	}

	gift, err := shared.NewMoney(m.GiftAmount.Decimal)
	if err != nil {
		return nil, recharge.ErrCorruptedRechargeRecord.WithContext("recharge_id", m.ID)
	}

	return recharge.ReconstructRechargeRecord(id, customerID, amount, gift, parseCreateTime(m.CreateTime, loc))
}

func rechargeToGORM(r *recharge.RechargeRecord) *RechargeRecordModel {
	return &RechargeRecordModel{
		ID:             r.RechargeID().String(),
		CustomerID:     r.CustomerID().String(),
		RechargeAmount: NewAmount(r.RechargeAmount().Decimal()),
		GiftAmount:     NewAmount(r.GiftAmount().Decimal()),
		CreateTime:     formatCreateTime(r.CreatedAt()),
	}
}

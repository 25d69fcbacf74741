package settlement

import (
	"fmt"
	"strings"

	"github.com/jackyeh168/laundry_crm/src/internal/domain/order"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
)

// ===========================
// 衣物明細維護
// ===========================
//
// 衣物不影響任何金額：訂單 totalPrice 由櫃檯輸入，不由衣物價格加總。

// AddClothes 新增衣物到訂單
//
// 錯誤：order.ErrOrderNotFound、order.ErrInvalidClothesType
func (e *Engine) AddClothes(cmd AddClothesCommand) (*ClothesResult, error) {
	orderID, err := order.OrderIDFromString(cmd.OrderID)
	if err != nil {
		return nil, err
	}
	details, err := toClothesDetails(cmd.ClothesInput)
	if err != nil {
		return nil, err
	}

	var created *order.Clothes
	err = e.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		// 鎖定訂單列：與 CancelOrder 互斥，避免留下孤兒衣物
		if _, err := e.orders.FindByIDForUpdate(ctx, orderID); err != nil {
			return err
		}
		c, err := order.NewClothes(orderID, details)
		if err != nil {
			return err
		}
		if err := e.clothes.Save(ctx, c); err != nil {
			return fmt.Errorf("failed to save clothes: %w", err)
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := toClothesResult(created)
	return &result, nil
}

// UpdateClothes 修改衣物資料（不含狀態）
func (e *Engine) UpdateClothes(cmd UpdateClothesCommand) (*ClothesResult, error) {
	clothesID, err := order.ClothesIDFromString(cmd.ClothesID)
	if err != nil {
		return nil, err
	}
	details, err := toClothesDetails(cmd.ClothesInput)
	if err != nil {
		return nil, err
	}

	return e.mutateClothes(clothesID, func(c *order.Clothes) error {
		return c.UpdateDetails(details)
	})
}

// AdvanceClothesStatus 衣物狀態前進一步（UNWASHED → WASHED → FINISHED）
//
// Status 為空時前進到下一個狀態。
//
// 錯誤：order.ErrInvalidClothesStatus、order.ErrInvalidClothesTransition
func (e *Engine) AdvanceClothesStatus(cmd AdvanceClothesStatusCommand) (*ClothesResult, error) {
	clothesID, err := order.ClothesIDFromString(cmd.ClothesID)
	if err != nil {
		return nil, err
	}

	next := strings.TrimSpace(cmd.Status) == ""
	var target order.ClothesStatus
	if !next {
		target, err = order.ParseClothesStatus(cmd.Status)
		if err != nil {
			return nil, err
		}
	}

	return e.mutateClothes(clothesID, func(c *order.Clothes) error {
		if !next {
			return c.AdvanceTo(target)
		}
		following, ok := c.Status().Next()
		if !ok {
			return order.ErrInvalidClothesTransition.WithContext(
				"clothes_id", c.ClothesID().String(),
				"from", c.Status().String(),
			)
		}
		return c.AdvanceTo(following)
	})
}

// DeleteClothes 刪除衣物
func (e *Engine) DeleteClothes(clothesIDStr string) error {
	clothesID, err := order.ClothesIDFromString(clothesIDStr)
	if err != nil {
		return err
	}
	return e.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		return e.clothes.Delete(ctx, clothesID)
	})
}

// ListClothes 訂單的衣物明細
//
// 錯誤：order.ErrOrderNotFound
func (e *Engine) ListClothes(orderIDStr string) ([]ClothesResult, error) {
	detail, err := e.GetOrder(orderIDStr)
	if err != nil {
		return nil, err
	}
	return detail.Clothes, nil
}

// ListClothesByStatus 指定狀態的所有衣物（跨訂單，供洗衣流程看板使用）
//
// 錯誤：order.ErrInvalidClothesStatus
func (e *Engine) ListClothesByStatus(statusStr string) ([]ClothesResult, error) {
	status, err := order.ParseClothesStatus(statusStr)
	if err != nil {
		return nil, err
	}
	items, err := e.clothes.FindByStatus(nil, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list clothes: %w", err)
	}

	results := make([]ClothesResult, 0, len(items))
	for _, c := range items {
		results = append(results, toClothesResult(c))
	}
	return results, nil
}

func (e *Engine) mutateClothes(clothesID order.ClothesID, mutate func(c *order.Clothes) error) (*ClothesResult, error) {
	var updated *order.Clothes
	err := e.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		c, err := e.clothes.FindByID(ctx, clothesID)
		if err != nil {
			return err
		}
		if err := mutate(c); err != nil {
			return err
		}
		if err := e.clothes.Update(ctx, c); err != nil {
			return fmt.Errorf("failed to update clothes: %w", err)
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := toClothesResult(updated)
	return &result, nil
}

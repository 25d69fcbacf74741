package customer

import (
	"time"

	domain "github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
	"github.com/shopspring/decimal"
)

// CustomerResult 客戶資料（Output DTO）
type CustomerResult struct {
	CustomerID string
	Name       string
	Phone      string
	Wechat     string
	Balance    decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func toResult(c *domain.Customer) *CustomerResult {
	return &CustomerResult{
		CustomerID: c.CustomerID().String(),
		Name:       c.Name(),
		Phone:      c.Phone().String(),
		Wechat:     c.Wechat().String(),
		Balance:    c.Balance().Decimal(),
		CreatedAt:  c.CreatedAt(),
		UpdatedAt:  c.UpdatedAt(),
	}
}

func toResults(customers []*domain.Customer) []*CustomerResult {
	results := make([]*CustomerResult, 0, len(customers))
	for _, c := range customers {
		results = append(results, toResult(c))
	}
	return results
}

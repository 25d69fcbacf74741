package customer

import (
	"fmt"
	"strings"

	domain "github.com/jackyeh168/laundry_crm/src/internal/domain/customer"
)

// ===========================
// 客戶查詢
// ===========================

// QueryService 客戶唯讀查詢（不開事務）
type QueryService struct {
	customerRepo domain.CustomerRepository
}

// NewQueryService 創建查詢服務
func NewQueryService(customerRepo domain.CustomerRepository) *QueryService {
	return &QueryService{customerRepo: customerRepo}
}

// Get 根據 ID 查詢
//
// 錯誤：ErrInvalidCustomerID、ErrCustomerNotFound
func (s *QueryService) Get(customerIDStr string) (*CustomerResult, error) {
	customerID, err := domain.CustomerIDFromString(customerIDStr)
	if err != nil {
		return nil, err
	}
	c, err := s.customerRepo.FindByID(nil, customerID)
	if err != nil {
		return nil, err
	}
	return toResult(c), nil
}

// List 全部客戶（按建立時間倒序）
func (s *QueryService) List() ([]*CustomerResult, error) {
	return s.scan(nil)
}

// Search 依姓名或手機號碼的子字串搜尋（姓名不分大小寫）
//
// keyword 為空時等同 List。
func (s *QueryService) Search(keyword string) ([]*CustomerResult, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return s.List()
	}
	return s.scan(func(c *domain.Customer) bool {
		return strings.Contains(strings.ToLower(c.Name()), keyword) ||
			strings.Contains(c.Phone().String(), keyword)
	})
}

func (s *QueryService) scan(predicate domain.Predicate) ([]*CustomerResult, error) {
	customers, err := s.customerRepo.Scan(nil, predicate)
	if err != nil {
		return nil, fmt.Errorf("failed to scan customers: %w", err)
	}
	return toResults(customers), nil
}
